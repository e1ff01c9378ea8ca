package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sober/internal/cli"
	"github.com/julianstephens/sober/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup("tui startup")

	p := tea.NewProgram(tui.NewModel(ctx.Engine, ctx.WeekStart()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive UI failed: %w", err)
	}
	return nil
}
