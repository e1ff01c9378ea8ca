package tracking

import (
	"fmt"
	"path/filepath"

	"github.com/julianstephens/sober/internal/cli"
)

type ResetCmd struct {
	Yes bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	if !c.Yes {
		days := len(ctx.Engine.State().History)
		ok, err := cli.Confirm(
			"Reset your streak?",
			fmt.Sprintf("This clears all %d confirmed day(s) and starts over today.", days),
		)
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Reset cancelled.")
			return nil
		}
	}

	backupPath := ctx.PerformAutomaticBackup("reset")
	if _, err := ctx.Engine.ResetStreak(); err != nil {
		return fmt.Errorf("failed to reset streak: %w", err)
	}

	ctx.Println("✓ Streak reset. Every journey begins with a single step.")
	if backupPath != "" {
		ctx.Printf("  Previous data saved to backup: %s\n", filepath.Base(backupPath))
	}
	return nil
}
