package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sober/internal/constants"
	"github.com/julianstephens/sober/internal/models"
	"github.com/julianstephens/sober/internal/streak"
)

type SessionState int

const (
	StateMain SessionState = iota
	StateConfirmReset
)

// midnightMsg fires just after the local day changes.
type midnightMsg time.Time

type ResetFormModel struct {
	Confirmed bool
}

type Model struct {
	engine    *streak.Engine
	weekStart time.Weekday
	state     SessionState
	keys      KeyMap
	help      help.Model
	data      models.SobrietyData
	// cursor is the selected calendar day; the calendar shows its month.
	cursor    time.Time
	form      *huh.Form
	resetForm *ResetFormModel
	status    string
	err       error
	quitting  bool
	width     int
	height    int
}

func NewModel(engine *streak.Engine, weekStart time.Weekday) Model {
	return Model{
		engine:    engine,
		weekStart: weekStart,
		state:     StateMain,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		data:      engine.State(),
		cursor:    engine.Today(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.scheduleMidnight()
}

// scheduleMidnight arms a one-shot timer for the next local midnight. The
// handler re-arms it, so an app left open keeps its streak current.
func (m Model) scheduleMidnight() tea.Cmd {
	wait := streak.UntilNextDay(m.engine.Now(), m.engine.Location()) + constants.MidnightSlack
	return tea.Tick(wait, func(t time.Time) tea.Msg {
		return midnightMsg(t)
	})
}

func newResetForm(fm *ResetFormModel, days int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset your streak?").
				Description(resetDescription(days)).
				Affirmative("Reset").
				Negative("Keep").
				Value(&fm.Confirmed),
		),
	).WithTheme(huh.ThemeDracula())
}

func resetDescription(days int) string {
	if days == 1 {
		return "This clears 1 confirmed day and starts over today."
	}
	return fmt.Sprintf("This clears %d confirmed days and starts over today.", days)
}
