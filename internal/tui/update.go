package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sober/internal/constants"
	"github.com/julianstephens/sober/internal/logger"
	"github.com/julianstephens/sober/internal/models"
	"github.com/julianstephens/sober/internal/streak"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case midnightMsg:
		return m.handleMidnight()
	}

	if m.state == StateConfirmReset {
		return m.updateResetForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleMidnight() (tea.Model, tea.Cmd) {
	wasToday := m.cursor.Equal(m.today().AddDate(0, 0, -1))
	data, err := m.engine.Refresh()
	m.apply(data, err, "")
	if wasToday {
		m.cursor = m.today()
	}
	logger.Debug("Day changed", "streak", m.data.Streak)
	return m, m.scheduleMidnight()
}

func (m Model) updateResetForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateMain
		m.status = "Reset cancelled."
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m = m.finishReset()
	case huh.StateAborted:
		m.state = StateMain
		m.status = "Reset cancelled."
	}
	return m, cmd
}

// finishReset applies the answer from the reset form.
func (m Model) finishReset() Model {
	m.state = StateMain
	if m.resetForm == nil || !m.resetForm.Confirmed {
		m.status = "Reset cancelled."
		return m
	}
	data, err := m.engine.ResetStreak()
	m.apply(data, err, "Streak reset. Every journey begins with a single step.")
	m.cursor = m.today()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(0, -7)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(0, 7)
	case key.Matches(msg, m.keys.PrevMonth):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.NextMonth):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Today):
		m.cursor = m.today()
	case key.Matches(msg, m.keys.Toggle):
		m.toggleCursor()
	case key.Matches(msg, m.keys.Confirm):
		if m.engine.IsConfirmedToday() {
			m.status = "Today is already confirmed."
			m.err = nil
			break
		}
		data, err := m.engine.ConfirmDay()
		m.apply(data, err, "Today confirmed. "+streak.Headline(data.Streak))
	case key.Matches(msg, m.keys.Cancel):
		if !m.engine.IsConfirmedToday() {
			m.status = "Today is not confirmed."
			m.err = nil
			break
		}
		data, err := m.engine.CancelConfirmation()
		m.apply(data, err, "Today's confirmation cancelled.")
	case key.Matches(msg, m.keys.Reset):
		m.resetForm = &ResetFormModel{}
		m.form = newResetForm(m.resetForm, len(m.data.History))
		m.state = StateConfirmReset
		return m, m.form.Init()
	}
	return m, nil
}

// moveCursor shifts the selection, never past today. Month moves keep the
// day of month where the target month has it and otherwise land on its last
// day.
func (m *Model) moveCursor(months, days int) {
	next := addMonths(m.cursor, months).AddDate(0, 0, days)
	if today := m.today(); next.After(today) {
		next = today
	}
	m.cursor = streak.StartOfDay(next, m.engine.Location())
}

func addMonths(t time.Time, months int) time.Time {
	if months == 0 {
		return t
	}
	y, mo, d := t.Date()
	first := time.Date(y, mo+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	return first.AddDate(0, 0, min(d, last)-1)
}

func (m *Model) toggleCursor() {
	day := m.cursor
	if day.After(m.today()) {
		m.status = ""
		m.err = errFutureDay
		return
	}
	wasConfirmed := streak.Contains(m.data.History, day, m.engine.Location())
	data, err := m.engine.ToggleDate(day)
	msg := day.Format(constants.DateFormat) + " marked sober."
	if wasConfirmed {
		msg = day.Format(constants.DateFormat) + " unmarked."
	}
	m.apply(data, err, msg)
}

// apply adopts the engine's answer. On error the engine returns the
// unchanged record, so the view stays consistent with storage.
func (m *Model) apply(data models.SobrietyData, err error, success string) {
	m.data = data
	if err != nil {
		m.err = err
		m.status = ""
		return
	}
	m.err = nil
	m.status = success
}

func (m Model) today() time.Time {
	return m.engine.Today()
}
