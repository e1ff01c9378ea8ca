package tui

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/sober/internal/streak"
)

var errFutureDay = errors.New("future days can't be changed")

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateConfirmReset:
		content = m.form.View()
	default:
		content = lipgloss.JoinVertical(
			lipgloss.Left,
			m.viewCard(),
			"",
			m.viewWeek(),
			"",
			m.viewCalendar(),
		)
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.viewStatus(),
		m.help.View(m.keys),
	))
}

func (m Model) viewCard() string {
	today := "Press c to confirm today"
	if m.engine.IsConfirmedToday() {
		today = successStyle.Render("✓ Today confirmed")
	}
	return cardStyle.Render(lipgloss.JoinVertical(
		lipgloss.Center,
		headlineStyle.Render(streak.Headline(m.data.Streak)),
		encouragementStyle.Render(streak.Encouragement(m.data.Streak)),
		"",
		today,
	))
}

func (m Model) viewWeek() string {
	cells := streak.Week(m.data.History, m.engine.Now(), m.engine.Location(), m.weekStart)
	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("This week"),
		m.weekdayHeader(),
		m.renderRow(cells, false),
	)
}

func (m Model) viewCalendar() string {
	month := m.cursor
	weeks := streak.MonthGrid(m.data.History, month, m.engine.Now(), m.engine.Location(), m.weekStart)

	rows := []string{
		titleStyle.Render(fmt.Sprintf("%s %d", month.Month(), month.Year())),
		m.weekdayHeader(),
	}
	for _, week := range weeks {
		rows = append(rows, m.renderRow(week, true))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) weekdayHeader() string {
	names := make([]string, 7)
	for i := range names {
		names[i] = weekdayStyle.Render(time.Weekday((int(m.weekStart) + i) % 7).String()[:2])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, names...)
}

func (m Model) renderRow(cells []streak.DayCell, withCursor bool) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = m.renderCell(c, withCursor)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m Model) renderCell(c streak.DayCell, withCursor bool) string {
	style := dayStyle
	switch {
	case !c.InMonth:
		style = outsideMonthStyle
	case c.Confirmed:
		style = confirmedStyle
	case c.Future:
		style = futureStyle
	}
	if c.Today {
		style = style.Inherit(todayStyle)
	}
	if withCursor && c.InMonth && c.Date.Equal(m.cursor) {
		style = style.Inherit(cursorStyle)
	}
	return style.Render(strconv.Itoa(c.Date.Day()))
}

func (m Model) viewStatus() string {
	switch {
	case m.err != nil:
		return "\n" + dangerStyle.Render("Error: "+m.err.Error())
	case m.status != "":
		return "\n" + warningStyle.Render(m.status)
	}
	return "\n"
}
