package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/sober/internal/constants"
	"github.com/julianstephens/sober/internal/models"
	"github.com/julianstephens/sober/internal/streak"
)

const cellWidth = 5

// Legend explains the markers used by the week strip and month grid.
const Legend = "* confirmed  > today"

// Status is everything RenderStatus prints.
type Status struct {
	Data           models.SobrietyData
	ConfirmedToday bool
	Now            time.Time
	Location       *time.Location
	WeekStart      time.Weekday
}

// RenderStatus prints the streak headline, today's state and the current
// week.
func RenderStatus(w io.Writer, s Status) error {
	today := streak.StartOfDay(s.Now, s.Location)
	state := "not confirmed yet"
	if s.ConfirmedToday {
		state = "confirmed"
	}
	last := "never"
	if s.Data.HasConfirmation() {
		last = streak.DayKey(s.Data.LastConfirmation, s.Location)
	}

	var b strings.Builder
	fmt.Fprintln(&b, streak.Headline(s.Data.Streak))
	fmt.Fprintln(&b, streak.Encouragement(s.Data.Streak))
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "Today:          %s (%s)\n", today.Format(constants.DateFormat), state)
	fmt.Fprintf(&b, "Tracking since: %s\n", streak.DayKey(s.Data.StartDate, s.Location))
	fmt.Fprintf(&b, "Last confirmed: %s\n", last)
	fmt.Fprintln(&b)
	writeWeek(&b, streak.Week(s.Data.History, s.Now, s.Location, s.WeekStart), s.WeekStart)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, Legend)

	_, err := io.WriteString(w, b.String())
	return err
}

// RenderWeek prints a weekday header and one row of day cells.
func RenderWeek(w io.Writer, cells []streak.DayCell, first time.Weekday) error {
	var b strings.Builder
	writeWeek(&b, cells, first)
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderMonth prints a month title, the weekday header and the grid.
func RenderMonth(w io.Writer, month time.Time, weeks [][]streak.DayCell, first time.Weekday) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d\n", month.Month(), month.Year())
	fmt.Fprintln(&b, weekdayHeader(first))
	for _, week := range weeks {
		fmt.Fprintln(&b, renderRow(week))
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, Legend)
	_, err := io.WriteString(w, b.String())
	return err
}

func writeWeek(b *strings.Builder, cells []streak.DayCell, first time.Weekday) {
	fmt.Fprintln(b, weekdayHeader(first))
	fmt.Fprintln(b, renderRow(cells))
}

func weekdayHeader(first time.Weekday) string {
	var b strings.Builder
	for i := 0; i < 7; i++ {
		wd := time.Weekday((int(first) + i) % 7)
		fmt.Fprintf(&b, " %-*s", cellWidth-1, wd.String()[:2])
	}
	return strings.TrimRight(b.String(), " ")
}

func renderRow(cells []streak.DayCell) string {
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(renderCell(c))
	}
	return strings.TrimRight(b.String(), " ")
}

// renderCell is cellWidth wide: today marker, day of month, confirmed marker.
func renderCell(c streak.DayCell) string {
	if !c.InMonth {
		return strings.Repeat(" ", cellWidth)
	}
	prefix, mark := " ", " "
	if c.Today {
		prefix = ">"
	}
	if c.Confirmed {
		mark = "*"
	}
	return fmt.Sprintf("%s%2d%s ", prefix, c.Date.Day(), mark)
}
