package streak

import "time"

// DayCell is one day of a week strip or month grid.
type DayCell struct {
	Date      time.Time
	Confirmed bool // in history and not after today
	Today     bool
	Future    bool
	InMonth   bool // always true for week strips
}

// WeekStart returns the first day of the week containing day.
func WeekStart(day time.Time, loc *time.Location, first time.Weekday) time.Time {
	d := StartOfDay(day, loc)
	offset := (int(d.Weekday()) - int(first) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// Week returns the seven days of the week containing now. Future days are
// never marked confirmed.
func Week(history []time.Time, now time.Time, loc *time.Location, first time.Weekday) []DayCell {
	set := daySet(history, loc)
	start := WeekStart(now, loc, first)
	cells := make([]DayCell, 7)
	for i := range cells {
		cells[i] = cell(start.AddDate(0, 0, i), now, loc, set)
		cells[i].InMonth = true
	}
	return cells
}

// MonthGrid lays out the month containing month as whole weeks. Cells that
// belong to neighbouring months have InMonth=false.
func MonthGrid(history []time.Time, month, now time.Time, loc *time.Location, first time.Weekday) [][]DayCell {
	set := daySet(history, loc)
	m := month.In(loc)
	firstOfMonth := time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, loc)
	lastOfMonth := firstOfMonth.AddDate(0, 1, -1)

	var weeks [][]DayCell
	for start := WeekStart(firstOfMonth, loc, first); !start.After(lastOfMonth); start = start.AddDate(0, 0, 7) {
		week := make([]DayCell, 7)
		for i := range week {
			d := start.AddDate(0, 0, i)
			week[i] = cell(d, now, loc, set)
			week[i].InMonth = d.Month() == firstOfMonth.Month()
		}
		weeks = append(weeks, week)
	}
	return weeks
}

func cell(d, now time.Time, loc *time.Location, set map[string]struct{}) DayCell {
	today := StartOfDay(now, loc)
	c := DayCell{
		Date:   d,
		Today:  d.Equal(today),
		Future: d.After(today),
	}
	if !c.Future {
		_, c.Confirmed = set[DayKey(d, loc)]
	}
	return c
}

func daySet(history []time.Time, loc *time.Location) map[string]struct{} {
	set := make(map[string]struct{}, len(history))
	for _, h := range history {
		set[DayKey(h, loc)] = struct{}{}
	}
	return set
}
