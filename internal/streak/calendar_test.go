package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekStart(t *testing.T) {
	// testNow is Monday 2024-01-15.
	tests := []struct {
		name  string
		day   time.Time
		first time.Weekday
		want  time.Time
	}{
		{"monday start on monday", testNow, time.Monday, daysAgo(0)},
		{"sunday start on monday", testNow, time.Sunday, daysAgo(1)},
		{"monday start on sunday", daysAgo(1), time.Monday, daysAgo(7)},
		{"sunday start on sunday", daysAgo(1), time.Sunday, daysAgo(1)},
		{"monday start on saturday", daysAgo(-5), time.Monday, daysAgo(0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekStart(tt.day, testLoc, tt.first))
		})
	}
}

func TestWeek(t *testing.T) {
	history := []time.Time{daysAgo(0), daysAgo(1), daysAgo(-2), daysAgo(9)}

	cells := Week(history, testNow.Add(2*time.Hour), testLoc, time.Sunday)
	require.Len(t, cells, 7)

	assert.Equal(t, daysAgo(1), cells[0].Date)
	assert.Equal(t, time.Sunday, cells[0].Date.Weekday())
	assert.True(t, cells[0].Confirmed)

	assert.True(t, cells[1].Today)
	assert.True(t, cells[1].Confirmed)
	assert.False(t, cells[1].Future)

	for i := 2; i < 7; i++ {
		assert.True(t, cells[i].Future, "cell %d", i)
		assert.False(t, cells[i].Confirmed, "future day %d must never show confirmed", i)
	}
	for _, c := range cells {
		assert.True(t, c.InMonth)
	}
}

func TestMonthGrid(t *testing.T) {
	history := []time.Time{daysAgo(0), daysAgo(14), daysAgo(-3)}

	weeks := MonthGrid(history, testNow, testNow, testLoc, time.Monday)
	// January 2024 starts on a Monday and ends on a Wednesday.
	require.Len(t, weeks, 5)

	first := weeks[0][0]
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.True(t, first.Confirmed)
	assert.True(t, first.InMonth)

	last := weeks[4]
	assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), last[2].Date)
	assert.True(t, last[2].InMonth)
	assert.False(t, last[3].InMonth)
	assert.Equal(t, time.February, last[3].Date.Month())

	var confirmed, today, future int
	for _, w := range weeks {
		for _, c := range w {
			if c.Confirmed {
				confirmed++
			}
			if c.Today {
				today++
				assert.Equal(t, daysAgo(0), c.Date)
			}
			if c.Future {
				future++
				assert.False(t, c.Confirmed)
			}
		}
	}
	assert.Equal(t, 2, confirmed, "future entry must not show")
	assert.Equal(t, 1, today)
	assert.Equal(t, 35-15, future)
}

func TestMonthGrid_SundayStartPadsLeadingDays(t *testing.T) {
	weeks := MonthGrid(nil, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), testNow, testLoc, time.Sunday)
	// February 2024 starts on a Thursday.
	require.NotEmpty(t, weeks)
	row := weeks[0]
	assert.Equal(t, time.Sunday, row[0].Date.Weekday())
	for i := 0; i < 4; i++ {
		assert.False(t, row[i].InMonth, "day %d", i)
	}
	assert.True(t, row[4].InMonth)
	assert.Equal(t, 1, row[4].Date.Day())
	assert.Len(t, weeks, 5)
}
