package streak

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	testLoc = time.UTC
	// 2024-01-15 is a Monday.
	testNow = time.Date(2024, 1, 15, 10, 30, 0, 0, testLoc)
)

// daysAgo returns midnight n days before testNow.
func daysAgo(n int) time.Time {
	return time.Date(2024, 1, 15-n, 0, 0, 0, 0, testLoc)
}

func TestCalculateStreak(t *testing.T) {
	tests := []struct {
		name    string
		history []time.Time
		want    int
	}{
		{name: "empty", history: nil, want: 0},
		{name: "only today", history: []time.Time{daysAgo(0)}, want: 1},
		{name: "today at a later hour", history: []time.Time{testNow.Add(9 * time.Hour)}, want: 1},
		{name: "yesterday only", history: []time.Time{daysAgo(1)}, want: 0},
		{name: "run ending yesterday", history: []time.Time{daysAgo(1), daysAgo(2), daysAgo(3)}, want: 0},
		{name: "today and three days ago", history: []time.Time{daysAgo(0), daysAgo(3)}, want: 1},
		{name: "two-days-ago missing", history: []time.Time{daysAgo(0), daysAgo(1), daysAgo(3)}, want: 2},
		{name: "future entry after today", history: []time.Time{daysAgo(0), daysAgo(1), daysAgo(-1)}, want: 0},
		{name: "only future entries", history: []time.Time{daysAgo(-1), daysAgo(-2)}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreak(tt.history, testNow, testLoc))
		})
	}
}

func TestCalculateStreak_RunOfN(t *testing.T) {
	for n := 1; n <= 60; n++ {
		history := make([]time.Time, 0, n+5)
		for i := 0; i < n; i++ {
			history = append(history, daysAgo(i))
		}
		// Gap at day n, then older noise.
		for i := n + 1; i < n+5; i++ {
			history = append(history, daysAgo(i))
		}
		assert.Equal(t, n, CalculateStreak(history, testNow, testLoc), "run of %d", n)
	}
}

func TestCalculateStreak_ZeroWithoutToday(t *testing.T) {
	for n := 1; n <= 30; n++ {
		history := make([]time.Time, 0, n)
		for i := 1; i <= n; i++ {
			history = append(history, daysAgo(i))
		}
		assert.Zero(t, CalculateStreak(history, testNow, testLoc), "run of %d ending yesterday", n)
	}
}

func TestCalculateStreak_DuplicatesAndOrder(t *testing.T) {
	base := []time.Time{daysAgo(0), daysAgo(1), daysAgo(2), daysAgo(3), daysAgo(7)}
	want := CalculateStreak(base, testNow, testLoc)
	assert.Equal(t, 4, want)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		shuffled := append([]time.Time{}, base...)
		// Same-day duplicates at other hours.
		for j := 0; j < r.Intn(5); j++ {
			shuffled = append(shuffled, base[r.Intn(len(base))].Add(time.Duration(r.Intn(24))*time.Hour))
		}
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, CalculateStreak(shuffled, testNow, testLoc))
	}
}

func TestCalculateStreak_UsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 2024-01-15 20:00 UTC is already 2024-01-16 in Tokyo.
	now := time.Date(2024, 1, 15, 20, 0, 0, 0, time.UTC)
	history := []time.Time{time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)}

	assert.Equal(t, 1, CalculateStreak(history, now, time.UTC))
	assert.Equal(t, 0, CalculateStreak(history, now, tokyo))
}
