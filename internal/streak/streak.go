package streak

import "time"

// CalculateStreak counts consecutive calendar days ending today that are
// present in history. The result is 0 unless the most recent day in history
// is today, so a day marked after today also yields 0. Duplicates and input
// order have no effect.
func CalculateStreak(history []time.Time, now time.Time, loc *time.Location) int {
	latest, ok := Latest(history, loc)
	today := StartOfDay(now, loc)
	if !ok || !latest.Equal(today) {
		return 0
	}

	days := make(map[string]struct{}, len(history))
	for _, h := range history {
		days[DayKey(h, loc)] = struct{}{}
	}

	streak := 1
	for day := today.AddDate(0, 0, -1); ; day = day.AddDate(0, 0, -1) {
		if _, ok := days[DayKey(day, loc)]; !ok {
			break
		}
		streak++
	}
	return streak
}
