package validation

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/sober/internal/models"
	"github.com/julianstephens/sober/internal/streak"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateDay        ConflictType = "duplicate_day"
	ConflictFutureDay           ConflictType = "future_day"
	ConflictUnnormalizedEntry   ConflictType = "unnormalized_entry"
	ConflictStreakMismatch      ConflictType = "streak_mismatch"
	ConflictLastConfirmMismatch ConflictType = "last_confirmation_mismatch"
	ConflictFutureStartDate     ConflictType = "future_start_date"
)

// Conflict is one inconsistency found in a stored record.
type Conflict struct {
	Type        ConflictType
	Description string
	Days        []string // YYYY-MM-DD, when specific days are involved
	// Fixable is true when recomputing the record resolves the conflict.
	Fixable bool
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Fixable reports whether every conflict is resolved by a recompute.
func (vr *ValidationResult) Fixable() bool {
	for _, c := range vr.Conflicts {
		if !c.Fixable {
			return false
		}
	}
	return vr.HasConflicts()
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks a stored SobrietyData against the invariants the engine
// maintains. The engine repairs most of these on load; the validator exists
// to report what was on disk.
type Validator struct {
	loc *time.Location
}

// New creates a Validator comparing calendar days in loc.
func New(loc *time.Location) *Validator {
	if loc == nil {
		loc = time.Local
	}
	return &Validator{loc: loc}
}

// Validate checks d as of now.
func (v *Validator) Validate(d models.SobrietyData, now time.Time) ValidationResult {
	var result ValidationResult

	if dups := v.duplicateDays(d.History); len(dups) > 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateDay,
			Description: fmt.Sprintf("History lists %d day(s) more than once: %s", len(dups), strings.Join(dups, ", ")),
			Days:        dups,
			Fixable:     true,
		})
	}

	if unnormalized := v.unnormalizedEntries(d.History); len(unnormalized) > 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictUnnormalizedEntry,
			Description: fmt.Sprintf("%d history timestamp(s) are not at the start of their day", len(unnormalized)),
			Days:        unnormalized,
			Fixable:     true,
		})
	}

	if future := v.futureDays(d.History, now); len(future) > 0 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictFutureDay,
			Description: fmt.Sprintf("History contains future day(s): %s (toggle them off with 'sober toggle')", strings.Join(future, ", ")),
			Days:        future,
		})
	}

	if want := streak.CalculateStreak(d.History, now, v.loc); d.Streak != want {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictStreakMismatch,
			Description: fmt.Sprintf("Stored streak is %d but history gives %d", d.Streak, want),
			Fixable:     true,
		})
	}

	wantLast := models.NeverConfirmed
	if last, ok := streak.LastConfirmed(d.History, now, v.loc); ok {
		wantLast = last
	}
	if !d.LastConfirmation.Equal(wantLast) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictLastConfirmMismatch,
			Description: fmt.Sprintf("Stored last confirmation %s does not match history (%s)",
				describe(d.LastConfirmation, v.loc), describe(wantLast, v.loc)),
			Fixable: true,
		})
	}

	if d.StartDate.After(now) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictFutureStartDate,
			Description: fmt.Sprintf("Start date %s is in the future", streak.DayKey(d.StartDate, v.loc)),
		})
	}

	return result
}

func (v *Validator) duplicateDays(history []time.Time) []string {
	counts := make(map[string]int, len(history))
	for _, h := range history {
		counts[streak.DayKey(h, v.loc)]++
	}
	var dups []string
	for day, n := range counts {
		if n > 1 {
			dups = append(dups, day)
		}
	}
	sort.Strings(dups)
	return dups
}

func (v *Validator) unnormalizedEntries(history []time.Time) []string {
	var out []string
	for _, h := range history {
		if !h.Equal(streak.StartOfDay(h, v.loc)) {
			out = append(out, streak.DayKey(h, v.loc))
		}
	}
	return out
}

func (v *Validator) futureDays(history []time.Time, now time.Time) []string {
	today := streak.StartOfDay(now, v.loc)
	seen := map[string]bool{}
	var out []string
	for _, h := range history {
		day := streak.DayKey(h, v.loc)
		if streak.StartOfDay(h, v.loc).After(today) && !seen[day] {
			seen[day] = true
			out = append(out, day)
		}
	}
	sort.Strings(out)
	return out
}

func describe(t time.Time, loc *time.Location) string {
	if t.Equal(models.NeverConfirmed) {
		return "never"
	}
	return streak.DayKey(t, loc)
}
