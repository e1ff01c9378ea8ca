package streak

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/julianstephens/sober/internal/constants"
	"github.com/julianstephens/sober/internal/logger"
	"github.com/julianstephens/sober/internal/models"
)

var (
	// ErrInvalidPayload is returned by Import for anything that is not a
	// version 1 export envelope with a data record.
	ErrInvalidPayload = errors.New("invalid data format")
	// ErrCorruptState is returned by Load when the stored blob cannot be decoded.
	ErrCorruptState = errors.New("stored sobriety data is corrupted")
)

// Gateway is the persistence contract the engine depends on: a string blob
// per key, last write wins. Get reports found=false when nothing was saved.
type Gateway interface {
	Get(key string) (value string, found bool, err error)
	Put(key, value string) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLocation sets the location whose calendar days are compared.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		if loc != nil {
			e.loc = loc
		}
	}
}

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(e *Engine) { e.key = key }
}

// Engine owns a SobrietyData record. Every mutation rebuilds the canonical
// history, recomputes the streak from scratch, persists the result and only
// then replaces the in-memory state.
type Engine struct {
	mu    sync.Mutex
	store Gateway
	clock Clock
	loc   *time.Location
	key   string
	data  models.SobrietyData
}

// New returns an engine holding a fresh record. Call Load to pick up
// previously saved state.
func New(store Gateway, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		clock: RealClock{},
		loc:   time.Local,
		key:   constants.StorageKey,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.data = models.NewSobrietyData(e.clock.Now())
	return e
}

// Location returns the location used for calendar-day comparisons.
func (e *Engine) Location() *time.Location { return e.loc }

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time { return e.clock.Now() }

// Today returns the start of the current calendar day.
func (e *Engine) Today() time.Time { return StartOfDay(e.clock.Now(), e.loc) }

// Load reads the stored record. A missing record is a first run, not an
// error. The stored streak is never trusted.
func (e *Engine) Load() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw, found, err := e.store.Get(e.key)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", e.key, err)
	}

	now := e.clock.Now()
	if !found || strings.TrimSpace(raw) == "" {
		logger.Debug("No stored sobriety data, starting fresh", "key", e.key)
		e.data = models.NewSobrietyData(now)
		return nil
	}

	var stored models.SobrietyData
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	e.data = e.recompute(stored, now)
	logger.Debug("Loaded sobriety data", "days", len(e.data.History), "streak", e.data.Streak)
	return nil
}

// State returns a snapshot of the current record.
func (e *Engine) State() models.SobrietyData {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.data.Clone()
}

// IsConfirmedToday reports whether today is present in history.
func (e *Engine) IsConfirmedToday() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Contains(e.data.History, e.clock.Now(), e.loc)
}

// ConfirmDay adds today to history. Confirming an already confirmed day is
// a no-op and does not write.
func (e *Engine) ConfirmDay() (models.SobrietyData, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	today := StartOfDay(now, e.loc)
	if Contains(e.data.History, today, e.loc) {
		return e.data.Clone(), nil
	}

	next := e.data.Clone()
	next.History = append(next.History, today)
	logger.Debug("Confirming day", "day", DayKey(today, e.loc))
	return e.commit(e.recompute(next, now))
}

// CancelConfirmation removes today from history. Calling it when today is
// not confirmed only recomputes.
func (e *Engine) CancelConfirmation() (models.SobrietyData, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	next := e.data.Clone()
	next.History = removeDay(next.History, now, e.loc)
	logger.Debug("Cancelling confirmation", "day", DayKey(now, e.loc))
	return e.commit(e.recompute(next, now))
}

// ToggleDate removes date's calendar day from history if present and adds
// it otherwise.
func (e *Engine) ToggleDate(date time.Time) (models.SobrietyData, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	next := e.data.Clone()
	if Contains(next.History, date, e.loc) {
		next.History = removeDay(next.History, date, e.loc)
		logger.Debug("Toggled day off", "day", DayKey(date, e.loc))
	} else {
		next.History = append(next.History, StartOfDay(date, e.loc))
		logger.Debug("Toggled day on", "day", DayKey(date, e.loc))
	}
	return e.commit(e.recompute(next, now))
}

// ResetStreak replaces the record with a fresh one started now.
func (e *Engine) ResetStreak() (models.SobrietyData, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logger.Info("Resetting sobriety data", "days_discarded", len(e.data.History))
	return e.commit(models.NewSobrietyData(e.clock.Now()))
}

// Refresh re-derives the streak for the current day and persists it. It is
// the entry point for the day-boundary re-check.
func (e *Engine) Refresh() (models.SobrietyData, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.commit(e.recompute(e.data.Clone(), e.clock.Now()))
}

// ExportData serializes {version: 1, data: record}.
func (e *Engine) ExportData() (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	raw, err := json.Marshal(models.ExportEnvelope{
		Version: constants.ExportVersion,
		Data:    e.data.Clone(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize export: %w", err)
	}
	return string(raw), nil
}

// ImportData replaces the record with the payload's data. It returns false
// and leaves state untouched for any malformed payload.
func (e *Engine) ImportData(payload string) bool {
	if err := e.Import(payload); err != nil {
		logger.Warn("Import rejected", "error", err)
		return false
	}
	return true
}

// Import is ImportData with the reason for a rejection. Every rejection
// wraps ErrInvalidPayload, except a failed write which wraps the store error.
func (e *Engine) Import(payload string) error {
	data, err := ParsePayload(payload)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.commit(e.recompute(data, e.clock.Now())); err != nil {
		return err
	}
	logger.Info("Imported sobriety data", "days", len(e.data.History))
	return nil
}

// ParsePayload decodes an export payload without touching any engine. It
// fails with ErrInvalidPayload exactly when Import would reject the payload
// before writing.
func ParsePayload(payload string) (models.SobrietyData, error) {
	var envelope struct {
		Version *float64        `json:"version"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return models.SobrietyData{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if envelope.Version == nil || *envelope.Version != constants.ExportVersion {
		return models.SobrietyData{}, fmt.Errorf("%w: unsupported version", ErrInvalidPayload)
	}
	trimmed := bytes.TrimSpace(envelope.Data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return models.SobrietyData{}, fmt.Errorf("%w: missing data", ErrInvalidPayload)
	}

	var data models.SobrietyData
	if err := json.Unmarshal(trimmed, &data); err != nil {
		return models.SobrietyData{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return data, nil
}

// recompute derives the canonical history, streak and last confirmation.
func (e *Engine) recompute(d models.SobrietyData, now time.Time) models.SobrietyData {
	d.History = Canonicalize(d.History, e.loc)
	d.Streak = CalculateStreak(d.History, now, e.loc)
	if last, ok := LastConfirmed(d.History, now, e.loc); ok {
		d.LastConfirmation = last
	} else {
		d.LastConfirmation = models.NeverConfirmed
	}
	return d
}

// commit persists next and only then adopts it. Callers hold e.mu.
func (e *Engine) commit(next models.SobrietyData) (models.SobrietyData, error) {
	raw, err := json.Marshal(next)
	if err != nil {
		return e.data.Clone(), fmt.Errorf("failed to serialize %s: %w", e.key, err)
	}
	if err := e.store.Put(e.key, string(raw)); err != nil {
		logger.Error("Failed to persist sobriety data", "key", e.key, "error", err)
		return e.data.Clone(), fmt.Errorf("failed to save %s: %w", e.key, err)
	}
	e.data = next
	return next.Clone(), nil
}

func removeDay(history []time.Time, day time.Time, loc *time.Location) []time.Time {
	k := DayKey(day, loc)
	out := make([]time.Time, 0, len(history))
	for _, h := range history {
		if DayKey(h, loc) != k {
			out = append(out, h)
		}
	}
	return out
}
