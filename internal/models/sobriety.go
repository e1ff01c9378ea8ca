package models

import (
	"slices"
	"time"
)

// NeverConfirmed is the sentinel LastConfirmation value for a record that
// has no confirmed days.
var NeverConfirmed = time.Unix(0, 0).UTC()

// SobrietyData is the single persisted aggregate.
type SobrietyData struct {
	StartDate        time.Time   `json:"startDate"`        // when tracking began, informational
	LastConfirmation time.Time   `json:"lastConfirmation"` // latest confirmed day or NeverConfirmed
	Streak           int         `json:"streak"`           // derived from History, never trusted from storage
	History          []time.Time `json:"history"`          // one entry per confirmed calendar day, oldest first
}

// ExportEnvelope wraps SobrietyData for export files.
type ExportEnvelope struct {
	Version int          `json:"version"`
	Data    SobrietyData `json:"data"`
}

// NewSobrietyData returns an empty record started at now.
func NewSobrietyData(now time.Time) SobrietyData {
	return SobrietyData{
		StartDate:        now.Round(0),
		LastConfirmation: NeverConfirmed,
		Streak:           0,
		History:          []time.Time{},
	}
}

// Clone returns a deep copy so callers can never mutate engine-owned state.
func (d SobrietyData) Clone() SobrietyData {
	out := d
	if d.History != nil {
		out.History = slices.Clone(d.History)
	} else {
		out.History = []time.Time{}
	}
	return out
}

// HasConfirmation reports whether LastConfirmation holds a real day.
func (d SobrietyData) HasConfirmation() bool {
	return !d.LastConfirmation.Equal(NeverConfirmed) && !d.LastConfirmation.IsZero()
}
