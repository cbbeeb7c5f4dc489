package models

import (
	"time"

	"roadbook/internal/csvmap"
	apperrors "roadbook/internal/errors"
)

// Trade is a closed journal entry. Instrument, Setup and Has reference
// other records by name; the owning store resolves them.
type Trade struct {
	ID         int
	Instrument string
	Setup      string
	DateIn     time.Time
	Dir        Direction
	Lots       float64
	TimeIn     csvmap.Clock
	TimeOut    csvmap.Clock
	PtsIn      float64
	PtsOut     float64
	SysOut     float64 // system exit, zero when not recorded
	PtsStop    float64
	Euros      float64 // explicit P/L override, zero when not set
	EuroStop   float64
	Graph      string // chart image path
	Notes      string
	Mistakes   string
	Has        csvmap.StringSet // feature tags
	Pts        float64          // cached Points value
}

// CopyFrom value-copies every field of o into t.
func (t *Trade) CopyFrom(o *Trade) {
	*t = *o
	if o.Has != nil {
		t.Has = csvmap.StringSet{}
		for k := range o.Has {
			t.Has.Add(k)
		}
	}
}

// Invalidate recomputes the cached points column after an edit.
func (t *Trade) Invalidate() {
	t.Pts = t.Points()
}

// Hour is the entry hour of day, zero when no entry time is recorded.
func (t *Trade) Hour() int {
	return t.TimeIn.Hour
}

// Year of the entry date.
func (t *Trade) Year() int {
	return t.DateIn.Year()
}

// Month of the entry date.
func (t *Trade) Month() int {
	return int(t.DateIn.Month())
}

// Day of the entry date.
func (t *Trade) Day() int {
	return t.DateIn.Day()
}

// Week is the ISO week number of the entry date.
func (t *Trade) Week() int {
	_, week := t.DateIn.ISOWeek()
	return week
}

// DayOfWeek is the ISO weekday of the entry date, Monday first.
func (t *Trade) DayOfWeek() Weekday {
	wd := int(t.DateIn.Weekday())
	if wd == 0 {
		return Sun
	}
	return Weekday(wd - 1)
}

// Points is the raw point gain of the trade: exit minus entry for longs,
// entry minus exit for shorts.
func (t *Trade) Points() float64 {
	if t.Dir == Long {
		return t.PtsOut - t.PtsIn
	}
	return t.PtsIn - t.PtsOut
}

// StopPoints is the direction-aware distance from entry to stop, with
// the same sign convention as Points mirrored.
func (t *Trade) StopPoints() float64 {
	if t.Dir == Short {
		return t.PtsStop - t.PtsIn
	}
	return t.PtsIn - t.PtsStop
}

// SysPoints is Points computed against the system exit, falling back to
// the recorded exit when no system exit is set.
func (t *Trade) SysPoints() float64 {
	out := t.SysOut
	if out == 0 {
		out = t.PtsOut
	}
	if t.Dir == Long {
		return out - t.PtsIn
	}
	return t.PtsIn - out
}

// HasFeature reports whether the trade carries the named feature tag.
func (t *Trade) HasFeature(name string) bool {
	return t.Has != nil && t.Has.Has(name)
}

// Validate checks the structural invariants a trade must satisfy before
// it is committed to the store.
func (t *Trade) Validate() error {
	if t.Instrument == "" {
		return apperrors.NewValidationError("instrument", t.Instrument, "no instrument")
	}
	if t.Setup == "" {
		return apperrors.NewValidationError("setup", t.Setup, "no setup")
	}
	if t.Lots <= 0 {
		return apperrors.NewValidationError("lots", t.Lots, "bad size in lots")
	}
	if t.PtsIn <= 0 {
		return apperrors.NewValidationError("ptsin", t.PtsIn, "bad entry points")
	}
	if t.PtsOut <= 0 {
		return apperrors.NewValidationError("ptsout", t.PtsOut, "bad exit points")
	}
	if t.PtsStop != 0 {
		if t.Dir == Long && t.PtsStop > t.PtsIn {
			return apperrors.NewValidationError("ptsstop", t.PtsStop, "stop above entry for long")
		}
		if t.Dir == Short && t.PtsStop < t.PtsIn {
			return apperrors.NewValidationError("ptsstop", t.PtsStop, "stop below entry for short")
		}
	}
	return nil
}
