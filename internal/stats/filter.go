// Package stats filters trade collections and computes grouped and
// cumulative summaries over them.
package stats

import (
	"time"

	"roadbook/internal/models"
	"roadbook/internal/roadbook"
)

// Filter is a conjunction of independent predicates. A predicate with
// no members is no constraint. Trades must carry every MustHave feature
// and none of the CantHave ones; the date range applies only when both
// bounds are set and Since is before Until.
type Filter struct {
	MustHave    []string
	CantHave    []string
	Instruments []string
	Setups      []string
	Dirs        []models.Direction
	Results     []models.Result
	Hours       []int
	Weekdays    []models.Weekday
	Since       time.Time
	Until       time.Time
}

// Apply narrows trades through every non-empty predicate, preserving
// the relative order of the survivors.
func (f *Filter) Apply(rb *roadbook.RoadBook, trades []*models.Trade) []*models.Trade {
	for _, name := range f.MustHave {
		trades = keep(trades, func(t *models.Trade) bool { return t.HasFeature(name) })
	}
	for _, name := range f.CantHave {
		trades = keep(trades, func(t *models.Trade) bool { return !t.HasFeature(name) })
	}
	if len(f.Setups) > 0 {
		trades = keep(trades, func(t *models.Trade) bool { return containsString(f.Setups, t.Setup) })
	}
	if len(f.Instruments) > 0 {
		trades = keep(trades, func(t *models.Trade) bool { return containsString(f.Instruments, t.Instrument) })
	}
	if len(f.Dirs) > 0 {
		trades = keep(trades, func(t *models.Trade) bool {
			for _, d := range f.Dirs {
				if t.Dir == d {
					return true
				}
			}
			return false
		})
	}
	if len(f.Results) > 0 {
		trades = keep(trades, func(t *models.Trade) bool {
			r := rb.Result(t)
			for _, want := range f.Results {
				if r == want {
					return true
				}
			}
			return false
		})
	}
	if len(f.Hours) > 0 {
		trades = keep(trades, func(t *models.Trade) bool {
			for _, h := range f.Hours {
				if t.Hour() == h {
					return true
				}
			}
			return false
		})
	}
	if len(f.Weekdays) > 0 {
		trades = keep(trades, func(t *models.Trade) bool {
			for _, d := range f.Weekdays {
				if t.DayOfWeek() == d {
					return true
				}
			}
			return false
		})
	}
	if !f.Since.IsZero() && !f.Until.IsZero() && f.Since.Before(f.Until) {
		trades = keep(trades, func(t *models.Trade) bool {
			return !t.DateIn.Before(f.Since) && !t.DateIn.After(f.Until)
		})
	}
	return trades
}

func keep(trades []*models.Trade, pred func(*models.Trade) bool) []*models.Trade {
	var out []*models.Trade
	for _, t := range trades {
		if pred(t) {
			out = append(out, t)
		}
	}
	return out
}

func containsString(set []string, s string) bool {
	for _, m := range set {
		if m == s {
			return true
		}
	}
	return false
}

// ThisDay keeps the trades sharing the latest trade's entry date. The
// scope is anchored on the data, not on the wall clock.
func ThisDay(trades []*models.Trade) []*models.Trade {
	if len(trades) == 0 {
		return trades
	}
	last := trades[len(trades)-1].DateIn
	return keep(trades, func(t *models.Trade) bool { return t.DateIn.Equal(last) })
}

// ThisWeek keeps the trades sharing the latest trade's ISO year-week.
func ThisWeek(trades []*models.Trade) []*models.Trade {
	if len(trades) == 0 {
		return trades
	}
	last := trades[len(trades)-1]
	year, week := last.Year(), last.Week()
	return keep(trades, func(t *models.Trade) bool { return t.Year() == year && t.Week() == week })
}

// ThisMonth keeps the trades sharing the latest trade's year and month.
func ThisMonth(trades []*models.Trade) []*models.Trade {
	if len(trades) == 0 {
		return trades
	}
	last := trades[len(trades)-1]
	year, month := last.Year(), last.Month()
	return keep(trades, func(t *models.Trade) bool { return t.Year() == year && t.Month() == month })
}

// ThisYear keeps the trades sharing the latest trade's year.
func ThisYear(trades []*models.Trade) []*models.Trade {
	if len(trades) == 0 {
		return trades
	}
	year := trades[len(trades)-1].Year()
	return keep(trades, func(t *models.Trade) bool { return t.Year() == year })
}
