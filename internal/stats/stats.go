package stats

import (
	"fmt"
	"sort"

	"roadbook/internal/models"
	"roadbook/internal/roadbook"
)

// Unit selects which per-trade value an aggregation works over.
type Unit int

const (
	UnitEuros Unit = iota
	UnitPoints
	UnitSysPoints
	UnitSysEuros
	UnitPointsNorm
	UnitStopPoints
	UnitSuccess
	UnitFailure
)

// Kind selects how grouped values are reported.
type Kind int

const (
	KindTotal Kind = iota
	KindAverage
	KindCount
)

// TradeValue extracts one trade's value in the given unit. The Success
// and Failure units count a matching classification as 1; in totals
// mode the opposite classification counts -1 so running sums behave
// like a win/loss ladder.
func TradeValue(rb *roadbook.RoadBook, t *models.Trade, u Unit, totals bool) float64 {
	if t == nil {
		return 0
	}
	switch u {
	case UnitPoints:
		return t.Points()
	case UnitSysPoints:
		return t.SysPoints()
	case UnitSysEuros:
		return rb.SysEuros(t)
	case UnitPointsNorm:
		return rb.NormalizedPoints(t)
	case UnitStopPoints:
		return t.StopPoints()
	case UnitSuccess:
		if rb.IsWin(t) {
			return 1
		}
		if totals && rb.IsLoss(t) {
			return -1
		}
		return 0
	case UnitFailure:
		if rb.IsLoss(t) {
			return 1
		}
		if totals && rb.IsWin(t) {
			return -1
		}
		return 0
	}
	return rb.PtsEuros(t)
}

// TradeValues extracts the unit value of every trade in order.
func TradeValues(rb *roadbook.RoadBook, trades []*models.Trade, u Unit) []float64 {
	vals := make([]float64, len(trades))
	for i, t := range trades {
		vals[i] = TradeValue(rb, t, u, false)
	}
	return vals
}

// RunningTotals returns the cumulative sum of the unit value across the
// sequence in original order, seeded with initial.
func RunningTotals(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, initial float64) []float64 {
	totals := make([]float64, len(trades))
	for i, t := range trades {
		initial += TradeValue(rb, t, u, true)
		totals[i] = initial
	}
	return totals
}

// perRun buckets consecutive trades sharing a label, preserving the
// order the labels first appear in the sequence. last limits the result
// to the trailing buckets when positive.
func perRun(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, k Kind, label func(*models.Trade) string, last int) ([]string, []float64) {
	var labels []string
	var vals []float64
	var cnts []float64

	var cur string
	var sum, cnt float64
	flush := func() {
		if cur == "" {
			return
		}
		labels = append(labels, cur)
		vals = append(vals, sum)
		cnts = append(cnts, cnt)
	}
	for _, t := range trades {
		l := label(t)
		if l != cur {
			flush()
			cur, sum, cnt = l, 0, 0
		}
		sum += TradeValue(rb, t, u, false)
		cnt++
	}
	flush()

	switch k {
	case KindCount:
		vals = cnts
	case KindAverage:
		for i := range vals {
			if cnts[i] != 0 {
				vals[i] /= cnts[i]
			}
		}
	}
	if last > 0 && len(vals) > last {
		labels = labels[len(labels)-last:]
		vals = vals[len(vals)-last:]
	}
	return labels, vals
}

// PerDay buckets trades by calendar day.
func PerDay(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, k Kind, last int) ([]string, []float64) {
	return perRun(rb, trades, u, k, func(t *models.Trade) string {
		return t.DateIn.Format("2006-01-02")
	}, last)
}

// PerWeek buckets trades by ISO year-week.
func PerWeek(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, k Kind, last int) ([]string, []float64) {
	return perRun(rb, trades, u, k, func(t *models.Trade) string {
		return fmt.Sprintf("%d-%d", t.Year(), t.Week())
	}, last)
}

// PerMonth buckets trades by year-month.
func PerMonth(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, k Kind, last int) ([]string, []float64) {
	return perRun(rb, trades, u, k, func(t *models.Trade) string {
		return fmt.Sprintf("%d-%d", t.Year(), t.Month())
	}, last)
}

// perField buckets trades by an arbitrary label over sorted labels.
func perField(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, k Kind, label func(*models.Trade) string) ([]string, []float64) {
	sums := map[string]float64{}
	cnts := map[string]float64{}
	for _, t := range trades {
		l := label(t)
		if l == "" {
			l = "none"
		}
		sums[l] += TradeValue(rb, t, u, false)
		cnts[l]++
	}

	labels := make([]string, 0, len(sums))
	for l := range sums {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	vals := make([]float64, len(labels))
	for i, l := range labels {
		switch k {
		case KindCount:
			vals[i] = cnts[l]
		case KindAverage:
			if cnts[l] != 0 {
				vals[i] = sums[l] / cnts[l]
			}
		default:
			vals[i] = sums[l]
		}
	}
	return labels, vals
}

// PerResult buckets trades by classification.
func PerResult(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, k Kind) ([]string, []float64) {
	return perField(rb, trades, u, k, func(t *models.Trade) string { return rb.Result(t).String() })
}

// PerHour buckets trades by entry hour.
func PerHour(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, k Kind) ([]string, []float64) {
	return perField(rb, trades, u, k, func(t *models.Trade) string { return fmt.Sprintf("%02d", t.Hour()) })
}

// PerWeekday buckets trades by ISO weekday.
func PerWeekday(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, k Kind) ([]string, []float64) {
	return perField(rb, trades, u, k, func(t *models.Trade) string { return t.DayOfWeek().String() })
}

// PerSetup buckets trades by setup name.
func PerSetup(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, k Kind) ([]string, []float64) {
	return perField(rb, trades, u, k, func(t *models.Trade) string { return t.Setup })
}

// PerInstrument buckets trades by instrument name.
func PerInstrument(rb *roadbook.RoadBook, trades []*models.Trade, u Unit, k Kind) ([]string, []float64) {
	return perField(rb, trades, u, k, func(t *models.Trade) string { return t.Instrument })
}

// Totals is a single-pass summary of a trade sequence: overall and
// per-classification counts, sums and averages, plus the total as a
// percentage of the account's starting capital.
type Totals struct {
	NTrades int
	Total   float64
	Average float64

	NWin     int
	NLoss    int
	NNeutral int

	TotalWin     float64
	TotalLoss    float64
	TotalNeutral float64

	AverageWin     float64
	AverageLoss    float64
	AverageNeutral float64

	Percent        float64
	WinPercent     float64
	LossPercent    float64
	NeutralPercent float64
}

// NewTotals summarizes trades in the given unit against the store's
// account.
func NewTotals(rb *roadbook.RoadBook, trades []*models.Trade, u Unit) Totals {
	var s Totals
	for _, t := range trades {
		v := TradeValue(rb, t, u, false)
		s.Total += v
		s.NTrades++
		switch rb.Result(t) {
		case models.Win:
			s.NWin++
			s.TotalWin += v
		case models.Loss:
			s.NLoss++
			s.TotalLoss += v
		default:
			s.NNeutral++
			s.TotalNeutral += v
		}
	}
	if s.NTrades > 0 {
		s.Average = s.Total / float64(s.NTrades)
		s.WinPercent = 100 * float64(s.NWin) / float64(s.NTrades)
		s.LossPercent = 100 * float64(s.NLoss) / float64(s.NTrades)
		s.NeutralPercent = 100 * float64(s.NNeutral) / float64(s.NTrades)
	}
	if s.NWin > 0 {
		s.AverageWin = s.TotalWin / float64(s.NWin)
	}
	if s.NLoss > 0 {
		s.AverageLoss = s.TotalLoss / float64(s.NLoss)
	}
	if s.NNeutral > 0 {
		s.AverageNeutral = s.TotalNeutral / float64(s.NNeutral)
	}
	if rb.Account.Capital > 0 {
		s.Percent = s.Total / rb.Account.Capital * 100
	}
	return s
}
