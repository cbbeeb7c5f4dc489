package roadbook

import "roadbook/internal/models"

// ReferenceScale is the instrument scale that normalized point values
// are expressed in.
const ReferenceScale = 260000

// Instrument resolves a trade's instrument, nil when the reference does
// not resolve.
func (rb *RoadBook) Instrument(t *models.Trade) *models.Instrument {
	if t.Instrument == "" {
		return nil
	}
	return rb.FindInstrument(t.Instrument)
}

// Currency resolves the currency of a trade's instrument, nil when
// either reference does not resolve.
func (rb *RoadBook) Currency(t *models.Trade) *models.Currency {
	i := rb.Instrument(t)
	if i == nil {
		return nil
	}
	return rb.FindCurrency(i.Currency)
}

// NormalizedPoints rescales the trade's raw points to the reference
// scale. Trades on an unresolved instrument, or one without a scale,
// keep their raw points.
func (rb *RoadBook) NormalizedPoints(t *models.Trade) float64 {
	return rb.normalized(t, t.Points())
}

func (rb *RoadBook) normalized(t *models.Trade, pts float64) float64 {
	i := rb.Instrument(t)
	if i == nil || i.Scale == 0 {
		return pts
	}
	return pts * ReferenceScale / i.Scale
}

// PtsEuros converts the trade's raw points into home-currency P/L. An
// explicit euro override wins; a currency with a zero rate means no
// conversion.
func (rb *RoadBook) PtsEuros(t *models.Trade) float64 {
	return rb.ptsEuros(t, t.Points())
}

// SysEuros is PtsEuros computed over the system-exit points.
func (rb *RoadBook) SysEuros(t *models.Trade) float64 {
	return rb.ptsEuros(t, t.SysPoints())
}

func (rb *RoadBook) ptsEuros(t *models.Trade, pts float64) float64 {
	if t.Euros != 0 {
		return t.Euros
	}
	toEuro := 1.0
	if c := rb.Currency(t); c != nil && c.Rate != 0 {
		toEuro = 1 / c.Rate
	}
	return pts * t.Lots * toEuro
}

// Result classifies the trade against the account's neutrality band.
func (rb *RoadBook) Result(t *models.Trade) models.Result {
	return rb.ResultWith(t, 0)
}

// ResultWith classifies the trade against an explicit neutrality band;
// zero means use the account's. The euro override is classified when
// set, raw points otherwise.
func (rb *RoadBook) ResultWith(t *models.Trade, neutral float64) models.Result {
	if neutral == 0 {
		neutral = rb.Account.Neutral
	}
	pt := t.Euros
	if pt == 0 {
		pt = t.Points()
	}
	return classify(pt, neutral)
}

// SysResult classifies the system-exit points against the band.
func (rb *RoadBook) SysResult(t *models.Trade, neutral float64) models.Result {
	if neutral == 0 {
		neutral = rb.Account.Neutral
	}
	return classify(t.SysPoints(), neutral)
}

func classify(value, neutral float64) models.Result {
	switch {
	case value > neutral:
		return models.Win
	case value < -neutral:
		return models.Loss
	}
	return models.Neutral
}

// IsWin reports a winning classification.
func (rb *RoadBook) IsWin(t *models.Trade) bool {
	return rb.Result(t) == models.Win
}

// IsLoss reports a losing classification.
func (rb *RoadBook) IsLoss(t *models.Trade) bool {
	return rb.Result(t) == models.Loss
}
