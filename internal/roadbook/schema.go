package roadbook

import (
	"time"

	"roadbook/internal/csvmap"
	"roadbook/internal/models"
)

// Wire schemas for the six record kinds. Field names are the historical
// column names; renames keep the older trade header spelling readable.

func str(v interface{}) string {
	if v == nil {
		return ""
	}
	return v.(string)
}

func num(v interface{}) float64 {
	if v == nil {
		return 0
	}
	return v.(float64)
}

func boolv(v interface{}) bool {
	if v == nil {
		return false
	}
	return v.(bool)
}

func set(v interface{}) csvmap.StringSet {
	if v == nil {
		return csvmap.StringSet{}
	}
	return v.(csvmap.StringSet)
}

func clock(v interface{}) csvmap.Clock {
	if v == nil {
		return csvmap.Clock{}
	}
	return v.(csvmap.Clock)
}

var accountFields = []csvmap.Field[models.Account]{
	{Name: "account", Kind: csvmap.KindFloat,
		Get: func(a *models.Account) interface{} { return a.Capital },
		Set: func(a *models.Account, v interface{}) { a.Capital = num(v) }},
	{Name: "neutral", Kind: csvmap.KindFloat,
		Get: func(a *models.Account) interface{} { return a.Neutral },
		Set: func(a *models.Account, v interface{}) { a.Neutral = num(v) }},
	{Name: "fixed", Kind: csvmap.KindBool,
		Get: func(a *models.Account) interface{} { return a.Fixed },
		Set: func(a *models.Account, v interface{}) { a.Fixed = boolv(v) }},
	{Name: "copygraphs", Kind: csvmap.KindBool,
		Get: func(a *models.Account) interface{} { return a.CopyGraphs },
		Set: func(a *models.Account, v interface{}) { a.CopyGraphs = boolv(v) }},
	{Name: "version", Kind: csvmap.KindFloat,
		Get: func(a *models.Account) interface{} { return a.Version },
		Set: func(a *models.Account, v interface{}) { a.Version = num(v) }},
}

var currencyFields = []csvmap.Field[models.Currency]{
	{Name: "name", Kind: csvmap.KindString,
		Get: func(c *models.Currency) interface{} { return c.Name },
		Set: func(c *models.Currency, v interface{}) { c.Name = str(v) }},
	{Name: "forex", Kind: csvmap.KindString, Optional: true,
		Get: func(c *models.Currency) interface{} { return c.Forex },
		Set: func(c *models.Currency, v interface{}) { c.Forex = str(v) }},
	{Name: "euros2", Kind: csvmap.KindFloat, Optional: true,
		Get: func(c *models.Currency) interface{} { return c.Rate },
		Set: func(c *models.Currency, v interface{}) { c.Rate = num(v) }},
}

var instrumentFields = []csvmap.Field[models.Instrument]{
	{Name: "instrument", Kind: csvmap.KindString,
		Get: func(i *models.Instrument) interface{} { return i.Name },
		Set: func(i *models.Instrument, v interface{}) { i.Name = str(v) }},
	{Name: "aka", Kind: csvmap.KindString, Optional: true,
		Get: func(i *models.Instrument) interface{} { return i.Alias },
		Set: func(i *models.Instrument, v interface{}) { i.Alias = str(v) }},
	{Name: "currency", Kind: csvmap.KindString, Optional: true,
		Get: func(i *models.Instrument) interface{} { return i.Currency },
		Set: func(i *models.Instrument, v interface{}) { i.Currency = str(v) }},
	{Name: "pip", Kind: csvmap.KindFloat, Optional: true,
		Get: func(i *models.Instrument) interface{} { return i.Pip },
		Set: func(i *models.Instrument, v interface{}) { i.Pip = num(v) }},
	{Name: "stoppips", Kind: csvmap.KindFloat, Optional: true,
		Get: func(i *models.Instrument) interface{} { return i.StopPips },
		Set: func(i *models.Instrument, v interface{}) { i.StopPips = num(v) }},
	{Name: "scale", Kind: csvmap.KindFloat, Optional: true,
		Get: func(i *models.Instrument) interface{} { return i.Scale },
		Set: func(i *models.Instrument, v interface{}) { i.Scale = num(v) }},
	{Name: "diary", Kind: csvmap.KindFloat, Optional: true,
		Get: func(i *models.Instrument) interface{} { return i.Daily },
		Set: func(i *models.Instrument, v interface{}) { i.Daily = num(v) }},
	{Name: "candleh4", Kind: csvmap.KindFloat, Optional: true,
		Get: func(i *models.Instrument) interface{} { return i.CandleH4 },
		Set: func(i *models.Instrument, v interface{}) { i.CandleH4 = num(v) }},
	{Name: "candle144", Kind: csvmap.KindFloat, Optional: true,
		Get: func(i *models.Instrument) interface{} { return i.Candle144 },
		Set: func(i *models.Instrument, v interface{}) { i.Candle144 = num(v) }},
	{Name: "spread", Kind: csvmap.KindFloat, Optional: true,
		Get: func(i *models.Instrument) interface{} { return i.Spread },
		Set: func(i *models.Instrument, v interface{}) { i.Spread = num(v) }},
	{Name: "sreadpm", Kind: csvmap.KindFloat, Optional: true,
		Get: func(i *models.Instrument) interface{} { return i.SpreadPM },
		Set: func(i *models.Instrument, v interface{}) { i.SpreadPM = num(v) }},
}

var setupFields = []csvmap.Field[models.Setup]{
	{Name: "setup", Kind: csvmap.KindString,
		Get: func(s *models.Setup) interface{} { return s.Name },
		Set: func(s *models.Setup, v interface{}) { s.Name = str(v) }},
	{Name: "descr", Kind: csvmap.KindString, Optional: true,
		Get: func(s *models.Setup) interface{} { return s.Descr },
		Set: func(s *models.Setup, v interface{}) { s.Descr = str(v) }},
}

var featureFields = []csvmap.Field[models.Feature]{
	{Name: "feature", Kind: csvmap.KindString,
		Get: func(f *models.Feature) interface{} { return f.Name },
		Set: func(f *models.Feature, v interface{}) { f.Name = str(v) }},
	{Name: "descr", Kind: csvmap.KindString, Optional: true,
		Get: func(f *models.Feature) interface{} { return f.Descr },
		Set: func(f *models.Feature, v interface{}) { f.Descr = str(v) }},
	{Name: "setups", Kind: csvmap.KindSet, Optional: true,
		Get: func(f *models.Feature) interface{} { return f.Setups },
		Set: func(f *models.Feature, v interface{}) { f.Setups = set(v) }},
}

// tradeRenames maps canonical trade field names to the older header
// names still accepted on read and written for compatibility.
var tradeRenames = map[string]string{
	"datein": "date",
	"has":    "with",
}

// tradeSkips excludes the derived points cache from serialization.
var tradeSkips = map[string]bool{"pts": true}

var tradeFields = []csvmap.Field[models.Trade]{
	{Name: "trade", Kind: csvmap.KindInt,
		Get: func(t *models.Trade) interface{} { return t.ID },
		Set: func(t *models.Trade, v interface{}) { t.ID = v.(int) }},
	{Name: "instrument", Kind: csvmap.KindString,
		Get: func(t *models.Trade) interface{} { return t.Instrument },
		Set: func(t *models.Trade, v interface{}) { t.Instrument = str(v) }},
	{Name: "setup", Kind: csvmap.KindString, Optional: true,
		Get: func(t *models.Trade) interface{} { return t.Setup },
		Set: func(t *models.Trade, v interface{}) { t.Setup = str(v) }},
	{Name: "datein", Kind: csvmap.KindDate,
		Get: func(t *models.Trade) interface{} { return t.DateIn },
		Set: func(t *models.Trade, v interface{}) { t.DateIn = v.(time.Time) }},
	{Name: "dir", Kind: csvmap.KindEnum, Enum: models.DirectionEnum,
		Get: func(t *models.Trade) interface{} { return string(t.Dir) },
		Set: func(t *models.Trade, v interface{}) { t.Dir = models.Direction(str(v)) }},
	{Name: "lots", Kind: csvmap.KindFloat,
		Get: func(t *models.Trade) interface{} { return t.Lots },
		Set: func(t *models.Trade, v interface{}) { t.Lots = num(v) }},
	{Name: "timein", Kind: csvmap.KindTime,
		Get: func(t *models.Trade) interface{} { return t.TimeIn },
		Set: func(t *models.Trade, v interface{}) { t.TimeIn = clock(v) }},
	{Name: "timeout", Kind: csvmap.KindTime, Optional: true,
		Get: func(t *models.Trade) interface{} {
			if t.TimeOut.IsZero() {
				return nil
			}
			return t.TimeOut
		},
		Set: func(t *models.Trade, v interface{}) { t.TimeOut = clock(v) }},
	{Name: "ptsin", Kind: csvmap.KindFloat,
		Get: func(t *models.Trade) interface{} { return t.PtsIn },
		Set: func(t *models.Trade, v interface{}) { t.PtsIn = num(v) }},
	{Name: "ptsout", Kind: csvmap.KindFloat,
		Get: func(t *models.Trade) interface{} { return t.PtsOut },
		Set: func(t *models.Trade, v interface{}) { t.PtsOut = num(v) }},
	{Name: "sysout", Kind: csvmap.KindFloat, Optional: true,
		Get: func(t *models.Trade) interface{} { return t.SysOut },
		Set: func(t *models.Trade, v interface{}) { t.SysOut = num(v) }},
	{Name: "ptsstop", Kind: csvmap.KindFloat, Optional: true,
		Get: func(t *models.Trade) interface{} { return t.PtsStop },
		Set: func(t *models.Trade, v interface{}) { t.PtsStop = num(v) }},
	{Name: "euros", Kind: csvmap.KindFloat, Optional: true,
		Get: func(t *models.Trade) interface{} { return t.Euros },
		Set: func(t *models.Trade, v interface{}) { t.Euros = num(v) }},
	{Name: "eurstop", Kind: csvmap.KindFloat, Optional: true,
		Get: func(t *models.Trade) interface{} { return t.EuroStop },
		Set: func(t *models.Trade, v interface{}) { t.EuroStop = num(v) }},
	{Name: "graf", Kind: csvmap.KindString, Optional: true,
		Get: func(t *models.Trade) interface{} { return t.Graph },
		Set: func(t *models.Trade, v interface{}) { t.Graph = str(v) }},
	{Name: "notes", Kind: csvmap.KindString, Optional: true,
		Get: func(t *models.Trade) interface{} { return t.Notes },
		Set: func(t *models.Trade, v interface{}) { t.Notes = str(v) }},
	{Name: "mistakes", Kind: csvmap.KindString, Optional: true,
		Get: func(t *models.Trade) interface{} { return t.Mistakes },
		Set: func(t *models.Trade, v interface{}) { t.Mistakes = str(v) }},
	{Name: "has", Kind: csvmap.KindSet, Optional: true,
		Get: func(t *models.Trade) interface{} { return t.Has },
		Set: func(t *models.Trade, v interface{}) { t.Has = set(v) }},
	{Name: "pts", Kind: csvmap.KindFloat, Optional: true,
		Get: func(t *models.Trade) interface{} { return t.Pts },
		Set: func(t *models.Trade, v interface{}) { t.Pts = num(v) }},
}
