// Package models provides the domain records of the trade journal.
package models

import "roadbook/internal/csvmap"

// Direction is the side of a trade.
type Direction string

const (
	Long  Direction = "Long"
	Short Direction = "Short"
)

// DirectionEnum is the wire description of Direction cells.
var DirectionEnum = &csvmap.Enum{
	Name: "direction",
	Values: []csvmap.EnumValue{
		{Name: "Long", Value: "Long"},
		{Name: "Short", Value: "Short"},
	},
}

// Result classifies a trade outcome against the neutrality band.
type Result int

const (
	Win     Result = 1
	Loss    Result = -1
	Neutral Result = 0
)

func (r Result) String() string {
	switch r {
	case Win:
		return "Win"
	case Loss:
		return "Loss"
	}
	return "Neutral"
}

// Weekday is an ISO weekday, Monday first.
type Weekday int

const (
	Mon Weekday = iota
	Tue
	Wed
	Thu
	Fri
	Sat
	Sun
)

var weekdayNames = [...]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (d Weekday) String() string {
	if d < Mon || d > Sun {
		return "???"
	}
	return weekdayNames[d]
}

// Account is the journal's singleton configuration record.
type Account struct {
	Capital    float64 // starting capital
	Neutral    float64 // minimum absolute P/L to count as win or loss
	Fixed      bool    // fixed-risk position sizing
	CopyGraphs bool    // copy chart images when saving to a new directory
	Version    float64
}

// DefaultAccount returns the account written into a fresh journal.
func DefaultAccount() Account {
	return Account{Capital: 10000, Neutral: 10, Fixed: true, CopyGraphs: true, Version: 1.1}
}

// Currency is keyed by its name. A Rate of zero means no conversion.
type Currency struct {
	Name  string
	Forex string  // forex pairing label, e.g. EURUSD
	Rate  float64 // units of this currency per euro
}

// Instrument is keyed by its symbol name and references a Currency.
type Instrument struct {
	Name      string
	Alias     string
	Currency  string
	Pip       float64
	StopPips  float64
	Scale     float64 // normalization scale for point values
	Daily     float64 // typical daily range
	CandleH4  float64 // typical 4H range
	Candle144 float64 // typical weekly range
	Spread    float64
	SpreadPM  float64
}

// Setup is keyed by its name.
type Setup struct {
	Name  string
	Descr string
}

// Feature is a trade tag. An empty Setups set means the feature is
// relevant to every setup.
type Feature struct {
	Name   string
	Descr  string
	Setups csvmap.StringSet
}
