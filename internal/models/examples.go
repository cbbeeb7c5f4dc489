package models

import (
	"time"

	"roadbook/internal/csvmap"
)

// Example factories with representative values, used by fixtures.

func ExampleSetup() *Setup {
	return &Setup{Name: "H4 Support Open", Descr: "support touch near the open with a close cap"}
}

func ExampleFeature() *Feature {
	return &Feature{
		Name:   "H4 Support",
		Descr:  "price sitting on a 4H support level",
		Setups: csvmap.NewStringSet("H4 Support Open"),
	}
}

func ExampleCurrency() *Currency {
	return &Currency{Name: "USD", Forex: "EURUSD", Rate: 1.08}
}

func ExampleInstrument() *Instrument {
	return &Instrument{
		Name:     "NASDAQ",
		Alias:    "NQ",
		Currency: "USD",
		Pip:      0.25,
		StopPips: 144.3,
		Scale:    240000,
	}
}

func ExampleTrade() *Trade {
	return &Trade{
		ID:         100,
		Instrument: "NASDAQ",
		Setup:      "H4 Support Open",
		DateIn:     time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Dir:        Short,
		Lots:       1.2,
		TimeIn:     csvmap.Clock{Hour: 15, Minute: 30},
		TimeOut:    csvmap.Clock{Hour: 16, Minute: 15},
		PtsIn:      18250,
		PtsOut:     18170,
		PtsStop:    18300,
		Notes:      "4H support, no walls above, weak weekly",
		Mistakes:   "should have exited on the pattern break",
		Has:        csvmap.NewStringSet("Open", "H4 Support", "Pullback"),
	}
}
