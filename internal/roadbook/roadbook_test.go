package roadbook

import (
	"testing"
	"time"

	"roadbook/internal/csvmap"
	apperrors "roadbook/internal/errors"
	"roadbook/internal/models"
)

func newTrade(id int, instrument, setup string) *models.Trade {
	return &models.Trade{
		ID:         id,
		Instrument: instrument,
		Setup:      setup,
		DateIn:     time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		Dir:        models.Long,
		Lots:       1,
		TimeIn:     csvmap.Clock{Hour: 10},
		PtsIn:      100,
		PtsOut:     110,
		Has:        csvmap.StringSet{},
	}
}

func testBook() *RoadBook {
	rb := New()
	rb.Currencies = []*models.Currency{{Name: "EUR"}, {Name: "USD", Forex: "EURUSD", Rate: 1.1}}
	rb.Instruments = []*models.Instrument{
		{Name: "DAX", Currency: "EUR", Scale: 260000},
		{Name: "SP500", Currency: "USD", Scale: 130000},
	}
	rb.Setups = []*models.Setup{{Name: "breakout"}, {Name: "pullback"}}
	rb.Features = []*models.Feature{
		{Name: "news", Setups: csvmap.NewStringSet("breakout")},
		{Name: "gap", Setups: csvmap.StringSet{}},
	}
	rb.Trades = []*models.Trade{
		newTrade(1, "DAX", "breakout"),
		newTrade(2, "SP500", "pullback"),
	}
	rb.fillDefaults()
	return rb
}

func TestNextID(t *testing.T) {
	rb := testBook()
	if got := rb.NextID(); got != 3 {
		t.Errorf("NextID() = %d, want 3", got)
	}

	// The counter is derived from live data, so removing the maximum
	// frees its id.
	if err := rb.RemoveTrade(2); err != nil {
		t.Fatalf("RemoveTrade: %v", err)
	}
	if got := rb.NextID(); got != 2 {
		t.Errorf("NextID() after delete = %d, want 2", got)
	}

	if got := New().NextID(); got != 1 {
		t.Errorf("NextID() on empty store = %d, want 1", got)
	}
}

func TestAddTradeAssignsIDAndCreatesReferences(t *testing.T) {
	rb := testBook()
	tr := newTrade(0, "NASDAQ", "reversal")
	if err := rb.AddTrade(tr); err != nil {
		t.Fatalf("AddTrade: %v", err)
	}
	if tr.ID != 3 {
		t.Errorf("assigned id = %d, want 3", tr.ID)
	}
	if rb.FindInstrument("NASDAQ") == nil {
		t.Error("missing instrument not auto-created")
	}
	if rb.FindSetup("reversal") == nil {
		t.Error("missing setup not auto-created")
	}
	if !rb.Dirty() {
		t.Error("store not marked dirty")
	}
}

func TestAddTradeRejectsInvalid(t *testing.T) {
	rb := testBook()
	tr := newTrade(0, "", "breakout")
	if err := rb.AddTrade(tr); err == nil {
		t.Fatal("AddTrade accepted a trade without instrument")
	}
	if len(rb.Trades) != 2 {
		t.Error("store mutated by a rejected add")
	}
	var ve *apperrors.ValidationError
	if !apperrors.As(rb.AddTrade(tr), &ve) {
		t.Error("error is not a ValidationError")
	}
}

func TestUpdateTrade(t *testing.T) {
	rb := testBook()
	edit := newTrade(1, "DAX", "pullback")
	edit.PtsOut = 150
	if err := rb.UpdateTrade(edit); err != nil {
		t.Fatalf("UpdateTrade: %v", err)
	}

	stored := rb.FindTrade(1)
	if stored.Setup != "pullback" || stored.PtsOut != 150 {
		t.Errorf("stored trade = %+v", *stored)
	}
	if stored.Pts != 50 {
		t.Errorf("points cache = %v, want 50", stored.Pts)
	}

	edit.ID = 99
	if err := rb.UpdateTrade(edit); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("UpdateTrade of unknown id = %v, want ErrNotFound", err)
	}
}

func TestFillDefaultsCreatesCurrencies(t *testing.T) {
	rb := New()
	rb.Instruments = []*models.Instrument{{Name: "NIKKEI", Currency: "JPY"}}
	rb.fillDefaults()
	if rb.FindCurrency("JPY") == nil {
		t.Error("instrument currency not auto-created")
	}
}

func TestFillDefaultsIsIdempotent(t *testing.T) {
	rb := testBook()
	nc, ni, ns := len(rb.Currencies), len(rb.Instruments), len(rb.Setups)
	rb.fillDefaults()
	rb.fillDefaults()
	if len(rb.Currencies) != nc || len(rb.Instruments) != ni || len(rb.Setups) != ns {
		t.Error("fillDefaults grew collections on repeat")
	}
}

func TestRenameInstrumentCascades(t *testing.T) {
	rb := testBook()
	rb.RenameInstrument("DAX", "GER40")
	if rb.FindInstrument("DAX") != nil {
		t.Error("old key survives")
	}
	if rb.FindInstrument("GER40") == nil {
		t.Fatal("new key missing")
	}
	if rb.FindTrade(1).Instrument != "GER40" {
		t.Error("trade reference not rewritten")
	}
}

func TestRenameCurrencyCascades(t *testing.T) {
	rb := testBook()
	rb.RenameCurrency("USD", "US$")
	if rb.FindCurrency("US$") == nil {
		t.Fatal("new key missing")
	}
	if rb.FindInstrument("SP500").Currency != "US$" {
		t.Error("instrument reference not rewritten")
	}
}

func TestRenameSetupCascades(t *testing.T) {
	rb := testBook()
	rb.RenameSetup("breakout", "bo")
	if rb.FindTrade(1).Setup != "bo" {
		t.Error("trade reference not rewritten")
	}
	news := rb.FindFeature("news")
	if !news.Setups.Has("bo") || news.Setups.Has("breakout") {
		t.Errorf("feature setup-set not rewritten: %v", news.Setups.Sorted())
	}
	if rb.FindSetup("bo") == nil {
		t.Error("setup key not renamed")
	}
}

func TestRenameFeatureCascades(t *testing.T) {
	rb := testBook()
	rb.FindTrade(1).Has.Add("news")
	rb.RenameFeature("news", "headline")
	if !rb.FindTrade(1).HasFeature("headline") || rb.FindTrade(1).HasFeature("news") {
		t.Error("trade tag set not rewritten")
	}
	if rb.FindFeature("headline") == nil {
		t.Error("feature key not renamed")
	}
}

func TestDeleteRefusesInUse(t *testing.T) {
	rb := testBook()

	if err := rb.DeleteInstrument("DAX"); !apperrors.Is(err, apperrors.ErrEntityInUse) {
		t.Errorf("DeleteInstrument in use = %v, want ErrEntityInUse", err)
	}
	// The setup is referenced both by a trade and a feature set.
	if err := rb.DeleteSetup("breakout"); !apperrors.Is(err, apperrors.ErrEntityInUse) {
		t.Errorf("DeleteSetup in use = %v, want ErrEntityInUse", err)
	}

	rb.FindTrade(1).Has.Add("gap")
	if err := rb.DeleteFeature("gap"); !apperrors.Is(err, apperrors.ErrEntityInUse) {
		t.Errorf("DeleteFeature in use = %v, want ErrEntityInUse", err)
	}
}

func TestDeleteUnreferenced(t *testing.T) {
	rb := testBook()
	rb.Instruments = append(rb.Instruments, &models.Instrument{Name: "GOLD"})
	if err := rb.DeleteInstrument("GOLD"); err != nil {
		t.Fatalf("DeleteInstrument: %v", err)
	}
	if rb.FindInstrument("GOLD") != nil {
		t.Error("instrument survives delete")
	}

	if err := rb.DeleteInstrument("GOLD"); !apperrors.Is(err, apperrors.ErrNotFound) {
		t.Errorf("second delete = %v, want ErrNotFound", err)
	}
}

func TestFeatureNames(t *testing.T) {
	rb := testBook()

	// An empty setup-set offers the feature to every setup.
	names := rb.FeatureNames("pullback")
	if len(names) != 1 || names[0] != "gap" {
		t.Errorf("FeatureNames(pullback) = %v", names)
	}

	names = rb.FeatureNames("breakout")
	if len(names) != 2 {
		t.Errorf("FeatureNames(breakout) = %v", names)
	}

	names = rb.FeatureNames("")
	if len(names) != 2 {
		t.Errorf("FeatureNames(\"\") = %v", names)
	}
}

func TestNameListings(t *testing.T) {
	rb := testBook()
	if got := rb.InstrumentNames(); len(got) != 2 || got[0] != "DAX" {
		t.Errorf("InstrumentNames() = %v", got)
	}
	if got := rb.CurrencyNames(); len(got) != 2 {
		t.Errorf("CurrencyNames() = %v", got)
	}
	if got := rb.SetupNames(); len(got) != 2 {
		t.Errorf("SetupNames() = %v", got)
	}
}
