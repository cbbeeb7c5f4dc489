package store

import (
	"path/filepath"
	"testing"
	"time"

	"roadbook/internal/csvmap"
	"roadbook/internal/models"
	"roadbook/internal/roadbook"
)

func testBook() *roadbook.RoadBook {
	rb := roadbook.New()
	rb.Currencies = []*models.Currency{{Name: "EUR"}}
	rb.Instruments = []*models.Instrument{{Name: "DAX", Currency: "EUR", Scale: 260000}}
	rb.Setups = []*models.Setup{{Name: "breakout"}}
	rb.Features = []*models.Feature{{Name: "news", Setups: csvmap.NewStringSet("breakout")}}
	rb.Trades = []*models.Trade{
		{
			ID: 1, Instrument: "DAX", Setup: "breakout",
			DateIn: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			Dir:    models.Long, Lots: 1,
			TimeIn: csvmap.Clock{Hour: 9},
			PtsIn:  1000, PtsOut: 1050, Euros: 50,
			Has: csvmap.NewStringSet("news"),
		},
		{
			ID: 2, Instrument: "DAX", Setup: "breakout",
			DateIn: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
			Dir:    models.Short, Lots: 2,
			TimeIn: csvmap.Clock{Hour: 14},
			PtsIn:  1050, PtsOut: 1080, Euros: -60,
			Has: csvmap.StringSet{},
		},
	}
	return rb
}

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "roadbook.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestExportAndCount(t *testing.T) {
	s := newTestStore(t)
	rb := testBook()

	if err := s.Export(rb); err != nil {
		t.Fatalf("Export: %v", err)
	}
	n, err := s.CountTrades()
	if err != nil {
		t.Fatalf("CountTrades: %v", err)
	}
	if n != 2 {
		t.Errorf("CountTrades = %d, want 2", n)
	}
}

func TestExportReplacesPreviousContents(t *testing.T) {
	s := newTestStore(t)
	rb := testBook()

	if err := s.Export(rb); err != nil {
		t.Fatalf("first Export: %v", err)
	}
	rb.Trades = rb.Trades[:1]
	if err := s.Export(rb); err != nil {
		t.Fatalf("second Export: %v", err)
	}

	n, err := s.CountTrades()
	if err != nil {
		t.Fatalf("CountTrades: %v", err)
	}
	if n != 1 {
		t.Errorf("CountTrades after re-export = %d, want 1", n)
	}
}

func TestTradesBetween(t *testing.T) {
	s := newTestStore(t)
	if err := s.Export(testBook()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	ids, err := s.TradesBetween(
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("TradesBetween: %v", err)
	}
	if len(ids) != 1 || ids[0] != 1 {
		t.Errorf("TradesBetween = %v, want [1]", ids)
	}
}

func TestPnLBySetup(t *testing.T) {
	s := newTestStore(t)
	if err := s.Export(testBook()); err != nil {
		t.Fatalf("Export: %v", err)
	}

	pnl, err := s.PnLBySetup()
	if err != nil {
		t.Fatalf("PnLBySetup: %v", err)
	}
	if pnl["breakout"] != -10 {
		t.Errorf("PnLBySetup[breakout] = %v, want -10", pnl["breakout"])
	}
}
