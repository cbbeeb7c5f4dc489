// Package store mirrors a loaded journal into a SQLite database so the
// records can be queried with ad-hoc SQL.
package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"roadbook/internal/roadbook"
)

// SQLiteStore is a write-through mirror of a RoadBook.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database and initializes the
// schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS account (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		capital REAL NOT NULL,
		neutral REAL NOT NULL,
		fixed INTEGER NOT NULL,
		copygraphs INTEGER NOT NULL,
		version REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS currencies (
		name TEXT PRIMARY KEY,
		forex TEXT,
		rate REAL
	);

	CREATE TABLE IF NOT EXISTS instruments (
		name TEXT PRIMARY KEY,
		alias TEXT,
		currency TEXT,
		pip REAL,
		stop_pips REAL,
		scale REAL,
		daily REAL,
		candle_h4 REAL,
		candle_144 REAL,
		spread REAL,
		spread_pm REAL
	);

	CREATE TABLE IF NOT EXISTS setups (
		name TEXT PRIMARY KEY,
		descr TEXT
	);

	CREATE TABLE IF NOT EXISTS features (
		name TEXT PRIMARY KEY,
		descr TEXT,
		setups TEXT
	);

	CREATE TABLE IF NOT EXISTS trades (
		id INTEGER PRIMARY KEY,
		instrument TEXT NOT NULL,
		setup TEXT,
		date_in DATE NOT NULL,
		direction TEXT NOT NULL,
		lots REAL NOT NULL,
		time_in TEXT,
		time_out TEXT,
		pts_in REAL NOT NULL,
		pts_out REAL NOT NULL,
		sys_out REAL,
		pts_stop REAL,
		euros REAL,
		euro_stop REAL,
		graph TEXT,
		notes TEXT,
		mistakes TEXT,
		features TEXT,
		points REAL
	);

	CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date_in);
	CREATE INDEX IF NOT EXISTS idx_trades_instrument ON trades(instrument);
	CREATE INDEX IF NOT EXISTS idx_trades_setup ON trades(setup);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Export replaces the mirror's contents with the given store's
// collections in one transaction.
func (s *SQLiteStore) Export(rb *roadbook.RoadBook) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning export: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"account", "currencies", "instruments", "setups", "features", "trades"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	a := rb.Account
	if _, err := tx.Exec(
		`INSERT INTO account (id, capital, neutral, fixed, copygraphs, version) VALUES (1, ?, ?, ?, ?, ?)`,
		a.Capital, a.Neutral, a.Fixed, a.CopyGraphs, a.Version,
	); err != nil {
		return fmt.Errorf("exporting account: %w", err)
	}

	for _, c := range rb.Currencies {
		if _, err := tx.Exec(
			`INSERT INTO currencies (name, forex, rate) VALUES (?, ?, ?)`,
			c.Name, c.Forex, c.Rate,
		); err != nil {
			return fmt.Errorf("exporting currency %s: %w", c.Name, err)
		}
	}

	for _, i := range rb.Instruments {
		if _, err := tx.Exec(
			`INSERT INTO instruments (name, alias, currency, pip, stop_pips, scale, daily, candle_h4, candle_144, spread, spread_pm)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i.Name, i.Alias, i.Currency, i.Pip, i.StopPips, i.Scale, i.Daily, i.CandleH4, i.Candle144, i.Spread, i.SpreadPM,
		); err != nil {
			return fmt.Errorf("exporting instrument %s: %w", i.Name, err)
		}
	}

	for _, st := range rb.Setups {
		if _, err := tx.Exec(
			`INSERT INTO setups (name, descr) VALUES (?, ?)`,
			st.Name, st.Descr,
		); err != nil {
			return fmt.Errorf("exporting setup %s: %w", st.Name, err)
		}
	}

	for _, f := range rb.Features {
		if _, err := tx.Exec(
			`INSERT INTO features (name, descr, setups) VALUES (?, ?, ?)`,
			f.Name, f.Descr, strings.Join(f.Setups.Sorted(), ";"),
		); err != nil {
			return fmt.Errorf("exporting feature %s: %w", f.Name, err)
		}
	}

	stmt, err := tx.Prepare(
		`INSERT INTO trades (id, instrument, setup, date_in, direction, lots, time_in, time_out,
		 pts_in, pts_out, sys_out, pts_stop, euros, euro_stop, graph, notes, mistakes, features, points)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing trade insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range rb.Trades {
		timeOut := ""
		if !t.TimeOut.IsZero() {
			timeOut = t.TimeOut.String()
		}
		if _, err := stmt.Exec(
			t.ID, t.Instrument, t.Setup, t.DateIn.Format("2006-01-02"), string(t.Dir), t.Lots,
			t.TimeIn.String(), timeOut, t.PtsIn, t.PtsOut, t.SysOut, t.PtsStop,
			t.Euros, t.EuroStop, t.Graph, t.Notes, t.Mistakes,
			strings.Join(t.Has.Sorted(), ";"), t.Points(),
		); err != nil {
			return fmt.Errorf("exporting trade %d: %w", t.ID, err)
		}
	}

	return tx.Commit()
}

// CountTrades returns the number of mirrored trades.
func (s *SQLiteStore) CountTrades() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM trades").Scan(&n)
	return n, err
}

// TradesBetween returns the mirrored trade ids with an entry date in
// the inclusive range, ordered by date.
func (s *SQLiteStore) TradesBetween(since, until time.Time) ([]int, error) {
	rows, err := s.db.Query(
		"SELECT id FROM trades WHERE date_in >= ? AND date_in <= ? ORDER BY date_in, id",
		since.Format("2006-01-02"), until.Format("2006-01-02"),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// PnLBySetup sums the mirrored euro P/L per setup name.
func (s *SQLiteStore) PnLBySetup() (map[string]float64, error) {
	rows, err := s.db.Query("SELECT setup, COALESCE(SUM(euros), 0) FROM trades GROUP BY setup")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]float64{}
	for rows.Next() {
		var setup string
		var pnl float64
		if err := rows.Scan(&setup, &pnl); err != nil {
			return nil, err
		}
		out[setup] = pnl
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
