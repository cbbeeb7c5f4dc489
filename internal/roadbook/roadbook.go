// Package roadbook holds the in-memory relational store of the trade
// journal: the five entity collections, their referential-integrity
// rules and the derived trade analytics.
package roadbook

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"roadbook/internal/csvmap"

	apperrors "roadbook/internal/errors"
	"roadbook/internal/models"
)

// RoadBook owns the journal's record collections. Cross-references are
// by name; missing referenced entities are created as bare placeholders
// so every name appearing on a trade or instrument resolves.
type RoadBook struct {
	Account     models.Account
	Currencies  []*models.Currency
	Instruments []*models.Instrument
	Setups      []*models.Setup
	Features    []*models.Feature
	Trades      []*models.Trade

	// FilteredTrades is the current filter result, used by the
	// filtered-save path. Nil means no filter is active.
	FilteredTrades []*models.Trade

	// Logger reports non-fatal save problems such as failed chart
	// image copies.
	Logger zerolog.Logger

	dir   string
	dirty bool
}

// New returns an empty store with a default account.
func New() *RoadBook {
	return &RoadBook{Account: models.DefaultAccount(), Logger: zerolog.Nop()}
}

// Dir is the directory the store is bound to, empty when unbound.
func (rb *RoadBook) Dir() string {
	return rb.dir
}

// Dirty reports whether the store has unsaved mutations.
func (rb *RoadBook) Dirty() bool {
	return rb.dirty
}

// MarkDirty records that a mutation happened.
func (rb *RoadBook) MarkDirty() {
	rb.dirty = true
}

// NextID returns 1 + the highest trade id currently in the store. The
// counter is recomputed from live data, never persisted, so deleting the
// trade with the maximum id frees that id for reuse.
func (rb *RoadBook) NextID() int {
	max := 0
	for _, t := range rb.Trades {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// FindInstrument returns the instrument with the exact name, or nil.
func (rb *RoadBook) FindInstrument(name string) *models.Instrument {
	for _, i := range rb.Instruments {
		if i.Name == name {
			return i
		}
	}
	return nil
}

// FindSetup returns the setup with the exact name, or nil.
func (rb *RoadBook) FindSetup(name string) *models.Setup {
	for _, s := range rb.Setups {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// FindFeature returns the feature with the exact name, or nil.
func (rb *RoadBook) FindFeature(name string) *models.Feature {
	for _, f := range rb.Features {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// FindCurrency returns the currency with the exact name, or nil.
func (rb *RoadBook) FindCurrency(name string) *models.Currency {
	for _, c := range rb.Currencies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindTrade returns the trade with the given id, or nil.
func (rb *RoadBook) FindTrade(id int) *models.Trade {
	for _, t := range rb.Trades {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// InstrumentNames lists the instrument keys in collection order.
func (rb *RoadBook) InstrumentNames() []string {
	names := make([]string, len(rb.Instruments))
	for i, in := range rb.Instruments {
		names[i] = in.Name
	}
	return names
}

// SetupNames lists the setup keys in collection order.
func (rb *RoadBook) SetupNames() []string {
	names := make([]string, len(rb.Setups))
	for i, s := range rb.Setups {
		names[i] = s.Name
	}
	return names
}

// CurrencyNames lists the currency keys in collection order.
func (rb *RoadBook) CurrencyNames() []string {
	names := make([]string, len(rb.Currencies))
	for i, c := range rb.Currencies {
		names[i] = c.Name
	}
	return names
}

// FeatureNames lists feature keys, optionally scoped to the features
// offered for the given setup. A feature with an empty setup-set is
// offered for every setup.
func (rb *RoadBook) FeatureNames(setup string) []string {
	var names []string
	for _, f := range rb.Features {
		if setup == "" || len(f.Setups) == 0 || f.Setups.Has(setup) {
			names = append(names, f.Name)
		}
	}
	return names
}

// DefaultInstrument upserts a bare instrument for the name, keeping the
// collection unchanged when the name is empty or already present.
func (rb *RoadBook) DefaultInstrument(name string) {
	if name == "" || rb.FindInstrument(name) != nil {
		return
	}
	rb.Instruments = append(rb.Instruments, &models.Instrument{Name: name})
}

// DefaultSetup upserts a bare setup for the name.
func (rb *RoadBook) DefaultSetup(name string) {
	if name == "" || rb.FindSetup(name) != nil {
		return
	}
	rb.Setups = append(rb.Setups, &models.Setup{Name: name})
}

// DefaultCurrency upserts a bare currency for the name.
func (rb *RoadBook) DefaultCurrency(name string) {
	if name == "" || rb.FindCurrency(name) != nil {
		return
	}
	rb.Currencies = append(rb.Currencies, &models.Currency{Name: name})
}

// DefaultFeature upserts a bare feature for the name, scoping it to the
// given setup when one is supplied.
func (rb *RoadBook) DefaultFeature(name, setup string) {
	if name == "" {
		return
	}
	f := rb.FindFeature(name)
	if f != nil {
		return
	}
	f = &models.Feature{Name: name, Setups: csvmap.StringSet{}}
	if setup != "" {
		f.Setups.Add(setup)
	}
	rb.Features = append(rb.Features, f)
}

// fillTradeDefaults wires one trade into the store: refreshes its points
// cache and creates placeholder instrument and setup records for the
// names it references.
func (rb *RoadBook) fillTradeDefaults(t *models.Trade) {
	t.Pts = t.Points()
	rb.DefaultInstrument(t.Instrument)
	rb.DefaultSetup(t.Setup)
}

// fillDefaults guarantees every name referenced by a loaded record has a
// matching entity.
func (rb *RoadBook) fillDefaults() {
	rb.fillInstrumentDefaults()
	rb.fillTradesDefaults()
}

func (rb *RoadBook) fillInstrumentDefaults() {
	for _, i := range rb.Instruments {
		rb.DefaultCurrency(i.Currency)
	}
}

func (rb *RoadBook) fillTradesDefaults() {
	for _, t := range rb.Trades {
		rb.fillTradeDefaults(t)
	}
}

// RenameInstrument renames an instrument and rewrites every trade that
// references it. Referencing records never observe an intermediate
// state: rewrites happen synchronously before the key itself changes.
func (rb *RoadBook) RenameInstrument(oldName, newName string) {
	for _, t := range rb.Trades {
		if t.Instrument == oldName {
			t.Instrument = newName
		}
	}
	if i := rb.FindInstrument(oldName); i != nil {
		i.Name = newName
	}
	rb.dirty = true
}

// RenameCurrency renames a currency and rewrites every instrument that
// references it.
func (rb *RoadBook) RenameCurrency(oldName, newName string) {
	for _, i := range rb.Instruments {
		if i.Currency == oldName {
			i.Currency = newName
		}
	}
	if c := rb.FindCurrency(oldName); c != nil {
		c.Name = newName
	}
	rb.dirty = true
}

// RenameSetup renames a setup, rewriting every trade's setup field and
// every feature's setup-set entry.
func (rb *RoadBook) RenameSetup(oldName, newName string) {
	for _, t := range rb.Trades {
		if t.Setup == oldName {
			t.Setup = newName
		}
	}
	for _, f := range rb.Features {
		if f.Setups == nil {
			f.Setups = csvmap.StringSet{}
		}
		if f.Setups.Has(oldName) {
			f.Setups.Remove(oldName)
			f.Setups.Add(newName)
		}
	}
	if s := rb.FindSetup(oldName); s != nil {
		s.Name = newName
	}
	rb.dirty = true
}

// RenameFeature renames a feature and rewrites every trade's tag set.
func (rb *RoadBook) RenameFeature(oldName, newName string) {
	for _, t := range rb.Trades {
		if t.Has == nil {
			t.Has = csvmap.StringSet{}
		}
		if t.Has.Has(oldName) {
			t.Has.Remove(oldName)
			t.Has.Add(newName)
		}
	}
	if f := rb.FindFeature(oldName); f != nil {
		f.Name = newName
	}
	rb.dirty = true
}

// SetupInUse reports whether any trade references the setup or any
// feature's setup-set contains it.
func (rb *RoadBook) SetupInUse(name string) bool {
	for _, t := range rb.Trades {
		if t.Setup == name {
			return true
		}
	}
	for _, f := range rb.Features {
		if f.Setups != nil && f.Setups.Has(name) {
			return true
		}
	}
	return false
}

// InstrumentInUse reports whether any trade references the instrument.
func (rb *RoadBook) InstrumentInUse(name string) bool {
	for _, t := range rb.Trades {
		if t.Instrument == name {
			return true
		}
	}
	return false
}

// FeatureInUse reports whether any trade's tag set contains the feature.
func (rb *RoadBook) FeatureInUse(name string) bool {
	for _, t := range rb.Trades {
		if t.Has != nil && t.Has.Has(name) {
			return true
		}
	}
	return false
}

// AddTrade validates the trade and commits it to the store, assigning
// the next free id when the trade has none. The store is not mutated
// when validation fails.
func (rb *RoadBook) AddTrade(t *models.Trade) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == 0 {
		t.ID = rb.NextID()
	}
	rb.fillTradeDefaults(t)
	rb.Trades = append(rb.Trades, t)
	rb.dirty = true
	return nil
}

// UpdateTrade validates the edit and value-copies it over the stored
// trade with the same id.
func (rb *RoadBook) UpdateTrade(t *models.Trade) error {
	if err := t.Validate(); err != nil {
		return err
	}
	cur := rb.FindTrade(t.ID)
	if cur == nil {
		return apperrors.ErrNotFound
	}
	cur.CopyFrom(t)
	rb.fillTradeDefaults(cur)
	rb.dirty = true
	return nil
}

// RemoveTrade deletes the trade with the given id.
func (rb *RoadBook) RemoveTrade(id int) error {
	for i, t := range rb.Trades {
		if t.ID == id {
			rb.Trades = append(rb.Trades[:i], rb.Trades[i+1:]...)
			rb.dirty = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// DeleteSetup removes a setup, refusing while it is referenced.
func (rb *RoadBook) DeleteSetup(name string) error {
	if rb.SetupInUse(name) {
		return apperrors.NewInUseError("setup", name)
	}
	for i, s := range rb.Setups {
		if s.Name == name {
			rb.Setups = append(rb.Setups[:i], rb.Setups[i+1:]...)
			rb.dirty = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// DeleteInstrument removes an instrument, refusing while it is
// referenced by a trade.
func (rb *RoadBook) DeleteInstrument(name string) error {
	if rb.InstrumentInUse(name) {
		return apperrors.NewInUseError("instrument", name)
	}
	for i, in := range rb.Instruments {
		if in.Name == name {
			rb.Instruments = append(rb.Instruments[:i], rb.Instruments[i+1:]...)
			rb.dirty = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// DeleteFeature removes a feature, refusing while any trade carries it.
func (rb *RoadBook) DeleteFeature(name string) error {
	if rb.FeatureInUse(name) {
		return apperrors.NewInUseError("feature", name)
	}
	for i, f := range rb.Features {
		if f.Name == name {
			rb.Features = append(rb.Features[:i], rb.Features[i+1:]...)
			rb.dirty = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func sortTrades(ts []*models.Trade) {
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].DateIn.Before(ts[j].DateIn)
	})
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
