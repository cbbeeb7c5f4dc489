package roadbook

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"roadbook/internal/csvmap"
	apperrors "roadbook/internal/errors"
	"roadbook/internal/models"
)

// Fixed names of the persisted journal layout.
const (
	AccountFile     = "account.csv"
	CurrenciesFile  = "currencies.csv"
	InstrumentsFile = "instruments.csv"
	SetupsFile      = "setups.csv"
	FeaturesFile    = "features.csv"
	TradesFile      = "trades.csv"
	ImagesDir       = "diarygraphs"
	BackupSuffix    = "~"
)

// IsRoadBook reports whether the directory holds a journal: the trades
// file at the expected path is the sole marker.
func IsRoadBook(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, TradesFile))
	return err == nil
}

// Load reads the six entity files from dir in dependency order and
// cross-links the collections. Row-level problems are collected and
// returned; only a missing account record or an unreadable file fails
// the load.
func (rb *RoadBook) Load(dir string) ([]csvmap.RowError, error) {
	if dir == "" {
		dir = rb.dir
	}
	if dir == "" {
		return nil, apperrors.ErrNoDirectory
	}
	rb.dir = dir

	errs, err := rb.loadAccount(filepath.Join(dir, AccountFile))
	if err != nil {
		return errs, err
	}
	for _, part := range []struct {
		file string
		load func(string) ([]csvmap.RowError, error)
	}{
		{CurrenciesFile, rb.loadCurrencies},
		{InstrumentsFile, rb.loadInstruments},
		{SetupsFile, rb.loadSetups},
		{FeaturesFile, rb.loadFeatures},
		{TradesFile, rb.loadTrades},
	} {
		partErrs, err := part.load(filepath.Join(dir, part.file))
		errs = append(errs, partErrs...)
		if err != nil {
			return errs, err
		}
	}
	rb.dirty = false
	return errs, nil
}

// Save writes the six entity files into dir, creating the directory and
// its images subdirectory when absent and backing up each existing file
// first. Saving to a directory other than the bound one leaves the
// bound path and the dirty flag untouched; with filtered set, the
// current filter result is written instead of the full trade
// collection.
func (rb *RoadBook) Save(dir string, filtered bool) error {
	savingAs := dir != "" && rb.dir != "" && dir != rb.dir
	if dir == "" {
		dir = rb.dir
	}
	if dir == "" {
		return apperrors.ErrNoDirectory
	}
	if rb.dir == "" {
		rb.dir = dir
	}

	if err := os.MkdirAll(filepath.Join(dir, ImagesDir), 0o755); err != nil {
		return apperrors.Wrap(err, "creating journal directory")
	}

	account := rb.Account
	if err := saveFile(filepath.Join(dir, AccountFile), []*models.Account{&account}, accountFields, nil, nil); err != nil {
		return err
	}
	if err := saveFile(filepath.Join(dir, CurrenciesFile), rb.Currencies, currencyFields, nil, nil); err != nil {
		return err
	}
	if err := saveFile(filepath.Join(dir, InstrumentsFile), rb.Instruments, instrumentFields, nil, nil); err != nil {
		return err
	}
	if err := saveFile(filepath.Join(dir, SetupsFile), rb.Setups, setupFields, nil, nil); err != nil {
		return err
	}
	if err := saveFile(filepath.Join(dir, FeaturesFile), rb.Features, featureFields, nil, nil); err != nil {
		return err
	}

	trades := rb.Trades
	if filtered && rb.FilteredTrades != nil {
		trades = rb.FilteredTrades
	}
	rb.fillGraphPaths(dir, trades)
	if err := saveFile(filepath.Join(dir, TradesFile), trades, tradeFields, tradeRenames, tradeSkips); err != nil {
		return err
	}

	if !savingAs {
		rb.dirty = false
	} else if rb.Account.CopyGraphs {
		rb.copyGraphs(dir, trades)
	}
	return nil
}

func (rb *RoadBook) loadAccount(path string) ([]csvmap.RowError, error) {
	accounts, errs, err := loadFile(path, accountFields, nil)
	if err != nil {
		return errs, err
	}
	if len(accounts) == 0 {
		return errs, &apperrors.LoadError{File: path, Err: apperrors.ErrNoAccount}
	}
	rb.Account = *accounts[0]
	return errs, nil
}

func (rb *RoadBook) loadCurrencies(path string) ([]csvmap.RowError, error) {
	currencies, errs, err := loadFile(path, currencyFields, nil)
	if err != nil {
		return errs, err
	}
	sort.SliceStable(currencies, func(i, j int) bool { return currencies[i].Name < currencies[j].Name })
	rb.Currencies = currencies
	return errs, nil
}

func (rb *RoadBook) loadInstruments(path string) ([]csvmap.RowError, error) {
	instruments, errs, err := loadFile(path, instrumentFields, nil)
	if err != nil {
		return errs, err
	}
	sort.SliceStable(instruments, func(i, j int) bool { return lessFold(instruments[i].Name, instruments[j].Name) })
	rb.Instruments = instruments
	rb.fillInstrumentDefaults()
	return errs, nil
}

func (rb *RoadBook) loadSetups(path string) ([]csvmap.RowError, error) {
	setups, errs, err := loadFile(path, setupFields, nil)
	if err != nil {
		return errs, err
	}
	sort.SliceStable(setups, func(i, j int) bool { return lessFold(setups[i].Name, setups[j].Name) })
	rb.Setups = setups
	return errs, nil
}

func (rb *RoadBook) loadFeatures(path string) ([]csvmap.RowError, error) {
	features, errs, err := loadFile(path, featureFields, nil)
	if err != nil {
		return errs, err
	}
	sort.SliceStable(features, func(i, j int) bool { return lessFold(features[i].Name, features[j].Name) })
	rb.Features = features
	return errs, nil
}

func (rb *RoadBook) loadTrades(path string) ([]csvmap.RowError, error) {
	trades, errs, err := loadFile(path, tradeFields, tradeRenames)
	if err != nil {
		return errs, err
	}
	sortTrades(trades)
	rb.Trades = trades
	rb.fillTradesDefaults()
	return errs, nil
}

func loadFile[T any](path string, fields []csvmap.Field[T], renames map[string]string) ([]*T, []csvmap.RowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &apperrors.LoadError{File: path, Err: err}
	}
	defer f.Close()

	records, errs, err := csvmap.LoadRecords(f, fields, renames)
	for i := range errs {
		errs[i].File = path
	}
	if err != nil {
		return records, errs, &apperrors.LoadError{File: path, Err: err}
	}
	return records, errs, nil
}

func saveFile[T any](path string, records []*T, fields []csvmap.Field[T], renames map[string]string, skips map[string]bool) error {
	backupFile(path)

	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrapf(err, "writing %s", path)
	}
	if err := csvmap.SaveRecords(f, records, fields, renames, skips); err != nil {
		f.Close()
		return apperrors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}

// backupFile copies an existing file to its backup sibling. The backup
// is overwritten on every save, never rotated; a missing original is
// not an error.
func backupFile(path string) {
	copyFile(path, path+BackupSuffix)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// MakeGraphPath derives the canonical chart-image path for a trade
// inside the journal's images directory.
func (rb *RoadBook) MakeGraphPath(t *models.Trade) string {
	return makeGraphPath(rb.dir, t)
}

func makeGraphPath(dir string, t *models.Trade) string {
	name := fmt.Sprintf("trade%d%s.png", t.ID, strings.ToLower(t.Instrument))
	return filepath.Join(dir, ImagesDir, name)
}

// GraphPath returns the trade's explicit chart-image path, falling back
// to the derived canonical one.
func (rb *RoadBook) GraphPath(t *models.Trade) string {
	if t.Graph != "" {
		return t.Graph
	}
	return rb.MakeGraphPath(t)
}

// fillGraphPaths records the derived image path on trades that have
// none, when the image file actually exists.
func (rb *RoadBook) fillGraphPaths(dir string, trades []*models.Trade) {
	for _, t := range trades {
		if t.Graph != "" {
			continue
		}
		p := makeGraphPath(dir, t)
		if _, err := os.Stat(p); err == nil {
			t.Graph = p
		}
	}
}

// copyGraphs copies each trade's referenced chart image into the target
// directory's images subdirectory. Copy failures are reported, not
// fatal: a saved-as journal without some images is still usable.
func (rb *RoadBook) copyGraphs(dir string, trades []*models.Trade) {
	for _, t := range trades {
		if t.Graph == "" {
			continue
		}
		if _, err := os.Stat(t.Graph); err != nil {
			continue
		}
		dst := makeGraphPath(dir, t)
		if sameFile(t.Graph, dst) {
			continue
		}
		if err := copyFile(t.Graph, dst); err != nil {
			rb.Logger.Warn().Err(err).Str("graph", t.Graph).Msg("failed to copy chart image")
		}
	}
}

func sameFile(a, b string) bool {
	ai, err := os.Stat(a)
	if err != nil {
		return false
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
