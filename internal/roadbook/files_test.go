package roadbook

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "roadbook/internal/errors"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	rb := testBook()
	rb.Account.Capital = 25000
	rb.Trades[0].Has.Add("news")
	rb.Trades[0].Notes = "held through lunch; exited on close"

	if err := rb.Save(dir, false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rb.Dirty() {
		t.Error("store still dirty after save")
	}

	loaded := New()
	rowErrs, err := loaded.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rowErrs) != 0 {
		t.Fatalf("unexpected row errors: %v", rowErrs)
	}

	if loaded.Account.Capital != 25000 {
		t.Errorf("account capital = %v", loaded.Account.Capital)
	}
	if len(loaded.Trades) != len(rb.Trades) {
		t.Fatalf("got %d trades, want %d", len(loaded.Trades), len(rb.Trades))
	}
	lt := loaded.FindTrade(1)
	if lt == nil {
		t.Fatal("trade 1 missing after reload")
	}
	if !lt.HasFeature("news") {
		t.Error("feature tag lost")
	}
	if lt.Notes != rb.Trades[0].Notes {
		t.Errorf("notes = %q", lt.Notes)
	}
	if lt.Pts != 10 {
		t.Errorf("points cache = %v, want 10", lt.Pts)
	}
	if len(loaded.Instruments) != len(rb.Instruments) {
		t.Errorf("got %d instruments, want %d", len(loaded.Instruments), len(rb.Instruments))
	}
}

func TestSaveCreatesImagesDir(t *testing.T) {
	dir := t.TempDir()
	rb := testBook()
	if err := rb.Save(dir, false); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if fi, err := os.Stat(filepath.Join(dir, ImagesDir)); err != nil || !fi.IsDir() {
		t.Error("images directory not created")
	}
}

func TestSaveBacksUpExistingFiles(t *testing.T) {
	dir := t.TempDir()
	rb := testBook()
	if err := rb.Save(dir, false); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := rb.Save(dir, false); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, TradesFile+BackupSuffix)); err != nil {
		t.Error("missing trades backup")
	}
	if _, err := os.Stat(filepath.Join(dir, AccountFile+BackupSuffix)); err != nil {
		t.Error("missing account backup")
	}
}

func TestSaveAsLeavesBindingUntouched(t *testing.T) {
	home := t.TempDir()
	other := t.TempDir()

	rb := testBook()
	if err := rb.Save(home, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	rb.MarkDirty()
	if err := rb.Save(other, false); err != nil {
		t.Fatalf("save-as: %v", err)
	}
	if rb.Dir() != home {
		t.Errorf("bound dir = %q, want %q", rb.Dir(), home)
	}
	if !rb.Dirty() {
		t.Error("save-as cleared the dirty flag")
	}
	if !IsRoadBook(other) {
		t.Error("save-as target is not a complete journal")
	}
}

func TestFilteredSave(t *testing.T) {
	dir := t.TempDir()
	rb := testBook()
	rb.FilteredTrades = rb.Trades[:1]

	if err := rb.Save(dir, true); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := New()
	if _, err := loaded.Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Trades) != 1 {
		t.Errorf("filtered save kept %d trades, want 1", len(loaded.Trades))
	}
}

func TestIsRoadBook(t *testing.T) {
	dir := t.TempDir()
	if IsRoadBook(dir) {
		t.Error("empty directory counted as a journal")
	}
	if err := os.WriteFile(filepath.Join(dir, TradesFile), []byte("\"TRADE\"\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !IsRoadBook(dir) {
		t.Error("directory with trades file not recognized")
	}
}

func TestLoadMissingAccount(t *testing.T) {
	dir := t.TempDir()
	rb := testBook()
	if err := rb.Save(dir, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Truncate the account file to header only.
	data, err := os.ReadFile(filepath.Join(dir, AccountFile))
	if err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(string(data), "\r\n", 2)[0] + "\r\n"
	if err := os.WriteFile(filepath.Join(dir, AccountFile), []byte(header), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err = New().Load(dir)
	if !apperrors.Is(err, apperrors.ErrNoAccount) {
		t.Errorf("Load = %v, want ErrNoAccount", err)
	}
}

func TestLoadIsolatesBadTradeRows(t *testing.T) {
	dir := t.TempDir()
	rb := testBook()
	if err := rb.Save(dir, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Append a row with an unparseable date.
	path := filepath.Join(dir, TradesFile)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatal(err)
	}
	bad := `"9";"DAX";"breakout";"someday";"Long";"1";"10:00";"";"100";"110";"";"";"";"";"";"";"";""` + "\r\n"
	if _, err := f.WriteString(bad); err != nil {
		t.Fatal(err)
	}
	f.Close()

	loaded := New()
	rowErrs, err := loaded.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(rowErrs) != 1 {
		t.Fatalf("got %d row errors, want 1", len(rowErrs))
	}
	if len(loaded.Trades) != 2 {
		t.Errorf("bad row leaked into the store: %d trades", len(loaded.Trades))
	}
}

func TestLoadNoDirectory(t *testing.T) {
	if _, err := New().Load(""); !apperrors.Is(err, apperrors.ErrNoDirectory) {
		t.Errorf("Load(\"\") = %v, want ErrNoDirectory", err)
	}
}

func TestGraphPaths(t *testing.T) {
	dir := t.TempDir()
	rb := testBook()
	if err := rb.Save(dir, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	tr := rb.FindTrade(1)
	want := filepath.Join(dir, ImagesDir, "trade1dax.png")
	if got := rb.MakeGraphPath(tr); got != want {
		t.Errorf("MakeGraphPath = %q, want %q", got, want)
	}
}

func TestSaveAsCopiesGraphs(t *testing.T) {
	home := t.TempDir()
	other := t.TempDir()

	rb := testBook()
	rb.Account.CopyGraphs = true
	if err := rb.Save(home, false); err != nil {
		t.Fatalf("Save: %v", err)
	}

	// Place a chart image where the saved journal expects it.
	tr := rb.FindTrade(1)
	tr.Graph = rb.MakeGraphPath(tr)
	if err := os.WriteFile(tr.Graph, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := rb.Save(other, false); err != nil {
		t.Fatalf("save-as: %v", err)
	}
	if _, err := os.Stat(filepath.Join(other, ImagesDir, filepath.Base(tr.Graph))); err != nil {
		t.Error("graph image not copied to the new journal")
	}
}
