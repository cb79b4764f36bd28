package main

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"RetestSentinel/internal/universe"
)

func TestLoadUniverseSeedsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stocks.txt")
	symbols, err := loadUniverse([]string{path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !slices.Equal(symbols, universe.DefaultSymbols()) {
		t.Error("expected the default universe")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected seeded file: %v", err)
	}
}

func TestLoadUniverseEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stocks.txt")
	if err := os.WriteFile(path, []byte("# nothing yet\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadUniverse([]string{path}); err == nil {
		t.Error("expected error for empty universe")
	}
}

func TestUpperAll(t *testing.T) {
	if got := upperAll([]string{"aapl", " msft "}); !slices.Equal(got, []string{"AAPL", "MSFT"}) {
		t.Errorf("unexpected %v", got)
	}
}
