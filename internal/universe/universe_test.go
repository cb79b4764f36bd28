package universe

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefaultSymbols(t *testing.T) {
	syms := DefaultSymbols()
	if len(syms) < 300 {
		t.Fatalf("expected a broad universe, got %d symbols", len(syms))
	}
	if !slices.IsSorted(syms) {
		t.Error("expected sorted symbols")
	}
	for i := 1; i < len(syms); i++ {
		if syms[i] == syms[i-1] {
			t.Errorf("duplicate symbol %s", syms[i])
		}
	}
	for _, want := range []string{"AAPL", "BF-B", "SPGI", "LDOS"} {
		if _, found := slices.BinarySearch(syms, want); !found {
			t.Errorf("expected %s in default universe", want)
		}
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "stocks.txt")
	in := []string{"AAPL", "MSFT", "NVDA"}
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !slices.Equal(got, in) {
		t.Errorf("expected %v, got %v", in, got)
	}
}

func TestLoadParsesAndMerges(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("a.txt", "# tech\naapl\n\n  msft  # software\n")
	write("sub/b.txt", "MSFT\ntsla\n")
	write("sub/deep/c.txt", "xom\n")
	write("ignored.csv", "IBM\n")

	got, err := Load(filepath.Join(dir, "**", "*.txt"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []string{"AAPL", "MSFT", "TSLA", "XOM"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestLoadMissing(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}

	got, err := Load(filepath.Join(dir, "*.txt"))
	if err != nil {
		t.Fatalf("empty glob should not fail: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no symbols, got %v", got)
	}
}
