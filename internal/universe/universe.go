// Package universe loads and writes the list of tickers the scanner covers.
package universe

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Save writes one ticker per line to path, creating parent directories.
func Save(path string, symbols []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create universe dir: %w", err)
		}
	}
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(s)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write universe: %w", err)
	}
	return nil
}

// Load expands each pattern (doublestar globs such as "lists/**/*.txt") and
// reads tickers from every matched file. Blank lines and '#' comments are
// ignored; tickers are upper-cased and kept in first-seen order. A pattern
// without glob metacharacters must name an existing file.
func Load(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var symbols []string
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		files, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("expand %q: %w", pattern, err)
		}
		if len(files) == 0 && !hasMeta(pattern) {
			return nil, fmt.Errorf("universe file %s: %w", pattern, os.ErrNotExist)
		}
		slices.Sort(files)
		for _, f := range files {
			tickers, err := readFile(f)
			if err != nil {
				return nil, err
			}
			for _, t := range tickers {
				if !seen[t] {
					seen[t] = true
					symbols = append(symbols, t)
				}
			}
		}
	}
	return symbols, nil
}

func readFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open universe file: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.ToUpper(strings.TrimSpace(line))
		if line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return out, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
