// Package position tracks open paper positions and sizes new ones.
package position

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"RetestSentinel/internal/model"
)

var (
	ErrPositionExists = errors.New("position already open")
	ErrNoPosition     = errors.New("no open position")
)

// Store holds open positions keyed by symbol with concurrency safety.
// Every mutation is persisted before it returns.
type Store struct {
	mu       sync.Mutex
	state    *model.PositionState
	filePath string
}

// NewStore creates a Store, loading existing state from disk.
func NewStore(filePath string) (*Store, error) {
	state, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Store{state: state, filePath: filePath}, nil
}

// Has reports whether symbol has an open position.
func (s *Store) Has(symbol string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.state.Positions[symbol]
	return ok
}

// Get returns a copy of the open position for symbol.
func (s *Store) Get(symbol string) (model.Position, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.Positions[symbol]
	if !ok {
		return model.Position{}, false
	}
	return *p, true
}

// Open records a new position. It fails with ErrPositionExists when the
// symbol is already held.
func (s *Store) Open(p model.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.state.Positions[p.Symbol]; ok {
		return fmt.Errorf("%s: %w", p.Symbol, ErrPositionExists)
	}
	s.state.Positions[p.Symbol] = &p
	if err := s.save(); err != nil {
		delete(s.state.Positions, p.Symbol)
		return err
	}
	return nil
}

// Close removes and returns the position for symbol.
func (s *Store) Close(symbol string) (model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.state.Positions[symbol]
	if !ok {
		return model.Position{}, fmt.Errorf("%s: %w", symbol, ErrNoPosition)
	}
	delete(s.state.Positions, symbol)
	if err := s.save(); err != nil {
		s.state.Positions[symbol] = p
		return model.Position{}, err
	}
	return *p, nil
}

// List returns copies of all open positions ordered by symbol.
func (s *Store) List() []model.Position {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Position, 0, len(s.state.Positions))
	for _, p := range s.state.Positions {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

func (s *Store) save() error {
	return SaveState(s.filePath, s.state)
}
