package dataset

import (
	"errors"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// ErrNotLoaded indicates no dataset has been loaded into the store yet.
var ErrNotLoaded = errors.New("dataset: no dataset loaded")

// Store is the single-slot holder for the process's Table. The slot is
// replaced atomically so readers never observe a partially-loaded table.
// It is constructor-injected into the registry and dispatcher instead of
// living as ambient package state, which makes the not-yet-loaded case an
// explicit, testable error.
type Store struct {
	table  atomic.Pointer[Table]
	logger zerolog.Logger
}

// NewStore constructs an empty Store.
func NewStore(logger zerolog.Logger) *Store {
	return &Store{logger: logger}
}

// Load parses the file at path and publishes the resulting table. The
// previous table, if any, is replaced in a single atomic swap.
func (s *Store) Load(path string) (*Table, error) {
	tbl, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.table.Store(tbl)
	rows, cols := tbl.Shape()
	s.logger.Info().
		Str("path", path).
		Str("dataset_id", tbl.ID()).
		Int("rows", rows).
		Int("cols", cols).
		Msg("dataset loaded")
	return tbl, nil
}

// Get returns the current table, or ErrNotLoaded before the first Load.
func (s *Store) Get() (*Table, error) {
	tbl := s.table.Load()
	if tbl == nil {
		return nil, ErrNotLoaded
	}
	return tbl, nil
}

// Loaded reports whether a table has been published.
func (s *Store) Loaded() bool {
	return s.table.Load() != nil
}
