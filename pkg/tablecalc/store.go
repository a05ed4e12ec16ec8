package tablecalc

import (
	"sync"
	"sync/atomic"
)

// Store holds the current Snapshot of a workbook. Readers never block and
// always see a grid together with the catalog discovered from it.
type Store struct {
	current atomic.Pointer[Snapshot]
	// mu serialises reloads; readers do not take it.
	mu   sync.Mutex
	path string
	opts Options
}

// NewStore returns a Store that loads path with opts on Reload.
func NewStore(path string, opts Options) *Store {
	return &Store{path: path, opts: opts}
}

// Path returns the workbook path reloads read from.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// Current returns the loaded snapshot or ErrNotLoaded.
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Set installs snap as the current snapshot.
func (s *Store) Set(snap *Snapshot) {
	s.current.Store(snap)
}

// Reload loads the configured workbook and swaps it in. On failure the
// previous snapshot stays current.
func (s *Store) Reload() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reload(s.path)
}

// ReloadFrom switches the store to path and loads it.
func (s *Store) ReloadFrom(path string) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.reload(path)
	if err == nil {
		s.path = path
	}
	return snap, err
}

func (s *Store) reload(path string) (*Snapshot, error) {
	log := s.opts.logger()
	snap, err := Load(path, s.opts)
	if err != nil {
		log.Error("workbook reload failed", "path", path, "error", err)
		return nil, err
	}
	prev := s.current.Swap(snap)
	if prev != nil {
		log.Info("workbook reloaded", "path", path, "revision", snap.Revision, "previous", prev.Revision, "tables", len(snap.catalog.Tables))
	} else {
		log.Info("workbook loaded", "path", path, "revision", snap.Revision, "tables", len(snap.catalog.Tables))
	}
	return snap, nil
}
