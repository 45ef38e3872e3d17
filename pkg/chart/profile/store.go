package profile

import "sync/atomic"

// Store publishes an immutable profile snapshot for concurrent readers.
// Readers call [Store.Load] once per operation so every computation sees one
// consistent profile, even across a reload.
type Store struct {
	current atomic.Pointer[Profile]
}

// NewStore returns a store holding p, or [Default] when p is nil.
func NewStore(p *Profile) *Store {
	if p == nil {
		p = Default()
	}
	s := &Store{}
	s.current.Store(p)
	return s
}

// Load returns the current snapshot. The caller must not modify it.
func (s *Store) Load() *Profile {
	return s.current.Load()
}

// Swap validates next and publishes it, returning the previous snapshot.
// An invalid profile is rejected and the current snapshot stays in place.
func (s *Store) Swap(next *Profile) (*Profile, error) {
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return s.current.Swap(next), nil
}
