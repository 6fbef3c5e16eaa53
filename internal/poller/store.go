package poller

import (
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/radar-overlay-viewer/internal/domain"
)

type held struct {
	desc      *domain.Descriptor
	fetchedAt time.Time
}

// Store provides lock-free access to the latest descriptor. Writes replace
// the descriptor wholesale; whichever write completes last wins.
type Store struct {
	clock clockwork.Clock
	cur   atomic.Pointer[held]
}

// NewStore creates an empty Store using the given time source.
func NewStore(clock clockwork.Clock) *Store {
	return &Store{clock: clock}
}

// Get returns the held descriptor, or nil before the first successful fetch.
func (s *Store) Get() *domain.Descriptor {
	h := s.cur.Load()
	if h == nil {
		return nil
	}
	return h.desc
}

// Set atomically replaces the held descriptor.
func (s *Store) Set(d *domain.Descriptor) {
	s.cur.Store(&held{desc: d, fetchedAt: s.clock.Now()})
}

// AgeSeconds returns seconds since the held descriptor was fetched, or -1 if
// none is held.
func (s *Store) AgeSeconds() float64 {
	h := s.cur.Load()
	if h == nil {
		return -1
	}
	return s.clock.Since(h.fetchedAt).Seconds()
}
