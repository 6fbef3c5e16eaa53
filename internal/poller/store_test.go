package poller

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/radar-overlay-viewer/internal/domain"
)

func TestStore_EmptyUntilFirstSet(t *testing.T) {
	s := NewStore(clockwork.NewFakeClock())
	assert.Nil(t, s.Get())
	assert.Equal(t, float64(-1), s.AgeSeconds())
}

func TestStore_SetReplacesWholesale(t *testing.T) {
	s := NewStore(clockwork.NewFakeClock())

	d1 := &domain.Descriptor{Timestamp: "t1", Bounds: domain.DefaultBounds}
	s.Set(d1)
	assert.Same(t, d1, s.Get())

	d2 := &domain.Descriptor{Timestamp: "t2", Bounds: domain.Bounds{{10, -120}, {40, -70}}}
	s.Set(d2)
	assert.Same(t, d2, s.Get())
}

func TestStore_AgeTracksClock(t *testing.T) {
	clk := clockwork.NewFakeClock()
	s := NewStore(clk)

	s.Set(&domain.Descriptor{Timestamp: "t1", Bounds: domain.DefaultBounds})
	assert.Equal(t, float64(0), s.AgeSeconds())

	clk.Advance(30 * time.Second)
	assert.Equal(t, float64(30), s.AgeSeconds())
}
