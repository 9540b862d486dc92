package library

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Clock abstracts time retrieval so business logic is deterministic in
// tests. Timestamps are persisted as milliseconds since epoch.
type Clock interface {
	Now() time.Time
}

// RealClock returns wall-clock time clamped so that successive calls
// within a process never go backwards, even across NTP adjustments.
type RealClock struct {
	mu   sync.Mutex
	last time.Time
}

func NewRealClock() *RealClock { return &RealClock{} }

func (c *RealClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if now.Before(c.last) {
		return c.last
	}
	c.last = now
	return now
}

// IDGenerator abstracts unique ID generation so tests are deterministic.
type IDGenerator interface {
	New() string
}

// UUIDGenerator produces random UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.New().String() }
