package timeline

import (
	"sync"
	"time"
)

// Clock abstracts time retrieval so business logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator produces snapshot ids. Ids must be unique and strictly
// increasing for the lifetime of the process.
type IDGenerator interface {
	Next(now time.Time) int64
}

// MonotonicIDGenerator derives ids from the capture time in unix
// milliseconds. When two captures land in the same millisecond (or the wall
// clock steps backwards) the id is bumped past the previous one, so ids
// never collide or regress even though the timestamp field may.
type MonotonicIDGenerator struct {
	mu   sync.Mutex
	last int64
}

func NewMonotonicIDGenerator() *MonotonicIDGenerator {
	return &MonotonicIDGenerator{}
}

func (g *MonotonicIDGenerator) Next(now time.Time) int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := now.UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
