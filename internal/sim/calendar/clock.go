package calendar

import (
	"sync"
	"time"
)

// GameClock follows an authoritative game-minute count and extrapolates
// between syncs at 1 game-minute per elapsed real second.
//
// Before the first sync the clock reads 0. Syncs are last-write-wins: an
// out-of-order or earlier value is accepted unconditionally, keeping the
// clock authority-following rather than authority-arbitrating.
type GameClock struct {
	mu       sync.Mutex
	synced   bool
	baseMin  int64
	baseReal time.Time
}

func NewGameClock() *GameClock {
	return &GameClock{}
}

// Sync overwrites the clock base with an authoritative minute count observed
// at real time `at`.
func (c *GameClock) Sync(minutes int64, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.synced = true
	c.baseMin = minutes
	c.baseReal = at
}

// Synced reports whether a sync has been received.
func (c *GameClock) Synced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.synced
}

// ReadAt returns the extrapolated game-minute count at real time `now`.
// The time source is injected so callers can read without real delays.
func (c *GameClock) ReadAt(now time.Time) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.synced {
		return 0
	}
	elapsed := now.Sub(c.baseReal)
	if elapsed < 0 {
		return c.baseMin
	}
	return c.baseMin + int64(elapsed/time.Second)
}
