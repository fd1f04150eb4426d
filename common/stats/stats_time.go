package stats

import (
	"time"
)

// StatsTime is the clock Latency instruments read; tests swap in a fixed one.
type StatsTime interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

type wallClock struct{}

func (wallClock) Now() time.Time                  { return time.Now() }
func (wallClock) Since(t time.Time) time.Duration { return time.Since(t) }

func DefaultStatsTime() StatsTime { return wallClock{} }

type fixedClock struct {
	now   time.Time
	since time.Duration
}

func (c fixedClock) Now() time.Time                { return c.now }
func (c fixedClock) Since(time.Time) time.Duration { return c.since }

// NewTestTime returns a clock that always reads now and reports since as elapsed.
func NewTestTime(now time.Time, since time.Duration) StatsTime {
	return fixedClock{now, since}
}
