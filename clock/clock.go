// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the monotonic host clock that stake timestamps are taken from.
package clock

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/vechain/stakepool/thor"
)

// Clock reports the current tick.
type Clock interface {
	Now() uint64
}

// Ticker derives ticks from wall time: tick = (unix - launchTime) / tickInterval.
// It never goes backwards even if the wall clock does.
type Ticker struct {
	launchTime   uint64
	tickInterval uint64
	timeNow      func() time.Time

	mu   sync.Mutex
	last uint64
}

// NewTicker creates a ticker from the configured launch time and tick interval.
func NewTicker() *Ticker {
	return &Ticker{
		launchTime:   thor.LaunchTime(),
		tickInterval: thor.TickInterval(),
		timeNow:      time.Now,
	}
}

// Now implements Clock.
func (t *Ticker) Now() uint64 {
	tick := t.TickAt(uint64(t.timeNow().Unix()))

	t.mu.Lock()
	defer t.mu.Unlock()
	if tick > t.last {
		t.last = tick
	}
	return t.last
}

// TickAt converts a unix timestamp to a tick. Timestamps before launch map to 0.
func (t *Ticker) TickAt(unix uint64) uint64 {
	if unix <= t.launchTime || t.tickInterval == 0 {
		return 0
	}
	return (unix - t.launchTime) / t.tickInterval
}

// TimeOf returns the wall time at which tick starts.
func (t *Ticker) TimeOf(tick uint64) time.Time {
	return time.Unix(int64(t.launchTime+tick*t.tickInterval), 0)
}

// Manual is a clock driven by the caller, for solo runs and tests.
type Manual struct {
	now atomic.Uint64
}

// NewManual creates a manual clock starting at tick.
func NewManual(tick uint64) *Manual {
	m := &Manual{}
	m.now.Store(tick)
	return m
}

// Now implements Clock.
func (m *Manual) Now() uint64 {
	return m.now.Load()
}

// Set moves the clock to tick. Moving it backwards is allowed so that
// callers can exercise clock regressions.
func (m *Manual) Set(tick uint64) {
	m.now.Store(tick)
}

// Advance moves the clock forward by n ticks and returns the new tick.
func (m *Manual) Advance(n uint64) uint64 {
	return m.now.Add(n)
}
