// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package health tracks whether the node clock can be trusted to timestamp stakes.
package health

import (
	"sync"
	"time"
)

type ClockCheck struct {
	Offset    string     `json:"offset"`
	CheckedAt *time.Time `json:"checkedAt"`
	Error     string     `json:"error,omitempty"`
}

type Status struct {
	Healthy bool        `json:"healthy"`
	Tick    uint64      `json:"tick"`
	Clock   *ClockCheck `json:"clock"`
}

// Health is unhealthy while the last successful drift check exceeded maxOffset.
// A node that never checked, or failed to reach NTP, keeps its previous verdict.
type Health struct {
	lock      sync.RWMutex
	maxOffset time.Duration
	offset    time.Duration
	checkedAt time.Time
	lastErr   error
}

func New(maxOffset time.Duration) *Health {
	return &Health{maxOffset: maxOffset}
}

// ClockChecked records the outcome of a drift check.
func (h *Health) ClockChecked(offset time.Duration, err error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	h.lastErr = err
	if err != nil {
		return
	}
	h.offset = offset
	h.checkedAt = time.Now()
}

func (h *Health) Status(tick uint64) *Status {
	h.lock.RLock()
	defer h.lock.RUnlock()

	offset := h.offset
	if offset < 0 {
		offset = -offset
	}
	check := &ClockCheck{Offset: h.offset.String()}
	if !h.checkedAt.IsZero() {
		checkedAt := h.checkedAt
		check.CheckedAt = &checkedAt
	}
	if h.lastErr != nil {
		check.Error = h.lastErr.Error()
	}

	return &Status{
		Healthy: offset <= h.maxOffset,
		Tick:    tick,
		Clock:   check,
	}
}
