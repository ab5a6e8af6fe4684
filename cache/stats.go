// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups. It is safe for concurrent use.
type Stats struct {
	hit, miss atomic.Int64
	// hit rate in per mille at the previous Stats call
	lastRate atomic.Int64
}

// Hit records a hit and returns the total.
func (s *Stats) Hit() int64 { return s.hit.Add(1) }

// Miss records a miss and returns the total.
func (s *Stats) Miss() int64 { return s.miss.Add(1) }

// Stats returns the hit and miss totals. changed reports whether the hit
// rate moved by at least one per mille since the previous call, so callers
// can log only when something happened.
func (s *Stats) Stats() (changed bool, hit, miss int64) {
	hit, miss = s.hit.Load(), s.miss.Load()
	var rate int64
	if total := hit + miss; total > 0 {
		rate = hit * 1000 / total
	}
	return s.lastRate.Swap(rate) != rate, hit, miss
}
