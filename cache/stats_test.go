// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsRateChange(t *testing.T) {
	var s Stats

	changed, hit, miss := s.Stats()
	assert.False(t, changed)
	assert.Zero(t, hit)
	assert.Zero(t, miss)

	s.Hit()
	s.Miss()
	changed, hit, miss = s.Stats()
	assert.True(t, changed, "0 -> 500 per mille")
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)

	s.Hit()
	s.Miss()
	changed, _, _ = s.Stats()
	assert.False(t, changed, "still 500 per mille")

	assert.Equal(t, int64(3), s.Hit())
	changed, hit, _ = s.Stats()
	assert.True(t, changed)
	assert.Equal(t, int64(3), hit)
}
