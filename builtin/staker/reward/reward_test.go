// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"math"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"

	"github.com/vechain/stakepool/builtin/staker/reverts"
)

func TestReward(t *testing.T) {
	tests := []struct {
		elapsed uint64
		scale   uint8
		want    uint64
		err     error
	}{
		{0, 6, 0, nil},
		{0, 200, 0, nil},
		{10, 6, 10_000_000, nil},
		{1, 0, 1, nil},
		{1, 19, 10_000_000_000_000_000_000, nil},
		{2, 19, 0, reverts.ErrArithmeticOverflow},
		{1, 20, 0, reverts.ErrArithmeticOverflow},
		{math.MaxUint64, 0, math.MaxUint64, nil},
		{math.MaxUint64, 1, 0, reverts.ErrArithmeticOverflow},
	}
	for _, tt := range tests {
		got, err := Reward(tt.elapsed, tt.scale)
		assert.Equal(t, tt.err, err, "Reward(%d, %d)", tt.elapsed, tt.scale)
		assert.Equal(t, tt.want, got, "Reward(%d, %d)", tt.elapsed, tt.scale)
	}
}

func TestScale(t *testing.T) {
	v, err := Scale(5, 6)
	assert.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), v)

	_, err = Scale(math.MaxUint64/1_000_000+1, 6)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)
}

func TestRewardMonotonic(t *testing.T) {
	f := fuzz.New().NilChance(0)
	for range 1000 {
		var a, b uint64
		var scale uint8
		f.Fuzz(&a)
		f.Fuzz(&b)
		f.Fuzz(&scale)
		scale %= 8
		a >>= 8
		b >>= 8
		if a > b {
			a, b = b, a
		}

		ra, errA := Reward(a, scale)
		rb, errB := Reward(b, scale)
		if errB != nil {
			// overflow at the larger input only; the smaller one may still fit
			assert.ErrorIs(t, errB, reverts.ErrArithmeticOverflow)
			continue
		}
		assert.NoError(t, errA)
		assert.LessOrEqual(t, ra, rb, "Reward(%d) > Reward(%d) at scale %d", a, b, scale)
	}
}
