// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward computes stake rewards and scaled amounts with overflow checks.
package reward

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/builtin/staker/reverts"
)

// maxScale is the largest scale with 10^scale representable in uint64.
const maxScale = 19

// Unit returns 10^scale.
func Unit(scale uint8) (uint64, error) {
	if scale > maxScale {
		return 0, reverts.ErrArithmeticOverflow
	}
	unit := uint64(1)
	for range scale {
		unit *= 10
	}
	return unit, nil
}

// Reward returns elapsed * 10^scale: one whole token per elapsed tick.
// It does not depend on the staked amount.
func Reward(elapsed uint64, scale uint8) (uint64, error) {
	return Scale(elapsed, scale)
}

// Scale converts whole tokens to smallest units: amount * 10^scale.
func Scale(amount uint64, scale uint8) (uint64, error) {
	if amount == 0 {
		return 0, nil
	}
	unit, err := Unit(scale)
	if err != nil {
		return 0, err
	}
	v, overflow := math.SafeMul(amount, unit)
	if overflow {
		return 0, reverts.ErrArithmeticOverflow
	}
	return v, nil
}
