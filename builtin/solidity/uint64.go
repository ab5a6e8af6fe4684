// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/thor"
)

// Uint64 is a wrapper for storage and retrieval of an uint64 counter at a fixed slot.
type Uint64 struct {
	context *Context
	pos     thor.Bytes32
}

func NewUint64(context *Context, slot thor.Bytes32) *Uint64 {
	return &Uint64{context: context, pos: slot}
}

func (u *Uint64) Get() (value uint64, err error) {
	err = u.context.state.DecodeStorage(u.context.address, u.pos, func(raw []byte) error {
		if len(raw) == 0 {
			return nil
		}
		return rlp.DecodeBytes(raw, &value)
	})
	return
}

func (u *Uint64) Set(value uint64) error {
	if value == 0 {
		u.context.state.SetRawStorage(u.context.address, u.pos, nil)
		return nil
	}
	return u.context.state.EncodeStorage(u.context.address, u.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// SaturatingAdd increases the counter, stopping at the largest uint64.
func (u *Uint64) SaturatingAdd(delta uint64) error {
	v, err := u.Get()
	if err != nil {
		return err
	}
	sum, overflow := math.SafeAdd(v, delta)
	if overflow {
		sum = ^uint64(0)
	}
	return u.Set(sum)
}

// SaturatingSub decreases the counter, stopping at 0.
func (u *Uint64) SaturatingSub(delta uint64) error {
	v, err := u.Get()
	if err != nil {
		return err
	}
	diff, underflow := math.SafeSub(v, delta)
	if underflow {
		diff = 0
	}
	return u.Set(diff)
}
