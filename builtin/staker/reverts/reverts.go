// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// Staking failures. Each one aborts the invocation without any state change.
var (
	ErrAlreadyStaked         = New("already staked")
	ErrNotStaked             = New("not staked")
	ErrZeroAmount            = New("amount must be greater than zero")
	ErrArithmeticOverflow    = New("arithmetic overflow")
	ErrInvalidClock          = New("clock is behind stake time")
	ErrInsufficientPoolFunds = New("insufficient pool funds")
	ErrPoolNotInitialized    = New("stake pool not initialized")
	ErrAssetMismatch         = New("stake pool already initialized with another asset")
)

type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}
