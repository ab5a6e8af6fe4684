// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package builtin binds the built-in programs to their fixed addresses.
package builtin

import (
	"github.com/vechain/stakepool/builtin/staker"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

// Builtin programs binding.
var (
	Ledger = &ledgerContract{thor.BytesToAddress([]byte("Ledger"))}
	Staker = &stakerContract{thor.BytesToAddress([]byte("Staker"))}
)

type (
	ledgerContract struct{ Address thor.Address }
	stakerContract struct{ Address thor.Address }
)

func (l *ledgerContract) WithState(state *state.State) *ledger.Ledger {
	return ledger.New(l.Address, state)
}

// WithState returns the staker over state, moving funds through the built-in ledger.
func (s *stakerContract) WithState(state *state.State, clk clock.Clock) *staker.Staker {
	return staker.New(s.Address, state, Ledger.WithState(state), clk)
}
