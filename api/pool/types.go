// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/vechain/stakepool/api/utils"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/runtime"
	"github.com/vechain/stakepool/thor"
)

// Summary describes the stake pool. Amounts are human readable.
type Summary struct {
	Asset         thor.Address `json:"asset"`
	Scale         uint8        `json:"scale"`
	Escrow        thor.Address `json:"escrow"`
	Balance       string       `json:"balance"`
	TotalStaked   string       `json:"totalStaked"`
	ActiveStakers uint64       `json:"activeStakers"`
	RewardsPaid   string       `json:"rewardsPaid"`
	Tick          uint64       `json:"tick"`
}

func convertPool(s *runtime.PoolSummary, tick uint64) *Summary {
	scale := s.Record.Scale
	return &Summary{
		Asset:         s.Record.Asset,
		Scale:         scale,
		Escrow:        s.Record.Escrow,
		Balance:       ledger.FormatAmount(s.Balance, scale),
		TotalStaked:   ledger.FormatAmount(s.Stats.TotalStaked, scale),
		ActiveStakers: s.Stats.ActiveStakers,
		RewardsPaid:   ledger.FormatAmount(s.Stats.RewardsPaid, scale),
		Tick:          tick,
	}
}

// FundRequest moves a decimal amount from the funder's wallet into the pool.
type FundRequest struct {
	Funder thor.Address `json:"funder"`
	utils.SignedRequest
}
