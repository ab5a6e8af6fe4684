// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakes

import (
	"github.com/vechain/stakepool/builtin/staker"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/runtime"
	"github.com/vechain/stakepool/thor"
)

// Stake is the state of one participant's stake. Amounts are human readable.
type Stake struct {
	Participant   thor.Address `json:"participant"`
	Staked        bool         `json:"staked"`
	StakedAt      uint64       `json:"stakedAt"`
	Vault         thor.Address `json:"vault"`
	VaultBalance  string       `json:"vaultBalance"`
	PendingReward string       `json:"pendingReward"`
	WalletBalance string       `json:"walletBalance"`
}

func convertStake(participant thor.Address, s *runtime.StakeSummary, scale uint8) *Stake {
	return &Stake{
		Participant:   participant,
		Staked:        s.Staked,
		StakedAt:      s.StakedAt,
		Vault:         s.Vault,
		VaultBalance:  ledger.FormatAmount(s.VaultBalance, scale),
		PendingReward: ledger.FormatAmount(s.PendingReward, scale),
		WalletBalance: ledger.FormatAmount(s.WalletBalance, scale),
	}
}

// Settlement is paid out by a destake.
type Settlement struct {
	Principal string `json:"principal"`
	Reward    string `json:"reward"`
	Elapsed   uint64 `json:"elapsed"`
}

func convertSettlement(s *staker.Settlement, scale uint8) *Settlement {
	return &Settlement{
		Principal: ledger.FormatAmount(s.Principal, scale),
		Reward:    ledger.FormatAmount(s.Reward, scale),
		Elapsed:   s.Elapsed,
	}
}
