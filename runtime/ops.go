// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/vechain/stakepool/builtin/staker"
	"github.com/vechain/stakepool/builtin/staker/pool"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/thor"
)

// Stake atomically stakes amount whole tokens for participant.
func (r *Runtime) Stake(participant thor.Address, amount uint64) error {
	err := r.Exec(func(env *Env) error {
		return env.Staker.Stake(participant, amount)
	})
	countOp("stake", err)
	return err
}

// Destake atomically settles the stake of participant.
func (r *Runtime) Destake(participant thor.Address) (settlement *staker.Settlement, err error) {
	err = r.Exec(func(env *Env) error {
		settlement, err = env.Staker.Destake(participant)
		return err
	})
	countOp("destake", err)
	if err != nil {
		return nil, err
	}
	metricRewardsPaid().Add(int64(settlement.Reward)) // #nosec G115
	return settlement, nil
}

// Fund atomically moves amount smallest units from funder into the pool.
func (r *Runtime) Fund(funder thor.Address, amount uint64) error {
	err := r.Exec(func(env *Env) error {
		return env.Staker.Fund(funder, amount)
	})
	countOp("fund", err)
	return err
}

// PoolSummary is a consistent snapshot of the pool.
type PoolSummary struct {
	Record  pool.Record
	Balance uint64
	Stats   pool.Stats
}

// Pool reads the pool record, balance and totals in one view.
func (r *Runtime) Pool() (summary *PoolSummary, err error) {
	err = r.View(func(env *Env) error {
		rec, err := env.Staker.Pool()
		if err != nil {
			return err
		}
		bal, err := env.Staker.PoolBalance()
		if err != nil {
			return err
		}
		stats, err := env.Staker.Stats()
		if err != nil {
			return err
		}
		summary = &PoolSummary{Record: *rec, Balance: bal, Stats: *stats}
		return nil
	})
	return
}

// StakeSummary is a consistent snapshot of one participant's stake.
type StakeSummary struct {
	Staked        bool
	StakedAt      uint64
	Vault         thor.Address
	VaultBalance  uint64
	PendingReward uint64
	WalletBalance uint64
}

// StakeOf reads the stake record and balances of participant in one view.
// Balances of escrows that do not exist yet read as 0.
func (r *Runtime) StakeOf(participant thor.Address) (summary *StakeSummary, err error) {
	err = r.View(func(env *Env) error {
		rec, err := env.Staker.Pool()
		if err != nil {
			return err
		}
		info, err := env.Staker.StakeInfo(participant)
		if err != nil {
			return err
		}
		vault, err := env.Staker.VaultOf(participant)
		if err != nil {
			return err
		}
		pending, err := env.Staker.PendingReward(participant)
		if err != nil {
			return err
		}
		vaultBal, err := balanceOrZero(env, vault)
		if err != nil {
			return err
		}
		walletBal, err := balanceOrZero(env, env.Ledger.WalletOf(participant, rec.Asset))
		if err != nil {
			return err
		}
		summary = &StakeSummary{
			Staked:        info.Staked,
			StakedAt:      info.StakedAt,
			Vault:         vault,
			VaultBalance:  vaultBal,
			PendingReward: pending,
			WalletBalance: walletBal,
		}
		return nil
	})
	return
}

// WalletBalance returns the balance of owner's wallet of the pool asset, 0 if it does not exist.
func (r *Runtime) WalletBalance(owner thor.Address) (bal uint64, err error) {
	err = r.View(func(env *Env) error {
		rec, err := env.Staker.Pool()
		if err != nil {
			return err
		}
		bal, err = balanceOrZero(env, env.Ledger.WalletOf(owner, rec.Asset))
		return err
	})
	return
}

func balanceOrZero(env *Env, handle thor.Address) (uint64, error) {
	e, err := env.Ledger.EscrowOf(handle)
	if err != nil {
		if ledger.CodeOf(err) == ledger.CodeUnknownEscrow {
			return 0, nil
		}
		return 0, err
	}
	return e.Balance, nil
}
