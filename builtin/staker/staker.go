// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/builtin/staker/pool"
	"github.com/vechain/stakepool/builtin/staker/reverts"
	"github.com/vechain/stakepool/builtin/staker/reward"
	"github.com/vechain/stakepool/builtin/staker/stakeinfo"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "staker")

func SetLogger(l log.Logger) {
	logger = l
}

// AssetLedger is the asset ledger the staker moves funds through.
type AssetLedger interface {
	CreateEscrow(owner, asset thor.Address) (thor.Address, error)
	WalletOf(owner, asset thor.Address) thor.Address
	Transfer(from, to thor.Address, auth ledger.Authorizer, amount uint64) error
	BalanceOf(handle thor.Address) (uint64, error)
	ScaleOf(asset thor.Address) (uint8, error)
}

// Settlement is the outcome of a destake.
type Settlement struct {
	Principal uint64
	Reward    uint64
	Elapsed   uint64
}

// Staker implements the staking state machine of the stake pool.
// Methods are not atomic on their own; callers run each one inside a
// state checkpoint and discard the state on error.
type Staker struct {
	addr   thor.Address
	assets AssetLedger
	clock  clock.Clock

	infoService *stakeinfo.Service
	poolService *pool.Service
}

// New create a new instance.
func New(addr thor.Address, state *state.State, assets AssetLedger, clk clock.Clock) *Staker {
	sctx := solidity.NewContext(addr, state)

	return &Staker{
		addr:        addr,
		assets:      assets,
		clock:       clk,
		infoService: stakeinfo.New(sctx),
		poolService: pool.New(sctx),
	}
}

// Address returns the program address the authorities are derived from.
func (s *Staker) Address() thor.Address {
	return s.addr
}

//
// Getters - no state change
//

// Pool returns the pool record.
func (s *Staker) Pool() (*pool.Record, error) {
	return s.poolService.Get()
}

// PoolBalance returns the funds available to pay rewards.
func (s *Staker) PoolBalance() (uint64, error) {
	rec, err := s.poolService.Get()
	if err != nil {
		return 0, err
	}
	return s.assets.BalanceOf(rec.Escrow)
}

// Stats returns the pool totals.
func (s *Staker) Stats() (*pool.Stats, error) {
	return s.poolService.Stats()
}

// StakeInfo returns the stake record of participant.
func (s *Staker) StakeInfo(participant thor.Address) (stakeinfo.Info, error) {
	return s.infoService.Get(participant)
}

// VaultOf returns the vault escrow handle of participant.
func (s *Staker) VaultOf(participant thor.Address) (thor.Address, error) {
	rec, err := s.poolService.Get()
	if err != nil {
		return thor.Address{}, err
	}
	return s.assets.WalletOf(authority.Vault(s.addr, participant).Authority(), rec.Asset), nil
}

// PendingReward returns the reward a destake would pay at the current tick, 0 if not staked.
func (s *Staker) PendingReward(participant thor.Address) (uint64, error) {
	rec, err := s.poolService.Get()
	if err != nil {
		return 0, err
	}
	info, err := s.infoService.Get(participant)
	if err != nil {
		return 0, err
	}
	if !info.Staked {
		return 0, nil
	}
	now := s.clock.Now()
	if now < info.StakedAt {
		return 0, reverts.ErrInvalidClock
	}
	return reward.Reward(now-info.StakedAt, rec.Scale)
}

//
// Setters - state change
//

// Initialize creates the pool escrow for asset and writes the pool record.
// Calling it again with the same asset returns the existing record.
func (s *Staker) Initialize(asset thor.Address) (*pool.Record, error) {
	logger.Debug("initializing pool", "asset", asset)

	ok, err := s.poolService.Initialized()
	if err != nil {
		return nil, err
	}
	if ok {
		rec, err := s.poolService.Get()
		if err != nil {
			return nil, err
		}
		if rec.Asset != asset {
			return nil, reverts.ErrAssetMismatch
		}
		return rec, nil
	}

	scale, err := s.assets.ScaleOf(asset)
	if err != nil {
		logger.Info("initialize failed", "asset", asset, "error", err)
		return nil, err
	}
	escrow, err := s.assets.CreateEscrow(authority.Pool(s.addr).Authority(), asset)
	if err != nil {
		logger.Info("initialize failed", "asset", asset, "error", err)
		return nil, err
	}
	rec := pool.Record{Asset: asset, Scale: scale, Escrow: escrow}
	if err := s.poolService.Init(rec); err != nil {
		return nil, err
	}

	logger.Info("initialized pool", "asset", asset, "scale", scale, "escrow", escrow)
	return &rec, nil
}

// Stake locks amount whole tokens of participant into the participant's vault.
// The transfer is authorized by participant, who must be the verified caller.
func (s *Staker) Stake(participant thor.Address, amount uint64) error {
	logger.Debug("staking", "participant", participant, "amount", amount)

	if err := s.stake(participant, amount); err != nil {
		logger.Info("stake failed", "participant", participant, "error", err)
		return err
	}

	logger.Info("staked", "participant", participant, "amount", amount)
	return nil
}

func (s *Staker) stake(participant thor.Address, amount uint64) error {
	rec, err := s.poolService.Get()
	if err != nil {
		return err
	}
	info, err := s.infoService.Get(participant)
	if err != nil {
		return err
	}
	if info.Staked {
		return reverts.ErrAlreadyStaked
	}
	if amount == 0 {
		return reverts.ErrZeroAmount
	}
	principal, err := reward.Scale(amount, rec.Scale)
	if err != nil {
		return err
	}

	vault, err := s.assets.CreateEscrow(authority.Vault(s.addr, participant).Authority(), rec.Asset)
	if err != nil {
		return err
	}
	wallet := s.assets.WalletOf(participant, rec.Asset)
	if err := s.assets.Transfer(wallet, vault, ledger.Owner(participant), principal); err != nil {
		return err
	}

	if err := s.infoService.MarkStaked(participant, s.clock.Now()); err != nil {
		return err
	}
	return s.poolService.ApplyStake(principal)
}

// Destake pays the reward out of the pool and returns the principal from the vault.
func (s *Staker) Destake(participant thor.Address) (*Settlement, error) {
	logger.Debug("destaking", "participant", participant)

	settlement, err := s.destake(participant)
	if err != nil {
		logger.Info("destake failed", "participant", participant, "error", err)
		return nil, err
	}

	logger.Info("destaked", "participant", participant,
		"principal", settlement.Principal, "reward", settlement.Reward, "elapsed", settlement.Elapsed)
	return settlement, nil
}

func (s *Staker) destake(participant thor.Address) (*Settlement, error) {
	rec, err := s.poolService.Get()
	if err != nil {
		return nil, err
	}
	info, err := s.infoService.Get(participant)
	if err != nil {
		return nil, err
	}
	if !info.Staked {
		return nil, reverts.ErrNotStaked
	}

	now := s.clock.Now()
	if now < info.StakedAt {
		return nil, reverts.ErrInvalidClock
	}
	elapsed := now - info.StakedAt
	rw, err := reward.Reward(elapsed, rec.Scale)
	if err != nil {
		return nil, err
	}

	vaultSigner := authority.Vault(s.addr, participant)
	vault := s.assets.WalletOf(vaultSigner.Authority(), rec.Asset)
	principal, err := s.assets.BalanceOf(vault)
	if err != nil {
		return nil, err
	}
	available, err := s.assets.BalanceOf(rec.Escrow)
	if err != nil {
		return nil, err
	}
	if available < rw {
		return nil, reverts.ErrInsufficientPoolFunds
	}

	wallet := s.assets.WalletOf(participant, rec.Asset)
	if err := s.assets.Transfer(rec.Escrow, wallet, authority.Pool(s.addr), rw); err != nil {
		return nil, err
	}
	if err := s.assets.Transfer(vault, wallet, vaultSigner, principal); err != nil {
		return nil, err
	}

	if err := s.infoService.MarkUnstaked(participant, now); err != nil {
		return nil, err
	}
	if err := s.poolService.ApplyDestake(principal, rw); err != nil {
		return nil, err
	}
	return &Settlement{Principal: principal, Reward: rw, Elapsed: elapsed}, nil
}

// Fund moves amount smallest units from funder's wallet into the pool escrow.
func (s *Staker) Fund(funder thor.Address, amount uint64) error {
	logger.Debug("funding pool", "funder", funder, "amount", amount)

	rec, err := s.poolService.Get()
	if err != nil {
		return err
	}
	if amount == 0 {
		return reverts.ErrZeroAmount
	}
	wallet := s.assets.WalletOf(funder, rec.Asset)
	if err := s.assets.Transfer(wallet, rec.Escrow, ledger.Owner(funder), amount); err != nil {
		logger.Info("fund failed", "funder", funder, "error", err)
		return err
	}

	logger.Info("funded pool", "funder", funder, "amount", amount)
	return nil
}
