// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package pool

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/builtin/staker/reverts"
	"github.com/vechain/stakepool/thor"
)

var (
	slotPool          = thor.BytesToBytes32([]byte("stake-pool"))
	slotTotalStaked   = thor.BytesToBytes32([]byte("total-staked"))
	slotActiveStakers = thor.BytesToBytes32([]byte("active-stakers"))
	slotRewardsPaid   = thor.BytesToBytes32([]byte("rewards-paid"))
)

// Record describes the stake pool: the staked asset, its scale and the escrow holding reward funds.
type Record struct {
	Asset  thor.Address
	Scale  uint8
	Escrow thor.Address
}

// Stats are pool-wide totals. They are informational and never feed reward math.
type Stats struct {
	TotalStaked   uint64
	ActiveStakers uint64
	RewardsPaid   uint64
}

// Service manages the pool record and pool-wide totals.
type Service struct {
	record *solidity.Value[Record]

	totalStaked   *solidity.Uint64
	activeStakers *solidity.Uint64
	rewardsPaid   *solidity.Uint64
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		record:        solidity.NewValue[Record](sctx, slotPool),
		totalStaked:   solidity.NewUint64(sctx, slotTotalStaked),
		activeStakers: solidity.NewUint64(sctx, slotActiveStakers),
		rewardsPaid:   solidity.NewUint64(sctx, slotRewardsPaid),
	}
}

// Get returns the pool record, or ErrPoolNotInitialized.
func (s *Service) Get() (*Record, error) {
	rec, exists, err := s.record.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pool")
	}
	if !exists {
		return nil, reverts.ErrPoolNotInitialized
	}
	return &rec, nil
}

// Initialized reports whether the pool record has been written.
func (s *Service) Initialized() (bool, error) {
	_, exists, err := s.record.Get()
	return exists, err
}

// Init writes the pool record.
func (s *Service) Init(rec Record) error {
	return s.record.Set(rec)
}

// Stats returns the pool totals.
func (s *Service) Stats() (*Stats, error) {
	total, err := s.totalStaked.Get()
	if err != nil {
		return nil, err
	}
	active, err := s.activeStakers.Get()
	if err != nil {
		return nil, err
	}
	paid, err := s.rewardsPaid.Get()
	if err != nil {
		return nil, err
	}
	return &Stats{TotalStaked: total, ActiveStakers: active, RewardsPaid: paid}, nil
}

// ApplyStake accounts a new stake of principal.
// Totals saturate instead of failing, so they can never block a stake or a settlement.
func (s *Service) ApplyStake(principal uint64) error {
	if err := s.totalStaked.SaturatingAdd(principal); err != nil {
		return err
	}
	return s.activeStakers.SaturatingAdd(1)
}

// ApplyDestake accounts a settled stake. principal is the vault balance paid out,
// which may exceed what was staked if the vault received outside deposits.
func (s *Service) ApplyDestake(principal, reward uint64) error {
	if err := s.totalStaked.SaturatingSub(principal); err != nil {
		return err
	}
	if err := s.activeStakers.SaturatingSub(1); err != nil {
		return err
	}
	return s.rewardsPaid.SaturatingAdd(reward)
}
