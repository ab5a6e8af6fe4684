// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"errors"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/stakepool/builtin/staker/reverts"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var (
	token  = thor.BytesToAddress([]byte("token"))
	minter = thor.BytesToAddress([]byte("minter"))
	funder = thor.BytesToAddress([]byte("funder"))
	alice  = thor.BytesToAddress([]byte("alice"))
)

func newRuntime(t *testing.T, poolFunds uint64, participants ...thor.Address) (*Runtime, *clock.Manual) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	clk := clock.NewManual(100)
	rt := New(state.NewStater(db), clk)
	require.NoError(t, rt.Exec(func(env *Env) error {
		if err := env.Ledger.CreateAsset(token, 6, minter); err != nil {
			return err
		}
		if _, err := env.Staker.Initialize(token); err != nil {
			return err
		}
		for _, p := range append([]thor.Address{funder}, participants...) {
			w, err := env.Ledger.CreateEscrow(p, token)
			if err != nil {
				return err
			}
			if err := env.Ledger.Mint(w, ledger.Owner(minter), 10_000_000); err != nil {
				return err
			}
		}
		if poolFunds == 0 {
			return nil
		}
		return env.Staker.Fund(funder, poolFunds)
	}))
	return rt, clk
}

func TestExecCommitsOnSuccess(t *testing.T) {
	rt, clk := newRuntime(t, 10_000_000, alice)

	require.NoError(t, rt.Stake(alice, 5))
	s, err := rt.StakeOf(alice)
	require.NoError(t, err)
	assert.True(t, s.Staked)
	assert.Equal(t, uint64(100), s.StakedAt)
	assert.Equal(t, uint64(5_000_000), s.VaultBalance)
	assert.Equal(t, uint64(5_000_000), s.WalletBalance)

	clk.Set(110)
	settlement, err := rt.Destake(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000_000), settlement.Principal)
	assert.Equal(t, uint64(10_000_000), settlement.Reward)
	assert.Equal(t, uint64(10), settlement.Elapsed)

	bal, err := rt.WalletBalance(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(20_000_000), bal)

	p, err := rt.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), p.Balance)
	assert.Equal(t, uint64(10_000_000), p.Stats.RewardsPaid)
}

func TestExecDiscardsOnFailure(t *testing.T) {
	rt, clk := newRuntime(t, 10_000_000, alice)
	require.NoError(t, rt.Stake(alice, 5))
	clk.Set(105)

	// the destake succeeds but the invocation fails afterwards: nothing is kept
	boom := errors.New("boom")
	err := rt.Exec(func(env *Env) error {
		if _, err := env.Staker.Destake(alice); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	s, err := rt.StakeOf(alice)
	require.NoError(t, err)
	assert.True(t, s.Staked)
	assert.Equal(t, uint64(5_000_000), s.VaultBalance)
	assert.Equal(t, uint64(5_000_000), s.WalletBalance)
	assert.Equal(t, uint64(5_000_000), s.PendingReward)

	p, err := rt.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), p.Balance)
}

func TestInsufficientPoolFundsKeepsStake(t *testing.T) {
	rt, clk := newRuntime(t, 1, alice)
	require.NoError(t, rt.Stake(alice, 5))
	clk.Set(101)

	_, err := rt.Destake(alice)
	assert.ErrorIs(t, err, reverts.ErrInsufficientPoolFunds)

	s, err := rt.StakeOf(alice)
	require.NoError(t, err)
	assert.True(t, s.Staked)
	assert.Equal(t, uint64(5_000_000), s.VaultBalance)

	// topping up the pool unblocks the destake
	require.NoError(t, rt.Exec(func(env *Env) error {
		w := env.Ledger.WalletOf(funder, token)
		if err := env.Ledger.Mint(w, ledger.Owner(minter), 999_999); err != nil {
			return err
		}
		return env.Staker.Fund(funder, 999_999)
	}))
	settlement, err := rt.Destake(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), settlement.Reward)
}

func TestExecBatchIsolation(t *testing.T) {
	bob := thor.BytesToAddress([]byte("bob"))
	rt, _ := newRuntime(t, 0, alice, bob)

	errs, err := rt.ExecBatch(
		func(env *Env) error { return env.Staker.Stake(alice, 1) },
		func(env *Env) error { return env.Staker.Stake(alice, 1) },
		func(env *Env) error {
			if err := env.Staker.Stake(bob, 2); err != nil {
				return err
			}
			return errors.New("abort after write")
		},
		func(env *Env) error { return env.Staker.Stake(bob, 3) },
	)
	require.NoError(t, err)
	require.Len(t, errs, 4)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], reverts.ErrAlreadyStaked)
	assert.EqualError(t, errs[2], "abort after write")
	assert.NoError(t, errs[3])

	s, err := rt.StakeOf(bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(3_000_000), s.VaultBalance)
	assert.Equal(t, uint64(7_000_000), s.WalletBalance)

	p, err := rt.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), p.Stats.ActiveStakers)
	assert.Equal(t, uint64(4_000_000), p.Stats.TotalStaked)
}

func TestConcurrentStakes(t *testing.T) {
	participants := make([]thor.Address, 32)
	for i := range participants {
		participants[i] = thor.BytesToAddress([]byte(fmt.Sprintf("participant-%d", i)))
	}
	rt, _ := newRuntime(t, 0, participants...)

	var g errgroup.Group
	for _, p := range participants {
		g.Go(func() error { return rt.Stake(p, 1) })
		g.Go(func() error {
			_, err := rt.StakeOf(p)
			return err
		})
	}
	require.NoError(t, g.Wait())

	p, err := rt.Pool()
	require.NoError(t, err)
	assert.Equal(t, uint64(len(participants)), p.Stats.ActiveStakers)
	assert.Equal(t, uint64(len(participants))*1_000_000, p.Stats.TotalStaked)
}

func TestConcurrentStakeSameParticipant(t *testing.T) {
	rt, _ := newRuntime(t, 0, alice)

	var ok, already atomic.Int32
	var g errgroup.Group
	for range 16 {
		g.Go(func() error {
			err := rt.Stake(alice, 1)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, reverts.ErrAlreadyStaked):
				already.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	assert.Equal(t, int32(1), ok.Load())
	assert.Equal(t, int32(15), already.Load())

	s, err := rt.StakeOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), s.VaultBalance)
}

func TestViewOfUnknownParticipant(t *testing.T) {
	rt, _ := newRuntime(t, 0)
	s, err := rt.StakeOf(alice)
	require.NoError(t, err)
	assert.False(t, s.Staked)
	assert.Zero(t, s.VaultBalance)
	assert.Zero(t, s.WalletBalance)
}
