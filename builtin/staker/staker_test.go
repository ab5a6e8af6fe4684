// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/builtin/staker/pool"
	"github.com/vechain/stakepool/builtin/staker/reverts"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var (
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

func TestInitialize(t *testing.T) {
	env := newTestEnv(t, 6)

	rec, err := env.staker.Pool()
	require.NoError(t, err)
	assert.Equal(t, token, rec.Asset)
	assert.Equal(t, uint8(6), rec.Scale)
	assert.Equal(t, env.ledger.WalletOf(authority.Pool(program).Authority(), token), rec.Escrow)

	// idempotent
	again, err := env.staker.Initialize(token)
	assert.NoError(t, err)
	assert.Equal(t, rec, again)

	_, err = env.staker.Initialize(alice)
	assert.ErrorIs(t, err, reverts.ErrAssetMismatch)
}

func TestNotInitialized(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	st := state.NewStater(db).NewState()
	l := ledger.New(ledgerAddr, st)
	s := New(program, st, l, clock.NewManual(0))

	assert.ErrorIs(t, s.Stake(alice, 1), reverts.ErrPoolNotInitialized)
	_, err = s.Destake(alice)
	assert.ErrorIs(t, err, reverts.ErrPoolNotInitialized)
	assert.ErrorIs(t, s.Fund(alice, 1), reverts.ErrPoolNotInitialized)

	_, err = s.Initialize(token)
	assert.Equal(t, ledger.CodeUnknownAsset, ledger.CodeOf(err))
}

func TestStakeDestakeScenario(t *testing.T) {
	env := newTestEnv(t, 6)
	env.mint(t, alice, 20_000_000)
	env.mint(t, funder, 100_000_000)
	require.NoError(t, env.staker.Fund(funder, 100_000_000))

	NewSequence(env).
		At(100).
		Stake(alice, 5).
		AssertStaked(alice, true, 100).
		AssertVault(alice, 5_000_000).
		AssertWallet(alice, 15_000_000).
		AssertPool(100_000_000).
		At(110).
		Destake(alice, 5_000_000, 10_000_000).
		AssertStaked(alice, false, 110).
		AssertVault(alice, 0).
		AssertWallet(alice, 30_000_000).
		AssertPool(90_000_000).
		Run(t)

	stats, err := env.staker.Stats()
	require.NoError(t, err)
	assert.Equal(t, pool.Stats{TotalStaked: 0, ActiveStakers: 0, RewardsPaid: 10_000_000}, *stats)
}

func TestRoundTripAccounting(t *testing.T) {
	env := newTestEnv(t, 2)
	env.mint(t, alice, 1_000)
	env.mint(t, bob, 1_000)
	env.mint(t, funder, 10_000)
	require.NoError(t, env.staker.Fund(funder, 10_000))

	total := func() uint64 {
		return env.walletBalance(t, alice) + env.walletBalance(t, bob) +
			env.vaultBalance(t, alice) + env.vaultBalance(t, bob) + env.poolBalance(t)
	}
	before := total()

	NewSequence(env).
		At(1).
		Stake(alice, 3).
		Stake(bob, 7).
		At(4).
		Destake(alice, 300, 300).
		At(5).
		Stake(alice, 1).
		At(9).
		Destake(bob, 700, 800).
		Destake(alice, 100, 400).
		AssertPool(10_000-300-800-400).
		Run(t)

	assert.Equal(t, before, total(), "funds must be conserved")

	stats, err := env.staker.Stats()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), stats.ActiveStakers)
	assert.Equal(t, uint64(1_500), stats.RewardsPaid)
}

func TestStateMachineErrors(t *testing.T) {
	env := newTestEnv(t, 6)
	env.mint(t, alice, 10_000_000)

	NewSequence(env).
		Fails(func(s *Staker) error { _, err := s.Destake(alice); return err }, reverts.ErrNotStaked).
		Fails(func(s *Staker) error { return s.Stake(alice, 0) }, reverts.ErrZeroAmount).
		AssertStaked(alice, false, 0).
		Stake(alice, 1).
		Fails(func(s *Staker) error { return s.Stake(alice, 1) }, reverts.ErrAlreadyStaked).
		// already staked is reported before the amount is looked at
		Fails(func(s *Staker) error { return s.Stake(alice, 0) }, reverts.ErrAlreadyStaked).
		AssertVault(alice, 1_000_000).
		Run(t)
}

func TestStakeInsufficientWallet(t *testing.T) {
	env := newTestEnv(t, 6)
	env.mint(t, alice, 999_999)

	err := env.staker.Stake(alice, 1)
	assert.Equal(t, ledger.CodeInsufficientFunds, ledger.CodeOf(err))

	// stakers without a wallet are rejected by the ledger
	err = env.staker.Stake(bob, 1)
	assert.Equal(t, ledger.CodeUnknownEscrow, ledger.CodeOf(err))
}

func TestStakeOverflowNoMutation(t *testing.T) {
	env := newTestEnv(t, 6)
	env.mint(t, alice, 1_000)
	changes := env.state.Stage().Len()

	err := env.staker.Stake(alice, math.MaxUint64/1_000_000+1)
	assert.ErrorIs(t, err, reverts.ErrArithmeticOverflow)

	assert.Equal(t, changes, env.state.Stage().Len(), "failed stake must not write")
	assert.Equal(t, uint64(1_000), env.walletBalance(t, alice))
	info, err := env.staker.StakeInfo(alice)
	require.NoError(t, err)
	assert.False(t, info.Staked)
}

func TestDestakeRewardOverflow(t *testing.T) {
	env := newTestEnv(t, 19)
	env.mint(t, alice, 10_000_000_000_000_000_000)

	NewSequence(env).
		Stake(alice, 1).
		At(2).
		Fails(func(s *Staker) error { _, err := s.Destake(alice); return err }, reverts.ErrArithmeticOverflow).
		AssertStaked(alice, true, 0).
		AssertVault(alice, 10_000_000_000_000_000_000).
		Run(t)
}

func TestDestakeInvalidClock(t *testing.T) {
	env := newTestEnv(t, 0)
	env.mint(t, alice, 10)

	NewSequence(env).
		At(50).
		Stake(alice, 10).
		At(49).
		Fails(func(s *Staker) error { _, err := s.Destake(alice); return err }, reverts.ErrInvalidClock).
		Fails(func(s *Staker) error { _, err := s.PendingReward(alice); return err }, reverts.ErrInvalidClock).
		AssertStaked(alice, true, 50).
		Run(t)
}

func TestDestakeInsufficientPoolFunds(t *testing.T) {
	env := newTestEnv(t, 6)
	env.mint(t, alice, 5_000_000)
	env.mint(t, funder, 9_999_999)
	require.NoError(t, env.staker.Fund(funder, 9_999_999))

	NewSequence(env).
		At(100).
		Stake(alice, 5).
		At(110).
		Fails(func(s *Staker) error { _, err := s.Destake(alice); return err }, reverts.ErrInsufficientPoolFunds).
		AssertStaked(alice, true, 100).
		AssertVault(alice, 5_000_000).
		AssertWallet(alice, 0).
		AssertPool(9_999_999).
		Run(t)
}

func TestZeroElapsedDestake(t *testing.T) {
	env := newTestEnv(t, 6)
	env.mint(t, alice, 1_000_000)

	// an empty pool can still settle a stake that earned nothing
	NewSequence(env).
		At(7).
		Stake(alice, 1).
		Destake(alice, 1_000_000, 0).
		AssertWallet(alice, 1_000_000).
		Stake(alice, 1).
		AssertStaked(alice, true, 7).
		Run(t)
}

func TestPendingReward(t *testing.T) {
	env := newTestEnv(t, 3)
	env.mint(t, alice, 1_000)

	r, err := env.staker.PendingReward(alice)
	assert.NoError(t, err)
	assert.Zero(t, r)

	env.clock.Set(10)
	require.NoError(t, env.staker.Stake(alice, 1))
	env.clock.Set(25)

	r, err = env.staker.PendingReward(alice)
	assert.NoError(t, err)
	assert.Equal(t, uint64(15_000), r)
}

func TestFund(t *testing.T) {
	env := newTestEnv(t, 6)
	env.mint(t, funder, 100)

	assert.ErrorIs(t, env.staker.Fund(funder, 0), reverts.ErrZeroAmount)
	assert.Equal(t, ledger.CodeInsufficientFunds, ledger.CodeOf(env.staker.Fund(funder, 101)))
	assert.NoError(t, env.staker.Fund(funder, 100))
	assert.Equal(t, uint64(100), env.poolBalance(t))
}

func TestVaultRejectsForeignAuthority(t *testing.T) {
	env := newTestEnv(t, 0)
	env.mint(t, alice, 10)
	require.NoError(t, env.staker.Stake(alice, 10))

	vault, err := env.staker.VaultOf(alice)
	require.NoError(t, err)
	wallet := env.ledger.WalletOf(bob, token)
	_, err = env.ledger.CreateEscrow(bob, token)
	require.NoError(t, err)

	// another participant's vault signer, the pool signer and the owner itself all fail
	for _, auth := range []ledger.Authorizer{
		authority.Vault(program, bob),
		authority.Pool(program),
		ledger.Owner(alice),
		authority.Vault(bob, alice),
	} {
		err := env.ledger.Transfer(vault, wallet, auth, 1)
		assert.Equal(t, ledger.CodeUnauthorized, ledger.CodeOf(err))
	}
}

func TestDestakeVaultDeposit(t *testing.T) {
	env := newTestEnv(t, 0)
	env.mint(t, alice, 5)
	env.mint(t, bob, 1)
	env.mint(t, funder, 100)
	require.NoError(t, env.staker.Fund(funder, 100))
	require.NoError(t, env.staker.Stake(alice, 5))

	// anyone may credit a vault; the settlement pays out whatever it holds
	vault, err := env.staker.VaultOf(alice)
	require.NoError(t, err)
	require.NoError(t, env.ledger.Transfer(env.ledger.WalletOf(bob, token), vault, ledger.Owner(bob), 1))

	env.clock.Set(10)
	settlement, err := env.staker.Destake(alice)
	require.NoError(t, err)
	assert.Equal(t, &Settlement{Principal: 6, Reward: 10, Elapsed: 10}, settlement)
	assert.Equal(t, uint64(16), env.walletBalance(t, alice))
	assert.Zero(t, env.vaultBalance(t, alice))

	stats, err := env.staker.Stats()
	require.NoError(t, err)
	assert.Equal(t, pool.Stats{TotalStaked: 0, ActiveStakers: 0, RewardsPaid: 10}, *stats)
}

func TestDestakeRewardsPaidSaturates(t *testing.T) {
	env := newTestEnv(t, 0)
	env.mint(t, alice, 5)
	env.mint(t, funder, 100)
	require.NoError(t, env.staker.Fund(funder, 100))

	// rewards recycled through the pool long enough to fill the running total
	stats := pool.New(solidity.NewContext(program, env.state))
	require.NoError(t, stats.ApplyDestake(0, math.MaxUint64-1))

	require.NoError(t, env.staker.Stake(alice, 5))
	env.clock.Set(10)
	settlement, err := env.staker.Destake(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), settlement.Reward)
	assert.Equal(t, uint64(15), env.walletBalance(t, alice))
	assert.Equal(t, uint64(90), env.poolBalance(t))

	got, err := env.staker.Stats()
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), got.RewardsPaid)
	assert.Zero(t, got.ActiveStakers)
}
