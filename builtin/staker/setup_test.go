// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var (
	program    = thor.BytesToAddress([]byte("Staker"))
	ledgerAddr = thor.BytesToAddress([]byte("Ledger"))
	token      = thor.BytesToAddress([]byte("token"))
	minter     = thor.BytesToAddress([]byte("minter"))
	funder     = thor.BytesToAddress([]byte("funder"))
)

type testEnv struct {
	state  *state.State
	ledger *ledger.Ledger
	clock  *clock.Manual
	staker *Staker
}

// newTestEnv creates an initialized pool of an asset with the given scale.
func newTestEnv(t *testing.T, scale uint8) *testEnv {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	st := state.NewStater(db).NewState()
	l := ledger.New(ledgerAddr, st)
	require.NoError(t, l.CreateAsset(token, scale, minter))

	clk := clock.NewManual(0)
	s := New(program, st, l, clk)
	_, err = s.Initialize(token)
	require.NoError(t, err)

	return &testEnv{state: st, ledger: l, clock: clk, staker: s}
}

// mint credits units to owner's wallet, creating it when needed.
func (e *testEnv) mint(t *testing.T, owner thor.Address, units uint64) {
	wallet, err := e.ledger.CreateEscrow(owner, token)
	require.NoError(t, err)
	require.NoError(t, e.ledger.Mint(wallet, ledger.Owner(minter), units))
}

func (e *testEnv) walletBalance(t *testing.T, owner thor.Address) uint64 {
	bal, err := e.ledger.BalanceOf(e.ledger.WalletOf(owner, token))
	require.NoError(t, err)
	return bal
}

func (e *testEnv) vaultBalance(t *testing.T, participant thor.Address) uint64 {
	vault, err := e.staker.VaultOf(participant)
	require.NoError(t, err)
	bal, err := e.ledger.BalanceOf(vault)
	if ledger.CodeOf(err) == ledger.CodeUnknownEscrow {
		return 0
	}
	require.NoError(t, err)
	return bal
}

func (e *testEnv) poolBalance(t *testing.T) uint64 {
	bal, err := e.staker.PoolBalance()
	require.NoError(t, err)
	return bal
}

type TestFunc func(t *testing.T)

type TestSequence struct {
	env *testEnv

	funcs []TestFunc
	mu    sync.Mutex
}

func NewSequence(env *testEnv) *TestSequence {
	return &TestSequence{funcs: make([]TestFunc, 0), env: env}
}

func (st *TestSequence) AddFunc(f TestFunc) *TestSequence {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.funcs = append(st.funcs, f)
	return st
}

func (st *TestSequence) At(tick uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		st.env.clock.Set(tick)
	})
}

func (st *TestSequence) Stake(addr thor.Address, amount uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		if err := st.env.staker.Stake(addr, amount); err != nil {
			t.Fatalf("failed to stake %d for %s: %v", amount, addr, err)
		}
		t.Logf("staked %d for %s", amount, addr)
	})
}

func (st *TestSequence) Destake(addr thor.Address, principal, reward uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		s, err := st.env.staker.Destake(addr)
		if err != nil {
			t.Fatalf("failed to destake %s: %v", addr, err)
		}
		assert.Equal(t, principal, s.Principal, "principal of %s", addr)
		assert.Equal(t, reward, s.Reward, "reward of %s", addr)
		t.Logf("destaked %s: principal %d reward %d", addr, s.Principal, s.Reward)
	})
}

func (st *TestSequence) Fails(f func(*Staker) error, want error) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assert.ErrorIs(t, f(st.env.staker), want)
	})
}

func (st *TestSequence) AssertWallet(addr thor.Address, want uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assert.Equal(t, want, st.env.walletBalance(t, addr), "wallet of %s", addr)
	})
}

func (st *TestSequence) AssertVault(addr thor.Address, want uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assert.Equal(t, want, st.env.vaultBalance(t, addr), "vault of %s", addr)
	})
}

func (st *TestSequence) AssertPool(want uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		assert.Equal(t, want, st.env.poolBalance(t), "pool balance")
	})
}

func (st *TestSequence) AssertStaked(addr thor.Address, staked bool, at uint64) *TestSequence {
	return st.AddFunc(func(t *testing.T) {
		info, err := st.env.staker.StakeInfo(addr)
		require.NoError(t, err)
		assert.Equal(t, staked, info.Staked, "staked flag of %s", addr)
		assert.Equal(t, at, info.StakedAt, "stake time of %s", addr)
	})
}

func (st *TestSequence) Run(t *testing.T) {
	st.mu.Lock()
	defer st.mu.Unlock()

	for _, f := range st.funcs {
		f(t)
	}
}
