// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime is the transactional boundary around staking operations.
// Every invocation runs on a fresh state; its writes reach the store in a single
// batch when it succeeds and are dropped when it fails.
package runtime

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/stakepool/builtin"
	"github.com/vechain/stakepool/builtin/staker"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/state"
)

var logger = log.WithContext("pkg", "runtime")

// Env is what an invocation operates on.
type Env struct {
	State  *state.State
	Ledger *ledger.Ledger
	Staker *staker.Staker
	Clock  clock.Clock
}

// Invocation is one atomic unit of work.
type Invocation func(env *Env) error

// Runtime serializes invocations over the committed state.
// All invocations share the pool escrow, so they run one at a time.
type Runtime struct {
	mu     sync.RWMutex
	stater *state.Stater
	clock  clock.Clock
}

// New creates a runtime over stater, stamping stakes with clk.
func New(stater *state.Stater, clk clock.Clock) *Runtime {
	return &Runtime{stater: stater, clock: clk}
}

// Clock returns the runtime clock.
func (r *Runtime) Clock() clock.Clock {
	return r.clock
}

func (r *Runtime) newEnv() *Env {
	st := r.stater.NewState()
	return &Env{
		State:  st,
		Ledger: builtin.Ledger.WithState(st),
		Staker: builtin.Staker.WithState(st, r.clock),
		Clock:  r.clock,
	}
}

// Exec runs fn exclusively and commits its writes if it returns nil.
func (r *Runtime) Exec(fn Invocation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	env := r.newEnv()
	if err := fn(env); err != nil {
		observe("exec", "failed", start)
		return err
	}
	if err := r.stater.Commit(env.State.Stage()); err != nil {
		observe("exec", "error", start)
		return errors.Wrap(err, "commit")
	}
	observe("exec", "ok", start)
	r.reportCache()
	return nil
}

// ExecBatch runs fns in order within one commit. Each invocation is isolated by
// its own checkpoint: a failed one is reverted and the rest still commit.
// The returned slice holds the error of each invocation.
func (r *Runtime) ExecBatch(fns ...Invocation) ([]error, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	start := time.Now()
	env := r.newEnv()
	errs := make([]error, len(fns))
	for i, fn := range fns {
		cp := env.State.NewCheckpoint()
		if err := fn(env); err != nil {
			env.State.RevertTo(cp)
			errs[i] = err
		}
	}
	if err := r.stater.Commit(env.State.Stage()); err != nil {
		observe("batch", "error", start)
		return nil, errors.Wrap(err, "commit")
	}
	logger.Debug("batch committed", "size", len(fns))
	observe("batch", "ok", start)
	r.reportCache()
	return errs, nil
}

// View runs fn on the committed state without committing anything.
// Views may run concurrently with each other.
func (r *Runtime) View(fn Invocation) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return fn(r.newEnv())
}

func observe(kind, result string, start time.Time) {
	metricExecDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{
		"kind":   kind,
		"result": result,
	})
}
