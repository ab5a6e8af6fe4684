// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis describes and applies the initial state of a stake pool.
package genesis

import (
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/runtime"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "genesis")

// Genesis wraps genesis builder.
type Genesis struct {
	builder *Builder
	id      thor.Bytes32
	name    string
}

// ID returns genesis ID.
func (g *Genesis) ID() thor.Bytes32 {
	return g.id
}

// Name returns network name.
func (g *Genesis) Name() string {
	return g.name
}

// Asset returns the staked asset.
func (g *Genesis) Asset() thor.Address {
	return g.builder.asset
}

// Config returns the clock settings the genesis was built for.
func (g *Genesis) Config() thor.Config {
	return thor.Config{
		TickInterval:    g.builder.tickInterval,
		LaunchTime:      g.builder.launchTime,
		ReplayCacheSize: thor.ReplayCacheSize(),
	}
}

func newGenesis(name string, b *Builder) (*Genesis, error) {
	id, err := b.ComputeID()
	if err != nil {
		return nil, errors.Wrap(err, "compute genesis id")
	}
	return &Genesis{builder: b, id: id, name: name}, nil
}

// Apply writes the genesis state unless it is already there.
// It fails if the store was initialized by a different genesis.
func (g *Genesis) Apply(rt *runtime.Runtime) error {
	var (
		existing thor.Bytes32
		found    bool
	)
	if err := rt.View(func(env *runtime.Env) (err error) {
		existing, found, err = genesisID(env).Get()
		return
	}); err != nil {
		return errors.Wrap(err, "read genesis id")
	}
	if found {
		if existing != g.id {
			return errors.Errorf("genesis mismatch: store has %v, want %v", existing, g.id)
		}
		logger.Debug("genesis already applied", "id", g.id)
		return nil
	}

	if err := rt.Exec(func(env *runtime.Env) error {
		return g.builder.Build(env, g.id)
	}); err != nil {
		return errors.Wrap(err, "build genesis")
	}
	logger.Info("genesis applied", "name", g.name, "id", g.id)
	return nil
}
