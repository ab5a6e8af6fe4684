// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/authority"
	"github.com/vechain/stakepool/builtin"
	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/runtime"
	"github.com/vechain/stakepool/thor"
)

var (
	// mintSigner is the only authority allowed to mint the pool asset; it is used at genesis only.
	mintSigner = authority.NewSigner(builtin.Ledger.Address, []byte("genesis-mint"))

	slotGenesisID = thor.BytesToBytes32([]byte("genesis-id"))
)

type alloc struct {
	Owner thor.Address
	Units uint64
}

// Builder helper to build genesis state.
type Builder struct {
	launchTime   uint64
	tickInterval uint64
	asset        thor.Address
	scale        uint8
	allocs       []alloc
	poolFunds    uint64
}

// LaunchTime set the unix time of tick zero.
func (b *Builder) LaunchTime(t uint64) *Builder {
	b.launchTime = t
	return b
}

// TickInterval set seconds per tick.
func (b *Builder) TickInterval(i uint64) *Builder {
	b.tickInterval = i
	return b
}

// Asset set the staked asset and its scale.
func (b *Builder) Asset(addr thor.Address, scale uint8) *Builder {
	b.asset = addr
	b.scale = scale
	return b
}

// Alloc credits units to owner's wallet.
func (b *Builder) Alloc(owner thor.Address, units uint64) *Builder {
	b.allocs = append(b.allocs, alloc{owner, units})
	return b
}

// FundPool credits units to the pool escrow.
func (b *Builder) FundPool(units uint64) *Builder {
	b.poolFunds = units
	return b
}

// ComputeID compute genesis ID.
func (b *Builder) ComputeID() (thor.Bytes32, error) {
	data, err := rlp.EncodeToBytes([]any{
		b.launchTime,
		b.tickInterval,
		b.asset,
		b.scale,
		b.allocs,
		b.poolFunds,
	})
	if err != nil {
		return thor.Bytes32{}, err
	}
	return thor.Blake2b(data), nil
}

// Build writes the genesis state in a single invocation.
func (b *Builder) Build(env *runtime.Env, id thor.Bytes32) error {
	if err := env.Ledger.CreateAsset(b.asset, b.scale, mintSigner.Authority()); err != nil {
		return errors.Wrap(err, "create asset")
	}
	rec, err := env.Staker.Initialize(b.asset)
	if err != nil {
		return errors.Wrap(err, "initialize pool")
	}
	for _, a := range b.allocs {
		wallet, err := env.Ledger.CreateEscrow(a.Owner, b.asset)
		if err != nil {
			return errors.Wrapf(err, "alloc %v", a.Owner)
		}
		if err := env.Ledger.Mint(wallet, mintSigner, a.Units); err != nil {
			return errors.Wrapf(err, "alloc %v", a.Owner)
		}
	}
	if b.poolFunds > 0 {
		if err := env.Ledger.Mint(rec.Escrow, mintSigner, b.poolFunds); err != nil {
			return errors.Wrap(err, "fund pool")
		}
	}
	return genesisID(env).Set(id)
}

func genesisID(env *runtime.Env) *solidity.Value[thor.Bytes32] {
	return solidity.NewValue[thor.Bytes32](solidity.NewContext(builtin.Ledger.Address, env.State), slotGenesisID)
}
