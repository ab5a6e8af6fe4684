// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/thor"
)

// CustomGenesis is user customized genesis. Amounts are human readable, e.g. "12.5".
type CustomGenesis struct {
	Name         string    `yaml:"name"`
	LaunchTime   uint64    `yaml:"launchTime"`
	TickInterval uint64    `yaml:"tickInterval"`
	Asset        Asset     `yaml:"asset"`
	Accounts     []Account `yaml:"accounts"`
	PoolFunding  string    `yaml:"poolFunding"`
}

// Asset is the staked asset of a custom genesis.
type Asset struct {
	Address string `yaml:"address"`
	Scale   uint8  `yaml:"scale"`
}

// Account is a funded wallet of a custom genesis.
type Account struct {
	Address string `yaml:"address"`
	Balance string `yaml:"balance"`
}

// LoadCustomNet reads a YAML genesis file.
func LoadCustomNet(path string) (*Genesis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var gen CustomGenesis
	if err := yaml.Unmarshal(data, &gen); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return NewCustomNet(&gen)
}

// NewCustomNet create custom network genesis.
func NewCustomNet(gen *CustomGenesis) (*Genesis, error) {
	if gen.TickInterval == 0 {
		return nil, errors.New("tickInterval must not be 0")
	}

	asset := DevAsset
	if gen.Asset.Address != "" {
		addr, err := thor.ParseAddress(gen.Asset.Address)
		if err != nil {
			return nil, errors.Wrap(err, "asset address")
		}
		asset = addr
	}

	builder := new(Builder).
		LaunchTime(gen.LaunchTime).
		TickInterval(gen.TickInterval).
		Asset(asset, gen.Asset.Scale)

	seen := make(map[thor.Address]bool)
	for _, a := range gen.Accounts {
		addr, err := thor.ParseAddress(a.Address)
		if err != nil {
			return nil, errors.Wrapf(err, "account %q", a.Address)
		}
		if seen[addr] {
			return nil, errors.Errorf("%v: duplicated account", addr)
		}
		seen[addr] = true

		units, err := ledger.ParseAmount(a.Balance, gen.Asset.Scale)
		if err != nil {
			return nil, errors.Wrapf(err, "%v: balance", addr)
		}
		if units == 0 {
			return nil, errors.Errorf("%v: balance must be a non-zero amount", addr)
		}
		builder.Alloc(addr, units)
	}

	if gen.PoolFunding != "" {
		units, err := ledger.ParseAmount(gen.PoolFunding, gen.Asset.Scale)
		if err != nil {
			return nil, errors.Wrap(err, "poolFunding")
		}
		builder.FundPool(units)
	}

	name := gen.Name
	if name == "" {
		name = "customnet"
	}
	return newGenesis(name, builder)
}
