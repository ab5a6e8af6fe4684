// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger implements the asset ledger: assets, escrows and
// authority-gated transfers between escrows.
package ledger

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/stakepool/builtin/solidity"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var (
	logger = log.WithContext("pkg", "ledger")

	slotAssets  = thor.BytesToBytes32([]byte("assets"))
	slotEscrows = thor.BytesToBytes32([]byte("escrows"))
)

type Ledger struct {
	addr    thor.Address
	assets  *solidity.Mapping[thor.Address, Asset]
	escrows *solidity.Mapping[thor.Address, Escrow]
}

// New create a new instance.
func New(addr thor.Address, st *state.State) *Ledger {
	ctx := solidity.NewContext(addr, st)
	return &Ledger{
		addr:    addr,
		assets:  solidity.NewMapping[thor.Address, Asset](ctx, slotAssets),
		escrows: solidity.NewMapping[thor.Address, Escrow](ctx, slotEscrows),
	}
}

// Address returns the account holding the ledger storage.
func (l *Ledger) Address() thor.Address {
	return l.addr
}

// CreateAsset registers a new asset.
func (l *Ledger) CreateAsset(asset thor.Address, scale uint8, mintAuthority thor.Address) error {
	exists, err := l.assets.Exists(asset)
	if err != nil {
		return err
	}
	if exists {
		return newError(CodeAssetExists, "%v", asset)
	}
	logger.Debug("create asset", "asset", asset, "scale", scale)
	return l.assets.Set(asset, Asset{Scale: scale, MintAuthority: mintAuthority})
}

// AssetOf returns the asset record.
func (l *Ledger) AssetOf(asset thor.Address) (Asset, error) {
	exists, err := l.assets.Exists(asset)
	if err != nil {
		return Asset{}, err
	}
	if !exists {
		return Asset{}, newError(CodeUnknownAsset, "%v", asset)
	}
	return l.assets.Get(asset)
}

// ScaleOf returns the number of decimal places of the asset.
func (l *Ledger) ScaleOf(asset thor.Address) (uint8, error) {
	a, err := l.AssetOf(asset)
	if err != nil {
		return 0, err
	}
	return a.Scale, nil
}

// WalletOf returns the escrow handle owned by owner for asset. It does not create it.
func (l *Ledger) WalletOf(owner, asset thor.Address) thor.Address {
	return EscrowAddress(owner, asset)
}

// CreateEscrow makes sure the escrow of owner for asset exists and returns its handle.
// Calling it again is a no-op.
func (l *Ledger) CreateEscrow(owner, asset thor.Address) (thor.Address, error) {
	if _, err := l.AssetOf(asset); err != nil {
		return thor.Address{}, err
	}
	handle := EscrowAddress(owner, asset)
	exists, err := l.escrows.Exists(handle)
	if err != nil {
		return thor.Address{}, err
	}
	if exists {
		return handle, nil
	}
	logger.Debug("create escrow", "owner", owner, "asset", asset, "handle", handle)
	if err := l.escrows.Set(handle, Escrow{Owner: owner, Asset: asset}); err != nil {
		return thor.Address{}, err
	}
	return handle, nil
}

// EscrowOf returns the escrow record of handle.
func (l *Ledger) EscrowOf(handle thor.Address) (Escrow, error) {
	exists, err := l.escrows.Exists(handle)
	if err != nil {
		return Escrow{}, err
	}
	if !exists {
		return Escrow{}, newError(CodeUnknownEscrow, "%v", handle)
	}
	return l.escrows.Get(handle)
}

// BalanceOf returns the balance held by the escrow.
func (l *Ledger) BalanceOf(handle thor.Address) (uint64, error) {
	e, err := l.EscrowOf(handle)
	if err != nil {
		return 0, err
	}
	return e.Balance, nil
}

// Transfer moves amount between two escrows of the same asset.
// auth must resolve to the owner of the source escrow.
func (l *Ledger) Transfer(from, to thor.Address, auth Authorizer, amount uint64) error {
	src, err := l.EscrowOf(from)
	if err != nil {
		return err
	}
	dst, err := l.EscrowOf(to)
	if err != nil {
		return err
	}
	if src.Asset != dst.Asset {
		return newError(CodeAssetMismatch, "%v -> %v", src.Asset, dst.Asset)
	}
	if auth == nil || auth.Authority() != src.Owner {
		return newError(CodeUnauthorized, "escrow %v", from)
	}
	if src.Balance < amount {
		return newError(CodeInsufficientFunds, "escrow %v has %d, needs %d", from, src.Balance, amount)
	}
	if from == to || amount == 0 {
		return nil
	}
	credited, overflow := math.SafeAdd(dst.Balance, amount)
	if overflow {
		return newError(CodeOverflow, "escrow %v", to)
	}

	src.Balance -= amount
	dst.Balance = credited
	if err := l.escrows.Set(from, src); err != nil {
		return err
	}
	return l.escrows.Set(to, dst)
}

// Mint credits newly issued units of asset to the escrow. auth must resolve
// to the mint authority of the asset.
func (l *Ledger) Mint(to thor.Address, auth Authorizer, amount uint64) error {
	dst, err := l.EscrowOf(to)
	if err != nil {
		return err
	}
	a, err := l.AssetOf(dst.Asset)
	if err != nil {
		return err
	}
	if auth == nil || auth.Authority() != a.MintAuthority {
		return newError(CodeUnauthorized, "mint %v", dst.Asset)
	}
	supply, overflow := math.SafeAdd(a.Supply, amount)
	if overflow {
		return newError(CodeOverflow, "supply of %v", dst.Asset)
	}
	balance, overflow := math.SafeAdd(dst.Balance, amount)
	if overflow {
		return newError(CodeOverflow, "escrow %v", to)
	}

	a.Supply = supply
	dst.Balance = balance
	if err := l.assets.Set(dst.Asset, a); err != nil {
		return err
	}
	return l.escrows.Set(to, dst)
}
