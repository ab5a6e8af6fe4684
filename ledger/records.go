// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import "github.com/vechain/stakepool/thor"

// Asset is a fungible token registered in the ledger.
type Asset struct {
	Scale         uint8
	MintAuthority thor.Address
	Supply        uint64
}

// Escrow is a balance of one asset controlled by Owner.
// Wallets, vaults and the pool are all escrows.
type Escrow struct {
	Owner   thor.Address
	Asset   thor.Address
	Balance uint64
}

// Authorizer proves control over an escrow. The ledger compares the returned
// address with the escrow owner.
type Authorizer interface {
	Authority() thor.Address
}

// Owner authorizes transfers from escrows owned by a plain account, whose
// ownership has already been proven by the caller, e.g. via a signature.
type Owner thor.Address

func (o Owner) Authority() thor.Address {
	return thor.Address(o)
}

// EscrowAddress returns the handle of the escrow of owner for asset.
func EscrowAddress(owner, asset thor.Address) thor.Address {
	h := thor.Keccak256([]byte("escrow"), owner.Bytes(), asset.Bytes())
	return thor.BytesToAddress(h[12:])
}
