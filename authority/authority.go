// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package authority derives program-controlled addresses from a program id
// and a list of seeds. A derived address has no private key; a program proves
// control over it by presenting the seeds it was derived from.
package authority

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/thor"
)

// Seed domains.
var (
	PoolSeed  = []byte("stake_pool")
	VaultSeed = []byte("token")
	InfoSeed  = []byte("stake_info")
)

// Derive returns the address controlled by program for seeds.
// It is deterministic and collision resistant across seed lists.
func Derive(program thor.Address, seeds ...[]byte) thor.Address {
	if seeds == nil {
		seeds = [][]byte{}
	}
	data, err := rlp.EncodeToBytes([]any{program, seeds})
	if err != nil {
		panic(err)
	}
	h := thor.Keccak256(data)
	return thor.BytesToAddress(h[12:])
}

// Signer is the capability of program to act as the address derived from Seeds.
// It carries no secret; the ledger re-derives the address when it is presented.
type Signer struct {
	program thor.Address
	seeds   [][]byte
}

// NewSigner creates the signer of program for seeds.
func NewSigner(program thor.Address, seeds ...[]byte) Signer {
	cpy := make([][]byte, len(seeds))
	for i, s := range seeds {
		cpy[i] = append([]byte(nil), s...)
	}
	return Signer{program: program, seeds: cpy}
}

// Authority implements ledger.Authorizer.
func (s Signer) Authority() thor.Address {
	return Derive(s.program, s.seeds...)
}

// Pool returns the signer of the stake pool escrow.
func Pool(program thor.Address) Signer {
	return NewSigner(program, PoolSeed)
}

// Vault returns the signer of the participant's vault escrow.
func Vault(program, participant thor.Address) Signer {
	return NewSigner(program, VaultSeed, participant.Bytes())
}

// InfoKey returns the derived key of the participant's stake record.
func InfoKey(program, participant thor.Address) thor.Address {
	return Derive(program, InfoSeed, participant.Bytes())
}
