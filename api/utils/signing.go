// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/thor"
)

// Operations a signed request can authorize.
const (
	OpStake   = "stake"
	OpDestake = "destake"
	OpFund    = "fund"
)

// SignedRequest is the body of every mutating request.
// Amount is whole tokens for stake, a decimal amount for fund and empty for destake.
type SignedRequest struct {
	Amount     string `json:"amount,omitempty"`
	Expiration uint64 `json:"expiration"`
	Nonce      uint64 `json:"nonce"`
	Signature  string `json:"signature"`
}

// SigningHash is what the caller signs to authorize op on behalf of account.
func SigningHash(op string, account thor.Address, amount string, expiration, nonce uint64) thor.Bytes32 {
	data, _ := rlp.EncodeToBytes([]any{op, account, amount, expiration, nonce})
	return thor.Blake2b(data)
}

// Sign fills the signature of r for op on behalf of the key's address.
func (r *SignedRequest) Sign(op string, key *ecdsa.PrivateKey) error {
	account := thor.Address(crypto.PubkeyToAddress(key.PublicKey))
	hash := SigningHash(op, account, r.Amount, r.Expiration, r.Nonce)
	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return err
	}
	r.Signature = hexutil.Encode(sig)
	return nil
}

// Verifier authenticates signed requests against a clock and remembers
// recently seen signing hashes to reject replays.
type Verifier struct {
	clock clock.Clock
	seen  *cache.LRU
}

// NewVerifier creates a verifier remembering up to replayCacheSize requests.
func NewVerifier(clk clock.Clock, replayCacheSize int) (*Verifier, error) {
	seen, err := cache.NewLRU(replayCacheSize)
	if err != nil {
		return nil, err
	}
	return &Verifier{clock: clk, seen: seen}, nil
}

// Verify checks that r authorizes op for account. It returns a bad request
// error for malformed signatures and a forbidden error for anything else.
func (v *Verifier) Verify(op string, account thor.Address, r *SignedRequest) error {
	sig, err := hexutil.Decode(r.Signature)
	if err != nil {
		return BadRequest(errors.WithMessage(err, "signature"))
	}
	if len(sig) != crypto.SignatureLength {
		return BadRequest(errors.New("signature: invalid length"))
	}
	if now := v.clock.Now(); now > r.Expiration {
		return Forbidden(errors.Errorf("request expired at tick %d, now %d", r.Expiration, now))
	}

	hash := SigningHash(op, account, r.Amount, r.Expiration, r.Nonce)
	pub, err := crypto.SigToPub(hash.Bytes(), sig)
	if err != nil {
		return Forbidden(errors.WithMessage(err, "recover signer"))
	}
	if signer := thor.Address(crypto.PubkeyToAddress(*pub)); signer != account {
		return Forbidden(errors.Errorf("signer %v is not %v", signer, account))
	}
	if found, _ := v.seen.ContainsOrAdd(hash, struct{}{}); found {
		return Forbidden(errors.New("request replayed"))
	}
	return nil
}
