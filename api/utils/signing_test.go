// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/thor"
)

func statusOf(err error) int {
	if he, ok := err.(*httpError); ok {
		return he.status
	}
	return 0
}

func TestVerify(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	account := thor.Address(crypto.PubkeyToAddress(key.PublicKey))
	other := thor.BytesToAddress([]byte("other"))

	clk := clock.NewManual(10)
	v, err := NewVerifier(clk, 16)
	require.NoError(t, err)

	signed := func(op, amount string, expiration, nonce uint64) *SignedRequest {
		r := &SignedRequest{Amount: amount, Expiration: expiration, Nonce: nonce}
		require.NoError(t, r.Sign(op, key))
		return r
	}

	r := signed(OpStake, "5", 20, 1)
	assert.NoError(t, v.Verify(OpStake, account, r))

	// same request again
	assert.Equal(t, http.StatusForbidden, statusOf(v.Verify(OpStake, account, r)))

	// signed for another op
	assert.Equal(t, http.StatusForbidden, statusOf(v.Verify(OpDestake, account, signed(OpStake, "", 20, 2))))

	// on behalf of someone else
	assert.Equal(t, http.StatusForbidden, statusOf(v.Verify(OpStake, other, signed(OpStake, "5", 20, 3))))

	// tampered amount
	r = signed(OpStake, "5", 20, 4)
	r.Amount = "500"
	assert.Equal(t, http.StatusForbidden, statusOf(v.Verify(OpStake, account, r)))

	// expired
	r = signed(OpStake, "5", 20, 5)
	clk.Set(21)
	assert.Equal(t, http.StatusForbidden, statusOf(v.Verify(OpStake, account, r)))

	// malformed
	assert.Equal(t, http.StatusBadRequest, statusOf(v.Verify(OpStake, account, &SignedRequest{Signature: "0x1234", Expiration: 100})))
	assert.Equal(t, http.StatusBadRequest, statusOf(v.Verify(OpStake, account, &SignedRequest{Signature: "zz", Expiration: 100})))
}

func TestSigningHashCoversEveryField(t *testing.T) {
	a := thor.BytesToAddress([]byte("a"))
	base := SigningHash(OpStake, a, "1", 2, 3)

	assert.Equal(t, base, SigningHash(OpStake, a, "1", 2, 3))
	assert.NotEqual(t, base, SigningHash(OpFund, a, "1", 2, 3))
	assert.NotEqual(t, base, SigningHash(OpStake, thor.BytesToAddress([]byte("b")), "1", 2, 3))
	assert.NotEqual(t, base, SigningHash(OpStake, a, "2", 2, 3))
	assert.NotEqual(t, base, SigningHash(OpStake, a, "1", 3, 3))
	assert.NotEqual(t, base, SigningHash(OpStake, a, "1", 2, 4))
}
