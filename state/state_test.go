// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/thor"
)

func newStater(t *testing.T) *Stater {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStater(db)
}

func encodeUint(t *testing.T, v uint64) rlp.RawValue {
	raw, err := rlp.EncodeToBytes(v)
	require.NoError(t, err)
	return raw
}

func TestStateReadWrite(t *testing.T) {
	st := newStater(t).NewState()

	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("key"))

	raw, err := st.GetRawStorage(addr, key)
	assert.NoError(t, err)
	assert.Empty(t, raw)

	st.SetRawStorage(addr, key, encodeUint(t, 42))

	var got uint64
	assert.NoError(t, st.DecodeStorage(addr, key, func(b []byte) error {
		return rlp.DecodeBytes(b, &got)
	}))
	assert.Equal(t, uint64(42), got)
}

func TestStateRevert(t *testing.T) {
	st := newStater(t).NewState()

	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("key"))

	st.SetRawStorage(addr, key, encodeUint(t, 1))
	cp := st.NewCheckpoint()
	st.SetRawStorage(addr, key, encodeUint(t, 2))

	raw, _ := st.GetRawStorage(addr, key)
	assert.Equal(t, encodeUint(t, 2), raw)

	st.RevertTo(cp)
	raw, _ = st.GetRawStorage(addr, key)
	assert.Equal(t, encodeUint(t, 1), raw)

	assert.Panics(t, func() { st.RevertTo(10) })
}

func TestStateCodecErrors(t *testing.T) {
	st := newStater(t).NewState()
	addr := thor.BytesToAddress([]byte("account"))
	key := thor.BytesToBytes32([]byte("key"))

	boom := errors.New("boom")
	err := st.EncodeStorage(addr, key, func() ([]byte, error) { return nil, boom })
	var stateErr *Error
	assert.ErrorAs(t, err, &stateErr)
	assert.ErrorIs(t, err, boom)

	err = st.DecodeStorage(addr, key, func([]byte) error { return boom })
	assert.ErrorAs(t, err, &stateErr)
}

func TestStaterCommit(t *testing.T) {
	stater := newStater(t)

	a := thor.BytesToAddress([]byte("a"))
	k1 := thor.BytesToBytes32([]byte("k1"))
	k2 := thor.BytesToBytes32([]byte("k2"))

	st := stater.NewState()
	st.SetRawStorage(a, k1, encodeUint(t, 10))
	st.SetRawStorage(a, k2, encodeUint(t, 20))
	st.SetRawStorage(a, k1, encodeUint(t, 11))

	// uncommitted writes are invisible to new states
	raw, err := stater.NewState().GetRawStorage(a, k1)
	assert.NoError(t, err)
	assert.Empty(t, raw)

	stage := st.Stage()
	assert.Equal(t, 2, stage.Len())
	assert.NoError(t, stater.Commit(stage))

	raw, err = stater.NewState().GetRawStorage(a, k1)
	assert.NoError(t, err)
	assert.Equal(t, encodeUint(t, 11), raw)

	// clearing a slot deletes it
	st = stater.NewState()
	st.SetRawStorage(a, k2, nil)
	assert.NoError(t, stater.Commit(st.Stage()))

	raw, err = NewStater(stater.db).NewState().GetRawStorage(a, k2)
	assert.NoError(t, err)
	assert.Empty(t, raw)
}

func TestStaterCacheStats(t *testing.T) {
	stater := newStater(t)
	a := thor.BytesToAddress([]byte("a"))
	k := thor.BytesToBytes32([]byte("k"))

	_, _ = stater.ReadStorage(a, k)
	_, _ = stater.ReadStorage(a, k)

	_, hit, miss := stater.CacheStats()
	assert.Equal(t, int64(1), hit)
	assert.Equal(t, int64(1), miss)
}
