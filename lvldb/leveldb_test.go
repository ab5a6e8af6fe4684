// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/kv"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	diskdb, err := New(filepath.Join(t.TempDir(), "lvldb"), Options{16, 16})
	require.NoError(t, err)
	defer diskdb.Close()

	memdb, err := NewMem()
	require.NoError(t, err)
	defer memdb.Close()

	for _, db := range []*LevelDB{diskdb, memdb} {
		assert.NoError(t, db.Put(key, value))

		ret1, err := db.Get(key)
		assert.NoError(t, err)

		ret2, err := db.Has(key)
		assert.NoError(t, err)

		ret3, err := db.Has(inValidKey)
		assert.NoError(t, err)

		assert.NoError(t, db.Delete(key))

		_, ret4 := db.Get(key)

		tests := []struct {
			ret      any
			expected any
		}{
			{ret1, value},
			{ret2, true},
			{ret3, false},
			{db.IsNotFound(ret4), true},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.expected, tt.ret)
		}
	}
}

func TestLevelDBBatch(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	b := db.NewBatch()
	assert.NoError(t, b.Put([]byte("a"), []byte("1")))
	assert.NoError(t, b.Put([]byte("b"), []byte("2")))
	assert.NoError(t, b.Delete([]byte("a")))
	assert.Equal(t, 3, b.Len())

	_, err = db.Get([]byte("b"))
	assert.True(t, db.IsNotFound(err), "batch must not be visible before write")

	assert.NoError(t, b.Write())

	has, err := db.Has([]byte("a"))
	assert.NoError(t, err)
	assert.False(t, has)

	v, err := db.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestLevelDBBucketIterate(t *testing.T) {
	db, err := NewMem()
	require.NoError(t, err)
	defer db.Close()

	staked := kv.Bucket("s")
	other := kv.Bucket("t")

	assert.NoError(t, staked.Put(db, []byte("1"), []byte("a")))
	assert.NoError(t, staked.Put(db, []byte("2"), []byte("b")))
	assert.NoError(t, other.Put(db, []byte("1"), []byte("x")))

	var keys, vals []string
	assert.NoError(t, staked.Iterate(db, func(k, v []byte) bool {
		keys = append(keys, string(k))
		vals = append(vals, string(v))
		return true
	}))
	assert.Equal(t, []string{"1", "2"}, keys)
	assert.Equal(t, []string{"a", "b"}, vals)

	v, err := other.Get(db, []byte("1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("x"), v)
}
