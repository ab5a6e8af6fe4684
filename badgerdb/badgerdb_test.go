// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package badgerdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/stakepool/kv"
)

func newMem(t *testing.T) *BadgerDB {
	db, err := NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestBadgerGetPut(t *testing.T) {
	db := newMem(t)

	_, err := db.Get([]byte("k"))
	assert.True(t, db.IsNotFound(err))

	assert.NoError(t, db.Put([]byte("k"), []byte("v")))
	v, err := db.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v"), v)

	has, err := db.Has([]byte("k"))
	assert.NoError(t, err)
	assert.True(t, has)

	assert.NoError(t, db.Delete([]byte("k")))
	has, err = db.Has([]byte("k"))
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestBadgerBatch(t *testing.T) {
	db := newMem(t)

	b := db.NewBatch()
	assert.NoError(t, b.Put([]byte("a"), []byte("1")))
	assert.NoError(t, b.Put([]byte("b"), []byte("2")))
	assert.NoError(t, b.Delete([]byte("a")))
	assert.Equal(t, 3, b.Len())

	has, err := db.Has([]byte("b"))
	assert.NoError(t, err)
	assert.False(t, has)

	assert.NoError(t, b.Write())

	has, err = db.Has([]byte("a"))
	assert.NoError(t, err)
	assert.False(t, has)

	v, err := db.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("2"), v)
}

func TestBadgerBucketIterate(t *testing.T) {
	db := newMem(t)

	b := kv.Bucket("e")
	assert.NoError(t, b.Put(db, []byte("2"), []byte("y")))
	assert.NoError(t, b.Put(db, []byte("1"), []byte("x")))
	assert.NoError(t, kv.Bucket("f").Put(db, []byte("1"), []byte("z")))

	var got []string
	assert.NoError(t, b.Iterate(db, func(k, v []byte) bool {
		got = append(got, string(k)+"="+string(v))
		return true
	}))
	assert.Equal(t, []string{"1=x", "2=y"}, got)
}
