// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"bytes"
	"sync"
)

// Bucket provides logical bucket for kv store.
type Bucket string

func (b Bucket) key(buf *buf, key []byte) []byte {
	buf.k = append(append(buf.k[:0], b...), key...)
	return buf.k
}

// Get reads the key within the bucket.
func (b Bucket) Get(src Getter, key []byte) ([]byte, error) {
	buf := bufPool.Get().(*buf)
	defer bufPool.Put(buf)
	return src.Get(b.key(buf, key))
}

// Has checks the key within the bucket.
func (b Bucket) Has(src Getter, key []byte) (bool, error) {
	buf := bufPool.Get().(*buf)
	defer bufPool.Put(buf)
	return src.Has(b.key(buf, key))
}

// Put writes the key within the bucket.
func (b Bucket) Put(dst Putter, key, val []byte) error {
	buf := bufPool.Get().(*buf)
	defer bufPool.Put(buf)
	return dst.Put(b.key(buf, key), val)
}

// Delete removes the key within the bucket.
func (b Bucket) Delete(dst Putter, key []byte) error {
	buf := bufPool.Get().(*buf)
	defer bufPool.Put(buf)
	return dst.Delete(b.key(buf, key))
}

// Iterate iterates all keys within the bucket. Keys passed to cb are stripped of the bucket prefix.
// The iteration stops when cb returns false.
func (b Bucket) Iterate(src Store, cb func(key, val []byte) bool) error {
	prefix := []byte(b)
	iter := src.Iterate(Range{Start: prefix, Limit: prefixLimit(prefix)})
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()
		if !bytes.HasPrefix(key, prefix) {
			break
		}
		if !cb(key[len(prefix):], iter.Value()) {
			break
		}
	}
	return iter.Error()
}

// prefixLimit returns the smallest key greater than all keys with the given prefix.
func prefixLimit(prefix []byte) []byte {
	limit := append([]byte(nil), prefix...)
	for i := len(limit) - 1; i >= 0; i-- {
		if limit[i] < 0xff {
			limit[i]++
			return limit[:i+1]
		}
	}
	return nil
}

type buf struct {
	k []byte
}

var bufPool = sync.Pool{
	New: func() any {
		return &buf{}
	},
}
