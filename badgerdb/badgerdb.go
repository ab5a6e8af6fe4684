// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package badgerdb implements kv.Store on top of badger.
package badgerdb

import (
	"bytes"

	"github.com/dgraph-io/badger/v2"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/kv"
)

var _ kv.Store = (*BadgerDB)(nil)

// BadgerDB wraps a badger instance.
type BadgerDB struct {
	db *badger.DB
}

// New opens or creates a persistent badger store at path.
func New(path string) (*BadgerDB, error) {
	return open(badger.DefaultOptions(path).
		WithSyncWrites(true).
		WithLogger(nil))
}

// NewMem creates a badger store in memory.
func NewMem() (*BadgerDB, error) {
	return open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil))
}

func open(opts badger.Options) (*BadgerDB, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrap(err, "open badger db")
	}
	return &BadgerDB{db: db}, nil
}

// IsNotFound checks whether err indicates key not found.
func (b *BadgerDB) IsNotFound(err error) bool {
	return errors.Is(err, badger.ErrKeyNotFound)
}

// Get retrieves value for given key.
func (b *BadgerDB) Get(key []byte) (val []byte, err error) {
	err = b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	return
}

// Has returns whether a key exists.
func (b *BadgerDB) Has(key []byte) (bool, error) {
	_, err := b.Get(key)
	if err != nil {
		if b.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Put saves value for given key.
func (b *BadgerDB) Put(key, val []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

// Delete deletes the given key.
func (b *BadgerDB) Delete(key []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// Close closes the store.
func (b *BadgerDB) Close() error {
	return b.db.Close()
}

// NewBatch creates a batch. Ops are buffered and applied in a single transaction on Write.
func (b *BadgerDB) NewBatch() kv.Batch {
	return &batch{db: b.db}
}

// Iterate creates an iterator over r. Values are copied out of a read
// transaction that is held until Release.
func (b *BadgerDB) Iterate(r kv.Range) kv.Iterator {
	txn := b.db.NewTransaction(false)
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	return &iterator{txn: txn, it: it, r: r}
}

type op struct {
	key, val []byte
	del      bool
}

type batch struct {
	db  *badger.DB
	ops []op
}

func (b *batch) Put(key, val []byte) error {
	b.ops = append(b.ops, op{key: bytes.Clone(key), val: bytes.Clone(val)})
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops = append(b.ops, op{key: bytes.Clone(key), del: true})
	return nil
}

func (b *batch) Len() int {
	return len(b.ops)
}

func (b *batch) Write() error {
	return b.db.Update(func(txn *badger.Txn) error {
		for _, o := range b.ops {
			if o.del {
				if err := txn.Delete(o.key); err != nil {
					return err
				}
				continue
			}
			if err := txn.Set(o.key, o.val); err != nil {
				return err
			}
		}
		return nil
	})
}

type iterator struct {
	txn     *badger.Txn
	it      *badger.Iterator
	r       kv.Range
	started bool
	key     []byte
	val     []byte
	err     error
}

func (i *iterator) Next() bool {
	if i.err != nil {
		return false
	}
	if !i.started {
		i.started = true
		i.it.Seek(i.r.Start)
	} else {
		i.it.Next()
	}
	if !i.it.Valid() {
		return false
	}
	item := i.it.Item()
	key := item.KeyCopy(nil)
	if len(i.r.Limit) > 0 && bytes.Compare(key, i.r.Limit) >= 0 {
		return false
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		i.err = err
		return false
	}
	i.key, i.val = key, val
	return true
}

func (i *iterator) Key() []byte   { return i.key }
func (i *iterator) Value() []byte { return i.val }
func (i *iterator) Error() error  { return i.err }

func (i *iterator) Release() {
	i.it.Close()
	i.txn.Discard()
}
