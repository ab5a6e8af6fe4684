// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/cache"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/thor"
)

const defaultCacheSize = 4096

var storageBucket = kv.Bucket("s")

// Stater is the state creator.
// It owns the persisted storage and a read-through cache of committed slots.
type Stater struct {
	db    kv.Store
	cache *cache.LRU
}

// NewStater create a new stater.
func NewStater(db kv.Store) *Stater {
	c, err := cache.NewLRU(defaultCacheSize)
	if err != nil {
		panic(err)
	}
	return &Stater{db: db, cache: c}
}

// NewState create a new state object over the latest committed storage.
func (s *Stater) NewState() *State {
	return New(s)
}

// ReadStorage implements Reader.
func (s *Stater) ReadStorage(addr thor.Address, key thor.Bytes32) (rlp.RawValue, error) {
	sk := storageKey{addr, key}
	v, err := s.cache.GetOrLoad(sk, func(any) (any, error) {
		metricStorageReads().AddWithLabel(1, map[string]string{"source": "db"})
		val, err := storageBucket.Get(s.db, sk.dbKey())
		if err != nil {
			if s.db.IsNotFound(err) {
				return rlp.RawValue(nil), nil
			}
			return nil, err
		}
		return rlp.RawValue(val), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "read storage")
	}
	return v.(rlp.RawValue), nil
}

// Commit writes the stage in one batch. The cache is refreshed only
// after the batch is durable.
func (s *Stater) Commit(stage *Stage) error {
	if stage.Len() == 0 {
		return nil
	}
	batch := s.db.NewBatch()
	if err := stage.Write(batch); err != nil {
		return errors.Wrap(err, "stage")
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "commit")
	}
	for _, k := range stage.order {
		s.cache.Add(k, stage.changes[k])
	}
	metricCommittedSlots().Add(int64(stage.Len()))
	return nil
}

// CacheStats reports hit/miss of committed slot reads.
func (s *Stater) CacheStats() (bool, int64, int64) {
	return s.cache.Stats()
}
