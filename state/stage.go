// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/stakepool/kv"
)

// Stage abstracts the pending slot changes of a State.
type Stage struct {
	order   []storageKey
	changes map[storageKey]rlp.RawValue
}

func newStage(order []storageKey, changes map[storageKey]rlp.RawValue) *Stage {
	return &Stage{order: order, changes: changes}
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.order)
}

// Write puts all changes into w. Empty values are written as deletes.
func (s *Stage) Write(w kv.Putter) error {
	for _, k := range s.order {
		v := s.changes[k]
		if len(v) == 0 {
			if err := storageBucket.Delete(w, k.dbKey()); err != nil {
				return err
			}
			continue
		}
		if err := storageBucket.Put(w, k.dbKey(), v); err != nil {
			return err
		}
	}
	return nil
}

func (k storageKey) dbKey() []byte {
	buf := make([]byte, 0, len(k.addr)+len(k.key))
	buf = append(buf, k.addr[:]...)
	return append(buf, k.key[:]...)
}
