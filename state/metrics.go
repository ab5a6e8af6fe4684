// Copyright (c) 2024 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import "github.com/vechain/stakepool/metrics"

var (
	metricStorageReads   = metrics.LazyLoadCounterVec("state_storage_read_count", []string{"source"})
	metricCommittedSlots = metrics.LazyLoadCounter("state_committed_slot_count")
)
