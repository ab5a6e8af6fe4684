// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/vechain/stakepool/builtin/staker/reverts"
	"github.com/vechain/stakepool/ledger"
	"github.com/vechain/stakepool/metrics"
)

var (
	metricExecDuration = metrics.LazyLoadHistogramVec(
		"runtime_exec_duration_ms", []string{"kind", "result"}, metrics.BucketExecMs,
	)
	metricStakeOps    = metrics.LazyLoadCounterVec("staker_ops_count", []string{"op", "result"})
	metricRewardsPaid = metrics.LazyLoadCounter("staker_rewards_paid_units")
	metricCacheHits   = metrics.LazyLoadGauge("state_cache_hits")
	metricCacheMisses = metrics.LazyLoadGauge("state_cache_misses")
)

// countOp records the outcome of a staking operation once Exec has returned,
// so only committed operations count as "ok".
func countOp(op string, err error) {
	metricStakeOps().AddWithLabel(1, map[string]string{"op": op, "result": opResult(err)})
}

func opResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case reverts.IsRevertErr(err):
		return "revert"
	case ledger.IsLedgerErr(err):
		return "ledger"
	default:
		return "error"
	}
}

// reportCache publishes the state read cache counters, logging them when the hit rate moved.
func (r *Runtime) reportCache() {
	changed, hit, miss := r.stater.CacheStats()
	metricCacheHits().Set(hit)
	metricCacheMisses().Set(miss)
	if changed {
		logger.Debug("state cache", "hit", hit, "miss", miss)
	}
}
