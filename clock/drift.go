// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package clock

import (
	"context"
	"time"

	"github.com/beevik/ntp"
	"github.com/pkg/errors"

	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/thor"
)

var logger = log.WithContext("pkg", "clock")

// DefaultNTPServer is queried when no server is configured.
const DefaultNTPServer = "pool.ntp.org"

// queryOffset is replaced in tests.
var queryOffset = func(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, err
	}
	return resp.ClockOffset, nil
}

// CheckDrift queries server and returns the local clock offset.
// An offset larger than half a tick is reported as a warning since it may shift stake timestamps.
func CheckDrift(server string) (time.Duration, error) {
	offset, err := queryOffset(server)
	if err != nil {
		return 0, errors.Wrap(err, "query ntp")
	}
	if abs(offset) > time.Duration(thor.TickInterval())*time.Second/2 {
		logger.Warn("clock offset detected", "offset", offset.String())
	}
	return offset, nil
}

// WatchDrift checks the drift every interval until ctx is done.
// report, if not nil, receives the outcome of every check.
func WatchDrift(ctx context.Context, server string, interval time.Duration, report func(time.Duration, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		offset, err := CheckDrift(server)
		if err != nil {
			logger.Debug("failed to access NTP", "err", err)
		}
		if report != nil {
			report(offset, err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func abs(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
