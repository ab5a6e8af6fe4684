// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/log"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for stake pool databases",
	}
	dbEngineFlag = cli.StringFlag{
		Name:  "db-engine",
		Value: "lvldb",
		Usage: "storage engine (lvldb|badger)",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: 256,
		Usage: "megabytes of ram allocated to the leveldb read cache",
	}
	persistFlag = cli.BoolFlag{
		Name:  "persist",
		Usage: "save state to disk (in-memory otherwise, devnet only)",
	}
	genesisFlag = cli.StringFlag{
		Name:  "genesis",
		Usage: "path to a YAML genesis file (devnet if not set)",
	}
	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8679",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Value: 0,
		Usage: "log requests slower than this many milliseconds (0 to disable)",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log requests failing with a 5xx status",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics-addr",
		Value: "localhost:2112",
		Usage: "metrics service listening address",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: clock.DefaultNTPServer,
		Usage: "NTP server used to check the local clock (empty to disable)",
	}
	verbosityFlag = cli.Uint64Flag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-9)",
	}
	verbosityStakerFlag = cli.Uint64Flag{
		Name:  "verbosity-staker",
		Usage: "log verbosity for staker (0-9)",
		Value: log.LegacyLevelError,
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}

	// client flags
	nodeFlag = cli.StringFlag{
		Name:  "node",
		Value: "http://localhost:8679",
		Usage: "URL of the stake pool node",
	}
	keyFileFlag = cli.StringFlag{
		Name:  "key-file",
		Usage: "file holding the hex encoded private key used to sign requests",
	}
	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "amount to stake (whole tokens) or fund (decimal)",
	}
	addressFlag = cli.StringFlag{
		Name:  "address",
		Usage: "account to query (defaults to the key file's account)",
	}
)
