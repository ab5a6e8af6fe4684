// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/api"
	"github.com/vechain/stakepool/clock"
	"github.com/vechain/stakepool/co"
	"github.com/vechain/stakepool/health"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/metrics"
	"github.com/vechain/stakepool/runtime"
	"github.com/vechain/stakepool/state"
	"github.com/vechain/stakepool/thor"
)

var (
	version   string
	gitCommit string
	gitTag    string
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version: fullVersion(),
		Name:    "stakepool",
		Usage:   "Custodial token staking node",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			dbEngineFlag,
			cacheFlag,
			persistFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			enableAPILogsFlag,
			apiSlowQueriesThresholdFlag,
			apiLog5xxErrorsFlag,
			pprofFlag,
			enableMetricsFlag,
			metricsAddrFlag,
			ntpServerFlag,
			verbosityFlag,
			verbosityStakerFlag,
			jsonLogsFlag,
		},
		Action:   defaultAction,
		Commands: clientCommands,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { log.Info("exited") }()

	initLogger(ctx)

	gene, err := selectGenesis(ctx)
	if err != nil {
		return errors.WithMessage(err, "genesis")
	}
	thor.SetConfig(gene.Config())
	thor.LockConfig()

	instanceDir := ""
	if ctx.Bool(persistFlag.Name) || ctx.IsSet(genesisFlag.Name) {
		if instanceDir, err = makeInstanceDir(ctx, gene); err != nil {
			return err
		}
	}
	store, err := openStore(ctx, instanceDir)
	if err != nil {
		return errors.WithMessage(err, "open store")
	}
	defer func() { log.Info("closing main database..."); store.Close() }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
		url, stopMetrics, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer func() { log.Info("stopping metrics server..."); stopMetrics() }()
		log.Info("metrics server started", "url", url)
	}

	rt := runtime.New(state.NewStater(store), clock.NewTicker())
	if err := gene.Apply(rt); err != nil {
		return err
	}

	nodeHealth := health.New(time.Duration(thor.TickInterval()) * time.Second / 2) // #nosec G115
	enableAPILogs := &atomic.Bool{}
	enableAPILogs.Store(ctx.Bool(enableAPILogsFlag.Name))
	handler, err := api.New(rt, api.Options{
		AllowedOrigins:       ctx.String(apiCorsFlag.Name),
		PprofOn:              ctx.Bool(pprofFlag.Name),
		EnableReqLogger:      enableAPILogs,
		SlowQueriesThreshold: time.Duration(ctx.Uint64(apiSlowQueriesThresholdFlag.Name)) * time.Millisecond, // #nosec G115
		Log5xxErrors:         ctx.Bool(apiLog5xxErrorsFlag.Name),
		EnableMetrics:        ctx.Bool(enableMetricsFlag.Name),
		Health:               nodeHealth,
	})
	if err != nil {
		return err
	}
	apiURL, stopAPI, err := startAPIServer(ctx, handler)
	if err != nil {
		return err
	}
	defer func() { log.Info("stopping API server..."); stopAPI() }()

	printStartupMessage(gene.Name(), gene.ID(), rt, instanceDir, apiURL)

	var goes co.Goes
	if server := ctx.String(ntpServerFlag.Name); server != "" {
		goes.Go(func() {
			clock.WatchDrift(exitSignal, server, time.Hour, nodeHealth.ClockChecked)
		})
	}

	<-exitSignal.Done()
	if !goes.WaitTimeout(5 * time.Second) {
		log.Warn("background routines did not stop in time")
	}
	return nil
}

func printStartupMessage(name string, id thor.Bytes32, rt *runtime.Runtime, instanceDir, apiURL string) {
	if instanceDir == "" {
		instanceDir = "Memory"
	}
	pool, err := rt.Pool()
	if err != nil {
		log.Warn("failed to read pool", "err", err)
		return
	}
	fmt.Printf(`Starting stakepool %v
    Network      [ %v %v ]
    Asset        [ %v scale %v ]
    Pool escrow  [ %v ]
    Tick         [ %v every %vs ]
    Instance dir [ %v ]
    API portal   [ %v ]
`,
		fullVersion(),
		id, name,
		pool.Record.Asset, pool.Record.Scale,
		pool.Record.Escrow,
		rt.Clock().Now(), thor.TickInterval(),
		instanceDir,
		apiURL)
}
