// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"os/user"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/stakepool/badgerdb"
	"github.com/vechain/stakepool/builtin/staker"
	"github.com/vechain/stakepool/co"
	"github.com/vechain/stakepool/genesis"
	"github.com/vechain/stakepool/kv"
	"github.com/vechain/stakepool/log"
	"github.com/vechain/stakepool/lvldb"
	"github.com/vechain/stakepool/metrics"
)

func fatal(args ...any) {
	var w io.Writer
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		} else {
			w = io.MultiWriter(os.Stdout, os.Stderr)
		}
	}
	fmt.Fprint(w, "Fatal: ")
	fmt.Fprintln(w, args...)
	os.Exit(1)
}

// newLogHandler picks the output format; colours are only used on a terminal.
func newLogHandler(w io.Writer, fd uintptr, jsonLogs bool, lvl *slog.LevelVar) slog.Handler {
	if jsonLogs {
		return log.NewHandler(w, log.Options{Format: log.FormatJSON, Level: lvl})
	}
	useColor := (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
	return log.NewHandler(w, log.Options{Format: log.FormatTerminal, Level: lvl, UseColor: useColor})
}

func initLogger(ctx *cli.Context) {
	lvl := new(slog.LevelVar)
	lvl.Set(log.FromLegacyLevel(int(ctx.Uint64(verbosityFlag.Name)))) // #nosec G115
	handler := newLogHandler(os.Stderr, os.Stderr.Fd(), ctx.Bool(jsonLogsFlag.Name), lvl)
	log.SetDefault(log.NewLogger(handler))

	stakerLvl := new(slog.LevelVar)
	stakerLvl.Set(log.FromLegacyLevel(int(ctx.Uint64(verbosityStakerFlag.Name)))) // #nosec G115
	stakerHandler := newLogHandler(os.Stderr, os.Stderr.Fd(), ctx.Bool(jsonLogsFlag.Name), stakerLvl)
	staker.SetLogger(log.NewLogger(stakerHandler).With("pkg", "staker"))
}

func selectGenesis(ctx *cli.Context) (*genesis.Genesis, error) {
	path := ctx.String(genesisFlag.Name)
	if path == "" {
		return genesis.NewDevnet(), nil
	}
	return genesis.LoadCustomNet(path)
}

func defaultDataDir() string {
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".stakepool")
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// makeInstanceDir returns a directory unique to the genesis, so stores of different networks never mix.
func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) (string, error) {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		return "", fmt.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0o700); err != nil {
		return "", errors.Wrapf(err, "create instance dir [%v]", instanceDir)
	}
	return instanceDir, nil
}

func openStore(ctx *cli.Context, instanceDir string) (kv.Store, error) {
	var (
		store kv.Store
		err   error
	)
	switch engine := ctx.String(dbEngineFlag.Name); engine {
	case "lvldb":
		if instanceDir == "" {
			store, err = lvldb.NewMem()
		} else {
			store, err = lvldb.New(filepath.Join(instanceDir, "main.db"), lvldb.Options{
				CacheSize:              ctx.Int(cacheFlag.Name),
				OpenFilesCacheCapacity: 64,
			})
		}
	case "badger":
		if instanceDir == "" {
			store, err = badgerdb.NewMem()
		} else {
			store, err = badgerdb.New(filepath.Join(instanceDir, "main.badger"))
		}
	default:
		return nil, fmt.Errorf("unknown db engine %q", engine)
	}
	if err != nil {
		return nil, err
	}
	return store, nil
}

func loadKey(keyFile string) (*ecdsa.PrivateKey, error) {
	if keyFile == "" {
		return nil, errors.New("key file not specified")
	}
	key, err := crypto.LoadECDSA(keyFile)
	if err != nil {
		return nil, errors.Wrapf(err, "load key [%v]", keyFile)
	}
	return key, nil
}

func handleAPITimeout(h http.Handler, timeout time.Duration) http.Handler {
	return http.TimeoutHandler(h, timeout, `{"error":"request timeout"}`)
}

// requestBodyLimit caps request bodies; signed requests are tiny.
func requestBodyLimit(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, 64*1024)
		h.ServeHTTP(w, r)
	})
}

func startAPIServer(ctx *cli.Context, handler http.Handler) (string, func(), error) {
	addr := ctx.String(apiAddrFlag.Name)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen API addr [%v]", addr)
	}
	if timeout := ctx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		handler = handleAPITimeout(handler, time.Duration(timeout)*time.Millisecond) // #nosec G115
	}
	handler = requestBodyLimit(handler)
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/", func() {
		srv.Close()
		goes.Wait()
	}, nil
}

func startMetricsServer(addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, errors.Wrapf(err, "listen metrics addr [%v]", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: time.Second}
	var goes co.Goes
	goes.Go(func() {
		srv.Serve(listener)
	})
	return "http://" + listener.Addr().String() + "/metrics", func() {
		srv.Close()
		goes.Wait()
	}, nil
}

// handleExitSignal returns a context cancelled on the first interrupt.
// A second interrupt exits immediately.
func handleExitSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		exitSignalCh := make(chan os.Signal, 1)
		signal.Notify(exitSignalCh, os.Interrupt, syscall.SIGTERM)

		sig := <-exitSignalCh
		log.Info("exit signal received", "signal", sig)
		cancel()

		<-exitSignalCh
		fatal("forced exit")
	}()
	return ctx
}
