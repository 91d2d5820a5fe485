// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	pkgerrors "github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/auction/comm"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/kv"
	"github.com/vechain/auction/log"
	"github.com/vechain/auction/lvldb"
	"github.com/vechain/auction/metrics"
)

func initLogger(ctx *cli.Context) {
	level := log.FromVerbosity(ctx.Int(verbosityFlag.Name))

	var handler slog.Handler
	if ctx.Bool(jsonLogsFlag.Name) {
		handler = log.JSONHandler(os.Stderr, level)
	} else {
		useColor := isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())
		handler = log.TerminalHandler(os.Stderr, level, useColor)
	}
	log.SetDefault(handler)
}

// buildConfig turns the configuration panics into errors, as the values come from user input.
func buildConfig(o config.Overrides) (cfg *config.EngineConfig, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid config: %v", r)
		}
	}()
	return config.New(o), nil
}

func loadConfig(ctx *cli.Context) (*config.EngineConfig, error) {
	var o config.Overrides
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if o, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	return buildConfig(o)
}

func loadSyncConfig(ctx *cli.Context) (comm.SyncConfig, error) {
	if path := ctx.String(syncConfigFlag.Name); path != "" {
		return comm.LoadSyncConfig(path)
	}
	return comm.DefaultSyncConfig(), nil
}

// storeName derives a directory name from a scenario file path.
func storeName(index int, path string) string {
	base := filepath.Base(path)
	return fmt.Sprintf("%02d-%s", index, strings.TrimSuffix(base, filepath.Ext(base)))
}

func openStore(dataDir, name string) (kv.StoreCloser, error) {
	if dataDir == "" {
		return lvldb.NewMem()
	}
	path := filepath.Join(dataDir, name)
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, pkgerrors.Wrap(err, "create data dir")
	}
	return lvldb.New(path, lvldb.Options{})
}

// startMetricsServer serves the prometheus registry until the returned func is called.
func startMetricsServer(addr string) (func(), error) {
	metrics.InitializePrometheusMetrics()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "listen metrics addr %s", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: time.Second, ReadTimeout: 5 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "error", err)
		}
	}()
	logger.Info("metrics server started", "addr", listener.Addr())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		<-done
	}, nil
}
