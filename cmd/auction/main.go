// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/auction/comm"
	"github.com/vechain/auction/config"
	"github.com/vechain/auction/engine"
	"github.com/vechain/auction/log"
	"github.com/vechain/auction/types"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "auction"
	app.Usage = "Proof-of-stake auction ledger"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Commands = []cli.Command{
		{
			Name:   "defaults",
			Usage:  "print the effective engine and synchronizer configuration",
			Flags:  []cli.Flag{configFlag, syncConfigFlag},
			Action: defaultsAction,
		},
		{
			Name:      "run",
			Usage:     "replay scenario files, each against its own store",
			ArgsUsage: "<scenario.yaml>...",
			Flags: []cli.Flag{
				dataDirFlag,
				parallelFlag,
				verbosityFlag,
				jsonLogsFlag,
				enableMetricsFlag,
				metricsAddrFlag,
			},
			Action: runAction,
		},
		{
			Name:      "era-validators",
			Usage:     "print the validator set recorded in a replayed store",
			ArgsUsage: "<store-dir>",
			Flags:     []cli.Flag{configFlag, eraFlag, verbosityFlag},
			Action:    eraValidatorsAction,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type defaultsOutput struct {
	Engine *config.File    `yaml:"engine"`
	Sync   comm.SyncConfig `yaml:"sync"`
}

func defaultsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	syncCfg, err := loadSyncConfig(ctx)
	if err != nil {
		return err
	}
	return printYAML(ctx.App.Writer, defaultsOutput{Engine: config.NewFile(cfg), Sync: syncCfg})
}

func runAction(ctx *cli.Context) error {
	initLogger(ctx)

	paths := []string(ctx.Args())
	if len(paths) == 0 {
		return errors.New("no scenario files given")
	}

	if ctx.Bool(enableMetricsFlag.Name) {
		stop, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		defer stop()
	}

	exitCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reports, err := replayAll(exitCtx, paths, ctx.String(dataDirFlag.Name), ctx.Int(parallelFlag.Name))
	if err != nil {
		return err
	}
	for _, r := range reports {
		fmt.Fprintf(ctx.App.Writer, "%s\tera=%d\tops=%d\troot=%v\n", r.Name, r.Era, r.Ops, r.StateRoot)
	}
	return nil
}

// replayAll replays every scenario on its own store. Reports keep the order of paths.
func replayAll(ctx context.Context, paths []string, dataDir string, parallel int) ([]*Report, error) {
	scenarios := make([]*Scenario, len(paths))
	for i, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		scenarios[i] = s
	}

	reports := make([]*Report, len(scenarios))
	g, ctx := errgroup.WithContext(ctx)
	if parallel > 0 {
		g.SetLimit(parallel)
	}
	for i, s := range scenarios {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			store, err := openStore(dataDir, storeName(i, paths[i]))
			if err != nil {
				return err
			}
			defer store.Close()

			report, err := s.Replay(store)
			if err != nil {
				return err
			}
			logger.Info("scenario replayed", "name", report.Name, "era", report.Era, "root", report.StateRoot)
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func eraValidatorsAction(ctx *cli.Context) error {
	initLogger(ctx)

	if ctx.NArg() != 1 {
		return errors.New("expected one store directory")
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	store, err := openStore(ctx.Args().First(), "")
	if err != nil {
		return err
	}
	defer store.Close()

	e, err := engine.New(store, cfg)
	if err != nil {
		return err
	}
	era := types.EraID(ctx.Uint64(eraFlag.Name))
	if !ctx.IsSet(eraFlag.Name) {
		if era, err = e.CurrentEra(); err != nil {
			return err
		}
	}
	set, found, err := e.GetEraValidators(era)
	if err != nil {
		return err
	}
	if !found {
		return errors.Errorf("no validators recorded for era %d", era)
	}
	for _, w := range set {
		fmt.Fprintf(ctx.App.Writer, "%v\t%s\n", w.Validator, w.Stake.Dec())
	}
	return nil
}

func printYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return errors.Wrap(err, "encode yaml")
	}
	return enc.Close()
}
