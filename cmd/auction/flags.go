// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Usage: "directory for scenario databases (in memory if empty)",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to an engine config file",
	}
	syncConfigFlag = cli.StringFlag{
		Name:  "sync-config",
		Usage: "path to a block synchronizer config file",
	}
	parallelFlag = cli.IntFlag{
		Name:  "parallel",
		Value: 4,
		Usage: "maximum number of scenarios replayed at once",
	}
	eraFlag = cli.Uint64Flag{
		Name:  "era",
		Usage: "era to read validators of (last recorded if unset)",
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
)
