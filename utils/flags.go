// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"github.com/0xsoniclabs/apitester/apigen"
	"github.com/0xsoniclabs/apitester/kvstore"
	"github.com/urfave/cli/v2"
)

// Command line flags shared by the apitester commands.
var (
	NumOpsFlag = cli.IntFlag{
		Name:  "num-ops",
		Usage: "number of operations generated by each client thread",
		Value: 100,
	}
	ConcurrencyFlag = cli.IntFlag{
		Name:  "concurrency",
		Usage: "number of client threads; 1 generates sequential programs",
		Value: 1,
	}
	MaxIntBitsFlag = cli.IntFlag{
		Name:  "max-int-bits",
		Usage: "maximum width of generated integers",
		Value: 64,
	}
	MaxKeysFlag = cli.IntFlag{
		Name:  "max-keys",
		Usage: "number of preloaded keys; 0 draws it at random",
		Value: 0,
	}
	SeedFlag = cli.Uint64Flag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "seed of the random generator; thread i uses seed+i",
	}
	PrefixFlag = cli.StringFlag{
		Name:  "prefix",
		Usage: "key prefix of the test run",
		Value: "test_api",
	}
	OutputFlag = cli.PathFlag{
		Name:  "output",
		Usage: "directory receiving one program file per client thread",
	}
	InputFlag = cli.StringSliceFlag{
		Name:  "input",
		Usage: "program files to inspect",
	}
	DbImplFlag = cli.StringFlag{
		Name:  "db-impl",
		Usage: "store implementation (" + kvstore.LevelDBImpl + ", " + kvstore.PebbleImpl + ", " + kvstore.MemoryImpl + ")",
		Value: kvstore.LevelDBImpl,
	}
	DbFlag = cli.PathFlag{
		Name:  "db",
		Usage: "path of the store programs are inserted into",
	}
	RegistryFlag = cli.PathFlag{
		Name:  "registry",
		Usage: "sqlite3 database recording generated programs",
	}
	ReportFlag = cli.PathFlag{
		Name:  "report",
		Usage: "file receiving the summary of the generated programs",
	}
	ChartFlag = cli.PathFlag{
		Name:  "chart",
		Usage: "HTML file receiving a chart of the generated operations",
	}
	QuietFlag = cli.BoolFlag{
		Name:  "quiet",
		Usage: "do not print the summary to the console",
	}
	RecencyRateFlag = cli.Float64Flag{
		Name:  "recency-rate",
		Usage: "bias of key reuse towards recently generated keys; 0 reuses uniformly",
		Value: apigen.DefaultTunables().RecencyRate,
	}
	NonBlockingCommitProbFlag = cli.Float64Flag{
		Name:  "non-blocking-commit-prob",
		Usage: "probability that a commit of a concurrent program is not waited on",
		Value: apigen.DefaultTunables().NonBlockingCommitProb,
	}
	PrefixReuseProbFlag = cli.Float64Flag{
		Name:  "prefix-reuse-prob",
		Usage: "probability that a reused key is truncated to a prefix",
		Value: apigen.DefaultTunables().PrefixReuseProb,
	}
)
