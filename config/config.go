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

// Package config builds the configuration of the apitester commands from command line flags.
package config

import (
	"github.com/0xsoniclabs/apitester/apigen"
	"github.com/0xsoniclabs/apitester/kvstore"
	"github.com/0xsoniclabs/apitester/randgen"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// Config is the configuration of one command invocation.
type Config struct {
	AppName     string
	CommandName string

	NumOps      int    // operations per client thread
	Concurrency int    // number of client threads
	MaxIntBits  int    // width of generated integers
	MaxKeys     int    // preloaded keys; 0 draws them
	Seed        uint64 // seed of thread 0
	Prefix      string // key prefix of the run

	Output   string   // directory of program files
	Input    []string // program files to inspect
	DbImpl   string
	DbPath   string
	Registry string // sqlite3 run registry
	Report   string
	Chart    string
	Quiet    bool

	RecencyRate           float64
	NonBlockingCommitProb float64
	PrefixReuseProb       float64

	LogLevel string
}

// NewConfig creates and validates the configuration of the running command.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	switch {
	case cfg.NumOps < 0:
		return errors.Newf("num-ops must not be negative, got %d", cfg.NumOps)
	case cfg.Concurrency < 1:
		return errors.Newf("concurrency must be at least 1, got %d", cfg.Concurrency)
	case cfg.MaxIntBits < 1 || cfg.MaxIntBits > randgen.MaxIntBits:
		return errors.Newf("max-int-bits must be within [1, %d], got %d", randgen.MaxIntBits, cfg.MaxIntBits)
	case cfg.MaxKeys < 0:
		return errors.Newf("max-keys must not be negative, got %d", cfg.MaxKeys)
	case cfg.Prefix == "":
		return errors.New("prefix must not be empty")
	case cfg.RecencyRate < 0:
		return errors.Newf("recency-rate must not be negative, got %v", cfg.RecencyRate)
	}
	for name, p := range map[string]float64{
		"non-blocking-commit-prob": cfg.NonBlockingCommitProb,
		"prefix-reuse-prob":        cfg.PrefixReuseProb,
	} {
		if p < 0 || p > 1 {
			return errors.Newf("%s must be within [0, 1], got %v", name, p)
		}
	}
	switch cfg.DbImpl {
	case kvstore.LevelDBImpl, kvstore.PebbleImpl, kvstore.MemoryImpl:
	default:
		return errors.Newf("unknown db-impl %q", cfg.DbImpl)
	}
	return nil
}

// Layout is the key space of the configured run.
func (cfg *Config) Layout() apigen.Layout {
	return apigen.NewLayout([]byte(cfg.Prefix))
}

// GeneratorConfig is the configuration of the program generators.
func (cfg *Config) GeneratorConfig() apigen.Config {
	tunables := apigen.DefaultTunables()
	tunables.RecencyRate = cfg.RecencyRate
	tunables.NonBlockingCommitProb = cfg.NonBlockingCommitProb
	tunables.PrefixReuseProb = cfg.PrefixReuseProb
	return apigen.Config{
		NumOps:      cfg.NumOps,
		Concurrency: cfg.Concurrency,
		MaxKeys:     cfg.MaxKeys,
		Tunables:    tunables,
	}
}

// ThreadSeed is the seed of the given client thread.
func (cfg *Config) ThreadSeed(thread int) uint64 {
	return cfg.Seed + uint64(thread)
}
