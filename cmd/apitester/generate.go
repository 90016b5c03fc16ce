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

package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/0xsoniclabs/apitester/apigen"
	"github.com/0xsoniclabs/apitester/config"
	"github.com/0xsoniclabs/apitester/kvstore"
	"github.com/0xsoniclabs/apitester/logger"
	"github.com/0xsoniclabs/apitester/program"
	"github.com/0xsoniclabs/apitester/randgen"
	"github.com/0xsoniclabs/apitester/register"
	"github.com/0xsoniclabs/apitester/summary"
	"github.com/0xsoniclabs/apitester/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// GenerateCommand generates one program per client thread.
var GenerateCommand = cli.Command{
	Action: generateAction,
	Name:   "generate",
	Usage:  "generate one program per client thread",
	Flags: []cli.Flag{
		&utils.NumOpsFlag,
		&utils.ConcurrencyFlag,
		&utils.MaxIntBitsFlag,
		&utils.MaxKeysFlag,
		&utils.SeedFlag,
		&utils.PrefixFlag,
		&utils.OutputFlag,
		&utils.DbImplFlag,
		&utils.DbFlag,
		&utils.RegistryFlag,
		&utils.ReportFlag,
		&utils.ChartFlag,
		&utils.QuietFlag,
		&utils.RecencyRateFlag,
		&utils.NonBlockingCommitProbFlag,
		&utils.PrefixReuseProbFlag,
		&logger.LogLevelFlag,
	},
	Description: `
Generates a program for each of the --concurrency client threads; thread i is
seeded with --seed + i. Programs are written to --output, inserted into the
store at --db and registered in --registry when the flags are set.`,
}

// generated is the program of one client thread.
type generated struct {
	thread  int
	seed    uint64
	maxKeys int
	prog    *program.Program
	output  string
}

func generateAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	return generate(ctx.Context, cfg, time.Now().Unix())
}

// generate runs all steps of the generate command.
func generate(ctx context.Context, cfg *config.Config, timestamp int64) error {
	log := logger.NewLogger(cfg.LogLevel, "Generate")
	start := time.Now()

	programs, err := generatePrograms(cfg)
	if err != nil {
		return err
	}
	h, m, s := logger.ParseTime(time.Since(start))
	log.Noticef("Generated %d programs in %vh %vm %vs", len(programs), h, m, s)

	if cfg.Output != "" {
		if err = writePrograms(cfg, programs); err != nil {
			return err
		}
		log.Noticef("Programs written to %s", cfg.Output)
	}

	if cfg.DbPath != "" {
		if err = insertPrograms(ctx, cfg, programs); err != nil {
			return err
		}
		log.Noticef("Programs inserted into %s store %s", cfg.DbImpl, cfg.DbPath)
	}

	var runId string
	if cfg.Registry != "" {
		runId, err = register.MakeRunIdentity(timestamp, cfg).GetId()
		if err != nil {
			return err
		}
		reg, err := register.NewRunRegistry(cfg.Registry)
		if err != nil {
			return err
		}
		err = errors.CombineErrors(registerRuns(reg, runId, cfg, programs), reg.Close())
		if err != nil {
			return err
		}
		log.Noticef("Run %s registered in %s", runId, cfg.Registry)
	}

	summaries := make([]summary.Summary, len(programs))
	for i, g := range programs {
		summaries[i] = summary.Summarize(g.thread, g.prog)
	}
	return printReport(cfg, runId, summaries, log)
}

// generatePrograms generates the programs of all client threads concurrently.
func generatePrograms(cfg *config.Config) ([]generated, error) {
	programs := make([]generated, cfg.Concurrency)
	errs := make([]error, cfg.Concurrency)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go func(thread int) {
			defer wg.Done()
			programs[thread], errs[thread] = generateThread(cfg, thread)
		}(i)
	}
	wg.Wait()

	var err error
	for _, e := range errs {
		err = errors.CombineErrors(err, e)
	}
	if err != nil {
		return nil, err
	}
	return programs, nil
}

func generateThread(cfg *config.Config, thread int) (generated, error) {
	seed := cfg.ThreadSeed(thread)
	rnd, err := randgen.New(seed, cfg.MaxIntBits)
	if err != nil {
		return generated{}, err
	}
	log := logger.NewLogger(cfg.LogLevel, fmt.Sprintf("Generator-%d", thread))
	gen, err := apigen.NewGenerator(cfg.GeneratorConfig(), cfg.Layout(), rnd, log)
	if err != nil {
		return generated{}, err
	}
	prog := gen.Generate(thread)
	log.Infof("Thread %d: %d instructions from seed %d", thread, prog.Len(), seed)
	return generated{
		thread:  thread,
		seed:    seed,
		maxKeys: gen.MaxKeys(),
		prog:    prog,
	}, nil
}

// programFile is the file of the program of a thread within dir.
func programFile(dir string, prefix string, thread int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_thread%d.prog", prefix, thread))
}

func writePrograms(cfg *config.Config, programs []generated) error {
	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %s; %w", cfg.Output, err)
	}
	for i := range programs {
		file := programFile(cfg.Output, cfg.Prefix, programs[i].thread)
		if err := program.WriteProgram(file, programs[i].prog); err != nil {
			return errors.Wrapf(err, "cannot write program of thread %d", programs[i].thread)
		}
		programs[i].output = file
	}
	return nil
}

func insertPrograms(ctx context.Context, cfg *config.Config, programs []generated) (err error) {
	store, err := kvstore.Open(cfg.DbImpl, cfg.DbPath)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, store.Close())
	}()
	return storePrograms(ctx, store, cfg.Layout(), programs)
}

// storePrograms inserts the instructions of each thread into its own subspace.
func storePrograms(ctx context.Context, store kvstore.Store, layout apigen.Layout, programs []generated) error {
	for _, g := range programs {
		if err := g.prog.InsertOperations(ctx, store, layout.Instructions(g.thread)); err != nil {
			return errors.Wrapf(err, "cannot insert program of thread %d", g.thread)
		}
	}
	return nil
}

func registerRuns(reg register.RunRegistry, runId string, cfg *config.Config, programs []generated) error {
	runs := make([]register.Run, len(programs))
	for i, g := range programs {
		digest := g.prog.Digest()
		runs[i] = register.Run{
			ID:           runId,
			Thread:       g.thread,
			Seed:         g.seed,
			Concurrency:  cfg.Concurrency,
			NumOps:       cfg.NumOps,
			MaxKeys:      g.maxKeys,
			Instructions: g.prog.Len(),
			Digest:       hex.EncodeToString(digest[:]),
			Output:       g.output,
		}
	}
	return reg.Add(runs...)
}
