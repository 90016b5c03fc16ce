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
	"github.com/0xsoniclabs/apitester/config"
	"github.com/0xsoniclabs/apitester/logger"
	"github.com/0xsoniclabs/apitester/register"
	"github.com/0xsoniclabs/apitester/utils"
	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// RunsCommand lists the runs recorded in a registry.
var RunsCommand = cli.Command{
	Action: runsAction,
	Name:   "runs",
	Usage:  "list registered runs",
	Flags: []cli.Flag{
		&utils.RegistryFlag,
		&logger.LogLevelFlag,
	},
}

func runsAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.Registry == "" {
		return errors.New("runs requires --registry")
	}
	reg, err := register.NewRunRegistry(cfg.Registry)
	if err != nil {
		return err
	}
	out, err := listRuns(reg)
	if err = errors.CombineErrors(err, reg.Close()); err != nil {
		return err
	}
	return utils.NewPrinters().AddPrinterToConsole(false, func() string { return out }).Print()
}

func listRuns(reg register.RunRegistry) (string, error) {
	runs, err := reg.Runs()
	if err != nil {
		return "", err
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Run", "Thread", "Seed", "Concurrency", "Ops", "Keys", "Instructions", "Digest", "Output"})
	for _, r := range runs {
		t.AppendRow(table.Row{r.ID, r.Thread, r.Seed, r.Concurrency, r.NumOps, r.MaxKeys, r.Instructions, r.Digest, r.Output})
	}
	return t.Render(), nil
}
