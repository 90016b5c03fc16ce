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
	"github.com/0xsoniclabs/apitester/program"
	"github.com/0xsoniclabs/apitester/summary"
	"github.com/0xsoniclabs/apitester/utils"
	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

// InspectCommand summarizes previously written program files.
var InspectCommand = cli.Command{
	Action:    inspectAction,
	Name:      "inspect",
	Usage:     "summarize program files",
	ArgsUsage: "<program file>...",
	Flags: []cli.Flag{
		&utils.InputFlag,
		&utils.ReportFlag,
		&utils.ChartFlag,
		&utils.QuietFlag,
		&logger.LogLevelFlag,
	},
}

func inspectAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	files := append(cfg.Input, ctx.Args().Slice()...)
	if len(files) == 0 {
		return errors.New("no program files given; use --input or pass them as arguments")
	}
	return inspect(cfg, files)
}

// inspect reads the given program files; the i-th file is reported as thread i.
func inspect(cfg *config.Config, files []string) error {
	log := logger.NewLogger(cfg.LogLevel, "Inspect")
	summaries := make([]summary.Summary, 0, len(files))
	for i, file := range files {
		p, err := program.ReadProgram(file)
		if err != nil {
			return errors.Wrapf(err, "cannot read program %s", file)
		}
		log.Infof("%s: %d instructions", file, p.Len())
		summaries = append(summaries, summary.Summarize(i, p))
	}
	return printReport(cfg, "", summaries, log)
}
