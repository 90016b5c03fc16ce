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
	"fmt"
	"strings"

	"github.com/0xsoniclabs/apitester/apigen"
	"github.com/0xsoniclabs/apitester/config"
	"github.com/0xsoniclabs/apitester/logger"
	"github.com/0xsoniclabs/apitester/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v2"
)

// ResultsCommand lists the key ranges compared between the interpreters of a run.
var ResultsCommand = cli.Command{
	Action: resultsAction,
	Name:   "results",
	Usage:  "list the key ranges compared after a run",
	Flags: []cli.Flag{
		&utils.PrefixFlag,
		&utils.QuietFlag,
		&utils.ReportFlag,
		&logger.LogLevelFlag,
	},
}

func resultsAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	render := func() string {
		return resultsTable(apigen.ResultSpecifications(cfg.Layout()))
	}
	printers := utils.NewPrinters().
		AddPrinterToConsole(cfg.Quiet, render).
		AddPrinterToFile(cfg.Report, render)
	return printers.Print()
}

func resultsTable(specs []apigen.ResultSpecification) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Name", "Subspace", "Key Start", "Ordering", "Ignored Errors"})
	for _, s := range specs {
		ordering := "-"
		if s.OrderingIndex != nil {
			ordering = fmt.Sprint(*s.OrderingIndex)
		}
		ignored := make([]string, len(s.GlobalErrorFilter))
		for i, code := range s.GlobalErrorFilter {
			ignored[i] = code.Error()
		}
		t.AppendRow(table.Row{
			s.Name,
			fmt.Sprintf("%x", s.Subspace.Bytes()),
			s.KeyStartIndex,
			ordering,
			strings.Join(ignored, ", "),
		})
	}
	return t.Render()
}
