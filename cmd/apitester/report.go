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
	"bytes"

	"github.com/0xsoniclabs/apitester/config"
	"github.com/0xsoniclabs/apitester/logger"
	"github.com/0xsoniclabs/apitester/summary"
	"github.com/0xsoniclabs/apitester/utils"
	"github.com/cockroachdb/errors"
)

const (
	// SQL statement for creating the operation count table
	createOperationsSQL = `
CREATE TABLE IF NOT EXISTS operations (
	id TEXT NOT NULL,
	thread INTEGER NOT NULL,
	op TEXT NOT NULL,
	count INTEGER NOT NULL
);
`
	// SQL statement for inserting the count of one operation of one program
	insertOperationSQL = `INSERT INTO operations (id, thread, op, count) VALUES (?, ?, ?, ?)`
)

// newReportPrinters prints the summaries to the console, the report file and the chart file.
// If runId is set, operation counts are also stored in the registry.
func newReportPrinters(cfg *config.Config, runId string, summaries []summary.Summary, log logger.Logger) (*utils.Printers, error) {
	render := func() string {
		return summary.Table(summaries)
	}
	printers := utils.NewPrinters().
		AddPrinterToConsole(cfg.Quiet, render).
		AddPrinterToFile(cfg.Report, render).
		AddPrinterToFile(cfg.Chart, func() string {
			var buf bytes.Buffer
			if err := summary.RenderChart(&buf, summaries); err != nil {
				log.Errorf("cannot render chart; %v", err)
			}
			return buf.String()
		})

	if runId == "" {
		return printers, nil
	}
	return printers.AddPrinterToSqlite3(cfg.Registry, createOperationsSQL, insertOperationSQL, func() [][]any {
		rows := summary.Rows(summaries)
		for i, row := range rows {
			rows[i] = append([]any{runId}, row...)
		}
		return rows
	})
}

// printReport prints the summaries to all configured sinks.
func printReport(cfg *config.Config, runId string, summaries []summary.Summary, log logger.Logger) (err error) {
	printers, err := newReportPrinters(cfg, runId, summaries, log)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.CombineErrors(err, printers.Close())
	}()
	return printers.Print()
}
