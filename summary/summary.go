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

// Package summary describes the instruction mix of generated programs.
package summary

import (
	"cmp"
	"fmt"
	"io"

	"github.com/0xsoniclabs/apitester/program"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gonum.org/v1/gonum/stat"
)

// Summary describes one program.
type Summary struct {
	Thread       int
	Instructions int
	Setup        int
	Core         int
	Finalization int
	// Ops counts the named operations of the main phase, SWAP included.
	Ops map[string]int
	// Pushes counts the pushes of the main phase.
	Pushes int
	// OperandMean and OperandStdDev describe how many pushes precede an operation.
	OperandMean   float64
	OperandStdDev float64
}

// OpCount is the number of occurrences of an operation.
type OpCount struct {
	Op    string
	Count int
}

// Summarize describes the program of the given thread.
func Summarize(thread int, p *program.Program) Summary {
	s := Summary{
		Thread:       thread,
		Instructions: p.Len(),
		Setup:        p.SetupEnd(),
		Core:         p.FinalizationStart() - p.SetupEnd(),
		Finalization: p.Len() - p.FinalizationStart(),
		Ops:          map[string]int{},
	}
	var operands []float64
	pending := 0
	for _, in := range p.Core() {
		if in.IsPush() {
			s.Pushes++
			pending++
			continue
		}
		s.Ops[in.Op]++
		operands = append(operands, float64(pending))
		pending = 0
	}
	if len(operands) > 0 {
		s.OperandMean, s.OperandStdDev = stat.MeanStdDev(operands, nil)
	}
	return s
}

// Totals sums the operation counts of all summaries, most frequent first.
func Totals(summaries []Summary) []OpCount {
	totals := map[string]int{}
	for _, s := range summaries {
		for op, n := range s.Ops {
			totals[op] += n
		}
	}
	counts := make([]OpCount, 0, len(totals))
	for op, n := range totals {
		counts = append(counts, OpCount{op, n})
	}
	slices.SortFunc(counts, func(a, b OpCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Op, b.Op)
	})
	return counts
}

// Table renders one row per program followed by the operation totals.
func Table(summaries []Summary) string {
	p := message.NewPrinter(language.English)

	programs := table.NewWriter()
	programs.AppendHeader(table.Row{"Thread", "Instructions", "Setup", "Main", "Finalization", "Pushes", "Operands/Op"})
	for _, s := range summaries {
		programs.AppendRow(table.Row{
			s.Thread,
			p.Sprintf("%d", s.Instructions),
			p.Sprintf("%d", s.Setup),
			p.Sprintf("%d", s.Core),
			p.Sprintf("%d", s.Finalization),
			p.Sprintf("%d", s.Pushes),
			p.Sprintf("%.2f ± %.2f", s.OperandMean, s.OperandStdDev),
		})
	}

	ops := table.NewWriter()
	ops.AppendHeader(table.Row{"Operation", "Count"})
	for _, c := range Totals(summaries) {
		ops.AppendRow(table.Row{c.Op, p.Sprintf("%d", c.Count)})
	}
	return programs.Render() + "\n" + ops.Render()
}

// Rows returns one (thread, operation, count) row per operation and program,
// most frequent first.
func Rows(summaries []Summary) [][]any {
	var rows [][]any
	for _, s := range summaries {
		for _, c := range Totals([]Summary{s}) {
			rows = append(rows, []any{s.Thread, c.Op, c.Count})
		}
	}
	return rows
}

// RenderChart writes an HTML bar chart of the operation counts, one series per program.
func RenderChart(w io.Writer, summaries []Summary) error {
	totals := Totals(summaries)
	labels := make([]string, len(totals))
	for i, c := range totals {
		labels[i] = c.Op
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithInitializationOpts(opts.Initialization{
		Theme:     types.ThemeChalk,
		PageTitle: "Generated Operations",
		Height:    "1300px",
	}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title: "Generated Operations",
		}))
	bar.SetXAxis(labels)
	for _, s := range summaries {
		items := make([]opts.BarData, len(labels))
		for i, op := range labels {
			items[i] = opts.BarData{Value: s.Ops[op]}
		}
		bar.AddSeries(fmt.Sprintf("Thread %d", s.Thread), items)
	}
	bar.XYReversal()
	return bar.Render(w)
}
