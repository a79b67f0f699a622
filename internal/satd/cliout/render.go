// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package cliout renders a run's ranked DebtItems and chains as a
// terminal table, following the teacher's internal/output package:
// github.com/olekukonko/tablewriter for layout,
// github.com/fatih/color for emphasis gated on a TTY check via
// github.com/mattn/go-isatty, and github.com/schollz/progressbar/v3
// for the scan phase's progress indicator.
package cliout

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/satdripple/satdripple/internal/satd/model"
	"github.com/satdripple/satdripple/internal/satd/sir"
)

// IsTerminal reports whether w is an interactive terminal that color
// output should be enabled for.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RankedRow is one line of the ranked-DebtItem report.
type RankedRow struct {
	Rank       int
	ID         string
	File       string
	Line       int
	DebtType   model.DebtType
	SIR        float64
	InChain    bool
	ChainCount int
}

// BuildRankedRows merges SIR results with their DebtItems into report
// rows, highest SIR first (sir.RankBySIR already guarantees this
// ordering, stable on ties).
func BuildRankedRows(items map[string]*model.DebtItem, ranked []sir.Result, chainsByNode map[string][]string) []RankedRow {
	rows := make([]RankedRow, 0, len(ranked))
	for i, r := range ranked {
		item := items[r.NodeID]
		if item == nil {
			continue
		}
		chains := chainsByNode[r.NodeID]
		rows = append(rows, RankedRow{
			Rank:       i + 1,
			ID:         item.ID,
			File:       item.File,
			Line:       item.Line,
			DebtType:   item.DebtType,
			SIR:        r.SIR,
			InChain:    len(chains) > 0,
			ChainCount: len(chains),
		})
	}
	return rows
}

// RenderRanked writes rows to w as a table with no outer border. High-SIR rows
// (>= 0.66) render their score in red, mid rows in yellow, when color
// is enabled.
func RenderRanked(w io.Writer, rows []RankedRow, colored bool) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
			Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{Left: tw.Off, Right: tw.Off, Top: tw.Off, Bottom: tw.Off},
		}),
	)

	table.Header([]string{"Rank", "ID", "Location", "Type", "SIR", "Chains"})
	for _, row := range rows {
		sirCell := fmt.Sprintf("%.3f", row.SIR)
		if colored {
			sirCell = colorizeSIR(row.SIR, sirCell)
		}
		chainCell := "-"
		if row.InChain {
			chainCell = fmt.Sprintf("%d", row.ChainCount)
		}
		table.Append([]string{
			fmt.Sprintf("%d", row.Rank),
			row.ID,
			fmt.Sprintf("%s:%d", row.File, row.Line),
			string(row.DebtType),
			sirCell,
			chainCell,
		})
	}
	table.Render()
}

func colorizeSIR(score float64, text string) string {
	switch {
	case score >= 0.66:
		return color.New(color.FgRed, color.Bold).Sprint(text)
	case score >= 0.33:
		return color.New(color.FgYellow).Sprint(text)
	default:
		return color.New(color.FgGreen).Sprint(text)
	}
}

// RenderChains writes a short summary table of discovered chains.
func RenderChains(w io.Writer, chains []*model.Chain, sirByNode map[string]sir.Result) {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
			Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignLeft}},
		}),
	)
	table.Header([]string{"Chain", "Size", "TotalWeight", "RepresentativeNode", "ChainSIR"})
	for _, c := range chains {
		score, rep := sir.ChainSIR(c, sirByNode)
		table.Append([]string{
			c.ID,
			fmt.Sprintf("%d", c.Length()),
			fmt.Sprintf("%.3f", c.TotalWeight),
			rep,
			fmt.Sprintf("%.3f", score),
		})
	}
	table.Render()
}
