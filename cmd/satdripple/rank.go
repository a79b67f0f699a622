// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/satdripple/satdripple/internal/satd/classify"
	"github.com/satdripple/satdripple/internal/satd/cliout"
	"github.com/satdripple/satdripple/internal/satd/pipeline"
	"github.com/satdripple/satdripple/internal/satd/sir"
	"github.com/satdripple/satdripple/internal/satd/vcs"
)

var rankTopN int

var rankCmd = &cobra.Command{
	Use:   "rank [path]",
	Short: "Print only the top-N ranked debt items by SIR score",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRank,
}

func init() {
	rankCmd.Flags().IntVar(&rankTopN, "top", 10, "number of highest-SIR items to show")
}

func runRank(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return badArgs("path %q is not a directory", root)
	}
	if rankTopN < 1 {
		return badArgs("--top must be >= 1, got %d", rankTopN)
	}

	var probe vcs.Probe
	if gitProbe, err := vcs.OpenGoGitProbe(root); err == nil {
		probe = gitProbe
	} else {
		probe = &vcs.NoopProbe{}
	}

	p := pipeline.New(probe, &classify.NoopClassifier{}, cfg)
	res := p.Run(context.Background(), root)
	if res.Err != nil {
		return res.Err
	}

	ranked := sir.RankBySIR(res.SIRResults)
	if len(ranked) > rankTopN {
		ranked = ranked[:rankTopN]
	}

	byID := indexItems(res)
	chainsByNode := chainMembership(res)
	rows := cliout.BuildRankedRows(byID, ranked, chainsByNode)
	cliout.RenderRanked(cmd.OutOrStdout(), rows, cliout.IsTerminal(cmd.OutOrStdout()))
	return nil
}
