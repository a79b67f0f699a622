// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/satdripple/satdripple/internal/satd/classify"
	"github.com/satdripple/satdripple/internal/satd/cliout"
	"github.com/satdripple/satdripple/internal/satd/pipeline"
	"github.com/satdripple/satdripple/internal/satd/sir"
	"github.com/satdripple/satdripple/internal/satd/vcs"
)

var scanOpenAIKey string

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a repository for self-admitted technical debt and print a ranked report",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanOpenAIKey, "openai-key", "", "OpenAI API key; empty uses the deterministic NoopClassifier")
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return badArgs("path %q is not a directory", root)
	}

	var probe vcs.Probe
	if gitProbe, err := vcs.OpenGoGitProbe(root); err == nil {
		probe = gitProbe
	} else {
		probe = &vcs.NoopProbe{}
	}

	var classifier classify.Classifier = &classify.NoopClassifier{}
	if scanOpenAIKey != "" {
		classifier = classify.NewOpenAIClassifier(scanOpenAIKey, classify.DefaultOpenAIConfig())
	}

	p := pipeline.New(probe, classifier, cfg)
	res := p.Run(context.Background(), root)
	if res.Err != nil {
		return res.Err
	}
	return printReport(cmd, res)
}

func printReport(cmd *cobra.Command, res pipeline.Result) error {
	w := cmd.OutOrStdout()
	colored := cliout.IsTerminal(w)

	byID := indexItems(res)
	ranked := sir.RankBySIR(res.SIRResults)
	chainsByNode := chainMembership(res)

	rows := cliout.BuildRankedRows(byID, ranked, chainsByNode)
	cliout.RenderRanked(w, rows, colored)

	if len(res.Chains) > 0 {
		fmt.Fprintln(w)
		cliout.RenderChains(w, res.Chains, sirIndex(res.SIRResults))
	}
	return nil
}
