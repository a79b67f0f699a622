// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/satdripple/satdripple/internal/satd/classify"
	"github.com/satdripple/satdripple/internal/satd/pipeline"
	satdscenario "github.com/satdripple/satdripple/internal/satd/scenario"
	"github.com/satdripple/satdripple/internal/satd/vcs"
)

var (
	scenarioID     int
	scenarioAll    bool
	scenarioOutput string
)

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Run the reference commit-scenario harness",
	RunE:  runScenario,
}

func init() {
	scenarioCmd.Flags().IntVar(&scenarioID, "scenario", 0, "scenario id to run")
	scenarioCmd.Flags().BoolVar(&scenarioAll, "all", false, "run every registered scenario")
	scenarioCmd.Flags().StringVar(&scenarioOutput, "output", "", "JSON result file destination; empty prints to stdout")
}

func runScenario(cmd *cobra.Command, args []string) error {
	if !scenarioAll && scenarioID == 0 {
		return badArgs("either --scenario N or --all is required")
	}

	all, err := satdscenario.LoadAll()
	if err != nil {
		return err
	}

	var toRun []satdscenario.Scenario
	if scenarioAll {
		toRun = all
	} else {
		sc, err := satdscenario.ByID(all, scenarioID)
		if err != nil {
			return badArgs("%s", err.Error())
		}
		toRun = []satdscenario.Scenario{sc}
	}

	probe := &vcs.NoopProbe{}
	p := pipeline.New(probe, &classify.NoopClassifier{}, cfg)

	results := make([]satdscenario.Result, 0, len(toRun))
	for _, sc := range toRun {
		res, err := satdscenario.Run(context.Background(), p, sc, time.Now())
		if err != nil {
			return err
		}
		results = append(results, res)
	}

	return writeScenarioResults(cmd, results)
}

func writeScenarioResults(cmd *cobra.Command, results []satdscenario.Result) error {
	var payload any = results
	if len(results) == 1 {
		payload = results[0]
	}

	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	if scenarioOutput == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	}
	return os.WriteFile(scenarioOutput, encoded, 0o644)
}
