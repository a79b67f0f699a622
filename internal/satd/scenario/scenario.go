// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package scenario implements the reference commit-scenario harness
// (spec §6): it runs the full pipeline against a "before" and an
// "after" snapshot of a repository, computes the delta between them,
// and compares the after-snapshot result against a scenario's
// ground-truth expectations.
package scenario

import (
	"context"
	"os"
	"sort"
	"time"

	"github.com/sourcegraph/go-diff/diff"

	"github.com/satdripple/satdripple/internal/satd/model"
	"github.com/satdripple/satdripple/internal/satd/pipeline"
	"github.com/satdripple/satdripple/internal/satd/sir"
)

// GroundTruth is a scenario's expected outcome, checked against the
// after-snapshot's actual result.
type GroundTruth struct {
	ExpectedSATD   int `yaml:"expectedSatd" json:"expected_satd"`
	ExpectedChains int `yaml:"expectedChains" json:"expected_chains"`
}

// Scenario names a before/after directory pair and its expected
// outcome. PatchFile, if set, is the on-disk path of a unified diff
// describing the change between Before and After (LoadAll writes it
// out next to the materialized snapshots); it is informational only,
// used to report which files the scenario's authors intended to change.
type Scenario struct {
	ID          int
	Name        string
	Before      string
	After       string
	PatchFile   string
	GroundTruth GroundTruth
}

// AnalysisSnapshot is one run's output, shaped for JSON persistence
// per spec §6.
type AnalysisSnapshot struct {
	SATDCount         int                       `json:"satd_count"`
	ChainCount        int                       `json:"chain_count"`
	RelationshipCount int                       `json:"relationship_count,omitempty"`
	SATDItems         []*model.DebtItem         `json:"satd_items"`
	Relationships     []*model.SatdRelationship `json:"relationships,omitempty"`
	Chains            []*model.Chain            `json:"chains"`
	DurationMS        int64                     `json:"duration_ms"`
}

// SIRScoreChange records one node's SIR movement between before and after.
type SIRScoreChange struct {
	NodeID string  `json:"node_id"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
	Delta  float64 `json:"delta"`
}

// Delta summarizes how the after-snapshot differs from the before one.
type Delta struct {
	NewSATDCount     int              `json:"new_satd_count"`
	ChainGrowth      int              `json:"chain_growth"`
	NewRelationships int              `json:"new_relationships"`
	SIRScoreChanges  []SIRScoreChange `json:"sir_score_changes"`
}

// GroundTruthComparison checks the after-snapshot against Scenario.GroundTruth.
type GroundTruthComparison struct {
	ExpectedSATD   int     `json:"expected_satd"`
	DetectedSATD   int     `json:"detected_satd"`
	Accuracy       float64 `json:"accuracy"`
	ExpectedChains int     `json:"expected_chains"`
	DetectedChains int     `json:"detected_chains"`
}

// Result is the persisted JSON shape spec §6 names.
type Result struct {
	ScenarioID            int                   `json:"scenario_id"`
	ScenarioName          string                `json:"scenario_name"`
	Timestamp             time.Time             `json:"timestamp"`
	BeforeAnalysis        AnalysisSnapshot      `json:"before_analysis"`
	AfterAnalysis         AnalysisSnapshot      `json:"after_analysis"`
	Delta                 Delta                 `json:"delta"`
	GroundTruthComparison GroundTruthComparison `json:"ground_truth_comparison"`
	ChangedFiles          []string              `json:"changed_files,omitempty"`
}

// Run executes p against both snapshots and assembles the Result.
func Run(ctx context.Context, p *pipeline.Pipeline, sc Scenario, now time.Time) (Result, error) {
	before, beforeMS := runSnapshot(ctx, p, sc.Before)
	after, afterMS := runSnapshot(ctx, p, sc.After)

	beforeSnap := toSnapshot(before, beforeMS, false)
	afterSnap := toSnapshot(after, afterMS, true)

	result := Result{
		ScenarioID:     sc.ID,
		ScenarioName:   sc.Name,
		Timestamp:      now,
		BeforeAnalysis: beforeSnap,
		AfterAnalysis:  afterSnap,
		Delta:          computeDelta(before, after),
		GroundTruthComparison: GroundTruthComparison{
			ExpectedSATD:   sc.GroundTruth.ExpectedSATD,
			DetectedSATD:   afterSnap.SATDCount,
			Accuracy:       accuracy(sc.GroundTruth.ExpectedSATD, afterSnap.SATDCount),
			ExpectedChains: sc.GroundTruth.ExpectedChains,
			DetectedChains: afterSnap.ChainCount,
		},
	}

	if sc.PatchFile != "" {
		changed, err := changedFiles(sc.PatchFile)
		if err == nil {
			result.ChangedFiles = changed
		}
	}

	return result, nil
}

func runSnapshot(ctx context.Context, p *pipeline.Pipeline, root string) (pipeline.Result, int64) {
	start := time.Now()
	res := p.Run(ctx, root)
	return res, time.Since(start).Milliseconds()
}

func toSnapshot(res pipeline.Result, durationMS int64, includeRelationships bool) AnalysisSnapshot {
	snap := AnalysisSnapshot{
		SATDCount:  len(res.DebtItems),
		ChainCount: len(res.Chains),
		SATDItems:  res.DebtItems,
		Chains:     res.Chains,
		DurationMS: durationMS,
	}
	if includeRelationships {
		snap.RelationshipCount = len(res.Relationships)
		snap.Relationships = res.Relationships
	}
	return snap
}

func computeDelta(before, after pipeline.Result) Delta {
	d := Delta{
		NewSATDCount:     len(after.DebtItems) - len(before.DebtItems),
		ChainGrowth:      len(after.Chains) - len(before.Chains),
		NewRelationships: len(after.Relationships) - len(before.Relationships),
	}

	beforeSIR := indexSIR(before.SIRResults)
	afterSIR := indexSIR(after.SIRResults)
	ids := make([]string, 0, len(afterSIR))
	for id := range afterSIR {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		afterScore := afterSIR[id]
		beforeScore, existed := beforeSIR[id]
		if !existed {
			continue
		}
		if afterScore != beforeScore {
			d.SIRScoreChanges = append(d.SIRScoreChanges, SIRScoreChange{
				NodeID: id, Before: beforeScore, After: afterScore, Delta: afterScore - beforeScore,
			})
		}
	}
	return d
}

func indexSIR(results []sir.Result) map[string]float64 {
	m := make(map[string]float64, len(results))
	for _, r := range results {
		m[r.NodeID] = r.SIR
	}
	return m
}

func accuracy(expected, detected int) float64 {
	if expected == 0 {
		if detected == 0 {
			return 1
		}
		return 0
	}
	off := expected - detected
	if off < 0 {
		off = -off
	}
	acc := 1 - float64(off)/float64(expected)
	if acc < 0 {
		acc = 0
	}
	return acc
}

// changedFiles parses a unified diff at path and returns the list of
// files it touches, used to annotate which files a scenario's authors
// intended the before/after snapshots to differ on.
func changedFiles(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fileDiffs, err := diff.ParseMultiFileDiff(raw)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(fileDiffs))
	for _, fd := range fileDiffs {
		names = append(names, fd.NewName)
	}
	return names, nil
}
