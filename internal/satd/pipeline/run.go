// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/satdripple/satdripple/internal/satd/chain"
	"github.com/satdripple/satdripple/internal/satd/classify"
	"github.com/satdripple/satdripple/internal/satd/config"
	"github.com/satdripple/satdripple/internal/satd/detect"
	"github.com/satdripple/satdripple/internal/satd/errs"
	"github.com/satdripple/satdripple/internal/satd/merge"
	"github.com/satdripple/satdripple/internal/satd/model"
	"github.com/satdripple/satdripple/internal/satd/relate"
	"github.com/satdripple/satdripple/internal/satd/scan"
	"github.com/satdripple/satdripple/internal/satd/sir"
	"github.com/satdripple/satdripple/internal/satd/telemetry"
	"github.com/satdripple/satdripple/internal/satd/vcs"
)

// Result is the pipeline's final, immutable output. Whichever fields
// a failed run reached before the fatal error remain populated, per
// spec §4.6's "partial results of prior stages are preserved where
// safe".
type Result struct {
	State           State
	Err             error
	Summary         detect.Summary
	DebtItems       []*model.DebtItem
	Relationships   []*model.SatdRelationship
	Chains          []*model.Chain
	Graph           *model.SATDGraph
	SIRResults      []sir.Result
	AnalyzerSummary map[string]int // analyzer name -> relationships found
}

// Pipeline wires together a CandidateScanner's Probe, a Classifier,
// the four RelationshipAnalyzers, and the merge/chain/sir stages into
// one orchestrated run.
type Pipeline struct {
	Probe      vcs.Probe
	Classifier classify.Classifier
	Config     config.Config
	Analyzers  []relate.Analyzer
	Telemetry  *telemetry.Sink

	// OnStateChange, if set, receives every transition as it happens.
	OnStateChange func(StateChange)
}

// New builds a Pipeline with the default four analyzers.
func New(probe vcs.Probe, classifier classify.Classifier, cfg config.Config) *Pipeline {
	return &Pipeline{
		Probe:      probe,
		Classifier: classifier,
		Config:     cfg,
		Analyzers:  relate.DefaultAnalyzers(cfg.MaxDependencyHops),
		Telemetry:  telemetry.Global(),
	}
}

// Run executes the full state machine over root, returning a Result
// whose State is Done on success or Failed on a fatal
// InvariantViolation.
func (p *Pipeline) Run(ctx context.Context, root string) Result {
	res := Result{State: StateIdle, AnalyzerSummary: map[string]int{}}

	res.State = p.transition(res.State, StateScanning, nil)
	patterns, err := scan.NewPatternSet(p.Config.IncludeImplicit, p.Config.CustomPatterns, p.Config.ExcludePatterns)
	if err != nil {
		return p.fail(res, err)
	}
	grepWords := append([]string{}, scan.ExplicitMarkers...)
	if p.Config.IncludeImplicit {
		grepWords = append(grepWords, scan.ImplicitMarkers...)
	}
	grepWords = append(grepWords, p.Config.CustomPatterns...)
	scanner := scan.NewScanner(p.Probe, patterns, grepWords)

	res.State = p.transition(res.State, StateClassifying, nil)
	stageCtx, endStage := p.Telemetry.StartStage(ctx, "classifying")
	det := detect.New(scanner, p.Classifier, p.Config)
	items, detSummary, err := det.Run(stageCtx, root)
	endStage(err)
	res.Summary = detSummary
	res.DebtItems = items
	if err != nil {
		return p.fail(res, err)
	}
	p.Telemetry.RecordDebtItems(ctx, len(items))

	if len(items) == 0 {
		res.State = p.transition(res.State, StateDone, nil)
		res.Graph = model.NewSATDGraph(nil, nil)
		return res
	}

	files := loadFileContents(root, items)

	res.State = p.transition(res.State, StateAnalyzing, nil)
	analyzeCtx, endAnalyze := p.Telemetry.StartStage(ctx, "analyzing")
	outcomes := relate.RunAll(analyzeCtx, p.Analyzers, items, files)
	for _, o := range outcomes {
		res.AnalyzerSummary[o.Analyzer] = len(o.Relationships)
		p.Telemetry.RecordEdges(ctx, o.Analyzer, len(o.Relationships))
		if o.Err != nil {
			p.Telemetry.RecordSuppressed(ctx, errs.KindParseFailure.String())
		}
	}
	endAnalyze(nil)
	raw := relate.Concat(outcomes)

	res.State = p.transition(res.State, StateMerging, nil)
	merged := merge.Merge(raw)
	res.Relationships = merged

	res.State = p.transition(res.State, StateChaining, nil)
	graph := model.NewSATDGraph(items, merged)
	res.Graph = graph
	chains, annotated, err := chain.Find(graph.NodeIDs(), merged)
	if err != nil {
		return p.fail(res, err)
	}
	res.Chains = chains
	res.Relationships = annotated
	p.Telemetry.RecordChains(ctx, len(chains))

	res.State = p.transition(res.State, StateScoring, nil)
	scoreGraph := model.NewSATDGraph(items, annotated)
	res.Graph = scoreGraph
	res.SIRResults = sir.Score(scoreGraph, p.Config.SIRWeights())

	res.State = p.transition(res.State, StateDone, nil)
	return res
}

func (p *Pipeline) fail(res Result, err error) Result {
	res.Err = err
	res.State = p.transition(res.State, StateFailed, err)
	return res
}

func (p *Pipeline) transition(from, to State, err error) State {
	if p.OnStateChange != nil {
		p.OnStateChange(StateChange{From: from, To: to, At: time.Now(), Err: err})
	}
	return to
}

// loadFileContents reads every distinct file referenced by items,
// plus root's go.mod when one exists (the module analyzer resolves Go
// import paths against its module directive), skipping (not failing
// on) files that can no longer be read; the relationship analyzers
// degrade gracefully to "no edges for this file" exactly like a
// ParseFailure would.
func loadFileContents(root string, items []*model.DebtItem) relate.FileContents {
	files := make(relate.FileContents)
	seen := make(map[string]bool)
	for _, it := range items {
		if seen[it.File] {
			continue
		}
		seen[it.File] = true
		content, err := os.ReadFile(filepath.Join(root, it.File))
		if err != nil {
			continue
		}
		files[it.File] = content
	}
	if _, ok := files["go.mod"]; !ok {
		if content, err := os.ReadFile(filepath.Join(root, "go.mod")); err == nil {
			files["go.mod"] = content
		}
	}
	return files
}
