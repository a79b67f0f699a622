// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package relate

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/satdripple/satdripple/internal/satd/model"
)

// DefaultAnalyzers returns the four RelationshipAnalyzers the
// orchestrator runs, in the order their results are concatenated.
func DefaultAnalyzers(maxDepth int) []Analyzer {
	return []Analyzer{
		&CallGraphAnalyzer{MaxDepth: maxDepth},
		&DataDependencyAnalyzer{},
		&ControlFlowAnalyzer{MaxDepth: maxDepth},
		&ModuleDependencyAnalyzer{},
	}
}

// AnalyzerOutcome pairs one analyzer's name with what it found (or
// the error it hit), so callers can record per-analyzer summaries
// without the orchestrator itself needing to know about logging.
type AnalyzerOutcome struct {
	Analyzer      string
	Relationships []*model.SatdRelationship
	Err           error
}

// RunAll fans the four analyzers out concurrently ("start four
// independent tasks, join, concatenate", spec §9) and returns each
// one's outcome; no cross-task shared state exists, so one analyzer's
// ParseFailure never affects the others.
func RunAll(ctx context.Context, analyzers []Analyzer, items []*model.DebtItem, files FileContents) []AnalyzerOutcome {
	outcomes := make([]AnalyzerOutcome, len(analyzers))

	p := pool.New().WithMaxGoroutines(len(analyzers))
	for i, an := range analyzers {
		i, an := i, an
		p.Go(func() {
			rels, err := an.FindRelationships(ctx, items, files)
			outcomes[i] = AnalyzerOutcome{Analyzer: an.Name(), Relationships: rels, Err: err}
		})
	}
	p.Wait()

	return outcomes
}

// Concat flattens every outcome's relationships into one slice in
// analyzer order. Err is not consulted: an outcome that carries an
// error still contributes whatever relationships it holds.
func Concat(outcomes []AnalyzerOutcome) []*model.SatdRelationship {
	var all []*model.SatdRelationship
	for _, o := range outcomes {
		all = append(all, o.Relationships...)
	}
	return all
}
