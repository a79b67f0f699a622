// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package relate

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/satdripple/satdripple/internal/satd/astutil"
	"github.com/satdripple/satdripple/internal/satd/model"
)

// ControlFlowAnalyzer implements spec §4.3.3: a control structure
// anchored in the +-5 neighborhood of SATD A whose reach (its line
// range) contains SATD B's line yields edge A->B, weighted within the
// CONTROL band and scaled by nesting depth.
type ControlFlowAnalyzer struct {
	MaxDepth int
}

func (a *ControlFlowAnalyzer) Name() string { return "ControlFlowAnalyzer" }

func (a *ControlFlowAnalyzer) FindRelationships(ctx context.Context, items []*model.DebtItem, files FileContents) ([]*model.SatdRelationship, error) {
	maxDepth := a.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 5
	}
	idx := newFileIndex(items)
	band := model.WeightBands[model.RelationControl]

	var out []*model.SatdRelationship
	for file, content := range files {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		fileItems := idx.inFile(file)
		if len(fileItems) < 2 {
			continue
		}
		ex, err := astutil.Extract(ctx, filepath.Ext(file), content)
		if err != nil || ex == nil {
			continue
		}

		for _, block := range ex.Controls {
			// "Anchored in the +-5 neighborhood of SATD A": A must be
			// the nearest item to the block's start line under the
			// shared locality rule.
			source := idx.nearest(file, block.StartLine)
			if source == nil {
				continue
			}
			for _, candidate := range fileItems {
				if candidate.ID == source.ID {
					continue
				}
				if candidate.Line < block.StartLine || candidate.Line > block.EndLine {
					continue
				}
				weight := band.ScaleByDepth(block.Depth, maxDepth)
				hops := intraFileHops(source.Line, candidate.Line)
				rel := emit(source, candidate, model.RelationControl, weight, hops,
					fmt.Sprintf("%s block reaches line %d", block.Kind, candidate.Line))
				if rel != nil {
					out = append(out, rel)
				}
			}
		}
	}
	return out, nil
}
