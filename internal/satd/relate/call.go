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

// CallGraphAnalyzer implements spec §4.3.1: if the function tied to
// SATD A calls (directly) the function tied to SATD B, emit A->B
// weighted within the CALL band, scaled by the call site's nesting
// depth. A function is tied to the DebtItem the shared locality rule
// picks for the function's first line (nearest within 5 lines), so an
// item deeper inside a long body is not tied to its function.
type CallGraphAnalyzer struct {
	MaxDepth int // saturation point for ScaleByDepth; default 5 if zero
}

func (a *CallGraphAnalyzer) Name() string { return "CallGraphAnalyzer" }

func (a *CallGraphAnalyzer) FindRelationships(ctx context.Context, items []*model.DebtItem, files FileContents) ([]*model.SatdRelationship, error) {
	maxDepth := a.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 5
	}
	idx := newFileIndex(items)
	band := model.WeightBands[model.RelationCall]

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
			continue // ParseFailure: skip this analyzer for this file
		}

		funcLine := funcStartLines(ex.Funcs)

		for _, call := range ex.Calls {
			if call.EnclosingFunc == "" {
				continue
			}
			srcLine, ok := funcLine[call.EnclosingFunc]
			if !ok {
				continue
			}
			source := idx.nearest(file, srcLine)
			if source == nil {
				continue
			}
			for _, fd := range ex.Funcs {
				if fd.Name != call.Callee || fd.Name == call.EnclosingFunc {
					continue
				}
				target := idx.nearest(file, fd.StartLine)
				if target == nil || target.ID == source.ID {
					continue
				}
				weight := band.ScaleByDepth(call.Depth, maxDepth)
				hops := intraFileHops(source.Line, target.Line)
				rel := emit(source, target, model.RelationCall, weight,
					hops, fmt.Sprintf("%s calls %s", call.EnclosingFunc, call.Callee))
				if rel != nil {
					out = append(out, rel)
				}
			}
		}
	}
	return out, nil
}

func funcStartLines(funcs []astutil.FuncDef) map[string]int {
	m := make(map[string]int, len(funcs))
	for _, fd := range funcs {
		m[fd.Name] = fd.StartLine
	}
	return m
}
