// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package relate

import (
	"math"
	"path/filepath"
	"sort"

	"github.com/satdripple/satdripple/internal/satd/model"
)

// fileIndex groups a run's debt items by file, sorted by line, so
// every analyzer can reuse the same locality and hop-counting logic
// instead of re-deriving it.
type fileIndex struct {
	byFile map[string][]*model.DebtItem
}

func newFileIndex(items []*model.DebtItem) *fileIndex {
	idx := &fileIndex{byFile: make(map[string][]*model.DebtItem)}
	for _, it := range items {
		idx.byFile[it.File] = append(idx.byFile[it.File], it)
	}
	for f := range idx.byFile {
		list := idx.byFile[f]
		sort.Slice(list, func(i, j int) bool { return list[i].Line < list[j].Line })
		idx.byFile[f] = list
	}
	return idx
}

func (fi *fileIndex) inFile(file string) []*model.DebtItem {
	return fi.byFile[file]
}

// nearest implements the shared locality rule (spec §4.3): the unique
// DebtItem in file whose line l satisfies |L-l| <= 5, preferring the
// smallest distance on tie. Returns nil if no item qualifies.
func (fi *fileIndex) nearest(file string, L int) *model.DebtItem {
	var best *model.DebtItem
	bestDist := math.MaxInt64
	for _, it := range fi.inFile(file) {
		d := abs(it.Line - L)
		if d <= 5 && d < bestDist {
			best = it
			bestDist = d
		}
	}
	return best
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// intraFileHops implements the hop model (spec §4.3): hops =
// ceil(|line(target) - line(source)| / 10) for edges within one file.
func intraFileHops(sourceLine, targetLine int) int {
	d := abs(targetLine - sourceLine)
	if d == 0 {
		return 1
	}
	h := (d + 9) / 10
	if h < 1 {
		h = 1
	}
	return h
}

// interFileHops is the hop count for edges crossing files absent a
// longer computed import chain (spec §4.3): always 1.
const interFileHops = 1

// emit builds a single-edge SatdRelationship for (source, target),
// applying the shared invariants: self-loops suppressed, edges with
// hops outside [1, HMax] discarded, weight clamped to its type's band.
func emit(source, target *model.DebtItem, relType model.RelationshipType, rawWeight float64, hops int, description string) *model.SatdRelationship {
	if source == nil || target == nil || source.ID == target.ID {
		return nil
	}
	if hops < 1 || hops > model.HMax {
		return nil
	}
	band := model.WeightBands[relType]
	weight := band.Clamp(rawWeight)

	edge := model.WeightedEdge{
		SourceID: source.ID,
		TargetID: target.ID,
		Type:     relType,
		Weight:   weight,
		Hops:     hops,
	}
	rel := &model.SatdRelationship{
		SourceID:    source.ID,
		TargetID:    target.ID,
		Types:       map[model.RelationshipType]struct{}{relType: {}},
		Edges:       []model.WeightedEdge{edge},
		Strength:    weight,
		Description: description,
	}
	return rel
}

// sameBaseDir reports whether two files have the same filepath.Dir.
// No analyzer calls it; resolveImport does its own path matching.
func sameBaseDir(a, b string) bool {
	return filepath.Dir(a) == filepath.Dir(b)
}
