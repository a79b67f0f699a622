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

// DataDependencyAnalyzer implements spec §4.3.2: an identifier
// defined/assigned near SATD A and read near SATD B (A != B) yields an
// edge A->B in the DATA band. The relative line order of the
// definition and the read is not checked.
type DataDependencyAnalyzer struct{}

func (a *DataDependencyAnalyzer) Name() string { return "DataDependencyAnalyzer" }

func (a *DataDependencyAnalyzer) FindRelationships(ctx context.Context, items []*model.DebtItem, files FileContents) ([]*model.SatdRelationship, error) {
	idx := newFileIndex(items)
	band := model.WeightBands[model.RelationData]

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

		// Group definitions and uses by identifier name, each tagged
		// with the nearest DebtItem (if any) to that occurrence's line.
		defsByName := make(map[string][]*model.DebtItem)
		usesByName := make(map[string][]*model.DebtItem)
		for _, occ := range ex.Idents {
			owner := idx.nearest(file, occ.Line)
			if owner == nil {
				continue
			}
			if occ.IsDef {
				defsByName[occ.Name] = append(defsByName[occ.Name], owner)
			} else {
				usesByName[occ.Name] = append(usesByName[occ.Name], owner)
			}
		}

		for name, defOwners := range defsByName {
			useOwners, ok := usesByName[name]
			if !ok {
				continue
			}
			seen := make(map[[2]string]bool)
			for _, source := range defOwners {
				for _, target := range useOwners {
					if source.ID == target.ID {
						continue
					}
					key := [2]string{source.ID, target.ID}
					if seen[key] {
						continue
					}
					seen[key] = true
					hops := intraFileHops(source.Line, target.Line)
					weight := band.Clamp(band.Min)
					rel := emit(source, target, model.RelationData, weight, hops,
						fmt.Sprintf("shared identifier %q", name))
					if rel != nil {
						out = append(out, rel)
					}
				}
			}
		}
	}
	return out, nil
}
