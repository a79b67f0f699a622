// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package merge implements RelationshipMerger (spec §4.4): it
// deduplicates the analyzers' raw relationships by ordered
// (sourceId, targetId) pair into the graph-ready relationship list.
package merge

import (
	"sort"

	"github.com/satdripple/satdripple/internal/satd/model"
)

type pairKey struct {
	source string
	target string
}

// Merge keys relationships by (SourceID, TargetID), unions colliding
// entries' types and edges, keeps the max strength, drops self-loops,
// and returns the result sorted by (SourceID, TargetID) so later
// stages see deterministic input (spec §5: "merging uses sorted
// keys").
func Merge(raw []*model.SatdRelationship) []*model.SatdRelationship {
	merged := make(map[pairKey]*model.SatdRelationship)

	for _, r := range raw {
		if r == nil || r.SourceID == r.TargetID {
			continue
		}
		key := pairKey{r.SourceID, r.TargetID}
		existing, ok := merged[key]
		if !ok {
			merged[key] = cloneRelationship(r)
			continue
		}
		mergeInto(existing, r)
	}

	out := make([]*model.SatdRelationship, 0, len(merged))
	for _, r := range merged {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SourceID != out[j].SourceID {
			return out[i].SourceID < out[j].SourceID
		}
		return out[i].TargetID < out[j].TargetID
	})
	return out
}

func cloneRelationship(r *model.SatdRelationship) *model.SatdRelationship {
	types := make(map[model.RelationshipType]struct{}, len(r.Types))
	for t := range r.Types {
		types[t] = struct{}{}
	}
	edges := make([]model.WeightedEdge, len(r.Edges))
	copy(edges, r.Edges)
	return &model.SatdRelationship{
		SourceID:    r.SourceID,
		TargetID:    r.TargetID,
		Types:       types,
		Edges:       edges,
		Strength:    r.Strength,
		Description: r.Description,
	}
}

// mergeInto folds incoming into existing per spec §4.4's collision
// rule: types union, edges concatenated, strength = max, description
// appended when it differs.
func mergeInto(existing, incoming *model.SatdRelationship) {
	for t := range incoming.Types {
		existing.Types[t] = struct{}{}
	}
	existing.Edges = append(existing.Edges, incoming.Edges...)
	if incoming.Strength > existing.Strength {
		existing.Strength = incoming.Strength
	}
	if incoming.Description != "" && incoming.Description != existing.Description {
		existing.Description = existing.Description + "\n\nAdditional relationship:\n" + incoming.Description
	}
}
