// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package sir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satdripple/satdripple/internal/satd/config"
	"github.com/satdripple/satdripple/internal/satd/model"
)

func item(id string) *model.DebtItem {
	return &model.DebtItem{ID: id, File: "f.go", Line: 1}
}

func rel(source, target string, weight float64) *model.SatdRelationship {
	return &model.SatdRelationship{
		SourceID: source,
		TargetID: target,
		Types:    map[model.RelationshipType]struct{}{model.RelationCall: {}},
		Edges:    []model.WeightedEdge{{SourceID: source, TargetID: target, Type: model.RelationCall, Weight: weight, Hops: 1}},
		Strength: weight,
	}
}

// Seed scenario 1 (spec §8): A->B(0.8), B->C(0.7).
func TestScore_ThreeNodeChain(t *testing.T) {
	items := []*model.DebtItem{item("A"), item("B"), item("C")}
	rels := []*model.SatdRelationship{rel("A", "B", 0.8), rel("B", "C", 0.7)}
	g := model.NewSATDGraph(items, rels)

	results := Score(g, config.SIRWeights{Alpha: 0.4, Beta: 0.3, Gamma: 0.3})
	byNode := make(map[string]Result)
	for _, r := range results {
		byNode[r.NodeID] = r
	}

	require.Contains(t, byNode, "A")
	assert.InDelta(t, 0.8, byNode["A"].Raw.FanoutRaw, 1e-9)
	assert.InDelta(t, 1.5, byNode["A"].Raw.ChainLenRaw, 1e-9)
	assert.InDelta(t, 1.5, byNode["A"].Raw.ReachabilityRaw, 1e-9)
}

// Seed scenario 2: diamond A->B(0.8), A->C(0.5), B->D(0.9), C->D(0.3).
func TestScore_Diamond(t *testing.T) {
	items := []*model.DebtItem{item("A"), item("B"), item("C"), item("D")}
	rels := []*model.SatdRelationship{
		rel("A", "B", 0.8), rel("A", "C", 0.5), rel("B", "D", 0.9), rel("C", "D", 0.3),
	}
	g := model.NewSATDGraph(items, rels)

	results := Score(g, config.SIRWeights{Alpha: 0.4, Beta: 0.3, Gamma: 0.3})
	byNode := make(map[string]Result)
	for _, r := range results {
		byNode[r.NodeID] = r
	}
	assert.InDelta(t, 1.7, byNode["A"].Raw.ChainLenRaw, 1e-9)
}

// Seed scenario 3: triangle A->B(0.8), B->C(0.7), C->A(0.6). Must terminate
// with no infinite/NaN values.
func TestScore_TriangleTerminates(t *testing.T) {
	items := []*model.DebtItem{item("A"), item("B"), item("C")}
	rels := []*model.SatdRelationship{rel("A", "B", 0.8), rel("B", "C", 0.7), rel("C", "A", 0.6)}
	g := model.NewSATDGraph(items, rels)

	results := Score(g, config.SIRWeights{Alpha: 0.4, Beta: 0.3, Gamma: 0.3})
	require.Len(t, results, 3)
	for _, r := range results {
		assert.False(t, isNaNOrInf(r.SIR))
		assert.GreaterOrEqual(t, r.SIR, 0.0)
		assert.LessOrEqual(t, r.SIR, 1.0)
	}
}

func isNaNOrInf(f float64) bool {
	return f != f || f > 1e300 || f < -1e300
}

// Boundary: isolated node scores zero everywhere after normalization.
func TestScore_IsolatedNode(t *testing.T) {
	items := []*model.DebtItem{item("A"), item("B")}
	g := model.NewSATDGraph(items, nil)

	results := Score(g, config.SIRWeights{Alpha: 0.4, Beta: 0.3, Gamma: 0.3})
	for _, r := range results {
		assert.Equal(t, 0.0, r.Raw.FanoutRaw)
		assert.Equal(t, 0.0, r.Raw.ChainLenRaw)
		assert.Equal(t, 0.0, r.Raw.ReachabilityRaw)
		assert.Equal(t, 0.0, r.SIR)
	}
}

func TestRankBySIR_StableOnTies(t *testing.T) {
	results := []Result{
		{NodeID: "A", SIR: 0.5},
		{NodeID: "B", SIR: 0.5},
		{NodeID: "C", SIR: 0.9},
	}
	ranked := RankBySIR(results)
	require.Len(t, ranked, 3)
	assert.Equal(t, "C", ranked[0].NodeID)
	assert.Equal(t, "A", ranked[1].NodeID)
	assert.Equal(t, "B", ranked[2].NodeID)
}

func TestMinMaxNormalize_DegenerateRange(t *testing.T) {
	out := minMaxNormalize([]float64{5, 5, 5})
	for _, v := range out {
		assert.Equal(t, 0.0, v)
	}
}
