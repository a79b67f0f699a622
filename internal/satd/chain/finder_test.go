// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satdripple/satdripple/internal/satd/errs"
	"github.com/satdripple/satdripple/internal/satd/model"
)

func rel(source, target string, edgeType model.RelationshipType, weight float64) *model.SatdRelationship {
	return &model.SatdRelationship{
		SourceID: source,
		TargetID: target,
		Types:    map[model.RelationshipType]struct{}{edgeType: {}},
		Edges:    []model.WeightedEdge{{SourceID: source, TargetID: target, Type: edgeType, Weight: weight, Hops: 1}},
		Strength: weight,
	}
}

// Seed scenario 1: A->B(0.8), B->C(0.7): one chain {A,B,C}, totalWeight 1.5.
func TestFind_ThreeNodeChain(t *testing.T) {
	rels := []*model.SatdRelationship{rel("A", "B", model.RelationCall, 0.8), rel("B", "C", model.RelationCall, 0.7)}
	chains, annotated, err := Find([]string{"A", "B", "C"}, rels)
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, 3, chains[0].Length())
	assert.InDelta(t, 1.5, chains[0].TotalWeight, 1e-9)
	for _, r := range annotated {
		assert.True(t, r.InChain)
		assert.Equal(t, []string{chains[0].ID}, r.ChainIDs)
	}
}

// Seed scenario 4: isolated pair A, B with no edges: zero chains.
func TestFind_IsolatedPairNoChains(t *testing.T) {
	chains, _, err := Find([]string{"A", "B"}, nil)
	require.NoError(t, err)
	assert.Empty(t, chains)
}

// Seed scenario 5: duplicate relationship types collapse to one chain of two.
func TestFind_DuplicateRelationshipSingleChain(t *testing.T) {
	merged := &model.SatdRelationship{
		SourceID: "A", TargetID: "B",
		Types: map[model.RelationshipType]struct{}{model.RelationCall: {}, model.RelationData: {}},
		Edges: []model.WeightedEdge{
			{SourceID: "A", TargetID: "B", Type: model.RelationCall, Weight: 0.8, Hops: 1},
			{SourceID: "A", TargetID: "B", Type: model.RelationData, Weight: 0.9, Hops: 1},
		},
		Strength: 0.9,
	}
	chains, _, err := Find([]string{"A", "B"}, []*model.SatdRelationship{merged})
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.InDelta(t, 1.7, chains[0].TotalWeight, 1e-9)
}

func TestFind_DisjointChainsDoNotShareNodes(t *testing.T) {
	rels := []*model.SatdRelationship{
		rel("A", "B", model.RelationCall, 0.8),
		rel("C", "D", model.RelationCall, 0.7),
	}
	chains, _, err := Find([]string{"A", "B", "C", "D"}, rels)
	require.NoError(t, err)
	require.Len(t, chains, 2)
	seen := map[string]bool{}
	for _, c := range chains {
		for n := range c.Nodes {
			assert.False(t, seen[n], "node %s appears in more than one chain", n)
			seen[n] = true
		}
	}
}

func TestValidateDisjoint_OverlappingNodesIsFatal(t *testing.T) {
	chains := []*model.Chain{
		{ID: "chain-1", Nodes: map[string]struct{}{"A": {}, "B": {}}},
		{ID: "chain-2", Nodes: map[string]struct{}{"B": {}, "C": {}}},
	}
	err := validateDisjoint(chains)
	require.Error(t, err)
	assert.True(t, errs.Fatal(err))
}

func TestFind_TriangleSingleChain(t *testing.T) {
	rels := []*model.SatdRelationship{
		rel("A", "B", model.RelationCall, 0.8),
		rel("B", "C", model.RelationCall, 0.7),
		rel("C", "A", model.RelationCall, 0.6),
	}
	chains, _, err := Find([]string{"A", "B", "C"}, rels)
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, 3, chains[0].Length())
}
