// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package model

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
)

// SATDGraph is the directed graph of DebtItems connected by merged
// relationship edges, with forward and reverse adjacency indices for
// O(deg) traversal from either direction.
//
// # Thread Safety
//
// SATDGraph is built once by NewSATDGraph and is read-only afterward;
// it is safe for concurrent reads from multiple goroutines.
type SATDGraph struct {
	Nodes   map[string]*DebtItem
	Forward map[string][]EdgeRef
	Reverse map[string][]EdgeRef
	Edges   []EdgeRef

	order []string       // node ids, sorted
	index map[string]int // node id -> dense index, for gonum/roaring use
}

// EdgeRef pairs a SatdRelationship with the merged strength used by
// graph algorithms.
type EdgeRef struct {
	Source, Target string
	Weight         float64
	Rel            *SatdRelationship
}

// NewSATDGraph builds a SATDGraph from a node set and a deduplicated
// relationship list. Node iteration order in Forward/Reverse/Edges
// follows sorted (SourceID, TargetID) keys of the relationships, so
// downstream consumers that iterate in input order get deterministic
// results (spec's ordering guarantee).
func NewSATDGraph(items []*DebtItem, relationships []*SatdRelationship) *SATDGraph {
	g := &SATDGraph{
		Nodes:   make(map[string]*DebtItem, len(items)),
		Forward: make(map[string][]EdgeRef),
		Reverse: make(map[string][]EdgeRef),
		index:   make(map[string]int, len(items)),
	}

	order := make([]string, 0, len(items))
	for _, it := range items {
		g.Nodes[it.ID] = it
		order = append(order, it.ID)
	}
	sort.Strings(order)
	g.order = order
	for i, id := range order {
		g.index[id] = i
	}

	sorted := make([]*SatdRelationship, len(relationships))
	copy(sorted, relationships)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].SourceID != sorted[j].SourceID {
			return sorted[i].SourceID < sorted[j].SourceID
		}
		return sorted[i].TargetID < sorted[j].TargetID
	})

	for _, rel := range sorted {
		ref := EdgeRef{Source: rel.SourceID, Target: rel.TargetID, Weight: rel.Strength, Rel: rel}
		g.Forward[rel.SourceID] = append(g.Forward[rel.SourceID], ref)
		g.Reverse[rel.TargetID] = append(g.Reverse[rel.TargetID], ref)
		g.Edges = append(g.Edges, ref)
	}

	return g
}

// NodeIDs returns node ids in a stable, deterministic order.
func (g *SATDGraph) NodeIDs() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// NodeIndex returns the dense integer index assigned to id, used by
// the roaring-bitmap-backed traversals in package sir.
func (g *SATDGraph) NodeIndex(id string) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// Outgoing returns the outgoing merged edges from id.
func (g *SATDGraph) Outgoing(id string) []EdgeRef {
	return g.Forward[id]
}

// ToSimpleGraph projects the directed relationship edges onto a
// gonum undirected graph, for use by ChainFinder's cross-check against
// gonum/graph/topo.ConnectedComponents. Self-loops are skipped, since
// the spec guarantees relationships never have SourceID == TargetID
// after merging.
func (g *SATDGraph) ToSimpleGraph() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	nodeOf := make(map[string]graph.Node, len(g.order))
	for _, id := range g.order {
		n := simple.Node(g.index[id])
		nodeOf[id] = n
		ug.AddNode(n)
	}
	for _, e := range g.Edges {
		if e.Source == e.Target {
			continue
		}
		u, v := nodeOf[e.Source], nodeOf[e.Target]
		if u == nil || v == nil {
			continue
		}
		if ug.HasEdgeBetween(u.ID(), v.ID()) {
			continue
		}
		ug.SetEdge(simple.Edge{F: u, T: v})
	}
	return ug
}
