// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package chain implements ChainFinder (spec §4.5): connected
// components of the undirected projection of a run's merged edges.
package chain

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/satdripple/satdripple/internal/satd/errs"
	"github.com/satdripple/satdripple/internal/satd/model"
)

// Find builds the undirected adjacency over every node touched by
// relationships, enumerates connected components by breadth-first
// traversal, discards singletons, and returns one Chain per remaining
// component with totalWeight equal to the sum of every edge (counted
// once) whose endpoints both lie in that component. It also returns
// the input relationships annotated with chainIds/inChain.
//
// nodeOrder fixes the iteration order components are discovered in
// (and therefore chain ids are assigned in), so a run over the same
// graph always finds chains in the same order.
func Find(nodeOrder []string, relationships []*model.SatdRelationship) ([]*model.Chain, []*model.SatdRelationship, error) {
	adjacency := make(map[string]map[string]struct{})
	for _, id := range nodeOrder {
		adjacency[id] = map[string]struct{}{}
	}
	for _, r := range relationships {
		if r == nil {
			continue
		}
		ensureNode(adjacency, r.SourceID)
		ensureNode(adjacency, r.TargetID)
		adjacency[r.SourceID][r.TargetID] = struct{}{}
		adjacency[r.TargetID][r.SourceID] = struct{}{}
	}

	visited := make(map[string]bool, len(adjacency))
	var chains []*model.Chain
	seq := 0

	// Iterate in a stable order: nodeOrder first (original input
	// order), then any node that only appears as a relationship
	// endpoint, sorted for determinism.
	order := stableOrder(nodeOrder, adjacency)

	for _, start := range order {
		if visited[start] {
			continue
		}
		component := bfsComponent(start, adjacency, visited)
		if len(component) < 2 {
			continue
		}
		seq++
		c := &model.Chain{
			ID:    fmt.Sprintf("chain-%d", seq),
			Nodes: make(map[string]struct{}, len(component)),
		}
		for _, n := range component {
			c.Nodes[n] = struct{}{}
		}
		chains = append(chains, c)
	}

	if err := validateDisjoint(chains); err != nil {
		return nil, nil, err
	}

	if err := crossCheckConnectivity(order, relationships, chains); err != nil {
		return nil, nil, err
	}

	annotated := annotateRelationships(relationships, chains)
	computeTotalWeights(chains, annotated)

	return chains, annotated, nil
}

func ensureNode(adj map[string]map[string]struct{}, id string) {
	if _, ok := adj[id]; !ok {
		adj[id] = map[string]struct{}{}
	}
}

func stableOrder(nodeOrder []string, adjacency map[string]map[string]struct{}) []string {
	seen := make(map[string]bool, len(adjacency))
	order := make([]string, 0, len(adjacency))
	for _, id := range nodeOrder {
		if !seen[id] {
			seen[id] = true
			order = append(order, id)
		}
	}
	var extra []string
	for id := range adjacency {
		if !seen[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

// bfsComponent returns every node reachable from start in the
// undirected adjacency, marking each visited as it's enqueued.
func bfsComponent(start string, adjacency map[string]map[string]struct{}, visited map[string]bool) []string {
	visited[start] = true
	queue := []string{start}
	var component []string

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		component = append(component, cur)

		neighbors := make([]string, 0, len(adjacency[cur]))
		for n := range adjacency[cur] {
			neighbors = append(neighbors, n)
		}
		sort.Strings(neighbors)
		for _, n := range neighbors {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	return component
}

func validateDisjoint(chains []*model.Chain) error {
	seen := make(map[string]string, 1)
	for _, c := range chains {
		for n := range c.Nodes {
			if other, ok := seen[n]; ok {
				return errs.New(errs.KindInvariantViolation,
					fmt.Sprintf("node %s belongs to both chain %s and %s", n, other, c.ID), nil)
			}
			seen[n] = c.ID
		}
	}
	return nil
}

// crossCheckConnectivity re-derives connected components with gonum's
// topo.ConnectedComponents over the same node/edge set and verifies it
// partitions nodes identically to the hand-rolled BFS above. The two
// algorithms are independent implementations of the same definition,
// so a mismatch means the BFS (or gonum's projection of it) has a
// bug, not a legitimate ambiguity — treated as a fatal invariant
// violation like validateDisjoint.
func crossCheckConnectivity(order []string, relationships []*model.SatdRelationship, chains []*model.Chain) error {
	items := make([]*model.DebtItem, len(order))
	for i, id := range order {
		items[i] = &model.DebtItem{ID: id}
	}
	g := model.NewSATDGraph(items, relationships)
	ug := g.ToSimpleGraph()
	ids := g.NodeIDs()

	var gonumChains []map[string]struct{}
	for _, comp := range topo.ConnectedComponents(ug) {
		if len(comp) < 2 {
			continue
		}
		nodes := make(map[string]struct{}, len(comp))
		for _, n := range comp {
			nodes[ids[int(n.ID())]] = struct{}{}
		}
		gonumChains = append(gonumChains, nodes)
	}

	if len(gonumChains) != len(chains) {
		return errs.New(errs.KindInvariantViolation,
			fmt.Sprintf("gonum cross-check found %d connected components with 2+ nodes, BFS found %d",
				len(gonumChains), len(chains)), nil)
	}
	for _, c := range chains {
		if !anyNodeSetEquals(gonumChains, c.Nodes) {
			return errs.New(errs.KindInvariantViolation,
				fmt.Sprintf("gonum cross-check found no connected component matching chain %s", c.ID), nil)
		}
	}
	return nil
}

func anyNodeSetEquals(sets []map[string]struct{}, target map[string]struct{}) bool {
	for _, s := range sets {
		if sameNodeSet(s, target) {
			return true
		}
	}
	return false
}

func sameNodeSet(a, b map[string]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}

func annotateRelationships(relationships []*model.SatdRelationship, chains []*model.Chain) []*model.SatdRelationship {
	chainOf := make(map[string]string, len(chains))
	for _, c := range chains {
		for n := range c.Nodes {
			chainOf[n] = c.ID
		}
	}
	for _, r := range relationships {
		if r == nil {
			continue
		}
		srcChain, okS := chainOf[r.SourceID]
		dstChain, okT := chainOf[r.TargetID]
		if okS && okT && srcChain == dstChain {
			r.InChain = true
			r.ChainIDs = appendUnique(r.ChainIDs, srcChain)
		}
	}
	return relationships
}

func appendUnique(list []string, v string) []string {
	for _, x := range list {
		if x == v {
			return list
		}
	}
	return append(list, v)
}

// computeTotalWeights sums each constituent edge's weight, once per
// edge, across every merged relationship whose endpoints both lie in
// the chain.
func computeTotalWeights(chains []*model.Chain, relationships []*model.SatdRelationship) {
	byChain := make(map[string]*model.Chain, len(chains))
	for _, c := range chains {
		byChain[c.ID] = c
	}
	for _, r := range relationships {
		if r == nil || !r.InChain {
			continue
		}
		for _, cid := range r.ChainIDs {
			c := byChain[cid]
			if c == nil {
				continue
			}
			for _, e := range r.Edges {
				c.TotalWeight += e.Weight
			}
		}
	}
}
