// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package sir implements SIRScorer (spec §4.6): the Fanout_w,
// ChainLen_w and Reachability_w per-node aggregates, their min-max
// normalization, and the composite SATD Impact Ripple score.
package sir

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/satdripple/satdripple/internal/satd/config"
	"github.com/satdripple/satdripple/internal/satd/model"
)

// Result holds one node's raw and normalized components and its final
// composite score.
type Result struct {
	NodeID string
	Raw    model.SIRComponents
	SIR    float64
}

// Score computes every node's SIR and writes SIRScore/SIRComponents
// back onto the matching DebtItem in g.Nodes. It returns results in
// g.NodeIDs() order.
func Score(g *model.SATDGraph, weights config.SIRWeights) []Result {
	ids := g.NodeIDs()
	n := len(ids)

	fanout := make([]float64, n)
	chainLen := make([]float64, n)
	reach := make([]float64, n)

	for i, id := range ids {
		fanout[i] = fanoutWeighted(g, id)
		chainLen[i] = chainLenWeighted(g, id)
		reach[i] = reachabilityWeighted(g, id)
	}

	fanoutNorm := minMaxNormalize(fanout)
	chainLenNorm := minMaxNormalize(chainLen)
	reachNorm := minMaxNormalize(reach)

	rawSIR := make([]float64, n)
	for i := range ids {
		rawSIR[i] = weights.Alpha*fanoutNorm[i] + weights.Beta*chainLenNorm[i] + weights.Gamma*reachNorm[i]
	}
	sirNorm := minMaxNormalize(rawSIR)

	results := make([]Result, n)
	for i, id := range ids {
		comp := model.SIRComponents{
			FanoutRaw:        fanout[i],
			ChainLenRaw:      chainLen[i],
			ReachabilityRaw:  reach[i],
			FanoutNorm:       fanoutNorm[i],
			ChainLenNorm:     chainLenNorm[i],
			ReachabilityNorm: reachNorm[i],
		}
		results[i] = Result{NodeID: id, Raw: comp, SIR: sirNorm[i]}

		if item, ok := g.Nodes[id]; ok {
			item.SIRComponents = comp
			item.SIRScore = sirNorm[i]
		}
	}
	return results
}

// fanoutWeighted is Fanout_w(t): the sum of outgoing edge weights.
func fanoutWeighted(g *model.SATDGraph, id string) float64 {
	var sum float64
	for _, e := range g.Outgoing(id) {
		sum += e.Weight
	}
	return sum
}

// chainLenWeighted is ChainLen_w(t): the maximum weight-sum over any
// simple directed path starting at t. DFS with a per-traversal
// roaring-bitmap visited set means a cycle's back-edge simply isn't
// followed again (contributes 0), rather than aborting the search.
func chainLenWeighted(g *model.SATDGraph, start string) float64 {
	visited := roaring.New()
	startIdx, ok := g.NodeIndex(start)
	if !ok {
		return 0
	}
	visited.Add(uint32(startIdx))
	return dfsMaxWeightSum(g, start, visited)
}

func dfsMaxWeightSum(g *model.SATDGraph, node string, visited *roaring.Bitmap) float64 {
	best := 0.0
	for _, e := range g.Outgoing(node) {
		targetIdx, ok := g.NodeIndex(e.Target)
		if !ok || visited.Contains(uint32(targetIdx)) {
			continue // cycle back-edge: contributes 0, not a failure
		}
		visited.Add(uint32(targetIdx))
		candidate := e.Weight + dfsMaxWeightSum(g, e.Target, visited)
		visited.Remove(uint32(targetIdx)) // backtrack: other branches may still reach this node
		if candidate > best {
			best = candidate
		}
	}
	return best
}

// reachabilityWeighted is Reachability_w(t): the sum, over every node
// u != t reachable from t, of the maximum-bottleneck (widest) path
// strength to u — the path whose weakest edge is as strong as
// possible. A path's strength is the minimum edge weight along it; a
// bounded-relaxation BFS enqueues a target only on strict improvement
// of its recorded path strength, which guarantees termination even
// with cycles.
func reachabilityWeighted(g *model.SATDGraph, start string) float64 {
	const unreached = -1
	best := map[string]float64{start: unreached}
	queue := []string{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curStrength := best[cur]

		for _, e := range g.Outgoing(cur) {
			candidate := e.Weight
			if curStrength != unreached && curStrength < candidate {
				candidate = curStrength
			}
			if prev, ok := best[e.Target]; !ok || candidate > prev {
				best[e.Target] = candidate
				queue = append(queue, e.Target)
			}
		}
	}

	nodes := make([]string, 0, len(best))
	for node := range best {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	var sum float64
	for _, node := range nodes {
		if node == start {
			continue
		}
		sum += best[node]
	}
	return sum
}

// minMaxNormalize scales values to [0,1]; if max == min, every value
// normalizes to 0 (spec: "the range is treated as 1" meaning the
// degenerate all-equal case collapses to 0, not NaN).
func minMaxNormalize(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return out // all zero
	}
	for i, v := range values {
		out[i] = (v - min) / (max - min)
	}
	return out
}

// RankBySIR returns a copy of results sorted by SIR descending, stable on ties
// (equal scores preserve input order).
func RankBySIR(results []Result) []Result {
	ranked := make([]Result, len(results))
	copy(ranked, results)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].SIR > ranked[j].SIR
	})
	return ranked
}

// ChainSIR is chainSIR(chain): the maximum SIR among its nodes, and
// the id of the node achieving it.
func ChainSIR(chain *model.Chain, byNode map[string]Result) (score float64, representative string) {
	ids := make([]string, 0, len(chain.Nodes))
	for id := range chain.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		r, ok := byNode[id]
		if !ok {
			continue
		}
		if representative == "" || r.SIR > score {
			score = r.SIR
			representative = id
		}
	}
	return score, representative
}
