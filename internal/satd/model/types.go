// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package model

import "time"

// DebtType classifies the nature of a confirmed debt item.
type DebtType string

// The fixed set of debt types a DebtItem can carry.
const (
	DebtDesign         DebtType = "Design"
	DebtImplementation DebtType = "Implementation"
	DebtDocumentation  DebtType = "Documentation"
	DebtDefect         DebtType = "Defect"
	DebtTest           DebtType = "Test"
	DebtRequirement    DebtType = "Requirement"
	DebtArchitecture   DebtType = "Architecture"
	DebtOther          DebtType = "Other"
)

// UntrackedCommit is the sentinel commit hash used when blame
// metadata is unavailable for a candidate (untracked file, no VCS).
const UntrackedCommit = "untracked"

// SIRComponents holds the three raw and normalized aggregates that
// feed into a DebtItem's composite SIR score.
type SIRComponents struct {
	FanoutRaw        float64
	ChainLenRaw      float64
	ReachabilityRaw  float64
	FanoutNorm       float64
	ChainLenNorm     float64
	ReachabilityNorm float64
}

// DebtItem is a confirmed Self-Admitted Technical Debt instance: a
// candidate comment that the CommentClassifier capability confirmed
// with confidence at or above the configured threshold.
//
// A DebtItem is immutable after the detection stage produces it,
// except for SIRScore/SIRComponents, which SIRScorer fills in as the
// final pipeline stage.
type DebtItem struct {
	ID              string
	File            string
	Line            int
	Content         string
	ExtendedContent string
	CreatedCommit   string
	CreatedDate     time.Time
	DebtType        DebtType
	Confidence      float64

	SIRScore      float64
	SIRComponents SIRComponents
}

// RelationshipType identifies which analyzer produced a WeightedEdge.
type RelationshipType string

// The four relationship types IRD analyzers can emit.
const (
	RelationCall    RelationshipType = "CALL"
	RelationData    RelationshipType = "DATA"
	RelationControl RelationshipType = "CONTROL"
	RelationModule  RelationshipType = "MODULE"
)

// WeightBand is the closed interval [Min, Max] a RelationshipType's
// edge weights must fall within.
type WeightBand struct {
	Min float64
	Max float64
}

// WeightBands maps each RelationshipType to its fixed weight band, as
// specified: CALL [0.7,0.9], DATA [0.6,0.8], CONTROL [0.5,0.7],
// MODULE [0.8,1.0].
var WeightBands = map[RelationshipType]WeightBand{
	RelationCall:    {Min: 0.7, Max: 0.9},
	RelationData:    {Min: 0.6, Max: 0.8},
	RelationControl: {Min: 0.5, Max: 0.7},
	RelationModule:  {Min: 0.8, Max: 1.0},
}

// HMax is the maximum number of hops an edge may carry. Edges with a
// computed hop count above HMax are discarded by their analyzer.
const HMax = 5

// Clamp returns w constrained to the band's [Min,Max] interval.
func (b WeightBand) Clamp(w float64) float64 {
	if w < b.Min {
		return b.Min
	}
	if w > b.Max {
		return b.Max
	}
	return w
}

// ScaleByDepth maps a non-negative nesting depth onto the band,
// monotonically increasing with depth and clamped to the band. depth
// 0 maps to Min; depth saturates at Max once it reaches maxDepth.
func (b WeightBand) ScaleByDepth(depth, maxDepth int) float64 {
	if maxDepth <= 0 {
		return b.Min
	}
	if depth < 0 {
		depth = 0
	}
	if depth > maxDepth {
		depth = maxDepth
	}
	frac := float64(depth) / float64(maxDepth)
	return b.Clamp(b.Min + frac*(b.Max-b.Min))
}

// WeightedEdge is a single directed edge between two DebtItem ids, as
// produced by one of the four relationship analyzers.
type WeightedEdge struct {
	SourceID string
	TargetID string
	Type     RelationshipType
	Weight   float64
	Hops     int
}

// SatdRelationship is a merged bundle of edges sharing a single
// ordered (SourceID, TargetID) pair, produced by RelationshipMerger.
type SatdRelationship struct {
	SourceID    string
	TargetID    string
	Types       map[RelationshipType]struct{}
	Edges       []WeightedEdge
	Strength    float64
	Description string
	ChainIDs    []string
	InChain     bool
}

// HasType reports whether t is among the relationship's merged types.
func (r *SatdRelationship) HasType(t RelationshipType) bool {
	_, ok := r.Types[t]
	return ok
}

// Chain is a weakly connected component of the undirected projection
// of the run's edge set, with size at least 2.
type Chain struct {
	ID          string
	Nodes       map[string]struct{}
	TotalWeight float64
}

// Length returns the number of nodes in the chain.
func (c *Chain) Length() int {
	return len(c.Nodes)
}

// Contains reports whether id is a member of the chain.
func (c *Chain) Contains(id string) bool {
	_, ok := c.Nodes[id]
	return ok
}
