// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package relate implements the four RelationshipAnalyzers (spec
// §4.3) as independent implementations of a single capability, fanned
// out concurrently by an orchestrator and joined before merging
// (spec §9: "start four independent tasks, join, concatenate").
package relate

import (
	"context"

	"github.com/satdripple/satdripple/internal/satd/model"
)

// FileContents maps a candidate's file path to its raw bytes, the
// shared input every analyzer reads from instead of re-reading disk.
type FileContents map[string][]byte

// Analyzer is the single capability all four relationship analyzers
// implement: given debt items and file contents, return the
// SatdRelationships it finds. Adding an analyzer means adding an
// entry to the orchestrator's list, never touching existing ones.
type Analyzer interface {
	Name() string
	FindRelationships(ctx context.Context, items []*model.DebtItem, files FileContents) ([]*model.SatdRelationship, error)
}
