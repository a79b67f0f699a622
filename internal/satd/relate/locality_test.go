// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package relate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satdripple/satdripple/internal/satd/model"
)

func debtItem(id, file string, line int) *model.DebtItem {
	return &model.DebtItem{ID: id, File: file, Line: line}
}

func TestFileIndex_NearestPrefersSmallestDistance(t *testing.T) {
	items := []*model.DebtItem{
		debtItem("far", "f.go", 16),
		debtItem("near", "f.go", 18),
		debtItem("other-file", "g.go", 20),
	}
	idx := newFileIndex(items)

	got := idx.nearest("f.go", 20)
	require.NotNil(t, got)
	assert.Equal(t, "near", got.ID)
}

func TestFileIndex_NearestOutsideWindowReturnsNil(t *testing.T) {
	items := []*model.DebtItem{debtItem("a", "f.go", 1)}
	idx := newFileIndex(items)
	assert.Nil(t, idx.nearest("f.go", 10))
}

func TestFileIndex_NearestAtExactBoundaryQualifies(t *testing.T) {
	items := []*model.DebtItem{debtItem("a", "f.go", 10)}
	idx := newFileIndex(items)
	got := idx.nearest("f.go", 15)
	require.NotNil(t, got)
	assert.Equal(t, "a", got.ID)
}

func TestIntraFileHops_RoundsUp(t *testing.T) {
	assert.Equal(t, 1, intraFileHops(10, 10))
	assert.Equal(t, 1, intraFileHops(10, 15))
	assert.Equal(t, 1, intraFileHops(10, 19))
	assert.Equal(t, 1, intraFileHops(10, 20))
	assert.Equal(t, 5, intraFileHops(1, 50))
}

func TestEmit_DropsSelfLoop(t *testing.T) {
	a := debtItem("A", "f.go", 1)
	assert.Nil(t, emit(a, a, model.RelationCall, 0.8, 1, "x"))
}

func TestEmit_HopAtMaxKept(t *testing.T) {
	a := debtItem("A", "f.go", 1)
	b := debtItem("B", "f.go", 50)
	rel := emit(a, b, model.RelationCall, 0.8, model.HMax, "x")
	require.NotNil(t, rel)
	assert.Equal(t, model.HMax, rel.Edges[0].Hops)
}

func TestEmit_HopBeyondMaxDiscarded(t *testing.T) {
	a := debtItem("A", "f.go", 1)
	b := debtItem("B", "f.go", 99)
	rel := emit(a, b, model.RelationCall, 0.8, model.HMax+1, "x")
	assert.Nil(t, rel)
}

func TestEmit_WeightClampedToBand(t *testing.T) {
	a := debtItem("A", "f.go", 1)
	b := debtItem("B", "f.go", 2)
	rel := emit(a, b, model.RelationData, 5.0, 1, "x")
	require.NotNil(t, rel)
	assert.Equal(t, model.WeightBands[model.RelationData].Max, rel.Strength)
}
