// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package relate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satdripple/satdripple/internal/satd/model"
)

func TestCallGraphAnalyzer_DirectCallProducesEdge(t *testing.T) {
	src := `package svc

func outer() {
	// TODO: outer needs retries
	helper()
}

func helper() {
	// FIXME: helper swallows errors
}
`
	items := []*model.DebtItem{
		{ID: "outer-debt", File: "svc.go", Line: 4},
		{ID: "helper-debt", File: "svc.go", Line: 9},
	}
	an := &CallGraphAnalyzer{}
	rels, err := an.FindRelationships(context.Background(), items, FileContents{"svc.go": []byte(src)})
	require.NoError(t, err)
	require.NotEmpty(t, rels)

	found := false
	for _, r := range rels {
		if r.SourceID == "outer-debt" && r.TargetID == "helper-debt" {
			found = true
			assert.True(t, r.HasType(model.RelationCall))
			assert.GreaterOrEqual(t, r.Strength, model.WeightBands[model.RelationCall].Min)
			assert.LessOrEqual(t, r.Strength, model.WeightBands[model.RelationCall].Max)
		}
	}
	assert.True(t, found, "expected a CALL edge from outer's debt to helper's debt")
}

func TestCallGraphAnalyzer_NoCallProducesNothing(t *testing.T) {
	src := `package svc

func a() {
	// TODO: a
}

func b() {
	// FIXME: b
}
`
	items := []*model.DebtItem{
		{ID: "a-debt", File: "svc.go", Line: 4},
		{ID: "b-debt", File: "svc.go", Line: 8},
	}
	an := &CallGraphAnalyzer{}
	rels, err := an.FindRelationships(context.Background(), items, FileContents{"svc.go": []byte(src)})
	require.NoError(t, err)
	assert.Empty(t, rels)
}

func TestCallGraphAnalyzer_SingleItemInFileSkipped(t *testing.T) {
	src := `package svc

func outer() {
	// TODO: lonely
	helper()
}

func helper() {}
`
	items := []*model.DebtItem{
		{ID: "only-debt", File: "svc.go", Line: 4},
	}
	an := &CallGraphAnalyzer{}
	rels, err := an.FindRelationships(context.Background(), items, FileContents{"svc.go": []byte(src)})
	require.NoError(t, err)
	assert.Empty(t, rels)
}
