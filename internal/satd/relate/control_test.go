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

func TestControlFlowAnalyzer_BlockReachEmitsEdge(t *testing.T) {
	src := `package svc

func run() {
	// TODO: guard needs a timeout
	if ready() {
		// FIXME: fallback path untested
		doWork()
	}
}
`
	items := []*model.DebtItem{
		{ID: "guard-debt", File: "svc.go", Line: 4},
		{ID: "inner-debt", File: "svc.go", Line: 6},
	}
	an := &ControlFlowAnalyzer{}
	rels, err := an.FindRelationships(context.Background(), items, FileContents{"svc.go": []byte(src)})
	require.NoError(t, err)
	require.NotEmpty(t, rels)

	found := false
	for _, r := range rels {
		if r.SourceID == "guard-debt" && r.TargetID == "inner-debt" {
			found = true
			assert.True(t, r.HasType(model.RelationControl))
		}
	}
	assert.True(t, found, "expected a CONTROL edge from the if-guard's debt to the debt inside its body")
}

func TestControlFlowAnalyzer_ItemOutsideBlockRangeProducesNothing(t *testing.T) {
	src := `package svc

func run() {
	// TODO: outside any block
	if ready() {
		doWork()
	}
}

// FIXME: far away, unrelated
func other() {}
`
	items := []*model.DebtItem{
		{ID: "a-debt", File: "svc.go", Line: 4},
		{ID: "b-debt", File: "svc.go", Line: 10},
	}
	an := &ControlFlowAnalyzer{}
	rels, err := an.FindRelationships(context.Background(), items, FileContents{"svc.go": []byte(src)})
	require.NoError(t, err)
	assert.Empty(t, rels)
}
