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

func TestRunAll_FourAnalyzersCompleteIndependently(t *testing.T) {
	src := `def outer():
    # TODO: validate args before dispatching
    helper()

def helper():
    # FIXME: swallow errors silently here
    pass
`
	items := []*model.DebtItem{
		{ID: "a", File: "service.py", Line: 2},
		{ID: "b", File: "service.py", Line: 6},
	}
	files := FileContents{"service.py": []byte(src)}

	outcomes := RunAll(context.Background(), DefaultAnalyzers(5), items, files)
	require.Len(t, outcomes, 4)

	names := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		names[o.Analyzer] = true
		assert.NoError(t, o.Err)
	}
	assert.True(t, names["CallGraphAnalyzer"])
	assert.True(t, names["DataDependencyAnalyzer"])
	assert.True(t, names["ControlFlowAnalyzer"])
	assert.True(t, names["ModuleDependencyAnalyzer"])

	all := Concat(outcomes)
	assert.NotEmpty(t, all)
}

func TestRunAll_EmptyItemsProducesNoRelationships(t *testing.T) {
	outcomes := RunAll(context.Background(), DefaultAnalyzers(5), nil, FileContents{})
	all := Concat(outcomes)
	assert.Empty(t, all)
}
