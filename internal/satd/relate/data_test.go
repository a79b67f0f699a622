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

func TestDataDependencyAnalyzer_SharedIdentifierLinksOwners(t *testing.T) {
	src := `def load():
    # TODO: this config load should be cached
    config = read_file()

def apply():
    # FIXME: applying config without validating it first
    use(config)
`
	items := []*model.DebtItem{
		{ID: "def-owner", File: "svc.py", Line: 2},
		{ID: "use-owner", File: "svc.py", Line: 6},
	}
	an := &DataDependencyAnalyzer{}
	rels, err := an.FindRelationships(context.Background(), items, FileContents{"svc.py": []byte(src)})
	require.NoError(t, err)
	require.NotEmpty(t, rels)

	found := false
	for _, r := range rels {
		if r.SourceID == "def-owner" && r.TargetID == "use-owner" {
			found = true
			assert.True(t, r.HasType(model.RelationData))
		}
	}
	assert.True(t, found, "expected a DATA edge from the definition owner to the use owner")
}

func TestDataDependencyAnalyzer_NoSharedIdentifierProducesNothing(t *testing.T) {
	src := `def a():
    # TODO: one
    x = 1

def b():
    # FIXME: two
    y = 2
`
	items := []*model.DebtItem{
		{ID: "a", File: "svc.py", Line: 2},
		{ID: "b", File: "svc.py", Line: 6},
	}
	an := &DataDependencyAnalyzer{}
	rels, err := an.FindRelationships(context.Background(), items, FileContents{"svc.py": []byte(src)})
	require.NoError(t, err)
	assert.Empty(t, rels)
}
