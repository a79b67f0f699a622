// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package cliout

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satdripple/satdripple/internal/satd/model"
	"github.com/satdripple/satdripple/internal/satd/sir"
)

func TestIsTerminal_FalseForNonFileWriter(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestBuildRankedRows_OrdersByRankedInputAndMergesChainInfo(t *testing.T) {
	items := map[string]*model.DebtItem{
		"A": {ID: "A", File: "f.go", Line: 10, DebtType: model.DebtDefect},
		"B": {ID: "B", File: "g.go", Line: 20, DebtType: model.DebtTest},
	}
	ranked := []sir.Result{{NodeID: "A", SIR: 0.9}, {NodeID: "B", SIR: 0.2}}
	chainsByNode := map[string][]string{"A": {"chain-1"}}

	rows := BuildRankedRows(items, ranked, chainsByNode)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Rank)
	assert.True(t, rows[0].InChain)
	assert.Equal(t, 1, rows[0].ChainCount)
	assert.Equal(t, 2, rows[1].Rank)
	assert.False(t, rows[1].InChain)
}

func TestBuildRankedRows_SkipsMissingItems(t *testing.T) {
	ranked := []sir.Result{{NodeID: "missing", SIR: 0.5}}
	rows := BuildRankedRows(map[string]*model.DebtItem{}, ranked, nil)
	assert.Empty(t, rows)
}

func TestRenderRanked_WritesNonEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	rows := []RankedRow{{Rank: 1, ID: "abc123", File: "f.go", Line: 5, DebtType: model.DebtDefect, SIR: 0.8, InChain: true, ChainCount: 2}}
	RenderRanked(&buf, rows, false)
	assert.Contains(t, buf.String(), "abc123")
	assert.Contains(t, buf.String(), "f.go:5")
}

func TestRenderChains_WritesChainSummary(t *testing.T) {
	var buf bytes.Buffer
	chains := []*model.Chain{{ID: "chain-1", Nodes: map[string]struct{}{"A": {}, "B": {}}, TotalWeight: 1.5}}
	sirByNode := map[string]sir.Result{
		"A": {NodeID: "A", SIR: 0.7},
		"B": {NodeID: "B", SIR: 0.3},
	}
	RenderChains(&buf, chains, sirByNode)
	assert.Contains(t, buf.String(), "chain-1")
}
