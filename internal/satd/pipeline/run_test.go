// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satdripple/satdripple/internal/satd/classify"
	"github.com/satdripple/satdripple/internal/satd/config"
	"github.com/satdripple/satdripple/internal/satd/vcs"
)

func writeGoFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestPipeline_ZeroCandidatesReachesDoneWithEmptyGraph(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")

	p := New(&vcs.NoopProbe{}, &classify.NoopClassifier{}, config.Default())
	res := p.Run(context.Background(), dir)

	require.NoError(t, res.Err)
	assert.Equal(t, StateDone, res.State)
	assert.Empty(t, res.DebtItems)
	require.NotNil(t, res.Graph)
}

func TestPipeline_SingleItemReachesDone(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "main.go", "package main\n\n// TODO: add retries\nfunc main() {}\n")

	p := New(&vcs.NoopProbe{}, &classify.NoopClassifier{}, config.Default())
	res := p.Run(context.Background(), dir)

	require.NoError(t, res.Err)
	assert.Equal(t, StateDone, res.State)
	require.Len(t, res.DebtItems, 1)
	assert.Empty(t, res.Chains)
	require.Len(t, res.SIRResults, 1)
}

func TestPipeline_RecordsStateTransitionsInOrder(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "main.go", "package main\n\n// TODO: add retries\nfunc main() {}\n")

	var transitions []State
	p := New(&vcs.NoopProbe{}, &classify.NoopClassifier{}, config.Default())
	p.OnStateChange = func(c StateChange) { transitions = append(transitions, c.To) }
	res := p.Run(context.Background(), dir)

	require.NoError(t, res.Err)
	assert.Equal(t, []State{
		StateScanning, StateClassifying, StateAnalyzing,
		StateMerging, StateChaining, StateScoring, StateDone,
	}, transitions)
}

func TestPipeline_RelatedItemsProduceAChain(t *testing.T) {
	dir := t.TempDir()
	writeGoFile(t, dir, "service.go", `package service

// TODO: validate input before calling helper
func Run() {
	helper()
}

// FIXME: helper ignores errors
func helper() {}
`)

	p := New(&vcs.NoopProbe{}, &classify.NoopClassifier{}, config.Default())
	res := p.Run(context.Background(), dir)

	require.NoError(t, res.Err)
	assert.Equal(t, StateDone, res.State)
	require.Len(t, res.DebtItems, 2)
	require.NotEmpty(t, res.Chains)
	assert.Len(t, res.SIRResults, 2)
}
