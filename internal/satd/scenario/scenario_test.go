// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package scenario

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satdripple/satdripple/internal/satd/classify"
	"github.com/satdripple/satdripple/internal/satd/config"
	"github.com/satdripple/satdripple/internal/satd/pipeline"
	"github.com/satdripple/satdripple/internal/satd/vcs"
)

func TestLoadAll_MaterializesBothScenarios(t *testing.T) {
	scenarios, err := LoadAll()
	require.NoError(t, err)
	require.Len(t, scenarios, 2)

	sc, err := ByID(scenarios, 1)
	require.NoError(t, err)
	assert.Equal(t, "call-chain-growth", sc.Name)
	assert.NotEmpty(t, sc.Before)
	assert.NotEmpty(t, sc.After)
	assert.NotEmpty(t, sc.PatchFile)
}

func TestByID_UnknownScenarioErrors(t *testing.T) {
	_, err := ByID([]Scenario{{ID: 1}}, 99)
	assert.Error(t, err)
}

func TestRun_CallChainScenarioGrowsChainAndSATDCount(t *testing.T) {
	scenarios, err := LoadAll()
	require.NoError(t, err)
	sc, err := ByID(scenarios, 1)
	require.NoError(t, err)

	p := pipeline.New(&vcs.NoopProbe{}, &classify.NoopClassifier{}, config.Default())
	res, err := Run(context.Background(), p, sc, time.Unix(0, 0))
	require.NoError(t, err)

	assert.Equal(t, sc.GroundTruth.ExpectedSATD, res.AfterAnalysis.SATDCount)
	assert.Equal(t, sc.GroundTruth.ExpectedChains, res.AfterAnalysis.ChainCount)
	assert.Equal(t, res.AfterAnalysis.SATDCount-res.BeforeAnalysis.SATDCount, res.Delta.NewSATDCount)
	assert.Positive(t, res.Delta.ChainGrowth)
	assert.Equal(t, 1.0, res.GroundTruthComparison.Accuracy)
	assert.NotEmpty(t, res.ChangedFiles)
}

func TestRun_DiamondScenarioHasNoPatchFile(t *testing.T) {
	scenarios, err := LoadAll()
	require.NoError(t, err)
	sc, err := ByID(scenarios, 2)
	require.NoError(t, err)
	assert.Empty(t, sc.PatchFile)

	p := pipeline.New(&vcs.NoopProbe{}, &classify.NoopClassifier{}, config.Default())
	res, err := Run(context.Background(), p, sc, time.Unix(0, 0))
	require.NoError(t, err)
	assert.Empty(t, res.ChangedFiles)
	assert.Equal(t, sc.GroundTruth.ExpectedSATD, res.AfterAnalysis.SATDCount)
}

func TestAccuracy_PerfectMatchIsOne(t *testing.T) {
	assert.Equal(t, 1.0, accuracy(3, 3))
}

func TestAccuracy_ZeroExpectedAndZeroDetectedIsOne(t *testing.T) {
	assert.Equal(t, 1.0, accuracy(0, 0))
}

func TestAccuracy_ZeroExpectedButSomeDetectedIsZero(t *testing.T) {
	assert.Equal(t, 0.0, accuracy(0, 2))
}

func TestAccuracy_PartialMismatchIsProportional(t *testing.T) {
	assert.InDelta(t, 0.5, accuracy(4, 2), 1e-9)
}
