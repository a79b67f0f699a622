// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_BuildsUsableSink(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, s)
}

func TestGlobal_ReturnsSameSinkEveryCall(t *testing.T) {
	assert.Same(t, Global(), Global())
}

func TestStartStage_EndsSpanWithoutPanicking(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	_, end := s.StartStage(context.Background(), "scanning")
	assert.NotPanics(t, func() { end(nil) })
}

func TestStartStage_RecordsErrorWithoutPanicking(t *testing.T) {
	s, err := New(DefaultConfig())
	require.NoError(t, err)

	_, end := s.StartStage(context.Background(), "classifying")
	assert.NotPanics(t, func() { end(errors.New("boom")) })
}

func TestNilSink_RecordMethodsAreNoops(t *testing.T) {
	var s *Sink
	assert.NotPanics(t, func() {
		s.RecordDebtItems(context.Background(), 1)
		s.RecordEdges(context.Background(), "CallGraphAnalyzer", 1)
		s.RecordChains(context.Background(), 1)
		s.RecordSuppressed(context.Background(), "parse_failure")
	})
}
