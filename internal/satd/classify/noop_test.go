// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopClassifier_EmptyCommentNeverSATD(t *testing.T) {
	res, err := (NoopClassifier{}).Classify(context.Background(), "   ", "")
	require.NoError(t, err)
	assert.False(t, res.IsSATD)
}

func TestNoopClassifier_ExplicitMarkerFullConfidence(t *testing.T) {
	res, err := (NoopClassifier{}).Classify(context.Background(), "TODO: fix this later", "")
	require.NoError(t, err)
	assert.True(t, res.IsSATD)
	assert.Equal(t, 1.0, res.Confidence)
}

func TestNoopClassifier_NonMarkerStillConfirmedBelowFullConfidence(t *testing.T) {
	res, err := (NoopClassifier{}).Classify(context.Background(), "this is just a plain comment", "")
	require.NoError(t, err)
	assert.True(t, res.IsSATD)
	assert.Less(t, res.Confidence, 1.0)
}

func TestNoopClassifier_Deterministic(t *testing.T) {
	a, err := (NoopClassifier{}).Classify(context.Background(), "HACK: band-aid fix", "")
	require.NoError(t, err)
	b, err := (NoopClassifier{}).Classify(context.Background(), "HACK: band-aid fix", "")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNoopClassifier_BatchMatchesIndividualResults(t *testing.T) {
	items := []Item{
		{ID: "a", Comment: "TODO: refactor"},
		{ID: "b", Comment: ""},
		{ID: "c", Comment: "plain note"},
	}
	out, err := (NoopClassifier{}).BatchClassify(context.Background(), items, 0.5)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.True(t, out["a"].IsSATD)
	assert.False(t, out["b"].IsSATD)
	assert.True(t, out["c"].IsSATD)
}
