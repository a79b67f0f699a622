// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_UnwrapsToCause(t *testing.T) {
	cause := errors.New("boom")
	err := New(KindParseFailure, "could not parse file", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "could not parse file: boom", err.Error())
}

func TestIsKind_MatchesWrappedKind(t *testing.T) {
	err := New(KindInvariantViolation, "chains overlap", nil)
	assert.True(t, IsKind(err, KindInvariantViolation))
	assert.False(t, IsKind(err, KindParseFailure))
}

func TestIsKind_FalseForPlainError(t *testing.T) {
	assert.False(t, IsKind(errors.New("plain"), KindParseFailure))
}

func TestFatal_OnlyInvariantViolationIsFatal(t *testing.T) {
	assert.True(t, Fatal(New(KindInvariantViolation, "x", nil)))
	for _, k := range []Kind{
		KindUnreadableFile, KindParseFailure, KindVcsUnavailable,
		KindClassifierRateLimit, KindClassifierTimeout, KindClassifierOther,
	} {
		assert.False(t, Fatal(New(k, "x", nil)))
	}
}

func TestKindString_CoversAllKinds(t *testing.T) {
	assert.Equal(t, "unreadable_file", KindUnreadableFile.String())
	assert.Equal(t, "invariant_violation", KindInvariantViolation.String())
	assert.Equal(t, "unknown", Kind(999).String())
}
