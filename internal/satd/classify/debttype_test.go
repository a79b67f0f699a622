// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/satdripple/satdripple/internal/satd/model"
)

func TestClassify_DefectTakesPriorityOverLaterRules(t *testing.T) {
	assert.Equal(t, model.DebtDefect, Classify("TODO: this causes a race condition in the test suite", ""))
}

func TestClassify_FirstMatchingRuleWins(t *testing.T) {
	// Contains both a "test" keyword and a "design" keyword; defect
	// table entry precedes test, test precedes design.
	assert.Equal(t, model.DebtTest, Classify("FIXME: flaky mock breaks the design", ""))
}

func TestClassify_DefaultsToImplementation(t *testing.T) {
	assert.Equal(t, model.DebtImplementation, Classify("TODO: clean this up later", ""))
}

func TestClassify_ChecksExtendedContextToo(t *testing.T) {
	assert.Equal(t, model.DebtArchitecture, Classify("TODO: fix", "this module has a circular dependency problem"))
}
