// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package classify implements DebtTypeClassifier (spec §4.7) and the
// CommentClassifier capability (spec §6) the detection pipeline uses
// to confirm candidates as SATD.
package classify

import (
	"strings"

	"github.com/satdripple/satdripple/internal/satd/model"
)

// debtTypeRule is one entry in the priority-ordered keyword table.
type debtTypeRule struct {
	debtType model.DebtType
	keywords []string
}

// debtTypeTable is matched top to bottom; the first rule with a
// matching keyword wins (spec §4.7: "ties broken by the first
// matching type").
var debtTypeTable = []debtTypeRule{
	{model.DebtDefect, []string{"bug", "broken", "incorrect", "wrong", "fails", "failure", "crash", "error prone", "race condition", "memory leak", "null pointer", "deadlock"}},
	{model.DebtTest, []string{"test", "coverage", "mock", "stub", "assertion", "flaky"}},
	{model.DebtDocumentation, []string{"document", "doc comment", "docstring", "readme", "comment out of date", "undocumented"}},
	{model.DebtArchitecture, []string{"architecture", "coupling", "layering", "circular dependency", "monolith", "microservice"}},
	{model.DebtDesign, []string{"design", "api design", "interface", "abstraction", "pattern"}},
	{model.DebtRequirement, []string{"requirement", "spec", "acceptance criteria", "scope"}},
}

// Classify implements DebtTypeClassifier: a pure, deterministic
// keyword heuristic over content+context (spec §4.2, §4.7). Defaults
// to Implementation when no rule matches.
func Classify(content, context string) model.DebtType {
	haystack := strings.ToLower(content + " " + context)
	for _, rule := range debtTypeTable {
		for _, kw := range rule.keywords {
			if strings.Contains(haystack, kw) {
				return rule.debtType
			}
		}
	}
	return model.DebtImplementation
}
