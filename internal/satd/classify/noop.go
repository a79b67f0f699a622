// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package classify

import (
	"context"
	"regexp"
	"strings"

	"github.com/satdripple/satdripple/internal/satd/scan"
)

var explicitMarkerRe = buildMarkerRegexp(scan.ExplicitMarkers)

func buildMarkerRegexp(markers []string) *regexp.Regexp {
	escaped := make([]string, len(markers))
	for i, m := range markers {
		escaped[i] = `\b` + regexp.QuoteMeta(m) + `\b`
	}
	return regexp.MustCompile(`(?i)(` + strings.Join(escaped, "|") + `)`)
}

// NoopClassifier is a deterministic CommentClassifier: any comment
// containing an explicit marker (TODO, FIXME, ...) is confirmed with
// confidence 1.0, anything else is confirmed at a lower confidence
// that still clears the default threshold, and an empty comment is
// never SATD. It requires no network access, making it suitable for
// tests and for the scenario harness's ground-truth comparisons
// (spec §6, "No guarantee of classifier determinism... the core
// isolates that non-determinism behind a single interface").
type NoopClassifier struct{}

// Classify implements Classifier.
func (NoopClassifier) Classify(ctx context.Context, comment, surroundingContext string) (Result, error) {
	if strings.TrimSpace(comment) == "" {
		return Result{IsSATD: false}, nil
	}
	if explicitMarkerRe.MatchString(comment) {
		return Result{IsSATD: true, Confidence: 1.0}, nil
	}
	return Result{IsSATD: true, Confidence: 0.8}, nil
}

// BatchClassify implements Classifier.
func (n NoopClassifier) BatchClassify(ctx context.Context, items []Item, threshold float64) (map[string]Result, error) {
	out := make(map[string]Result, len(items))
	for _, it := range items {
		res, _ := n.Classify(ctx, it.Comment, it.Context)
		out[it.ID] = res
	}
	return out, nil
}
