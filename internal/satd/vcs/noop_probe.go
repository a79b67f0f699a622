// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package vcs

import "context"

// NoopProbe always reports blame as unavailable and finds no grep
// hits, regardless of input. It is used by tests and by callers that
// deliberately want the scanner's sentinel-metadata failure path
// (spec §4.1: untracked file, no VCS).
type NoopProbe struct{}

// BlameLine implements Probe.
func (NoopProbe) BlameLine(ctx context.Context, file string, line int) (BlameInfo, error) {
	return Sentinel(), nil
}

// Grep implements Probe.
func (NoopProbe) Grep(ctx context.Context, patterns []string, extensions []string) ([]GrepHit, error) {
	return nil, nil
}

// CurrentHead implements Probe.
func (NoopProbe) CurrentHead(ctx context.Context) (string, error) { return "", nil }

// RecentCommit implements Probe.
func (NoopProbe) RecentCommit(ctx context.Context, withinSeconds int) (bool, error) {
	return false, nil
}
