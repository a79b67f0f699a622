// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package vcs defines the RepositoryProbe capability (spec §6) the
// core depends on for blame metadata and bulk pattern search, plus
// two concrete adapters and a deterministic no-op used by tests. The
// core never imports a specific git implementation directly; it only
// ever sees the Probe interface.
package vcs

import (
	"context"
	"time"
)

// BlameInfo is the blame metadata for a single line.
type BlameInfo struct {
	CommitHash string
	CommitDate time.Time
	Available  bool
}

// GrepHit is one line matched by a bulk pattern search.
type GrepHit struct {
	File    string
	Line    int
	Content string
}

// Probe is the RepositoryProbe capability from spec §6. All methods
// must tolerate a repository with no VCS metadata at all: BlameLine
// returns BlameInfo{Available: false} rather than an error, and Grep
// returns a nil slice (not an error) when the backend simply found no
// matches, so CandidateScanner can tell "no matches" apart from
// "backend failed" and fall back accordingly.
type Probe interface {
	// BlameLine returns blame metadata for file:line, or
	// BlameInfo{Available:false} if blame information cannot be
	// produced (untracked file, no VCS, detached content).
	BlameLine(ctx context.Context, file string, line int) (BlameInfo, error)

	// Grep performs a bulk search for patterns across files with the
	// given extensions. A nil, nil return means "no matches found";
	// a non-nil error means the backend itself failed and the caller
	// should fall back to a filesystem walk.
	Grep(ctx context.Context, patterns []string, extensions []string) ([]GrepHit, error)

	// CurrentHead returns the current commit hash, or "" if none.
	CurrentHead(ctx context.Context) (string, error)

	// RecentCommit reports whether a commit landed within the last
	// withinSeconds seconds.
	RecentCommit(ctx context.Context, withinSeconds int) (bool, error)
}

// Sentinel returns the sentinel BlameInfo used when blame is
// unavailable: the "untracked" hash and the current time, per the
// scanner's failure policy (spec §4.1).
func Sentinel() BlameInfo {
	return BlameInfo{CommitHash: "untracked", CommitDate: time.Now(), Available: false}
}
