// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package scan

import "time"

// Candidate is a comment line matching pattern set P, not yet
// confirmed by the classifier.
type Candidate struct {
	File            string
	Line            int
	Content         string
	ExtendedContent string
	CreatedCommit   string
	CreatedDate     time.Time
}

// Summary records how many files the scan skipped, for the stage
// summary spec §7 asks every stage to keep.
type Summary struct {
	FilesScanned    int
	FilesSkipped    int
	CandidatesFound int
	UsedFastPath    bool
}
