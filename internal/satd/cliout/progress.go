// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package cliout

import (
	"io"

	"github.com/schollz/progressbar/v3"
)

// ScanProgress wraps a progressbar.ProgressBar so the scanner's
// filesystem-walk slow path can report per-file progress without
// importing the progress bar library into package scan.
type ScanProgress struct {
	bar *progressbar.ProgressBar
}

// NewScanProgress returns a ScanProgress rendering to w, or a no-op
// one if total <= 0 or w is not a terminal.
func NewScanProgress(w io.Writer, total int) *ScanProgress {
	if total <= 0 || !IsTerminal(w) {
		return &ScanProgress{}
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("scanning"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	return &ScanProgress{bar: bar}
}

// Add advances the bar by n units.
func (p *ScanProgress) Add(n int) {
	if p.bar == nil {
		return
	}
	_ = p.bar.Add(n)
}

// Finish completes the bar.
func (p *ScanProgress) Finish() {
	if p.bar == nil {
		return
	}
	_ = p.bar.Finish()
}
