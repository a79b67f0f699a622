// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package astutil

import "context"

// Extract dispatches to ExtractGo for .go files and ExtractRegex for
// everything else, so callers (the relationship analyzers) never need
// to know which backend produced a given Extraction.
func Extract(ctx context.Context, ext string, content []byte) (*Extraction, error) {
	if ext == ".go" {
		ex, err := ExtractGo(ctx, content)
		if err != nil {
			// Tree-sitter failures (e.g. pathological input) fall back
			// to the regex extractor rather than dropping the file's
			// facts entirely.
			return ExtractRegex(content), nil
		}
		return ex, nil
	}
	return ExtractRegex(content), nil
}
