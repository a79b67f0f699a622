// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package scan

import "strings"

// hasCommentMarker reports whether trimmed contains a comment marker
// appropriate to ext: "#" for Python/Ruby, "//"/"/*"/leading "*" for
// C-family and Go, and PHP accepts all three (spec §4.1).
func hasCommentMarker(ext, trimmed string) bool {
	switch ext {
	case ".py", ".rb":
		return strings.Contains(trimmed, "#")
	case ".php":
		return strings.Contains(trimmed, "#") || strings.Contains(trimmed, "//") ||
			strings.Contains(trimmed, "/*") || strings.HasPrefix(trimmed, "*")
	default:
		return strings.Contains(trimmed, "//") || strings.Contains(trimmed, "/*") ||
			strings.HasPrefix(trimmed, "*")
	}
}
