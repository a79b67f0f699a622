// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package model

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// GenerateID derives a DebtItem's deterministic identifier from
// (file, line, truncated commit hash), per spec §3. BLAKE3 is a fast,
// deterministic hash, so two runs over the same input produce
// byte-identical IDs (the round-trip property spec §8 requires).
func GenerateID(file string, line int, commitHash string) string {
	truncated := commitHash
	if len(truncated) > 12 {
		truncated = truncated[:12]
	}
	sum := blake3.Sum256([]byte(fmt.Sprintf("%s:%d:%s", file, line, truncated)))
	return hex.EncodeToString(sum[:8])
}
