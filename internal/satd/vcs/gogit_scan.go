// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package vcs

import (
	"bufio"
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

func compileAny(patterns []string) (*regexp.Regexp, error) {
	quoted := make([]string, len(patterns))
	for i, p := range patterns {
		quoted[i] = "(?i)" + p
	}
	return regexp.Compile(strings.Join(quoted, "|"))
}

func hasAnyExt(name string, extSet map[string]struct{}) bool {
	ext := filepath.Ext(name)
	_, ok := extSet[ext]
	return ok
}

func scanBlobForMatches(r io.Reader, path string, re *regexp.Regexp) []GrepHit {
	var hits []GrepHit
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if re.MatchString(text) {
			hits = append(hits, GrepHit{File: path, Line: lineNo, Content: text})
		}
	}
	return hits
}
