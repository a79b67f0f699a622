// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package scan implements CandidateScanner (spec §4.1): it walks a
// repository, finds comment lines matching the lexical pattern set P,
// and attaches blame metadata from a vcs.Probe.
package scan

import (
	"regexp"
	"strings"
)

// ExplicitMarkers are the spec's explicit SATD markers.
var ExplicitMarkers = []string{
	"TODO", "FIXME", "HACK", "XXX", "BUG", "ISSUE", "DEBT", "NOTE",
	"WARNING", "OPTIMIZE", "REVIEW", "REVISIT", "REFACTOR",
}

// ImplicitMarkers are phrase-level SATD indicators that don't use one
// of the explicit tags.
var ImplicitMarkers = []string{
	"workaround", "temporary", "quick fix", "needs refactoring",
	"hardcoded", "deprecated", "legacy", "race condition", "memory leak",
	"not thread safe", "brittle", "band-?aid", "kludge", "spaghetti",
	"technical debt", "code smell", "should be rewritten",
}

// recognizedExtensions is the fixed extension set CandidateScanner
// inspects (spec §4.1).
var recognizedExtensions = map[string]struct{}{
	".py": {}, ".js": {}, ".jsx": {}, ".ts": {}, ".tsx": {}, ".java": {},
	".c": {}, ".cpp": {}, ".h": {}, ".hpp": {}, ".cs": {}, ".go": {},
	".rb": {}, ".php": {},
}

// excludedDirs are conventional build/vendor directory names skipped
// during the walk, along with any hidden (dot-prefixed) directory.
var excludedDirs = map[string]struct{}{
	"node_modules": {}, "build": {}, "dist": {}, "out": {},
	"__pycache__": {}, "venv": {}, ".git": {},
}

// RecognizedExtensions returns the extensions CandidateScanner walks,
// in no particular order.
func RecognizedExtensions() []string {
	out := make([]string, 0, len(recognizedExtensions))
	for ext := range recognizedExtensions {
		out = append(out, ext)
	}
	return out
}

// IsRecognizedExtension reports whether ext (including the leading
// dot) is one CandidateScanner inspects.
func IsRecognizedExtension(ext string) bool {
	_, ok := recognizedExtensions[ext]
	return ok
}

// IsExcludedDir reports whether a directory entry with this base name
// should be skipped during the walk.
func IsExcludedDir(name string) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	_, ok := excludedDirs[name]
	return ok
}

// PatternSet compiles the lexical pattern set P into a single
// case-insensitive, word-boundary regular expression, honoring
// customPatterns/excludePatterns and whether implicit markers are
// included.
type PatternSet struct {
	re *regexp.Regexp
}

// NewPatternSet builds the pattern set from the explicit markers, the
// implicit markers (if includeImplicit is true), plus any
// customPatterns, minus anything listed in excludePatterns.
func NewPatternSet(includeImplicit bool, customPatterns, excludePatterns []string) (*PatternSet, error) {
	excluded := make(map[string]struct{}, len(excludePatterns))
	for _, p := range excludePatterns {
		excluded[strings.ToLower(p)] = struct{}{}
	}

	var terms []string
	add := func(list []string, quoteMeta, boundary bool) {
		for _, m := range list {
			if _, skip := excluded[strings.ToLower(m)]; skip {
				continue
			}
			term := m
			if quoteMeta {
				term = regexp.QuoteMeta(m)
			}
			if boundary {
				term = `\b` + term + `\b`
			}
			terms = append(terms, term)
		}
	}

	add(ExplicitMarkers, true, true)
	if includeImplicit {
		// Implicit markers are pre-written as regex fragments (e.g.
		// "band-?aid"), not literals, so they aren't escaped — but
		// word-boundary semantics (spec §4.1) still apply at each
		// marker's edges, single-word or phrase alike.
		add(ImplicitMarkers, false, true)
	}
	add(customPatterns, false, false)

	if len(terms) == 0 {
		// Never match anything: \b and \B can't both hold at one
		// position, so this is an always-false, RE2-valid pattern.
		terms = []string{`\b\B`}
	}

	re, err := regexp.Compile(`(?i)(` + strings.Join(terms, "|") + `)`)
	if err != nil {
		return nil, err
	}
	return &PatternSet{re: re}, nil
}

// MatchString reports whether line matches the compiled pattern set.
func (p *PatternSet) MatchString(line string) bool {
	return p.re.MatchString(line)
}
