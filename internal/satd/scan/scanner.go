// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package scan

import (
	"bufio"
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/satdripple/satdripple/internal/satd/vcs"
)

// contextRadius is the number of lines of surrounding code captured
// on each side of a candidate line (spec §3: "±5 lines").
const contextRadius = 5

// Scanner is CandidateScanner (spec §4.1): it walks root, matches
// lines against the lexical pattern set P, and attaches blame
// metadata through a vcs.Probe.
//
// # Thread Safety
//
// Scanner holds no mutable state after construction and is safe for
// concurrent use across multiple Scan calls against different roots.
type Scanner struct {
	Probe      vcs.Probe
	Patterns   *PatternSet
	grepWords  []string
	extensions []string
}

// NewScanner builds a Scanner. grepWords are the literal terms passed
// to the probe's bulk Grep fast path; they should be a superset of
// what patterns matches, since results are re-filtered through
// patterns+hasCommentMarker before being kept.
func NewScanner(probe vcs.Probe, patterns *PatternSet, grepWords []string) *Scanner {
	return &Scanner{
		Probe:      probe,
		Patterns:   patterns,
		grepWords:  grepWords,
		extensions: RecognizedExtensions(),
	}
}

// Scan walks root and returns every confirmed candidate, sorted by
// (File, Line) for deterministic downstream processing.
func (s *Scanner) Scan(ctx context.Context, root string) ([]Candidate, Summary, error) {
	summary := Summary{}

	candidates, usedFast, err := s.fastPath(ctx, root, &summary)
	if err != nil || !usedFast {
		candidates, err = s.slowPath(ctx, root, &summary)
		if err != nil {
			return nil, summary, err
		}
	} else {
		summary.UsedFastPath = true
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].File != candidates[j].File {
			return candidates[i].File < candidates[j].File
		}
		return candidates[i].Line < candidates[j].Line
	})
	summary.CandidatesFound = len(candidates)
	return candidates, summary, nil
}

// fastPath tries the VCS-backed bulk search. The second return value
// reports whether the fast path produced usable (possibly empty after
// filtering, but non-error) results; false means the caller must run
// the slow path instead.
func (s *Scanner) fastPath(ctx context.Context, root string, summary *Summary) ([]Candidate, bool, error) {
	hits, err := s.Probe.Grep(ctx, s.grepWords, s.extensions)
	if err != nil {
		return nil, false, nil //nolint:nilerr // fall back to slow path, not a scan failure
	}
	if len(hits) == 0 {
		return nil, false, nil
	}

	fileCache := make(map[string][]string)
	var out []Candidate
	for _, h := range hits {
		ext := filepath.Ext(h.File)
		if !IsRecognizedExtension(ext) {
			continue
		}
		trimmed := strings.TrimSpace(h.Content)
		if !hasCommentMarker(ext, trimmed) || !s.Patterns.MatchString(trimmed) {
			continue
		}
		lines, ok := fileCache[h.File]
		if !ok {
			lines = readLines(filepath.Join(root, h.File))
			fileCache[h.File] = lines
		}
		out = append(out, s.buildCandidate(ctx, h.File, h.Line, trimmed, lines))
	}
	return out, true, nil
}

// slowPath walks the filesystem directly.
func (s *Scanner) slowPath(ctx context.Context, root string, summary *Summary) ([]Candidate, error) {
	var out []Candidate

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			slog.Warn("scan: skipping path after walk error", "path", path, "error", walkErr)
			summary.FilesSkipped++
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			if path != root && IsExcludedDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(d.Name())
		if !IsRecognizedExtension(ext) {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		lines, readErr := readFileLines(path)
		if readErr != nil {
			slog.Warn("scan: unreadable file, skipping", "path", path, "error", readErr)
			summary.FilesSkipped++
			return nil
		}
		summary.FilesScanned++

		for i, line := range lines {
			trimmed := strings.TrimSpace(line)
			if !hasCommentMarker(ext, trimmed) || !s.Patterns.MatchString(trimmed) {
				continue
			}
			out = append(out, s.buildCandidate(ctx, rel, i+1, trimmed, lines))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Scanner) buildCandidate(ctx context.Context, file string, line int, trimmed string, lines []string) Candidate {
	blame, err := s.Probe.BlameLine(ctx, file, line)
	if err != nil || !blame.Available {
		blame = vcs.Sentinel()
	}
	return Candidate{
		File:            file,
		Line:            line,
		Content:         trimmed,
		ExtendedContent: extendedContext(lines, line),
		CreatedCommit:   blame.CommitHash,
		CreatedDate:     blame.CommitDate,
	}
}

// extendedContext returns the ±contextRadius lines of code around
// 1-based line, joined with newlines.
func extendedContext(lines []string, line int) string {
	idx := line - 1
	start := idx - contextRadius
	if start < 0 {
		start = 0
	}
	end := idx + contextRadius + 1
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end || idx < 0 || idx >= len(lines) {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}

func readFileLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

func readLines(path string) []string {
	lines, err := readFileLines(path)
	if err != nil {
		return nil
	}
	return lines
}
