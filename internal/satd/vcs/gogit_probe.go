// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package vcs

import (
	"context"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGitProbe implements Probe without shelling out, using
// github.com/go-git/go-git/v5. It is preferred in sandboxed
// environments where spawning a git subprocess is restricted; its
// Grep implementation walks the HEAD commit's tree in process rather
// than invoking `git grep`.
type GoGitProbe struct {
	repo *git.Repository
}

// OpenGoGitProbe opens the repository rooted at workDir.
func OpenGoGitProbe(workDir string) (*GoGitProbe, error) {
	repo, err := git.PlainOpen(workDir)
	if err != nil {
		return nil, err
	}
	return &GoGitProbe{repo: repo}, nil
}

// BlameLine implements Probe.
func (p *GoGitProbe) BlameLine(ctx context.Context, file string, line int) (BlameInfo, error) {
	head, err := p.repo.Head()
	if err != nil {
		return Sentinel(), nil
	}
	commit, err := p.repo.CommitObject(head.Hash())
	if err != nil {
		return Sentinel(), nil
	}
	result, err := git.Blame(commit, file)
	if err != nil {
		return Sentinel(), nil
	}
	idx := line - 1
	if idx < 0 || idx >= len(result.Lines) {
		return Sentinel(), nil
	}
	bl := result.Lines[idx]
	hash := bl.Hash.String()
	if len(hash) > 12 {
		hash = hash[:12]
	}
	return BlameInfo{CommitHash: hash, CommitDate: bl.Date, Available: true}, nil
}

// Grep implements Probe by walking the HEAD tree and matching each
// line against the compiled pattern set, restricted to the given
// extensions.
func (p *GoGitProbe) Grep(ctx context.Context, patterns []string, extensions []string) ([]GrepHit, error) {
	head, err := p.repo.Head()
	if err != nil {
		return nil, err
	}
	commit, err := p.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	re, err := compileAny(patterns)
	if err != nil {
		return nil, err
	}
	extSet := make(map[string]struct{}, len(extensions))
	for _, e := range extensions {
		extSet[e] = struct{}{}
	}

	var hits []GrepHit
	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()
	for {
		select {
		case <-ctx.Done():
			return hits, ctx.Err()
		default:
		}
		name, entry, walkErr := walker.Next()
		if walkErr != nil {
			break
		}
		if entry.Mode.IsFile() && hasAnyExt(name, extSet) {
			blob, blobErr := p.repo.BlobObject(entry.Hash)
			if blobErr != nil {
				continue
			}
			reader, readerErr := blob.Reader()
			if readerErr != nil {
				continue
			}
			hits = append(hits, scanBlobForMatches(reader, name, re)...)
			reader.Close()
		}
	}
	if len(hits) == 0 {
		return nil, nil
	}
	return hits, nil
}

// CurrentHead implements Probe.
func (p *GoGitProbe) CurrentHead(ctx context.Context) (string, error) {
	head, err := p.repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}

// RecentCommit implements Probe.
func (p *GoGitProbe) RecentCommit(ctx context.Context, withinSeconds int) (bool, error) {
	head, err := p.repo.Head()
	if err != nil {
		return false, err
	}
	commit, err := p.repo.CommitObject(head.Hash())
	if err != nil {
		return false, err
	}
	return time.Since(commit.Author.When) <= time.Duration(withinSeconds)*time.Second, nil
}

var _ = plumbing.ZeroHash // keep plumbing import meaningful across go-git versions
