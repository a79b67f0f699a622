// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package scenario

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures
var fixturesFS embed.FS

// manifestEntry mirrors one scenario's on-disk declaration in
// fixtures/scenarios.yaml.
type manifestEntry struct {
	ID          int         `yaml:"id"`
	Name        string      `yaml:"name"`
	Before      string      `yaml:"before"`
	After       string      `yaml:"after"`
	PatchFile   string      `yaml:"patchFile"`
	GroundTruth GroundTruth `yaml:"groundTruth"`
}

// LoadAll reads every scenario declared in the embedded fixture
// manifest, materializing each before/after directory pair under a
// temp dir so the filesystem-walking pipeline can operate on real
// paths rather than an fs.FS.
func LoadAll() ([]Scenario, error) {
	raw, err := fixturesFS.ReadFile("fixtures/scenarios.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading scenario manifest: %w", err)
	}
	var entries []manifestEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing scenario manifest: %w", err)
	}

	root, err := os.MkdirTemp("", "satdripple-scenarios-*")
	if err != nil {
		return nil, fmt.Errorf("staging scenarios: %w", err)
	}

	scenarios := make([]Scenario, 0, len(entries))
	for _, e := range entries {
		beforeDir, err := materialize(root, e.Before)
		if err != nil {
			return nil, err
		}
		afterDir, err := materialize(root, e.After)
		if err != nil {
			return nil, err
		}
		patchPath := ""
		if e.PatchFile != "" {
			patchPath, err = materializeFile(root, e.PatchFile)
			if err != nil {
				return nil, err
			}
		}
		scenarios = append(scenarios, Scenario{
			ID:          e.ID,
			Name:        e.Name,
			Before:      beforeDir,
			After:       afterDir,
			PatchFile:   patchPath,
			GroundTruth: e.GroundTruth,
		})
	}
	return scenarios, nil
}

// ByID returns the single scenario matching id, or an error if none
// do.
func ByID(all []Scenario, id int) (Scenario, error) {
	for _, s := range all {
		if s.ID == id {
			return s, nil
		}
	}
	return Scenario{}, fmt.Errorf("scenario %d not found", id)
}

// materialize copies an embedded fixture subtree rooted at
// "fixtures/"+embeddedPath onto disk under root, returning its new
// absolute path.
func materialize(root, embeddedPath string) (string, error) {
	srcRoot := filepath.ToSlash(filepath.Join("fixtures", embeddedPath))
	dstRoot := filepath.Join(root, embeddedPath)

	err := fs.WalkDir(fixturesFS, srcRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcRoot, p)
		if err != nil {
			return err
		}
		dst := filepath.Join(dstRoot, rel)
		if d.IsDir() {
			return os.MkdirAll(dst, 0o755)
		}
		content, err := fixturesFS.ReadFile(p)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return err
		}
		return os.WriteFile(dst, content, 0o644)
	})
	if err != nil {
		return "", fmt.Errorf("materializing %s: %w", embeddedPath, err)
	}
	return dstRoot, nil
}

func materializeFile(root, embeddedPath string) (string, error) {
	content, err := fixturesFS.ReadFile(filepath.ToSlash(filepath.Join("fixtures", embeddedPath)))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", embeddedPath, err)
	}
	dst := filepath.Join(root, embeddedPath)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, content, 0o644); err != nil {
		return "", err
	}
	return dst, nil
}
