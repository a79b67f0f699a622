// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package relate

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/satdripple/satdripple/internal/satd/astutil"
	"github.com/satdripple/satdripple/internal/satd/model"
)

// ModuleDependencyAnalyzer implements spec §4.3.4: if file F_A
// (containing SATD A) imports file F_B (containing SATD B), emit
// A->B in the MODULE band. Go import paths are resolved against the
// enclosing go.mod's module path using golang.org/x/mod/modfile;
// every other recognized language is resolved as a relative path.
type ModuleDependencyAnalyzer struct{}

func (a *ModuleDependencyAnalyzer) Name() string { return "ModuleDependencyAnalyzer" }

func (a *ModuleDependencyAnalyzer) FindRelationships(ctx context.Context, items []*model.DebtItem, files FileContents) ([]*model.SatdRelationship, error) {
	idx := newFileIndex(items)
	band := model.WeightBands[model.RelationModule]
	modulePath := goModulePath(files)

	var out []*model.SatdRelationship
	for file, content := range files {
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		sourceItems := idx.inFile(file)
		if len(sourceItems) == 0 {
			continue
		}
		ex, err := astutil.Extract(ctx, filepath.Ext(file), content)
		if err != nil || ex == nil {
			continue
		}

		for _, imp := range ex.Imports {
			target := resolveImport(file, imp.Path, modulePath, files)
			if target == "" || target == file {
				continue
			}
			targetItems := idx.inFile(target)
			if len(targetItems) == 0 {
				continue
			}
			for _, source := range sourceItems {
				for _, dst := range targetItems {
					rel := emit(source, dst, model.RelationModule, band.Max, interFileHops,
						fmt.Sprintf("%s imports %s", file, target))
					if rel != nil {
						out = append(out, rel)
					}
				}
			}
		}
	}
	return out, nil
}

// goModulePath extracts the module directive from a go.mod file
// present in files, if any.
func goModulePath(files FileContents) string {
	for name, content := range files {
		if filepath.Base(name) != "go.mod" {
			continue
		}
		mf, err := modfile.Parse(name, content, nil)
		if err != nil || mf.Module == nil {
			return ""
		}
		return mf.Module.Mod.Path
	}
	return ""
}

// resolveImport maps an import/require path found in fromFile to one
// of the keys of files, or "" if it cannot be resolved to a scanned
// file.
func resolveImport(fromFile, importPath, modulePath string, files FileContents) string {
	if modulePath != "" && strings.HasPrefix(importPath, modulePath) {
		rel := strings.TrimPrefix(importPath, modulePath)
		rel = strings.TrimPrefix(rel, "/")
		for candidate := range files {
			if filepath.Ext(candidate) != ".go" {
				continue
			}
			if filepath.ToSlash(filepath.Dir(candidate)) == rel ||
				strings.HasSuffix(filepath.ToSlash(filepath.Dir(candidate)), "/"+rel) {
				return candidate
			}
		}
		return ""
	}

	if strings.HasPrefix(importPath, ".") {
		joined := path.Clean(path.Join(filepath.ToSlash(filepath.Dir(fromFile)), importPath))
		for _, ext := range []string{"", ".go", ".py", ".js", ".jsx", ".ts", ".tsx", ".rb", ".java"} {
			candidate := filepath.FromSlash(joined + ext)
			if _, ok := files[candidate]; ok {
				return candidate
			}
		}
		// Same-basename match, ignoring extension (covers imports
		// written without one, e.g. "require('./utils')").
		for candidate := range files {
			if strings.TrimSuffix(filepath.ToSlash(candidate), filepath.Ext(candidate)) == joined {
				return candidate
			}
		}
	}
	return ""
}
