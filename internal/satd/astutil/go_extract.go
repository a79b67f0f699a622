// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

package astutil

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
)

// ExtractGo parses Go source with tree-sitter and extracts the facts
// the relationship analyzers need. Grounded on the teacher's
// go_parser.go: a fresh *sitter.Parser per call (tree-sitter parsers
// are not safe for concurrent reuse), ParseCtx so callers can cancel,
// and tree.Close() once extraction is done.
func ExtractGo(ctx context.Context, content []byte) (*Extraction, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(golang.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return &Extraction{}, nil
	}

	w := &goWalker{src: content, ex: &Extraction{}}
	w.walk(root, "", 0)
	return w.ex, nil
}

type goWalker struct {
	src []byte
	ex  *Extraction
}

func (w *goWalker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.src)
}

func (w *goWalker) line(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// walk recursively visits every node, tracking the name of the
// enclosing function (for call sites) and the current control-nesting
// depth (for scaling CALL/CONTROL edge weights by depth).
func (w *goWalker) walk(n *sitter.Node, enclosingFunc string, depth int) {
	if n == nil {
		return
	}

	// defSide is the child whose identifiers a declaration form below
	// records as definitions; the recursion skips it so those names are
	// not recorded a second time as uses.
	var defSide *sitter.Node
	switch n.Type() {
	case "function_declaration", "method_declaration":
		name := w.text(n.ChildByFieldName("name"))
		fd := FuncDef{Name: name, StartLine: w.line(n), EndLine: int(n.EndPoint().Row) + 1}
		w.ex.Funcs = append(w.ex.Funcs, fd)
		enclosingFunc = name

	case "call_expression":
		fn := n.ChildByFieldName("function")
		callee := w.calleeName(fn)
		if callee != "" {
			w.ex.Calls = append(w.ex.Calls, CallSite{
				Callee:        callee,
				Line:          w.line(n),
				EnclosingFunc: enclosingFunc,
				Depth:         depth,
			})
		}

	case "if_statement", "for_statement", "expression_switch_statement",
		"type_switch_statement", "select_statement":
		kind := strings.TrimSuffix(n.Type(), "_statement")
		w.ex.Controls = append(w.ex.Controls, ControlBlock{
			Kind:      kind,
			StartLine: w.line(n),
			EndLine:   int(n.EndPoint().Row) + 1,
			Depth:     depth,
		})
		depth++

	case "short_var_declaration", "assignment_statement":
		defSide = n.ChildByFieldName("left")
		w.collectIdentifiers(defSide, true)

	case "var_spec", "const_spec":
		defSide = n.ChildByFieldName("name")
		w.collectIdentifiers(defSide, true)

	case "import_spec":
		if pathNode := n.ChildByFieldName("path"); pathNode != nil {
			path := strings.Trim(w.text(pathNode), `"`)
			w.ex.Imports = append(w.ex.Imports, ImportStmt{Path: path, Line: w.line(n)})
		}

	case "identifier":
		// Every identifier the walk reaches is a use (e.g. read inside
		// an expression, including a declaration's right-hand side);
		// the definition side of the declaration forms above is
		// skipped by the recursion, so it never reaches this branch.
		w.ex.Idents = append(w.ex.Idents, IdentOccurrence{Name: w.text(n), Line: w.line(n), IsDef: false})
	}

	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		child := n.NamedChild(i)
		if defSide != nil && child.StartByte() == defSide.StartByte() && child.EndByte() == defSide.EndByte() {
			continue
		}
		w.walk(child, enclosingFunc, depth)
	}
}

// calleeName extracts a best-effort function name from a call
// expression's function node: a bare identifier, or the selector
// field of a method/package-qualified call (pkg.Func or recv.Method).
func (w *goWalker) calleeName(fn *sitter.Node) string {
	if fn == nil {
		return ""
	}
	switch fn.Type() {
	case "identifier":
		return w.text(fn)
	case "selector_expression":
		field := fn.ChildByFieldName("field")
		return w.text(field)
	default:
		return ""
	}
}

// collectIdentifiers records every identifier anywhere under n as a
// definition (isDef true) or a use (isDef false).
func (w *goWalker) collectIdentifiers(n *sitter.Node, isDef bool) {
	if n == nil {
		return
	}
	if n.Type() == "identifier" {
		w.ex.Idents = append(w.ex.Idents, IdentOccurrence{Name: w.text(n), Line: w.line(n), IsDef: isDef})
		return
	}
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		w.collectIdentifiers(n.NamedChild(i), isDef)
	}
}
