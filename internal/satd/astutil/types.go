// Copyright (c) 2026 The SATD Ripple Authors.
// Licensed under the GNU Affero General Public License v3.0.
// See LICENSE for details.

// Package astutil extracts the small set of structural facts the four
// relationship analyzers need (function definitions and call sites,
// identifier definitions/uses, control structures, imports) from
// source code. Go is parsed with
// github.com/smacker/go-tree-sitter; every other recognized extension
// uses the regex-based fallback spec §4.3.1 explicitly allows.
//
// Each extractor returns small, independent records rather than
// accumulating edges itself — callers assemble edges from these
// records in a single later pass (spec §9: "AST traversal with
// side-effect accumulation... replace with returning small records").
package astutil

// FuncDef is a function or method definition.
type FuncDef struct {
	Name      string
	StartLine int // 1-based
	EndLine   int
}

// CallSite is a call expression found inside some enclosing function.
type CallSite struct {
	Callee        string
	Line          int
	EnclosingFunc string // name of FuncDef containing this call, "" if none
	Depth         int    // nesting depth of blocks/control structures at this point
}

// IdentOccurrence is one occurrence of an identifier, tagged as a
// definition (declarator target or assignment LHS) or a use.
type IdentOccurrence struct {
	Name  string
	Line  int
	IsDef bool
}

// ControlBlock is a control structure (if/for/switch/while/try/...)
// and the line range it reaches over.
type ControlBlock struct {
	Kind      string
	StartLine int
	EndLine   int
	Depth     int
}

// ImportStmt is a resolved or unresolved import/require path.
type ImportStmt struct {
	Path string
	Line int
}

// Extraction bundles everything a RelationshipAnalyzer needs from one
// file.
type Extraction struct {
	Funcs    []FuncDef
	Calls    []CallSite
	Idents   []IdentOccurrence
	Controls []ControlBlock
	Imports  []ImportStmt
}
