// Package ast defines the three sum types spec.md §3 builds the parse
// tree out of: Expression, Statement and Literal. Each is modelled the Go
// way the teacher's internal/ast package models DWScript's tree — a small
// marker-method interface implemented by one struct per variant — rather
// than as a tagged union, since Soul's grammar (spec.md §4.7-§4.9) has the
// same "one struct per production" shape the teacher's
// declarations.go/control_flow.go/functions.go split already uses.
package ast

import "github.com/soullang/soulc/internal/token"

// Node is the common interface every AST node implements: its source Span
// for diagnostics, plus the unexported node() marker.
type Node interface {
	Span() token.Span
	node()
}

// Expression is spec.md §3's Expression sum type. Each variant below
// implements it by embedding BaseExpr and adding its own fields.
type Expression interface {
	Node
	exprNode()
}

// BaseExpr carries the source span every Expression variant embeds.
// Exported (unlike a purely internal marker) so parser code outside this
// package can build node literals directly — `ast.Binary{BaseExpr:
// ast.BaseExpr{Span: s}, ...}` — the same way the teacher's parser builds
// `ast.UnaryExpression{BaseNode: ast.BaseNode{Token: tok}}` literals.
type BaseExpr struct{ Span_ token.Span }

func (b BaseExpr) Span() token.Span { return b.Span_ }
func (b BaseExpr) node()            {}
func (b BaseExpr) exprNode()        {}

// Statement is spec.md §3's Statement sum type.
type Statement interface {
	Node
	stmtNode()
}

// BaseStmt carries the source span every Statement variant embeds.
type BaseStmt struct{ Span_ token.Span }

func (b BaseStmt) Span() token.Span { return b.Span_ }
func (b BaseStmt) node()            {}
func (b BaseStmt) stmtNode()        {}

// Module is the top-level parse result for one source file: its ordered
// top-level statements plus the module path it declares itself under.
type Module struct {
	BaseStmt
	Path  string
	Stmts []Statement
}

func NewModule(span token.Span, path string, stmts []Statement) *Module {
	return &Module{BaseStmt{span}, path, stmts}
}
