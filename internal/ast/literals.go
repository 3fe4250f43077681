package ast

import (
	"github.com/soullang/soulc/internal/soulnames"
	"github.com/soullang/soulc/internal/types"
)

// LiteralValue is spec.md §3's Literal sum type: the nine literal shapes a
// literal token or literal-parser production (C9) can produce. Each
// variant below implements the marker interface by defining literalNode.
type LiteralValue interface {
	literalNode()
	Type() types.Type
}

// IntLiteral is a signed integer literal; C9 decides sign from a leading
// '-' (spec.md §4.9: "leading '-' flips to signed Int").
type IntLiteral struct {
	Value int64
	Typ   types.Type
}

func (IntLiteral) literalNode()         {}
func (l IntLiteral) Type() types.Type   { return l.Typ }

// UintLiteral is an unsigned literal — always the reading of a hex/binary
// literal (spec.md §4.9); a plain decimal literal reads as IntLiteral.
type UintLiteral struct {
	Value uint64
	Typ   types.Type
}

func (UintLiteral) literalNode()        {}
func (l UintLiteral) Type() types.Type  { return l.Typ }

// FloatLiteral is produced when a decimal literal overflows Int range or
// carries a '.'/exponent suffix.
type FloatLiteral struct {
	Value float64
	Typ   types.Type
}

func (FloatLiteral) literalNode()       {}
func (l FloatLiteral) Type() types.Type { return l.Typ }

// BoolLiteral is `true`/`false`.
type BoolLiteral struct{ Value bool }

func (BoolLiteral) literalNode()     {}
func (BoolLiteral) Type() types.Type { return types.Base(soulnames.Boolean) }

// CharLiteral is a single-character literal.
type CharLiteral struct{ Value rune }

func (CharLiteral) literalNode()     {}
func (CharLiteral) Type() types.Type { return types.Base(soulnames.Character) }

// StrLiteral is a string literal whose contents were interned by the
// lexer into a c-string store; CStringIdent is the synthetic identifier
// the lexer replaced the literal text with (spec.md §3/§6).
type StrLiteral struct{ CStringIdent string }

func (StrLiteral) literalNode()     {}
func (StrLiteral) Type() types.Type { return types.Base(soulnames.StringType) }

// ArrayLiteral is `[e0, e1, ...]` or the filler form `[for n => e]`.
type ArrayLiteral struct {
	Elements []LiteralValue
	Filler   LiteralValue // non-nil for the `[for n => e]` filler form
	Count    int          // valid when Filler != nil
	ElemType types.Type
}

func (ArrayLiteral) literalNode() {}
func (l ArrayLiteral) Type() types.Type {
	return l.ElemType.WithWrapper(types.Wrapper{Kind: soulnames.WrapperArray})
}

// TupleLiteral is `(e0, e1, ...)`.
type TupleLiteral struct {
	Elements []LiteralValue
	Typ      types.Type
}

func (TupleLiteral) literalNode()        {}
func (l TupleLiteral) Type() types.Type  { return l.Typ }

// NamedTupleLiteral is `(name0: e0, name1: e1, ...)`.
type NamedTupleLiteral struct {
	Names    []string
	Elements []LiteralValue
	Typ      types.Type
}

func (NamedTupleLiteral) literalNode()       {}
func (l NamedTupleLiteral) Type() types.Type { return l.Typ }

// ProgramMemory is spec.md §4.9's interning form: any non-trivial literal
// (array/tuple/named-tuple) is stored once in the literal pool and
// referenced by a synthetic __soul_mem_N__ id rather than carried inline
// in the AST, mirroring the lexer's c-string interning for strings.
type ProgramMemory struct {
	MemIdent string
	Typ      types.Type
}

func (ProgramMemory) literalNode()       {}
func (l ProgramMemory) Type() types.Type { return l.Typ }
