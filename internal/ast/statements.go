package ast

import (
	"github.com/soullang/soulc/internal/scope"
	"github.com/soullang/soulc/internal/types"
)

// ExpressionStmt wraps an expression used for its side effect, the
// statement-level form of `get_expression_statement` (spec.md §4.7).
type ExpressionStmt struct {
	BaseStmt
	Expr Expression
}

// VariableDecl covers every declaration form spec.md §4.8 lists:
// `Type name [= expr]`, `let name := expr`, `let mut name := expr`,
// `let (a, b) = expr`, and bare `Type name`.
type VariableDecl struct {
	BaseStmt
	Names   []string // more than one entry only for the destructuring `let (a,b) = expr` form
	Type    *types.Type // nil when inferred (the `let`/`let mut` forms)
	Mut     bool
	Value   Expression // nil for the bare `Type name` form
	Refs    []*scope.VariableRef
}

// Assignment is `target = expr` or a compound form (`target += expr`, ...)
// already lowered by C8 to a plain Op+Value pair (Op == "" for a bare
// assignment).
type Assignment struct {
	BaseStmt
	Target Expression
	Op     string
	Value  Expression
}

// Param is one function parameter: a name, a type, and an optional default
// value expression.
type Param struct {
	Name    string
	Type    types.Type
	Default Expression // nil if the parameter has no default
}

// FunctionDecl is a function declaration. Soul has no leading `fn`
// keyword (confirmed against the reference parser's parse_function_decl.rs):
// the signature starts directly with an optional modifier, then the name.
// `main` is constrained to return `int` (spec.md §4.8); that constraint is
// enforced by C8/C11, not encoded in this struct.
type FunctionDecl struct {
	BaseStmt
	Name       string
	ThisType   *types.Type // non-nil for a method receiver
	Generics   []string
	Params     []Param
	ReturnType types.Type
	Modifier   types.Modifier
	Body       *Block
}

// AccessVisibility is a field's getter or setter visibility, set by the
// optional `{ get; set; Get; Set; }` suffix in a field declaration
// (spec.md §4.8). Lowercase keeps the accessor private to the declaring
// type; uppercase exposes it publicly. VisibilityUnset means the suffix
// omitted that accessor entirely, which for a struct/class field without
// any suffix at all defaults to a public accessor on both sides.
type AccessVisibility int

const (
	VisibilityUnset AccessVisibility = iota
	VisibilityPrivate
	VisibilityPublic
)

// Field is one field of a struct/class declaration: a name, a type, an
// optional default-value expression, and optional getter/setter
// visibility carried by the `{ get; set; Get; Set; }` suffix.
type Field struct {
	Name    string
	Type    types.Type
	Default Expression // nil when the field has no `= default` initializer
	Get     AccessVisibility
	Set     AccessVisibility
}

// ClassDecl declares a class: fields plus methods (spec.md's class
// construct — simpler than DWScript's, with no multiple inheritance,
// properties, or virtual dispatch tables).
type ClassDecl struct {
	BaseStmt
	Name     string
	Generics []string
	Fields   []Field
	Methods  []*FunctionDecl
}

// StructDecl declares a plain data aggregate.
type StructDecl struct {
	BaseStmt
	Name     string
	Generics []string
	Fields   []Field
}

// TraitMethod is one method signature a trait requires implementors to
// provide.
type TraitMethod struct {
	Name       string
	Params     []Param
	ReturnType types.Type
}

// TraitDecl declares a trait (an interface of required methods, optionally
// with trait-bound generics elsewhere referencing it).
type TraitDecl struct {
	BaseStmt
	Name    string
	Methods []TraitMethod
}

// ImplDecl is an `impl Trait for Type { ... }` block providing a trait's
// methods for a concrete type.
type ImplDecl struct {
	BaseStmt
	Trait   string
	Type    types.Type
	Methods []*FunctionDecl
}

// EnumVariant is one variant of an Enum declaration: a bare name, a name
// with an explicit C-style integer/expression value, or a name carrying
// one associated value type (a type-enum in spec.md's terms when every
// variant carries data).
type EnumVariant struct {
	Name  string
	Value Expression  // non-nil for `Name = expr` explicit-value variants
	Type  *types.Type // non-nil for a data-carrying variant
}

// EnumDecl declares an Enum.
type EnumDecl struct {
	BaseStmt
	Name     string
	Variants []EnumVariant
}

// UnionDecl declares a Union: a set of field names any one of which may be
// active at a time, all sharing the union's storage.
type UnionDecl struct {
	BaseStmt
	Name   string
	Fields []Field
}

// TypeEnumDecl declares a type-enum: an enum whose every variant is itself
// a nominal type, used for closed sum types over existing declarations.
type TypeEnumDecl struct {
	BaseStmt
	Name     string
	Variants []types.Type
}

// UseBlock is a `use module.path` import statement, also covering the
// selective-import form `use path.[A, B]` (Names non-empty restricts the
// imported symbols to that list).
type UseBlock struct {
	BaseStmt
	ModulePath string
	Names      []string // empty for a whole-module import
}

// CloseBlock is the synthetic statement the resolution pass (C11) appends
// at the end of a block,
// carrying the borrow checker's delete list for that block's scope
// (spec.md §5: "block... exit closes both" the scope and the borrow
// graph).
type CloseBlock struct {
	BaseStmt
	ScopeID    int
	DeleteList []string
}

// BlockStmt is a sequence of statements opening and closing one lexical scope;
// reused both as a Statement (a bare `{ ... }` statement) and, via the
// Block expression type in expressions.go, as the body of an if/for/while/
// function when it is used for its trailing value.
type BlockStmt struct {
	BaseStmt
	Stmts []Statement
}
