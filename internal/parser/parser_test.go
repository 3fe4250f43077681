package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soullang/soulc/internal/ast"
	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/lexer"
)

func parseSource(t *testing.T, src string) (*ast.Module, *LiteralPool, *errors.List) {
	t.Helper()
	errs := &errors.List{}
	l := lexer.New(src, errs)
	module, pool := ParseModule(l, errs, "test.soul")
	return module, pool, errs
}

func TestParseLetDecl(t *testing.T) {
	module, _, errs := parseSource(t, "let mut x := 1\n")
	require.False(t, errs.HasErrors())
	require.Len(t, module.Stmts, 1)

	decl, ok := module.Stmts[0].(*ast.VariableDecl)
	require.True(t, ok, "expected a VariableDecl, got %T", module.Stmts[0])
	require.Equal(t, []string{"x"}, decl.Names)
	require.True(t, decl.Mut)
	require.NotNil(t, decl.Value)
}

func TestParseUseBlockWholeModule(t *testing.T) {
	module, _, errs := parseSource(t, "use std.fmt\n")
	require.False(t, errs.HasErrors())
	require.Len(t, module.Stmts, 1)

	use, ok := module.Stmts[0].(*ast.UseBlock)
	require.True(t, ok, "expected a UseBlock, got %T", module.Stmts[0])
	require.Equal(t, "std.fmt", use.ModulePath)
	require.Empty(t, use.Names)
}

func TestBinaryPrecedenceMulBeforeAdd(t *testing.T) {
	module, _, errs := parseSource(t, "1 + 2 * 3\n")
	require.False(t, errs.HasErrors())
	require.Len(t, module.Stmts, 1)

	stmt, ok := module.Stmts[0].(*ast.ExpressionStmt)
	require.True(t, ok, "expected an ExpressionStmt, got %T", module.Stmts[0])

	add, ok := stmt.Expr.(*ast.Binary)
	require.True(t, ok, "expected the outermost node to be '+', got %T", stmt.Expr)
	require.Equal(t, "+", add.Op)

	mul, ok := add.Right.(*ast.Binary)
	require.True(t, ok, "expected the right operand of '+' to be '*', got %T", add.Right)
	require.Equal(t, "*", mul.Op)
}

func TestFunctionCallWithAccessField(t *testing.T) {
	module, _, errs := parseSource(t, "fmt.Println(\"hi\")\n")
	require.False(t, errs.HasErrors())
	require.Len(t, module.Stmts, 1)

	stmt, ok := module.Stmts[0].(*ast.ExpressionStmt)
	require.True(t, ok, "expected an ExpressionStmt, got %T", module.Stmts[0])

	call, ok := stmt.Expr.(*ast.FunctionCall)
	require.True(t, ok, "expected a FunctionCall, got %T", stmt.Expr)

	field, ok := call.Callee.(*ast.AccessField)
	require.True(t, ok, "expected the callee to still be an unresolved AccessField before C11 runs, got %T", call.Callee)
	require.Equal(t, "Println", field.Field)

	require.Len(t, call.Args, 1)
}

func TestParseTypeStringRoundTrips(t *testing.T) {
	typ, err := ParseTypeString("int")
	require.NoError(t, err)
	require.Equal(t, "int", typ.String())
}

func TestParseTypeStringRejectsGarbage(t *testing.T) {
	_, err := ParseTypeString("!!!not a type")
	require.Error(t, err)
}
