package semantic

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soullang/soulc/internal/ast"
	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/lexer"
	"github.com/soullang/soulc/internal/parser"
	"github.com/soullang/soulc/internal/scope"
	"github.com/soullang/soulc/internal/soulnames"
	"github.com/soullang/soulc/internal/types"
)

func runPipeline(t *testing.T, src string, preResolve func(ctx *Context)) (*ast.Module, *Context) {
	t.Helper()
	errs := &errors.List{}
	l := lexer.New(src, errs)
	module, _ := parser.ParseModule(l, errs, "test.soul")
	require.False(t, errs.HasErrors(), "parse errors: %v", errs.Errors)

	ctx := NewContext("test", errs)
	if preResolve != nil {
		preResolve(ctx)
	}

	pm := NewPassManager(DeclarationPass{}, ResolutionPass{}, InferencePass{})
	err := pm.RunAll(module, ctx)
	require.NoError(t, err)
	return module, ctx
}

// TestModuleAliasResolvesToExternalHeaderFunction exercises spec.md §8
// scenario S8 end to end: `use std.fmt` registers a module alias, and a
// subsequent `fmt.Println(...)` call is rewritten to an ExternalExpression
// and resolved against the loaded header's function signature.
func TestModuleAliasResolvesToExternalHeaderFunction(t *testing.T) {
	module, ctx := runPipeline(t, "use std.fmt\nfmt.Println(\"hi\")\n", func(ctx *Context) {
		header := scope.NewHeaderScope("std.fmt")
		header.DefineFunction(&scope.FunctionSignature{
			Name:       "Println",
			ParamTypes: []types.Type{types.Base(soulnames.StringType)},
			ReturnType: types.Base(soulnames.None),
		})
		ctx.Scope.RegisterExternalHeader("std.fmt", header)
	})
	require.False(t, ctx.Errs.HasErrors(), "unexpected errors: %v", ctx.Errs.Errors)

	stmt, ok := module.Stmts[1].(*ast.ExpressionStmt)
	require.True(t, ok, "expected statement 1 to be an ExpressionStmt, got %T", module.Stmts[1])

	call, ok := stmt.Expr.(*ast.FunctionCall)
	require.True(t, ok, "expected a FunctionCall, got %T", stmt.Expr)

	ext, ok := call.Callee.(*ast.ExternalExpression)
	require.True(t, ok, "expected C11 to rewrite the callee to an ExternalExpression, got %T", call.Callee)
	require.Equal(t, "std.fmt", ext.ModulePath)
	require.Equal(t, "Println", ext.Name)
}

func TestRedeclarationInSameScopeReportsError(t *testing.T) {
	_, ctx := runPipeline(t, "let x := 1\nlet x := 2\n", nil)
	require.True(t, ctx.Errs.HasErrors(), "expected a redeclaration error")
}

func TestUntypedLiteralDecaysOnDeclaration(t *testing.T) {
	module, ctx := runPipeline(t, "let x := 1\n", nil)
	require.False(t, ctx.Errs.HasErrors(), "unexpected errors: %v", ctx.Errs.Errors)

	decl, ok := module.Stmts[0].(*ast.VariableDecl)
	require.True(t, ok, "expected a VariableDecl, got %T", module.Stmts[0])
	require.Len(t, decl.Refs, 1)
	require.Equal(t, soulnames.Int, decl.Refs[0].Type.Base, "untyped int literal should decay to the default system int")
}

func TestUndeclaredVariableReportsError(t *testing.T) {
	_, ctx := runPipeline(t, "let x := y\n", nil)
	require.True(t, ctx.Errs.HasErrors(), "expected an error referencing an undeclared name")
}
