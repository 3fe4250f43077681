// resolution.go implements C11, spec.md §4.11's name-resolution pass: it
// walks every statement and expression in a module, opening/closing a
// scope (paired with the borrow checker, C10) at every block boundary,
// resolving each Variable to the scope.VariableRef its declaration
// produced, and rewriting `obj.field` into StaticField when obj names a
// type rather than a value.
package semantic

import (
	"fmt"

	"github.com/soullang/soulc/internal/ast"
	"github.com/soullang/soulc/internal/borrow"
	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/scope"
	"github.com/soullang/soulc/internal/soulnames"
	"github.com/soullang/soulc/internal/types"
)

// ResolutionPass is C11.
type ResolutionPass struct{}

func (ResolutionPass) Name() string { return "resolution" }

func (ResolutionPass) Run(module *ast.Module, ctx *Context) error {
	stmts, _ := ctx.resolveStmtsAndTail(module.Stmts, nil)
	module.Stmts = stmts
	return nil
}

// resolveStmtsAndTail resolves a statement list plus an optional trailing
// expression (a Block's Tail) in the scope already current at the call
// site — the caller owns opening/closing that scope.
func (ctx *Context) resolveStmtsAndTail(stmts []ast.Statement, tail ast.Expression) ([]ast.Statement, ast.Expression) {
	out := make([]ast.Statement, 0, len(stmts))
	for _, s := range stmts {
		if r := ctx.resolveStmt(s); r != nil {
			out = append(out, r)
		}
	}
	if tail != nil {
		tail = ctx.resolveExpr(tail)
	}
	return out, tail
}

func (ctx *Context) resolveStmt(stmt ast.Statement) ast.Statement {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		s.Expr = ctx.resolveExpr(s.Expr)
		return s

	case *ast.VariableDecl:
		if s.Value != nil {
			s.Value = ctx.resolveExpr(s.Value)
		}
		declType := types.Base(soulnames.None)
		if s.Type != nil {
			declType = *s.Type
		}
		for _, name := range s.Names {
			checkValueName(ctx, name, s.Span())
			ref, err := ctx.Scope.Insert(name, declType)
			if err != nil {
				ctx.Errs.AddError(errors.New(errors.InvalidName, s.Span(), err.Error()))
				continue
			}
			s.Refs = append(s.Refs, ref)
			if berr := ctx.Borrow.DeclareOwner(currentBorrowScope(ctx), name); berr != nil {
				ctx.Errs.AddError(errors.New(errors.InvalidInContext, s.Span(), berr.Error()))
			}
		}
		return s

	case *ast.Assignment:
		s.Target = ctx.resolveExpr(s.Target)
		s.Value = ctx.resolveExpr(s.Value)
		return s

	case *ast.FunctionDecl:
		ctx.resolveFunctionDecl(s)
		return s

	case *ast.ClassDecl:
		for _, m := range s.Methods {
			ctx.resolveFunctionDecl(m)
		}
		return s

	case *ast.ImplDecl:
		for _, m := range s.Methods {
			ctx.resolveFunctionDecl(m)
		}
		return s

	case *ast.BlockStmt:
		sc := ctx.OpenScope(scope.KindBlock, "")
		body, _ := ctx.resolveStmtsAndTail(s.Stmts, nil)
		dl, err := ctx.CloseScope()
		if err != nil {
			ctx.Errs.AddError(errors.New(errors.InvalidInContext, s.Span(), err.Error()))
		}
		body = append(body, &ast.CloseBlock{BaseStmt: ast.BaseStmt{Span_: s.Span()}, ScopeID: sc.ID, DeleteList: dl})
		s.Stmts = body
		return s

	case *ast.StructDecl, *ast.TraitDecl, *ast.EnumDecl, *ast.UnionDecl, *ast.TypeEnumDecl, *ast.UseBlock, *ast.CloseBlock:
		return s

	default:
		return s
	}
}

// currentBorrowScope returns the ScopeID of the scope currently open in
// both the scope builder and the borrow graph.
func currentBorrowScope(ctx *Context) borrow.ScopeID { return borrow.ScopeID(ctx.Scope.Current().ID) }

func (ctx *Context) resolveFunctionDecl(fn *ast.FunctionDecl) {
	checkValueName(ctx, fn.Name, fn.Span())
	sc := ctx.OpenScope(scope.KindFunction, fn.Name)

	if fn.ThisType != nil {
		if ref, err := ctx.Scope.Insert("this", *fn.ThisType); err == nil {
			_ = ref
			_ = ctx.Borrow.DeclareOwner(currentBorrowScope(ctx), "this")
		}
	}
	for _, p := range fn.Params {
		if p.Name == "" {
			continue
		}
		if _, err := ctx.Scope.Insert(p.Name, p.Type); err != nil {
			ctx.Errs.AddError(errors.New(errors.InvalidName, fn.Span(), err.Error()))
			continue
		}
		if err := ctx.Borrow.DeclareOwner(currentBorrowScope(ctx), p.Name); err != nil {
			ctx.Errs.AddError(errors.New(errors.InvalidInContext, fn.Span(), err.Error()))
		}
	}
	for i := range fn.Params {
		if fn.Params[i].Default != nil {
			fn.Params[i].Default = ctx.resolveExpr(fn.Params[i].Default)
		}
	}

	if fn.Body != nil {
		stmts, tail := ctx.resolveStmtsAndTail(fn.Body.Stmts, fn.Body.Tail)
		dl, err := ctx.CloseScope()
		if err != nil {
			ctx.Errs.AddError(errors.New(errors.InvalidInContext, fn.Span(), err.Error()))
		}
		stmts = append(stmts, &ast.CloseBlock{BaseStmt: ast.BaseStmt{Span_: fn.Body.Span()}, ScopeID: sc.ID, DeleteList: dl})
		fn.Body.Stmts = stmts
		fn.Body.Tail = tail
	} else {
		ctx.Scope.Pop()
	}
}

func (ctx *Context) resolveExpr(expr ast.Expression) ast.Expression {
	if expr == nil {
		return nil
	}
	switch e := expr.(type) {
	case *ast.Variable:
		if ref, ok := ctx.Scope.Lookup(e.Name); ok {
			e.Ref = ref
			return e
		}
		if _, ok := ctx.Scope.LookupType(e.Name); ok {
			// A bare reference to a type name with no field/method access
			// following it; it is left without a Ref and C12 types it as none.
			return e
		}
		ctx.Errs.AddError(errors.New(errors.InvalidName, e.Span(), fmt.Sprintf("undefined name '%s'", e.Name)))
		return e

	case *ast.AccessField:
		if v, ok := e.Object.(*ast.Variable); ok {
			if _, isVar := ctx.Scope.Lookup(v.Name); !isVar {
				if _, isType := ctx.Scope.LookupType(v.Name); isType {
					return &ast.StaticField{BaseExpr: e.BaseExpr, TypeName: v.Name, Field: e.Field}
				}
				if modPath, isAlias := ctx.Scope.ModuleAlias(v.Name); isAlias {
					return &ast.ExternalExpression{BaseExpr: e.BaseExpr, ModulePath: modPath, Name: e.Field}
				}
			}
		}
		e.Object = ctx.resolveExpr(e.Object)
		return e

	case *ast.StaticField:
		return e

	case *ast.Index:
		e.Target = ctx.resolveExpr(e.Target)
		e.Index = ctx.resolveExpr(e.Index)
		return e

	case *ast.FunctionCall:
		if v, ok := e.Callee.(*ast.Variable); ok {
			if _, isType := ctx.Scope.LookupType(v.Name); isType {
				if _, isFn := ctx.Scope.LookupFunction(v.Name); !isFn {
					// TypeName(args): a struct/named-tuple constructor call.
					for i := range e.Args {
						e.Args[i].Value = ctx.resolveExpr(e.Args[i].Value)
					}
					return e
				}
			}
		}
		e.Callee = ctx.resolveExpr(e.Callee)
		for i := range e.Args {
			e.Args[i].Value = ctx.resolveExpr(e.Args[i].Value)
		}
		return e

	case *ast.StaticMethod:
		for i := range e.Args {
			e.Args[i].Value = ctx.resolveExpr(e.Args[i].Value)
		}
		return e

	case *ast.Unary:
		e.Operand = ctx.resolveExpr(e.Operand)
		return e

	case *ast.Binary:
		e.Left = ctx.resolveExpr(e.Left)
		e.Right = ctx.resolveExpr(e.Right)
		return e

	case *ast.Ternary:
		e.Cond = ctx.resolveExpr(e.Cond)
		e.Then = ctx.resolveExpr(e.Then)
		e.Else = ctx.resolveExpr(e.Else)
		return e

	case *ast.If:
		e.Cond = ctx.resolveExpr(e.Cond)
		e.Then = ctx.resolveExpr(e.Then)
		if e.Else != nil {
			e.Else = ctx.resolveExpr(e.Else)
		}
		return e

	case *ast.For:
		sc := ctx.OpenScope(scope.KindBlock, "")
		e.Iter = ctx.resolveExpr(e.Iter)
		if e.Binding != "" && e.Binding != "_" {
			checkValueName(ctx, e.Binding, e.Span())
			if _, err := ctx.Scope.Insert(e.Binding, types.Type{}); err == nil {
				_ = ctx.Borrow.DeclareOwner(currentBorrowScope(ctx), e.Binding)
			}
		}
		if e.Where != nil {
			e.Where = ctx.resolveExpr(e.Where)
		}
		e.Body = ctx.resolveExpr(e.Body)
		if _, err := ctx.CloseScope(); err != nil {
			ctx.Errs.AddError(errors.New(errors.InvalidInContext, e.Span(), err.Error()))
		}
		_ = sc
		return e

	case *ast.While:
		ctx.OpenScope(scope.KindBlock, "")
		e.Cond = ctx.resolveExpr(e.Cond)
		e.Body = ctx.resolveExpr(e.Body)
		if _, err := ctx.CloseScope(); err != nil {
			ctx.Errs.AddError(errors.New(errors.InvalidInContext, e.Span(), err.Error()))
		}
		return e

	case *ast.Match:
		e.Scrutinee = ctx.resolveExpr(e.Scrutinee)
		for i := range e.Arms {
			e.Arms[i].Pattern = ctx.resolveExpr(e.Arms[i].Pattern)
			e.Arms[i].Result = ctx.resolveExpr(e.Arms[i].Result)
		}
		return e

	case *ast.Lambda:
		ctx.OpenScope(scope.KindFunction, "")
		for i, name := range e.ParamNames {
			var pt types.Type
			if i < len(e.ParamTypes) {
				pt = e.ParamTypes[i]
			}
			if _, err := ctx.Scope.Insert(name, pt); err == nil {
				_ = ctx.Borrow.DeclareOwner(currentBorrowScope(ctx), name)
			}
		}
		e.Body = ctx.resolveExpr(e.Body)
		if _, err := ctx.CloseScope(); err != nil {
			ctx.Errs.AddError(errors.New(errors.InvalidInContext, e.Span(), err.Error()))
		}
		return e

	case *ast.ConstRef:
		e.Operand = ctx.resolveExpr(e.Operand)
		return e

	case *ast.MutRef:
		e.Operand = ctx.resolveExpr(e.Operand)
		return e

	case *ast.Deref:
		e.Operand = ctx.resolveExpr(e.Operand)
		return e

	case *ast.Block:
		sc := ctx.OpenScope(scope.KindBlock, "")
		stmts, tail := ctx.resolveStmtsAndTail(e.Stmts, e.Tail)
		dl, err := ctx.CloseScope()
		if err != nil {
			ctx.Errs.AddError(errors.New(errors.InvalidInContext, e.Span(), err.Error()))
		}
		stmts = append(stmts, &ast.CloseBlock{BaseStmt: ast.BaseStmt{Span_: e.Span()}, ScopeID: sc.ID, DeleteList: dl})
		e.Stmts = stmts
		e.Tail = tail
		return e

	case *ast.ReturnLike:
		if e.Value != nil {
			e.Value = ctx.resolveExpr(e.Value)
		}
		return e

	case *ast.ExpressionGroup:
		e.Inner = ctx.resolveExpr(e.Inner)
		return e

	case *ast.ExternalExpression:
		if _, ok := ctx.Scope.ExternalHeader(e.ModulePath); !ok {
			ctx.Errs.AddError(errors.New(errors.InvalidName, e.Span(), fmt.Sprintf("module '%s' has no registered header", e.ModulePath)))
		}
		return e

	case *ast.UnwrapVariable:
		e.Operand = ctx.resolveExpr(e.Operand)
		return e

	default:
		// Literal, Default, Empty carry no sub-expressions to resolve.
		return e
	}
}
