package semantic

import (
	"fmt"
	"strings"

	"github.com/soullang/soulc/internal/ast"
	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/scope"
	"github.com/soullang/soulc/internal/token"
	"github.com/soullang/soulc/internal/types"
)

// DeclarationPass is C6, spec.md §4.6's type-collector pre-pass: it walks
// every top-level declaration once, before any name is resolved, so a
// function can call another declared later in the file and a struct can
// reference a type declared below it. It registers nothing but names and
// signatures — no field/method bodies are visited here, matching the
// teacher's declaration_pass.go walking top-level decls only before the
// type-resolution and validation passes run over bodies.
type DeclarationPass struct{}

func (DeclarationPass) Name() string { return "declaration" }

func (DeclarationPass) Run(module *ast.Module, ctx *Context) error {
	for _, stmt := range module.Stmts {
		declareTopLevel(stmt, ctx)
	}
	return nil
}

func declareTopLevel(stmt ast.Statement, ctx *Context) {
	switch s := stmt.(type) {
	case *ast.StructDecl:
		insertType(ctx, s.Span(), s.Name)
	case *ast.ClassDecl:
		insertType(ctx, s.Span(), s.Name)
	case *ast.TraitDecl:
		insertType(ctx, s.Span(), s.Name)
	case *ast.EnumDecl:
		insertType(ctx, s.Span(), s.Name)
	case *ast.UnionDecl:
		insertType(ctx, s.Span(), s.Name)
	case *ast.TypeEnumDecl:
		insertType(ctx, s.Span(), s.Name)
	case *ast.FunctionDecl:
		declareFunction(ctx, s)
	case *ast.ImplDecl:
		for _, m := range s.Methods {
			declareFunction(ctx, m)
		}
	case *ast.UseBlock:
		declareUse(ctx, s)
	}
}

// declareUse wires a `use` import against its registered external header
// (spec.md §6, §8 scenario S8): a whole-module import binds the path's last
// segment as a module alias so `alias.member` resolves through C11's
// AccessField rewrite; a selective `use path.[A, B]` import instead copies
// those names directly into the current scope.
func declareUse(ctx *Context, u *ast.UseBlock) {
	if len(u.Names) == 0 {
		ctx.Scope.RegisterModuleAlias(lastPathSegment(u.ModulePath), u.ModulePath)
		return
	}
	header, ok := ctx.Scope.ExternalHeader(u.ModulePath)
	if !ok {
		ctx.Errs.AddError(errors.New(errors.InvalidPath, u.Span(),
			fmt.Sprintf("module '%s' has no registered header", u.ModulePath)))
		return
	}
	for _, name := range u.Names {
		if sigs, ok := header.LookupFunctionLocal(name); ok {
			for _, sig := range sigs {
				if err := ctx.Scope.AddFunction(sig); err != nil {
					ctx.Errs.AddError(errors.New(errors.InvalidName, u.Span(), err.Error()))
				}
			}
			continue
		}
		if typ, ok := header.LookupTypeLocal(name); ok {
			if err := ctx.Scope.InsertType(name, typ); err != nil {
				ctx.Errs.AddError(errors.New(errors.InvalidName, u.Span(), err.Error()))
			}
			continue
		}
		if ref, ok := header.LookupVariableLocal(name); ok {
			if _, err := ctx.Scope.Insert(name, ref.Type); err != nil {
				ctx.Errs.AddError(errors.New(errors.InvalidName, u.Span(), err.Error()))
			}
			continue
		}
		ctx.Errs.AddError(errors.New(errors.InvalidPath, u.Span(),
			fmt.Sprintf("module '%s' has no exported symbol '%s'", u.ModulePath, name)))
	}
}

func lastPathSegment(path string) string {
	if idx := strings.LastIndex(path, "."); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func insertType(ctx *Context, span token.Span, name string) {
	checkTypeName(ctx, name, span)
	if err := ctx.Scope.InsertType(name, types.Nominal(name)); err != nil {
		ctx.Errs.AddError(errors.New(errors.InvalidName, span, err.Error()))
	}
}

func declareFunction(ctx *Context, fn *ast.FunctionDecl) {
	sig := functionSignature(fn)
	if err := ctx.Scope.AddFunction(sig); err != nil {
		ctx.Errs.AddError(errors.New(errors.InvalidName, fn.Span(), err.Error()))
	}
}

func functionSignature(fn *ast.FunctionDecl) *scope.FunctionSignature {
	sig := &scope.FunctionSignature{
		Name:       fn.Name,
		ThisType:   fn.ThisType,
		Generics:   fn.Generics,
		ReturnType: fn.ReturnType,
		Modifier:   fn.Modifier,
	}
	for _, p := range fn.Params {
		sig.ParamNames = append(sig.ParamNames, p.Name)
		sig.ParamTypes = append(sig.ParamTypes, p.Type)
		sig.DefaultExprs = append(sig.DefaultExprs, p.Default)
	}
	return sig
}
