// inference.go implements C12, spec.md §4.12's type-inference pass: it
// walks declarations and assignments left with no declared type and fills
// them in from the right-hand expression's evaluated type (after
// untyped->typed decay, spec.md §8.5), then propagates field/method/index
// result types back through the expressions that use them. It runs after
// C11 (resolution.go) so every Variable node already carries its Ref.
package semantic

import (
	"fmt"

	"github.com/soullang/soulc/internal/ast"
	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/scope"
	"github.com/soullang/soulc/internal/soulnames"
	"github.com/soullang/soulc/internal/types"
)

// InferencePass is C12.
type InferencePass struct{}

func (InferencePass) Name() string { return "inference" }

func (p InferencePass) Run(module *ast.Module, ctx *Context) error {
	fields := collectFields(module.Stmts)
	ip := &inferer{ctx: ctx, fields: fields}
	for _, s := range module.Stmts {
		ip.stmt(s)
	}
	return nil
}

// inferer carries the per-run state C12 needs beyond the shared Context: the
// struct/class/union field registry spec.md §4.12's "field access yields the
// field's declared type" rule consults, since C5/C6 only register type
// *names*, not their member shape.
type inferer struct {
	ctx    *Context
	fields map[string][]ast.Field
}

// collectFields builds a type-name -> field-list map from every top-level
// struct/class/union declaration, the minimal member registry C12 needs for
// field-access typing. Only top-level declarations are walked: Soul has no
// nested type declarations (spec.md §4.8).
func collectFields(stmts []ast.Statement) map[string][]ast.Field {
	out := make(map[string][]ast.Field)
	for _, s := range stmts {
		switch d := s.(type) {
		case *ast.StructDecl:
			out[d.Name] = d.Fields
		case *ast.ClassDecl:
			out[d.Name] = d.Fields
		case *ast.UnionDecl:
			out[d.Name] = d.Fields
		}
	}
	return out
}

// isUnset reports whether t is the "no type yet" sentinel (spec.md §4.12:
// "a variable whose type is still none").
func isUnset(t types.Type) bool {
	return t.Kind == types.KindBase && t.Base == soulnames.None
}

func (ip *inferer) stmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		ip.expr(s.Expr)

	case *ast.VariableDecl:
		if s.Value == nil {
			return
		}
		valueType := ip.expr(s.Value)
		if s.Type == nil || isUnset(*s.Type) {
			decayed := valueType.Decay()
			s.Type = &decayed
			for _, ref := range s.Refs {
				ref.Type = decayed
			}
			return
		}
		if !types.ConvertibleTo(valueType, *s.Type) {
			ip.ctx.Errs.AddError(errors.New(errors.WrongType, s.Span(),
				fmt.Sprintf("cannot assign value of type '%s' to declared type '%s'", valueType, *s.Type)))
		}

	case *ast.Assignment:
		targetType := ip.expr(s.Target)
		valueType := ip.expr(s.Value)
		if v, ok := s.Target.(*ast.Variable); ok && v.Ref != nil && isUnset(v.Ref.Type) {
			v.Ref.Type = valueType.Decay()
			return
		}
		if !isUnset(targetType) && !types.ConvertibleTo(valueType, targetType) {
			ip.ctx.Errs.AddError(errors.New(errors.WrongType, s.Span(),
				fmt.Sprintf("cannot assign value of type '%s' to target of type '%s'", valueType, targetType)))
		}

	case *ast.FunctionDecl:
		for i := range s.Params {
			if s.Params[i].Default != nil {
				ip.expr(s.Params[i].Default)
			}
		}
		if s.Body != nil {
			ip.block(s.Body)
		}

	case *ast.ClassDecl:
		for _, m := range s.Methods {
			ip.stmt(m)
		}

	case *ast.ImplDecl:
		for _, m := range s.Methods {
			ip.stmt(m)
		}

	case *ast.BlockStmt:
		for _, inner := range s.Stmts {
			ip.stmt(inner)
		}

	default:
		// StructDecl, TraitDecl, EnumDecl, UnionDecl, TypeEnumDecl, UseBlock,
		// CloseBlock carry no expressions C12 needs to type.
	}
}

func (ip *inferer) block(b *ast.Block) types.Type {
	for _, s := range b.Stmts {
		ip.stmt(s)
	}
	if b.Tail != nil {
		return ip.expr(b.Tail)
	}
	return types.Base(soulnames.None)
}

// expr evaluates spec.md §4.12's recursive type evaluator over expr,
// returning its inferred type without mutating expr itself (beyond the
// Variable/Assignment writebacks stmt already performs).
func (ip *inferer) expr(expr ast.Expression) types.Type {
	if expr == nil {
		return types.Base(soulnames.None)
	}
	switch e := expr.(type) {
	case *ast.Empty:
		return types.Base(soulnames.None)

	case *ast.Default:
		return e.Type

	case *ast.Literal:
		return e.Value.Type()

	case *ast.Variable:
		if e.Ref != nil {
			return e.Ref.Type
		}
		return types.Base(soulnames.None)

	case *ast.AccessField:
		objType := ip.expr(e.Object)
		return ip.fieldType(objType.Nominal, e.Field)

	case *ast.StaticField:
		return ip.fieldType(e.TypeName, e.Field)

	case *ast.Index:
		collType := ip.expr(e.Target)
		ip.expr(e.Index)
		if elem, ok := collType.Unwrapped(); ok {
			return elem
		}
		return types.Base(soulnames.None)

	case *ast.FunctionCall:
		for i := range e.Args {
			ip.expr(e.Args[i].Value)
		}
		switch callee := e.Callee.(type) {
		case *ast.Variable:
			if sigs, found := ip.ctx.Scope.LookupFunction(callee.Name); found {
				return overloadReturnType(sigs, len(e.Args))
			}
			// Not a known function: a struct/named-tuple constructor call
			// produces a value of the type being named.
			if _, isType := ip.ctx.Scope.LookupType(callee.Name); isType {
				return types.Nominal(callee.Name)
			}
		case *ast.ExternalExpression:
			if header, found := ip.ctx.Scope.ExternalHeader(callee.ModulePath); found {
				if sigs, ok := header.LookupFunctionLocal(callee.Name); ok {
					return overloadReturnType(sigs, len(e.Args))
				}
			}
		default:
			if e.Callee != nil {
				ip.expr(e.Callee)
			}
		}
		return types.Base(soulnames.None)

	case *ast.StaticMethod:
		for i := range e.Args {
			ip.expr(e.Args[i].Value)
		}
		if sigs, found := ip.ctx.Scope.LookupFunction(e.Method); found {
			return overloadReturnType(sigs, len(e.Args))
		}
		return types.Base(soulnames.None)

	case *ast.Unary:
		operand := ip.expr(e.Operand)
		if e.Op == "!" {
			return types.Base(soulnames.Boolean)
		}
		return operand

	case *ast.Binary:
		left := ip.expr(e.Left)
		right := ip.expr(e.Right)
		if isComparisonOp(e.Op) {
			return types.Base(soulnames.Boolean)
		}
		if !isUnset(left) && !isUnset(right) && !types.ConvertibleTo(right, left) && !types.ConvertibleTo(left, right) {
			ip.ctx.Errs.AddError(errors.New(errors.WrongType, e.Span(),
				fmt.Sprintf("mismatched operand types '%s' and '%s' for '%s'", left, right, e.Op)))
		}
		return left

	case *ast.Ternary:
		ip.expr(e.Cond)
		thenType := ip.expr(e.Then)
		ip.expr(e.Else)
		return thenType

	case *ast.If:
		ip.expr(e.Cond)
		thenType := ip.expr(e.Then)
		if e.Else != nil {
			ip.expr(e.Else)
		}
		return thenType

	case *ast.For:
		ip.expr(e.Iter)
		if e.Where != nil {
			ip.expr(e.Where)
		}
		ip.expr(e.Body)
		return types.Base(soulnames.None)

	case *ast.While:
		ip.expr(e.Cond)
		ip.expr(e.Body)
		return types.Base(soulnames.None)

	case *ast.Match:
		ip.expr(e.Scrutinee)
		var result types.Type
		for i, arm := range e.Arms {
			ip.expr(arm.Pattern)
			t := ip.expr(arm.Result)
			if i == 0 {
				result = t
			}
		}
		return result

	case *ast.Lambda:
		bodyType := ip.expr(e.Body)
		if e.ReturnType != nil {
			return *e.ReturnType
		}
		return bodyType

	case *ast.ConstRef:
		inner := ip.expr(e.Operand)
		return inner.WithWrapper(types.Wrapper{Kind: soulnames.WrapperConstRef})

	case *ast.MutRef:
		inner := ip.expr(e.Operand)
		return inner.WithWrapper(types.Wrapper{Kind: soulnames.WrapperMutRef})

	case *ast.Deref:
		inner := ip.expr(e.Operand)
		if unwrapped, ok := inner.Unwrapped(); ok {
			return unwrapped
		}
		return inner

	case *ast.Block:
		return ip.block(e)

	case *ast.ReturnLike:
		if e.Value != nil {
			return ip.expr(e.Value)
		}
		return types.Base(soulnames.None)

	case *ast.ExpressionGroup:
		return ip.expr(e.Inner)

	case *ast.ExternalExpression:
		header, found := ip.ctx.Scope.ExternalHeader(e.ModulePath)
		if !found {
			return types.Base(soulnames.None)
		}
		if ref, ok := header.LookupVariableLocal(e.Name); ok {
			return ref.Type
		}
		if sigs, ok := header.LookupFunctionLocal(e.Name); ok {
			return overloadReturnType(sigs, 0)
		}
		return types.Base(soulnames.None)

	case *ast.UnwrapVariable:
		return ip.expr(e.Operand)

	default:
		return types.Base(soulnames.None)
	}
}

func isComparisonOp(op string) bool {
	switch op {
	case "==", "!=", "<", "<=", ">", ">=", "&&", "||":
		return true
	}
	return false
}

// fieldType looks up field's declared type on the struct/class/union named
// typeName. Neither an unknown type nor an unknown field is fatal here: C11
// reports an undefined variable name as InvalidName but does not check
// field names, and C12 reports nothing either; it falls back to the "no
// type yet" sentinel.
func (ip *inferer) fieldType(typeName, field string) types.Type {
	flds, ok := ip.fields[typeName]
	if !ok {
		return types.Base(soulnames.None)
	}
	for _, f := range flds {
		if f.Name == field {
			return f.Type
		}
	}
	return types.Base(soulnames.None)
}

// overloadReturnType picks the first overload whose parameter count is
// argc, falling back to the first declared overload. Overloads are told
// apart by argument count only; no pass resolves a call by argument types.
func overloadReturnType(sigs []*scope.FunctionSignature, argc int) types.Type {
	for _, s := range sigs {
		if len(s.ParamTypes) == argc {
			return s.ReturnType
		}
	}
	if len(sigs) > 0 {
		return sigs[0].ReturnType
	}
	return types.Base(soulnames.None)
}
