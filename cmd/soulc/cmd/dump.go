package cmd

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/soullang/soulc/internal/ast"
	"github.com/soullang/soulc/internal/parser"
)

// dumpModule renders module as an indented tree for `--show ast`'s
// output/abstractSyntaxTree.soul (spec.md §6), followed by the literal
// pool's interned entries. Generalized from the teacher's dumpASTNode: the
// teacher's exhaustive per-node-type switch covers a couple dozen DWScript
// node kinds, but Soul's Expression/Statement sum types are large enough
// (spec.md §3) that a reflective walk over exported fields is the better
// fit — same "one indented line per node, recurse into children" shape.
func dumpModule(module *ast.Module, pool *parser.LiteralPool) string {
	var sb strings.Builder
	sb.WriteString("Abstract Syntax Tree:\n")
	sb.WriteString("=====================\n")
	sb.WriteString(fmt.Sprintf("Module %q\n", module.Path))
	for _, stmt := range module.Stmts {
		dumpNode(&sb, reflect.ValueOf(stmt), 1)
	}
	if pool.Len() > 0 {
		sb.WriteString("\nLiteral pool:\n")
		for _, ident := range pool.Idents() {
			v, _ := pool.Lookup(ident)
			sb.WriteString(fmt.Sprintf("  %s = %s\n", ident, describeLiteral(v)))
		}
	}
	return sb.String()
}

func describeLiteral(v ast.LiteralValue) string {
	return fmt.Sprintf("%T(%s)", v, v.Type())
}

// dumpNode writes one line for node (its dynamic type name plus scalar
// fields) then recurses into any field holding an ast.Expression or
// ast.Statement, or a slice of them. Any other field, including a struct
// such as ast.MatchArm or ast.Arg that holds expressions, is printed as a
// scalar with %v.
func dumpNode(sb *strings.Builder, v reflect.Value, indent int) {
	if !v.IsValid() {
		return
	}
	for v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}

	pad := strings.Repeat("  ", indent)
	sb.WriteString(pad)
	sb.WriteString(v.Type().Name())

	var scalars []string
	var children []reflect.Value
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		if !field.IsExported() || field.Anonymous {
			continue
		}
		fv := v.Field(i)
		if isNodeLike(fv.Type()) {
			children = append(children, fv)
			continue
		}
		if fv.Kind() == reflect.Slice && isNodeLike(fv.Type().Elem()) {
			for j := 0; j < fv.Len(); j++ {
				children = append(children, fv.Index(j))
			}
			continue
		}
		scalars = append(scalars, fmt.Sprintf("%s=%v", field.Name, fv.Interface()))
	}
	if len(scalars) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(scalars, ", "))
		sb.WriteString(")")
	}
	sb.WriteByte('\n')

	for _, c := range children {
		dumpNode(sb, c, indent+1)
	}
}

var (
	exprType = reflect.TypeOf((*ast.Expression)(nil)).Elem()
	stmtType = reflect.TypeOf((*ast.Statement)(nil)).Elem()
)

func isNodeLike(t reflect.Type) bool {
	return t.Implements(exprType) || t.Implements(stmtType)
}
