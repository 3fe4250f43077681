package semantic

import (
	"unicode"

	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/token"
)

// checkValueName warns (spec.md §4.11: "warns, not errors") when a value
// identifier doesn't start with a lowercase letter, the camelCase
// convention the spec prescribes for values.
func checkValueName(ctx *Context, name string, span token.Span) {
	if name == "" || name == "_" {
		return
	}
	r := []rune(name)[0]
	if unicode.IsUpper(r) {
		ctx.Errs.AddWarning(errors.New(errors.InvalidName, span, "'"+name+"' should start with a lowercase letter (camelCase)"))
	}
}

// checkTypeName warns when a type identifier doesn't start with an
// uppercase letter, the PascalCase convention spec.md §4.11 prescribes
// for types.
func checkTypeName(ctx *Context, name string, span token.Span) {
	if name == "" {
		return
	}
	r := []rune(name)[0]
	if unicode.IsLower(r) {
		ctx.Errs.AddWarning(errors.New(errors.InvalidName, span, "'"+name+"' should start with an uppercase letter (PascalCase)"))
	}
}
