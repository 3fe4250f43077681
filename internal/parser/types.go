package parser

import (
	"fmt"

	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/lexer"
	"github.com/soullang/soulc/internal/soulnames"
	"github.com/soullang/soulc/internal/token"
	"github.com/soullang/soulc/internal/types"
)

// ParseTypeString parses a single Type from its source spelling (the
// string types.Type.String produces) — the round-trip pkg/header needs to
// deserialize a declared type out of a loaded external-header file. A
// lifetime annotation in src is not accepted.
func ParseTypeString(src string) (types.Type, error) {
	errs := &errors.List{}
	p := New(lexer.New(src, errs), errs)
	t, ok := p.parseType()
	if !ok || errs.HasErrors() {
		return types.Type{}, fmt.Errorf("invalid type string %q", src)
	}
	return t, nil
}

var modifierKeywords = map[token.TokenType]types.Modifier{
	token.LITERAL:  types.ModLiteral,
	token.CONST:    types.ModConst,
	token.VOLATILE: types.ModVolatile,
	token.STATIC:   types.ModStatic,
}

var baseTypeKeywords = map[string]soulnames.InternalType{}

func init() {
	for _, name := range []string{
		"char", "bool", "str", "none",
		"int", "i8", "i16", "i32", "i64",
		"uint", "u8", "u16", "u32", "u64",
		"f32", "f64",
	} {
		if kind, ok := soulnames.LookupInternalType(name); ok {
			baseTypeKeywords[name] = kind
		}
	}
}

// parseType consumes a maximal type expression: leading modifiers, a base
// or nominal name (with optional generic arguments), then a suffix of
// wrapper tokens — spec.md §4.4's `Type::from_stream`.
func (p *Parser) parseType() (types.Type, bool) {
	var mod types.Modifier
	for {
		m, ok := modifierKeywords[p.cur().Type]
		if !ok {
			break
		}
		mod |= m
		if mod.Has(types.ModConst) && mod.Has(types.ModLiteral) {
			p.errorf(errors.InvalidType, "a type cannot be both const and literal")
		}
		p.advance()
	}

	var t types.Type
	if p.cursor.Is(token.IDENT) {
		name := p.cur().Literal
		if kind, ok := baseTypeKeywords[name]; ok {
			t = types.Base(kind)
		} else {
			t = types.Nominal(name)
		}
		p.advance()
	} else {
		p.errorf(errors.InvalidType, "expected a type name, got %s", p.cur().Type)
		return types.Type{}, false
	}

	// Generic arguments: Name<T, U>.
	if p.cursor.Is(token.LESS) {
		mark := p.cursor.Mark()
		p.advance()
		ok := true
		for !p.cursor.Is(token.GREATER) {
			if _, subOK := p.parseType(); !subOK {
				ok = false
				break
			}
			if p.cursor.Is(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if ok && p.cursor.Is(token.GREATER) {
			p.advance()
		} else {
			p.cursor = p.cursor.ResetTo(mark)
		}
	}

	t = t.WithModifier(mod)

	for {
		if t.IsRef() && (p.cursor.IsAny(token.AT, token.AMP, token.ASTERISK) ||
			(p.cursor.Is(token.LBRACK) && p.peek().Type == token.RBRACK)) {
			p.errorf(errors.InvalidType, "a reference must be the outermost wrapper")
		}
		switch p.cur().Type {
		case token.AT:
			t = t.WithWrapper(types.Wrapper{Kind: soulnames.WrapperConstRef})
			p.advance()
		case token.AMP:
			t = t.WithWrapper(types.Wrapper{Kind: soulnames.WrapperMutRef})
			p.advance()
		case token.ASTERISK:
			t = t.WithWrapper(types.Wrapper{Kind: soulnames.WrapperPointer})
			p.advance()
		case token.LBRACK:
			if p.peek().Type == token.RBRACK {
				t = t.WithWrapper(types.Wrapper{Kind: soulnames.WrapperArray})
				p.advance()
				p.advance()
				continue
			}
			return t, true
		default:
			return t, true
		}
	}
}
