package parser

import (
	"strconv"
	"strings"

	"github.com/soullang/soulc/internal/ast"
	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/soulnames"
	"github.com/soullang/soulc/internal/token"
	"github.com/soullang/soulc/internal/types"
)

// parseNumberLiteral handles INT and FLOAT tokens per spec.md §4.9: a
// decimal integer parses to Int if it fits, else Float; 0x/0b literals
// always parse to Uint, sized by digit count; a leading '-' (already
// consumed by the unary-minus prefix handler, see negateLiteral) flips an
// integer reading to signed Int.
func (p *Parser) parseNumberLiteral() ast.Expression {
	tok := p.cur()
	lit := tok.Literal
	span := tok.Span

	if tok.Type == token.FLOAT {
		v, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			p.errorf(errors.WrongType, "invalid float literal %q", lit)
			return nil
		}
		p.advance()
		return &ast.Literal{BaseExpr: ast.BaseExpr{Span_: span}, Value: ast.FloatLiteral{Value: v, Typ: types.Base(soulnames.UntypedFloat)}}
	}

	if strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X") {
		digits := lit[2:]
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			p.errorf(errors.WrongType, "hex literal %q out of range", lit)
			return nil
		}
		p.advance()
		return &ast.Literal{BaseExpr: ast.BaseExpr{Span_: span}, Value: ast.UintLiteral{Value: v, Typ: types.Base(sizeForDigits(len(digits), 4))}}
	}
	if strings.HasPrefix(lit, "0b") || strings.HasPrefix(lit, "0B") {
		digits := lit[2:]
		v, err := strconv.ParseUint(digits, 2, 64)
		if err != nil {
			p.errorf(errors.WrongType, "binary literal %q out of range", lit)
			return nil
		}
		p.advance()
		return &ast.Literal{BaseExpr: ast.BaseExpr{Span_: span}, Value: ast.UintLiteral{Value: v, Typ: types.Base(sizeForDigits(len(digits), 1))}}
	}

	// Plain decimal with no leading '-': Int if it fits, else Float
	// (spec.md §4.9); a leading unary '-' later keeps this as Int via
	// negateLiteral.
	if v, err := strconv.ParseInt(lit, 10, 64); err == nil {
		p.advance()
		return &ast.Literal{BaseExpr: ast.BaseExpr{Span_: span}, Value: ast.IntLiteral{Value: v, Typ: types.Base(soulnames.UntypedInt)}}
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		p.errorf(errors.WrongType, "integer literal %q overflows and is not a valid float either", lit)
		return nil
	}
	p.advance()
	return &ast.Literal{BaseExpr: ast.BaseExpr{Span_: span}, Value: ast.FloatLiteral{Value: v, Typ: types.Base(soulnames.UntypedFloat)}}
}

// sizeForDigits picks the minimum-width unsigned kind able to hold a
// literal of the given digit count, per spec.md §4.9: "1 byte for <=2 hex
// / <=8 bin digits, then 2/4/8 byte kinds" — bitsPerDigit is 4 for hex, 1
// for binary.
func sizeForDigits(digitCount, bitsPerDigit int) soulnames.InternalType {
	bits := digitCount * bitsPerDigit
	switch {
	case bits <= 8:
		return soulnames.Uint8
	case bits <= 16:
		return soulnames.Uint16
	case bits <= 32:
		return soulnames.Uint32
	default:
		return soulnames.Uint64
	}
}

// negateLiteral applies a leading unary '-' to a just-parsed numeric
// literal, flipping an unsigned reading to signed Int as spec.md §4.9
// requires ("a leading '-' ... flips to signed Int and prevents unsigned
// inference"); a float literal is negated and stays a float.
func negateLiteral(expr ast.Expression, span token.Span) ast.Expression {
	lit, ok := expr.(*ast.Literal)
	if !ok {
		return &ast.Unary{BaseExpr: ast.BaseExpr{Span_: span}, Op: "-", Operand: expr}
	}
	switch v := lit.Value.(type) {
	case ast.IntLiteral:
		lit.Value = ast.IntLiteral{Value: -v.Value, Typ: types.Base(soulnames.UntypedInt)}
		return lit
	case ast.UintLiteral:
		lit.Value = ast.IntLiteral{Value: -int64(v.Value), Typ: types.Base(soulnames.UntypedInt)}
		return lit
	case ast.FloatLiteral:
		lit.Value = ast.FloatLiteral{Value: -v.Value, Typ: v.Typ}
		return lit
	default:
		return &ast.Unary{BaseExpr: ast.BaseExpr{Span_: span}, Op: "-", Operand: expr}
	}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.Literal{BaseExpr: ast.BaseExpr{Span_: tok.Span}, Value: ast.StrLiteral{CStringIdent: tok.Literal}}
}

func (p *Parser) parseCharLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	r := rune(0)
	for _, c := range tok.Literal {
		r = c
		break
	}
	return &ast.Literal{BaseExpr: ast.BaseExpr{Span_: tok.Span}, Value: ast.CharLiteral{Value: r}}
}

func (p *Parser) parseBoolLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.Literal{BaseExpr: ast.BaseExpr{Span_: tok.Span}, Value: ast.BoolLiteral{Value: tok.Type == token.TRUE}}
}

// parseArrayLiteral handles `[e1, e2, ...]` and the filler form
// `[for N => expr]` (spec.md §4.9).
func (p *Parser) parseArrayLiteral() ast.Expression {
	start := p.cur().Span
	p.advance() // consume '['

	if p.cursor.Is(token.FOR) {
		p.advance()
		countExpr := p.parseExpression(LOWEST)
		countLit, ok := literalIntValue(countExpr)
		if !ok {
			p.errorf(errors.InvalidStringFormat, "array filler count must be an integer literal")
		}
		if !p.expect(token.FAT_ARROW) {
			return nil
		}
		filler := p.parseLiteralValue()
		end := p.cur().Span
		p.expect(token.RBRACK)
		elemType := types.Type{}
		if filler != nil {
			elemType = filler.Type()
		}
		return p.internLiteral(start.Combine(end), ast.ArrayLiteral{Filler: filler, Count: countLit, ElemType: elemType})
	}

	var elems []ast.LiteralValue
	for !p.cursor.Is(token.RBRACK) {
		v := p.parseLiteralValue()
		if v != nil {
			elems = append(elems, v)
		}
		if p.cursor.Is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.cur().Span
	p.expect(token.RBRACK)
	elemType := types.Type{}
	if len(elems) > 0 {
		elemType = elems[0].Type()
	}
	return p.internLiteral(start.Combine(end), ast.ArrayLiteral{Elements: elems, ElemType: elemType})
}

// parseTupleLiteral handles `(e1, e2, ...)` and `(name: e1, name2: e2)`
// (spec.md §4.9); mixing named and positional elements is forbidden.
func (p *Parser) parseTupleLiteral() ast.Expression {
	start := p.cur().Span
	p.advance() // consume '('

	var names []string
	var elems []ast.LiteralValue
	named := false
	first := true

	for !p.cursor.Is(token.RPAREN) {
		name := ""
		if p.cursor.Is(token.IDENT) && p.peek().Type == token.COLON {
			if !first && !named {
				p.errorf(errors.InvalidStringFormat, "cannot mix named and positional tuple elements")
			}
			name = p.cur().Literal
			p.advance()
			p.advance()
			named = true
		} else if first {
			named = false
		} else if named {
			p.errorf(errors.InvalidStringFormat, "cannot mix named and positional tuple elements")
		}
		first = false

		v := p.parseLiteralValue()
		if v != nil {
			elems = append(elems, v)
			names = append(names, name)
		}
		if p.cursor.Is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	end := p.cur().Span
	p.expect(token.RPAREN)

	if len(elems) == 1 && names[0] == "" {
		// A single parenthesised element collapses to the inner value,
		// disambiguating a grouped sub-expression from a 1-tuple
		// (spec.md §4.7.2 step 3).
		return &ast.Literal{BaseExpr: ast.BaseExpr{Span_: start.Combine(end)}, Value: elems[0]}
	}

	if named {
		return p.internLiteral(start.Combine(end), ast.NamedTupleLiteral{Names: names, Elements: elems})
	}
	return p.internLiteral(start.Combine(end), ast.TupleLiteral{Elements: elems})
}

// internLiteral records a non-trivial literal value (array/tuple/named-
// tuple) in the parser's literal pool and returns a ProgramMemory
// reference to it, the interning spec.md §4.9 requires for anything
// beyond a bare scalar.
func (p *Parser) internLiteral(span token.Span, v ast.LiteralValue) ast.Expression {
	ident := p.pool.intern(v)
	mem := ast.ProgramMemory{MemIdent: ident, Typ: v.Type()}
	return &ast.Literal{BaseExpr: ast.BaseExpr{Span_: span}, Value: mem}
}

// parseLiteralValue parses one literal at the LiteralValue level (used
// inside array/tuple element lists), unwrapping the Expression wrapper
// parseExpression normally returns.
func (p *Parser) parseLiteralValue() ast.LiteralValue {
	expr := p.parseExpression(LOWEST)
	lit, ok := expr.(*ast.Literal)
	if !ok {
		p.errorf(errors.InvalidInContext, "expected a literal value here")
		return nil
	}
	return lit.Value
}

func literalIntValue(expr ast.Expression) (int, bool) {
	lit, ok := expr.(*ast.Literal)
	if !ok {
		return 0, false
	}
	switch v := lit.Value.(type) {
	case ast.IntLiteral:
		return int(v.Value), true
	case ast.UintLiteral:
		return int(v.Value), true
	default:
		return 0, false
	}
}
