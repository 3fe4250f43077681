package parser

import (
	"github.com/soullang/soulc/internal/ast"
	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/token"
	"github.com/soullang/soulc/internal/types"
)

// soulType is a local alias so lambda-parsing code reads in terms of "the
// type a parameter/return position carries" without spelling out the
// types package on every line; it is exactly types.Type; nothing is
// converted in typesToASTTypes/optionalASTType below, they just pass
// p.parseType()'s results through to the ast.Lambda fields, which hold
// types.Type/[]types.Type directly.
type soulType = types.Type

func typesToASTTypes(ts []soulType) []types.Type { return ts }

func optionalASTType(t *soulType) *types.Type { return t }

// registerExpressionFns wires up the prefix/infix tables, the Pratt-parser
// equivalent of spec.md §4.7's shunting-yard symbol table: one entry per
// token that can start (prefix) or continue (infix) an expression.
func (p *Parser) registerExpressionFns() {
	p.registerPrefix(token.INT, p.parseNumberLiteral)
	p.registerPrefix(token.FLOAT, p.parseNumberLiteral)
	p.registerPrefix(token.IDENT, p.parseIdentOrStringLiteral)
	p.registerPrefix(token.CHAR, p.parseCharLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolLiteral)
	p.registerPrefix(token.FALSE, p.parseBoolLiteral)
	p.registerPrefix(token.NILLIT, p.parseNilLiteral)
	p.registerPrefix(token.LBRACK, p.parseArrayLiteral)
	p.registerPrefix(token.LPAREN, p.parseGroupOrTuple)
	p.registerPrefix(token.MINUS, p.parsePrefixMinus)
	p.registerPrefix(token.NOT, p.parsePrefixUnary)
	p.registerPrefix(token.AT, p.parseConstRef)
	p.registerPrefix(token.AMP, p.parseMutRef)
	p.registerPrefix(token.ASTERISK, p.parseDeref)
	p.registerPrefix(token.INC, p.parsePrefixIncDec)
	p.registerPrefix(token.DEC, p.parsePrefixIncDec)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.FOR, p.parseForExpression)
	p.registerPrefix(token.WHILE, p.parseWhileExpression)
	p.registerPrefix(token.MATCH, p.parseMatchExpression)
	p.registerPrefix(token.LBRACE, p.parseBlockExpression)
	p.registerPrefix(token.RETURN, p.parseReturnLike(ast.ReturnValue))
	p.registerPrefix(token.BREAK, p.parseReturnLike(ast.BreakValue))
	p.registerPrefix(token.FALL, p.parseReturnLike(ast.FallValue))
	p.registerPrefix(token.CONST, p.parseLambda)
	p.registerPrefix(token.MUT, p.parseLambda)
	p.registerPrefix(token.COPY, p.parseLambda)
	p.registerPrefix(token.THIS, p.parseThis)

	p.registerInfix(token.PLUS, p.parseBinary)
	p.registerInfix(token.MINUS, p.parseBinary)
	p.registerInfix(token.ASTERISK, p.parseBinary)
	p.registerInfix(token.SLASH, p.parseBinary)
	p.registerInfix(token.PERCENT, p.parseBinary)
	p.registerInfix(token.POWER, p.parseBinary)
	p.registerInfix(token.ROOT, p.parseBinary)
	p.registerInfix(token.LOG, p.parseBinary)
	p.registerInfix(token.EQ, p.parseBinary)
	p.registerInfix(token.NOT_EQ, p.parseBinary)
	p.registerInfix(token.LESS, p.parseBinary)
	p.registerInfix(token.GREATER, p.parseBinary)
	p.registerInfix(token.LESS_EQ, p.parseBinary)
	p.registerInfix(token.GREATER_EQ, p.parseBinary)
	p.registerInfix(token.AND, p.parseBinary)
	p.registerInfix(token.OR, p.parseBinary)
	p.registerInfix(token.XOR, p.parseBinary)
	p.registerInfix(token.AMP_AMP, p.parseBinary)
	p.registerInfix(token.PIPE_PIPE, p.parseBinary)
	p.registerInfix(token.AMP, p.parseBinary)
	p.registerInfix(token.PIPE, p.parseBinary)
	p.registerInfix(token.CARET, p.parseBinary)
	p.registerInfix(token.LPAREN, p.parseCall)
	p.registerInfix(token.LBRACK, p.parseIndex)
	p.registerInfix(token.DOT, p.parseFieldOrMethod)
	p.registerInfix(token.COLON_COLON, p.parseStaticAccess)
	p.registerInfix(token.QUESTION, p.parseTernary)
	p.registerInfix(token.QUESTION_QUESTION, p.parseBinary)
	p.registerInfix(token.INC, p.parsePostfixIncDec)
	p.registerInfix(token.DEC, p.parsePostfixIncDec)
	p.registerInfix(token.QUESTION_DOT, p.parseUnwrapField)
}

// parseExpression is C7's main loop (spec.md §4.7.2-4.7.3): look up the
// prefix handler for the current token, then repeatedly fold in infix
// operators whose precedence exceeds the caller's floor, exactly the
// termination condition the shunting-yard's "pop and apply when the next
// operator does not bind tighter" rule encodes.
func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixParseFns[p.cur().Type]
	if !ok {
		p.noPrefixParseFnError(p.cur().Type)
		return ast.NewEmpty(p.cur().Span)
	}
	left := prefix()
	if left == nil {
		return ast.NewEmpty(p.cur().Span)
	}

	for !p.cursor.Is(token.SEMICOLON) && !p.cursor.Is(token.NEWLINE) && precedence < getPrecedence(p.cur().Type) {
		infix, ok := p.infixParseFns[p.cur().Type]
		if !ok {
			break
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentOrStringLiteral() ast.Expression {
	tok := p.cur()
	if tok.Type == token.IDENT && token.IsSyntheticIdent(tok.Literal) {
		return p.parseStringLiteral()
	}
	p.advance()
	return &ast.Variable{BaseExpr: ast.BaseExpr{Span_: tok.Span}, Name: tok.Literal}
}

func (p *Parser) parseNilLiteral() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.Default{BaseExpr: ast.BaseExpr{Span_: tok.Span}}
}

func (p *Parser) parseThis() ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.Variable{BaseExpr: ast.BaseExpr{Span_: tok.Span}, Name: tok.Literal}
}

// parseGroupOrTuple disambiguates a parenthesised sub-expression from a
// tuple literal: if, after parsing one element, a comma or a `name:`
// label follows, it is a tuple (delegated to parseTupleLiteral). Otherwise
// it is a single grouped expression (spec.md §4.7.2 step 3's collapse
// rule for single-element parenthesised forms applies symmetrically
// here — a 1-tuple of a non-literal expression is just that expression).
func (p *Parser) parseGroupOrTuple() ast.Expression {
	mark := p.cursor.Mark()
	start := p.cur().Span
	p.advance() // consume '('

	if p.cursor.Is(token.RPAREN) {
		end := p.cur().Span
		p.advance()
		return &ast.ExpressionGroup{BaseExpr: ast.BaseExpr{Span_: start.Combine(end)}, Inner: ast.NewEmpty(start)}
	}

	if p.cursor.Is(token.IDENT) && p.peek().Type == token.COLON {
		p.cursor = p.cursor.ResetTo(mark)
		return p.parseTupleLiteral()
	}

	inner := p.parseExpression(LOWEST)
	if p.cursor.Is(token.COMMA) {
		p.cursor = p.cursor.ResetTo(mark)
		return p.parseTupleLiteral()
	}
	end := p.cur().Span
	p.expect(token.RPAREN)
	return &ast.ExpressionGroup{BaseExpr: ast.BaseExpr{Span_: start.Combine(end)}, Inner: inner}
}

// parsePrefixMinus distinguishes unary negation from binary subtraction
// (spec.md §4.7.4): as a registered prefix handler it only ever fires when
// no left operand has been parsed yet, which is exactly the unary case.
func (p *Parser) parsePrefixMinus() ast.Expression {
	tok := p.cur()
	p.advance()
	operand := p.parseExpression(UNARY)
	return negateLiteral(operand, tok.Span.Combine(operand.Span()))
}

func (p *Parser) parsePrefixUnary() ast.Expression {
	tok := p.cur()
	p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.Unary{BaseExpr: ast.BaseExpr{Span_: tok.Span.Combine(operand.Span())}, Op: tok.Literal, Operand: operand}
}

func (p *Parser) parsePrefixIncDec() ast.Expression {
	tok := p.cur()
	p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.Unary{BaseExpr: ast.BaseExpr{Span_: tok.Span.Combine(operand.Span())}, Op: tok.Literal, Operand: operand, Postfix: false}
}

func (p *Parser) parsePostfixIncDec(left ast.Expression) ast.Expression {
	tok := p.cur()
	p.advance()
	return &ast.Unary{BaseExpr: ast.BaseExpr{Span_: left.Span().Combine(tok.Span)}, Op: tok.Literal, Operand: left, Postfix: true}
}

// parseConstRef/parseMutRef/parseDeref implement §4.7.6's ref/deref
// disambiguation for the cases where `@`/`&`/`*` are registered as prefix
// handlers — i.e. they only ever fire in operand position, where the
// reference reading is unambiguous.
func (p *Parser) parseConstRef() ast.Expression {
	tok := p.cur()
	p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.ConstRef{BaseExpr: ast.BaseExpr{Span_: tok.Span.Combine(operand.Span())}, Operand: operand}
}

func (p *Parser) parseMutRef() ast.Expression {
	tok := p.cur()
	p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.MutRef{BaseExpr: ast.BaseExpr{Span_: tok.Span.Combine(operand.Span())}, Operand: operand}
}

func (p *Parser) parseDeref() ast.Expression {
	tok := p.cur()
	p.advance()
	operand := p.parseExpression(UNARY)
	return &ast.Deref{BaseExpr: ast.BaseExpr{Span_: tok.Span.Combine(operand.Span())}, Operand: operand}
}

func (p *Parser) parseBinary(left ast.Expression) ast.Expression {
	tok := p.cur()
	prec := getPrecedence(tok.Type)
	p.advance()
	// POWER is right-associative (spec.md §4.7.4's precedence-7 tie-break).
	rightPrec := prec
	if tok.Type == token.POWER {
		rightPrec--
	}
	right := p.parseExpression(rightPrec)
	return &ast.Binary{BaseExpr: ast.BaseExpr{Span_: left.Span().Combine(right.Span())}, Op: tok.Literal, Left: left, Right: right}
}

// parseCall parses `callee(args...)` where args are `(name? : expr)`
// pairs, per spec.md §4.7.7.
func (p *Parser) parseCall(callee ast.Expression) ast.Expression {
	p.advance() // consume '('
	args := p.parseArgList()
	end := p.cur().Span
	p.expect(token.RPAREN)
	return &ast.FunctionCall{BaseExpr: ast.BaseExpr{Span_: callee.Span().Combine(end)}, Callee: callee, Args: args}
}

func (p *Parser) parseArgList() []ast.Arg {
	var args []ast.Arg
	for !p.cursor.Is(token.RPAREN) && !p.cursor.IsEOF() {
		name := ""
		if p.cursor.Is(token.IDENT) && p.peek().Type == token.COLON {
			name = p.cur().Literal
			p.advance()
			p.advance()
		}
		value := p.parseExpression(LOWEST)
		args = append(args, ast.Arg{Name: name, Value: value})
		if p.cursor.Is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	return args
}

func (p *Parser) parseIndex(target ast.Expression) ast.Expression {
	p.advance() // consume '['
	idx := p.parseExpression(LOWEST)
	end := p.cur().Span
	p.expect(token.RBRACK)
	return &ast.Index{BaseExpr: ast.BaseExpr{Span_: target.Span().Combine(end)}, Target: target, Index: idx}
}

// parseFieldOrMethod implements §4.7.5's `.` post-handler: try a method
// call first (name followed by `(`), falling back to a field access.
// Name resolution (C11) later rewrites an AccessField whose object turns
// out to be a type name into a StaticField.
func (p *Parser) parseFieldOrMethod(obj ast.Expression) ast.Expression {
	p.advance() // consume '.'
	if !p.cursor.IsAny(token.IDENT) {
		p.errorf(errors.UnexpectedToken, "expected a field or method name after '.'")
		return obj
	}
	name := p.cur().Literal
	nameSpan := p.cur().Span
	p.advance()

	if p.cursor.Is(token.LPAREN) {
		p.advance()
		args := p.parseArgList()
		end := p.cur().Span
		p.expect(token.RPAREN)
		return &ast.FunctionCall{
			BaseExpr: ast.BaseExpr{Span_: obj.Span().Combine(end)},
			Callee:   &ast.AccessField{BaseExpr: ast.BaseExpr{Span_: obj.Span().Combine(nameSpan)}, Object: obj, Field: name},
			Args:     args,
		}
	}
	return &ast.AccessField{BaseExpr: ast.BaseExpr{Span_: obj.Span().Combine(nameSpan)}, Object: obj, Field: name}
}

// parseStaticAccess parses `TypeName::name(...)`.
func (p *Parser) parseStaticAccess(left ast.Expression) ast.Expression {
	p.advance() // consume '::'
	variable, ok := left.(*ast.Variable)
	typeName := ""
	if ok {
		typeName = variable.Name
	}
	if !p.cursor.IsAny(token.IDENT) {
		p.errorf(errors.UnexpectedToken, "expected a name after '::'")
		return left
	}
	name := p.cur().Literal
	p.advance()
	if p.cursor.Is(token.LPAREN) {
		p.advance()
		args := p.parseArgList()
		end := p.cur().Span
		p.expect(token.RPAREN)
		return &ast.StaticMethod{BaseExpr: ast.BaseExpr{Span_: left.Span().Combine(end)}, TypeName: typeName, Method: name, Args: args}
	}
	return &ast.StaticField{BaseExpr: ast.BaseExpr{Span_: left.Span()}, TypeName: typeName, Field: name}
}

// parseTernary implements §4.7.5's `?`-handling: drain to a ternary
// expecting `then : else`, with newlines permitted after both `?` and `:`.
func (p *Parser) parseTernary(cond ast.Expression) ast.Expression {
	p.advance() // consume '?'
	p.skipNewlines()
	then := p.parseExpression(LOWEST)
	p.skipNewlines()
	if !p.expect(token.COLON) {
		return &ast.Ternary{BaseExpr: ast.BaseExpr{Span_: cond.Span().Combine(then.Span())}, Cond: cond, Then: then}
	}
	p.skipNewlines()
	elseExpr := p.parseExpression(LOWEST)
	return &ast.Ternary{BaseExpr: ast.BaseExpr{Span_: cond.Span().Combine(elseExpr.Span())}, Cond: cond, Then: then, Else: elseExpr}
}

// parseUnwrapField handles the `?.` optional-chaining accessor (registered
// as infix on QUESTION_DOT): the left operand is wrapped in an
// UnwrapVariable and then parsed as a field or method access. A bare `x?`
// is not an unwrap; `?` on its own starts a ternary.
func (p *Parser) parseUnwrapField(obj ast.Expression) ast.Expression {
	unwrapped := &ast.UnwrapVariable{BaseExpr: ast.BaseExpr{Span_: obj.Span()}, Operand: obj}
	return p.parseFieldOrMethod(unwrapped)
}

// parseIfExpression parses `if cond { then } [else if ... ] [else { ... }]`
// as an expression (spec.md §4.8: `if` is usable both as a statement and
// as a value-producing expression).
func (p *Parser) parseIfExpression() ast.Expression {
	start := p.cur().Span
	p.advance() // consume 'if'
	cond := p.parseExpression(LOWEST)
	then := p.parseBlockExpression()

	var elseExpr ast.Expression
	if p.cursor.Is(token.ELSE) {
		p.advance()
		if p.cursor.Is(token.IF) {
			elseExpr = p.parseIfExpression()
		} else {
			elseExpr = p.parseBlockExpression()
		}
	}
	end := then.Span()
	if elseExpr != nil {
		end = elseExpr.Span()
	}
	return &ast.If{BaseExpr: ast.BaseExpr{Span_: start.Combine(end)}, Cond: cond, Then: then, Else: elseExpr}
}

// parseForExpression parses `for name in expr [where cond] { body }`.
func (p *Parser) parseForExpression() ast.Expression {
	start := p.cur().Span
	p.advance() // consume 'for'
	binding := ""
	if p.cursor.Is(token.IDENT) {
		binding = p.cur().Literal
		p.advance()
	}
	p.expect(token.IN)
	iter := p.parseExpression(LOWEST)
	var where ast.Expression
	if p.cursor.Is(token.WHERE) {
		p.advance()
		where = p.parseExpression(LOWEST)
	}
	body := p.parseBlockExpression()
	return &ast.For{BaseExpr: ast.BaseExpr{Span_: start.Combine(body.Span())}, Binding: binding, Iter: iter, Where: where, Body: body}
}

// parseWhileExpression parses `while [cond] { body }`; cond is optional
// (an infinite loop form).
func (p *Parser) parseWhileExpression() ast.Expression {
	start := p.cur().Span
	p.advance() // consume 'while'
	var cond ast.Expression
	if !p.cursor.Is(token.LBRACE) {
		cond = p.parseExpression(LOWEST)
	}
	body := p.parseBlockExpression()
	return &ast.While{BaseExpr: ast.BaseExpr{Span_: start.Combine(body.Span())}, Cond: cond, Body: body}
}

// parseMatchExpression parses `match expr { pattern => body, ... }`.
func (p *Parser) parseMatchExpression() ast.Expression {
	start := p.cur().Span
	p.advance() // consume 'match'
	scrutinee := p.parseExpression(LOWEST)
	p.expect(token.LBRACE)
	p.skipNewlines()

	var arms []ast.MatchArm
	for !p.cursor.Is(token.RBRACE) && !p.cursor.IsEOF() {
		pattern := p.parseExpression(LOWEST)
		p.expect(token.FAT_ARROW)
		var result ast.Expression
		if p.cursor.Is(token.LBRACE) {
			result = p.parseBlockExpression()
		} else {
			result = p.parseExpression(LOWEST)
		}
		arms = append(arms, ast.MatchArm{Pattern: pattern, Result: result})
		if p.cursor.Is(token.COMMA) {
			p.advance()
		}
		p.skipNewlines()
	}
	end := p.cur().Span
	p.expect(token.RBRACE)
	return &ast.Match{BaseExpr: ast.BaseExpr{Span_: start.Combine(end)}, Scrutinee: scrutinee, Arms: arms}
}

// parseBlockExpression parses `{ stmts... [tail-expr] }`. The final
// statement, if it is a bare expression statement followed (after any
// newlines) by the closing `}`, becomes the block's tail value.
func (p *Parser) parseBlockExpression() ast.Expression {
	start := p.cur().Span
	if !p.expect(token.LBRACE) {
		return ast.NewEmpty(start)
	}
	p.skipNewlines()

	var stmts []ast.Statement
	var tail ast.Expression
	for !p.cursor.Is(token.RBRACE) && !p.cursor.IsEOF() {
		stmt := p.parseStatement()
		p.skipNewlines()
		if p.cursor.Is(token.RBRACE) {
			if es, ok := stmt.(*ast.ExpressionStmt); ok {
				tail = es.Expr
				break
			}
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
	}
	end := p.cur().Span
	p.expect(token.RBRACE)
	return &ast.Block{BaseExpr: ast.BaseExpr{Span_: start.Combine(end)}, Stmts: stmts, Tail: tail}
}

// parseReturnLike builds a prefix handler for return/break/fall, each
// optionally carrying a value (spec.md §3's ReturnLike).
func (p *Parser) parseReturnLike(kind ast.ReturnKind) prefixParseFn {
	return func() ast.Expression {
		tok := p.cur()
		p.advance()
		var value ast.Expression
		if !p.cursor.IsAny(token.SEMICOLON, token.NEWLINE, token.RBRACE, token.EOF) {
			value = p.parseExpression(LOWEST)
		}
		span := tok.Span
		if value != nil {
			span = span.Combine(value.Span())
		}
		return &ast.ReturnLike{BaseExpr: ast.BaseExpr{Span_: span}, Kind: kind, Value: value}
	}
}

// parseLambda parses a closure literal: an optional call-mode keyword
// (const/mut/copy — copy being Soul's "once" move-capture spelling),
// `(params) [: ReturnType] { body }`.
func (p *Parser) parseLambda() ast.Expression {
	start := p.cur().Span
	mode := ast.LambdaConst
	switch p.cur().Type {
	case token.MUT:
		mode = ast.LambdaMut
	case token.COPY:
		mode = ast.LambdaOnce
	}
	p.advance()

	p.expect(token.LPAREN)
	var names []string
	var ptypes []soulType
	for !p.cursor.Is(token.RPAREN) && !p.cursor.IsEOF() {
		if p.cursor.Is(token.IDENT) {
			names = append(names, p.cur().Literal)
			p.advance()
		}
		if p.cursor.Is(token.COLON) {
			p.advance()
			t, _ := p.parseType()
			ptypes = append(ptypes, t)
		}
		if p.cursor.Is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	var paramTypes []soulType
	paramTypes = ptypes

	var returnType *soulType
	if p.cursor.Is(token.COLON) {
		p.advance()
		t, _ := p.parseType()
		returnType = &t
	}

	body := p.parseBlockExpression()
	return &ast.Lambda{
		BaseExpr:   ast.BaseExpr{Span_: start.Combine(body.Span())},
		Mode:       mode,
		ParamNames: names,
		ParamTypes: typesToASTTypes(paramTypes),
		ReturnType: optionalASTType(returnType),
		Body:       body,
	}
}
