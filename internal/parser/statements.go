// statements.go implements C8, the statement parser (spec.md §4.8): it
// dispatches on a statement's first token to the right production —
// variable/assignment/function/struct/class/trait/enum/union/type-enum/
// use/block — mirroring the teacher's own statement-dispatch-by-peek
// shape (parseStatement switching on curToken.Type) while the grammar
// itself is Soul's own.
package parser

import (
	"github.com/soullang/soulc/internal/ast"
	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/soulnames"
	"github.com/soullang/soulc/internal/token"
	"github.com/soullang/soulc/internal/types"
)

// parseStatement dispatches to the production matching the current
// token's first-set (spec.md §4.8's classification list).
func (p *Parser) parseStatement() ast.Statement {
	p.skipNewlines()
	switch p.cur().Type {
	case token.LET:
		return p.parseLetDecl()
	case token.USE, token.IMPORT:
		return p.parseUseBlock()
	case token.STRUCT:
		return p.parseStructDecl()
	case token.CLASS:
		return p.parseClassDecl()
	case token.TRAIT:
		return p.parseTraitDecl()
	case token.ENUM:
		return p.parseEnumDecl()
	case token.UNION:
		return p.parseUnionDecl()
	case token.TYPE:
		return p.parseTypeEnumDecl()
	case token.IMPL:
		return p.parseImplDecl()
	case token.LBRACE:
		return p.parseBareBlock()
	case token.CONST, token.LITERAL, token.VOLATILE, token.STATIC:
		return p.parseFunctionOrTypedVarDecl()
	case token.SEMICOLON:
		p.advance()
		return nil
	}

	if p.looksLikeTypedVarDecl() {
		return p.parseTypedVarDecl()
	}
	if p.looksLikeFunctionDecl() {
		return p.parseFunctionDecl()
	}

	return p.parseAssignmentOrExpressionStatement()
}

// parseBareBlock parses a standalone `{ ... }` statement (as opposed to
// the Block *expression* form used as the body of if/for/while/function):
// C8 wraps the same production in a BlockStmt at statement position.
func (p *Parser) parseBareBlock() ast.Statement {
	block := p.parseBlockExpression().(*ast.Block)
	return &ast.BlockStmt{BaseStmt: ast.BaseStmt{Span_: block.Span()}, Stmts: block.Stmts}
}

// parseAssignmentOrExpressionStatement parses a leading expression and
// decides whether it is the LHS of an assignment (bare `=` or a compound
// `+=`/`-=`/... form, lowered to `lhs = lhs op rhs` per spec.md §4.8) or a
// plain expression statement.
func (p *Parser) parseAssignmentOrExpressionStatement() ast.Statement {
	start := p.cur().Span
	expr := p.parseExpression(LOWEST)

	if op, ok := assignOps[p.cur().Type]; ok {
		p.advance()
		rhs := p.parseExpression(LOWEST)
		if op != "" {
			// Compound assignment lowers to `lhs = lhs op rhs`.
			rhs = &ast.Binary{BaseExpr: ast.BaseExpr{Span_: expr.Span().Combine(rhs.Span())}, Op: op, Left: expr, Right: rhs}
		}
		return &ast.Assignment{BaseStmt: ast.BaseStmt{Span_: start.Combine(rhs.Span())}, Target: expr, Value: rhs}
	}

	return &ast.ExpressionStmt{BaseStmt: ast.BaseStmt{Span_: expr.Span()}, Expr: expr}
}

// assignOps maps every assignment-symbol token (spec.md §4.8) to the
// binary operator a compound form lowers to; "" marks the bare `=` form
// which needs no lowering.
var assignOps = map[token.TokenType]string{
	token.ASSIGN:         "",
	token.PLUS_ASSIGN:    "+",
	token.MINUS_ASSIGN:   "-",
	token.TIMES_ASSIGN:   "*",
	token.DIVIDE_ASSIGN:  "/",
	token.PERCENT_ASSIGN: "%",
	token.AMP_ASSIGN:     "&",
	token.PIPE_ASSIGN:    "|",
	token.CARET_ASSIGN:   "^",
}

// parseLetDecl parses the three `let`-prefixed variable forms: `let name
// := expr`, `let mut name := expr`, and the destructuring `let (a, b) =
// expr` unwrap pattern.
func (p *Parser) parseLetDecl() ast.Statement {
	start := p.cur().Span
	p.advance() // consume 'let'

	mut := false
	if p.cursor.Is(token.MUT) {
		mut = true
		p.advance()
	}

	if p.cursor.Is(token.LPAREN) {
		return p.parseUnwrapLetDecl(start, mut)
	}

	if !p.cursor.Is(token.IDENT) {
		p.errorf(errors.UnexpectedToken, "expected a name after 'let'")
		return nil
	}
	name := p.cur().Literal
	p.advance()

	if !p.expect(token.ASSIGN_DECL) {
		return nil
	}
	value := p.parseExpression(LOWEST)
	return &ast.VariableDecl{
		BaseStmt: ast.BaseStmt{Span_: start.Combine(value.Span())},
		Names:    []string{name},
		Type:     nil, // inferred by C12
		Mut:      mut,
		Value:    value,
	}
}

// parseUnwrapLetDecl parses `let (a, b) = expr`.
func (p *Parser) parseUnwrapLetDecl(start token.Span, mut bool) ast.Statement {
	p.advance() // consume '('
	var names []string
	for !p.cursor.Is(token.RPAREN) && !p.cursor.IsEOF() {
		if p.cursor.Is(token.IDENT) {
			names = append(names, p.cur().Literal)
			p.advance()
		}
		if p.cursor.Is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)
	p.expect(token.ASSIGN)
	value := p.parseExpression(LOWEST)
	return &ast.VariableDecl{
		BaseStmt: ast.BaseStmt{Span_: start.Combine(value.Span())},
		Names:    names,
		Mut:      mut,
		Value:    value,
	}
}

// looksLikeTypedVarDecl reports whether the cursor sits at `Type name`:
// a type expression immediately followed by an identifier (as opposed to
// `name = ...`/`name(...)`  which start an assignment or call expression
// statement instead).
func (p *Parser) looksLikeTypedVarDecl() bool {
	if !p.cursor.Is(token.IDENT) {
		return false
	}
	if !isKnownBaseName(p.cur().Literal) {
		return false
	}
	return p.peek().Type == token.IDENT || p.peek().Type == token.AT ||
		p.peek().Type == token.AMP || p.peek().Type == token.ASTERISK || p.peek().Type == token.LBRACK
}

// isKnownBaseName reports whether name is one of Soul's built-in base
// type keywords (the set types.go's parseType recognises) — used to
// disambiguate a leading type name from a plain identifier at statement
// start.
func isKnownBaseName(name string) bool {
	_, ok := baseTypeKeywords[name]
	return ok
}

// parseTypedVarDecl parses `Type name [= expr]` / bare `Type name`.
func (p *Parser) parseTypedVarDecl() ast.Statement {
	start := p.cur().Span
	ty, ok := p.parseType()
	if !ok {
		return nil
	}
	if !p.cursor.Is(token.IDENT) {
		p.errorf(errors.UnexpectedToken, "expected a variable name after type %s", ty)
		return nil
	}
	name := p.cur().Literal
	end := p.cur().Span
	p.advance()

	var value ast.Expression
	if p.cursor.Is(token.ASSIGN) {
		p.advance()
		value = p.parseExpression(LOWEST)
		end = value.Span()
	}
	return &ast.VariableDecl{
		BaseStmt: ast.BaseStmt{Span_: start.Combine(end)},
		Names:    []string{name},
		Type:     &ty,
		Value:    value,
	}
}

// parseFunctionOrTypedVarDecl handles the ambiguity between a leading
// modifier on a function declaration (`static fn_name(...) {...}`) and on
// a typed variable declaration (`static int x = 0`): both start with one
// of the four modifier keywords, so this peeks past the modifier run to
// decide which production applies.
func (p *Parser) parseFunctionOrTypedVarDecl() ast.Statement {
	mark := p.cursor.Mark()
	for isModifierToken(p.cur().Type) {
		p.advance()
	}
	isFn := p.looksLikeFunctionDecl()
	p.cursor = p.cursor.ResetTo(mark)
	if isFn {
		return p.parseFunctionDecl()
	}
	return p.parseTypedVarDecl()
}

func isModifierToken(tt token.TokenType) bool {
	switch tt {
	case token.CONST, token.LITERAL, token.VOLATILE, token.STATIC:
		return true
	}
	return false
}

// looksLikeFunctionDecl reports whether the cursor (possibly after
// modifiers) sits at a function declaration: a name followed by `(`
// (optionally via an extension-receiver type first), or the `this`
// receiver-parameter shorthand.
func (p *Parser) looksLikeFunctionDecl() bool {
	if !p.cursor.Is(token.IDENT) {
		return false
	}
	if p.peek().Type == token.LPAREN || p.peek().Type == token.LESS {
		return true
	}
	// `ReceiverType name(...)`: a type name followed by another name
	// followed by '('.
	if isKnownBaseName(p.cur().Literal) && p.peek().Type == token.IDENT {
		return p.cursor.PeekIs(2, token.LPAREN) || p.cursor.PeekIs(2, token.LESS)
	}
	return false
}

// parseFunctionDecl parses spec.md §4.8's function declaration: optional
// leading modifier, optional extension receiver type, name, optional
// generics with trait bounds, parameter list, optional return type,
// block body.
func (p *Parser) parseFunctionDecl() ast.Statement {
	start := p.cur().Span
	var mod types.Modifier
	for {
		m, ok := modifierKeywords[p.cur().Type]
		if !ok {
			break
		}
		mod |= m
		p.advance()
	}

	var thisType *types.Type
	if p.cursor.Is(token.IDENT) && (p.peek().Type != token.LPAREN && p.peek().Type != token.LESS) {
		t, ok := p.parseType()
		if ok {
			thisType = &t
		}
	}

	if !p.cursor.Is(token.IDENT) {
		p.errorf(errors.UnexpectedToken, "expected a function name")
		return nil
	}
	name := p.cur().Literal
	p.advance()

	var generics []string
	if p.cursor.Is(token.LESS) {
		p.advance()
		for !p.cursor.Is(token.GREATER) && !p.cursor.IsEOF() {
			if p.cursor.Is(token.IDENT) {
				generics = append(generics, p.cur().Literal)
				p.advance()
			}
			if p.cursor.Is(token.COLON) {
				p.advance()
				// Trait bound: a single type, parsed and discarded.
				p.parseType()
			}
			if p.cursor.Is(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.GREATER)
		if p.cursor.Is(token.IMPL) {
			// `impl Clause` trailing generic-bound clause: consume a type
			// list, reserved syntax beyond bound recording (spec.md §11).
			p.advance()
			for {
				if _, ok := p.parseType(); !ok {
					break
				}
				if p.cursor.Is(token.COMMA) {
					p.advance()
					continue
				}
				break
			}
		}
	}

	p.expect(token.LPAREN)
	var params []ast.Param
	for !p.cursor.Is(token.RPAREN) && !p.cursor.IsEOF() {
		params = append(params, p.parseParam(thisType != nil && len(params) == 0))
		if p.cursor.Is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.RPAREN)

	var returnType types.Type
	if p.cursor.Is(token.COLON) {
		p.advance()
		t, ok := p.parseType()
		if ok {
			returnType = t
		}
	}

	bodyExpr := p.parseBlockExpression()
	body, _ := bodyExpr.(*ast.Block)
	return &ast.FunctionDecl{
		BaseStmt:   ast.BaseStmt{Span_: start.Combine(bodyExpr.Span())},
		Name:       name,
		ThisType:   thisType,
		Generics:   generics,
		Params:     params,
		ReturnType: returnType,
		Modifier:   mod,
		Body:       body,
	}
}

// parseParam parses one `name: Type [= default]` parameter, or the bare
// `this`/`this@`/`this&` receiver-parameter shorthand (only legal as the
// first parameter of a method with an extension receiver, spec.md §4.8).
func (p *Parser) parseParam(allowThis bool) ast.Param {
	if p.cursor.Is(token.THIS) {
		tok := p.cur()
		p.advance()
		ty := types.Nominal("Self")
		switch p.cur().Type {
		case token.AT:
			ty = ty.WithWrapper(types.Wrapper{Kind: soulnames.WrapperConstRef})
			p.advance()
		case token.AMP:
			ty = ty.WithWrapper(types.Wrapper{Kind: soulnames.WrapperMutRef})
			p.advance()
		}
		if !allowThis {
			p.errs.AddError(errors.New(errors.InvalidInContext, tok.Span,
				"'this' is only allowed as the first parameter of a function with an extension receiver"))
		}
		return ast.Param{Name: tok.Literal, Type: ty}
	}

	name := ""
	if p.cursor.Is(token.IDENT) {
		name = p.cur().Literal
		p.advance()
	}
	var ty types.Type
	if p.cursor.Is(token.COLON) {
		p.advance()
		if t, ok := p.parseType(); ok {
			ty = t
		}
	}
	var def ast.Expression
	if p.cursor.Is(token.ASSIGN) {
		p.advance()
		def = p.parseExpression(LOWEST)
	}
	return ast.Param{Name: name, Type: ty, Default: def}
}

// parseUseBlock implements spec.md §4.8's four `use` forms: plain module
// import, selective `[A, B]` import, `Type impl Other` typedef, and
// `Type { ... }` impl-block retargeting.
func (p *Parser) parseUseBlock() ast.Statement {
	start := p.cur().Span
	p.advance() // consume 'use'/'import'

	if !p.cursor.Is(token.IDENT) {
		p.errorf(errors.UnexpectedToken, "expected a path after 'use'")
		return nil
	}
	first := p.cur().Literal
	end := p.cur().Span
	p.advance()

	// `use Type impl Other`: a typedef-by-conformance declaration.
	if p.cursor.Is(token.IMPL) {
		p.advance()
		if !p.cursor.Is(token.IDENT) {
			p.errorf(errors.UnexpectedToken, "expected a trait name after 'impl'")
			return nil
		}
		trait := p.cur().Literal
		end = p.cur().Span
		p.advance()
		return &ast.ImplDecl{BaseStmt: ast.BaseStmt{Span_: start.Combine(end)}, Trait: trait, Type: types.Nominal(first)}
	}

	// `use Type { ... }`: impl block retargeting function decls to Type.
	if p.cursor.Is(token.LBRACE) {
		methods := p.parseImplBody()
		end = p.cur().Span
		return &ast.ImplDecl{BaseStmt: ast.BaseStmt{Span_: start.Combine(end)}, Type: types.Nominal(first), Methods: methods}
	}

	path := first
	for p.cursor.Is(token.DOT) {
		p.advance()
		if p.cursor.Is(token.LBRACK) {
			break
		}
		if !p.cursor.Is(token.IDENT) {
			p.errorf(errors.UnexpectedToken, "expected a path segment after '.'")
			return nil
		}
		path += "." + p.cur().Literal
		end = p.cur().Span
		p.advance()
	}

	var names []string
	if p.cursor.Is(token.LBRACK) {
		p.advance()
		for !p.cursor.Is(token.RBRACK) && !p.cursor.IsEOF() {
			if p.cursor.Is(token.IDENT) {
				names = append(names, p.cur().Literal)
				p.advance()
			}
			if p.cursor.Is(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		end = p.cur().Span
		p.expect(token.RBRACK)
	}

	return &ast.UseBlock{BaseStmt: ast.BaseStmt{Span_: start.Combine(end)}, ModulePath: path, Names: names}
}

// parseImplBody parses the `{ fn ... fn ... }` body of a `use Type { }`
// impl block, each entry a function declaration retargeted to Type by
// the caller.
func (p *Parser) parseImplBody() []*ast.FunctionDecl {
	p.expect(token.LBRACE)
	p.skipNewlines()
	var methods []*ast.FunctionDecl
	for !p.cursor.Is(token.RBRACE) && !p.cursor.IsEOF() {
		if stmt := p.parseStatement(); stmt != nil {
			if fn, ok := stmt.(*ast.FunctionDecl); ok {
				methods = append(methods, fn)
			}
		}
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	return methods
}

// parseImplDecl parses a bare `impl Trait for Type { ... }` block.
func (p *Parser) parseImplDecl() ast.Statement {
	start := p.cur().Span
	p.advance() // consume 'impl'
	if !p.cursor.Is(token.IDENT) {
		p.errorf(errors.UnexpectedToken, "expected a trait or type name after 'impl'")
		return nil
	}
	trait := p.cur().Literal
	p.advance()

	typeName := ""
	if p.cursor.Is(token.FOR) {
		p.advance()
		if p.cursor.Is(token.IDENT) {
			typeName = p.cur().Literal
			p.advance()
		}
	} else {
		// `impl Type { ... }` with no trait: Type is what follows 'impl'.
		typeName = trait
		trait = ""
	}

	methods := p.parseImplBody()
	end := p.cur().Span
	return &ast.ImplDecl{BaseStmt: ast.BaseStmt{Span_: start.Combine(end)}, Trait: trait, Type: types.Nominal(typeName), Methods: methods}
}

// parseFieldList parses the shared `{ field: Type [= default] ... }` body
// used by struct/class/union declarations. It also consumes each field's
// optional `{ get; set; Get; Set; }` visibility suffix
// spec.md §4.8 allows on a struct/class field.
func (p *Parser) parseFieldList() []ast.Field {
	p.expect(token.LBRACE)
	p.skipNewlines()
	var fields []ast.Field
	for !p.cursor.Is(token.RBRACE) && !p.cursor.IsEOF() {
		if !p.cursor.Is(token.IDENT) {
			break
		}
		fname := p.cur().Literal
		p.advance()
		var fty types.Type
		if p.cursor.Is(token.COLON) {
			p.advance()
			if t, ok := p.parseType(); ok {
				fty = t
			}
		}
		var def ast.Expression
		if p.cursor.Is(token.ASSIGN) {
			p.advance()
			def = p.parseExpression(LOWEST)
		}
		get, set := ast.VisibilityUnset, ast.VisibilityUnset
		if p.cursor.Is(token.LBRACE) {
			get, set = p.parseGetSetSuffix()
		}
		fields = append(fields, ast.Field{Name: fname, Type: fty, Default: def, Get: get, Set: set})
		p.skipNewlines()
	}
	p.expect(token.RBRACE)
	return fields
}

// parseGetSetSuffix consumes a field's optional `{ get; set; Get; Set; }`
// getter/setter-visibility block, returning the accessor visibilities it
// grants (lowercase -> private, uppercase -> public).
func (p *Parser) parseGetSetSuffix() (get, set ast.AccessVisibility) {
	p.advance() // consume '{'
	for !p.cursor.Is(token.RBRACE) && !p.cursor.IsEOF() {
		if p.cursor.Is(token.IDENT) {
			switch p.cur().Literal {
			case "get":
				get = ast.VisibilityPrivate
			case "Get":
				get = ast.VisibilityPublic
			case "set":
				set = ast.VisibilityPrivate
			case "Set":
				set = ast.VisibilityPublic
			}
		}
		p.advance()
	}
	p.expect(token.RBRACE)
	return get, set
}

func (p *Parser) parseGenericsDecl() []string {
	var generics []string
	if !p.cursor.Is(token.LESS) {
		return nil
	}
	p.advance()
	for !p.cursor.Is(token.GREATER) && !p.cursor.IsEOF() {
		if p.cursor.Is(token.IDENT) {
			generics = append(generics, p.cur().Literal)
			p.advance()
		}
		if p.cursor.Is(token.COLON) {
			p.advance()
			p.parseType()
		}
		if p.cursor.Is(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	p.expect(token.GREATER)
	return generics
}

// parseStructDecl parses `struct Name<gen> { field: Type [= default] ... }`.
func (p *Parser) parseStructDecl() ast.Statement {
	start := p.cur().Span
	p.advance() // consume 'struct'
	name := p.expectName()
	generics := p.parseGenericsDecl()
	fields := p.parseFieldList()
	end := p.cur().Span
	return &ast.StructDecl{BaseStmt: ast.BaseStmt{Span_: start.Combine(end)}, Name: name, Generics: generics, Fields: fields}
}

// parseClassDecl parses a class: fields plus methods, spec.md §4.8.
func (p *Parser) parseClassDecl() ast.Statement {
	start := p.cur().Span
	p.advance() // consume 'class'
	name := p.expectName()
	generics := p.parseGenericsDecl()

	p.expect(token.LBRACE)
	p.skipNewlines()
	var fields []ast.Field
	var methods []*ast.FunctionDecl
	for !p.cursor.Is(token.RBRACE) && !p.cursor.IsEOF() {
		if p.looksLikeFunctionDecl() || isModifierToken(p.cur().Type) {
			if stmt := p.parseStatement(); stmt != nil {
				if fn, ok := stmt.(*ast.FunctionDecl); ok {
					methods = append(methods, fn)
				}
			}
			p.skipNewlines()
			continue
		}
		if !p.cursor.Is(token.IDENT) {
			p.advance()
			continue
		}
		fname := p.cur().Literal
		p.advance()
		var fty types.Type
		if p.cursor.Is(token.COLON) {
			p.advance()
			if t, ok := p.parseType(); ok {
				fty = t
			}
		}
		var def ast.Expression
		if p.cursor.Is(token.ASSIGN) {
			p.advance()
			def = p.parseExpression(LOWEST)
		}
		get, set := ast.VisibilityUnset, ast.VisibilityUnset
		if p.cursor.Is(token.LBRACE) {
			get, set = p.parseGetSetSuffix()
		}
		fields = append(fields, ast.Field{Name: fname, Type: fty, Default: def, Get: get, Set: set})
		p.skipNewlines()
	}
	end := p.cur().Span
	p.expect(token.RBRACE)
	return &ast.ClassDecl{BaseStmt: ast.BaseStmt{Span_: start.Combine(end)}, Name: name, Generics: generics, Fields: fields, Methods: methods}
}

// parseTraitDecl parses a trait: a set of required method signatures,
// no bodies (spec.md §4.8: "Trait declares method signatures only").
func (p *Parser) parseTraitDecl() ast.Statement {
	start := p.cur().Span
	p.advance() // consume 'trait'
	name := p.expectName()
	p.expect(token.LBRACE)
	p.skipNewlines()

	var methods []ast.TraitMethod
	for !p.cursor.Is(token.RBRACE) && !p.cursor.IsEOF() {
		if !p.cursor.Is(token.IDENT) {
			p.advance()
			continue
		}
		mname := p.cur().Literal
		p.advance()
		p.expect(token.LPAREN)
		var params []ast.Param
		for !p.cursor.Is(token.RPAREN) && !p.cursor.IsEOF() {
			params = append(params, p.parseParam(false))
			if p.cursor.Is(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		p.expect(token.RPAREN)
		var ret types.Type
		if p.cursor.Is(token.COLON) {
			p.advance()
			if t, ok := p.parseType(); ok {
				ret = t
			}
		}
		methods = append(methods, ast.TraitMethod{Name: mname, Params: params, ReturnType: ret})
		p.skipNewlines()
	}
	end := p.cur().Span
	p.expect(token.RBRACE)
	return &ast.TraitDecl{BaseStmt: ast.BaseStmt{Span_: start.Combine(end)}, Name: name, Methods: methods}
}

// parseEnumDecl parses `enum Name { A, B = 2, C }` — C-style integer or
// expression-valued variants (spec.md §4.8).
func (p *Parser) parseEnumDecl() ast.Statement {
	start := p.cur().Span
	p.advance() // consume 'enum'
	name := p.expectName()
	p.expect(token.LBRACE)
	p.skipNewlines()

	var variants []ast.EnumVariant
	for !p.cursor.Is(token.RBRACE) && !p.cursor.IsEOF() {
		if !p.cursor.Is(token.IDENT) {
			break
		}
		vname := p.cur().Literal
		p.advance()
		var value ast.Expression
		var dataType *types.Type
		if p.cursor.Is(token.ASSIGN) {
			p.advance()
			value = p.parseExpression(LOWEST)
		} else if p.cursor.Is(token.LPAREN) {
			p.advance()
			if t, ok := p.parseType(); ok {
				dataType = &t
			}
			p.expect(token.RPAREN)
		}
		variants = append(variants, ast.EnumVariant{Name: vname, Value: value, Type: dataType})
		if p.cursor.Is(token.COMMA) {
			p.advance()
		}
		p.skipNewlines()
	}
	end := p.cur().Span
	p.expect(token.RBRACE)
	return &ast.EnumDecl{BaseStmt: ast.BaseStmt{Span_: start.Combine(end)}, Name: name, Variants: variants}
}

// parseUnionDecl parses a union: a set of fields any one of which may be
// active at a time (tuple- or named-tuple-shape variants, spec.md §4.8).
func (p *Parser) parseUnionDecl() ast.Statement {
	start := p.cur().Span
	p.advance() // consume 'union'
	name := p.expectName()
	fields := p.parseFieldList()
	end := p.cur().Span
	return &ast.UnionDecl{BaseStmt: ast.BaseStmt{Span_: start.Combine(end)}, Name: name, Fields: fields}
}

// parseTypeEnumDecl parses `type Name = A | B | C` (a tagged-union of
// types). The reserved `type Foo impl [A, B]` spelling (spec.md §11 Open
// Question ii) parses far enough to be recognised, then fails with
// InvalidInContext rather than falling through to a generic parse error.
func (p *Parser) parseTypeEnumDecl() ast.Statement {
	start := p.cur().Span
	p.advance() // consume 'type'
	name := p.expectName()

	if p.cursor.Is(token.IMPL) {
		p.errorf(errors.InvalidInContext, "'type %s impl [...]' is reserved syntax and is not yet implemented", name)
		// Consume through to end of line so the driver can resync.
		for !p.cursor.IsAny(token.NEWLINE, token.SEMICOLON, token.EOF) {
			p.advance()
		}
		return &ast.TypeEnumDecl{BaseStmt: ast.BaseStmt{Span_: start.Combine(p.cur().Span)}, Name: name}
	}

	p.expect(token.ASSIGN)
	var variants []types.Type
	for {
		t, ok := p.parseType()
		if !ok {
			break
		}
		variants = append(variants, t)
		if p.cursor.Is(token.PIPE) {
			p.advance()
			continue
		}
		break
	}
	end := p.cur().Span
	return &ast.TypeEnumDecl{BaseStmt: ast.BaseStmt{Span_: start.Combine(end)}, Name: name, Variants: variants}
}

func (p *Parser) expectName() string {
	if !p.cursor.Is(token.IDENT) {
		p.errorf(errors.InvalidName, "expected a name, got %s", p.cur().Type)
		return ""
	}
	name := p.cur().Literal
	p.advance()
	return name
}
