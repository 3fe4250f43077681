// Package parser implements C7 (expression parser), C8 (statement parser)
// and C9 (literal parser) from spec.md §4.7-4.9.
//
// The reference algorithm is a two-stack shunting-yard machine; this
// package expresses the same precedence-climbing behaviour the Go way, as
// a Pratt parser with prefix/infix function tables keyed by token type —
// the pattern the teacher's own internal/parser.Parser already uses
// (prefixParseFns/infixParseFns, parseExpression(precedence), an immutable
// TokenCursor for lookahead/backtracking). The shunting-yard's explicit
// operator stack and this package's recursion stack are the same
// algorithm viewed two ways: both pop/apply an operator exactly when the
// next operator binds no tighter, which is precisely spec.md §4.7.4's
// precedence rule.
package parser

import (
	"fmt"

	"github.com/soullang/soulc/internal/ast"
	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/lexer"
	"github.com/soullang/soulc/internal/token"
)

// Precedence levels, lowest to highest, per spec.md §4.7.4.
const (
	_ int = iota
	LOWEST
	TERNARY     // cond ? then : else
	LOGICAL_OR  // or, ||
	LOGICAL_AND // and, &&
	BITWISE     // |, &, ^
	EQUALITY    // ==, !=
	COMPARISON  // <, <=, >, >=
	SUM         // +, -
	PRODUCT     // *, /, %
	POWROOT     // log, **, </
	UNARY       // not x, -x (prefix)
	POSTFIX     // x++, x--
	CALL        // f(...), a.b, a[b]
)

var precedences = map[token.TokenType]int{
	token.OR:                LOGICAL_OR,
	token.XOR:               LOGICAL_OR,
	token.PIPE_PIPE:         LOGICAL_OR,
	token.AND:               LOGICAL_AND,
	token.AMP_AMP:           LOGICAL_AND,
	token.PIPE:              BITWISE,
	token.AMP:               BITWISE,
	token.CARET:             BITWISE,
	token.EQ:                EQUALITY,
	token.NOT_EQ:            EQUALITY,
	token.LESS:              COMPARISON,
	token.GREATER:           COMPARISON,
	token.LESS_EQ:           COMPARISON,
	token.GREATER_EQ:        COMPARISON,
	token.PLUS:              SUM,
	token.MINUS:             SUM,
	token.ASTERISK:          PRODUCT,
	token.SLASH:             PRODUCT,
	token.PERCENT:           PRODUCT,
	token.LOG:               POWROOT,
	token.POWER:             POWROOT,
	token.ROOT:              POWROOT,
	token.INC:               POSTFIX,
	token.DEC:               POSTFIX,
	token.LPAREN:            CALL,
	token.LBRACK:            CALL,
	token.DOT:               CALL,
	token.COLON_COLON:       CALL,
	token.QUESTION:          TERNARY,
	token.QUESTION_QUESTION: TERNARY,
}

func getPrecedence(tt token.TokenType) int {
	if p, ok := precedences[tt]; ok {
		return p
	}
	return LOWEST
}

type prefixParseFn func() ast.Expression
type infixParseFn func(ast.Expression) ast.Expression

// Parser holds the mutable cursor plus the error list it reports into.
// Unlike the teacher's DWScript parser, Soul's grammar draws no
// distinction between "statement" and "expression" contexts for
// if/for/while/match (spec.md §4.7.2 step 6: these parse as expressions
// everywhere, with C8 simply wrapping one in an ExpressionStmt at
// statement position), so there is a single expression-parsing entry
// point rather than the teacher's separate statement-context dispatch.
type Parser struct {
	cursor *TokenCursor
	errs   *errors.List
	pool   *LiteralPool

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// New builds a parser reading from l, reporting into errs.
func New(l *lexer.Lexer, errs *errors.List) *Parser {
	p := &Parser{cursor: NewTokenCursor(l), errs: errs, pool: newLiteralPool()}
	p.prefixParseFns = map[token.TokenType]prefixParseFn{}
	p.infixParseFns = map[token.TokenType]infixParseFn{}
	p.registerExpressionFns()
	return p
}

func (p *Parser) registerPrefix(tt token.TokenType, fn prefixParseFn) { p.prefixParseFns[tt] = fn }
func (p *Parser) registerInfix(tt token.TokenType, fn infixParseFn)   { p.infixParseFns[tt] = fn }

func (p *Parser) cur() token.Token  { return p.cursor.Current() }
func (p *Parser) peek() token.Token { return p.cursor.Peek(1) }
func (p *Parser) advance()          { p.cursor = p.cursor.Advance() }

// skipNewlines consumes any run of synthetic NEWLINE tokens — spec.md
// §4.7.5 allows a newline after `?`/`:` and generally between tokens that
// would otherwise need to sit on one line.
func (p *Parser) skipNewlines() {
	for p.cursor.Is(token.NEWLINE) {
		p.advance()
	}
}

func (p *Parser) expect(tt token.TokenType) bool {
	if p.cursor.Is(tt) {
		p.advance()
		return true
	}
	p.errorf(errors.UnexpectedToken, "expected %s, got %s", tt, p.cur().Type)
	return false
}

func (p *Parser) errorf(kind errors.Kind, format string, args ...any) {
	tok := p.cur()
	p.errs.AddError(errors.New(kind, tok.Span, fmt.Sprintf(format, args...)))
}

func (p *Parser) noPrefixParseFnError(tt token.TokenType) {
	p.errorf(errors.UnexpectedToken, "unexpected token %s in expression", tt)
}

// ParseModule parses one complete source file into a Module node: a flat
// sequence of top-level statements (use/function/class/struct/trait/enum/
// union/type-enum declarations, plus bare expression statements for script
// top levels) until EOF. The returned LiteralPool is spec.md §6's
// append-only __soul_mem_N__ -> LiteralValue mapping C9 built up while
// parsing non-trivial literals.
func ParseModule(l *lexer.Lexer, errs *errors.List, path string) (*ast.Module, *LiteralPool) {
	p := New(l, errs)
	start := p.cur().Span
	var stmts []ast.Statement
	p.skipNewlines()
	for !p.cursor.IsEOF() {
		stmt := p.parseStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipNewlines()
	}
	end := p.cur().Span
	return ast.NewModule(start.Combine(end), path, stmts), p.pool
}
