// Package lexer implements C2, the lexical scanner described in spec.md
// §4.2. It runs the five-step pipeline — comment stripping, format-string
// lowering, string interning, longest-match tokenization over the operator
// and keyword lexemes soulnames registers, and dot re-splitting for field
// access — and hands back a flat []token.Token plus the c-string store the
// later components read from.
//
// Structurally this mirrors the teacher's internal/lexer.Lexer: a
// position/readPosition/ch cursor advanced by readChar, a dispatch table of
// per-rune handlers instead of one large switch, and a Peek(n) lookahead
// buffer for the parser. The pipeline stages and the lexeme set are Soul's
// own, grounded on the reference compiler's tokenizer.rs and soul_names.rs.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	soulerrors "github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/token"
)

// CStringStore is the append-only c-string table spec.md §6 describes:
// every string literal the lexer meets is interned once and replaced in the
// token stream by a synthetic __soul_c_str_N__ identifier.
type CStringStore struct {
	values []string
}

// Intern appends s and returns the synthetic identifier referring to it.
func (s *CStringStore) Intern(value string) string {
	id := len(s.values)
	s.values = append(s.values, value)
	return syntheticCStrIdent(id)
}

// Lookup returns the interned string behind a __soul_c_str_N__ identifier.
func (s *CStringStore) Lookup(ident string) (string, bool) {
	n, ok := parseSyntheticIndex(ident, "__soul_c_str_", "__")
	if !ok || n < 0 || n >= len(s.values) {
		return "", false
	}
	return s.values[n], true
}

func (s *CStringStore) Values() []string { return s.values }

func syntheticCStrIdent(id int) string {
	return "__soul_c_str_" + strconv.Itoa(id) + "__"
}

func parseSyntheticIndex(ident, prefix, suffix string) (int, bool) {
	if !strings.HasPrefix(ident, prefix) || !strings.HasSuffix(ident, suffix) {
		return 0, false
	}
	mid := ident[len(prefix) : len(ident)-len(suffix)]
	n, err := strconv.Atoi(mid)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Lexer is the C2 scanner. One Lexer tokenizes one source file end to end;
// it is not reused across files.
type Lexer struct {
	input        string
	file         string
	position     int
	readPosition int
	line         int
	column       int
	ch           rune

	errs *soulerrors.List

	tokenBuffer []token.Token

	cstrings *CStringStore

	tracing bool
}

// LexerOption configures a Lexer at construction time.
type LexerOption func(*Lexer)

// WithTracing records the CLI's --verbose setting (SPEC_FULL.md §0.4) on
// the lexer. The lexer stores the flag but emits no trace output.
func WithTracing(trace bool) LexerOption {
	return func(l *Lexer) { l.tracing = trace }
}

// WithFile attaches a file name used only for error reporting.
func WithFile(file string) LexerOption {
	return func(l *Lexer) { l.file = file }
}

// New constructs a Lexer over input, applying C2 step 1 (comment stripping)
// and step 2 (format-string lowering) before the caller ever asks for a
// token — both steps rewrite the source text in place, the same way the
// teacher's New() strips a UTF-8 BOM before scanning starts.
func New(input string, errs *soulerrors.List, opts ...LexerOption) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}

	l := &Lexer{
		input:    stripComments(input),
		line:     1,
		errs:     errs,
		cstrings: &CStringStore{},
	}
	for _, opt := range opts {
		opt(l)
	}
	l.input = lowerFormatStrings(l.input)
	l.readChar()
	return l
}

// CStrings returns the c-string store this lexer interned string literals
// into; the parser threads it through to the AST so literal expressions can
// resolve __soul_c_str_N__ idents back to their text.
func (l *Lexer) CStrings() *CStringStore { return l.cstrings }

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
	if r == utf8.RuneError && size == 1 {
		l.addError("invalid UTF-8 encoding")
	}
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentSpan(length int) token.Span {
	return token.Span{Line: l.line, Offset: l.position, Length: length}
}

func (l *Lexer) addError(msg string) {
	if l.errs == nil {
		return
	}
	l.errs.AddError(soulerrors.New(soulerrors.UnexpectedToken, l.currentSpan(1), msg))
}

// Peek returns the token n positions ahead without consuming it, buffering
// as needed — the same lazily-filled lookahead buffer the teacher's
// Lexer.Peek implements, since the shunting-yard parser (C7) needs
// multi-token lookahead to disambiguate generics from comparisons.
func (l *Lexer) Peek(n int) token.Token {
	for len(l.tokenBuffer) <= n {
		l.tokenBuffer = append(l.tokenBuffer, l.scanToken())
	}
	return l.tokenBuffer[n]
}

// NextToken returns the next token, draining the lookahead buffer first.
func (l *Lexer) NextToken() token.Token {
	if len(l.tokenBuffer) > 0 {
		t := l.tokenBuffer[0]
		l.tokenBuffer = l.tokenBuffer[1:]
		return t
	}
	return l.scanToken()
}

// Tokenize drains the whole input into a flat slice, terminated by an EOF
// token. C2's final output: the token stream C3 wraps in a cursor.
func (l *Lexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		t := l.NextToken()
		out = append(out, t)
		if t.Type == token.EOF {
			return out
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

// scanToken performs steps 3-5 of the pipeline in sequence: newline tokens
// are synthesized as statement terminators (spec.md §3), then identifiers,
// numbers, strings and operators are each matched by longest compound form
// first (++  before +, := before :, and so on), falling back to an ILLEGAL
// token for anything unrecognised. Field-access dots are handled one at a
// time by scanDot so `a.b.c` yields three DOT-separated IDENTs rather than
// a single run, per step 5.
func (l *Lexer) scanToken() token.Token {
	l.skipWhitespace()

	if l.ch == '\n' {
		pos := l.currentSpan(1)
		l.line++
		l.column = 0
		l.readChar()
		return token.New(token.NEWLINE, "\n", pos)
	}

	if l.ch == 0 {
		return token.New(token.EOF, "", l.currentSpan(0))
	}

	if l.ch == '\'' || l.ch == '"' {
		return l.scanString()
	}

	if isLetter(l.ch) {
		return l.scanIdentifier()
	}

	if isDigit(l.ch) {
		return l.scanNumber()
	}

	if l.ch == '.' {
		return l.scanDot()
	}

	if handler, ok := operatorHandlers[l.ch]; ok {
		return handler(l)
	}

	pos := l.currentSpan(1)
	bad := string(l.ch)
	if l.ch != utf8.RuneError {
		l.addError("illegal character: " + bad)
	}
	l.readChar()
	return token.New(token.ILLEGAL, bad, pos)
}

// scanDot implements step 5: a lone '.' is DOT, and '..' is DOTDOT, but the
// lexer never greedily consumes a longer run — each dot in `a.b.c` is its
// own token, re-split from the identifier/number scan rather than folded
// into a path lexeme the way an earlier design might.
func (l *Lexer) scanDot() token.Token {
	pos := l.currentSpan(1)
	if l.peekChar() == '.' {
		l.readChar()
		l.readChar()
		return token.New(token.DOTDOT, "..", pos)
	}
	l.readChar()
	return token.New(token.DOT, ".", pos)
}

func (l *Lexer) scanIdentifier() token.Token {
	pos := l.currentSpan(0)
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	lit := l.input[start:l.position]
	pos.Length = len(lit)

	if lit == "true" {
		return token.New(token.TRUE, lit, pos)
	}
	if lit == "false" {
		return token.New(token.FALSE, lit, pos)
	}
	if lit == "nil" {
		return token.New(token.NILLIT, lit, pos)
	}
	return token.New(token.LookupIdent(lit), lit, pos)
}

// scanNumber implements C9's integer-literal grammar at the lexical level:
// decimal runs lex as INT (C9 later decides Int vs overflow-to-Float), hex
// (0x) and binary (0b) runs lex as INT with the prefix kept in the literal
// text so C9 can infer width from digit count, and a '.'-digit or exponent
// suffix promotes the run to FLOAT.
func (l *Lexer) scanNumber() token.Token {
	pos := l.currentSpan(0)
	start := l.position

	if l.ch == '0' && (l.peekChar() == 'x' || l.peekChar() == 'X') {
		l.readChar()
		l.readChar()
		for isHexDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
		lit := l.input[start:l.position]
		pos.Length = len(lit)
		return token.New(token.INT, lit, pos)
	}
	if l.ch == '0' && (l.peekChar() == 'b' || l.peekChar() == 'B') {
		l.readChar()
		l.readChar()
		for l.ch == '0' || l.ch == '1' || l.ch == '_' {
			l.readChar()
		}
		lit := l.input[start:l.position]
		pos.Length = len(lit)
		return token.New(token.INT, lit, pos)
	}

	for isDigit(l.ch) || l.ch == '_' {
		l.readChar()
	}

	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar()
		for isDigit(l.ch) || l.ch == '_' {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		isFloat = true
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	lit := l.input[start:l.position]
	pos.Length = len(lit)
	tt := token.INT
	if isFloat {
		tt = token.FLOAT
	}
	return token.New(tt, lit, pos)
}

// scanString implements C2 step 3: every string literal, once its contents
// are read, is interned into the c-string store and replaced in the token
// stream by a synthetic __soul_c_str_N__ identifier — the literal's actual
// text never flows further into the parser as a STRING token body.
func (l *Lexer) scanString() token.Token {
	pos := l.currentSpan(0)
	quote := l.ch
	l.readChar()

	var sb strings.Builder
	terminated := false
	for l.ch != 0 {
		if l.ch == quote {
			l.readChar()
			terminated = true
			break
		}
		if l.ch == '\\' {
			l.readChar()
			sb.WriteRune(decodeEscape(l.ch))
			l.readChar()
			continue
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		sb.WriteRune(l.ch)
		l.readChar()
	}
	if !terminated {
		l.addError("unterminated string literal")
	}

	ident := l.cstrings.Intern(sb.String())
	pos.Length = l.position - pos.Offset
	return token.New(token.IDENT, ident, pos)
}

func decodeEscape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'r':
		return '\r'
	case '0':
		return 0
	default:
		return ch
	}
}

// operatorHandler reads one operator/delimiter token starting at the
// cursor. Each handler owns disambiguating its own compound forms (e.g. '+'
// between PLUS/INC/PLUS_ASSIGN) — the same per-rune dispatch-table shape the
// teacher's tokenHandlers map uses, retuned to Soul's operator set from
// soulnames.Op/soulnames.Wrapper rather than DWScript's.
type operatorHandler func(*Lexer) token.Token

var operatorHandlers map[rune]operatorHandler

func init() {
	operatorHandlers = map[rune]operatorHandler{
		'+': (*Lexer).lexPlus, '-': (*Lexer).lexMinus, '*': (*Lexer).lexStar,
		'/': (*Lexer).lexSlash, '%': (*Lexer).lexPercent,
		'=': (*Lexer).lexEquals, '<': (*Lexer).lexLess, '>': (*Lexer).lexGreater,
		'!': (*Lexer).lexBang, '?': (*Lexer).lexQuestion,
		'&': (*Lexer).lexAmp, '|': (*Lexer).lexPipe, '^': (*Lexer).lexCaret,
		'@': (*Lexer).lexAt, ':': (*Lexer).lexColon,
		'(': simpleToken(token.LPAREN), ')': simpleToken(token.RPAREN),
		'[': simpleToken(token.LBRACK), ']': simpleToken(token.RBRACK),
		'{': simpleToken(token.LBRACE), '}': simpleToken(token.RBRACE),
		';': simpleToken(token.SEMICOLON), ',': simpleToken(token.COMMA),
	}
}

func simpleToken(tt token.TokenType) operatorHandler {
	return func(l *Lexer) token.Token {
		pos := l.currentSpan(1)
		lit := string(l.ch)
		l.readChar()
		return token.New(tt, lit, pos)
	}
}

// two returns a two-character token starting at pos if the lexer's current
// char matches second, consuming both; otherwise the caller falls back to
// the one-character form.
func (l *Lexer) two(second rune, tt token.TokenType, lit string, pos token.Span) (token.Token, bool) {
	if l.peekChar() != second {
		return token.Token{}, false
	}
	l.readChar()
	l.readChar()
	return token.New(tt, lit, pos), true
}

func (l *Lexer) lexPlus() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('+', token.INC, "++", pos); ok {
		return t
	}
	if t, ok := l.two('=', token.PLUS_ASSIGN, "+=", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.PLUS, "+", pos)
}

func (l *Lexer) lexMinus() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('-', token.DEC, "--", pos); ok {
		return t
	}
	if t, ok := l.two('=', token.MINUS_ASSIGN, "-=", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.MINUS, "-", pos)
}

func (l *Lexer) lexStar() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('*', token.POWER, "**", pos); ok {
		return t
	}
	if t, ok := l.two('=', token.TIMES_ASSIGN, "*=", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.ASTERISK, "*", pos)
}

// lexSlash handles '<' 'root' style `</` only from the '<' side; a bare '/'
// here is plain division or a compound assignment (comments were already
// stripped in New, so '/' never starts a comment by the time scanning runs).
func (l *Lexer) lexSlash() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('=', token.DIVIDE_ASSIGN, "/=", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.SLASH, "/", pos)
}

func (l *Lexer) lexPercent() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('=', token.PERCENT_ASSIGN, "%=", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.PERCENT, "%", pos)
}

func (l *Lexer) lexEquals() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('>', token.FAT_ARROW, "=>", pos); ok {
		return t
	}
	if l.peekChar() == '=' {
		l.readChar()
		l.readChar()
		return token.New(token.EQ, "==", pos)
	}
	l.readChar()
	return token.New(token.ASSIGN, "=", pos)
}

// lexLess handles '<', '<=', '<>' and the root operator `</`.
func (l *Lexer) lexLess() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('/', token.ROOT, "</", pos); ok {
		return t
	}
	if t, ok := l.two('=', token.LESS_EQ, "<=", pos); ok {
		return t
	}
	if t, ok := l.two('>', token.NOT_EQ, "<>", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.LESS, "<", pos)
}

func (l *Lexer) lexGreater() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('=', token.GREATER_EQ, ">=", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.GREATER, ">", pos)
}

func (l *Lexer) lexBang() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('=', token.NOT_EQ, "!=", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.NOT, "!", pos)
}

func (l *Lexer) lexQuestion() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('?', token.QUESTION_QUESTION, "??", pos); ok {
		return t
	}
	if t, ok := l.two('.', token.QUESTION_DOT, "?.", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.QUESTION, "?", pos)
}

// lexAmp handles both the '&&' logical-and operator and the bare '&'
// MutRef wrapper (spec.md §4.4's wrapper-stack); the parser, not the lexer,
// decides from context which reading applies to a given '&' token.
func (l *Lexer) lexAmp() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('&', token.AMP_AMP, "&&", pos); ok {
		return t
	}
	if t, ok := l.two('=', token.AMP_ASSIGN, "&=", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.AMP, "&", pos)
}

func (l *Lexer) lexPipe() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('|', token.PIPE_PIPE, "||", pos); ok {
		return t
	}
	if t, ok := l.two('=', token.PIPE_ASSIGN, "|=", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.PIPE, "|", pos)
}

func (l *Lexer) lexCaret() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('=', token.CARET_ASSIGN, "^=", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.CARET, "^", pos)
}

// lexAt handles the '@' ConstRef wrapper token.
func (l *Lexer) lexAt() token.Token {
	pos := l.currentSpan(1)
	l.readChar()
	return token.New(token.AT, "@", pos)
}

func (l *Lexer) lexColon() token.Token {
	pos := l.currentSpan(1)
	if t, ok := l.two('=', token.ASSIGN_DECL, ":=", pos); ok {
		return t
	}
	if t, ok := l.two(':', token.COLON_COLON, "::", pos); ok {
		return t
	}
	l.readChar()
	return token.New(token.COLON, ":", pos)
}

func isLetter(ch rune) bool { return unicode.IsLetter(ch) || ch == '_' }
func isDigit(ch rune) bool  { return '0' <= ch && ch <= '9' }
func isHexDigit(ch rune) bool {
	return ('0' <= ch && ch <= '9') || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}
