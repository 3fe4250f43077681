// Package soulnames is the canonical name registry (C1): the closed set of
// keyword, operator, wrapper and modifier lexemes the rest of the frontend
// looks up by symbolic key instead of by string literal, plus the
// illegal-name set and the longest-first parse-token alphabet
// (ParseTokens). The lexer does its own longest-match dispatch and does
// not read ParseTokens.
//
// The registry mirrors a DWScript-style keyword table (see
// internal/lexer.tokenTypeStrings in the teacher) but the lexeme set itself
// is Soul's own, grounded on the reference Soul compiler's soul_names.rs.
package soulnames

import "sort"

// TypeWrapper names the four wrapper tokens that may decorate a type.
type TypeWrapper int

const (
	WrapperConstRef TypeWrapper = iota
	WrapperMutRef
	WrapperPointer
	WrapperArray
)

// TypeModifier names the four modifier keywords.
type TypeModifier int

const (
	ModifierLiteral TypeModifier = iota
	ModifierConst
	ModifierVolatile
	ModifierStatic
)

// InternalType names every primitive base kind.
type InternalType int

const (
	Character InternalType = iota
	Boolean
	StringType
	None

	UntypedInt
	Int
	Int8
	Int16
	Int32
	Int64

	UntypedUint
	Uint
	Uint8
	Uint16
	Uint32
	Uint64

	UntypedFloat
	Float32
	Float64
)

// Operator names operators that have a canonical lexeme distinct from the
// raw lexer token (e.g. `log`, `</` for root, which are word/compound forms).
type Operator int

const (
	OpIncrement Operator = iota
	OpDecrement
	OpPower
	OpRoot
	OpAddition
	OpSubtract
	OpMultiple
	OpDivide
	OpModulo

	OpIsSmallerEquals
	OpIsBiggerEquals
	OpNotEquals
	OpEquals
	OpNot
	OpIsSmaller
	OpIsBigger

	OpLogarithm
	OpLogicalOr
	OpLogicalAnd
	OpBitWiseOr
	OpBitWiseAnd
	OpBitWiseXor
)

// OtherKeyword names every remaining reserved word that is neither a type
// nor an operator nor a modifier.
type OtherKeyword int

const (
	KwIf OtherKeyword = iota
	KwElse
	KwElseIf

	KwWhereLoop
	KwForLoop
	KwInForLoop
	KwContinueLoop
	KwBreakLoop
	KwFallLoop

	KwSwitchCase
	KwTypeof
	KwType

	KwCopyData
	KwAsync
	KwAwaitAsync
	KwImport

	KwUse
	KwLet
	KwMut
	KwImpl
	KwStruct
	KwClass
	KwTrait
	KwEnum
	KwUnion
	KwReturn
	KwThis
)

var typeWrappers = map[TypeWrapper]string{
	WrapperConstRef: "@",
	WrapperMutRef:   "&",
	WrapperPointer:  "*",
	WrapperArray:    "[]",
}

var typeModifiers = map[TypeModifier]string{
	ModifierLiteral:  "literal",
	ModifierConst:    "const",
	ModifierVolatile: "volatile",
	ModifierStatic:   "static",
}

var internalTypes = map[InternalType]string{
	Character: "char",
	Boolean:   "bool",
	StringType: "str",
	None:      "none",

	UntypedInt: "untypedInt",
	Int:        "int",
	Int8:       "i8",
	Int16:      "i16",
	Int32:      "i32",
	Int64:      "i64",

	UntypedUint: "untypedUint",
	Uint:        "uint",
	Uint8:       "u8",
	Uint16:      "u16",
	Uint32:      "u32",
	Uint64:      "u64",

	UntypedFloat: "untypedFloat",
	Float32:      "f32",
	Float64:      "f64",
}

var operatorNames = map[Operator]string{
	OpIncrement: "++",
	OpDecrement: "--",
	OpPower:     "**",
	OpRoot:      "</",
	OpAddition:  "+",
	OpSubtract:  "-",
	OpMultiple:  "*",
	OpDivide:    "/",
	OpModulo:    "%",

	OpIsSmallerEquals: "<=",
	OpIsBiggerEquals:  ">=",
	OpNotEquals:       "!=",
	OpEquals:          "==",
	OpNot:             "!",
	OpIsSmaller:       "<",
	OpIsBigger:        ">",

	OpLogarithm:   "log",
	OpLogicalOr:   "||",
	OpLogicalAnd:  "&&",
	OpBitWiseOr:   "|",
	OpBitWiseAnd:  "&",
	OpBitWiseXor:  "^",
}

var otherKeywords = map[OtherKeyword]string{
	KwIf:     "if",
	KwElse:   "else",
	KwElseIf: "else if",

	KwWhereLoop:    "where",
	KwForLoop:      "for",
	KwInForLoop:    "in",
	KwContinueLoop: "continue",
	KwBreakLoop:    "break",
	KwFallLoop:     "fall",

	KwSwitchCase: "match",
	KwTypeof:     "typeof",
	KwType:       "type",

	KwCopyData:   "copy",
	KwAsync:      "async",
	KwAwaitAsync: "await",
	KwImport:     "import",

	KwUse:    "use",
	KwLet:    "let",
	KwMut:    "mut",
	KwImpl:   "impl",
	KwStruct: "struct",
	KwClass:  "class",
	KwTrait:  "trait",
	KwEnum:   "enum",
	KwUnion:  "union",
	KwReturn: "return",
	KwThis:   "this",
}

// illegalSymbols is the fixed illegal-symbol set from spec.md §4.1: any
// identifier containing one of these characters is rejected outright,
// since these are structural tokens and never name characters.
var illegalSymbols = map[rune]struct{}{
	'!': {}, '@': {}, '#': {}, '$': {},
	'%': {}, '^': {}, '&': {}, '*': {},
	'(': {}, ')': {}, '-': {}, '+': {},
	'=': {}, '[': {}, ']': {}, '{': {},
	'}': {}, '\\': {}, '|': {}, ';': {},
	'\'': {}, '"': {}, ',': {}, '.': {},
	'<': {}, '>': {}, '/': {}, '?': {},
	'`': {}, '~': {},
}

// illegalNames is built once at init: every internal type, modifier, and
// other-keyword lexeme, plus "log" (the only operator name that is also a
// valid identifier shape).
var illegalNames map[string]struct{}

// ParseTokens is the combined ordered list of the parse-token lexemes,
// sorted longest-first so `**` comes before `*`, `<=` before `<`, and so
// on.
var ParseTokens []string

const logName = "log"

func init() {
	illegalNames = make(map[string]struct{})
	illegalNames[logName] = struct{}{}
	for _, s := range internalTypes {
		illegalNames[s] = struct{}{}
	}
	for _, s := range typeModifiers {
		illegalNames[s] = struct{}{}
	}
	for _, s := range otherKeywords {
		illegalNames[s] = struct{}{}
	}

	baseTokens := []string{
		":=", ",", "[]", "[", "]",
		"(", ")", "{", "}", ":",
		";", "=", "\\", " ", "\t",
		"-=", "+=", "*=", "/=",
		"&=", "|=", "^=", "%=",
		"==", "===", "=>", "<>", "<=", "<<",
		">=", ">>", "!=", "??", "?.",
	}

	tokens := append([]string{}, baseTokens...)
	for op, s := range operatorNames {
		if op == OpLogarithm {
			continue
		}
		tokens = append(tokens, s)
	}
	for _, s := range typeWrappers {
		tokens = append(tokens, s)
	}

	sort.SliceStable(tokens, func(i, j int) bool {
		return len(tokens[i]) > len(tokens[j])
	})
	ParseTokens = tokens
}

// Wrapper returns the canonical lexeme for a TypeWrapper.
func Wrapper(w TypeWrapper) string { return typeWrappers[w] }

// Modifier returns the canonical lexeme for a TypeModifier.
func Modifier(m TypeModifier) string { return typeModifiers[m] }

// Internal returns the canonical lexeme for an InternalType.
func Internal(t InternalType) string { return internalTypes[t] }

// Op returns the canonical lexeme for an Operator.
func Op(o Operator) string { return operatorNames[o] }

// Keyword returns the canonical lexeme for an OtherKeyword.
func Keyword(k OtherKeyword) string { return otherKeywords[k] }

// IsInternalType reports whether name is a primitive base-kind lexeme.
func IsInternalType(name string) bool {
	for _, s := range internalTypes {
		if s == name {
			return true
		}
	}
	return false
}

// LookupInternalType returns the InternalType for a lexeme, if any.
func LookupInternalType(name string) (InternalType, bool) {
	for k, s := range internalTypes {
		if s == name {
			return k, true
		}
	}
	return 0, false
}

// IsOtherKeyword reports whether name is a reserved word in otherKeywords.
func IsOtherKeyword(name string) bool {
	for _, s := range otherKeywords {
		if s == name {
			return true
		}
	}
	return false
}

// CheckName validates a candidate identifier against the illegal-name set
// and the illegal-symbol set, per spec.md §4.1.
func CheckName(name string) error {
	if _, bad := illegalNames[name]; bad {
		return &IllegalNameError{Name: name, Reason: "name is a reserved keyword or type name"}
	}
	for _, ch := range name {
		if _, bad := illegalSymbols[ch]; bad {
			return &IllegalNameError{Name: name, Reason: "name contains illegal symbol '" + string(ch) + "'"}
		}
	}
	return nil
}

// IllegalNameError reports why CheckName rejected a candidate identifier.
type IllegalNameError struct {
	Name   string
	Reason string
}

func (e *IllegalNameError) Error() string {
	return "illegal name '" + e.Name + "': " + e.Reason
}

// NumericOrder lists every numeric InternalType in the order untyped
// literal decay prefers: untyped kinds first, then the default sized kinds,
// then the explicitly sized kinds. Order matters — see spec.md §4.12 decay.
var NumericOrder = []InternalType{
	UntypedInt, UntypedUint, UntypedFloat,
	Int, Uint, Float32,
	Int8, Int16, Int32, Int64,
	Uint8, Uint16, Uint32, Uint64,
	Float64,
}
