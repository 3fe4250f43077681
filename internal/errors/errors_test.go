package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soullang/soulc/internal/token"
)

func TestWrapStacksFramesInnermostFirst(t *testing.T) {
	err := New(UnexpectedToken, token.Span{Line: 1, Offset: 0, Length: 1}, "unexpected ','")
	err.Wrap("parsing argument list", token.Span{Line: 1, Offset: 0, Length: 10})
	err.Wrap("parsing call expression", token.Span{Line: 1, Offset: 0, Length: 20})

	require.Len(t, err.Frames, 2)
	assert.Equal(t, "parsing argument list", err.Frames[0].Message)
	assert.Equal(t, "parsing call expression", err.Frames[1].Message)

	formatted := err.Format(false)
	// Outermost frame renders first (spec.md §7's "innermost first" stack is
	// walked in reverse at format time so the reader sees broad-to-narrow).
	argIdx := strings.Index(formatted, "while parsing argument list")
	callIdx := strings.Index(formatted, "while parsing call expression")
	require.True(t, argIdx >= 0 && callIdx >= 0)
	assert.Greater(t, argIdx, callIdx)
}

func TestFormatIncludesSourceLineAndCaret(t *testing.T) {
	err := New(InvalidName, token.Span{Line: 2, Offset: 6, Length: 1}, "reserved name")
	err.Source = "let x := 1\nlet int := 2\n"
	err.File = "main.soul"

	out := err.Format(false)
	assert.Contains(t, out, "main.soul:2")
	assert.Contains(t, out, "let int := 2")
	assert.Contains(t, out, "^")
}

func TestFormatErrorsSingleVsMultiple(t *testing.T) {
	one := New(ArgError, token.Span{Line: 1}, "too many arguments")
	assert.Equal(t, one.Format(false), FormatErrors([]*SoulError{one}, false))

	two := New(WrongType, token.Span{Line: 2}, "type mismatch")
	out := FormatErrors([]*SoulError{one, two}, false)
	assert.Contains(t, out, "2 error(s)")
	assert.Contains(t, out, "[Error 1 of 2]")
	assert.Contains(t, out, "[Error 2 of 2]")
}

func TestListTracksErrorsAndWarningsSeparately(t *testing.T) {
	l := &List{}
	assert.False(t, l.HasErrors())

	l.AddWarning(New(InvalidInContext, token.Span{}, "style warning"))
	assert.False(t, l.HasErrors())
	assert.Len(t, l.Warnings, 1)

	l.AddError(New(NotFoundInScope, token.Span{}, "undefined name"))
	assert.True(t, l.HasErrors())
	assert.Len(t, l.Errors, 1)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "NotFoundInScope", NotFoundInScope.String())
	assert.Equal(t, "UnknownKind", Kind(999).String())
}
