// Package errors implements the structured error stack described in
// spec.md §7: a SoulError carries a stack of contextual frames that a caller
// adds with Wrap, so a failure can surface as a short stack of contexts
// instead of one flat message. The lexer, parser and semantic passes report
// their errors without adding frames. Formatting (source line plus
// caret) is grounded on the teacher's internal/errors package, with the
// hand-rolled ANSI escapes there replaced by github.com/fatih/color per
// SPEC_FULL.md §0.1.
package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/soullang/soulc/internal/token"
)

// Kind enumerates the twelve error categories of spec.md §7.
type Kind int

const (
	UnexpectedToken Kind = iota
	UnexpectedEnd
	UnmatchedParenthesis
	InvalidName
	InvalidType
	InvalidInContext
	ArgError
	WrongType
	InvalidStringFormat
	NotFoundInScope
	InvalidPath
	InternalError
)

var kindNames = [...]string{
	UnexpectedToken:      "UnexpectedToken",
	UnexpectedEnd:        "UnexpectedEnd",
	UnmatchedParenthesis: "UnmatchedParenthesis",
	InvalidName:          "InvalidName",
	InvalidType:          "InvalidType",
	InvalidInContext:     "InvalidInContext",
	ArgError:             "ArgError",
	WrongType:            "WrongType",
	InvalidStringFormat:  "InvalidStringFormat",
	NotFoundInScope:      "NotFoundInScope",
	InvalidPath:          "InvalidPath",
	InternalError:        "InternalError",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UnknownKind"
}

// Frame is a single layer of context wrapping an inner failure — "while
// parsing if-condition", "while trying to get function 'main'" — the same
// contribution the teacher's parser.BlockContext makes to a contextualised
// message, carried on the error value itself rather than reconstructed from
// a parser-side block stack at format time.
type Frame struct {
	Message string
	Span    token.Span
}

// SoulError is the frontend's single error type: a Kind, the innermost
// message, the source position it occurred at, and a stack of enclosing
// contextual frames (innermost first).
type SoulError struct {
	Kind    Kind
	Message string
	Span    token.Span
	Frames  []Frame

	Source string
	File   string
}

func New(kind Kind, span token.Span, message string) *SoulError {
	return &SoulError{Kind: kind, Message: message, Span: span}
}

// Wrap pushes a new outer frame onto err and returns it, mirroring how each
// enclosing production in the teacher's parser.addErrorWithContext adds its
// own contextual layer around an inner parse failure.
func (e *SoulError) Wrap(message string, span token.Span) *SoulError {
	e.Frames = append(e.Frames, Frame{Message: message, Span: span})
	return e
}

func (e *SoulError) Error() string {
	return e.Format(false)
}

// Format renders the error with source context and a caret, optionally
// colorised via fatih/color (SPEC_FULL.md §0.1), then the stack of wrapping
// frames, outermost first.
func (e *SoulError) Format(useColor bool) string {
	var sb strings.Builder

	header := fmt.Sprintf("Error [%s]", e.Kind)
	if e.File != "" {
		header += fmt.Sprintf(" in %s:%d:%d", e.File, e.Span.Line, e.Span.Offset)
	} else {
		header += fmt.Sprintf(" at line %d", e.Span.Line)
	}
	sb.WriteString(header)
	sb.WriteString("\n")

	if line := e.sourceLine(e.Span.Line); line != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Span.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.caretColumn()))
		caret := "^"
		if useColor {
			caret = color.New(color.FgRed, color.Bold).Sprint(caret)
		}
		sb.WriteString(caret)
		sb.WriteString("\n")
	}

	msg := e.Message
	if useColor {
		msg = color.New(color.Bold).Sprint(msg)
	}
	sb.WriteString(msg)

	for i := len(e.Frames) - 1; i >= 0; i-- {
		sb.WriteString("\n\twhile ")
		sb.WriteString(e.Frames[i].Message)
	}

	return sb.String()
}

func (e *SoulError) caretColumn() int {
	col := e.Span.Offset - e.lineStart(e.Span.Line)
	if col < 0 {
		return 0
	}
	return col
}

func (e *SoulError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func (e *SoulError) lineStart(lineNum int) int {
	lines := strings.Split(e.Source, "\n")
	start := 0
	for i := 0; i < lineNum-1 && i < len(lines); i++ {
		start += len(lines[i]) + 1
	}
	return start
}

// FormatErrors renders one or many errors, numbering each when there is
// more than one — the same shape as the teacher's errors.FormatErrors.
func FormatErrors(errs []*SoulError, useColor bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(useColor)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Compilation failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(useColor))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// List accumulates errors for a single compilation unit, distinguishing
// fatal errors from the style warnings C11 emits (spec.md §7: "Warnings...
// accumulate into a separate list emitted alongside success").
type List struct {
	Errors   []*SoulError
	Warnings []*SoulError
}

func (l *List) AddError(err *SoulError)   { l.Errors = append(l.Errors, err) }
func (l *List) AddWarning(err *SoulError) { l.Warnings = append(l.Warnings, err) }
func (l *List) HasErrors() bool           { return len(l.Errors) > 0 }
