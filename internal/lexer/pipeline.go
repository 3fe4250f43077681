package lexer

import "strings"

// stripComments implements C2 step 1: line comments (`//`) and block
// comments (`/* */`) are removed from the source text before any token is
// produced. A line comment is dropped up to (not including) its newline; a
// block comment is replaced by a single space and keeps the newlines it
// spanned. This mirrors the
// teacher's readLineComment/readCStyleComment, collapsed to a single
// pre-pass rather than interleaved with tokenization, since Soul's grammar
// has no doc-comment or compiler-directive syntax that needs to survive
// into the token stream.
func stripComments(src string) string {
	var sb strings.Builder
	sb.Grow(len(src))

	runes := []rune(src)
	i := 0
	for i < len(runes) {
		ch := runes[i]
		if ch == '/' && i+1 < len(runes) && runes[i+1] == '/' {
			for i < len(runes) && runes[i] != '\n' {
				i++
			}
			continue
		}
		if ch == '/' && i+1 < len(runes) && runes[i+1] == '*' {
			i += 2
			for i < len(runes) && !(runes[i] == '*' && i+1 < len(runes) && runes[i+1] == '/') {
				if runes[i] == '\n' {
					sb.WriteRune('\n')
				}
				i++
			}
			i += 2
			sb.WriteRune(' ')
			continue
		}
		if ch == '"' || ch == '\'' {
			quote := ch
			sb.WriteRune(ch)
			i++
			for i < len(runes) && runes[i] != quote {
				if runes[i] == '\\' && i+1 < len(runes) {
					sb.WriteRune(runes[i])
					i++
				}
				sb.WriteRune(runes[i])
				i++
			}
			if i < len(runes) {
				sb.WriteRune(runes[i])
				i++
			}
			continue
		}
		sb.WriteRune(ch)
		i++
	}
	return sb.String()
}

// lowerFormatStrings implements C2 step 2: an f-string `f"text {expr} more"`
// is rewritten, before tokenization, into a call to the synthetic builtin
// `__soul_format_string__` whose arguments are the literal text segments
// interleaved with the parsed sub-expressions — the form C7's expression
// parser already knows how to parse as an ordinary function call.
//
// Only the textual rewrite happens here; the embedded `{expr}` spans are
// copied out verbatim as call arguments and tokenized with the rest of the
// source, so the lexer needs no expression grammar of its own. The text
// inside the braces is not itself rewritten: an f-string nested there is
// left unlowered, and a string literal there is not rejected.
func lowerFormatStrings(src string) string {
	if !strings.Contains(src, `f"`) {
		return src
	}

	var out strings.Builder
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		if runes[i] == 'f' && i+1 < len(runes) && runes[i+1] == '"' && !precededByIdentChar(runes, i) {
			rewritten, consumed := lowerOneFormatString(runes, i)
			out.WriteString(rewritten)
			i += consumed
			continue
		}
		out.WriteRune(runes[i])
		i++
	}
	return out.String()
}

func precededByIdentChar(runes []rune, i int) bool {
	if i == 0 {
		return false
	}
	p := runes[i-1]
	return isLetter(p) || isDigit(p)
}

// lowerOneFormatString rewrites a single f"..." literal starting at start
// (the 'f') into `__soul_format_string__(seg0, expr0, seg1, expr1, ...)`,
// returning the rewritten text and the number of runes consumed from src.
func lowerOneFormatString(runes []rune, start int) (string, int) {
	i := start + 2 // skip f"
	var args []string
	var seg strings.Builder

	flushSeg := func() {
		args = append(args, `"`+seg.String()+`"`)
		seg.Reset()
	}

	for i < len(runes) && runes[i] != '"' {
		switch runes[i] {
		case '{':
			flushSeg()
			i++
			depth := 1
			var expr strings.Builder
			for i < len(runes) && depth > 0 {
				if runes[i] == '{' {
					depth++
				} else if runes[i] == '}' {
					depth--
					if depth == 0 {
						break
					}
				}
				expr.WriteRune(runes[i])
				i++
			}
			if i < len(runes) {
				i++ // skip closing }
			}
			args = append(args, expr.String())
		case '\\':
			seg.WriteRune(runes[i])
			if i+1 < len(runes) {
				seg.WriteRune(runes[i+1])
				i += 2
				continue
			}
			i++
		default:
			seg.WriteRune(runes[i])
			i++
		}
	}
	flushSeg()
	if i < len(runes) {
		i++ // skip closing "
	}

	rewritten := "__soul_format_string__(" + strings.Join(args, ", ") + ")"
	return rewritten, i - start
}
