package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/lexer"
	"github.com/soullang/soulc/internal/parser"
)

func TestParseShowFlagsSplitsCommaAndRepeats(t *testing.T) {
	tokens, astFlag, times := parseShowFlags([]string{"tokenizer,ast", "times"})
	require.True(t, tokens)
	require.True(t, astFlag)
	require.True(t, times)

	tokens, astFlag, times = parseShowFlags(nil)
	require.False(t, tokens)
	require.False(t, astFlag)
	require.False(t, times)
}

func TestProjectNameStripsDirAndExtension(t *testing.T) {
	require.Equal(t, "main", projectName("/tmp/project/main.soul"))
	require.Equal(t, "main", projectName("main.soul"))
}

func TestDumpTokensOneLinePerToken(t *testing.T) {
	errs := &errors.List{}
	l := lexer.New("let x := 1\n", errs)
	tokens := l.Tokenize()
	out := dumpTokens(tokens)
	require.Equal(t, len(tokens), len(splitNonEmptyLines(out)))
}

func TestDumpModuleIncludesModulePathAndLiteralPool(t *testing.T) {
	errs := &errors.List{}
	l := lexer.New("let xs := [1, 2, 3]\n", errs)
	module, pool := parser.ParseModule(l, errs, "sample.soul")
	require.False(t, errs.HasErrors())

	out := dumpModule(module, pool)
	require.Contains(t, out, `Module "sample.soul"`)
	if pool.Len() > 0 {
		require.Contains(t, out, "Literal pool:")
	}
}

func splitNonEmptyLines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	if start < len(s) {
		out = append(out, s[start:])
	}
	return out
}
