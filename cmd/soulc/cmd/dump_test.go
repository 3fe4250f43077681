package cmd

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"

	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/lexer"
	"github.com/soullang/soulc/internal/parser"
)

// TestDumpTokensSnapshot golden-tests the --show tokenizer output shape,
// mirroring the teacher's own snapshot style for fixture-driven output.
func TestDumpTokensSnapshot(t *testing.T) {
	errs := &errors.List{}
	l := lexer.New("let mut total := 0\nfor x in xs { total += x }\n", errs)
	tokens := l.Tokenize()
	require.False(t, errs.HasErrors())

	snaps.MatchSnapshot(t, dumpTokens(tokens))
}

// TestDumpModuleSnapshot golden-tests the --show ast output shape for a
// small module exercising a declaration, a control-flow expression and an
// interned array literal.
func TestDumpModuleSnapshot(t *testing.T) {
	errs := &errors.List{}
	l := lexer.New("let xs := [1, 2, 3]\nlet mut total := 0\nfor x in xs { total += x }\n", errs)
	module, pool := parser.ParseModule(l, errs, "snapshot.soul")
	require.False(t, errs.HasErrors())

	snaps.MatchSnapshot(t, dumpModule(module, pool))
}
