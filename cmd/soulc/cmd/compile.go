package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/soullang/soulc/internal/ast"
	soulerrors "github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/lexer"
	"github.com/soullang/soulc/internal/parser"
	"github.com/soullang/soulc/internal/semantic"
	"github.com/soullang/soulc/internal/token"
	"github.com/soullang/soulc/pkg/header"
)

// stdPathEnv is the environment variable spec.md §6 reserves for
// selecting the internal standard-library directory: `use std.*` module
// paths resolve to `<stdPathEnv>/<path-with-dots-as-slashes>.soulheader`.
const stdPathEnv = "SOULC_STD_PATH"

var (
	showFlags []string
	rawOutput bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <input-path>",
	Short: "Compile a Soul source file through the frontend pipeline",
	Long: `compile runs the full frontend pipeline over a Soul source file:
lexing, parsing, the type-collector pre-pass, name resolution with inline
borrow checking, and type inference.

On success it exits 0. On any fatal error it prints the structured error
list to stderr and exits non-zero.

Examples:
  soulc compile main.soul
  soulc compile main.soul --show tokenizer --show ast
  soulc compile main.soul --show times --raw`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringArrayVar(&showFlags, "show", nil,
		"debug output to emit: tokenizer, ast, times (repeatable)")
	compileCmd.Flags().BoolVar(&rawOutput, "raw", false, "disable colorized diagnostic output")
}

type phaseTiming struct {
	name     string
	duration time.Duration
}

func runCompile(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	verbose, _ := cmd.Flags().GetBool("verbose")
	wantTokens, wantAST, wantTimes := parseShowFlags(showFlags)

	content, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", inputPath, err)
	}
	source := string(content)

	var timings []phaseTiming
	logPhase := func(name string, d time.Duration) {
		timings = append(timings, phaseTiming{name, d})
		if verbose {
			fmt.Fprintf(os.Stderr, "[soulc] %s: %s\n", name, d)
		}
	}

	errs := &soulerrors.List{}

	// C2/C3: lex the whole file up front so --show tokenizer has a
	// stable token vector to dump (spec.md §6's "token vector owned by
	// the driver for the duration of a file").
	lexStart := time.Now()
	l := lexer.New(source, errs, lexer.WithFile(inputPath), lexer.WithTracing(verbose))
	tokens := l.Tokenize()
	logPhase("lex", time.Since(lexStart))

	if wantTokens {
		if err := writeDebugFile("output/tokenizer.soul", dumpTokens(tokens)); err != nil {
			return err
		}
	}

	if errs.HasErrors() {
		return reportAndExit(errs, source, inputPath)
	}

	// C7/C8/C9: parse into a Module plus its literal pool.
	parseStart := time.Now()
	l = lexer.New(source, errs, lexer.WithFile(inputPath), lexer.WithTracing(verbose))
	module, pool := parser.ParseModule(l, errs, inputPath)
	logPhase("parse", time.Since(parseStart))

	if errs.HasErrors() {
		return reportAndExit(errs, source, inputPath)
	}

	if wantAST {
		if err := writeDebugFile("output/abstractSyntaxTree.soul", dumpModule(module, pool)); err != nil {
			return err
		}
	}

	// C6/C11/C12: type-collector pre-pass, name resolution with inline
	// borrow checking, then type inference.
	semStart := time.Now()
	ctx := semantic.NewContext(projectName(inputPath), errs)
	loadStdHeaders(ctx, module, verbose)

	pm := semantic.NewPassManager(
		semantic.DeclarationPass{},
		semantic.ResolutionPass{},
		semantic.InferencePass{},
	)
	if err := pm.RunAll(module, ctx); err != nil {
		return fmt.Errorf("internal error: %w", err)
	}
	logPhase("semantic", time.Since(semStart))

	if errs.HasErrors() {
		return reportAndExit(errs, source, inputPath)
	}

	for _, w := range errs.Warnings {
		fmt.Fprintln(os.Stderr, w.Format(!rawOutput))
	}

	if wantTimes {
		renderTimings(timings)
	}

	fmt.Printf("Compiled %s (%d statements, %d tokens, %d literals)\n",
		inputPath, len(module.Stmts), len(tokens), pool.Len())
	return nil
}

func parseShowFlags(flags []string) (tokens, ast, times bool) {
	for _, f := range flags {
		for _, part := range strings.Split(f, ",") {
			switch strings.TrimSpace(part) {
			case "tokenizer":
				tokens = true
			case "ast":
				ast = true
			case "times":
				times = true
			}
		}
	}
	return
}

// projectName derives spec.md §4.5's "project_name root" from the input
// file's base name (without extension) — the `this` sentinel module path
// resolves relative to it.
func projectName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// loadStdHeaders walks module's top-level `use` blocks and, for any
// `std.*` module path, loads its serialized header from stdPathEnv so
// C11/C12 can resolve `alias.member` references against it (spec.md §6,
// §8 scenario S8).
func loadStdHeaders(ctx *semantic.Context, module *ast.Module, verbose bool) {
	root := os.Getenv(stdPathEnv)
	if root == "" {
		return
	}
	for _, stmt := range module.Stmts {
		use, ok := stmt.(*ast.UseBlock)
		if !ok || !strings.HasPrefix(use.ModulePath, "std.") {
			continue
		}
		headerPath := filepath.Join(root, strings.ReplaceAll(use.ModulePath, ".", string(filepath.Separator))+".soulheader")
		s, modulePath, err := header.Load(headerPath)
		if err != nil {
			if verbose {
				fmt.Fprintf(os.Stderr, "[soulc] warning: could not load header for %s: %v\n", use.ModulePath, err)
			}
			continue
		}
		ctx.Scope.RegisterExternalHeader(modulePath, s)
	}
}

func reportAndExit(errs *soulerrors.List, source, path string) error {
	for _, e := range errs.Errors {
		e.Source = source
		e.File = path
	}
	fmt.Fprint(os.Stderr, soulerrors.FormatErrors(errs.Errors, !rawOutput))
	fmt.Fprintln(os.Stderr)
	return fmt.Errorf("compilation failed with %d error(s)", len(errs.Errors))
}

func writeDebugFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func dumpTokens(tokens []token.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

func renderTimings(timings []phaseTiming) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Phase", "Duration"})
	var total time.Duration
	for _, t := range timings {
		table.Append([]string{t.name, t.duration.String()})
		total += t.duration
	}
	table.SetFooter([]string{"Total", total.String()})
	table.Render()
}
