// Package semantic implements the frontend's post-parse analysis: C6 (the
// type-collector pre-pass), C11 (name resolution), and C12 (type
// inference), with C10 (the borrow checker, internal/borrow) consulted at
// every scope boundary C11 walks.
//
// The multi-pass shape — an ordered list of independent Pass
// implementations sharing one mutable Context — is grounded on the
// teacher's own internal/semantic.Pass/PassManager: "proper handling of
// forward declarations", "clear separation of concerns", one pass per
// concern rather than one big recursive-descent walker. What differs is
// the tree being walked (ast.Module, not DWScript's ast.Program) and the
// shared state each pass reads and writes (Context wraps scope.Builder +
// borrow.Graph + errors.List, not the teacher's SymbolTable-based
// PassContext).
package semantic

import "github.com/soullang/soulc/internal/ast"

// Pass is one independent stage of semantic analysis.
type Pass interface {
	Name() string
	Run(module *ast.Module, ctx *Context) error
}

// PassManager runs a fixed sequence of passes over one module, stopping
// early if a pass reports fatal errors (spec.md's error categories
// distinguish a recoverable diagnostic, collected into ctx.Errs, from an
// internal error returned directly).
type PassManager struct {
	passes []Pass
}

func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

func (pm *PassManager) AddPass(p Pass) { pm.passes = append(pm.passes, p) }

func (pm *PassManager) RunAll(module *ast.Module, ctx *Context) error {
	for _, p := range pm.passes {
		if err := p.Run(module, ctx); err != nil {
			return err
		}
		if ctx.Errs.HasErrors() {
			break
		}
	}
	return nil
}
