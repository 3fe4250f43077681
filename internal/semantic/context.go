package semantic

import (
	"github.com/soullang/soulc/internal/borrow"
	"github.com/soullang/soulc/internal/errors"
	"github.com/soullang/soulc/internal/scope"
)

// Context is the mutable state every Pass reads and writes: the scope
// tree C5/C6 build up, the borrow graph C10 maintains in lock-step with
// it, and the diagnostic list every pass reports into. One Context is
// shared across the whole pass pipeline for one module.
type Context struct {
	Scope  *scope.Builder
	Borrow *borrow.Graph
	Errs   *errors.List

	nextBorrowScope int
}

// NewContext creates a fresh Context rooted at a module scope named
// projectName (spec.md §4.5's "project_name root"), its borrow graph
// primed with a matching root scope.
func NewContext(projectName string, errs *errors.List) *Context {
	ctx := &Context{
		Scope:  scope.NewBuilder(projectName),
		Borrow: borrow.NewGraph(),
		Errs:   errs,
	}
	ctx.Borrow.OpenScope(borrow.ScopeID(ctx.Scope.Current().ID))
	ctx.nextBorrowScope = ctx.Scope.Current().ID + 1
	return ctx
}

// OpenScope pushes a new lexical scope in the scope builder and opens the
// matching borrow-checker scope in lock-step — spec.md §5's "block entry
// opens scope in both the scope builder and the borrow checker".
func (ctx *Context) OpenScope(kind scope.Kind, name string) *scope.Scope {
	s := ctx.Scope.Push(kind, name)
	if err := ctx.Borrow.OpenScope(borrow.ScopeID(s.ID)); err != nil {
		panic(err) // scope IDs are minted by the same Builder; a collision is a programming error
	}
	return s
}

// CloseScope pops the current lexical scope and closes its borrow-checker
// counterpart, returning the set of owners that must be dropped.
func (ctx *Context) CloseScope() (borrow.DeleteList, error) {
	id := ctx.Scope.Current().ID
	dl, err := ctx.Borrow.CloseScope(borrow.ScopeID(id))
	ctx.Scope.Pop()
	return dl, err
}
