package parser

import (
	"strconv"

	"github.com/soullang/soulc/internal/ast"
)

// LiteralPool is spec.md §6's literal pool: an append-only mapping from a
// synthetic `__soul_mem_N__` identifier to the LiteralValue it was
// interned from. C9 populates it as it parses non-trivial (array/tuple/
// named-tuple) literals; downstream consumers (the CLI's --show ast dump,
// eventually codegen) look values up by MemIdent rather than re-walking
// the expression tree for them.
type LiteralPool struct {
	order   []string
	entries map[string]ast.LiteralValue
}

func newLiteralPool() *LiteralPool {
	return &LiteralPool{entries: make(map[string]ast.LiteralValue)}
}

// intern records v under a freshly minted __soul_mem_N__ identifier and
// returns it.
func (pool *LiteralPool) intern(v ast.LiteralValue) string {
	ident := "__soul_mem_" + strconv.Itoa(len(pool.order)) + "__"
	pool.order = append(pool.order, ident)
	pool.entries[ident] = v
	return ident
}

// Lookup returns the literal value bound to ident, if any.
func (pool *LiteralPool) Lookup(ident string) (ast.LiteralValue, bool) {
	v, ok := pool.entries[ident]
	return v, ok
}

// Idents returns every interned identifier in the order it was interned.
func (pool *LiteralPool) Idents() []string {
	return append([]string(nil), pool.order...)
}

// Len reports how many literals have been interned.
func (pool *LiteralPool) Len() int { return len(pool.order) }
