// Package scope implements C5 (the scope builder) and the data it shares
// with C6's type-collector pre-pass: a tree of Scopes each holding an
// insertion-ordered symbol map, push/pop with visibility, and the
// external_header map of public symbols imported from other modules
// (spec.md §4.5, §6).
//
// Grounded on the teacher's internal/semantic/symbol_table.go (the nested
// SymbolTable-with-outer-pointer shape, Define/Resolve/PushScope/PopScope),
// adapted to Soul's case-sensitive identifiers (spec.md keeps names exactly
// as spelled — DWScript's strings.ToLower normalization does not apply)
// and to an explicit insertion-ordered map (spec.md §3's Scope requires
// deterministic iteration order for diagnostics and header serialization,
// whereas the teacher's plain Go map has none).
package scope

import (
	"fmt"

	"github.com/soullang/soulc/internal/types"
)

// Kind is spec.md §3's ScopeKind union: what role a Scope plays, beyond
// being a plain lexical block.
type Kind int

const (
	KindBlock Kind = iota
	KindFunction
	KindNamedTupleCtor
	KindTypeDef
	KindUseTypeDef
	KindType
	KindModule
)

// VariableRef is spec.md §3's shared handle for a declared name: every
// Expression.Variable/AccessField node that refers to this declaration
// holds a pointer to the same VariableRef, so a later rewrite (e.g. C12
// filling in an inferred type) is visible through every reference.
type VariableRef struct {
	Name string
	Type types.Type

	// LitRetention holds the constant value a literal-valued declaration
	// folds to; nil if the variable is not a compile-time constant. No pass
	// in this repository sets or reads it.
	LitRetention any
}

// FunctionSignature is spec.md §3's FunctionSignature: overload identity is
// name + parameter types + this-type (never return type alone), and every
// overload sharing a name and this-type must agree on return type.
type FunctionSignature struct {
	Name        string
	ThisType    *types.Type // nil for free functions
	Generics    []string
	ParamNames  []string
	ParamTypes  []types.Type
	// DefaultExprs holds an opaque default-value expression per parameter,
	// nil where the parameter has none; the parser fills these in as
	// ast.Expression values and this package never inspects them.
	DefaultExprs []any
	ReturnType   types.Type
	Modifier     types.Modifier
}

// Identity returns the string C5 uses to key overload sets: functions only
// overload on name + this-type + parameter types.
func (f *FunctionSignature) Identity() string {
	s := f.Name
	if f.ThisType != nil {
		s += "#" + f.ThisType.String()
	}
	for _, p := range f.ParamTypes {
		s += "," + p.String()
	}
	return s
}

// symbolKind distinguishes what a given entry in a Scope's symbol map
// holds, since a Scope's map stores variables, functions and type
// definitions side by side under spec.md §3's "insertion-ordered symbol
// map".
type symbolKind int

const (
	symVariable symbolKind = iota
	symFunction
	symType
)

type entry struct {
	kind symbolKind
	name string

	variable *VariableRef
	// overloads holds every FunctionSignature declared under name; more
	// than one entry means an overload set.
	overloads []*FunctionSignature
	typeDef   *types.Type
}

// Scope is spec.md §3's Scope: an id, a parent id, an insertion-ordered
// symbol map, and a Kind. The insertion order is tracked explicitly via
// `order` since header serialization (spec.md §6) and diagnostic listing
// need a deterministic, source-faithful iteration order.
type Scope struct {
	ID       int
	ParentID int // -1 for the root scope
	Kind     Kind
	Name     string // function/type/module name this scope belongs to, if any

	symbols map[string]*entry
	order   []string

	parent *Scope
}

// Builder owns the whole scope tree for one compilation unit: scope
// creation/push/pop, the external_header map of symbols imported from
// other modules (spec.md §6), and the project-name root scope every other
// scope nests under.
type Builder struct {
	scopes      []*Scope
	current     *Scope
	nextID      int
	projectName string

	// externalHeaders maps an imported module path (spec.md §6's
	// dot-separated module path, e.g. "std.fmt") to the public-symbol
	// image exposed by that module's serialized header. Consumed
	// read-only by name resolution (C11) when it meets a `use` import.
	externalHeaders map[string]*Scope

	// moduleAliases maps the bare name a whole-module `use path.to.module`
	// import binds (the path's last segment) back to the full dotted path,
	// so `fmt.Println(...)` after `use std.fmt` resolves `fmt` as a module
	// reference rather than an undefined variable (spec.md §8 scenario S8).
	moduleAliases map[string]string
}

// NewBuilder creates a Builder with a single root module scope named
// projectName — spec.md §4.5's "project_name root".
func NewBuilder(projectName string) *Builder {
	b := &Builder{
		projectName:     projectName,
		externalHeaders: make(map[string]*Scope),
		moduleAliases:   make(map[string]string),
	}
	root := b.newScope(-1, KindModule, projectName)
	b.current = root
	return b
}

func (b *Builder) newScope(parentID int, kind Kind, name string) *Scope {
	s := &Scope{
		ID:       b.nextID,
		ParentID: parentID,
		Kind:     kind,
		Name:     name,
		symbols:  make(map[string]*entry),
	}
	if parentID >= 0 {
		s.parent = b.scopes[parentID]
	}
	b.nextID++
	b.scopes = append(b.scopes, s)
	return s
}

// Current returns the innermost open scope.
func (b *Builder) Current() *Scope { return b.current }

// Push opens a new child scope of the given kind under the current scope
// and makes it current — "block entry opens scope" (spec.md §5).
func (b *Builder) Push(kind Kind, name string) *Scope {
	s := b.newScope(b.current.ID, kind, name)
	b.current = s
	return s
}

// Pop closes the current scope and returns to its parent — "exit closes
// both" (spec.md §5, paired with the borrow checker's own close_scope).
// Popping the root scope is a programming error and panics, the same way
// popping past the bottom of the teacher's outer-pointer chain would nil
// dereference.
func (b *Builder) Pop() {
	if b.current.parent == nil {
		panic("scope: Pop called on root scope")
	}
	b.current = b.current.parent
}

// Insert declares a new variable in the current scope. spec.md §3's
// duplicate-Variable-in-same-scope invariant: redeclaring a name already
// present in this exact scope (not an outer one) is an error — shadowing
// an outer scope's name is fine.
func (b *Builder) Insert(name string, typ types.Type) (*VariableRef, error) {
	if _, exists := b.current.symbols[name]; exists {
		return nil, fmt.Errorf("'%s' is already declared in this scope", name)
	}
	ref := &VariableRef{Name: name, Type: typ}
	b.current.symbols[name] = &entry{kind: symVariable, name: name, variable: ref}
	b.current.order = append(b.current.order, name)
	return ref, nil
}

// Lookup searches the current scope and every enclosing scope, innermost
// first, for a variable named name.
func (b *Builder) Lookup(name string) (*VariableRef, bool) {
	for s := b.current; s != nil; s = s.parent {
		if e, ok := s.symbols[name]; ok && e.kind == symVariable {
			return e.variable, true
		}
	}
	return nil, false
}

// AddFunction registers sig under its Identity() in the current scope,
// appending to an existing overload set if one is already present — the
// overload-by-name-plus-parameter-types rule of spec.md §3's
// FunctionSignature.
func (b *Builder) AddFunction(sig *FunctionSignature) error {
	e, exists := b.current.symbols[sig.Name]
	if !exists {
		b.current.symbols[sig.Name] = &entry{kind: symFunction, name: sig.Name, overloads: []*FunctionSignature{sig}}
		b.current.order = append(b.current.order, sig.Name)
		return nil
	}
	if e.kind != symFunction {
		return fmt.Errorf("'%s' is already declared as a non-function symbol", sig.Name)
	}
	for _, existing := range e.overloads {
		if existing.Identity() == sig.Identity() {
			return fmt.Errorf("'%s' is already declared with this parameter list", sig.Name)
		}
		sameThis := existing.ThisType == nil && sig.ThisType == nil ||
			existing.ThisType != nil && sig.ThisType != nil && existing.ThisType.Equal(*sig.ThisType)
		if sameThis && !existing.ReturnType.Equal(sig.ReturnType) {
			return fmt.Errorf("overloads of '%s' must agree on return type", sig.Name)
		}
	}
	e.overloads = append(e.overloads, sig)
	return nil
}

func sameParamTypes(a, b *FunctionSignature) bool {
	if len(a.ParamTypes) != len(b.ParamTypes) {
		return false
	}
	for i := range a.ParamTypes {
		if !a.ParamTypes[i].Equal(b.ParamTypes[i]) {
			return false
		}
	}
	return true
}

// LookupFunction searches the current scope and every enclosing scope for
// an overload set named name.
func (b *Builder) LookupFunction(name string) ([]*FunctionSignature, bool) {
	for s := b.current; s != nil; s = s.parent {
		if e, ok := s.symbols[name]; ok && e.kind == symFunction {
			return e.overloads, true
		}
	}
	return nil, false
}

// InsertType registers a nominal type declaration (struct/class/trait/
// enum/union/typedef) in the current scope.
func (b *Builder) InsertType(name string, typ types.Type) error {
	if _, exists := b.current.symbols[name]; exists {
		return fmt.Errorf("'%s' is already declared in this scope", name)
	}
	b.current.symbols[name] = &entry{kind: symType, name: name, typeDef: &typ}
	b.current.order = append(b.current.order, name)
	return nil
}

// LookupType searches the current scope and every enclosing scope for a
// nominal type declaration named name.
func (b *Builder) LookupType(name string) (types.Type, bool) {
	for s := b.current; s != nil; s = s.parent {
		if e, ok := s.symbols[name]; ok && e.kind == symType {
			return *e.typeDef, true
		}
	}
	return types.Type{}, false
}

// RegisterExternalHeader attaches the public-symbol image of an imported
// module under its dot-separated path (spec.md §6), consulted read-only by
// name resolution.
func (b *Builder) RegisterExternalHeader(modulePath string, header *Scope) {
	b.externalHeaders[modulePath] = header
}

// ExternalHeader returns the registered header for a module path, if any.
func (b *Builder) ExternalHeader(modulePath string) (*Scope, bool) {
	s, ok := b.externalHeaders[modulePath]
	return s, ok
}

// RegisterModuleAlias binds alias (conventionally a whole-module `use`
// import's last path segment) to modulePath, so later `alias.member`
// expressions resolve against that module's external header.
func (b *Builder) RegisterModuleAlias(alias, modulePath string) {
	b.moduleAliases[alias] = modulePath
}

// ModuleAlias returns the module path alias was bound to by RegisterModuleAlias.
func (b *Builder) ModuleAlias(alias string) (string, bool) {
	p, ok := b.moduleAliases[alias]
	return p, ok
}

// PublicSymbols returns the names declared directly in s, in declaration
// order — the shape serialized into an external header (spec.md §6).
func (s *Scope) PublicSymbols() []string {
	return append([]string{}, s.order...)
}

// NewHeaderScope creates a standalone Scope not nested in any Builder's
// tree, used to materialise an external module's public-symbol image when
// a serialized header is loaded (spec.md §6) — pkg/header populates one of
// these via DefineVariable/DefineFunction/DefineType and registers it with
// RegisterExternalHeader.
func NewHeaderScope(modulePath string) *Scope {
	return &Scope{ID: -1, ParentID: -1, Kind: KindModule, Name: modulePath, symbols: make(map[string]*entry)}
}

// DefineVariable adds a variable entry directly to s, bypassing the
// same-scope redeclaration check Builder.Insert applies — a loaded header
// is trusted input, not source under compilation.
func (s *Scope) DefineVariable(name string, typ types.Type) {
	s.symbols[name] = &entry{kind: symVariable, name: name, variable: &VariableRef{Name: name, Type: typ}}
	s.order = append(s.order, name)
}

// DefineFunction adds sig to s's overload set for its name, creating the set
// if this is the first overload.
func (s *Scope) DefineFunction(sig *FunctionSignature) {
	if e, exists := s.symbols[sig.Name]; exists && e.kind == symFunction {
		e.overloads = append(e.overloads, sig)
		return
	}
	s.symbols[sig.Name] = &entry{kind: symFunction, name: sig.Name, overloads: []*FunctionSignature{sig}}
	s.order = append(s.order, sig.Name)
}

// DefineType adds a nominal type entry directly to s.
func (s *Scope) DefineType(name string, typ types.Type) {
	s.symbols[name] = &entry{kind: symType, name: name, typeDef: &typ}
	s.order = append(s.order, name)
}

// LookupFunctionLocal looks up an overload set declared directly in s,
// without walking to a parent — headers are flat, single-level scopes.
func (s *Scope) LookupFunctionLocal(name string) ([]*FunctionSignature, bool) {
	if e, ok := s.symbols[name]; ok && e.kind == symFunction {
		return e.overloads, true
	}
	return nil, false
}

// LookupTypeLocal looks up a type declared directly in s.
func (s *Scope) LookupTypeLocal(name string) (types.Type, bool) {
	if e, ok := s.symbols[name]; ok && e.kind == symType {
		return *e.typeDef, true
	}
	return types.Type{}, false
}

// LookupVariableLocal looks up a variable declared directly in s.
func (s *Scope) LookupVariableLocal(name string) (*VariableRef, bool) {
	if e, ok := s.symbols[name]; ok && e.kind == symVariable {
		return e.variable, true
	}
	return nil, false
}
