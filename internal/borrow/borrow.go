// Package borrow implements C10, the borrow checker described in spec.md
// §4.10: declare_owner/borrow_const/borrow_mut/move_owner/drop_owner paired
// with open_scope/close_scope, enforcing single-mut-ref exclusivity and
// returning, on scope close, the list of owners that must be dropped.
//
// This package has no teacher (DWScript) equivalent to adapt — DWScript is
// garbage collected — so it is translated directly from the reference
// compiler's own borrow checker at
// _examples/original_source/src/meta_data/borrow_checker/borrow_checker.rs,
// re-expressed in the teacher's idiom: explicit error returns instead of
// Result<T, String>, a VarId handle type instead of a Rust newtype, and a
// Graph aggregate playing the role of the Rust BorrowVarStore.
package borrow

import "fmt"

// VarId is an opaque handle into the checker's variable table, the
// equivalent of the reference implementation's VarId.
type VarId int

// ScopeID identifies one borrow-checker scope, paired one-to-one with a
// scope.Scope ID opened by C5 (spec.md §5: "block entry opens scope in
// both the scope builder and the borrow checker").
type ScopeID int

// DeleteList is the set of owner names close_scope reports as needing
// cleanup — spec.md §8's scenario S5 asserts a specific ordering here.
type DeleteList []string

type borrowVar struct {
	name    string
	valid   bool
	parent  *VarId
	mutRef  *VarId
	refs    map[string]VarId // name -> const-ref VarId, spec.md §3's BorrowGraph "const-ref map"
}

// borrowScope is a scope's name->VarId map plus the declaration order
// names were added in — CloseScope's delete list must come back in
// declaration order (spec.md §8 scenario S5: "[a, b] in declaration
// order"), which a plain Go map can't give us.
type borrowScope struct {
	ids   map[string]VarId
	order []string
}

// Graph is spec.md §3's BorrowGraph: a per-scope name->VarId map plus, per
// VarId, the name/valid/parent/mut_ref/const-ref-map bookkeeping the
// reference implementation's BorrowVarStore keeps.
type Graph struct {
	vars      map[VarId]*borrowVar
	scopes    map[ScopeID]*borrowScope
	nextVarID VarId
}

func NewGraph() *Graph {
	return &Graph{
		vars:   make(map[VarId]*borrowVar),
		scopes: make(map[ScopeID]*borrowScope),
	}
}

func (g *Graph) scope(id ScopeID) (*borrowScope, error) {
	s, ok := g.scopes[id]
	if !ok {
		return nil, fmt.Errorf("internal error: could not find borrow scope %d", id)
	}
	return s, nil
}

func (g *Graph) addVariable(scopeID ScopeID, name string, parent *VarId) (VarId, error) {
	s, err := g.scope(scopeID)
	if err != nil {
		return 0, err
	}
	id := g.nextVarID
	g.nextVarID++
	g.vars[id] = &borrowVar{name: name, valid: true, parent: parent, refs: make(map[string]VarId)}
	if _, exists := s.ids[name]; !exists {
		s.order = append(s.order, name)
	}
	s.ids[name] = id
	return id, nil
}

// OpenScope registers a fresh, empty borrow scope — paired with the scope
// builder's Push (spec.md §5).
func (g *Graph) OpenScope(id ScopeID) error {
	if _, exists := g.scopes[id]; exists {
		return fmt.Errorf("internal error: borrow scope %d already open", id)
	}
	g.scopes[id] = &borrowScope{ids: make(map[string]VarId)}
	return nil
}

// DeclareOwner registers a new owning variable named name in scopeID.
// Redeclaring a still-valid name in the same scope is an invariant
// violation (spec.md §4.10).
func (g *Graph) DeclareOwner(scopeID ScopeID, name string) error {
	s, err := g.scope(scopeID)
	if err != nil {
		return err
	}
	if existingID, ok := s.ids[name]; ok {
		if g.vars[existingID].valid {
			return fmt.Errorf("scope %d already has a borrow-checked variable '%s'", scopeID, name)
		}
	}
	_, err = g.addVariable(scopeID, name, nil)
	return err
}

func (g *Graph) resolveValid(scopeID ScopeID, name string) (VarId, error) {
	s, err := g.scope(scopeID)
	if err != nil {
		return 0, err
	}
	id, ok := s.ids[name]
	if !ok {
		return 0, fmt.Errorf("variable '%s' is not found", name)
	}
	if !g.vars[id].valid {
		return 0, fmt.Errorf("variable '%s' is not valid", name)
	}
	return id, nil
}

// BorrowConst creates an immutable (const) borrow named borrowName in
// borrowScope against the still-valid owner parentName in parentScope.
func (g *Graph) BorrowConst(parentScope ScopeID, parentName string, borrowScope ScopeID, borrowName string) error {
	parentID, err := g.resolveValid(parentScope, parentName)
	if err != nil {
		return fmt.Errorf("in owner '%s' constref to '%s': %w", parentName, borrowName, err)
	}
	if _, err := g.scope(borrowScope); err != nil {
		return err
	}
	borrowID, err := g.addVariable(borrowScope, borrowName, &parentID)
	if err != nil {
		return err
	}
	g.vars[parentID].refs[borrowName] = borrowID
	return nil
}

// BorrowMut creates a mutable borrow named borrowName against parentName,
// rejecting the request outright if parentName already has an outstanding
// mutable borrow — spec.md §4.10's mut-ref exclusivity invariant.
func (g *Graph) BorrowMut(parentScope ScopeID, parentName string, borrowScope ScopeID, borrowName string) error {
	parentID, err := g.resolveValid(parentScope, parentName)
	if err != nil {
		return fmt.Errorf("in owner '%s' mutref to '%s': %w", parentName, borrowName, err)
	}
	if g.vars[parentID].mutRef != nil {
		return fmt.Errorf("in owner '%s' mutref to '%s': '%s' already has a mutable reference", parentName, borrowName, parentName)
	}
	if _, err := g.scope(borrowScope); err != nil {
		return err
	}
	borrowID, err := g.addVariable(borrowScope, borrowName, &parentID)
	if err != nil {
		return err
	}
	g.vars[parentID].mutRef = &borrowID
	return nil
}

// MoveOwner transfers validity, refs and mut-ref from oldName to newName —
// "no borrow-after-move" is enforced because invalidateOwner marks oldName
// permanently invalid and any future resolveValid against it fails.
func (g *Graph) MoveOwner(oldScope ScopeID, oldName string, newScope ScopeID, newName string) error {
	newID, err := g.resolveValid(newScope, newName)
	if err != nil {
		return fmt.Errorf("in owner '%s' move to '%s': %w", oldName, newName, err)
	}
	oldID, err := g.resolveValid(oldScope, oldName)
	if err != nil {
		return fmt.Errorf("in owner '%s' move to '%s': %w", oldName, newName, err)
	}

	valid, refs, mutRef := g.invalidateOwner(oldID)

	newVar := g.vars[newID]
	newVar.valid = valid
	newVar.refs = refs
	newVar.mutRef = mutRef
	return nil
}

// DropOwner invalidates owner and everything that borrows from it —
// "no use-after-drop" (spec.md §4.10).
func (g *Graph) DropOwner(scopeID ScopeID, name string) error {
	id, err := g.resolveValid(scopeID, name)
	if err != nil {
		return fmt.Errorf("in drop of '%s': %w", name, err)
	}
	g.invalidateOwner(id)
	return nil
}

// CloseScope tears down scopeID, invalidating every variable it declared
// and returning the names of owners that must be cleaned up — spec.md §5's
// "per-scope drop lists", consulted the same moment C5 pops the matching
// lexical Scope.
func (g *Graph) CloseScope(scopeID ScopeID) (DeleteList, error) {
	s, err := g.scope(scopeID)
	if err != nil {
		return nil, err
	}
	delete(g.scopes, scopeID)

	var deleteList DeleteList
	for _, name := range s.order {
		id := s.ids[name]
		v := g.vars[id]
		parent := v.parent
		valid, _, _ := g.invalidateOwner(id)
		if parent == nil && valid {
			deleteList = append(deleteList, name)
		}
		delete(g.vars, id)
	}
	return deleteList, nil
}

// invalidateOwner marks ownerID invalid, detaches it from its parent (if
// any), and cascades invalidation to every const-ref and the mut-ref it
// held — mirroring the reference implementation's invalidate_owner.
func (g *Graph) invalidateOwner(ownerID VarId) (bool, map[string]VarId, *VarId) {
	owner := g.vars[ownerID]
	valid := owner.valid
	owner.valid = false
	refs := owner.refs
	owner.refs = make(map[string]VarId)
	mutRef := owner.mutRef
	parent := owner.parent

	if parent != nil {
		g.detachChild(*parent, ownerID)
	}
	for _, refID := range refs {
		g.vars[refID].valid = false
	}
	if mutRef != nil {
		g.vars[*mutRef].valid = false
	}
	return valid, refs, mutRef
}

func (g *Graph) detachChild(parentID, childID VarId) {
	parent, ok := g.vars[parentID]
	if !ok {
		return
	}
	childName := ""
	if child, ok := g.vars[childID]; ok {
		childName = child.name
	}
	if parent.mutRef != nil && *parent.mutRef == childID {
		parent.mutRef = nil
		return
	}
	delete(parent.refs, childName)
}
