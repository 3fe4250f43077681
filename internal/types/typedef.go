package types

import "fmt"

// TypedefTable resolves a chain of `type Alias = Other` declarations down
// to their underlying type, detecting cycles — spec.md §4.4's "typedef
// chain with cycle detection". One table is shared by a whole module, the
// same way the teacher's TypeSystem is a single registry consulted by
// every later pass.
type TypedefTable struct {
	defs map[string]Type
}

func NewTypedefTable() *TypedefTable {
	return &TypedefTable{defs: make(map[string]Type)}
}

// Define registers name as an alias for underlying. Redefining an existing
// name overwrites it; Define does not report duplicates.
func (t *TypedefTable) Define(name string, underlying Type) {
	t.defs[name] = underlying
}

// Resolve follows a chain of nominal-type aliases down to a non-alias
// type, returning an error if the chain reaches a name it has already
// visited (a cycle, since a non-cyclic chain visits each name at most
// once).
func (t *TypedefTable) Resolve(name string) (Type, error) {
	visited := make(map[string]struct{})
	cur := Nominal(name)
	for {
		if cur.Kind != KindNominal {
			return cur, nil
		}
		if _, seen := visited[cur.Nominal]; seen {
			return Type{}, fmt.Errorf("cyclic type alias involving %q", cur.Nominal)
		}
		visited[cur.Nominal] = struct{}{}

		next, ok := t.defs[cur.Nominal]
		if !ok {
			// Not an alias — a nominal type naming a struct/class/trait/
			// enum/union declaration rather than another typedef.
			return cur, nil
		}
		cur = next
	}
}
