// Package types implements C4, the type model described in spec.md §4.4: a
// base kind (a primitive InternalType or a nominal user type), a stack of
// reference wrappers applied outermost-in, and a modifier bitset. It is
// built fresh — the teacher's DWScript type system (internal/interp's
// RTTI-id registry with a BFS conversion-path search over a class/interface
// lattice) has no equivalent to adapt, since Soul has no inheritance
// lattice to search; what's kept from the teacher's design is the general
// idea of a central registry that both the scope builder and the semantic
// passes consult by name, plus cycle detection for typedef chains.
package types

import (
	"strings"

	"github.com/soullang/soulc/internal/soulnames"
)

// Wrapper is one entry in a Type's wrapper stack: ConstRef/MutRef/Pointer
// carry an optional lifetime name, which String prints and Equal and
// ConvertibleTo ignore; Array has none. The parser does not read lifetime
// annotations, so Lifetime is only set by code that builds a Wrapper
// directly.
type Wrapper struct {
	Kind     soulnames.TypeWrapper
	Lifetime string // "" if absent
}

func (w Wrapper) String() string {
	s := soulnames.Wrapper(w.Kind)
	if w.Lifetime != "" && w.Kind != soulnames.WrapperArray {
		s += "'" + w.Lifetime
	}
	return s
}

// Modifier is a bitset over the four type modifiers; Const and Literal are
// mutually exclusive per spec.md §4.4.
type Modifier uint8

const (
	ModLiteral Modifier = 1 << iota
	ModConst
	ModVolatile
	ModStatic
)

func (m Modifier) Has(bit Modifier) bool { return m&bit != 0 }

// Kind distinguishes a primitive base type from a nominal (user-declared)
// one. Nominal types are resolved to a declaration by name through the
// scope the type was parsed in; this package only stores the name.
type Kind int

const (
	KindBase Kind = iota
	KindNominal
)

// Type is spec.md §4.4's Type tuple: base kind, wrapper stack (a ref may
// only be the outermost wrapper; parseType reports any wrapper written
// after a ref), and the modifier bitset.
type Type struct {
	Kind     Kind
	Base     soulnames.InternalType // valid when Kind == KindBase
	Nominal  string                 // valid when Kind == KindNominal
	Wrappers []Wrapper              // innermost first; the last entry is the outermost
	Modifier Modifier
}

// Base constructs an unwrapped, unmodified primitive type.
func Base(t soulnames.InternalType) Type { return Type{Kind: KindBase, Base: t} }

// Nominal constructs an unwrapped, unmodified user type reference.
func Nominal(name string) Type { return Type{Kind: KindNominal, Nominal: name} }

// WithWrapper returns a copy of t with w pushed as the new outermost
// wrapper.
func (t Type) WithWrapper(w Wrapper) Type {
	out := t
	out.Wrappers = append(append([]Wrapper{}, t.Wrappers...), w)
	return out
}

// WithModifier returns a copy of t with m set in the modifier bitset.
func (t Type) WithModifier(m Modifier) Type {
	out := t
	out.Modifier |= m
	return out
}

// IsRef reports whether t's outermost wrapper is ConstRef or MutRef.
func (t Type) IsRef() bool {
	if len(t.Wrappers) == 0 {
		return false
	}
	outer := t.Wrappers[len(t.Wrappers)-1].Kind
	return outer == soulnames.WrapperConstRef || outer == soulnames.WrapperMutRef
}

// IsMutRef reports whether t's outermost wrapper is MutRef specifically.
func (t Type) IsMutRef() bool {
	return len(t.Wrappers) > 0 && t.Wrappers[len(t.Wrappers)-1].Kind == soulnames.WrapperMutRef
}

// Unwrapped returns t with its outermost wrapper removed, and false if
// there were no wrappers to remove.
func (t Type) Unwrapped() (Type, bool) {
	if len(t.Wrappers) == 0 {
		return t, false
	}
	out := t
	out.Wrappers = t.Wrappers[:len(t.Wrappers)-1]
	return out, true
}

// IsUntyped reports whether t's base kind is one of the three untyped
// numeric literal kinds (spec.md §4.12's decay source types).
func (t Type) IsUntyped() bool {
	return t.Kind == KindBase && (t.Base == soulnames.UntypedInt ||
		t.Base == soulnames.UntypedUint || t.Base == soulnames.UntypedFloat)
}

// Decay returns the default sized type an untyped literal type decays to
// on first assignment (spec.md §8.5's "let x := 1 decays to the default
// system int, not untyped"), or t unchanged if it isn't untyped.
func (t Type) Decay() Type {
	if !t.IsUntyped() {
		return t
	}
	switch t.Base {
	case soulnames.UntypedInt:
		return Type{Kind: KindBase, Base: soulnames.Int, Wrappers: t.Wrappers, Modifier: t.Modifier}
	case soulnames.UntypedUint:
		return Type{Kind: KindBase, Base: soulnames.Uint, Wrappers: t.Wrappers, Modifier: t.Modifier}
	case soulnames.UntypedFloat:
		return Type{Kind: KindBase, Base: soulnames.Float32, Wrappers: t.Wrappers, Modifier: t.Modifier}
	}
	return t
}

// Equal compares two types structurally (kind, base or nominal name,
// wrapper kinds), ignoring lifetime annotations (spec.md §11 Open
// Question: lifetimes never participate in type rules) and modifiers.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind || t.Base != o.Base || t.Nominal != o.Nominal {
		return false
	}
	if len(t.Wrappers) != len(o.Wrappers) {
		return false
	}
	for i := range t.Wrappers {
		if t.Wrappers[i].Kind != o.Wrappers[i].Kind {
			return false
		}
	}
	return true
}

// String renders a Type the way source spells it and parseType reads it:
// the modifier keywords, then the base/nominal name, then the wrappers as
// a suffix, innermost first.
func (t Type) String() string {
	var sb strings.Builder
	if t.Modifier.Has(ModConst) {
		sb.WriteString(soulnames.Modifier(soulnames.ModifierConst) + " ")
	}
	if t.Modifier.Has(ModLiteral) {
		sb.WriteString(soulnames.Modifier(soulnames.ModifierLiteral) + " ")
	}
	if t.Modifier.Has(ModVolatile) {
		sb.WriteString(soulnames.Modifier(soulnames.ModifierVolatile) + " ")
	}
	if t.Modifier.Has(ModStatic) {
		sb.WriteString(soulnames.Modifier(soulnames.ModifierStatic) + " ")
	}
	if t.Kind == KindBase {
		sb.WriteString(soulnames.Internal(t.Base))
	} else {
		sb.WriteString(t.Nominal)
	}
	for _, w := range t.Wrappers {
		sb.WriteString(w.String())
	}
	return sb.String()
}

// numericRank returns the index of t's base kind in soulnames.NumericOrder,
// or -1 if t isn't a numeric base type. ConvertibleTo only tests it for
// >= 0, that is, whether a type is numeric at all.
func numericRank(t Type) int {
	if t.Kind != KindBase {
		return -1
	}
	for i, k := range soulnames.NumericOrder {
		if k == t.Base {
			return i
		}
	}
	return -1
}

// ConvertibleTo reports whether a value of type from may convert to type to
// without an explicit cast, per spec.md §4.4's conversion rules: an untyped
// int literal converts to any numeric type, an untyped uint or float
// literal only to a type of its own family; a MutRef narrows to a
// ConstRef of the same pointee (the one wrapper-changing exception); two
// otherwise-identical types convert when modifiers only relax (dropping
// Const/Literal is fine, adding them on an assignment target is fine).
func ConvertibleTo(from, to Type) bool {
	if from.Equal(to) {
		return true
	}

	if from.IsUntyped() && to.Kind == KindBase {
		decayed := from.Decay()
		if decayed.Base == to.Base {
			return true
		}
		// Untyped integer converts to any numeric kind; untyped unsigned
		// and untyped float stay restricted to their own family
		// (spec.md §4.4).
		if from.Base == soulnames.UntypedInt {
			return numericRank(Type{Kind: KindBase, Base: to.Base}) >= 0
		}
		return sameNumericFamily(decayed.Base, to.Base) && numericRank(Type{Kind: KindBase, Base: to.Base}) >= 0
	}

	// MutRef -> ConstRef narrowing of the same pointee is the only
	// wrapper-changing exception C4 allows.
	if from.IsMutRef() {
		pointee, _ := from.Unwrapped()
		if to.IsRef() && !to.IsMutRef() {
			toPointee, _ := to.Unwrapped()
			if pointee.Equal(toPointee) {
				return true
			}
		}
	}

	return false
}

func sameNumericFamily(a, b soulnames.InternalType) bool {
	af, bf := familyOf(a), familyOf(b)
	return af != 0 && af == bf
}

type family int

const (
	famNone family = iota
	famInt
	famUint
	famFloat
)

func familyOf(t soulnames.InternalType) family {
	switch t {
	case soulnames.UntypedInt, soulnames.Int, soulnames.Int8, soulnames.Int16, soulnames.Int32, soulnames.Int64:
		return famInt
	case soulnames.UntypedUint, soulnames.Uint, soulnames.Uint8, soulnames.Uint16, soulnames.Uint32, soulnames.Uint64:
		return famUint
	case soulnames.UntypedFloat, soulnames.Float32, soulnames.Float64:
		return famFloat
	default:
		return famNone
	}
}
