package scope

import (
	"testing"

	"github.com/soullang/soulc/internal/soulnames"
	"github.com/soullang/soulc/internal/types"
)

func TestInsertDuplicateInSameScope(t *testing.T) {
	b := NewBuilder("proj")
	if _, err := b.Insert("x", types.Base(soulnames.Int)); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	if _, err := b.Insert("x", types.Base(soulnames.Int)); err == nil {
		t.Fatal("expected redeclaration error for a second 'x' in the same scope")
	}
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	b := NewBuilder("proj")
	if _, err := b.Insert("x", types.Base(soulnames.Int)); err != nil {
		t.Fatalf("outer insert: %v", err)
	}
	b.Push(KindBlock, "")
	if _, err := b.Insert("x", types.Base(soulnames.StringType)); err != nil {
		t.Fatalf("shadowing insert in inner scope should succeed: %v", err)
	}
	ref, ok := b.Lookup("x")
	if !ok {
		t.Fatal("expected to find 'x' from inner scope")
	}
	if ref.Type.Base != soulnames.StringType {
		t.Fatalf("inner 'x' should shadow outer: got base %v", ref.Type.Base)
	}
	b.Pop()
	ref, ok = b.Lookup("x")
	if !ok || ref.Type.Base != soulnames.Int {
		t.Fatal("expected outer 'x' to be visible again after Pop")
	}
}

func TestPopRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Pop on root scope to panic")
		}
	}()
	b := NewBuilder("proj")
	b.Pop()
}

func TestAddFunctionOverloadsAndConflicts(t *testing.T) {
	b := NewBuilder("proj")
	sig1 := &FunctionSignature{Name: "f", ParamTypes: []types.Type{types.Base(soulnames.Int)}, ReturnType: types.Base(soulnames.Boolean)}
	sig2 := &FunctionSignature{Name: "f", ParamTypes: []types.Type{types.Base(soulnames.StringType)}, ReturnType: types.Base(soulnames.Boolean)}
	if err := b.AddFunction(sig1); err != nil {
		t.Fatalf("first overload: %v", err)
	}
	if err := b.AddFunction(sig2); err != nil {
		t.Fatalf("second overload with distinct params: %v", err)
	}
	overloads, ok := b.LookupFunction("f")
	if !ok || len(overloads) != 2 {
		t.Fatalf("expected 2 overloads of 'f', got %d (ok=%v)", len(overloads), ok)
	}

	dup := &FunctionSignature{Name: "f", ParamTypes: []types.Type{types.Base(soulnames.Int)}, ReturnType: types.Base(soulnames.Boolean)}
	if err := b.AddFunction(dup); err == nil {
		t.Fatal("expected error redeclaring the same overload identity")
	}

	distinctParams := &FunctionSignature{Name: "f", ParamTypes: []types.Type{types.Base(soulnames.Float64)}, ReturnType: types.Base(soulnames.StringType)}
	if err := b.AddFunction(distinctParams); err == nil {
		t.Fatal("an overload with the same this-type and a different return type must be rejected")
	}
}

func TestModuleAliasAndExternalHeader(t *testing.T) {
	b := NewBuilder("proj")
	b.RegisterModuleAlias("fmt", "std.fmt")
	path, ok := b.ModuleAlias("fmt")
	if !ok || path != "std.fmt" {
		t.Fatalf("ModuleAlias round trip failed: %q, %v", path, ok)
	}

	header := NewHeaderScope("std.fmt")
	header.DefineFunction(&FunctionSignature{
		Name:       "Println",
		ParamTypes: []types.Type{types.Base(soulnames.StringType)},
		ReturnType: types.Base(soulnames.None),
	})
	b.RegisterExternalHeader("std.fmt", header)

	got, ok := b.ExternalHeader("std.fmt")
	if !ok || got != header {
		t.Fatal("expected to retrieve the exact registered header scope")
	}
	sigs, ok := got.LookupFunctionLocal("Println")
	if !ok || len(sigs) != 1 {
		t.Fatal("expected Println to be defined in the loaded header")
	}
}

func TestPublicSymbolsPreservesDeclarationOrder(t *testing.T) {
	h := NewHeaderScope("std.fmt")
	h.DefineVariable("b", types.Base(soulnames.Int))
	h.DefineFunction(&FunctionSignature{Name: "a"})
	h.DefineType("c", types.Base(soulnames.Int))

	got := h.PublicSymbols()
	want := []string{"b", "a", "c"}
	if len(got) != len(want) {
		t.Fatalf("PublicSymbols length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PublicSymbols()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
