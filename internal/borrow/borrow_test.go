package borrow

import "testing"

func TestDeclareOwnerRejectsRedeclarationWhileValid(t *testing.T) {
	g := NewGraph()
	if err := g.OpenScope(0); err != nil {
		t.Fatalf("OpenScope: %v", err)
	}
	if err := g.DeclareOwner(0, "a"); err != nil {
		t.Fatalf("first DeclareOwner: %v", err)
	}
	if err := g.DeclareOwner(0, "a"); err == nil {
		t.Fatal("expected error redeclaring a still-valid owner")
	}
}

func TestBorrowMutExclusivity(t *testing.T) {
	g := NewGraph()
	_ = g.OpenScope(0)
	_ = g.DeclareOwner(0, "a")

	if err := g.BorrowMut(0, "a", 0, "m1"); err != nil {
		t.Fatalf("first mut borrow: %v", err)
	}
	if err := g.BorrowMut(0, "a", 0, "m2"); err == nil {
		t.Fatal("expected second mutable borrow of the same owner to be rejected")
	}
}

func TestBorrowConstAllowsMultipleConstBorrows(t *testing.T) {
	g := NewGraph()
	_ = g.OpenScope(0)
	_ = g.DeclareOwner(0, "a")
	if err := g.BorrowConst(0, "a", 0, "c1"); err != nil {
		t.Fatalf("const borrow: %v", err)
	}
	if err := g.BorrowConst(0, "a", 0, "c2"); err != nil {
		t.Fatalf("second const borrow should be allowed: %v", err)
	}
}

func TestDropOwnerInvalidatesBorrowsAndResolveFails(t *testing.T) {
	g := NewGraph()
	_ = g.OpenScope(0)
	_ = g.DeclareOwner(0, "a")
	_ = g.BorrowConst(0, "a", 0, "c1")

	if err := g.DropOwner(0, "a"); err != nil {
		t.Fatalf("DropOwner: %v", err)
	}
	if _, err := g.resolveValid(0, "a"); err == nil {
		t.Fatal("expected dropped owner to be invalid")
	}
	if _, err := g.resolveValid(0, "c1"); err == nil {
		t.Fatal("expected a const-ref of a dropped owner to be invalidated too")
	}
}

func TestMoveOwnerTransfersValidityAndBlocksOldName(t *testing.T) {
	g := NewGraph()
	_ = g.OpenScope(0)
	_ = g.DeclareOwner(0, "a")
	_ = g.DeclareOwner(0, "b")

	if err := g.MoveOwner(0, "a", 0, "b"); err != nil {
		t.Fatalf("MoveOwner: %v", err)
	}
	if _, err := g.resolveValid(0, "a"); err == nil {
		t.Fatal("expected 'a' to be invalid (moved-from) after MoveOwner")
	}
	if _, err := g.resolveValid(0, "b"); err != nil {
		t.Fatalf("expected 'b' to remain valid after receiving the move: %v", err)
	}
}

func TestCloseScopeReturnsOwnersInDeclarationOrder(t *testing.T) {
	g := NewGraph()
	_ = g.OpenScope(0)
	_ = g.DeclareOwner(0, "a")
	_ = g.DeclareOwner(0, "b")
	_ = g.BorrowConst(0, "a", 0, "c1") // a borrow, not an owner: must not appear in the delete list

	dl, err := g.CloseScope(0)
	if err != nil {
		t.Fatalf("CloseScope: %v", err)
	}
	want := DeleteList{"a", "b"}
	if len(dl) != len(want) {
		t.Fatalf("delete list = %v, want %v", dl, want)
	}
	for i := range want {
		if dl[i] != want[i] {
			t.Fatalf("delete list = %v, want %v", dl, want)
		}
	}

	if _, err := g.scope(0); err == nil {
		t.Fatal("expected scope 0 to be gone after CloseScope")
	}
}
