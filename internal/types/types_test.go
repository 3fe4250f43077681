package types

import (
	"testing"

	"github.com/soullang/soulc/internal/soulnames"
)

func TestDecay(t *testing.T) {
	cases := []struct {
		name string
		in   Type
		want soulnames.InternalType
	}{
		{"untyped int", Base(soulnames.UntypedInt), soulnames.Int},
		{"untyped uint", Base(soulnames.UntypedUint), soulnames.Uint},
		{"untyped float", Base(soulnames.UntypedFloat), soulnames.Float32},
		{"already typed", Base(soulnames.Int), soulnames.Int},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := c.in.Decay()
			if got.Base != c.want {
				t.Fatalf("Decay() = %v, want base %v", got, c.want)
			}
		})
	}
}

func TestConvertibleToUntypedLiteral(t *testing.T) {
	if !ConvertibleTo(Base(soulnames.UntypedInt), Base(soulnames.Int64)) {
		t.Fatal("untyped int literal should convert to any sized int")
	}
	if !ConvertibleTo(Base(soulnames.UntypedInt), Base(soulnames.Float32)) {
		t.Fatal("untyped int literal should convert to any numeric type, including float")
	}
	if !ConvertibleTo(Base(soulnames.UntypedInt), Base(soulnames.Uint32)) {
		t.Fatal("untyped int literal should convert to any numeric type, including unsigned")
	}
	if ConvertibleTo(Base(soulnames.UntypedUint), Base(soulnames.Float32)) {
		t.Fatal("untyped uint literal should not convert across numeric families")
	}
	if ConvertibleTo(Base(soulnames.UntypedFloat), Base(soulnames.Int)) {
		t.Fatal("untyped float literal should not convert to an integer kind")
	}
}

func TestConvertibleToMutRefNarrowing(t *testing.T) {
	mutRef := Base(soulnames.Int).WithWrapper(Wrapper{Kind: soulnames.WrapperMutRef})
	constRef := Base(soulnames.Int).WithWrapper(Wrapper{Kind: soulnames.WrapperConstRef})

	if !ConvertibleTo(mutRef, constRef) {
		t.Fatal("a MutRef must narrow to a ConstRef of the same pointee")
	}
	if ConvertibleTo(constRef, mutRef) {
		t.Fatal("a ConstRef must not widen to a MutRef")
	}
}

func TestEqualIgnoresLifetime(t *testing.T) {
	a := Base(soulnames.Int).WithWrapper(Wrapper{Kind: soulnames.WrapperConstRef, Lifetime: "a"})
	b := Base(soulnames.Int).WithWrapper(Wrapper{Kind: soulnames.WrapperConstRef, Lifetime: "b"})
	if !a.Equal(b) {
		t.Fatal("Equal must ignore lifetime annotations per spec's Open Question decision")
	}
}

func TestStringRendersModifiersAndWrappers(t *testing.T) {
	typ := Base(soulnames.Int).WithModifier(ModConst).WithWrapper(Wrapper{Kind: soulnames.WrapperConstRef})
	s := typ.String()
	if s == "" {
		t.Fatal("String() must not be empty")
	}
}
