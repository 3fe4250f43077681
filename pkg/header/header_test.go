package header

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/soullang/soulc/internal/scope"
	"github.com/soullang/soulc/internal/soulnames"
	"github.com/soullang/soulc/internal/types"
)

func buildSampleScope() *scope.Scope {
	s := scope.NewHeaderScope("std.fmt")
	s.DefineVariable("version", types.Base(soulnames.Int))
	s.DefineFunction(&scope.FunctionSignature{
		Name:       "Println",
		ParamTypes: []types.Type{types.Base(soulnames.StringType)},
		ReturnType: types.Base(soulnames.None),
	})
	s.DefineFunction(&scope.FunctionSignature{
		Name:       "Println",
		ParamTypes: []types.Type{types.Base(soulnames.Int)},
		ReturnType: types.Base(soulnames.None),
	})
	s.DefineType("Writer", types.Nominal("Writer"))
	return s
}

func TestFromScopePreservesOverloadsAndOrder(t *testing.T) {
	img := FromScope("std.fmt", buildSampleScope())
	require.Equal(t, "std.fmt", img.ModulePath)
	require.Len(t, img.Variables, 1)
	require.Len(t, img.Functions, 2, "both Println overloads must survive serialization")
	require.Len(t, img.Types, 1)
	require.Equal(t, "int", img.Variables[0].Type)
	require.Equal(t, "Writer", img.Types[0].Name)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fmt.soulheader")

	original := buildSampleScope()
	require.NoError(t, Save(path, "std.fmt", original))

	loaded, modulePath, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "std.fmt", modulePath)

	ref, ok := loaded.LookupVariableLocal("version")
	require.True(t, ok)
	require.True(t, ref.Type.Equal(types.Base(soulnames.Int)))

	sigs, ok := loaded.LookupFunctionLocal("Println")
	require.True(t, ok)
	require.Len(t, sigs, 2)

	typ, ok := loaded.LookupTypeLocal("Writer")
	require.True(t, ok)
	require.Equal(t, "Writer", typ.Nominal)

	roundTripped := FromScope("std.fmt", loaded)
	original_ := FromScope("std.fmt", original)
	if diff := cmp.Diff(original_, roundTripped); diff != "" {
		t.Fatalf("round-tripped image differs from the original (-want +got):\n%s", diff)
	}
}

func TestToSignatureDefaultsEmptyReturnTypeToNone(t *testing.T) {
	fi := FunctionImage{Name: "f"}
	sig, err := fi.toSignature()
	require.NoError(t, err)
	require.True(t, sig.ReturnType.Equal(types.Base(soulnames.None)),
		"an empty serialized return type must decode to the None sentinel, not the zero Type value")
}

func TestSaveStampsUnitID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fmt.soulheader")
	require.NoError(t, Save(path, "std.fmt", buildSampleScope()))

	img, err := LoadImage(path)
	require.NoError(t, err)
	require.NotEmpty(t, img.UnitID, "Save must stamp a fresh UnitID for cache keying")

	// Saving again produces a distinct UnitID, as a renamed-and-recompiled
	// module's header should not collide with a stale cache entry.
	require.NoError(t, Save(path, "std.fmt", buildSampleScope()))
	img2, err := LoadImage(path)
	require.NoError(t, err)
	require.NotEqual(t, img.UnitID, img2.UnitID)
}

func TestLoadRejectsInvalidTypeString(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.soulheader")
	raw := "module_path: std.bad\nvariables:\n  - name: x\n    type: \"!!!\"\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, _, err := Load(path)
	require.Error(t, err)
}
