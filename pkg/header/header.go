// Package header implements spec.md §6's external-header mechanism: the
// serialized public-symbol image a compiled module exposes so a later
// `use` import can type-check against it without recompiling the
// importee. An Image is a flat, YAML-encoded list of the module's
// top-level variables, functions and type names; Load builds the
// in-memory scope.Scope C11/C12 consult (scope.NewHeaderScope) and Save
// writes one out to disk.
//
// Grounded on the teacher's internal/project config loading, which reads
// project metadata off disk with goccy/go-yaml rather than hand-rolling a
// decoder; Soul's header format borrows that same library for the same
// reason (spec.md §0.2 names goccy/go-yaml as the pack's serialization
// library of choice).
package header

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/google/uuid"

	"github.com/soullang/soulc/internal/parser"
	"github.com/soullang/soulc/internal/scope"
	"github.com/soullang/soulc/internal/soulnames"
	"github.com/soullang/soulc/internal/types"
)

// Image is the on-disk shape of one module's external header. UnitID is a
// stable synthetic identifier for the compilation unit the header was
// produced from, stamped fresh by every Save; a driver caching several
// modules' headers can key its cache on this rather than on the (mutable,
// reusable) module path. No code in this repository reads it besides
// LoadImage.
type Image struct {
	ModulePath string          `yaml:"module_path"`
	UnitID     string          `yaml:"unit_id"`
	Variables  []VariableImage `yaml:"variables,omitempty"`
	Functions  []FunctionImage `yaml:"functions,omitempty"`
	Types      []TypeImage     `yaml:"types,omitempty"`
}

// VariableImage is one top-level variable binding's public shape.
type VariableImage struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// FunctionImage is one overload of a top-level function.
type FunctionImage struct {
	Name       string   `yaml:"name"`
	ThisType   string   `yaml:"this_type,omitempty"`
	Generics   []string `yaml:"generics,omitempty"`
	ParamNames []string `yaml:"param_names,omitempty"`
	ParamTypes []string `yaml:"param_types,omitempty"`
	ReturnType string   `yaml:"return_type"`
}

// TypeImage is one top-level struct/class/trait/enum/union/type-enum name,
// recorded as the nominal type it introduces.
type TypeImage struct {
	Name string `yaml:"name"`
}

// LoadImage reads and decodes the header file at path without building a
// scope.Scope, so a caller can read UnitID and the symbol lists alone.
func LoadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("header: reading %s: %w", path, err)
	}
	var img Image
	if err := yaml.Unmarshal(data, &img); err != nil {
		return Image{}, fmt.Errorf("header: decoding %s: %w", path, err)
	}
	return img, nil
}

// Load reads the header file at path and builds the scope.Scope C11/C12
// consult through Builder.ExternalHeader, keyed under the image's own
// ModulePath.
func Load(path string) (*scope.Scope, string, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, "", err
	}
	s, err := img.toScope()
	if err != nil {
		return nil, "", fmt.Errorf("header: %s: %w", path, err)
	}
	return s, img.ModulePath, nil
}

// Save encodes an Image built from the given scope's public symbols,
// stamps it with a fresh UnitID, and writes it to path — the counterpart a
// build driver calls once a module compiles clean and other modules may
// want to `use` it.
func Save(path string, modulePath string, s *scope.Scope) error {
	img := FromScope(modulePath, s)
	img.UnitID = uuid.New().String()
	data, err := yaml.Marshal(img)
	if err != nil {
		return fmt.Errorf("header: encoding %s: %w", modulePath, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("header: writing %s: %w", path, err)
	}
	return nil
}

// FromScope walks s's public symbols (scope.Scope.PublicSymbols, in
// declaration order) and builds the Image that reproduces them.
func FromScope(modulePath string, s *scope.Scope) Image {
	img := Image{ModulePath: modulePath}
	for _, name := range s.PublicSymbols() {
		if ref, ok := s.LookupVariableLocal(name); ok {
			img.Variables = append(img.Variables, VariableImage{Name: name, Type: ref.Type.String()})
			continue
		}
		if sigs, ok := s.LookupFunctionLocal(name); ok {
			for _, sig := range sigs {
				img.Functions = append(img.Functions, functionImage(sig))
			}
			continue
		}
		if typ, ok := s.LookupTypeLocal(name); ok {
			_ = typ
			img.Types = append(img.Types, TypeImage{Name: name})
		}
	}
	return img
}

func functionImage(sig *scope.FunctionSignature) FunctionImage {
	fi := FunctionImage{
		Name:       sig.Name,
		Generics:   sig.Generics,
		ParamNames: sig.ParamNames,
		ReturnType: sig.ReturnType.String(),
	}
	if sig.ThisType != nil {
		fi.ThisType = sig.ThisType.String()
	}
	for _, t := range sig.ParamTypes {
		fi.ParamTypes = append(fi.ParamTypes, t.String())
	}
	return fi
}

// toScope materializes img into a standalone scope.Scope via
// scope.NewHeaderScope, parsing every serialized type string back into a
// types.Type with parser.ParseTypeString.
func (img Image) toScope() (*scope.Scope, error) {
	s := scope.NewHeaderScope(img.ModulePath)
	for _, t := range img.Types {
		s.DefineType(t.Name, types.Nominal(t.Name))
	}
	for _, v := range img.Variables {
		t, err := parser.ParseTypeString(v.Type)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", v.Name, err)
		}
		s.DefineVariable(v.Name, t)
	}
	for _, f := range img.Functions {
		sig, err := f.toSignature()
		if err != nil {
			return nil, fmt.Errorf("function %q: %w", f.Name, err)
		}
		s.DefineFunction(sig)
	}
	return s, nil
}

func (f FunctionImage) toSignature() (*scope.FunctionSignature, error) {
	sig := &scope.FunctionSignature{
		Name:       f.Name,
		Generics:   f.Generics,
		ParamNames: f.ParamNames,
	}
	if f.ThisType != "" {
		t, err := parser.ParseTypeString(f.ThisType)
		if err != nil {
			return nil, err
		}
		sig.ThisType = &t
	}
	for _, pt := range f.ParamTypes {
		t, err := parser.ParseTypeString(pt)
		if err != nil {
			return nil, err
		}
		sig.ParamTypes = append(sig.ParamTypes, t)
	}
	if f.ReturnType != "" {
		t, err := parser.ParseTypeString(f.ReturnType)
		if err != nil {
			return nil, err
		}
		sig.ReturnType = t
	} else {
		sig.ReturnType = types.Base(soulnames.None)
	}
	return sig, nil
}
