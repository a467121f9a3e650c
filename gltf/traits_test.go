package gltf

import (
	"errors"
	"reflect"
	"testing"
)

type triplet struct {
	X, Y, Z float32
}

func TestRegisterElementVector(t *testing.T) {
	if err := RegisterElement[triplet](AccessorVec3, ComponentFloat); err != nil {
		t.Fatalf("RegisterElement failed: %v", err)
	}

	tr, err := traitsFor[triplet]()
	if err != nil {
		t.Fatalf("traitsFor failed: %v", err)
	}
	if tr.arity != 3 {
		t.Errorf("expected arity 3, got %d", tr.arity)
	}
	if !tr.flat {
		t.Error("expected contiguous float32 struct to be flat")
	}
	if !reflect.DeepEqual(tr.offsets, []uintptr{0, 4, 8}) {
		t.Errorf("unexpected component offsets: %v", tr.offsets)
	}
}

func TestRegisterElementArray(t *testing.T) {
	if err := RegisterElement[[4][4]float32](AccessorMat4, ComponentFloat); err != nil {
		t.Fatalf("RegisterElement failed: %v", err)
	}
	tr, err := traitsFor[[4][4]float32]()
	if err != nil {
		t.Fatalf("traitsFor failed: %v", err)
	}
	if tr.arity != 16 || !tr.flat {
		t.Errorf("expected flat 16-component traits, got arity %d flat %v", tr.arity, tr.flat)
	}
}

func TestRegisterElementErrors(t *testing.T) {
	tests := []struct {
		name string
		reg  func() error
	}{
		{"arity mismatch", func() error { return RegisterElement[triplet](AccessorVec2, ComponentFloat) }},
		{"component kind mismatch", func() error { return RegisterElement[triplet](AccessorVec3, ComponentDouble) }},
		{"invalid accessor type", func() error { return RegisterElement[float32](AccessorInvalid, ComponentFloat) }},
		{"invalid component type", func() error { return RegisterElement[float32](AccessorScalar, ComponentInvalid) }},
		{"unsupported structure", func() error { return RegisterElement[string](AccessorScalar, ComponentFloat) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.reg(); err == nil {
				t.Error("expected registration error")
			}
		})
	}
}

func TestBuiltinScalars(t *testing.T) {
	tests := []struct {
		name  string
		check func() error
	}{
		{"int8", func() error { _, err := traitsFor[int8](); return err }},
		{"uint8", func() error { _, err := traitsFor[uint8](); return err }},
		{"int16", func() error { _, err := traitsFor[int16](); return err }},
		{"uint16", func() error { _, err := traitsFor[uint16](); return err }},
		{"int32", func() error { _, err := traitsFor[int32](); return err }},
		{"uint32", func() error { _, err := traitsFor[uint32](); return err }},
		{"float32", func() error { _, err := traitsFor[float32](); return err }},
		{"float64", func() error { _, err := traitsFor[float64](); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.check(); err != nil {
				t.Errorf("builtin not registered: %v", err)
			}
		})
	}
}

func TestTraitsForUnregistered(t *testing.T) {
	type unknown struct{ A, B int64 }
	_, err := traitsFor[unknown]()
	if !errors.Is(err, ErrUnregisteredType) {
		t.Errorf("expected ErrUnregisteredType, got %v", err)
	}
}
