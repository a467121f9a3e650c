package component

import (
	"encoding/binary"
	"math"
	"testing"
	"unsafe"
)

func TestKindSize(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		size int
	}{
		{"int8", Int8, 1},
		{"uint8", Uint8, 1},
		{"int16", Int16, 2},
		{"uint16", Uint16, 2},
		{"int32", Int32, 4},
		{"uint32", Uint32, 4},
		{"float32", Float32, 4},
		{"float64", Float64, 8},
		{"invalid", numKinds, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.Size(); got != tt.size {
				t.Errorf("expected size %d, got %d", tt.size, got)
			}
		})
	}
}

func TestValue(t *testing.T) {
	f32 := func(v float32) []byte {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, math.Float32bits(v))
		return b
	}
	f64 := func(v float64) []byte {
		b := make([]byte, 8)
		binary.LittleEndian.PutUint64(b, math.Float64bits(v))
		return b
	}

	tests := []struct {
		name     string
		kind     Kind
		bytes    []byte
		expected float64
	}{
		{"int8 negative", Int8, []byte{0xFE}, -2},
		{"uint8", Uint8, []byte{0xFE}, 254},
		{"int16 negative", Int16, []byte{0x00, 0x80}, -32768},
		{"uint16", Uint16, []byte{0x34, 0x12}, 0x1234},
		{"int32 negative", Int32, []byte{0xFF, 0xFF, 0xFF, 0xFF}, -1},
		{"uint32 max", Uint32, []byte{0xFF, 0xFF, 0xFF, 0xFF}, 4294967295},
		{"float32", Float32, f32(1.5), 1.5},
		{"float64", Float64, f64(-2.25), -2.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Value(tt.kind, tt.bytes); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestStore(t *testing.T) {
	t.Run("int16 truncates toward zero", func(t *testing.T) {
		var v int16
		Store(Int16, unsafe.Pointer(&v), -3.9)
		if v != -3 {
			t.Errorf("expected -3, got %d", v)
		}
	})

	t.Run("uint8", func(t *testing.T) {
		var v uint8
		Store(Uint8, unsafe.Pointer(&v), 200)
		if v != 200 {
			t.Errorf("expected 200, got %d", v)
		}
	})

	t.Run("float32", func(t *testing.T) {
		var v float32
		Store(Float32, unsafe.Pointer(&v), 0.25)
		if v != 0.25 {
			t.Errorf("expected 0.25, got %v", v)
		}
	})

	t.Run("float64", func(t *testing.T) {
		var v float64
		Store(Float64, unsafe.Pointer(&v), 1e300)
		if v != 1e300 {
			t.Errorf("expected 1e300, got %v", v)
		}
	})
}

func TestValueStoreRoundTrip(t *testing.T) {
	// uint32 values stay exact through the float64 intermediate.
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, 4000000000)

	var v uint32
	Store(Uint32, unsafe.Pointer(&v), Value(Uint32, b))
	if v != 4000000000 {
		t.Errorf("expected 4000000000, got %d", v)
	}
}
