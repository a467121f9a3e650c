// Package component reads and writes the scalar component encodings that
// back glTF accessor data.
//
// Accessor payloads store each element as a run of components, all of one
// Kind. This package decodes a single little-endian component from raw
// buffer bytes and stores a single host-native component into caller
// memory. Conversion between kinds goes through float64: every supported
// kind is exactly representable in a float64 (the widest integer kind is
// uint32, well inside the 53-bit mantissa), so the intermediate is
// lossless and the final narrowing is an ordinary Go conversion.
package component

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// Kind identifies one of the numeric encodings a component may use.
type Kind uint8

const (
	Int8 Kind = iota
	Uint8
	Int16
	Uint16
	Int32
	Uint32
	Float32
	Float64

	numKinds
)

// Valid reports whether k is a supported encoding.
func (k Kind) Valid() bool {
	return k < numKinds
}

// Size returns the storage size of the kind in bytes, or 0 for an
// invalid kind.
func (k Kind) Size() int {
	switch k {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case Int8:
		return "int8"
	case Uint8:
		return "uint8"
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Uint32:
		return "uint32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "invalid"
	}
}

// Value decodes one little-endian scalar of the given kind from the start
// of b. The caller guarantees len(b) >= k.Size().
func Value(k Kind, b []byte) float64 {
	switch k {
	case Int8:
		return float64(int8(b[0]))
	case Uint8:
		return float64(b[0])
	case Int16:
		return float64(int16(binary.LittleEndian.Uint16(b)))
	case Uint16:
		return float64(binary.LittleEndian.Uint16(b))
	case Int32:
		return float64(int32(binary.LittleEndian.Uint32(b)))
	case Uint32:
		return float64(binary.LittleEndian.Uint32(b))
	case Float32:
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
	case Float64:
		return math.Float64frombits(binary.LittleEndian.Uint64(b))
	default:
		return 0
	}
}

// Store writes v as one host-native scalar of the given kind at p.
// Narrowing follows Go conversion rules; float to integer truncates
// toward zero.
func Store(k Kind, p unsafe.Pointer, v float64) {
	switch k {
	case Int8:
		*(*int8)(p) = int8(v)
	case Uint8:
		*(*uint8)(p) = uint8(v)
	case Int16:
		*(*int16)(p) = int16(v)
	case Uint16:
		*(*uint16)(p) = uint16(v)
	case Int32:
		*(*int32)(p) = int32(v)
	case Uint32:
		*(*uint32)(p) = uint32(v)
	case Float32:
		*(*float32)(p) = float32(v)
	case Float64:
		*(*float64)(p) = v
	}
}
