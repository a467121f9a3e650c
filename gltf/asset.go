// Package gltf provides a pure Go engine for decoding glTF accessor data.
//
// The package consumes schema records (buffers, buffer views, accessors and
// sparse descriptors) produced and validated by an external document parser,
// and reconstructs typed elements from the raw buffer bytes: one at a time,
// by iteration, or in bulk into caller-owned memory. Callers choose the
// output element type through Go generics; the built-in scalar types are
// pre-registered and aggregate types such as vectors are added with
// RegisterElement.
package gltf

import "github.com/robert-malhotra/go-gltf/internal/component"

// ComponentType identifies the storage encoding of accessor components,
// using the constants from the glTF specification.
type ComponentType uint32

const (
	ComponentInvalid       ComponentType = 0
	ComponentByte          ComponentType = 5120
	ComponentUnsignedByte  ComponentType = 5121
	ComponentShort         ComponentType = 5122
	ComponentUnsignedShort ComponentType = 5123
	ComponentInt           ComponentType = 5124
	ComponentUnsignedInt   ComponentType = 5125
	ComponentFloat         ComponentType = 5126
	ComponentDouble        ComponentType = 5130
)

// kind maps the schema-level component type to its decode-level kind.
func (c ComponentType) kind() (component.Kind, bool) {
	switch c {
	case ComponentByte:
		return component.Int8, true
	case ComponentUnsignedByte:
		return component.Uint8, true
	case ComponentShort:
		return component.Int16, true
	case ComponentUnsignedShort:
		return component.Uint16, true
	case ComponentInt:
		return component.Int32, true
	case ComponentUnsignedInt:
		return component.Uint32, true
	case ComponentFloat:
		return component.Float32, true
	case ComponentDouble:
		return component.Float64, true
	default:
		return 0, false
	}
}

// Size returns the storage size of one component in bytes, or 0 for an
// unknown component type.
func (c ComponentType) Size() int {
	k, ok := c.kind()
	if !ok {
		return 0
	}
	return k.Size()
}

// AccessorType describes the shape of an accessor element.
type AccessorType uint8

const (
	AccessorInvalid AccessorType = iota
	AccessorScalar
	AccessorVec2
	AccessorVec3
	AccessorVec4
	AccessorMat2
	AccessorMat3
	AccessorMat4
)

// Components returns the number of components in an element of this type,
// or 0 for an invalid type.
func (t AccessorType) Components() int {
	switch t {
	case AccessorScalar:
		return 1
	case AccessorVec2:
		return 2
	case AccessorVec3:
		return 3
	case AccessorVec4:
		return 4
	case AccessorMat2:
		return 4
	case AccessorMat3:
		return 9
	case AccessorMat4:
		return 16
	default:
		return 0
	}
}

func (t AccessorType) String() string {
	switch t {
	case AccessorScalar:
		return "SCALAR"
	case AccessorVec2:
		return "VEC2"
	case AccessorVec3:
		return "VEC3"
	case AccessorVec4:
		return "VEC4"
	case AccessorMat2:
		return "MAT2"
	case AccessorMat3:
		return "MAT3"
	case AccessorMat4:
		return "MAT4"
	default:
		return "INVALID"
	}
}

// ElementByteSize returns the natural packed size in bytes of one element
// with the given shape and component encoding.
func ElementByteSize(t AccessorType, c ComponentType) uint64 {
	return uint64(t.Components()) * uint64(c.Size())
}

// Buffer is a handle to one contiguous byte source. The engine never copies
// or mutates buffer bytes; it borrows a read-only view through a
// BufferSource.
type Buffer struct {
	Name       string
	ByteLength uint64
	Data       BufferData
}

// BufferView selects a window of a buffer.
type BufferView struct {
	Name       string
	Buffer     int
	ByteOffset uint64
	ByteLength uint64
	ByteStride *uint64 // nil when elements are packed with no gaps
}

// Accessor describes how typed elements are laid out in a buffer view.
// A nil BufferView means the accessor represents Count zero-valued
// elements; a sparse overlay, if present, may still override positions.
type Accessor struct {
	Name          string
	BufferView    *int
	ByteOffset    uint64
	ComponentType ComponentType
	Type          AccessorType
	Count         uint64
	Sparse        *SparseAccessor
}

// ElementByteSize returns the natural packed size of one element of the
// accessor.
func (a *Accessor) ElementByteSize() uint64 {
	return ElementByteSize(a.Type, a.ComponentType)
}

// SparseAccessor patches a small sorted set of elements on top of the
// accessor's base array. The index and value arrays are parallel: entry i
// of the index array names the logical position replaced by entry i of the
// value array. Indices are strictly ascending and each is less than the
// accessor's count.
type SparseAccessor struct {
	Count                uint64
	IndicesBufferView    int
	IndicesByteOffset    uint64
	IndicesComponentType ComponentType
	ValuesBufferView     int
	ValuesByteOffset     uint64
}

// Asset is the slice of a parsed glTF document this engine reads: the
// accessor records and the buffer graph behind them. All records are
// constructed by the document parser and never mutated here.
type Asset struct {
	Buffers     []Buffer
	BufferViews []BufferView
	Accessors   []Accessor
}
