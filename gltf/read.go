package gltf

import (
	"fmt"
	"unsafe"
)

// Flat element types used by the convenience readers; one per accessor
// shape, all float32 so any storage kind converts on the way out.
type (
	vec2f [2]float32
	vec3f [3]float32
	vec4f [4]float32
	mat3f [9]float32
	mat4f [16]float32
)

func init() {
	mustRegister[vec2f](AccessorVec2, ComponentFloat)
	mustRegister[vec3f](AccessorVec3, ComponentFloat)
	mustRegister[vec4f](AccessorVec4, ComponentFloat)
	mustRegister[mat3f](AccessorMat3, ComponentFloat)
	mustRegister[mat4f](AccessorMat4, ComponentFloat)
}

// unsafe32 reinterprets a slice of flat float32 aggregates as the
// underlying float32 components.
func unsafe32[T any](s []T) []float32 {
	var t T
	n := int(unsafe.Sizeof(t)) / 4
	return unsafe.Slice((*float32)(unsafe.Pointer(&s[0])), len(s)*n)
}

func readFlat[T any](asset *Asset, acc *Accessor, out []float32, opts []Option) error {
	dst := make([]T, acc.Count)
	if err := CopyFromAccessor[T](asset, acc, dst, opts...); err != nil {
		return err
	}
	if acc.Count > 0 {
		copy(out, unsafe32(dst))
	}
	return nil
}

// AccessorFloat32s decodes every component of the accessor, element by
// element in order, into a newly allocated float32 slice of
// count*components values. Any storage kind converts with ordinary numeric
// conversion.
func AccessorFloat32s(asset *Asset, acc *Accessor, opts ...Option) ([]float32, error) {
	n := acc.Type.Components()
	out := make([]float32, acc.Count*uint64(n))
	var err error
	switch n {
	case 1:
		err = CopyFromAccessor[float32](asset, acc, out, opts...)
	case 2:
		err = readFlat[vec2f](asset, acc, out, opts)
	case 3:
		err = readFlat[vec3f](asset, acc, out, opts)
	case 4:
		err = readFlat[vec4f](asset, acc, out, opts)
	case 9:
		err = readFlat[mat3f](asset, acc, out, opts)
	case 16:
		err = readFlat[mat4f](asset, acc, out, opts)
	default:
		err = fmt.Errorf("%w: accessor type %v", ErrTypeMismatch, acc.Type)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AccessorUint32s decodes a scalar accessor, such as an index buffer, into
// a newly allocated uint32 slice.
func AccessorUint32s(asset *Asset, acc *Accessor, opts ...Option) ([]uint32, error) {
	out := make([]uint32, acc.Count)
	if err := CopyFromAccessor[uint32](asset, acc, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// AccessorUint16s decodes a scalar accessor into a newly allocated uint16
// slice.
func AccessorUint16s(asset *Asset, acc *Accessor, opts ...Option) ([]uint16, error) {
	out := make([]uint16, acc.Count)
	if err := CopyFromAccessor[uint16](asset, acc, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
