package gltf

import (
	"fmt"
	"reflect"
	"sync"
	"unsafe"

	"github.com/robert-malhotra/go-gltf/internal/component"
)

// elementTraits records how one output element type is laid out: how many
// components it holds, the canonical component kind, and the byte offset of
// each component inside the type. Offsets are computed once at registration
// so the decode hot path never reflects.
type elementTraits struct {
	arity    int
	kind     component.Kind
	compSize uintptr
	size     uintptr   // unsafe.Sizeof the element type
	offsets  []uintptr // byte offset of component i within the element
	flat     bool      // components are contiguous with no padding
}

var (
	traitsMu    sync.RWMutex
	traitsTable = map[reflect.Type]elementTraits{}
)

func init() {
	mustRegister[int8](AccessorScalar, ComponentByte)
	mustRegister[uint8](AccessorScalar, ComponentUnsignedByte)
	mustRegister[int16](AccessorScalar, ComponentShort)
	mustRegister[uint16](AccessorScalar, ComponentUnsignedShort)
	mustRegister[int32](AccessorScalar, ComponentInt)
	mustRegister[uint32](AccessorScalar, ComponentUnsignedInt)
	mustRegister[float32](AccessorScalar, ComponentFloat)
	mustRegister[float64](AccessorScalar, ComponentDouble)
}

func mustRegister[T any](t AccessorType, c ComponentType) {
	if err := RegisterElement[T](t, c); err != nil {
		panic(err)
	}
}

// RegisterElement registers T as an output element type with the given
// shape and canonical component encoding. T must contain, in declaration
// order, exactly one numeric field (or array slot) of the canonical Go
// component type per component; vectors are typically [N]float32 arrays or
// small structs of float32 fields. Registering an unsuitable type returns
// an error before any decoding can involve it. Registering the same type
// again replaces the previous entry.
func RegisterElement[T any](t AccessorType, c ComponentType) error {
	rt := reflect.TypeOf((*T)(nil)).Elem()

	kind, ok := c.kind()
	if !ok {
		return fmt.Errorf("registering %v: unsupported component type %d", rt, c)
	}
	arity := t.Components()
	if arity == 0 {
		return fmt.Errorf("registering %v: invalid accessor type", rt)
	}

	offsets := make([]uintptr, 0, arity)
	if err := componentOffsets(rt, kind, 0, &offsets); err != nil {
		return fmt.Errorf("registering %v: %w", rt, err)
	}
	if len(offsets) != arity {
		return fmt.Errorf("registering %v: type has %d components, %v needs %d", rt, len(offsets), t, arity)
	}

	compSize := uintptr(kind.Size())
	tr := elementTraits{
		arity:    arity,
		kind:     kind,
		compSize: compSize,
		size:     rt.Size(),
		offsets:  offsets,
		flat:     true,
	}
	for i, off := range offsets {
		if off != uintptr(i)*compSize {
			tr.flat = false
			break
		}
	}
	if tr.size != uintptr(arity)*compSize {
		tr.flat = false
	}

	traitsMu.Lock()
	traitsTable[rt] = tr
	traitsMu.Unlock()
	return nil
}

// componentOffsets walks rt collecting the byte offsets of its numeric
// leaves, which must all be of the Go type matching kind.
func componentOffsets(rt reflect.Type, kind component.Kind, base uintptr, offsets *[]uintptr) error {
	switch rt.Kind() {
	case reflect.Int8, reflect.Uint8, reflect.Int16, reflect.Uint16,
		reflect.Int32, reflect.Uint32, reflect.Float32, reflect.Float64:
		if !kindMatches(kind, rt.Kind()) {
			return fmt.Errorf("component at offset %d is %v, want %v", base, rt.Kind(), kind)
		}
		*offsets = append(*offsets, base)
		return nil
	case reflect.Array:
		elemSize := rt.Elem().Size()
		for i := 0; i < rt.Len(); i++ {
			if err := componentOffsets(rt.Elem(), kind, base+uintptr(i)*elemSize, offsets); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		for i := 0; i < rt.NumField(); i++ {
			f := rt.Field(i)
			if err := componentOffsets(f.Type, kind, base+f.Offset, offsets); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unsupported element structure %v", rt.Kind())
	}
}

func kindMatches(k component.Kind, rk reflect.Kind) bool {
	switch k {
	case component.Int8:
		return rk == reflect.Int8
	case component.Uint8:
		return rk == reflect.Uint8
	case component.Int16:
		return rk == reflect.Int16
	case component.Uint16:
		return rk == reflect.Uint16
	case component.Int32:
		return rk == reflect.Int32
	case component.Uint32:
		return rk == reflect.Uint32
	case component.Float32:
		return rk == reflect.Float32
	case component.Float64:
		return rk == reflect.Float64
	default:
		return false
	}
}

// traitsFor looks up the registered traits for T.
func traitsFor[T any]() (elementTraits, error) {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	traitsMu.RLock()
	tr, ok := traitsTable[rt]
	traitsMu.RUnlock()
	if !ok {
		return elementTraits{}, fmt.Errorf("%w: %v", ErrUnregisteredType, rt)
	}
	return tr, nil
}

// assemble builds one element of type T from src, whose components are
// stored back to back as srcKind scalars. src holds at least
// arity*srcKind.Size() bytes.
func assemble[T any](tr elementTraits, srcKind component.Kind, src []byte) T {
	var out T
	p := unsafe.Pointer(&out)
	srcSize := uintptr(srcKind.Size())
	for i, off := range tr.offsets {
		v := component.Value(srcKind, src[uintptr(i)*srcSize:])
		component.Store(tr.kind, unsafe.Add(p, off), v)
	}
	return out
}
