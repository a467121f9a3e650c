package gltf

import (
	"fmt"
	"math/bits"
	"unsafe"

	"github.com/robert-malhotra/go-gltf/internal/component"
	"github.com/robert-malhotra/go-gltf/internal/layout"
)

// hostLittleEndian gates the direct-copy path: accessor payloads are
// little-endian on the wire, so a raw byte copy only round-trips on a
// little-endian host. Big-endian hosts take the per-element path.
var hostLittleEndian = func() bool {
	var x uint16 = 1
	return *(*byte)(unsafe.Pointer(&x)) == 1
}()

// denseData is the resolved dense payload of an accessor. noData marks an
// accessor without a buffer view, which logically holds count zero-valued
// elements.
type denseData struct {
	noData bool
	buf    []byte
	res    layout.Resolved
}

// resolveDense resolves acc's buffer view through src and validates the
// layout of the full element range.
func resolveDense(asset *Asset, acc *Accessor, elemSize uint64, src BufferSource) (denseData, error) {
	if acc.BufferView == nil {
		return denseData{noData: true}, nil
	}
	vi := *acc.BufferView
	if vi < 0 || vi >= len(asset.BufferViews) {
		return denseData{}, fmt.Errorf("%w: buffer view %d of %d", ErrOutOfBounds, vi, len(asset.BufferViews))
	}
	view := &asset.BufferViews[vi]
	if view.Buffer < 0 || view.Buffer >= len(asset.Buffers) {
		return denseData{}, fmt.Errorf("%w: buffer %d of %d", ErrOutOfBounds, view.Buffer, len(asset.Buffers))
	}
	buf := src(&asset.Buffers[view.Buffer])
	if buf == nil {
		return denseData{}, fmt.Errorf("%w: buffer %d", ErrSourceUnavailable, view.Buffer)
	}

	var stride uint64
	if view.ByteStride != nil {
		stride = *view.ByteStride
	}
	res, err := layout.Resolve(layout.Params{
		ViewOffset:     view.ByteOffset,
		ViewLength:     view.ByteLength,
		AccessorOffset: acc.ByteOffset,
		ByteStride:     stride,
		ElementSize:    elemSize,
		Count:          acc.Count,
		BufferLen:      uint64(len(buf)),
	})
	if err != nil {
		return denseData{}, err
	}
	return denseData{buf: buf, res: res}, nil
}

// checkShape verifies that the accessor's declared shape matches the
// registered traits of the output type and returns the accessor's storage
// kind. This runs once per operation, before any byte is read.
func checkShape(acc *Accessor, tr elementTraits) (component.Kind, error) {
	kind, ok := acc.ComponentType.kind()
	if !ok {
		return 0, fmt.Errorf("%w: unsupported accessor component type %d", ErrTypeMismatch, acc.ComponentType)
	}
	if acc.Type.Components() != tr.arity {
		return 0, fmt.Errorf("%w: accessor is %v (%d components), element type has %d",
			ErrTypeMismatch, acc.Type, acc.Type.Components(), tr.arity)
	}
	return kind, nil
}

// GetElement decodes the element at the given logical index. The accessor's
// sparse overlay, if any, takes precedence over the dense payload; an
// accessor without a buffer view yields the zero value of T.
func GetElement[T any](asset *Asset, acc *Accessor, index uint64, opts ...Option) (T, error) {
	var zero T
	tr, err := traitsFor[T]()
	if err != nil {
		return zero, err
	}
	kind, err := checkShape(acc, tr)
	if err != nil {
		return zero, err
	}
	if index >= acc.Count {
		return zero, fmt.Errorf("%w: index %d, count %d", ErrIndexOutOfRange, index, acc.Count)
	}
	o := applyOptions(opts)
	elemSize := acc.ElementByteSize()

	if acc.Sparse != nil {
		overlay, err := resolveSparse(asset, acc, elemSize, o.source)
		if err != nil {
			return zero, err
		}
		if overlay != nil {
			if slot, ok := overlay.find(index); ok {
				return assemble[T](tr, kind, overlay.value(slot)), nil
			}
		}
	}

	dense, err := resolveDense(asset, acc, elemSize, o.source)
	if err != nil {
		return zero, err
	}
	if dense.noData {
		return zero, nil
	}
	span, err := dense.res.At(dense.buf, index)
	if err != nil {
		return zero, err
	}
	return assemble[T](tr, kind, span), nil
}

// IterateAccessor calls fn once per element in ascending index order.
// The layout and any sparse overlay are validated before the first call,
// so fn never observes a partial prefix of a structurally broken accessor.
func IterateAccessor[T any](asset *Asset, acc *Accessor, fn func(T), opts ...Option) error {
	tr, err := traitsFor[T]()
	if err != nil {
		return err
	}
	kind, err := checkShape(acc, tr)
	if err != nil {
		return err
	}
	o := applyOptions(opts)
	elemSize := acc.ElementByteSize()

	dense, err := resolveDense(asset, acc, elemSize, o.source)
	if err != nil {
		return err
	}
	overlay, err := resolveSparse(asset, acc, elemSize, o.source)
	if err != nil {
		return err
	}
	if overlay != nil {
		if err := overlay.validate(); err != nil {
			return err
		}
	}

	cur := newSparseCursor(overlay)
	for i := uint64(0); i < acc.Count; i++ {
		var v T
		if patch, ok := cur.take(i); ok {
			v = assemble[T](tr, kind, patch)
		} else if !dense.noData {
			span, _ := dense.res.At(dense.buf, i)
			v = assemble[T](tr, kind, span)
		}
		fn(v)
	}
	return nil
}

// CopyFromAccessor decodes the whole accessor into dst, which must hold at
// least acc.Count elements.
func CopyFromAccessor[T any](asset *Asset, acc *Accessor, dst []T, opts ...Option) error {
	var b []byte
	if len(dst) > 0 {
		b = unsafe.Slice((*byte)(unsafe.Pointer(&dst[0])), uintptr(len(dst))*unsafe.Sizeof(dst[0]))
	}
	return CopyFromAccessorStride[T](asset, acc, b, 0, opts...)
}

// CopyFromAccessorStride decodes the whole accessor into caller-owned
// memory, writing one element of type T every stride bytes. A stride of 0
// means the natural size of T, so larger strides produce interleaved
// destination layouts. When the source bytes already match T's in-memory
// layout and both sides are densely packed, the payload is copied directly
// instead of converted component by component. An accessor without a buffer
// view zero-fills the destination elements (and only those bytes), then
// applies any sparse overlay. Structural errors are detected before the
// first write, so a failed call leaves dst untouched.
func CopyFromAccessorStride[T any](asset *Asset, acc *Accessor, dst []byte, stride uint64, opts ...Option) error {
	tr, err := traitsFor[T]()
	if err != nil {
		return err
	}
	kind, err := checkShape(acc, tr)
	if err != nil {
		return err
	}
	size := uint64(tr.size)
	if stride == 0 {
		stride = size
	}
	if stride < size {
		return fmt.Errorf("%w: stride %d smaller than element size %d", ErrDestinationTooSmall, stride, size)
	}
	if acc.Count > 0 {
		hi, span := bits.Mul64(acc.Count-1, stride)
		need, carry := bits.Add64(span, size, 0)
		if hi != 0 || carry != 0 || need > uint64(len(dst)) {
			return fmt.Errorf("%w: need %d elements of stride %d, have %d bytes",
				ErrDestinationTooSmall, acc.Count, stride, len(dst))
		}
	}
	o := applyOptions(opts)
	elemSize := acc.ElementByteSize()

	dense, err := resolveDense(asset, acc, elemSize, o.source)
	if err != nil {
		return err
	}
	overlay, err := resolveSparse(asset, acc, elemSize, o.source)
	if err != nil {
		return err
	}
	if overlay != nil {
		if err := overlay.validate(); err != nil {
			return err
		}
	}
	if acc.Count == 0 {
		return nil
	}

	// Direct-copy path. Requires a little-endian host plus a flat element
	// layout whose canonical kind matches the storage kind, with both source
	// and destination packed. Overlay values share the element layout, so
	// they are patched with the same byte copies after the bulk copy.
	if hostLittleEndian && !dense.noData && tr.flat && kind == tr.kind &&
		dense.res.Stride == elemSize && stride == elemSize {
		base := dense.res.Base
		copy(dst[:acc.Count*elemSize], dense.buf[base:base+acc.Count*elemSize])
		if overlay != nil {
			for k := uint64(0); k < overlay.count; k++ {
				copy(dst[overlay.index(k)*stride:], overlay.value(k))
			}
		}
		return nil
	}

	cur := newSparseCursor(overlay)
	for i := uint64(0); i < acc.Count; i++ {
		out := dst[i*stride : i*stride+size]
		if patch, ok := cur.take(i); ok {
			v := assemble[T](tr, kind, patch)
			copy(out, unsafe.Slice((*byte)(unsafe.Pointer(&v)), tr.size))
		} else if dense.noData {
			clear(out)
		} else {
			span, _ := dense.res.At(dense.buf, i)
			v := assemble[T](tr, kind, span)
			copy(out, unsafe.Slice((*byte)(unsafe.Pointer(&v)), tr.size))
		}
	}
	return nil
}
