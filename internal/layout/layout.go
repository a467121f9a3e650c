// Package layout resolves where accessor elements live inside a buffer.
//
// An accessor reads its elements through a buffer view: the view selects a
// window of the buffer, the accessor adds its own byte offset inside that
// window, and consecutive elements are separated by the view's byte stride
// (or packed back to back when the view declares none). Resolve performs
// that arithmetic once, up front, and validates that every element of the
// accessor fits inside both the view's declared extent and the backing
// buffer. After a successful Resolve, At is infallible for in-range
// indices, which is what lets bulk decoding run without per-element
// bounds checks.
package layout

import (
	"errors"
	"fmt"
	"math/bits"
)

// Layout resolution errors.
var (
	ErrIndexOutOfRange = errors.New("accessor index out of range")
	ErrOutOfBounds     = errors.New("byte span exceeds buffer bounds")
)

// Params describes one accessor/view pairing to resolve.
type Params struct {
	ViewOffset     uint64 // buffer view offset into the buffer
	ViewLength     uint64 // buffer view declared length
	AccessorOffset uint64 // accessor offset inside the view
	ByteStride     uint64 // explicit view stride, 0 when elements are packed
	ElementSize    uint64 // natural packed size of one element
	Count          uint64 // number of elements the accessor declares
	BufferLen      uint64 // length of the resolved buffer bytes
}

// Resolved is the effective layout of a dense accessor inside one buffer.
type Resolved struct {
	Base   uint64 // absolute byte offset of element 0
	Stride uint64 // distance between consecutive elements
	Elem   uint64 // bytes occupied by one element
	Count  uint64
}

// Resolve computes the effective stride and base offset for p and checks
// that the full element range stays inside the view and the buffer. All
// extent arithmetic is carry-checked: schema fields are attacker-controlled
// uint64s, and a wrapped sum must read as out of bounds, never as small.
func Resolve(p Params) (Resolved, error) {
	stride := p.ByteStride
	if stride == 0 {
		stride = p.ElementSize
	}

	base, carry := bits.Add64(p.ViewOffset, p.AccessorOffset, 0)
	if carry != 0 {
		return Resolved{}, fmt.Errorf("%w: offset %d+%d overflows", ErrOutOfBounds, p.ViewOffset, p.AccessorOffset)
	}

	r := Resolved{
		Base:   base,
		Stride: stride,
		Elem:   p.ElementSize,
		Count:  p.Count,
	}

	if p.Count == 0 {
		return r, nil
	}

	// The last element determines the extent: earlier elements end before it.
	hi, span := bits.Mul64(p.Count-1, stride)
	end, c1 := bits.Add64(base, span, 0)
	end, c2 := bits.Add64(end, p.ElementSize, 0)
	if hi != 0 || c1 != 0 || c2 != 0 {
		return Resolved{}, fmt.Errorf("%w: element range overflows (base %d, count %d, stride %d)",
			ErrOutOfBounds, base, p.Count, stride)
	}
	// A view whose declared extent wraps cannot be smaller than the buffer,
	// so the buffer check below is the binding one.
	viewEnd, carry := bits.Add64(p.ViewOffset, p.ViewLength, 0)
	if carry == 0 && end > viewEnd {
		return Resolved{}, fmt.Errorf("%w: need %d bytes, view ends at %d", ErrOutOfBounds, end, viewEnd)
	}
	if end > p.BufferLen {
		return Resolved{}, fmt.Errorf("%w: need %d bytes, buffer has %d", ErrOutOfBounds, end, p.BufferLen)
	}

	return r, nil
}

// At returns the byte span of the element at index within buf. The span is
// exactly Elem bytes long.
func (r Resolved) At(buf []byte, index uint64) ([]byte, error) {
	if index >= r.Count {
		return nil, fmt.Errorf("%w: index %d, count %d", ErrIndexOutOfRange, index, r.Count)
	}
	off := r.Base + index*r.Stride
	return buf[off : off+r.Elem], nil
}
