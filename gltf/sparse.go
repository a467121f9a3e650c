package gltf

import (
	"fmt"

	"github.com/robert-malhotra/go-gltf/internal/component"
	"github.com/robert-malhotra/go-gltf/internal/layout"
)

// sparseOverlay is a resolved sparse patch list: a strictly ascending array
// of logical indices and a parallel array of replacement elements, both
// packed in their own buffer views.
type sparseOverlay struct {
	count    uint64
	accCount uint64 // count of the accessor being patched

	idxBytes []byte // count packed indices, element 0 first
	idxKind  component.Kind
	idxSize  uint64

	valBytes []byte // count packed value elements
	elemSize uint64
}

// resolveSparse resolves the index and value buffer views of acc's sparse
// descriptor. Returns (nil, nil) when the accessor has no overlay.
func resolveSparse(asset *Asset, acc *Accessor, elemSize uint64, src BufferSource) (*sparseOverlay, error) {
	sp := acc.Sparse
	if sp == nil || sp.Count == 0 {
		return nil, nil
	}

	idxKind, ok := sp.IndicesComponentType.kind()
	if !ok {
		return nil, fmt.Errorf("%w: unsupported index component type %d", ErrMalformedSparse, sp.IndicesComponentType)
	}
	idxSize := uint64(idxKind.Size())

	idxBytes, err := resolveSparseView(asset, sp.IndicesBufferView, sp.IndicesByteOffset, idxSize, sp.Count, src)
	if err != nil {
		return nil, fmt.Errorf("sparse indices: %w", err)
	}
	valBytes, err := resolveSparseView(asset, sp.ValuesBufferView, sp.ValuesByteOffset, elemSize, sp.Count, src)
	if err != nil {
		return nil, fmt.Errorf("sparse values: %w", err)
	}

	return &sparseOverlay{
		count:    sp.Count,
		accCount: acc.Count,
		idxBytes: idxBytes,
		idxKind:  idxKind,
		idxSize:  idxSize,
		valBytes: valBytes,
		elemSize: elemSize,
	}, nil
}

// resolveSparseView locates count packed elements of elemSize bytes inside
// a buffer view and returns the bytes of element 0 onward. Sparse views
// never carry an explicit stride.
func resolveSparseView(asset *Asset, viewIndex int, byteOffset, elemSize, count uint64, src BufferSource) ([]byte, error) {
	if viewIndex < 0 || viewIndex >= len(asset.BufferViews) {
		return nil, fmt.Errorf("%w: buffer view %d of %d", ErrOutOfBounds, viewIndex, len(asset.BufferViews))
	}
	view := &asset.BufferViews[viewIndex]
	if view.Buffer < 0 || view.Buffer >= len(asset.Buffers) {
		return nil, fmt.Errorf("%w: buffer %d of %d", ErrOutOfBounds, view.Buffer, len(asset.Buffers))
	}
	buf := src(&asset.Buffers[view.Buffer])
	if buf == nil {
		return nil, fmt.Errorf("%w: buffer %d", ErrSourceUnavailable, view.Buffer)
	}

	res, err := layout.Resolve(layout.Params{
		ViewOffset:     view.ByteOffset,
		ViewLength:     view.ByteLength,
		AccessorOffset: byteOffset,
		ElementSize:    elemSize,
		Count:          count,
		BufferLen:      uint64(len(buf)),
	})
	if err != nil {
		return nil, err
	}
	return buf[res.Base : res.Base+count*elemSize], nil
}

// index decodes the logical index stored in overlay slot k.
func (s *sparseOverlay) index(k uint64) uint64 {
	return uint64(component.Value(s.idxKind, s.idxBytes[k*s.idxSize:]))
}

// value returns the replacement element bytes for overlay slot k.
func (s *sparseOverlay) value(k uint64) []byte {
	return s.valBytes[k*s.elemSize : (k+1)*s.elemSize]
}

// find binary-searches the ascending index list for logical index i and
// returns the overlay slot holding it.
func (s *sparseOverlay) find(i uint64) (uint64, bool) {
	lo, hi := uint64(0), s.count
	for lo < hi {
		mid := (lo + hi) / 2
		if s.index(mid) < i {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < s.count && s.index(lo) == i {
		return lo, true
	}
	return 0, false
}

// validate checks that the index list is strictly ascending and every
// index is within the patched accessor's count. Bulk operations run this
// before writing anything, which is what makes them atomic on failure.
func (s *sparseOverlay) validate() error {
	var prev uint64
	for k := uint64(0); k < s.count; k++ {
		idx := s.index(k)
		if idx >= s.accCount {
			return fmt.Errorf("%w: index %d >= accessor count %d", ErrMalformedSparse, idx, s.accCount)
		}
		if k > 0 && idx <= prev {
			return fmt.Errorf("%w: indices not strictly ascending at entry %d", ErrMalformedSparse, k)
		}
		prev = idx
	}
	return nil
}

// cursor walks the overlay in step with an ascending scan over the patched
// accessor, turning repeated lookups into an O(count + sparse count) merge.
type sparseCursor struct {
	overlay *sparseOverlay
	slot    uint64
	next    uint64
}

func newSparseCursor(s *sparseOverlay) sparseCursor {
	c := sparseCursor{overlay: s}
	if s != nil && s.count > 0 {
		c.next = s.index(0)
	}
	return c
}

// take reports whether logical index i is overridden; on a hit it returns
// the replacement element bytes and advances the cursor.
func (c *sparseCursor) take(i uint64) ([]byte, bool) {
	s := c.overlay
	if s == nil || c.slot >= s.count || c.next != i {
		return nil, false
	}
	b := s.value(c.slot)
	c.slot++
	if c.slot < s.count {
		c.next = s.index(c.slot)
	}
	return b, true
}
