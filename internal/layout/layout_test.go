package layout

import (
	"errors"
	"testing"
)

func TestResolvePacked(t *testing.T) {
	r, err := Resolve(Params{
		ViewOffset:  100,
		ViewLength:  40,
		ElementSize: 4,
		Count:       10,
		BufferLen:   200,
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.Base != 100 {
		t.Errorf("expected base 100, got %d", r.Base)
	}
	if r.Stride != 4 {
		t.Errorf("expected packed stride 4, got %d", r.Stride)
	}
}

func TestResolveExplicitStride(t *testing.T) {
	// 3-float elements (natural size 12) interleaved every 16 bytes.
	r, err := Resolve(Params{
		ViewOffset:  8,
		ViewLength:  16 * 4,
		ByteStride:  16,
		ElementSize: 12,
		Count:       4,
		BufferLen:   128,
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	span, err := r.At(make([]byte, 128), 3)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if len(span) != 12 {
		t.Errorf("expected 12-byte span, got %d", len(span))
	}
	// Element 3 starts at offset + 3*16, not 3*12.
	if r.Base+3*r.Stride != 8+48 {
		t.Errorf("expected element 3 at offset 56, got %d", r.Base+3*r.Stride)
	}
}

func TestResolveAccessorOffset(t *testing.T) {
	r, err := Resolve(Params{
		ViewOffset:     10,
		ViewLength:     100,
		AccessorOffset: 20,
		ElementSize:    2,
		Count:          5,
		BufferLen:      200,
	})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if r.Base != 30 {
		t.Errorf("expected base 30, got %d", r.Base)
	}
}

func TestResolveBounds(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"exceeds view", Params{ViewOffset: 0, ViewLength: 39, ElementSize: 4, Count: 10, BufferLen: 1000}},
		{"exceeds buffer", Params{ViewOffset: 0, ViewLength: 40, ElementSize: 4, Count: 10, BufferLen: 39}},
		{"stride overruns view", Params{ViewOffset: 0, ViewLength: 40, ByteStride: 8, ElementSize: 4, Count: 6, BufferLen: 1000}},
		{"accessor offset pushes past view", Params{ViewOffset: 0, ViewLength: 40, AccessorOffset: 4, ElementSize: 4, Count: 10, BufferLen: 1000}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.p); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("expected ErrOutOfBounds, got %v", err)
			}
		})
	}
}

func TestResolveOverflow(t *testing.T) {
	// Extents near 2^64 must not wrap into small in-range values.
	const top = ^uint64(0)
	tests := []struct {
		name string
		p    Params
	}{
		{"view offset wraps extent", Params{ViewOffset: top - 3, ViewLength: 8, ElementSize: 4, Count: 1, BufferLen: 64}},
		{"accessor offset wraps base", Params{ViewOffset: top - 1, ViewLength: 8, AccessorOffset: 2, ElementSize: 4, Count: 1, BufferLen: 64}},
		{"count times stride wraps", Params{ViewOffset: 0, ViewLength: 64, ByteStride: top / 2, ElementSize: 4, Count: 3, BufferLen: 64}},
		{"element size wraps end", Params{ViewOffset: 0, ViewLength: 64, ByteStride: 4, ElementSize: top, Count: 2, BufferLen: 64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Resolve(tt.p); !errors.Is(err, ErrOutOfBounds) {
				t.Errorf("expected ErrOutOfBounds, got %v", err)
			}
		})
	}

	t.Run("wrapped view length does not mask buffer check", func(t *testing.T) {
		// The view claims more bytes than are addressable; the buffer still
		// bounds the accessor.
		r, err := Resolve(Params{ViewOffset: 8, ViewLength: top, ElementSize: 4, Count: 2, BufferLen: 64})
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if r.Base != 8 {
			t.Errorf("expected base 8, got %d", r.Base)
		}
		if _, err := Resolve(Params{ViewOffset: 8, ViewLength: top, ElementSize: 4, Count: 2, BufferLen: 12}); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("expected ErrOutOfBounds from buffer check, got %v", err)
		}
	})
}

func TestResolveZeroCount(t *testing.T) {
	// An empty accessor never touches bytes, so nothing can be out of bounds.
	if _, err := Resolve(Params{ViewOffset: 500, ViewLength: 0, ElementSize: 4, BufferLen: 0}); err != nil {
		t.Errorf("Resolve failed for zero count: %v", err)
	}
}

func TestAtIndexOutOfRange(t *testing.T) {
	r, err := Resolve(Params{ViewLength: 40, ElementSize: 4, Count: 10, BufferLen: 40})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, err := r.At(make([]byte, 40), 10); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestAtLastElement(t *testing.T) {
	buf := make([]byte, 40)
	buf[36] = 0xAB

	r, err := Resolve(Params{ViewLength: 40, ElementSize: 4, Count: 10, BufferLen: 40})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	span, err := r.At(buf, 9)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if span[0] != 0xAB {
		t.Errorf("expected last element span to start at byte 36")
	}
}
