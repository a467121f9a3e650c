package gltf

// BufferData is the tagged byte source behind a Buffer. Variants can be
// added without touching the decoding engine; a source the configured
// BufferSource cannot dereference surfaces as ErrSourceUnavailable.
type BufferData interface {
	isBufferData()
}

// VectorData holds buffer bytes owned by the asset itself, typically
// decoded from an embedded data URI or a GLB binary chunk.
type VectorData struct {
	Bytes []byte
}

// ByteViewData borrows buffer bytes owned by the caller, such as a
// memory-mapped file.
type ByteViewData struct {
	Bytes []byte
}

// URIData names an external resource that has not been materialized.
// The default buffer source cannot dereference it; hosts that resolve
// URIs substitute their own source with WithBufferSource.
type URIData struct {
	URI string
}

func (VectorData) isBufferData()   {}
func (ByteViewData) isBufferData() {}
func (URIData) isBufferData()      {}

// BufferSource resolves a buffer record to its raw bytes. A nil result
// means the source cannot be dereferenced. Implementations must be safe for
// concurrent reads if accessor operations run concurrently.
type BufferSource func(*Buffer) []byte

// DefaultBufferSource resolves the two in-memory data variants and yields
// nil for anything else.
func DefaultBufferSource(b *Buffer) []byte {
	switch d := b.Data.(type) {
	case VectorData:
		return d.Bytes
	case ByteViewData:
		return d.Bytes
	default:
		return nil
	}
}
