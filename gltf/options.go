package gltf

// Option configures an accessor operation.
type Option func(*options)

type options struct {
	source BufferSource
}

func defaultOptions() *options {
	return &options{
		source: DefaultBufferSource,
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithBufferSource substitutes the adapter used to resolve buffer bytes,
// allowing storage backends other than the in-memory variants.
func WithBufferSource(src BufferSource) Option {
	return func(o *options) {
		if src != nil {
			o.source = src
		}
	}
}
