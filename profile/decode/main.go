// Profiling:
// go build ./profile/decode
// go tool pprof -http=":8000" -nodefraction=0.001 ./decode cpu.pprof

package main

import (
	"encoding/binary"
	"math"

	"github.com/pkg/profile"

	"github.com/robert-malhotra/go-gltf/gltf"
)

type vec3 [3]float32

const (
	elements = 100_000
	rounds   = 200
)

func main() {
	if err := gltf.RegisterElement[vec3](gltf.AccessorVec3, gltf.ComponentFloat); err != nil {
		panic(err)
	}

	asset, dense, sparse := buildAsset()
	p := profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	run(asset, dense, sparse)
	p.Stop()
}

func run(asset *gltf.Asset, dense, sparse *gltf.Accessor) {
	dst := make([]vec3, elements)
	var sink float32

	for i := 0; i < rounds; i++ {
		if err := gltf.CopyFromAccessor[vec3](asset, dense, dst); err != nil {
			panic(err)
		}
		if err := gltf.CopyFromAccessor[vec3](asset, sparse, dst); err != nil {
			panic(err)
		}
		err := gltf.IterateAccessor[vec3](asset, dense, func(v vec3) {
			sink += v[0]
		})
		if err != nil {
			panic(err)
		}
	}
	_ = sink
}

// buildAsset lays out a dense vec3 array, a sparse index array, and the
// sparse values in one synthetic buffer.
func buildAsset() (*gltf.Asset, *gltf.Accessor, *gltf.Accessor) {
	const sparseCount = 256

	baseLen := elements * 12
	idxLen := sparseCount * 4
	valLen := sparseCount * 12
	data := make([]byte, baseLen+idxLen+valLen)

	for i := 0; i < elements*3; i++ {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(float32(i)))
	}
	// Overlay every (elements/sparseCount)th element.
	step := uint32(elements / sparseCount)
	for k := 0; k < sparseCount; k++ {
		binary.LittleEndian.PutUint32(data[baseLen+k*4:], uint32(k)*step)
		for c := 0; c < 3; c++ {
			binary.LittleEndian.PutUint32(data[baseLen+idxLen+(k*3+c)*4:], math.Float32bits(-1))
		}
	}

	asset := &gltf.Asset{
		Buffers: []gltf.Buffer{{ByteLength: uint64(len(data)), Data: gltf.VectorData{Bytes: data}}},
		BufferViews: []gltf.BufferView{
			{Buffer: 0, ByteOffset: 0, ByteLength: uint64(baseLen)},
			{Buffer: 0, ByteOffset: uint64(baseLen), ByteLength: uint64(idxLen)},
			{Buffer: 0, ByteOffset: uint64(baseLen + idxLen), ByteLength: uint64(valLen)},
		},
	}

	view := 0
	dense := &gltf.Accessor{
		BufferView:    &view,
		ComponentType: gltf.ComponentFloat,
		Type:          gltf.AccessorVec3,
		Count:         elements,
	}
	sparse := &gltf.Accessor{
		BufferView:    &view,
		ComponentType: gltf.ComponentFloat,
		Type:          gltf.AccessorVec3,
		Count:         elements,
		Sparse: &gltf.SparseAccessor{
			Count:                sparseCount,
			IndicesBufferView:    1,
			IndicesComponentType: gltf.ComponentUnsignedInt,
			ValuesBufferView:     2,
		},
	}
	return asset, dense, sparse
}
