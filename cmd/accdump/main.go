// Diagnostic tool for dumping glTF accessor contents from a raw buffer
// file. The buffer layout is described by a YAML descriptor, so payloads
// can be inspected without a full document parser:
//
//	buffer: mesh.bin
//	accessors:
//	  - name: positions
//	    type: VEC3
//	    component_type: FLOAT
//	    count: 24
//	  - name: indices
//	    type: SCALAR
//	    component_type: UNSIGNED_SHORT
//	    count: 36
//	    byte_offset: 288
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/robert-malhotra/go-gltf/gltf"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: accdump <descriptor.yaml>")
		os.Exit(1)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	desc, err := LoadDescriptor(os.Args[1])
	if err != nil {
		logger.Fatal("loading descriptor", zap.Error(err))
	}

	asset, accessors, err := desc.BuildAsset()
	if err != nil {
		logger.Fatal("building asset", zap.Error(err))
	}
	logger.Info("loaded buffer",
		zap.String("file", desc.Buffer),
		zap.Uint64("bytes", asset.Buffers[0].ByteLength),
		zap.Int("accessors", len(accessors)))

	for i := range accessors {
		acc := &accessors[i]
		fmt.Printf("=== Accessor %q (%s %s, count %d) ===\n",
			acc.Name, acc.Type, componentName(acc.ComponentType), acc.Count)
		if err := dump(asset, acc); err != nil {
			logger.Error("dumping accessor", zap.String("name", acc.Name), zap.Error(err))
		}
	}
}

// dump prints every element component by component.
func dump(asset *gltf.Asset, acc *gltf.Accessor) error {
	vals, err := gltf.AccessorFloat32s(asset, acc)
	if err != nil {
		return err
	}
	n := acc.Type.Components()
	for i := uint64(0); i < acc.Count; i++ {
		fmt.Printf("  [%d]", i)
		for c := 0; c < n; c++ {
			fmt.Printf(" %v", vals[int(i)*n+c])
		}
		fmt.Println()
	}
	return nil
}

func componentName(c gltf.ComponentType) string {
	switch c {
	case gltf.ComponentByte:
		return "BYTE"
	case gltf.ComponentUnsignedByte:
		return "UNSIGNED_BYTE"
	case gltf.ComponentShort:
		return "SHORT"
	case gltf.ComponentUnsignedShort:
		return "UNSIGNED_SHORT"
	case gltf.ComponentInt:
		return "INT"
	case gltf.ComponentUnsignedInt:
		return "UNSIGNED_INT"
	case gltf.ComponentFloat:
		return "FLOAT"
	case gltf.ComponentDouble:
		return "DOUBLE"
	default:
		return "INVALID"
	}
}
