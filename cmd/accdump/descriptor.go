package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/robert-malhotra/go-gltf/gltf"
)

// Descriptor describes the accessors laid over one raw buffer file.
type Descriptor struct {
	Buffer    string              `yaml:"buffer"`
	Accessors []AccessorDescriptor `yaml:"accessors"`

	// dir of the descriptor file; buffer paths resolve relative to it.
	dir string
}

// AccessorDescriptor is one accessor entry in the YAML descriptor.
type AccessorDescriptor struct {
	Name          string  `yaml:"name"`
	Type          string  `yaml:"type"`           // SCALAR, VEC2..VEC4, MAT2..MAT4
	ComponentType string  `yaml:"component_type"` // BYTE..DOUBLE
	Count         uint64  `yaml:"count"`
	ByteOffset    uint64  `yaml:"byte_offset"`
	ByteStride    *uint64 `yaml:"byte_stride"`
}

// LoadDescriptor parses the YAML descriptor at path.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}

	var d Descriptor
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing descriptor: %w", err)
	}
	if d.Buffer == "" {
		return nil, fmt.Errorf("descriptor missing buffer path")
	}
	if len(d.Accessors) == 0 {
		return nil, fmt.Errorf("descriptor has no accessors")
	}
	d.dir = filepath.Dir(path)
	return &d, nil
}

// BuildAsset loads the buffer file and assembles an asset with one buffer
// view per accessor entry.
func (d *Descriptor) BuildAsset() (*gltf.Asset, []gltf.Accessor, error) {
	data, err := os.ReadFile(filepath.Join(d.dir, d.Buffer))
	if err != nil {
		return nil, nil, fmt.Errorf("reading buffer: %w", err)
	}

	asset := &gltf.Asset{
		Buffers: []gltf.Buffer{{
			Name:       d.Buffer,
			ByteLength: uint64(len(data)),
			Data:       gltf.VectorData{Bytes: data},
		}},
	}

	accessors := make([]gltf.Accessor, 0, len(d.Accessors))
	for i, ad := range d.Accessors {
		at, err := parseAccessorType(ad.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("accessor %d: %w", i, err)
		}
		ct, err := parseComponentType(ad.ComponentType)
		if err != nil {
			return nil, nil, fmt.Errorf("accessor %d: %w", i, err)
		}

		view := len(asset.BufferViews)
		asset.BufferViews = append(asset.BufferViews, gltf.BufferView{
			Buffer:     0,
			ByteOffset: 0,
			ByteLength: uint64(len(data)),
			ByteStride: ad.ByteStride,
		})
		accessors = append(accessors, gltf.Accessor{
			Name:          ad.Name,
			BufferView:    &view,
			ByteOffset:    ad.ByteOffset,
			ComponentType: ct,
			Type:          at,
			Count:         ad.Count,
		})
	}
	return asset, accessors, nil
}

func parseAccessorType(s string) (gltf.AccessorType, error) {
	switch strings.ToUpper(s) {
	case "SCALAR":
		return gltf.AccessorScalar, nil
	case "VEC2":
		return gltf.AccessorVec2, nil
	case "VEC3":
		return gltf.AccessorVec3, nil
	case "VEC4":
		return gltf.AccessorVec4, nil
	case "MAT2":
		return gltf.AccessorMat2, nil
	case "MAT3":
		return gltf.AccessorMat3, nil
	case "MAT4":
		return gltf.AccessorMat4, nil
	default:
		return gltf.AccessorInvalid, fmt.Errorf("unknown accessor type %q", s)
	}
}

func parseComponentType(s string) (gltf.ComponentType, error) {
	switch strings.ToUpper(s) {
	case "BYTE":
		return gltf.ComponentByte, nil
	case "UNSIGNED_BYTE":
		return gltf.ComponentUnsignedByte, nil
	case "SHORT":
		return gltf.ComponentShort, nil
	case "UNSIGNED_SHORT":
		return gltf.ComponentUnsignedShort, nil
	case "INT":
		return gltf.ComponentInt, nil
	case "UNSIGNED_INT":
		return gltf.ComponentUnsignedInt, nil
	case "FLOAT":
		return gltf.ComponentFloat, nil
	case "DOUBLE":
		return gltf.ComponentDouble, nil
	default:
		return gltf.ComponentInvalid, fmt.Errorf("unknown component type %q", s)
	}
}
