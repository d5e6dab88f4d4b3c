package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/tinyrender/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Options
	CalculateNormals bool
	SmoothNormals    bool
	LoadTextures     bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		SmoothNormals:    true,
		LoadTextures:     true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file, or a .gltf file with embedded
// or adjacent buffers.
func LoadGLB(path string) (*Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := l.FromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	if l.LoadTextures {
		mesh.Materials = loadMaterials(doc, filepath.Dir(path))
	}
	return mesh, nil
}

// FromDocument extracts the triangle geometry of every mesh in doc.
func (l *GLTFLoader) FromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	// Calculate normals if needed
	hasNormals := false
	for _, v := range mesh.Vertices {
		if v.Normal.Len() > 0.001 {
			hasNormals = true
			break
		}
	}

	if l.CalculateNormals && !hasNormals {
		if l.SmoothNormals {
			mesh.CalculateSmoothNormals()
		} else {
			mesh.CalculateNormals()
		}
	}

	mesh.CalculateBounds()

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs []math3d.Vec2
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		material := -1
		if prim.Material != nil {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		for i := range positions {
			v := MeshVertex{
				Position: positions[i],
			}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(uvs) {
				// GLTF puts V=0 at the top of the texture; maps sample the
				// top row at V=1.
				v.UV = math3d.V2(uvs[i].X, 1.0-uvs[i].Y)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			face := Face{Material: material}
			for k := range 3 {
				if indices[i+k] >= len(positions) {
					return fmt.Errorf("index %d out of range (%d vertices)", indices[i+k], len(positions))
				}
				face.V[k] = baseVertex + indices[i+k]
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}

	return nil
}

// readVec3Accessor reads Vec3 data from a GLTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][3]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC3")
	}

	result := make([]math3d.Vec3, len(floats))
	for i, f := range floats {
		result[i] = math3d.V3(float64(f[0]), float64(f[1]), float64(f[2]))
	}

	return result, nil
}

// readVec2Accessor reads Vec2 data from a GLTF accessor.
func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec2, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	floats, ok := data.([][2]float32)
	if !ok {
		return nil, fmt.Errorf("unexpected data type for VEC2")
	}

	result := make([]math3d.Vec2, len(floats))
	for i, f := range floats {
		result[i] = math3d.V2(float64(f[0]), float64(f[1]))
	}

	return result, nil
}

// readIndices reads index data from a GLTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	data, err := readAccessorData(doc, accessor)
	if err != nil {
		return nil, err
	}

	switch v := data.(type) {
	case []uint8:
		return widen(v), nil
	case []uint16:
		return widen(v), nil
	case []uint32:
		return widen(v), nil
	default:
		return nil, fmt.Errorf("unexpected index type: %T", data)
	}
}

func widen[T uint8 | uint16 | uint32](v []T) []int {
	result := make([]int, len(v))
	for i, x := range v {
		result[i] = int(x)
	}
	return result
}

// readAccessorData reads raw data from a GLTF accessor.
func readAccessorData(doc *gltf.Document, accessor *gltf.Accessor) (any, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	bufData := doc.Buffers[bufferView.Buffer].Data
	if bufData == nil {
		return nil, fmt.Errorf("buffer has no data")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	count := accessor.Count

	var elemSize int
	switch accessor.Type {
	case gltf.AccessorVec3:
		elemSize = 12
	case gltf.AccessorVec2:
		elemSize = 8
	case gltf.AccessorScalar:
		switch accessor.ComponentType {
		case gltf.ComponentUbyte:
			elemSize = 1
		case gltf.ComponentUshort:
			elemSize = 2
		case gltf.ComponentUint:
			elemSize = 4
		}
	}
	if elemSize == 0 {
		return nil, fmt.Errorf("unsupported accessor type: %v / %v", accessor.Type, accessor.ComponentType)
	}
	if stride == 0 {
		stride = elemSize
	}
	if count > 0 && start+(count-1)*stride+elemSize > len(bufData) {
		return nil, fmt.Errorf("accessor reads past end of buffer")
	}

	le := binary.LittleEndian
	switch accessor.Type {
	case gltf.AccessorVec3:
		result := make([][3]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 3 {
				result[i][j] = math.Float32frombits(le.Uint32(bufData[offset+j*4:]))
			}
		}
		return result, nil

	case gltf.AccessorVec2:
		result := make([][2]float32, count)
		for i := range count {
			offset := start + i*stride
			for j := range 2 {
				result[i][j] = math.Float32frombits(le.Uint32(bufData[offset+j*4:]))
			}
		}
		return result, nil
	}

	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		result := make([]uint8, count)
		for i := range count {
			result[i] = bufData[start+i*stride]
		}
		return result, nil
	case gltf.ComponentUshort:
		result := make([]uint16, count)
		for i := range count {
			result[i] = le.Uint16(bufData[start+i*stride:])
		}
		return result, nil
	default:
		result := make([]uint32, count)
		for i := range count {
			result[i] = le.Uint32(bufData[start+i*stride:])
		}
		return result, nil
	}
}

// loadMaterials reads the base color factor and texture of every material.
// Textures that cannot be found or decoded are left nil.
func loadMaterials(doc *gltf.Document, dir string) []Material {
	materials := make([]Material, len(doc.Materials))
	for i, m := range doc.Materials {
		mat := Material{Name: m.Name, BaseColor: [4]float64{1, 1, 1, 1}}
		if pbr := m.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				mat.BaseColor = *pbr.BaseColorFactor
			}
			if pbr.BaseColorTexture != nil {
				mat.BaseMap = textureImage(doc, pbr.BaseColorTexture.Index, dir)
			}
		}
		materials[i] = mat
	}
	return materials
}

// textureImage decodes the image behind texture index ti.
func textureImage(doc *gltf.Document, ti int, dir string) image.Image {
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti].Source == nil {
		return nil
	}
	src := doc.Images[*doc.Textures[ti].Source]

	var data []byte
	if src.BufferView != nil {
		bv := doc.BufferViews[*src.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil || bv.ByteOffset+bv.ByteLength > len(buf.Data) {
			return nil
		}
		data = buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
	} else if src.URI != "" {
		var err error
		data, err = os.ReadFile(filepath.Join(dir, src.URI))
		if err != nil {
			return nil
		}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil
	}
	return img
}
