package level

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/gloom/pkg/math2d"
	"github.com/taigrr/gloom/pkg/scene"
	"github.com/taigrr/gloom/pkg/texture"
)

// SpawnNode is the node name whose translation sets the player start.
const SpawnNode = "spawn"

// LoadGLB loads a floor plan from a glTF or GLB file. Every vertical triangle
// becomes a wall; node transforms are not applied.
//
// Wall textures are chosen per material: palette entries by material name
// first, then the material's embedded base color image (tiled), then its base
// color factor, then palette[""] or plain gray.
func LoadGLB(path string, palette map[string]texture.Texture) (*Level, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return FromDocument(doc, name, filepath.Dir(path), palette)
}

// FromDocument builds a level from an already parsed document. dir resolves
// external image URIs.
func FromDocument(doc *gltf.Document, name, dir string, palette map[string]texture.Texture) (*Level, error) {
	var tris []Triangle
	for _, m := range doc.Meshes {
		t, err := meshTriangles(doc, m)
		if err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
		tris = append(tris, t...)
	}

	prints := Footprints(tris)
	if len(prints) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrNoWalls)
	}

	textures := make(map[int]texture.Texture)
	segs := make([]scene.Segment, len(prints))
	for i, fp := range prints {
		tex, ok := textures[fp.Material]
		if !ok {
			tex = materialTexture(doc, dir, fp.Material, palette)
			textures[fp.Material] = tex
		}
		segs[i] = scene.Segment{A: fp.A, B: fp.B, Texture: tex}
	}

	sc, err := scene.New(segs)
	if err != nil {
		return nil, err
	}
	lvl := &Level{Name: name, Scene: sc}

	if spawn, ok := findSpawn(doc); ok {
		lvl.Spawn = spawn
	} else {
		lo, hi := lvl.Bounds()
		lvl.Spawn = lo.Lerp(hi, 0.5)
	}
	return lvl, nil
}

// meshTriangles reads every triangle primitive of m.
func meshTriangles(doc *gltf.Document, m *gltf.Mesh) ([]Triangle, error) {
	var tris []Triangle
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return nil, fmt.Errorf("read positions: %w", err)
		}

		material := -1
		if prim.Material != nil {
			material = *prim.Material
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return nil, fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			var tri Triangle
			tri.Material = material
			for j := range 3 {
				idx := indices[i+j]
				if idx < 0 || idx >= len(positions) {
					return nil, fmt.Errorf("index %d out of range", idx)
				}
				tri.V[j] = positions[idx]
			}
			tris = append(tris, tri)
		}
	}
	return tris, nil
}

// findSpawn looks for the spawn node and returns its floor position.
func findSpawn(doc *gltf.Document) (math2d.Vec2, bool) {
	for _, n := range doc.Nodes {
		if strings.EqualFold(n.Name, SpawnNode) {
			return math2d.V2(n.Translation[0], n.Translation[2]), true
		}
	}
	return math2d.Vec2{}, false
}

// materialTexture picks the wall texture for material index i.
func materialTexture(doc *gltf.Document, dir string, i int, palette map[string]texture.Texture) texture.Texture {
	fallback := texture.Texture(texture.Solid{Color: texture.Gray(0.5)})
	if t, ok := palette[""]; ok {
		fallback = t
	}
	if i < 0 || i >= len(doc.Materials) {
		return fallback
	}

	mat := doc.Materials[i]
	if t, ok := palette[mat.Name]; ok {
		return t
	}

	pbr := mat.PBRMetallicRoughness
	if pbr == nil {
		return fallback
	}
	if pbr.BaseColorTexture != nil {
		if img, err := embeddedImage(doc, dir, pbr.BaseColorTexture.Index); err == nil {
			return texture.Repeat{Image: img}
		}
	}
	if f := pbr.BaseColorFactor; f != nil {
		// Base color factors are already linear.
		return texture.Solid{Color: texture.RGB(f[0], f[1], f[2])}
	}
	return fallback
}

// embeddedImage decodes the image behind texture index ti, either from a
// buffer view or from a file next to the document.
func embeddedImage(doc *gltf.Document, dir string, ti int) (*texture.Image, error) {
	if ti < 0 || ti >= len(doc.Textures) || doc.Textures[ti].Source == nil {
		return nil, fmt.Errorf("texture %d has no image", ti)
	}
	src := *doc.Textures[ti].Source
	if src < 0 || src >= len(doc.Images) {
		return nil, fmt.Errorf("image %d out of range", src)
	}
	img := doc.Images[src]

	if img.BufferView != nil {
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil {
			return nil, fmt.Errorf("image %d: buffer has no data", src)
		}
		return texture.Decode(bytes.NewReader(buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]))
	}
	if img.URI != "" && !strings.HasPrefix(img.URI, "data:") {
		return texture.LoadImage(filepath.Join(dir, img.URI))
	}
	return nil, fmt.Errorf("image %d: unsupported source", src)
}

// readVec3Accessor reads float VEC3 data from a glTF accessor.
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math2d.Vec3, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 || accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float VEC3, got %v/%v", accessor.Type, accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]math2d.Vec3, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		result[i] = math2d.V3(readFloat32(b), readFloat32(b[4:]), readFloat32(b[8:]))
	}
	return result, nil
}

// readIndices reads unsigned scalar index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR indices, got %v", accessor.Type)
	}

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		b := data[i*stride:]
		switch size {
		case 1:
			result[i] = int(b[0])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			result[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return result, nil
}

// accessorBytes returns the bytes an accessor covers, starting at its first
// element, and the stride between elements.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := bufferView.ByteOffset + accessor.ByteOffset
	end := start
	if accessor.Count > 0 {
		end = start + (accessor.Count-1)*stride + elemSize
	}
	if end > len(buffer.Data) {
		return nil, 0, fmt.Errorf("accessor overruns buffer (%d > %d)", end, len(buffer.Data))
	}
	return buffer.Data[start:end], stride, nil
}

// readFloat32 reads a little-endian float32.
func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
