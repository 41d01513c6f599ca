package gltf

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"

	"roomview/internal/scenegraph"
)

// Result is what LoadAsync delivers: either a scene root or an error.
type Result struct {
	Path string
	Root *scenegraph.Node
	Err  error
}

// Load reads a .gltf or .glb file and builds its default scene.
// External buffers are resolved relative to the file's directory.
func Load(path string) (*scenegraph.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gltf: %w", err)
	}
	return Parse(data, filepath.Dir(path))
}

// LoadAsync loads path on its own goroutine. The returned channel is
// buffered and receives exactly one Result unless ctx is done first, in
// which case it is closed without a value.
func LoadAsync(ctx context.Context, path string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		root, err := Load(path)
		if ctx.Err() != nil {
			return
		}
		out <- Result{Path: path, Root: root, Err: err}
	}()
	return out
}

// Parse builds the default scene of a glTF JSON document or GLB blob.
// dir is used to resolve relative buffer URIs; it may be empty when all
// buffers are embedded.
func Parse(data []byte, dir string) (*scenegraph.Node, error) {
	doc, bin := data, []byte(nil)
	if IsGLB(data) {
		var err error
		if doc, bin, err = SplitGLB(data); err != nil {
			return nil, err
		}
	}
	f, err := Decode(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("gltf: %w", err)
	}
	if err := f.Check(); err != nil {
		return nil, err
	}
	buffers, err := f.loadBuffers(bin, dir)
	if err != nil {
		return nil, err
	}
	b := &builder{
		f:         f,
		buffers:   buffers,
		materials: make(map[int64]*scenegraph.Material),
		meshes:    make(map[int64][]primitive),
	}
	return b.scene()
}

func (f *GLTF) loadBuffers(bin []byte, dir string) ([][]byte, error) {
	out := make([][]byte, len(f.Buffers))
	for i, b := range f.Buffers {
		var data []byte
		switch {
		case b.URI == "":
			if i != 0 || bin == nil {
				return nil, newErr(fmt.Sprintf("buffer %d has no data", i))
			}
			data = bin
		case strings.HasPrefix(b.URI, "data:"):
			comma := strings.IndexByte(b.URI, ',')
			if comma < 0 || !strings.HasSuffix(b.URI[:comma], ";base64") {
				return nil, newErr(fmt.Sprintf("buffer %d: unsupported data URI", i))
			}
			var err error
			if data, err = base64.StdEncoding.DecodeString(b.URI[comma+1:]); err != nil {
				return nil, fmt.Errorf("gltf: buffer %d: %w", i, err)
			}
		default:
			var err error
			if data, err = os.ReadFile(filepath.Join(dir, filepath.FromSlash(b.URI))); err != nil {
				return nil, fmt.Errorf("gltf: buffer %d: %w", i, err)
			}
		}
		if int64(len(data)) < b.ByteLength {
			return nil, newErr(fmt.Sprintf("buffer %d is shorter than its byteLength", i))
		}
		out[i] = data
	}
	return out, nil
}

type primitive struct {
	mesh *scenegraph.Mesh
	mat  *scenegraph.Material
}

type builder struct {
	f       *GLTF
	buffers [][]byte

	// Materials are shared between every primitive that references the
	// same glTF material index.
	materials map[int64]*scenegraph.Material
	fallback  *scenegraph.Material
	meshes    map[int64][]primitive

	depth int
}

// maxDepth bounds recursion on malformed assets whose children form a cycle.
const maxDepth = 256

func (b *builder) scene() (*scenegraph.Node, error) {
	if len(b.f.Scenes) == 0 {
		return nil, ErrNoScene
	}
	idx := int64(0)
	if b.f.Scene != nil {
		idx = *b.f.Scene
	}
	s := b.f.Scenes[idx]
	name := s.Name
	if name == "" {
		name = "Scene"
	}
	root := scenegraph.NewNode(name)
	for _, n := range s.Nodes {
		child, err := b.node(n)
		if err != nil {
			return nil, err
		}
		root.Add(child)
	}
	return root, nil
}

func (b *builder) node(idx int64) (*scenegraph.Node, error) {
	if b.depth++; b.depth > maxDepth {
		return nil, newErr("node hierarchy too deep or cyclic")
	}
	defer func() { b.depth-- }()

	src := &b.f.Nodes[idx]
	name := src.Name
	if name == "" {
		name = fmt.Sprintf("node_%d", idx)
	}
	n := scenegraph.NewNode(name)
	n.SetLocal(localMatrix(src))

	if src.Mesh != nil {
		prims, err := b.mesh(*src.Mesh)
		if err != nil {
			return nil, err
		}
		switch len(prims) {
		case 0:
		case 1:
			n.Mesh, n.Material = prims[0].mesh, prims[0].mat
		default:
			for i, p := range prims {
				n.Add(scenegraph.NewMeshNode(fmt.Sprintf("%s_%d", name, i), p.mesh, p.mat))
			}
		}
	}
	for _, c := range src.Children {
		child, err := b.node(c)
		if err != nil {
			return nil, err
		}
		n.Add(child)
	}
	return n, nil
}

func localMatrix(n *Node) mgl32.Mat4 {
	if n.Matrix != nil {
		return mgl32.Mat4(*n.Matrix)
	}
	m := mgl32.Ident4()
	if t := n.Translation; t != nil {
		m = m.Mul4(mgl32.Translate3D(t[0], t[1], t[2]))
	}
	if r := n.Rotation; r != nil {
		q := mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
		m = m.Mul4(q.Normalize().Mat4())
	}
	if s := n.Scale; s != nil {
		m = m.Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
	}
	return m
}

// mesh decodes the triangle primitives of mesh idx once; nodes instancing
// the same glTF mesh share the geometry.
func (b *builder) mesh(idx int64) ([]primitive, error) {
	if prims, ok := b.meshes[idx]; ok {
		return prims, nil
	}
	var prims []primitive
	for i, p := range b.f.Meshes[idx].Primitives {
		mode := int64(TRIANGLES)
		if p.Mode != nil {
			mode = *p.Mode
		}
		pos, ok := p.Attributes["POSITION"]
		if !ok || mode < TRIANGLES {
			continue
		}
		positions, err := b.f.readVec3(pos, b.buffers)
		if err != nil {
			return nil, fmt.Errorf("gltf: mesh %d primitive %d: %w", idx, i, err)
		}
		var indices []uint32
		if p.Indices != nil {
			if indices, err = b.f.readIndices(*p.Indices, b.buffers); err != nil {
				return nil, fmt.Errorf("gltf: mesh %d primitive %d: %w", idx, i, err)
			}
		} else {
			indices = make([]uint32, len(positions))
			for k := range indices {
				indices[k] = uint32(k)
			}
		}
		for _, v := range indices {
			if int(v) >= len(positions) {
				return nil, newErr(fmt.Sprintf("mesh %d primitive %d: index %d out of range", idx, i, v))
			}
		}
		tris, _ := triangulate(mode, indices)
		if len(tris) == 0 {
			continue
		}
		prims = append(prims, primitive{
			mesh: scenegraph.NewMesh(positions, tris),
			mat:  b.material(p.Material),
		})
	}
	b.meshes[idx] = prims
	return prims, nil
}

func (b *builder) material(idx *int64) *scenegraph.Material {
	if idx == nil {
		if b.fallback == nil {
			b.fallback = scenegraph.NewMaterial("default", scenegraph.Color{R: 1, G: 1, B: 1})
		}
		return b.fallback
	}
	if m, ok := b.materials[*idx]; ok {
		return m
	}
	src := b.f.Materials[*idx]
	m := scenegraph.NewMaterial(src.Name, scenegraph.Color{R: 1, G: 1, B: 1})
	m.DoubleSided = src.DoubleSided
	m.Extras = src.Extras
	if pbr := src.PBRMetallicRoughness; pbr != nil {
		if f := pbr.BaseColorFactor; f != nil {
			m.SetColor(scenegraph.Color{R: f[0], G: f[1], B: f[2]})
			m.Opacity = f[3]
		}
		if pbr.BaseColorTexture != nil {
			m.Texture = int(pbr.BaseColorTexture.Index)
		}
		if pbr.MetallicFactor != nil {
			m.Metallic = *pbr.MetallicFactor
		}
		if pbr.RoughnessFactor != nil {
			m.Roughness = *pbr.RoughnessFactor
		}
	}
	b.materials[*idx] = m
	return m
}
