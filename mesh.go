package brochure

import (
	"fmt"
	"math"

	dvec3 "github.com/flywave/go3d/float64/vec3"

	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"
)

type Face struct {
	Vertex [3]uint32 `json:"vertex"`
}

// MeshTriangle 同一材质的一组三角形
type MeshTriangle struct {
	Batchid int32   `json:"batchid"`
	Faces   []*Face `json:"faces"`
}

// MeshNode 单个面板的盒子网格, 顶点位于面板局部坐标系
type MeshNode struct {
	Name      string          `json:"name"`
	Slot      int             `json:"slot"`
	Parent    int             `json:"parent"`
	Local     Transform       `json:"local"`
	World     Transform       `json:"world"`
	Vertices  []vec3.T        `json:"vertices"`
	Normals   []vec3.T        `json:"normals,omitempty"`
	TexCoords []vec2.T        `json:"texCoords,omitempty"`
	FaceGroup []*MeshTriangle `json:"faceGroup,omitempty"`
}

func (nd *MeshNode) GetBoundbox() *[6]float64 {
	minX := math.MaxFloat64
	minY := math.MaxFloat64
	minZ := math.MaxFloat64
	maxX := -math.MaxFloat64
	maxY := -math.MaxFloat64
	maxZ := -math.MaxFloat64
	for i := range nd.Vertices {
		minX = math.Min(minX, float64(nd.Vertices[i][0]))
		minY = math.Min(minY, float64(nd.Vertices[i][1]))
		minZ = math.Min(minZ, float64(nd.Vertices[i][2]))

		maxX = math.Max(maxX, float64(nd.Vertices[i][0]))
		maxY = math.Max(maxY, float64(nd.Vertices[i][1]))
		maxZ = math.Max(maxZ, float64(nd.Vertices[i][2]))
	}
	return &[6]float64{minX, minY, minZ, maxX, maxY, maxZ}
}

// WorldVertices returns the vertices moved into assembly space.
func (nd *MeshNode) WorldVertices() []dvec3.T {
	out := make([]dvec3.T, len(nd.Vertices))
	for i, v := range nd.Vertices {
		out[i] = nd.World.Apply(dvec3.T{float64(v[0]), float64(v[1]), float64(v[2])})
	}
	return out
}

func (nd *MeshNode) WorldNormals() []dvec3.T {
	out := make([]dvec3.T, len(nd.Normals))
	for i, n := range nd.Normals {
		out[i] = nd.World.ApplyNormal(dvec3.T{float64(n[0]), float64(n[1]), float64(n[2])})
	}
	return out
}

func (nd *MeshNode) FaceCount() int {
	n := 0
	for _, g := range nd.FaceGroup {
		n += len(g.Faces)
	}
	return n
}

type Mesh struct {
	Materials []MeshMaterial `json:"materials,omitempty"`
	Nodes     []*MeshNode    `json:"nodes,omitempty"`
}

func NewMesh() *Mesh {
	return &Mesh{}
}

func (m *Mesh) NodeCount() int {
	return len(m.Nodes)
}

func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// ComputeBBox returns the bounds of all nodes in assembly space.
func (m *Mesh) ComputeBBox() dvec3.Box {
	if len(m.Nodes) == 0 {
		return dvec3.Box{}
	}

	bbox := dvec3.MinBox
	for _, nd := range m.Nodes {
		for _, v := range nd.WorldVertices() {
			bbx := dvec3.Box{Min: v, Max: v}
			bbox.Join(&bbx)
		}
	}
	return bbox
}

// Textures returns the distinct source textures referenced by the materials,
// in first-use order.
func (m *Mesh) Textures() []*Texture {
	var out []*Texture
	seen := make(map[*Texture]bool)
	for _, mtl := range m.Materials {
		if !mtl.HasTexture() {
			continue
		}
		t := mtl.GetTexture().Texture
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// 盒子每个面的法线与 UV 轴, 满足 U x V = N
var boxFaces = [FaceCount]struct {
	n, u, v dvec3.T
}{
	FACE_POS_X: {n: dvec3.T{1, 0, 0}, u: dvec3.T{0, 0, -1}, v: dvec3.T{0, 1, 0}},
	FACE_NEG_X: {n: dvec3.T{-1, 0, 0}, u: dvec3.T{0, 0, 1}, v: dvec3.T{0, 1, 0}},
	FACE_POS_Y: {n: dvec3.T{0, 1, 0}, u: dvec3.T{1, 0, 0}, v: dvec3.T{0, 0, -1}},
	FACE_NEG_Y: {n: dvec3.T{0, -1, 0}, u: dvec3.T{1, 0, 0}, v: dvec3.T{0, 0, 1}},
	FACE_OUTER: {n: dvec3.T{0, 0, 1}, u: dvec3.T{1, 0, 0}, v: dvec3.T{0, 1, 0}},
	FACE_INNER: {n: dvec3.T{0, 0, -1}, u: dvec3.T{-1, 0, 0}, v: dvec3.T{0, 1, 0}},
}

var faceCorners = [4][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func axisScale(axis, half dvec3.T, s float64) dvec3.T {
	return dvec3.T{axis[0] * half[0] * s, axis[1] * half[1] * s, axis[2] * half[2] * s}
}

func validSize(s dvec3.T) bool {
	for _, c := range s {
		if !(c > 0) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// BoxNode builds the box for one panel with each face's texture window baked
// into its UVs. mtlIndex maps a face to its material index.
func BoxNode(p *Panel, mtlIndex [FaceCount]int32) *MeshNode {
	nd := &MeshNode{
		Name:   fmt.Sprintf("panel_%d", p.Slot),
		Slot:   p.Slot,
		Parent: p.Parent,
		Local:  p.Local,
	}
	half := dvec3.T{p.Size[0] / 2, p.Size[1] / 2, p.Size[2] / 2}
	for f, bf := range boxFaces {
		var slice *TextureSlice
		if m := p.Faces[f]; m != nil && m.HasTexture() {
			slice = m.GetTexture()
		}
		base := uint32(len(nd.Vertices))
		centre := axisScale(bf.n, half, 1)
		for _, c := range faceCorners {
			du := axisScale(bf.u, half, 2*c[0]-1)
			dv := axisScale(bf.v, half, 2*c[1]-1)
			pos := dvec3.Add(&centre, &du)
			pos = dvec3.Add(&pos, &dv)
			nd.Vertices = append(nd.Vertices, vec3.T{float32(pos[0]), float32(pos[1]), float32(pos[2])})
			nd.Normals = append(nd.Normals, vec3.T{float32(bf.n[0]), float32(bf.n[1]), float32(bf.n[2])})
			u, v := c[0], c[1]
			if slice != nil {
				u, v = slice.MapUV(u, v)
			}
			nd.TexCoords = append(nd.TexCoords, vec2.T{float32(u), float32(v)})
		}
		nd.FaceGroup = append(nd.FaceGroup, &MeshTriangle{
			Batchid: mtlIndex[f],
			Faces: []*Face{
				{Vertex: [3]uint32{base, base + 1, base + 2}},
				{Vertex: [3]uint32{base, base + 2, base + 3}},
			},
		})
	}
	return nd
}

// BuildMesh converts the assembly into box meshes. Panels whose size or
// hierarchy is malformed are skipped; an empty assembly yields an empty mesh.
func BuildMesh(asm *Assembly) *Mesh {
	m := NewMesh()
	if asm == nil {
		return m
	}
	mtls := newMaterialTable(m)
	for i := range asm.Panels {
		p := &asm.Panels[i]
		if !validSize(p.Size) {
			continue
		}
		world, err := asm.World(i)
		if err != nil {
			continue
		}
		var idx [FaceCount]int32
		for f := range idx {
			idx[f] = mtls.index(p.Faces[f])
		}
		nd := BoxNode(p, idx)
		nd.World = world
		m.Nodes = append(m.Nodes, nd)
	}
	return m
}

// materialTable shares one material per source texture: UV windows are
// baked into the vertices, so faces only differ by image.
type materialTable struct {
	mesh    *Mesh
	neutral int32
	byTex   map[*Texture]int32
}

func newMaterialTable(m *Mesh) *materialTable {
	return &materialTable{mesh: m, neutral: -1, byTex: make(map[*Texture]int32)}
}

func (t *materialTable) index(mtl MeshMaterial) int32 {
	if mtl == nil || !mtl.HasTexture() {
		if t.neutral < 0 {
			t.neutral = t.add(NeutralMaterial())
		}
		return t.neutral
	}
	tex := mtl.GetTexture().Texture
	if i, ok := t.byTex[tex]; ok {
		return i
	}
	i := t.add(TexturedMaterial(NewPanelSlice(tex)))
	t.byTex[tex] = i
	return i
}

func (t *materialTable) add(mtl MeshMaterial) int32 {
	t.mesh.Materials = append(t.mesh.Materials, mtl)
	return int32(len(t.mesh.Materials) - 1)
}
