package brochure

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/png"

	"github.com/qmuntal/gltf"
)

const GLTF_VERSION = "2.0"

func CreateDoc() *gltf.Document {
	doc := &gltf.Document{}
	doc.Asset.Version = GLTF_VERSION
	doc.Asset.Generator = "go-brochure"
	srcIndex := uint32(0)
	doc.Scene = &srcIndex
	doc.Scenes = append(doc.Scenes, &gltf.Scene{})
	doc.Buffers = append(doc.Buffers, &gltf.Buffer{})
	return doc
}

func GetGltfBinary(doc *gltf.Document) ([]byte, error) {
	buf := &bytes.Buffer{}
	enc := gltf.NewEncoder(buf)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func calcPadding(offset, paddingUnit int) int {
	padding := offset % paddingUnit
	if padding != 0 {
		padding = paddingUnit - padding
	}
	return padding
}

// BuildGltf appends the mesh to doc. The node tree mirrors the hinge tree:
// each panel node carries its local transform so that a viewer can re-pose a
// wing by editing one rotation.
func BuildGltf(doc *gltf.Document, mh *Mesh) error {
	mtlBase := uint32(len(doc.Materials))
	buffer := doc.Buffers[0]
	nodeOf := make(map[int]uint32, len(mh.Nodes))
	for _, nd := range mh.Nodes {
		meshIndex, err := buildNodeMesh(doc, buffer, nd, mtlBase)
		if err != nil {
			return err
		}
		nodeOf[nd.Slot] = uint32(len(doc.Nodes))
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: nd.Name, Mesh: &meshIndex, Extras: nodeExtras(nd)})
	}
	// 父节点可能排在子节点之后, 全部节点建好后再连接
	for _, nd := range mh.Nodes {
		idx := nodeOf[nd.Slot]
		gn := doc.Nodes[idx]
		if parent, ok := nodeOf[nd.Parent]; ok && nd.Parent >= 0 && parent != idx {
			setTRS(gn, nd.Local)
			doc.Nodes[parent].Children = append(doc.Nodes[parent].Children, idx)
		} else {
			setTRS(gn, nd.World)
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, idx)
		}
	}
	return fillMaterials(doc, mh.Materials)
}

func setTRS(gn *gltf.Node, t Transform) {
	q := t.Quaternion()
	gn.Translation = [3]float32{float32(t.Translation[0]), float32(t.Translation[1]), float32(t.Translation[2])}
	gn.Rotation = [4]float32{float32(q[0]), float32(q[1]), float32(q[2]), float32(q[3])}
	gn.Scale = [3]float32{1, 1, 1}
}

func nodeExtras(nd *MeshNode) map[string]interface{} {
	return map[string]interface{}{
		"slot":   nd.Slot,
		"parent": nd.Parent,
		"yaw":    nd.Local.Yaw,
	}
}

func buildNodeMesh(doc *gltf.Document, buffer *gltf.Buffer, nd *MeshNode, mtlBase uint32) (uint32, error) {
	if len(nd.Normals) != len(nd.Vertices) || len(nd.TexCoords) != len(nd.Vertices) {
		return 0, fmt.Errorf("brochure: node %s has mismatched vertex attributes", nd.Name)
	}
	buf := bytes.NewBuffer(nil)
	startLen := buffer.ByteLength

	indecs := &gltf.BufferView{Buffer: 0, ByteOffset: startLen, Target: gltf.TargetElementArrayBuffer}
	for _, g := range nd.FaceGroup {
		for _, f := range g.Faces {
			binary.Write(buf, binary.LittleEndian, f.Vertex)
		}
	}
	indecs.ByteLength = uint32(buf.Len())
	bvIdx := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, indecs)

	postions := &gltf.BufferView{Buffer: 0, ByteOffset: uint32(buf.Len()) + startLen, Target: gltf.TargetArrayBuffer}
	binary.Write(buf, binary.LittleEndian, nd.Vertices)
	postions.ByteLength = uint32(buf.Len()) - postions.ByteOffset + startLen
	bvPos := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, postions)

	// glTF samples images from the top edge
	texcood := &gltf.BufferView{Buffer: 0, ByteOffset: uint32(buf.Len()) + startLen, Target: gltf.TargetArrayBuffer}
	for _, uv := range nd.TexCoords {
		binary.Write(buf, binary.LittleEndian, [2]float32{uv[0], 1 - uv[1]})
	}
	texcood.ByteLength = uint32(buf.Len()) - texcood.ByteOffset + startLen
	bvTexc := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, texcood)

	normalView := &gltf.BufferView{Buffer: 0, ByteOffset: uint32(buf.Len()) + startLen, Target: gltf.TargetArrayBuffer}
	binary.Write(buf, binary.LittleEndian, nd.Normals)
	normalView.ByteLength = uint32(buf.Len()) - normalView.ByteOffset + startLen
	bvNl := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, normalView)

	buffer.ByteLength += uint32(buf.Len())
	buffer.Data = append(buffer.Data, buf.Bytes()...)

	posIdx := uint32(len(doc.Accessors))
	box := nd.GetBoundbox()
	doc.Accessors = append(doc.Accessors,
		&gltf.Accessor{
			BufferView:    &bvPos,
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         uint32(len(nd.Vertices)),
			Min:           []float32{float32(box[0]), float32(box[1]), float32(box[2])},
			Max:           []float32{float32(box[3]), float32(box[4]), float32(box[5])},
		},
		&gltf.Accessor{
			BufferView:    &bvTexc,
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec2,
			Count:         uint32(len(nd.TexCoords)),
		},
		&gltf.Accessor{
			BufferView:    &bvNl,
			ComponentType: gltf.ComponentFloat,
			Type:          gltf.AccessorVec3,
			Count:         uint32(len(nd.Normals)),
		},
	)

	mesh := &gltf.Mesh{Name: nd.Name}
	var start uint32
	for _, patch := range nd.FaceGroup {
		index := uint32(len(doc.Accessors))
		doc.Accessors = append(doc.Accessors, &gltf.Accessor{
			BufferView:    &bvIdx,
			ByteOffset:    start * 12,
			ComponentType: gltf.ComponentUint,
			Type:          gltf.AccessorScalar,
			Count:         uint32(len(patch.Faces)) * 3,
		})
		start += uint32(len(patch.Faces))
		mtlId := uint32(patch.Batchid) + mtlBase
		mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
			Attributes: gltf.Attribute{
				"POSITION":   posIdx,
				"TEXCOORD_0": posIdx + 1,
				"NORMAL":     posIdx + 2,
			},
			Indices:  &index,
			Material: &mtlId,
			Mode:     gltf.PrimitiveTriangles,
		})
	}
	meshIndex := uint32(len(doc.Meshes))
	doc.Meshes = append(doc.Meshes, mesh)
	return meshIndex, nil
}

func fillMaterials(doc *gltf.Document, mts []MeshMaterial) error {
	texMap := make(map[*Texture]uint32)
	buffer := doc.Buffers[0]
	for i, mtl := range mts {
		gm := &gltf.Material{Name: materialName(i), DoubleSided: false, AlphaMode: gltf.AlphaOpaque}
		cl := mtl.GetColor()
		mc := float32(0)
		rs := roughnessOf(mtl)
		gm.PBRMetallicRoughness = &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{float32(cl[0]) / 255, float32(cl[1]) / 255, float32(cl[2]) / 255, 1},
			MetallicFactor:  &mc,
			RoughnessFactor: &rs,
		}
		if pm, ok := mtl.(*PbrMaterial); ok {
			mc = pm.Metallic
			em := pm.GetEmissive()
			gm.EmissiveFactor = [3]float32{float32(em[0]) / 255, float32(em[1]) / 255, float32(em[2]) / 255}
		}

		if mtl.HasTexture() {
			tex := mtl.GetTexture().Texture
			idx, ok := texMap[tex]
			if !ok {
				var err error
				idx, err = buildTexture(doc, buffer, tex)
				if err != nil {
					return err
				}
				texMap[tex] = idx
			}
			gm.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: idx}
		}
		doc.Materials = append(doc.Materials, gm)
	}
	return nil
}

func buildTexture(doc *gltf.Document, buffer *gltf.Buffer, tex *Texture) (uint32, error) {
	if tex.Image == nil {
		return 0, fmt.Errorf("brochure: texture %s: %w", tex.Name, ErrEmptyImage)
	}
	buf := bytes.NewBuffer(nil)
	if err := png.Encode(buf, tex.Image); err != nil {
		return 0, fmt.Errorf("brochure: encode texture %s: %w", tex.Name, err)
	}
	// 缓冲区视图按 4 字节对齐
	if pad := calcPadding(int(buffer.ByteLength), 4); pad > 0 {
		buffer.Data = append(buffer.Data, make([]byte, pad)...)
		buffer.ByteLength += uint32(pad)
	}
	imgIndex := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: buffer.ByteLength,
		ByteLength: uint32(buf.Len()),
	})
	buffer.ByteLength += uint32(buf.Len())
	buffer.Data = append(buffer.Data, buf.Bytes()...)

	imCount := uint32(len(doc.Images))
	doc.Images = append(doc.Images, &gltf.Image{Name: tex.Name, MimeType: "image/png", BufferView: &imgIndex})

	spCount := uint32(len(doc.Samplers))
	sp := &gltf.Sampler{WrapS: gltf.WrapClampToEdge, WrapT: gltf.WrapClampToEdge}
	if tex.Repeated {
		sp = &gltf.Sampler{WrapS: gltf.WrapRepeat, WrapT: gltf.WrapRepeat}
	}
	doc.Samplers = append(doc.Samplers, sp)

	texIndex := uint32(len(doc.Textures))
	doc.Textures = append(doc.Textures, &gltf.Texture{Sampler: &spCount, Source: &imCount})
	return texIndex, nil
}

// MeshToGltf builds a self-contained document for m.
func MeshToGltf(m *Mesh) (*gltf.Document, error) {
	doc := CreateDoc()
	if err := BuildGltf(doc, m); err != nil {
		return nil, err
	}
	if doc.Buffers[0].ByteLength == 0 {
		doc.Buffers = nil
	}
	return doc, nil
}
