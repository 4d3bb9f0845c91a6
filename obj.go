package brochure

import (
	"bufio"
	"fmt"
	"io"
)

const (
	vertTmp   = "v %f %f %f\n"
	nvTmp     = "vn %f %f %f\n"
	uvTmp     = "vt %f %f\n"
	faceTemp3 = "f %d/%d/%d %d/%d/%d %d/%d/%d\n"
)

func materialName(i int) string {
	return fmt.Sprintf("material_%d", i)
}

// WriteOBJ writes the mesh in assembly space. Every node carries one normal
// and one texture coordinate per vertex, so v, vt and vn share indices.
func WriteOBJ(w io.Writer, m *Mesh, mtllib string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %s\n", ExportName)
	if mtllib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtllib)
	}
	var vertCount uint32 = 1
	for _, nd := range m.Nodes {
		if len(nd.Normals) != len(nd.Vertices) || len(nd.TexCoords) != len(nd.Vertices) {
			continue
		}
		fmt.Fprintf(bw, "o %s\n", nd.Name)
		for _, v := range nd.WorldVertices() {
			fmt.Fprintf(bw, vertTmp, v[0], v[1], v[2])
		}
		for _, v := range nd.TexCoords {
			fmt.Fprintf(bw, uvTmp, v[0], v[1])
		}
		for _, v := range nd.WorldNormals() {
			fmt.Fprintf(bw, nvTmp, v[0], v[1], v[2])
		}
		for _, g := range nd.FaceGroup {
			fmt.Fprintf(bw, "usemtl %s\n", materialName(int(g.Batchid)))
			for _, face := range g.Faces {
				a, b, c := face.Vertex[0]+vertCount, face.Vertex[1]+vertCount, face.Vertex[2]+vertCount
				fmt.Fprintf(bw, faceTemp3, a, a, a, b, b, b, c, c, c)
			}
		}
		vertCount += uint32(len(nd.Vertices))
	}
	return bw.Flush()
}

// WriteMTL writes one material per mesh material; texNames maps a texture to
// the file name it is exported under.
func WriteMTL(w io.Writer, m *Mesh, texNames map[*Texture]string) error {
	bw := bufio.NewWriter(w)
	for idx, mtl := range m.Materials {
		fmt.Fprintf(bw, "newmtl %s\n", materialName(idx))
		bw.WriteString("Ka 0.200000 0.200000 0.200000\n")
		bw.WriteString("Ks 0.000000 0.000000 0.000000\n")
		fmt.Fprintf(bw, "Ns %f\n", (1-roughnessOf(mtl))*1000)
		bw.WriteString("d 1.000000\n")
		bw.WriteString("illum 2\n")
		cl := mtl.GetColor()
		fmt.Fprintf(bw, "Kd %f %f %f\n", float32(cl[0])/255, float32(cl[1])/255, float32(cl[2])/255)
		if mtl.HasTexture() {
			if name, ok := texNames[mtl.GetTexture().Texture]; ok {
				fmt.Fprintf(bw, "map_Kd %s\n", name)
			}
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}
