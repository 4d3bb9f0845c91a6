package brochure

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// TextureFormat 导出 OBJ 时贴图文件的编码
type TextureFormat string

const (
	TexturePNG  TextureFormat = "png"
	TextureJPEG TextureFormat = "jpeg"
	TextureWebP TextureFormat = "webp"
)

func (f TextureFormat) Valid() bool {
	return f == TexturePNG || f == TextureJPEG || f == TextureWebP
}

func (f TextureFormat) ext() string {
	if f == TextureJPEG {
		return "jpg"
	}
	return string(f)
}

func (f TextureFormat) mime() string {
	return "image/" + string(f)
}

type ExportOptions struct {
	Name          string        `json:"name"`
	TextureFormat TextureFormat `json:"textureFormat"`
	JpegQuality   int           `json:"jpegQuality"`
}

func DefaultExportOptions() ExportOptions {
	return ExportOptions{Name: ExportName, TextureFormat: TexturePNG, JpegQuality: 95}
}

func (o ExportOptions) normalized() ExportOptions {
	d := DefaultExportOptions()
	if o.Name == "" {
		o.Name = d.Name
	}
	if !o.TextureFormat.Valid() {
		o.TextureFormat = d.TextureFormat
	}
	if o.JpegQuality <= 0 || o.JpegQuality > 100 {
		o.JpegQuality = d.JpegQuality
	}
	return o
}

type Artifact struct {
	Name     string
	MimeType string
	Data     []byte
}

// Bundle 一次导出生成的全部文件
type Bundle struct {
	Artifacts []Artifact
}

func (b *Bundle) add(name, mime string, data []byte) {
	b.Artifacts = append(b.Artifacts, Artifact{Name: name, MimeType: mime, Data: data})
}

func (b *Bundle) Get(name string) (Artifact, bool) {
	for _, a := range b.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

func (b *Bundle) Size() int {
	n := 0
	for _, a := range b.Artifacts {
		n += len(a.Data)
	}
	return n
}

// WriteDir writes every artifact into dir, creating it if needed.
func (b *Bundle) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, a := range b.Artifacts {
		if err := os.WriteFile(filepath.Join(dir, a.Name), a.Data, 0o644); err != nil {
			return fmt.Errorf("brochure: write %s: %w", a.Name, err)
		}
	}
	return nil
}

func sceneMesh(s *Scene) *Mesh {
	if s == nil {
		return NewMesh()
	}
	return BuildMesh(s.Assembly)
}

// ExportOBJ snapshots the scene as OBJ with its MTL and one image per source texture.
func ExportOBJ(s *Scene, opts ExportOptions) (*Bundle, error) {
	opts = opts.normalized()
	m := sceneMesh(s)
	b := &Bundle{}
	mtlName := opts.Name + ".mtl"

	texNames := make(map[*Texture]string)
	var images []Artifact
	for i, tex := range m.Textures() {
		name := fmt.Sprintf("%s_tex_%d.%s", opts.Name, i, opts.TextureFormat.ext())
		data, err := encodeTexture(tex, opts)
		if err != nil {
			return nil, err
		}
		texNames[tex] = name
		images = append(images, Artifact{Name: name, MimeType: opts.TextureFormat.mime(), Data: data})
	}

	obj := &bytes.Buffer{}
	if err := WriteOBJ(obj, m, mtlName); err != nil {
		return nil, err
	}
	mtl := &bytes.Buffer{}
	if err := WriteMTL(mtl, m, texNames); err != nil {
		return nil, err
	}
	b.add(opts.Name+".obj", "model/obj", obj.Bytes())
	b.add(mtlName, "model/mtl", mtl.Bytes())
	b.Artifacts = append(b.Artifacts, images...)
	return b, nil
}

func ExportGLB(s *Scene, opts ExportOptions) (*Bundle, error) {
	opts = opts.normalized()
	doc, err := MeshToGltf(sceneMesh(s))
	if err != nil {
		return nil, err
	}
	data, err := GetGltfBinary(doc)
	if err != nil {
		return nil, fmt.Errorf("brochure: encode glb: %w", err)
	}
	b := &Bundle{}
	b.add(opts.Name+".glb", "model/gltf-binary", data)
	return b, nil
}

func encodeTexture(tex *Texture, opts ExportOptions) ([]byte, error) {
	if tex.Image == nil {
		return nil, fmt.Errorf("brochure: texture %s: %w", tex.Name, ErrEmptyImage)
	}
	buf := &bytes.Buffer{}
	var err error
	switch opts.TextureFormat {
	case TextureJPEG:
		err = jpeg.Encode(buf, tex.Image, &jpeg.Options{Quality: opts.JpegQuality})
	case TextureWebP:
		err = nativewebp.Encode(buf, tex.Image, nil)
	default:
		err = png.Encode(buf, tex.Image)
	}
	if err != nil {
		return nil, fmt.Errorf("brochure: encode texture %s: %w", tex.Name, err)
	}
	return buf.Bytes(), nil
}
