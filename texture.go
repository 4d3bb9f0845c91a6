package brochure

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/flywave/go3d/float64/vec2"
	"github.com/ftrvxmtrx/tga"
	"github.com/h2non/filetype"
	"github.com/xtgo/uuid"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

const (
	TEXTURE_FORMAT_RGBA = 6
)

// Texture 纹理结构体, 解码后的像素数据在所有引用它的面板间共享, 创建后不再修改
type Texture struct {
	Handle   string       `json:"handle"`
	Name     string       `json:"name"`
	Size     [2]uint64    `json:"size"`
	Format   uint16       `json:"format"`
	Image    *image.NRGBA `json:"-"`
	Repeated bool         `json:"repeated"`
}

func (t *Texture) Width() int {
	return int(t.Size[0])
}

func (t *Texture) Height() int {
	return int(t.Size[1])
}

// TextureSource 纹理窗口的来源
type TextureSource int

const (
	SourceSpread TextureSource = iota
	SourcePanel
)

func (s TextureSource) String() string {
	if s == SourcePanel {
		return "panel"
	}
	return "spread"
}

// TextureSlice 纹理窗口, 渲染时按 uv' = Offset + Repeat*uv 采样
type TextureSlice struct {
	Texture *Texture      `json:"texture"`
	Offset  vec2.T        `json:"offset"`
	Repeat  vec2.T        `json:"repeat"`
	Source  TextureSource `json:"source"`
}

func NewSpreadSlice(tex *Texture, w UVWindow) *TextureSlice {
	return &TextureSlice{
		Texture: tex,
		Offset:  vec2.T{w.Start, 0},
		Repeat:  vec2.T{w.Width(), 1},
		Source:  SourceSpread,
	}
}

func NewPanelSlice(tex *Texture) *TextureSlice {
	return &TextureSlice{
		Texture: tex,
		Offset:  vec2.T{0, 0},
		Repeat:  vec2.T{1, 1},
		Source:  SourcePanel,
	}
}

// Window returns the horizontal window the slice samples.
func (s *TextureSlice) Window() UVWindow {
	return UVWindow{Start: s.Offset[0], End: s.Offset[0] + s.Repeat[0]}
}

func (s *TextureSlice) MapUV(u, v float64) (float64, float64) {
	return s.Offset[0] + s.Repeat[0]*u, s.Offset[1] + s.Repeat[1]*v
}

func CreateTextureFromImage(img image.Image, name string, repeat bool) (*Texture, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	bd := img.Bounds()
	if bd.Dx() == 0 || bd.Dy() == 0 {
		return nil, ErrEmptyImage
	}
	t := &Texture{}
	_, fn := filepath.Split(name)
	t.Handle = uuid.NewRandom().String()
	t.Name = fn
	t.Format = TEXTURE_FORMAT_RGBA
	t.Size = [2]uint64{uint64(bd.Dx()), uint64(bd.Dy())}
	t.Image = toNRGBA(img)
	t.Repeated = repeat
	return t, nil
}

// DecodeTexture 解码上传的图片数据
func DecodeTexture(name string, data []byte) (*Texture, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	format := sniffFormat(name, data)
	rd := bytes.NewReader(data)
	var img image.Image
	var err error
	switch format {
	case "jpg", "jpeg":
		img, err = jpeg.Decode(rd)
	case "png":
		img, err = png.Decode(rd)
	case "gif":
		img, err = gif.Decode(rd)
	case "bmp":
		img, err = bmp.Decode(rd)
	case "tif", "tiff":
		img, err = tiff.Decode(rd)
	case "webp":
		img, err = webp.Decode(rd)
	case "tga":
		img, err = tga.Decode(rd)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
	if err != nil {
		return nil, fmt.Errorf("brochure: decode %s: %w", format, err)
	}
	return CreateTextureFromImage(img, name, false)
}

// sniffFormat detects the format from magic bytes, falling back to the file
// extension for formats without a signature. A tga header can look like a
// cursor file, so the tga extension wins.
func sniffFormat(name string, data []byte) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "tga" {
		return ext
	}
	if kind, err := filetype.Match(data); err == nil && kind != filetype.Unknown {
		return kind.Extension
	}
	return ext
}

func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	switch src.(type) {
	case *image.YCbCr, *image.Gray, *image.RGBA:
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	default:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
				dst.SetNRGBA(x-b.Min.X, y-b.Min.Y, c)
			}
		}
	}
	return dst
}
