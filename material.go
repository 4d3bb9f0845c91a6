package brochure

// MeshMaterial 接口定义了材质的基本方法
type MeshMaterial interface {
	HasTexture() bool
	GetTexture() *TextureSlice
	GetColor() [3]byte
	GetEmissive() [3]byte
}

var PaperWhite = [3]byte{255, 255, 255}

const PaperRoughness = 0.5

// BaseMaterial 基础材质
type BaseMaterial struct {
	Color [3]byte `json:"color"`
}

func (m *BaseMaterial) HasTexture() bool {
	return false
}

func (m *BaseMaterial) GetEmissive() [3]byte {
	return [3]byte{0, 0, 0}
}

func (m *BaseMaterial) GetTexture() *TextureSlice {
	return nil
}

func (m *BaseMaterial) GetColor() [3]byte {
	return m.Color
}

// TextureMaterial 纹理材质
type TextureMaterial struct {
	BaseMaterial
	Texture *TextureSlice `json:"texture,omitempty"`
}

func (m *TextureMaterial) HasTexture() bool {
	return m.Texture != nil && m.Texture.Texture != nil
}

func (m *TextureMaterial) GetTexture() *TextureSlice {
	return m.Texture
}

type PbrMaterial struct {
	TextureMaterial
	Emissive  [3]byte `json:"emissive"`
	Metallic  float32 `json:"metallic"`
	Roughness float32 `json:"roughness"`
}

func (m *PbrMaterial) GetEmissive() [3]byte {
	return m.Emissive
}

// NeutralMaterial 未贴图的纸面材质, 用于侧边和缺少贴图的大面
func NeutralMaterial() *PbrMaterial {
	return &PbrMaterial{
		TextureMaterial: TextureMaterial{BaseMaterial: BaseMaterial{Color: PaperWhite}},
		Roughness:       PaperRoughness,
	}
}

func TexturedMaterial(slice *TextureSlice) *PbrMaterial {
	m := NeutralMaterial()
	m.Texture = slice
	return m
}

func roughnessOf(m MeshMaterial) float32 {
	if p, ok := m.(*PbrMaterial); ok {
		return p.Roughness
	}
	return 1
}
