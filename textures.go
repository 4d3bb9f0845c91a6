package brochure

import "fmt"

// MaxPanels is the largest panel count of any brochure type.
const MaxPanels = 3

// Slot 贴图槽位, Panel 为 -1 时表示整张展开图
type Slot struct {
	Side  Side `json:"side"`
	Panel int  `json:"panel"`
}

func SpreadSlot(side Side) Slot {
	return Slot{Side: side, Panel: -1}
}

func PanelSlot(side Side, panel int) Slot {
	return Slot{Side: side, Panel: panel}
}

func (s Slot) IsSpread() bool {
	return s.Panel < 0
}

func (s Slot) Valid() bool {
	return (s.Side == SideOuter || s.Side == SideInner) && s.Panel >= -1 && s.Panel < MaxPanels
}

func (s Slot) String() string {
	if s.IsSpread() {
		return s.Side.String()
	}
	return fmt.Sprintf("%s[%d]", s.Side, s.Panel)
}

// TextureAssignment 引擎看到的贴图输入, 面板贴图按物理位置索引
type TextureAssignment struct {
	Outer       *Texture
	Inner       *Texture
	OuterPanels []*Texture
	InnerPanels []*Texture
}

func (a TextureAssignment) panel(side Side, i int) *Texture {
	list := a.OuterPanels
	if side == SideInner {
		list = a.InnerPanels
	}
	if i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}

func (a TextureAssignment) spread(side Side) *Texture {
	if side == SideInner {
		return a.Inner
	}
	return a.Outer
}

// TextureSet 宿主持有的全部已上传贴图, 值语义, 修改时返回副本
type TextureSet struct {
	Outer       *Texture
	Inner       *Texture
	OuterPanels [MaxPanels]*Texture
	InnerPanels [MaxPanels]*Texture
}

func (ts TextureSet) Get(slot Slot) *Texture {
	switch {
	case !slot.Valid():
		return nil
	case slot.IsSpread() && slot.Side == SideInner:
		return ts.Inner
	case slot.IsSpread():
		return ts.Outer
	case slot.Side == SideInner:
		return ts.InnerPanels[slot.Panel]
	default:
		return ts.OuterPanels[slot.Panel]
	}
}

// With returns a copy with tex installed at slot. A nil tex clears the slot.
func (ts TextureSet) With(slot Slot, tex *Texture) (TextureSet, error) {
	if !slot.Valid() {
		return ts, &ConfigurationError{Field: "slot", Value: slot.String()}
	}
	switch {
	case slot.IsSpread() && slot.Side == SideInner:
		ts.Inner = tex
	case slot.IsSpread():
		ts.Outer = tex
	case slot.Side == SideInner:
		ts.InnerPanels[slot.Panel] = tex
	default:
		ts.OuterPanels[slot.Panel] = tex
	}
	return ts, nil
}

// Assignment selects the shape the engine sees for mode: spread mode never
// exposes panel images and individual mode never exposes spread images.
func (ts TextureSet) Assignment(mode UploadMode) TextureAssignment {
	if mode == ModeIndividual {
		outer := ts.OuterPanels
		inner := ts.InnerPanels
		return TextureAssignment{OuterPanels: outer[:], InnerPanels: inner[:]}
	}
	return TextureAssignment{Outer: ts.Outer, Inner: ts.Inner}
}
