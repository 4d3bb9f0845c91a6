package brochure

const (
	PanelWidth = 1.0
	Thickness  = 0.005

	DefaultPanelHeight = 1.414
	ExportName         = "brochure_model"
)

// 折叠的最大角度系数, 以半圈为单位
const (
	BifoldMaxFold  = 0.95
	TrifoldMaxFold = 0.98
)

// 盒子六个面的顺序
const (
	FACE_POS_X = 0
	FACE_NEG_X = 1
	FACE_POS_Y = 2
	FACE_NEG_Y = 3
	FACE_OUTER = 4
	FACE_INNER = 5

	FaceCount = 6
)

// BrochureType 折页类型
type BrochureType string

const (
	Bifold   BrochureType = "bifold"
	TrifoldC BrochureType = "trifold-c"
	TrifoldZ BrochureType = "trifold-z"
)

// CoverPosition 封面位置
type CoverPosition string

const (
	CoverRight CoverPosition = "right"
	CoverLeft  CoverPosition = "left"
)

// PaperSize 纸张尺寸
type PaperSize string

const (
	PaperA4     PaperSize = "a4"
	PaperA5     PaperSize = "a5"
	PaperB5     PaperSize = "b5"
	PaperSquare PaperSize = "square"
)

// UploadMode 贴图上传模式
type UploadMode string

const (
	ModeSpread     UploadMode = "spread"
	ModeIndividual UploadMode = "individual"
)

// Side 纸面的正反面
type Side int

const (
	SideOuter Side = iota
	SideInner
)

func (s Side) String() string {
	if s == SideInner {
		return "inner"
	}
	return "outer"
}

// PanelRole 面板在铰链树中的角色
type PanelRole int

const (
	RoleAnchor PanelRole = iota
	RoleWing
)

func (r PanelRole) String() string {
	if r == RoleWing {
		return "wing"
	}
	return "anchor"
}

func ParseBrochureType(s string) (BrochureType, error) {
	t := BrochureType(s)
	if !t.Valid() {
		return "", &ConfigurationError{Field: "type", Value: s}
	}
	return t, nil
}

func (t BrochureType) Valid() bool {
	switch t {
	case Bifold, TrifoldC, TrifoldZ:
		return true
	}
	return false
}

func (t BrochureType) IsTrifold() bool {
	return t == TrifoldC || t == TrifoldZ
}

func ParseCoverPosition(s string) (CoverPosition, error) {
	c := CoverPosition(s)
	if !c.Valid() {
		return "", &ConfigurationError{Field: "cover", Value: s}
	}
	return c, nil
}

func (c CoverPosition) Valid() bool {
	return c == CoverRight || c == CoverLeft
}

// Mirror returns the opposite cover position.
func (c CoverPosition) Mirror() CoverPosition {
	if c == CoverLeft {
		return CoverRight
	}
	return CoverLeft
}

func ParsePaperSize(s string) (PaperSize, error) {
	p := PaperSize(s)
	if _, ok := paperAspect[p]; !ok {
		return "", &ConfigurationError{Field: "paper", Value: s}
	}
	return p, nil
}

var paperAspect = map[PaperSize]float64{
	PaperA4:     1.414, // 297/210
	PaperA5:     1.414,
	PaperB5:     1.407, // 257/182
	PaperSquare: 1.0,
}

// Aspect is the panel height per unit of panel width.
func (p PaperSize) Aspect() float64 {
	if a, ok := paperAspect[p]; ok {
		return a
	}
	return DefaultPanelHeight
}

func (p PaperSize) Valid() bool {
	_, ok := paperAspect[p]
	return ok
}

func ParseUploadMode(s string) (UploadMode, error) {
	m := UploadMode(s)
	if !m.Valid() {
		return "", &ConfigurationError{Field: "mode", Value: s}
	}
	return m, nil
}

func (m UploadMode) Valid() bool {
	return m == ModeSpread || m == ModeIndividual
}
