package brochure

import (
	"errors"
	"fmt"
)

var ErrAssemblyCycle = errors.New("brochure: panel hierarchy has a cycle")

// Assembly 面板铰链树
type Assembly struct {
	Params Params  `json:"-"`
	Panels []Panel `json:"panels"`
}

func (a *Assembly) PanelCount() int {
	if a == nil {
		return 0
	}
	return len(a.Panels)
}

// Root returns the index of the anchor panel, or -1 for an empty assembly.
func (a *Assembly) Root() int {
	if a == nil {
		return -1
	}
	for i := range a.Panels {
		if a.Panels[i].Parent < 0 {
			return i
		}
	}
	return -1
}

func (a *Assembly) Children(i int) []int {
	var ch []int
	for j := range a.Panels {
		if j != i && a.Panels[j].Parent == i {
			ch = append(ch, j)
		}
	}
	return ch
}

// World composes the local transforms from the root down to panel i.
func (a *Assembly) World(i int) (Transform, error) {
	if i < 0 || i >= len(a.Panels) {
		return IdentTransform, fmt.Errorf("brochure: panel %d out of range", i)
	}
	chain := []int{}
	seen := make(map[int]bool)
	for cur := i; cur >= 0; cur = a.Panels[cur].Parent {
		if cur >= len(a.Panels) {
			return IdentTransform, fmt.Errorf("brochure: panel %d has unknown parent %d", chain[len(chain)-1], cur)
		}
		if seen[cur] {
			return IdentTransform, ErrAssemblyCycle
		}
		seen[cur] = true
		chain = append(chain, cur)
	}
	w := IdentTransform
	for k := len(chain) - 1; k >= 0; k-- {
		w = w.Mul(a.Panels[chain[k]].Local)
	}
	return w, nil
}

func (a *Assembly) OuterWindows() []UVWindow {
	ws := make([]UVWindow, len(a.Panels))
	for i := range a.Panels {
		ws[i] = a.Panels[i].Window
	}
	return ws
}

func (a *Assembly) CheckTiling() error {
	return CheckTiling(a.OuterWindows())
}
