package brochure

import "fmt"

// UVWindow 贴图横向坐标的子区间 [Start, End]
type UVWindow struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

var FullWindow = UVWindow{Start: 0, End: 1}

// Mirror maps the window onto the back of the sheet, where reading order is reversed.
func (w UVWindow) Mirror() UVWindow {
	return UVWindow{Start: 1 - w.End, End: 1 - w.Start}
}

func (w UVWindow) Width() float64 {
	return w.End - w.Start
}

func (w UVWindow) String() string {
	return fmt.Sprintf("[%g,%g]", w.Start, w.End)
}

// CheckTiling reports whether the windows cover [0,1] in order with no gap or overlap.
func CheckTiling(ws []UVWindow) error {
	if len(ws) == 0 {
		return fmt.Errorf("brochure: no uv windows")
	}
	if ws[0].Start != 0 {
		return fmt.Errorf("brochure: first uv window starts at %g", ws[0].Start)
	}
	for i := 1; i < len(ws); i++ {
		if ws[i].Start != ws[i-1].End {
			return fmt.Errorf("brochure: uv window %d starts at %g, previous ends at %g", i, ws[i].Start, ws[i-1].End)
		}
	}
	for i, w := range ws {
		if w.Width() <= 0 {
			return fmt.Errorf("brochure: uv window %d is empty %s", i, w)
		}
	}
	if last := ws[len(ws)-1].End; last != 1 {
		return fmt.Errorf("brochure: last uv window ends at %g", last)
	}
	return nil
}

// spreadWindows splits the unit interval into n equal windows in slot order.
func spreadWindows(n int) []UVWindow {
	ws := make([]UVWindow, n)
	for i := range ws {
		ws[i] = UVWindow{Start: float64(i) / float64(n), End: float64(i+1) / float64(n)}
	}
	ws[0].Start = 0
	ws[n-1].End = 1
	return ws
}
