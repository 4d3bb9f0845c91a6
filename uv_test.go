package brochure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUVWindowMirror(t *testing.T) {
	w := UVWindow{0.25, 0.5}
	assert.Equal(t, UVWindow{0.5, 0.75}, w.Mirror())
	assert.Equal(t, w, w.Mirror().Mirror())
	assert.Equal(t, FullWindow, FullWindow.Mirror())
}

func TestCheckTiling(t *testing.T) {
	tests := []struct {
		name string
		ws   []UVWindow
		ok   bool
	}{
		{"halves", spreadWindows(2), true},
		{"thirds", spreadWindows(3), true},
		{"full", []UVWindow{FullWindow}, true},
		{"empty", nil, false},
		{"gap", []UVWindow{{0, 0.4}, {0.5, 1}}, false},
		{"overlap", []UVWindow{{0, 0.6}, {0.5, 1}}, false},
		{"short", []UVWindow{{0, 0.5}, {0.5, 0.9}}, false},
		{"late start", []UVWindow{{0.1, 1}}, false},
		{"reversed", []UVWindow{{0, 0.5}, {0.5, 0.5}, {0.5, 1}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckTiling(tt.ws)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestSpreadWindows(t *testing.T) {
	ws := spreadWindows(3)
	assert.Len(t, ws, 3)
	assert.Equal(t, 0.0, ws[0].Start)
	assert.Equal(t, 1.0, ws[2].End)
	for i := 1; i < len(ws); i++ {
		assert.Equal(t, ws[i-1].End, ws[i].Start)
	}
}
