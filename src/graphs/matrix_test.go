package graphs

import (
	"errors"
	"image/color"
	"testing"

	"github.com/lewiswolf/graphs/src/types"
)

func TestMatrix_InfersDimensionality(t *testing.T) {
	r := testRenderer(t)

	// 1-D input renders as a line plot at the default wide aspect.
	line, err := r.Matrix(types.Matrix{{1, 2, 3, 2, 1}})
	if err != nil {
		t.Fatalf("1-D: %v", err)
	}
	if line.Height != r.heightFor(defaultAspect) {
		t.Errorf("1-D height = %d, want %d", line.Height, r.heightFor(defaultAspect))
	}

	// A tall 2-D matrix renders as a heatmap whose aspect follows its shape,
	// clamped to the square bound.
	tall := make(types.Matrix, 100)
	for i := range tall {
		tall[i] = []float64{float64(i), float64(i + 1)}
	}
	heat, err := r.Matrix(tall)
	if err != nil {
		t.Fatalf("2-D: %v", err)
	}
	if heat.Width != 400 {
		t.Errorf("heatmap width = %d, want 400", heat.Width)
	}
	if heat.Height != 400 {
		t.Errorf("tall matrix should clamp to square, got height %d", heat.Height)
	}
}

func TestMatrix_Validation(t *testing.T) {
	r := testRenderer(t)
	if _, err := r.Matrix(nil); !errors.Is(err, ErrNoData) {
		t.Errorf("nil matrix: got %v", err)
	}
	if _, err := r.Matrix(types.Matrix{{1, 2}, {3}}); err == nil {
		t.Errorf("ragged matrix should fail")
	}
	if _, err := r.Matrix(types.Matrix{{1}}); err == nil {
		t.Errorf("single value should fail (no line from one point)")
	}
}

func TestMatrix_HeatmapUsesColorMap(t *testing.T) {
	// A Greys render of a two-valued matrix must contain near-white and
	// near-black pixels inside the plot area.
	s := testSettings()
	s.ColorMap = "Greys"
	s.ShowColorbar = false
	r, err := New(s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m := types.Matrix{{0, 0}, {1, 1}}
	fig, err := r.Matrix(m)
	if err != nil {
		t.Fatalf("Matrix: %v", err)
	}
	var sawLight, sawDark bool
	b := fig.Image.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(fig.Image.At(x, y)).(color.RGBA)
			if c.A == 0 {
				continue
			}
			if c.R > 240 && c.G > 240 && c.B > 240 {
				sawLight = true
			}
			if c.R < 15 && c.G < 15 && c.B < 15 && c.A == 255 {
				sawDark = true
			}
		}
	}
	if !sawLight || !sawDark {
		t.Errorf("heatmap missing scale extremes (light=%v dark=%v)", sawLight, sawDark)
	}
}

func TestIndexTicks(t *testing.T) {
	ticks := indexTicks(100)
	if len(ticks) != 6 {
		t.Fatalf("got %d ticks, want 6", len(ticks))
	}
	if ticks[0].label != "0" || ticks[5].label != "99" {
		t.Errorf("tick labels should span 0..99, got %q..%q", ticks[0].label, ticks[5].label)
	}
	if got := indexTicks(1); len(got) != 1 {
		t.Errorf("single cell should yield one tick")
	}
	if got := indexTicks(3); len(got) != 3 {
		t.Errorf("small n should yield n ticks, got %d", len(got))
	}
}
