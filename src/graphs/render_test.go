package graphs

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lewiswolf/graphs/src/dsp"
	"github.com/lewiswolf/graphs/src/types"
)

// testSettings keeps figures small so the suite stays fast.
func testSettings() types.GraphSettings {
	s := types.DefaultSettings()
	s.ImageSize = 400
	return s
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := New(testSettings())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestNew_RejectsBadSettings(t *testing.T) {
	s := testSettings()
	s.ImageSize = 0
	if _, err := New(s); err == nil {
		t.Errorf("zero image size should fail")
	}
	s = testSettings()
	s.AxisColor = "chartreuse"
	if _, err := New(s); err == nil {
		t.Errorf("unparseable axis colour should fail")
	}
	s = testSettings()
	s.BGColor = "#xyzxyz"
	if _, err := New(s); err == nil {
		t.Errorf("unparseable background colour should fail")
	}
}

// sampleEvents covers all three colour resolution paths.
func sampleEvents() []types.GanttEvent {
	return []types.GanttEvent{
		{Event: "test_1", Start: types.Date{Year: 2019, Month: 9, Day: 13}, End: types.Date{Year: 2019, Month: 9, Day: 15}},
		{Event: "test_2", Start: types.Date{Year: 2019, Month: 8, Day: 9}, End: types.Date{Year: 2019, Month: 10, Day: 11}, Color: "#ff0000"},
		{Event: "test_3", Start: types.Date{Year: 2019, Month: 9, Day: 1}, End: types.Date{Year: 2019, Month: 9, Day: 30}, Reference: "category_1"},
		{Event: "test_4", Start: types.Date{Year: 2019, Month: 10, Day: 1}, End: types.Date{Year: 2019, Month: 10, Day: 5}, Reference: "category_2"},
	}
}

// TestFigureWidth_ConsistentAcrossChartKinds pins the headline geometry rule:
// every figure from one renderer shares the canonical width.
func TestFigureWidth_ConsistentAcrossChartKinds(t *testing.T) {
	r := testRenderer(t)
	sr := 4000
	spec, err := dsp.STFT(dsp.SineSweep(sr), 256, 128, 256)
	if err != nil {
		t.Fatalf("STFT: %v", err)
	}

	figs := map[string]func() (*types.RenderedFigure, error){
		"gantt":     func() (*types.RenderedFigure, error) { return r.Gantt(sampleEvents()) },
		"waveform":  func() (*types.RenderedFigure, error) { return r.Waveform([]types.Series{dsp.Sawtooth(220, sr, 0.1)}, sr) },
		"matrix-1d": func() (*types.RenderedFigure, error) { return r.Matrix(types.Matrix{dsp.SineSweep(500)}) },
		"matrix-2d": func() (*types.RenderedFigure, error) { return r.Matrix(types.Matrix{{1, 2}, {3, 4}, {5, 6}}) },
		"spectrogram": func() (*types.RenderedFigure, error) {
			return r.Spectrogram(spec, SpectrogramOptions{SampleRate: float64(sr), HopLength: 128})
		},
		"circle":   func() (*types.RenderedFigure, error) { return r.Circle(2) },
		"polygon":  func() (*types.RenderedFigure, error) { return r.Polygon([]Vertex{{0, 0}, {1, 0}, {0.5, 1}}) },
		"vertices": func() (*types.RenderedFigure, error) { return r.Vertices([]Vertex{{0, 0}, {1, 0}, {0.5, 1}}) },
	}
	for name, render := range figs {
		fig, err := render()
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if fig.Width != 400 {
			t.Errorf("%s: width = %d, want canonical 400", name, fig.Width)
		}
		img, err := png.Decode(bytes.NewReader(fig.PNG))
		if err != nil {
			t.Fatalf("%s: decode png: %v", name, err)
		}
		if img.Bounds().Dx() != fig.Width || img.Bounds().Dy() != fig.Height {
			t.Errorf("%s: png bounds %v disagree with figure %dx%d", name, img.Bounds(), fig.Width, fig.Height)
		}
		if fig.Height < 100 || fig.Height > 400 {
			t.Errorf("%s: height %d outside the strip-to-square clamp", name, fig.Height)
		}
	}
}

// TestFigureWidth_IndependentOfCategoryCount re-renders a Gantt chart with
// growing event counts; width must not drift.
func TestFigureWidth_IndependentOfCategoryCount(t *testing.T) {
	r := testRenderer(t)
	events := sampleEvents()
	for n := 1; n <= len(events); n++ {
		fig, err := r.Gantt(events[:n])
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if fig.Width != 400 {
			t.Errorf("n=%d: width = %d, want 400", n, fig.Width)
		}
	}
}

func TestExport_WritesPNG(t *testing.T) {
	s := testSettings()
	s.OutputType = types.OutputPNG
	r, err := New(s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fig, err := r.Circle(1)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	path := filepath.Join(t.TempDir(), "circle-example")
	if err := r.Export(fig, path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	b, err := os.ReadFile(path + ".png")
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !bytes.Equal(b, fig.PNG) {
		t.Errorf("exported bytes differ from figure PNG")
	}
}

func TestExport_NoneIsNoOp(t *testing.T) {
	r := testRenderer(t)
	fig, err := r.Circle(1)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	path := filepath.Join(t.TempDir(), "skipped")
	if err := r.Export(fig, path); err != nil {
		t.Fatalf("Export: %v", err)
	}
	if _, err := os.Stat(path + ".png"); !os.IsNotExist(err) {
		t.Errorf("OutputNone should not write files")
	}
}

func TestExport_UnsupportedOutputType(t *testing.T) {
	s := testSettings()
	s.OutputType = types.OutputType("mov")
	r, err := New(s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fig, err := r.Circle(1)
	if err != nil {
		t.Fatalf("Circle: %v", err)
	}
	if err := r.Export(fig, filepath.Join(t.TempDir(), "x")); !errors.Is(err, ErrUnsupportedOutput) {
		t.Fatalf("expected ErrUnsupportedOutput, got %v", err)
	}
}

func TestDecimate_PreservesPeaks(t *testing.T) {
	n := 100_000
	sig := make(types.Series, n)
	sig[12345] = 5  // lone positive spike
	sig[54321] = -7 // lone negative spike
	xs, ys := decimate(sig, 800, 0)
	if len(xs) != len(ys) {
		t.Fatalf("length mismatch %d != %d", len(xs), len(ys))
	}
	if len(ys) > 800 {
		t.Fatalf("decimate returned %d points, cap is 800", len(ys))
	}
	var sawHi, sawLo bool
	for _, v := range ys {
		if v == 5 {
			sawHi = true
		}
		if v == -7 {
			sawLo = true
		}
	}
	if !sawHi || !sawLo {
		t.Errorf("envelope lost a spike (hi=%v lo=%v)", sawHi, sawLo)
	}
}

func TestDecimate_ShortSignalPassesThrough(t *testing.T) {
	sig := types.Series{1, 2, 3}
	xs, ys := decimate(sig, 800, 10)
	if len(ys) != 3 {
		t.Fatalf("short signal should pass through, got %d points", len(ys))
	}
	if xs[2] != 0.2 {
		t.Errorf("x values should be seconds at sr=10, got %v", xs[2])
	}
}
