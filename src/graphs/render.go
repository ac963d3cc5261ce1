// Package graphs renders datasets into consistently sized figures. Every
// chart kind shares one geometry rule: the exported width always equals
// GraphSettings.ImageSize, so figures from the same renderer line up
// regardless of chart kind, category count or data shape.
package graphs

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lewiswolf/graphs/src/colormap"
	"github.com/lewiswolf/graphs/src/types"
)

var (
	// ErrNoData is returned when a chart is asked to render an empty dataset.
	ErrNoData = errors.New("no data to render")
	// ErrUnsupportedOutput is returned for output types the renderer cannot
	// produce.
	ErrUnsupportedOutput = errors.New("unsupported output type")
)

// defaultAspect is the height/width ratio used when a chart kind has no
// natural aspect of its own.
const defaultAspect = 5.0 / 7.0

// Renderer turns datasets into RenderedFigures using one settings object, so
// a batch of figures shares colours, fonts and geometry.
type Renderer struct {
	settings types.GraphSettings

	axis     drawing.Color
	content  drawing.Color
	emphasis drawing.Color
	bg       drawing.Color
	hasBG    bool
}

// New validates the settings and returns a renderer. Colour fields must be
// parseable hex strings and ImageSize must be positive; the colour map is
// validated on first use so maps are only required by the kinds that use them.
func New(settings types.GraphSettings) (*Renderer, error) {
	if settings.ImageSize <= 0 {
		return nil, fmt.Errorf("image size must be positive, got %d", settings.ImageSize)
	}
	r := &Renderer{settings: settings}
	var err error
	if r.axis, err = colormap.ParseHex(settings.AxisColor); err != nil {
		return nil, fmt.Errorf("axis colour: %w", err)
	}
	if r.content, err = colormap.ParseHex(settings.ContentColor); err != nil {
		return nil, fmt.Errorf("content colour: %w", err)
	}
	if r.emphasis, err = colormap.ParseHex(settings.EmphasisColor); err != nil {
		return nil, fmt.Errorf("emphasis colour: %w", err)
	}
	if settings.BGColor != "" {
		if r.bg, err = colormap.ParseHex(settings.BGColor); err != nil {
			return nil, fmt.Errorf("background colour: %w", err)
		}
		r.hasBG = true
	}
	return r, nil
}

// Settings returns a copy of the renderer's settings.
func (r *Renderer) Settings() types.GraphSettings { return r.settings }

// width is the canonical figure width shared by every chart kind.
func (r *Renderer) width() int { return r.settings.ImageSize }

// heightFor derives a figure height from a natural aspect (height/width),
// clamped so figures stay between a 4:1 strip and a square.
func (r *Renderer) heightFor(aspect float64) int {
	w := r.width()
	h := int(float64(w)*aspect + 0.5)
	if h < w/4 {
		h = w / 4
	}
	if h > w {
		h = w
	}
	return h
}

// background returns the canvas fill colour.
func (r *Renderer) background() drawing.Color {
	if r.hasBG {
		return r.bg
	}
	return chart.ColorTransparent
}

// renderChart finalizes a go-chart chart at canonical geometry and wraps the
// PNG output into a RenderedFigure.
func (r *Renderer) renderChart(ch chart.Chart, aspect float64) (*types.RenderedFigure, error) {
	ch.Width = r.width()
	ch.Height = r.heightFor(aspect)
	ch.Background.FillColor = r.background()
	ch.Canvas.FillColor = r.background()

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("decode rendered chart: %w", err)
	}
	return &types.RenderedFigure{
		Width:  ch.Width,
		Height: ch.Height,
		PNG:    buf.Bytes(),
		Image:  img,
	}, nil
}

// renderChartSized renders a go-chart chart whose geometry is already set and
// returns the decoded image. Used when charts are composited into a larger
// figure before wrapping.
func (r *Renderer) renderChartSized(ch chart.Chart) (image.Image, error) {
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	img, err := png.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, fmt.Errorf("decode rendered chart: %w", err)
	}
	return img, nil
}

// xAxis builds an X axis styled by the renderer's settings.
func (r *Renderer) xAxis(name string) chart.XAxis {
	ax := chart.XAxis{
		Name:      name,
		NameStyle: chart.Style{FontColor: r.axis},
		Style:     chart.Style{FontColor: r.axis, StrokeColor: r.axis},
	}
	if r.settings.ShowGrid {
		grid := r.axis
		grid.A = 48
		ax.GridMajorStyle = chart.Style{StrokeColor: grid, StrokeWidth: 1.0}
	} else {
		ax.GridMajorStyle = chart.Style{Hidden: true}
		ax.GridMinorStyle = chart.Style{Hidden: true}
	}
	return ax
}

// yAxis builds a Y axis styled by the renderer's settings.
func (r *Renderer) yAxis(name string, rng *chart.ContinuousRange) chart.YAxis {
	ax := chart.YAxis{
		Name:      name,
		NameStyle: chart.Style{FontColor: r.axis},
		Style:     chart.Style{FontColor: r.axis, StrokeColor: r.axis},
	}
	if rng != nil {
		ax.Range = rng
		ax.Ticks = niceTicks(rng.Min, rng.Max, 6)
	}
	if r.settings.ShowGrid {
		grid := r.axis
		grid.A = 48
		ax.GridMajorStyle = chart.Style{StrokeColor: grid, StrokeWidth: 1.0}
	} else {
		ax.GridMajorStyle = chart.Style{Hidden: true}
		ax.GridMinorStyle = chart.Style{Hidden: true}
	}
	return ax
}

// wrapImage encodes a raster image into a RenderedFigure.
func wrapImage(img image.Image) (*types.RenderedFigure, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode figure: %w", err)
	}
	b := img.Bounds()
	return &types.RenderedFigure{
		Width:  b.Dx(),
		Height: b.Dy(),
		PNG:    buf.Bytes(),
		Image:  img,
	}, nil
}

// Export writes the figure according to the renderer's output type. path
// overrides the settings' export path; with both empty a random name is
// generated, mirroring per-instance export ids. OutputNone is a no-op so the
// same call sites work for in-memory use.
func (r *Renderer) Export(fig *types.RenderedFigure, path string) error {
	if fig == nil {
		return ErrNoData
	}
	switch r.settings.OutputType {
	case types.OutputNone:
		return nil
	case types.OutputPNG:
		if path == "" {
			path = r.settings.ExportPath
		}
		if path == "" {
			path = randomID()
		}
		full := path + ".png"
		if err := os.WriteFile(full, fig.PNG, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", full, err)
		}
		Debugf("exported %dx%d figure to %s", fig.Width, fig.Height, full)
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOutput, r.settings.OutputType)
	}
}

// randomID yields a 16-char hex token for unnamed exports.
func randomID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "figure"
	}
	return hex.EncodeToString(b)
}

// toRGBA converts a drawing colour to the stdlib form used by raster charts.
func toRGBA(c drawing.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
