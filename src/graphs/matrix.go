package graphs

import (
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/lewiswolf/graphs/src/types"
)

// Matrix plots a matrix, inferring the right representation from its shape:
// a single row renders as a line plot, anything taller as a colour-mapped
// heatmap with a value colorbar.
func (r *Renderer) Matrix(m types.Matrix) (*types.RenderedFigure, error) {
	rows, _ := m.Dims()
	if rows == 0 {
		return nil, fmt.Errorf("matrix: %w", ErrNoData)
	}
	if !m.IsRectangular() {
		return nil, fmt.Errorf("matrix: rows have unequal lengths")
	}
	if rows == 1 {
		return r.line(m[0])
	}
	_, cols := m.Dims()
	return r.heatmapFigure(m, float64(rows)/float64(cols), "", "", nil, nil)
}

// line renders a 1-D run of values as a single go-chart line plot.
func (r *Renderer) line(values types.Series) (*types.RenderedFigure, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("matrix: need at least 2 values, got %d", len(values))
	}
	xs, ys := decimate(values, 2*r.width(), 0)
	minY, maxY := ys[0], ys[0]
	for _, v := range ys {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}
	nMin, nMax := niceAxisBounds(minY, maxY)
	ch := chart.Chart{
		Background: chart.Style{Padding: chart.Box{Top: 12, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      r.xAxis(""),
		YAxis:      r.yAxis("", &chart.ContinuousRange{Min: nMin, Max: nMax}),
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: r.content, StrokeWidth: 1.5},
		}},
	}
	return r.renderChart(ch, defaultAspect)
}

// axisTick places a label at a fraction of a raster chart's axis.
type axisTick struct {
	frac  float64
	label string
}

type axisTicks []axisTick

// heatmapFigure is the shared raster heatmap used by Matrix and Spectrogram.
// The aspect is the caller's natural height/width ratio (clamped by
// heightFor). Ticks may be nil, in which case cell-index ticks are generated.
func (r *Renderer) heatmapFigure(m types.Matrix, aspect float64, xName, yName string, xTicks, yTicks axisTicks) (*types.RenderedFigure, error) {
	minV, maxV, ok := m.MinMax()
	if !ok {
		return nil, fmt.Errorf("matrix: no finite values")
	}

	rows, cols := m.Dims()
	if xTicks == nil {
		xTicks = indexTicks(cols)
	}
	if yTicks == nil {
		yTicks = indexTicks(rows)
	}

	height := r.heightFor(aspect)

	marginL := 0
	for _, t := range yTicks {
		if w := textWidth(t.label); w > marginL {
			marginL = w
		}
	}
	marginL += tickLen + labelPad*3
	marginR := 16
	if r.settings.ShowColorbar {
		marginR = colorbarMargin(minV, maxV)
	}

	rc := r.newRaster(height, marginL, marginR, 16, 40)
	if err := rc.heatmap(m, minV, maxV); err != nil {
		return nil, err
	}
	rc.frame()
	for _, t := range xTicks {
		rc.xTick(t.frac, t.label, false)
	}
	for _, t := range yTicks {
		rc.yTick(t.frac, t.label, false)
	}
	if xName != "" {
		rc.text((rc.plot.Min.X+rc.plot.Max.X)/2-textWidth(xName)/2, height-labelPad, xName, toRGBA(r.axis))
	}
	if yName != "" {
		// drawn horizontally above the axis; the raster face cannot rotate
		rc.text(labelPad, rc.plot.Min.Y-labelPad, yName, toRGBA(r.axis))
	}
	if r.settings.ShowColorbar {
		if err := rc.colorbar(r.settings.ColorMap, minV, maxV); err != nil {
			return nil, err
		}
	}
	return wrapImage(rc.img)
}

// indexTicks yields up to 6 evenly spaced integer ticks for n cells.
func indexTicks(n int) axisTicks {
	if n <= 1 {
		return axisTicks{{0, "0"}}
	}
	count := 6
	if n < count {
		count = n
	}
	out := make(axisTicks, 0, count)
	for i := 0; i < count; i++ {
		frac := float64(i) / float64(count-1)
		idx := int(frac*float64(n-1) + 0.5)
		out = append(out, axisTick{frac, fmt.Sprintf("%d", idx)})
	}
	return out
}
