package graphs

import (
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lewiswolf/graphs/src/types"
)

// Vertex is a 2D point in plot coordinates.
type Vertex struct {
	X float64
	Y float64
}

// pointStyle returns a style that renders points only (no connecting line).
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    4,
		DotColor:    col,
	}
}

// Circle renders a filled circle of the given diameter centred on the
// origin, with axes sized to fit.
func (r *Renderer) Circle(diameter float64) (*types.RenderedFigure, error) {
	if diameter <= 0 {
		return nil, fmt.Errorf("circle: diameter must be positive, got %v", diameter)
	}
	rad := diameter / 2
	rc, toPx, err := r.shapeCanvas(-rad, rad, -rad, rad)
	if err != nil {
		return nil, err
	}
	// Per-pixel distance test; the plot area is small enough that this beats
	// maintaining an arc rasterizer.
	cx, cy := toPx(0, 0)
	rx, _ := toPx(rad, 0)
	rPx := float64(rx - cx)
	col := toRGBA(r.content)
	for y := rc.plot.Min.Y + 1; y < rc.plot.Max.Y; y++ {
		for x := rc.plot.Min.X + 1; x < rc.plot.Max.X; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			if dx*dx+dy*dy <= rPx*rPx {
				rc.img.SetRGBA(x, y, col)
			}
		}
	}
	return wrapImage(rc.img)
}

// Rectangle renders a filled w by h rectangle anchored at the origin.
func (r *Renderer) Rectangle(w, h float64) (*types.RenderedFigure, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("rectangle: sides must be positive, got %v x %v", w, h)
	}
	return r.Polygon([]Vertex{{0, 0}, {w, 0}, {w, h}, {0, h}})
}

// Polygon renders a filled polygon from its vertices. Vertices are taken in
// order and the shape is closed implicitly.
func (r *Renderer) Polygon(vertices []Vertex) (*types.RenderedFigure, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon: need at least 3 vertices, got %d", len(vertices))
	}
	minX, maxX, minY, maxY := bounds(vertices)
	rc, toPx, err := r.shapeCanvas(minX, maxX, minY, maxY)
	if err != nil {
		return nil, err
	}

	// Even-odd scanline fill in pixel space.
	px := make([][2]int, len(vertices))
	for i, v := range vertices {
		x, y := toPx(v.X, v.Y)
		px[i] = [2]int{x, y}
	}
	col := toRGBA(r.content)
	for y := rc.plot.Min.Y + 1; y < rc.plot.Max.Y; y++ {
		var xs []float64
		for i := range px {
			a := px[i]
			b := px[(i+1)%len(px)]
			if (a[1] <= y && b[1] > y) || (b[1] <= y && a[1] > y) {
				t := float64(y-a[1]) / float64(b[1]-a[1])
				xs = append(xs, float64(a[0])+t*float64(b[0]-a[0]))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sortFloats(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(math.Ceil(xs[i]))
			x1 := int(math.Floor(xs[i+1]))
			rc.hline(clampInt(x0, rc.plot.Min.X+1, rc.plot.Max.X-1), clampInt(x1, rc.plot.Min.X+1, rc.plot.Max.X-1), y, col)
		}
	}
	return wrapImage(rc.img)
}

// Vertices renders the points of a shape without filling it, using the
// emphasis colour for the markers.
func (r *Renderer) Vertices(vertices []Vertex) (*types.RenderedFigure, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("vertices: %w", ErrNoData)
	}
	xs := make([]float64, len(vertices))
	ys := make([]float64, len(vertices))
	for i, v := range vertices {
		xs[i] = v.X
		ys[i] = v.Y
	}
	// go-chart needs two points to establish a range; duplicate a lone vertex.
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1e-9)
		ys = append(ys, ys[0])
	}
	minX, maxX, minY, maxY := bounds(vertices)
	nMinX, nMaxX := niceAxisBounds(minX, maxX)
	nMinY, nMaxY := niceAxisBounds(minY, maxY)

	xAxis := r.xAxis("")
	xAxis.Range = &chart.ContinuousRange{Min: nMinX, Max: nMaxX}
	xAxis.Ticks = niceTicks(nMinX, nMaxX, 6)
	ch := chart.Chart{
		Background: chart.Style{Padding: chart.Box{Top: 12, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      xAxis,
		YAxis:      r.yAxis("", &chart.ContinuousRange{Min: nMinY, Max: nMaxY}),
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(r.emphasis),
		}},
	}
	return r.renderChart(ch, 1.0)
}

// shapeCanvas builds a square raster chart spanning the given data bounds
// (padded to nice values) and returns a data-to-pixel transform.
func (r *Renderer) shapeCanvas(minX, maxX, minY, maxY float64) (*rasterChart, func(x, y float64) (int, int), error) {
	nMinX, nMaxX := niceAxisBounds(minX, maxX)
	nMinY, nMaxY := niceAxisBounds(minY, maxY)

	yTicks := niceTicks(nMinY, nMaxY, 6)
	marginL := 0
	for _, t := range yTicks {
		if w := textWidth(t.Label); w > marginL {
			marginL = w
		}
	}
	marginL += tickLen + labelPad*3

	height := r.heightFor(1.0)
	rc := r.newRaster(height, marginL, 16, 16, 40)
	rc.frame()
	for _, t := range niceTicks(nMinX, nMaxX, 6) {
		rc.xTick((t.Value-nMinX)/(nMaxX-nMinX), t.Label, true)
	}
	for _, t := range yTicks {
		rc.yTick((t.Value-nMinY)/(nMaxY-nMinY), t.Label, true)
	}

	toPx := func(x, y float64) (int, int) {
		fx := (x - nMinX) / (nMaxX - nMinX)
		fy := (y - nMinY) / (nMaxY - nMinY)
		return rc.plot.Min.X + int(fx*float64(rc.plot.Dx())+0.5),
			rc.plot.Max.Y - int(fy*float64(rc.plot.Dy())+0.5)
	}
	return rc, toPx, nil
}

func bounds(vertices []Vertex) (minX, maxX, minY, maxY float64) {
	minX, maxX = vertices[0].X, vertices[0].X
	minY, maxY = vertices[0].Y, vertices[0].Y
	for _, v := range vertices[1:] {
		minX = math.Min(minX, v.X)
		maxX = math.Max(maxX, v.X)
		minY = math.Min(minY, v.Y)
		maxY = math.Max(maxY, v.Y)
	}
	return
}

func sortFloats(xs []float64) {
	// insertion sort; scanline crossings are tiny slices
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
