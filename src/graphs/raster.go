package graphs

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lewiswolf/graphs/src/colormap"
)

// rasterChart is a hand-drawn chart canvas used by the kinds go-chart cannot
// express (ranged horizontal bars, heatmaps, filled shapes). It owns the
// margin layout, axis frame, tick labels and legend so each chart kind only
// paints its plot area.
type rasterChart struct {
	r    *Renderer
	img  *image.RGBA
	plot image.Rectangle
}

var rasterFace = basicfont.Face7x13

const (
	tickLen      = 4
	labelPad     = 4
	colorbarW    = 18
	legendSwatch = 12
)

// newRaster allocates a canvas of the canonical width with the given margins
// and paints the background.
func (r *Renderer) newRaster(height, marginL, marginR, marginT, marginB int) *rasterChart {
	w := r.width()
	img := image.NewRGBA(image.Rect(0, 0, w, height))
	if r.hasBG {
		draw.Draw(img, img.Bounds(), image.NewUniform(toRGBA(r.bg)), image.Point{}, draw.Src)
	}
	return &rasterChart{
		r:    r,
		img:  img,
		plot: image.Rect(marginL, marginT, w-marginR, height-marginB),
	}
}

// textWidth measures a string in the raster face.
func textWidth(s string) int {
	d := &font.Drawer{Face: rasterFace}
	return d.MeasureString(s).Ceil()
}

// text draws s with its baseline at (x, y).
func (rc *rasterChart) text(x, y int, s string, col color.RGBA) {
	d := &font.Drawer{
		Dst:  rc.img,
		Src:  image.NewUniform(col),
		Face: rasterFace,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(s)
}

func (rc *rasterChart) hline(x0, x1, y int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		rc.img.SetRGBA(x, y, col)
	}
}

func (rc *rasterChart) vline(x, y0, y1 int, col color.RGBA) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		rc.img.SetRGBA(x, y, col)
	}
}

func (rc *rasterChart) fill(rect image.Rectangle, col color.RGBA) {
	draw.Draw(rc.img, rect.Intersect(rc.img.Bounds()), image.NewUniform(col), image.Point{}, draw.Over)
}

// frame draws the left and bottom axis lines.
func (rc *rasterChart) frame() {
	ax := toRGBA(rc.r.axis)
	rc.vline(rc.plot.Min.X, rc.plot.Min.Y, rc.plot.Max.Y, ax)
	rc.hline(rc.plot.Min.X, rc.plot.Max.X, rc.plot.Max.Y, ax)
}

// xTick draws a tick at the horizontal fraction t of the plot area, with a
// centred label underneath and an optional grid line.
func (rc *rasterChart) xTick(t float64, label string, grid bool) {
	if t < 0 || t > 1 {
		return
	}
	x := rc.plot.Min.X + int(t*float64(rc.plot.Dx())+0.5)
	ax := toRGBA(rc.r.axis)
	rc.vline(x, rc.plot.Max.Y, rc.plot.Max.Y+tickLen, ax)
	if grid && rc.r.settings.ShowGrid {
		g := ax
		g.A = 48
		rc.vline(x, rc.plot.Min.Y, rc.plot.Max.Y-1, g)
	}
	rc.text(x-textWidth(label)/2, rc.plot.Max.Y+tickLen+rasterFace.Ascent+labelPad, label, ax)
}

// yTick draws a tick at the vertical fraction t (0 = bottom), right-aligned
// label to the left of the axis, optional grid line.
func (rc *rasterChart) yTick(t float64, label string, grid bool) {
	if t < 0 || t > 1 {
		return
	}
	y := rc.plot.Max.Y - int(t*float64(rc.plot.Dy())+0.5)
	ax := toRGBA(rc.r.axis)
	rc.hline(rc.plot.Min.X-tickLen, rc.plot.Min.X, y, ax)
	if grid && rc.r.settings.ShowGrid {
		g := ax
		g.A = 48
		rc.hline(rc.plot.Min.X+1, rc.plot.Max.X, y, g)
	}
	rc.text(rc.plot.Min.X-tickLen-labelPad-textWidth(label), y+rasterFace.Ascent/2, label, ax)
}

// legendEntry pairs a swatch colour with its key label.
type legendEntry struct {
	label string
	col   color.RGBA
}

// legendWidth computes the right margin needed to fit the key.
func legendWidth(entries []legendEntry) int {
	w := 0
	for _, e := range entries {
		if tw := textWidth(e.label); tw > w {
			w = tw
		}
	}
	if w == 0 {
		return 0
	}
	return legendSwatch + labelPad*3 + w
}

// legend draws swatch+label rows in the right margin, top aligned with the
// plot area.
func (rc *rasterChart) legend(entries []legendEntry) {
	if len(entries) == 0 {
		return
	}
	ax := toRGBA(rc.r.axis)
	x := rc.plot.Max.X + labelPad*2
	y := rc.plot.Min.Y
	rowH := rasterFace.Height + 6
	for _, e := range entries {
		rc.fill(image.Rect(x, y, x+legendSwatch, y+legendSwatch), e.col)
		rc.text(x+legendSwatch+labelPad, y+rasterFace.Ascent, e.label, ax)
		y += rowH
	}
}

// colorbar draws a vertical colour scale in the right margin, annotated with
// the min, mid and max values.
func (rc *rasterChart) colorbar(mapName string, minV, maxV float64) error {
	x0 := rc.plot.Max.X + labelPad*3
	for y := rc.plot.Min.Y; y <= rc.plot.Max.Y; y++ {
		t := 1 - float64(y-rc.plot.Min.Y)/float64(rc.plot.Dy())
		c, err := colormap.At(mapName, t)
		if err != nil {
			return err
		}
		rc.hline(x0, x0+colorbarW, y, toRGBA(c))
	}
	ax := toRGBA(rc.r.axis)
	xl := x0 + colorbarW + labelPad
	rc.text(xl, rc.plot.Min.Y+rasterFace.Ascent, formatTick(maxV), ax)
	rc.text(xl, (rc.plot.Min.Y+rc.plot.Max.Y)/2+rasterFace.Ascent/2, formatTick((minV+maxV)/2), ax)
	rc.text(xl, rc.plot.Max.Y, formatTick(minV), ax)
	return nil
}

// colorbarMargin is the right margin required when a colorbar is shown.
func colorbarMargin(minV, maxV float64) int {
	w := textWidth(formatTick(minV))
	if t := textWidth(formatTick(maxV)); t > w {
		w = t
	}
	if t := textWidth(formatTick((minV + maxV) / 2)); t > w {
		w = t
	}
	return labelPad*4 + colorbarW + w
}

// heatmap paints a matrix into the plot area, one cell per grid rectangle,
// colouring each normalized value through the renderer's colour map. Row 0
// is drawn at the bottom so frequency-like data reads upward.
func (rc *rasterChart) heatmap(m [][]float64, minV, maxV float64) error {
	rows := len(m)
	if rows == 0 {
		return ErrNoData
	}
	cols := len(m[0])
	span := maxV - minV
	if span <= 0 {
		span = 1
	}
	// 256-entry lookup keeps the per-pixel loop off the interpolation path.
	var lut [256]color.RGBA
	for i := range lut {
		c, err := colormap.At(rc.r.settings.ColorMap, float64(i)/255)
		if err != nil {
			return err
		}
		lut[i] = toRGBA(c)
	}
	pw, ph := rc.plot.Dx(), rc.plot.Dy()
	for y := 0; y < ph; y++ {
		// invert so row 0 lands at the plot bottom
		row := (ph - 1 - y) * rows / ph
		for x := 0; x < pw; x++ {
			col := x * cols / pw
			t := (m[row][col] - minV) / span
			if t < 0 {
				t = 0
			}
			if t > 1 {
				t = 1
			}
			rc.img.SetRGBA(rc.plot.Min.X+1+x, rc.plot.Min.Y+y, lut[int(t*255+0.5)])
		}
	}
	return nil
}
