package graphs

import (
	"fmt"
	"image"
	"image/color"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/lewiswolf/graphs/src/colormap"
	"github.com/lewiswolf/graphs/src/types"
)

// gantt layout constants, in pixels at canonical width.
const (
	ganttRowHeight = 34
	ganttBarInset  = 6
	ganttMarginT   = 16
	ganttMarginB   = 40
)

// Gantt renders scheduled events as horizontal bars over a date axis.
//
// Bar colours resolve in precedence order: an event's explicit Color wins;
// otherwise its Reference picks a colour from the active colour map (one
// distinct colour per distinct reference, listed in the key); events with
// neither use the content colour.
func (r *Renderer) Gantt(events []types.GanttEvent) (*types.RenderedFigure, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("gantt: %w", ErrNoData)
	}

	// Validate events and find the date range.
	var minT, maxT time.Time
	for i, ev := range events {
		if ev.Event == "" {
			return nil, fmt.Errorf("gantt: event %d has no title", i)
		}
		if ev.Start.IsZero() || ev.End.IsZero() {
			return nil, fmt.Errorf("gantt: event %q is missing a start or end date", ev.Event)
		}
		s, e := ev.Start.Time(), ev.End.Time()
		if e.Before(s) {
			return nil, fmt.Errorf("gantt: event %q ends before it starts", ev.Event)
		}
		if minT.IsZero() || s.Before(minT) {
			minT = s
		}
		if maxT.IsZero() || e.After(maxT) {
			maxT = e
		}
	}
	if !maxT.After(minT) {
		// all events on one day; widen so bars have extent
		maxT = minT.Add(24 * time.Hour)
	}

	barColors, legend, err := resolveGanttColors(events, r.settings.ColorMap, r.content)
	if err != nil {
		return nil, err
	}

	// Left margin fits the longest event title.
	marginL := 0
	for _, ev := range events {
		if w := textWidth(ev.Event); w > marginL {
			marginL = w
		}
	}
	marginL += tickLen + labelPad*3

	marginR := legendWidth(legend)
	if marginR == 0 {
		marginR = 16
	}

	// Rows shrink when the natural height would exceed the square clamp, so
	// the figure height never outgrows the canonical width.
	rowH := ganttRowHeight
	if natural := ganttMarginT + ganttMarginB + rowH*len(events); natural > r.width() {
		rowH = (r.width() - ganttMarginT - ganttMarginB) / len(events)
		if rowH < 14 {
			return nil, fmt.Errorf("gantt: %d events exceed the canonical figure height", len(events))
		}
		Warnf("gantt: compressed %d rows to %dpx to stay within the square clamp", len(events), rowH)
	}
	height := ganttMarginT + ganttMarginB + rowH*len(events)
	if min := r.width() / 4; height < min {
		height = min
	}

	rc := r.newRaster(height, marginL, marginR, ganttMarginT, height-ganttMarginT-rowH*len(events))
	rc.frame()

	// Date axis with grid.
	span := maxT.Sub(minT)
	step, format := pickDateStep(span)
	for _, tick := range makeDateTicks(minT, maxT, step, format) {
		t := (tick.Value - chart.TimeToFloat64(minT)) / (chart.TimeToFloat64(maxT) - chart.TimeToFloat64(minT))
		rc.xTick(t, tick.Label, true)
	}

	// Bars and row labels.
	ax := toRGBA(r.axis)
	for i, ev := range events {
		col := barColors[i]
		y0 := rc.plot.Min.Y + i*rowH
		sx := rc.plot.Min.X + int(float64(rc.plot.Dx())*ev.Start.Time().Sub(minT).Seconds()/span.Seconds()+0.5)
		ex := rc.plot.Min.X + int(float64(rc.plot.Dx())*ev.End.Time().Sub(minT).Seconds()/span.Seconds()+0.5)
		if ex <= sx {
			ex = sx + 2
		}
		inset := ganttBarInset
		if rowH < 2*ganttBarInset+4 {
			inset = 2
		}
		rc.fill(image.Rect(sx, y0+inset, ex, y0+rowH-inset), col)
		rc.text(rc.plot.Min.X-tickLen-labelPad-textWidth(ev.Event), y0+rowH/2+rasterFace.Ascent/2, ev.Event, ax)
	}
	rc.legend(legend)

	fig, err := wrapImage(rc.img)
	if err != nil {
		return nil, err
	}
	Debugf("gantt: rendered %d events across %s", len(events), span)
	return fig, nil
}

// resolveGanttColors assigns one colour per event. Explicit colours win,
// references share one distinct colour-map entry per distinct reference (in
// order of first appearance), and unadorned events use the fallback. The
// returned legend lists the references with their assigned colours.
func resolveGanttColors(events []types.GanttEvent, mapName string, fallback drawing.Color) ([]color.RGBA, []legendEntry, error) {
	refs := []string{}
	refIndex := map[string]int{}
	for _, ev := range events {
		if ev.Reference == "" {
			continue
		}
		if _, ok := refIndex[ev.Reference]; !ok {
			refIndex[ev.Reference] = len(refs)
			refs = append(refs, ev.Reference)
		}
	}
	var refColors []drawing.Color
	if len(refs) > 0 {
		var err error
		refColors, err = colormap.Resolve(mapName, len(refs))
		if err != nil {
			return nil, nil, fmt.Errorf("gantt: %w", err)
		}
	}

	out := make([]color.RGBA, len(events))
	for i, ev := range events {
		switch {
		case ev.Color != "":
			c, err := colormap.ParseHex(ev.Color)
			if err != nil {
				return nil, nil, fmt.Errorf("gantt: event %q: %w", ev.Event, err)
			}
			out[i] = toRGBA(c)
		case ev.Reference != "":
			out[i] = toRGBA(refColors[refIndex[ev.Reference]])
		default:
			out[i] = toRGBA(fallback)
		}
	}

	legend := make([]legendEntry, len(refs))
	for i, ref := range refs {
		legend[i] = legendEntry{label: ref, col: toRGBA(refColors[i])}
	}
	return out, legend, nil
}
