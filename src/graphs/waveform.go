package graphs

import (
	"fmt"
	"image"
	"image/draw"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/lewiswolf/graphs/src/types"
)

// Waveform renders one or more channels of amplitude data as line plots over
// time. With a positive sampleRate the X axis reads in seconds, otherwise in
// sample indices. Multichannel input stacks one plot per channel into a
// single figure of canonical width.
func (r *Renderer) Waveform(channels []types.Series, sampleRate int) (*types.RenderedFigure, error) {
	if len(channels) == 0 {
		return nil, fmt.Errorf("waveform: %w", ErrNoData)
	}
	for i, ch := range channels {
		if len(ch) < 2 {
			return nil, fmt.Errorf("waveform: channel %d has %d samples, need at least 2", i, len(ch))
		}
	}

	// Each channel gets an equal slice of the default figure height.
	totalH := r.heightFor(defaultAspect)
	chanH := totalH / len(channels)
	if chanH < 80 {
		return nil, fmt.Errorf("waveform: %d channels do not fit the canonical figure height", len(channels))
	}

	out := image.NewRGBA(image.Rect(0, 0, r.width(), chanH*len(channels)))
	for i, samples := range channels {
		img, err := r.waveformChannel(samples, sampleRate, chanH, len(channels) > 1, i)
		if err != nil {
			return nil, err
		}
		draw.Draw(out, image.Rect(0, i*chanH, r.width(), (i+1)*chanH), img, image.Point{}, draw.Over)
	}
	return wrapImage(out)
}

// waveformChannel renders a single channel via go-chart.
func (r *Renderer) waveformChannel(samples types.Series, sampleRate, height int, multi bool, idx int) (image.Image, error) {
	xs, ys := decimate(samples, 2*r.width(), sampleRate)

	xName := "samples"
	if sampleRate > 0 {
		xName = "time (s)"
	}
	title := ""
	if multi {
		title = fmt.Sprintf("channel %d", idx)
	}

	series := chart.ContinuousSeries{
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeColor: r.content,
			StrokeWidth: 1.25,
		},
	}
	minY, maxY := -1.0, 1.0
	for _, v := range ys {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	ch := chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontColor: r.axis, FontSize: float64(r.settings.FontSize)},
		Background: chart.Style{Padding: chart.Box{Top: 12, Left: 16, Right: 16, Bottom: 24}},
		XAxis:      r.xAxis(xName),
		YAxis:      r.yAxis("", &chart.ContinuousRange{Min: minY, Max: maxY}),
		Series:     []chart.Series{series},
	}
	ch.Width = r.width()
	ch.Height = height
	ch.Background.FillColor = r.background()
	ch.Canvas.FillColor = r.background()

	fig, err := r.renderChartSized(ch)
	if err != nil {
		return nil, fmt.Errorf("waveform: %w", err)
	}
	return fig, nil
}

// decimate reduces a long signal to at most maxPoints min/max envelope pairs
// so rendering cost stays bounded while peaks survive. The X values are in
// seconds when sampleRate is positive, otherwise sample indices.
func decimate(samples types.Series, maxPoints, sampleRate int) ([]float64, []float64) {
	toX := func(i int) float64 {
		if sampleRate > 0 {
			return float64(i) / float64(sampleRate)
		}
		return float64(i)
	}

	if len(samples) <= maxPoints {
		xs := make([]float64, len(samples))
		ys := make([]float64, len(samples))
		for i, v := range samples {
			xs[i] = toX(i)
			ys[i] = v
		}
		return xs, ys
	}

	buckets := maxPoints / 2
	xs := make([]float64, 0, buckets*2)
	ys := make([]float64, 0, buckets*2)
	for b := 0; b < buckets; b++ {
		start := b * len(samples) / buckets
		end := (b + 1) * len(samples) / buckets
		lo, hi := samples[start], samples[start]
		loI, hiI := start, start
		for i := start + 1; i < end; i++ {
			if samples[i] < lo {
				lo, loI = samples[i], i
			}
			if samples[i] > hi {
				hi, hiI = samples[i], i
			}
		}
		// preserve temporal order of the two extremes
		if loI <= hiI {
			xs = append(xs, toX(loI), toX(hiI))
			ys = append(ys, lo, hi)
		} else {
			xs = append(xs, toX(hiI), toX(loI))
			ys = append(ys, hi, lo)
		}
	}
	return xs, ys
}
