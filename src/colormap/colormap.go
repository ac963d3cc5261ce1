// Package colormap resolves named colour maps into concrete per-category
// colour sequences. Every map is stored in one uniform format (ordered stops
// over [0, 1]), so resolution behaves identically for every supported name;
// unknown names fail loudly instead of falling back to a wrong palette.
package colormap

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrUnsupportedColorMap is returned when a colour map name does not resolve.
var ErrUnsupportedColorMap = errors.New("unsupported colour map")

// stop anchors a colour at a position in [0, 1].
type stop struct {
	t float64
	c drawing.Color
}

// Scale is a continuous colour scale defined by ordered stops.
type Scale struct {
	name  string
	stops []stop
}

// scales holds every supported map, keyed by lower-cased name.
var scales = map[string]Scale{}

// register builds a Scale from evenly spaced hex stops.
func register(name string, hexes ...string) {
	s := Scale{name: name, stops: make([]stop, len(hexes))}
	for i, h := range hexes {
		c, err := ParseHex(h)
		if err != nil {
			panic(fmt.Sprintf("colormap %s: bad stop %q", name, h))
		}
		t := 0.0
		if len(hexes) > 1 {
			t = float64(i) / float64(len(hexes)-1)
		}
		s.stops[i] = stop{t: t, c: c}
	}
	scales[strings.ToLower(name)] = s
}

func init() {
	// Sequential single-hue maps (ColorBrewer 9-class).
	register("Greens",
		"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476",
		"#41ab5d", "#238b45", "#006d2c", "#00441b")
	register("Blues",
		"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6",
		"#4292c6", "#2171b5", "#08519c", "#08306b")
	register("Reds",
		"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a",
		"#ef3b2c", "#cb181d", "#a50f15", "#67000d")
	register("Greys",
		"#ffffff", "#f0f0f0", "#d9d9d9", "#bdbdbd", "#969696",
		"#737373", "#525252", "#252525", "#000000")
	// Perceptually uniform maps.
	register("Viridis",
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725")
	register("Plasma",
		"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
		"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921")
	register("Inferno",
		"#000004", "#1b0c41", "#4a0c6b", "#781c6d", "#a52c60",
		"#cf4446", "#ed6925", "#fb9b06", "#f7d03c", "#fcffa4")
	register("Magma",
		"#000004", "#180f3d", "#440f76", "#721f81", "#9e2f7f",
		"#cd4071", "#f1605d", "#fd9668", "#feca8d", "#fcfdbf")
	register("Turbo",
		"#30123b", "#4145ab", "#4675ed", "#39a2fc", "#1bcfd4",
		"#24eca6", "#61fc6c", "#a4fc3b", "#d1e834", "#f3c63a",
		"#fe9b2d", "#f36315", "#d93806", "#b11901", "#7a0402")
}

// Names returns the supported colour map names, sorted.
func Names() []string {
	out := make([]string, 0, len(scales))
	for _, s := range scales {
		out = append(out, s.name)
	}
	sort.Strings(out)
	return out
}

// lookup is case-insensitive so "greens" and "Greens" resolve alike.
func lookup(name string) (Scale, error) {
	s, ok := scales[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Scale{}, fmt.Errorf("%w: %q", ErrUnsupportedColorMap, name)
	}
	return s, nil
}

// At returns the colour of the named map at position t. Values outside [0, 1]
// clamp to the scale ends.
func At(name string, t float64) (drawing.Color, error) {
	s, err := lookup(name)
	if err != nil {
		return drawing.Color{}, err
	}
	return s.at(t), nil
}

func (s Scale) at(t float64) drawing.Color {
	if math.IsNaN(t) || t <= 0 || len(s.stops) == 1 {
		return s.stops[0].c
	}
	if t >= 1 {
		return s.stops[len(s.stops)-1].c
	}
	// Find the enclosing stop pair and interpolate linearly between them.
	hi := sort.Search(len(s.stops), func(i int) bool { return s.stops[i].t >= t })
	if hi == 0 {
		return s.stops[0].c
	}
	lo := hi - 1
	span := s.stops[hi].t - s.stops[lo].t
	if span <= 0 {
		return s.stops[hi].c
	}
	f := (t - s.stops[lo].t) / span
	return lerp(s.stops[lo].c, s.stops[hi].c, f)
}

func lerp(a, b drawing.Color, f float64) drawing.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + f*(float64(y)-float64(x))))
	}
	return drawing.Color{
		R: mix(a.R, b.R),
		G: mix(a.G, b.G),
		B: mix(a.B, b.B),
		A: 255,
	}
}

// Resolve samples the named map into exactly n pairwise-distinct colours,
// evenly spaced over the scale. Callers assign one colour per category and
// rely on the distinctness guarantee to keep categories tellable apart.
func Resolve(name string, n int) ([]drawing.Color, error) {
	s, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if n <= 0 {
		return nil, fmt.Errorf("colormap %s: need a positive colour count, got %d", s.name, n)
	}
	out := make([]drawing.Color, n)
	seen := make(map[drawing.Color]bool, n)
	for i := 0; i < n; i++ {
		t := 0.5
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		c := s.at(t)
		// 8-bit quantization can collide adjacent samples on flat parts of a
		// scale; nudge until unique so the n-distinct-colours contract holds.
		for seen[c] {
			c = nudge(c)
		}
		seen[c] = true
		out[i] = c
	}
	return out, nil
}

// nudge steps a colour to the next 24-bit RGB value, wrapping at white, so
// repeated nudges always terminate at an unseen colour.
func nudge(c drawing.Color) drawing.Color {
	v := ((uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)) + 1) & 0xffffff
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}
