package colormap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// RGBToHex formats a colour as a lower-case "#rrggbb" string.
func RGBToHex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" or "rrggbb" (case-insensitive) into an opaque
// colour. The short "#rgb" form expands each digit.
func ParseHex(s string) (drawing.Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return drawing.Color{}, fmt.Errorf("invalid hex colour %q", s)
	}
	var rgb [3]uint8
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(h[2*i:2*i+2], 16, 8)
		if err != nil {
			return drawing.Color{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}
