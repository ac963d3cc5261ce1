package colormap

import (
	"errors"
	"testing"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

func TestResolve_ExactlyNDistinctColours(t *testing.T) {
	for _, name := range Names() {
		for _, n := range []int{1, 2, 3, 9, 10, 64, 256} {
			cols, err := Resolve(name, n)
			if err != nil {
				t.Fatalf("%s n=%d: %v", name, n, err)
			}
			if len(cols) != n {
				t.Fatalf("%s n=%d: got %d colours", name, n, len(cols))
			}
			seen := map[drawing.Color]bool{}
			for _, c := range cols {
				if seen[c] {
					t.Fatalf("%s n=%d: duplicate colour %s", name, n, RGBToHex(c))
				}
				seen[c] = true
			}
		}
	}
}

func TestResolve_EndpointsMatchScaleEnds(t *testing.T) {
	cols, err := Resolve("Greens", 9)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got := RGBToHex(cols[0]); got != "#f7fcf5" {
		t.Errorf("first colour = %s, want #f7fcf5", got)
	}
	if got := RGBToHex(cols[8]); got != "#00441b" {
		t.Errorf("last colour = %s, want #00441b", got)
	}
}

func TestResolve_UnknownMapErrors(t *testing.T) {
	_, err := Resolve("NotAMap", 4)
	if !errors.Is(err, ErrUnsupportedColorMap) {
		t.Fatalf("expected ErrUnsupportedColorMap, got %v", err)
	}
}

func TestResolve_RejectsNonPositiveCount(t *testing.T) {
	if _, err := Resolve("Viridis", 0); err == nil {
		t.Fatalf("expected error for n=0")
	}
}

func TestResolve_CaseInsensitiveNames(t *testing.T) {
	a, err := Resolve("viridis", 5)
	if err != nil {
		t.Fatalf("lower-case name: %v", err)
	}
	b, err := Resolve("Viridis", 5)
	if err != nil {
		t.Fatalf("canonical name: %v", err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("case-insensitive lookup diverged at %d", i)
		}
	}
}

func TestAt_ClampsOutOfRange(t *testing.T) {
	lo, err := At("Greys", -0.5)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if RGBToHex(lo) != "#ffffff" {
		t.Errorf("t<0 should clamp to first stop, got %s", RGBToHex(lo))
	}
	hi, _ := At("Greys", 1.5)
	if RGBToHex(hi) != "#000000" {
		t.Errorf("t>1 should clamp to last stop, got %s", RGBToHex(hi))
	}
}

func TestAt_InterpolatesBetweenStops(t *testing.T) {
	// Greys is a straight white-to-black ramp, so the midpoint must be mid-grey.
	c, err := At("Greys", 0.5)
	if err != nil {
		t.Fatalf("At: %v", err)
	}
	if c.R != c.G || c.G != c.B {
		t.Fatalf("mid-grey should be achromatic, got %s", RGBToHex(c))
	}
	if c.R < 140 || c.R > 160 {
		t.Fatalf("Greys midpoint %d outside expected band", c.R)
	}
}

func TestRGBToHex(t *testing.T) {
	cases := []struct {
		c    drawing.Color
		want string
	}{
		{drawing.Color{R: 255, G: 255, B: 255, A: 255}, "#ffffff"},
		{drawing.Color{R: 0, G: 0, B: 0, A: 255}, "#000000"},
		{drawing.Color{R: 134, G: 235, B: 135, A: 255}, "#86eb87"},
	}
	for _, tc := range cases {
		if got := RGBToHex(tc.c); got != tc.want {
			t.Errorf("RGBToHex(%v) = %s, want %s", tc.c, got, tc.want)
		}
	}
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#86EB87")
	if err != nil {
		t.Fatalf("ParseHex: %v", err)
	}
	if c.R != 134 || c.G != 235 || c.B != 135 || c.A != 255 {
		t.Fatalf("ParseHex = %v", c)
	}
	if _, err := ParseHex("not-a-colour"); err == nil {
		t.Fatalf("expected error for malformed hex")
	}
	short, err := ParseHex("#fff")
	if err != nil {
		t.Fatalf("short form: %v", err)
	}
	if RGBToHex(short) != "#ffffff" {
		t.Fatalf("short form expanded to %s", RGBToHex(short))
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	if len(names) < 5 {
		t.Fatalf("expected several registered maps, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %q >= %q", names[i-1], names[i])
		}
	}
}
