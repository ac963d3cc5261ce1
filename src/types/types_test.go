package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDate_JSONRoundTrip(t *testing.T) {
	d := Date{2019, 9, 13}
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "[2019,9,13]" {
		t.Fatalf("expected [2019,9,13], got %s", b)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != d {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
}

func TestDate_UnmarshalRejectsNonArray(t *testing.T) {
	var d Date
	if err := json.Unmarshal([]byte(`"2019-09-13"`), &d); err == nil {
		t.Fatalf("expected error for non-array date")
	}
}

func TestGanttEvent_JSONMatchesEventFileFormat(t *testing.T) {
	raw := `{"event":"test_1","start":[2019,9,13],"end":[2019,9,15],"reference":"category_1"}`
	var ev GanttEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := GanttEvent{
		Event:     "test_1",
		Start:     Date{2019, 9, 13},
		End:       Date{2019, 9, 15},
		Reference: "category_1",
	}
	if diff := cmp.Diff(want, ev); diff != "" {
		t.Fatalf("event mismatch (-want +got):\n%s", diff)
	}
}

func TestMatrix_Dims(t *testing.T) {
	var empty Matrix
	if r, c := empty.Dims(); r != 0 || c != 0 {
		t.Fatalf("empty matrix dims = (%d, %d)", r, c)
	}
	m := Matrix{{1, 2, 3}, {4, 5, 6}}
	if r, c := m.Dims(); r != 2 || c != 3 {
		t.Fatalf("dims = (%d, %d), want (2, 3)", r, c)
	}
}

func TestMatrix_IsRectangular(t *testing.T) {
	cases := []struct {
		name string
		m    Matrix
		want bool
	}{
		{"nil", nil, false},
		{"empty row", Matrix{{}}, false},
		{"rect", Matrix{{1, 2}, {3, 4}}, true},
		{"ragged", Matrix{{1, 2}, {3}}, false},
	}
	for _, tc := range cases {
		if got := tc.m.IsRectangular(); got != tc.want {
			t.Errorf("%s: IsRectangular = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestMatrix_MinMaxSkipsNaN(t *testing.T) {
	m := Matrix{{math.NaN(), 2}, {-5, math.Inf(1)}}
	min, max, ok := m.MinMax()
	if !ok {
		t.Fatalf("expected finite values")
	}
	if min != -5 || max != 2 {
		t.Fatalf("MinMax = (%v, %v), want (-5, 2)", min, max)
	}
	all := Matrix{{math.NaN()}}
	if _, _, ok := all.MinMax(); ok {
		t.Fatalf("all-NaN matrix should report ok=false")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.ColorMap != "Greens" {
		t.Errorf("default colour map = %q, want Greens", s.ColorMap)
	}
	if s.ImageSize != 1200 {
		t.Errorf("default image size = %d, want 1200", s.ImageSize)
	}
	if s.OutputType != OutputNone {
		t.Errorf("default output type should keep figures in memory")
	}
}
