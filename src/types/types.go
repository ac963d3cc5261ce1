package types

import (
	"encoding/json"
	"fmt"
	"image"
	"math"
	"time"
)

// Date is a calendar day expressed as (year, month, day). It marshals to and
// from the three-element JSON array used by Gantt event files, e.g. [2019, 9, 13].
type Date struct {
	Year  int
	Month int
	Day   int
}

// Time converts the date to a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool { return d.Year == 0 && d.Month == 0 && d.Day == 0 }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalJSON encodes the date as [year, month, day].
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{d.Year, d.Month, d.Day})
}

// UnmarshalJSON decodes [year, month, day].
func (d *Date) UnmarshalJSON(b []byte) error {
	var arr [3]int
	if err := json.Unmarshal(b, &arr); err != nil {
		return fmt.Errorf("date must be a [year, month, day] array: %w", err)
	}
	d.Year, d.Month, d.Day = arr[0], arr[1], arr[2]
	return nil
}

// GanttEvent is one horizontal bar on a Gantt chart. Event, Start and End are
// mandatory. Color (a hex string such as "#126b21") takes precedence over
// Reference; when only Reference is set the event is coloured by the active
// colour map, one colour per distinct reference, and the reference name is
// listed in the chart key.
type GanttEvent struct {
	Event     string `json:"event"`
	Start     Date   `json:"start"`
	End       Date   `json:"end"`
	Color     string `json:"color,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// RenderedFigure is the result of rendering any chart kind: the encoded PNG
// plus its decoded pixel form and geometry. Width always equals the canonical
// width configured for the figure family (GraphSettings.ImageSize), so all
// figures rendered with the same settings line up when stacked in a document.
type RenderedFigure struct {
	Width  int
	Height int
	PNG    []byte
	Image  image.Image
}

// Series is a one dimensional run of samples.
type Series []float64

// Matrix is a dense row-major 2D grid of values. Rows must all share a length.
type Matrix [][]float64

// Dims returns (rows, cols). A nil matrix is (0, 0).
func (m Matrix) Dims() (int, int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

// IsRectangular reports whether every row has the same length and the matrix
// is non-empty.
func (m Matrix) IsRectangular() bool {
	if len(m) == 0 || len(m[0]) == 0 {
		return false
	}
	w := len(m[0])
	for _, row := range m {
		if len(row) != w {
			return false
		}
	}
	return true
}

// MinMax returns the smallest and largest finite values in the matrix.
// NaN and infinite cells are skipped. ok is false when no finite cell exists.
func (m Matrix) MinMax() (min, max float64, ok bool) {
	min = math.MaxFloat64
	max = -math.MaxFloat64
	for _, row := range m {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}
