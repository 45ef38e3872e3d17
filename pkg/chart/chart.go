// Package chart defines the data model shared by the sizing engine, the
// configuration merge and the presets: orientation, data ranges, series and
// the dataset container a chart spec carries.
package chart

import (
	"math"
	"strings"

	"github.com/matzehuels/chartfit/pkg/errors"
)

// Orientation selects which axis carries the categories.
type Orientation string

const (
	// Vertical bars: categories on the x (primary) axis, values on y.
	Vertical Orientation = "vertical"
	// Horizontal bars: categories on the y axis, values on x.
	Horizontal Orientation = "horizontal"
)

// ParseOrientation accepts "vertical"/"horizontal" plus the short forms
// "v"/"h" and the axis names "x"/"y" (the index axis). Empty means Vertical.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vertical", "v", "x", "column":
		return Vertical, nil
	case "horizontal", "h", "y", "row":
		return Horizontal, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown orientation %q (want vertical or horizontal)", s)
}

// CategoryAxis returns the scale id holding the categories.
func (o Orientation) CategoryAxis() string {
	if o == Horizontal {
		return "y"
	}
	return "x"
}

// ValueAxis returns the scale id holding the values.
func (o Orientation) ValueAxis() string {
	if o == Horizontal {
		return "x"
	}
	return "y"
}

// IndexAxis returns the chart-library indexAxis setting for o.
func (o Orientation) IndexAxis() string {
	return o.CategoryAxis()
}

func (o Orientation) String() string {
	if o == "" {
		return string(Vertical)
	}
	return string(o)
}

// Range is the observed span of a chart's values.
type Range struct {
	Min float64 `json:"min" toml:"min" yaml:"min"`
	Max float64 `json:"max" toml:"max" yaml:"max"`
}

// Spread returns Max-Min.
func (r Range) Spread() float64 { return r.Max - r.Min }

// Validate rejects non-finite bounds and inverted ranges.
func (r Range) Validate() error {
	if err := errors.ValidateFinite("range min", r.Min); err != nil {
		return err
	}
	if err := errors.ValidateFinite("range max", r.Max); err != nil {
		return err
	}
	if r.Max < r.Min {
		return errors.New(errors.ErrCodeInvalidInput, "range max %v is below min %v", r.Max, r.Min)
	}
	return nil
}

// Series is one dataset: a label, one value per category and an optional color.
type Series struct {
	Label string    `json:"label" toml:"label" yaml:"label"`
	Data  []float64 `json:"data" toml:"data" yaml:"data"`
	Color string    `json:"color,omitempty" toml:"color,omitempty" yaml:"color,omitempty"`
}

// Data is the labelled dataset collection of a chart.
type Data struct {
	Labels []string `json:"labels" toml:"labels" yaml:"labels"`
	Series []Series `json:"series" toml:"series" yaml:"series"`
}

// Counts returns the number of categories and series. The category count is
// the larger of the label count and the longest series.
func (d Data) Counts() (categories, series int) {
	categories = len(d.Labels)
	for _, s := range d.Series {
		categories = max(categories, len(s.Data))
	}
	return categories, len(d.Series)
}

// DataRange reports the span of the data. When stacked, the values sharing a
// category index are summed first and the range covers those sums. NaN and
// infinite values are skipped. The second result is false when no finite
// value exists.
func (d Data) DataRange(stacked bool) (Range, bool) {
	var values []float64
	if stacked {
		categories, _ := d.Counts()
		for i := 0; i < categories; i++ {
			sum, seen := 0.0, false
			for _, s := range d.Series {
				if i < len(s.Data) && isFinite(s.Data[i]) {
					sum += s.Data[i]
					seen = true
				}
			}
			if seen {
				values = append(values, sum)
			}
		}
	} else {
		for _, s := range d.Series {
			for _, v := range s.Data {
				if isFinite(v) {
					values = append(values, v)
				}
			}
		}
	}

	if len(values) == 0 {
		return Range{}, false
	}
	r := Range{Min: values[0], Max: values[0]}
	for _, v := range values[1:] {
		r.Min = math.Min(r.Min, v)
		r.Max = math.Max(r.Max, v)
	}
	return r, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
