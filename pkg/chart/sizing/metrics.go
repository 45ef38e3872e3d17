package sizing

import (
	"math"

	"github.com/matzehuels/chartfit/pkg/chart/config"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
)

// Metrics summarizes how a sized chart will render.
type Metrics struct {
	TotalBars        int     `json:"total_bars"`
	Regime           Regime  `json:"regime"`
	SpacePerCategory float64 `json:"space_per_category"`
	// BarWidth is the rendered width of one bar, rounded to whole units.
	BarWidth float64 `json:"bar_width"`
}

// Measure reports the rendered bar width for a chart sized with props. Pass
// the same bounds options the estimate used so an overridden ideal bar width
// is measured as well.
func Measure(categories, series int, props Proportions, p *profile.Profile, opts ...BoundsOption) (Metrics, error) {
	if err := validateInput(categories, series, p); err != nil {
		return Metrics{}, err
	}
	b, err := resolveBounds(p, opts)
	if err != nil {
		return Metrics{}, err
	}
	perCategory := spacePerBar(b.IdealBarWidth, p.BarProportion)*float64(series) + props.Spacing
	return Metrics{
		TotalBars:        categories * series,
		Regime:           props.Regime,
		SpacePerCategory: perCategory,
		BarWidth:         math.Round(props.Group * perCategory / float64(series) * props.Bar),
	}, nil
}

// Overrides are the per-dataset and chart-level settings derived from a
// sizing result.
type Overrides struct {
	// Dataset is applied to every data series.
	Dataset config.Values
	// Options carries the same settings under elements.bar.
	Options config.Options
}

// Apply converts a result into chart configuration overrides.
func Apply(r Result) Overrides {
	bar := config.Values{
		"barPercentage":      r.Bar,
		"categoryPercentage": r.Group,
	}
	if r.MaxBarThickness > 0 {
		bar["maxBarThickness"] = r.MaxBarThickness
	}
	return Overrides{
		Dataset: bar.Clone(),
		Options: config.Options{
			Elements: map[string]config.Values{"bar": bar},
		},
	}
}

// ApplyDatasets returns copies of datasets with the sizing overrides set.
// The input slice and maps are not modified.
func ApplyDatasets(r Result, datasets []config.Values) []config.Values {
	o := Apply(r)
	out := make([]config.Values, len(datasets))
	for i, ds := range datasets {
		out[i] = ds.Merge(o.Dataset)
	}
	return out
}
