// Package profile holds the tuning profile of the sizing engine.
//
// A [Profile] is an immutable bundle of constants: the density threshold,
// bar-width bounds, per-regime spacing and proportion caps, the responsive
// bucket table, container breakpoints and extent floors/ceilings. The values
// returned by [Default] are empirically tuned and meant to be overridden from
// a TOML, YAML or JSON file via [Load].
//
// Profiles are read-only once published. Hosts that hot-reload tuning
// constants publish a fresh snapshot through a [Store] instead of mutating
// fields in place.
package profile

import (
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/chartfit/pkg/errors"
)

// Spacing holds the inter-category spacing constants of one density regime.
type Spacing struct {
	BaseSpacing     float64 `json:"base_spacing" toml:"base_spacing" yaml:"base_spacing"`
	MinSpacing      float64 `json:"min_spacing" toml:"min_spacing" yaml:"min_spacing"`
	ProportionCap   float64 `json:"proportion_cap" toml:"proportion_cap" yaml:"proportion_cap"`
	CategoryPadding float64 `json:"category_padding,omitempty" toml:"category_padding" yaml:"category_padding,omitempty"`
}

// Band is a closed [Floor, Ceiling] interval for extents.
type Band struct {
	Floor   float64 `json:"floor" toml:"floor" yaml:"floor"`
	Ceiling float64 `json:"ceiling" toml:"ceiling" yaml:"ceiling"`
}

// Clamp limits v to the band.
func (b Band) Clamp(v float64) float64 {
	return math.Min(math.Max(v, b.Floor), b.Ceiling)
}

// Bucket is a preset pair of proportions for one density tier.
type Bucket struct {
	Group float64 `json:"group" toml:"group" yaml:"group"`
	Bar   float64 `json:"bar" toml:"bar" yaml:"bar"`
}

// Buckets is the responsive proportion table keyed by category count.
type Buckets struct {
	FewMax    int    `json:"few_max" toml:"few_max" yaml:"few_max"`
	MediumMax int    `json:"medium_max" toml:"medium_max" yaml:"medium_max"`
	Few       Bucket `json:"few" toml:"few" yaml:"few"`
	Medium    Bucket `json:"medium" toml:"medium" yaml:"medium"`
	Many      Bucket `json:"many" toml:"many" yaml:"many"`
}

// Responsive holds the constants of the responsive region estimator.
type Responsive struct {
	Floor            float64 `json:"floor" toml:"floor" yaml:"floor"`
	Ceiling          float64 `json:"ceiling" toml:"ceiling" yaml:"ceiling"`
	NarrowCeiling    float64 `json:"narrow_ceiling" toml:"narrow_ceiling" yaml:"narrow_ceiling"`
	RangeRatioFloor  float64 `json:"range_ratio_floor" toml:"range_ratio_floor" yaml:"range_ratio_floor"`
	PerSeriesPadding float64 `json:"per_series_padding" toml:"per_series_padding" yaml:"per_series_padding"`
	Buckets          Buckets `json:"buckets" toml:"buckets" yaml:"buckets"`
}

// Breakpoints are container widths separating narrow, regular, wide and
// large layouts. A container below Narrow is narrow; at or above Wide it is
// wide; at or above Large it is large.
type Breakpoints struct {
	Narrow float64 `json:"narrow" toml:"narrow" yaml:"narrow"`
	Wide   float64 `json:"wide" toml:"wide" yaml:"wide"`
	Large  float64 `json:"large" toml:"large" yaml:"large"`
}

// Thickness holds the maxBarThickness caps.
type Thickness struct {
	Default float64 `json:"default" toml:"default" yaml:"default"`
	Wide    float64 `json:"wide" toml:"wide" yaml:"wide"`
	Large   float64 `json:"large" toml:"large" yaml:"large"`
}

// Ticks holds the tick-length constants applied during normalization.
type Ticks struct {
	Length       float64 `json:"length" toml:"length" yaml:"length"`
	HiddenLength float64 `json:"hidden_length" toml:"hidden_length" yaml:"hidden_length"`
	HiddenMarker string  `json:"hidden_marker" toml:"hidden_marker" yaml:"hidden_marker"`
}

// Profile is the full set of tuning constants.
type Profile struct {
	// DensityThreshold is the total bar count above which the dense regime applies.
	DensityThreshold int `json:"density_threshold" toml:"density_threshold" yaml:"density_threshold"`

	IdealBarWidth float64 `json:"ideal_bar_width" toml:"ideal_bar_width" yaml:"ideal_bar_width"`
	MinBarWidth   float64 `json:"min_bar_width" toml:"min_bar_width" yaml:"min_bar_width"`
	MaxBarWidth   float64 `json:"max_bar_width" toml:"max_bar_width" yaml:"max_bar_width"`

	// BarProportion is the fraction of its slot a single bar fills.
	BarProportion float64 `json:"bar_proportion" toml:"bar_proportion" yaml:"bar_proportion"`

	Sparse Spacing `json:"sparse" toml:"sparse" yaml:"sparse"`
	Dense  Spacing `json:"dense" toml:"dense" yaml:"dense"`

	PaddingLead       float64 `json:"padding_lead" toml:"padding_lead" yaml:"padding_lead"`
	PaddingTrail      float64 `json:"padding_trail" toml:"padding_trail" yaml:"padding_trail"`
	RoundingIncrement float64 `json:"rounding_increment" toml:"rounding_increment" yaml:"rounding_increment"`

	Horizontal  Band        `json:"horizontal" toml:"horizontal" yaml:"horizontal"`
	Responsive  Responsive  `json:"responsive" toml:"responsive" yaml:"responsive"`
	Breakpoints Breakpoints `json:"breakpoints" toml:"breakpoints" yaml:"breakpoints"`
	Thickness   Thickness   `json:"thickness" toml:"thickness" yaml:"thickness"`
	Ticks       Ticks       `json:"ticks" toml:"ticks" yaml:"ticks"`
}

// Default returns the built-in profile. Each call returns a fresh value.
func Default() *Profile {
	return &Profile{
		DensityThreshold: 12,
		IdealBarWidth:    16,
		MinBarWidth:      12,
		MaxBarWidth:      24,
		BarProportion:    1.0,
		Sparse: Spacing{
			BaseSpacing:     12,
			MinSpacing:      4,
			ProportionCap:   0.8,
			CategoryPadding: 1.5,
		},
		Dense: Spacing{
			BaseSpacing:   4,
			MinSpacing:    2,
			ProportionCap: 0.9,
		},
		PaddingLead:       24,
		PaddingTrail:      56,
		RoundingIncrement: 8,
		Horizontal:        Band{Floor: 96, Ceiling: 2400},
		Responsive: Responsive{
			Floor:            240,
			Ceiling:          400,
			NarrowCeiling:    320,
			RangeRatioFloor:  0.1,
			PerSeriesPadding: 16,
			Buckets: Buckets{
				FewMax:    3,
				MediumMax: 8,
				Few:       Bucket{Group: 0.5, Bar: 0.8},
				Medium:    Bucket{Group: 0.7, Bar: 0.9},
				Many:      Bucket{Group: 0.8, Bar: 1.0},
			},
		},
		Breakpoints: Breakpoints{Narrow: 600, Wide: 900, Large: 1400},
		Thickness:   Thickness{Default: 24, Wide: 40, Large: 56},
		Ticks:       Ticks{Length: 12, HiddenLength: 0, HiddenMarker: "transparent"},
	}
}

// Clone returns a deep copy of p.
func (p *Profile) Clone() *Profile {
	c := *p
	return &c
}

// Bucket returns the responsive proportions for a category count.
func (p *Profile) Bucket(categories int) Bucket {
	b := p.Responsive.Buckets
	switch {
	case categories <= b.FewMax:
		return b.Few
	case categories <= b.MediumMax:
		return b.Medium
	default:
		return b.Many
	}
}

// Validate reports the first malformed field as an INVALID_CONFIGURATION error.
func (p *Profile) Validate() error {
	if p == nil {
		return invalid("profile is nil")
	}
	if p.DensityThreshold < 1 {
		return invalid("density_threshold must be >= 1, got %d", p.DensityThreshold)
	}
	if err := positive(map[string]float64{
		"ideal_bar_width":    p.IdealBarWidth,
		"min_bar_width":      p.MinBarWidth,
		"max_bar_width":      p.MaxBarWidth,
		"rounding_increment": p.RoundingIncrement,
		"horizontal.ceiling": p.Horizontal.Ceiling,
		"responsive.floor":   p.Responsive.Floor,
		"thickness.default":  p.Thickness.Default,
		"thickness.wide":     p.Thickness.Wide,
		"thickness.large":    p.Thickness.Large,
	}); err != nil {
		return err
	}
	if err := checkBarWidths(p.IdealBarWidth, p.MinBarWidth, p.MaxBarWidth); err != nil {
		return err
	}
	if !inUnit(p.BarProportion) {
		return invalid("bar_proportion must be in (0, 1], got %v", p.BarProportion)
	}
	if err := p.Sparse.validate("sparse"); err != nil {
		return err
	}
	if err := p.Dense.validate("dense"); err != nil {
		return err
	}
	if err := nonNegative(map[string]float64{
		"padding_lead":                  p.PaddingLead,
		"padding_trail":                 p.PaddingTrail,
		"horizontal.floor":              p.Horizontal.Floor,
		"responsive.per_series_padding": p.Responsive.PerSeriesPadding,
		"ticks.length":                  p.Ticks.Length,
		"ticks.hidden_length":           p.Ticks.HiddenLength,
	}); err != nil {
		return err
	}
	if p.Horizontal.Floor > p.Horizontal.Ceiling {
		return invalid("horizontal.floor %v exceeds horizontal.ceiling %v", p.Horizontal.Floor, p.Horizontal.Ceiling)
	}
	return p.validateResponsive()
}

func (p *Profile) validateResponsive() error {
	r := p.Responsive
	if !(r.Floor <= r.NarrowCeiling && r.NarrowCeiling <= r.Ceiling) {
		return invalid("responsive bounds must satisfy floor <= narrow_ceiling <= ceiling, got %v/%v/%v",
			r.Floor, r.NarrowCeiling, r.Ceiling)
	}
	if !(r.RangeRatioFloor >= 0 && r.RangeRatioFloor <= 1) {
		return invalid("responsive.range_ratio_floor must be in [0, 1], got %v", r.RangeRatioFloor)
	}
	if r.Buckets.FewMax < 1 || r.Buckets.MediumMax < r.Buckets.FewMax {
		return invalid("responsive.buckets must satisfy 1 <= few_max <= medium_max, got %d/%d",
			r.Buckets.FewMax, r.Buckets.MediumMax)
	}
	buckets := map[string]Bucket{"few": r.Buckets.Few, "medium": r.Buckets.Medium, "many": r.Buckets.Many}
	for _, name := range sortedKeys(buckets) {
		b := buckets[name]
		if !inUnit(b.Group) || !inUnit(b.Bar) {
			return invalid("responsive.buckets.%s proportions must be in (0, 1], got group=%v bar=%v", name, b.Group, b.Bar)
		}
	}
	bp := p.Breakpoints
	if !(bp.Narrow > 0 && bp.Narrow <= bp.Wide && bp.Wide <= bp.Large) {
		return invalid("breakpoints must satisfy 0 < narrow <= wide <= large, got %v/%v/%v", bp.Narrow, bp.Wide, bp.Large)
	}
	return nil
}

func (s Spacing) validate(name string) error {
	if s.BaseSpacing < 0 || s.MinSpacing < 0 || s.CategoryPadding < 0 {
		return invalid("%s spacing values must be >= 0", name)
	}
	if !(s.ProportionCap >= 0.5 && s.ProportionCap <= 1) {
		return invalid("%s.proportion_cap must be in [0.5, 1], got %v", name, s.ProportionCap)
	}
	return nil
}

// CheckBarWidths validates a bar-width triple as INVALID_CONFIGURATION.
func CheckBarWidths(ideal, lo, hi float64) error {
	if err := positive(map[string]float64{"ideal_bar_width": ideal, "min_bar_width": lo, "max_bar_width": hi}); err != nil {
		return err
	}
	return checkBarWidths(ideal, lo, hi)
}

func checkBarWidths(ideal, lo, hi float64) error {
	if lo > hi {
		return invalid("min_bar_width %v exceeds max_bar_width %v", lo, hi)
	}
	if ideal < lo || ideal > hi {
		return invalid("ideal_bar_width %v outside [%v, %v]", ideal, lo, hi)
	}
	return nil
}

func positive(fields map[string]float64) error {
	for _, name := range sortedKeys(fields) {
		v := fields[name]
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return invalid("%s must be a positive finite number, got %v", name, v)
		}
	}
	return nil
}

func nonNegative(fields map[string]float64) error {
	for _, name := range sortedKeys(fields) {
		v := fields[name]
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return invalid("%s must be a non-negative finite number, got %v", name, v)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func inUnit(v float64) bool { return v > 0 && v <= 1 }

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfiguration, format, args...)
}
