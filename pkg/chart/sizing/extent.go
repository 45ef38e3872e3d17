package sizing

import (
	"math"

	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/errors"
)

// Bounds are the bar-width and padding limits of the horizontal estimator.
//
// A zero bar width means "use the profile's value", since no bar can be zero
// wide. Padding may legitimately be zero, so the padding fields are pointers
// and only nil falls back to the profile.
type Bounds struct {
	IdealBarWidth float64  `json:"ideal_bar_width,omitempty" toml:"ideal_bar_width" yaml:"ideal_bar_width,omitempty"`
	MinBarWidth   float64  `json:"min_bar_width,omitempty" toml:"min_bar_width" yaml:"min_bar_width,omitempty"`
	MaxBarWidth   float64  `json:"max_bar_width,omitempty" toml:"max_bar_width" yaml:"max_bar_width,omitempty"`
	PaddingLead   *float64 `json:"padding_lead,omitempty" toml:"padding_lead" yaml:"padding_lead,omitempty"`
	PaddingTrail  *float64 `json:"padding_trail,omitempty" toml:"padding_trail" yaml:"padding_trail,omitempty"`
}

// Padding returns a pointer to v for the Bounds padding fields.
func Padding(v float64) *float64 { return &v }

// DefaultBounds returns the bounds configured in p.
func DefaultBounds(p *profile.Profile) Bounds {
	return Bounds{
		IdealBarWidth: p.IdealBarWidth,
		MinBarWidth:   p.MinBarWidth,
		MaxBarWidth:   p.MaxBarWidth,
		PaddingLead:   Padding(p.PaddingLead),
		PaddingTrail:  Padding(p.PaddingTrail),
	}
}

func (b Bounds) lead() float64  { return deref(b.PaddingLead) }
func (b Bounds) trail() float64 { return deref(b.PaddingTrail) }

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// BoundsOption overrides one or more of the profile's default bounds.
type BoundsOption func(*Bounds)

// WithIdealBarWidth sets the width bars are sized around.
func WithIdealBarWidth(w float64) BoundsOption {
	return func(b *Bounds) { b.IdealBarWidth = w }
}

// WithBarWidthRange sets the narrowest and widest acceptable bar.
func WithBarWidthRange(lo, hi float64) BoundsOption {
	return func(b *Bounds) {
		b.MinBarWidth = lo
		b.MaxBarWidth = hi
	}
}

// WithPadding sets the fixed space before the first and after the last category.
func WithPadding(lead, trail float64) BoundsOption {
	return func(b *Bounds) {
		b.PaddingLead = Padding(lead)
		b.PaddingTrail = Padding(trail)
	}
}

// WithBounds applies every set field of o: non-zero bar widths and non-nil
// padding, including an explicit zero.
func WithBounds(o Bounds) BoundsOption {
	return func(b *Bounds) {
		set := func(dst *float64, v float64) {
			if v != 0 {
				*dst = v
			}
		}
		set(&b.IdealBarWidth, o.IdealBarWidth)
		set(&b.MinBarWidth, o.MinBarWidth)
		set(&b.MaxBarWidth, o.MaxBarWidth)
		if o.PaddingLead != nil {
			b.PaddingLead = Padding(*o.PaddingLead)
		}
		if o.PaddingTrail != nil {
			b.PaddingTrail = Padding(*o.PaddingTrail)
		}
	}
}

func (b Bounds) validate() error {
	if err := profile.CheckBarWidths(b.IdealBarWidth, b.MinBarWidth, b.MaxBarWidth); err != nil {
		return err
	}
	for _, v := range []float64{b.lead(), b.trail()} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
			return errors.New(errors.ErrCodeInvalidConfiguration, "padding must be a non-negative finite number, got %v", v)
		}
	}
	return nil
}

// EstimateExtent returns the category-axis extent of a chart with the given
// shape, such that each bar renders close to the ideal width and never
// outside [MinBarWidth, MaxBarWidth].
//
// The extent is the per-category space times the category count plus the
// lead and trail padding, clamped between the extents the minimum and
// maximum bar widths would produce, rounded to the profile's rounding
// increment and finally kept inside the profile's horizontal band. MinExtent
// and MaxExtent in the result are reported after the band is applied, so the
// extent always lies between them.
func EstimateExtent(categories, series int, p *profile.Profile, opts ...BoundsOption) (Result, error) {
	if err := validateInput(categories, series, p); err != nil {
		return Result{}, err
	}
	b, err := resolveBounds(p, opts)
	if err != nil {
		return Result{}, err
	}
	props := computeProportions(categories, series, p, b.IdealBarWidth)

	extentFor := func(width float64) float64 {
		perCategory := spacePerBar(width, props.Bar)*float64(series) + props.Spacing
		if props.Regime == Sparse {
			perCategory += p.Sparse.CategoryPadding
		}
		return perCategory*float64(categories) + b.lead() + b.trail()
	}

	lo, hi := extentFor(b.MinBarWidth), extentFor(b.MaxBarWidth)
	extent := clamp(extentFor(b.IdealBarWidth), lo, hi)
	extent = clamp(roundTo(extent, p.RoundingIncrement), lo, hi)

	return Result{
		Extent:      p.Horizontal.Clamp(extent),
		Proportions: props,
		MinExtent:   p.Horizontal.Clamp(lo),
		MaxExtent:   p.Horizontal.Clamp(hi),
	}, nil
}

// resolveBounds applies opts over the profile's bounds and validates the result.
func resolveBounds(p *profile.Profile, opts []BoundsOption) (Bounds, error) {
	b := DefaultBounds(p)
	for _, opt := range opts {
		opt(&b)
	}
	if err := b.validate(); err != nil {
		return Bounds{}, err
	}
	return b, nil
}

func roundTo(v, increment float64) float64 {
	return math.Round(v/increment) * increment
}
