package sizing

import (
	"math"

	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/errors"
)

// MinGroupProportion is the lower bound of every group proportion.
const MinGroupProportion = 0.5

// Regime is the density classification of a chart.
type Regime int

const (
	Sparse Regime = iota
	Dense
)

func (r Regime) String() string {
	if r == Dense {
		return "dense"
	}
	return "sparse"
}

// MarshalText implements encoding.TextMarshaler.
func (r Regime) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Regime) UnmarshalText(b []byte) error {
	switch string(b) {
	case "sparse":
		*r = Sparse
	case "dense":
		*r = Dense
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unknown regime %q", b)
	}
	return nil
}

// Proportions describes how a category slot is divided.
type Proportions struct {
	// Group is the fraction of the category slot the bar group occupies.
	Group float64 `json:"group_proportion"`
	// Bar is the fraction of its sub-slot a single bar fills.
	Bar float64 `json:"bar_proportion"`
	// Spacing is the gap between adjacent category groups.
	Spacing float64 `json:"spacing"`
	// Regime is the density classification that produced the proportions.
	Regime Regime `json:"regime"`
}

// Dense reports whether the dense regime applied.
func (p Proportions) Dense() bool { return p.Regime == Dense }

// Classify returns the density regime for a chart shape. Counts are assumed
// to be validated.
func Classify(categories, series int, p *profile.Profile) Regime {
	if categories*series > p.DensityThreshold {
		return Dense
	}
	return Sparse
}

// ComputeProportions returns the proportions for categories x series bars.
//
// Sparse charts space categories by BaseSpacing/sqrt(categories), floored at
// MinSpacing. Dense charts start from the dense base spacing and, beyond
// three series, shrink it by a quarter of the ideal bar width per extra
// series (at most one ideal width), floored at the dense MinSpacing. The group
// proportion is then clamped into [0.5, cap] for the regime.
func ComputeProportions(categories, series int, p *profile.Profile) (Proportions, error) {
	if err := validateInput(categories, series, p); err != nil {
		return Proportions{}, err
	}
	return computeProportions(categories, series, p, p.IdealBarWidth), nil
}

// computeProportions sizes around ideal instead of the profile's ideal bar
// width. Inputs are assumed to be validated.
func computeProportions(categories, series int, p *profile.Profile, ideal float64) Proportions {
	regime := Classify(categories, series, p)
	var spacing, limit float64
	switch regime {
	case Sparse:
		spacing = math.Max(p.Sparse.MinSpacing, p.Sparse.BaseSpacing/math.Sqrt(float64(categories)))
		limit = p.Sparse.ProportionCap
	case Dense:
		spacing = p.Dense.BaseSpacing
		limit = p.Dense.ProportionCap
		if series > 3 {
			reduction := math.Min(float64(series-3)*(ideal/4), ideal)
			spacing = math.Max(p.Dense.MinSpacing, spacing-reduction)
		}
	}

	group := spacePerBar(ideal, p.BarProportion) * float64(series)
	return Proportions{
		Group:   clamp(group/(group+spacing), MinGroupProportion, limit),
		Bar:     p.BarProportion,
		Spacing: spacing,
		Regime:  regime,
	}
}

func spacePerBar(width, bar float64) float64 {
	return width / bar
}

func validateCounts(categories, series int) error {
	if err := errors.ValidateCount("category count", categories); err != nil {
		return err
	}
	return errors.ValidateCount("series count", series)
}

// validateInput checks the chart shape and the profile every estimator reads.
// A nil or zero-value profile fails here rather than producing NaN or zero
// extents downstream.
func validateInput(categories, series int, p *profile.Profile) error {
	if err := validateCounts(categories, series); err != nil {
		return err
	}
	return p.Validate()
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
