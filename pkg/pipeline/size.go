package pipeline

import (
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/chart/sizing"
)

// Size runs the estimator selected by the spec's mode. Kinds that are not
// sized get a result whose extent is the responsive floor.
func Size(spec ChartSpec, p *profile.Profile) (sizing.Result, error) {
	if err := spec.Validate(); err != nil {
		return sizing.Result{}, err
	}
	if !spec.IsSized() {
		return sizing.Result{
			Extent:    p.Responsive.Floor,
			MinExtent: p.Responsive.Floor,
			MaxExtent: p.Responsive.Ceiling,
		}, nil
	}
	if spec.ResolvedMode() == ModeResponsive {
		return sizing.EstimateResponsive(spec.Request(), p)
	}
	categories, series := spec.Data.Counts()
	return sizing.EstimateExtent(categories, series, p, sizing.WithBounds(spec.Bounds))
}

// sizingInput is the part of a spec that determines its sizing result.
type sizingInput struct {
	Kind    string         `json:"kind"`
	Request sizing.Request `json:"request"`
	Bounds  sizing.Bounds  `json:"bounds"`
}

func newSizingInput(spec ChartSpec) sizingInput {
	in := sizingInput{Kind: spec.Kind, Request: spec.Request()}
	if spec.ResolvedMode() == ModeHorizontal {
		// The horizontal estimator only reads the counts.
		in.Request = sizing.Request{Categories: in.Request.Categories, Series: in.Request.Series}
		in.Bounds = spec.Bounds
	}
	return in
}
