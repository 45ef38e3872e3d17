package sizing

import (
	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/errors"
)

// Request describes a chart whose perpendicular axis is sized against an
// external container.
type Request struct {
	Categories      int               `json:"categories"`
	Series          int               `json:"series"`
	Orientation     chart.Orientation `json:"orientation,omitempty"`
	ContainerExtent float64           `json:"container_extent"`
	Range           *chart.Range      `json:"range,omitempty"`
	Stacked         bool              `json:"stacked,omitempty"`
	AllowWideBars   bool              `json:"allow_wide_bars,omitempty"`
}

// Validate checks the request shape. All failures are INVALID_INPUT.
func (r Request) Validate() error {
	if err := validateCounts(r.Categories, r.Series); err != nil {
		return err
	}
	if err := errors.ValidatePositive("container extent", r.ContainerExtent); err != nil {
		return err
	}
	if r.Range != nil {
		return r.Range.Validate()
	}
	return nil
}

// EstimateResponsive sizes the axis perpendicular to the container.
//
// Proportions come from the profile's bucket table for the category count
// rather than from spacing arithmetic; more than one series makes bars touch
// within their group. The extent is interpolated inside the responsive band
// from the relative spread of the data range (a degenerate or missing range
// uses the floor), padded per extra series and clamped to a ceiling that
// drops for narrow containers. Wide containers allow thicker bars when the
// caller opts in.
func EstimateResponsive(req Request, p *profile.Profile) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	bucket := p.Bucket(req.Categories)
	bar := bucket.Bar
	if req.Series > 1 {
		bar = 1
	}

	r := p.Responsive
	extent := r.Floor
	if req.Range != nil && req.Range.Max > 0 {
		ratio := clamp(req.Range.Spread()/req.Range.Max, r.RangeRatioFloor, 1)
		extent = r.Floor + (1-ratio)*(r.Ceiling-r.Floor)
	}
	if req.Series > 1 {
		extent += float64(req.Series-1) * r.PerSeriesPadding
	}

	ceiling := r.Ceiling
	if req.ContainerExtent < p.Breakpoints.Narrow {
		ceiling = r.NarrowCeiling
	}

	return Result{
		Extent: clamp(extent, r.Floor, ceiling),
		Proportions: Proportions{
			Group:  bucket.Group,
			Bar:    bar,
			Regime: Classify(req.Categories, req.Series, p),
		},
		MaxBarThickness: maxBarThickness(req.ContainerExtent, req.AllowWideBars, p),
		MinExtent:       r.Floor,
		MaxExtent:       ceiling,
	}, nil
}

func maxBarThickness(container float64, allowWide bool, p *profile.Profile) float64 {
	switch {
	case !allowWide || container < p.Breakpoints.Wide:
		return p.Thickness.Default
	case container >= p.Breakpoints.Large:
		return p.Thickness.Large
	default:
		return p.Thickness.Wide
	}
}

// Layout names the container class of a width.
type Layout string

const (
	LayoutNarrow  Layout = "narrow"
	LayoutRegular Layout = "regular"
	LayoutWide    Layout = "wide"
	LayoutLarge   Layout = "large"
)

// Detect classifies a container width against the profile breakpoints.
func Detect(container float64, p *profile.Profile) Layout {
	bp := p.Breakpoints
	switch {
	case container < bp.Narrow:
		return LayoutNarrow
	case container >= bp.Large:
		return LayoutLarge
	case container >= bp.Wide:
		return LayoutWide
	default:
		return LayoutRegular
	}
}
