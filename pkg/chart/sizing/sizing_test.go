package sizing

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/config"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/errors"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// =============================================================================
// Proportions
// =============================================================================

func TestComputeProportions(t *testing.T) {
	p := profile.Default()
	tests := []struct {
		name              string
		categories, count int
		group, spacing    float64
		regime            Regime
	}{
		{"single bar", 1, 1, 16.0 / 28, 12, Sparse},
		{"sparse sqrt spacing", 2, 2, 32 / (32 + 12/math.Sqrt2), 12 / math.Sqrt2, Sparse},
		{"sparse at threshold", 12, 1, 0.8, 4, Sparse},
		{"dense boundary", 7, 2, 32.0 / 36, 4, Dense},
		{"dense many series", 3, 6, 0.9, 2, Dense},
		{"dense capped", 100, 1, 0.8, 4, Dense},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeProportions(tt.categories, tt.count, p)
			if err != nil {
				t.Fatalf("ComputeProportions() error = %v", err)
			}
			if !approx(got.Group, tt.group) {
				t.Errorf("Group = %v, want %v", got.Group, tt.group)
			}
			if !approx(got.Spacing, tt.spacing) {
				t.Errorf("Spacing = %v, want %v", got.Spacing, tt.spacing)
			}
			if got.Regime != tt.regime {
				t.Errorf("Regime = %v, want %v", got.Regime, tt.regime)
			}
			if got.Bar != p.BarProportion {
				t.Errorf("Bar = %v, want %v", got.Bar, p.BarProportion)
			}
		})
	}
}

func TestComputeProportionsDenseBoundary(t *testing.T) {
	p := profile.Default()
	got, err := ComputeProportions(7, 2, p)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Dense() {
		t.Fatal("7x2 classified as sparse, want dense")
	}
	if got.Spacing != p.Dense.BaseSpacing {
		t.Errorf("Spacing = %v, want dense base spacing %v", got.Spacing, p.Dense.BaseSpacing)
	}
	if got.Group > p.Dense.ProportionCap {
		t.Errorf("Group = %v exceeds dense cap %v", got.Group, p.Dense.ProportionCap)
	}
}

func TestComputeProportionsBounds(t *testing.T) {
	p := profile.Default()
	for c := 1; c <= 60; c++ {
		for s := 1; s <= 12; s++ {
			got, err := ComputeProportions(c, s, p)
			if err != nil {
				t.Fatalf("ComputeProportions(%d, %d) error = %v", c, s, err)
			}
			limit := p.Sparse.ProportionCap
			if c*s > p.DensityThreshold {
				limit = p.Dense.ProportionCap
			}
			if got.Group < MinGroupProportion || got.Group > limit {
				t.Errorf("ComputeProportions(%d, %d).Group = %v, want in [0.5, %v]", c, s, got.Group, limit)
			}
			if got.Bar <= 0 || got.Bar > 1 {
				t.Errorf("ComputeProportions(%d, %d).Bar = %v, want in (0, 1]", c, s, got.Bar)
			}
		}
	}
}

func TestComputeProportionsInvalidInput(t *testing.T) {
	p := profile.Default()
	for _, tc := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := ComputeProportions(tc[0], tc[1], p)
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("ComputeProportions(%d, %d) code = %v, want %v", tc[0], tc[1], errors.GetCode(err), errors.ErrCodeInvalidInput)
		}
	}
}

func TestEstimatorsRejectInvalidProfile(t *testing.T) {
	with := func(mutate func(*profile.Profile)) *profile.Profile {
		p := profile.Default().Clone()
		mutate(p)
		return p
	}
	tests := []struct {
		name string
		p    *profile.Profile
	}{
		{"nil profile", nil},
		{"zero-value profile", &profile.Profile{}},
		{"zero density threshold", with(func(p *profile.Profile) { p.DensityThreshold = 0 })},
		{"zero rounding increment", with(func(p *profile.Profile) { p.RoundingIncrement = 0 })},
	}
	req := Request{Categories: 3, Series: 1, ContainerExtent: 900}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := errors.ErrCodeInvalidConfiguration
			if _, err := ComputeProportions(3, 1, tt.p); !errors.Is(err, want) {
				t.Errorf("ComputeProportions() code = %v, want %v", errors.GetCode(err), want)
			}
			if _, err := EstimateExtent(3, 1, tt.p); !errors.Is(err, want) {
				t.Errorf("EstimateExtent() code = %v, want %v", errors.GetCode(err), want)
			}
			if _, err := EstimateResponsive(req, tt.p); !errors.Is(err, want) {
				t.Errorf("EstimateResponsive() code = %v, want %v", errors.GetCode(err), want)
			}
			if _, err := Measure(3, 1, Proportions{Group: 0.8, Bar: 1}, tt.p); !errors.Is(err, want) {
				t.Errorf("Measure() code = %v, want %v", errors.GetCode(err), want)
			}
		})
	}
}

// =============================================================================
// Horizontal extent
// =============================================================================

func TestEstimateExtent(t *testing.T) {
	p := profile.Default()
	tests := []struct {
		categories, series int
		want               float64
	}{
		{1, 1, 112},
		{2, 2, 160},
		{3, 1, 152},
		{7, 2, 336},
		{12, 1, 336},
		{13, 1, 344},
		{3, 6, 376},
	}

	for _, tt := range tests {
		got, err := EstimateExtent(tt.categories, tt.series, p)
		if err != nil {
			t.Fatalf("EstimateExtent(%d, %d) error = %v", tt.categories, tt.series, err)
		}
		if got.Extent != tt.want {
			t.Errorf("EstimateExtent(%d, %d).Extent = %v, want %v", tt.categories, tt.series, got.Extent, tt.want)
		}
	}
}

func TestEstimateExtentClamping(t *testing.T) {
	p := profile.Default()
	for _, c := range []int{1, 2, 5, 13, 40, 100, 1000, 100000} {
		for _, s := range []int{1, 2, 4, 9} {
			got, err := EstimateExtent(c, s, p)
			if err != nil {
				t.Fatalf("EstimateExtent(%d, %d) error = %v", c, s, err)
			}
			if got.Extent < got.MinExtent || got.Extent > got.MaxExtent {
				t.Errorf("EstimateExtent(%d, %d).Extent = %v outside [%v, %v]", c, s, got.Extent, got.MinExtent, got.MaxExtent)
			}
			if got.Extent < p.Horizontal.Floor || got.Extent > p.Horizontal.Ceiling {
				t.Errorf("EstimateExtent(%d, %d).Extent = %v outside profile band", c, s, got.Extent)
			}
		}
	}
}

func TestEstimateExtentMonotonic(t *testing.T) {
	p := profile.Default()
	for s := 1; s <= 12; s++ {
		prev := 0.0
		for c := 1; c <= 200; c++ {
			got, err := EstimateExtent(c, s, p)
			if err != nil {
				t.Fatal(err)
			}
			if got.Extent < prev {
				t.Fatalf("EstimateExtent(%d, %d) = %v, below %v for %d categories", c, s, got.Extent, prev, c-1)
			}
			prev = got.Extent
		}
	}
}

func TestEstimateExtentDeterministic(t *testing.T) {
	p := profile.Default()
	a, _ := EstimateExtent(9, 3, p, WithPadding(10, 10))
	b, _ := EstimateExtent(9, 3, p, WithPadding(10, 10))
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("EstimateExtent not deterministic (-first +second):\n%s", diff)
	}
}

func TestEstimateExtentOptions(t *testing.T) {
	p := profile.Default()
	base, _ := EstimateExtent(4, 1, p)

	wider, err := EstimateExtent(4, 1, p, WithIdealBarWidth(20))
	if err != nil {
		t.Fatal(err)
	}
	if wider.Extent <= base.Extent {
		t.Errorf("ideal width 20 extent = %v, want > %v", wider.Extent, base.Extent)
	}

	padded, err := EstimateExtent(4, 1, p, WithBounds(Bounds{PaddingLead: Padding(100)}))
	if err != nil {
		t.Fatal(err)
	}
	if padded.Extent <= base.Extent {
		t.Errorf("lead padding 100 extent = %v, want > %v", padded.Extent, base.Extent)
	}
	if p.IdealBarWidth != 16 {
		t.Errorf("profile mutated: IdealBarWidth = %v", p.IdealBarWidth)
	}
}

func TestEstimateExtentZeroPadding(t *testing.T) {
	p := profile.Default()
	tests := []struct {
		name   string
		bounds Bounds
		want   float64
	}{
		{"unset keeps profile padding", Bounds{}, 336},
		{"zero lead", Bounds{PaddingLead: Padding(0)}, 312},
		{"zero lead and trail", Bounds{PaddingLead: Padding(0), PaddingTrail: Padding(0)}, 256},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateExtent(12, 1, p, WithBounds(tt.bounds))
			if err != nil {
				t.Fatal(err)
			}
			if got.Extent != tt.want {
				t.Errorf("EstimateExtent(12, 1).Extent = %v, want %v", got.Extent, tt.want)
			}
		})
	}
}

func TestEstimateExtentErrors(t *testing.T) {
	p := profile.Default()
	tests := []struct {
		name       string
		categories int
		series     int
		opts       []BoundsOption
		code       errors.Code
	}{
		{"zero categories", 0, 1, nil, errors.ErrCodeInvalidInput},
		{"zero series", 3, 0, nil, errors.ErrCodeInvalidInput},
		{"min above max", 3, 1, []BoundsOption{WithBarWidthRange(30, 10)}, errors.ErrCodeInvalidConfiguration},
		{"ideal outside range", 3, 1, []BoundsOption{WithIdealBarWidth(50)}, errors.ErrCodeInvalidConfiguration},
		{"negative padding", 3, 1, []BoundsOption{WithPadding(-1, 0)}, errors.ErrCodeInvalidConfiguration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateExtent(tt.categories, tt.series, p, tt.opts...)
			if !errors.Is(err, tt.code) {
				t.Errorf("EstimateExtent() code = %v, want %v", errors.GetCode(err), tt.code)
			}
		})
	}
}

// =============================================================================
// Responsive
// =============================================================================

func TestEstimateResponsiveRangeInterpolation(t *testing.T) {
	p := profile.Default()
	narrowSpread := Request{Categories: 2, Series: 1, ContainerExtent: 900, Range: &chart.Range{Min: 1245, Max: 1890}}
	wideSpread := narrowSpread
	wideSpread.Range = &chart.Range{Min: 100, Max: 1890}

	a, err := EstimateResponsive(narrowSpread, p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EstimateResponsive(wideSpread, p)
	if err != nil {
		t.Fatal(err)
	}

	want := 240 + (1-645.0/1890)*160
	if !approx(a.Extent, want) {
		t.Errorf("Extent = %v, want %v", a.Extent, want)
	}
	if a.Extent < p.Responsive.Floor || a.Extent > p.Responsive.Ceiling {
		t.Errorf("Extent = %v outside [%v, %v]", a.Extent, p.Responsive.Floor, p.Responsive.Ceiling)
	}
	if a.Extent == b.Extent {
		t.Errorf("Extent = %v for both spreads, want the range to drive interpolation", a.Extent)
	}
	// A tight spread reads as a small relative range and gets the taller
	// extent. See DESIGN.md, "Open Question decisions" 1.
	if a.Extent <= b.Extent {
		t.Errorf("tight spread extent %v, want > wide spread extent %v", a.Extent, b.Extent)
	}
	if a.Group != 0.5 || a.Bar != 0.8 {
		t.Errorf("proportions = (%v, %v), want few bucket (0.5, 0.8)", a.Group, a.Bar)
	}
}

func TestEstimateResponsive(t *testing.T) {
	p := profile.Default()
	tests := []struct {
		name      string
		req       Request
		extent    float64
		group     float64
		bar       float64
		thickness float64
	}{
		{
			name:   "no range uses floor",
			req:    Request{Categories: 5, Series: 1, ContainerExtent: 800},
			extent: 240, group: 0.7, bar: 0.9, thickness: 24,
		},
		{
			name:   "all zero range uses floor",
			req:    Request{Categories: 5, Series: 1, ContainerExtent: 800, Range: &chart.Range{}},
			extent: 240, group: 0.7, bar: 0.9, thickness: 24,
		},
		{
			name:   "flat range reaches ceiling",
			req:    Request{Categories: 2, Series: 1, ContainerExtent: 800, Range: &chart.Range{Min: 50, Max: 50}},
			extent: 240 + 0.9*160, group: 0.5, bar: 0.8, thickness: 24,
		},
		{
			name:   "multi series forces bar and pads",
			req:    Request{Categories: 12, Series: 3, ContainerExtent: 800},
			extent: 240 + 2*16, group: 0.8, bar: 1, thickness: 24,
		},
		{
			name:   "stacked multi series",
			req:    Request{Categories: 2, Series: 2, Stacked: true, ContainerExtent: 800},
			extent: 256, group: 0.5, bar: 1, thickness: 24,
		},
		{
			name:   "narrow container lowers ceiling",
			req:    Request{Categories: 2, Series: 8, ContainerExtent: 400, Range: &chart.Range{Min: 90, Max: 100}},
			extent: 320, group: 0.5, bar: 1, thickness: 24,
		},
		{
			name:   "regular container keeps full ceiling",
			req:    Request{Categories: 2, Series: 12, ContainerExtent: 700, Range: &chart.Range{Min: 90, Max: 100}},
			extent: 400, group: 0.5, bar: 1, thickness: 24,
		},
		{
			name:   "wide without opt in",
			req:    Request{Categories: 9, Series: 1, ContainerExtent: 1000},
			extent: 240, group: 0.8, bar: 1, thickness: 24,
		},
		{
			name:   "wide with opt in",
			req:    Request{Categories: 9, Series: 1, ContainerExtent: 1000, AllowWideBars: true},
			extent: 240, group: 0.8, bar: 1, thickness: 40,
		},
		{
			name:   "large with opt in",
			req:    Request{Categories: 9, Series: 1, ContainerExtent: 1600, AllowWideBars: true},
			extent: 240, group: 0.8, bar: 1, thickness: 56,
		},
		{
			name:   "negative min clamps ratio",
			req:    Request{Categories: 4, Series: 1, ContainerExtent: 800, Range: &chart.Range{Min: -50, Max: 100}},
			extent: 240, group: 0.7, bar: 0.9, thickness: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateResponsive(tt.req, p)
			if err != nil {
				t.Fatalf("EstimateResponsive() error = %v", err)
			}
			if !approx(got.Extent, tt.extent) {
				t.Errorf("Extent = %v, want %v", got.Extent, tt.extent)
			}
			if got.Group != tt.group || got.Bar != tt.bar {
				t.Errorf("proportions = (%v, %v), want (%v, %v)", got.Group, got.Bar, tt.group, tt.bar)
			}
			if got.MaxBarThickness != tt.thickness {
				t.Errorf("MaxBarThickness = %v, want %v", got.MaxBarThickness, tt.thickness)
			}
			if got.Extent < got.MinExtent || got.Extent > got.MaxExtent {
				t.Errorf("Extent = %v outside [%v, %v]", got.Extent, got.MinExtent, got.MaxExtent)
			}
		})
	}
}

func TestEstimateResponsiveClamping(t *testing.T) {
	p := profile.Default()
	for _, series := range []int{1, 2, 50, 10000} {
		for _, container := range []float64{1, 599, 600, 5000, 1e12} {
			req := Request{Categories: 3, Series: series, ContainerExtent: container, Range: &chart.Range{Min: 1, Max: 1e300}}
			got, err := EstimateResponsive(req, p)
			if err != nil {
				t.Fatal(err)
			}
			ceiling := p.Responsive.Ceiling
			if container < p.Breakpoints.Narrow {
				ceiling = p.Responsive.NarrowCeiling
			}
			if got.Extent < p.Responsive.Floor || got.Extent > ceiling {
				t.Errorf("series=%d container=%v extent = %v outside [%v, %v]", series, container, got.Extent, p.Responsive.Floor, ceiling)
			}
		}
	}
}

func TestEstimateResponsiveErrors(t *testing.T) {
	p := profile.Default()
	tests := []struct {
		name string
		req  Request
	}{
		{"zero categories", Request{Categories: 0, Series: 1, ContainerExtent: 800}},
		{"zero series", Request{Categories: 1, Series: 0, ContainerExtent: 800}},
		{"zero container", Request{Categories: 1, Series: 1, ContainerExtent: 0}},
		{"nan container", Request{Categories: 1, Series: 1, ContainerExtent: math.NaN()}},
		{"inf container", Request{Categories: 1, Series: 1, ContainerExtent: math.Inf(1)}},
		{"inverted range", Request{Categories: 1, Series: 1, ContainerExtent: 800, Range: &chart.Range{Min: 10, Max: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EstimateResponsive(tt.req, p)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("EstimateResponsive() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidInput)
			}
		})
	}
}

func TestDetect(t *testing.T) {
	p := profile.Default()
	tests := []struct {
		width float64
		want  Layout
	}{
		{320, LayoutNarrow},
		{600, LayoutRegular},
		{899, LayoutRegular},
		{900, LayoutWide},
		{1400, LayoutLarge},
	}
	for _, tt := range tests {
		if got := Detect(tt.width, p); got != tt.want {
			t.Errorf("Detect(%v) = %v, want %v", tt.width, got, tt.want)
		}
	}
}

// =============================================================================
// Metrics and overrides
// =============================================================================

func TestMeasure(t *testing.T) {
	p := profile.Default()
	props, _ := ComputeProportions(7, 2, p)
	m, err := Measure(7, 2, props, p)
	if err != nil {
		t.Fatal(err)
	}
	want := Metrics{TotalBars: 14, Regime: Dense, SpacePerCategory: 36, BarWidth: 16}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Measure() mismatch (-want +got):\n%s", diff)
	}
}

func TestMeasureIdealOverride(t *testing.T) {
	p := profile.Default()
	res, err := EstimateExtent(7, 2, p, WithIdealBarWidth(20))
	if err != nil {
		t.Fatal(err)
	}
	m, err := Measure(7, 2, res.Proportions, p, WithIdealBarWidth(20))
	if err != nil {
		t.Fatal(err)
	}
	want := Metrics{TotalBars: 14, Regime: Dense, SpacePerCategory: 44, BarWidth: 20}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Measure() mismatch (-want +got):\n%s", diff)
	}
}

func TestApply(t *testing.T) {
	r := Result{Extent: 300, Proportions: Proportions{Group: 0.7, Bar: 1}, MaxBarThickness: 40}
	o := Apply(r)

	want := config.Values{"barPercentage": 1.0, "categoryPercentage": 0.7, "maxBarThickness": 40.0}
	if diff := cmp.Diff(want, o.Dataset); diff != "" {
		t.Errorf("Dataset mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, o.Options.Elements["bar"]); diff != "" {
		t.Errorf("elements.bar mismatch (-want +got):\n%s", diff)
	}

	noCap := Apply(Result{Proportions: Proportions{Group: 0.5, Bar: 0.8}})
	if noCap.Dataset.Has("maxBarThickness") {
		t.Error("maxBarThickness set without a thickness cap")
	}
}

func TestApplyDatasets(t *testing.T) {
	in := []config.Values{{"label": "a", "barPercentage": 0.1}, {"label": "b"}}
	out := ApplyDatasets(Result{Proportions: Proportions{Group: 0.9, Bar: 1}}, in)

	if out[0]["barPercentage"] != 1.0 || out[1]["categoryPercentage"] != 0.9 {
		t.Errorf("ApplyDatasets() = %v", out)
	}
	if in[0]["barPercentage"] != 0.1 {
		t.Error("ApplyDatasets mutated its input")
	}
}

func TestRegimeText(t *testing.T) {
	for _, r := range []Regime{Sparse, Dense} {
		b, _ := r.MarshalText()
		var got Regime
		if err := got.UnmarshalText(b); err != nil || got != r {
			t.Errorf("Regime text round trip of %v = %v, %v", r, got, err)
		}
	}
	var r Regime
	if err := r.UnmarshalText([]byte("medium")); err == nil {
		t.Error("UnmarshalText(medium) = nil, want error")
	}
}
