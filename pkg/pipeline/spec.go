package pipeline

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/config"
	"github.com/matzehuels/chartfit/pkg/chart/preset"
	"github.com/matzehuels/chartfit/pkg/chart/sizing"
	"github.com/matzehuels/chartfit/pkg/errors"
	"github.com/matzehuels/chartfit/pkg/io"
)

// ChartSpec describes one chart to size and build. It is read from TOML,
// YAML or JSON files and posted to the HTTP service as JSON.
//
//	kind = "bar"
//	orientation = "horizontal"
//	container_width = 900
//
//	[data]
//	labels = ["Q1", "Q2", "Q3"]
//
//	[[data.series]]
//	label = "Revenue"
//	data = [1245, 1890, 1502]
//
//	[overrides.plugins.legend]
//	display = false
type ChartSpec struct {
	Name           string            `json:"name,omitempty" toml:"name" yaml:"name,omitempty"`
	Kind           string            `json:"kind,omitempty" toml:"kind" yaml:"kind,omitempty"`
	Mode           string            `json:"mode,omitempty" toml:"mode" yaml:"mode,omitempty"`
	Orientation    chart.Orientation `json:"orientation,omitempty" toml:"orientation" yaml:"orientation,omitempty"`
	Stacked        bool              `json:"stacked,omitempty" toml:"stacked" yaml:"stacked,omitempty"`
	ContainerWidth float64           `json:"container_width,omitempty" toml:"container_width" yaml:"container_width,omitempty"`
	AllowWideBars  bool              `json:"allow_wide_bars,omitempty" toml:"allow_wide_bars" yaml:"allow_wide_bars,omitempty"`
	Bounds         sizing.Bounds     `json:"bounds,omitzero" toml:"bounds" yaml:"bounds,omitempty"`
	Data           chart.Data        `json:"data" toml:"data" yaml:"data"`
	Overrides      map[string]any    `json:"overrides,omitempty" toml:"overrides" yaml:"overrides,omitempty"`
}

// LoadSpec reads a spec file. The spec name defaults to the file name
// without its extension.
func LoadSpec(path string) (ChartSpec, error) {
	if err := errors.ValidateSpecFilename(path); err != nil {
		return ChartSpec{}, err
	}
	var spec ChartSpec
	if err := io.ImportFile(path, &spec); err != nil {
		return ChartSpec{}, err
	}
	if spec.Name == "" {
		base := filepath.Base(path)
		spec.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return spec, nil
}

// SetDefaults fills the kind and mode and canonicalizes the orientation.
// Unknown orientations are left in place for Validate to report.
func (s *ChartSpec) SetDefaults() {
	if s.Kind == "" {
		s.Kind = string(DefaultKind)
	}
	s.Kind = strings.ToLower(s.Kind)
	if s.Mode == "" {
		s.Mode = DefaultMode
	}
	s.Mode = strings.ToLower(s.Mode)
	if o, err := chart.ParseOrientation(string(s.Orientation)); err == nil {
		s.Orientation = o
	}
}

// Validate applies defaults and checks the spec. It is idempotent.
func (s *ChartSpec) Validate() error {
	s.SetDefaults()
	if err := ValidateKind(s.Kind); err != nil {
		return err
	}
	if err := ValidateMode(s.Mode); err != nil {
		return err
	}
	if _, err := chart.ParseOrientation(string(s.Orientation)); err != nil {
		return err
	}
	if math.IsNaN(s.ContainerWidth) || math.IsInf(s.ContainerWidth, 0) || s.ContainerWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "container_width must be a non-negative finite number, got %v", s.ContainerWidth)
	}
	if s.Mode == ModeResponsive && s.ContainerWidth == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "responsive mode requires container_width")
	}

	categories, series := s.Data.Counts()
	if err := errors.ValidateCount("category count", categories); err != nil {
		return err
	}
	if err := errors.ValidateCount("series count", series); err != nil {
		return err
	}
	if _, err := config.OptionsFromMap(s.Overrides); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "overrides")
	}
	return nil
}

// IsSized reports whether the spec's kind goes through the size stage.
func (s *ChartSpec) IsSized() bool {
	return preset.Kind(s.Kind) == preset.KindBar
}

// ResolvedMode returns the concrete sizing mode, resolving ModeAuto.
func (s *ChartSpec) ResolvedMode() string {
	if s.Mode == ModeAuto || s.Mode == "" {
		if s.ContainerWidth > 0 {
			return ModeResponsive
		}
		return ModeHorizontal
	}
	return s.Mode
}

// Request returns the responsive sizing request of the spec. The data
// range is taken from the series values, summed per category when stacked.
func (s *ChartSpec) Request() sizing.Request {
	categories, series := s.Data.Counts()
	req := sizing.Request{
		Categories:      categories,
		Series:          series,
		Orientation:     s.Orientation,
		ContainerExtent: s.ContainerWidth,
		Stacked:         s.Stacked,
		AllowWideBars:   s.AllowWideBars,
	}
	if r, ok := s.Data.DataRange(s.Stacked); ok {
		req.Range = &r
	}
	return req
}

// label names the spec in batch errors.
func (s *ChartSpec) label(i int) string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("spec #%d", i+1)
}
