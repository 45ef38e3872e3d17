package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/config"
	"github.com/matzehuels/chartfit/pkg/chart/preset"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/chart/sizing"
	"github.com/matzehuels/chartfit/pkg/chart/theme"
	"github.com/matzehuels/chartfit/pkg/errors"
)

// ChartConfig is the chart-library shaped document the build stage emits.
type ChartConfig struct {
	Type    string         `json:"type"`
	Data    ChartData      `json:"data"`
	Options config.Options `json:"options"`
}

// ChartData holds the category labels and styled datasets.
type ChartData struct {
	Labels   []string        `json:"labels"`
	Datasets []config.Values `json:"datasets"`
}

// Build folds the presets for the spec's kind, the sizing overrides and the
// spec's own overrides into a chart configuration.
func Build(spec ChartSpec, res sizing.Result, t theme.Tokens, p *profile.Profile) (ChartConfig, error) {
	if err := spec.Validate(); err != nil {
		return ChartConfig{}, err
	}
	overrides, err := config.OptionsFromMap(spec.Overrides)
	if err != nil {
		return ChartConfig{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "overrides")
	}

	kind := preset.Kind(spec.Kind)
	datasets := preset.Datasets(spec.Data, t, kind)
	var opts config.Options
	switch kind {
	case preset.KindLine:
		opts = preset.BuildLine(t, p, overrides)
	case preset.KindDoughnut:
		opts = preset.BuildDoughnut(t, overrides)
	default:
		layers := []config.Options{overrides}
		if spec.Stacked {
			layers = []config.Options{preset.Stacked(), overrides}
		}
		opts = preset.BuildBar(t, spec.Orientation, res, p, layers...)
		datasets = sizing.ApplyDatasets(res, datasets)
	}

	return ChartConfig{
		Type:    string(kind),
		Data:    ChartData{Labels: labels(spec.Data), Datasets: datasets},
		Options: opts,
	}, nil
}

// labels returns the spec's labels padded with empty strings up to the
// category count, so every data point has a category.
func labels(d chart.Data) []string {
	categories, _ := d.Counts()
	out := make([]string, categories)
	copy(out, d.Labels)
	return out
}

// Marshal serializes a configuration, indented unless compact.
func Marshal(cfg ChartConfig, compact bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "marshal chart config")
	}
	return data, nil
}
