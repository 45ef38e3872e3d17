// Package pipeline provides the size → build pipeline shared by the CLI and
// the HTTP service.
//
// This package turns a [ChartSpec] (a chart kind, its data, an optional
// container width and caller overrides) into a finished chart configuration.
// By centralizing this logic, every entry point sizes and styles charts the
// same way and shares one cache layout.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Size: pick an estimator for the spec and compute the extent and
//     proportions of the bar layout
//  2. Build: fold theme presets, sizing overrides and caller overrides into
//     one configuration tree, normalize it and serialize it to JSON
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	spec, err := pipeline.LoadSpec("revenue.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Execute(ctx, spec, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Config)
//
// Run individual stages:
//
//	// Size only
//	res, err := runner.Size(ctx, spec, opts)
//
//	// Build with an existing sizing result
//	cfg, err := pipeline.Build(spec, res, tokens, profile)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartfit/pkg/chart/preset"
	"github.com/matzehuels/chartfit/pkg/chart/sizing"
	"github.com/matzehuels/chartfit/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// Sizing modes.
const (
	// ModeAuto sizes against the container when one is given and by bar
	// width otherwise.
	ModeAuto = "auto"
	// ModeHorizontal holds bar width constant and grows the category axis.
	ModeHorizontal = "horizontal"
	// ModeResponsive keeps the extent in a stable band and adapts bar
	// proportions to the container.
	ModeResponsive = "responsive"
)

// DefaultKind is the default chart kind.
const DefaultKind = preset.KindBar

// DefaultMode is the default sizing mode.
const DefaultMode = ModeAuto

// DefaultConcurrency bounds ExecuteBatch when the caller passes zero.
const DefaultConcurrency = 8

// ValidKinds is the set of supported chart kinds.
var ValidKinds = map[preset.Kind]bool{
	preset.KindBar:      true,
	preset.KindLine:     true,
	preset.KindDoughnut: true,
}

// ValidModes is the set of supported sizing modes.
var ValidModes = map[string]bool{
	ModeAuto:       true,
	ModeHorizontal: true,
	ModeResponsive: true,
}

// =============================================================================
// Options - Runtime Configuration
// =============================================================================

// Options controls how a spec is executed. Unlike [ChartSpec] it is not part
// of the cache identity, except for Compact which changes the output bytes.
type Options struct {
	// Compact emits the configuration without indentation.
	Compact bool `json:"compact,omitempty"`
	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
	// OnResult is called by ExecuteBatch as each spec finishes. Calls may
	// come from several goroutines at once.
	OnResult func(*Result) `json:"-"`
}

// SetDefaults fills unset runtime options.
func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Name identifies the spec, usually its file name.
	Name string `json:"name,omitempty"`

	// Mode is the sizing mode that was applied; empty for kinds that are
	// not sized.
	Mode string `json:"mode,omitempty"`

	// Sizing is the estimator output.
	Sizing sizing.Result `json:"sizing"`

	// Height is the extent along the axis the estimator solved for: the
	// category axis in horizontal mode, the value region in responsive mode.
	Height float64 `json:"height"`

	// Config is the serialized chart configuration.
	Config []byte `json:"-"`

	// Stats contains timing and size information.
	Stats Stats `json:"stats"`

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo `json:"cache"`
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Categories int           `json:"categories"`
	Series     int           `json:"series"`
	SizeTime   time.Duration `json:"size_time"`
	BuildTime  time.Duration `json:"build_time"`
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SizeHit   bool `json:"size_hit"`   // Whether the sizing result came from cache
	ConfigHit bool `json:"config_hit"` // Whether the whole configuration came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateKind checks that a chart kind is supported.
func ValidateKind(kind string) error {
	if !ValidKinds[preset.Kind(kind)] {
		return errors.New(errors.ErrCodeInvalidKind, "invalid kind: %q (must be one of: bar, line, doughnut)", kind)
	}
	return nil
}

// ValidateMode checks that a sizing mode is supported.
func ValidateMode(mode string) error {
	if !ValidModes[mode] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid mode: %q (must be one of: auto, horizontal, responsive)", mode)
	}
	return nil
}
