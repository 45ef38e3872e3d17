// Package pkg provides the core libraries for chartfit.
//
// # Overview
//
// chartfit decides how much room a bar chart needs and how its bars divide
// that room, then folds theme presets, the sizing result and caller overrides
// into one chart-library configuration. The pkg directory is organized into
// four areas:
//
//  1. [chart] - Domain logic (data model, sizing, configuration merge, presets)
//  2. [pipeline] - Orchestration (spec → size → build) shared by CLI and API
//  3. [cache] and [server] - Infrastructure (result cache, HTTP service)
//  4. [errors], [io], [observability], [buildinfo] - Ambient support
//
// # Architecture
//
// The typical data flow through chartfit:
//
//	Chart spec (TOML/YAML/JSON)
//	         ↓
//	    [chart/sizing] package (proportions + extent, tuned by [chart/profile])
//	         ↓
//	    [chart/preset] package (global ← kind ← density ← overrides)
//	         ↓
//	    [chart/config] package (tree merge + normalization)
//	         ↓
//	    chart-library JSON configuration
//
// # Quick Start
//
// Size a chart and build its configuration:
//
//	import (
//	    "github.com/matzehuels/chartfit/pkg/chart"
//	    "github.com/matzehuels/chartfit/pkg/chart/preset"
//	    "github.com/matzehuels/chartfit/pkg/chart/profile"
//	    "github.com/matzehuels/chartfit/pkg/chart/sizing"
//	    "github.com/matzehuels/chartfit/pkg/chart/theme"
//	)
//
//	p := profile.Default()
//
//	// 1. Size the category axis for 12 categories of 2 series
//	res, _ := sizing.EstimateExtent(12, 2, p)
//
//	// 2. Build the merged, normalized options
//	opts := preset.BuildBar(theme.Default(), chart.Horizontal, res, p)
//
// # Main Packages
//
// ## Domain Logic
//
// [chart/sizing] - Density classification, bar proportions, the horizontal
// extent estimator and the responsive region estimator. Pure functions of
// their inputs and a profile; they never log.
//
// [chart/config] - The tagged configuration tree, its merge combinator and
// normalization of tick lengths and category-axis grids.
//
// [chart/profile] - Tuning constants with defaults, file loading, an atomic
// snapshot store and a file watcher for hot reloads.
//
// [chart/theme] and [chart/preset] - Design tokens and the base options built
// from them for bar, line and doughnut charts.
//
// ## Infrastructure
//
// [pipeline] - Spec loading, validation, the cached Runner and concurrent
// batch execution used by the CLI and the HTTP service alike.
//
// [cache] - File, Redis and null cache backends keyed by content hashes of
// the request, the profile and the theme.
//
// [server] - HTTP API over the Runner with request ids, structured request
// logging and error-code to status mapping.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/chart/sizing/...       # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// Set CHARTFIT_TEST_REDIS_ADDR to a Redis address to include the Redis cache test.
//
// [chart]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/chart
// [chart/sizing]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/chart/sizing
// [chart/config]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/chart/config
// [chart/profile]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/chart/profile
// [chart/theme]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/chart/theme
// [chart/preset]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/chart/preset
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/errors
// [io]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/chartfit/pkg/buildinfo
package pkg
