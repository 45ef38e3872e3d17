package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartfit/pkg/cache"
	"github.com/matzehuels/chartfit/pkg/chart/profile"
	"github.com/matzehuels/chartfit/pkg/chart/sizing"
	"github.com/matzehuels/chartfit/pkg/chart/theme"
	"github.com/matzehuels/chartfit/pkg/observability"
)

// Cache key types reported to the observability hooks.
const (
	keyTypeSizing = "sizing"
	keyTypeConfig = "config"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, the logger and the profile
// store - it doesn't store pipeline results. Multiple goroutines can safely
// use the same Runner with different specs. Each call reads one profile
// snapshot from Profiles, so a concurrent hot reload never mixes two
// profiles within a run.
type Runner struct {
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	Profiles *profile.Store
	Tokens   theme.Tokens
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// The runner starts with the default profile and theme tokens.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Profiles: profile.NewStore(nil),
		Tokens:   theme.Default(),
	}
}

// cachedChart is the cache representation of a finished run.
type cachedChart struct {
	Mode   string        `json:"mode,omitempty"`
	Sizing sizing.Result `json:"sizing"`
	Config []byte        `json:"config"`
}

// Execute runs the complete size → build pipeline with caching.
func (r *Runner) Execute(ctx context.Context, spec ChartSpec, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid spec: %w", err)
	}
	r.applyLogger(&opts)

	p := r.Profiles.Load()
	categories, series := spec.Data.Counts()
	result := &Result{
		Name:  spec.Name,
		Stats: Stats{Categories: categories, Series: series},
	}
	if spec.IsSized() {
		result.Mode = spec.ResolvedMode()
	}

	// Whole-configuration cache
	specHash, err := cache.HashJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("hash spec: %w", err)
	}
	configKey := r.Keyer.ConfigKey(specHash, cache.ConfigKeyOpts{
		ProfileHash: hashOf(p),
		TokensHash:  hashOf(r.Tokens),
		Compact:     opts.Compact,
	})
	if !opts.Refresh {
		if cached, ok := r.getChart(ctx, configKey); ok {
			result.Sizing = cached.Sizing
			result.Height = cached.Sizing.Extent
			result.Config = cached.Config
			result.CacheInfo = CacheInfo{SizeHit: true, ConfigHit: true}
			opts.Logger.Debug("chart config from cache", "name", spec.Name)
			return result, nil
		}
	}

	// Stage 1: Size
	sizeStart := time.Now()
	res, sizeHit, err := r.size(ctx, spec, opts, p)
	if err != nil {
		return nil, fmt.Errorf("size: %w", err)
	}
	result.Sizing = res
	result.Height = res.Extent
	result.Stats.SizeTime = time.Since(sizeStart)
	result.CacheInfo.SizeHit = sizeHit

	opts.Logger.Info("sized chart",
		"name", spec.Name,
		"mode", result.Mode,
		"extent", res.Extent,
		"regime", res.Regime,
		"duration", result.Stats.SizeTime)

	// Stage 2: Build
	buildStart := time.Now()
	data, err := r.build(ctx, spec, res, p, opts.Compact)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Config = data
	result.Stats.BuildTime = time.Since(buildStart)

	opts.Logger.Info("built chart config",
		"name", spec.Name,
		"kind", spec.Kind,
		"bytes", len(data),
		"duration", result.Stats.BuildTime)

	r.setChart(ctx, configKey, cachedChart{Mode: result.Mode, Sizing: res, Config: data})
	return result, nil
}

// SizeWithCacheInfo runs the size stage with caching and returns cache hit info.
func (r *Runner) SizeWithCacheInfo(ctx context.Context, spec ChartSpec, opts Options) (sizing.Result, bool, error) {
	if err := spec.Validate(); err != nil {
		return sizing.Result{}, false, err
	}
	r.applyLogger(&opts)
	return r.size(ctx, spec, opts, r.Profiles.Load())
}

// Size is a convenience wrapper that calls SizeWithCacheInfo and discards the cache hit info.
func (r *Runner) Size(ctx context.Context, spec ChartSpec, opts Options) (sizing.Result, error) {
	res, _, err := r.SizeWithCacheInfo(ctx, spec, opts)
	return res, err
}

// Build runs the build stage against the runner's current profile and
// tokens and returns the serialized configuration. Builds are not cached on
// their own; Execute caches the finished document.
func (r *Runner) Build(ctx context.Context, spec ChartSpec, res sizing.Result, opts Options) ([]byte, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return r.build(ctx, spec, res, r.Profiles.Load(), opts.Compact)
}

// SizeHorizontal runs the horizontal estimator for a bare shape with
// caching and returns cache hit info.
func (r *Runner) SizeHorizontal(ctx context.Context, categories, series int, bounds sizing.Bounds, opts Options) (sizing.Result, bool, error) {
	r.applyLogger(&opts)
	p := r.Profiles.Load()
	in := sizingInput{
		Kind:    string(DefaultKind),
		Request: sizing.Request{Categories: categories, Series: series},
		Bounds:  bounds,
	}
	return r.cachedSize(ctx, ModeHorizontal, in, opts, p, func() (sizing.Result, error) {
		return sizing.EstimateExtent(categories, series, p, sizing.WithBounds(bounds))
	})
}

// SizeResponsive runs the responsive estimator with caching and returns
// cache hit info.
func (r *Runner) SizeResponsive(ctx context.Context, req sizing.Request, opts Options) (sizing.Result, bool, error) {
	if err := req.Validate(); err != nil {
		return sizing.Result{}, false, err
	}
	r.applyLogger(&opts)
	p := r.Profiles.Load()
	in := sizingInput{Kind: string(DefaultKind), Request: req}
	return r.cachedSize(ctx, ModeResponsive, in, opts, p, func() (sizing.Result, error) {
		return sizing.EstimateResponsive(req, p)
	})
}

func (r *Runner) size(ctx context.Context, spec ChartSpec, opts Options, p *profile.Profile) (sizing.Result, bool, error) {
	return r.cachedSize(ctx, spec.ResolvedMode(), newSizingInput(spec), opts, p, func() (sizing.Result, error) {
		return Size(spec, p)
	})
}

// cachedSize returns the cached result for in, or computes and stores it.
func (r *Runner) cachedSize(ctx context.Context, mode string, in sizingInput, opts Options, p *profile.Profile, compute func() (sizing.Result, error)) (sizing.Result, bool, error) {
	key := r.Keyer.SizingKey(mode, in, cache.SizingKeyOpts{ProfileHash: hashOf(p)})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var res sizing.Result
			if err := json.Unmarshal(data, &res); err == nil {
				observability.Cache().OnCacheHit(ctx, keyTypeSizing)
				return res, true, nil
			}
			// If deserialization fails, fall through to recompute
		} else if err != nil {
			opts.Logger.Warn("cache read failed", "key", key, "error", err)
		}
		observability.Cache().OnCacheMiss(ctx, keyTypeSizing)
	}

	hooks := observability.Pipeline()
	hooks.OnSizeStart(ctx, mode, in.Request.Categories, in.Request.Series)
	start := time.Now()
	res, err := compute()
	hooks.OnSizeComplete(ctx, mode, res.Extent, time.Since(start), err)
	if err != nil {
		return sizing.Result{}, false, err
	}

	if data, err := json.Marshal(res); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.TTLSizing); err != nil {
			opts.Logger.Warn("cache write failed", "key", key, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, keyTypeSizing, len(data))
		}
	}
	return res, false, nil
}

func (r *Runner) build(ctx context.Context, spec ChartSpec, res sizing.Result, p *profile.Profile, compact bool) ([]byte, error) {
	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, spec.Kind)
	start := time.Now()

	cfg, err := Build(spec, res, r.Tokens, p)
	var data []byte
	if err == nil {
		data, err = Marshal(cfg, compact)
	}
	hooks.OnBuildComplete(ctx, spec.Kind, len(data), time.Since(start), err)
	return data, err
}

func (r *Runner) getChart(ctx context.Context, key string) (cachedChart, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeConfig)
		return cachedChart{}, false
	}
	var c cachedChart
	if err := json.Unmarshal(data, &c); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeConfig)
		return cachedChart{}, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeConfig)
	return c, true
}

func (r *Runner) setChart(ctx context.Context, key string, c cachedChart) {
	data, err := json.Marshal(c)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLConfig); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeConfig, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// hashOf returns the content hash of v, or "" if v cannot be encoded.
func hashOf(v any) string {
	h, _ := cache.HashJSON(v)
	return h
}
