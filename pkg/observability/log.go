package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by logging at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnSizeStart(_ context.Context, mode string, categories, series int) {
	h.logger.Debug("sizing", "mode", mode, "categories", categories, "series", series)
}

func (h *LogHooks) OnSizeComplete(_ context.Context, mode string, extent float64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("sizing failed", "mode", mode, "error", err)
		return
	}
	h.logger.Debug("sized", "mode", mode, "extent", extent, "took", d)
}

func (h *LogHooks) OnBuildStart(_ context.Context, kind string) {
	h.logger.Debug("building", "kind", kind)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, kind string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "kind", kind, "error", err)
		return
	}
	h.logger.Debug("built", "kind", kind, "bytes", size, "took", d)
}

func (h *LogHooks) OnProfileReload(_ context.Context, path string, err error) {
	h.logger.Debug("profile reload", "path", path, "ok", err == nil)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "took", d)
}

func (h *LogHooks) OnError(_ context.Context, method, route string, err error) {
	h.logger.Debug("request error", "method", method, "route", route, "error", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
