package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/chartfit/pkg/buildinfo"
	"github.com/matzehuels/chartfit/pkg/chart"
	"github.com/matzehuels/chartfit/pkg/chart/sizing"
	"github.com/matzehuels/chartfit/pkg/errors"
	"github.com/matzehuels/chartfit/pkg/io"
	"github.com/matzehuels/chartfit/pkg/pipeline"
)

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.runner.Profiles.Load())
}

// HorizontalRequest is the body of POST /v1/size/horizontal.
type HorizontalRequest struct {
	Categories int           `json:"categories"`
	Series     int           `json:"series"`
	Bounds     sizing.Bounds `json:"bounds,omitzero"`
}

// SizeResponse is the body returned by the sizing endpoints.
type SizeResponse struct {
	Result  sizing.Result  `json:"result"`
	Metrics sizing.Metrics `json:"metrics"`
	// Layout is the container class; responsive sizing only.
	Layout sizing.Layout `json:"layout,omitempty"`
	Cached bool          `json:"cached"`
}

func (s *Server) handleSizeHorizontal(w http.ResponseWriter, r *http.Request) {
	var req HorizontalRequest
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, hit, err := s.runner.SizeHorizontal(r.Context(), req.Categories, req.Series, req.Bounds, s.options(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeSize(w, r, req.Categories, req.Series, res, "", hit, sizing.WithBounds(req.Bounds))
}

func (s *Server) handleSizeResponsive(w http.ResponseWriter, r *http.Request) {
	var req sizing.Request
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := chart.ParseOrientation(string(req.Orientation))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	req.Orientation = o
	res, hit, err := s.runner.SizeResponsive(r.Context(), req, s.options(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	layout := sizing.Detect(req.ContainerExtent, s.runner.Profiles.Load())
	s.writeSize(w, r, req.Categories, req.Series, res, layout, hit)
}

func (s *Server) writeSize(w http.ResponseWriter, r *http.Request, categories, series int, res sizing.Result, layout sizing.Layout, hit bool, opts ...sizing.BoundsOption) {
	m, err := sizing.Measure(categories, series, res.Proportions, s.runner.Profiles.Load(), opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(hit))
	writeJSON(w, http.StatusOK, SizeResponse{Result: res, Metrics: m, Layout: layout, Cached: hit})
}

// ChartResponse is the body returned by POST /v1/charts.
type ChartResponse struct {
	Name   string             `json:"name,omitempty"`
	Mode   string             `json:"mode,omitempty"`
	Height float64            `json:"height"`
	Sizing sizing.Result      `json:"sizing"`
	Config json.RawMessage    `json:"config"`
	Stats  pipeline.Stats     `json:"stats"`
	Cache  pipeline.CacheInfo `json:"cache"`
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	var spec pipeline.ChartSpec
	if err := decode(r, &spec); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts := s.options(r)
	opts.Compact = true
	res, err := s.runner.Execute(r.Context(), spec, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("X-Cache", cacheHeader(res.CacheInfo.ConfigHit))
	writeJSON(w, http.StatusOK, ChartResponse{
		Name:   res.Name,
		Mode:   res.Mode,
		Height: res.Height,
		Sizing: res.Sizing,
		Config: res.Config,
		Stats:  res.Stats,
		Cache:  res.CacheInfo,
	})
}

// options derives pipeline options from the request: ?refresh=true bypasses
// cache reads, and the request logger carries the request id.
func (s *Server) options(r *http.Request) pipeline.Options {
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	return pipeline.Options{
		Refresh: refresh,
		Logger:  s.logger.With("request_id", RequestID(r.Context())),
	}
}

// decode reads a JSON body, rejecting unknown fields.
func decode(r *http.Request, v any) error {
	if r.Body == nil {
		return errors.New(errors.ErrCodeInvalidFormat, "request body is required")
	}
	return io.Read(r.Body, io.FormatJSON, v)
}

func cacheHeader(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}
