// internal/server/handlers.go
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mwiater/spacexdash/internal/charts"
	"github.com/mwiater/spacexdash/internal/dashboard"
	"github.com/mwiater/spacexdash/internal/logging"
	"github.com/mwiater/spacexdash/internal/metrics"
	"github.com/xeipuuv/gojsonschema"
)

// PieRequest is the pie callback input: the dropdown value.
type PieRequest struct {
	Site string `json:"site"`
}

// ScatterRequest is the scatter callback input: the dropdown value and slider range.
type ScatterRequest struct {
	Site    string     `json:"site"`
	Payload [2]float64 `json:"payload"`
}

// CallbackResponse carries the recomputed chart for one output container.
type CallbackResponse struct {
	ID     string           `json:"id"`
	Output string           `json:"output"`
	Figure charts.ChartSpec `json:"figure"`
}

type ErrResp struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type callbackSummary struct {
	Title  string `json:"title"`
	Points int    `json:"points"`
	Empty  bool   `json:"empty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	up := s.ctrl.Initial()
	html, err := renderPage(s.ctrl.Layout(), up)
	if err != nil {
		logging.LogEvent("render page error: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, html)
}

func (s *Server) handleLayout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ctrl.Layout())
}

func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}

func (s *Server) handlePieCallback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := requestID(w)
	var req PieRequest
	if err := decodeValidated(w, r, pieSchema, &req); err != nil {
		logging.LogEvent("pie callback id=%s rejected: %v", id, err)
		writeJSON(w, http.StatusBadRequest, ErrResp{OK: false, Error: err.Error()})
		return
	}
	logging.LogCallback("in", "pie", id, req)

	spec := s.ctrl.Pie(req.Site)
	s.record("pie", req.Site, start, spec)
	logging.LogCallback("out", "pie", id, summarize(spec))
	writeJSON(w, http.StatusOK, CallbackResponse{ID: id, Output: dashboard.PieChartID, Figure: spec})
}

func (s *Server) handleScatterCallback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := requestID(w)
	var req ScatterRequest
	if err := decodeValidated(w, r, scatterSchema, &req); err != nil {
		logging.LogEvent("scatter callback id=%s rejected: %v", id, err)
		writeJSON(w, http.StatusBadRequest, ErrResp{OK: false, Error: err.Error()})
		return
	}
	logging.LogCallback("in", "scatter", id, req)

	spec := s.ctrl.Scatter(req.Site, req.Payload[0], req.Payload[1])
	s.record("scatter", req.Site, start, spec)
	logging.LogCallback("out", "scatter", id, summarize(spec))
	writeJSON(w, http.StatusOK, CallbackResponse{ID: id, Output: dashboard.ScatterChartID, Figure: spec})
}

func (s *Server) handlePiePNG(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := requestID(w)
	site := siteParam(r)
	logging.LogCallback("in", "pie.png", id, PieRequest{Site: site})
	s.writePNG(w, r, id, site, start, s.ctrl.Pie(site))
}

func (s *Server) handleScatterPNG(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := requestID(w)
	site := siteParam(r)
	initial := s.ctrl.Layout().Slider.Value
	low, err := floatParam(r, "low", initial[0])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{OK: false, Error: err.Error()})
		return
	}
	high, err := floatParam(r, "high", initial[1])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{OK: false, Error: err.Error()})
		return
	}
	logging.LogCallback("in", "scatter.png", id, ScatterRequest{Site: site, Payload: [2]float64{low, high}})
	s.writePNG(w, r, id, site, start, s.ctrl.Scatter(site, low, high))
}

func (s *Server) writePNG(w http.ResponseWriter, r *http.Request, id, site string, start time.Time, spec charts.ChartSpec) {
	width, err := intParam(r, "width", charts.DefaultWidth)
	if err == nil && (width < 100 || width > 4000) {
		err = fmt.Errorf("width %d out of range (100..4000)", width)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{OK: false, Error: err.Error()})
		return
	}
	height, err := intParam(r, "height", charts.DefaultHeight)
	if err == nil && (height < 100 || height > 4000) {
		err = fmt.Errorf("height %d out of range (100..4000)", height)
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrResp{OK: false, Error: err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := charts.RenderPNG(&buf, spec, width, height); err != nil {
		logging.LogEvent("render png id=%s error: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, ErrResp{OK: false, Error: err.Error()})
		return
	}
	s.record(string(spec.Type)+".png", site, start, spec)
	logging.LogCallback("out", string(spec.Type)+".png", id, summarize(spec))
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// decodeValidated reads a bounded body, checks it against schema and decodes it into v.
func decodeValidated(w http.ResponseWriter, r *http.Request, schema *gojsonschema.Schema, v any) error {
	if r.Body == nil {
		return errors.New("empty body")
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return errors.New("empty body")
	}
	if !json.Valid(body) {
		return errors.New("invalid JSON body")
	}
	if err := validateBody(schema, body); err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestID(w http.ResponseWriter) string {
	id := uuid.NewString()
	w.Header().Set("X-Request-Id", id)
	return id
}

func (s *Server) record(callback, site string, start time.Time, spec charts.ChartSpec) {
	s.metrics.Record(metrics.Sample{
		Callback: callback,
		Site:     site,
		Duration: time.Since(start),
		Points:   spec.Points(),
		Empty:    spec.Empty,
	})
}

func summarize(spec charts.ChartSpec) callbackSummary {
	return callbackSummary{Title: spec.Title, Points: spec.Points(), Empty: spec.Empty}
}

func siteParam(r *http.Request) string {
	if site := strings.TrimSpace(r.URL.Query().Get("site")); site != "" {
		return site
	}
	return dashboard.AllSites
}

func floatParam(r *http.Request, name string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return v, nil
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, raw)
	}
	return v, nil
}
