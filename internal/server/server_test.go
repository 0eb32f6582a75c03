// internal/server/server_test.go
package server

import (
	"context"
	"encoding/json"
	"image/png"
	"io"
	"log"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mwiater/spacexdash/internal/appconfig"
	"github.com/mwiater/spacexdash/internal/dashboard"
	"github.com/mwiater/spacexdash/internal/launches"
	"github.com/mwiater/spacexdash/internal/metrics"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	goleak.VerifyTestMain(m)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	ds, err := launches.NewDataset([]launches.Record{
		{Site: "KSC LC-39A", PayloadMassKg: 500, Class: 1, BoosterCategory: "FT"},
		{Site: "KSC LC-39A", PayloadMassKg: 1500, Class: 0, BoosterCategory: "FT"},
		{Site: "KSC LC-39A", PayloadMassKg: 2500, Class: 1, BoosterCategory: "B4"},
		{Site: "VAFB SLC-4E", PayloadMassKg: 800, Class: 1, BoosterCategory: "v1.1"},
		{Site: "CCAFS LC-40", PayloadMassKg: 3000, Class: 0, BoosterCategory: "v1.0"},
	})
	if err != nil {
		t.Fatalf("NewDataset error: %v", err)
	}
	layout := dashboard.NewLayout(ds, appconfig.DefaultSites, appconfig.Default().Slider)
	return New(dashboard.NewController(ds, layout), Options{Addr: "127.0.0.1:0"})
}

func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeCallback(t *testing.T, rec *httptest.ResponseRecorder) CallbackResponse {
	t.Helper()
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp CallbackResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID == "" || resp.ID != rec.Header().Get("X-Request-Id") {
		t.Fatalf("response id %q does not match header %q", resp.ID, rec.Header().Get("X-Request-Id"))
	}
	return resp
}

func TestHealthz(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestIndexRendersDashboard(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<title>SpaceX Launch Records Dashboard</title>",
		`id="site-dropdown"`,
		`<option value="All Sites" selected>All Sites</option>`,
		`<option value="VAFB SLC-4E">VAFB SLC-4E</option>`,
		`id="success-pie-chart"`,
		`id="success-payload-scatter-chart"`,
		`step="1000"`,
		"Pie Chart of Success Rates for all Launch Sites",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("index missing %q", want)
		}
	}
}

func TestIndexOnlyAtRoot(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/layout", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var layout dashboard.Layout
	if err := json.Unmarshal(rec.Body.Bytes(), &layout); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	if layout.Dropdown.Value != dashboard.AllSites || len(layout.Dropdown.Options) != 5 {
		t.Fatalf("unexpected dropdown: %+v", layout.Dropdown)
	}
	if layout.Slider.Value != [2]float64{500, 3000} {
		t.Fatalf("unexpected slider value %v", layout.Slider.Value)
	}
}

func TestPieCallback(t *testing.T) {
	s := newTestServer(t)

	all := decodeCallback(t, do(t, s, http.MethodPost, "/api/callbacks/pie", `{"site":"All Sites"}`))
	if all.Output != dashboard.PieChartID {
		t.Fatalf("unexpected output %q", all.Output)
	}
	if all.Figure.Title != "Pie Chart of Success Rates for all Launch Sites" {
		t.Fatalf("unexpected title %q", all.Figure.Title)
	}
	if diff := cmp.Diff([]string{"CCAFS LC-40", "KSC LC-39A", "VAFB SLC-4E"}, all.Figure.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0, 2, 1}, all.Figure.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	site := decodeCallback(t, do(t, s, http.MethodPost, "/api/callbacks/pie", `{"site":"KSC LC-39A"}`))
	if site.Figure.Title != "Pie Chart of Success Rates for site KSC LC-39A" {
		t.Fatalf("unexpected title %q", site.Figure.Title)
	}
	if diff := cmp.Diff([]string{"1", "0"}, site.Figure.Labels); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestScatterCallback(t *testing.T) {
	s := newTestServer(t)

	resp := decodeCallback(t, do(t, s, http.MethodPost, "/api/callbacks/scatter", `{"site":"KSC LC-39A","payload":[0,2000]}`))
	if resp.Output != dashboard.ScatterChartID {
		t.Fatalf("unexpected output %q", resp.Output)
	}
	if resp.Figure.Title != "Success by Payload Mass for KSC LC-39A" {
		t.Fatalf("unexpected title %q", resp.Figure.Title)
	}
	if diff := cmp.Diff([]float64{500, 1500}, resp.Figure.X); diff != "" {
		t.Fatalf("x mismatch (-want +got):\n%s", diff)
	}

	unknown := decodeCallback(t, do(t, s, http.MethodPost, "/api/callbacks/scatter", `{"site":"Boca Chica","payload":[0,10000]}`))
	if !unknown.Figure.Empty {
		t.Fatalf("expected empty figure for unknown site, got %+v", unknown.Figure)
	}
}

func TestCallbacksRejectBadBodies(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name   string
		target string
		body   string
	}{
		{name: "empty pie body", target: "/api/callbacks/pie", body: ""},
		{name: "malformed json", target: "/api/callbacks/pie", body: `{"site":`},
		{name: "missing site", target: "/api/callbacks/pie", body: `{}`},
		{name: "unknown field", target: "/api/callbacks/pie", body: `{"site":"All Sites","extra":1}`},
		{name: "site not a string", target: "/api/callbacks/pie", body: `{"site":5}`},
		{name: "payload too short", target: "/api/callbacks/scatter", body: `{"site":"All Sites","payload":[0]}`},
		{name: "payload not numbers", target: "/api/callbacks/scatter", body: `{"site":"All Sites","payload":["a","b"]}`},
		{name: "missing payload", target: "/api/callbacks/scatter", body: `{"site":"All Sites"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, tt.target, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var resp ErrResp
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.OK || resp.Error == "" {
				t.Fatalf("unexpected error response: %+v", resp)
			}
		})
	}
}

func TestCallbackMethodNotAllowed(t *testing.T) {
	rec := do(t, newTestServer(t), http.MethodGet, "/api/callbacks/pie", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestChartPNGs(t *testing.T) {
	s := newTestServer(t)
	tests := []string{
		"/charts/pie.png",
		"/charts/pie.png?site=KSC+LC-39A&width=320&height=240",
		"/charts/pie.png?site=Boca+Chica",
		"/charts/scatter.png?site=All+Sites&low=0&high=10000",
		"/charts/scatter.png?site=KSC+LC-39A&low=9000&high=10000",
	}
	for _, target := range tests {
		t.Run(target, func(t *testing.T) {
			rec := do(t, s, http.MethodGet, target, "")
			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
			}
			if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
				t.Fatalf("unexpected content type %q", ct)
			}
			if _, err := png.Decode(rec.Body); err != nil {
				t.Fatalf("decode png: %v", err)
			}
		})
	}
}

func TestChartPNGRejectsBadParams(t *testing.T) {
	s := newTestServer(t)
	for _, target := range []string{
		"/charts/scatter.png?low=abc",
		"/charts/scatter.png?high=1e",
		"/charts/pie.png?width=10",
		"/charts/pie.png?height=nope",
	} {
		rec := do(t, s, http.MethodGet, target, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	_ = decodeCallback(t, do(t, s, http.MethodPost, "/api/callbacks/pie", `{"site":"All Sites"}`))
	_ = decodeCallback(t, do(t, s, http.MethodPost, "/api/callbacks/pie", `{"site":"Boca Chica"}`))
	_ = decodeCallback(t, do(t, s, http.MethodPost, "/api/callbacks/scatter", `{"site":"All Sites","payload":[0,10000]}`))
	_ = do(t, s, http.MethodPost, "/api/callbacks/scatter", `{"site":"All Sites"}`)

	rec := do(t, s, http.MethodGet, "/api/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snap []metrics.CallbackMetrics
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode metrics: %v", err)
	}
	if len(snap) != 2 || snap[0].Callback != "pie" || snap[1].Callback != "scatter" {
		t.Fatalf("unexpected callbacks: %+v", snap)
	}
	if snap[0].OverallStats.TotalRequests != 2 || snap[0].OverallStats.EmptyResults != 1 {
		t.Fatalf("unexpected pie stats: %+v", snap[0].OverallStats)
	}
	if got, want := snap[0].OverallStats.Points.StdDev, math.Sqrt(4.5); math.Abs(got-want) > 1e-9 {
		t.Fatalf("pie points stddev = %v, want %v", got, want)
	}
	if !strings.Contains(rec.Body.String(), `"stddev":`) {
		t.Fatalf("expected stddev in metrics JSON, got %s", rec.Body.String())
	}
	if snap[1].OverallStats.TotalRequests != 1 || snap[1].OverallStats.Points.Max != 5 {
		t.Fatalf("rejected requests must not be recorded: %+v", snap[1].OverallStats)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := newTestServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	client := &http.Client{
		Timeout:   5 * time.Second,
		Transport: &http.Transport{DisableKeepAlives: true},
	}
	resp, err := client.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		cancel()
		t.Fatalf("GET /healthz: %v", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
	client.CloseIdleConnections()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunReportsListenError(t *testing.T) {
	s := New(nil, Options{Addr: "not-an-address"})
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestRenderPageKeepsExactPayloadBounds(t *testing.T) {
	ds, err := launches.NewDataset([]launches.Record{
		{Site: "KSC LC-39A", PayloadMassKg: 2490, Class: 1},
		{Site: "VAFB SLC-4E", PayloadMassKg: 9600, Class: 1},
	})
	if err != nil {
		t.Fatalf("NewDataset error: %v", err)
	}
	layout := dashboard.NewLayout(ds, nil, appconfig.Default().Slider)
	ctrl := dashboard.NewController(ds, layout)
	html, err := renderPage(ctrl.Layout(), ctrl.Initial())
	if err != nil {
		t.Fatalf("renderPage error: %v", err)
	}

	for _, want := range []string{
		`id="payload-low-value" min="0" max="10000" step="any" value="2490"`,
		`id="payload-high-value" min="0" max="10000" step="any" value="9600"`,
		`bindBound(0, "payload-low", "payload-low-value")`,
		`bindBound(1, "payload-high", "payload-high-value")`,
		`id="site-dropdown-search"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in page", want)
		}
	}
}

func TestRenderPageEscapesSiteNames(t *testing.T) {
	ds, err := launches.NewDataset([]launches.Record{{Site: "<script>", PayloadMassKg: 1, Class: 1}})
	if err != nil {
		t.Fatalf("NewDataset error: %v", err)
	}
	layout := dashboard.NewLayout(ds, nil, appconfig.Default().Slider)
	ctrl := dashboard.NewController(ds, layout)
	html, err := renderPage(ctrl.Layout(), ctrl.Initial())
	if err != nil {
		t.Fatalf("renderPage error: %v", err)
	}
	if strings.Contains(html, "<option value=\"<script>\"") {
		t.Fatal("site name was not escaped")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Fatal("expected escaped site name in markup")
	}
}
