// internal/server/page.go
package server

import (
	"bytes"
	"encoding/json"
	"html/template"

	"github.com/mwiater/spacexdash/internal/dashboard"
)

type pageData struct {
	Layout      dashboard.Layout
	Selection   dashboard.Selection
	LayoutJSON  template.JS
	InitialJSON template.JS
}

type initialState struct {
	Selection dashboard.Selection `json:"selection"`
	Pie       any                 `json:"pie"`
	Scatter   any                 `json:"scatter"`
}

// renderPage renders the dashboard with the initial charts embedded, so the
// first paint does not wait on the callbacks.
func renderPage(layout dashboard.Layout, up dashboard.Update) (string, error) {
	layoutJSON, err := json.Marshal(layout)
	if err != nil {
		return "", err
	}
	initialJSON, err := json.Marshal(initialState{Selection: up.Selection, Pie: up.Pie, Scatter: up.Scatter})
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pageData{
		Layout:      layout,
		Selection:   up.Selection,
		LayoutJSON:  template.JS(layoutJSON),
		InitialJSON: template.JS(initialJSON),
	}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var pageTemplate = template.Must(template.New("dashboard").Parse(pageTemplateHTML))

const pageTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Layout.Title }}</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bootstrap@5.3.3/dist/css/bootstrap.min.css">
  <style>
    :root {
      --primary: #503D36;
      --secondary: #64748B;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --border: #E2E8F0;
    }
    body {
      background-color: var(--light);
      color: var(--text);
    }
    h1.dashboard-title {
      text-align: center;
      color: var(--primary);
      font-size: 40px;
      margin: 1.5rem 0;
    }
    .chart-card {
      background: var(--background);
      border-radius: 16px;
      padding: 1.5rem;
      box-shadow: 0 1px 3px rgba(15, 23, 42, 0.1);
      border: 1px solid var(--border);
      margin-bottom: 1.5rem;
    }
    .chart-title {
      font-size: 1.25rem;
      font-weight: 700;
      margin-bottom: 0.75rem;
    }
    .chart-canvas {
      position: relative;
      height: 420px;
    }
    .chart-empty {
      display: none;
      color: var(--secondary);
      text-align: center;
      padding-top: 180px;
    }
    .range-values {
      color: var(--secondary);
      font-variant-numeric: tabular-nums;
    }
  </style>
</head>
<body>
  <div class="container py-3">
    <h1 class="dashboard-title">{{ .Layout.Title }}</h1>

    <div class="mb-3">
      <label class="form-label" for="{{ .Layout.Dropdown.ID }}">{{ .Layout.Dropdown.Label }}</label>
      {{- if .Layout.Dropdown.Searchable }}
      <input type="search" class="form-control mb-2" id="{{ .Layout.Dropdown.ID }}-search" placeholder="{{ .Layout.Dropdown.Placeholder }}" autocomplete="off">
      {{- end }}
      <select class="form-select" id="{{ .Layout.Dropdown.ID }}" aria-label="{{ .Layout.Dropdown.Placeholder }}">
        {{- range .Layout.Dropdown.Options }}
        <option value="{{ .Value }}"{{ if eq .Value $.Layout.Dropdown.Value }} selected{{ end }}>{{ .Label }}</option>
        {{- end }}
      </select>
    </div>

    <div class="chart-card" id="{{ .Layout.PieChartID }}">
      <div class="chart-title" data-role="title"></div>
      <div class="chart-canvas">
        <canvas aria-label="Launch success pie chart" role="img"></canvas>
        <div class="chart-empty">No matching launches</div>
      </div>
    </div>

    <div class="chart-card">
      <p class="mb-1">{{ .Layout.Slider.Label }} <span class="range-values" id="payload-range-values"></span></p>
      <div class="row g-3 align-items-center" id="{{ .Layout.Slider.ID }}">
        <div class="col-md-6">
          <label class="form-label" for="payload-low-value">Low</label>
          <input type="range" class="form-range" id="payload-low" min="{{ .Layout.Slider.Min }}" max="{{ .Layout.Slider.Max }}" step="{{ .Layout.Slider.Step }}" aria-controls="payload-low-value">
          <input type="number" class="form-control form-control-sm" id="payload-low-value" min="{{ .Layout.Slider.Min }}" max="{{ .Layout.Slider.Max }}" step="any" value="{{ .Selection.Low }}">
        </div>
        <div class="col-md-6">
          <label class="form-label" for="payload-high-value">High</label>
          <input type="range" class="form-range" id="payload-high" min="{{ .Layout.Slider.Min }}" max="{{ .Layout.Slider.Max }}" step="{{ .Layout.Slider.Step }}" aria-controls="payload-high-value">
          <input type="number" class="form-control form-control-sm" id="payload-high-value" min="{{ .Layout.Slider.Min }}" max="{{ .Layout.Slider.Max }}" step="any" value="{{ .Selection.High }}">
        </div>
      </div>
    </div>

    <div class="chart-card" id="{{ .Layout.ScatterChartID }}">
      <div class="chart-title" data-role="title"></div>
      <div class="chart-canvas">
        <canvas aria-label="Payload mass versus outcome scatter chart" role="img"></canvas>
        <div class="chart-empty">No matching launches</div>
      </div>
    </div>
  </div>

  <script src="https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"></script>
  <script>
    const layout = {{ .LayoutJSON }};
    const initial = {{ .InitialJSON }};
    const palette = ["#3B82F6", "#10B981", "#F59E0B", "#EF4444", "#8B5CF6", "#14B8A6", "#F97316", "#64748B"];
    const charts = {};
    const state = {
      site: initial.selection.site,
      payload: [initial.selection.low, initial.selection.high]
    };

    function container(id) {
      return document.getElementById(id);
    }

    function showFigure(id, figure) {
      const root = container(id);
      root.querySelector("[data-role=title]").textContent = figure.title;
      const canvas = root.querySelector("canvas");
      const empty = root.querySelector(".chart-empty");
      if (charts[id]) {
        charts[id].destroy();
        delete charts[id];
      }
      canvas.style.display = figure.empty ? "none" : "block";
      empty.style.display = figure.empty ? "block" : "none";
      if (figure.empty) {
        return;
      }
      charts[id] = new Chart(canvas, figure.type === "pie" ? pieConfig(figure) : scatterConfig(figure));
    }

    function pieConfig(figure) {
      return {
        type: "pie",
        data: {
          labels: figure.labels,
          datasets: [{ data: figure.values, backgroundColor: palette }]
        },
        options: { responsive: true, maintainAspectRatio: false }
      };
    }

    function scatterConfig(figure) {
      const groups = new Map();
      figure.x.forEach(function (x, i) {
        const name = figure.groups && figure.groups[i] ? figure.groups[i] : "Launches";
        if (!groups.has(name)) {
          groups.set(name, []);
        }
        groups.get(name).push({ x: x, y: figure.y[i] });
      });
      const datasets = [];
      let i = 0;
      groups.forEach(function (points, name) {
        datasets.push({ label: name, data: points, backgroundColor: palette[i % palette.length] });
        i++;
      });
      return {
        type: "scatter",
        data: { datasets: datasets },
        options: {
          responsive: true,
          maintainAspectRatio: false,
          scales: {
            x: { title: { display: true, text: figure.xTitle } },
            y: { title: { display: true, text: figure.yTitle }, min: -0.25, max: 1.25, ticks: { stepSize: 1 } }
          }
        }
      };
    }

    function callback(name, body) {
      return fetch("/api/callbacks/" + name, {
        method: "POST",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify(body)
      }).then(function (resp) {
        return resp.json().then(function (data) {
          if (!resp.ok) {
            throw new Error(data.error || resp.statusText);
          }
          return data;
        });
      }).then(function (data) {
        showFigure(data.output, data.figure);
      }).catch(function (err) {
        console.error(name + " callback failed", err);
      });
    }

    function renderRange() {
      container("payload-range-values").textContent = state.payload[0] + " – " + state.payload[1] + " kg";
    }

    const dropdown = container(layout.dropdown.id);
    const search = container(layout.dropdown.id + "-search");
    if (search) {
      search.addEventListener("input", function () {
        const needle = search.value.trim().toLowerCase();
        Array.from(dropdown.options).forEach(function (opt) {
          opt.hidden = needle !== "" && !opt.text.toLowerCase().includes(needle);
        });
      });
    }

    dropdown.addEventListener("change", function () {
      state.site = dropdown.value;
      callback("pie", { site: state.site });
      callback("scatter", { site: state.site, payload: state.payload });
    });

    // The range handle snaps to the slider step; the number input holds the
    // exact bound. Only the bound that moved is taken from the controls.
    function bindBound(index, rangeId, valueId) {
      const range = container(rangeId);
      const exact = container(valueId);
      range.value = state.payload[index];
      exact.value = state.payload[index];
      function commit(value) {
        if (!Number.isFinite(value) || value === state.payload[index]) {
          return;
        }
        state.payload[index] = value;
        renderRange();
        callback("scatter", { site: state.site, payload: state.payload });
      }
      range.addEventListener("change", function () {
        exact.value = range.value;
        commit(Number(range.value));
      });
      exact.addEventListener("change", function () {
        if (exact.value === "") {
          exact.value = state.payload[index];
          return;
        }
        range.value = exact.value;
        commit(Number(exact.value));
      });
    }
    bindBound(0, "payload-low", "payload-low-value");
    bindBound(1, "payload-high", "payload-high-value");
    renderRange();

    showFigure(layout.pieChartId, initial.pie);
    showFigure(layout.scatterChartId, initial.scatter);
  </script>
</body>
</html>
`
