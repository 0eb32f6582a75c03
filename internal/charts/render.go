// internal/charts/render.go
package charts

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 480
)

// pointStyle renders points only, with no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// RenderPNG rasterizes spec. Empty specs, and specs go-chart refuses to draw,
// produce a titled placeholder image instead of an error.
func RenderPNG(w io.Writer, spec ChartSpec, width, height int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	if spec.Empty || spec.Points() == 0 {
		return png.Encode(w, placeholder(width, height, spec.Title, "No matching launches"))
	}

	var buf bytes.Buffer
	var err error
	switch spec.Type {
	case KindPie:
		err = renderPie(&buf, spec, width, height)
	case KindScatter:
		err = renderScatter(&buf, spec, width, height)
	default:
		return fmt.Errorf("unsupported chart type %q", spec.Type)
	}
	if err != nil {
		return png.Encode(w, placeholder(width, height, spec.Title, "Chart unavailable: "+err.Error()))
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func renderPie(w io.Writer, spec ChartSpec, width, height int) error {
	values := make([]chart.Value, 0, len(spec.Values))
	for i, v := range spec.Values {
		if v <= 0 {
			continue
		}
		values = append(values, chart.Value{Label: spec.Labels[i], Value: v})
	}
	pie := chart.PieChart{
		Title:  spec.Title,
		Width:  width,
		Height: height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func renderScatter(w io.Writer, spec ChartSpec, width, height int) error {
	type group struct {
		name   string
		xs, ys []float64
	}
	var groups []*group
	byName := make(map[string]*group)
	for i := range spec.X {
		name := "Launches"
		if i < len(spec.Groups) && spec.Groups[i] != "" {
			name = spec.Groups[i]
		}
		g, ok := byName[name]
		if !ok {
			g = &group{name: name}
			byName[name] = g
			groups = append(groups, g)
		}
		g.xs = append(g.xs, spec.X[i])
		g.ys = append(g.ys, spec.Y[i])
	}

	series := make([]chart.Series, 0, len(groups))
	for i, g := range groups {
		series = append(series, chart.ContinuousSeries{
			Name:    g.name,
			XValues: g.xs,
			YValues: g.ys,
			Style:   pointStyle(chart.GetDefaultColor(i)),
		})
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	for _, x := range spec.X {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
	}
	pad := (maxX - minX) * 0.05
	if pad == 0 {
		pad = 100
	}

	ch := chart.Chart{
		Title:      spec.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  spec.XTitle,
			Range: &chart.ContinuousRange{Min: math.Max(0, minX-pad), Max: maxX + pad},
		},
		YAxis: chart.YAxis{
			Name:  spec.YTitle,
			Range: &chart.ContinuousRange{Min: -0.25, Max: 1.25},
			Ticks: []chart.Tick{{Value: 0, Label: "0"}, {Value: 1, Label: "1"}},
		},
		Series: series,
	}
	if len(groups) > 1 {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch.Render(chart.PNG, w)
}

// placeholder draws a light canvas with the chart title and a status line.
func placeholder(width, height int, title, status string) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 255}), image.Point{}, draw.Src)

	face := basicfont.Face7x13
	dr := &font.Drawer{Dst: img, Src: image.NewUniform(color.RGBA{R: 15, G: 23, B: 42, A: 255}), Face: face}
	if title = strings.TrimSpace(title); title != "" {
		tw := dr.MeasureString(title).Ceil()
		dr.Dot = fixed.Point26_6{X: fixed.I(max(8, (width-tw)/2)), Y: fixed.I(24)}
		dr.DrawString(title)
	}
	dr.Src = image.NewUniform(color.RGBA{R: 100, G: 116, B: 139, A: 255})
	sw := dr.MeasureString(status).Ceil()
	dr.Dot = fixed.Point26_6{X: fixed.I(max(8, (width-sw)/2)), Y: fixed.I(height / 2)}
	dr.DrawString(status)
	return img
}
