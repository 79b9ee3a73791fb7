package chart

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	gochart "github.com/wcharczuk/go-chart/v2"
)

const (
	defaultWidth  = 1000
	defaultHeight = 600
)

// TemplateRenderer draws charts deterministically from tabular data: first
// column as category/x axis, second as value/y axis. No model call is made.
// The output is a base64-encoded PNG.
type TemplateRenderer struct {
	Width  int
	Height int
}

// NewTemplateRenderer creates a TemplateRenderer with default dimensions.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{Width: defaultWidth, Height: defaultHeight}
}

// Render produces the chart for the request. Any parsing or drawing failure
// yields an empty artifact; visualization must never fail the request.
func (r *TemplateRenderer) Render(_ context.Context, req Request) Artifact {
	png, err := r.render(req)
	if err != nil {
		slog.Warn("template chart rendering failed", "type", req.Type, "error", err)
		return Artifact{}
	}
	return Artifact{
		Data:        base64.StdEncoding.EncodeToString(png),
		ContentType: "image/png",
	}
}

func (r *TemplateRenderer) render(req Request) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch req.Type {
	case TypeBar:
		err = r.renderBar(req, &buf)
	case TypeLine:
		err = r.renderLine(req, &buf)
	case TypePie:
		err = r.renderPie(req, &buf)
	case TypeScatter:
		err = r.renderScatter(req, &buf)
	default:
		return nil, fmt.Errorf("unsupported chart type %q", req.Type)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *TemplateRenderer) renderBar(req Request, buf *bytes.Buffer) error {
	pts, err := series(req, maxCategories)
	if err != nil {
		return err
	}

	bars := make([]gochart.Value, len(pts))
	for i, p := range pts {
		bars[i] = gochart.Value{Value: p.value, Label: p.label}
	}

	bc := gochart.BarChart{
		Title:    req.Question,
		Width:    r.Width,
		Height:   r.Height,
		BarWidth: 30,
		XAxis: gochart.Style{
			TextRotationDegrees: 45,
		},
		Bars: bars,
	}
	return bc.Render(gochart.PNG, buf)
}

func (r *TemplateRenderer) renderLine(req Request, buf *bytes.Buffer) error {
	pts, err := series(req, maxCategories)
	if err != nil {
		return err
	}

	// X positions follow result order; no implicit sort.
	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	ticks := make([]gochart.Tick, len(pts))
	for i, p := range pts {
		xs[i] = float64(i)
		ys[i] = p.value
		ticks[i] = gochart.Tick{Value: float64(i), Label: p.label}
	}

	graph := gochart.Chart{
		Title:  req.Question,
		Width:  r.Width,
		Height: r.Height,
		XAxis: gochart.XAxis{
			Ticks: ticks,
			Style: gochart.Style{TextRotationDegrees: 45},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: 2,
					DotWidth:    4,
				},
			},
		},
	}
	return graph.Render(gochart.PNG, buf)
}

func (r *TemplateRenderer) renderPie(req Request, buf *bytes.Buffer) error {
	pts, err := series(req, maxPieSlices)
	if err != nil {
		return err
	}
	slices, err := pieSlices(pts)
	if err != nil {
		return err
	}

	values := make([]gochart.Value, len(slices))
	for i, s := range slices {
		values[i] = gochart.Value{
			Value: s.value,
			Label: fmt.Sprintf("%s (%.1f%%)", s.label, s.pct),
		}
	}

	pc := gochart.PieChart{
		Title:  req.Question,
		Width:  r.Width,
		Height: r.Height,
		Values: values,
	}
	return pc.Render(gochart.PNG, buf)
}

func (r *TemplateRenderer) renderScatter(req Request, buf *bytes.Buffer) error {
	xs, ys, err := scatterPoints(req, maxCategories)
	if err != nil {
		return err
	}

	graph := gochart.Chart{
		Title:  req.Question,
		Width:  r.Width,
		Height: r.Height,
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotWidth:    5,
				},
			},
		},
	}
	return graph.Render(gochart.PNG, buf)
}
