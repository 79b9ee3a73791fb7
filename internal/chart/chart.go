// Package chart turns tabular query results into visual artifacts. Two
// interchangeable strategies implement the Renderer contract: a deterministic
// template renderer producing a base64 PNG, and a figure renderer producing a
// serializable JSON figure description from a model-selected field mapping.
package chart

import (
	"context"
	"fmt"
	"strconv"
)

// Type is the chart family chosen by the visualization planner.
type Type string

const (
	TypeNone    Type = "none"
	TypeBar     Type = "bar"
	TypeLine    Type = "line"
	TypePie     Type = "pie"
	TypeScatter Type = "scatter"
)

// ParseType maps a raw planner string onto a known chart family.
// Unknown values report false.
func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeBar, TypeLine, TypePie, TypeScatter, TypeNone:
		return Type(s), true
	}
	return TypeNone, false
}

// Row caps keep charts readable: the original tool showed at most 20
// categories, and at most 10 pie slices.
const (
	maxCategories = 20
	maxPieSlices  = 10
)

// Request carries everything a renderer needs: the question (used as the
// title), the chart family, and the tabular result.
type Request struct {
	Question string
	Type     Type
	Columns  []string
	Rows     []map[string]any
}

// Artifact is an optional rendered output plus its content-type tag. The
// zero value means "no artifact" — rendering failures yield it instead of
// an error, so a failed chart never fails the request.
type Artifact struct {
	Data        string `json:"data,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// Empty reports whether no artifact was produced.
func (a Artifact) Empty() bool {
	return a.Data == ""
}

// Renderer is the visualization capability contract.
type Renderer interface {
	Render(ctx context.Context, req Request) Artifact
}

// point is one category/value pair extracted from a result row.
type point struct {
	label string
	value float64
}

// series extracts (label, value) pairs from the request: first column is the
// category axis, second column the measured value. Requires at least two
// columns and a numeric second column.
func series(req Request, limit int) ([]point, error) {
	if len(req.Columns) < 2 {
		return nil, fmt.Errorf("need at least 2 columns, have %d", len(req.Columns))
	}
	if len(req.Rows) == 0 {
		return nil, fmt.Errorf("no rows to chart")
	}

	xCol, yCol := req.Columns[0], req.Columns[1]

	rows := req.Rows
	if len(rows) > limit {
		rows = rows[:limit]
	}

	pts := make([]point, 0, len(rows))
	for _, row := range rows {
		y, err := toFloat(row[yCol])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", yCol, err)
		}
		pts = append(pts, point{label: toLabel(row[xCol]), value: y})
	}
	return pts, nil
}

// scatterPoints extracts numeric (x, y) pairs; scatter plots take both
// columns as raw numbers.
func scatterPoints(req Request, limit int) (xs, ys []float64, err error) {
	if len(req.Columns) < 2 {
		return nil, nil, fmt.Errorf("need at least 2 columns, have %d", len(req.Columns))
	}
	if len(req.Rows) == 0 {
		return nil, nil, fmt.Errorf("no rows to chart")
	}

	xCol, yCol := req.Columns[0], req.Columns[1]

	rows := req.Rows
	if len(rows) > limit {
		rows = rows[:limit]
	}

	for _, row := range rows {
		x, err := toFloat(row[xCol])
		if err != nil {
			return nil, nil, fmt.Errorf("column %q: %w", xCol, err)
		}
		y, err := toFloat(row[yCol])
		if err != nil {
			return nil, nil, fmt.Errorf("column %q: %w", yCol, err)
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys, nil
}

// slice is one pie segment with its share of the rendered total.
type slice struct {
	label string
	value float64
	pct   float64
}

// pieSlices converts points into pie segments. Percentages are computed over
// the included slices, so they always sum to 100 regardless of truncation.
func pieSlices(pts []point) ([]slice, error) {
	var total float64
	for _, p := range pts {
		if p.value < 0 {
			return nil, fmt.Errorf("negative value %v for %q", p.value, p.label)
		}
		total += p.value
	}
	if total == 0 {
		return nil, fmt.Errorf("all slice values are zero")
	}

	slices := make([]slice, len(pts))
	for i, p := range pts {
		slices[i] = slice{label: p.label, value: p.value, pct: p.value / total * 100}
	}
	return slices, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", n)
		}
		return f, nil
	case nil:
		return 0, fmt.Errorf("value is null")
	default:
		return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
	}
}

func toLabel(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(s, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}
