package chart

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vendahq/venda/internal/llm"
)

// FigureRenderer asks the model to choose a field mapping for the chart and
// then builds a serializable figure description deterministically from that
// mapping. The model only ever selects from a closed set of options (column
// names, a title, a row limit) — it does not produce code, and nothing it
// returns is executed.
type FigureRenderer struct {
	llm llm.ChatCompleter
}

// NewFigureRenderer creates a FigureRenderer backed by the given model client.
func NewFigureRenderer(client llm.ChatCompleter) *FigureRenderer {
	return &FigureRenderer{llm: client}
}

// figurePlan is the closed DSL the model fills in.
type figurePlan struct {
	XField string `json:"x_field"`
	YField string `json:"y_field"`
	Title  string `json:"title"`
	Limit  int    `json:"limit"`
}

// Figure is the portable chart description emitted by this strategy.
type Figure struct {
	Type    string    `json:"type"`
	Title   string    `json:"title"`
	XLabel  string    `json:"x_label"`
	YLabel  string    `json:"y_label"`
	Labels  []string  `json:"labels,omitempty"`
	XValues []float64 `json:"x_values,omitempty"`
	Values  []float64 `json:"values"`
}

const figureSystemPrompt = "You are a data visualization assistant. " +
	"You select which result columns map onto chart axes. " +
	"Respond only with the requested JSON object."

// Render builds the figure description. Any failure — model error,
// unparseable plan, unknown fields, non-numeric values — yields an empty
// artifact; the request still succeeds with text-only output.
func (r *FigureRenderer) Render(ctx context.Context, req Request) Artifact {
	fig, err := r.buildFigure(ctx, req)
	if err != nil {
		slog.Warn("figure rendering failed", "type", req.Type, "error", err)
		return Artifact{}
	}

	data, err := json.Marshal(fig)
	if err != nil {
		slog.Warn("figure serialization failed", "error", err)
		return Artifact{}
	}

	return Artifact{
		Data:        string(data),
		ContentType: "application/json",
	}
}

func (r *FigureRenderer) buildFigure(ctx context.Context, req Request) (*Figure, error) {
	if len(req.Columns) < 2 {
		return nil, fmt.Errorf("need at least 2 columns, have %d", len(req.Columns))
	}

	plan, err := r.plan(ctx, req)
	if err != nil {
		return nil, err
	}

	limit := maxCategories
	if req.Type == TypePie {
		limit = maxPieSlices
	}
	if plan.Limit > 0 && plan.Limit < limit {
		limit = plan.Limit
	}

	// Remap columns so the shared extraction helpers see the chosen fields
	// first.
	mapped := req
	mapped.Columns = []string{plan.XField, plan.YField}

	fig := &Figure{
		Type:   string(req.Type),
		Title:  plan.Title,
		XLabel: plan.XField,
		YLabel: plan.YField,
	}
	if fig.Title == "" {
		fig.Title = req.Question
	}

	if req.Type == TypeScatter {
		xs, ys, err := scatterPoints(mapped, limit)
		if err != nil {
			return nil, err
		}
		fig.XValues = xs
		fig.Values = ys
		return fig, nil
	}

	pts, err := series(mapped, limit)
	if err != nil {
		return nil, err
	}
	for _, p := range pts {
		fig.Labels = append(fig.Labels, p.label)
		fig.Values = append(fig.Values, p.value)
	}
	return fig, nil
}

// plan asks the model which columns to chart and validates the answer
// against the actual result columns.
func (r *FigureRenderer) plan(ctx context.Context, req Request) (figurePlan, error) {
	prompt := fmt.Sprintf(`Choose a field mapping for a %s chart answering this question.

Question: %s

Available columns (use these names exactly): %s

Rules:
- x_field and y_field must each be one of the available columns
- y_field must hold the measured value
- limit is the maximum number of rows to include (at most %d)
- do not invent columns, do not write code

Respond in JSON format:
{"x_field": "...", "y_field": "...", "title": "...", "limit": %d}`,
		req.Type, req.Question, strings.Join(req.Columns, ", "), maxCategories, maxCategories)

	raw, err := r.llm.Complete(ctx, llm.Request{
		System:   figureSystemPrompt,
		Prompt:   prompt,
		JSONOnly: true,
	})
	if err != nil {
		return figurePlan{}, fmt.Errorf("planning figure: %w", err)
	}

	var plan figurePlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return figurePlan{}, fmt.Errorf("parsing figure plan: %w", err)
	}

	if !hasColumn(req.Columns, plan.XField) {
		return figurePlan{}, fmt.Errorf("plan references unknown column %q", plan.XField)
	}
	if !hasColumn(req.Columns, plan.YField) {
		return figurePlan{}, fmt.Errorf("plan references unknown column %q", plan.YField)
	}
	return plan, nil
}

func hasColumn(columns []string, name string) bool {
	for _, c := range columns {
		if c == name {
			return true
		}
	}
	return false
}
