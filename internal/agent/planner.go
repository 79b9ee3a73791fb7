package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/vendahq/venda/internal/chart"
	"github.com/vendahq/venda/internal/llm"
)

const plannerSystem = "You are a data visualization expert. Analyze queries and determine if visualization would add value."

// planSampleLimit bounds how much of the serialized result is shown to the
// planner.
const planSampleLimit = 500

// graphDecision is the structured planner output.
type graphDecision struct {
	NeedsGraph bool   `json:"needs_graph"`
	GraphType  string `json:"graph_type"`
	Reason     string `json:"reason"`
}

// plan decides whether a chart is warranted and which family. Empty results
// and lingering errors short-circuit to "no graph" without a model call. An
// unparseable decision also means "no graph" — it never fails the request.
func (w *Workflow) plan(ctx context.Context, s *State) error {
	if s.Error != "" || s.Result == nil || s.Result.Empty {
		s.NeedsGraph = false
		s.GraphType = chart.TypeNone
		return nil
	}

	sample := s.Result.Serialize()
	if len(sample) > planSampleLimit {
		// Back off to a rune boundary so the cut never splits a multi-byte
		// character (category names carry accented text).
		cut := planSampleLimit
		for cut > 0 && !utf8.RuneStart(sample[cut]) {
			cut--
		}
		sample = sample[:cut]
	}

	prompt := fmt.Sprintf(`Analyze the following question and query results to determine if a graph visualization would be helpful.

Question: %s

Query Results Sample:
%s...

Determine:
1. Would a graph be helpful for this data? (YES/NO)
2. If yes, what type of graph? (bar, line, pie, scatter)

Consider:
- Trends over time -> line chart
- Comparisons between categories -> bar chart
- Proportions/percentages -> pie chart
- Correlations -> scatter plot
- Simple counts or single values -> NO graph needed

Respond in JSON format:
{"needs_graph": true/false, "graph_type": "bar/line/pie/scatter/none", "reason": "brief explanation"}`,
		s.Question, sample)

	raw, err := w.llm.Complete(ctx, llm.Request{
		System:      plannerSystem,
		Prompt:      prompt,
		Temperature: 0,
		JSONOnly:    true,
	})
	if err != nil {
		return fmt.Errorf("planning visualization: %w", err)
	}

	var decision graphDecision
	if err := json.Unmarshal([]byte(raw), &decision); err != nil {
		slog.Warn("unparseable graph decision, skipping visualization",
			"run_id", s.RunID, "response", raw, "error", err)
		s.NeedsGraph = false
		s.GraphType = chart.TypeNone
		return nil
	}

	typ, ok := chart.ParseType(decision.GraphType)
	if !ok {
		typ = chart.TypeNone
	}
	s.NeedsGraph = decision.NeedsGraph && typ != chart.TypeNone
	if !s.NeedsGraph {
		typ = chart.TypeNone
	}
	s.GraphType = typ
	return nil
}
