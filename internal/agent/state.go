// Package agent implements the retry-capable question workflow: SQL
// synthesis, execution against the embedded store, bounded self-repair,
// answer composition, and visualization planning/rendering.
package agent

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/vendahq/venda/internal/chart"
)

// Row is one result row as a column→value mapping.
type Row = map[string]any

// noResultsMarker stands in for an empty result set in prompts and
// projections, so downstream steps can special-case it.
const noResultsMarker = "No results found."

// Result is a materialized tabular query result. Columns preserves the
// projection order from the engine; Empty marks a query that returned no
// rows, which is distinct from "not executed yet" (a nil *Result).
type Result struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows,omitempty"`
	Empty   bool     `json:"empty,omitempty"`
}

// Serialize renders the rows as indented JSON for model prompts and the
// response projection. An empty result set serializes to the marker string.
func (r *Result) Serialize() string {
	if r == nil {
		return ""
	}
	if r.Empty {
		return noResultsMarker
	}
	b, err := json.MarshalIndent(r.Rows, "", "  ")
	if err != nil {
		return ""
	}
	return string(b)
}

// clone deep-copies the result so event snapshots stay independent of later
// mutations.
func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	out := &Result{
		Columns: append([]string(nil), r.Columns...),
		Empty:   r.Empty,
	}
	if r.Rows != nil {
		out.Rows = make([]Row, len(r.Rows))
		for i, row := range r.Rows {
			cp := make(Row, len(row))
			for k, v := range row {
				cp[k] = v
			}
			out.Rows[i] = cp
		}
	}
	return out
}

// State is the single record threaded through every step of one request.
// One State per question; created at call time, discarded after the caller
// consumes the response projection.
type State struct {
	RunID       string         `json:"run_id"`
	Question    string         `json:"question"`
	SQLQuery    string         `json:"sql_query"`
	Result      *Result        `json:"query_result,omitempty"`
	FinalAnswer string         `json:"final_answer"`
	Error       string         `json:"error"`
	Iteration   int            `json:"iteration"`
	NeedsGraph  bool           `json:"needs_graph"`
	GraphType   chart.Type     `json:"graph_type"`
	Artifact    chart.Artifact `json:"graph_artifact"`
}

func newState(question string) *State {
	return &State{
		RunID:    uuid.New().String(),
		Question: question,
	}
}

// snapshot returns an independent copy for event consumers.
func (s *State) snapshot() *State {
	cp := *s
	cp.Result = s.Result.clone()
	return &cp
}

// Response is the flat projection returned to callers.
type Response struct {
	Question      string `json:"question"`
	SQLQuery      string `json:"sql_query"`
	QueryResult   string `json:"query_result"`
	FinalAnswer   string `json:"final_answer"`
	Error         string `json:"error"`
	NeedsGraph    bool   `json:"needs_graph"`
	GraphType     string `json:"graph_type"`
	GraphArtifact string `json:"graph_artifact,omitempty"`
	ContentType   string `json:"content_type,omitempty"`
}

func (s *State) response() Response {
	return Response{
		Question:      s.Question,
		SQLQuery:      s.SQLQuery,
		QueryResult:   s.Result.Serialize(),
		FinalAnswer:   s.FinalAnswer,
		Error:         s.Error,
		NeedsGraph:    s.NeedsGraph,
		GraphType:     string(s.GraphType),
		GraphArtifact: s.Artifact.Data,
		ContentType:   s.Artifact.ContentType,
	}
}
