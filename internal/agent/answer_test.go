package agent

import (
	"context"
	"strings"
	"testing"
)

func TestAnswer_ComposesFromResult(t *testing.T) {
	mock := &scriptedLLM{responses: []string{"  There are 3 delivered orders.  "}}
	w := New(mock, nil, "")

	s := &State{
		Question: "How many orders were delivered?",
		SQLQuery: countSQL,
		Result:   &Result{Columns: []string{"delivered_count"}, Rows: []Row{{"delivered_count": int64(3)}}},
	}
	if err := w.answer(context.Background(), s); err != nil {
		t.Fatalf("answer() error = %v", err)
	}

	if s.FinalAnswer != "There are 3 delivered orders." {
		t.Errorf("FinalAnswer = %q", s.FinalAnswer)
	}

	req := mock.requests[0]
	if req.Temperature != answerTemperature {
		t.Errorf("Temperature = %v, want %v", req.Temperature, answerTemperature)
	}
	if !strings.Contains(req.Prompt, countSQL) {
		t.Error("answer prompt missing the SQL query")
	}
	if !strings.Contains(req.Prompt, `"delivered_count": 3`) {
		t.Error("answer prompt missing the serialized result")
	}
}

func TestAnswer_ApologyOnLingeringError(t *testing.T) {
	mock := &scriptedLLM{}
	w := New(mock, nil, "")

	s := &State{
		Question:  "q",
		Error:     "SQL execution error: no such table: foo",
		Iteration: 4,
	}
	if err := w.answer(context.Background(), s); err != nil {
		t.Fatalf("answer() error = %v", err)
	}

	if len(mock.requests) != 0 {
		t.Errorf("model called %d times, want 0 on the exhaustion branch", len(mock.requests))
	}
	if !strings.Contains(s.FinalAnswer, "no such table: foo") {
		t.Errorf("FinalAnswer = %q, want it to contain the last error text", s.FinalAnswer)
	}
}
