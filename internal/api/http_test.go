package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vendahq/venda/internal/agent"
)

// --- mocks ---

type stubRunner struct {
	resp     agent.Response
	err      error
	events   []agent.Event
	lastAsk  string
	runCalls int
}

func (s *stubRunner) Run(_ context.Context, question string) (agent.Response, error) {
	s.lastAsk = question
	s.runCalls++
	return s.resp, s.err
}

func (s *stubRunner) Stream(_ context.Context, question string) <-chan agent.Event {
	s.lastAsk = question
	ch := make(chan agent.Event)
	go func() {
		defer close(ch)
		for _, e := range s.events {
			ch <- e
		}
	}()
	return ch
}

// --- tests ---

func TestHealth(t *testing.T) {
	h := NewHandler(&stubRunner{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status = %q, want ok", body["status"])
	}
}

func TestHandleQuestion(t *testing.T) {
	runner := &stubRunner{
		resp: agent.Response{
			Question:    "How many orders?",
			SQLQuery:    "SELECT COUNT(*) AS total FROM orders",
			FinalAnswer: "There are 12 orders.",
		},
	}
	h := NewHandler(runner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/questions",
		strings.NewReader(`{"question": "How many orders?"}`))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp agent.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.FinalAnswer != "There are 12 orders." {
		t.Errorf("final answer = %q", resp.FinalAnswer)
	}
	if runner.lastAsk != "How many orders?" {
		t.Errorf("runner got question %q", runner.lastAsk)
	}
}

func TestHandleQuestionBadRequest(t *testing.T) {
	h := NewHandler(&stubRunner{})

	cases := []struct {
		name string
		body string
	}{
		{"empty question", `{"question": "  "}`},
		{"missing question", `{}`},
		{"invalid json", `{"question": `},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/questions", strings.NewReader(tc.body))
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestHandleQuestionRunnerError(t *testing.T) {
	h := NewHandler(&stubRunner{err: errors.New("model unavailable")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/questions",
		strings.NewReader(`{"question": "anything"}`))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var apiErr apiError
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if apiErr.Error == "" {
		t.Error("expected an error message")
	}
	if strings.Contains(apiErr.Error, "model unavailable") {
		t.Error("internal error detail leaked to client")
	}
}

func TestHandleQuestionStream(t *testing.T) {
	runner := &stubRunner{
		events: []agent.Event{
			{Type: agent.EventStart, Node: "synthesize"},
			{Type: agent.EventEnd, Node: "synthesize"},
			{Type: agent.EventFinal, State: &agent.State{FinalAnswer: "done"}},
		},
	}
	h := NewHandler(runner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/questions/stream",
		strings.NewReader(`{"question": "trend of orders"}`))
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q", ct)
	}

	body := rec.Body.String()
	for _, want := range []string{"event: start", "event: end", "event: final", `"node":"synthesize"`, `"final_answer":"done"`} {
		if !strings.Contains(body, want) {
			t.Errorf("stream body missing %q:\n%s", want, body)
		}
	}
}
