package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

// fakeCompletion builds a minimal chat completion response body.
func fakeCompletion(content string) map[string]any {
	return map[string]any{
		"id":     "chatcmpl-test",
		"object": "chat.completion",
		"model":  "gpt-4o-mini",
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{APIKey: "sk-test", BaseURL: srv.URL + "/v1", Model: "gpt-4o-mini"})
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c, srv
}

func TestComplete_ReturnsContent(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(fakeCompletion("SELECT 1"))
	})

	got, err := c.Complete(context.Background(), Request{System: "sys", Prompt: "q"})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "SELECT 1" {
		t.Errorf("Complete() = %q, want %q", got, "SELECT 1")
	}
}

func TestComplete_JSONOnlySetsResponseFormat(t *testing.T) {
	var captured map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(fakeCompletion(`{"ok":true}`))
	})

	if _, err := c.Complete(context.Background(), Request{Prompt: "q", JSONOnly: true}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	rf, ok := captured["response_format"].(map[string]any)
	if !ok {
		t.Fatalf("request has no response_format: %v", captured)
	}
	if rf["type"] != "json_object" {
		t.Errorf("response_format.type = %v, want json_object", rf["type"])
	}
}

func TestComplete_ZeroTemperatureOnWire(t *testing.T) {
	var captured map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(fakeCompletion("SELECT 1"))
	})

	if _, err := c.Complete(context.Background(), Request{Prompt: "q", Temperature: 0}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	temp, ok := captured["temperature"].(float64)
	if !ok {
		t.Fatalf("request has no temperature field: %v", captured)
	}
	if temp >= 0.01 {
		t.Errorf("temperature = %v, want effectively zero", temp)
	}
}

func TestComplete_NonZeroTemperaturePassedThrough(t *testing.T) {
	var captured map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		json.NewEncoder(w).Encode(fakeCompletion("fine"))
	})

	if _, err := c.Complete(context.Background(), Request{Prompt: "q", Temperature: 0.7}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	temp, ok := captured["temperature"].(float64)
	if !ok {
		t.Fatalf("request has no temperature field: %v", captured)
	}
	if temp < 0.69 || temp > 0.71 {
		t.Errorf("temperature = %v, want 0.7", temp)
	}
}

func TestComplete_UpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"boom"}}`, http.StatusInternalServerError)
	})

	if _, err := c.Complete(context.Background(), Request{Prompt: "q"}); err == nil {
		t.Fatal("Complete() expected error on 500 response")
	}
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient(Config{Model: "m"}); err == nil {
		t.Error("NewClient() should require an API key")
	}
	if _, err := NewClient(Config{APIKey: "k"}); err == nil {
		t.Error("NewClient() should require a model")
	}
}
