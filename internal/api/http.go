package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vendahq/venda/internal/agent"
)

const maxRequestBody = 1 << 20

// Runner executes natural-language questions against the database.
// *agent.Workflow satisfies it.
type Runner interface {
	Run(ctx context.Context, question string) (agent.Response, error)
	Stream(ctx context.Context, question string) <-chan agent.Event
}

// NewHandler builds the HTTP API: a health probe, a synchronous question
// endpoint and a streaming variant that feeds workflow events over SSE.
func NewHandler(runner Runner) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)
	r.Post("/v1/questions", handleQuestion(runner))
	r.Post("/v1/questions/stream", handleQuestionStream(runner))

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type questionRequest struct {
	Question string `json:"question"`
}

func decodeQuestion(r *http.Request) (string, error) {
	var req questionRequest
	body := http.MaxBytesReader(nil, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	q := strings.TrimSpace(req.Question)
	if q == "" {
		return "", fmt.Errorf("question is required")
	}
	return q, nil
}

func handleQuestion(runner Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		question, err := decodeQuestion(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}

		resp, err := runner.Run(r.Context(), question)
		if err != nil {
			slog.Error("question run failed", "error", err)
			httpError(w, http.StatusBadGateway, "failed to answer question")
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func handleQuestionStream(runner Runner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		question, err := decodeQuestion(r)
		if err != nil {
			httpError(w, http.StatusBadRequest, err.Error())
			return
		}

		flusher, ok := w.(http.Flusher)
		if !ok {
			httpError(w, http.StatusInternalServerError, "streaming unsupported")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		for event := range runner.Stream(r.Context(), question) {
			data, err := json.Marshal(event)
			if err != nil {
				slog.Error("marshal stream event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, data)
			flusher.Flush()
		}
	}
}

type apiError struct {
	Error string `json:"error"`
}

func httpError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, apiError{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}
