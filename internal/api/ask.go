package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sqlscout/sqlscout/internal/agent"
	"github.com/sqlscout/sqlscout/internal/llm"
)

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Question string          `json:"question"`
	SQL      string          `json:"sql"`
	Columns  []string        `json:"columns"`
	Rows     [][]any         `json:"rows"`
	Attempts []agent.Attempt `json:"attempts"`
	Stats    map[string]any  `json:"stats"`
}

func handleAsk(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	if deps.Agent == nil {
		writeError(r.Context(), w, http.StatusNotImplemented, "ASK_NOT_CONFIGURED", "agent dependencies are not configured", false, nil)
		return
	}

	var request askRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_JSON", "invalid ask request body", false, map[string]any{"details": err.Error()})
		return
	}
	if strings.TrimSpace(request.Question) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "QUESTION_REQUIRED", "question is required", false, nil)
		return
	}

	result, err := deps.Agent.Run(r.Context(), request.Question)
	if err != nil {
		handleAskError(r, w, result, err)
		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Question: result.Question,
		SQL:      result.SQL,
		Columns:  result.Columns,
		Rows:     result.Rows,
		Attempts: result.Attempts,
		Stats: map[string]any{
			"duration_ms": result.Duration.Milliseconds(),
			"attempts":    len(result.Attempts),
		},
	})
}

// handleAskError maps loop outcomes to HTTP statuses. Exhaustion is the
// caller's problem (the question, or the model, produced nothing usable);
// unavailable inference and execution failures are operational.
func handleAskError(r *http.Request, w http.ResponseWriter, result *agent.Result, err error) {
	var attempts []agent.Attempt
	if result != nil {
		attempts = result.Attempts
	}

	switch {
	case errors.Is(err, llm.ErrUnavailable):
		writeError(r.Context(), w, http.StatusBadGateway, "INFERENCE_UNAVAILABLE", err.Error(), true, nil)
	case errors.Is(err, agent.ErrRetriesExhausted):
		writeError(r.Context(), w, http.StatusUnprocessableEntity, "RETRIES_EXHAUSTED", err.Error(), false, map[string]any{
			"attempts": attempts,
		})
	case errors.Is(err, agent.ErrExecutionFailed):
		writeError(r.Context(), w, http.StatusInternalServerError, "EXECUTION_FAILED", err.Error(), true, nil)
	default:
		writeError(r.Context(), w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), true, nil)
	}
}

func handleSchema(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"tables": deps.Schema.Tables,
		"text":   deps.Schema.ToText(),
	})
}
