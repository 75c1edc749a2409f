// Package agent runs the self-correction loop: prompt the model, extract a
// candidate statement, validate it, and either execute or feed the failure
// back into the next prompt, up to a hard attempt bound.
package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sqlscout/sqlscout/internal/llm"
	"github.com/sqlscout/sqlscout/internal/observability"
	"github.com/sqlscout/sqlscout/internal/prompt"
	"github.com/sqlscout/sqlscout/internal/sqlextract"
	"github.com/sqlscout/sqlscout/internal/store"
	"github.com/sqlscout/sqlscout/internal/validate"
)

const DefaultMaxAttempts = 3

var (
	// ErrRetriesExhausted is returned when every attempt failed validation.
	// The result still carries the full attempt trace for diagnostics.
	ErrRetriesExhausted = errors.New("no valid SQL produced within the attempt budget")

	// ErrExecutionFailed marks a failure after validation passed. The retry
	// budget is reserved for generation errors, so this is terminal.
	ErrExecutionFailed = errors.New("query execution failed")
)

// State is the terminal state of a session.
type State string

const (
	StateSucceeded State = "succeeded"
	StateExhausted State = "exhausted"
)

// Verdict labels how a single attempt ended.
const (
	VerdictValid                = "valid"
	VerdictBlocked              = "blocked"
	VerdictSyntaxError          = "syntax_error"
	VerdictExtractionFailed     = "extraction_failed"
	VerdictExecutionFailed      = "execution_failed"
	VerdictInferenceUnavailable = "inference_unavailable"
)

// Attempt records one generate-validate cycle. Immutable once appended to
// the session trace.
type Attempt struct {
	Index     int       `json:"index"`
	Prompt    string    `json:"-"`
	RawOutput string    `json:"-"`
	SQL       string    `json:"sql,omitempty"`
	Verdict   string    `json:"verdict"`
	Failure   string    `json:"failure,omitempty"`
	StartedAt time.Time `json:"started_at"`
}

// Result is the outcome of one session: the terminal state, the full attempt
// trace, and on success the executed query's rows.
type Result struct {
	Question string    `json:"question"`
	State    State     `json:"state"`
	Attempts []Attempt `json:"attempts"`
	SQL      string    `json:"sql,omitempty"`
	Columns  []string  `json:"columns,omitempty"`
	Rows     [][]any   `json:"rows,omitempty"`
	Duration time.Duration
}

// Executor runs a validated statement for real.
type Executor interface {
	Query(ctx context.Context, statement string) (store.Result, error)
}

// Loop orchestrates one question end to end. Sessions are strictly
// sequential; no state survives between questions.
type Loop struct {
	Client      llm.Client
	Builder     *prompt.Builder
	Validator   *validate.Validator
	Executor    Executor
	MaxAttempts int
	Logger      *slog.Logger
}

// Run answers one question. Recoverable failures (blocked keyword, syntax
// error, unextractable output) stay inside the loop as feedback for the next
// attempt; only fatal or exhausted errors cross this boundary.
func (l *Loop) Run(ctx context.Context, question string) (*Result, error) {
	maxAttempts := l.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = DefaultMaxAttempts
	}
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}

	result := &Result{Question: question}
	start := time.Now()
	var feedback *prompt.Feedback

	for n := 1; n <= maxAttempts; n++ {
		attempt := Attempt{Index: n, StartedAt: time.Now()}
		attempt.Prompt = l.Builder.Build(question, feedback)
		observability.ObserveAttempt()

		logger.Debug("requesting completion", slog.Int("attempt", n), slog.Int("max_attempts", maxAttempts))
		inferenceStart := time.Now()
		raw, err := l.Client.Complete(ctx, attempt.Prompt)
		observability.ObserveInference(time.Since(inferenceStart))
		if err != nil {
			attempt.Verdict = VerdictInferenceUnavailable
			attempt.Failure = err.Error()
			result.Attempts = append(result.Attempts, attempt)
			result.State = StateExhausted
			result.Duration = time.Since(start)
			observability.ObserveSession(VerdictInferenceUnavailable)
			logger.Error("inference call failed", slog.Int("attempt", n), slog.Any("error", err))
			return result, err
		}
		attempt.RawOutput = raw

		candidate, err := sqlextract.Extract(raw)
		if err != nil {
			attempt.Verdict = VerdictExtractionFailed
			attempt.Failure = err.Error()
			result.Attempts = append(result.Attempts, attempt)
			observability.ObserveValidationFailure(VerdictExtractionFailed)
			logger.Warn("no SQL statement in model output", slog.Int("attempt", n))
			feedback = &prompt.Feedback{Reason: err.Error()}
			continue
		}
		attempt.SQL = candidate

		outcome := l.Validator.Check(ctx, candidate)
		if !outcome.Valid() {
			attempt.Verdict = outcome.Kind.String()
			attempt.Failure = outcome.Reason()
			result.Attempts = append(result.Attempts, attempt)
			observability.ObserveValidationFailure(attempt.Verdict)
			logger.Warn("validation failed",
				slog.Int("attempt", n),
				slog.String("verdict", attempt.Verdict),
				slog.String("reason", attempt.Failure),
			)
			feedback = &prompt.Feedback{SQL: candidate, Reason: outcome.Reason()}
			continue
		}

		// Both checks passed on this attempt; execute exactly once.
		queryResult, err := l.Executor.Query(ctx, candidate)
		if err != nil {
			attempt.Verdict = VerdictExecutionFailed
			attempt.Failure = err.Error()
			result.Attempts = append(result.Attempts, attempt)
			result.State = StateExhausted
			result.Duration = time.Since(start)
			observability.ObserveSession(VerdictExecutionFailed)
			logger.Error("execution failed after validation", slog.Int("attempt", n), slog.Any("error", err))
			return result, fmt.Errorf("%w: %v", ErrExecutionFailed, err)
		}

		attempt.Verdict = VerdictValid
		result.Attempts = append(result.Attempts, attempt)
		result.State = StateSucceeded
		result.SQL = candidate
		result.Columns = queryResult.Columns
		result.Rows = queryResult.Rows
		result.Duration = time.Since(start)
		observability.ObserveSession(string(StateSucceeded))
		observability.ObserveResultRows(len(queryResult.Rows))
		logger.Info("question answered",
			slog.Int("attempts", n),
			slog.Int("rows", len(queryResult.Rows)),
			slog.String("duration", result.Duration.String()),
		)
		return result, nil
	}

	result.State = StateExhausted
	result.Duration = time.Since(start)
	observability.ObserveSession(string(StateExhausted))
	logger.Warn("attempt budget exhausted", slog.Int("attempts", len(result.Attempts)))
	return result, ErrRetriesExhausted
}
