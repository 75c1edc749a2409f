package sqlscout

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sqlscout/sqlscout/internal/agent"
	"github.com/sqlscout/sqlscout/internal/llm"
	"github.com/sqlscout/sqlscout/internal/schema"
)

func TestRunAskSuccess(t *testing.T) {
	var gotQuestion string
	ask := func(_ context.Context, question string) (*agent.Result, error) {
		gotQuestion = question
		return &agent.Result{
			Question: question,
			State:    agent.StateSucceeded,
			SQL:      "SELECT name FROM users;",
			Columns:  []string{"name"},
			Rows:     [][]any{{"Alice Johnson"}},
			Attempts: []agent.Attempt{{Index: 1, Verdict: agent.VerdictValid}},
		}, nil
	}

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"ask", "names", "of", "all", "users"}, Options{
		Ask:    ask,
		Stdout: &stdout,
		Stderr: &stderr,
	})
	if code != 0 {
		t.Fatalf("exit code = %d, stderr=%s", code, stderr.String())
	}
	if gotQuestion != "names of all users" {
		t.Fatalf("question = %q", gotQuestion)
	}
	if !strings.Contains(stdout.String(), "SELECT name FROM users;") {
		t.Fatalf("stdout = %s", stdout.String())
	}
}

func TestRunAskExhaustedRendersTrace(t *testing.T) {
	ask := func(_ context.Context, question string) (*agent.Result, error) {
		return &agent.Result{
			Question: question,
			State:    agent.StateExhausted,
			Attempts: []agent.Attempt{
				{Index: 1, Verdict: agent.VerdictSyntaxError, Failure: "SQL Syntax Error: Parser Error: incomplete input"},
				{Index: 2, Verdict: agent.VerdictSyntaxError, Failure: "SQL Syntax Error: Parser Error: incomplete input"},
				{Index: 3, Verdict: agent.VerdictSyntaxError, Failure: "SQL Syntax Error: Parser Error: incomplete input"},
			},
		}, agent.ErrRetriesExhausted
	}

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"ask", "anything"}, Options{Ask: ask, Stdout: &stdout, Stderr: &stderr})
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "No answer after 3 attempt(s).") {
		t.Fatalf("stdout = %s", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("stderr = %s, want empty for exhaustion", stderr.String())
	}
}

func TestRunAskInferenceUnavailable(t *testing.T) {
	ask := func(_ context.Context, question string) (*agent.Result, error) {
		return &agent.Result{Question: question, State: agent.StateExhausted},
			fmt.Errorf("%w: connection refused", llm.ErrUnavailable)
	}

	var stdout, stderr bytes.Buffer
	code := Run(context.Background(), []string{"ask", "anything"}, Options{Ask: ask, Stdout: &stdout, Stderr: &stderr})
	if code != 1 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stderr.String(), "inference service unavailable") {
		t.Fatalf("stderr = %s", stderr.String())
	}
}

func TestRunSchemaCommand(t *testing.T) {
	var stdout bytes.Buffer
	code := Run(context.Background(), []string{"schema"}, Options{Schema: schema.Default(), Stdout: &stdout})
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "users: user_id, name, email, region, signup_date") {
		t.Fatalf("stdout = %s", stdout.String())
	}
}

func TestRunUsageErrors(t *testing.T) {
	cases := [][]string{
		nil,
		{"unknown"},
		{"ask"},
		{"ask", "   "},
	}
	for _, args := range cases {
		var stderr bytes.Buffer
		if code := Run(context.Background(), args, Options{Stderr: &stderr}); code != 2 {
			t.Fatalf("Run(%v) = %d, want 2", args, code)
		}
		if !strings.Contains(stderr.String(), "usage: sqlscout") {
			t.Fatalf("Run(%v) stderr = %s", args, stderr.String())
		}
	}
}
