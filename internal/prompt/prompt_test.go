package prompt

import (
	"strings"
	"testing"

	"github.com/sqlscout/sqlscout/internal/schema"
)

func newTestBuilder() *Builder {
	return NewBuilder(schema.Default(), nil)
}

func TestBuildInitialPrompt(t *testing.T) {
	got := newTestBuilder().Build("Show me all users from the North region", nil)

	for _, fragment := range []string{
		"Database Schema:",
		"Example 1:",
		"Example 2:",
		"Rules: Use only these tables and columns. Return ONLY valid SQL.",
		"Question: Show me all users from the North region\nSQL:",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("prompt missing %q in:\n%s", fragment, got)
		}
	}
	if strings.Contains(got, "Bad SQL:") {
		t.Fatal("initial prompt must not contain a feedback section")
	}
}

func TestBuildRetryPromptCarriesLiteralError(t *testing.T) {
	feedback := &Feedback{
		SQL:    "SELECT;",
		Reason: `SQL Syntax Error: syntax error at or near ";"`,
	}
	got := newTestBuilder().Build("Show me all users from the North region", feedback)

	if !strings.Contains(got, "Bad SQL: SELECT;") {
		t.Fatalf("prompt missing prior candidate:\n%s", got)
	}
	if !strings.Contains(got, feedback.Reason) {
		t.Fatalf("prompt missing literal error text:\n%s", got)
	}
	if !strings.Contains(got, "Fixed SQL:") {
		t.Fatalf("prompt missing fix instruction:\n%s", got)
	}
}

func TestBuildRetryPromptNotesMissingCandidate(t *testing.T) {
	feedback := &Feedback{Reason: "empty or unparseable output"}
	got := newTestBuilder().Build("anything", feedback)

	if !strings.Contains(got, "(no SQL statement could be extracted from the previous output)") {
		t.Fatalf("prompt missing extraction note:\n%s", got)
	}
	if !strings.Contains(got, "Error: empty or unparseable output") {
		t.Fatalf("prompt missing extraction error:\n%s", got)
	}
}

func TestBuilderUsesProvidedExamples(t *testing.T) {
	builder := NewBuilder(schema.Default(), []Example{
		{Question: "count orders", SQL: "SELECT COUNT(*) FROM orders;"},
	})
	got := builder.Build("q", nil)
	if !strings.Contains(got, "SELECT COUNT(*) FROM orders;") {
		t.Fatalf("prompt missing custom example:\n%s", got)
	}
	if strings.Contains(got, "Example 2:") {
		t.Fatal("only one example was configured")
	}
}
