// Package validate gates candidate SQL before execution: a forbidden-keyword
// scan first, then a plan-only syntax check against the engine. A statement
// runs for real only after both checks pass.
package validate

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// ForbiddenKeywords is the fixed denylist. A match anywhere in the statement
// blocks it, including inside subqueries or comments.
var ForbiddenKeywords = []string{"DROP", "DELETE", "UPDATE", "INSERT", "ALTER", "TRUNCATE", "CREATE"}

// Word-boundary matching so that identifiers such as a `created` column or a
// `deleted_at` alias never trigger the denylist.
var denylistRe = regexp.MustCompile(`(?i)\b(` + strings.Join(ForbiddenKeywords, "|") + `)\b`)

type Kind int

const (
	KindValid Kind = iota
	KindBlocked
	KindSyntaxError
)

func (k Kind) String() string {
	switch k {
	case KindValid:
		return "valid"
	case KindBlocked:
		return "blocked"
	case KindSyntaxError:
		return "syntax_error"
	default:
		return "unknown"
	}
}

// Outcome is the validation verdict: Valid, Blocked(keyword), or
// SyntaxError(message). Message holds the engine's literal error text.
type Outcome struct {
	Kind    Kind
	Keyword string
	Message string
}

func (o Outcome) Valid() bool {
	return o.Kind == KindValid
}

// Reason renders the feedback line fed back to the model on retry. The
// engine's error text is embedded verbatim.
func (o Outcome) Reason() string {
	switch o.Kind {
	case KindBlocked:
		return fmt.Sprintf("Security Error: Forbidden keyword '%s' detected. Only SELECT queries allowed.", o.Keyword)
	case KindSyntaxError:
		return fmt.Sprintf("SQL Syntax Error: %s", o.Message)
	default:
		return ""
	}
}

// Planner is the engine's plan-only execution mode.
type Planner interface {
	Plan(ctx context.Context, statement string) error
}

type Validator struct {
	planner Planner
}

func New(planner Planner) *Validator {
	return &Validator{planner: planner}
}

// Check runs the two ordered checks. The keyword gate is cheapest and runs
// first, short-circuiting the plan check on a match.
func (v *Validator) Check(ctx context.Context, statement string) Outcome {
	if match := denylistRe.FindStringSubmatch(statement); match != nil {
		return Outcome{Kind: KindBlocked, Keyword: strings.ToUpper(match[1])}
	}

	if err := v.planner.Plan(ctx, statement); err != nil {
		return Outcome{Kind: KindSyntaxError, Message: err.Error()}
	}

	return Outcome{Kind: KindValid}
}
