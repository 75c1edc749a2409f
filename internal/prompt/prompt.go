// Package prompt composes completion requests for the SQL agent.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sqlscout/sqlscout/internal/schema"
)

// Example is one worked question/SQL pair shown to the model.
type Example struct {
	Question string
	SQL      string
}

// DefaultExamples returns the fixed few-shot set: one plain filter and one
// join with aggregation, covering both query shapes the model must reproduce.
func DefaultExamples() []Example {
	return []Example{
		{
			Question: "Show all users from the North region",
			SQL:      "SELECT * FROM users WHERE region = 'North';",
		},
		{
			Question: "Get total quantity sold for each product",
			SQL:      "SELECT p.product_name, SUM(o.quantity) AS total_sold FROM products p JOIN orders o ON p.product_id = o.product_id GROUP BY p.product_id, p.product_name;",
		},
	}
}

// Feedback carries the prior attempt's candidate and the literal error text
// into the next prompt. SQL is empty when no statement could be extracted.
type Feedback struct {
	SQL    string
	Reason string
}

// Builder renders prompts from an immutable schema block and example set.
// Construction is pure; Build never fails.
type Builder struct {
	schemaText string
	examples   []Example
}

func NewBuilder(descriptor schema.Descriptor, examples []Example) *Builder {
	if len(examples) == 0 {
		examples = DefaultExamples()
	}
	return &Builder{
		schemaText: descriptor.ToText(),
		examples:   examples,
	}
}

// Build produces the full completion request. A nil feedback yields the
// initial generation prompt; otherwise the prior candidate and its error are
// embedded verbatim with an instruction to fix exactly that problem.
func (b *Builder) Build(question string, feedback *Feedback) string {
	var sb strings.Builder
	sb.WriteString(b.context())
	sb.WriteString("\n\n")

	if feedback == nil {
		sb.WriteString(fmt.Sprintf("Question: %s\nSQL:", strings.TrimSpace(question)))
		return sb.String()
	}

	candidate := strings.TrimSpace(feedback.SQL)
	if candidate == "" {
		candidate = "(no SQL statement could be extracted from the previous output)"
	}
	sb.WriteString("The SQL query below has an error. Fix exactly this problem.\n\n")
	sb.WriteString(fmt.Sprintf("Bad SQL: %s\n", candidate))
	sb.WriteString(fmt.Sprintf("Error: %s\n\n", feedback.Reason))
	sb.WriteString(fmt.Sprintf("Question: %s\nFixed SQL:", strings.TrimSpace(question)))
	return sb.String()
}

func (b *Builder) context() string {
	var sb strings.Builder
	sb.WriteString(b.schemaText)
	sb.WriteString("\n")
	for i, example := range b.examples {
		sb.WriteString(fmt.Sprintf("\nExample %d:\nQuestion: %s\nSQL: %s\n", i+1, example.Question, example.SQL))
	}
	sb.WriteString("\nRules: Use only these tables and columns. Return ONLY valid SQL.")
	return sb.String()
}
