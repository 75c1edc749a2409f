// Package report renders agent results for terminal output.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sqlscout/sqlscout/internal/agent"
)

const DefaultDisplayRows = 10

// Writer renders session results to a terminal-friendly text form. DisplayRows
// caps the rows printed; the full result set is untouched.
type Writer struct {
	Out         io.Writer
	DisplayRows int
}

func New(out io.Writer) *Writer {
	return &Writer{Out: out, DisplayRows: DefaultDisplayRows}
}

// Render writes the question banner, the attempt trace, and either the result
// table or the failure summary.
func (w *Writer) Render(result *agent.Result) error {
	limit := w.DisplayRows
	if limit < 1 {
		limit = DefaultDisplayRows
	}

	var sb strings.Builder
	banner := strings.Repeat("=", 60)
	sb.WriteString(banner + "\n")
	sb.WriteString(fmt.Sprintf("Question: %s\n", result.Question))
	sb.WriteString(banner + "\n")

	for _, attempt := range result.Attempts {
		sb.WriteString(fmt.Sprintf("Attempt %d: %s", attempt.Index, attempt.Verdict))
		if attempt.Failure != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", attempt.Failure))
		}
		sb.WriteString("\n")
	}

	if result.State != agent.StateSucceeded {
		sb.WriteString(fmt.Sprintf("\nNo answer after %d attempt(s).\n", len(result.Attempts)))
		if last := lastFailure(result); last != "" {
			sb.WriteString(fmt.Sprintf("Last error: %s\n", last))
		}
		_, err := io.WriteString(w.Out, sb.String())
		return err
	}

	sb.WriteString(fmt.Sprintf("\nSQL: %s\n\n", result.SQL))
	sb.WriteString(strings.Join(result.Columns, " | ") + "\n")
	sb.WriteString(strings.Repeat("-", len(strings.Join(result.Columns, " | "))) + "\n")

	shown := len(result.Rows)
	if shown > limit {
		shown = limit
	}
	for _, row := range result.Rows[:shown] {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%v", cell)
		}
		sb.WriteString(strings.Join(cells, " | ") + "\n")
	}
	if remaining := len(result.Rows) - shown; remaining > 0 {
		sb.WriteString(fmt.Sprintf("... (%d more rows)\n", remaining))
	}
	sb.WriteString(fmt.Sprintf("\n%d row(s) in %s\n", len(result.Rows), result.Duration.Round(time.Millisecond)))

	_, err := io.WriteString(w.Out, sb.String())
	return err
}

func lastFailure(result *agent.Result) string {
	for i := len(result.Attempts) - 1; i >= 0; i-- {
		if result.Attempts[i].Failure != "" {
			return result.Attempts[i].Failure
		}
	}
	return ""
}
