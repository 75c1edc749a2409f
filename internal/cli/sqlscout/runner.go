// Package sqlscout implements the interactive command-line front end for the
// SQL agent.
package sqlscout

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/sqlscout/sqlscout/internal/agent"
	"github.com/sqlscout/sqlscout/internal/report"
	"github.com/sqlscout/sqlscout/internal/schema"
)

// AskFunc answers one question end to end. Injectable so the runner can be
// tested without a database or a model service.
type AskFunc func(ctx context.Context, question string) (*agent.Result, error)

type Options struct {
	Ask         AskFunc
	Schema      schema.Descriptor
	DisplayRows int
	Stdout      io.Writer
	Stderr      io.Writer
}

// Run parses args and dispatches the command. Exit codes: 0 on success, 1 on
// an answer failure or runtime error, 2 on usage errors.
func Run(ctx context.Context, args []string, defaults Options) int {
	stdout := defaults.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	stderr := defaults.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	fs := flag.NewFlagSet("sqlscout", flag.ContinueOnError)
	fs.SetOutput(stderr)
	rows := fs.Int("rows", displayRowsOr(defaults.DisplayRows, report.DefaultDisplayRows), "maximum result rows to print")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() < 1 {
		writeUsage(stderr)
		return 2
	}

	command := strings.TrimSpace(fs.Arg(0))
	switch command {
	case "schema":
		_, _ = fmt.Fprintln(stdout, defaults.Schema.ToText())
		return 0
	case "ask":
		question := strings.TrimSpace(strings.Join(fs.Args()[1:], " "))
		if question == "" {
			_, _ = fmt.Fprintln(stderr, "ask requires a question")
			writeUsage(stderr)
			return 2
		}
		return runAsk(ctx, defaults.Ask, question, stdout, stderr, *rows)
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", command)
		writeUsage(stderr)
		return 2
	}
}

func runAsk(ctx context.Context, ask AskFunc, question string, stdout, stderr io.Writer, rows int) int {
	if ask == nil {
		_, _ = fmt.Fprintln(stderr, "agent is not configured")
		return 1
	}

	result, err := ask(ctx, question)
	writer := &report.Writer{Out: stdout, DisplayRows: rows}
	if result != nil {
		if renderErr := writer.Render(result); renderErr != nil {
			_, _ = fmt.Fprintf(stderr, "render failed: %v\n", renderErr)
			return 1
		}
	}
	if err == nil {
		return 0
	}
	// Exhaustion is already fully told by the rendered trace.
	if !errors.Is(err, agent.ErrRetriesExhausted) {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
	}
	return 1
}

func writeUsage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "usage: sqlscout [flags] <command>")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "commands:")
	_, _ = fmt.Fprintln(w, "  ask <question>   answer a natural-language question with SQL")
	_, _ = fmt.Fprintln(w, "  schema           print the database schema the agent queries")
	_, _ = fmt.Fprintln(w, "")
	_, _ = fmt.Fprintln(w, "flags:")
	_, _ = fmt.Fprintln(w, "  -rows N          maximum result rows to print")
}

func displayRowsOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}
