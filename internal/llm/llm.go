// Package llm reaches the locally hosted language model. The model is an
// opaque text-completion service: a prompt goes in, free text comes out.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable marks transport or service failures reaching the model.
// These are terminal for the whole session, never retried per attempt.
var ErrUnavailable = errors.New("inference service unavailable")

type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
