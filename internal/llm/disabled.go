package llm

import (
	"context"
	"errors"
)

// ErrNoProvider is returned by Disabled when no completion provider is
// configured.
var ErrNoProvider = errors.New("llm: no completion provider configured")

// Disabled is a Client for deployments with no provider credentials. Every
// call fails, which the chat handler hides behind its canned reply, and
// /api/ping reports the missing key.
type Disabled struct{}

func (Disabled) Complete(ctx context.Context, req Request) (Response, error) {
	return Response{}, ErrNoProvider
}

var _ Client = Disabled{}
