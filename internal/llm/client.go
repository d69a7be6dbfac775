package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrInvalidJSON is returned when a provider responded without any content.
var ErrInvalidJSON = errors.New("llm: empty or invalid model response")

// PermanentError wraps a provider error that must not be retried
// (authentication failures, malformed requests).
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return fmt.Sprintf("llm permanent: %v", e.Err) }
func (e *PermanentError) Unwrap() error { return e.Err }

// Client is the generation-service interface. The response is free-form
// text expected to contain JSON; callers are responsible for resilient
// extraction and never assume strict validity.
type Client interface {
	Name() string
	Close() error
	GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error)
}

// Middleware wraps a Client with a cross-cutting concern.
type Middleware func(Client) Client

// Wrap applies middlewares so the first listed is outermost.
func Wrap(c Client, mws ...Middleware) Client {
	for i := len(mws) - 1; i >= 0; i-- {
		c = mws[i](c)
	}
	return c
}
