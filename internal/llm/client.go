package llm

import (
	"context"
)

// Client invokes a language model. Kept as an interface so validators and
// the agent can be tested without real API calls.
type Client interface {
	Invoke(ctx context.Context, request Request) (*Response, error)
	InvokeWithRetry(ctx context.Context, request Request) (*Response, error)
}
