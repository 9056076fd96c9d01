package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dvoicu/deploy-assistant/internal/llm"
	"github.com/rs/zerolog"
)

// ErrUnavailable wraps any failure of the underlying model invocation.
// The mediator surfaces it as a service error, distinct from a guardrail
// block.
var ErrUnavailable = errors.New("agent unavailable")

const systemPrompt = `You are a deployment assistant.
Explain environment setup, FastAPI backend deployment, and Streamlit UI integration clearly.
Keep answers concise and cite sources when useful.`

// Agent produces a draft reply for a user message. With no LLM client
// configured it runs in offline mode and answers from a small tip table
// instead of erroring, so the service stays usable without API keys.
type Agent struct {
	client      llm.Client
	maxTokens   int
	temperature float64
	logger      *zerolog.Logger
}

func New(client llm.Client, logger *zerolog.Logger) *Agent {
	return &Agent{
		client:      client,
		maxTokens:   1024,
		temperature: 0.0,
		logger:      logger,
	}
}

func (a *Agent) GenerateReply(ctx context.Context, sessionID string, userText string) (string, error) {
	if a.client == nil {
		reply := offlineReply(userText)
		a.logger.Debug().Str("session_id", sessionID).Msg("offline mode reply")
		return reply, nil
	}

	resp, err := a.client.InvokeWithRetry(ctx, llm.Request{
		System:      systemPrompt,
		Prompt:      userText,
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	reply := strings.TrimSpace(resp.Content)
	if reply == "" {
		return "", fmt.Errorf("%w: model returned an empty completion", ErrUnavailable)
	}

	a.logger.Debug().
		Str("session_id", sessionID).
		Str("stop_reason", resp.StopReason).
		Msg("agent reply generated")

	return reply, nil
}

func offlineReply(message string) string {
	text := strings.ToLower(message)
	switch {
	case strings.Contains(text, "streamlit"):
		return "Streamlit reruns your script after every click. Keep anything you need in st.session_state."
	case strings.Contains(text, "fastapi"):
		return "FastAPI ships with automatic docs at /docs. Try them once the server is running!"
	case strings.Contains(text, "deploy"):
		return "Deploy the API first, then point your Streamlit app to the live URL to share it."
	default:
		return "I am in offline mode. Ask about Streamlit, FastAPI, or deployment to see directed tips."
	}
}
