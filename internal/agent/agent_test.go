package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dvoicu/deploy-assistant/internal/llm"
	"github.com/rs/zerolog"
)

type stubClient struct {
	response *llm.Response
	err      error
}

func (s *stubClient) Invoke(_ context.Context, _ llm.Request) (*llm.Response, error) {
	return s.response, s.err
}

func (s *stubClient) InvokeWithRetry(_ context.Context, _ llm.Request) (*llm.Response, error) {
	return s.response, s.err
}

func TestGenerateReply_OfflineMode(t *testing.T) {
	logger := zerolog.Nop()
	a := New(nil, &logger)

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "streamlit tip",
			message: "How do I keep state in Streamlit?",
			want:    "st.session_state",
		},
		{
			name:    "fastapi tip",
			message: "Where are the FastAPI docs?",
			want:    "/docs",
		},
		{
			name:    "deploy tip",
			message: "how should I deploy this?",
			want:    "Deploy the API first",
		},
		{
			name:    "fallback tip",
			message: "hello there",
			want:    "offline mode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := a.GenerateReply(context.Background(), "session-1", tt.message)
			if err != nil {
				t.Fatalf("offline mode must never error, got %v", err)
			}
			if !strings.Contains(reply, tt.want) {
				t.Errorf("expected reply containing %q, got %q", tt.want, reply)
			}
		})
	}
}

func TestGenerateReply_ClientSuccess(t *testing.T) {
	logger := zerolog.Nop()
	a := New(&stubClient{
		response: &llm.Response{Content: "  Use uvicorn with a process manager.  ", StopReason: "end_turn"},
	}, &logger)

	reply, err := a.GenerateReply(context.Background(), "session-1", "how do I run fastapi in production?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "Use uvicorn with a process manager." {
		t.Errorf("expected trimmed model reply, got %q", reply)
	}
}

func TestGenerateReply_ClientError(t *testing.T) {
	logger := zerolog.Nop()
	a := New(&stubClient{err: errors.New("throttled")}, &logger)

	_, err := a.GenerateReply(context.Background(), "session-1", "hello")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestGenerateReply_EmptyCompletion(t *testing.T) {
	logger := zerolog.Nop()
	a := New(&stubClient{response: &llm.Response{Content: "   "}}, &logger)

	_, err := a.GenerateReply(context.Background(), "session-1", "hello")
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable for empty completion, got %v", err)
	}
}
