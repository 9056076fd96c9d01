package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dvoicu/deploy-assistant/internal/agent"
	"github.com/dvoicu/deploy-assistant/internal/mediator"
	"github.com/dvoicu/deploy-assistant/internal/mediator/mocks"
	"github.com/dvoicu/deploy-assistant/internal/models"
	"github.com/dvoicu/deploy-assistant/internal/validator"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"
)

var testSubstitutions = map[models.Category]string{
	models.CategoryTopic:       "I can only help with application deployment questions.",
	models.CategoryReadingTime: "The generated answer was too long to read.",
	models.CategoryDarkWeb:     "I cannot help with that request.",
}

func newMediator(t *testing.T) (*mediator.Mediator, *mocks.MockEvaluator, *mocks.MockAgent, *mocks.MockMonitor) {
	t.Helper()

	ctrl := gomock.NewController(t)
	evaluator := mocks.NewMockEvaluator(ctrl)
	llmAgent := mocks.NewMockAgent(ctrl)
	monitor := mocks.NewMockMonitor(ctrl)
	logger := zerolog.Nop()

	m := mediator.New(evaluator, llmAgent, monitor, testSubstitutions, &logger)
	return m, evaluator, llmAgent, monitor
}

func passedOutcome(direction models.Direction, text string) models.Outcome {
	return models.Outcome{Direction: direction, Text: text, Passed: true}
}

func blockedOutcome(direction models.Direction, text string, category models.Category) models.Outcome {
	return models.Outcome{
		Direction: direction,
		Text:      text,
		Passed:    false,
		Violations: []models.Violation{{
			Validator: string(category),
			Category:  category,
			Detail:    "triggered",
			Severity:  models.SeverityBlocking,
		}},
	}
}

func TestProcessMessage_Delivered(t *testing.T) {
	m, evaluator, llmAgent, monitor := newMediator(t)
	ctx := context.Background()

	evaluator.EXPECT().
		Evaluate(ctx, "how do I deploy fastapi?", models.DirectionInput).
		Return(passedOutcome(models.DirectionInput, "how do I deploy fastapi?"), nil)
	llmAgent.EXPECT().
		GenerateReply(ctx, "session-1", "how do I deploy fastapi?").
		Return("Run uvicorn behind a reverse proxy.", nil)
	evaluator.EXPECT().
		Evaluate(ctx, "Run uvicorn behind a reverse proxy.", models.DirectionOutput).
		Return(passedOutcome(models.DirectionOutput, "Run uvicorn behind a reverse proxy."), nil)
	monitor.EXPECT().
		Record(ctx, gomock.Any()).
		Do(func(_ context.Context, exchange models.Exchange) {
			if !exchange.Monitored {
				t.Error("delivered exchanges must be monitored")
			}
			if len(exchange.Outcomes) != 2 {
				t.Errorf("expected both outcomes recorded, got %d", len(exchange.Outcomes))
			}
		})

	response, err := m.ProcessMessage(ctx, "session-1", "how do I deploy fastapi?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Reply != "Run uvicorn behind a reverse proxy." {
		t.Errorf("reply must be delivered verbatim, got %q", response.Reply)
	}
	if response.Source != models.SourceAgent {
		t.Errorf("expected source %q, got %q", models.SourceAgent, response.Source)
	}
	if !response.Monitored {
		t.Error("expected monitored response")
	}
	if response.SessionID != "session-1" {
		t.Errorf("expected session id preserved, got %q", response.SessionID)
	}
}

func TestProcessMessage_InputBlockedAgentNeverCalled(t *testing.T) {
	m, evaluator, llmAgent, monitor := newMediator(t)
	ctx := context.Background()

	evaluator.EXPECT().
		Evaluate(ctx, "who won the world cup?", models.DirectionInput).
		Return(blockedOutcome(models.DirectionInput, "who won the world cup?", models.CategoryTopic), nil)
	llmAgent.EXPECT().GenerateReply(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	monitor.EXPECT().
		Record(ctx, gomock.Any()).
		Do(func(_ context.Context, exchange models.Exchange) {
			if exchange.Monitored {
				t.Error("input-blocked exchanges never reach the agent and must not be monitored")
			}
			if len(exchange.Outcomes) != 1 {
				t.Errorf("expected only the input outcome recorded, got %d", len(exchange.Outcomes))
			}
		})

	response, err := m.ProcessMessage(ctx, "session-2", "who won the world cup?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Reply != testSubstitutions[models.CategoryTopic] {
		t.Errorf("expected topic substitution, got %q", response.Reply)
	}
	if response.Source != models.GuardrailSource(models.CategoryTopic) {
		t.Errorf("expected source guardrail:topic, got %q", response.Source)
	}
	if response.Monitored {
		t.Error("expected monitored=false when input is blocked")
	}
}

func TestProcessMessage_OutputBlockedDraftDiscarded(t *testing.T) {
	m, evaluator, llmAgent, monitor := newMediator(t)
	ctx := context.Background()

	const draft = "a very long generated answer"

	evaluator.EXPECT().
		Evaluate(ctx, "explain streamlit deployment", models.DirectionInput).
		Return(passedOutcome(models.DirectionInput, "explain streamlit deployment"), nil)
	llmAgent.EXPECT().
		GenerateReply(ctx, "session-3", "explain streamlit deployment").
		Return(draft, nil)
	evaluator.EXPECT().
		Evaluate(ctx, draft, models.DirectionOutput).
		Return(blockedOutcome(models.DirectionOutput, draft, models.CategoryReadingTime), nil)
	monitor.EXPECT().
		Record(ctx, gomock.Any()).
		Do(func(_ context.Context, exchange models.Exchange) {
			if !exchange.Monitored {
				t.Error("output-blocked exchanges did reach the agent and must be monitored")
			}
			if len(exchange.Outcomes) != 2 {
				t.Errorf("expected both outcomes recorded, got %d", len(exchange.Outcomes))
			}
		})

	response, err := m.ProcessMessage(ctx, "session-3", "explain streamlit deployment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Reply == draft {
		t.Error("rejected draft must never be delivered")
	}
	if response.Reply != testSubstitutions[models.CategoryReadingTime] {
		t.Errorf("expected reading time substitution, got %q", response.Reply)
	}
	if response.Source != models.GuardrailSource(models.CategoryReadingTime) {
		t.Errorf("expected source guardrail:reading_time, got %q", response.Source)
	}
	if !response.Monitored {
		t.Error("expected monitored=true when output is blocked")
	}
}

func TestProcessMessage_AgentError(t *testing.T) {
	m, evaluator, llmAgent, monitor := newMediator(t)
	ctx := context.Background()

	evaluator.EXPECT().
		Evaluate(ctx, "hello", models.DirectionInput).
		Return(passedOutcome(models.DirectionInput, "hello"), nil)
	llmAgent.EXPECT().
		GenerateReply(ctx, "session-4", "hello").
		Return("", agent.ErrUnavailable)
	monitor.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

	_, err := m.ProcessMessage(ctx, "session-4", "hello")
	if err == nil {
		t.Fatal("expected error when the agent fails")
	}
	if !errors.Is(err, agent.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestProcessMessage_InputEvaluationError(t *testing.T) {
	m, evaluator, llmAgent, monitor := newMediator(t)
	ctx := context.Background()

	evaluator.EXPECT().
		Evaluate(ctx, "hello", models.DirectionInput).
		Return(models.Outcome{}, validator.ErrConfiguration)
	llmAgent.EXPECT().GenerateReply(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	monitor.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

	_, err := m.ProcessMessage(ctx, "session-5", "hello")
	if !errors.Is(err, validator.ErrConfiguration) {
		t.Errorf("expected ErrConfiguration to propagate, got %v", err)
	}
}

func TestProcessMessage_ContextCancelled(t *testing.T) {
	m, evaluator, llmAgent, monitor := newMediator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	evaluator.EXPECT().
		Evaluate(ctx, "hello", models.DirectionInput).
		Return(passedOutcome(models.DirectionInput, "hello"), nil)
	llmAgent.EXPECT().GenerateReply(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	monitor.EXPECT().Record(gomock.Any(), gomock.Any()).Times(0)

	_, err := m.ProcessMessage(ctx, "session-6", "hello")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
