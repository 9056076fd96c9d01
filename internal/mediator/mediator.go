package mediator

import (
	"context"
	"fmt"
	"time"

	"github.com/dvoicu/deploy-assistant/internal/models"
	"github.com/rs/zerolog"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/dvoicu/deploy-assistant/internal/mediator Evaluator,Agent,Monitor

// Evaluator runs the guardrail validator set for one direction.
type Evaluator interface {
	Evaluate(ctx context.Context, text string, direction models.Direction) (models.Outcome, error)
}

// Agent produces a draft reply for a user message.
type Agent interface {
	GenerateReply(ctx context.Context, sessionID string, userText string) (string, error)
}

// Monitor receives the audit record of each completed exchange.
type Monitor interface {
	Record(ctx context.Context, exchange models.Exchange)
}

// Mediator sequences one chat exchange: input check, agent, output check.
// Either check failing short-circuits to a canned substitution; rejected
// input never reaches the agent, and a rejected draft never reaches the
// user. The mediator does no I/O of its own beyond its collaborators.
type Mediator struct {
	evaluator     Evaluator
	agent         Agent
	monitor       Monitor
	substitutions map[models.Category]string
	logger        *zerolog.Logger
}

func New(
	evaluator Evaluator,
	agent Agent,
	monitor Monitor,
	substitutions map[models.Category]string,
	logger *zerolog.Logger,
) *Mediator {
	return &Mediator{
		evaluator:     evaluator,
		agent:         agent,
		monitor:       monitor,
		substitutions: substitutions,
		logger:        logger,
	}
}

func (m *Mediator) ProcessMessage(ctx context.Context, sessionID string, userText string) (models.ChatResponse, error) {
	inputOutcome, err := m.evaluator.Evaluate(ctx, userText, models.DirectionInput)
	if err != nil {
		return models.ChatResponse{}, err
	}

	if !inputOutcome.Passed {
		// Rejected input is never sent to the agent.
		response := m.blockedResponse(sessionID, inputOutcome, false)
		m.record(ctx, sessionID, userText, response, inputOutcome)
		return response, nil
	}

	if err := ctx.Err(); err != nil {
		return models.ChatResponse{}, err
	}

	draft, err := m.agent.GenerateReply(ctx, sessionID, userText)
	if err != nil {
		return models.ChatResponse{}, fmt.Errorf("generate reply: %w", err)
	}

	outputOutcome, err := m.evaluator.Evaluate(ctx, draft, models.DirectionOutput)
	if err != nil {
		return models.ChatResponse{}, err
	}

	if !outputOutcome.Passed {
		// The draft is discarded; only the monitor ever sees it, via the
		// output outcome, for audit.
		response := m.blockedResponse(sessionID, outputOutcome, true)
		m.record(ctx, sessionID, userText, response, inputOutcome, outputOutcome)
		return response, nil
	}

	response := models.ChatResponse{
		Reply:     draft,
		Source:    models.SourceAgent,
		Monitored: true,
		SessionID: sessionID,
	}
	m.record(ctx, sessionID, userText, response, inputOutcome, outputOutcome)

	return response, nil
}

func (m *Mediator) blockedResponse(sessionID string, outcome models.Outcome, monitored bool) models.ChatResponse {
	violation := outcome.FirstBlocking()

	m.logger.Info().
		Str("session_id", sessionID).
		Str("direction", string(outcome.Direction)).
		Str("category", string(violation.Category)).
		Msg("exchange blocked")

	return models.ChatResponse{
		Reply:     m.substitutions[violation.Category],
		Source:    models.GuardrailSource(violation.Category),
		Monitored: monitored,
		SessionID: sessionID,
	}
}

func (m *Mediator) record(ctx context.Context, sessionID string, userText string, response models.ChatResponse, outcomes ...models.Outcome) {
	m.monitor.Record(ctx, models.Exchange{
		SessionID: sessionID,
		UserText:  userText,
		ReplyText: response.Reply,
		Monitored: response.Monitored,
		Outcomes:  outcomes,
		CreatedAt: time.Now(),
	})
}
