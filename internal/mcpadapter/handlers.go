package mcpadapter

import (
	"context"
	"fmt"

	"github.com/dvoicu/deploy-assistant/internal/guardrail"
	"github.com/dvoicu/deploy-assistant/internal/mediator"
	"github.com/dvoicu/deploy-assistant/internal/models"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CheckTextInput is the MCP tool input schema for a direct guardrail check.
type CheckTextInput struct {
	Text      string `json:"text" jsonschema:"text to run through the guardrails"`
	Direction string `json:"direction,omitempty" jsonschema:"which validator set to apply: input (default) or output"`
}

// GuardedChatInput is the MCP tool input schema for a full chat round trip.
type GuardedChatInput struct {
	Message   string `json:"message" jsonschema:"user message"`
	SessionID string `json:"session_id,omitempty" jsonschema:"optional session identifier; generated when absent"`
}

// NewCheckTextHandler returns a tool handler that runs the guardrail
// evaluator directly, without invoking the agent.
func NewCheckTextHandler(eval *guardrail.Evaluator) func(context.Context, *mcp.CallToolRequest, CheckTextInput) (*mcp.CallToolResult, models.Outcome, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CheckTextInput) (*mcp.CallToolResult, models.Outcome, error) {
		direction := models.Direction(input.Direction)
		switch direction {
		case models.DirectionInput, models.DirectionOutput:
		case "":
			direction = models.DirectionInput
		default:
			return nil, models.Outcome{}, fmt.Errorf("invalid direction %q", input.Direction)
		}

		outcome, err := eval.Evaluate(ctx, input.Text, direction)
		return nil, outcome, err
	}
}

// NewGuardedChatHandler returns a tool handler that runs the full
// mediator pipeline: input check, agent, output check.
func NewGuardedChatHandler(med *mediator.Mediator) func(context.Context, *mcp.CallToolRequest, GuardedChatInput) (*mcp.CallToolResult, models.ChatResponse, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GuardedChatInput) (*mcp.CallToolResult, models.ChatResponse, error) {
		sessionID := input.SessionID
		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		response, err := med.ProcessMessage(ctx, sessionID, input.Message)
		return nil, response, err
	}
}
