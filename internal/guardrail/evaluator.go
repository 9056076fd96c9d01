package guardrail

import (
	"context"
	"fmt"

	"github.com/dvoicu/deploy-assistant/internal/models"
	"github.com/dvoicu/deploy-assistant/internal/validator"
	"github.com/rs/zerolog"
)

// Evaluator runs the validator set for one direction against a text and
// aggregates the outcome. Every applicable validator always runs, even
// after a failure: the first blocking violation drives the user-facing
// substitution, but the audit trail carries all of them.
type Evaluator struct {
	set    *validator.Set
	logger *zerolog.Logger
}

func NewEvaluator(set *validator.Set, logger *zerolog.Logger) *Evaluator {
	return &Evaluator{
		set:    set,
		logger: logger,
	}
}

func (e *Evaluator) Evaluate(ctx context.Context, text string, direction models.Direction) (models.Outcome, error) {
	outcome := models.Outcome{
		Direction: direction,
		Text:      text,
		Passed:    true,
	}

	for _, v := range e.set.For(direction) {
		violation, err := v.Check(ctx, text)
		if err != nil {
			// Inability to check is a configuration error, not a pass.
			return models.Outcome{}, fmt.Errorf("validator %s: %w", v.Name(), err)
		}

		if violation == nil {
			continue
		}

		outcome.Violations = append(outcome.Violations, *violation)
		if violation.Severity == models.SeverityBlocking {
			outcome.Passed = false
		}

		e.logger.Warn().
			Str("validator", violation.Validator).
			Str("category", string(violation.Category)).
			Str("direction", string(direction)).
			Str("severity", string(violation.Severity)).
			Str("detail", violation.Detail).
			Msg("guardrail triggered")
	}

	return outcome, nil
}
