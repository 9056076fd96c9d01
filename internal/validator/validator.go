package validator

import (
	"context"
	"errors"

	"github.com/dvoicu/deploy-assistant/internal/models"
)

// ErrConfiguration marks a validator that could not run at all, for
// example an unreachable classifier backend. Callers must treat it as a
// service error, never as a pass.
var ErrConfiguration = errors.New("validator configuration error")

// Validator is a single pass/fail check against a text. A nil Violation
// means the check passed. A non-nil error means the check could not run;
// validation failures are reported through the Violation, not the error.
type Validator interface {
	Name() string
	Category() models.Category
	Check(ctx context.Context, text string) (*models.Violation, error)
}
