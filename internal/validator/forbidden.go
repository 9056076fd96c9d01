package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvoicu/deploy-assistant/internal/models"
)

// ForbiddenContentValidator matches the text against a fixed list of
// disallowed terms. Matching is case-insensitive substring matching and
// fails on the first hit.
type ForbiddenContentValidator struct {
	terms    []string
	severity models.Severity
}

func NewForbiddenContentValidator(terms []string, severity models.Severity) *ForbiddenContentValidator {
	lowered := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term != "" {
			lowered = append(lowered, term)
		}
	}
	return &ForbiddenContentValidator{
		terms:    lowered,
		severity: severity,
	}
}

func (v *ForbiddenContentValidator) Name() string {
	return "forbidden-content"
}

func (v *ForbiddenContentValidator) Category() models.Category {
	return models.CategoryDarkWeb
}

func (v *ForbiddenContentValidator) Check(_ context.Context, text string) (*models.Violation, error) {
	lowered := strings.ToLower(text)

	for _, term := range v.terms {
		if strings.Contains(lowered, term) {
			return &models.Violation{
				Validator: v.Name(),
				Category:  v.Category(),
				Detail:    fmt.Sprintf("dark web-related content: matched forbidden term %q", term),
				Severity:  v.severity,
			}, nil
		}
	}

	return nil, nil
}
