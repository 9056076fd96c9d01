package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvoicu/deploy-assistant/internal/models"
)

// ReadingTimeValidator estimates how long a text takes to read from its
// word count and fails when the estimate exceeds the configured ceiling.
// Both the threshold and the estimate appear in the detail to two decimal
// places so failures are reproducible.
type ReadingTimeValidator struct {
	maxMinutes     float64
	wordsPerMinute int
	severity       models.Severity
}

func NewReadingTimeValidator(maxMinutes float64, wordsPerMinute int, severity models.Severity) *ReadingTimeValidator {
	if wordsPerMinute <= 0 {
		wordsPerMinute = 200
	}
	return &ReadingTimeValidator{
		maxMinutes:     maxMinutes,
		wordsPerMinute: wordsPerMinute,
		severity:       severity,
	}
}

func (v *ReadingTimeValidator) Name() string {
	return "reading-time"
}

func (v *ReadingTimeValidator) Category() models.Category {
	return models.CategoryReadingTime
}

func (v *ReadingTimeValidator) Check(_ context.Context, text string) (*models.Violation, error) {
	words := len(strings.Fields(text))
	estimate := float64(words) / float64(v.wordsPerMinute)

	if estimate <= v.maxMinutes {
		return nil, nil
	}

	return &models.Violation{
		Validator: v.Name(),
		Category:  v.Category(),
		Detail: fmt.Sprintf("estimated reading time %.2f min exceeds the %.2f min limit (%d words at %d wpm)",
			estimate, v.maxMinutes, words, v.wordsPerMinute),
		Severity: v.severity,
	}, nil
}
