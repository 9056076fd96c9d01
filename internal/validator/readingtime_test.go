package validator

import (
	"context"
	"strings"
	"testing"

	"github.com/dvoicu/deploy-assistant/internal/models"
)

func TestReadingTimeValidator_Check(t *testing.T) {
	tests := []struct {
		name            string
		maxMinutes      float64
		wordsPerMinute  int
		words           int
		expectViolation bool
	}{
		{
			name:            "empty text passes",
			maxMinutes:      1.5,
			wordsPerMinute:  200,
			words:           0,
			expectViolation: false,
		},
		{
			name:            "short answer passes",
			maxMinutes:      1.5,
			wordsPerMinute:  200,
			words:           50,
			expectViolation: false,
		},
		{
			name:            "exactly at the limit passes",
			maxMinutes:      1.5,
			wordsPerMinute:  200,
			words:           300,
			expectViolation: false,
		},
		{
			name:            "one word over the limit fails",
			maxMinutes:      1.5,
			wordsPerMinute:  200,
			words:           301,
			expectViolation: true,
		},
		{
			name:            "long answer fails",
			maxMinutes:      1.5,
			wordsPerMinute:  200,
			words:           800,
			expectViolation: true,
		},
		{
			name:            "tight threshold",
			maxMinutes:      0.25,
			wordsPerMinute:  200,
			words:           60,
			expectViolation: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			v := NewReadingTimeValidator(test.maxMinutes, test.wordsPerMinute, models.SeverityBlocking)
			text := strings.TrimSpace(strings.Repeat("word ", test.words))

			violation, err := v.Check(context.Background(), text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if test.expectViolation && violation == nil {
				t.Fatalf("expected a violation for %d words at %d wpm", test.words, test.wordsPerMinute)
			}
			if !test.expectViolation && violation != nil {
				t.Fatalf("expected pass, got violation: %s", violation.Detail)
			}
		})
	}
}

func TestReadingTimeValidator_DetailIsReproducible(t *testing.T) {
	v := NewReadingTimeValidator(1.5, 200, models.SeverityBlocking)
	text := strings.TrimSpace(strings.Repeat("word ", 400))

	violation, err := v.Check(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if violation == nil {
		t.Fatal("expected a violation")
	}

	// 400 words at 200 wpm is 2.00 minutes against a 1.50 minute limit.
	if !strings.Contains(violation.Detail, "2.00") {
		t.Errorf("expected estimate 2.00 in detail, got %q", violation.Detail)
	}
	if !strings.Contains(violation.Detail, "1.50") {
		t.Errorf("expected threshold 1.50 in detail, got %q", violation.Detail)
	}
	if violation.Category != models.CategoryReadingTime {
		t.Errorf("expected category reading_time, got %s", violation.Category)
	}
}
