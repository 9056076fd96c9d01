package validator

import (
	"context"
	"fmt"
	"strings"

	"github.com/dvoicu/deploy-assistant/internal/classifier"
	"github.com/dvoicu/deploy-assistant/internal/models"
)

// TopicValidator restricts conversations to an allow-list of subjects.
// It fails when ANY detected topic is off the allow-list: ambiguous
// multi-topic texts are rejected rather than waved through.
type TopicValidator struct {
	classifier classifier.TopicClassifier
	allowed    map[string]bool
	severity   models.Severity
}

func NewTopicValidator(c classifier.TopicClassifier, allowedTopics []string, severity models.Severity) *TopicValidator {
	allowed := make(map[string]bool, len(allowedTopics))
	for _, topic := range allowedTopics {
		allowed[strings.ToLower(topic)] = true
	}
	return &TopicValidator{
		classifier: c,
		allowed:    allowed,
		severity:   severity,
	}
}

func (v *TopicValidator) Name() string {
	return "topic-restriction"
}

func (v *TopicValidator) Category() models.Category {
	return models.CategoryTopic
}

func (v *TopicValidator) Check(ctx context.Context, text string) (*models.Violation, error) {
	topics, err := v.classifier.Classify(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: topic classifier: %v", ErrConfiguration, err)
	}

	var offending []string
	for _, topic := range topics {
		if !v.allowed[topic] {
			offending = append(offending, topic)
		}
	}

	if len(offending) == 0 {
		return nil, nil
	}

	return &models.Violation{
		Validator: v.Name(),
		Category:  v.Category(),
		Detail:    fmt.Sprintf("detected off-limits topic(s): %s", strings.Join(offending, ", ")),
		Severity:  v.severity,
	}, nil
}
