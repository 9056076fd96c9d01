package classifier

import (
	"context"
)

// TopicClassifier detects the subjects a text talks about. The topic
// validator only decides pass/fail; what counts as a topic lives here so
// the classification strategy can be swapped (pure keyword matching or an
// LLM call) without touching the validator.
type TopicClassifier interface {
	Classify(ctx context.Context, text string) ([]string, error)
}
