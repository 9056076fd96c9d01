package classifier

import (
	"context"
	"sort"
	"strings"
)

// KeywordClassifier maps topics to indicator terms and reports every topic
// whose term appears in the text. Matching is case-insensitive substring
// matching, so multi-word indicators like "world cup" work. Pure and
// in-process; same text always yields the same topics.
type KeywordClassifier struct {
	keywords map[string][]string
}

func NewKeywordClassifier(topicKeywords map[string][]string) *KeywordClassifier {
	normalized := make(map[string][]string, len(topicKeywords))
	for topic, terms := range topicKeywords {
		lowered := make([]string, 0, len(terms))
		for _, term := range terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term != "" {
				lowered = append(lowered, term)
			}
		}
		normalized[strings.ToLower(topic)] = lowered
	}
	return &KeywordClassifier{keywords: normalized}
}

func (c *KeywordClassifier) Classify(_ context.Context, text string) ([]string, error) {
	lowered := strings.ToLower(text)

	var detected []string
	for topic, terms := range c.keywords {
		for _, term := range terms {
			if strings.Contains(lowered, term) {
				detected = append(detected, topic)
				break
			}
		}
	}

	// Map iteration order is random; keep results reproducible.
	sort.Strings(detected)
	return detected, nil
}
