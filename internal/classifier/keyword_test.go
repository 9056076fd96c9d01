package classifier

import (
	"context"
	"reflect"
	"testing"
)

func testKeywords() map[string][]string {
	return map[string][]string{
		"streamlit":   {"streamlit"},
		"fastapi":     {"fastapi", "uvicorn"},
		"programming": {"deploy", "code", "python"},
		"sports":      {"world cup", "football", "olympics"},
		"music":       {"concert", "album"},
	}
}

func TestKeywordClassifier_Classify(t *testing.T) {
	c := NewKeywordClassifier(testKeywords())

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "no known topic",
			text:     "What is the meaning of life?",
			expected: nil,
		},
		{
			name:     "single topic",
			text:     "How do I run a FastAPI server?",
			expected: []string{"fastapi"},
		},
		{
			name:     "multi-word keyword",
			text:     "Tell me about the World Cup final.",
			expected: []string{"sports"},
		},
		{
			name:     "multiple topics sorted",
			text:     "Deploy my streamlit dashboard",
			expected: []string{"programming", "streamlit"},
		},
		{
			name:     "case insensitive",
			text:     "UVICORN workers",
			expected: []string{"fastapi"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			detected, err := c.Classify(context.Background(), test.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(detected, test.expected) {
				t.Errorf("expected %v, got %v", test.expected, detected)
			}
		})
	}
}

func TestKeywordClassifier_Deterministic(t *testing.T) {
	c := NewKeywordClassifier(testKeywords())
	text := "deploy a streamlit app for the world cup with concert music"

	first, err := c.Classify(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := c.Classify(context.Background(), text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("classification not deterministic: %v vs %v", first, again)
		}
	}
}
