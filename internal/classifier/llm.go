package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/dvoicu/deploy-assistant/internal/llm"
	"github.com/rs/zerolog"
)

// LLMClassifier asks a language model which of the known topics a text is
// about. Any error (invocation or an unparsable reply) propagates so the
// caller can fail closed instead of treating it as "no topics".
type LLMClassifier struct {
	client      llm.Client
	knownTopics []string
	logger      *zerolog.Logger
}

type topicReply struct {
	Topics []string `json:"topics"`
}

func NewLLMClassifier(client llm.Client, knownTopics []string, logger *zerolog.Logger) *LLMClassifier {
	return &LLMClassifier{
		client:      client,
		knownTopics: knownTopics,
		logger:      logger,
	}
}

func (c *LLMClassifier) Classify(ctx context.Context, text string) ([]string, error) {
	resp, err := c.client.InvokeWithRetry(ctx, llm.Request{
		Prompt:      c.buildPrompt(text),
		MaxTokens:   128,
		Temperature: 0.0, // deterministic
	})
	if err != nil {
		return nil, fmt.Errorf("topic classification call failed: %w", err)
	}

	content := stripMarkdownCodeBlock(resp.Content)
	var reply topicReply
	if err := json.Unmarshal([]byte(content), &reply); err != nil {
		c.logger.Error().
			Err(err).
			Str("content", resp.Content).
			Msg("failed to deserialize classifier response")
		return nil, fmt.Errorf("unparsable classifier response: %w", err)
	}

	detected := make([]string, 0, len(reply.Topics))
	for _, topic := range reply.Topics {
		topic = strings.ToLower(strings.TrimSpace(topic))
		if topic != "" {
			detected = append(detected, topic)
		}
	}
	sort.Strings(detected)
	return detected, nil
}

func (c *LLMClassifier) buildPrompt(text string) string {
	return fmt.Sprintf(`You are a topic classifier.
Decide which of the following topics the text is about: %s.
A text can be about several topics or none of them.

Text: %s

Respond ONLY in JSON: {"topics": ["<topic>", ...]}`,
		strings.Join(c.knownTopics, ", "), text)
}

// stripMarkdownCodeBlock removes ```json fences some models wrap around
// structured replies.
func stripMarkdownCodeBlock(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		firstNewline := strings.Index(content, "\n")
		if firstNewline == -1 {
			return content
		}

		closingBackticks := strings.LastIndex(content, "```")
		if closingBackticks == -1 || closingBackticks <= firstNewline {
			return content
		}

		content = content[firstNewline+1 : closingBackticks]
		content = strings.TrimSpace(content)
	}

	return content
}
