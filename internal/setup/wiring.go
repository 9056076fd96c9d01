package setup

import (
	"context"
	"fmt"
	"os"

	"github.com/dvoicu/deploy-assistant/internal/agent"
	"github.com/dvoicu/deploy-assistant/internal/audit"
	"github.com/dvoicu/deploy-assistant/internal/classifier"
	"github.com/dvoicu/deploy-assistant/internal/config"
	"github.com/dvoicu/deploy-assistant/internal/guardrail"
	"github.com/dvoicu/deploy-assistant/internal/llm"
	"github.com/dvoicu/deploy-assistant/internal/llm/bedrock"
	"github.com/dvoicu/deploy-assistant/internal/llm/gpt"
	"github.com/dvoicu/deploy-assistant/internal/mediator"
	"github.com/dvoicu/deploy-assistant/internal/models"
	red "github.com/dvoicu/deploy-assistant/internal/redis"
	"github.com/dvoicu/deploy-assistant/internal/validator"
	"github.com/rs/zerolog"
)

type Config struct {
	Port          string
	AWSRegion     string
	ClaudeModelID string
	OpenAIKey     string
	OpenAIModelID string
	LLMProvider   string
	RedisAddr     string
	RedisPassword string
	AuditStream   string
	Username      string
	Password      string
	LogLevel      string
}

type Dependencies struct {
	Evaluator *guardrail.Evaluator
	Mediator  *mediator.Mediator
	Logger    *zerolog.Logger
}

func LoadConfig() *Config {
	return &Config{
		Port:          getEnv("AGENT_API_PORT", "8080"),
		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		ClaudeModelID: getEnv("CLAUDE_MODEL_ID", ""),
		OpenAIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModelID: getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		LLMProvider:   getEnv("LLM_PROVIDER", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		AuditStream:   getEnv("AUDIT_STREAM", "chat-audit"),
		Username:      getEnv("AGENT_API_USERNAME", ""),
		Password:      getEnv("AGENT_API_PASSWORD", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	guardCfg, err := config.LoadGuardrailsConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load guardrails config: %w", err)
	}

	llmClient, err := createLLMClient(ctx, cfg.LLMProvider, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	if llmClient == nil {
		logger.Warn().Msg("no LLM provider configured, agent runs in offline mode")
	}

	set, err := buildValidatorSet(guardCfg, llmClient, logger)
	if err != nil {
		return nil, err
	}

	eval := guardrail.NewEvaluator(set, logger)
	agentInstance := agent.New(llmClient, logger)

	monitor, err := createMonitor(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	med := mediator.New(eval, agentInstance, monitor, substitutions(guardCfg), logger)

	return &Dependencies{
		Evaluator: eval,
		Mediator:  med,
		Logger:    logger,
	}, nil
}

// buildValidatorSet assembles the validators in their fixed evaluation
// order: topic restriction, reading time, forbidden content.
func buildValidatorSet(cfg *config.Config, llmClient llm.Client, logger *zerolog.Logger) (*validator.Set, error) {
	var specs []validator.Spec

	if cfg.Guardrails.Topic.Enabled {
		topicClassifier, err := createClassifier(cfg.Guardrails.Topic, llmClient, logger)
		if err != nil {
			return nil, err
		}
		specs = append(specs, validator.Spec{
			Validator: validator.NewTopicValidator(
				topicClassifier,
				cfg.Guardrails.Topic.AllowedTopics,
				models.Severity(cfg.Guardrails.Topic.Severity),
			),
			Directions: directions(cfg.Guardrails.Topic.Directions),
		})
	}

	if cfg.Guardrails.ReadingTime.Enabled {
		specs = append(specs, validator.Spec{
			Validator: validator.NewReadingTimeValidator(
				cfg.Guardrails.ReadingTime.MaxMinutes,
				cfg.Guardrails.ReadingTime.WordsPerMinute,
				models.Severity(cfg.Guardrails.ReadingTime.Severity),
			),
			Directions: directions(cfg.Guardrails.ReadingTime.Directions),
		})
	}

	if cfg.Guardrails.DarkWeb.Enabled {
		specs = append(specs, validator.Spec{
			Validator: validator.NewForbiddenContentValidator(
				cfg.Guardrails.DarkWeb.Terms,
				models.Severity(cfg.Guardrails.DarkWeb.Severity),
			),
			Directions: directions(cfg.Guardrails.DarkWeb.Directions),
		})
	}

	return validator.NewSet(specs), nil
}

func createClassifier(cfg config.TopicConfig, llmClient llm.Client, logger *zerolog.Logger) (classifier.TopicClassifier, error) {
	switch cfg.Classifier {
	case config.ClassifierLLM:
		if llmClient == nil {
			return nil, fmt.Errorf("llm topic classifier selected but no LLM provider configured")
		}
		known := make([]string, 0, len(cfg.TopicKeywords))
		for topic := range cfg.TopicKeywords {
			known = append(known, topic)
		}
		return classifier.NewLLMClassifier(llmClient, known, logger), nil
	default:
		return classifier.NewKeywordClassifier(cfg.TopicKeywords), nil
	}
}

func createMonitor(ctx context.Context, cfg *Config, logger *zerolog.Logger) (mediator.Monitor, error) {
	if cfg.RedisAddr == "" {
		logger.Info().Msg("no Redis address configured, audit recording disabled")
		return audit.Nop{}, nil
	}

	client, err := red.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return audit.NewPublisher(client, cfg.AuditStream, logger), nil
}

func createLLMClient(ctx context.Context, provider string, cfg *Config) (llm.Client, error) {
	switch provider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID)
	case "":
		// Offline mode; the agent answers from its tip table.
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}

func substitutions(cfg *config.Config) map[models.Category]string {
	return map[models.Category]string{
		models.CategoryTopic:       cfg.Substitutions["topic"],
		models.CategoryReadingTime: cfg.Substitutions["reading_time"],
		models.CategoryDarkWeb:     cfg.Substitutions["darkweb"],
	}
}

func directions(raw []string) []models.Direction {
	out := make([]models.Direction, 0, len(raw))
	for _, d := range raw {
		out = append(out, models.Direction(d))
	}
	return out
}

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}

	return value
}
