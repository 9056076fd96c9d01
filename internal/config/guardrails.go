package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ClassifierKeyword = "keyword"
	ClassifierLLM     = "llm"
)

func LoadGuardrailsConfig() (*Config, error) {

	path := os.Getenv("GUARDRAILS_CONFIG_PATH")
	if path == "" {
		path = "configs/guardrails.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if len(cfg.Guardrails.Topic.Directions) == 0 {
		cfg.Guardrails.Topic.Directions = []string{"input"}
	}
	if cfg.Guardrails.Topic.Classifier == "" {
		cfg.Guardrails.Topic.Classifier = ClassifierKeyword
	}
	if cfg.Guardrails.Topic.Severity == "" {
		cfg.Guardrails.Topic.Severity = "blocking"
	}

	if len(cfg.Guardrails.ReadingTime.Directions) == 0 {
		cfg.Guardrails.ReadingTime.Directions = []string{"output"}
	}
	if cfg.Guardrails.ReadingTime.MaxMinutes == 0 {
		cfg.Guardrails.ReadingTime.MaxMinutes = 1.5
	}
	if cfg.Guardrails.ReadingTime.WordsPerMinute == 0 {
		cfg.Guardrails.ReadingTime.WordsPerMinute = 200
	}
	if cfg.Guardrails.ReadingTime.Severity == "" {
		cfg.Guardrails.ReadingTime.Severity = "blocking"
	}

	if len(cfg.Guardrails.DarkWeb.Directions) == 0 {
		cfg.Guardrails.DarkWeb.Directions = []string{"input", "output"}
	}
	if cfg.Guardrails.DarkWeb.Severity == "" {
		cfg.Guardrails.DarkWeb.Severity = "blocking"
	}

	if cfg.Substitutions == nil {
		cfg.Substitutions = map[string]string{}
	}
	if cfg.Substitutions["topic"] == "" {
		cfg.Substitutions["topic"] = "Sorry, I can only discuss topics related to Streamlit, FastAPI, or general programming. Please adjust your question."
	}
	if cfg.Substitutions["reading_time"] == "" {
		cfg.Substitutions["reading_time"] = fmt.Sprintf(
			"The generated answer would take longer than %g minutes to read. Please narrow down your question so I can give a concise and focused response.",
			cfg.Guardrails.ReadingTime.MaxMinutes)
	}
	if cfg.Substitutions["darkweb"] == "" {
		cfg.Substitutions["darkweb"] = "Sorry, I can't help with dark web-related requests."
	}
}

func (c *Config) Validate() error {
	if c.Guardrails.Topic.Enabled {
		if len(c.Guardrails.Topic.AllowedTopics) == 0 {
			return fmt.Errorf("topic guardrail enabled but allowed_topics is empty")
		}
		switch c.Guardrails.Topic.Classifier {
		case ClassifierKeyword, ClassifierLLM:
		default:
			return fmt.Errorf("unknown topic classifier %q (want %q or %q)",
				c.Guardrails.Topic.Classifier, ClassifierKeyword, ClassifierLLM)
		}
		if c.Guardrails.Topic.Classifier == ClassifierKeyword && len(c.Guardrails.Topic.TopicKeywords) == 0 {
			return fmt.Errorf("keyword classifier selected but topic_keywords is empty")
		}
	}

	if c.Guardrails.ReadingTime.Enabled && c.Guardrails.ReadingTime.MaxMinutes <= 0 {
		return fmt.Errorf("reading_time guardrail requires max_minutes > 0, got %g",
			c.Guardrails.ReadingTime.MaxMinutes)
	}

	if c.Guardrails.DarkWeb.Enabled && len(c.Guardrails.DarkWeb.Terms) == 0 {
		return fmt.Errorf("darkweb guardrail enabled but terms is empty")
	}

	for name, directions := range map[string][]string{
		"topic":        c.Guardrails.Topic.Directions,
		"reading_time": c.Guardrails.ReadingTime.Directions,
		"darkweb":      c.Guardrails.DarkWeb.Directions,
	} {
		for _, d := range directions {
			if d != "input" && d != "output" {
				return fmt.Errorf("guardrail %s: invalid direction %q", name, d)
			}
		}
	}

	for name, severity := range map[string]string{
		"topic":        c.Guardrails.Topic.Severity,
		"reading_time": c.Guardrails.ReadingTime.Severity,
		"darkweb":      c.Guardrails.DarkWeb.Severity,
	} {
		if severity != "blocking" && severity != "informational" {
			return fmt.Errorf("guardrail %s: invalid severity %q", name, severity)
		}
	}

	return nil
}
