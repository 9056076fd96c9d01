package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "guardrails.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadGuardrailsConfig(t *testing.T) {
	path := writeConfigFile(t, `
guardrails:
  topic:
    enabled: true
    allowed_topics: [streamlit, fastapi, programming]
    topic_keywords:
      streamlit: [streamlit]
      fastapi: [fastapi]
      programming: [code, deploy]
      sports: [world cup, football]
  reading_time:
    enabled: true
    max_minutes: 2.0
  darkweb:
    enabled: true
    terms: [dark web, darknet]
substitutions:
  topic: "Custom topic refusal."
`)
	t.Setenv("GUARDRAILS_CONFIG_PATH", path)

	cfg, err := LoadGuardrailsConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Guardrails.Topic.Enabled {
		t.Error("expected topic guardrail enabled")
	}
	if cfg.Guardrails.ReadingTime.MaxMinutes != 2.0 {
		t.Errorf("expected max_minutes 2.0, got %g", cfg.Guardrails.ReadingTime.MaxMinutes)
	}
	if cfg.Substitutions["topic"] != "Custom topic refusal." {
		t.Errorf("expected configured substitution to win over the default, got %q", cfg.Substitutions["topic"])
	}
}

func TestLoadGuardrailsConfig_MissingFile(t *testing.T) {
	t.Setenv("GUARDRAILS_CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := LoadGuardrailsConfig(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	applyDefaults(&cfg)

	if got := cfg.Guardrails.Topic.Directions; len(got) != 1 || got[0] != "input" {
		t.Errorf("expected topic default direction [input], got %v", got)
	}
	if cfg.Guardrails.Topic.Classifier != ClassifierKeyword {
		t.Errorf("expected default classifier %q, got %q", ClassifierKeyword, cfg.Guardrails.Topic.Classifier)
	}
	if got := cfg.Guardrails.ReadingTime.Directions; len(got) != 1 || got[0] != "output" {
		t.Errorf("expected reading_time default direction [output], got %v", got)
	}
	if cfg.Guardrails.ReadingTime.MaxMinutes != 1.5 {
		t.Errorf("expected default max_minutes 1.5, got %g", cfg.Guardrails.ReadingTime.MaxMinutes)
	}
	if cfg.Guardrails.ReadingTime.WordsPerMinute != 200 {
		t.Errorf("expected default words_per_minute 200, got %d", cfg.Guardrails.ReadingTime.WordsPerMinute)
	}
	if got := cfg.Guardrails.DarkWeb.Directions; len(got) != 2 {
		t.Errorf("expected darkweb to default to both directions, got %v", got)
	}

	for _, severity := range []string{
		cfg.Guardrails.Topic.Severity,
		cfg.Guardrails.ReadingTime.Severity,
		cfg.Guardrails.DarkWeb.Severity,
	} {
		if severity != "blocking" {
			t.Errorf("expected default severity blocking, got %q", severity)
		}
	}

	if !strings.Contains(cfg.Substitutions["reading_time"], "1.5 minutes") {
		t.Errorf("expected reading_time substitution to embed the limit, got %q", cfg.Substitutions["reading_time"])
	}
	if cfg.Substitutions["topic"] == "" || cfg.Substitutions["darkweb"] == "" {
		t.Error("expected default substitutions for every category")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		cfg := Config{}
		cfg.Guardrails.Topic.Enabled = true
		cfg.Guardrails.Topic.AllowedTopics = []string{"streamlit"}
		cfg.Guardrails.Topic.TopicKeywords = map[string][]string{"streamlit": {"streamlit"}}
		cfg.Guardrails.ReadingTime.Enabled = true
		cfg.Guardrails.DarkWeb.Enabled = true
		cfg.Guardrails.DarkWeb.Terms = []string{"dark web"}
		applyDefaults(&cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:    "topic enabled without allowed topics",
			mutate:  func(c *Config) { c.Guardrails.Topic.AllowedTopics = nil },
			wantErr: "allowed_topics",
		},
		{
			name:    "unknown classifier",
			mutate:  func(c *Config) { c.Guardrails.Topic.Classifier = "regex" },
			wantErr: "classifier",
		},
		{
			name:    "keyword classifier without keywords",
			mutate:  func(c *Config) { c.Guardrails.Topic.TopicKeywords = nil },
			wantErr: "topic_keywords",
		},
		{
			name:    "non-positive reading time limit",
			mutate:  func(c *Config) { c.Guardrails.ReadingTime.MaxMinutes = 0 },
			wantErr: "max_minutes",
		},
		{
			name:    "darkweb enabled without terms",
			mutate:  func(c *Config) { c.Guardrails.DarkWeb.Terms = nil },
			wantErr: "terms",
		},
		{
			name:    "invalid direction",
			mutate:  func(c *Config) { c.Guardrails.Topic.Directions = []string{"sideways"} },
			wantErr: "invalid direction",
		},
		{
			name:    "invalid severity",
			mutate:  func(c *Config) { c.Guardrails.DarkWeb.Severity = "fatal" },
			wantErr: "invalid severity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
