package config

// Config is the complete guardrail configuration. It is loaded once at
// process start and treated as immutable afterwards; a change requires a
// restart.
type Config struct {
	Guardrails    GuardrailsConfig  `yaml:"guardrails"`
	Substitutions map[string]string `yaml:"substitutions"`
}

type GuardrailsConfig struct {
	Topic       TopicConfig       `yaml:"topic"`
	ReadingTime ReadingTimeConfig `yaml:"reading_time"`
	DarkWeb     DarkWebConfig     `yaml:"darkweb"`
}

// TopicConfig restricts conversations to an allow-list of subjects.
// TopicKeywords feeds the keyword classifier and maps every known topic,
// allowed or not, to the terms that indicate it.
type TopicConfig struct {
	Enabled       bool                `yaml:"enabled"`
	Directions    []string            `yaml:"directions"`
	AllowedTopics []string            `yaml:"allowed_topics"`
	TopicKeywords map[string][]string `yaml:"topic_keywords"`
	Classifier    string              `yaml:"classifier"`
	Severity      string              `yaml:"severity"`
}

type ReadingTimeConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Directions     []string `yaml:"directions"`
	MaxMinutes     float64  `yaml:"max_minutes"`
	WordsPerMinute int      `yaml:"words_per_minute"`
	Severity       string   `yaml:"severity"`
}

type DarkWebConfig struct {
	Enabled    bool     `yaml:"enabled"`
	Directions []string `yaml:"directions"`
	Terms      []string `yaml:"terms"`
	Severity   string   `yaml:"severity"`
}
