package conf

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config represents application configuration, loaded from environment
// variables (optionally seeded from a .env file by the caller).
type Config struct {
	// Feishu configuration
	Feishu FeishuConfig

	// ChatGPT configuration
	ChatGPT ChatGPTConfig

	// Bot behavior
	Bot BotConfig

	// Prediction dataset configuration
	Prediction PredictionConfig

	// Debug mode
	Debug bool `env:"DEBUG" envDefault:"false"`
}

// FeishuConfig contains Feishu credentials.
type FeishuConfig struct {
	AppID     string `env:"FEISHU_APP_ID"`
	AppSecret string `env:"FEISHU_APP_SECRET"`
}

// ChatGPTConfig contains the generative backend settings.
type ChatGPTConfig struct {
	APIKey string `env:"OPENAI_API_KEY"`
	OrgID  string `env:"OPENAI_ORG_ID"`
	Model  string `env:"OPENAI_MODEL"`
}

// BotConfig controls how the bot is addressed and which inbound
// messages it reacts to.
type BotConfig struct {
	// Name is the mention name the bot answers to in group chats.
	Name string `env:"BOT_NAME" envDefault:"RoutePal"`

	// TriggerKeyword must lead the cleaned text for the bot to engage.
	// Empty means every message addressed to the bot is handled.
	TriggerKeyword string `env:"TRIGGER_KEYWORD" envDefault:""`

	// DisableSelfChat drops messages the bot account sent itself.
	DisableSelfChat bool `env:"DISABLE_SELF_CHAT" envDefault:"true"`
}

// PredictionConfig locates the traffic prediction datasets.
type PredictionConfig struct {
	// DataDir holds one dataset file per algorithm, named pred_<algo>
	// with a .csv, .xlsx or .db extension.
	DataDir string `env:"DATA_DIR" envDefault:"/data"`

	// FallbackYear is assumed when a query names no year.
	FallbackYear string `env:"FALLBACK_YEAR" envDefault:"2024"`
}

// ConfigError reports a missing or invalid configuration value.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks that the values required to run the bot are present.
func (c *Config) Validate() error {
	if c.Feishu.AppID == "" {
		return &ConfigError{Field: "FEISHU_APP_ID", Reason: "required"}
	}
	if c.Feishu.AppSecret == "" {
		return &ConfigError{Field: "FEISHU_APP_SECRET", Reason: "required"}
	}
	if c.ChatGPT.APIKey == "" {
		return &ConfigError{Field: "OPENAI_API_KEY", Reason: "required"}
	}
	if len(c.Prediction.FallbackYear) != 4 {
		return &ConfigError{Field: "FALLBACK_YEAR", Reason: "must be a four digit year"}
	}
	return nil
}
