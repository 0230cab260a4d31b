package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	SignalSourceRules = "rules"
	SignalSourceLLM   = "llm"
)

type Config struct {
	Port            int
	NatsURL         string
	NatsToken       string
	DatabaseURL     string
	LogLevel        string
	AnthropicAPIKey string
	AnthropicModel  string
	SignalSource    string
	WeightsPath     string
	APIToken        string
	SlackBotToken   string
	SlackChannel    string
}

func Load() Config {
	return Config{
		Port:            envInt("AUGUR_PORT", 8760),
		NatsURL:         envStr("NATS_URL", "nats://hermes:4222"),
		NatsToken:       envStr("NATS_TOKEN", ""),
		DatabaseURL:     envStr("DATABASE_URL", ""),
		LogLevel:        envStr("LOG_LEVEL", "info"),
		AnthropicAPIKey: envStr("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  envStr("AUGUR_MODEL", "claude-3-5-haiku-latest"),
		SignalSource:    signalSource(envStr("AUGUR_SIGNAL_SOURCE", SignalSourceRules)),
		WeightsPath:     envStr("AUGUR_WEIGHTS_PATH", ""),
		APIToken:        envStr("AUGUR_API_TOKEN", ""),
		SlackBotToken:   envStr("SLACK_BOT_TOKEN", ""),
		SlackChannel:    envStr("AUGUR_SLACK_CHANNEL", ""),
	}
}

// UseLLM reports whether signals should come from the language model.
// It needs both the llm source and an API key.
func (c Config) UseLLM() bool {
	return c.SignalSource == SignalSourceLLM && c.AnthropicAPIKey != ""
}

func signalSource(v string) string {
	if strings.EqualFold(strings.TrimSpace(v), SignalSourceLLM) {
		return SignalSourceLLM
	}
	return SignalSourceRules
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
