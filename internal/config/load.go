package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file, applies environment overrides and validates the
// result. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// applyEnv fills API keys from the environment when the file has none.
// GEMINI_API_KEYS holds a comma separated list.
func (c *Config) applyEnv(getenv func(string) string) {
	if c.Whisper.APIKey == "" {
		c.Whisper.APIKey = getenv("OPENAI_API_KEY")
	}
	if len(c.Generator.APIKeys) > 0 {
		return
	}

	var raw string
	switch c.Generator.Provider {
	case ProviderOpenAI:
		raw = getenv("OPENAI_API_KEY")
	default:
		raw = getenv("GEMINI_API_KEYS")
		if raw == "" {
			raw = getenv("GEMINI_API_KEY")
		}
	}

	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			c.Generator.APIKeys = append(c.Generator.APIKeys, key)
		}
	}
}
