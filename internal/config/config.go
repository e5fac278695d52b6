package config

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Tokenizer   TokenizerConfig   `yaml:"tokenizer"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Metrics     MetricsConfig     `yaml:"metrics"`
}

type TokenizerConfig struct {
	// Model selects the tiktoken encoding and the default context length.
	Model string `yaml:"model"`
	// ContextLength overrides the model's context window when > 0.
	ContextLength int `yaml:"context_length"`
}

type SummarizerConfig struct {
	Instructions    string        `yaml:"instructions"`
	ChunkTokens     int           `yaml:"chunk_tokens"`
	MaxOutputTokens int           `yaml:"max_output_tokens"`
	MaxDepth        int           `yaml:"max_depth"`
	Concurrency     int           `yaml:"concurrency"`
	CallTimeout     time.Duration `yaml:"call_timeout"`
}

type GeneratorConfig struct {
	Provider string   `yaml:"provider"`
	Model    string   `yaml:"model"`
	APIKeys  []string `yaml:"api_keys"`
	BaseURL  string   `yaml:"base_url"`
	// ThinkingBudget caps Gemini thinking tokens. Unset on gemini-2.5-flash
	// models it defaults to 0 so the output cap is spent on summary text.
	ThinkingBudget *int32 `yaml:"thinking_budget"`
}

type WhisperConfig struct {
	// Backend is whispercpp (local CLI) or openai (audio API).
	Backend     string `yaml:"backend"`
	ModelPath   string `yaml:"model_path"`
	BinaryPath  string `yaml:"binary_path"`
	Language    string `yaml:"language"`
	Prompt      string `yaml:"prompt"`
	Threads     int    `yaml:"threads"`
	Translate   bool   `yaml:"translate"`
	OpenAIModel string `yaml:"openai_model"`
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	BackendWhisperCpp = "whispercpp"
	BackendOpenAI     = "openai"
)

// Validate fills defaults and rejects settings under which the reduction
// could not converge.
func (c *Config) Validate() error {
	if c.Generator.Provider == "" {
		c.Generator.Provider = ProviderGemini
	}
	if c.Generator.Model == "" {
		switch c.Generator.Provider {
		case ProviderOpenAI:
			c.Generator.Model = "gpt-4o-mini"
		default:
			c.Generator.Model = "gemini-2.5-flash"
		}
	}
	if c.Generator.Provider == ProviderGemini && c.Generator.ThinkingBudget == nil &&
		strings.HasPrefix(c.Generator.Model, "gemini-2.5-flash") {
		off := int32(0)
		c.Generator.ThinkingBudget = &off
	}
	if c.Tokenizer.Model == "" {
		c.Tokenizer.Model = c.Generator.Model
	}
	if c.Summarizer.ChunkTokens == 0 {
		c.Summarizer.ChunkTokens = 2048
	}
	if c.Summarizer.MaxOutputTokens == 0 {
		c.Summarizer.MaxOutputTokens = 512
	}
	if c.Summarizer.MaxDepth == 0 {
		c.Summarizer.MaxDepth = 8
	}
	if c.Summarizer.Concurrency == 0 {
		c.Summarizer.Concurrency = 1
	}
	if c.Summarizer.CallTimeout == 0 {
		c.Summarizer.CallTimeout = 2 * time.Minute
	}
	if c.Whisper.Backend == "" {
		c.Whisper.Backend = BackendWhisperCpp
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 8
	}
	if c.Whisper.OpenAIModel == "" {
		c.Whisper.OpenAIModel = "whisper-1"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	switch c.Generator.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("generator.provider must be %q or %q, got %q", ProviderGemini, ProviderOpenAI, c.Generator.Provider)
	}
	switch c.Whisper.Backend {
	case BackendWhisperCpp, BackendOpenAI:
	default:
		return fmt.Errorf("whisper.backend must be %q or %q, got %q", BackendWhisperCpp, BackendOpenAI, c.Whisper.Backend)
	}
	if c.Summarizer.ChunkTokens < 0 || c.Summarizer.MaxOutputTokens < 0 {
		return fmt.Errorf("summarizer token budgets must be positive")
	}
	if c.Summarizer.MaxOutputTokens >= c.Summarizer.ChunkTokens {
		return fmt.Errorf("summarizer.max_output_tokens (%d) must be smaller than summarizer.chunk_tokens (%d)",
			c.Summarizer.MaxOutputTokens, c.Summarizer.ChunkTokens)
	}
	if c.Generator.ThinkingBudget != nil && *c.Generator.ThinkingBudget < -1 {
		return fmt.Errorf("generator.thinking_budget must be -1 (dynamic), 0 (off) or positive")
	}
	if c.Summarizer.MaxDepth < 0 || c.Summarizer.Concurrency < 0 || c.Summarizer.CallTimeout < 0 {
		return fmt.Errorf("summarizer.max_depth, concurrency and call_timeout must not be negative")
	}

	return nil
}

// ValidateMedia checks the settings needed to turn a media file into a transcript.
func (c *Config) ValidateMedia() error {
	if c.Whisper.Backend != BackendWhisperCpp {
		return nil
	}
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.BinaryPath == "" {
		return fmt.Errorf("whisper.binary_path is required")
	}
	if c.Whisper.Language == "" {
		return fmt.Errorf("whisper.language is required")
	}
	return nil
}

// ValidateWatch checks the directories used by watch mode.
func (c *Config) ValidateWatch() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	return c.ValidateMedia()
}
