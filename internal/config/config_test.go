package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "defaults",
			config:  Config{},
			wantErr: false,
		},
		{
			name: "openai provider",
			config: Config{
				Generator: GeneratorConfig{Provider: ProviderOpenAI},
			},
			wantErr: false,
		},
		{
			name: "unknown provider",
			config: Config{
				Generator: GeneratorConfig{Provider: "llama"},
			},
			wantErr: true,
		},
		{
			name: "unknown whisper backend",
			config: Config{
				Whisper: WhisperConfig{Backend: "vosk"},
			},
			wantErr: true,
		},
		{
			name: "output cap equals chunk budget",
			config: Config{
				Summarizer: SummarizerConfig{ChunkTokens: 512, MaxOutputTokens: 512},
			},
			wantErr: true,
		},
		{
			name: "output cap above default chunk budget",
			config: Config{
				Summarizer: SummarizerConfig{MaxOutputTokens: 4096},
			},
			wantErr: true,
		},
		{
			name: "negative concurrency",
			config: Config{
				Summarizer: SummarizerConfig{Concurrency: -1},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{Generator: GeneratorConfig{Provider: ProviderOpenAI}}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}

	if cfg.Generator.Model != "gpt-4o-mini" {
		t.Errorf("Generator.Model = %v, want gpt-4o-mini", cfg.Generator.Model)
	}
	if cfg.Tokenizer.Model != cfg.Generator.Model {
		t.Errorf("Tokenizer.Model = %v, want %v", cfg.Tokenizer.Model, cfg.Generator.Model)
	}
	if cfg.Summarizer.MaxOutputTokens >= cfg.Summarizer.ChunkTokens {
		t.Errorf("default cap %d must be below chunk budget %d", cfg.Summarizer.MaxOutputTokens, cfg.Summarizer.ChunkTokens)
	}
	if cfg.Summarizer.CallTimeout != 2*time.Minute {
		t.Errorf("CallTimeout = %v, want 2m", cfg.Summarizer.CallTimeout)
	}
}

func TestValidateThinkingBudget(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   *int32
	}{
		{"flash default turns thinking off", Config{}, ptr(0)},
		{"explicit budget kept", Config{Generator: GeneratorConfig{ThinkingBudget: ptr(256)}}, ptr(256)},
		{"pro keeps model default", Config{Generator: GeneratorConfig{Model: "gemini-2.5-pro"}}, nil},
		{"openai untouched", Config{Generator: GeneratorConfig{Provider: ProviderOpenAI}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.config.Validate(); err != nil {
				t.Fatal(err)
			}
			got := tt.config.Generator.ThinkingBudget
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Errorf("ThinkingBudget = %v, want %v", got, tt.want)
			}
		})
	}
}

func ptr(v int32) *int32 { return &v }

func TestValidateMedia(t *testing.T) {
	tests := []struct {
		name    string
		whisper WhisperConfig
		wantErr bool
	}{
		{"complete", WhisperConfig{Backend: BackendWhisperCpp, ModelPath: "models/ggml-small.bin", BinaryPath: "./whisper-cli", Language: "ml"}, false},
		{"missing model path", WhisperConfig{Backend: BackendWhisperCpp, BinaryPath: "./whisper-cli", Language: "ml"}, true},
		{"missing language", WhisperConfig{Backend: BackendWhisperCpp, ModelPath: "m.bin", BinaryPath: "./whisper-cli"}, true},
		{"openai needs no local model", WhisperConfig{Backend: BackendOpenAI}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{Whisper: tt.whisper}
			err := cfg.ValidateMedia()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMedia() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWatch(t *testing.T) {
	cfg := Config{Whisper: WhisperConfig{Backend: BackendOpenAI}}
	if err := cfg.ValidateWatch(); err == nil {
		t.Error("ValidateWatch() should require paths")
	}
	cfg.Paths = PathsConfig{Input: "data/input", Output: "data/output"}
	if err := cfg.ValidateWatch(); err != nil {
		t.Errorf("ValidateWatch() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "")
	t.Setenv("GEMINI_API_KEY", "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
tokenizer:
  context_length: 1024

summarizer:
  chunk_tokens: 350
  max_output_tokens: 256
  call_timeout: 30s

generator:
  provider: "gemini"
  api_keys: ["k1", "k2"]

whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"
  prompt: "test"

paths:
  input: "data/input"
  output: "data/output"

logging:
  level: "debug"
  format: "json"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.ModelPath != "models/test.bin" {
		t.Errorf("ModelPath = %v, want %v", cfg.Whisper.ModelPath, "models/test.bin")
	}
	if cfg.Summarizer.ChunkTokens != 350 || cfg.Summarizer.MaxOutputTokens != 256 {
		t.Errorf("Summarizer = %+v", cfg.Summarizer)
	}
	if cfg.Summarizer.CallTimeout != 30*time.Second {
		t.Errorf("CallTimeout = %v, want 30s", cfg.Summarizer.CallTimeout)
	}
	if cfg.Tokenizer.ContextLength != 1024 {
		t.Errorf("ContextLength = %v, want 1024", cfg.Tokenizer.ContextLength)
	}
	if len(cfg.Generator.APIKeys) != 2 {
		t.Errorf("APIKeys = %v", cfg.Generator.APIKeys)
	}
	if cfg.Paths.Input != "data/input" {
		t.Errorf("Input = %v, want %v", cfg.Paths.Input, "data/input")
	}
}

func TestLoadEnvKeys(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "a, b ,,c")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got := cfg.Generator.APIKeys; len(got) != 3 || got[1] != "b" {
		t.Errorf("APIKeys = %v, want [a b c]", got)
	}
	if cfg.Whisper.APIKey != "sk-test" {
		t.Errorf("Whisper.APIKey = %q", cfg.Whisper.APIKey)
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadRejectsNonConvergingBudget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "summarizer:\n  chunk_tokens: 256\n  max_output_tokens: 256\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject max_output_tokens >= chunk_tokens")
	}
}
