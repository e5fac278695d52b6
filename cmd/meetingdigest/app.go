package main

import (
	"context"
	"os"

	"github.com/nguyentantai21042004/meeting-digest/internal/config"
	"github.com/nguyentantai21042004/meeting-digest/internal/errortypes"
	"github.com/nguyentantai21042004/meeting-digest/internal/generator"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/metrics"
	"github.com/nguyentantai21042004/meeting-digest/internal/processor"
	"github.com/nguyentantai21042004/meeting-digest/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-digest/internal/tokenizer"
	"github.com/nguyentantai21042004/meeting-digest/pkg/executor"
)

// app holds the services shared by every command, built once per run.
type app struct {
	cfg     *config.Config
	logger  logger.Logger
	metrics *metrics.Collector
	proc    processor.Processor
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, errortypes.Wrap(errortypes.KindConfiguration, err, "")
	}

	log := logger.NewWithFormat(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)
	m := metrics.New()

	gen, err := newGenerator(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	tok := tokenizer.NewTiktoken(cfg.Tokenizer.Model, cfg.Tokenizer.ContextLength)
	sum, err := summarizer.New(tok, gen, summarizer.Options{
		ChunkTokens:     cfg.Summarizer.ChunkTokens,
		MaxOutputTokens: cfg.Summarizer.MaxOutputTokens,
		MaxDepth:        cfg.Summarizer.MaxDepth,
		Concurrency:     cfg.Summarizer.Concurrency,
		CallTimeout:     cfg.Summarizer.CallTimeout,
	}, log, m)
	if err != nil {
		return nil, err
	}

	exec := executor.New()
	proc := processor.New(cfg, exec, newTranscriber(cfg, exec, log), sum, log, m)

	log.Debug(ctx, "Using %s generator %s, tokenizer %s (context %d tokens)",
		cfg.Generator.Provider, cfg.Generator.Model, cfg.Tokenizer.Model, tok.MaxContextLength())

	return &app{cfg: cfg, logger: log, metrics: m, proc: proc}, nil
}

func newGenerator(ctx context.Context, cfg *config.Config, log logger.Logger) (generator.Generator, error) {
	switch cfg.Generator.Provider {
	case config.ProviderOpenAI:
		var key string
		if len(cfg.Generator.APIKeys) > 0 {
			key = cfg.Generator.APIKeys[0]
		}
		return generator.NewOpenAI(key, cfg.Generator.BaseURL, cfg.Generator.Model, cfg.Summarizer.MaxOutputTokens), nil
	default:
		if len(cfg.Generator.APIKeys) == 0 {
			return nil, errortypes.Configuration("set generator.api_keys or GEMINI_API_KEY to use the gemini provider")
		}
		gen, err := generator.NewGemini(ctx, generator.GeminiOptions{
			APIKeys:         cfg.Generator.APIKeys,
			Model:           cfg.Generator.Model,
			MaxOutputTokens: cfg.Summarizer.MaxOutputTokens,
			ThinkingBudget:  cfg.Generator.ThinkingBudget,
			BaseURL:         cfg.Generator.BaseURL,
		}, log)
		if err != nil {
			return nil, errortypes.Wrap(errortypes.KindConfiguration, err, "")
		}
		return gen, nil
	}
}

func newTranscriber(cfg *config.Config, exec executor.Executor, log logger.Logger) processor.Transcriber {
	if cfg.Whisper.Backend == config.BackendOpenAI {
		return processor.NewOpenAITranscriber(cfg.Whisper, log)
	}
	return processor.NewWhisperCpp(cfg.Whisper, exec, log)
}
