package processor

import (
	"github.com/nguyentantai21042004/meeting-digest/internal/config"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/metrics"
	"github.com/nguyentantai21042004/meeting-digest/internal/prompt"
	"github.com/nguyentantai21042004/meeting-digest/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-digest/pkg/executor"
)

type implProcessor struct {
	cfg         *config.Config
	executor    executor.Executor
	transcriber Transcriber
	summarizer  summarizer.Summarizer
	prompts     prompt.Builder
	logger      logger.Logger
	metrics     *metrics.Collector
}

// New creates a new Processor instance. m may be nil.
func New(cfg *config.Config, exec executor.Executor, tr Transcriber, sum summarizer.Summarizer, log logger.Logger, m *metrics.Collector) Processor {
	return &implProcessor{
		cfg:         cfg,
		executor:    exec,
		transcriber: tr,
		summarizer:  sum,
		prompts:     prompt.NewBuilder(cfg.Summarizer.Instructions),
		logger:      log,
		metrics:     m,
	}
}
