package summarizer

import (
	"github.com/nguyentantai21042004/meeting-digest/internal/errortypes"
	"github.com/nguyentantai21042004/meeting-digest/internal/generator"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/internal/metrics"
	"github.com/nguyentantai21042004/meeting-digest/internal/tokenizer"
)

type implSummarizer struct {
	tokenizer tokenizer.Tokenizer
	generator generator.Generator
	opts      Options
	logger    logger.Logger
	metrics   *metrics.Collector
}

// New validates opts and returns a Summarizer. m may be nil.
func New(tok tokenizer.Tokenizer, gen generator.Generator, opts Options, log logger.Logger, m *metrics.Collector) (Summarizer, error) {
	if opts.ChunkTokens <= 0 {
		return nil, errortypes.Configuration("chunk tokens must be positive, got %d", opts.ChunkTokens)
	}
	if opts.MaxOutputTokens <= 0 {
		return nil, errortypes.Configuration("max output tokens must be positive, got %d", opts.MaxOutputTokens)
	}
	if opts.MaxOutputTokens >= opts.ChunkTokens {
		return nil, errortypes.Configuration("max output tokens (%d) must be smaller than chunk tokens (%d)",
			opts.MaxOutputTokens, opts.ChunkTokens)
	}
	if ctxLen := tok.MaxContextLength(); opts.ChunkTokens > ctxLen {
		return nil, errortypes.Configuration("chunk tokens (%d) exceed the model context length (%d)",
			opts.ChunkTokens, ctxLen)
	}
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	if opts.Separator == "" {
		opts.Separator = DefaultSeparator
	}
	if log == nil {
		log = logger.Nop()
	}

	return &implSummarizer{
		tokenizer: tok,
		generator: gen,
		opts:      opts,
		logger:    log,
		metrics:   m,
	}, nil
}
