package summarizer

import (
	"context"
	"time"
)

// Summarizer reduces an arbitrarily long text to one summary that was produced
// by a single generation call.
type Summarizer interface {
	// Reduce summarizes text. prefix is the prompt prefix shared by every call
	// (instructions and meeting metadata). Empty text yields an empty Result
	// without calling the backend.
	Reduce(ctx context.Context, text, prefix string) (Result, error)
}

// Result is the outcome of one Reduce call.
type Result struct {
	Summary string
	// Levels counts re-chunking passes over partial summaries. 0 means the
	// partial summaries of the transcript fitted one final call.
	Levels int
	Calls  int
}

// Options configures budgets and execution of a Summarizer.
type Options struct {
	// ChunkTokens is the upper bound for one chunk's payload.
	ChunkTokens int
	// MaxOutputTokens is the generation cap of the backend. Must be below ChunkTokens.
	MaxOutputTokens int
	// MaxDepth bounds re-chunking levels.
	MaxDepth int
	// Concurrency bounds parallel chunk calls within one level.
	Concurrency int
	// CallTimeout bounds every generation call. Zero disables it.
	CallTimeout time.Duration
	// Separator joins partial summaries.
	Separator string
}

const (
	DefaultMaxDepth    = 8
	DefaultConcurrency = 1
	DefaultSeparator   = " "
)
