package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
)

// Options tunes a Watcher. Zero values get defaults.
type Options struct {
	// MaxConcurrent bounds how many files are processed at once.
	MaxConcurrent int
	// Settle is the delay between a create event and processing, so the
	// file can finish copying.
	Settle time.Duration
}

// New creates a new Watcher instance with concurrency control
func New(inputDir string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(inputDir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	if opts.Settle <= 0 {
		opts.Settle = 500 * time.Millisecond
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  fw,
		opts:     opts,
		slots:    semaphore.NewWeighted(int64(opts.MaxConcurrent)),
	}, nil
}
