package watcher

import "context"

// Watcher monitors an input directory for new meeting recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one newly created media file
type EventHandler func(ctx context.Context, filePath string) error
