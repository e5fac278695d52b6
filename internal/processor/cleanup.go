package processor

import (
	"context"
	"os"
)

// cleanupWorkDir removes a per-file temporary directory, logs warning if fails
func (p *implProcessor) cleanupWorkDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}
