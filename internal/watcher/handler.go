package watcher

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/meeting-digest/internal/processor"
)

// ProcessorHandler summarizes each recording into outputDir as
// <name>.transcript.txt and <name>.summary.md.
func ProcessorHandler(proc processor.Processor, outputDir string) EventHandler {
	return func(ctx context.Context, filePath string) error {
		transcriptOut, summaryOut := OutputPaths(outputDir, filePath)
		_, err := proc.Process(ctx, processor.Request{
			MediaPath:     filePath,
			TranscriptOut: transcriptOut,
			SummaryOut:    summaryOut,
		})
		return err
	}
}

// OutputPaths names the transcript and summary files for a recording.
func OutputPaths(outputDir, mediaPath string) (transcript, summary string) {
	name := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	return filepath.Join(outputDir, name+".transcript.txt"), filepath.Join(outputDir, name+".summary.md")
}
