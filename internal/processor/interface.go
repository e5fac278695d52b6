package processor

import (
	"context"

	"github.com/nguyentantai21042004/meeting-digest/internal/prompt"
)

// Processor turns a meeting recording, or an existing transcript, into a summary.
type Processor interface {
	Process(ctx context.Context, req Request) (Output, error)
	SummarizeText(ctx context.Context, req TextRequest) (Output, error)
}

// Transcriber converts an audio file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Request describes one media file to summarize. Empty output paths are not written.
type Request struct {
	MediaPath     string
	Meeting       prompt.Meeting
	TranscriptOut string
	SummaryOut    string
}

// TextRequest summarizes a transcript that is already available as text.
type TextRequest struct {
	Text          string
	Title         string
	Meeting       prompt.Meeting
	SkipNormalize bool
	TranscriptOut string
	SummaryOut    string
}

// Output holds the cleaned transcript and the final summary. Summary is empty
// when the transcript had nothing to summarize.
type Output struct {
	Transcript string
	Summary    string
	Levels     int
	Calls      int
}
