package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-digest/internal/normalizer"
	"github.com/nguyentantai21042004/meeting-digest/internal/writer"
)

// Process extracts audio, transcribes, normalizes and summarizes one media file.
// Output files are written only after the summary succeeded.
func (p *implProcessor) Process(ctx context.Context, req Request) (Output, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting meeting processing: %s", req.MediaPath)
	p.logger.Info(ctx, "========================================")

	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return Output{}, fmt.Errorf("create temp dir: %w", err)
	}
	// Isolated work dir per file so concurrent runs never share audio files
	workDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "meeting-*")
	if err != nil {
		return Output{}, fmt.Errorf("create work dir: %w", err)
	}
	defer p.cleanupWorkDir(ctx, workDir)

	// Step 1: Extract audio
	audioPath, err := p.extractAudio(ctx, req.MediaPath, workDir)
	if err != nil {
		p.metrics.FileProcessed("failed")
		return Output{}, err
	}

	// Step 2: Transcribe
	raw, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		p.metrics.FileProcessed("failed")
		return Output{}, err
	}

	// Steps 3-5: Normalize, summarize, write
	out, err := p.SummarizeText(ctx, TextRequest{
		Text:          raw,
		Title:         titleOf(req.MediaPath),
		Meeting:       req.Meeting,
		TranscriptOut: req.TranscriptOut,
		SummaryOut:    req.SummaryOut,
	})
	if err != nil {
		p.metrics.FileProcessed("failed")
		return Output{}, err
	}

	p.metrics.FileProcessed("ok")
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Generation calls: %d, reduction levels: %d", out.Calls, out.Levels)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return out, nil
}

// SummarizeText summarizes a transcript and writes the requested outputs.
func (p *implProcessor) SummarizeText(ctx context.Context, req TextRequest) (Output, error) {
	transcript := req.Text
	if !req.SkipNormalize {
		transcript = normalizer.Normalize(transcript)
	}
	if strings.TrimSpace(transcript) == "" {
		p.logger.Warn(ctx, "Transcript is empty after cleanup, nothing to summarize")
		return Output{}, nil
	}

	prefix := p.prompts.Prefix(req.Meeting)

	res, err := p.summarizer.Reduce(ctx, transcript, prefix)
	if err != nil {
		return Output{}, err
	}

	title := req.Title
	if title == "" {
		title = "Meeting summary"
	}
	if err := writer.WriteAll(
		writer.Output{Path: req.TranscriptOut, Title: title, Content: transcript, Kind: writer.KindTranscript},
		writer.Output{Path: req.SummaryOut, Title: title, Content: res.Summary, Kind: writer.KindSummary},
	); err != nil {
		return Output{}, fmt.Errorf("write outputs: %w", err)
	}

	return Output{
		Transcript: transcript,
		Summary:    res.Summary,
		Levels:     res.Levels,
		Calls:      res.Calls,
	}, nil
}

func titleOf(mediaPath string) string {
	return strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
}
