package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-digest/internal/errortypes"
	"github.com/nguyentantai21042004/meeting-digest/internal/processor"
	"github.com/nguyentantai21042004/meeting-digest/internal/prompt"
	"github.com/nguyentantai21042004/meeting-digest/internal/watcher"
)

// MeetingFlags carry the metadata added to every prompt.
type MeetingFlags struct {
	Date      string   `help:"Meeting date, included in the prompt."`
	Attendees []string `help:"Comma separated attendee names." sep:","`
}

func (f MeetingFlags) meeting() prompt.Meeting {
	attendees := make([]string, 0, len(f.Attendees))
	for _, a := range f.Attendees {
		if a = strings.TrimSpace(a); a != "" {
			attendees = append(attendees, a)
		}
	}
	return prompt.Meeting{Date: f.Date, Attendees: attendees}
}

// OutputFlags name the files written after a successful summary.
type OutputFlags struct {
	TranscriptOut string `help:"Write the cleaned transcript here (.txt or .docx)." type:"path"`
	SummaryOut    string `help:"Write the summary here (.md, .txt or .docx)." type:"path"`
}

type SummarizeCmd struct {
	Media string `arg:"" type:"existingfile" help:"Meeting recording (video or audio)."`
	MeetingFlags
	OutputFlags
}

func (c *SummarizeCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(ctx, cli.Config)
	if err != nil {
		return err
	}
	if err := a.cfg.ValidateMedia(); err != nil {
		return errortypes.Wrap(errortypes.KindConfiguration, err, "")
	}

	out, err := a.proc.Process(ctx, processor.Request{
		MediaPath:     c.Media,
		Meeting:       c.meeting(),
		TranscriptOut: c.TranscriptOut,
		SummaryOut:    c.SummaryOut,
	})
	if err != nil {
		return err
	}
	printSummary(out)
	return nil
}

type TextCmd struct {
	File        string `arg:"" type:"existingfile" help:"Transcript text file."`
	NoNormalize bool   `help:"Send the transcript as is, without cleanup."`
	MeetingFlags
	OutputFlags
}

func (c *TextCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(ctx, cli.Config)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}

	out, err := a.proc.SummarizeText(ctx, processor.TextRequest{
		Text:          string(data),
		Title:         strings.TrimSuffix(filepath.Base(c.File), filepath.Ext(c.File)),
		Meeting:       c.meeting(),
		SkipNormalize: c.NoNormalize,
		TranscriptOut: c.TranscriptOut,
		SummaryOut:    c.SummaryOut,
	})
	if err != nil {
		return err
	}
	printSummary(out)
	return nil
}

type WatchCmd struct{}

func (c *WatchCmd) Run(ctx context.Context, cli *CLI) error {
	a, err := newApp(ctx, cli.Config)
	if err != nil {
		return err
	}
	if err := a.cfg.ValidateWatch(); err != nil {
		return errortypes.Wrap(errortypes.KindConfiguration, err, "")
	}

	for _, dir := range []string{a.cfg.Paths.Input, a.cfg.Paths.Output, a.cfg.Paths.Temp} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	a.logger.Info(ctx, "========================================")
	a.logger.Info(ctx, "Meeting Digest watch mode")
	a.logger.Info(ctx, "========================================")
	a.logger.Info(ctx, "System: %s/%s, CPU cores: %d", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	a.logger.Info(ctx, "Monitoring: %s", a.cfg.Paths.Input)
	a.logger.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.logger.Info(ctx, "Transcription: %s, generator: %s/%s", a.cfg.Whisper.Backend, a.cfg.Generator.Provider, a.cfg.Generator.Model)
	a.logger.Info(ctx, "Concurrent: %d recordings at once", a.cfg.Performance.MaxConcurrent)

	if a.cfg.Metrics.Addr != "" {
		srv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: metricsMux(a), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			a.logger.Info(ctx, "Serving metrics on %s/metrics", a.cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error(ctx, "Metrics server error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	w, err := watcher.New(a.cfg.Paths.Input, watcher.ProcessorHandler(a.proc, a.cfg.Paths.Output), a.logger,
		watcher.Options{MaxConcurrent: a.cfg.Performance.MaxConcurrent})
	if err != nil {
		return err
	}
	defer w.Stop()

	a.logger.Info(ctx, "Press Ctrl+C to stop")
	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.logger.Info(ctx, "Meeting Digest stopped")
	return nil
}

func metricsMux(a *app) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	return mux
}

func printSummary(out processor.Output) {
	if out.Summary == "" {
		fmt.Println("nothing to summarize")
		return
	}
	fmt.Println(out.Summary)
}
