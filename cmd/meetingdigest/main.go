package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// CLI is the command line of meetingdigest.
type CLI struct {
	Config string `short:"c" type:"path" help:"Path to the YAML config file. Defaults apply when empty." env:"MEETINGDIGEST_CONFIG"`

	Summarize SummarizeCmd `cmd:"" help:"Summarize one meeting recording."`
	Text      TextCmd      `cmd:"" help:"Summarize an existing transcript file."`
	Watch     WatchCmd     `cmd:"" help:"Watch the input directory and summarize new recordings."`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("meetingdigest"),
		kong.Description("Transcribe meeting recordings and summarize them with a language model."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	if err := kctx.Run(&cli); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
