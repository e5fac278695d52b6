package processor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/nguyentantai21042004/meeting-digest/internal/config"
	"github.com/nguyentantai21042004/meeting-digest/internal/errortypes"
	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
	"github.com/nguyentantai21042004/meeting-digest/pkg/executor"
)

type whisperCpp struct {
	cfg      config.WhisperConfig
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisperCpp transcribes with the whisper.cpp command line tool.
func NewWhisperCpp(cfg config.WhisperConfig, exec executor.Executor, log logger.Logger) Transcriber {
	return &whisperCpp{cfg: cfg, executor: exec, logger: log}
}

func (w *whisperCpp) Transcribe(ctx context.Context, audioPath string) (string, error) {
	binary, err := w.executor.LookPath(w.cfg.BinaryPath)
	if err != nil {
		return "", errortypes.TranscriptionBackendUnavailable(err, "whisper.cpp binary "+w.cfg.BinaryPath)
	}
	if _, err := os.Stat(w.cfg.ModelPath); err != nil {
		return "", errortypes.TranscriptionBackendUnavailable(err, "whisper model "+w.cfg.ModelPath)
	}

	// whisper.cpp appends .txt to the output prefix
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.cfg.Threads, audioPath)

	// -otxt: plain text output, -l: force language, -tr: translate to English
	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"--output-file", outputPrefix,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}
	if w.cfg.Translate {
		args = append(args, "-tr")
	}

	if _, err := w.executor.Execute(ctx, binary, args...); err != nil {
		return "", errortypes.Transcription(err, "whisper.cpp transcribe "+audioPath)
	}

	txtPath := outputPrefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", errortypes.Transcription(err, "read whisper output")
	}

	w.logger.Info(ctx, "Transcription completed: %s", txtPath)
	return strings.TrimSpace(string(data)), nil
}

type openAITranscriber struct {
	client *openai.Client
	cfg    config.WhisperConfig
	logger logger.Logger
}

// NewOpenAITranscriber uses the OpenAI audio API. Translate switches to the
// translation endpoint, which always produces English.
func NewOpenAITranscriber(cfg config.WhisperConfig, log logger.Logger) Transcriber {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return &openAITranscriber{client: openai.NewClientWithConfig(oc), cfg: cfg, logger: log}
}

func (o *openAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if o.cfg.APIKey == "" {
		return "", errortypes.TranscriptionBackendUnavailable(errors.New("OPENAI_API_KEY is not set"), "openai transcription")
	}

	req := openai.AudioRequest{
		Model:    o.cfg.OpenAIModel,
		FilePath: audioPath,
		Prompt:   o.cfg.Prompt,
		Format:   openai.AudioResponseFormatText,
	}

	o.logger.Info(ctx, "Uploading audio for transcription: %s", audioPath)

	var (
		resp openai.AudioResponse
		err  error
	)
	if o.cfg.Translate {
		resp, err = o.client.CreateTranslation(ctx, req)
	} else {
		req.Language = o.cfg.Language
		resp, err = o.client.CreateTranscription(ctx, req)
	}
	if err != nil {
		return "", errortypes.Transcription(err, "openai transcribe "+audioPath)
	}
	return strings.TrimSpace(resp.Text), nil
}
