package processor

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/meeting-digest/internal/errortypes"
)

// extractAudio converts the media file's audio track to 16kHz mono WAV inside
// workDir, the format whisper expects.
func (p *implProcessor) extractAudio(ctx context.Context, mediaPath, workDir string) (string, error) {
	ffmpeg, err := p.executor.LookPath(p.cfg.FFmpeg.BinaryPath)
	if err != nil {
		return "", errortypes.MediaToolUnavailable(err, "ffmpeg is required to extract audio; install it and ensure it is in your PATH")
	}

	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	audioPath := filepath.Join(workDir, base+".wav")

	p.logger.Info(ctx, "Extracting audio: %s", mediaPath)

	// -vn: drop video, -ar/-ac: 16kHz mono, pcm_s16le: uncompressed 16-bit
	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, ffmpeg, args...); err != nil {
		return "", errortypes.Extraction(err, "ffmpeg extract audio from "+mediaPath)
	}

	p.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}
