// Package writer persists transcripts and summaries as text or .docx files.
package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Kind selects how an Output is rendered.
type Kind int

const (
	KindTranscript Kind = iota
	KindSummary
)

// Output is one file to write. Empty Path outputs are skipped.
type Output struct {
	Path    string
	Title   string
	Content string
	Kind    Kind
}

// WriteAll renders every output to a temporary sibling file first and renames
// them into place only when all renders succeeded. A failed rename removes the
// outputs already moved, so a failure leaves no partial output behind.
func WriteAll(outputs ...Output) error {
	var pending []Output
	var temps []string
	cleanup := func() {
		for _, t := range temps {
			os.Remove(t)
		}
	}

	for _, out := range outputs {
		if out.Path == "" {
			continue
		}
		if dir := filepath.Dir(out.Path); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				cleanup()
				return fmt.Errorf("create output dir: %w", err)
			}
		}

		tmp := out.Path + ".tmp"
		if err := render(out, tmp); err != nil {
			os.Remove(tmp)
			cleanup()
			return fmt.Errorf("write %s: %w", out.Path, err)
		}
		temps = append(temps, tmp)
		pending = append(pending, out)
	}

	for i, out := range pending {
		if err := os.Rename(temps[i], out.Path); err != nil {
			// Outputs already moved would be orphaned without their siblings.
			for _, done := range pending[:i] {
				os.Remove(done.Path)
			}
			cleanup()
			return fmt.Errorf("move %s into place: %w", out.Path, err)
		}
	}
	return nil
}

func render(out Output, path string) error {
	isDocx := strings.EqualFold(filepath.Ext(out.Path), ".docx")

	switch {
	case isDocx && out.Kind == KindSummary:
		return markdownToDocx(out.Title, out.Content, path)
	case isDocx:
		return transcriptToDocx(out.Title, out.Content, path)
	case out.Kind == KindSummary && strings.EqualFold(filepath.Ext(out.Path), ".md"):
		md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
			out.Title,
			time.Now().Format("2006-01-02 15:04"),
			strings.TrimSpace(out.Content),
		)
		return os.WriteFile(path, []byte(md), 0644)
	default:
		return os.WriteFile(path, []byte(strings.TrimSpace(out.Content)+"\n"), 0644)
	}
}
