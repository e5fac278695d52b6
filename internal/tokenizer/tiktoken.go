package tokenizer

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"

	"github.com/nguyentantai21042004/meeting-digest/internal/errortypes"
)

const (
	DefaultEncoding      = "cl100k_base"
	DefaultContextLength = 8192
)

type modelInfo struct {
	encoding      string
	contextLength int
}

// Longest prefixes first so "gpt-4o" wins over "gpt-4".
var modelPrefixes = []struct {
	prefix string
	info   modelInfo
}{
	{"gpt-4o-mini", modelInfo{"o200k_base", 128000}},
	{"gpt-4o", modelInfo{"o200k_base", 128000}},
	{"gpt-4-turbo", modelInfo{"cl100k_base", 128000}},
	{"gpt-4", modelInfo{"cl100k_base", 8192}},
	{"gpt-3.5-turbo", modelInfo{"cl100k_base", 16385}},
	// Gemini uses a SentencePiece vocabulary; cl100k_base counts only estimate
	// it, so Gemini context budgets are approximate.
	{"gemini-2.5", modelInfo{"cl100k_base", 1048576}},
	{"gemini-2.0", modelInfo{"cl100k_base", 1048576}},
	{"gemini-1.5", modelInfo{"cl100k_base", 1048576}},
	{"flan-t5", modelInfo{"cl100k_base", 512}},
}

type implTiktoken struct {
	encoding      string
	contextLength int

	once    sync.Once
	enc     *tiktoken.Tiktoken
	initErr error
}

// BPE ranks come from the files embedded in tiktoken-go-loader, never the network.
var offlineRanks sync.Once

// NewTiktoken returns a Tokenizer for model. contextOverride > 0 replaces the
// context length known for the model. The BPE ranks are loaded on first use.
func NewTiktoken(model string, contextOverride int) Tokenizer {
	offlineRanks.Do(func() {
		tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
	})
	info := lookup(model)
	if contextOverride > 0 {
		info.contextLength = contextOverride
	}
	return &implTiktoken{
		encoding:      info.encoding,
		contextLength: info.contextLength,
	}
}

func lookup(model string) modelInfo {
	model = strings.ToLower(model)
	for _, m := range modelPrefixes {
		if strings.HasPrefix(model, m.prefix) {
			return m.info
		}
	}
	return modelInfo{DefaultEncoding, DefaultContextLength}
}

func (t *implTiktoken) init() error {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			t.initErr = errortypes.Encoding(err, "load tiktoken encoding "+t.encoding)
			return
		}
		t.enc = enc
	})
	return t.initErr
}

func (t *implTiktoken) Encode(text string) ([]int, error) {
	if !utf8.ValidString(text) {
		return nil, errortypes.Encoding(errors.New("text is not valid UTF-8"), "encode")
	}
	if err := t.init(); err != nil {
		return nil, err
	}
	// Special tokens are encoded as plain text.
	return t.enc.Encode(text, nil, nil), nil
}

func (t *implTiktoken) Decode(tokens []int) (string, error) {
	if len(tokens) == 0 {
		return "", nil
	}
	if err := t.init(); err != nil {
		return "", err
	}
	return t.enc.Decode(tokens), nil
}

func (t *implTiktoken) MaxContextLength() int {
	return t.contextLength
}
