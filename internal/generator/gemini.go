package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/meeting-digest/internal/logger"
)

// GeminiOptions configures the Gemini backend.
type GeminiOptions struct {
	APIKeys         []string
	Model           string
	MaxOutputTokens int
	// ThinkingBudget caps thinking tokens on 2.5 models; 0 disables thinking so
	// MaxOutputTokens is spent on text. Nil keeps the model default.
	ThinkingBudget *int32
	// BaseURL overrides the Gemini API endpoint.
	BaseURL string
}

type implGemini struct {
	clients []*genai.Client
	model   string
	config  *genai.GenerateContentConfig
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int
}

// NewGemini creates one genai client per API key. Generate rotates to the next
// key when the current one is rate limited.
func NewGemini(ctx context.Context, opts GeminiOptions, log logger.Logger) (Generator, error) {
	if len(opts.APIKeys) == 0 {
		return nil, errors.New("gemini: at least one API key is required")
	}

	clients := make([]*genai.Client, 0, len(opts.APIKeys))
	for i, key := range opts.APIKeys {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:      key,
			Backend:     genai.BackendGeminiAPI,
			HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
		})
		if err != nil {
			return nil, fmt.Errorf("gemini: create client %d: %w", i+1, err)
		}
		clients = append(clients, client)
	}

	cfg := &genai.GenerateContentConfig{MaxOutputTokens: int32(opts.MaxOutputTokens)}
	if opts.ThinkingBudget != nil {
		cfg.ThinkingConfig = &genai.ThinkingConfig{ThinkingBudget: opts.ThinkingBudget}
	}

	return &implGemini{
		clients: clients,
		model:   opts.Model,
		config:  cfg,
		logger:  log,
	}, nil
}

func (g *implGemini) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for range g.clients {
		idx := g.key()

		result, err := g.clients[idx].Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
		if err != nil {
			if ctx.Err() == nil && isQuotaError(err) {
				g.logger.Warn(ctx, "Gemini key %d rate limited, rotating...", idx+1)
				g.rotate(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("gemini generate: %w", err)
		}

		if result == nil || len(result.Candidates) == 0 {
			return "", errors.New("gemini: empty response")
		}

		candidate := result.Candidates[0]
		var sb strings.Builder
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" && !part.Thought {
					sb.WriteString(part.Text)
				}
			}
		}
		// A reply cut off by the token cap can carry no text at all
		if strings.TrimSpace(sb.String()) == "" {
			return "", fmt.Errorf("gemini: no text in response (finish reason %s)", candidate.FinishReason)
		}
		return sb.String(), nil
	}

	return "", fmt.Errorf("gemini: all API keys exhausted: %w", lastErr)
}

func (g *implGemini) key() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey
}

// rotate advances past idx unless another call already did.
func (g *implGemini) rotate(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (idx + 1) % len(g.clients)
	}
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
