package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type implOpenAI struct {
	client    *openai.Client
	model     string
	maxTokens int
}

// NewOpenAI targets the OpenAI API, or any compatible server when baseURL is set.
func NewOpenAI(apiKey, baseURL, model string, maxOutputTokens int) Generator {
	if apiKey == "" {
		// Local OpenAI-compatible servers accept any key.
		apiKey = "not-needed"
	}
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/v1") && !strings.HasSuffix(baseURL, "/v1/") {
			baseURL = strings.TrimSuffix(baseURL, "/") + "/v1"
		}
		config.BaseURL = baseURL
	}

	return &implOpenAI{
		client:    openai.NewClientWithConfig(config),
		model:     model,
		maxTokens: maxOutputTokens,
	}
}

func (o *implOpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: o.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty response")
	}
	choice := resp.Choices[0]
	if strings.TrimSpace(choice.Message.Content) == "" {
		return "", fmt.Errorf("openai: no text in response (finish reason %s)", choice.FinishReason)
	}
	return choice.Message.Content, nil
}
