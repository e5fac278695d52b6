package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOpenAIGenerate(t *testing.T) {
	var gotMax int
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req struct {
			MaxTokens int `json:"max_tokens"`
			Messages  []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		gotMax = req.MaxTokens
		if len(req.Messages) > 0 {
			gotPrompt = req.Messages[0].Content
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"## Decisions"}}]}`))
	}))
	defer srv.Close()

	gen := NewOpenAI("", srv.URL, "local-model", 256)
	out, err := gen.Generate(context.Background(), "Transcript: hello")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != "## Decisions" {
		t.Errorf("Generate() = %q", out)
	}
	if gotMax != 256 {
		t.Errorf("max_tokens = %d, want 256", gotMax)
	}
	if gotPrompt != "Transcript: hello" {
		t.Errorf("prompt = %q", gotPrompt)
	}
}

func TestOpenAIGenerateServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"backend down","type":"server_error"}}`))
	}))
	defer srv.Close()

	gen := NewOpenAI("key", srv.URL+"/v1", "m", 16)
	if _, err := gen.Generate(context.Background(), "p"); err == nil {
		t.Error("Generate() should fail on 500")
	}
}

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Error 429: too many requests", true},
		{"RESOURCE_EXHAUSTED", true},
		{"quota exceeded", true},
		{"permission denied", false},
	}
	for _, tt := range tests {
		if got := isQuotaError(errString(tt.msg)); got != tt.want {
			t.Errorf("isQuotaError(%q) = %v, want %v", tt.msg, got, tt.want)
		}
	}
}

type errString string

func (e errString) Error() string { return string(e) }

func TestOpenAIGenerateEmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":""},"finish_reason":"length"}]}`))
	}))
	defer srv.Close()

	gen := NewOpenAI("", srv.URL, "local-model", 16)
	out, err := gen.Generate(context.Background(), "p")
	if err == nil {
		t.Fatalf("Generate() = %q, want error for an empty reply", out)
	}
	if !strings.Contains(err.Error(), "length") {
		t.Errorf("error should name the finish reason: %v", err)
	}
}
