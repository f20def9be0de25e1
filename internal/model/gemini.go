package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"google.golang.org/genai"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/internal/prompts"
)

const geminiAttempts = 3

// GeminiClient generates docs through the hosted Gemini API. It exists for
// machines that cannot run a local model; everything else about the run
// stays identical to the Ollama path.
type GeminiClient struct {
	cli   *genai.Client
	model string
}

// Compile-time check
var _ contract.ModelClient = &GeminiClient{}

// NewGeminiClient builds a Gemini-backed client. The API key comes from
// GEMINI_API_KEY, which the CLI also loads from a .env file.
func NewGeminiClient(ctx context.Context, model string) (*GeminiClient, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	key := os.Getenv("GEMINI_API_KEY")
	if key == "" {
		return nil, errors.New("GEMINI_API_KEY is not set (export it or add it to a .env file)")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{cli: cli, model: model}, nil
}

// Name returns the configured model name.
func (g *GeminiClient) Name() string {
	return g.model
}

// EnsureReady is a no-op: the hosted API needs no local provisioning and
// the key was already checked at construction.
func (g *GeminiClient) EnsureReady(ctx context.Context) error {
	return nil
}

// Generate returns a plain-text completion for the prompt.
func (g *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	return g.complete(ctx, prompt, false)
}

// GenerateJSON returns a completion constrained to a JSON object.
func (g *GeminiClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	text, err := g.complete(ctx, prompt, true)
	if err != nil {
		return "", err
	}
	if !json.Valid([]byte(text)) {
		return "", fmt.Errorf("model returned invalid JSON: %s", clipForError(text))
	}
	return text, nil
}

// complete calls the API with retries. Transient failures back off
// exponentially starting at 300ms.
func (g *GeminiClient) complete(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	temperature := float32(defaultTemperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: prompts.System}}},
	}
	if jsonMode {
		temperature = float32(jsonTemperature)
		cfg.ResponseMIMEType = "application/json"
	}
	contents := []*genai.Content{{Parts: []*genai.Part{{Text: prompt}}}}

	var lastErr error
	for attempt := 0; attempt < geminiAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		resp, err := g.cli.Models.GenerateContent(ctx, g.model, contents, cfg)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
			continue
		}
		text, err := responseText(resp)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(300*(1<<attempt)) * time.Millisecond)
			continue
		}
		return text, nil
	}
	return "", fmt.Errorf("gemini generation failed after %d attempts: %w", geminiAttempts, lastErr)
}

// responseText pulls the first candidate's text out of a response.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from model")
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", errors.New("response candidate has no content")
	}
	return content.Parts[0].Text, nil
}
