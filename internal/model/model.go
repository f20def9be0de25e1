// Package model implements the completion backends used for doc generation.
// Every backend satisfies contract.ModelClient; the factory picks one from
// the validated config.
package model

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/schema"
)

// Default models and endpoints per provider.
const (
	DefaultOllamaModel = "qwen2.5-coder:7b"
	DefaultOllamaHost  = "http://localhost:11434"
	DefaultGeminiModel = "gemini-2.5-flash"
)

// Request deadlines. Pulls cover a multi-gigabyte download, generations a
// full document on CPU-bound hardware.
const (
	probeTimeout    = 5 * time.Second
	tagsTimeout     = 10 * time.Second
	pullTimeout     = 10 * time.Minute
	generateTimeout = 5 * time.Minute
)

// ErrModelDisabled marks a run configured without a completion backend.
var ErrModelDisabled = errors.New("model inference is disabled")

// NewClient builds the model client for the configured provider.
func NewClient(ctx context.Context, cfg *contract.Config) (contract.ModelClient, error) {
	switch cfg.Provider {
	case schema.OllamaProvider:
		return NewOllamaClient(cfg.Model, cfg.ModelHost), nil
	case schema.GeminiProvider:
		return NewGeminiClient(ctx, cfg.Model)
	case schema.NoneProvider:
		return &DisabledClient{}, nil
	}
	return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
}
