package model

import (
	"context"

	"github.com/engramdev/engram/internal/contract"
)

// DisabledClient is the backend for runs configured with no model provider.
// Every call reports ErrModelDisabled so callers fall back to the
// heuristic-only output path.
type DisabledClient struct{}

// Compile-time check
var _ contract.ModelClient = &DisabledClient{}

// Name matches the model label written into heuristic-only reports.
func (*DisabledClient) Name() string {
	return "none (heuristic only)"
}

// EnsureReady reports that generation is unavailable.
func (*DisabledClient) EnsureReady(ctx context.Context) error {
	return ErrModelDisabled
}

// Generate always fails with ErrModelDisabled.
func (*DisabledClient) Generate(ctx context.Context, prompt string) (string, error) {
	return "", ErrModelDisabled
}

// GenerateJSON always fails with ErrModelDisabled.
func (*DisabledClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	return "", ErrModelDisabled
}
