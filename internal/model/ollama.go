package model

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/internal/prompts"
)

// Sampling settings for doc generation. JSON completions run slightly
// colder to keep the output parseable.
const (
	defaultTemperature  = 0.3
	jsonTemperature     = 0.2
	maxCompletionTokens = 4096
	serverStartPolls    = 15
)

// PullProgress receives streamed download state while a model is fetched.
// total stays zero until the registry reports a layer size.
type PullProgress func(status string, completed, total int64)

// OllamaClient talks to a local Ollama server over its HTTP API.
type OllamaClient struct {
	model   string
	baseURL string
	client  *http.Client

	// Progress, when set, receives pull updates during EnsureReady.
	Progress PullProgress
}

// Compile-time check
var _ contract.ModelClient = &OllamaClient{}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system,omitempty"`
	Stream  bool            `json:"stream"`
	Format  string          `json:"format,omitempty"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type pullRequest struct {
	Name string `json:"name"`
}

type pullEvent struct {
	Status    string `json:"status"`
	Completed int64  `json:"completed"`
	Total     int64  `json:"total"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaClient builds a client for the given model and server address,
// falling back to the package defaults when either is empty.
func NewOllamaClient(model, baseURL string) *OllamaClient {
	if model == "" {
		model = DefaultOllamaModel
	}
	if baseURL == "" {
		baseURL = DefaultOllamaHost
	}
	return &OllamaClient{
		model:   model,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
	}
}

// Name returns the configured model tag.
func (c *OllamaClient) Name() string {
	return c.model
}

// EnsureReady checks that the server answers and the model is installed,
// starting the server and pulling the model when either is missing.
func (c *OllamaClient) EnsureReady(ctx context.Context) error {
	if !c.IsRunning(ctx) {
		if err := c.startServer(ctx); err != nil {
			return err
		}
	}
	ok, err := c.hasModel(ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	return c.Pull(ctx)
}

// Generate returns a plain-text completion for the prompt.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	return c.complete(ctx, prompt, false)
}

// GenerateJSON returns a completion constrained to a JSON object.
func (c *OllamaClient) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	text, err := c.complete(ctx, prompt, true)
	if err != nil {
		return "", err
	}
	if !json.Valid([]byte(text)) {
		return "", fmt.Errorf("model returned invalid JSON: %s", clipForError(text))
	}
	return text, nil
}

// IsRunning probes the server's tag listing with a short deadline.
func (c *OllamaClient) IsRunning(ctx context.Context) bool {
	_, err := c.tags(ctx, probeTimeout)
	return err == nil
}

// InstalledModels returns the model tags the server currently hosts.
func (c *OllamaClient) InstalledModels(ctx context.Context) ([]string, error) {
	tags, err := c.tags(ctx, tagsTimeout)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Pull downloads the configured model through the server, reporting stream
// progress to the Progress callback when one is set.
func (c *OllamaClient) Pull(ctx context.Context) error {
	if err := c.pull(ctx); err != nil {
		return fmt.Errorf("failed to pull model %s: %w", c.model, err)
	}
	return nil
}

// complete issues one /api/generate call and extracts the response text.
func (c *OllamaClient) complete(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	req := generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		System:  prompts.System,
		Options: generateOptions{Temperature: defaultTemperature, NumPredict: maxCompletionTokens},
	}
	if jsonMode {
		req.Format = "json"
		req.Options.Temperature = jsonTemperature
	}

	resp, err := c.post(ctx, "/api/generate", req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("model generation timed out after %s", generateTimeout)
		}
		return "", fmt.Errorf("cannot reach Ollama at %s (is it running? try: ollama serve): %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, clipForError(string(body)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode generate response: %w", err)
	}
	return out.Response, nil
}

// pull streams the download and confirms the model is visible afterwards.
func (c *OllamaClient) pull(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pullTimeout)
	defer cancel()

	resp, err := c.post(ctx, "/api/pull", pullRequest{Name: c.model})
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, clipForError(string(body)))
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var ev pullEvent
		if err := json.Unmarshal(line, &ev); err != nil {
			// Truncated progress frames are skipped, not fatal.
			continue
		}
		if c.Progress != nil {
			c.Progress(ev.Status, ev.Completed, ev.Total)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	ok, err := c.hasModel(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("model not reported by the server after the download finished")
	}
	return nil
}

// startServer launches "ollama serve" in the background and waits for the
// API to answer. The serve process outlives this CLI.
func (c *OllamaClient) startServer(ctx context.Context) error {
	cmd := exec.Command("ollama", "serve")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("ollama is not installed or cannot start (install it from https://ollama.com, then run: ollama serve): %w", err)
	}
	_ = cmd.Process.Release()

	for i := 0; i < serverStartPolls; i++ {
		if c.IsRunning(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("ollama did not come up at %s after %d seconds", c.baseURL, serverStartPolls)
}

// hasModel reports whether the configured model is already installed.
func (c *OllamaClient) hasModel(ctx context.Context) (bool, error) {
	tags, err := c.tags(ctx, tagsTimeout)
	if err != nil {
		return false, err
	}
	for _, m := range tags.Models {
		if matchesModel(m.Name, c.model) {
			return true, nil
		}
	}
	return false, nil
}

// tags fetches /api/tags under the given deadline.
func (c *OllamaClient) tags(ctx context.Context, timeout time.Duration) (*tagsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama returned status %d", resp.StatusCode)
	}
	var out tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// post sends a JSON payload and returns the raw response for the caller
// to consume.
func (c *OllamaClient) post(ctx context.Context, path string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// matchesModel reports whether an installed tag satisfies the requested
// model name. A bare request like "qwen2.5-coder" matches any of its tags,
// and ":latest" is implied when the request has no tag.
func matchesModel(installed, requested string) bool {
	if installed == requested {
		return true
	}
	if strings.SplitN(installed, ":", 2)[0] == requested {
		return true
	}
	return installed == requested+":latest"
}

// clipForError bounds server payloads quoted inside error messages.
func clipForError(s string) string {
	const max = 200
	if len(s) > max {
		return s[:max]
	}
	return s
}
