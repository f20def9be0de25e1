// Package core has core logic for repository analysis and doc generation.
package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/internal/generate"
	"github.com/engramdev/engram/internal/iostore"
	"github.com/engramdev/engram/internal/mcp"
	"github.com/engramdev/engram/internal/model"
	"github.com/engramdev/engram/internal/outwriter"
	"github.com/engramdev/engram/internal/serve"
	"github.com/engramdev/engram/schema"
)

// ExecutorFunc defines the function signature for executing different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config) error

// ExecuteAnalyze runs the heuristic analysis and the doc generation pass over
// one repository, then writes the report and its on-disk artifacts. It serves
// as the main entry point for the 'analyze' command.
func ExecuteAnalyze(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()

	if !cfg.JSONOnly {
		contract.LogAnalyzeHeader(cfg)
	}

	// --- 1. Heuristic analysis ---
	record, err := AnalyzeRepo(ctx, cfg, contract.NewLocalGitHistory())
	if err != nil {
		return err
	}
	if record.Description == "" {
		record.Description = fmt.Sprintf("Repository: %s", record.Name)
	}

	// --- 2. Doc generation ---
	gen, err := generateDocs(ctx, cfg, record)
	if err != nil {
		return err
	}
	report := schema.NewAnalysisReport(record, gen, time.Now().UTC().Format(time.RFC3339))

	// --- 3. Snapshot storage (if configured) ---
	if cfg.StoreSnapshots {
		storeSnapshot(cfg, record)
	}

	// --- 4. Output ---
	writer := outwriter.NewOutWriter()
	out := cfg
	if cfg.JSONOnly {
		// The report goes to stdout for piping and nothing touches the disk.
		out = cfg.Clone()
		out.Output = schema.JSONOut
		out.OutputFile = ""
	} else if err := writer.WriteReportFiles(report, cfg); err != nil {
		return err
	}
	duration := time.Since(start)
	return writer.WriteReport(report, out, duration)
}

// orgName resolves the attribution org: the explicit flag wins, then the
// repository name.
func orgName(cfg *contract.Config, record *schema.RepoAnalysis) string {
	if cfg.OrgName != "" {
		return cfg.OrgName
	}
	return record.Name
}

// generateDocs runs the model-backed generation pass. A disabled backend is
// not an error: the run keeps the heuristic-only report.
func generateDocs(ctx context.Context, cfg *contract.Config, record *schema.RepoAnalysis) (*schema.GenerationResult, error) {
	quiet := cfg.JSONOnly
	if cfg.SkipModel {
		if !quiet {
			contract.NoColor.Println("Skipped model inference (--skip-model)")
		}
		return nil, nil
	}

	client, err := model.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if oc, ok := client.(*model.OllamaClient); ok && !quiet {
		// The pull stream repeats each status with updated byte counts,
		// so only announce distinct phases.
		var last string
		oc.Progress = func(status string, _, _ int64) {
			if status == last {
				return
			}
			last = status
			fmt.Printf("  %s\n", status)
		}
	}

	if err := client.EnsureReady(ctx); err != nil {
		if errors.Is(err, model.ErrModelDisabled) {
			if !quiet {
				contract.NoColor.Println("Model inference disabled, keeping the heuristic-only report")
			}
			return nil, nil
		}
		return nil, fmt.Errorf("model %s is not ready: %w", client.Name(), err)
	}
	if !quiet {
		fmt.Printf("Model ready: %s\n", client.Name())
	}

	var progress generate.Progress
	if !quiet {
		progress = func(message string, step, total int) {
			fmt.Printf("  [%d/%d] %s\n", step, total, message)
		}
	}
	return generate.Run(ctx, client, record, orgName(cfg, record), progress), nil
}

// storeSnapshot persists the record. Store failures warn instead of failing
// the run.
func storeSnapshot(cfg *contract.Config, record *schema.RepoAnalysis) {
	store, err := iostore.NewSnapshotStore(cfg.StoreBackend, cfg.StoreDBConnect)
	if err != nil {
		contract.LogWarn("snapshot store unavailable", err)
		return
	}
	defer func() { _ = store.Close() }()

	id, err := store.Put(record)
	if err != nil {
		contract.LogWarn("snapshot write failed", err)
		return
	}
	if !cfg.JSONOnly && id != "" {
		fmt.Printf("Stored snapshot %s\n", id)
	}
}

// ExecuteServe hosts the local viewer over previously generated output.
// It serves as the main entry point for the 'serve' command.
func ExecuteServe(ctx context.Context, cfg *contract.Config) error {
	srv, err := serve.NewServer(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("Serving analysis from %s at %s\n", cfg.ServeDir, srv.URL())
	fmt.Println("Press Ctrl+C to stop")
	return srv.Start(ctx)
}

// ExecuteModels displays the recommended model table, then reports what the
// local Ollama server has installed. The table is a static display that does
// not require a running server.
func ExecuteModels(ctx context.Context, cfg *contract.Config) error {
	if err := outwriter.WriteModelRecommendations(os.Stdout); err != nil {
		return err
	}

	client := model.NewOllamaClient(cfg.Model, cfg.ModelHost)
	if !client.IsRunning(ctx) {
		contract.NoColor.Println("Ollama is not running. Start with: ollama serve")
		return nil
	}
	contract.YesColor.Println("Ollama is running")

	installed, err := client.InstalledModels(ctx)
	if err != nil {
		return err
	}
	if len(installed) == 0 {
		contract.NoColor.Printf("No models installed. Run: ollama pull %s\n", model.DefaultOllamaModel)
		return nil
	}
	fmt.Printf("Installed models: %s\n", strings.Join(installed, ", "))
	return nil
}

// ExecuteMCP starts the stdio MCP server over the injected snapshot store.
// It blocks until stdin closes.
func ExecuteMCP(ctx context.Context, cfg *contract.Config, store contract.SnapshotStore) error {
	return mcp.StartMCPServer(ctx, cfg, contract.NewLocalGitHistory(), store)
}
