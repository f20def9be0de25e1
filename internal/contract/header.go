package contract

import (
	"fmt"
	"path/filepath"
	"time"
)

// LogAnalyzeHeader prints a concise, 2-line header for an analysis run.
func LogAnalyzeHeader(cfg *Config) {
	repoName := cfg.RepoName
	if repoName == "" || repoName == "." {
		repoName = filepath.Base(cfg.RepoPath)
	}

	// Line 1: The analysis summary (Repo and Provider)
	fmt.Printf("🔎 Repo: %s (provider: %s)\n", repoName, cfg.Provider)

	// Line 2: When the run started
	fmt.Printf("📅 Started: %s\n", time.Now().Format(DateTimeFormat))
}
