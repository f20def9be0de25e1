package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/schema"
)

// AnalyzeRepo builds the complete record for one repository. The tree walk,
// manifest scan and history extraction have no data dependency on each other
// and run concurrently; their partial results merge in a fixed order so
// repeated runs produce identical records. The only fatal conditions are a
// path that is not a directory and the caller's deadline expiring mid-walk.
// Everything else degrades into empty fields plus diagnostics.
func AnalyzeRepo(ctx context.Context, cfg *contract.Config, history contract.HistoryProvider) (*schema.RepoAnalysis, error) {
	root := cfg.RepoPath
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("not a directory: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", root)
	}
	name := cfg.RepoName
	if name == "" {
		name = filepath.Base(root)
	}

	if cfg.AnalysisTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.AnalysisTimeout)
		defer cancel()
	}

	var (
		tree          *schema.TreeSummary
		manifests     []schema.ManifestResult
		manifestDiags []string
		licenseType   string
		hist          *schema.HistorySummary
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var walkErr error
		tree, walkErr = Walk(gctx, root)
		return walkErr
	})
	g.Go(func() error {
		manifests, manifestDiags = ScanManifests(root)
		licenseType = DetectLicense(root)
		return nil
	})
	g.Go(func() error {
		hist = CollectHistory(gctx, history, root, cfg.GitTimeout)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	record := &schema.RepoAnalysis{Path: root, Name: name}
	mergeTree(record, tree)
	record.Languages = DetectLanguages(record.FileExtensions)
	mergeManifests(record, manifests)
	record.Diagnostics = append(record.Diagnostics, manifestDiags...)
	record.LicenseType = licenseType
	record.Patterns = DetectPatterns(record)
	record.KeyFileContents, record.ReadmeExcerpt = CaptureKeyFiles(root)
	mergeHistory(record, hist)
	return record, nil
}

// mergeTree copies the walk output into the record.
func mergeTree(record *schema.RepoAnalysis, tree *schema.TreeSummary) {
	record.TotalFiles = tree.TotalFiles
	record.TotalDirs = tree.TotalDirs
	record.TopDirs = tree.TopDirs
	record.FileExtensions = tree.FileExtensions
	record.HasTests = tree.HasTests
	record.TestFramework = tree.TestFramework
	record.TestDirs = tree.TestDirs
	record.TestFileCount = tree.TestFileCount
	record.HasCI = tree.HasCI
	record.CIPlatform = tree.CIPlatform
	record.CIFiles = tree.CIFiles
	record.HasDocker = tree.HasDocker
	record.DockerFiles = tree.DockerFiles
	record.HasK8s = tree.HasK8s
	record.HasReadme = tree.HasReadme
	record.HasContributing = tree.HasContributing
	record.HasChangelog = tree.HasChangelog
	record.HasLicense = tree.HasLicense
	record.ConfigFiles = tree.ConfigFiles
	record.EntryPoints = tree.EntryPoints
	record.Diagnostics = append(record.Diagnostics, tree.Diagnostics...)
}

// mergeManifests folds the per-ecosystem partial results into the record in
// table order. The description is first-writer-wins, frameworks and package
// managers are deduplicated sets, and dependency categories concatenate.
// Python results union into one deduplicated, capped category because up to
// three manifests feed it.
func mergeManifests(record *schema.RepoAnalysis, results []schema.ManifestResult) {
	var pythonDeps []string
	for _, res := range results {
		if res.PackageManager != "" {
			record.PackageManagers = appendUnique(record.PackageManagers, res.PackageManager)
		}
		if record.Description == "" {
			record.Description = res.Description
		}
		for _, fw := range res.Frameworks {
			record.Frameworks = appendUnique(record.Frameworks, fw)
		}
		for category, deps := range res.Dependencies {
			if category == "python" {
				for _, dep := range deps {
					pythonDeps = appendUnique(pythonDeps, dep)
				}
				continue
			}
			if record.Dependencies == nil {
				record.Dependencies = map[string][]string{}
			}
			record.Dependencies[category] = append(record.Dependencies[category], deps...)
		}
	}
	if len(pythonDeps) > depListLimit {
		pythonDeps = pythonDeps[:depListLimit]
	}
	if len(pythonDeps) > 0 {
		if record.Dependencies == nil {
			record.Dependencies = map[string][]string{}
		}
		record.Dependencies["python"] = pythonDeps
	}
}

// mergeHistory copies the version-control output into the record.
func mergeHistory(record *schema.RepoAnalysis, hist *schema.HistorySummary) {
	record.RecentCommits = hist.RecentCommits
	record.Contributors = hist.Contributors
	record.CommitCount = hist.CommitCount
	record.FirstCommitDate = hist.FirstCommitDate
	record.LastCommitDate = hist.LastCommitDate
	record.Diagnostics = append(record.Diagnostics, hist.Diagnostics...)
}
