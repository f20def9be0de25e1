package core

import (
	"context"
	"fmt"
	"time"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/schema"
)

// Bounds on how much history enters a record.
const (
	recentCommitLimit = 30
	contributorLimit  = 10
)

// CollectHistory runs the version-control queries for a repository. Each
// query carries its own timeout and degrades independently: a slow or
// failing query records a diagnostic and leaves its fields empty instead of
// discarding the rest. Repositories without history yield an empty summary.
func CollectHistory(ctx context.Context, provider contract.HistoryProvider, root string, timeout time.Duration) *schema.HistorySummary {
	summary := &schema.HistorySummary{}
	if !provider.HasHistory(root) {
		return summary
	}

	run := func(name string, query func(context.Context) error) {
		qctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := query(qctx); err != nil {
			summary.Diagnostics = append(summary.Diagnostics, fmt.Sprintf("git %s: %v", name, err))
		}
	}

	run("recent commits", func(qctx context.Context) error {
		commits, err := provider.RecentCommits(qctx, root, recentCommitLimit)
		if err != nil {
			return err
		}
		summary.RecentCommits = commits
		if len(commits) > 0 {
			summary.LastCommitDate = commits[0].Date
		}
		return nil
	})
	run("commit count", func(qctx context.Context) error {
		count, err := provider.CommitCount(qctx, root)
		if err != nil {
			return err
		}
		summary.CommitCount = count
		return nil
	})
	run("first commit", func(qctx context.Context) error {
		date, err := provider.FirstCommitDate(qctx, root)
		if err != nil {
			return err
		}
		summary.FirstCommitDate = date
		return nil
	})
	run("contributors", func(qctx context.Context) error {
		contributors, err := provider.TopContributors(qctx, root, contributorLimit)
		if err != nil {
			return err
		}
		summary.Contributors = contributors
		return nil
	})

	return summary
}
