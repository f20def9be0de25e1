// Package generate turns one analysis record into a set of skill and memory
// documents by prompting the configured model client. Steps degrade
// individually: a failed document is recorded as an error string and the
// remaining steps still run.
package generate

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/engramdev/engram/internal/contract"
	"github.com/engramdev/engram/internal/prompts"
	"github.com/engramdev/engram/schema"
)

// skillTier is the storage tier stamped on every generated skill.
const skillTier = 2

// Per-document input caps.
const (
	maxKeyFileExcerpt   = 1000
	activityCommitLimit = 20
)

// keyFilePriority mirrors the analyzer's capture order so the pattern
// prompt excerpts the same files run to run.
var keyFilePriority = []string{
	"README.md",
	"CONTRIBUTING.md",
	"ARCHITECTURE.md",
	"package.json",
	"Cargo.toml",
	"go.mod",
	"pyproject.toml",
}

// Progress receives step announcements during generation.
type Progress func(message string, step, total int)

// step is one document to generate. run appends to the result on success.
type step struct {
	name string
	run  func(ctx context.Context, result *schema.GenerationResult) error
}

// generator carries the inputs shared by every step.
type generator struct {
	client contract.ModelClient
	record *schema.RepoAnalysis

	org     string
	repo    string
	today   string
	context string
}

// Run generates the full document set for one analysis record.
func Run(ctx context.Context, client contract.ModelClient, record *schema.RepoAnalysis, orgName string, progress Progress) *schema.GenerationResult {
	start := time.Now()
	g := newGenerator(client, record, orgName)
	result := schema.NewGenerationResult(client.Name())

	steps := g.plan()
	for i, s := range steps {
		if progress != nil {
			progress(fmt.Sprintf("Generating %s...", s.name), i+1, len(steps))
		}
		if err := s.run(ctx, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", s.name, err))
		}
	}

	result.GenerationTimeSeconds = roundTenth(time.Since(start).Seconds())
	return result
}

func newGenerator(client contract.ModelClient, record *schema.RepoAnalysis, orgName string) *generator {
	org := orgName
	if org == "" {
		org = record.Name
	}
	return &generator{
		client:  client,
		record:  record,
		org:     org,
		repo:    record.Name,
		today:   time.Now().Format(contract.DateFormat),
		context: record.PromptSummary(),
	}
}

// plan returns the steps this record warrants. Architecture, patterns and
// the overview always run; testing and activity documents need evidence in
// the record.
func (g *generator) plan() []step {
	steps := []step{
		{"architecture skill", g.architectureSkill},
		{"patterns skill", g.patternsSkill},
	}
	if g.record.HasTests {
		steps = append(steps, step{"testing skill", g.testingSkill})
	}
	steps = append(steps, step{"project overview", g.overviewMemory})
	if len(g.record.RecentCommits) > 0 {
		steps = append(steps, step{"activity analysis", g.activityMemory})
	}
	return steps
}

func (g *generator) architectureSkill(ctx context.Context, result *schema.GenerationResult) error {
	content, err := g.client.Generate(ctx, prompts.ArchitectureSkill(g.context, g.record.ReadmeExcerpt))
	if err != nil {
		return err
	}
	g.appendSkill(result, "architecture", content, []frontmatterField{
		{"name", g.repo + "-architecture"},
		{"description", "Architecture overview for " + g.repo},
		{"last_updated", g.today},
	})
	return nil
}

func (g *generator) patternsSkill(ctx context.Context, result *schema.GenerationResult) error {
	content, err := g.client.Generate(ctx, prompts.PatternsSkill(g.context, g.keyFilesSummary()))
	if err != nil {
		return err
	}
	g.appendSkill(result, "patterns", content, []frontmatterField{
		{"name", g.repo + "-patterns"},
		{"description", "Code patterns and conventions for " + g.repo},
		{"last_updated", g.today},
	})
	return nil
}

func (g *generator) testingSkill(ctx context.Context, result *schema.GenerationResult) error {
	content, err := g.client.Generate(ctx, prompts.TestingSkill(g.context))
	if err != nil {
		return err
	}
	g.appendSkill(result, "testing", content, []frontmatterField{
		{"name", g.repo + "-testing"},
		{"description", "Testing strategy for " + g.repo},
		{"last_updated", g.today},
	})
	return nil
}

func (g *generator) overviewMemory(ctx context.Context, result *schema.GenerationResult) error {
	content, err := g.client.Generate(ctx, prompts.OverviewMemory(g.context, g.record.ReadmeExcerpt))
	if err != nil {
		return err
	}
	g.appendMemory(result, "overview", content, "exploration")
	return nil
}

func (g *generator) activityMemory(ctx context.Context, result *schema.GenerationResult) error {
	content, err := g.client.Generate(ctx, prompts.ActivityMemory(g.context, g.commitsSummary()))
	if err != nil {
		return err
	}
	g.appendMemory(result, "activity", content, "activity-analysis")
	return nil
}

// appendSkill stamps frontmatter onto a skill document and records it.
func (g *generator) appendSkill(result *schema.GenerationResult, kind, content string, fields []frontmatterField) {
	result.Skills = append(result.Skills, schema.GeneratedSkill{
		Org:     g.org,
		Repo:    g.repo,
		Tier:    skillTier,
		Path:    kind + "/SKILL.md",
		Name:    kind + ".md",
		Content: ensureFrontmatter(content, fields),
	})
}

// appendMemory stamps frontmatter onto a session memory and records it.
// Memories file under the org's .memory area rather than the repo itself.
func (g *generator) appendMemory(result *schema.GenerationResult, kind, content, memoryType string) {
	fields := []frontmatterField{
		{"date", g.today},
		{"type", memoryType},
		{"model", fmt.Sprintf("engram-local (%s)", g.client.Name())},
		{"cost_usd", "0"},
	}
	fname := fmt.Sprintf("%s-%s-%s.md", g.today, g.repo, kind)
	result.Memories = append(result.Memories, schema.GeneratedMemory{
		Org:     g.org,
		Repo:    ".memory",
		Path:    "sessions/" + fname,
		Name:    fname,
		Content: ensureFrontmatter(content, fields),
	})
}

// keyFilesSummary excerpts up to three captured key files in priority order.
func (g *generator) keyFilesSummary() string {
	var parts []string
	for _, name := range keyFilePriority {
		content, ok := g.record.KeyFileContents[name]
		if !ok {
			continue
		}
		if len(content) > maxKeyFileExcerpt {
			content = content[:maxKeyFileExcerpt]
		}
		parts = append(parts, fmt.Sprintf("--- %s ---\n%s", name, content))
		if len(parts) == 3 {
			break
		}
	}
	return strings.Join(parts, "\n")
}

// commitsSummary renders the newest commits as a bullet list for the
// activity prompt.
func (g *generator) commitsSummary() string {
	commits := g.record.RecentCommits
	if len(commits) > activityCommitLimit {
		commits = commits[:activityCommitLimit]
	}
	lines := make([]string, 0, len(commits))
	for _, c := range commits {
		lines = append(lines, fmt.Sprintf("- %s %s: %s", c.Date, c.Author, c.Message))
	}
	return strings.Join(lines, "\n")
}

// roundTenth rounds a duration in seconds to one decimal place.
func roundTenth(seconds float64) float64 {
	return math.Round(seconds*10) / 10
}
