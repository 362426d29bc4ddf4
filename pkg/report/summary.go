package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"digital.vasic.conformance/pkg/harness"
	"digital.vasic.conformance/pkg/runner"
)

// RunSummary represents an aggregated summary of a whole run.
type RunSummary struct {
	ID             string           `json:"id"`
	GeneratedAt    time.Time        `json:"generated_at"`
	Fixtures       []FixtureSummary `json:"fixtures"`
	TotalFixtures  int              `json:"total_fixtures"`
	PassedFixtures int              `json:"passed_fixtures"`
	FailedFixtures int              `json:"failed_fixtures"`
	TotalDuration  time.Duration    `json:"total_duration"`
	PassRate       float64          `json:"pass_rate"`
}

// FixtureSummary represents a summary of a single fixture run.
type FixtureSummary struct {
	Fixture     string        `json:"fixture"`
	Title       string        `json:"title"`
	Engine      string        `json:"engine"`
	Status      string        `json:"status"`
	Duration    time.Duration `json:"duration"`
	TestsPassed int           `json:"tests_passed"`
	TestsTotal  int           `json:"tests_total"`
}

// BuildSummary creates a run summary from fixture results.
func BuildSummary(results []*runner.Result) *RunSummary {
	summary := &RunSummary{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now(),
		Fixtures:    make([]FixtureSummary, 0, len(results)),
	}

	for _, r := range results {
		testsPassed := 0
		for _, tc := range r.Tests {
			if tc.Status == harness.StatusPass {
				testsPassed++
			}
		}

		fs := FixtureSummary{
			Fixture:     r.Fixture,
			Title:       r.Title,
			Engine:      r.Engine,
			Status:      string(r.Status),
			Duration:    r.Duration,
			TestsPassed: testsPassed,
			TestsTotal:  len(r.Tests),
		}

		summary.Fixtures = append(summary.Fixtures, fs)
		summary.TotalFixtures++
		summary.TotalDuration += r.Duration

		if r.Status == runner.StatusPassed {
			summary.PassedFixtures++
		} else {
			summary.FailedFixtures++
		}
	}

	if summary.TotalFixtures > 0 {
		summary.PassRate =
			float64(summary.PassedFixtures) /
				float64(summary.TotalFixtures)
	}

	return summary
}

// SaveSummary saves the run summary to both JSON and Markdown
// files in the given output directory, updating latest_*
// symlinks.
func SaveSummary(summary *RunSummary, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf(
			"failed to create output directory: %w", err,
		)
	}

	ts := summary.GeneratedAt.Format("20060102_150405")

	jsonPath := filepath.Join(
		outputDir,
		fmt.Sprintf("run_summary_%s.json", ts),
	)
	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf(
			"failed to marshal summary: %w", err,
		)
	}
	if err := os.WriteFile(jsonPath, jsonData, 0644); err != nil {
		return fmt.Errorf(
			"failed to write JSON summary: %w", err,
		)
	}

	mdPath := filepath.Join(
		outputDir,
		fmt.Sprintf("run_summary_%s.md", ts),
	)
	mdContent := generateSummaryMarkdown(summary)
	if err := os.WriteFile(
		mdPath, []byte(mdContent), 0644,
	); err != nil {
		return fmt.Errorf(
			"failed to write Markdown summary: %w", err,
		)
	}

	latestJSON := filepath.Join(outputDir, "latest_summary.json")
	latestMD := filepath.Join(outputDir, "latest_summary.md")

	_ = os.Remove(latestJSON)
	_ = os.Remove(latestMD)
	_ = os.Symlink(filepath.Base(jsonPath), latestJSON)
	_ = os.Symlink(filepath.Base(mdPath), latestMD)

	return nil
}

// generateSummaryMarkdown creates markdown from a run summary.
func generateSummaryMarkdown(summary *RunSummary) string {
	var sb strings.Builder

	sb.WriteString("# Conformance Run Summary\n\n")
	sb.WriteString(
		fmt.Sprintf("**Run ID:** %s\n\n", summary.ID),
	)
	sb.WriteString(
		fmt.Sprintf(
			"**Generated:** %s\n\n",
			summary.GeneratedAt.Format(time.RFC3339),
		),
	)

	sb.WriteString("## Fixtures\n\n")
	sb.WriteString(
		"| Fixture | Engine | Status | Duration | Tests |\n",
	)
	sb.WriteString(
		"|---------|--------|--------|----------|-------|\n",
	)

	for _, f := range summary.Fixtures {
		status := strings.ToUpper(f.Status)
		tests := fmt.Sprintf(
			"%d/%d", f.TestsPassed, f.TestsTotal,
		)
		sb.WriteString(
			fmt.Sprintf(
				"| %s | %s | %s | %v | %s |\n",
				f.Fixture, f.Engine, status,
				f.Duration, tests,
			),
		)
	}

	sb.WriteString("\n## Statistics\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(
		fmt.Sprintf(
			"| Total Fixtures | %d |\n",
			summary.TotalFixtures,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Passed | %d |\n", summary.PassedFixtures,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Failed | %d |\n", summary.FailedFixtures,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Pass Rate | %.0f%% |\n",
			summary.PassRate*100,
		),
	)
	sb.WriteString(
		fmt.Sprintf(
			"| Total Duration | %v |\n",
			summary.TotalDuration,
		),
	)

	sb.WriteString("\n---\n\n")
	sb.WriteString("*Generated by the conformance runner*\n")

	return sb.String()
}
