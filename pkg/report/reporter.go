// Package report generates reports from fixture run results.
package report

import (
	"io"

	"digital.vasic.conformance/pkg/runner"
)

// Reporter defines the interface for generating run reports.
type Reporter interface {
	// GenerateReport creates a report for a single fixture
	// result.
	GenerateReport(result *runner.Result) ([]byte, error)

	// GenerateSummary creates a report covering all fixture
	// results of a run.
	GenerateSummary(results []*runner.Result) ([]byte, error)

	// WriteReport writes a single-fixture report to the
	// specified writer.
	WriteReport(w io.Writer, result *runner.Result) error
}
