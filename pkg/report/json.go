package report

import (
	"encoding/json"
	"io"
	"time"

	"digital.vasic.conformance/pkg/runner"
)

// JSONReporter generates JSON reports from fixture results.
type JSONReporter struct {
	pretty bool
}

// NewJSONReporter creates a new JSON reporter. When pretty is
// true, output is indented for readability.
func NewJSONReporter(pretty bool) *JSONReporter {
	return &JSONReporter{pretty: pretty}
}

// GenerateReport creates a JSON report for a single fixture
// result.
func (r *JSONReporter) GenerateReport(
	result *runner.Result,
) ([]byte, error) {
	if r.pretty {
		return json.MarshalIndent(result, "", "  ")
	}
	return json.Marshal(result)
}

// jsonSummary is the JSON structure for a whole-run report.
type jsonSummary struct {
	GeneratedAt   time.Time        `json:"generated_at"`
	TotalFixtures int              `json:"total_fixtures"`
	Passed        int              `json:"passed"`
	Failed        int              `json:"failed"`
	TotalDuration time.Duration    `json:"total_duration"`
	Results       []*runner.Result `json:"results"`
}

// GenerateSummary creates a JSON report covering all fixture
// results of a run.
func (r *JSONReporter) GenerateSummary(
	results []*runner.Result,
) ([]byte, error) {
	summary := jsonSummary{
		GeneratedAt:   time.Now(),
		TotalFixtures: len(results),
		Results:       results,
	}

	for _, res := range results {
		if res.Status == runner.StatusPassed {
			summary.Passed++
		} else {
			summary.Failed++
		}
		summary.TotalDuration += res.Duration
	}

	if r.pretty {
		return json.MarshalIndent(summary, "", "  ")
	}
	return json.Marshal(summary)
}

// WriteReport writes a JSON report to the specified writer.
func (r *JSONReporter) WriteReport(
	w io.Writer,
	result *runner.Result,
) error {
	data, err := r.GenerateReport(result)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
