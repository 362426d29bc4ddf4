package report

import (
	"fmt"
	"io"
	"strings"

	"digital.vasic.conformance/pkg/assertion"
	"digital.vasic.conformance/pkg/harness"
	"digital.vasic.conformance/pkg/runner"
)

// TAPReporter renders run results as TAP version 13 output, one
// test point per harness test case. Skipped fixtures become a
// single point with a SKIP directive; broken fixtures become a
// single failing point. Failing points carry a YAML diagnostic
// block with the first failing assertion's detail.
type TAPReporter struct{}

// NewTAPReporter creates a new TAP reporter.
func NewTAPReporter() *TAPReporter {
	return &TAPReporter{}
}

// GenerateReport creates a TAP document for a single fixture
// result.
func (r *TAPReporter) GenerateReport(
	result *runner.Result,
) ([]byte, error) {
	return r.GenerateSummary([]*runner.Result{result})
}

// GenerateSummary creates a TAP document covering all fixture
// results of a run.
func (r *TAPReporter) GenerateSummary(
	results []*runner.Result,
) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("TAP version 13\n")
	fmt.Fprintf(&sb, "1..%d\n", countPoints(results))

	n := 0
	for _, res := range results {
		switch res.Status {
		case runner.StatusSkipped:
			n++
			fmt.Fprintf(&sb, "ok %d - %s # SKIP %s\n",
				n, res.Fixture, res.Error)

		case runner.StatusError:
			n++
			fmt.Fprintf(&sb, "not ok %d - %s\n",
				n, res.Fixture)
			writeDiagnostic(&sb, [][2]string{
				{"status", string(res.Status)},
				{"message", res.Error},
			})

		default:
			for _, tc := range res.Tests {
				n++
				writeTestPoint(&sb, n, res.Fixture, tc)
			}
		}
	}

	return []byte(sb.String()), nil
}

// WriteReport writes a TAP report to the specified writer.
func (r *TAPReporter) WriteReport(
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

// countPoints returns the number of TAP test points the results
// will produce.
func countPoints(results []*runner.Result) int {
	points := 0
	for _, res := range results {
		switch res.Status {
		case runner.StatusSkipped, runner.StatusError:
			points++
		default:
			points += len(res.Tests)
		}
	}
	return points
}

// writeTestPoint emits one test point for a harness test case.
func writeTestPoint(
	sb *strings.Builder,
	n int,
	fixtureName string,
	tc harness.Result,
) {
	name := fixtureName + " :: " + tc.Name

	if tc.Status == harness.StatusPass {
		fmt.Fprintf(sb, "ok %d - %s\n", n, name)
		return
	}

	fmt.Fprintf(sb, "not ok %d - %s\n", n, name)

	pairs := [][2]string{
		{"status", string(tc.Status)},
		{"message", tc.Message},
	}
	if failed := firstFailed(tc); failed != nil {
		pairs = append(pairs,
			[2]string{"actual", assertion.Format(failed.Actual)},
			[2]string{"expected", assertion.Format(failed.Expected)},
		)
	}
	writeDiagnostic(sb, pairs)
}

// writeDiagnostic emits an indented YAML diagnostic block.
func writeDiagnostic(
	sb *strings.Builder,
	pairs [][2]string,
) {
	sb.WriteString("  ---\n")
	for _, pair := range pairs {
		fmt.Fprintf(sb, "  %s: %s\n", pair[0], pair[1])
	}
	sb.WriteString("  ...\n")
}

// firstFailed returns the first failing assertion of a test
// case, or nil.
func firstFailed(tc harness.Result) *harness.AssertionRecord {
	for i := range tc.Assertions {
		if !tc.Assertions[i].Passed {
			return &tc.Assertions[i]
		}
	}
	return nil
}
