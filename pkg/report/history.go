package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"digital.vasic.conformance/pkg/harness"
	"digital.vasic.conformance/pkg/runner"
)

// HistoricalEntry represents a single fixture run in the
// historical log.
type HistoricalEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Fixture     string    `json:"fixture"`
	Engine      string    `json:"engine"`
	Status      string    `json:"status"`
	Duration    string    `json:"duration"`
	TestsPassed int       `json:"tests_passed"`
	TestsTotal  int       `json:"tests_total"`
}

// historicalEntry builds the log entry for a result.
func historicalEntry(result *runner.Result) HistoricalEntry {
	testsPassed := 0
	for _, tc := range result.Tests {
		if tc.Status == harness.StatusPass {
			testsPassed++
		}
	}

	return HistoricalEntry{
		Timestamp:   result.EndTime,
		Fixture:     result.Fixture,
		Engine:      result.Engine,
		Status:      string(result.Status),
		Duration:    result.Duration.String(),
		TestsPassed: testsPassed,
		TestsTotal:  len(result.Tests),
	}
}

// AppendToHistory adds an entry to the historical log stored at
// historyPath. Each entry is a single JSON line.
func AppendToHistory(
	historyPath string,
	result *runner.Result,
) error {
	entry := historicalEntry(result)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf(
			"failed to marshal history entry: %w", err,
		)
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf(
			"failed to open history file: %w", err,
		)
	}
	defer func() { _ = file.Close() }()

	_, err = fmt.Fprintln(file, string(data))
	return err
}
