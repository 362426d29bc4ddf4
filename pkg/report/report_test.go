package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.conformance/pkg/harness"
	"digital.vasic.conformance/pkg/runner"
)

// sampleResults covers pass, fail, timeout, and skip in one run.
func sampleResults() []*runner.Result {
	return []*runner.Result{
		{
			Fixture:  "cue-align",
			Title:    "Cue alignment",
			Engine:   "vttparse",
			Status:   runner.StatusFailed,
			Duration: 150 * time.Millisecond,
			Tests: []harness.Result{
				{
					Name:   "exact_count cues",
					Status: harness.StatusPass,
					Assertions: []harness.AssertionRecord{
						{Passed: true},
					},
				},
				{
					Name:    "equals cues.0.align",
					Status:  harness.StatusFail,
					Message: `expected "center" but got "start"`,
					Assertions: []harness.AssertionRecord{
						{
							Passed:   false,
							Actual:   "start",
							Expected: "center",
						},
					},
				},
			},
		},
		{
			Fixture:  "event-order",
			Title:    "Event ordering",
			Engine:   "vttparse",
			Status:   runner.StatusTimedOut,
			Duration: 2 * time.Second,
			Tests: []harness.Result{
				{
					Name:    "ordered events",
					Status:  harness.StatusTimeout,
					Message: "test timed out after 2s",
				},
			},
		},
		{
			Fixture: "timing",
			Title:   "Timing",
			Engine:  "vttparse",
			Status:  runner.StatusSkipped,
			Error:   "engine vttparse is not available",
		},
	}
}

func TestJSONReporter_GenerateReport(t *testing.T) {
	r := NewJSONReporter(false)

	data, err := r.GenerateReport(sampleResults()[0])
	require.NoError(t, err)

	var decoded runner.Result
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "cue-align", decoded.Fixture)
	assert.Equal(t, runner.StatusFailed, decoded.Status)
	assert.Len(t, decoded.Tests, 2)
}

func TestJSONReporter_Pretty(t *testing.T) {
	r := NewJSONReporter(true)

	data, err := r.GenerateReport(sampleResults()[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  ")
}

func TestJSONReporter_GenerateSummary(t *testing.T) {
	r := NewJSONReporter(false)

	data, err := r.GenerateSummary(sampleResults())
	require.NoError(t, err)

	var decoded jsonSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 3, decoded.TotalFixtures)
	assert.Equal(t, 0, decoded.Passed)
	assert.Equal(t, 3, decoded.Failed)
}

func TestJSONReporter_WriteReport(t *testing.T) {
	r := NewJSONReporter(false)

	var buf bytes.Buffer
	require.NoError(t,
		r.WriteReport(&buf, sampleResults()[0]))
	assert.Contains(t, buf.String(), `"fixture":"cue-align"`)
}

func TestTAPReporter_Golden(t *testing.T) {
	r := NewTAPReporter()

	data, err := r.GenerateSummary(sampleResults())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "tap_summary", data)
}

func TestTAPReporter_SingleResult(t *testing.T) {
	r := NewTAPReporter()

	data, err := r.GenerateReport(sampleResults()[0])
	require.NoError(t, err)

	lines := strings.Split(
		strings.TrimSpace(string(data)), "\n",
	)
	assert.Equal(t, "TAP version 13", lines[0])
	assert.Equal(t, "1..2", lines[1])
}

func TestTAPReporter_ErrorFixture(t *testing.T) {
	r := NewTAPReporter()

	data, err := r.GenerateSummary([]*runner.Result{{
		Fixture: "broken",
		Engine:  "vttparse",
		Status:  runner.StatusError,
		Error:   "engine processing failed: parser crashed",
	}})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "1..1")
	assert.Contains(t, out, "not ok 1 - broken")
	assert.Contains(t, out, "message: engine processing failed")
}

func TestBuildSummary(t *testing.T) {
	summary := BuildSummary(sampleResults())

	_, err := uuid.Parse(summary.ID)
	assert.NoError(t, err)

	assert.Equal(t, 3, summary.TotalFixtures)
	assert.Equal(t, 0, summary.PassedFixtures)
	assert.Equal(t, 3, summary.FailedFixtures)
	assert.Equal(t, float64(0), summary.PassRate)

	require.Len(t, summary.Fixtures, 3)
	assert.Equal(t, 1, summary.Fixtures[0].TestsPassed)
	assert.Equal(t, 2, summary.Fixtures[0].TestsTotal)
}

func TestSummaryMarkdown_Golden(t *testing.T) {
	summary := &RunSummary{
		ID: "0b8f6f3a-0000-4000-8000-000000000000",
		GeneratedAt: time.Date(
			2026, 3, 14, 9, 30, 0, 0, time.UTC,
		),
		Fixtures: []FixtureSummary{
			{
				Fixture:     "cue-align",
				Title:       "Cue alignment",
				Engine:      "vttparse",
				Status:      "failed",
				Duration:    150 * time.Millisecond,
				TestsPassed: 1,
				TestsTotal:  2,
			},
			{
				Fixture: "timing",
				Title:   "Timing",
				Engine:  "vttparse",
				Status:  "skipped",
			},
		},
		TotalFixtures:  2,
		FailedFixtures: 2,
		TotalDuration:  150 * time.Millisecond,
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "markdown_summary",
		[]byte(generateSummaryMarkdown(summary)))
}

// readLatest follows the latest_* symlink in dir.
func readLatest(dir, name string) ([]byte, error) {
	return os.ReadFile(filepath.Join(dir, name))
}

func TestSaveSummary(t *testing.T) {
	dir := t.TempDir()
	summary := BuildSummary(sampleResults())

	require.NoError(t, SaveSummary(summary, dir))

	data, err := readLatest(dir, "latest_summary.json")
	require.NoError(t, err)

	var decoded RunSummary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, summary.ID, decoded.ID)

	md, err := readLatest(dir, "latest_summary.md")
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Conformance Run Summary")
}
