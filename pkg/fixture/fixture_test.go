package fixture

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.conformance/pkg/assertion"
)

const vttFixture = `---
title: Cue alignment parsing
spec: https://www.w3.org/TR/webvtt1/#cue-settings
single_test: true
timeout_ms: 3000
assertions:
  - type: exact_count
    target: cues
    value: 2
  - type: equals
    target: cues.0.align
    value: start
checks:
  - "equals:cues.1.position:100"
---

WEBVTT

00:00:00.000 --> 00:00:01.000 align:start
First cue

00:00:01.000 --> 00:00:02.000 position:100%
Second cue
`

func TestParse_TwoSectionFixture(t *testing.T) {
	f, err := ParseBytes([]byte(vttFixture))
	require.NoError(t, err)

	assert.Equal(t, "Cue alignment parsing", f.Title)
	assert.Equal(t,
		"https://www.w3.org/TR/webvtt1/#cue-settings", f.SpecLink)
	assert.True(t, f.SingleTest)
	assert.Equal(t, 3000, f.TimeoutMS)
	assert.Equal(t, 3*time.Second, f.Timeout())

	require.Len(t, f.Assertions, 3)
	assert.Equal(t, "exact_count", f.Assertions[0].Type)
	assert.Equal(t, "cues", f.Assertions[0].Target)
	assert.Equal(t, 2, f.Assertions[0].Value)

	// Compact checks land after the structured assertions.
	assert.Equal(t, "equals", f.Assertions[2].Type)
	assert.Equal(t, "cues.1.position", f.Assertions[2].Target)
	assert.Equal(t, 100, f.Assertions[2].Value)

	payload := string(f.Payload)
	assert.Contains(t, payload, "WEBVTT")
	assert.Contains(t, payload, "align:start")
	// The blank separator line is not part of the payload.
	assert.Equal(t, "WEBVTT", payload[:6])
}

func TestParse_NoFrontMatter(t *testing.T) {
	_, err := ParseBytes([]byte("WEBVTT\n"))
	assert.ErrorContains(t, err, "no front matter")
}

func TestParse_UnclosedFrontMatter(t *testing.T) {
	_, err := ParseBytes([]byte("---\ntitle: x\n"))
	assert.ErrorContains(t, err, "not closed")
}

func TestParse_BadCompactCheck(t *testing.T) {
	src := "---\ntitle: x\nchecks:\n  - \"justonefield\"\n---\n"
	_, err := ParseBytes([]byte(src))
	assert.ErrorContains(t, err, "fixture check")
}

func TestParse_PayloadVerbatim(t *testing.T) {
	// The payload is handed to the engine untouched: CRLF
	// line endings survive and no trailing newline appears
	// out of nowhere.
	src := "---\ntitle: x\nassertions:\n" +
		"  - type: is_true\n    target: parsed\n---\n\n" +
		"WEBVTT\r\n\r\n00:00:00.000 --> 00:00:01.000\r\nFirst cue"
	f, err := ParseBytes([]byte(src))
	require.NoError(t, err)

	assert.Equal(t,
		"WEBVTT\r\n\r\n00:00:00.000 --> 00:00:01.000\r\nFirst cue",
		string(f.Payload))
}

func TestParse_CRLFFrontMatter(t *testing.T) {
	src := "---\r\ntitle: x\r\nassertions:\r\n" +
		"  - type: is_true\r\n    target: parsed\r\n---\r\n" +
		"\r\nWEBVTT\n"
	f, err := ParseBytes([]byte(src))
	require.NoError(t, err)

	assert.Equal(t, "x", f.Title)
	assert.Equal(t, "WEBVTT\n", string(f.Payload))
}

func TestParse_EmptyPayload(t *testing.T) {
	src := "---\ntitle: x\nassertions:\n" +
		"  - type: is_true\n    target: parsed\n---\n"
	f, err := ParseBytes([]byte(src))
	require.NoError(t, err)
	assert.Empty(t, f.Payload)
}

func writeFixtureFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCatalog_LoadFile_NameFromFileName(t *testing.T) {
	dir := t.TempDir()
	path := writeFixtureFile(t, dir, "cue-align.fixture", vttFixture)

	c := NewCatalog()
	require.NoError(t, c.LoadFile(path))

	f, ok := c.Get("cue-align")
	require.True(t, ok)
	assert.Equal(t, "Cue alignment parsing", f.Title)
	assert.Equal(t, []string{path}, c.Sources())
}

func TestCatalog_LoadFile_DuplicateName(t *testing.T) {
	dir := t.TempDir()
	a := writeFixtureFile(t, dir, "dup.fixture", vttFixture)

	other := t.TempDir()
	b := writeFixtureFile(t, other, "dup.fixture", vttFixture)

	c := NewCatalog()
	require.NoError(t, c.LoadFile(a))
	assert.ErrorContains(t, c.LoadFile(b), "duplicate fixture name")
}

func TestCatalog_LoadDir_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFixtureFile(t, dir, "b.fixture", vttFixture)
	writeFixtureFile(t, dir, "a.fixture", vttFixture)
	writeFixtureFile(t, dir, "notes.txt", "ignored")

	c := NewCatalog()
	require.NoError(t, c.LoadDir(dir))

	assert.Equal(t, 2, c.Count())
	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].Name)
	assert.Equal(t, "b", all[1].Name)
}

func TestValidate_CleanFixture(t *testing.T) {
	f, err := ParseBytes([]byte(vttFixture))
	require.NoError(t, err)

	errs := Validate(f, assertion.NewEngine())
	assert.Empty(t, errs)
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	f := &Fixture{
		TimeoutMS: -1,
		Assertions: []assertion.Definition{
			{Type: "no_such_type", Target: "cues"},
			{Type: "equals"},
		},
	}

	errs := Validate(f, assertion.NewEngine())
	messages := make([]string, len(errs))
	for i, e := range errs {
		messages[i] = e.Error()
	}

	assert.Contains(t, messages, "title: title is required")
	assert.Contains(t, messages,
		"timeout_ms: timeout must not be negative")
	assert.Contains(t, messages,
		"assertions[0].type: unknown assertion type: no_such_type")
	assert.Contains(t, messages,
		"assertions[1].target: assertion target is required")
}

func TestValidateFile_Unparseable(t *testing.T) {
	dir := t.TempDir()
	path := writeFixtureFile(t, dir, "bad.fixture", "no markers")

	errs := ValidateFile(path, assertion.NewEngine())
	require.Len(t, errs, 1)
	assert.Equal(t, "format", errs[0].Field)
}
