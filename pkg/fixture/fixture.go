// Package fixture parses conformance fixture files and manages
// collections of them.
//
// A fixture file has two sections. The testing metadata
// (title, spec link, harness options, and the expected-outcome
// assertions) sits in YAML front matter between "---" marker
// lines. Everything after the closing marker and one blank
// line is the raw payload handed to the implementation under
// test (e.g., WebVTT cue text). The payload is never
// interpreted here; parsing it is the job of the engine being
// tested.
package fixture

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"digital.vasic.conformance/pkg/assertion"
)

// marker delimits the front matter section.
const marker = "---"

// Fixture is a parsed fixture file: expected-outcome metadata
// plus the raw payload.
type Fixture struct {
	// Name identifies the fixture, usually the file name
	// without extension.
	Name string `json:"name"`

	// Title is the human-readable fixture title.
	Title string `json:"title"`

	// SpecLink points at the specification section this
	// fixture verifies.
	SpecLink string `json:"spec_link,omitempty"`

	// SingleTest selects single-test harness mode for this
	// fixture.
	SingleTest bool `json:"single_test"`

	// TimeoutMS overrides the harness timeout, in
	// milliseconds. Zero means use the driver default.
	TimeoutMS int `json:"timeout_ms"`

	// Assertions are the expected-outcome assertions to
	// evaluate against the engine's output values.
	Assertions []assertion.Definition `json:"assertions"`

	// Payload is the raw input for the implementation under
	// test.
	Payload []byte `json:"-"`
}

// frontMatter is the YAML shape of the metadata section.
type frontMatter struct {
	Name       string                 `yaml:"name"`
	Title      string                 `yaml:"title"`
	Spec       string                 `yaml:"spec"`
	SingleTest bool                   `yaml:"single_test"`
	TimeoutMS  int                    `yaml:"timeout_ms"`
	Assertions []assertion.Definition `yaml:"assertions"`

	// Checks are compact-form assertions
	// ("type:target[:value]"), appended after Assertions in
	// file order.
	Checks []string `yaml:"checks"`
}

// Timeout returns the fixture's timeout override, or zero when
// the driver default applies.
func (f *Fixture) Timeout() time.Duration {
	return time.Duration(f.TimeoutMS) * time.Millisecond
}

// Parse reads a fixture from r.
func Parse(r io.Reader) (*Fixture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to read fixture: %w", err,
		)
	}
	return ParseBytes(data)
}

// ParseBytes parses a fixture from an in-memory buffer.
func ParseBytes(data []byte) (*Fixture, error) {
	rest := data

	// Locate the opening marker, skipping leading blanks.
	opened := false
	for len(rest) > 0 {
		line, tail := nextLine(rest)
		if len(bytes.TrimSpace(line)) == 0 {
			rest = tail
			continue
		}
		if isMarker(line) {
			opened = true
			rest = tail
		}
		break
	}
	if !opened {
		return nil, fmt.Errorf(
			"fixture has no front matter: expected %q marker",
			marker,
		)
	}

	// Collect front matter until the closing marker.
	var meta bytes.Buffer
	closed := false
	for len(rest) > 0 {
		line, tail := nextLine(rest)
		rest = tail
		if isMarker(line) {
			closed = true
			break
		}
		meta.Write(bytes.TrimRight(line, "\r"))
		meta.WriteByte('\n')
	}
	if !closed {
		return nil, fmt.Errorf(
			"fixture front matter is not closed by %q", marker,
		)
	}

	var fm frontMatter
	if err := yaml.Unmarshal(meta.Bytes(), &fm); err != nil {
		return nil, fmt.Errorf(
			"failed to parse fixture metadata: %w", err,
		)
	}

	// One blank line separates metadata from payload; the
	// payload is the untouched remainder, byte for byte. Line
	// endings and the presence or absence of a final newline
	// are the engine's business, not ours.
	if line, tail := nextLine(rest); len(rest) > 0 &&
		len(bytes.TrimSpace(line)) == 0 {
		rest = tail
	}

	f := &Fixture{
		Name:       fm.Name,
		Title:      fm.Title,
		SpecLink:   fm.Spec,
		SingleTest: fm.SingleTest,
		TimeoutMS:  fm.TimeoutMS,
		Assertions: fm.Assertions,
		Payload:    rest,
	}

	for _, check := range fm.Checks {
		def, err := assertion.ParseCompact(check)
		if err != nil {
			return nil, fmt.Errorf(
				"fixture check: %w", err,
			)
		}
		f.Assertions = append(f.Assertions, def)
	}

	return f, nil
}

// nextLine splits off the first line of data, excluding its
// newline.
func nextLine(data []byte) (line, rest []byte) {
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, nil
}

// isMarker reports whether a line is a front matter marker,
// tolerating a CR from CRLF input.
func isMarker(line []byte) bool {
	return string(bytes.TrimRight(line, "\r")) == marker
}
