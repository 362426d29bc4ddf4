package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// commandFunc is the function used to create exec.Cmd instances.
// It can be overridden in tests for dependency injection.
var commandFunc = exec.CommandContext

// defaultProcessTimeout bounds a single Process invocation when
// no explicit timeout is set.
const defaultProcessTimeout = 30 * time.Second

// CLIAdapter runs an implementation under test as a subprocess.
// The fixture payload is written to the process's stdin and the
// process is expected to print a single JSON object of output
// values to stdout. Running out of process keeps the
// implementation's own dependency tree out of this module.
type CLIAdapter struct {
	name       string
	binaryPath string
	args       []string
	workDir    string
	env        map[string]string
	timeout    time.Duration
}

// NewCLIAdapter creates a CLIAdapter for the given binary. Any
// extra args are passed before the payload is piped in.
func NewCLIAdapter(
	name, binaryPath string,
	args ...string,
) *CLIAdapter {
	return &CLIAdapter{
		name:       name,
		binaryPath: binaryPath,
		args:       args,
		env:        make(map[string]string),
		timeout:    defaultProcessTimeout,
	}
}

// SetWorkDir sets the working directory for execution.
func (a *CLIAdapter) SetWorkDir(dir string) {
	a.workDir = dir
}

// SetEnv sets an environment variable for execution.
func (a *CLIAdapter) SetEnv(key, value string) {
	a.env[key] = value
}

// SetTimeout bounds a single Process invocation.
func (a *CLIAdapter) SetTimeout(d time.Duration) {
	a.timeout = d
}

// Name returns the engine's unique name.
func (a *CLIAdapter) Name() string { return a.name }

// Available checks if the binary exists and is executable.
func (a *CLIAdapter) Available(_ context.Context) bool {
	info, err := os.Stat(a.binaryPath)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Mode()&0111 != 0
}

// Process pipes the payload to the subprocess and decodes its
// stdout as a JSON object of output values.
func (a *CLIAdapter) Process(
	ctx context.Context,
	payload []byte,
) (map[string]any, error) {
	execCtx := ctx
	if a.timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	cmd := commandFunc(execCtx, a.binaryPath, a.args...)
	if a.workDir != "" {
		cmd.Dir = a.workDir
	}

	cmd.Env = os.Environ()
	for k, v := range a.env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", k, v))
	}

	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf(
				"engine %s exited with code %d: %s",
				a.name,
				exitErr.ExitCode(),
				strings.TrimSpace(stderr.String()),
			)
		}
		return nil, fmt.Errorf(
			"engine %s execution failed: %w", a.name, err,
		)
	}

	var values map[string]any
	if err := json.Unmarshal(stdout.Bytes(), &values); err != nil {
		return nil, fmt.Errorf(
			"engine %s produced invalid output: %w", a.name, err,
		)
	}
	return values, nil
}

// Version returns the binary's version by running it with
// --version.
func (a *CLIAdapter) Version(ctx context.Context) (string, error) {
	cmd := commandFunc(ctx, a.binaryPath, "--version")

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf(
			"failed to get %s version: %w", a.name, err,
		)
	}

	return strings.TrimSpace(stdout.String()), nil
}
