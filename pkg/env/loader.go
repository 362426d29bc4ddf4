// Package env manages driver configuration from environment
// variables and .env files.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Variables the conformance driver understands.
const (
	// VarTimeout overrides the default harness timeout, as a
	// Go duration string ("2s", "500ms").
	VarTimeout = "CONFORMANCE_TIMEOUT"

	// VarFixtureDir points at the default fixture directory.
	VarFixtureDir = "CONFORMANCE_FIXTURE_DIR"

	// VarParallel sets how many fixtures run concurrently.
	VarParallel = "CONFORMANCE_PARALLEL"

	// VarVerbose enables verbose logging.
	VarVerbose = "CONFORMANCE_VERBOSE"

	// VarLogDir points at the log output directory.
	VarLogDir = "CONFORMANCE_LOG_DIR"

	// VarEngine names the engine binary to run fixtures
	// against.
	VarEngine = "CONFORMANCE_ENGINE"
)

// Loader defines the interface for environment variable
// management.
type Loader interface {
	// Load reads environment variables from a .env file.
	Load(filepath string) error
	// Get retrieves an environment variable value.
	Get(key string) string
	// GetRequired retrieves a required environment variable or
	// returns an error.
	GetRequired(key string) (string, error)
	// GetWithDefault retrieves an environment variable with a
	// default fallback.
	GetWithDefault(key, defaultValue string) string
	// GetDuration retrieves a duration-valued variable.
	GetDuration(key string, defaultValue time.Duration) time.Duration
	// GetInt retrieves an integer-valued variable.
	GetInt(key string, defaultValue int) int
	// GetBool retrieves a boolean-valued variable.
	GetBool(key string, defaultValue bool) bool
	// Set sets an environment variable.
	Set(key, value string) error
	// All returns all loaded environment variables.
	All() map[string]string
}

// DefaultLoader implements Loader with .env file support. OS
// environment variables take precedence over file values.
type DefaultLoader struct {
	mu     sync.RWMutex
	vars   map[string]string
	loaded bool
}

// NewLoader creates a new DefaultLoader.
func NewLoader() *DefaultLoader {
	return &DefaultLoader{
		vars: make(map[string]string),
	}
}

func (l *DefaultLoader) Load(filepath string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", filepath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		// Remove surrounding quotes
		value = strings.Trim(value, `"'`)
		l.vars[key] = value
	}

	l.loaded = true
	return scanner.Err()
}

func (l *DefaultLoader) Get(key string) string {
	// OS env takes precedence
	if v := os.Getenv(key); v != "" {
		return v
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.vars[key]
}

func (l *DefaultLoader) GetRequired(key string) (string, error) {
	v := l.Get(key)
	if v == "" {
		return "", fmt.Errorf(
			"required environment variable %s is not set", key,
		)
	}
	return v, nil
}

func (l *DefaultLoader) GetWithDefault(
	key, defaultValue string,
) string {
	if v := l.Get(key); v != "" {
		return v
	}
	return defaultValue
}

func (l *DefaultLoader) GetDuration(
	key string,
	defaultValue time.Duration,
) time.Duration {
	v := l.Get(key)
	if v == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultValue
	}
	return d
}

func (l *DefaultLoader) GetInt(key string, defaultValue int) int {
	v := l.Get(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

func (l *DefaultLoader) GetBool(
	key string,
	defaultValue bool,
) bool {
	v := l.Get(key)
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultValue
	}
	return b
}

func (l *DefaultLoader) Set(key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vars[key] = value
	return os.Setenv(key, value)
}

func (l *DefaultLoader) All() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]string, len(l.vars))
	for k, v := range l.vars {
		result[k] = v
	}
	return result
}
