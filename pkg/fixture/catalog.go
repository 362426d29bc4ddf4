package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Ext is the file extension catalog loaders look for.
const Ext = ".fixture"

// Catalog manages collections of fixtures loaded from files.
type Catalog struct {
	mu       sync.RWMutex
	fixtures map[string]*Fixture
	sources  []string
}

// NewCatalog creates a new empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		fixtures: make(map[string]*Fixture),
	}
}

// LoadFile loads a single fixture file. The fixture name
// defaults to the file name without extension when the front
// matter does not set one.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read fixture file %s: %w", path, err)
	}

	f, err := ParseBytes(data)
	if err != nil {
		return fmt.Errorf("parse fixture file %s: %w", path, err)
	}
	if f.Name == "" {
		base := filepath.Base(path)
		f.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.fixtures[f.Name]; exists {
		return fmt.Errorf(
			"duplicate fixture name %q from %s", f.Name, path,
		)
	}
	c.fixtures[f.Name] = f
	c.sources = append(c.sources, path)
	return nil
}

// LoadDir loads all .fixture files from a directory.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf(
			"read fixture directory %s: %w", dir, err,
		)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if filepath.Ext(entry.Name()) != Ext {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := c.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a fixture by name.
func (c *Catalog) Get(name string) (*Fixture, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	f, ok := c.fixtures[name]
	return f, ok
}

// All returns all loaded fixtures sorted by name, so a run over
// a catalog is deterministic.
func (c *Catalog) All() []*Fixture {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]*Fixture, 0, len(c.fixtures))
	for _, f := range c.fixtures {
		result = append(result, f)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Count returns the number of loaded fixtures.
func (c *Catalog) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.fixtures)
}

// Sources returns the list of loaded file paths.
func (c *Catalog) Sources() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]string, len(c.sources))
	copy(result, c.sources)
	return result
}
