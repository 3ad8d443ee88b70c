// Package manifest provides loading and parsing of bundle.yaml manifest
// files. A manifest describes a checker bundle and the checkers it
// provides, so that results can be pre-registered without hard-coding the
// bundle layout.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/qc-framework/baselib/rule"
)

// Manifest represents a bundle.yaml manifest file.
type Manifest struct {
	// Identity
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`

	// Summary is the initial bundle summary text.
	Summary string `yaml:"summary,omitempty"`

	// Checkers lists the checks the bundle performs.
	Checkers []Checker `yaml:"checkers,omitempty"`
}

// Checker describes one checker provided by a bundle.
type Checker struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description,omitempty"`

	// RuleUIDs are the composite UIDs of the rules the checker addresses.
	RuleUIDs []string `yaml:"rules,omitempty"`
}

// Load reads, parses and validates a bundle.yaml file from the given path.
// If the path is a directory, it looks for bundle.yaml or bundle.yml in
// that directory.
func Load(path string) (*Manifest, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	manifestPath := path
	if info.IsDir() {
		manifestPath = ""
		for _, name := range []string{"bundle.yaml", "bundle.yml"} {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				manifestPath = candidate
				break
			}
		}
		if manifestPath == "" {
			return nil, fmt.Errorf("no bundle.yaml or bundle.yml found in %s", path)
		}
	}

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest file: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", manifestPath, err)
	}

	return &m, nil
}

// LoadFromDir searches for bundle.yaml starting from the given directory
// and walking up to parent directories until found or root is reached.
func LoadFromDir(dir string) (*Manifest, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	for {
		m, err := Load(absDir)
		if err == nil {
			return m, nil
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			return nil, fmt.Errorf("no bundle.yaml found in %s or parent directories", dir)
		}
		absDir = parent
	}
}

// Validate checks that the identity fields are present, checker IDs are
// unique and every declared rule UID is well formed.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("manifest version is required")
	}
	seen := make(map[string]struct{}, len(m.Checkers))
	for i, c := range m.Checkers {
		if c.ID == "" {
			return fmt.Errorf("checker at index %d: id is required", i)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("duplicate checker id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
		for _, uid := range c.RuleUIDs {
			if _, err := rule.Parse(uid); err != nil {
				return fmt.Errorf("checker %q: %w", c.ID, err)
			}
		}
	}
	return nil
}
