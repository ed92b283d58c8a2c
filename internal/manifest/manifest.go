// Package manifest reads a project's luat.manifest file: a flat
// "key = value" description of the project name, its own version, and
// the language-version range it was written against. The language
// constraint is checked with semver so a project that requires a
// newer-than-installed compiler fails fast with a clear message instead
// of hitting confusing parse errors.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Manifest is the parsed contents of a luat.manifest file.
type Manifest struct {
	Name       string
	Version    string
	Language   string // semver constraint, e.g. ">=0.1.0, <1.0.0"
	EntryPoint string
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %q: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads "key = value" lines from r. Blank lines and lines starting
// with '#' are ignored. Unknown keys are silently skipped.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{EntryPoint: "main.luat"}

	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("manifest: line %d: expected 'key = value', got %q", lineNo, line)
		}

		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "name":
			m.Name = value
		case "version":
			m.Version = value
		case "language":
			m.Language = value
		case "entry":
			m.EntryPoint = value
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("manifest: read: %w", err)
	}

	if m.Name == "" {
		return nil, fmt.Errorf("manifest: missing required key 'name'")
	}

	return m, nil
}

// CheckLanguage verifies that compilerVersion satisfies the manifest's
// declared "language" constraint. An empty constraint always succeeds
// (the manifest did not pin a compiler range).
func (m *Manifest) CheckLanguage(compilerVersion string) error {
	if m.Language == "" {
		return nil
	}

	constraint, err := semver.NewConstraint(m.Language)
	if err != nil {
		return fmt.Errorf("manifest: invalid language constraint %q: %w", m.Language, err)
	}

	v, err := semver.NewVersion(compilerVersion)
	if err != nil {
		return fmt.Errorf("manifest: invalid compiler version %q: %w", compilerVersion, err)
	}

	if !constraint.Check(v) {
		return fmt.Errorf("manifest: project requires language %s, compiler is %s", m.Language, compilerVersion)
	}

	return nil
}
