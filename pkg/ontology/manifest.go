package ontology

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Manifest lists fixture globs relative to the repository root.
type Manifest struct {
	Datasets []string `yaml:"datasets"`
	Shapes   []string `yaml:"shapes"`
	Queries  []string `yaml:"queries"`
	Results  string   `yaml:"results"`
}

// Fixtures is a manifest resolved against a root directory.
type Fixtures struct {
	Root       string
	Datasets   []string
	Shapes     []string
	Queries    []string
	ResultsDir string
}

// DefaultManifest mirrors the repository layout.
func DefaultManifest() Manifest {
	return Manifest{
		Datasets: []string{
			"ontology/examples/*.ttl",
			"tests/fixtures/datasets/*.ttl",
		},
		Shapes:  []string{"ontology/shapes/*.ttl"},
		Queries: []string{"tests/queries/*.rq"},
		Results: "tests/fixtures/results",
	}
}

// LoadManifest reads a YAML manifest. Sections left out of the file keep
// their DefaultManifest values.
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}

	manifest := DefaultManifest()
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return manifest, nil
}

// Resolve expands every glob under root. Each glob's matches are sorted and
// duplicates across globs are dropped, keeping glob order.
func (m Manifest) Resolve(root string) (Fixtures, error) {
	fixtures := Fixtures{Root: root}
	var err error
	if fixtures.Datasets, err = expand(root, m.Datasets); err != nil {
		return Fixtures{}, err
	}
	if fixtures.Shapes, err = expand(root, m.Shapes); err != nil {
		return Fixtures{}, err
	}
	if fixtures.Queries, err = expand(root, m.Queries); err != nil {
		return Fixtures{}, err
	}
	if m.Results != "" {
		fixtures.ResultsDir = filepath.Join(root, m.Results)
	}
	return fixtures, nil
}

func expand(root string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var paths []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		sort.Strings(matches)
		for _, match := range matches {
			if info, statErr := os.Stat(match); statErr != nil || info.IsDir() {
				continue
			}
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			paths = append(paths, match)
		}
	}
	return paths, nil
}

var ErrRepoRootNotFound = errors.New("could not locate repository root")

// FindRepoRoot walks up from start to the first directory holding .git or
// go.mod.
func FindRepoRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}
	for {
		for _, marker := range []string{".git", "go.mod"} {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRepoRootNotFound
		}
		dir = parent
	}
}
