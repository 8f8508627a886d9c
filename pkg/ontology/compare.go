package ontology

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Comparison is the outcome of diffing one query result file.
type Comparison struct {
	Name     string   `json:"name"`
	Match    bool     `json:"match"`
	Skipped  bool     `json:"skipped,omitempty"`
	Expected []string `json:"expected,omitempty"`
	Actual   []string `json:"actual,omitempty"`
}

// MismatchError names the result files that differ from their fixtures.
type MismatchError struct {
	Names []string
}

func (e *MismatchError) Error() string {
	return "sparql regression failures: " + strings.Join(e.Names, ", ")
}

// CompareResults compares two CSV files line by line, ignoring blank lines
// and treating +00:00 and -00:00 offsets as Z. A missing expected file is
// reported as skipped.
func CompareResults(expectedPath, actualPath string) (Comparison, error) {
	comparison := Comparison{Name: filepath.Base(actualPath)}

	expected, err := readResultLines(expectedPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			comparison.Match = true
			comparison.Skipped = true
			return comparison, nil
		}
		return comparison, err
	}
	actual, err := readResultLines(actualPath)
	if err != nil {
		return comparison, err
	}

	comparison.Match = equalLines(expected, actual)
	if !comparison.Match {
		comparison.Expected = expected
		comparison.Actual = actual
	}
	return comparison, nil
}

// CompareDirectories compares every *.csv in actualDir with the file of the
// same name in expectedDir. Mismatches are returned as *MismatchError along
// with the full report.
func CompareDirectories(expectedDir, actualDir string) ([]Comparison, error) {
	actualFiles, err := filepath.Glob(filepath.Join(actualDir, "*.csv"))
	if err != nil {
		return nil, err
	}
	sort.Strings(actualFiles)

	report := make([]Comparison, 0, len(actualFiles))
	var failures []string
	for _, actualPath := range actualFiles {
		comparison, err := CompareResults(filepath.Join(expectedDir, filepath.Base(actualPath)), actualPath)
		if err != nil {
			return report, err
		}
		report = append(report, comparison)
		if !comparison.Match {
			failures = append(failures, comparison.Name)
		}
	}
	if len(failures) > 0 {
		return report, &MismatchError{Names: failures}
	}
	return report, nil
}

func readResultLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lines = append(lines, normalizeOffset(trimmed))
	}
	return lines, nil
}

func normalizeOffset(line string) string {
	line = strings.ReplaceAll(line, "+00:00", "Z")
	return strings.ReplaceAll(line, "-00:00", "Z")
}

func equalLines(expected, actual []string) bool {
	if len(expected) != len(actual) {
		return false
	}
	for i := range expected {
		if expected[i] != actual[i] {
			return false
		}
	}
	return true
}
