package ontology

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const sampleTurtle = `@prefix ex: <http://example.org/> .
ex:topic1 ex:occursOn ex:testnet .
ex:topic1 ex:memo "hello" .
ex:topic2 ex:occursOn ex:mainnet .
`

func TestManifestResolve(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ontology", "examples", "b.ttl"), sampleTurtle)
	writeFile(t, filepath.Join(root, "ontology", "examples", "a.ttl"), sampleTurtle)
	writeFile(t, filepath.Join(root, "tests", "fixtures", "datasets", "extra.ttl"), sampleTurtle)
	writeFile(t, filepath.Join(root, "ontology", "shapes", "core.ttl"), sampleTurtle)
	writeFile(t, filepath.Join(root, "tests", "queries", "q1.rq"), "SELECT * WHERE { ?s ?p ?o }")

	fixtures, err := DefaultManifest().Resolve(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantDatasets := []string{
		filepath.Join(root, "ontology", "examples", "a.ttl"),
		filepath.Join(root, "ontology", "examples", "b.ttl"),
		filepath.Join(root, "tests", "fixtures", "datasets", "extra.ttl"),
	}
	if !reflect.DeepEqual(fixtures.Datasets, wantDatasets) {
		t.Fatalf("unexpected datasets: %v", fixtures.Datasets)
	}
	if len(fixtures.Shapes) != 1 || len(fixtures.Queries) != 1 {
		t.Fatalf("unexpected shapes/queries: %v %v", fixtures.Shapes, fixtures.Queries)
	}
	if fixtures.ResultsDir != filepath.Join(root, "tests", "fixtures", "results") {
		t.Fatalf("unexpected results dir: %s", fixtures.ResultsDir)
	}
}

func TestLoadManifestKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	writeFile(t, path, "datasets:\n  - data/*.ttl\n")

	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(manifest.Datasets, []string{"data/*.ttl"}) {
		t.Fatalf("unexpected datasets: %v", manifest.Datasets)
	}
	if !reflect.DeepEqual(manifest.Shapes, DefaultManifest().Shapes) {
		t.Fatalf("shapes default lost: %v", manifest.Shapes)
	}
}

func TestLoadManifestInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	writeFile(t, path, "datasets: [unterminated\n")
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "go.mod"), "module example.com/x\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	found, err := FindRepoRoot(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != root {
		t.Fatalf("expected %s, got %s", root, found)
	}
}

func TestLoadGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.ttl")
	writeFile(t, path, sampleTurtle)

	stats, err := LoadGraph(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) != 1 || stats[0].Quads != 3 || stats[0].Subjects != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestLoadGraphNamesBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ttl")
	writeFile(t, path, "@prefix ex: <http://example.org/> .\nex:a ex:b \n")

	_, err := LoadGraph(context.Background(), []string{path})
	if err == nil || !strings.Contains(err.Error(), "broken.ttl") {
		t.Fatalf("expected error naming the file, got %v", err)
	}
}

func TestJSONLDToNTriples(t *testing.T) {
	document := map[string]any{
		"@context": map[string]any{"ex": "http://example.org/"},
		"@id":      "http://example.org/topic1",
		"ex:memo":  "hello",
	}
	output, err := JSONLDToNTriples(context.Background(), document)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, fragment := range []string{"<http://example.org/topic1>", "<http://example.org/memo>", `"hello"`} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("output missing %s:\n%s", fragment, output)
		}
	}
}

func TestCompareResults(t *testing.T) {
	dir := t.TempDir()
	expected := filepath.Join(dir, "expected.csv")
	actual := filepath.Join(dir, "actual.csv")
	writeFile(t, expected, "topic,created\n0.0.1,2024-05-01T00:00:00Z\n\n")
	writeFile(t, actual, "topic,created\r\n0.0.1,2024-05-01T00:00:00+00:00\r\n")

	comparison, err := CompareResults(expected, actual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !comparison.Match {
		t.Fatalf("expected match: %+v", comparison)
	}

	writeFile(t, actual, "topic,created\n0.0.2,2024-05-01T00:00:00Z\n")
	comparison, err = CompareResults(expected, actual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comparison.Match || len(comparison.Actual) != 2 {
		t.Fatalf("expected mismatch with details: %+v", comparison)
	}
}

func TestCompareResultsMissingExpected(t *testing.T) {
	dir := t.TempDir()
	actual := filepath.Join(dir, "actual.csv")
	writeFile(t, actual, "a\n")

	comparison, err := CompareResults(filepath.Join(dir, "missing.csv"), actual)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !comparison.Skipped || !comparison.Match {
		t.Fatalf("expected skipped comparison: %+v", comparison)
	}
}

func TestCompareDirectories(t *testing.T) {
	expectedDir := t.TempDir()
	actualDir := t.TempDir()
	writeFile(t, filepath.Join(expectedDir, "ok.csv"), "x\n1\n")
	writeFile(t, filepath.Join(actualDir, "ok.csv"), "x\n1\n")
	writeFile(t, filepath.Join(expectedDir, "bad.csv"), "x\n1\n")
	writeFile(t, filepath.Join(actualDir, "bad.csv"), "x\n2\n")
	writeFile(t, filepath.Join(actualDir, "new.csv"), "x\n3\n")

	report, err := CompareDirectories(expectedDir, actualDir)
	var mismatch *MismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected MismatchError, got %v", err)
	}
	if !reflect.DeepEqual(mismatch.Names, []string{"bad.csv"}) {
		t.Fatalf("unexpected failures: %v", mismatch.Names)
	}
	if len(report) != 3 {
		t.Fatalf("expected 3 comparisons, got %d", len(report))
	}
}
