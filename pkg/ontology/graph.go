package ontology

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/geoknoesis/rdf-go/rdf"
)

// DefaultBaseIRI resolves relative @id values such as topic/0-0-1234.
const DefaultBaseIRI = "https://bhash.dev/hedera/ledger/"

// FileStats summarizes one parsed RDF file.
type FileStats struct {
	Path     string `json:"path"`
	Quads    int    `json:"quads"`
	Subjects int    `json:"subjects"`
}

// LoadGraph parses each file, choosing the syntax from its extension. It
// stops at the first file that fails to parse.
func LoadGraph(ctx context.Context, paths []string) ([]FileStats, error) {
	stats := make([]FileStats, 0, len(paths))
	for _, path := range paths {
		fileStats, err := parseFile(ctx, path)
		if err != nil {
			return stats, err
		}
		stats = append(stats, fileStats)
	}
	return stats, nil
}

func parseFile(ctx context.Context, path string) (FileStats, error) {
	file, err := os.Open(path)
	if err != nil {
		return FileStats{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	count := 0
	subjects := make(map[string]struct{})
	err = rdf.Parse(ctx, file, FormatForPath(path), func(statement rdf.Statement) error {
		count++
		if statement.S != nil {
			subjects[statement.S.String()] = struct{}{}
		}
		return nil
	}, rdf.OptContext(ctx))
	if err != nil {
		return FileStats{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return FileStats{Path: path, Quads: count, Subjects: len(subjects)}, nil
}

// FormatForPath picks the RDF syntax from a file extension. Unknown
// extensions fall back to content detection.
func FormatForPath(path string) rdf.Format {
	extension := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if extension == "owl" {
		return rdf.FormatRDFXML
	}
	if format, ok := rdf.ParseFormat(extension); ok {
		return format
	}
	return rdf.FormatAuto
}

// JSONLDToNTriples expands a JSON-LD document and renders it as N-Triples.
// Relative identifiers resolve against DefaultBaseIRI.
func JSONLDToNTriples(ctx context.Context, document map[string]any) (string, error) {
	encoded, err := json.Marshal(document)
	if err != nil {
		return "", fmt.Errorf("encode JSON-LD document: %w", err)
	}
	var input any
	if err := json.Unmarshal(encoded, &input); err != nil {
		return "", fmt.Errorf("decode JSON-LD document: %w", err)
	}

	quads, err := rdf.NewJSONLDProcessor().ToRDF(ctx, input, rdf.JSONLDOptions{
		Context:        ctx,
		BaseIRI:        DefaultBaseIRI,
		ProcessingMode: "json-ld-1.1",
	})
	if err != nil {
		return "", fmt.Errorf("expand JSON-LD document: %w", err)
	}

	var out bytes.Buffer
	writer, err := rdf.NewWriter(&out, rdf.FormatNTriples)
	if err != nil {
		return "", fmt.Errorf("create N-Triples writer: %w", err)
	}
	for _, quad := range quads {
		if err := writer.Write(quad.ToStatement()); err != nil {
			return "", fmt.Errorf("write N-Triples: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("write N-Triples: %w", err)
	}
	return out.String(), nil
}
