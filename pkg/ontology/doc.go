// Package ontology checks the repository's local RDF fixtures.
//
// A YAML manifest names the ontology examples, SHACL shapes, SPARQL queries
// and expected query results. LoadGraph parses every data file with rdf-go so
// syntax errors surface before the files are handed to external SHACL or
// SPARQL tooling, and CompareDirectories diffs query output against the
// expected CSV fixtures.
//
// Running SPARQL and SHACL themselves stays with those external tools.
package ontology
