package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hashgraph-online/bhash-go/pkg/ontology"
)

func (a *app) newOntologyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ontology",
		Short: "Check the local RDF fixtures",
	}
	cmd.AddCommand(a.newOntologyCheckCommand())
	cmd.AddCommand(a.newOntologyDiffCommand())
	return cmd
}

func (a *app) newOntologyCheckCommand() *cobra.Command {
	var (
		root         string
		manifestPath string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Parse every ontology example, fixture dataset and SHACL shape",
		Long: `Parse the RDF files named by the fixture manifest and report triple counts.
A syntax error fails the command and names the file.

Examples:
  bhashctl ontology check
  bhashctl ontology check --manifest fixtures.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(root) == "" {
				cwd, err := os.Getwd()
				if err != nil {
					return err
				}
				if root, err = ontology.FindRepoRoot(cwd); err != nil {
					return err
				}
			}

			manifest := ontology.DefaultManifest()
			if manifestPath != "" {
				loaded, err := ontology.LoadManifest(manifestPath)
				if err != nil {
					return err
				}
				manifest = loaded
			}
			fixtures, err := manifest.Resolve(root)
			if err != nil {
				return err
			}
			if len(fixtures.Datasets) == 0 {
				return errors.New("no dataset files located")
			}

			files := append(append([]string{}, fixtures.Datasets...), fixtures.Shapes...)
			a.logger.Info("parsing RDF fixtures", "root", root, "files", len(files))
			stats, err := ontology.LoadGraph(cmd.Context(), files)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "FILE\tTRIPLES\tSUBJECTS")
			total := 0
			for _, fileStats := range stats {
				fmt.Fprintf(writer, "%s\t%d\t%d\n", relativeTo(root, fileStats.Path), fileStats.Quads, fileStats.Subjects)
				total += fileStats.Quads
			}
			fmt.Fprintf(writer, "total\t%d\t\n", total)
			if err := writer.Flush(); err != nil {
				return err
			}
			a.logger.Info("fixtures parsed", "queries", len(fixtures.Queries))
			return nil
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "Repository root (defaults to the nearest directory holding .git or go.mod)")
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "YAML fixture manifest")
	return cmd
}

func (a *app) newOntologyDiffCommand() *cobra.Command {
	var (
		expectedDir string
		actualDir   string
	)
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Compare SPARQL result CSVs against the expected fixtures",
		RunE: func(cmd *cobra.Command, args []string) error {
			if expectedDir == "" || actualDir == "" {
				return errors.New("--expected and --actual are required")
			}
			report, err := ontology.CompareDirectories(expectedDir, actualDir)
			for _, comparison := range report {
				switch {
				case comparison.Skipped:
					fmt.Fprintf(a.stdout, "skip  %s (no expected results)\n", comparison.Name)
				case comparison.Match:
					fmt.Fprintf(a.stdout, "ok    %s\n", comparison.Name)
				default:
					fmt.Fprintf(a.stdout, "FAIL  %s\n", comparison.Name)
					fmt.Fprintln(a.stdout, "  expected:")
					for _, line := range comparison.Expected {
						fmt.Fprintf(a.stdout, "    %s\n", line)
					}
					fmt.Fprintln(a.stdout, "  actual:")
					for _, line := range comparison.Actual {
						fmt.Fprintf(a.stdout, "    %s\n", line)
					}
				}
			}
			return err
		},
	}
	cmd.Flags().StringVar(&expectedDir, "expected", "", "Directory with expected result CSVs")
	cmd.Flags().StringVar(&actualDir, "actual", "", "Directory with actual result CSVs")
	return cmd
}

func relativeTo(root, path string) string {
	if trimmed, ok := strings.CutPrefix(path, strings.TrimRight(root, string(os.PathSeparator))+string(os.PathSeparator)); ok {
		return trimmed
	}
	return path
}
