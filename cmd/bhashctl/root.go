package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hashgraph-online/bhash-go/pkg/fluree"
	"github.com/hashgraph-online/bhash-go/pkg/shared"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitAPIError = 2

	envLogLevel = "BHASH_LOG_LEVEL"
)

type app struct {
	stdout io.Writer
	stderr io.Writer
	// environ replaces the process environment when non-nil.
	environ    map[string]string
	httpClient *http.Client
	logger     *slog.Logger
	logLevel   string
	noDotEnv   bool
	shutdown   func(context.Context) error
}

func newApp(stdout, stderr io.Writer, environ map[string]string) *app {
	a := &app{stdout: stdout, stderr: stderr, environ: environ}
	a.logger = newLogger(stderr, slog.LevelInfo)
	return a
}

// run executes bhashctl and maps the outcome to a process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, environ map[string]string) int {
	a := newApp(stdout, stderr, environ)
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if a.shutdown != nil {
		if shutdownErr := a.shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			a.logger.Warn("flush traces", "error", shutdownErr)
		}
	}
	if err == nil {
		return exitOK
	}

	var (
		clientErr *fluree.ClientError
		configErr *fluree.ConfigurationError
	)
	if errors.As(err, &clientErr) || errors.As(err, &configErr) {
		a.logger.Error("fluree error", "error", err)
		return exitAPIError
	}
	a.logger.Error(err.Error())
	return exitFailure
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "bhashctl",
		Short: "Fluree Cloud and Hedera integration toolkit",
		Long: `bhashctl talks to the Fluree Cloud API, records Hedera consensus topics
in a Fluree ledger, and checks the repository's RDF fixtures.

Get started:
  bhashctl fluree generate-sparql --dataset acme/topics --prompt "List topics"
  bhashctl hedera topic --simulate --dry-run
  bhashctl hedera bootstrap --plan plan.yaml
  bhashctl ontology check`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.Context())
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (defaults to $BHASH_LOG_LEVEL or info)")
	root.PersistentFlags().BoolVar(&a.noDotEnv, "no-dotenv", false, "Do not load the nearest .env file")

	root.AddCommand(a.newFlureeCommand())
	root.AddCommand(a.newHederaCommand())
	root.AddCommand(a.newOntologyCommand())
	return root
}

func (a *app) setup(ctx context.Context) error {
	if a.environ == nil && !a.noDotEnv {
		path, err := shared.LoadDotEnv("")
		if err != nil {
			return err
		}
		if path != "" {
			a.logger.Debug("loaded environment file", "path", path)
		}
	}

	levelName := strings.TrimSpace(a.logLevel)
	if levelName == "" {
		levelName = a.lookupEnv(envLogLevel)
	}
	level := slog.LevelInfo
	if levelName != "" {
		if err := level.UnmarshalText([]byte(levelName)); err != nil {
			return fmt.Errorf("invalid log level %q", levelName)
		}
	}
	a.logger = newLogger(a.stderr, level)

	shutdown, err := setupTracing(ctx, a.lookupEnv(envOTelEndpoint), a.lookupEnv(envOTelEnabled))
	if err != nil {
		return fmt.Errorf("configure tracing: %w", err)
	}
	a.shutdown = shutdown
	return nil
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (a *app) lookupEnv(key string) string {
	if a.environ != nil {
		return strings.TrimSpace(a.environ[key])
	}
	return strings.TrimSpace(os.Getenv(key))
}

// printResult writes JSON results indented and raw text verbatim.
func (a *app) printResult(result any) error {
	switch value := result.(type) {
	case nil:
		return nil
	case fluree.RawText:
		_, err := fmt.Fprintln(a.stdout, string(value))
		return err
	default:
		encoded, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		_, err = fmt.Fprintln(a.stdout, string(encoded))
		return err
	}
}
