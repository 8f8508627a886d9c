package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hashgraph-online/bhash-go/pkg/bridge"
	"github.com/hashgraph-online/bhash-go/pkg/fluree"
)

// flureeFlags are the credential overrides shared by every command that
// talks to Fluree.
type flureeFlags struct {
	apiToken string
	tenant   string
	baseURL  string
}

func addFlureeFlags(cmd *cobra.Command, target *flureeFlags) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&target.apiToken, "api-token", "", "Fluree API token (defaults to $FLUREE_API_TOKEN)")
	flags.StringVar(&target.tenant, "tenant", "", "Fluree tenant handle (defaults to $FLUREE_HANDLE)")
	flags.StringVar(&target.baseURL, "base-url", "", "Fluree API base URL (defaults to $FLUREE_BASE_URL)")
}

func (a *app) flureeClient(flags flureeFlags) (*fluree.Client, error) {
	config, err := fluree.LoadConfig(a.environ, fluree.Config{
		APIToken:     flags.apiToken,
		TenantHandle: flags.tenant,
		BaseURL:      flags.baseURL,
	})
	if err != nil {
		return nil, err
	}

	options := []fluree.Option{fluree.WithLogger(a.logger)}
	if a.httpClient != nil {
		options = append(options, fluree.WithHTTPClient(a.httpClient))
	}
	return fluree.NewClient(config, options...)
}

func ownerOrTenant(owner string, client *fluree.Client) string {
	if value := strings.TrimSpace(owner); value != "" {
		return value
	}
	return client.Config().TenantHandle
}

func (a *app) newFlureeCommand() *cobra.Command {
	var flags flureeFlags
	cmd := &cobra.Command{
		Use:   "fluree",
		Short: "Call the Fluree Cloud API",
	}
	addFlureeFlags(cmd, &flags)

	cmd.AddCommand(a.newCreateDatasetCommand(&flags))
	cmd.AddCommand(a.newTransactCommand(&flags))
	for _, operation := range []string{
		fluree.OperationGeneratePrompt,
		fluree.OperationGenerateSPARQL,
		fluree.OperationGenerateAnswer,
	} {
		cmd.AddCommand(a.newGenerateCommand(&flags, operation))
	}
	return cmd
}

func (a *app) newCreateDatasetCommand(flags *flureeFlags) *cobra.Command {
	var (
		owner       string
		datasetName string
		storageType string
		description string
		visibility  string
		tags        []string
	)
	cmd := &cobra.Command{
		Use:   "create-dataset",
		Short: "Create a Fluree dataset",
		Long: `Create a dataset under the owner handle.

Example:
  bhashctl fluree create-dataset --dataset-name hedera-topics --tag hedera --tag topics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(datasetName) == "" {
				return fmt.Errorf("--dataset-name is required")
			}
			parsedVisibility, err := fluree.ParseVisibility(visibility)
			if err != nil {
				return err
			}
			if strings.TrimSpace(storageType) == "" {
				defaults, err := bridge.DefaultsFromEnv(a.environ)
				if err != nil {
					return err
				}
				storageType = defaults.StorageType
			}

			client, err := a.flureeClient(*flags)
			if err != nil {
				return err
			}
			result, err := client.CreateDataset(cmd.Context(), ownerOrTenant(owner, client), fluree.CreateDatasetRequest{
				DatasetName: datasetName,
				StorageType: storageType,
				Description: description,
				Visibility:  parsedVisibility,
				Tags:        tags,
			})
			if err != nil {
				return err
			}
			return a.printResult(result)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Owner handle for the dataset (defaults to the tenant handle)")
	cmd.Flags().StringVar(&datasetName, "dataset-name", "", "Dataset name")
	cmd.Flags().StringVar(&storageType, "storage-type", "", "Storage type (defaults to $FLUREE_STORAGE_TYPE or immutable)")
	cmd.Flags().StringVar(&description, "description", "", "Dataset description")
	cmd.Flags().StringVar(&visibility, "visibility", string(fluree.VisibilityPrivate), "Dataset visibility: private or public")
	cmd.Flags().StringArrayVar(&tags, "tag", nil, "Dataset tag (repeatable)")
	return cmd
}

func (a *app) newTransactCommand(flags *flureeFlags) *cobra.Command {
	var (
		ledger      string
		insertPath  string
		deletePath  string
		wherePath   string
		contextPath string
	)
	cmd := &cobra.Command{
		Use:   "transact",
		Short: "Submit a transaction to a Fluree ledger",
		Long: `Submit a transaction built from JSON files. Omitted files leave the
matching key out of the request entirely.

Example:
  bhashctl fluree transact --ledger acme/topics --insert insert.json --context context.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(ledger) == "" {
				return fmt.Errorf("--ledger is required")
			}
			request := fluree.TransactionRequest{Ledger: ledger}
			var err error
			if request.Insert, err = readStatements(insertPath); err != nil {
				return err
			}
			if request.Delete, err = readStatements(deletePath); err != nil {
				return err
			}
			if request.Where, err = readStatements(wherePath); err != nil {
				return err
			}
			if contextPath != "" {
				if err := readJSONFile(contextPath, &request.Context); err != nil {
					return err
				}
			}

			client, err := a.flureeClient(*flags)
			if err != nil {
				return err
			}
			result, err := client.Transact(cmd.Context(), request)
			if err != nil {
				return err
			}
			return a.printResult(result)
		},
	}
	cmd.Flags().StringVar(&ledger, "ledger", "", "Ledger identifier (owner/dataset)")
	cmd.Flags().StringVar(&insertPath, "insert", "", "JSON file with the insert statements")
	cmd.Flags().StringVar(&deletePath, "delete", "", "JSON file with the delete statements")
	cmd.Flags().StringVar(&wherePath, "where", "", "JSON file with the where clause")
	cmd.Flags().StringVar(&contextPath, "context", "", "JSON file with the JSON-LD context object")
	return cmd
}

func (a *app) newGenerateCommand(flags *flureeFlags, operation string) *cobra.Command {
	var (
		owner    string
		datasets []string
		prompt   string
	)
	cmd := &cobra.Command{
		Use:   operation,
		Short: "Call the " + operation + " endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(prompt) == "" {
				return fmt.Errorf("--prompt is required")
			}
			client, err := a.flureeClient(*flags)
			if err != nil {
				return err
			}
			request := fluree.PromptRequest{Datasets: datasets, Prompt: prompt}
			ownerHandle := ownerOrTenant(owner, client)

			var result any
			switch operation {
			case fluree.OperationGeneratePrompt:
				result, err = client.GeneratePrompt(cmd.Context(), ownerHandle, request)
			case fluree.OperationGenerateSPARQL:
				result, err = client.GenerateSPARQL(cmd.Context(), ownerHandle, request)
			default:
				result, err = client.GenerateAnswer(cmd.Context(), ownerHandle, request)
			}
			if err != nil {
				return err
			}
			return a.printResult(result)
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Owner handle (defaults to the tenant handle)")
	cmd.Flags().StringSliceVar(&datasets, "dataset", nil, "Dataset identifier owner/dataset (repeatable or comma separated)")
	cmd.Flags().StringVar(&prompt, "prompt", "", "Prompt or question to send")
	return cmd
}

// readStatements loads a JSON array of objects. A single object is accepted
// as a one-element list. An empty path yields nil so the key is omitted.
func readStatements(path string) ([]map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	var raw json.RawMessage
	if err := readJSONFile(path, &raw); err != nil {
		return nil, err
	}

	statements := []map[string]any{}
	if err := json.Unmarshal(raw, &statements); err == nil {
		return statements, nil
	}
	var single map[string]any
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("%s: expected a JSON object or array of objects", path)
	}
	return []map[string]any{single}, nil
}

func readJSONFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
