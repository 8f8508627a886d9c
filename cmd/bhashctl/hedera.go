package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hashgraph-online/bhash-go/pkg/bridge"
	"github.com/hashgraph-online/bhash-go/pkg/fluree"
	"github.com/hashgraph-online/bhash-go/pkg/mirror"
	"github.com/hashgraph-online/bhash-go/pkg/ontology"
	"github.com/hashgraph-online/bhash-go/pkg/shared"
	"github.com/hashgraph-online/bhash-go/pkg/topic"
)

type hederaFlags struct {
	network     string
	operatorID  string
	operatorKey string
	mirrorURL   string
}

type topicFlags struct {
	ledger        string
	datasetName   string
	memo          string
	visibility    string
	storageType   string
	description   string
	tags          []string
	simulate      bool
	verify        bool
	verifyTimeout time.Duration
	dryRun        bool
}

func (a *app) newHederaCommand() *cobra.Command {
	var (
		flureeOverrides flureeFlags
		hedera          hederaFlags
	)
	cmd := &cobra.Command{
		Use:   "hedera",
		Short: "Create Hedera artefacts and record them in Fluree",
	}
	addFlureeFlags(cmd, &flureeOverrides)
	flags := cmd.PersistentFlags()
	flags.StringVar(&hedera.network, "network", "", "Hedera network (defaults to $HEDERA_NETWORK or testnet)")
	flags.StringVar(&hedera.operatorID, "operator-id", "", "Hedera operator account ID (defaults to $HEDERA_OPERATOR_ID)")
	flags.StringVar(&hedera.operatorKey, "operator-key", "", "Hedera operator private key (defaults to $HEDERA_OPERATOR_KEY)")
	flags.StringVar(&hedera.mirrorURL, "mirror-url", "", "Mirror node REST URL used by --verify")

	cmd.AddCommand(a.newTopicCommand(&flureeOverrides, &hedera))
	cmd.AddCommand(a.newBootstrapCommand(&flureeOverrides, &hedera))
	return cmd
}

func (a *app) newTopicCommand(flureeOverrides *flureeFlags, hedera *hederaFlags) *cobra.Command {
	var flags topicFlags
	cmd := &cobra.Command{
		Use:   "topic",
		Short: "Create a consensus topic and store its metadata in Fluree",
		Long: `Create a Hedera consensus topic, make sure the target dataset exists, and
transact the topic's JSON-LD description into it.

Without --ledger a dataset named <dataset-name>-YYYYmmdd-HHMMSS (UTC) is
created under the tenant handle; an "already exists" answer is not an error.

Examples:
  bhashctl hedera topic
  bhashctl hedera topic --ledger acme/hedera-topics --memo "pilot run"
  bhashctl hedera topic --simulate --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.dryRun {
				return a.runTopicDryRun(cmd, *hedera, flags)
			}
			return a.runTopic(cmd, *flureeOverrides, *hedera, flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.ledger, "ledger", "", "Existing ledger (owner/dataset); skips dataset creation")
	f.StringVar(&flags.datasetName, "dataset-name", bridge.DefaultDatasetBase, "Base dataset name; a UTC timestamp suffix is appended")
	f.StringVar(&flags.memo, "memo", "", "Topic memo (defaults to \""+topic.DefaultMemo+"\")")
	f.StringVar(&flags.visibility, "visibility", string(fluree.VisibilityPrivate), "Dataset visibility: private or public")
	f.StringVar(&flags.storageType, "storage-type", "", "Dataset storage type (defaults to $FLUREE_STORAGE_TYPE or immutable)")
	f.StringVar(&flags.description, "description", bridge.DefaultDescription, "Dataset description")
	f.StringArrayVar(&flags.tags, "tag", nil, "Dataset tag (repeatable)")
	f.BoolVar(&flags.simulate, "simulate", false, "Use deterministic offline topic IDs instead of the Hedera network")
	f.BoolVar(&flags.verify, "verify", false, "Wait for the mirror node to report the new topic")
	f.DurationVar(&flags.verifyTimeout, "verify-timeout", bridge.DefaultVerifyTimeout, "Maximum time to wait for the mirror node")
	f.BoolVar(&flags.dryRun, "dry-run", false, "Print the transaction and its N-Triples without calling Fluree (implies --simulate)")
	return cmd
}

func (a *app) networkName(hedera hederaFlags) (string, error) {
	network := hedera.network
	if strings.TrimSpace(network) == "" {
		network = a.lookupEnv(shared.EnvNetwork)
	}
	return shared.NormalizeNetwork(network)
}

func (a *app) topicCreator(hedera hederaFlags, simulate bool) (topic.Creator, func(), error) {
	network, err := a.networkName(hedera)
	if err != nil {
		return nil, nil, err
	}
	if simulate {
		creator, err := topic.NewSimulatedCreator(network)
		return creator, func() {}, err
	}

	config, err := shared.OperatorConfigFromEnv(a.withOverrides(map[string]string{
		shared.EnvNetwork:     network,
		shared.EnvOperatorID:  hedera.operatorID,
		shared.EnvOperatorKey: hedera.operatorKey,
	}))
	if err != nil {
		return nil, nil, err
	}
	creator, err := topic.NewSDKCreator(config, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return creator, func() { _ = creator.Close() }, nil
}

// withOverrides returns the effective environment with the non-empty
// overrides applied.
func (a *app) withOverrides(overrides map[string]string) map[string]string {
	merged := make(map[string]string)
	for _, key := range []string{shared.EnvNetwork, shared.EnvOperatorID, shared.EnvOperatorKey, shared.EnvMirrorURL} {
		if value := a.lookupEnv(key); value != "" {
			merged[key] = value
		}
	}
	for key, value := range overrides {
		if strings.TrimSpace(value) != "" {
			merged[key] = value
		}
	}
	return merged
}

func (a *app) topicOptions(flags topicFlags) (bridge.Options, error) {
	options, err := bridge.DefaultsFromEnv(a.environ)
	if err != nil {
		return bridge.Options{}, err
	}
	visibility, err := fluree.ParseVisibility(flags.visibility)
	if err != nil {
		return bridge.Options{}, err
	}
	options.Ledger = flags.ledger
	options.DatasetName = flags.datasetName
	options.Memo = flags.memo
	options.Visibility = visibility
	if strings.TrimSpace(flags.storageType) != "" {
		options.StorageType = flags.storageType
	}
	if strings.TrimSpace(flags.description) != "" {
		options.Description = flags.description
	}
	options.Tags = flags.tags
	options.Verify = flags.verify
	options.VerifyTimeout = flags.verifyTimeout
	return options, nil
}

func (a *app) runTopic(cmd *cobra.Command, flureeOverrides flureeFlags, hedera hederaFlags, flags topicFlags) error {
	options, err := a.topicOptions(flags)
	if err != nil {
		return err
	}
	client, err := a.flureeClient(flureeOverrides)
	if err != nil {
		return err
	}

	config := bridge.Config{
		Ledger: client,
		Owner:  client.Config().TenantHandle,
		Logger: a.logger,
	}
	if flags.verify {
		network, err := a.networkName(hedera)
		if err != nil {
			return err
		}
		mirrorClient, err := mirror.NewClient(mirror.Config{
			Network:    network,
			BaseURL:    hedera.mirrorURL,
			HTTPClient: a.httpClient,
			Logger:     a.logger,
		})
		if err != nil {
			return err
		}
		config.Verifier = mirrorClient
	}

	creator, closeCreator, err := a.topicCreator(hedera, flags.simulate)
	if err != nil {
		return err
	}
	defer closeCreator()
	config.Creator = creator

	b, err := bridge.New(config)
	if err != nil {
		return err
	}
	result, err := b.Run(cmd.Context(), options)
	if err != nil {
		if result.Topic.TopicID != "" {
			a.logger.Warn("topic was created but not fully recorded", "topic_id", result.Topic.TopicID)
		}
		return err
	}

	fmt.Fprintf(a.stdout, "Created Hedera topic %s on %s and stored metadata in %s.\n",
		result.Topic.TopicID, result.Topic.Network, result.Ledger)
	if result.Response != nil {
		fmt.Fprintln(a.stdout, "Fluree response:")
		return a.printResult(result.Response)
	}
	return nil
}

func (a *app) runTopicDryRun(cmd *cobra.Command, hedera hederaFlags, flags topicFlags) error {
	creator, closeCreator, err := a.topicCreator(hedera, true)
	if err != nil {
		return err
	}
	defer closeCreator()

	memo, truncated := topic.BuildMemo(flags.memo)
	if truncated {
		a.logger.Warn("memo too long, truncating", "limit_bytes", topic.MaxMemoBytes)
	}
	metadata, err := creator.CreateTopic(cmd.Context(), memo)
	if err != nil {
		return err
	}

	ledger := strings.TrimSpace(flags.ledger)
	if ledger == "" {
		owner := strings.TrimSpace(a.lookupEnv(fluree.EnvHandle))
		if owner == "" {
			owner = "<tenant>"
		}
		ledger = owner + "/" + bridge.DatasetName(flags.datasetName, time.Now())
	}
	transaction := bridge.BuildTransaction(ledger, metadata)

	encoded, err := json.MarshalIndent(map[string]any{
		"ledger":  transaction.Ledger,
		"context": transaction.Context,
		"insert":  transaction.Insert,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode transaction: %w", err)
	}
	fmt.Fprintln(a.stdout, string(encoded))

	triples, err := ontology.JSONLDToNTriples(cmd.Context(), metadata.Document())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout)
	fmt.Fprint(a.stdout, triples)
	return nil
}
