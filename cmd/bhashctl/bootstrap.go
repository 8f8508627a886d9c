package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hashgraph-online/bhash-go/pkg/bootstrap"
	"github.com/hashgraph-online/bhash-go/pkg/shared"
)

type bootstrapFlags struct {
	planPath string
	ledger   string
	simulate bool
	commit   bool
	timeout  time.Duration
}

func (a *app) newBootstrapCommand(flureeOverrides *flureeFlags, hedera *hederaFlags) *cobra.Command {
	var flags bootstrapFlags
	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Create the accounts, topics and tokens of a plan and record them in Fluree",
		Long: `Read a JSON or YAML plan, create every account, consensus topic and token
it lists, and print the resulting records with the Fluree transaction that
describes them. Tokens may name their treasury by the alias of an account
created earlier in the same plan.

Runs are simulated unless --simulate=false is given. Nothing is written to
Fluree without --commit.

Examples:
  bhashctl hedera bootstrap --plan plan.yaml
  bhashctl hedera bootstrap --plan plan.yaml --simulate=false --commit --ledger acme/hedera-assets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBootstrap(cmd, *flureeOverrides, *hedera, flags)
		},
	}
	f := cmd.Flags()
	f.StringVar(&flags.planPath, "plan", "", "JSON or YAML plan file")
	f.StringVar(&flags.planPath, "spec", "", "Alias for --plan")
	_ = f.MarkHidden("spec")
	f.StringVar(&flags.ledger, "ledger", "", "Ledger (owner/dataset) receiving the records; defaults to the plan's ledger")
	f.BoolVar(&flags.simulate, "simulate", true, "Use deterministic offline identifiers instead of the Hedera network")
	f.BoolVar(&flags.commit, "commit", false, "Transact the records into Fluree")
	f.DurationVar(&flags.timeout, "timeout", bootstrap.DefaultTimeout, "Maximum time for the whole run")
	return cmd
}

func (a *app) runBootstrap(cmd *cobra.Command, flureeOverrides flureeFlags, hedera hederaFlags, flags bootstrapFlags) error {
	if strings.TrimSpace(flags.planPath) == "" {
		return fmt.Errorf("--plan is required")
	}
	plan, err := bootstrap.LoadPlan(flags.planPath)
	if err != nil {
		return err
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	ledger := strings.TrimSpace(flags.ledger)
	if ledger == "" {
		ledger = plan.Ledger
	}
	if flags.commit && ledger == "" {
		return fmt.Errorf("--ledger is required with --commit when the plan names no ledger")
	}

	if strings.TrimSpace(hedera.network) == "" {
		hedera.network = plan.Network
	}
	networkName, err := a.networkName(hedera)
	if err != nil {
		return err
	}
	network, closeNetwork, err := a.bootstrapNetwork(hedera, networkName, flags.simulate)
	if err != nil {
		return err
	}
	defer closeNetwork()

	bootstrapper, err := bootstrap.New(bootstrap.Config{
		Network:     network,
		NetworkName: networkName,
		Logger:      a.logger,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if flags.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, flags.timeout)
		defer cancel()
	}
	result, err := bootstrapper.Execute(ctx, plan)
	if err != nil {
		if created := len(result.Accounts) + len(result.Topics) + len(result.Tokens); created > 0 {
			a.logger.Warn("bootstrap stopped after creating some artefacts", "created", created)
			_ = a.printResult(bootstrapOutput(result, ledger))
		}
		return err
	}

	output := bootstrapOutput(result, ledger)
	if flags.commit {
		client, err := a.flureeClient(flureeOverrides)
		if err != nil {
			return err
		}
		response, err := client.Transact(ctx, result.Transaction(ledger))
		if err != nil {
			return err
		}
		output["flureeResponse"] = response
	}
	return a.printResult(output)
}

func (a *app) bootstrapNetwork(hedera hederaFlags, networkName string, simulate bool) (bootstrap.Network, func(), error) {
	if simulate {
		return bootstrap.NewSimulatedNetwork(), func() {}, nil
	}

	config, err := shared.OperatorConfigFromEnv(a.withOverrides(map[string]string{
		shared.EnvNetwork:     networkName,
		shared.EnvOperatorID:  hedera.operatorID,
		shared.EnvOperatorKey: hedera.operatorKey,
	}))
	if err != nil {
		return nil, nil, err
	}
	network, err := bootstrap.NewSDKNetwork(config, a.logger)
	if err != nil {
		return nil, nil, err
	}
	return network, func() { _ = network.Close() }, nil
}

func bootstrapOutput(result bootstrap.Result, ledger string) map[string]any {
	transaction := result.Transaction(ledger)
	return map[string]any{
		"network":  result.Network,
		"ledger":   ledger,
		"accounts": result.Accounts,
		"topics":   result.Topics,
		"tokens":   result.Tokens,
		"transaction": map[string]any{
			"ledger":  transaction.Ledger,
			"context": transaction.Context,
			"insert":  transaction.Insert,
		},
	}
}
