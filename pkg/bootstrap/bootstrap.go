package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hashgraph-online/bhash-go/pkg/shared"
)

// Config wires a Bootstrapper. NetworkName is recorded on every node and
// defaults to testnet.
type Config struct {
	Network     Network
	NetworkName string
	Logger      *slog.Logger
}

// Bootstrapper runs plans against a Network.
type Bootstrapper struct {
	network     Network
	networkName string
	logger      *slog.Logger
}

// New creates a new Bootstrapper.
func New(config Config) (*Bootstrapper, error) {
	if config.Network == nil {
		return nil, errors.New("bootstrap network is required")
	}
	networkName, err := shared.NormalizeNetwork(config.NetworkName)
	if err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bootstrapper{network: config.Network, networkName: networkName, logger: logger}, nil
}

// Execute validates plan and creates accounts, then topics, then tokens. On
// failure the returned Result still lists what was created before the error.
func (b *Bootstrapper) Execute(ctx context.Context, plan Plan) (Result, error) {
	result := Result{Network: b.networkName}
	if err := plan.Validate(); err != nil {
		return result, err
	}

	accountIDs := make(map[string]string, len(plan.Accounts))
	for _, account := range plan.Accounts {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		record, err := b.network.CreateAccount(ctx, account)
		if err != nil {
			return result, fmt.Errorf("create account %q: %w", account.Alias, err)
		}
		if record.Alias == "" {
			record.Alias = account.Alias
		}
		result.Accounts = append(result.Accounts, record)
		if alias := strings.TrimSpace(record.Alias); alias != "" {
			accountIDs[alias] = record.AccountID
		}
		b.logger.Info("created hedera account", "alias", record.Alias, "account_id", record.AccountID)
	}

	for _, topic := range plan.Topics {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		record, err := b.network.CreateTopic(ctx, topic)
		if err != nil {
			return result, fmt.Errorf("create topic %q: %w", topic.Alias, err)
		}
		if record.Alias == "" {
			record.Alias = topic.Alias
		}
		result.Topics = append(result.Topics, record)
		b.logger.Info("created hedera topic", "alias", record.Alias, "topic_id", record.TopicID)
	}

	for _, token := range plan.Tokens {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		resolved, err := resolveToken(token, accountIDs)
		if err != nil {
			return result, err
		}
		record, err := b.network.CreateToken(ctx, resolved)
		if err != nil {
			return result, fmt.Errorf("create token %q: %w", token.Alias, err)
		}
		if record.Alias == "" {
			record.Alias = token.Alias
		}
		result.Tokens = append(result.Tokens, record)
		b.logger.Info("created hedera token", "alias", record.Alias, "token_id", record.TokenID)
	}

	return result, nil
}

func resolveToken(token TokenPlan, accountIDs map[string]string) (TokenPlan, error) {
	var err error
	if token.TokenType, err = NormalizeTokenType(token.TokenType); err != nil {
		return TokenPlan{}, err
	}
	if token.SupplyType, err = NormalizeSupplyType(token.SupplyType); err != nil {
		return TokenPlan{}, err
	}
	token.TreasuryAccountID = strings.TrimSpace(token.TreasuryAccountID)
	if token.TreasuryAccountID == "" {
		id, ok := accountIDs[strings.TrimSpace(token.TreasuryAlias)]
		if !ok {
			return TokenPlan{}, fmt.Errorf("treasury alias %q not found", token.TreasuryAlias)
		}
		token.TreasuryAccountID = id
	}
	return token, nil
}
