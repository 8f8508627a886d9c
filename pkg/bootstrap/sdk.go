package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/bhash-go/pkg/shared"
)

// SDKNetwork creates artefacts on a live network, paid for by the operator.
type SDKNetwork struct {
	client  *hedera.Client
	network string
	logger  *slog.Logger
}

// NewSDKNetwork creates a new SDKNetwork from operator credentials. Call Close
// when done.
func NewSDKNetwork(config shared.OperatorConfig, logger *slog.Logger) (*SDKNetwork, error) {
	network, err := shared.NormalizeNetwork(config.Network)
	if err != nil {
		return nil, err
	}
	config.Network = network

	client, err := shared.NewOperatorClient(config)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SDKNetwork{client: client, network: network, logger: logger}, nil
}

// Network returns the normalized network name.
func (n *SDKNetwork) Network() string {
	return n.network
}

// Close releases the SDK client.
func (n *SDKNetwork) Close() error {
	if n.client == nil {
		return nil
	}
	return n.client.Close()
}

// CreateAccount creates an account keyed to plan.PublicKey, or to the
// operator's public key when the plan names none.
func (n *SDKNetwork) CreateAccount(ctx context.Context, plan AccountPlan) (AccountRecord, error) {
	if err := ctx.Err(); err != nil {
		return AccountRecord{}, err
	}

	publicKey := n.client.GetOperatorPublicKey()
	if strings.TrimSpace(plan.PublicKey) != "" {
		parsed, err := parsePublicKey("account", plan.PublicKey)
		if err != nil {
			return AccountRecord{}, err
		}
		publicKey = parsed
	}

	transaction := hedera.NewAccountCreateTransaction().SetKey(publicKey)
	if plan.InitialBalanceTinybar > 0 {
		transaction.SetInitialBalance(hedera.HbarFromTinybar(plan.InitialBalanceTinybar))
	}
	if plan.Memo != "" {
		transaction.SetAccountMemo(plan.Memo)
	}

	response, err := transaction.Execute(n.client)
	if err != nil {
		return AccountRecord{}, fmt.Errorf("failed to execute account create transaction: %w", err)
	}
	receipt, err := response.GetReceipt(n.client)
	if err != nil {
		return AccountRecord{}, fmt.Errorf("failed to get account create receipt: %w", err)
	}
	if receipt.AccountID == nil {
		return AccountRecord{}, fmt.Errorf("account ID missing in account create receipt")
	}
	createdAt, err := n.consensusTime(response)
	if err != nil {
		return AccountRecord{}, err
	}

	return AccountRecord{
		Alias:     plan.Alias,
		AccountID: receipt.AccountID.String(),
		PublicKey: publicKey.String(),
		Memo:      plan.Memo,
		Tags:      append([]string(nil), plan.Tags...),
		CreatedAt: createdAt,
	}, nil
}

// CreateTopic creates a consensus topic with the optional admin and submit keys.
func (n *SDKNetwork) CreateTopic(ctx context.Context, plan TopicPlan) (TopicRecord, error) {
	if err := ctx.Err(); err != nil {
		return TopicRecord{}, err
	}

	transaction := hedera.NewTopicCreateTransaction()
	if plan.Memo != "" {
		transaction.SetTopicMemo(plan.Memo)
	}
	if strings.TrimSpace(plan.AdminKey) != "" {
		key, err := parsePublicKey("admin", plan.AdminKey)
		if err != nil {
			return TopicRecord{}, err
		}
		transaction.SetAdminKey(key)
	}
	if strings.TrimSpace(plan.SubmitKey) != "" {
		key, err := parsePublicKey("submit", plan.SubmitKey)
		if err != nil {
			return TopicRecord{}, err
		}
		transaction.SetSubmitKey(key)
	}

	response, err := transaction.Execute(n.client)
	if err != nil {
		return TopicRecord{}, fmt.Errorf("failed to execute create topic transaction: %w", err)
	}
	receipt, err := response.GetReceipt(n.client)
	if err != nil {
		return TopicRecord{}, fmt.Errorf("failed to get create topic receipt: %w", err)
	}
	if receipt.TopicID == nil {
		return TopicRecord{}, fmt.Errorf("topic ID missing in create topic receipt")
	}
	createdAt, err := n.consensusTime(response)
	if err != nil {
		return TopicRecord{}, err
	}

	return TopicRecord{
		Alias:     plan.Alias,
		TopicID:   receipt.TopicID.String(),
		Memo:      plan.Memo,
		Tags:      append([]string(nil), plan.Tags...),
		CreatedAt: createdAt,
	}, nil
}

// CreateToken creates a token owned by plan.TreasuryAccountID.
func (n *SDKNetwork) CreateToken(ctx context.Context, plan TokenPlan) (TokenRecord, error) {
	if err := ctx.Err(); err != nil {
		return TokenRecord{}, err
	}
	if strings.TrimSpace(plan.TreasuryAccountID) == "" {
		return TokenRecord{}, fmt.Errorf("treasury account id is required for token %q", plan.Alias)
	}
	treasury, err := hedera.AccountIDFromString(plan.TreasuryAccountID)
	if err != nil {
		return TokenRecord{}, fmt.Errorf("parse treasury account id: %w", err)
	}

	transaction := hedera.NewTokenCreateTransaction().
		SetTokenName(plan.Name).
		SetTokenSymbol(plan.Symbol).
		SetTreasuryAccountID(treasury).
		SetDecimals(plan.Decimals).
		SetInitialSupply(plan.InitialSupply).
		SetTokenType(sdkTokenType(plan.TokenType)).
		SetSupplyType(sdkSupplyType(plan.SupplyType))
	if plan.Memo != "" {
		transaction.SetTokenMemo(plan.Memo)
	}
	if plan.MaxSupply != 0 {
		transaction.SetMaxSupply(plan.MaxSupply)
	}
	if plan.FreezeDefault != nil {
		transaction.SetFreezeDefault(*plan.FreezeDefault)
	}

	keys := []struct {
		name  string
		value string
		set   func(hedera.Key) *hedera.TokenCreateTransaction
	}{
		{"admin", plan.AdminKey, transaction.SetAdminKey},
		{"supply", plan.SupplyKey, transaction.SetSupplyKey},
		{"kyc", plan.KYCKey, transaction.SetKycKey},
		{"freeze", plan.FreezeKey, transaction.SetFreezeKey},
		{"wipe", plan.WipeKey, transaction.SetWipeKey},
		{"pause", plan.PauseKey, transaction.SetPauseKey},
	}
	for _, key := range keys {
		if strings.TrimSpace(key.value) == "" {
			continue
		}
		parsed, err := parsePublicKey(key.name, key.value)
		if err != nil {
			return TokenRecord{}, err
		}
		key.set(parsed)
	}

	response, err := transaction.Execute(n.client)
	if err != nil {
		return TokenRecord{}, fmt.Errorf("failed to execute token create transaction: %w", err)
	}
	receipt, err := response.GetReceipt(n.client)
	if err != nil {
		return TokenRecord{}, fmt.Errorf("failed to get token create receipt: %w", err)
	}
	if receipt.TokenID == nil {
		return TokenRecord{}, fmt.Errorf("token ID missing in token create receipt")
	}
	createdAt, err := n.consensusTime(response)
	if err != nil {
		return TokenRecord{}, err
	}
	return tokenRecord(plan, receipt.TokenID.String(), createdAt), nil
}

func (n *SDKNetwork) consensusTime(response hedera.TransactionResponse) (time.Time, error) {
	record, err := response.GetRecord(n.client)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get transaction record: %w", err)
	}
	return record.ConsensusTimestamp.UTC(), nil
}

func parsePublicKey(name, value string) (hedera.PublicKey, error) {
	key, err := hedera.PublicKeyFromString(strings.TrimSpace(value))
	if err != nil {
		return hedera.PublicKey{}, fmt.Errorf("parse %s key: %w", name, err)
	}
	return key, nil
}

func sdkTokenType(value string) hedera.TokenType {
	if value == TokenTypeNonFungibleUnique {
		return hedera.TokenTypeNonFungibleUnique
	}
	return hedera.TokenTypeFungibleCommon
}

func sdkSupplyType(value string) hedera.TokenSupplyType {
	if value == SupplyTypeFinite {
		return hedera.TokenSupplyTypeFinite
	}
	return hedera.TokenSupplyTypeInfinite
}
