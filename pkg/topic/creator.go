package topic

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"

	"github.com/hashgraph-online/bhash-go/pkg/shared"
)

// SDKCreator creates topics on a live network.
type SDKCreator struct {
	client  *hedera.Client
	network string
	logger  *slog.Logger
}

// NewSDKCreator creates a new SDKCreator from operator credentials. Call
// Close when done.
func NewSDKCreator(config shared.OperatorConfig, logger *slog.Logger) (*SDKCreator, error) {
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
	return &SDKCreator{client: client, network: network, logger: logger}, nil
}

// Network returns the normalized network name.
func (c *SDKCreator) Network() string {
	return c.network
}

// CreateTopic submits a TopicCreateTransaction and waits for its receipt and
// record. The SDK calls are not cancellable; ctx is checked before submitting.
func (c *SDKCreator) CreateTopic(ctx context.Context, memo string) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}

	transaction := hedera.NewTopicCreateTransaction()
	if memo != "" {
		transaction.SetTopicMemo(memo)
	}

	response, err := transaction.Execute(c.client)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to execute create topic transaction: %w", err)
	}
	receipt, err := response.GetReceipt(c.client)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to get create topic receipt: %w", err)
	}
	if receipt.TopicID == nil {
		return Metadata{}, fmt.Errorf("topic ID missing in create topic receipt")
	}
	record, err := response.GetRecord(c.client)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to get create topic record: %w", err)
	}

	metadata := Metadata{
		TopicID:            receipt.TopicID.String(),
		Network:            c.network,
		ConsensusTimestamp: FormatTimestamp(record.ConsensusTimestamp),
		TransactionID:      response.TransactionID.String(),
		Memo:               memo,
	}
	c.logger.Info("created hedera topic", "topic_id", metadata.TopicID, "network", c.network)
	return metadata, nil
}

// Close releases the SDK client.
func (c *SDKCreator) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// SimulatedCreator returns sequential topic IDs without touching a network.
type SimulatedCreator struct {
	network   string
	accountID string
	now       func() time.Time

	mu   sync.Mutex
	next int64
}

// SimulatedOption configures a SimulatedCreator.
type SimulatedOption func(*SimulatedCreator)

// WithStartingID sets the numeric part of the first topic ID.
func WithStartingID(id int64) SimulatedOption {
	return func(c *SimulatedCreator) {
		c.next = id
	}
}

// WithClock replaces the clock used for consensus timestamps.
func WithClock(now func() time.Time) SimulatedOption {
	return func(c *SimulatedCreator) {
		if now != nil {
			c.now = now
		}
	}
}

// WithPayer sets the account used in generated transaction IDs.
func WithPayer(accountID string) SimulatedOption {
	return func(c *SimulatedCreator) {
		if accountID != "" {
			c.accountID = accountID
		}
	}
}

// NewSimulatedCreator creates a new SimulatedCreator.
func NewSimulatedCreator(network string, options ...SimulatedOption) (*SimulatedCreator, error) {
	normalized, err := shared.NormalizeNetwork(network)
	if err != nil {
		return nil, err
	}
	creator := &SimulatedCreator{
		network:   normalized,
		accountID: "0.0.2",
		now:       time.Now,
		next:      2000,
	}
	for _, option := range options {
		option(creator)
	}
	return creator, nil
}

// CreateTopic returns the next sequential topic ID stamped with the clock.
func (c *SimulatedCreator) CreateTopic(ctx context.Context, memo string) (Metadata, error) {
	if err := ctx.Err(); err != nil {
		return Metadata{}, err
	}

	c.mu.Lock()
	id := c.next
	c.next++
	c.mu.Unlock()

	timestamp := c.now().UTC()
	return Metadata{
		TopicID:            fmt.Sprintf("0.0.%d", id),
		Network:            c.network,
		ConsensusTimestamp: FormatTimestamp(timestamp),
		TransactionID:      fmt.Sprintf("%s@%d.%09d", c.accountID, timestamp.Unix(), timestamp.Nanosecond()),
		Memo:               memo,
	}, nil
}

// FormatTimestamp renders a consensus timestamp as RFC 3339 in UTC.
func FormatTimestamp(timestamp time.Time) string {
	return timestamp.UTC().Format(time.RFC3339Nano)
}
