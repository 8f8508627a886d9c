package bridge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/hashgraph-online/bhash-go/pkg/fluree"
	"github.com/hashgraph-online/bhash-go/pkg/mirror"
	"github.com/hashgraph-online/bhash-go/pkg/topic"
)

// Config wires a Bridge. Creator, Ledger and Owner are required; Verifier is
// only used when Options.Verify is set.
type Config struct {
	Creator topic.Creator
	Ledger  LedgerClient
	// Owner is the Fluree tenant handle that owns created datasets.
	Owner    string
	Verifier TopicVerifier
	Logger   *slog.Logger
	Now      func() time.Time
}

// Bridge creates a topic and records it in a Fluree ledger.
type Bridge struct {
	creator  topic.Creator
	ledger   LedgerClient
	owner    string
	verifier TopicVerifier
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a new Bridge.
func New(config Config) (*Bridge, error) {
	if config.Creator == nil {
		return nil, errors.New("bridge: topic creator is required")
	}
	if config.Ledger == nil {
		return nil, errors.New("bridge: ledger client is required")
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := config.Now
	if now == nil {
		now = time.Now
	}
	return &Bridge{
		creator:  config.Creator,
		ledger:   config.Ledger,
		owner:    strings.TrimSpace(config.Owner),
		verifier: config.Verifier,
		logger:   logger,
		now:      now,
	}, nil
}

type optionsEnv struct {
	StorageType string `env:"FLUREE_STORAGE_TYPE" envDefault:"immutable"`
}

// DefaultsFromEnv returns Options prefilled with the dataset defaults.
// FLUREE_STORAGE_TYPE overrides the storage type. A nil environ reads the
// process environment.
func DefaultsFromEnv(environ map[string]string) (Options, error) {
	var raw optionsEnv
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environ}); err != nil {
		return Options{}, fmt.Errorf("parse bridge environment: %w", err)
	}
	storageType := strings.TrimSpace(raw.StorageType)
	if storageType == "" {
		storageType = DefaultStorageType
	}
	return Options{
		Visibility:    fluree.VisibilityPrivate,
		StorageType:   storageType,
		Description:   DefaultDescription,
		VerifyTimeout: DefaultVerifyTimeout,
	}, nil
}

// DatasetName appends a UTC timestamp to base, e.g. hedera-topics-20240501-120000.
func DatasetName(base string, now time.Time) string {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultDatasetBase
	}
	return base + "-" + now.UTC().Format(datasetTimestampLayout)
}

// BuildTransaction returns the insert transaction for metadata.
func BuildTransaction(ledger string, metadata topic.Metadata) fluree.TransactionRequest {
	return fluree.TransactionRequest{
		Ledger:  ledger,
		Context: topic.Context(),
		Insert:  []map[string]any{metadata.JSONLD()},
	}
}

// Run creates a topic and stores its metadata. The topic is not rolled back
// when a later step fails.
func (b *Bridge) Run(ctx context.Context, options Options) (Result, error) {
	memo, truncated := topic.BuildMemo(options.Memo)
	if truncated {
		b.logger.Warn("memo too long, truncating", "limit_bytes", topic.MaxMemoBytes, "original_bytes", len(strings.TrimSpace(options.Memo)))
	}

	b.logger.Info("submitting topic create transaction")
	metadata, err := b.creator.CreateTopic(ctx, memo)
	if err != nil {
		return Result{}, fmt.Errorf("create topic: %w", err)
	}
	b.logger.Info("created topic", "topic_id", metadata.TopicID, "consensus_timestamp", metadata.ConsensusTimestamp)
	result := Result{Topic: metadata, MemoTruncated: truncated}

	ledger := strings.TrimSpace(options.Ledger)
	if ledger == "" {
		ledger, result.DatasetCreated, err = b.ensureLedger(ctx, options)
		if err != nil {
			return result, err
		}
	}
	result.Ledger = ledger

	b.logger.Info("transacting topic metadata", "ledger", ledger)
	response, err := b.ledger.Transact(ctx, BuildTransaction(ledger, metadata))
	if err != nil {
		return result, fmt.Errorf("store topic metadata in %s: %w", ledger, err)
	}
	result.Response = response
	b.logger.Info("stored topic metadata", "ledger", ledger)

	if options.Verify {
		info, err := b.verify(ctx, metadata.TopicID, options.VerifyTimeout)
		if err != nil {
			return result, err
		}
		result.Mirror = &info
	}
	return result, nil
}

func (b *Bridge) ensureLedger(ctx context.Context, options Options) (string, bool, error) {
	if b.owner == "" {
		return "", false, fluree.ErrOwnerRequired
	}
	datasetName := DatasetName(options.DatasetName, b.now())
	visibility := options.Visibility
	if visibility == "" {
		visibility = fluree.VisibilityPrivate
	}
	storageType := options.StorageType
	if storageType == "" {
		storageType = DefaultStorageType
	}
	description := options.Description
	if description == "" {
		description = DefaultDescription
	}

	b.logger.Info("ensuring dataset", "dataset", datasetName, "owner", b.owner)
	_, err := b.ledger.CreateDataset(ctx, b.owner, fluree.CreateDatasetRequest{
		DatasetName: datasetName,
		StorageType: storageType,
		Description: description,
		Visibility:  visibility,
		Tags:        options.Tags,
	})
	ledger := b.owner + "/" + datasetName
	switch {
	case err == nil:
		b.logger.Info("created dataset", "dataset", datasetName)
		return ledger, true, nil
	case fluree.IsAlreadyExists(err):
		b.logger.Info("dataset already exists, continuing", "dataset", datasetName)
		return ledger, false, nil
	default:
		return "", false, fmt.Errorf("create dataset %s: %w", datasetName, err)
	}
}

func (b *Bridge) verify(ctx context.Context, topicID string, timeout time.Duration) (mirror.TopicInfo, error) {
	if b.verifier == nil {
		return mirror.TopicInfo{}, errors.New("bridge: verification requested without a mirror client")
	}
	if timeout <= 0 {
		timeout = DefaultVerifyTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	b.logger.Info("waiting for mirror node", "topic_id", topicID)
	info, err := b.verifier.WaitForTopic(ctx, topicID, mirror.DefaultPollInterval)
	if err != nil {
		return mirror.TopicInfo{}, fmt.Errorf("verify topic %s: %w", topicID, err)
	}
	return info, nil
}
