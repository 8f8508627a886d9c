package bridge

import (
	"context"
	"time"

	"github.com/hashgraph-online/bhash-go/pkg/fluree"
	"github.com/hashgraph-online/bhash-go/pkg/mirror"
	"github.com/hashgraph-online/bhash-go/pkg/topic"
)

const (
	DefaultDatasetBase   = "hedera-topics"
	DefaultStorageType   = "immutable"
	DefaultDescription   = "Ledger capturing Hedera consensus topics created by the Bhash toolkit."
	DefaultVerifyTimeout = 2 * time.Minute

	datasetTimestampLayout = "20060102-150405"
)

// LedgerClient is the part of *fluree.Client a run needs.
type LedgerClient interface {
	CreateDataset(ctx context.Context, ownerHandle string, request fluree.CreateDatasetRequest) (any, error)
	Transact(ctx context.Context, request fluree.TransactionRequest) (any, error)
}

// TopicVerifier is satisfied by *mirror.Client.
type TopicVerifier interface {
	WaitForTopic(ctx context.Context, topicID string, interval time.Duration) (mirror.TopicInfo, error)
}

// Options control a single Run.
type Options struct {
	// Ledger is a fully qualified handle/dataset. When set, dataset creation
	// is skipped.
	Ledger string
	// DatasetName is the base name; a UTC timestamp suffix is appended.
	DatasetName   string
	Memo          string
	Visibility    fluree.Visibility
	StorageType   string
	Description   string
	Tags          []string
	Verify        bool
	VerifyTimeout time.Duration
}

// Result describes a Run. On failure it still carries whatever was created.
type Result struct {
	Topic          topic.Metadata    `json:"topic"`
	Ledger         string            `json:"ledger"`
	DatasetCreated bool              `json:"datasetCreated"`
	MemoTruncated  bool              `json:"memoTruncated,omitempty"`
	Response       any               `json:"response,omitempty"`
	Mirror         *mirror.TopicInfo `json:"mirror,omitempty"`
}
