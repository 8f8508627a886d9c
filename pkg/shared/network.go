package shared

import (
	"fmt"
	"strings"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	NetworkMainnet    = "mainnet"
	NetworkTestnet    = "testnet"
	NetworkPreviewnet = "previewnet"
)

// NormalizeNetwork lowercases a network name and defaults empty input to
// testnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkMainnet, NetworkTestnet, NetworkPreviewnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported hedera network %q", network)
	}
}

// NewHederaClient creates a new HederaClient without an operator.
func NewHederaClient(network string) (*hedera.Client, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return nil, err
	}

	switch normalized {
	case NetworkMainnet:
		return hedera.ClientForMainnet(), nil
	case NetworkPreviewnet:
		return hedera.ClientForPreviewnet(), nil
	default:
		return hedera.ClientForTestnet(), nil
	}
}

// NewOperatorClient builds an SDK client for config.Network with the operator
// set and, when configured, the mirror network replaced.
func NewOperatorClient(config OperatorConfig) (*hedera.Client, error) {
	client, err := NewHederaClient(config.Network)
	if err != nil {
		return nil, err
	}

	accountID, err := hedera.AccountIDFromString(strings.TrimSpace(config.AccountID))
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("parse operator account id: %w", err)
	}
	privateKey, err := ParsePrivateKey(config.PrivateKey)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("parse operator private key: %w", err)
	}
	client.SetOperator(accountID, privateKey)

	if mirrorURL := strings.TrimSpace(config.MirrorURL); mirrorURL != "" {
		client.SetMirrorNetwork([]string{mirrorURL})
	}
	return client, nil
}
