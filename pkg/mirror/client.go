package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashgraph-online/bhash-go/pkg/shared"
)

const DefaultPollInterval = 2 * time.Second

var ErrNotFound = errors.New("mirror: resource not found")

// Config configures a Client. BaseURL overrides the public endpoint for
// Network.
type Config struct {
	Network    string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client reads topic information from a mirror node REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// StatusError is returned for non-2xx mirror node responses other than 404.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mirror node request failed with status %d: %s", e.StatusCode, e.Body)
}

// DefaultBaseURL returns the public mirror node REST endpoint for network.
func DefaultBaseURL(network string) (string, error) {
	normalized, err := shared.NormalizeNetwork(network)
	if err != nil {
		return "", err
	}
	switch normalized {
	case shared.NetworkMainnet:
		return "https://mainnet-public.mirrornode.hedera.com", nil
	case shared.NetworkPreviewnet:
		return "https://previewnet.mirrornode.hedera.com", nil
	default:
		return "https://testnet.mirrornode.hedera.com", nil
	}
}

// NewClient creates a new Client.
func NewClient(config Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(config.BaseURL), "/")
	if baseURL == "" {
		defaultURL, err := DefaultBaseURL(config.Network)
		if err != nil {
			return nil, err
		}
		baseURL = defaultURL
	}
	parsedBaseURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid mirror base URL: %w", err)
	}
	if parsedBaseURL.Scheme != "http" && parsedBaseURL.Scheme != "https" {
		return nil, fmt.Errorf("invalid mirror base URL: scheme must be http or https")
	}
	if strings.TrimSpace(parsedBaseURL.Host) == "" {
		return nil, fmt.Errorf("invalid mirror base URL: host is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		baseURL:    strings.TrimRight(parsedBaseURL.String(), "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// BaseURL returns the resolved endpoint without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// GetTopicInfo fetches a topic. A topic the mirror node has not ingested yet
// yields ErrNotFound.
func (c *Client) GetTopicInfo(ctx context.Context, topicID string) (TopicInfo, error) {
	var topicInfo TopicInfo
	normalized := strings.TrimSpace(topicID)
	if normalized == "" {
		return topicInfo, fmt.Errorf("topic ID is required")
	}

	if err := c.getJSON(ctx, "/api/v1/topics/"+url.PathEscape(normalized), &topicInfo); err != nil {
		return topicInfo, err
	}
	return topicInfo, nil
}

// GetTransaction accepts either SDK (0.0.1@1.2) or mirror (0.0.1-1-2)
// transaction ID notation.
func (c *Client) GetTransaction(ctx context.Context, transactionID string) (*Transaction, error) {
	normalized := MirrorTransactionID(transactionID)
	if normalized == "" {
		return nil, fmt.Errorf("transaction ID is required")
	}

	var response transactionsResponse
	if err := c.getJSON(ctx, "/api/v1/transactions/"+url.PathEscape(normalized), &response); err != nil {
		return nil, err
	}
	if len(response.Transactions) == 0 {
		return nil, ErrNotFound
	}
	return &response.Transactions[0], nil
}

// WaitForTopic polls GetTopicInfo until the topic is visible or ctx is done.
func (c *Client) WaitForTopic(ctx context.Context, topicID string, interval time.Duration) (TopicInfo, error) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		info, err := c.GetTopicInfo(ctx, topicID)
		if err == nil {
			return info, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return TopicInfo{}, err
		}
		c.logger.Debug("topic not visible on mirror node yet", "topic_id", topicID, "attempt", attempt)

		select {
		case <-ctx.Done():
			return TopicInfo{}, fmt.Errorf("wait for topic %s: %w", topicID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// MirrorTransactionID converts 0.0.123@1700000000.000000001 into
// 0.0.123-1700000000-000000001. Other input is returned trimmed.
func MirrorTransactionID(transactionID string) string {
	normalized := strings.TrimSpace(transactionID)
	account, validStart, found := strings.Cut(normalized, "@")
	if !found {
		return normalized
	}
	if suffix := strings.Index(validStart, "?"); suffix >= 0 {
		validStart = validStart[:suffix]
	}
	return account + "-" + strings.Replace(validStart, ".", "-", 1)
}

func (c *Client) getJSON(ctx context.Context, path string, target any) error {
	requestURL := c.baseURL + path
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("mirror node request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("failed to read mirror node response: %w", err)
	}

	if response.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return &StatusError{StatusCode: response.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("failed to decode mirror node response: %w", err)
	}
	return nil
}
