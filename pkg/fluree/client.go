package fluree

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// RequestTimeout bounds every request. HandleHeader carries the tenant handle.
const (
	RequestTimeout = 30 * time.Second
	HandleHeader   = "x-user-handle"

	tracerName = "github.com/hashgraph-online/bhash-go/pkg/fluree"
)

// Client calls the Fluree Cloud REST API with a fixed Config. It is safe for
// concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client. The client is used as-is;
// the 30 second request bound still applies through the request context.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLogger sets the logger used for request debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTracerProvider sets the provider for request spans. The global
// provider is used otherwise.
func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(c *Client) {
		if provider != nil {
			c.tracer = provider.Tracer(tracerName)
		}
	}
}

// NewClient creates a new Client.
func NewClient(config Config, options ...Option) (*Client, error) {
	if strings.TrimSpace(config.BaseURL) == "" {
		config.BaseURL = DefaultBaseURL
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client := &Client{
		config:     config,
		httpClient: &http.Client{Timeout: RequestTimeout},
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		tracer:     otel.Tracer(tracerName),
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.config
}

// BuildURL joins the base URL and a relative path with exactly one slash.
func (c *Client) BuildURL(path string) string {
	return JoinURL(c.config.BaseURL, path)
}

// JoinURL trims the trailing slashes of base and the leading slashes of path
// before joining them with a single slash.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// CreateDataset creates a dataset owned by ownerHandle.
func (c *Client) CreateDataset(ctx context.Context, ownerHandle string, request CreateDatasetRequest) (any, error) {
	if strings.TrimSpace(ownerHandle) == "" {
		return nil, ErrOwnerRequired
	}

	visibility := request.Visibility
	if visibility == "" {
		visibility = VisibilityPrivate
	}
	payload := map[string]any{
		"datasetName": request.DatasetName,
		"storageType": request.StorageType,
		"description": request.Description,
		"visibility":  string(visibility),
	}
	if len(request.Tags) > 0 {
		payload["tags"] = append([]string(nil), request.Tags...)
	}

	return c.post(ctx, OperationCreateDataset, ownerPath(ownerHandle, OperationCreateDataset), payload)
}

// Transact submits a ledger transaction.
func (c *Client) Transact(ctx context.Context, request TransactionRequest) (any, error) {
	if strings.TrimSpace(request.Ledger) == "" {
		return nil, ErrLedgerRequired
	}

	payload := map[string]any{"ledger": request.Ledger}
	if request.Context != nil {
		payload["context"] = request.Context
	}
	if request.Insert != nil {
		payload["insert"] = request.Insert
	}
	if request.Delete != nil {
		payload["delete"] = request.Delete
	}
	if request.Where != nil {
		payload["where"] = request.Where
	}

	return c.post(ctx, OperationTransact, "fluree/transact", payload)
}

// GeneratePrompt calls the generate-prompt endpoint.
func (c *Client) GeneratePrompt(ctx context.Context, ownerHandle string, request PromptRequest) (any, error) {
	return c.generate(ctx, ownerHandle, OperationGeneratePrompt, request)
}

// GenerateSPARQL calls the generate-sparql endpoint.
func (c *Client) GenerateSPARQL(ctx context.Context, ownerHandle string, request PromptRequest) (any, error) {
	return c.generate(ctx, ownerHandle, OperationGenerateSPARQL, request)
}

// GenerateAnswer calls the generate-answer endpoint.
func (c *Client) GenerateAnswer(ctx context.Context, ownerHandle string, request PromptRequest) (any, error) {
	return c.generate(ctx, ownerHandle, OperationGenerateAnswer, request)
}

func (c *Client) generate(ctx context.Context, ownerHandle, operation string, request PromptRequest) (any, error) {
	if strings.TrimSpace(ownerHandle) == "" {
		return nil, ErrOwnerRequired
	}
	datasets := append([]string{}, request.Datasets...)
	payload := map[string]any{
		"datasets": datasets,
		"prompt":   request.Prompt,
	}
	return c.post(ctx, operation, ownerPath(ownerHandle, operation), payload)
}

func ownerPath(ownerHandle, suffix string) string {
	return "api/" + url.PathEscape(strings.TrimSpace(ownerHandle)) + "/" + suffix
}

func (c *Client) post(ctx context.Context, operation, path string, payload map[string]any) (result any, err error) {
	requestURL := c.BuildURL(path)

	ctx, span := c.tracer.Start(ctx, "fluree."+operation, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String("http.request.method", http.MethodPost),
		attribute.String("url.full", requestURL),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("fluree: encode %s payload: %w", operation, err)
	}
	c.logger.Debug("fluree request", "operation", operation, "url", requestURL, "fields", payloadKeys(payload))

	ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("fluree: build request: %w", err)
	}
	request.Header.Set("Authorization", "Bearer "+c.config.APIToken)
	request.Header.Set(HandleHeader, c.config.TenantHandle)
	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(request.Header))

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, &ClientError{
			Message: fmt.Sprintf("error connecting to %s: %v", requestURL, err),
			URL:     requestURL,
			Err:     err,
		}
	}
	defer response.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", response.StatusCode))

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, &ClientError{
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("error reading response from %s: %v", requestURL, err),
			URL:        requestURL,
			Err:        err,
		}
	}

	if response.StatusCode >= http.StatusBadRequest {
		message, decoded := errorMessage(response.StatusCode, responseBody)
		c.logger.Error("fluree api error", "operation", operation, "status", response.StatusCode, "message", message)
		return nil, &ClientError{
			StatusCode: response.StatusCode,
			Message:    message,
			URL:        requestURL,
			Body:       decoded,
		}
	}

	return c.decodeSuccess(operation, responseBody), nil
}

func (c *Client) decodeSuccess(operation string, body []byte) any {
	if len(body) == 0 {
		return nil
	}
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		c.logger.Debug("fluree response is not JSON, returning text", "operation", operation)
		return RawText(body)
	}
	return decoded
}

// errorMessage formats "HTTP <code>: <reason>" and returns the decoded body
// when it was JSON.
func errorMessage(statusCode int, body []byte) (string, any) {
	if len(bytes.TrimSpace(body)) == 0 {
		return fmt.Sprintf("HTTP %d: %s", statusCode, http.StatusText(statusCode)), nil
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fmt.Sprintf("HTTP %d: %s", statusCode, string(body)), string(body)
	}

	reason := decoded
	if object, ok := decoded.(map[string]any); ok {
		switch {
		case truthy(object["message"]):
			reason = object["message"]
		case truthy(object["error"]):
			reason = object["error"]
		}
	}
	return fmt.Sprintf("HTTP %d: %s", statusCode, describe(reason)), decoded
}

func truthy(value any) bool {
	switch typed := value.(type) {
	case nil:
		return false
	case string:
		return typed != ""
	case bool:
		return typed
	case float64:
		return typed != 0
	case map[string]any:
		return len(typed) > 0
	case []any:
		return len(typed) > 0
	default:
		return true
	}
}

func describe(value any) string {
	if text, ok := value.(string); ok {
		return text
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return string(encoded)
}

func payloadKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for key := range payload {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
