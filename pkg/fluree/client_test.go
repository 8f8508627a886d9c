package fluree

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"
)

type capturedRequest struct {
	Method  string
	Path    string
	Header  http.Header
	Payload map[string]any
}

func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Header = r.Header.Clone()
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
		}
		var payload map[string]any
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &payload); err != nil {
				t.Errorf("request body is not JSON: %v", err)
			}
		}
		captured.Payload = payload
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(
		Config{APIToken: "token-123", TenantHandle: "acme", BaseURL: baseURL},
		WithTracerProvider(noop.NewTracerProvider()),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return client
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	client, err := NewClient(Config{APIToken: "token", TenantHandle: "acme"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.Config().BaseURL != DefaultBaseURL {
		t.Fatalf("unexpected base URL: %s", client.Config().BaseURL)
	}
	if client.httpClient.Timeout != RequestTimeout {
		t.Fatalf("unexpected timeout: %s", client.httpClient.Timeout)
	}
}

func TestNewClientRejectsMissingCredentials(t *testing.T) {
	_, err := NewClient(Config{})
	var configErr *ConfigurationError
	if !errors.As(err, &configErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestNewClientWithHTTPClient(t *testing.T) {
	custom := &http.Client{}
	client, err := NewClient(Config{APIToken: "token", TenantHandle: "acme"}, WithHTTPClient(custom))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.httpClient != custom {
		t.Fatal("expected custom HTTP client")
	}
}

func TestJoinURLSingleSlash(t *testing.T) {
	cases := []struct {
		base string
		path string
	}{
		{"https://data.flur.ee", "fluree/transact"},
		{"https://data.flur.ee/", "fluree/transact"},
		{"https://data.flur.ee", "/fluree/transact"},
		{"https://data.flur.ee/", "/fluree/transact"},
		{"https://data.flur.ee//", "//fluree/transact"},
	}
	for _, tc := range cases {
		got := JoinURL(tc.base, tc.path)
		if got != "https://data.flur.ee/fluree/transact" {
			t.Fatalf("JoinURL(%q, %q) = %q", tc.base, tc.path, got)
		}
	}
}

func TestBuildURLKeepsBasePath(t *testing.T) {
	client := newTestClient(t, "https://proxy.example.com/fluree-cloud/")
	got := client.BuildURL("/api/acme/generate-sparql")
	if got != "https://proxy.example.com/fluree-cloud/api/acme/generate-sparql" {
		t.Fatalf("unexpected URL: %s", got)
	}
	if strings.Count(got, "fluree-cloud") != 1 {
		t.Fatalf("base segment duplicated: %s", got)
	}
}

func TestRequestHeaders(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, `{}`)
	client := newTestClient(t, server.URL)

	if _, err := client.Transact(context.Background(), TransactionRequest{Ledger: "acme/topics"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Method != http.MethodPost {
		t.Fatalf("unexpected method: %s", captured.Method)
	}
	if got := captured.Header.Get("Authorization"); got != "Bearer token-123" {
		t.Fatalf("unexpected Authorization header: %q", got)
	}
	if got := captured.Header.Get(HandleHeader); got != "acme" {
		t.Fatalf("unexpected handle header: %q", got)
	}
	if got := captured.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected Content-Type: %q", got)
	}
}

func TestGenerateSPARQLReturnsParsedBody(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, `{"prompt": "SELECT *"}`)
	client := newTestClient(t, server.URL+"/")

	result, err := client.GenerateSPARQL(context.Background(), "acme", PromptRequest{
		Datasets: []string{"acme/topics"},
		Prompt:   "List topics",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]any{"prompt": "SELECT *"}
	if !reflect.DeepEqual(result, want) {
		t.Fatalf("unexpected result: %#v", result)
	}
	if captured.Path != "/api/acme/generate-sparql" {
		t.Fatalf("unexpected path: %s", captured.Path)
	}
	if !reflect.DeepEqual(captured.Payload["datasets"], []any{"acme/topics"}) {
		t.Fatalf("unexpected datasets: %#v", captured.Payload["datasets"])
	}
	if captured.Payload["prompt"] != "List topics" {
		t.Fatalf("unexpected prompt: %#v", captured.Payload["prompt"])
	}
}

func TestGenerateEndpoints(t *testing.T) {
	cases := []struct {
		name string
		call func(*Client) (any, error)
		path string
	}{
		{"prompt", func(c *Client) (any, error) {
			return c.GeneratePrompt(context.Background(), "acme", PromptRequest{Prompt: "q"})
		}, "/api/acme/generate-prompt"},
		{"sparql", func(c *Client) (any, error) {
			return c.GenerateSPARQL(context.Background(), "acme", PromptRequest{Prompt: "q"})
		}, "/api/acme/generate-sparql"},
		{"answer", func(c *Client) (any, error) {
			return c.GenerateAnswer(context.Background(), "acme", PromptRequest{Prompt: "q"})
		}, "/api/acme/generate-answer"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server, captured := newTestServer(t, http.StatusOK, `{"ok":true}`)
			client := newTestClient(t, server.URL)
			if _, err := tc.call(client); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if captured.Path != tc.path {
				t.Fatalf("unexpected path: %s", captured.Path)
			}
			datasets, ok := captured.Payload["datasets"].([]any)
			if !ok || len(datasets) != 0 {
				t.Fatalf("expected empty datasets list, got %#v", captured.Payload["datasets"])
			}
		})
	}
}

func TestGenerateRequiresOwner(t *testing.T) {
	client := newTestClient(t, "https://data.flur.ee")
	_, err := client.GenerateAnswer(context.Background(), " ", PromptRequest{Prompt: "q"})
	if !errors.Is(err, ErrOwnerRequired) {
		t.Fatalf("expected ErrOwnerRequired, got %v", err)
	}
}

func TestNotFoundErrorMessage(t *testing.T) {
	server, _ := newTestServer(t, http.StatusNotFound, `{"message": "No dataset"}`)
	client := newTestClient(t, server.URL)

	_, err := client.GenerateAnswer(context.Background(), "acme", PromptRequest{Prompt: "q"})
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected ClientError, got %v", err)
	}
	if !strings.Contains(err.Error(), "HTTP 404") || !strings.Contains(err.Error(), "No dataset") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if clientErr.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status: %d", clientErr.StatusCode)
	}
	if clientErr.IsTransport() {
		t.Fatal("protocol error reported as transport error")
	}
}

func TestErrorMessageDecisionTable(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", 400, `{"message":"bad","error":"ignored"}`, "HTTP 400: bad"},
		{"error field", 409, `{"error":"Ledger already exists"}`, "HTTP 409: Ledger already exists"},
		{"empty message falls through", 400, `{"message":"","error":"fallback"}`, "HTTP 400: fallback"},
		{"whole object", 500, `{"detail":"boom"}`, `HTTP 500: {"detail":"boom"}`},
		{"json string", 502, `"upstream down"`, "HTTP 502: upstream down"},
		{"json array", 422, `["a","b"]`, `HTTP 422: ["a","b"]`},
		{"raw text", 503, `Service Unavailable`, "HTTP 503: Service Unavailable"},
		{"empty body", 401, ``, "HTTP 401: Unauthorized"},
		{"whitespace body", 502, "  \n\t", "HTTP 502: Bad Gateway"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := errorMessage(tc.status, []byte(tc.body))
			if got != tc.want {
				t.Fatalf("errorMessage() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIsAlreadyExists(t *testing.T) {
	server, _ := newTestServer(t, http.StatusConflict, `{"error":"Dataset Already Exists"}`)
	client := newTestClient(t, server.URL)

	_, err := client.CreateDataset(context.Background(), "acme", CreateDatasetRequest{DatasetName: "topics"})
	if !IsAlreadyExists(err) {
		t.Fatalf("expected already-exists error, got %v", err)
	}
	if IsAlreadyExists(errors.New("already exists")) {
		t.Fatal("plain errors must not match")
	}
}

func TestTransportErrorIncludesURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	baseURL := server.URL
	server.Close()

	client := newTestClient(t, baseURL)
	_, err := client.Transact(context.Background(), TransactionRequest{Ledger: "acme/topics"})
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Fatalf("expected ClientError, got %v", err)
	}
	if !clientErr.IsTransport() {
		t.Fatalf("expected transport error, got status %d", clientErr.StatusCode)
	}
	if !strings.Contains(clientErr.Error(), baseURL+"/fluree/transact") {
		t.Fatalf("message does not include URL: %s", clientErr.Error())
	}
	if clientErr.Unwrap() == nil {
		t.Fatal("expected wrapped cause")
	}
}

func TestTransactInsertPresence(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, `{}`)
	client := newTestClient(t, server.URL)

	if _, err := client.Transact(context.Background(), TransactionRequest{
		Ledger: "acme/topics",
		Insert: []map[string]any{},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	insert, ok := captured.Payload["insert"]
	if !ok {
		t.Fatal("expected insert key for empty list")
	}
	if list, isList := insert.([]any); !isList || len(list) != 0 {
		t.Fatalf("expected empty insert list, got %#v", insert)
	}

	if _, err := client.Transact(context.Background(), TransactionRequest{Ledger: "acme/topics"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{"insert", "delete", "where", "context"} {
		if _, ok := captured.Payload[key]; ok {
			t.Fatalf("unexpected %s key in payload: %#v", key, captured.Payload)
		}
	}
	if captured.Payload["ledger"] != "acme/topics" {
		t.Fatalf("unexpected ledger: %#v", captured.Payload["ledger"])
	}
}

func TestTransactFullPayload(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, `{"tx":"ok"}`)
	client := newTestClient(t, server.URL)

	_, err := client.Transact(context.Background(), TransactionRequest{
		Ledger:  "acme/topics",
		Context: map[string]any{"ex": "http://example.org/"},
		Insert:  []map[string]any{{"@id": "ex:a"}},
		Delete:  []map[string]any{{"@id": "ex:b"}},
		Where:   []map[string]any{{"@id": "?s"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Path != "/fluree/transact" {
		t.Fatalf("unexpected path: %s", captured.Path)
	}
	for _, key := range []string{"ledger", "context", "insert", "delete", "where"} {
		if _, ok := captured.Payload[key]; !ok {
			t.Fatalf("missing %s key", key)
		}
	}
}

func TestTransactRequiresLedger(t *testing.T) {
	client := newTestClient(t, "https://data.flur.ee")
	if _, err := client.Transact(context.Background(), TransactionRequest{}); !errors.Is(err, ErrLedgerRequired) {
		t.Fatalf("expected ErrLedgerRequired, got %v", err)
	}
}

func TestCreateDatasetTags(t *testing.T) {
	server, captured := newTestServer(t, http.StatusOK, `{"created":true}`)
	client := newTestClient(t, server.URL)

	if _, err := client.CreateDataset(context.Background(), "acme", CreateDatasetRequest{
		DatasetName: "topics",
		StorageType: "immutable",
		Description: "Hedera topics",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Path != "/api/acme/create-dataset" {
		t.Fatalf("unexpected path: %s", captured.Path)
	}
	if _, ok := captured.Payload["tags"]; ok {
		t.Fatalf("unexpected tags key: %#v", captured.Payload)
	}
	if captured.Payload["visibility"] != "private" {
		t.Fatalf("expected default private visibility, got %#v", captured.Payload["visibility"])
	}

	if _, err := client.CreateDataset(context.Background(), "acme", CreateDatasetRequest{
		DatasetName: "topics",
		Visibility:  VisibilityPublic,
		Tags:        []string{"a", "b"},
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(captured.Payload["tags"], []any{"a", "b"}) {
		t.Fatalf("unexpected tags: %#v", captured.Payload["tags"])
	}
	if captured.Payload["visibility"] != "public" {
		t.Fatalf("unexpected visibility: %#v", captured.Payload["visibility"])
	}
}

func TestSuccessBodies(t *testing.T) {
	server, _ := newTestServer(t, http.StatusNoContent, ``)
	client := newTestClient(t, server.URL)
	result, err := client.Transact(context.Background(), TransactionRequest{Ledger: "acme/topics"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Fatalf("expected nil result for empty body, got %#v", result)
	}

	textServer, _ := newTestServer(t, http.StatusOK, `committed`)
	textClient := newTestClient(t, textServer.URL)
	result, err = textClient.Transact(context.Background(), TransactionRequest{Ledger: "acme/topics"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != RawText("committed") {
		t.Fatalf("expected RawText, got %#v", result)
	}
}

func TestParseVisibility(t *testing.T) {
	if v, err := ParseVisibility(""); err != nil || v != VisibilityPrivate {
		t.Fatalf("unexpected default visibility: %q %v", v, err)
	}
	if v, err := ParseVisibility("PUBLIC"); err != nil || v != VisibilityPublic {
		t.Fatalf("unexpected visibility: %q %v", v, err)
	}
	if _, err := ParseVisibility("internal"); err == nil {
		t.Fatal("expected error for unsupported visibility")
	}
}
