package fluree

import (
	"fmt"
	"strings"
)

// Visibility is the access level of a new dataset.
type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

// ParseVisibility accepts "private" or "public" in any case. An empty value
// resolves to private.
func ParseVisibility(value string) (Visibility, error) {
	switch Visibility(strings.ToLower(strings.TrimSpace(value))) {
	case "", VisibilityPrivate:
		return VisibilityPrivate, nil
	case VisibilityPublic:
		return VisibilityPublic, nil
	default:
		return "", fmt.Errorf("unsupported dataset visibility %q", value)
	}
}

// CreateDatasetRequest is the body of a create-dataset call. Tags is sent only
// when non-empty.
type CreateDatasetRequest struct {
	DatasetName string
	StorageType string
	Description string
	Visibility  Visibility
	Tags        []string
}

// TransactionRequest is sent to the transact endpoint. Nil fields are left
// out of the payload; non-nil empty slices are sent as empty lists.
type TransactionRequest struct {
	Ledger  string
	Context map[string]any
	Insert  []map[string]any
	Delete  []map[string]any
	Where   []map[string]any
}

// PromptRequest is shared by the generate-prompt, generate-sparql and
// generate-answer endpoints.
type PromptRequest struct {
	Datasets []string
	Prompt   string
}

// RawText is returned when a successful response body is not JSON.
type RawText string

const (
	OperationCreateDataset  = "create-dataset"
	OperationTransact       = "transact"
	OperationGeneratePrompt = "generate-prompt"
	OperationGenerateSPARQL = "generate-sparql"
	OperationGenerateAnswer = "generate-answer"
)
