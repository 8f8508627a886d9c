package fluree

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrOwnerRequired  = errors.New("fluree: owner handle is required")
	ErrLedgerRequired = errors.New("fluree: ledger is required")
)

// ConfigurationError is returned before any network activity when the client
// cannot be configured.
type ConfigurationError struct {
	Missing []string
	Message string
}

func newMissingConfigurationError(missing []string) *ConfigurationError {
	names := append([]string(nil), missing...)
	sort.Strings(names)
	return &ConfigurationError{
		Missing: names,
		Message: "missing environment variables: " + strings.Join(names, ", "),
	}
}

func (e *ConfigurationError) Error() string {
	if e == nil || e.Message == "" {
		return "fluree configuration error"
	}
	return e.Message
}

// ClientError is returned for every failed request. StatusCode is zero when
// the request never produced an HTTP response.
type ClientError struct {
	StatusCode int
	Message    string
	URL        string
	Body       any
	Err        error
}

func (e *ClientError) Error() string {
	if e == nil {
		return "fluree request failed"
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsTransport reports whether the request failed before a response arrived.
func (e *ClientError) IsTransport() bool {
	return e != nil && e.StatusCode == 0
}

// IsAlreadyExists reports whether err is a Fluree error saying the target
// resource already exists.
func IsAlreadyExists(err error) bool {
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		return false
	}
	return strings.Contains(strings.ToLower(clientErr.Message), "already exists")
}
