package shared

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	hedera "github.com/hashgraph/hedera-sdk-go/v2"
	"github.com/joho/godotenv"
)

const (
	EnvNetwork     = "HEDERA_NETWORK"
	EnvOperatorID  = "HEDERA_OPERATOR_ID"
	EnvOperatorKey = "HEDERA_OPERATOR_KEY"
	EnvMirrorURL   = "HEDERA_MIRROR_URL"
)

// OperatorConfig holds the account that pays for network transactions.
type OperatorConfig struct {
	Network    string
	AccountID  string
	PrivateKey string
	MirrorURL  string
}

type operatorEnv struct {
	Network    string `env:"HEDERA_NETWORK"`
	AccountID  string `env:"HEDERA_OPERATOR_ID"`
	PrivateKey string `env:"HEDERA_OPERATOR_KEY"`
	MirrorURL  string `env:"HEDERA_MIRROR_URL"`
}

// MissingEnvError lists required Hedera variables that were not set.
type MissingEnvError struct {
	Names []string
}

func (e *MissingEnvError) Error() string {
	return "missing Hedera credentials: " + strings.Join(e.Names, ", ")
}

// OperatorConfigFromEnv reads operator credentials. A nil environ reads the
// process environment.
func OperatorConfigFromEnv(environ map[string]string) (OperatorConfig, error) {
	var raw operatorEnv
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environ}); err != nil {
		return OperatorConfig{}, fmt.Errorf("parse hedera environment: %w", err)
	}

	network, err := NormalizeNetwork(raw.Network)
	if err != nil {
		return OperatorConfig{}, err
	}
	config := OperatorConfig{
		Network:    network,
		AccountID:  strings.TrimSpace(raw.AccountID),
		PrivateKey: strings.TrimSpace(raw.PrivateKey),
		MirrorURL:  strings.TrimSpace(raw.MirrorURL),
	}

	var missing []string
	if config.AccountID == "" {
		missing = append(missing, EnvOperatorID)
	}
	if config.PrivateKey == "" {
		missing = append(missing, EnvOperatorKey)
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return OperatorConfig{}, &MissingEnvError{Names: missing}
	}
	return config, nil
}

// IsMissingCredentials reports whether err came from absent operator
// variables.
func IsMissingCredentials(err error) bool {
	var missingErr *MissingEnvError
	return errors.As(err, &missingErr)
}

// LoadDotEnv loads the first .env found walking up from start (the working
// directory when start is empty). Variables already present in the process
// environment win. It returns the loaded path, or "" when no file exists.
func LoadDotEnv(start string) (string, error) {
	if start == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		start = cwd
	}

	current, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", start, err)
	}
	for {
		candidate := filepath.Join(current, ".env")
		if info, statErr := os.Stat(candidate); statErr == nil && !info.IsDir() {
			if loadErr := godotenv.Load(candidate); loadErr != nil {
				return "", fmt.Errorf("load %s: %w", candidate, loadErr)
			}
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

// ParsePrivateKey tries ED25519, then ECDSA, then the SDK's generic parser.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	genericKey, genericErr := hedera.PrivateKeyFromString(candidate)
	if genericErr == nil {
		return genericKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or generic (%v)",
		edErr,
		ecdsaErr,
		genericErr,
	)
}
