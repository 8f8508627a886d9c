package shared

import (
	"os"
	"path/filepath"
	"testing"
)

const testPrivateKey = "302e020100300506032b65700422042091132178e72057a1d7528025956fe39b0b847f200ab59b2fdd367017f3087137"

func TestOperatorConfigFromEnv(t *testing.T) {
	config, err := OperatorConfigFromEnv(map[string]string{
		EnvNetwork:     "Previewnet",
		EnvOperatorID:  " 0.0.1234 ",
		EnvOperatorKey: testPrivateKey,
		EnvMirrorURL:   "hcs.previewnet.mirrornode.hedera.com:443",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Network != NetworkPreviewnet {
		t.Fatalf("unexpected network: %s", config.Network)
	}
	if config.AccountID != "0.0.1234" {
		t.Fatalf("unexpected account: %q", config.AccountID)
	}
	if config.MirrorURL != "hcs.previewnet.mirrornode.hedera.com:443" {
		t.Fatalf("unexpected mirror URL: %q", config.MirrorURL)
	}
}

func TestOperatorConfigFromEnvDefaultsToTestnet(t *testing.T) {
	config, err := OperatorConfigFromEnv(map[string]string{
		EnvOperatorID:  "0.0.1234",
		EnvOperatorKey: testPrivateKey,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if config.Network != NetworkTestnet {
		t.Fatalf("expected testnet, got %s", config.Network)
	}
}

func TestOperatorConfigFromEnvMissing(t *testing.T) {
	_, err := OperatorConfigFromEnv(map[string]string{})
	if !IsMissingCredentials(err) {
		t.Fatalf("expected MissingEnvError, got %v", err)
	}
	if err.Error() != "missing Hedera credentials: HEDERA_OPERATOR_ID, HEDERA_OPERATOR_KEY" {
		t.Fatalf("unexpected message: %s", err.Error())
	}

	_, err = OperatorConfigFromEnv(map[string]string{EnvOperatorID: "0.0.1234"})
	if err == nil || err.Error() != "missing Hedera credentials: HEDERA_OPERATOR_KEY" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestOperatorConfigFromEnvUnsupportedNetwork(t *testing.T) {
	_, err := OperatorConfigFromEnv(map[string]string{
		EnvNetwork:     "devnet",
		EnvOperatorID:  "0.0.1234",
		EnvOperatorKey: testPrivateKey,
	})
	if err == nil {
		t.Fatal("expected error for unsupported network")
	}
	if IsMissingCredentials(err) {
		t.Fatal("network error reported as missing credentials")
	}
}

func TestLoadDotEnvWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "BHASH_DOTENV_LOADED=from-file\nBHASH_DOTENV_PRESET=from-file\n"
	if err := os.WriteFile(filepath.Join(root, ".env"), []byte(content), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("BHASH_DOTENV_PRESET", "from-shell")
	t.Setenv("BHASH_DOTENV_LOADED", "")
	os.Unsetenv("BHASH_DOTENV_LOADED")

	path, err := LoadDotEnv(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path != filepath.Join(root, ".env") {
		t.Fatalf("unexpected path: %s", path)
	}
	if got := os.Getenv("BHASH_DOTENV_LOADED"); got != "from-file" {
		t.Fatalf("expected value from .env, got %q", got)
	}
	if got := os.Getenv("BHASH_DOTENV_PRESET"); got != "from-shell" {
		t.Fatalf("existing variable was overridden: %q", got)
	}
}

func TestParsePrivateKey(t *testing.T) {
	if _, err := ParsePrivateKey(testPrivateKey); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParsePrivateKey(""); err == nil {
		t.Fatal("expected error for empty key")
	}
	if _, err := ParsePrivateKey("0xinvalidhex"); err == nil {
		t.Fatal("expected error for invalid hex")
	}
}
