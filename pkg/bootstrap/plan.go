package bootstrap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyPlan is returned for a plan with nothing to create.
var ErrEmptyPlan = errors.New("bootstrap plan creates no accounts, topics or tokens")

// LoadPlan reads a plan from a JSON file, or YAML when the extension is
// .yaml or .yml.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("read bootstrap plan: %w", err)
	}

	var plan Plan
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return Plan{}, fmt.Errorf("decode bootstrap plan %s: %w", path, err)
		}
	default:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&plan); err != nil {
			return Plan{}, fmt.Errorf("decode bootstrap plan %s: %w", path, err)
		}
	}
	plan.Network = strings.TrimSpace(plan.Network)
	plan.Ledger = strings.TrimSpace(plan.Ledger)
	return plan, nil
}

// Validate checks a plan before anything is created: token and supply types
// must be known and every token needs a treasury that is either an account ID
// or the alias of an account in the same plan.
func (p Plan) Validate() error {
	if len(p.Accounts)+len(p.Topics)+len(p.Tokens) == 0 {
		return ErrEmptyPlan
	}

	aliases := make(map[string]bool, len(p.Accounts))
	for _, account := range p.Accounts {
		if alias := strings.TrimSpace(account.Alias); alias != "" {
			if aliases[alias] {
				return fmt.Errorf("duplicate account alias %q", alias)
			}
			aliases[alias] = true
		}
	}

	for _, token := range p.Tokens {
		if strings.TrimSpace(token.Name) == "" || strings.TrimSpace(token.Symbol) == "" {
			return fmt.Errorf("token %q needs a name and a symbol", token.Alias)
		}
		if _, err := NormalizeTokenType(token.TokenType); err != nil {
			return err
		}
		if _, err := NormalizeSupplyType(token.SupplyType); err != nil {
			return err
		}
		if strings.TrimSpace(token.TreasuryAccountID) != "" {
			continue
		}
		alias := strings.TrimSpace(token.TreasuryAlias)
		if alias == "" {
			return fmt.Errorf("token %q needs a treasuryAccountId or treasuryAlias", token.Alias)
		}
		if !aliases[alias] {
			return fmt.Errorf("treasury alias %q not found", alias)
		}
	}
	return nil
}

// NormalizeTokenType maps the accepted spellings to FUNGIBLE_COMMON or
// NON_FUNGIBLE_UNIQUE. Empty means fungible.
func NormalizeTokenType(value string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", TokenTypeFungibleCommon, "TOKEN_TYPE_FUNGIBLE_COMMON":
		return TokenTypeFungibleCommon, nil
	case TokenTypeNonFungibleUnique, "TOKEN_TYPE_NON_FUNGIBLE_UNIQUE":
		return TokenTypeNonFungibleUnique, nil
	default:
		return "", fmt.Errorf("unsupported token type %q", value)
	}
}

// NormalizeSupplyType maps the accepted spellings to INFINITE or FINITE.
// Empty means infinite.
func NormalizeSupplyType(value string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "", SupplyTypeInfinite, "TOKEN_SUPPLY_TYPE_INFINITE":
		return SupplyTypeInfinite, nil
	case SupplyTypeFinite, "TOKEN_SUPPLY_TYPE_FINITE":
		return SupplyTypeFinite, nil
	default:
		return "", fmt.Errorf("unsupported token supply type %q", value)
	}
}
