package bootstrap

import (
	"context"
	"time"
)

// Token and supply types as written in plans and records.
const (
	TokenTypeFungibleCommon    = "FUNGIBLE_COMMON"
	TokenTypeNonFungibleUnique = "NON_FUNGIBLE_UNIQUE"

	SupplyTypeInfinite = "INFINITE"
	SupplyTypeFinite   = "FINITE"

	// DefaultTimeout bounds a whole bootstrap run.
	DefaultTimeout = 2 * time.Minute
)

// Plan lists the artefacts a bootstrap run creates. Accounts are created
// first so tokens can name their treasury by alias.
type Plan struct {
	Network  string        `json:"network" yaml:"network"`
	Ledger   string        `json:"ledger" yaml:"ledger"`
	Accounts []AccountPlan `json:"accounts" yaml:"accounts"`
	Topics   []TopicPlan   `json:"topics" yaml:"topics"`
	Tokens   []TokenPlan   `json:"tokens" yaml:"tokens"`
}

// AccountPlan describes an account. An empty PublicKey means the operator key.
type AccountPlan struct {
	Alias                 string   `json:"alias" yaml:"alias"`
	Memo                  string   `json:"memo" yaml:"memo"`
	PublicKey             string   `json:"publicKey" yaml:"publicKey"`
	InitialBalanceTinybar int64    `json:"initialBalanceTinybar" yaml:"initialBalanceTinybar"`
	Tags                  []string `json:"tags" yaml:"tags"`
}

// TopicPlan describes a consensus topic. Keys are optional public keys.
type TopicPlan struct {
	Alias     string   `json:"alias" yaml:"alias"`
	Memo      string   `json:"memo" yaml:"memo"`
	AdminKey  string   `json:"adminKey" yaml:"adminKey"`
	SubmitKey string   `json:"submitKey" yaml:"submitKey"`
	Tags      []string `json:"tags" yaml:"tags"`
}

// TokenPlan describes a token. TreasuryAccountID wins over TreasuryAlias when
// both are set.
type TokenPlan struct {
	Alias             string   `json:"alias" yaml:"alias"`
	Name              string   `json:"name" yaml:"name"`
	Symbol            string   `json:"symbol" yaml:"symbol"`
	Memo              string   `json:"memo" yaml:"memo"`
	TreasuryAlias     string   `json:"treasuryAlias" yaml:"treasuryAlias"`
	TreasuryAccountID string   `json:"treasuryAccountId" yaml:"treasuryAccountId"`
	Decimals          uint     `json:"decimals" yaml:"decimals"`
	InitialSupply     uint64   `json:"initialSupply" yaml:"initialSupply"`
	MaxSupply         int64    `json:"maxSupply" yaml:"maxSupply"`
	SupplyType        string   `json:"supplyType" yaml:"supplyType"`
	TokenType         string   `json:"tokenType" yaml:"tokenType"`
	AdminKey          string   `json:"adminKey" yaml:"adminKey"`
	SupplyKey         string   `json:"supplyKey" yaml:"supplyKey"`
	KYCKey            string   `json:"kycKey" yaml:"kycKey"`
	FreezeKey         string   `json:"freezeKey" yaml:"freezeKey"`
	WipeKey           string   `json:"wipeKey" yaml:"wipeKey"`
	PauseKey          string   `json:"pauseKey" yaml:"pauseKey"`
	FreezeDefault     *bool    `json:"freezeDefault,omitempty" yaml:"freezeDefault"`
	Tags              []string `json:"tags" yaml:"tags"`
}

// AccountRecord is a created account.
type AccountRecord struct {
	Alias     string    `json:"alias"`
	AccountID string    `json:"accountId"`
	PublicKey string    `json:"publicKey,omitempty"`
	Memo      string    `json:"memo,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TopicRecord is a created topic.
type TopicRecord struct {
	Alias     string    `json:"alias"`
	TopicID   string    `json:"topicId"`
	Memo      string    `json:"memo,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TokenRecord is a created token.
type TokenRecord struct {
	Alias             string    `json:"alias"`
	TokenID           string    `json:"tokenId"`
	Name              string    `json:"name"`
	Symbol            string    `json:"symbol"`
	Memo              string    `json:"memo,omitempty"`
	TreasuryAccountID string    `json:"treasuryAccountId"`
	Decimals          uint      `json:"decimals"`
	InitialSupply     uint64    `json:"initialSupply"`
	MaxSupply         int64     `json:"maxSupply,omitempty"`
	SupplyType        string    `json:"supplyType"`
	TokenType         string    `json:"tokenType"`
	Tags              []string  `json:"tags,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Result holds everything a run created, in plan order.
type Result struct {
	Network  string          `json:"network"`
	Accounts []AccountRecord `json:"accounts"`
	Topics   []TopicRecord   `json:"topics"`
	Tokens   []TokenRecord   `json:"tokens"`
}

// Network creates Hedera artefacts. Token plans passed to CreateToken always
// carry a resolved TreasuryAccountID.
type Network interface {
	CreateAccount(ctx context.Context, plan AccountPlan) (AccountRecord, error)
	CreateTopic(ctx context.Context, plan TopicPlan) (TopicRecord, error)
	CreateToken(ctx context.Context, plan TokenPlan) (TokenRecord, error)
}
