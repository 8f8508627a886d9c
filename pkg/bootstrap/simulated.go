package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// SimulatedNetwork hands out sequential 0.0.N identifiers without touching a
// network. Accounts start at 0.0.1000, topics at 0.0.2000, tokens at 0.0.3000.
type SimulatedNetwork struct {
	mu          sync.Mutex
	nextAccount int64
	nextTopic   int64
	nextToken   int64
	now         func() time.Time
}

// SimulatedOption configures a SimulatedNetwork.
type SimulatedOption func(*SimulatedNetwork)

// WithStartingIDs sets the first account, topic and token numbers.
func WithStartingIDs(account, topic, token int64) SimulatedOption {
	return func(n *SimulatedNetwork) {
		n.nextAccount = account
		n.nextTopic = topic
		n.nextToken = token
	}
}

// WithClock replaces the clock used for CreatedAt.
func WithClock(now func() time.Time) SimulatedOption {
	return func(n *SimulatedNetwork) {
		if now != nil {
			n.now = now
		}
	}
}

// NewSimulatedNetwork creates a new SimulatedNetwork.
func NewSimulatedNetwork(options ...SimulatedOption) *SimulatedNetwork {
	network := &SimulatedNetwork{
		nextAccount: 1000,
		nextTopic:   2000,
		nextToken:   3000,
		now:         time.Now,
	}
	for _, option := range options {
		option(network)
	}
	return network
}

// CreateAccount assigns the next account number.
func (n *SimulatedNetwork) CreateAccount(ctx context.Context, plan AccountPlan) (AccountRecord, error) {
	if err := ctx.Err(); err != nil {
		return AccountRecord{}, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextAccount
	n.nextAccount++
	return AccountRecord{
		Alias:     plan.Alias,
		AccountID: fmt.Sprintf("0.0.%d", id),
		PublicKey: plan.PublicKey,
		Memo:      plan.Memo,
		Tags:      append([]string(nil), plan.Tags...),
		CreatedAt: n.now().UTC(),
	}, nil
}

// CreateTopic assigns the next topic number.
func (n *SimulatedNetwork) CreateTopic(ctx context.Context, plan TopicPlan) (TopicRecord, error) {
	if err := ctx.Err(); err != nil {
		return TopicRecord{}, err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextTopic
	n.nextTopic++
	return TopicRecord{
		Alias:     plan.Alias,
		TopicID:   fmt.Sprintf("0.0.%d", id),
		Memo:      plan.Memo,
		Tags:      append([]string(nil), plan.Tags...),
		CreatedAt: n.now().UTC(),
	}, nil
}

// CreateToken assigns the next token number.
func (n *SimulatedNetwork) CreateToken(ctx context.Context, plan TokenPlan) (TokenRecord, error) {
	if err := ctx.Err(); err != nil {
		return TokenRecord{}, err
	}
	if strings.TrimSpace(plan.TreasuryAccountID) == "" {
		return TokenRecord{}, fmt.Errorf("treasury account id is required for token %q", plan.Alias)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextToken
	n.nextToken++
	return tokenRecord(plan, fmt.Sprintf("0.0.%d", id), n.now().UTC()), nil
}

func tokenRecord(plan TokenPlan, tokenID string, createdAt time.Time) TokenRecord {
	return TokenRecord{
		Alias:             plan.Alias,
		TokenID:           tokenID,
		Name:              plan.Name,
		Symbol:            plan.Symbol,
		Memo:              plan.Memo,
		TreasuryAccountID: plan.TreasuryAccountID,
		Decimals:          plan.Decimals,
		InitialSupply:     plan.InitialSupply,
		MaxSupply:         plan.MaxSupply,
		SupplyType:        plan.SupplyType,
		TokenType:         plan.TokenType,
		Tags:              append([]string(nil), plan.Tags...),
		CreatedAt:         createdAt,
	}
}
