package bootstrap

import (
	"fmt"
	"time"

	"github.com/hashgraph-online/bhash-go/pkg/fluree"
	"github.com/hashgraph-online/bhash-go/pkg/topic"
)

// Context returns a fresh copy of the JSON-LD context used by Nodes.
func Context() map[string]any {
	return map[string]any{
		"@vocab":                  topic.CoreNamespace,
		"hedera":                  topic.CoreNamespace,
		"prov":                    "http://www.w3.org/ns/prov#",
		"schema":                  "http://schema.org/",
		"xsd":                     "http://www.w3.org/2001/XMLSchema#",
		"prov:generatedAtTime":    map[string]any{"@type": "xsd:dateTime"},
		"hedera:belongsToNetwork": map[string]any{"@type": "xsd:string"},
		"hedera:accountId":        map[string]any{"@type": "xsd:string"},
		"hedera:topicId":          map[string]any{"@type": "xsd:string"},
		"hedera:tokenId":          map[string]any{"@type": "xsd:string"},
		"hedera:treasuryAccount":  map[string]any{"@type": "@id"},
		"schema:keywords":         map[string]any{"@container": "@set"},
	}
}

// URN returns the node identifier for a Hedera entity, e.g.
// urn:hedera:account:0.0.1001.
func URN(kind, id string) string {
	return fmt.Sprintf("urn:hedera:%s:%s", kind, id)
}

// Nodes renders accounts, then topics, then tokens as JSON-LD nodes.
func (r Result) Nodes() []map[string]any {
	nodes := make([]map[string]any, 0, len(r.Accounts)+len(r.Topics)+len(r.Tokens))
	for _, account := range r.Accounts {
		nodes = append(nodes, account.JSONLD(r.Network))
	}
	for _, topicRecord := range r.Topics {
		nodes = append(nodes, topicRecord.JSONLD(r.Network))
	}
	for _, token := range r.Tokens {
		nodes = append(nodes, token.JSONLD(r.Network))
	}
	return nodes
}

// Transaction builds the insert-only transaction recording r in ledger.
func (r Result) Transaction(ledger string) fluree.TransactionRequest {
	return fluree.TransactionRequest{
		Ledger:  ledger,
		Context: Context(),
		Insert:  r.Nodes(),
	}
}

// JSONLD renders the account as a hedera:Account node.
func (a AccountRecord) JSONLD(network string) map[string]any {
	node := map[string]any{
		"@id":                     URN("account", a.AccountID),
		"@type":                   []string{"hedera:Account", "prov:Agent"},
		"hedera:accountId":        a.AccountID,
		"hedera:belongsToNetwork": network,
	}
	setTime(node, a.CreatedAt)
	setString(node, "schema:name", a.Alias)
	setString(node, "schema:description", a.Memo)
	setString(node, "hedera:publicKey", a.PublicKey)
	setTags(node, a.Tags)
	return node
}

// JSONLD renders the topic as a hedera:ConsensusTopic node.
func (t TopicRecord) JSONLD(network string) map[string]any {
	node := map[string]any{
		"@id":                     URN("topic", t.TopicID),
		"@type":                   []string{"hedera:ConsensusTopic", "prov:Entity"},
		"hedera:topicId":          t.TopicID,
		"hedera:belongsToNetwork": network,
	}
	setTime(node, t.CreatedAt)
	setString(node, "schema:name", t.Alias)
	setString(node, "schema:description", t.Memo)
	setTags(node, t.Tags)
	return node
}

// JSONLD renders the token as a hedera:Token node linked to its treasury.
func (t TokenRecord) JSONLD(network string) map[string]any {
	node := map[string]any{
		"@id":                     URN("token", t.TokenID),
		"@type":                   []string{"hedera:Token", "prov:Entity"},
		"hedera:tokenId":          t.TokenID,
		"hedera:belongsToNetwork": network,
	}
	setTime(node, t.CreatedAt)
	setString(node, "schema:name", t.Name)
	setString(node, "schema:identifier", t.Symbol)
	setString(node, "schema:description", t.Memo)
	if t.TreasuryAccountID != "" {
		node["hedera:treasuryAccount"] = URN("account", t.TreasuryAccountID)
	}
	if t.Decimals > 0 {
		node["hedera:decimals"] = t.Decimals
	}
	if t.InitialSupply > 0 {
		node["hedera:initialSupply"] = t.InitialSupply
	}
	if t.MaxSupply != 0 {
		node["hedera:maxSupply"] = t.MaxSupply
	}
	setString(node, "hedera:supplyType", t.SupplyType)
	setString(node, "hedera:tokenType", t.TokenType)
	setTags(node, t.Tags)
	return node
}

func setString(node map[string]any, key, value string) {
	if value != "" {
		node[key] = value
	}
}

func setTime(node map[string]any, value time.Time) {
	if !value.IsZero() {
		node["prov:generatedAtTime"] = topic.FormatTimestamp(value)
	}
}

func setTags(node map[string]any, tags []string) {
	if len(tags) > 0 {
		node["schema:keywords"] = append([]string(nil), tags...)
	}
}
