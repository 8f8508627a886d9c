package topic

import (
	"context"
	"strings"
)

const (
	// Vocabulary is the default namespace for topic properties.
	Vocabulary = "https://bhash.dev/hedera/ledger#"
	// CoreNamespace is the prefix bound to "hedera" in the context.
	CoreNamespace = "https://bhash.dev/hedera/core/"

	ResourceType = "Topic"
)

// Metadata is the normalized record of a created topic.
type Metadata struct {
	TopicID            string `json:"topicId"`
	Network            string `json:"network"`
	ConsensusTimestamp string `json:"consensusTimestamp"`
	TransactionID      string `json:"transactionId"`
	Memo               string `json:"memo,omitempty"`
}

// Creator creates a topic carrying memo and reports its metadata.
type Creator interface {
	CreateTopic(ctx context.Context, memo string) (Metadata, error)
}

// ResourceID returns the ledger-local identifier for the topic,
// e.g. topic/0-0-1234.
func (m Metadata) ResourceID() string {
	return "topic/" + strings.ReplaceAll(m.TopicID, ".", "-")
}

// JSONLD returns the topic as a compact JSON-LD node. The memo is omitted
// when empty.
func (m Metadata) JSONLD() map[string]any {
	resource := map[string]any{
		"@id":                m.ResourceID(),
		"@type":              ResourceType,
		"topicId":            m.TopicID,
		"network":            m.Network,
		"consensusTimestamp": m.ConsensusTimestamp,
		"transactionId":      m.TransactionID,
	}
	if m.Memo != "" {
		resource["memo"] = m.Memo
	}
	return resource
}

// Context returns a fresh copy of the JSON-LD context matching JSONLD.
func Context() map[string]any {
	return map[string]any{
		"@version": 1.1,
		"@vocab":   Vocabulary,
		"hedera":   CoreNamespace,
		"xsd":      "http://www.w3.org/2001/XMLSchema#",
		"Topic":    "hedera:ConsensusTopic",
		"topicId":  Vocabulary + "topicId",
		"network":  "hedera:occursOn",
		"memo":     Vocabulary + "memo",
		"consensusTimestamp": map[string]any{
			"@id":   Vocabulary + "consensusTimestamp",
			"@type": "xsd:dateTime",
		},
		"transactionId": Vocabulary + "transactionId",
	}
}

// Document wraps JSONLD with its context so it can be expanded on its own.
func (m Metadata) Document() map[string]any {
	document := m.JSONLD()
	document["@context"] = Context()
	return document
}
