// Package bhash connects Hedera consensus data to a Fluree Cloud knowledge
// graph.
//
// # Packages
//
//   - fluree: authenticated REST client for Fluree Cloud (create-dataset,
//     transact, generate-prompt, generate-sparql, generate-answer).
//   - topic: Hedera topic creation and the JSON-LD description of a topic.
//   - bridge: creates a topic and records its metadata in a Fluree ledger.
//   - bootstrap: creates the accounts, topics and tokens of a plan and turns
//     them into a Fluree transaction.
//   - mirror: Hedera mirror node lookups used to confirm new topics.
//   - ontology: RDF fixture loading and SPARQL result regression checks.
//   - shared: Hedera network and operator credential helpers.
//
// The bhashctl command in cmd/bhashctl wraps these packages.
//
// # Configuration
//
// Fluree access is read from FLUREE_API_TOKEN, FLUREE_HANDLE and the optional
// FLUREE_BASE_URL. Hedera access uses HEDERA_NETWORK, HEDERA_OPERATOR_ID and
// HEDERA_OPERATOR_KEY.
//
// # Installation
//
//	go get github.com/hashgraph-online/bhash-go@latest
package bhash
