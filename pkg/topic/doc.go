// Package topic creates Hedera Consensus Service topics and describes them as
// JSON-LD resources ready to be inserted into a Fluree ledger.
//
// SDKCreator talks to a live network through the Hedera Go SDK.
// SimulatedCreator hands out deterministic identifiers so the full
// topic-to-ledger flow can run offline.
package topic
