// Package bootstrap provisions a set of Hedera accounts, consensus topics and
// tokens described by a Plan and turns what was created into JSON-LD nodes
// for a Fluree ledger.
//
// A Network performs the actual creation: SDKNetwork talks to a live Hedera
// network through hedera-sdk-go, SimulatedNetwork hands out deterministic
// identifiers for offline runs and tests.
package bootstrap
