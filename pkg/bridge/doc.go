// Package bridge records Hedera consensus topics in a Fluree ledger.
//
// A run creates a topic, makes sure the target dataset exists (creating a
// timestamped one when no ledger is given), and transacts the topic's JSON-LD
// description into it. Optionally the run waits for the mirror node to report
// the new topic.
package bridge
