// Package shared holds the Hedera plumbing used by the topic and bridge
// packages: network name normalization, SDK client construction, operator
// credential loading, and private key parsing.
//
// # Environment Variables
//
//   - HEDERA_NETWORK (optional): mainnet, testnet, or previewnet. Defaults to testnet.
//   - HEDERA_OPERATOR_ID (required): operator account, for example 0.0.1234.
//   - HEDERA_OPERATOR_KEY (required): operator private key (ED25519 or ECDSA).
//   - HEDERA_MIRROR_URL (optional): mirror node address overriding the SDK default.
//
// LoadDotEnv reads the nearest .env file without overriding variables that
// are already set, so local development can keep credentials out of the shell.
package shared
