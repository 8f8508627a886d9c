// Package mirror is a small Hedera mirror node REST client. The bridge uses
// it to confirm that a freshly created consensus topic and its creating
// transaction are visible on the mirror node before reporting success.
package mirror
