package topic

import (
	"strings"
	"unicode/utf8"
)

const (
	DefaultMemo = "Bhash integration topic"
	// MaxMemoBytes is the consensus service limit on topic memos.
	MaxMemoBytes = 100
)

// BuildMemo returns the memo to attach to a new topic and whether it had to
// be shortened. Blank input falls back to DefaultMemo. Truncation never
// splits a UTF-8 sequence.
func BuildMemo(custom string) (string, bool) {
	memo := strings.TrimSpace(custom)
	if memo == "" {
		memo = DefaultMemo
	}
	if len(memo) <= MaxMemoBytes {
		return memo, false
	}

	cut := MaxMemoBytes
	for cut > 0 && !utf8.RuneStart(memo[cut]) {
		cut--
	}
	return memo[:cut], true
}
