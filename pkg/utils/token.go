package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// NewSessionToken returns an opaque session identifier: random hex plus a
// base-36 time component. Tokens are looked up as rows, never parsed.
func NewSessionToken() string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is effectively unrecoverable; fall back to a
		// time-only token rather than panic.
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf) + strconv.FormatInt(time.Now().UnixNano(), 36)
}
