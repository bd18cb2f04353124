package utils

import "testing"

func TestNewSessionToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		token := NewSessionToken()
		if token == "" {
			t.Fatalf("expected non-empty token")
		}
		// Tokens are stored in a varchar(64) column.
		if len(token) > 64 {
			t.Fatalf("token too long for storage: %d chars", len(token))
		}
		if seen[token] {
			t.Fatalf("duplicate token %q after %d draws", token, i)
		}
		seen[token] = true
	}
}
