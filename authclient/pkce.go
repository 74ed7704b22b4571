package authclient

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

const (
	// RFC 7636 allows 43-128 characters; we use the maximum.
	verifierLength = 128
	stateLength    = 32

	codeChallengeMethodS256 = "S256"
)

// generateRandomString creates a random base64url string of n characters.
// The base64url alphabet is a subset of the unreserved character set that
// RFC 7636 requires for code verifiers.
func generateRandomString(n int) string {
	b := make([]byte, (n*3+3)/4)
	rand.Read(b)
	return base64.RawURLEncoding.EncodeToString(b)[:n]
}

// generateCodeChallenge creates a PKCE code challenge from a verifier:
// base64url(SHA-256(verifier)) without padding.
func generateCodeChallenge(verifier string) string {
	hash := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// validVerifier reports whether v satisfies RFC 7636 §4.1: 43-128 characters,
// all from the unreserved set [A-Za-z0-9-._~].
func validVerifier(v string) bool {
	if len(v) < 43 || len(v) > 128 {
		return false
	}
	for _, c := range v {
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '.' || c == '_' || c == '~':
		default:
			return false
		}
	}
	return true
}
