package authclient

import (
	"crypto/sha256"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	// Test vector from RFC 7636 appendix B
	rfcTestVerifier  = "dBjftJeZ4CVP-mB92K27uhbUJU1p1r_wW1gFWFOEjXk"
	rfcTestChallenge = "E9Melhoa2OwvFrEMTJguCHaoeK1t8URWbuGJSstw-cM"
)

func TestGenerateRandomStringLengthAndAlphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		verifier := generateRandomString(verifierLength)
		require.Len(t, verifier, verifierLength)
		require.True(t, validVerifier(verifier), "verifier %q contains characters outside the unreserved set", verifier)
	}
}

func TestGenerateRandomStringStateLength(t *testing.T) {
	state := generateRandomString(stateLength)
	require.Len(t, state, stateLength)
}

func TestGenerateRandomStringUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		v := generateRandomString(stateLength)
		require.False(t, seen[v], "random string generated twice")
		seen[v] = true
	}
}

func TestGenerateCodeChallengeRFCVector(t *testing.T) {
	require.Equal(t, rfcTestChallenge, generateCodeChallenge(rfcTestVerifier))
}

func TestGenerateCodeChallengeShape(t *testing.T) {
	verifier := generateRandomString(verifierLength)
	challenge := generateCodeChallenge(verifier)

	hash := sha256.Sum256([]byte(verifier))
	require.Equal(t, base64.RawURLEncoding.EncodeToString(hash[:]), challenge)
	require.NotContains(t, challenge, "=")
	require.NotContains(t, challenge, "+")
	require.NotContains(t, challenge, "/")
}

func TestValidVerifier(t *testing.T) {
	tests := []struct {
		name     string
		verifier string
		valid    bool
	}{
		{"rfc vector", rfcTestVerifier, true},
		{"minimum length", generateRandomString(43), true},
		{"maximum length", generateRandomString(128), true},
		{"too short", generateRandomString(42), false},
		{"too long", generateRandomString(128) + "a", false},
		{"invalid character", generateRandomString(42) + "+", false},
		{"unreserved punctuation", generateRandomString(40) + "-._~", true},
		{"empty", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.valid, validVerifier(tc.verifier))
		})
	}
}
