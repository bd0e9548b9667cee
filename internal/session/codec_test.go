package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeURLSafePayloadWithoutPadding(t *testing.T) {
	// payload is {"sub":">>>?"}, whose standard encoding contains '+' and '/'.
	claims, ok := Decode("header.eyJzdWIiOiI-Pj4_In0.signature")
	require.True(t, ok)
	assert.Equal(t, ">>>?", claims.Identifier())
}

func TestDecodeAcceptsTwoSegments(t *testing.T) {
	claims, ok := Decode("header.eyJzdWIiOiJ-fn4ifQ")
	require.True(t, ok)
	assert.Equal(t, "~~~", claims.Identifier())
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"single segment", "eyJzdWIiOiJ4In0"},
		{"empty payload", "header..sig"},
		{"not base64", "header.!!!!.sig"},
		{"impossible length", "header.abcde.sig"},
		{"not json", "header.bm90IGpzb24.sig"},
		{"json array", "header.WzFd.sig"},
		{"json null", "header.bnVsbA.sig"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				claims Claims
				ok     bool
			)
			assert.NotPanics(t, func() { claims, ok = Decode(tt.token) })
			assert.False(t, ok)
			assert.Nil(t, claims)
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := Claims{
		"sub":  "x",
		"role": "superadmin",
		"exp":  float64(1893456000),
	}

	token, err := Encode(original)
	require.NoError(t, err)

	decoded, ok := Decode(token)
	require.True(t, ok)
	assert.Equal(t, original, decoded)
}
