package session

import (
	"encoding/base64"
	"encoding/json"
	"strings"
)

var urlSafeToStd = strings.NewReplacer("-", "+", "_", "/")

// Decode extracts the claims from the payload segment of token. It reports false for
// anything that is not at least two dot-separated segments carrying a base64 encoded
// JSON object.
func Decode(token string) (Claims, bool) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, false
	}

	payload := urlSafeToStd.Replace(parts[1])
	if pad := len(payload) % 4; pad != 0 {
		payload += strings.Repeat("=", 4-pad)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil || claims == nil {
		return nil, false
	}
	return claims, true
}

// Encode builds an unsigned header.payload.signature token carrying claims.
func Encode(claims Claims) (string, error) {
	header, err := json.Marshal(map[string]string{"alg": "none", "typ": "JWT"})
	if err != nil {
		return "", err
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(header) + "." +
		base64.RawURLEncoding.EncodeToString(payload) + ".", nil
}
