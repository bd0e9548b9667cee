package session

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spec-kit/resistance-admin/internal/domain"
)

// Claims is the decoded payload of a session token.
type Claims map[string]any

// Identifier returns the subject, falling back to username and email.
func (c Claims) Identifier() string {
	for _, key := range []string{"sub", "username", "email"} {
		if v, ok := c[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Role returns the flat role claim. Tokens minted by older authorities carry a roles
// array or a scope string instead; the first entry of those is used.
func (c Claims) Role() domain.Role {
	if v := c["role"]; truthy(v) {
		return domain.Role(stringify(v))
	}
	if v := c["roles"]; truthy(v) {
		if list, ok := v.([]any); ok {
			if len(list) == 0 {
				return ""
			}
			return domain.Role(stringify(list[0]))
		}
		return domain.Role(stringify(v))
	}
	if v := c["scope"]; truthy(v) {
		return domain.Role(stringify(v))
	}
	return ""
}

// maxExpirySeconds bounds exp so the conversion to time.Time stays in range; later
// expiries are treated as this far-future instant.
const maxExpirySeconds = 1 << 62

// ExpiresAt returns the exp claim when it is a number. Out-of-range values saturate.
func (c Claims) ExpiresAt() (time.Time, bool) {
	exp, ok := c["exp"].(float64)
	if !ok {
		return time.Time{}, false
	}
	switch {
	case exp >= maxExpirySeconds:
		return time.Unix(maxExpirySeconds, 0), true
	case exp <= -maxExpirySeconds:
		return time.Unix(-maxExpirySeconds, 0), true
	}
	sec, frac := math.Modf(exp)
	return time.Unix(int64(sec), int64(frac*1e9)), true
}

// ValidAt reports whether the claims are still usable at now. Claims without a numeric
// expiry never expire at this layer.
func (c Claims) ValidAt(now time.Time) bool {
	exp, ok := c.ExpiresAt()
	if !ok {
		return true
	}
	return now.Before(exp)
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case bool:
		return t
	case float64:
		return t != 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
