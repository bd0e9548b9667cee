package session

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/resistance-admin/internal/domain"
)

func TestClaimsIdentifierFallbacks(t *testing.T) {
	assert.Equal(t, "s", Claims{"sub": "s", "username": "u", "email": "e"}.Identifier())
	assert.Equal(t, "u", Claims{"username": "u", "email": "e"}.Identifier())
	assert.Equal(t, "e", Claims{"sub": "", "email": "e"}.Identifier())
	assert.Equal(t, "", Claims{"sub": 42.0}.Identifier())
}

func TestClaimsRoleResolutionOrder(t *testing.T) {
	tests := []struct {
		name   string
		claims Claims
		want   domain.Role
	}{
		{"flat role wins", Claims{"role": "daemon", "roles": []any{"superadmin"}}, domain.RoleDaemon},
		{"roles array", Claims{"roles": []any{"superadmin", "daemon"}}, domain.RoleSuperadmin},
		{"roles scalar", Claims{"roles": "daemon"}, domain.RoleDaemon},
		{"empty roles array", Claims{"roles": []any{}, "scope": "daemon"}, ""},
		{"scope", Claims{"scope": "superadmin"}, domain.RoleSuperadmin},
		{"empty role falls through", Claims{"role": "", "scope": "daemon"}, domain.RoleDaemon},
		{"none", Claims{"sub": "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claims.Role())
		})
	}
}

func TestClaimsExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)

	assert.True(t, Claims{"exp": float64(now.Unix() + 1)}.ValidAt(now))
	assert.False(t, Claims{"exp": float64(now.Unix())}.ValidAt(now), "expiry instant itself is not valid")
	assert.False(t, Claims{"exp": float64(now.Unix() - 1)}.ValidAt(now))
	assert.True(t, Claims{}.ValidAt(now), "missing exp never expires")
	assert.True(t, Claims{"exp": "1"}.ValidAt(now), "non-numeric exp is ignored")

	exp, ok := Claims{"exp": 1700000000.5}.ExpiresAt()
	assert.True(t, ok)
	assert.Equal(t, int64(1700000000), exp.Unix())
	assert.Equal(t, 500*time.Millisecond, time.Duration(exp.Nanosecond()))
}

func TestClaimsFarExpiry(t *testing.T) {
	now := time.Now()

	for _, exp := range []float64{1e19, 1e300, math.MaxFloat64} {
		claims := Claims{"sub": "x", "exp": exp}
		assert.True(t, claims.ValidAt(now), "exp %g", exp)

		token, err := Encode(claims)
		require.NoError(t, err)
		decoded, ok := Decode(token)
		require.True(t, ok)
		assert.True(t, decoded.ValidAt(now), "decoded exp %g", exp)
	}

	for _, exp := range []float64{-1e19, -1e300} {
		assert.False(t, Claims{"exp": exp}.ValidAt(now), "exp %g", exp)
	}
}
