package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
)

func signTestToken(t *testing.T, secret string, claims models.JWTClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func testClaims(role models.UserRole) models.JWTClaims {
	now := time.Now()
	return models.JWTClaims{
		UserID: "user-1",
		Role:   role,
		Email:  "staff@school.test",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "idp",
			Audience:  jwt.ClaimStrings{"scolarite"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func TestIdentityServiceValidateToken(t *testing.T) {
	svc := NewIdentityService(IdentityConfig{Secret: "secret", Issuer: "idp", Audience: []string{"portal", "scolarite"}})

	claims, err := svc.ValidateToken(signTestToken(t, "secret", testClaims(models.RoleAccountant)))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAccountant, claims.Role)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestIdentityServiceRejectsBadTokens(t *testing.T) {
	svc := NewIdentityService(IdentityConfig{Secret: "secret", Issuer: "idp", Audience: []string{"scolarite"}})

	expired := testClaims(models.RoleAdmin)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	wrongIssuer := testClaims(models.RoleAdmin)
	wrongIssuer.Issuer = "other"

	wrongAudience := testClaims(models.RoleAdmin)
	wrongAudience.Audience = jwt.ClaimStrings{"mobile"}

	noRole := testClaims("")

	cases := map[string]string{
		"wrong secret":   signTestToken(t, "other", testClaims(models.RoleAdmin)),
		"expired":        signTestToken(t, "secret", expired),
		"wrong issuer":   signTestToken(t, "secret", wrongIssuer),
		"wrong audience": signTestToken(t, "secret", wrongAudience),
		"no role":        signTestToken(t, "secret", noRole),
		"garbage":        "not-a-token",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.Error(t, err)
		})
	}
}
