package service

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

// IdentityConfig describes how identity provider tokens are verified.
type IdentityConfig struct {
	Secret   string
	Issuer   string
	Audience []string
}

// IdentityService verifies access tokens issued by the external identity provider.
// Login, refresh and password flows live in the provider.
type IdentityService struct {
	cfg IdentityConfig
}

// NewIdentityService constructs an IdentityService.
func NewIdentityService(cfg IdentityConfig) *IdentityService {
	return &IdentityService{cfg: cfg}
}

// ValidateToken parses an HS256 token and returns its claims. Issuer and audience are
// enforced only when configured.
func (s *IdentityService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.cfg.Issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	if !s.audienceAllowed(claims.Audience) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token audience not accepted")
	}
	if claims.Role == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token carries no role")
	}
	return claims, nil
}

func (s *IdentityService) audienceAllowed(audience jwt.ClaimStrings) bool {
	if len(s.cfg.Audience) == 0 {
		return true
	}
	for _, want := range s.cfg.Audience {
		for _, got := range audience {
			if want == got {
				return true
			}
		}
	}
	return false
}
