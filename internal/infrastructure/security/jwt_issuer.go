package security

import (
	"time"

	"github.com/jhoicas/marketplace-identity/internal/application/ports"
	"github.com/jhoicas/marketplace-identity/pkg/jwt"
)

var _ ports.TokenIssuer = (*JWTIssuer)(nil)

// JWTIssuer firma bearer tokens HS256 con expiración configurable.
type JWTIssuer struct {
	secret string
	issuer string
	ttl    time.Duration
}

// NewJWTIssuer construye el emisor de tokens.
func NewJWTIssuer(secret, issuer string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: secret, issuer: issuer, ttl: ttl}
}

func (i *JWTIssuer) Sign(accountID, role string) (string, error) {
	return jwt.Generate(i.secret, accountID, role, i.issuer, i.ttl)
}
