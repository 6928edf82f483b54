// auth/jwt.go
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	ems_errors "github.com/dev-mohitbeniwal/ems/api/errors"
	"github.com/dev-mohitbeniwal/ems/api/model"
)

// Claims is the identity provider's token body. Subject carries the user ID.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Verifier checks bearer tokens issued with a shared HMAC secret.
type Verifier struct {
	secret []byte
	issuer string
}

func NewVerifier(secret, issuer string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	return &Verifier{secret: []byte(secret), issuer: issuer}, nil
}

// GenerateToken signs a token for p. Used by tooling and tests.
func (v *Verifier) GenerateToken(p model.Principal, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Email: p.Email,
		Name:  p.Name,
		Role:  string(p.Role),
	})
	return token.SignedString(v.secret)
}

// ParsePrincipal validates tokenString and returns the principal it names.
func (v *Verifier) ParsePrincipal(tokenString string) (model.Principal, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %w", ems_errors.ErrUnauthorized, err)
	}
	if !token.Valid {
		return model.Principal{}, ems_errors.ErrUnauthorized
	}
	if claims.Subject == "" {
		return model.Principal{}, fmt.Errorf("%w: token has no subject", ems_errors.ErrUnauthorized)
	}

	role, ok := model.ParseRole(claims.Role)
	if !ok {
		return model.Principal{}, fmt.Errorf("%w: %q", ems_errors.ErrInvalidRole, claims.Role)
	}

	return model.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  role,
	}, nil
}

// IsExpired reports whether err came from an expired token.
func IsExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}
