package auth

import (
	"github.com/DougPeron/backend-agendamento-firebase/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier turns bearer credentials into a stable caller identity.
// The booking engine only ever sees the resulting Identity.
type Verifier interface {
	Verify(token string) (domain.Identity, error)
}

type hs256Verifier struct {
	secret []byte
}

// NewHS256Verifier verifies HS256-signed JWTs against a shared secret
// and extracts the subject claim.
func NewHS256Verifier(secret string) Verifier {
	return &hs256Verifier{secret: []byte(secret)}
}

func (v *hs256Verifier) Verify(tokenString string) (domain.Identity, error) {
	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	if claims.Subject == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return domain.Identity{Subject: claims.Subject}, nil
}
