package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guardianlab/guardian/internal/models"
	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
)

// Verifier checks a token against a single secret and extracts its claims.
// One Verifier exists per token kind since the two kinds use distinct secrets.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: verifier secret", pkgerrors.ErrMissingSecret)
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Verify validates signature and expiry and returns the decoded claims.
// Expired tokens fail with ErrTokenExpired, everything else with
// ErrTokenInvalid, so callers can log the distinction or collapse it.
// Tokens missing sub or email are invalid even with a valid signature.
func (v *Verifier) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Method.Alg())
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", pkgerrors.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", pkgerrors.ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, pkgerrors.ErrTokenInvalid
	}
	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: missing sub or email", pkgerrors.ErrTokenInvalid)
	}
	return claims, nil
}
