package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/guardianlab/guardian/internal/models"
	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
)

// IssuerConfig holds the signing material for both token kinds. The access
// and refresh secrets must differ so that compromise of one does not yield
// the other.
type IssuerConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	// Now overrides the clock, for tests. Defaults to time.Now.
	Now func() time.Time
}

// Issuer mints signed access and refresh tokens for a verified identity.
// Stateless: issuing keeps no record of the tokens it produces.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewIssuer(cfg IssuerConfig) (*Issuer, error) {
	if cfg.AccessSecret == "" {
		return nil, fmt.Errorf("%w: access secret", pkgerrors.ErrMissingSecret)
	}
	if cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("%w: refresh secret", pkgerrors.ErrMissingSecret)
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("invalid TTL configuration")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Issuer{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           cfg.Now,
	}, nil
}

// Issue signs the same claim shape twice: once with the access secret and
// short TTL, once with the refresh secret and long TTL.
func (i *Issuer) Issue(user *models.User) (*models.TokenPair, error) {
	now := i.now()

	accessToken, err := i.sign(user, now, i.accessTTL, i.accessSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}
	refreshToken, err := i.sign(user, now, i.refreshTTL, i.refreshSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &models.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(i.accessTTL.Seconds()),
	}, nil
}

// AccessTTL reports the configured access-token lifetime.
func (i *Issuer) AccessTTL() time.Duration { return i.accessTTL }

func (i *Issuer) sign(user *models.User, now time.Time, ttl time.Duration, secret []byte) (string, error) {
	claims := models.Claims{
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
