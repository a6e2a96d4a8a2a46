package service

import (
	"context"
	"log/slog"

	"github.com/guardianlab/guardian/internal/infrastructure/auth"
	"github.com/guardianlab/guardian/internal/models"
	"github.com/guardianlab/guardian/internal/repository"
	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
}

type authService struct {
	userRepo        repository.UserRepository
	issuer          *auth.Issuer
	refreshVerifier *auth.Verifier
}

func NewAuthService(userRepo repository.UserRepository, issuer *auth.Issuer, refreshVerifier *auth.Verifier) *authService {
	return &authService{
		userRepo:        userRepo,
		issuer:          issuer,
		refreshVerifier: refreshVerifier,
	}
}

// Login checks credentials and mints a token pair. Unknown usernames and
// wrong passwords both fail with ErrInvalidCredentials so the response never
// reveals whether the username exists.
func (s *authService) Login(ctx context.Context, username, password string) (*models.TokenPair, error) {
	tracer := otel.Tracer("auth-service")
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		span.SetStatus(codes.Error, "unknown username")
		slog.Warn("login failed", "username", username)
		return nil, pkgerrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		span.SetStatus(codes.Error, "password mismatch")
		slog.Warn("login failed", "username", username)
		return nil, pkgerrors.ErrInvalidCredentials
	}

	pair, err := s.issuer.Issue(user)
	if err != nil {
		span.RecordError(err)
		slog.Error("token issuance failed", "username", username, "error", err)
		return nil, pkgerrors.ErrInternal
	}

	slog.Info("user logged in", "username", username, "user_id", user.ID)
	return pair, nil
}

// Refresh verifies the refresh token and rotates the pair: a new access
// token AND a new refresh token are minted from the decoded identity.
// Expired and tampered tokens are collapsed into one generic error.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	tracer := otel.Tracer("auth-service")
	_, span := tracer.Start(ctx, "Refresh")
	defer span.End()

	claims, err := s.refreshVerifier.Verify(refreshToken)
	if err != nil {
		span.SetStatus(codes.Error, "refresh token rejected")
		slog.Warn("refresh failed", "error", err)
		return nil, pkgerrors.ErrRefreshInvalid
	}

	// Re-issue from the decoded identity; iat and exp are dropped and set
	// anew at signing time.
	user := &models.User{
		ID:       claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
	}
	pair, err := s.issuer.Issue(user)
	if err != nil {
		span.RecordError(err)
		slog.Error("token re-issuance failed", "user_id", user.ID, "error", err)
		return nil, pkgerrors.ErrInternal
	}

	slog.Info("tokens refreshed", "user_id", user.ID)
	return pair, nil
}
