package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/guardianlab/guardian/internal/models"
	"github.com/guardianlab/guardian/internal/repository"
	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

// CreateOnboardingInput is the validated request body for a new onboarding.
type CreateOnboardingInput struct {
	Nombre       string   `json:"nombre" validate:"required"`
	Documento    string   `json:"documento" validate:"required"`
	Email        string   `json:"email" validate:"required,email"`
	MontoInicial *float64 `json:"montoInicial" validate:"required,gte=0"`
}

type OnboardingService interface {
	Create(ctx context.Context, input CreateOnboardingInput) (*models.Onboarding, error)
	GetByID(ctx context.Context, id string) (*models.Onboarding, error)
}

type onboardingService struct {
	repo     repository.OnboardingRepository
	validate *validator.Validate
}

func NewOnboardingService(repo repository.OnboardingRepository) *onboardingService {
	return &onboardingService{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (s *onboardingService) Create(ctx context.Context, input CreateOnboardingInput) (*models.Onboarding, error) {
	tracer := otel.Tracer("onboarding-service")
	ctx, span := tracer.Start(ctx, "CreateOnboarding")
	defer span.End()

	if err := s.validate.Struct(input); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return nil, toValidationError(err)
	}

	now := time.Now().UTC()
	onboarding := &models.Onboarding{
		ID:           uuid.NewString(),
		Nombre:       input.Nombre,
		Documento:    input.Documento,
		Email:        input.Email,
		MontoInicial: *input.MontoInicial,
		Status:       models.StatusRequested,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Save(ctx, onboarding); err != nil {
		span.RecordError(err)
		slog.Error("failed to save onboarding", "email", input.Email, "error", err)
		return nil, pkgerrors.ErrInternal
	}

	slog.Info("onboarding created", "onboarding_id", onboarding.ID, "email", onboarding.Email)
	return onboarding, nil
}

func (s *onboardingService) GetByID(ctx context.Context, id string) (*models.Onboarding, error) {
	return s.repo.GetByID(ctx, id)
}

// toValidationError flattens validator output into per-field messages.
func toValidationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return pkgerrors.ErrInvalidInput
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe)] = fieldMessage(fe)
	}
	return &pkgerrors.ValidationError{Fields: fields}
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Nombre":
		return "nombre"
	case "Documento":
		return "documento"
	case "Email":
		return "email"
	case "MontoInicial":
		return "montoInicial"
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	}
	return "is invalid"
}
