package repository

import (
	"context"

	"github.com/guardianlab/guardian/internal/models"
)

type OnboardingRepository interface {
	Save(ctx context.Context, onboarding *models.Onboarding) error
	GetByID(ctx context.Context, id string) (*models.Onboarding, error)
	GetAll(ctx context.Context) ([]models.Onboarding, error)
}
