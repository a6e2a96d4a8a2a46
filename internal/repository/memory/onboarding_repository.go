package memory

import (
	"context"
	"sync"

	"github.com/guardianlab/guardian/internal/models"
	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
)

// OnboardingRepository keeps onboarding records in memory. Unlike the user
// store it is written during request handling, so access goes through a lock.
type OnboardingRepository struct {
	mu      sync.RWMutex
	records map[string]models.Onboarding
	order   []string
}

func NewOnboardingRepository() *OnboardingRepository {
	return &OnboardingRepository{records: make(map[string]models.Onboarding)}
}

func (r *OnboardingRepository) Save(_ context.Context, onboarding *models.Onboarding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.records[onboarding.ID]; !exists {
		r.order = append(r.order, onboarding.ID)
	}
	r.records[onboarding.ID] = *onboarding
	return nil
}

func (r *OnboardingRepository) GetByID(_ context.Context, id string) (*models.Onboarding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, pkgerrors.ErrOnboardingNotFound
	}
	return &rec, nil
}

func (r *OnboardingRepository) GetAll(_ context.Context) ([]models.Onboarding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Onboarding, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id])
	}
	return out, nil
}
