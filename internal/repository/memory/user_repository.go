package memory

import (
	"context"
	"fmt"

	"github.com/guardianlab/guardian/internal/models"
	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const seedBcryptCost = 10

type seedUser struct {
	id       string
	username string
	password string
	email    string
}

var seedUsers = []seedUser{
	{"1", "admin", "password123", "admin@guardian.com"},
	{"2", "usuario", "admin2024", "usuario@guardian.com"},
	{"3", "test", "test1234", "test@guardian.com"},
}

// UserRepository holds the seeded identities. The maps are never written
// after construction, so reads are safe without locking.
type UserRepository struct {
	byUsername map[string]*models.User
	byID       map[string]*models.User
}

func NewUserRepository() (*UserRepository, error) {
	r := &UserRepository{
		byUsername: make(map[string]*models.User, len(seedUsers)),
		byID:       make(map[string]*models.User, len(seedUsers)),
	}
	for _, s := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), seedBcryptCost)
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", s.username, err)
		}
		u := &models.User{
			ID:           s.id,
			Username:     s.username,
			PasswordHash: string(hash),
			Email:        s.email,
		}
		r.byUsername[u.Username] = u
		r.byID[u.ID] = u
	}
	return r, nil
}

func (r *UserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, pkgerrors.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, pkgerrors.ErrUserNotFound
	}
	return u, nil
}
