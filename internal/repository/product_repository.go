package repository

import (
	"context"

	"github.com/guardianlab/guardian/internal/models"
)

type ProductRepository interface {
	GetPage(ctx context.Context, page, limit int) (products []models.Product, total int, err error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}
