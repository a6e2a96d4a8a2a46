package service

import (
	"context"

	"github.com/guardianlab/guardian/internal/models"
	"github.com/guardianlab/guardian/internal/repository"
	"go.opentelemetry.io/otel"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// ProductPage is one page of the catalog plus the pagination meta the
// frontend renders its controls from.
type ProductPage struct {
	Products   []models.Product
	Page       int
	Limit      int
	Total      int
	TotalPages int
}

type ProductService interface {
	GetPage(ctx context.Context, page, limit int) (*ProductPage, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

type productService struct {
	repo repository.ProductRepository
}

func NewProductService(repo repository.ProductRepository) *productService {
	return &productService{repo: repo}
}

func (s *productService) GetPage(ctx context.Context, page, limit int) (*ProductPage, error) {
	tracer := otel.Tracer("products-service")
	ctx, span := tracer.Start(ctx, "GetProducts")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	products, total, err := s.repo.GetPage(ctx, page, limit)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	totalPages := (total + limit - 1) / limit
	return &ProductPage{
		Products:   products,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func (s *productService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}
