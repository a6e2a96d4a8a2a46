package memory

import (
	"context"
	"time"

	"github.com/guardianlab/guardian/internal/models"
	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
)

// ProductRepository serves the catalog from a slice seeded at construction.
// Read-only after seeding.
type ProductRepository struct {
	products []models.Product
	byID     map[string]*models.Product
}

func NewProductRepository() *ProductRepository {
	now := time.Now().UTC()
	products := []models.Product{
		{ID: "1", Name: "Laptop Gaming", Description: "Laptop de alto rendimiento con RTX 4070, 32GB RAM", Price: 1299.99, Category: "Electronics", ImageURL: "https://images.unsplash.com/photo-1603302576837-37561b2e2302?w=400", Stock: 10, CreatedAt: now},
		{ID: "2", Name: "Mouse Inalámbrico", Description: "Mouse ergonómico con sensor de precisión", Price: 49.99, Category: "Accessories", ImageURL: "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=400", Stock: 50, CreatedAt: now},
		{ID: "3", Name: "Teclado Mecánico", Description: "Teclado mecánico RGB con switches Cherry MX", Price: 129.99, Category: "Accessories", ImageURL: "https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=400", Stock: 30, CreatedAt: now},
		{ID: "4", Name: "Monitor 4K", Description: "Monitor 27 pulgadas 4K UHD con HDR", Price: 499.99, Category: "Electronics", ImageURL: "https://images.unsplash.com/photo-1527443224154-c4a3942d3acf?w=400", Stock: 15, CreatedAt: now},
		{ID: "5", Name: "Auriculares Gaming", Description: "Auriculares con sonido surround 7.1", Price: 89.99, Category: "Accessories", ImageURL: "https://images.unsplash.com/photo-1546435770-a3e426bf472b?w=400", Stock: 25, CreatedAt: now},
		{ID: "6", Name: "Webcam HD", Description: "Webcam 1080p con micrófono integrado", Price: 69.99, Category: "Accessories", ImageURL: "https://images.unsplash.com/photo-1625890656577-1753bb3b32f5?w=400", Stock: 0, CreatedAt: now},
		{ID: "7", Name: "SSD 1TB", Description: "Disco de estado sólido NVMe de alta velocidad", Price: 149.99, Category: "Storage", ImageURL: "https://images.unsplash.com/photo-1531492746076-161ca9bcad58?w=400", Stock: 40, CreatedAt: now},
		{ID: "8", Name: "Tarjeta Gráfica", Description: "GPU RTX 4080 16GB", Price: 1199.99, Category: "Components", ImageURL: "https://images.unsplash.com/photo-1591488320449-011701bb6704?w=400", Stock: 5, CreatedAt: now},
	}

	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return &ProductRepository{products: products, byID: byID}
}

func (r *ProductRepository) GetPage(_ context.Context, page, limit int) ([]models.Product, int, error) {
	total := len(r.products)
	start := (page - 1) * limit
	if start >= total {
		return []models.Product{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return r.products[start:end], total, nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, pkgerrors.ErrProductNotFound
	}
	return p, nil
}
