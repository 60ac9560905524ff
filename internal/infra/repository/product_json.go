package repository

import (
	"context"
	"strings"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

type productRepository struct {
	s *store.Store
}

func NewProductRepository(s *store.Store) repo.ProductRepository {
	return &productRepository{s: s}
}

func (r *productRepository) List(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := r.s.Load(productsFile, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if p.CategoryID == categoryID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return model.Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, repo.ErrNotFound
}

func (r *productRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(query)
	var hits []model.Product
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			hits = append(hits, p)
		}
	}
	return hits, nil
}

// IDはmax+1で採番
func (r *productRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	products, err := r.List(ctx)
	if err != nil {
		return model.Product{}, err
	}
	var maxID int64
	for _, existing := range products {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p.ID = maxID + 1
	products = append(products, p)
	if err := r.s.Save(productsFile, products); err != nil {
		return model.Product{}, err
	}
	return p, nil
}

func (r *productRepository) SaveAll(ctx context.Context, products []model.Product) error {
	return r.s.Save(productsFile, products)
}
