package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

type categoryRepository struct {
	s *store.Store
}

func NewCategoryRepository(s *store.Store) repo.CategoryRepository {
	return &categoryRepository{s: s}
}

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := r.s.Load(categoriesFile, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}
