package repository

import (
	"context"
	"strings"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

type promotionRepository struct {
	s *store.Store
}

func NewPromotionRepository(s *store.Store) repo.PromotionRepository {
	return &promotionRepository{s: s}
}

func (r *promotionRepository) List(ctx context.Context) ([]model.Promotion, error) {
	var promotions []model.Promotion
	if err := r.s.Load(promotionsFile, &promotions); err != nil {
		return nil, err
	}
	return promotions, nil
}

func (r *promotionRepository) FindByCode(ctx context.Context, code string) (model.Promotion, error) {
	promotions, err := r.List(ctx)
	if err != nil {
		return model.Promotion{}, err
	}
	for _, p := range promotions {
		if strings.EqualFold(p.Code, code) {
			return p, nil
		}
	}
	return model.Promotion{}, repo.ErrNotFound
}
