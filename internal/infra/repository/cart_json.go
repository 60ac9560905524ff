package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

type cartRepository struct {
	s *store.Store
}

func NewCartRepository(s *store.Store) repo.CartRepository {
	return &cartRepository{s: s}
}

func (r *cartRepository) Get(ctx context.Context) (model.Cart, error) {
	var cart model.Cart
	if err := r.s.Load(cartFile, &cart); err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

func (r *cartRepository) Save(ctx context.Context, cart model.Cart) error {
	// 空でも"items": []で保存する（nilだとnullになる）
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return r.s.Save(cartFile, cart)
}
