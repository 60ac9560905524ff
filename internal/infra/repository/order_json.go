package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

type orderRepository struct {
	s *store.Store
}

func NewOrderRepository(s *store.Store) repo.OrderRepository {
	return &orderRepository{s: s}
}

func (r *orderRepository) List(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := r.s.Load(ordersFile, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	if email == "" {
		return []model.Order{}, nil
	}
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]model.Order, 0)
	for _, o := range orders {
		if o.UserEmail == email {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

// 連番採番（件数+1）。単一書き込みプロセス前提。
func (r *orderRepository) Append(ctx context.Context, order model.Order) (model.Order, error) {
	if len(order.Items) == 0 {
		return model.Order{}, model.ErrEmptyOrder
	}
	orders, err := r.List(ctx)
	if err != nil {
		return model.Order{}, err
	}
	order.ID = int64(len(orders)) + 1
	orders = append(orders, order)
	if err := r.s.Save(ordersFile, orders); err != nil {
		return model.Order{}, err
	}
	return order, nil
}
