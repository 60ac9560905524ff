package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

type membershipRepository struct {
	s *store.Store
}

func NewMembershipRepository(s *store.Store) repo.MembershipRepository {
	return &membershipRepository{s: s}
}

func (r *membershipRepository) List(ctx context.Context) ([]model.Membership, error) {
	var memberships []model.Membership
	if err := r.s.Load(membershipsFile, &memberships); err != nil {
		return nil, err
	}
	return memberships, nil
}

func (r *membershipRepository) FindByID(ctx context.Context, id int64) (model.Membership, error) {
	memberships, err := r.List(ctx)
	if err != nil {
		return model.Membership{}, err
	}
	for _, m := range memberships {
		if m.ID == id {
			return m, nil
		}
	}
	return model.Membership{}, repo.ErrNotFound
}
