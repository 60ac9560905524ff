package repository

import (
	"context"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

type supportRepository struct {
	s *store.Store
}

func NewSupportRepository(s *store.Store) repo.SupportRepository {
	return &supportRepository{s: s}
}

func (r *supportRepository) List(ctx context.Context) ([]model.SupportMessage, error) {
	var msgs []model.SupportMessage
	if err := r.s.Load(supportFile, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

func (r *supportRepository) Append(ctx context.Context, msg model.SupportMessage) (model.SupportMessage, error) {
	msgs, err := r.List(ctx)
	if err != nil {
		return model.SupportMessage{}, err
	}
	msg.ID = int64(len(msgs)) + 1
	msgs = append(msgs, msg)
	if err := r.s.Save(supportFile, msgs); err != nil {
		return model.SupportMessage{}, err
	}
	return msg, nil
}
