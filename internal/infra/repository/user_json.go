package repository

import (
	"context"
	"strings"

	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/domain/model"
	"github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/infra/store"
	repo "github.com/yusufaktamov/TechHouseAssignmentYusuf/internal/repository"
)

type userRepository struct {
	s *store.Store
}

func NewUserRepository(s *store.Store) repo.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.s.Load(usersFile, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (model.User, error) {
	if email == "" {
		return model.User{}, repo.ErrNotFound
	}
	users, err := r.List(ctx)
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, repo.ErrNotFound
}

func (r *userRepository) Create(ctx context.Context, u model.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	users = append(users, u)
	return r.s.Save(usersFile, users)
}

func (r *userRepository) Update(ctx context.Context, u model.User) error {
	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if strings.EqualFold(users[i].Email, u.Email) {
			users[i] = u
			return r.s.Save(usersFile, users)
		}
	}
	return repo.ErrNotFound
}

func (r *userRepository) SaveAll(ctx context.Context, users []model.User) error {
	return r.s.Save(usersFile, users)
}
