package memory

import (
	"context"
	"fmt"

	"campusevents/internal/domain"
)

type userRepository struct {
	byID  map[string]*domain.User
	order []string
}

// NewUserRepository creates an empty in-memory user store.
func NewUserRepository() domain.UserRepository {
	return &userRepository{byID: make(map[string]*domain.User)}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		id, err := newID(func(id string) bool { _, ok := r.byID[id]; return ok })
		if err != nil {
			return fmt.Errorf("generate user id: %w", err)
		}
		user.ID = id
	} else if _, ok := r.byID[user.ID]; ok {
		return fmt.Errorf("%w: user id %s already exists", domain.ErrValidation, user.ID)
	}
	r.byID[user.ID] = user
	r.order = append(r.order, user.ID)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
