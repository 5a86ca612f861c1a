package memory

import (
	"context"
	"fmt"

	"campusevents/internal/domain"
)

type eventRepository struct {
	byID  map[string]*domain.Event
	order []string
}

// NewEventRepository creates an empty in-memory event store.
func NewEventRepository() domain.EventRepository {
	return &eventRepository{byID: make(map[string]*domain.Event)}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		id, err := newID(func(id string) bool { _, ok := r.byID[id]; return ok })
		if err != nil {
			return fmt.Errorf("generate event id: %w", err)
		}
		event.ID = id
	} else if _, ok := r.byID[event.ID]; ok {
		return fmt.Errorf("%w: event id %s already exists", domain.ErrValidation, event.ID)
	}
	r.byID[event.ID] = event
	r.order = append(r.order, event.ID)
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if e, ok := r.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	out := make([]*domain.Event, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
