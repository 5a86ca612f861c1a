package services

import (
	"context"
	"errors"
	"fmt"

	"campusevents/internal/domain"
)

type attendeeService struct {
	events domain.EventRepository
	users  domain.UserRepository
}

// NewAttendeeService creates the registration service over the given
// stores.
func NewAttendeeService(events domain.EventRepository, users domain.UserRepository) domain.AttendeeService {
	return &attendeeService{events: events, users: users}
}

func (s *attendeeService) Register(ctx context.Context, sess domain.Session, eventID string) (*domain.Event, error) {
	if !sess.Role.CanRegister() {
		return nil, fmt.Errorf("%w: only students and visitors may register", domain.ErrForbidden)
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := event.AddAttendee(sess.ActorID); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *attendeeService) Unregister(ctx context.Context, sess domain.Session, eventID string) (bool, error) {
	if !sess.Role.CanRegister() {
		return false, fmt.Errorf("%w: only students and visitors may unregister", domain.ErrForbidden)
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get event: %w", err)
	}
	return event.RemoveAttendee(sess.ActorID), nil
}

func (s *attendeeService) ListAvailableEvents(ctx context.Context, sess domain.Session) ([]*domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := []*domain.Event{}
	for _, e := range all {
		if !e.HasAttendee(sess.ActorID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *attendeeService) ListMyEvents(ctx context.Context, sess domain.Session) ([]*domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	out := []*domain.Event{}
	for _, e := range all {
		if e.HasAttendee(sess.ActorID) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *attendeeService) ListEventAttendees(ctx context.Context, sess domain.Session, eventID string) ([]domain.AttendeeInfo, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.CanBeModifiedBy(sess.ActorID, sess.Role) {
		return nil, fmt.Errorf("%w: not allowed to view this roster", domain.ErrForbidden)
	}

	infos := make([]domain.AttendeeInfo, 0, len(event.Attendees))
	for _, id := range event.Attendees {
		info := domain.AttendeeInfo{UserID: id}
		if user, err := s.users.GetByID(ctx, id); err == nil {
			info.User = user
		}
		infos = append(infos, info)
	}
	return infos, nil
}
