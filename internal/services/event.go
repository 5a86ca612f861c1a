package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"campusevents/internal/domain"
)

// deletionPhrase is the literal the operator must type to start a delete.
const deletionPhrase = "YES"

type eventService struct {
	events domain.EventRepository
	users  domain.UserRepository
	email  domain.EmailService
	logger *slog.Logger
}

// NewEventService creates the mutation engine over the given stores.
// email may be nil when cancellation notices are not wanted.
func NewEventService(events domain.EventRepository, users domain.UserRepository, email domain.EmailService, logger *slog.Logger) domain.EventService {
	return &eventService{
		events: events,
		users:  users,
		email:  email,
		logger: logger,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, sess domain.Session, in domain.CreateEventInput) (*domain.Event, error) {
	if sess.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins may create events", domain.ErrForbidden)
	}

	date, err := domain.ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	clock, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidateEventInput(in.Description, in.Location); err != nil {
		return nil, err
	}

	organizerID := in.OrganizerID
	if organizerID == "" {
		organizerID = sess.ActorID
	}

	event, err := domain.NewEvent(in.Name, in.Description, date, clock, in.Location, in.MaxCapacity, organizerID)
	if err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.logger.Info("event created", "event_id", event.ID, "name", event.Name, "organizer_id", event.OrganizerID)
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, sess domain.Session, eventID string, update domain.FieldUpdate) (*domain.Event, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.CanBeModifiedBy(sess.ActorID, sess.Role) {
		return nil, fmt.Errorf("%w: not allowed to update this event", domain.ErrForbidden)
	}
	if err := event.ApplyUpdate(update); err != nil {
		return nil, err
	}
	s.logger.Info("event updated", "event_id", event.ID, "field", update.Field())
	return event, nil
}

func (s *eventService) DeletionImpact(ctx context.Context, sess domain.Session, eventID string) (*domain.DeletionImpact, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.CanBeModifiedBy(sess.ActorID, sess.Role) {
		return nil, fmt.Errorf("%w: not allowed to delete this event", domain.ErrForbidden)
	}
	return event.DeletionImpact(), nil
}

// DeleteEvent removes an event after the two-phase confirmation: the
// literal "YES", and, when the roster is non-empty, the exact event name.
// The registry removal happens before the roster is cleared, so a failed
// removal leaves the event fully intact.
func (s *eventService) DeleteEvent(ctx context.Context, sess domain.Session, eventID string, confirm domain.DeletionConfirmation) (*domain.DeletionReport, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !event.CanBeModifiedBy(sess.ActorID, sess.Role) {
		return nil, fmt.Errorf("%w: not allowed to delete this event", domain.ErrForbidden)
	}

	if confirm.Phrase != deletionPhrase {
		return nil, fmt.Errorf("%w: confirmation phrase mismatch", domain.ErrNotConfirmed)
	}
	if event.AttendeeCount() > 0 && confirm.TypedName != event.Name {
		return nil, fmt.Errorf("%w: event name mismatch", domain.ErrNotConfirmed)
	}

	if err := s.events.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	removed := event.PrepareForDeletion()

	report := &domain.DeletionReport{
		EventID:          eventID,
		EventName:        event.Name,
		RemovedAttendees: removed,
	}
	s.logger.Info("event deleted", "event_id", eventID, "name", event.Name, "cancelled_registrations", len(removed))
	s.notifyCancelled(ctx, event, removed)
	return report, nil
}

// notifyCancelled sends best-effort cancellation notices to the removed
// attendees. Failures are logged, never surfaced: the deletion is already
// committed and notification is outside the registry's consistency
// boundary.
func (s *eventService) notifyCancelled(ctx context.Context, event *domain.Event, removed []string) {
	if s.email == nil || len(removed) == 0 {
		return
	}
	for _, userID := range removed {
		user, err := s.users.GetByID(ctx, userID)
		if err != nil {
			s.logger.Warn("cancellation notice skipped: unknown attendee", "user_id", userID)
			continue
		}
		data := &domain.CancellationEmailData{
			Email:     user.Email,
			FullName:  user.FullName,
			EventName: event.Name,
			EventDate: event.Date.Format(domain.DateLayout),
		}
		if err := s.email.SendEventCancellation(ctx, data); err != nil {
			s.logger.Warn("cancellation notice failed", "user_id", userID, "error", err)
		}
	}
}
