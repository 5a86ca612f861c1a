package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Wire formats for calendar dates and wall-clock times.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

const minNameLength = 5

// Event represents a campus event and its attendee roster. Attendees holds
// user IDs in registration order and never exceeds MaxCapacity.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`       // calendar date, zero time-of-day
	StartTime   string    `json:"start_time"` // "HH:MM"
	Location    string    `json:"location"`
	MaxCapacity int       `json:"max_capacity"`
	OrganizerID string    `json:"organizer_id"`
	Attendees   []string  `json:"attendees"`
}

// NewEvent validates the creation-time rules (name, date, capacity) and
// returns a new Event. ID is set by the repository on create.
func NewEvent(name, description string, date time.Time, startTime, location string, maxCapacity int, organizerID string) (*Event, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if maxCapacity <= 0 {
		return nil, fmt.Errorf("%w: capacity must be a positive integer", ErrValidation)
	}
	return &Event{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Date:        dateOnly(date),
		StartTime:   startTime,
		Location:    strings.TrimSpace(location),
		MaxCapacity: maxCapacity,
		OrganizerID: organizerID,
	}, nil
}

// ParseDate parses a calendar date in "YYYY-MM-DD" form.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be in YYYY-MM-DD form", ErrValidation)
	}
	return d, nil
}

// ParseClock parses a wall-clock time in "HH:MM" or "HH:MM:SS" form and
// normalizes it to "HH:MM".
func ParseClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ClockLayout, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(ClockLayout), nil
		}
	}
	return "", fmt.Errorf("%w: time must be in HH:MM form", ErrValidation)
}

// ValidateEventInput checks the free-text fields the creation path shares
// with the per-field update rules.
func ValidateEventInput(description, location string) error {
	if err := validateNonEmpty("description", description); err != nil {
		return err
	}
	return validateNonEmpty("location", location)
}

func validateName(name string) error {
	if len(strings.TrimSpace(name)) < minNameLength {
		return fmt.Errorf("%w: event name must be at least %d characters", ErrValidation, minNameLength)
	}
	return nil
}

func validateDate(d time.Time) error {
	if dateOnly(d).Before(dateOnly(time.Now())) {
		return fmt.Errorf("%w: event date must not be in the past", ErrValidation)
	}
	return nil
}

func validateNonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%w: %s must not be empty", ErrValidation, field)
	}
	return nil
}

func validateCapacity(newCap, attendees int) error {
	if newCap <= 0 {
		return fmt.Errorf("%w: capacity must be a positive integer", ErrValidation)
	}
	if newCap < attendees {
		return fmt.Errorf("%w: cannot reduce capacity to %d: %d already registered", ErrValidation, newCap, attendees)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AttendeeCount returns the number of registered attendees.
func (e *Event) AttendeeCount() int { return len(e.Attendees) }

// Remaining returns the number of available spots.
func (e *Event) Remaining() int { return e.MaxCapacity - len(e.Attendees) }

// IsFull returns true when no spots remain.
func (e *Event) IsFull() bool { return len(e.Attendees) >= e.MaxCapacity }

// FillRate returns attendees over capacity in [0,1]. Zero capacity yields 0.
func (e *Event) FillRate() float64 {
	if e.MaxCapacity <= 0 {
		return 0
	}
	return float64(len(e.Attendees)) / float64(e.MaxCapacity)
}

// HasAttendee reports whether the user is registered.
func (e *Event) HasAttendee(userID string) bool {
	for _, id := range e.Attendees {
		if id == userID {
			return true
		}
	}
	return false
}

// AddAttendee appends the user to the roster, preserving registration
// order. It fails when the event is full or the user already registered.
func (e *Event) AddAttendee(userID string) error {
	if e.IsFull() {
		return ErrEventFull
	}
	if e.HasAttendee(userID) {
		return ErrAlreadyRegistered
	}
	e.Attendees = append(e.Attendees, userID)
	return nil
}

// RemoveAttendee removes the user from the roster and reports whether a
// removal occurred. Removing an absent user is not an error.
func (e *Event) RemoveAttendee(userID string) bool {
	for i, id := range e.Attendees {
		if id == userID {
			e.Attendees = append(e.Attendees[:i], e.Attendees[i+1:]...)
			return true
		}
	}
	return false
}

// CanBeModifiedBy reports whether the actor may update or delete this
// event. Admins always may; organizers only for their own events.
func (e *Event) CanBeModifiedBy(actorID string, role Role) bool {
	switch role {
	case RoleAdmin:
		return true
	case RoleOrganizer:
		return e.OrganizerID == actorID
	case RoleStudent, RoleVisitor:
		return false
	}
	return false
}

// DeletionImpact summarises what deleting an event would affect. It is a
// pure read used to drive the confirmation flow.
type DeletionImpact struct {
	EventName     string
	EventDate     time.Time
	AttendeeCount int
	Attendees     []string
	Warnings      []string
}

// DeletionImpact reports the attendees and warnings a deletion would
// produce, without mutating anything.
func (e *Event) DeletionImpact() *DeletionImpact {
	impact := &DeletionImpact{
		EventName:     e.Name,
		EventDate:     e.Date,
		AttendeeCount: len(e.Attendees),
		Attendees:     append([]string(nil), e.Attendees...),
	}
	if len(e.Attendees) > 0 {
		impact.Warnings = append(impact.Warnings,
			fmt.Sprintf("registrations for %d attendees will be cancelled", len(e.Attendees)))
	}
	if days := int(e.Date.Sub(dateOnly(time.Now())).Hours() / 24); days <= 3 {
		impact.Warnings = append(impact.Warnings,
			fmt.Sprintf("event starts in %d days", days))
	}
	return impact
}

// PrepareForDeletion clears the roster and returns the removed attendee
// IDs for downstream notification. Call only after every confirmation
// succeeded and the event has left the registry.
func (e *Event) PrepareForDeletion() []string {
	removed := e.Attendees
	e.Attendees = nil
	return removed
}

// CreateEventInput carries the raw fields for event creation. Date and
// Time are parsed by the mutation engine; OrganizerID falls back to the
// creating actor when empty.
type CreateEventInput struct {
	Name        string
	Description string
	Date        string
	Time        string
	Location    string
	MaxCapacity int
	OrganizerID string
}

// DeletionConfirmation carries the operator's answers to the two-phase
// deletion prompt. TypedName is only consulted when the event has
// attendees.
type DeletionConfirmation struct {
	Phrase    string
	TypedName string
}

// DeletionReport describes a completed deletion.
type DeletionReport struct {
	EventID          string
	EventName        string
	RemovedAttendees []string
}

// EventRepository defines the interface for event storage. List preserves
// insertion order.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the mutation engine over the event registry. Every
// operation is gated by the session's role and actor.
type EventService interface {
	CreateEvent(ctx context.Context, sess Session, in CreateEventInput) (*Event, error)
	UpdateEvent(ctx context.Context, sess Session, eventID string, update FieldUpdate) (*Event, error)
	DeletionImpact(ctx context.Context, sess Session, eventID string) (*DeletionImpact, error)
	DeleteEvent(ctx context.Context, sess Session, eventID string, confirm DeletionConfirmation) (*DeletionReport, error)
}
