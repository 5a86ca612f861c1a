package domain

import (
	"strings"
	"time"
)

// FieldUpdate is a tagged command updating a single event field. Each
// variant carries its typed new value and owns both the validation rule
// and the mutation for that field, so the two can never drift apart.
// Commands hold parsed state and must be passed by pointer.
type FieldUpdate interface {
	// Field names the target field, for error reporting and menus.
	Field() string

	validate(e *Event) error
	apply(e *Event)
}

// ValidateUpdate checks a field update against the event without mutating
// it. The returned error carries a human-readable reason.
func (e *Event) ValidateUpdate(u FieldUpdate) error {
	return u.validate(e)
}

// ApplyUpdate validates then applies a single field update. On error the
// event is unchanged.
func (e *Event) ApplyUpdate(u FieldUpdate) error {
	if err := u.validate(e); err != nil {
		return err
	}
	u.apply(e)
	return nil
}

// NameUpdate sets the event name.
type NameUpdate struct{ Value string }

func (u *NameUpdate) Field() string           { return "name" }
func (u *NameUpdate) validate(_ *Event) error { return validateName(u.Value) }
func (u *NameUpdate) apply(e *Event)          { e.Name = strings.TrimSpace(u.Value) }

// DescriptionUpdate sets the event description.
type DescriptionUpdate struct{ Value string }

func (u *DescriptionUpdate) Field() string { return "description" }
func (u *DescriptionUpdate) validate(_ *Event) error {
	return validateNonEmpty("description", u.Value)
}
func (u *DescriptionUpdate) apply(e *Event) { e.Description = strings.TrimSpace(u.Value) }

// DateUpdate sets the event date from its wire form.
type DateUpdate struct {
	Value string

	parsed time.Time
}

func (u *DateUpdate) Field() string { return "date" }
func (u *DateUpdate) validate(_ *Event) error {
	d, err := ParseDate(u.Value)
	if err != nil {
		return err
	}
	if err := validateDate(d); err != nil {
		return err
	}
	u.parsed = dateOnly(d)
	return nil
}
func (u *DateUpdate) apply(e *Event) { e.Date = u.parsed }

// TimeUpdate sets the event start time from its wire form.
type TimeUpdate struct {
	Value string

	parsed string
}

func (u *TimeUpdate) Field() string { return "time" }
func (u *TimeUpdate) validate(_ *Event) error {
	clock, err := ParseClock(u.Value)
	if err != nil {
		return err
	}
	u.parsed = clock
	return nil
}
func (u *TimeUpdate) apply(e *Event) { e.StartTime = u.parsed }

// LocationUpdate sets the event location.
type LocationUpdate struct{ Value string }

func (u *LocationUpdate) Field() string { return "location" }
func (u *LocationUpdate) validate(_ *Event) error {
	return validateNonEmpty("location", u.Value)
}
func (u *LocationUpdate) apply(e *Event) { e.Location = strings.TrimSpace(u.Value) }

// CapacityUpdate sets the maximum capacity. It refuses values below the
// current attendee count, naming the count in the error.
type CapacityUpdate struct{ Value int }

func (u *CapacityUpdate) Field() string { return "max_capacity" }
func (u *CapacityUpdate) validate(e *Event) error {
	return validateCapacity(u.Value, len(e.Attendees))
}
func (u *CapacityUpdate) apply(e *Event) { e.MaxCapacity = u.Value }
