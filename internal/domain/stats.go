package domain

import "context"

// RoleCount is one row of the per-role registration breakdown.
type RoleCount struct {
	Role    Role
	Count   int
	Percent float64
}

// OrganizerCount is one row of the per-organizer breakdown.
type OrganizerCount struct {
	OrganizerID string
	Name        string
	Events      int
	Attendees   int
	Average     float64
}

// SystemStats is the full registry roll-up, recomputed on demand.
type SystemStats struct {
	TotalEvents      int
	TotalAttendees   int
	AverageAttendees float64
	TotalCapacity    int
	FillRatePercent  float64

	MostPopular  *Event // nil when there are no events
	LeastPopular *Event

	RoleBreakdown      []RoleCount      // canonical role order
	OrganizerBreakdown []OrganizerCount // descending by attendees
	Buckets            map[FillBucket]int
}

// OrganizerReport is the global-style roll-up restricted to one
// organizer's events.
type OrganizerReport struct {
	OrganizerID      string
	TotalEvents      int
	TotalAttendees   int
	AverageAttendees float64
	TotalCapacity    int
	FillRatePercent  float64
	BestEvent        *Event
	Events           []*Event
}

// StatsService defines the read-only aggregation engine.
type StatsService interface {
	// Overview computes the system-wide statistics. Admin only.
	Overview(ctx context.Context, sess Session) (*SystemStats, error)
	// OrganizerOverview computes the actor's personal statistics.
	// EventOrganizer only.
	OrganizerOverview(ctx context.Context, sess Session) (*OrganizerReport, error)
	// Integrity reports referential problems (dangling organizer or
	// attendee IDs) as human-readable issues. An empty slice means the
	// registry is consistent.
	Integrity(ctx context.Context) ([]string, error)
}

// AttendeeInfo pairs a roster entry with the resolved user, which is nil
// when the ID dangles.
type AttendeeInfo struct {
	UserID string
	User   *User
}

// AttendeeService defines attendee-facing registration operations plus the
// roster views organizers use.
type AttendeeService interface {
	// Register adds the session actor to the event roster. Student and
	// Visitor sessions only.
	Register(ctx context.Context, sess Session, eventID string) (*Event, error)
	// Unregister removes the session actor from the roster and reports
	// whether a registration was actually removed.
	Unregister(ctx context.Context, sess Session, eventID string) (bool, error)
	// ListAvailableEvents lists events the actor has not registered for.
	ListAvailableEvents(ctx context.Context, sess Session) ([]*Event, error)
	// ListMyEvents lists events the actor is registered for.
	ListMyEvents(ctx context.Context, sess Session) ([]*Event, error)
	// ListEventAttendees resolves the roster of one event. Admins and the
	// event's organizer only.
	ListEventAttendees(ctx context.Context, sess Session, eventID string) ([]AttendeeInfo, error)
}
