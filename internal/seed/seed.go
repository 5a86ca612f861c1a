// Package seed loads the demo roster and events used when the registry
// starts empty.
package seed

import (
	"context"
	"fmt"
	"time"

	"campusevents/internal/domain"
)

// Demo fills the repositories with the demo data set: one admin, three
// organizers, three students, two visitors, and four events at distinct
// fill levels. Event dates are placed a few weeks out so they always pass
// validation.
func Demo(ctx context.Context, users domain.UserRepository, events domain.EventRepository) error {
	roster := []*domain.User{
		domain.NewUser("admin", "System Administrator", "admin@campus.edu", domain.RoleAdmin),
		domain.NewUser("organizer1", "Nora Chapman", "organizer1@campus.edu", domain.RoleOrganizer),
		domain.NewUser("organizer2", "Tom Keller", "organizer2@campus.edu", domain.RoleOrganizer),
		domain.NewUser("organizer3", "Lena Hoang", "organizer3@campus.edu", domain.RoleOrganizer),
		domain.NewUser("student1", "Pat Vance", "student1@campus.edu", domain.RoleStudent),
		domain.NewUser("student2", "Hana Silva", "student2@campus.edu", domain.RoleStudent),
		domain.NewUser("student3", "Vu Minh", "student3@campus.edu", domain.RoleStudent),
		domain.NewUser("visitor1", "Dana Quist", "visitor1@company.com", domain.RoleVisitor),
		domain.NewUser("visitor2", "Bo Vernon", "visitor2@enterprise.org", domain.RoleVisitor),
	}
	for _, u := range roster {
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}

	var organizers []*domain.User
	var attendees []*domain.User
	for _, u := range roster {
		switch u.Role {
		case domain.RoleOrganizer:
			organizers = append(organizers, u)
		case domain.RoleStudent, domain.RoleVisitor:
			attendees = append(attendees, u)
		}
	}

	now := time.Now()
	defs := []struct {
		name        string
		description string
		daysAhead   int
		startTime   string
		location    string
		capacity    int
		organizer   *domain.User
		registered  int
	}{
		{
			name:        "AI Technology Conference",
			description: "Talks on current trends in applied machine learning, with speakers from industry and research",
			daysAhead:   21,
			startTime:   "14:00",
			location:    "Auditorium A, Science Building",
			capacity:    100,
			organizer:   organizers[0],
			registered:  4,
		},
		{
			name:        "Python Programming Workshop",
			description: "Hands-on programming workshop from basics to advanced topics, suitable for beginners",
			daysAhead:   26,
			startTime:   "09:00",
			location:    "Lab 201, Technology Building",
			capacity:    30,
			organizer:   organizers[1],
			registered:  1,
		},
		{
			name:        "Startup Open Day",
			description: "Networking event for students interested in founding companies, with invited entrepreneurs",
			daysAhead:   31,
			startTime:   "08:30",
			location:    "Campus Stadium",
			capacity:    200,
			organizer:   organizers[2],
			registered:  3,
		},
		{
			name:        "Career Development Seminar",
			description: "Soft skills, CV writing and interview practice for students close to graduation",
			daysAhead:   16,
			startTime:   "15:30",
			location:    "Seminar Room B, Administration Building",
			capacity:    80,
			organizer:   organizers[0],
			registered:  2,
		},
	}

	for _, def := range defs {
		event, err := domain.NewEvent(def.name, def.description, now.AddDate(0, 0, def.daysAhead),
			def.startTime, def.location, def.capacity, def.organizer.ID)
		if err != nil {
			return fmt.Errorf("seed event %q: %w", def.name, err)
		}
		for i := 0; i < def.registered && i < len(attendees); i++ {
			if err := event.AddAttendee(attendees[i].ID); err != nil {
				return fmt.Errorf("seed registration for %q: %w", def.name, err)
			}
		}
		if err := events.Create(ctx, event); err != nil {
			return fmt.Errorf("seed event %q: %w", def.name, err)
		}
	}
	return nil
}
