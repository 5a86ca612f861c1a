package services

import (
	"context"
	"fmt"
	"sort"

	"campusevents/internal/domain"
)

type statsService struct {
	events domain.EventRepository
	users  domain.UserRepository
}

// NewStatsService creates the read-only aggregation engine. Reports are
// recomputed on every call; the registry is small and single-session.
func NewStatsService(events domain.EventRepository, users domain.UserRepository) domain.StatsService {
	return &statsService{events: events, users: users}
}

func (s *statsService) Overview(ctx context.Context, sess domain.Session) (*domain.SystemStats, error) {
	if sess.Role != domain.RoleAdmin {
		return nil, fmt.Errorf("%w: only admins may view system statistics", domain.ErrForbidden)
	}
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	stats := &domain.SystemStats{
		TotalEvents: len(events),
		Buckets:     make(map[domain.FillBucket]int),
	}
	for _, e := range events {
		stats.TotalAttendees += e.AttendeeCount()
		stats.TotalCapacity += e.MaxCapacity
		stats.Buckets[e.Bucket()]++
	}
	if stats.TotalEvents > 0 {
		stats.AverageAttendees = float64(stats.TotalAttendees) / float64(stats.TotalEvents)
	}
	if stats.TotalCapacity > 0 {
		stats.FillRatePercent = float64(stats.TotalAttendees) / float64(stats.TotalCapacity) * 100
	}

	// Extremes: first encountered wins on ties, in registry order.
	for _, e := range events {
		if stats.MostPopular == nil || e.AttendeeCount() > stats.MostPopular.AttendeeCount() {
			stats.MostPopular = e
		}
		if stats.LeastPopular == nil || e.AttendeeCount() < stats.LeastPopular.AttendeeCount() {
			stats.LeastPopular = e
		}
	}

	stats.RoleBreakdown = roleBreakdown(events, users)
	stats.OrganizerBreakdown = organizerBreakdown(events, users)
	return stats, nil
}

func (s *statsService) OrganizerOverview(ctx context.Context, sess domain.Session) (*domain.OrganizerReport, error) {
	if sess.Role != domain.RoleOrganizer {
		return nil, fmt.Errorf("%w: only event organizers may view personal statistics", domain.ErrForbidden)
	}
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	report := &domain.OrganizerReport{OrganizerID: sess.ActorID}
	for _, e := range all {
		if e.OrganizerID != sess.ActorID {
			continue
		}
		report.Events = append(report.Events, e)
		report.TotalEvents++
		report.TotalAttendees += e.AttendeeCount()
		report.TotalCapacity += e.MaxCapacity
		if report.BestEvent == nil || e.AttendeeCount() > report.BestEvent.AttendeeCount() {
			report.BestEvent = e
		}
	}
	if report.TotalEvents > 0 {
		report.AverageAttendees = float64(report.TotalAttendees) / float64(report.TotalEvents)
	}
	if report.TotalCapacity > 0 {
		report.FillRatePercent = float64(report.TotalAttendees) / float64(report.TotalCapacity) * 100
	}
	return report, nil
}

func (s *statsService) Integrity(ctx context.Context) ([]string, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	var issues []string
	for _, e := range events {
		if _, err := s.users.GetByID(ctx, e.OrganizerID); err != nil {
			issues = append(issues, fmt.Sprintf("event %s references unknown organizer %s", e.ID, e.OrganizerID))
		}
		for _, id := range e.Attendees {
			if _, err := s.users.GetByID(ctx, id); err != nil {
				issues = append(issues, fmt.Sprintf("event %s references unknown attendee %s", e.ID, id))
			}
		}
	}
	return issues, nil
}

func roleBreakdown(events []*domain.Event, users []*domain.User) []domain.RoleCount {
	roleOf := make(map[string]domain.Role, len(users))
	for _, u := range users {
		roleOf[u.ID] = u.Role
	}

	counts := make(map[domain.Role]int)
	total := 0
	for _, e := range events {
		for _, id := range e.Attendees {
			role, ok := roleOf[id]
			if !ok {
				continue
			}
			counts[role]++
			total++
		}
	}

	out := make([]domain.RoleCount, 0, len(domain.Roles))
	for _, role := range domain.Roles {
		rc := domain.RoleCount{Role: role, Count: counts[role]}
		if total > 0 {
			rc.Percent = float64(rc.Count) / float64(total) * 100
		}
		out = append(out, rc)
	}
	return out
}

func organizerBreakdown(events []*domain.Event, users []*domain.User) []domain.OrganizerCount {
	nameOf := make(map[string]string, len(users))
	for _, u := range users {
		nameOf[u.ID] = u.FullName
	}

	byOrganizer := make(map[string]*domain.OrganizerCount)
	var order []string
	for _, e := range events {
		oc, ok := byOrganizer[e.OrganizerID]
		if !ok {
			name := nameOf[e.OrganizerID]
			if name == "" {
				name = "Unknown"
			}
			oc = &domain.OrganizerCount{OrganizerID: e.OrganizerID, Name: name}
			byOrganizer[e.OrganizerID] = oc
			order = append(order, e.OrganizerID)
		}
		oc.Events++
		oc.Attendees += e.AttendeeCount()
	}

	out := make([]domain.OrganizerCount, 0, len(order))
	for _, id := range order {
		oc := byOrganizer[id]
		if oc.Events > 0 {
			oc.Average = float64(oc.Attendees) / float64(oc.Events)
		}
		out = append(out, *oc)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Attendees > out[j].Attendees })
	return out
}
