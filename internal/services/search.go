package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"campusevents/internal/domain"
)

type searchService struct {
	events domain.EventRepository
}

// NewSearchService creates the stateless query engine over the event
// store.
func NewSearchService(events domain.EventRepository) domain.SearchService {
	return &searchService{events: events}
}

func (s *searchService) ByName(ctx context.Context, substr string) ([]*domain.Event, error) {
	return s.find(ctx, domain.SearchCriteria{Name: substr})
}

func (s *searchService) ByLocation(ctx context.Context, substr string) ([]*domain.Event, error) {
	return s.find(ctx, domain.SearchCriteria{Location: substr})
}

func (s *searchService) ByExactDate(ctx context.Context, date time.Time) ([]*domain.Event, error) {
	return s.find(ctx, domain.SearchCriteria{DateFrom: &date, DateTo: &date})
}

func (s *searchService) ByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Event, error) {
	if start.After(end) {
		return nil, fmt.Errorf("%w: start date is after end date", domain.ErrValidation)
	}
	return s.find(ctx, domain.SearchCriteria{DateFrom: &start, DateTo: &end})
}

func (s *searchService) ByOrganizer(ctx context.Context, organizerID string) ([]*domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	found := []*domain.Event{}
	for _, e := range all {
		if e.OrganizerID == organizerID {
			found = append(found, e)
		}
	}
	sortByDate(found)
	return found, nil
}

func (s *searchService) ByFillBucket(ctx context.Context, bucket domain.FillBucket) ([]*domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	found := []*domain.Event{}
	for _, e := range all {
		if e.Bucket() == bucket {
			found = append(found, e)
		}
	}
	sortByDate(found)
	return found, nil
}

func (s *searchService) Advanced(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Event, error) {
	if criteria.DateFrom != nil && criteria.DateTo != nil && criteria.DateFrom.After(*criteria.DateTo) {
		return nil, fmt.Errorf("%w: start date is after end date", domain.ErrValidation)
	}
	return s.find(ctx, criteria)
}

func (s *searchService) find(ctx context.Context, criteria domain.SearchCriteria) ([]*domain.Event, error) {
	all, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	found := []*domain.Event{}
	for _, e := range all {
		if criteria.Matches(e) {
			found = append(found, e)
		}
	}
	sortByDate(found)
	return found, nil
}

// sortByDate orders results ascending by date. The sort is stable, so
// same-day events keep the registry's insertion order.
func sortByDate(events []*domain.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date.Before(events[j].Date)
	})
}
