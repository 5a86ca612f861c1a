package domain

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// FillBucket classifies an event by fill rate. The five buckets partition
// all events: full >=100%, near-full [80,100), medium [50,80), low (0,50),
// empty 0.
type FillBucket int

const (
	BucketEmpty FillBucket = iota
	BucketLow
	BucketMedium
	BucketNearFull
	BucketFull
)

// FillBuckets lists every bucket from empty to full.
var FillBuckets = []FillBucket{BucketEmpty, BucketLow, BucketMedium, BucketNearFull, BucketFull}

func (b FillBucket) String() string {
	switch b {
	case BucketFull:
		return "full (100%)"
	case BucketNearFull:
		return "near full (80-99%)"
	case BucketMedium:
		return "medium (50-79%)"
	case BucketLow:
		return "low (1-49%)"
	case BucketEmpty:
		return "empty (0%)"
	}
	return "unknown"
}

// Bucket returns the fill bucket the event falls into.
func (e *Event) Bucket() FillBucket {
	rate := e.FillRate()
	switch {
	case rate >= 1.0:
		return BucketFull
	case rate >= 0.8:
		return BucketNearFull
	case rate >= 0.5:
		return BucketMedium
	case rate > 0:
		return BucketLow
	default:
		return BucketEmpty
	}
}

// FillStatus is the coarse availability filter used by advanced search.
type FillStatus string

const (
	StatusAny       FillStatus = ""
	StatusFull      FillStatus = "full"
	StatusAvailable FillStatus = "available"
	StatusEmpty     FillStatus = "empty"
)

// SearchCriteria is a conjunction of optional filters. The zero value
// matches every event.
type SearchCriteria struct {
	Name         string     // case-insensitive substring
	Location     string     // case-insensitive substring
	DateFrom     *time.Time // inclusive
	DateTo       *time.Time // inclusive
	Status       FillStatus
	MinAttendees int
	MaxAttendees *int // nil = unbounded
}

// Matches reports whether the event satisfies every set criterion.
func (c SearchCriteria) Matches(e *Event) bool {
	if c.Name != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(c.Name)) {
		return false
	}
	if c.Location != "" && !strings.Contains(strings.ToLower(e.Location), strings.ToLower(c.Location)) {
		return false
	}
	if c.DateFrom != nil && e.Date.Before(dateOnly(*c.DateFrom)) {
		return false
	}
	if c.DateTo != nil && e.Date.After(dateOnly(*c.DateTo)) {
		return false
	}
	switch c.Status {
	case StatusFull:
		if !e.IsFull() {
			return false
		}
	case StatusAvailable:
		if e.IsFull() {
			return false
		}
	case StatusEmpty:
		if len(e.Attendees) > 0 {
			return false
		}
	}
	if len(e.Attendees) < c.MinAttendees {
		return false
	}
	if c.MaxAttendees != nil && len(e.Attendees) > *c.MaxAttendees {
		return false
	}
	return true
}

// Describe renders the criteria for report headers, e.g.
// "name contains 'tech' and from 2026-09-01 to 2026-09-30".
func (c SearchCriteria) Describe() string {
	var parts []string
	if c.Name != "" {
		parts = append(parts, fmt.Sprintf("name contains %q", c.Name))
	}
	if c.Location != "" {
		parts = append(parts, fmt.Sprintf("location contains %q", c.Location))
	}
	if c.DateFrom != nil || c.DateTo != nil {
		from, to := "any", "any"
		if c.DateFrom != nil {
			from = c.DateFrom.Format(DateLayout)
		}
		if c.DateTo != nil {
			to = c.DateTo.Format(DateLayout)
		}
		parts = append(parts, fmt.Sprintf("from %s to %s", from, to))
	}
	if c.Status != StatusAny {
		parts = append(parts, fmt.Sprintf("status %s", c.Status))
	}
	if c.MinAttendees > 0 || c.MaxAttendees != nil {
		if c.MaxAttendees != nil {
			parts = append(parts, fmt.Sprintf("between %d and %d attendees", c.MinAttendees, *c.MaxAttendees))
		} else {
			parts = append(parts, fmt.Sprintf("at least %d attendees", c.MinAttendees))
		}
	}
	if len(parts) == 0 {
		return "no criteria"
	}
	return strings.Join(parts, " and ")
}

// SearchService defines the stateless query engine. Results are sorted
// ascending by date; ties keep registry insertion order.
type SearchService interface {
	ByName(ctx context.Context, substr string) ([]*Event, error)
	ByLocation(ctx context.Context, substr string) ([]*Event, error)
	ByExactDate(ctx context.Context, date time.Time) ([]*Event, error)
	ByDateRange(ctx context.Context, start, end time.Time) ([]*Event, error)
	ByOrganizer(ctx context.Context, organizerID string) ([]*Event, error)
	ByFillBucket(ctx context.Context, bucket FillBucket) ([]*Event, error)
	Advanced(ctx context.Context, criteria SearchCriteria) ([]*Event, error)
}
