// Package export serializes registry snapshots and reports to CSV files.
// Events and users round-trip through Read functions; reports are
// write-only.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"campusevents/internal/domain"
)

const timestampLayout = "20060102_150405"

var (
	eventHeader = []string{"event_id", "name", "description", "date", "time", "location", "max_capacity", "organizer_id", "attendees"}
	userHeader  = []string{"user_id", "username", "full_name", "email", "role"}
)

// Exporter writes CSV snapshots and reports into a directory.
type Exporter struct {
	dir string
	now func() time.Time
}

// NewExporter creates an Exporter that writes into dir.
func NewExporter(dir string) *Exporter {
	return &Exporter{dir: dir, now: time.Now}
}

// WriteEvents writes the events snapshot to w. Attendee IDs are joined
// with ';' in registration order.
func (x *Exporter) WriteEvents(w io.Writer, events []*domain.Event) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(eventHeader); err != nil {
		return fmt.Errorf("%w: write events header: %v", domain.ErrExport, err)
	}
	for _, e := range events {
		row := []string{
			e.ID,
			e.Name,
			e.Description,
			e.Date.Format(domain.DateLayout),
			e.StartTime,
			e.Location,
			strconv.Itoa(e.MaxCapacity),
			e.OrganizerID,
			strings.Join(e.Attendees, ";"),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: write event %s: %v", domain.ErrExport, e.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: flush events: %v", domain.ErrExport, err)
	}
	return nil
}

// ReadEvents parses an events snapshot written by WriteEvents.
func (x *Exporter) ReadEvents(r io.Reader) ([]*domain.Event, error) {
	rows, err := readRows(r, eventHeader)
	if err != nil {
		return nil, err
	}
	events := make([]*domain.Event, 0, len(rows))
	for i, row := range rows {
		capacity, err := strconv.Atoi(row[6])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad capacity %q", domain.ErrExport, i+2, row[6])
		}
		date, err := time.Parse(domain.DateLayout, row[3])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: bad date %q", domain.ErrExport, i+2, row[3])
		}
		var attendees []string
		if row[8] != "" {
			attendees = strings.Split(row[8], ";")
		}
		events = append(events, &domain.Event{
			ID:          row[0],
			Name:        row[1],
			Description: row[2],
			Date:        date,
			StartTime:   row[4],
			Location:    row[5],
			MaxCapacity: capacity,
			OrganizerID: row[7],
			Attendees:   attendees,
		})
	}
	return events, nil
}

// WriteUsers writes the users snapshot to w.
func (x *Exporter) WriteUsers(w io.Writer, users []*domain.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(userHeader); err != nil {
		return fmt.Errorf("%w: write users header: %v", domain.ErrExport, err)
	}
	for _, u := range users {
		row := []string{u.ID, u.Username, u.FullName, u.Email, string(u.Role)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%w: write user %s: %v", domain.ErrExport, u.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%w: flush users: %v", domain.ErrExport, err)
	}
	return nil
}

// ReadUsers parses a users snapshot written by WriteUsers.
func (x *Exporter) ReadUsers(r io.Reader) ([]*domain.User, error) {
	rows, err := readRows(r, userHeader)
	if err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(rows))
	for i, row := range rows {
		role, err := domain.ParseRole(row[4])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: unknown role %q", domain.ErrExport, i+2, row[4])
		}
		users = append(users, &domain.User{
			ID:       row[0],
			Username: row[1],
			FullName: row[2],
			Email:    row[3],
			Role:     role,
		})
	}
	return users, nil
}

// SaveEvents writes events.csv in the export directory and returns its
// path.
func (x *Exporter) SaveEvents(events []*domain.Event) (string, error) {
	path := filepath.Join(x.dir, "events.csv")
	return path, x.saveFile(path, func(w io.Writer) error {
		return x.WriteEvents(w, events)
	})
}

// SaveUsers writes users.csv in the export directory and returns its path.
func (x *Exporter) SaveUsers(users []*domain.User) (string, error) {
	path := filepath.Join(x.dir, "users.csv")
	return path, x.saveFile(path, func(w io.Writer) error {
		return x.WriteUsers(w, users)
	})
}

// SaveSearchResults writes the matched events with a criteria description
// header and returns the file path.
func (x *Exporter) SaveSearchResults(criteria domain.SearchCriteria, events []*domain.Event) (string, error) {
	name := fmt.Sprintf("search_results_%s.csv", x.now().Format(timestampLayout))
	path := filepath.Join(x.dir, name)
	err := x.saveFile(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"search criteria", criteria.Describe()}); err != nil {
			return fmt.Errorf("%w: write criteria header: %v", domain.ErrExport, err)
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return fmt.Errorf("%w: flush criteria header: %v", domain.ErrExport, err)
		}
		return x.WriteEvents(w, events)
	})
	return path, err
}

// SaveAttendeeList writes one event's resolved roster and returns the file
// path. Dangling IDs appear with an empty user part.
func (x *Exporter) SaveAttendeeList(event *domain.Event, attendees []domain.AttendeeInfo) (string, error) {
	name := fmt.Sprintf("attendees_%s_%s.csv", event.ID, x.now().Format(timestampLayout))
	path := filepath.Join(x.dir, name)
	err := x.saveFile(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		rows := [][]string{
			{"event", event.Name, event.Date.Format(domain.DateLayout), event.Location},
			userHeader,
		}
		rows = append(rows, attendeeRows(attendees)...)
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("%w: write attendee list: %v", domain.ErrExport, err)
		}
		return nil
	})
	return path, err
}

// EventRoster pairs an event with its resolved roster, for the detailed
// attendee report.
type EventRoster struct {
	Event     *domain.Event
	Attendees []domain.AttendeeInfo
}

// SaveAttendeeDetails writes one section per event, each with the event
// line, a roster header, and the resolved attendees.
func (x *Exporter) SaveAttendeeDetails(rosters []EventRoster) (string, error) {
	name := fmt.Sprintf("attendee_details_%s.csv", x.now().Format(timestampLayout))
	path := filepath.Join(x.dir, name)
	err := x.saveFile(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		var rows [][]string
		for i, roster := range rosters {
			if i > 0 {
				rows = append(rows, []string{""})
			}
			e := roster.Event
			rows = append(rows,
				[]string{"event", e.Name, e.Date.Format(domain.DateLayout), e.Location},
				[]string{"registered", strconv.Itoa(e.AttendeeCount()), "capacity", strconv.Itoa(e.MaxCapacity)},
				userHeader,
			)
			rows = append(rows, attendeeRows(roster.Attendees)...)
		}
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("%w: write attendee details: %v", domain.ErrExport, err)
		}
		return nil
	})
	return path, err
}

// SavePersonalReport writes an organizer's personal statistics and event
// list, returning the file path.
func (x *Exporter) SavePersonalReport(organizer *domain.User, report *domain.OrganizerReport) (string, error) {
	name := fmt.Sprintf("organizer_report_%s.csv", x.now().Format(timestampLayout))
	path := filepath.Join(x.dir, name)
	err := x.saveFile(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		rows := [][]string{
			{"ORGANIZER REPORT", organizer.FullName},
			{"Total events", strconv.Itoa(report.TotalEvents)},
			{"Total registrations", strconv.Itoa(report.TotalAttendees)},
			{"Average per event", formatFloat(report.AverageAttendees)},
			{"Total capacity", strconv.Itoa(report.TotalCapacity)},
			{"Fill rate", formatPercent(report.FillRatePercent)},
		}
		if report.BestEvent != nil {
			rows = append(rows, []string{"Best event", report.BestEvent.Name, strconv.Itoa(report.BestEvent.AttendeeCount())})
		}
		rows = append(rows, []string{""}, []string{"name", "date", "registered", "capacity", "fill"})
		for _, e := range report.Events {
			rows = append(rows, []string{
				e.Name,
				e.Date.Format(domain.DateLayout),
				strconv.Itoa(e.AttendeeCount()),
				strconv.Itoa(e.MaxCapacity),
				formatPercent(e.FillRate() * 100),
			})
		}
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("%w: write organizer report: %v", domain.ErrExport, err)
		}
		return nil
	})
	return path, err
}

func attendeeRows(attendees []domain.AttendeeInfo) [][]string {
	rows := make([][]string, 0, len(attendees))
	for _, info := range attendees {
		if info.User != nil {
			u := info.User
			rows = append(rows, []string{u.ID, u.Username, u.FullName, u.Email, string(u.Role)})
		} else {
			rows = append(rows, []string{info.UserID, "", "", "", ""})
		}
	}
	return rows
}

func (x *Exporter) saveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", domain.ErrExport, path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", domain.ErrExport, path, err)
	}
	return nil
}

func readRows(r io.Reader, header []string) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(header)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse csv: %v", domain.ErrExport, err)
	}
	if len(rows) == 0 || !equalRow(rows[0], header) {
		return nil, fmt.Errorf("%w: unexpected header", domain.ErrExport)
	}
	return rows[1:], nil
}

func equalRow(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
