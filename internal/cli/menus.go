package cli

import (
	"context"
	"fmt"

	"campusevents/internal/adapters/export"
	"campusevents/internal/domain"
)

func (s *menuSession) adminMenu(ctx context.Context, sess domain.Session) {
	for !s.eof {
		fmt.Fprintln(s.out, "\nADMIN MENU")
		fmt.Fprintln(s.out, "1. Create event")
		fmt.Fprintln(s.out, "2. Update event")
		fmt.Fprintln(s.out, "3. Delete event")
		fmt.Fprintln(s.out, "4. View all events")
		fmt.Fprintln(s.out, "5. System statistics")
		fmt.Fprintln(s.out, "6. Export data")
		fmt.Fprintln(s.out, "7. Check data integrity")
		fmt.Fprintln(s.out, "0. Back")

		switch s.prompt("choice") {
		case "1":
			s.createEvent(ctx, sess)
		case "2":
			s.updateEvent(ctx, sess)
		case "3":
			s.deleteEvent(ctx, sess)
		case "4":
			s.viewAllEvents(ctx)
		case "5":
			s.systemStats(ctx, sess)
		case "6":
			s.exportData(ctx, sess)
		case "7":
			s.checkIntegrity(ctx)
		case "0":
			return
		}
	}
}

func (s *menuSession) createEvent(ctx context.Context, sess domain.Session) {
	in := domain.CreateEventInput{
		Name:        s.prompt("name"),
		Description: s.prompt("description"),
		Date:        s.prompt("date (YYYY-MM-DD)"),
		Time:        s.prompt("time (HH:MM)"),
		Location:    s.prompt("location"),
	}
	capacity, ok := s.promptInt("max capacity")
	if !ok {
		return
	}
	in.MaxCapacity = capacity
	in.OrganizerID = s.prompt("organizer id (blank for yourself)")

	event, err := s.app.EventService.CreateEvent(ctx, sess, in)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "created event %s\n", event.ID)
	renderEventDetails(s.out, event)
}

func (s *menuSession) updateEvent(ctx context.Context, sess domain.Session) {
	eventID := s.prompt("event id")
	if eventID == "" {
		return
	}
	for !s.eof {
		fmt.Fprintln(s.out, "1. Name  2. Description  3. Date  4. Time  5. Location  6. Capacity  0. Done")
		var update domain.FieldUpdate
		switch s.prompt("field") {
		case "1":
			update = &domain.NameUpdate{Value: s.prompt("new name")}
		case "2":
			update = &domain.DescriptionUpdate{Value: s.prompt("new description")}
		case "3":
			update = &domain.DateUpdate{Value: s.prompt("new date (YYYY-MM-DD)")}
		case "4":
			update = &domain.TimeUpdate{Value: s.prompt("new time (HH:MM)")}
		case "5":
			update = &domain.LocationUpdate{Value: s.prompt("new location")}
		case "6":
			capacity, ok := s.promptInt("new capacity")
			if !ok {
				continue
			}
			update = &domain.CapacityUpdate{Value: capacity}
		case "0":
			return
		default:
			continue
		}

		event, err := s.app.EventService.UpdateEvent(ctx, sess, eventID, update)
		if err != nil {
			s.fail(err)
			continue
		}
		fmt.Fprintf(s.out, "updated %s\n", update.Field())
		renderEventDetails(s.out, event)
	}
}

func (s *menuSession) deleteEvent(ctx context.Context, sess domain.Session) {
	eventID := s.prompt("event id")
	if eventID == "" {
		return
	}
	impact, err := s.app.EventService.DeletionImpact(ctx, sess, eventID)
	if err != nil {
		s.fail(err)
		return
	}
	renderDeletionImpact(s.out, impact)

	confirm := domain.DeletionConfirmation{
		Phrase: s.prompt(`type "YES" to confirm`),
	}
	if impact.AttendeeCount > 0 {
		confirm.TypedName = s.prompt("type the exact event name to confirm")
	}

	report, err := s.app.EventService.DeleteEvent(ctx, sess, eventID, confirm)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "deleted %q, cancelled %d registrations\n", report.EventName, len(report.RemovedAttendees))
}

func (s *menuSession) viewAllEvents(ctx context.Context) {
	events, err := s.app.Events.List(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	renderEvents(s.out, events)
}

func (s *menuSession) systemStats(ctx context.Context, sess domain.Session) {
	stats, err := s.app.Stats.Overview(ctx, sess)
	if err != nil {
		s.fail(err)
		return
	}
	renderStats(s.out, stats)
}

func (s *menuSession) exportData(ctx context.Context, sess domain.Session) {
	events, err := s.app.Events.List(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	users, err := s.app.Users.List(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	for _, save := range []func() (string, error){
		func() (string, error) { return s.exporter.SaveEvents(events) },
		func() (string, error) { return s.exporter.SaveUsers(users) },
	} {
		path, err := save()
		if err != nil {
			s.fail(err)
			return
		}
		fmt.Fprintf(s.out, "wrote %s\n", path)
	}

	stats, err := s.app.Stats.Overview(ctx, sess)
	if err != nil {
		s.fail(err)
		return
	}
	excelPath, wpsPath, err := s.exporter.SaveStatisticsReport(stats)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "wrote %s\n", excelPath)
	fmt.Fprintf(s.out, "wrote %s\n", wpsPath)
}

func (s *menuSession) checkIntegrity(ctx context.Context) {
	issues, err := s.app.Stats.Integrity(ctx)
	if err != nil {
		s.fail(err)
		return
	}
	if len(issues) == 0 {
		fmt.Fprintln(s.out, "registry is consistent")
		return
	}
	for _, issue := range issues {
		fmt.Fprintln(s.out, issue)
	}
}

func (s *menuSession) organizerMenu(ctx context.Context, sess domain.Session, actor *domain.User) {
	for !s.eof {
		fmt.Fprintln(s.out, "\nORGANIZER MENU")
		fmt.Fprintln(s.out, "1. My events")
		fmt.Fprintln(s.out, "2. View event registrations")
		fmt.Fprintln(s.out, "3. Export attendee list")
		fmt.Fprintln(s.out, "4. Export detailed attendee report")
		fmt.Fprintln(s.out, "5. My statistics")
		fmt.Fprintln(s.out, "6. Export personal report")
		fmt.Fprintln(s.out, "0. Back")

		switch s.prompt("choice") {
		case "1":
			s.myEvents(ctx, sess)
		case "2":
			s.viewRegistrations(ctx, sess)
		case "3":
			s.exportAttendeeList(ctx, sess)
		case "4":
			s.exportAttendeeDetails(ctx, sess)
		case "5":
			s.organizerStats(ctx, sess, actor)
		case "6":
			s.exportPersonalReport(ctx, sess, actor)
		case "0":
			return
		}
	}
}

func (s *menuSession) myEvents(ctx context.Context, sess domain.Session) {
	events, err := s.app.Search.ByOrganizer(ctx, sess.ActorID)
	if err != nil {
		s.fail(err)
		return
	}
	renderEvents(s.out, events)
}

func (s *menuSession) viewRegistrations(ctx context.Context, sess domain.Session) {
	eventID := s.prompt("event id")
	if eventID == "" {
		return
	}
	attendees, err := s.app.Attendees.ListEventAttendees(ctx, sess, eventID)
	if err != nil {
		s.fail(err)
		return
	}
	renderAttendees(s.out, attendees)
}

func (s *menuSession) exportAttendeeList(ctx context.Context, sess domain.Session) {
	eventID := s.prompt("event id")
	if eventID == "" {
		return
	}
	event, err := s.app.Events.GetByID(ctx, eventID)
	if err != nil {
		s.fail(err)
		return
	}
	attendees, err := s.app.Attendees.ListEventAttendees(ctx, sess, eventID)
	if err != nil {
		s.fail(err)
		return
	}
	path, err := s.exporter.SaveAttendeeList(event, attendees)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "wrote %s\n", path)
}

func (s *menuSession) exportAttendeeDetails(ctx context.Context, sess domain.Session) {
	events, err := s.app.Search.ByOrganizer(ctx, sess.ActorID)
	if err != nil {
		s.fail(err)
		return
	}
	var rosters []export.EventRoster
	for _, e := range events {
		attendees, err := s.app.Attendees.ListEventAttendees(ctx, sess, e.ID)
		if err != nil {
			s.fail(err)
			return
		}
		rosters = append(rosters, export.EventRoster{Event: e, Attendees: attendees})
	}
	path, err := s.exporter.SaveAttendeeDetails(rosters)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "wrote %s\n", path)
}

func (s *menuSession) organizerStats(ctx context.Context, sess domain.Session, actor *domain.User) {
	report, err := s.app.Stats.OrganizerOverview(ctx, sess)
	if err != nil {
		s.fail(err)
		return
	}
	renderOrganizerReport(s.out, actor, report)
}

func (s *menuSession) exportPersonalReport(ctx context.Context, sess domain.Session, actor *domain.User) {
	report, err := s.app.Stats.OrganizerOverview(ctx, sess)
	if err != nil {
		s.fail(err)
		return
	}
	path, err := s.exporter.SavePersonalReport(actor, report)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "wrote %s\n", path)
}

func (s *menuSession) attendeeMenu(ctx context.Context, sess domain.Session) {
	for !s.eof {
		fmt.Fprintln(s.out, "\nEVENTS MENU")
		fmt.Fprintln(s.out, "1. Available events")
		fmt.Fprintln(s.out, "2. Search events")
		fmt.Fprintln(s.out, "3. Register for an event")
		fmt.Fprintln(s.out, "4. My registrations")
		fmt.Fprintln(s.out, "5. Cancel a registration")
		fmt.Fprintln(s.out, "0. Back")

		switch s.prompt("choice") {
		case "1":
			s.availableEvents(ctx, sess)
		case "2":
			s.searchMenu(ctx)
		case "3":
			s.register(ctx, sess)
		case "4":
			s.myRegistrations(ctx, sess)
		case "5":
			s.unregister(ctx, sess)
		case "0":
			return
		}
	}
}

func (s *menuSession) availableEvents(ctx context.Context, sess domain.Session) {
	events, err := s.app.Attendees.ListAvailableEvents(ctx, sess)
	if err != nil {
		s.fail(err)
		return
	}
	renderEvents(s.out, events)
}

func (s *menuSession) register(ctx context.Context, sess domain.Session) {
	eventID := s.prompt("event id")
	if eventID == "" {
		return
	}
	event, err := s.app.Attendees.Register(ctx, sess, eventID)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "registered for %q (%d/%d)\n", event.Name, event.AttendeeCount(), event.MaxCapacity)
}

func (s *menuSession) myRegistrations(ctx context.Context, sess domain.Session) {
	events, err := s.app.Attendees.ListMyEvents(ctx, sess)
	if err != nil {
		s.fail(err)
		return
	}
	renderEvents(s.out, events)
}

func (s *menuSession) unregister(ctx context.Context, sess domain.Session) {
	eventID := s.prompt("event id")
	if eventID == "" {
		return
	}
	removed, err := s.app.Attendees.Unregister(ctx, sess, eventID)
	if err != nil {
		s.fail(err)
		return
	}
	if removed {
		fmt.Fprintln(s.out, "registration cancelled")
	} else {
		fmt.Fprintln(s.out, "you were not registered for that event")
	}
}

func (s *menuSession) searchMenu(ctx context.Context) {
	fmt.Fprintln(s.out, "1. By name  2. By location  3. By date  4. By date range  5. Advanced")
	switch s.prompt("choice") {
	case "1":
		events, err := s.app.Search.ByName(ctx, s.prompt("name contains"))
		s.showResults(events, err)
	case "2":
		events, err := s.app.Search.ByLocation(ctx, s.prompt("location contains"))
		s.showResults(events, err)
	case "3":
		date, err := domain.ParseDate(s.prompt("date (YYYY-MM-DD)"))
		if err != nil {
			s.fail(err)
			return
		}
		events, err := s.app.Search.ByExactDate(ctx, date)
		s.showResults(events, err)
	case "4":
		start, err := domain.ParseDate(s.prompt("from (YYYY-MM-DD)"))
		if err != nil {
			s.fail(err)
			return
		}
		end, err := domain.ParseDate(s.prompt("to (YYYY-MM-DD)"))
		if err != nil {
			s.fail(err)
			return
		}
		events, err := s.app.Search.ByDateRange(ctx, start, end)
		s.showResults(events, err)
	case "5":
		s.advancedSearch(ctx)
	}
}

// advancedSearch builds a criteria conjunction from the prompts, blank
// answers meaning "any", and offers to export the results.
func (s *menuSession) advancedSearch(ctx context.Context) {
	criteria := domain.SearchCriteria{
		Name:     s.prompt("name contains (blank for any)"),
		Location: s.prompt("location contains (blank for any)"),
	}
	if raw := s.prompt("from date (blank for any)"); raw != "" {
		date, err := domain.ParseDate(raw)
		if err != nil {
			s.fail(err)
			return
		}
		criteria.DateFrom = &date
	}
	if raw := s.prompt("to date (blank for any)"); raw != "" {
		date, err := domain.ParseDate(raw)
		if err != nil {
			s.fail(err)
			return
		}
		criteria.DateTo = &date
	}
	switch s.prompt("status (full/available/empty, blank for any)") {
	case "full":
		criteria.Status = domain.StatusFull
	case "available":
		criteria.Status = domain.StatusAvailable
	case "empty":
		criteria.Status = domain.StatusEmpty
	}
	if raw := s.prompt("min attendees (blank for 0)"); raw != "" {
		n, err := parsePositive(raw)
		if err != nil {
			s.fail(err)
			return
		}
		criteria.MinAttendees = n
	}
	if raw := s.prompt("max attendees (blank for unlimited)"); raw != "" {
		n, err := parsePositive(raw)
		if err != nil {
			s.fail(err)
			return
		}
		criteria.MaxAttendees = &n
	}

	events, err := s.app.Search.Advanced(ctx, criteria)
	if err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintf(s.out, "search: %s\n", criteria.Describe())
	renderEvents(s.out, events)

	if len(events) > 0 && s.prompt("export results? (y/N)") == "y" {
		path, err := s.exporter.SaveSearchResults(criteria, events)
		if err != nil {
			s.fail(err)
			return
		}
		fmt.Fprintf(s.out, "wrote %s\n", path)
	}
}

func (s *menuSession) showResults(events []*domain.Event, err error) {
	if err != nil {
		s.fail(err)
		return
	}
	renderEvents(s.out, events)
}

func parsePositive(raw string) (int, error) {
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil || n < 0 {
		return 0, fmt.Errorf("%w: expected a non-negative number", domain.ErrValidation)
	}
	return n, nil
}
