package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"campusevents/internal/domain"
)

func renderEvents(w io.Writer, events []*domain.Event) {
	if len(events) == 0 {
		fmt.Fprintln(w, "no events")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tDATE\tTIME\tLOCATION\tREGISTERED\tSTATUS")
	for _, e := range events {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d/%d\t%s\n",
			e.ID, e.Name, e.Date.Format(domain.DateLayout), e.StartTime,
			e.Location, e.AttendeeCount(), e.MaxCapacity, e.Bucket())
	}
	tw.Flush()
}

func renderEventDetails(w io.Writer, e *domain.Event) {
	fmt.Fprintf(w, "%s\n", e.Name)
	fmt.Fprintf(w, "  id:          %s\n", e.ID)
	fmt.Fprintf(w, "  description: %s\n", e.Description)
	fmt.Fprintf(w, "  date:        %s at %s\n", e.Date.Format(domain.DateLayout), e.StartTime)
	fmt.Fprintf(w, "  location:    %s\n", e.Location)
	fmt.Fprintf(w, "  registered:  %d/%d (%s)\n", e.AttendeeCount(), e.MaxCapacity, e.Bucket())
	fmt.Fprintf(w, "  organizer:   %s\n", e.OrganizerID)
}

func renderAttendees(w io.Writer, attendees []domain.AttendeeInfo) {
	if len(attendees) == 0 {
		fmt.Fprintln(w, "no registrations")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tUSER ID\tNAME\tEMAIL\tROLE")
	for i, info := range attendees {
		if info.User != nil {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, info.UserID, info.User.FullName, info.User.Email, info.User.Role)
		} else {
			fmt.Fprintf(tw, "%d\t%s\t(unknown)\t\t\n", i+1, info.UserID)
		}
	}
	tw.Flush()
}

func renderStats(w io.Writer, stats *domain.SystemStats) {
	fmt.Fprintln(w, "SYSTEM STATISTICS")
	fmt.Fprintf(w, "  events:        %d\n", stats.TotalEvents)
	fmt.Fprintf(w, "  registrations: %d (avg %.1f per event)\n", stats.TotalAttendees, stats.AverageAttendees)
	fmt.Fprintf(w, "  capacity:      %d (%.1f%% filled)\n", stats.TotalCapacity, stats.FillRatePercent)
	if stats.MostPopular != nil {
		fmt.Fprintf(w, "  most popular:  %s (%d registered)\n", stats.MostPopular.Name, stats.MostPopular.AttendeeCount())
	}
	if stats.LeastPopular != nil {
		fmt.Fprintf(w, "  least popular: %s (%d registered)\n", stats.LeastPopular.Name, stats.LeastPopular.AttendeeCount())
	}

	fmt.Fprintln(w, "registrations by role:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, rc := range stats.RoleBreakdown {
		fmt.Fprintf(tw, "  %s\t%d\t%.1f%%\n", rc.Role, rc.Count, rc.Percent)
	}
	tw.Flush()

	fmt.Fprintln(w, "events by organizer:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, oc := range stats.OrganizerBreakdown {
		fmt.Fprintf(tw, "  %s\t%d events\t%d registered\tavg %.1f\n", oc.Name, oc.Events, oc.Attendees, oc.Average)
	}
	tw.Flush()

	fmt.Fprintln(w, "fill levels:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, bucket := range domain.FillBuckets {
		fmt.Fprintf(tw, "  %s\t%d\n", bucket, stats.Buckets[bucket])
	}
	tw.Flush()
}

func renderOrganizerReport(w io.Writer, organizer *domain.User, report *domain.OrganizerReport) {
	fmt.Fprintf(w, "STATISTICS FOR %s\n", organizer.FullName)
	fmt.Fprintf(w, "  events:        %d\n", report.TotalEvents)
	fmt.Fprintf(w, "  registrations: %d (avg %.1f per event)\n", report.TotalAttendees, report.AverageAttendees)
	fmt.Fprintf(w, "  capacity:      %d (%.1f%% filled)\n", report.TotalCapacity, report.FillRatePercent)
	if report.BestEvent != nil {
		fmt.Fprintf(w, "  best event:    %s (%d registered)\n", report.BestEvent.Name, report.BestEvent.AttendeeCount())
	}
	renderEvents(w, report.Events)
}

func renderDeletionImpact(w io.Writer, impact *domain.DeletionImpact) {
	fmt.Fprintf(w, "deleting %q (%s), %d registrations\n",
		impact.EventName, impact.EventDate.Format(domain.DateLayout), impact.AttendeeCount)
	for _, warning := range impact.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}
