package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"golang.org/x/text/encoding/unicode"

	"campusevents/internal/domain"
)

// statsLabels is one label set for the statistics report. The report is
// written twice with identical numbers: once with English labels and a
// UTF-8 BOM so Excel detects the encoding, and once with ASCII
// transliterated labels in plain UTF-8 for WPS Office.
type statsLabels struct {
	title         string
	totalEvents   string
	totalRegs     string
	avgPerEvent   string
	totalCapacity string
	fillRate      string
	mostPopular   string
	leastPopular  string
	byRole        string
	byOrganizer   string
	fillLevels    string
}

var (
	excelLabels = statsLabels{
		title:         "OVERVIEW STATISTICS",
		totalEvents:   "Total events",
		totalRegs:     "Total registrations",
		avgPerEvent:   "Average per event",
		totalCapacity: "Total capacity",
		fillRate:      "Overall fill rate",
		mostPopular:   "Most popular event",
		leastPopular:  "Least popular event",
		byRole:        "REGISTRATIONS BY ROLE",
		byOrganizer:   "EVENTS BY ORGANIZER",
		fillLevels:    "FILL LEVELS",
	}
	wpsLabels = statsLabels{
		title:         "THONG KE TONG QUAN",
		totalEvents:   "Tong so su kien",
		totalRegs:     "Tong so dang ky",
		avgPerEvent:   "Trung binh moi su kien",
		totalCapacity: "Tong suc chua",
		fillRate:      "Ty le lap day",
		mostPopular:   "Su kien dong nhat",
		leastPopular:  "Su kien vang nhat",
		byRole:        "DANG KY THEO VAI TRO",
		byOrganizer:   "SU KIEN THEO NGUOI TO CHUC",
		fillLevels:    "MUC DO LAP DAY",
	}
)

// SaveStatisticsReport writes the system statistics in both encodings and
// returns the Excel and WPS file paths.
func (x *Exporter) SaveStatisticsReport(stats *domain.SystemStats) (excelPath, wpsPath string, err error) {
	ts := x.now().Format(timestampLayout)
	excelPath = filepath.Join(x.dir, fmt.Sprintf("statistics_report_%s.csv", ts))
	wpsPath = filepath.Join(x.dir, fmt.Sprintf("statistics_report_WPS_%s.csv", ts))

	err = x.saveFile(excelPath, func(w io.Writer) error {
		bom := unicode.UTF8BOM.NewEncoder().Writer(w)
		return writeStatsRows(bom, stats, excelLabels)
	})
	if err != nil {
		return "", "", err
	}
	err = x.saveFile(wpsPath, func(w io.Writer) error {
		return writeStatsRows(w, stats, wpsLabels)
	})
	if err != nil {
		return "", "", err
	}
	return excelPath, wpsPath, nil
}

func writeStatsRows(w io.Writer, stats *domain.SystemStats, labels statsLabels) error {
	rows := [][]string{
		{labels.title},
		{labels.totalEvents, strconv.Itoa(stats.TotalEvents)},
		{labels.totalRegs, strconv.Itoa(stats.TotalAttendees)},
		{labels.avgPerEvent, formatFloat(stats.AverageAttendees)},
		{labels.totalCapacity, strconv.Itoa(stats.TotalCapacity)},
		{labels.fillRate, formatPercent(stats.FillRatePercent)},
	}
	if stats.MostPopular != nil {
		rows = append(rows, []string{labels.mostPopular, stats.MostPopular.Name, strconv.Itoa(stats.MostPopular.AttendeeCount())})
	}
	if stats.LeastPopular != nil {
		rows = append(rows, []string{labels.leastPopular, stats.LeastPopular.Name, strconv.Itoa(stats.LeastPopular.AttendeeCount())})
	}

	rows = append(rows, []string{""}, []string{labels.byRole})
	for _, rc := range stats.RoleBreakdown {
		rows = append(rows, []string{string(rc.Role), strconv.Itoa(rc.Count), formatPercent(rc.Percent)})
	}

	rows = append(rows, []string{""}, []string{labels.byOrganizer})
	for _, oc := range stats.OrganizerBreakdown {
		rows = append(rows, []string{oc.Name, strconv.Itoa(oc.Events), strconv.Itoa(oc.Attendees), formatFloat(oc.Average)})
	}

	rows = append(rows, []string{""}, []string{labels.fillLevels})
	for _, bucket := range domain.FillBuckets {
		rows = append(rows, []string{bucket.String(), strconv.Itoa(stats.Buckets[bucket])})
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("%w: write statistics report: %v", domain.ErrExport, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}
