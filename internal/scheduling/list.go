package scheduling

import (
	"sort"
	"strings"

	"hospital-appointment-server/internal/models"
)

// Filter selects a slice of an appointment list. Filtering is a pure
// projection over an already-fetched list and never triggers a re-fetch.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterUpcoming  Filter = "upcoming"
	FilterApproved  Filter = "approved"
	FilterCancelled Filter = "cancelled"
	FilterRejected  Filter = "rejected"
	FilterCompleted Filter = "completed"
)

// ParseFilter maps a query value to a Filter, defaulting to FilterAll.
func ParseFilter(s string) Filter {
	switch Filter(strings.ToLower(s)) {
	case FilterUpcoming, FilterApproved, FilterCancelled, FilterRejected, FilterCompleted:
		return Filter(strings.ToLower(s))
	default:
		return FilterAll
	}
}

// Sort orders appointments by date descending, then time descending.
// Dates and times are ISO-formatted strings, so lexicographic order is
// chronological order.
func Sort(appointments []models.AppointmentDto) {
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date > appointments[j].Date
		}
		return appointments[i].Time > appointments[j].Time
	})
}

// Apply projects the list through the filter. "upcoming" keeps approved
// appointments dated today or later; the status filters keep exactly their
// status regardless of date.
func Apply(appointments []models.AppointmentDto, f Filter, today string) []models.AppointmentDto {
	if f == FilterAll {
		return appointments
	}
	out := make([]models.AppointmentDto, 0, len(appointments))
	for _, a := range appointments {
		switch f {
		case FilterUpcoming:
			if a.Status == models.StatusApproved && a.Date >= today {
				out = append(out, a)
			}
		case FilterApproved:
			if a.Status == models.StatusApproved {
				out = append(out, a)
			}
		case FilterCancelled:
			if a.Status == models.StatusCancelled {
				out = append(out, a)
			}
		case FilterRejected:
			if a.Status == models.StatusRejected {
				out = append(out, a)
			}
		case FilterCompleted:
			if a.Status == models.StatusCompleted {
				out = append(out, a)
			}
		}
	}
	return out
}
