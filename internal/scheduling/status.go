// Package scheduling holds the appointment workflow rules shared by the HTTP
// handlers and the API client: status transitions, action eligibility, slot
// computation and list projections.
package scheduling

import (
	"strings"

	"hospital-appointment-server/internal/models"
)

// transitions is the one-directional status machine. CANCELLED, REJECTED and
// COMPLETED are terminal.
var transitions = map[models.AppointmentStatus][]models.AppointmentStatus{
	models.StatusPending:  {models.StatusApproved, models.StatusRejected, models.StatusCancelled},
	models.StatusApproved: {models.StatusCancelled, models.StatusCompleted},
}

// CanTransition reports whether an appointment may move from one status to another.
func CanTransition(from, to models.AppointmentStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether a status admits no further transitions.
func IsTerminal(s models.AppointmentStatus) bool {
	return len(transitions[s]) == 0
}

// CanCancel reports whether a patient may cancel an appointment in this status.
func CanCancel(s models.AppointmentStatus) bool {
	return s == models.StatusPending || s == models.StatusApproved
}

// CanReschedule reports whether a patient may request a reschedule.
// Only approved appointments qualify.
func CanReschedule(s models.AppointmentStatus) bool {
	return s == models.StatusApproved
}

// CanApprove reports whether a doctor may approve an appointment in this status.
func CanApprove(s models.AppointmentStatus) bool {
	return s == models.StatusPending
}

// CanReject reports whether a doctor may reject an appointment in this status.
func CanReject(s models.AppointmentStatus) bool {
	return s == models.StatusPending
}

// CanComplete reports whether a doctor may mark an appointment completed.
func CanComplete(s models.AppointmentStatus) bool {
	return s == models.StatusApproved
}

// StatusClass maps a status to its display class. Unrecognized statuses fall
// back to "status-unknown" rather than failing.
func StatusClass(status string) string {
	switch strings.ToLower(status) {
	case "pending":
		return "status-pending"
	case "approved":
		return "status-approved"
	case "cancelled":
		return "status-cancelled"
	case "rejected":
		return "status-rejected"
	case "completed":
		return "status-completed"
	default:
		return "status-unknown"
	}
}

// StatusIcon maps a status to its display icon, with an unknown fallback.
func StatusIcon(status string) string {
	switch strings.ToLower(status) {
	case "pending":
		return "fa-clock"
	case "approved":
		return "fa-check-circle"
	case "cancelled":
		return "fa-times-circle"
	case "rejected":
		return "fa-ban"
	case "completed":
		return "fa-check-double"
	default:
		return "fa-question-circle"
	}
}
