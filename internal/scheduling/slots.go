package scheduling

// clinicTimes is the fixed half-hourly consultation grid: a morning block and
// an afternoon block.
var clinicTimes = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"14:00", "14:30", "15:00", "15:30", "16:00", "16:30",
}

// ClinicTimes returns the full consultation time grid.
func ClinicTimes() []string {
	out := make([]string, len(clinicTimes))
	copy(out, clinicTimes)
	return out
}

// IsClinicTime reports whether t is one of the bookable clinic times.
func IsClinicTime(t string) bool {
	for _, ct := range clinicTimes {
		if ct == t {
			return true
		}
	}
	return false
}

// AvailableSlots returns the clinic times not present in booked, preserving
// grid order.
func AvailableSlots(booked []string) []string {
	taken := make(map[string]bool, len(booked))
	for _, b := range booked {
		taken[b] = true
	}
	available := make([]string, 0, len(clinicTimes))
	for _, t := range clinicTimes {
		if !taken[t] {
			available = append(available, t)
		}
	}
	return available
}
