package models

// Specialization is one entry of the fixed medical specialty catalogue used to
// filter the doctor directory.
type Specialization struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var specializations = []Specialization{
	{Value: "GENERAL_PHYSICIAN", Label: "General Physician"},
	{Value: "PEDIATRICIAN", Label: "Pediatrician"},
	{Value: "CARDIOLOGIST", Label: "Cardiologist"},
	{Value: "DERMATOLOGIST", Label: "Dermatologist"},
	{Value: "NEUROLOGIST", Label: "Neurologist"},
	{Value: "PSYCHIATRIST", Label: "Psychiatrist"},
	{Value: "ORTHOPEDIC_SURGEON", Label: "Orthopedic Surgeon"},
	{Value: "GYNECOLOGIST", Label: "Gynecologist"},
	{Value: "ENT_SPECIALIST", Label: "ENT Specialist"},
	{Value: "ONCOLOGIST", Label: "Oncologist"},
	{Value: "UROLOGIST", Label: "Urologist"},
	{Value: "OPHTHALMOLOGIST", Label: "Ophthalmologist"},
	{Value: "GASTROENTEROLOGIST", Label: "Gastroenterologist"},
	{Value: "PULMONOLOGIST", Label: "Pulmonologist"},
	{Value: "ENDOCRINOLOGIST", Label: "Endocrinologist"},
	{Value: "RADIOLOGIST", Label: "Radiologist"},
	{Value: "DENTIST", Label: "Dentist"},
	{Value: "SURGEON", Label: "Surgeon"},
}

// Specializations returns the full specialty catalogue.
func Specializations() []Specialization {
	out := make([]Specialization, len(specializations))
	copy(out, specializations)
	return out
}

// SpecializationLabel returns the display label for a catalogue value, or the
// value itself when it is not part of the catalogue.
func SpecializationLabel(value string) string {
	for _, s := range specializations {
		if s.Value == value {
			return s.Label
		}
	}
	return value
}

// IsSpecialization reports whether value is part of the catalogue.
func IsSpecialization(value string) bool {
	for _, s := range specializations {
		if s.Value == value {
			return true
		}
	}
	return false
}
