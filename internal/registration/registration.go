// Package registration is the single source of truth for the role-aware
// registration form: which fields a role requires and the field-level rules
// that apply regardless of role. The register handler and the API client both
// derive their behavior from the same table.
package registration

import (
	"fmt"
	"regexp"
	"strings"

	"hospital-appointment-server/internal/models"
)

// Field names match the wire/form field names.
type Field string

const (
	FieldUsername        Field = "username"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldRole            Field = "role"
	FieldName            Field = "name"
	FieldAge             Field = "age"
	FieldContact         Field = "contact"
	FieldSpecialization  Field = "specialization"
	FieldAvailability    Field = "availability"
	FieldPhone           Field = "phone"
	FieldConsultationFee Field = "consultationFee"
)

// Request is the registration payload: base fields always required plus the
// superset of role-specific fields.
type Request struct {
	Username        string      `json:"username"`
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	Role            models.Role `json:"role"`
	Name            string      `json:"name,omitempty"`
	Age             *int        `json:"age,omitempty"`
	Contact         string      `json:"contact,omitempty"`
	Specialization  string      `json:"specialization,omitempty"`
	Availability    string      `json:"availability,omitempty"`
	Phone           string      `json:"phone,omitempty"`
	ConsultationFee *float64    `json:"consultationFee,omitempty"`
}

// requiredByRole maps each role to the role-specific fields it requires.
// Base fields (username, email, password, role) are required for every role.
var requiredByRole = map[models.Role][]Field{
	models.RolePatient: {FieldName, FieldAge, FieldContact},
	models.RoleDoctor:  {FieldName, FieldSpecialization, FieldPhone, FieldConsultationFee},
	models.RoleAdmin:   {},
}

// RequiredFields returns the role-specific required field set. Total over all
// inputs: unknown roles require nothing beyond the base fields.
func RequiredFields(role models.Role) []Field {
	fields, ok := requiredByRole[role]
	if !ok {
		return nil
	}
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// FieldError describes a single invalid or missing field.
type FieldError struct {
	Field   Field  `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z ]+$`)
	digitsTen    = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
	hasSymbol    = regexp.MustCompile(`[^A-Za-z0-9]`)
)

const (
	feeMin = 0.01
	feeMax = 50000
)

// Validate checks base rules on every provided field, then applies the
// role-specific required overlay. The returned slice is empty for a
// submittable request.
func Validate(req Request) []FieldError {
	var errs []FieldError

	add := func(field Field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	// Base fields, always required.
	if req.Username == "" {
		add(FieldUsername, "This field is required.")
	} else if len(req.Username) > 50 {
		add(FieldUsername, "Maximum length is 50.")
	}

	if req.Email == "" {
		add(FieldEmail, "This field is required.")
	} else if !emailPattern.MatchString(req.Email) {
		add(FieldEmail, "Please enter a valid email address.")
	}

	switch {
	case req.Password == "":
		add(FieldPassword, "This field is required.")
	case len(req.Password) < 6:
		add(FieldPassword, "Minimum length is 6.")
	case len(req.Password) > 30:
		add(FieldPassword, "Maximum length is 30.")
	case !hasDigit.MatchString(req.Password) || !hasSymbol.MatchString(req.Password):
		add(FieldPassword, "Password must include at least one number and one special character.")
	}

	switch req.Role {
	case "":
		add(FieldRole, "This field is required.")
	case models.RoleAdmin, models.RoleDoctor, models.RolePatient:
	default:
		add(FieldRole, "Role must be one of ADMIN, DOCTOR, PATIENT.")
	}

	// Field-level rules for provided optional fields, regardless of role.
	if req.Name != "" {
		if len(req.Name) > 50 {
			add(FieldName, "Maximum length is 50.")
		} else if !namePattern.MatchString(req.Name) {
			add(FieldName, "Only letters and spaces are allowed.")
		}
	}
	if req.Age != nil && (*req.Age < 1 || *req.Age > 150) {
		add(FieldAge, "Age must be between 1 and 150.")
	}
	if req.Contact != "" && !digitsTen.MatchString(req.Contact) {
		add(FieldContact, "Contact must be a 10-digit number.")
	}
	if req.Specialization != "" {
		if len(req.Specialization) > 100 {
			add(FieldSpecialization, "Maximum length is 100.")
		} else if !models.IsSpecialization(req.Specialization) {
			add(FieldSpecialization, "Specialization must be one of the listed specialties.")
		}
	}
	if req.Availability != "" && len(req.Availability) > 50 {
		add(FieldAvailability, "Maximum length is 50.")
	}
	if req.Phone != "" && !digitsTen.MatchString(req.Phone) {
		add(FieldPhone, "Phone must be a 10-digit number.")
	}
	if req.ConsultationFee != nil && (*req.ConsultationFee < feeMin || *req.ConsultationFee > feeMax) {
		add(FieldConsultationFee, fmt.Sprintf("Consultation fee must be between %g and %g.", float64(feeMin), float64(feeMax)))
	}

	// Required overlay from the role table.
	for _, field := range RequiredFields(req.Role) {
		if missing(req, field) {
			add(field, "This field is required.")
		}
	}

	return errs
}

func missing(req Request, field Field) bool {
	switch field {
	case FieldName:
		return req.Name == ""
	case FieldAge:
		return req.Age == nil
	case FieldContact:
		return req.Contact == ""
	case FieldSpecialization:
		return req.Specialization == ""
	case FieldAvailability:
		return req.Availability == ""
	case FieldPhone:
		return req.Phone == ""
	case FieldConsultationFee:
		return req.ConsultationFee == nil
	default:
		return false
	}
}

// IsSubmittable reports whether the request passes every rule currently in
// force for its role. Derived from the same table as Validate.
func IsSubmittable(req Request) bool {
	return len(Validate(req)) == 0
}

// ErrorMessage flattens field errors into a single user-facing message.
func ErrorMessage(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}
