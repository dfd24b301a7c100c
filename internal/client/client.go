// Package client is a Go consumer of the appointment REST API: a session
// store, the HTTP bindings for every endpoint, and the booking workflow built
// on top of them.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"hospital-appointment-server/internal/handlers"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/registration"
)

// APIError is a structured backend error; its message is surfaced to the user
// verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Server Error: %d", e.StatusCode)
}

// connectivityMessage is shown for transport-level failures, where no backend
// message exists.
const connectivityMessage = "Unable to connect to server. Please check your internet connection."

// Client talks to the appointment backend under a configurable base URL,
// attaching bearer authorization from the session store to every protected
// call.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Sessions   SessionStore
}

// New creates a Client with the default HTTP client.
func New(baseURL string, sessions SessionStore) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: http.DefaultClient,
		Sessions:   sessions,
	}
}

// RequireRole reads the session gate for a protected page: a missing session
// or a role mismatch both yield ErrNotAuthenticated.
func (c *Client) RequireRole(role models.Role) (*Session, error) {
	session, err := c.Sessions.Get()
	if err != nil {
		return nil, err
	}
	if session == nil || session.AccessToken == "" || session.Role != role {
		return nil, ErrNotAuthenticated
	}
	return session, nil
}

// Login authenticates and stores the resulting session.
func (c *Client) Login(ctx context.Context, username, password string) (*handlers.AuthResponse, error) {
	var resp handlers.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil,
		handlers.LoginRequest{Username: username, Password: password}, &resp, false)
	if err != nil {
		return nil, err
	}
	if err := c.storeSession(&resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register submits a registration after local validation. Patient
// registrations that return a token are authenticated immediately; doctor and
// admin signups stay pending and no session is created.
func (c *Client) Register(ctx context.Context, req registration.Request) (*handlers.AuthResponse, error) {
	if errs := registration.Validate(req); len(errs) > 0 {
		return nil, &APIError{StatusCode: 0, Message: registration.ErrorMessage(errs)}
	}
	var resp handlers.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &resp, false); err != nil {
		return nil, err
	}
	if resp.AccessToken != "" && resp.Role == models.RolePatient {
		if err := c.storeSession(&resp); err != nil {
			return nil, err
		}
	}
	return &resp, nil
}

// Logout destroys the stored session.
func (c *Client) Logout() error {
	return c.Sessions.Clear()
}

// Me fetches the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*handlers.UserProfile, error) {
	var profile handlers.UserProfile
	if err := c.do(ctx, http.MethodGet, "/user/me", nil, nil, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Doctors fetches the doctor directory, optionally filtered by specialization.
func (c *Client) Doctors(ctx context.Context, specialization string) ([]models.DoctorDto, error) {
	query := url.Values{}
	if specialization != "" {
		query.Set("specialization", specialization)
	}
	var doctors []models.DoctorDto
	if err := c.do(ctx, http.MethodGet, "/doctors", query, nil, &doctors, true); err != nil {
		return nil, err
	}
	return doctors, nil
}

// Doctor fetches a single doctor profile.
func (c *Client) Doctor(ctx context.Context, doctorID uint) (*models.DoctorDto, error) {
	var doctor models.DoctorDto
	path := fmt.Sprintf("/doctors/%d", doctorID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &doctor, true); err != nil {
		return nil, err
	}
	return &doctor, nil
}

// Specializations fetches the specialty catalogue.
func (c *Client) Specializations(ctx context.Context) ([]models.Specialization, error) {
	var specs []models.Specialization
	if err := c.do(ctx, http.MethodGet, "/specializations", nil, nil, &specs, false); err != nil {
		return nil, err
	}
	return specs, nil
}

// Slots fetches the open and taken times for a (doctor, date) pair.
func (c *Client) Slots(ctx context.Context, doctorID uint, date string) (*handlers.SlotsResponse, error) {
	query := url.Values{}
	query.Set("doctorId", strconv.FormatUint(uint64(doctorID), 10))
	query.Set("date", date)
	var slots handlers.SlotsResponse
	if err := c.do(ctx, http.MethodGet, "/appointments/slots", query, nil, &slots, true); err != nil {
		return nil, err
	}
	return &slots, nil
}

// CreateAppointment books an appointment.
func (c *Client) CreateAppointment(ctx context.Context, req handlers.CreateAppointmentRequest) (*models.AppointmentDto, error) {
	var appointment models.AppointmentDto
	if err := c.do(ctx, http.MethodPost, "/appointments", nil, req, &appointment, true); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// Appointments fetches every appointment (admin only).
func (c *Client) Appointments(ctx context.Context) ([]models.AppointmentDto, error) {
	var appointments []models.AppointmentDto
	if err := c.do(ctx, http.MethodGet, "/appointments", nil, nil, &appointments, true); err != nil {
		return nil, err
	}
	return appointments, nil
}

// Appointment fetches a single appointment.
func (c *Client) Appointment(ctx context.Context, id uint) (*models.AppointmentDto, error) {
	var appointment models.AppointmentDto
	path := fmt.Sprintf("/appointments/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &appointment, true); err != nil {
		return nil, err
	}
	return &appointment, nil
}

// PatientAppointments fetches a patient's appointments, newest first.
func (c *Client) PatientAppointments(ctx context.Context, patientID uint) ([]models.AppointmentDto, error) {
	var appointments []models.AppointmentDto
	path := fmt.Sprintf("/appointments/patient/%d", patientID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &appointments, true); err != nil {
		return nil, err
	}
	return appointments, nil
}

// DoctorAppointments fetches a doctor's appointments, newest first.
func (c *Client) DoctorAppointments(ctx context.Context, doctorID uint) ([]models.AppointmentDto, error) {
	var appointments []models.AppointmentDto
	path := fmt.Sprintf("/appointments/doctor/%d", doctorID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &appointments, true); err != nil {
		return nil, err
	}
	return appointments, nil
}

// Patient fetches a patient profile, used to resolve display names on the
// doctor's appointment view.
func (c *Client) Patient(ctx context.Context, patientID uint) (*models.PatientDto, error) {
	var patient models.PatientDto
	path := fmt.Sprintf("/patients/%d", patientID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &patient, true); err != nil {
		return nil, err
	}
	return &patient, nil
}

// CancelAppointment cancels an appointment.
func (c *Client) CancelAppointment(ctx context.Context, id uint) (*models.AppointmentDto, error) {
	return c.putStatus(ctx, id, "cancel", nil)
}

// ApproveAppointment approves a pending appointment.
func (c *Client) ApproveAppointment(ctx context.Context, id uint) (*models.AppointmentDto, error) {
	return c.putStatus(ctx, id, "approve", nil)
}

// RejectAppointment rejects a pending appointment.
func (c *Client) RejectAppointment(ctx context.Context, id uint) (*models.AppointmentDto, error) {
	return c.putStatus(ctx, id, "reject", nil)
}

// UpdateAppointmentStatus applies a generic status transition.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id uint, status models.AppointmentStatus) (*models.AppointmentDto, error) {
	return c.putStatus(ctx, id, "status", handlers.UpdateStatusRequest{Status: status})
}

func (c *Client) putStatus(ctx context.Context, id uint, action string, body interface{}) (*models.AppointmentDto, error) {
	var appointment models.AppointmentDto
	path := fmt.Sprintf("/appointments/%d/%s", id, action)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &appointment, true); err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (c *Client) storeSession(resp *handlers.AuthResponse) error {
	return c.Sessions.Set(&Session{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		Role:        resp.Role,
		Username:    resp.Username,
		Email:       resp.Email,
		UserID:      resp.UserID,
	})
}

// do performs one request/response exchange. Transport failures map to the
// generic connectivity message; error statuses decode the backend's message
// field.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, authed bool) error {
	var session *Session
	if authed {
		var err error
		session, err = c.Sessions.Get()
		if err != nil {
			return err
		}
		if session == nil || session.AccessToken == "" {
			return ErrNotAuthenticated
		}
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		tokenType := session.TokenType
		if tokenType == "" {
			tokenType = "Bearer"
		}
		req.Header.Set("Authorization", tokenType+" "+session.AccessToken)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return &APIError{StatusCode: 0, Message: connectivityMessage}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: 0, Message: connectivityMessage}
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &apiErr); err == nil && apiErr.Message != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("Server Error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))}
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
