package domain

import "time"

// AppointmentStatus tracks the triage lifecycle of a request.
type AppointmentStatus string

const (
	AppointmentNew       AppointmentStatus = "new"
	AppointmentContacted AppointmentStatus = "contacted"
	AppointmentClosed    AppointmentStatus = "closed"
)

// ValidAppointmentStatus reports whether s is a known status.
func ValidAppointmentStatus(s AppointmentStatus) bool {
	switch s {
	case AppointmentNew, AppointmentContacted, AppointmentClosed:
		return true
	}
	return false
}

// AppointmentRequest is a visitor-submitted booking request.
type AppointmentRequest struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Email         string            `json:"email,omitempty"`
	Phone         string            `json:"phone"`
	PreferredDate string            `json:"preferred_date,omitempty"`
	PreferredTime string            `json:"preferred_time,omitempty"`
	Notes         string            `json:"notes,omitempty"`
	Status        AppointmentStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}
