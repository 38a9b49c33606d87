package domain

import "time"

// Testimonial is a patient story shown on the public site. Unpublished
// entries are only visible through the admin endpoints.
type Testimonial struct {
	ID                string    `json:"id"`
	PatientName       string    `json:"patient_name"`
	Age               int       `json:"age,omitempty"`
	Category          string    `json:"category"`
	Quote             string    `json:"quote"`
	OutcomeLabel      string    `json:"outcome_label,omitempty"`
	TreatmentDuration string    `json:"treatment_duration,omitempty"`
	Published         bool      `json:"published"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
