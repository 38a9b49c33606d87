package domain

import "time"

// InquiryStatus tracks whether an inquiry has been handled.
type InquiryStatus string

const (
	InquiryNew      InquiryStatus = "new"
	InquiryRead     InquiryStatus = "read"
	InquiryResolved InquiryStatus = "resolved"
)

// ValidInquiryStatus reports whether s is a known status.
func ValidInquiryStatus(s InquiryStatus) bool {
	switch s {
	case InquiryNew, InquiryRead, InquiryResolved:
		return true
	}
	return false
}

// ContactInquiry is a visitor-submitted contact message.
type ContactInquiry struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email,omitempty"`
	Phone     string        `json:"phone,omitempty"`
	Source    string        `json:"source,omitempty"`
	Message   string        `json:"message"`
	Status    InquiryStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}
