package domain

import "time"

// FeedbackStatus tracks moderation state. Only published feedback is
// visible on the public site as a testimonial.
type FeedbackStatus string

const (
	FeedbackPending   FeedbackStatus = "pending"
	FeedbackPublished FeedbackStatus = "published"
	FeedbackRejected  FeedbackStatus = "rejected"
)

// ValidFeedbackStatus reports whether s is a known status.
func ValidFeedbackStatus(s FeedbackStatus) bool {
	switch s {
	case FeedbackPending, FeedbackPublished, FeedbackRejected:
		return true
	}
	return false
}

// Feedback is a visitor-submitted review with a 1–5 rating.
type Feedback struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email,omitempty"`
	Rating    int            `json:"rating"`
	Message   string         `json:"message"`
	Status    FeedbackStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
