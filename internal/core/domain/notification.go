package domain

// NotificationCounts summarises unhandled items across inboxes.
type NotificationCounts struct {
	AppointmentsNew int `json:"appointmentsNew"`
	InquiriesNew    int `json:"inquiriesNew"`
	FeedbackPending int `json:"feedbackPending"`
	TotalNew        int `json:"totalNew"`
}

// NotificationItem is one row in the admin notification feed.
type NotificationItem struct {
	Type      string `json:"type"`
	Tab       string `json:"tab"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// Notifications is the full admin notification payload.
type Notifications struct {
	Counts NotificationCounts `json:"counts"`
	Items  []NotificationItem `json:"items"`
}
