package model

type NotificationStatus string

const (
	StatusDone     NotificationStatus = "done"
	StatusError    NotificationStatus = "error"
	StatusProgress NotificationStatus = "progress"
)

// Terminal reports whether this status ends the task's lifecycle.
func (s NotificationStatus) Terminal() bool {
	return s == StatusDone || s == StatusError
}

// NotificationResult carries the artifact location on status "done".
type NotificationResult struct {
	URL string `json:"url"`
}

// Notification is one inbound webhook payload from the generation service.
// Only Hash and Status are always present; the rest depends on the status.
type Notification struct {
	Hash         string              `json:"hash"`
	Status       NotificationStatus  `json:"status"`
	Type         string              `json:"type,omitempty"`
	Prompt       string              `json:"prompt,omitempty"`
	StatusReason string              `json:"status_reason,omitempty"`
	Progress     int                 `json:"progress,omitempty"`
	Result       *NotificationResult `json:"result,omitempty"`
}
