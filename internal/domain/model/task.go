package model

import "time"

// PendingTask links an in-flight generation job to the chat interaction that
// must be updated when its notifications arrive. Immutable once registered;
// the hash is the sole correlation key because one user can have several jobs
// in flight at the same time.
type PendingTask struct {
	Hash      string
	ChatID    int64
	UserID    int64
	MessageID int // the "processing" placeholder message
	CreatedAt time.Time
}

// CompletedTask is what we keep about a finished job so /status and follow-up
// actions can refer back to it.
type CompletedTask struct {
	Type     string
	ImageURL string
	Prompt   string
}
