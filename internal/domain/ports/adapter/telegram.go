// File: internal/domain/ports/adapter/telegram.go
package adapter

import "context"

type InlineButton struct {
	Text string
	Data string
	URL  string
}

// Messenger is the outbound chat surface. Use cases mutate chat messages
// through this port only; the concrete transport client is resolved at wiring
// time, never captured inside a pending task.
type Messenger interface {
	SendMessage(ctx context.Context, chatID int64, text string) (messageID int, err error)
	EditMessage(ctx context.Context, chatID int64, messageID int, text string) error
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	SendPhoto(ctx context.Context, chatID int64, path, caption string, rows [][]InlineButton) error
}
