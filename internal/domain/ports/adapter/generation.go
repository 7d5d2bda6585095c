package adapter

import (
	"context"

	"telegram-midjourney-bot/internal/domain/model"
)

// GenerationAdapter submits jobs to the remote generation service. The hash
// returned by the synchronous acceptance response is the job identifier later
// echoed by webhook notifications.
type GenerationAdapter interface {
	Imagine(ctx context.Context, prompt string) (hash string, err error)
	Act(ctx context.Context, action model.Action, hash, choice string) (newHash string, err error)
}
