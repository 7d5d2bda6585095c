// File: internal/usecase/dispatch_uc.go
package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"telegram-midjourney-bot/internal/domain"
	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/domain/ports/adapter"
	"telegram-midjourney-bot/internal/domain/ports/repository"
)

// Compile-time check
var _ DispatchUseCase = (*dispatchUC)(nil)

// DispatchUseCase consumes inbound webhook notifications and transitions the
// referenced pending task. Unknown hashes return ErrNotFound, which callers
// must treat as a silent acknowledgment, never as a transport-level failure:
// the generation service may retry deliveries we already processed.
type DispatchUseCase interface {
	Dispatch(ctx context.Context, n model.Notification) error
}

type dispatchUC struct {
	registry repository.TaskRegistry
	history  repository.TaskHistory
	msgr     adapter.Messenger
	images   adapter.ImageStore
	log      *zerolog.Logger
}

func NewDispatchUseCase(registry repository.TaskRegistry, history repository.TaskHistory, msgr adapter.Messenger, images adapter.ImageStore, logger *zerolog.Logger) *dispatchUC {
	l := logger.With().Str("component", "DispatchUC").Logger()
	return &dispatchUC{registry: registry, history: history, msgr: msgr, images: images, log: &l}
}

func (d *dispatchUC) Dispatch(ctx context.Context, n model.Notification) error {
	task, ok := d.registry.Lookup(n.Hash)
	if !ok {
		d.log.Debug().Str("hash", n.Hash).Msg("notification for unknown task")
		return fmt.Errorf("%w: task %s", domain.ErrNotFound, n.Hash)
	}

	switch n.Status {
	case model.StatusDone:
		return d.finalize(ctx, task, n)

	case model.StatusError:
		d.registry.Remove(n.Hash)
		reason := n.StatusReason
		if reason == "" {
			reason = "Unknown error"
		}
		return d.msgr.EditMessage(ctx, task.ChatID, task.MessageID, "❌ Error: "+reason)

	case model.StatusProgress:
		// Non-terminal: the entry stays, more notifications are expected.
		kind := n.Type
		if kind == "" {
			kind = "task"
		}
		text := fmt.Sprintf("⏳ Processing %s...", kind)
		if n.Progress > 0 {
			text = fmt.Sprintf("⏳ Processing %s - %d%%...", kind, n.Progress)
		}
		return d.msgr.EditMessage(ctx, task.ChatID, task.MessageID, text)

	default:
		return fmt.Errorf("%w: notification status %q", domain.ErrInvalidArgument, n.Status)
	}
}

// finalize handles a successful terminal notification: fetch the artifact,
// replace the placeholder with the result photo and its follow-up keyboard,
// and record the job in the user's history. A failed fetch is degraded to the
// error path with a synthesized reason instead of leaking upstream unhandled.
func (d *dispatchUC) finalize(ctx context.Context, task model.PendingTask, n model.Notification) error {
	if n.Result == nil || n.Result.URL == "" {
		d.registry.Remove(n.Hash)
		return d.msgr.EditMessage(ctx, task.ChatID, task.MessageID, "❌ Error: result is missing its image URL")
	}

	path, err := d.images.Download(ctx, n.Result.URL)
	if err != nil {
		d.registry.Remove(n.Hash)
		if editErr := d.msgr.EditMessage(ctx, task.ChatID, task.MessageID, "❌ Error: failed to fetch the generated image"); editErr != nil {
			d.log.Warn().Err(editErr).Str("hash", n.Hash).Msg("failed to report download failure")
		}
		return fmt.Errorf("download result: %w", err)
	}
	defer func() {
		if err := d.images.Remove(path); err != nil {
			d.log.Warn().Err(err).Str("path", path).Msg("failed to clean up artifact")
		}
	}()

	if err := d.msgr.DeleteMessage(ctx, task.ChatID, task.MessageID); err != nil {
		d.log.Warn().Err(err).Str("hash", n.Hash).Msg("failed to delete placeholder")
	}

	d.history.Append(task.UserID, n.Hash, model.CompletedTask{
		Type:     n.Type,
		ImageURL: n.Result.URL,
		Prompt:   n.Prompt,
	})

	if err := d.msgr.SendPhoto(ctx, task.ChatID, path, resultCaption(n), ResultKeyboard(n.Hash)); err != nil {
		// Entry stays registered so a redelivery can try again.
		return fmt.Errorf("send result photo: %w", err)
	}
	d.registry.Remove(n.Hash)
	return nil
}

func resultCaption(n model.Notification) string {
	prompt := n.Prompt
	if prompt == "" {
		prompt = "No prompt"
	}
	return fmt.Sprintf("✅ Generated: %s\nType: %s\nHash: %s", prompt, n.Type, n.Hash)
}

// ResultKeyboard is the fixed follow-up layout under every finished image:
// four upscale quadrants, four variation quadrants, then reroll and the two
// upsample styles.
func ResultKeyboard(hash string) [][]adapter.InlineButton {
	quadRow := func(action model.Action, prefix string) []adapter.InlineButton {
		row := make([]adapter.InlineButton, 0, 4)
		for i := 1; i <= 4; i++ {
			c := strconv.Itoa(i)
			row = append(row, adapter.InlineButton{Text: prefix + c, Data: model.CallbackData(action, hash, c)})
		}
		return row
	}
	return [][]adapter.InlineButton{
		quadRow(model.ActionUpscale, "U"),
		quadRow(model.ActionVariation, "V"),
		{
			{Text: "🔄 Reroll", Data: model.CallbackData(model.ActionReroll, hash, "")},
			{Text: "2x Subtle", Data: model.CallbackData(model.ActionUpsample, hash, "v6_2x_subtle")},
			{Text: "2x Creative", Data: model.CallbackData(model.ActionUpsample, hash, "v6_2x_creative")},
		},
	}
}
