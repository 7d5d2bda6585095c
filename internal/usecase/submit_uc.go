// File: internal/usecase/submit_uc.go
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"telegram-midjourney-bot/internal/domain"
	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/domain/ports/adapter"
	"telegram-midjourney-bot/internal/domain/ports/repository"
)

// Compile-time check
var _ SubmitUseCase = (*submitUC)(nil)

type SubmitUseCase interface {
	Imagine(ctx context.Context, chatID, userID int64, prompt string) error
	Act(ctx context.Context, chatID, userID int64, action model.Action, hash, choice string) error
}

type submitUC struct {
	registry repository.TaskRegistry
	gen      adapter.GenerationAdapter
	msgr     adapter.Messenger
	log      *zerolog.Logger
}

func NewSubmitUseCase(registry repository.TaskRegistry, gen adapter.GenerationAdapter, msgr adapter.Messenger, logger *zerolog.Logger) *submitUC {
	l := logger.With().Str("component", "SubmitUC").Logger()
	return &submitUC{registry: registry, gen: gen, msgr: msgr, log: &l}
}

// Imagine submits a fresh generation for the given prompt. An empty prompt is
// rejected before anything is sent or registered.
func (s *submitUC) Imagine(ctx context.Context, chatID, userID int64, prompt string) error {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return domain.ErrEmptyPrompt
	}
	msgID, err := s.msgr.SendMessage(ctx, chatID, "🔄 Processing your request...")
	if err != nil {
		return fmt.Errorf("send placeholder: %w", err)
	}
	hash, err := s.gen.Imagine(ctx, prompt)
	if err != nil {
		s.log.Error().Err(err).Int64("chat_id", chatID).Msg("imagine request failed")
		return s.msgr.EditMessage(ctx, chatID, msgID, "❌ Error: "+err.Error())
	}
	s.track(ctx, chatID, userID, msgID, hash)
	return nil
}

// Act submits a follow-up (upscale/variation/reroll/upsample) on a prior job.
func (s *submitUC) Act(ctx context.Context, chatID, userID int64, action model.Action, hash, choice string) error {
	if !action.FollowUp() || hash == "" {
		return fmt.Errorf("%w: action %q hash %q", domain.ErrInvalidArgument, action, hash)
	}
	msgID, err := s.msgr.SendMessage(ctx, chatID, "🔄 Processing...")
	if err != nil {
		return fmt.Errorf("send placeholder: %w", err)
	}
	newHash, err := s.gen.Act(ctx, action, hash, choice)
	if err != nil {
		s.log.Error().Err(err).Str("action", string(action)).Str("hash", hash).Msg("follow-up request failed")
		return s.msgr.EditMessage(ctx, chatID, msgID, "❌ Error: "+err.Error())
	}
	s.track(ctx, chatID, userID, msgID, newHash)
	return nil
}

// track registers the pending task, then flips the placeholder to "waiting".
// Registration must come first and complete synchronously: a webhook
// notification that arrives while the edit is still in flight has to find its
// entry already in the registry.
func (s *submitUC) track(ctx context.Context, chatID, userID int64, msgID int, hash string) {
	s.registry.Register(model.PendingTask{
		Hash:      hash,
		ChatID:    chatID,
		UserID:    userID,
		MessageID: msgID,
		CreatedAt: time.Now(),
	})
	text := fmt.Sprintf("⏳ Task submitted with ID: %s\nWaiting for processing...", hash)
	if err := s.msgr.EditMessage(ctx, chatID, msgID, text); err != nil {
		s.log.Warn().Err(err).Str("hash", hash).Msg("failed to update placeholder")
	}
}
