package application

import (
	"context"
	"fmt"

	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/domain/ports/repository"
	"telegram-midjourney-bot/internal/usecase"
)

// BotFacade composes usecases into high-level bot commands. Read-only
// commands return strings so the Telegram adapter just forwards them to the
// chat; submitting commands drive the placeholder flow themselves through the
// Messenger port and only report errors back.
type BotFacade struct {
	SubmitUC usecase.SubmitUseCase
	Registry repository.TaskRegistry
	History  repository.TaskHistory
}

func NewBotFacade(submitUC usecase.SubmitUseCase, registry repository.TaskRegistry, history repository.TaskHistory) *BotFacade {
	return &BotFacade{SubmitUC: submitUC, Registry: registry, History: history}
}

func (b *BotFacade) HandleStart() string {
	return "Welcome to Midjourney Telegram Bot! 🎨\n\n" +
		"Commands:\n" +
		"/imagine [prompt] - Generate an image\n" +
		"/help - Show this help message"
}

func (b *BotFacade) HandleHelp() string {
	return "Midjourney Bot Commands: 🎨\n\n" +
		"/imagine [prompt] - Generate an image with your prompt\n" +
		"/status [hash] - Check status of a generation by hash\n\n" +
		"After generation, you can use buttons to:\n" +
		"• U1-U4: Upscale a specific quadrant\n" +
		"• V1-V4: Create variation of a specific quadrant\n" +
		"• 🔄 Reroll: Generate a new image with the same prompt\n" +
		"• 2x Subtle/Creative: Apply different upscale styles"
}

// HandleImagine submits a fresh generation. domain.ErrEmptyPrompt comes back
// for a missing prompt so the adapter can show a usage hint.
func (b *BotFacade) HandleImagine(ctx context.Context, chatID, userID int64, prompt string) error {
	return b.SubmitUC.Imagine(ctx, chatID, userID, prompt)
}

// HandleAction parses an inline-button payload ("action:hash[:choice]") and
// submits the follow-up job.
func (b *BotFacade) HandleAction(ctx context.Context, chatID, userID int64, data string) error {
	action, hash, choice, err := model.ParseCallback(data)
	if err != nil {
		return err
	}
	return b.SubmitUC.Act(ctx, chatID, userID, action, hash, choice)
}

// HandleStatus is read-only: it reports registry membership for a hash, or
// the pending count when no hash is given. Finished jobs are looked up in the
// user's history.
func (b *BotFacade) HandleStatus(ctx context.Context, userID int64, hash string) string {
	if hash == "" {
		return fmt.Sprintf("Currently monitoring %d tasks. Please wait for webhook notifications.", b.Registry.Count())
	}
	if _, ok := b.Registry.Lookup(hash); ok {
		return fmt.Sprintf("Task %s is being monitored. Waiting for webhook notifications.", hash)
	}
	if done, ok := b.History.Find(userID, hash); ok {
		return fmt.Sprintf("Task %s finished (%s): %s", hash, done.Type, done.ImageURL)
	}
	return fmt.Sprintf("Task %s is not currently being monitored. It may be completed or never started.", hash)
}
