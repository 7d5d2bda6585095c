package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"telegram-midjourney-bot/internal/domain"
	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/infra/memory"
)

type fakeSubmit struct {
	err error

	imagined  string
	gotAction model.Action
	gotHash   string
	gotChoice string
}

func (f *fakeSubmit) Imagine(ctx context.Context, chatID, userID int64, prompt string) error {
	f.imagined = prompt
	return f.err
}

func (f *fakeSubmit) Act(ctx context.Context, chatID, userID int64, action model.Action, hash, choice string) error {
	f.gotAction, f.gotHash, f.gotChoice = action, hash, choice
	return f.err
}

func newFacade(submit *fakeSubmit) (*BotFacade, *memory.TaskRegistry, *memory.TaskHistory) {
	reg := memory.NewTaskRegistry()
	hist := memory.NewTaskHistory()
	return NewBotFacade(submit, reg, hist), reg, hist
}

func TestBotFacade_HandleAction(t *testing.T) {
	ctx := context.Background()

	t.Run("valid payload reaches the submit usecase", func(t *testing.T) {
		submit := &fakeSubmit{}
		f, _, _ := newFacade(submit)

		if err := f.HandleAction(ctx, 42, 7, "upscale:abc123:2"); err != nil {
			t.Fatalf("handle action: %v", err)
		}
		if submit.gotAction != model.ActionUpscale || submit.gotHash != "abc123" || submit.gotChoice != "2" {
			t.Fatalf("wrong submission: %+v", submit)
		}
	})

	t.Run("garbage payload is rejected without submitting", func(t *testing.T) {
		submit := &fakeSubmit{}
		f, _, _ := newFacade(submit)

		if err := f.HandleAction(ctx, 42, 7, "nonsense"); !errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument, got %v", err)
		}
		if submit.gotHash != "" {
			t.Fatalf("nothing should have been submitted")
		}
	})
}

func TestBotFacade_HandleStatus(t *testing.T) {
	ctx := context.Background()

	f, reg, hist := newFacade(&fakeSubmit{})
	reg.Register(model.PendingTask{Hash: "abc123", ChatID: 42, UserID: 7})
	hist.Append(7, "old999", model.CompletedTask{Type: "imagine", ImageURL: "https://x/img.png"})

	t.Run("no hash reports the pending count", func(t *testing.T) {
		got := f.HandleStatus(ctx, 7, "")
		if !strings.Contains(got, "1 tasks") {
			t.Fatalf("count missing: %q", got)
		}
	})

	t.Run("pending hash is being monitored", func(t *testing.T) {
		got := f.HandleStatus(ctx, 7, "abc123")
		if !strings.Contains(got, "being monitored") {
			t.Fatalf("unexpected: %q", got)
		}
	})

	t.Run("finished hash resolves from history", func(t *testing.T) {
		got := f.HandleStatus(ctx, 7, "old999")
		if !strings.Contains(got, "finished") || !strings.Contains(got, "https://x/img.png") {
			t.Fatalf("unexpected: %q", got)
		}
	})

	t.Run("unknown hash", func(t *testing.T) {
		got := f.HandleStatus(ctx, 7, "zzz")
		if !strings.Contains(got, "not currently being monitored") {
			t.Fatalf("unexpected: %q", got)
		}
	})
}

func TestBotFacade_HandleImagine(t *testing.T) {
	submit := &fakeSubmit{}
	f, _, _ := newFacade(submit)

	if err := f.HandleImagine(context.Background(), 42, 7, "a red fox"); err != nil {
		t.Fatalf("handle imagine: %v", err)
	}
	if submit.imagined != "a red fox" {
		t.Fatalf("prompt not forwarded: %q", submit.imagined)
	}
}
