package sched

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/domain/ports/adapter"
	"telegram-midjourney-bot/internal/infra/memory"
)

type fakeMessenger struct {
	edits []string
}

var _ adapter.Messenger = (*fakeMessenger)(nil)

func (m *fakeMessenger) SendMessage(_ context.Context, _ int64, _ string) (int, error) {
	return 0, nil
}

func (m *fakeMessenger) EditMessage(_ context.Context, _ int64, _ int, text string) error {
	m.edits = append(m.edits, text)
	return nil
}

func (m *fakeMessenger) DeleteMessage(_ context.Context, _ int64, _ int) error { return nil }

func (m *fakeMessenger) SendPhoto(_ context.Context, _ int64, _, _ string, _ [][]adapter.InlineButton) error {
	return nil
}

func newLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

func TestSweep_AbandonsOnlyStaleTasks(t *testing.T) {
	registry := memory.NewTaskRegistry()
	registry.Register(model.PendingTask{
		Hash:      "old111",
		ChatID:    42,
		MessageID: 100,
		CreatedAt: time.Now().Add(-10 * time.Minute),
	})
	registry.Register(model.PendingTask{
		Hash:      "new222",
		ChatID:    42,
		MessageID: 101,
		CreatedAt: time.Now(),
	})

	msgr := &fakeMessenger{}
	w := NewSweepWorker(time.Minute, 5*time.Minute, registry, msgr, newLogger())
	w.Sweep(context.Background())

	if _, ok := registry.Lookup("old111"); ok {
		t.Fatalf("stale task should have been removed")
	}
	if _, ok := registry.Lookup("new222"); !ok {
		t.Fatalf("fresh task must survive a sweep")
	}
	if len(msgr.edits) != 1 {
		t.Fatalf("want one abandonment notice, got %d", len(msgr.edits))
	}
	if !strings.Contains(msgr.edits[0], "old111") {
		t.Fatalf("notice should name the task: %q", msgr.edits[0])
	}
}

func TestRun_DisabledWithoutTTL(t *testing.T) {
	w := NewSweepWorker(time.Minute, 0, memory.NewTaskRegistry(), &fakeMessenger{}, newLogger())
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("run without ttl should return immediately: %v", err)
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	w := NewSweepWorker(time.Millisecond, time.Hour, memory.NewTaskRegistry(), &fakeMessenger{}, newLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("want context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("worker did not stop after cancel")
	}
}
