package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"telegram-midjourney-bot/internal/domain/model"
	"telegram-midjourney-bot/internal/domain/ports/adapter"
)

func newLogger() *zerolog.Logger { l := zerolog.Nop(); return &l }

// ---- Messenger fake ----

type sentMsg struct {
	ChatID int64
	ID     int
	Text   string
}

type editMsg struct {
	ChatID    int64
	MessageID int
	Text      string
}

type photoMsg struct {
	ChatID  int64
	Path    string
	Caption string
	Rows    [][]adapter.InlineButton
}

type fakeMessenger struct {
	mu      sync.Mutex
	nextID  int
	sent    []sentMsg
	edits   []editMsg
	deleted []editMsg
	photos  []photoMsg

	errSend  error
	errEdit  error
	errPhoto error
}

func (f *fakeMessenger) SendMessage(ctx context.Context, chatID int64, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errSend != nil {
		return 0, f.errSend
	}
	f.nextID++
	f.sent = append(f.sent, sentMsg{ChatID: chatID, ID: f.nextID, Text: text})
	return f.nextID, nil
}

func (f *fakeMessenger) EditMessage(ctx context.Context, chatID int64, messageID int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errEdit != nil {
		return f.errEdit
	}
	f.edits = append(f.edits, editMsg{ChatID: chatID, MessageID: messageID, Text: text})
	return nil
}

func (f *fakeMessenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, editMsg{ChatID: chatID, MessageID: messageID})
	return nil
}

func (f *fakeMessenger) SendPhoto(ctx context.Context, chatID int64, path, caption string, rows [][]adapter.InlineButton) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errPhoto != nil {
		return f.errPhoto
	}
	f.photos = append(f.photos, photoMsg{ChatID: chatID, Path: path, Caption: caption, Rows: rows})
	return nil
}

func (f *fakeMessenger) lastEdit() (editMsg, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.edits) == 0 {
		return editMsg{}, false
	}
	return f.edits[len(f.edits)-1], true
}

// ---- GenerationAdapter fake ----

type fakeGen struct {
	hash string
	err  error

	gotPrompt string
	gotAction model.Action
	gotHash   string
	gotChoice string
}

func (f *fakeGen) Imagine(ctx context.Context, prompt string) (string, error) {
	f.gotPrompt = prompt
	return f.hash, f.err
}

func (f *fakeGen) Act(ctx context.Context, action model.Action, hash, choice string) (string, error) {
	f.gotAction, f.gotHash, f.gotChoice = action, hash, choice
	return f.hash, f.err
}

// ---- ImageStore fake ----

type fakeImages struct {
	path        string
	errDownload error

	downloaded []string
	removed    []string
}

func (f *fakeImages) Download(ctx context.Context, url string) (string, error) {
	if f.errDownload != nil {
		return "", f.errDownload
	}
	f.downloaded = append(f.downloaded, url)
	if f.path == "" {
		return "/tmp/fake.png", nil
	}
	return f.path, nil
}

func (f *fakeImages) Remove(path string) error {
	f.removed = append(f.removed, path)
	return nil
}
