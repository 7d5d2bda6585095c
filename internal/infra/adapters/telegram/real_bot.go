package telegram

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-midjourney-bot/internal/application"
	"telegram-midjourney-bot/internal/config"
	"telegram-midjourney-bot/internal/domain"
)

// RealTelegramBotAdapter uses tgbotapi to poll updates and delegates to BotFacade.
type RealTelegramBotAdapter struct {
	bot    *tgbotapi.BotAPI
	cfg    *config.BotConfig
	facade *application.BotFacade

	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewRealTelegramBotAdapter(bot *tgbotapi.BotAPI, cfg *config.BotConfig, facade *application.BotFacade, updateWorkers int) (*RealTelegramBotAdapter, error) {
	if bot == nil {
		return nil, errors.New("bot client is nil")
	}
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	if updateWorkers <= 0 {
		updateWorkers = 5
	}

	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		updateWorkers: updateWorkers,
	}, nil
}

func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					if err := r.handleUpdate(ctx, up); err != nil {
						log.Printf("tg worker %d error: %v", id, err)
					}
				}
			}
		}(i)
	}

	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

func (r *RealTelegramBotAdapter) handleUpdate(ctx context.Context, update tgbotapi.Update) error {
	// ----- Inline button callbacks -----
	if update.CallbackQuery != nil {
		return r.handleQuery(ctx, update.CallbackQuery)
	}

	// ----- Regular messages -----
	if update.Message == nil {
		return nil
	}
	tgUser := update.Message.From
	if tgUser == nil {
		return nil
	}
	chatID := update.Message.Chat.ID
	text := update.Message.Text

	fields := strings.Fields(text)
	command := ""
	if len(fields) > 0 && strings.HasPrefix(fields[0], "/") {
		command = fields[0]
	}

	switch command {
	case "/start":
		return r.send(chatID, r.facade.HandleStart())

	case "/help":
		return r.send(chatID, r.facade.HandleHelp())

	case "/imagine":
		prompt := strings.TrimSpace(strings.TrimPrefix(text, command))
		err := r.facade.HandleImagine(ctx, chatID, tgUser.ID, prompt)
		if errors.Is(err, domain.ErrEmptyPrompt) {
			return r.send(chatID, "Please provide a prompt. Example: /imagine a beautiful sunset over mountains")
		}
		return err

	case "/status":
		hash := strings.TrimSpace(strings.TrimPrefix(text, command))
		return r.send(chatID, r.facade.HandleStatus(ctx, tgUser.ID, hash))

	case "":
		// Plain text: nudge towards /imagine
		return r.send(chatID, "To generate an image, use the /imagine command followed by your prompt.\n"+
			"Example: /imagine a beautiful sunset over mountains\n\n"+
			"For more help, type /help")

	default:
		return r.send(chatID, "Unknown command. Send /help for the list of commands.")
	}
}

func (r *RealTelegramBotAdapter) handleQuery(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	if query == nil || query.From == nil {
		return errors.New("invalid callback query")
	}

	// Stop the telegram spinner when we return
	defer func() { _, _ = r.bot.Request(tgbotapi.NewCallback(query.ID, "Processing your request...")) }()

	var chatID int64
	if query.Message != nil && query.Message.Chat != nil {
		chatID = query.Message.Chat.ID
	} else {
		chatID = query.From.ID
	}
	if chatID == 0 {
		return nil
	}

	data := strings.TrimSpace(query.Data)
	if err := r.facade.HandleAction(ctx, chatID, query.From.ID, data); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return r.send(chatID, "Unknown action. Use the buttons under a generated image.")
		}
		return err
	}
	return nil
}

func (r *RealTelegramBotAdapter) send(chatID int64, text string) error {
	_, err := r.bot.Send(tgbotapi.NewMessage(chatID, text))
	return err
}
