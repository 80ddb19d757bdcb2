package telegram

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"trivia-app/internal/trivia"
)

// Bot is the part of *tgbotapi.BotAPI the handler uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Games is implemented by *trivia.Service.
type Games interface {
	StartGame(ctx context.Context, player string) (trivia.GameView, error)
	GetGame(ctx context.Context, gameID string) (trivia.GameView, error)
	SubmitAnswerAt(ctx context.Context, gameID string, question int, choice trivia.Choice) (trivia.AnswerResult, error)
	PlayerStats(ctx context.Context, player string) (trivia.PlayerStats, error)
}

type Handler struct {
	bot    Bot
	logger *zap.Logger
	games  Games
}

func NewHandler(bot Bot, logger *zap.Logger, games Games) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		bot:    bot,
		logger: logger,
		games:  games,
	}
}

// Commands lists the bot commands registered with Telegram.
func Commands() []tgbotapi.BotCommand {
	return []tgbotapi.BotCommand{
		{Command: "play", Description: "Start a new Android Trivia game"},
		{Command: "stats", Description: "Show your results"},
		{Command: "help", Description: "How to play"},
	}
}

func (h *Handler) Run(ctx context.Context) error {
	h.logger.Info("telegram handler started")
	defer h.logger.Info("telegram handler stopped")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := h.bot.GetUpdatesChan(u)
	defer h.bot.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			h.handleUpdate(ctx, update)
		}
	}
}

func (h *Handler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.CallbackQuery != nil {
		h.logger.Debug("callback received",
			zap.Int64("user_id", update.CallbackQuery.From.ID),
			zap.String("data", update.CallbackQuery.Data),
		)
		h.handleCallback(ctx, update.CallbackQuery)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		h.logger.Debug("update without message and callback")
		return
	}

	chatID := update.Message.Chat.ID
	player := playerID(update.Message.From.ID)

	if !update.Message.IsCommand() {
		h.send(newHTMLMessage(chatID, msgUseCommands))
		return
	}

	switch update.Message.Command() {
	case "start", "help":
		h.send(newHTMLMessage(chatID, msgHelp))
	case "play":
		h.startGame(ctx, chatID, player)
	case "stats":
		h.showStats(ctx, chatID, player)
	default:
		h.send(newHTMLMessage(chatID, msgUnknownCommand))
	}
}

func (h *Handler) startGame(ctx context.Context, chatID int64, player string) {
	view, err := h.games.StartGame(ctx, player)
	if err != nil {
		h.logger.Error("failed to start game", zap.String("player", player), zap.Error(err))
		h.send(newHTMLMessage(chatID, msgSomethingWrong))
		return
	}

	msg := newHTMLMessage(chatID, renderGame(view))
	if kb := gameKeyboard(view); kb != nil {
		msg.ReplyMarkup = *kb
	}
	h.send(msg)
}

func (h *Handler) showStats(ctx context.Context, chatID int64, player string) {
	stats, err := h.games.PlayerStats(ctx, player)
	if err != nil {
		h.logger.Error("failed to load stats", zap.String("player", player), zap.Error(err))
		h.send(newHTMLMessage(chatID, msgSomethingWrong))
		return
	}
	h.send(newHTMLMessage(chatID, renderStats(stats)))
}

func (h *Handler) send(c tgbotapi.Chattable) {
	if _, err := h.bot.Send(c); err != nil {
		h.logger.Error("failed to send telegram message", zap.Error(err))
	}
}

func (h *Handler) answerCallback(id, text string) {
	if _, err := h.bot.Request(tgbotapi.NewCallback(id, text)); err != nil {
		h.logger.Warn("callback answer error", zap.Error(err))
	}
}

func playerID(userID int64) string {
	return "tg:" + strconv.FormatInt(userID, 10)
}

func isGameGone(err error) bool {
	return errors.Is(err, trivia.ErrGameNotFound) || errors.Is(err, trivia.ErrInvalidState)
}
