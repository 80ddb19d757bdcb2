package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"trivia-app/internal/trivia"
)

func (h *Handler) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
		h.answerCallback(cb.ID, "")
		return
	}

	data, err := decodeCallback(cb.Data)
	if err != nil {
		h.logger.Warn("invalid callback data", zap.String("data", cb.Data), zap.Error(err))
		h.answerCallback(cb.ID, "")
		return
	}

	player := playerID(cb.From.ID)
	switch data.Action {
	case actionPlay:
		h.answerCallback(cb.ID, "")
		h.startGame(ctx, cb.Message.Chat.ID, player)
	case actionAnswer:
		h.answerCallback(cb.ID, h.handleAnswer(ctx, cb, player, data))
	}
}

// handleAnswer applies one answer and returns the toast text for the callback.
func (h *Handler) handleAnswer(ctx context.Context, cb *tgbotapi.CallbackQuery, player string, data callbackData) string {
	current, err := h.games.GetGame(ctx, data.GameID)
	if err != nil {
		if isGameGone(err) {
			return msgGameOver
		}
		h.logger.Error("failed to load game", zap.String("game_id", data.GameID), zap.Error(err))
		return msgSomethingWrong
	}
	if current.Player != player {
		return msgNotYourGame
	}
	if current.Question != nil && current.Question.Number != data.Question {
		return msgStaleQuestion
	}

	answer, err := h.games.SubmitAnswerAt(ctx, data.GameID, data.Question, data.Choice)
	if err != nil {
		if errors.Is(err, trivia.ErrStaleQuestion) {
			return msgStaleQuestion
		}
		if isGameGone(err) {
			return msgGameOver
		}
		h.logger.Error("failed to submit answer",
			zap.String("game_id", data.GameID),
			zap.Int("choice", int(data.Choice)),
			zap.Error(err),
		)
		return msgSomethingWrong
	}

	if answer.Outcome.Kind == trivia.OutcomeIgnored {
		return ""
	}

	edit := tgbotapi.NewEditMessageText(cb.Message.Chat.ID, cb.Message.MessageID, renderAnswer(answer))
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = gameKeyboard(answer.Game)
	h.send(edit)

	if answer.Outcome.Kind == trivia.OutcomeContinue {
		return msgCorrect
	}
	return ""
}
