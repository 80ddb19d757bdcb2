package telegram

import (
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"trivia-app/internal/trivia"
)

const (
	msgHelp = "<b>Android Trivia</b>\n\n" +
		"Answer every question correctly to win. One wrong answer ends the game.\n\n" +
		"/play - start a new game\n" +
		"/stats - show your results\n" +
		"/help - show this message"
	msgUseCommands    = "Use /play to start a game."
	msgUnknownCommand = "Unknown command. Try /help."
	msgSomethingWrong = "Something went wrong. Please try again."
	msgGameOver       = "This game is over. Use /play to start a new one."
	msgNotYourGame    = "This is not your game."
	msgStaleQuestion  = "That button belongs to an earlier question."
	msgCorrect        = "Correct!"
	msgWon            = "<b>Congratulations! You won!</b>"
	msgLost           = "<b>Game over!</b> That answer was wrong."

	buttonNextMatch = "Next match"
	buttonTryAgain  = "Try again"
)

var answerLabels = [trivia.AnswerCount]string{"A", "B", "C", "D"}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}

func renderQuestion(question trivia.QuestionView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b>\n\n%s\n", html.EscapeString(question.Title), html.EscapeString(question.Text))
	for idx, answer := range question.Answers {
		fmt.Fprintf(&b, "\n%s. %s", answerLabels[idx], html.EscapeString(answer))
	}
	return b.String()
}

func renderGame(view trivia.GameView) string {
	switch view.State {
	case trivia.StateWon:
		result := trivia.NewResult(view.Correct, view.Total)
		return fmt.Sprintf("%s\n\n%s\n\n%s", msgWon, html.EscapeString(result.Summary()), html.EscapeString(result.ShareText()))
	case trivia.StateLost:
		return msgLost
	}
	if view.Question == nil {
		return msgGameOver
	}
	return renderQuestion(*view.Question)
}

func renderAnswer(answer trivia.AnswerResult) string {
	if result, ok := answer.Outcome.Result(); ok {
		return fmt.Sprintf("%s\n\n%s\n\n%s", msgWon, html.EscapeString(result.Summary()), html.EscapeString(result.ShareText()))
	}
	return renderGame(answer.Game)
}

func renderStats(stats trivia.PlayerStats) string {
	if stats.Played == 0 {
		return "You have not finished any games yet. Use /play to start one."
	}
	return fmt.Sprintf(
		"<b>Your results</b>\n\nPlayed: %d\nWon: %d\nLost: %d\nLast game: %s",
		stats.Played,
		stats.Won,
		stats.Lost,
		stats.LastPlayedAt.UTC().Format("2006-01-02 15:04 MST"),
	)
}

// gameKeyboard returns the answer buttons of a running game and the replay
// button of a finished one.
func gameKeyboard(view trivia.GameView) *tgbotapi.InlineKeyboardMarkup {
	switch view.State {
	case trivia.StateWon:
		kb := replayKeyboard(buttonNextMatch)
		return &kb
	case trivia.StateLost:
		kb := replayKeyboard(buttonTryAgain)
		return &kb
	}
	if view.Question == nil {
		return nil
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, trivia.AnswerCount)
	for idx, answer := range view.Question.Answers {
		label := answerLabels[idx] + ". " + answer
		button := tgbotapi.NewInlineKeyboardButtonData(label, buildAnswerCallback(view.GameID, view.Question.Number, idx))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(button))
	}
	kb := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &kb
}

func replayKeyboard(label string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, buildPlayCallback()),
		),
	)
}
