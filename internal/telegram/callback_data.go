package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"trivia-app/internal/trivia"
)

const (
	actionAnswer = "answer"
	actionPlay   = "play"
)

// callbackData carries the question number with each answer so a tap on an
// old keyboard cannot answer the question shown after it.
type callbackData struct {
	Action   string
	GameID   string
	Question int
	Choice   trivia.Choice
}

func buildAnswerCallback(gameID string, question, choice int) string {
	return actionAnswer + ":" + gameID + ":" + strconv.Itoa(question) + ":" + strconv.Itoa(choice)
}

func buildPlayCallback() string {
	return actionPlay
}

func decodeCallback(data string) (callbackData, error) {
	parts := strings.Split(data, ":")
	switch parts[0] {
	case actionPlay:
		if len(parts) != 1 {
			return callbackData{}, fmt.Errorf("invalid play callback %q", data)
		}
		return callbackData{Action: actionPlay}, nil
	case actionAnswer:
		if len(parts) != 4 || parts[1] == "" {
			return callbackData{}, fmt.Errorf("invalid answer callback %q", data)
		}
		question, err := strconv.Atoi(parts[2])
		if err != nil || question < 1 {
			return callbackData{}, fmt.Errorf("invalid question number in %q", data)
		}
		choice, err := strconv.Atoi(parts[3])
		if err != nil || choice < 0 || choice >= trivia.AnswerCount {
			return callbackData{}, fmt.Errorf("invalid answer index in %q", data)
		}
		return callbackData{
			Action:   actionAnswer,
			GameID:   parts[1],
			Question: question,
			Choice:   trivia.Choice(choice),
		}, nil
	default:
		return callbackData{}, fmt.Errorf("unknown callback action %q", parts[0])
	}
}
