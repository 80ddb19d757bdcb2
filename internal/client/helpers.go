package client

import (
	"errors"
	"fmt"

	"trivia-app/internal/trivia"
)

var (
	states = map[string]trivia.State{
		trivia.StateNotStarted.String(): trivia.StateNotStarted,
		trivia.StateInProgress.String(): trivia.StateInProgress,
		trivia.StateWon.String():        trivia.StateWon,
		trivia.StateLost.String():       trivia.StateLost,
	}
	outcomeKinds = map[string]trivia.OutcomeKind{
		trivia.OutcomeIgnored.String():  trivia.OutcomeIgnored,
		trivia.OutcomeContinue.String(): trivia.OutcomeContinue,
		trivia.OutcomeWon.String():      trivia.OutcomeWon,
		trivia.OutcomeLost.String():     trivia.OutcomeLost,
	}
)

func parseState(value string) (trivia.State, error) {
	state, ok := states[value]
	if !ok {
		return 0, fmt.Errorf("unknown game state %q", value)
	}
	return state, nil
}

func parseOutcomeKind(value string) (trivia.OutcomeKind, error) {
	kind, ok := outcomeKinds[value]
	if !ok {
		return 0, fmt.Errorf("unknown outcome %q", value)
	}
	return kind, nil
}

func toGameView(item gameItem) (trivia.GameView, error) {
	state, err := parseState(item.State)
	if err != nil {
		return trivia.GameView{}, err
	}

	view := trivia.GameView{
		GameID:  item.GameID,
		Player:  item.Player,
		State:   state,
		Correct: item.Correct,
		Total:   item.Total,
	}
	if item.Question != nil {
		if len(item.Question.Answers) != trivia.AnswerCount {
			return trivia.GameView{}, fmt.Errorf("question has %d answers, want %d", len(item.Question.Answers), trivia.AnswerCount)
		}
		question := trivia.QuestionView{
			Number: item.Question.Number,
			Total:  item.Question.Total,
			Title:  item.Question.Title,
			Text:   item.Question.Text,
		}
		copy(question.Answers[:], item.Question.Answers)
		view.Question = &question
	}
	return view, nil
}

// DescribeError turns transport failures into a message naming the server.
func DescribeError(err error, serverURL string) error {
	if errors.Is(err, ErrServiceUnavailable) {
		return fmt.Errorf("trivia service unavailable at %s", serverURL)
	}
	return err
}
