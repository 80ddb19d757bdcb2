package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"trivia-app/internal/trivia"
)

const maxAttempts = 3

var errInputClosed = errors.New("input closed")

// Games is the game host the terminal plays against, in-process or remote.
type Games interface {
	StartGame(ctx context.Context, player string) (trivia.GameView, error)
	SubmitAnswer(ctx context.Context, gameID string, choice trivia.Choice) (trivia.AnswerResult, error)
}

// Run plays games until the player declines a rematch or input ends.
func Run(ctx context.Context, in io.Reader, out io.Writer, games Games, player string) error {
	reader := bufio.NewReader(in)

	for {
		view, err := games.StartGame(ctx, player)
		if err != nil {
			return err
		}

		outcome, err := playGame(ctx, reader, out, games, view)
		if errors.Is(err, errInputClosed) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return err
		}

		var prompt string
		switch outcome.Kind {
		case trivia.OutcomeWon:
			result, _ := outcome.Result()
			printWon(out, result)
			prompt = "Next match? [y/N]: "
		default:
			printLost(out)
			prompt = "Try again? [y/N]: "
		}

		if !confirm(reader, out, prompt) {
			return nil
		}
	}
}

func playGame(ctx context.Context, reader *bufio.Reader, out io.Writer, games Games, view trivia.GameView) (trivia.Outcome, error) {
	for {
		if view.Question == nil {
			return trivia.Outcome{}, fmt.Errorf("game %s has no question to show", view.GameID)
		}
		printQuestion(out, *view.Question)

		choice, err := readChoice(reader, out)
		if err != nil {
			return trivia.Outcome{}, err
		}

		answer, err := games.SubmitAnswer(ctx, view.GameID, choice)
		if err != nil {
			return trivia.Outcome{}, err
		}

		switch answer.Outcome.Kind {
		case trivia.OutcomeIgnored:
			fmt.Fprintln(out, "\nNothing selected.")
		case trivia.OutcomeContinue:
			fmt.Fprintln(out, "\nCorrect!")
			view = answer.Game
		default:
			return answer.Outcome, nil
		}
	}
}

func printQuestion(out io.Writer, question trivia.QuestionView) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s\n%s\n\n", question.Title, question.Text)
	for idx, answer := range question.Answers {
		fmt.Fprintf(out, "%c. %s\n", 'A'+idx, answer)
	}
	fmt.Fprintln(out)
}

func printWon(out io.Writer, result trivia.Result) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Congratulations! You won!")
	fmt.Fprintln(out, result.Summary())
	fmt.Fprintf(out, "Share: %s\n\n", result.ShareText())
}

func printLost(out io.Writer) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Game over! That answer was wrong.")
	fmt.Fprintln(out)
}

// readChoice maps A-D to an answer index. A blank line, or repeated invalid
// input, means nothing was selected.
func readChoice(reader *bufio.Reader, out io.Writer) (trivia.Choice, error) {
	maxLetter := byte('A' + trivia.AnswerCount - 1)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		fmt.Fprintf(out, "Your answer (A-%c): ", maxLetter)

		line, err := reader.ReadString('\n')
		if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
			return trivia.NoChoice, errInputClosed
		}

		answer := strings.ToUpper(strings.TrimSpace(line))
		if answer == "" {
			return trivia.NoChoice, nil
		}
		if len(answer) == 1 && answer[0] >= 'A' && answer[0] <= maxLetter {
			return trivia.Choice(answer[0] - 'A'), nil
		}

		if attempt < maxAttempts {
			fmt.Fprintf(out, "\nInvalid input. Please enter a letter A-%c.\n", maxLetter)
		}
	}

	return trivia.NoChoice, nil
}

func confirm(reader *bufio.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
