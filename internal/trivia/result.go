package trivia

import "fmt"

// ShareMIMEType is the content type of the share payload.
const ShareMIMEType = "text/plain"

// Result is the score of a won game, ready to display or share.
type Result struct {
	NumCorrect   int `json:"num_correct"`
	NumQuestions int `json:"num_questions"`
}

func NewResult(numCorrect, numQuestions int) Result {
	return Result{
		NumCorrect:   numCorrect,
		NumQuestions: numQuestions,
	}
}

func (r Result) Summary() string {
	return fmt.Sprintf("NumCorrect: %d, NumQuestions: %d", r.NumCorrect, r.NumQuestions)
}

func (r Result) ShareText() string {
	return fmt.Sprintf("I played Android Trivia and got %d out of %d questions right! #AndroidTrivia", r.NumCorrect, r.NumQuestions)
}
