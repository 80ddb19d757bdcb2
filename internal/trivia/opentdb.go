package trivia

import (
	"html"

	"trivia-app/internal/opentdb"
)

// BuildQuestions converts OpenTriviaDB payloads into questions, placing the
// correct answer first. Items that are not four-choice questions are dropped.
func BuildQuestions(raw []opentdb.RawQuestion) []Question {
	questions := make([]Question, 0, len(raw))
	for _, item := range raw {
		question, ok := buildQuestion(item)
		if !ok {
			continue
		}
		questions = append(questions, question)
	}
	return questions
}

func buildQuestion(raw opentdb.RawQuestion) (Question, bool) {
	if len(raw.IncorrectAnswers) != AnswerCount-1 {
		return Question{}, false
	}

	question := Question{Text: html.UnescapeString(raw.Question)}
	question.Answers[0] = html.UnescapeString(raw.CorrectAnswer)
	for idx, incorrect := range raw.IncorrectAnswers {
		question.Answers[idx+1] = html.UnescapeString(incorrect)
	}

	if validateQuestion(question) != nil {
		return Question{}, false
	}
	return question, true
}
