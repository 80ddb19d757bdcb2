package trivia

import (
	"errors"
	"strings"
	"testing"

	"trivia-app/internal/opentdb"
)

func TestDefaultBankHasTenQuestions(t *testing.T) {
	bank := DefaultBank()
	if bank.Len() != 10 {
		t.Fatalf("Len() = %d, want 10", bank.Len())
	}
	if bank.SampleSize() != 3 {
		t.Fatalf("SampleSize() = %d, want 3", bank.SampleSize())
	}
}

func TestBankQuestionsReturnsCopy(t *testing.T) {
	bank := DefaultBank()
	questions := bank.Questions()
	questions[0].Answers[0] = "tampered"

	if bank.Questions()[0].Answers[0] == "tampered" {
		t.Fatalf("mutating Questions() result changed the bank")
	}
}

func TestNewBankValidation(t *testing.T) {
	valid := Question{Text: "Q?", Answers: [AnswerCount]string{"a", "b", "c", "d"}}

	tests := []struct {
		name      string
		questions []Question
		wantErr   error
	}{
		{name: "empty", questions: nil, wantErr: ErrEmptyBank},
		{name: "blank text", questions: []Question{{Text: "  ", Answers: valid.Answers}}, wantErr: ErrInvalidQuestion},
		{name: "blank answer", questions: []Question{{Text: "Q?", Answers: [AnswerCount]string{"a", "", "c", "d"}}}, wantErr: ErrInvalidQuestion},
		{name: "duplicate answer", questions: []Question{{Text: "Q?", Answers: [AnswerCount]string{"a", "b", "a", "d"}}}, wantErr: ErrInvalidQuestion},
		{name: "valid", questions: []Question{valid}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBank(tc.questions)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("NewBank returned error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestBuildQuestionsPutsCorrectAnswerFirst(t *testing.T) {
	raw := []opentdb.RawQuestion{
		{
			Type:             opentdb.TypeMultiple,
			Question:         "2 &amp; 2 = ?",
			CorrectAnswer:    "4 &lt; 5",
			IncorrectAnswers: []string{"1", "2", "3"},
		},
		{
			Type:             "boolean",
			Question:         "True?",
			CorrectAnswer:    "True",
			IncorrectAnswers: []string{"False"},
		},
		{
			Type:             opentdb.TypeMultiple,
			Question:         "Duplicated?",
			CorrectAnswer:    "x",
			IncorrectAnswers: []string{"x", "y", "z"},
		},
	}

	questions := BuildQuestions(raw)
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}

	item := questions[0]
	if item.Text != "2 & 2 = ?" {
		t.Fatalf("question not unescaped, got %q", item.Text)
	}
	if item.Correct() != "4 < 5" {
		t.Fatalf("correct answer = %q", item.Correct())
	}
	if strings.Join(item.Answers[1:], ",") != "1,2,3" {
		t.Fatalf("incorrect answers = %v", item.Answers[1:])
	}
}
