package trivia

import (
	"errors"
	"fmt"
	"strings"
)

// AnswerCount is the number of choices every question carries.
const AnswerCount = 4

const maxSampleSize = 3

var (
	ErrEmptyBank       = errors.New("question bank is empty")
	ErrInvalidQuestion = errors.New("invalid question")
)

// Question is a single trivia item. Answers[0] is always the correct answer;
// the display order is shuffled per session.
type Question struct {
	Text    string
	Answers [AnswerCount]string
}

// Correct returns the ground-truth answer.
func (q Question) Correct() string {
	return q.Answers[0]
}

// Bank is an immutable set of questions handed to a session at construction.
type Bank struct {
	questions []Question
}

func NewBank(questions []Question) (Bank, error) {
	if len(questions) == 0 {
		return Bank{}, ErrEmptyBank
	}

	copied := make([]Question, 0, len(questions))
	for idx, question := range questions {
		if err := validateQuestion(question); err != nil {
			return Bank{}, fmt.Errorf("question %d: %w", idx, err)
		}
		copied = append(copied, question)
	}

	return Bank{questions: copied}, nil
}

func (b Bank) Len() int {
	return len(b.questions)
}

func (b Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	copy(out, b.questions)
	return out
}

// SampleSize is min((n+1)/2, 3) for a bank of n questions.
func (b Bank) SampleSize() int {
	return sampleSizeFor(len(b.questions))
}

func sampleSizeFor(bankSize int) int {
	return min((bankSize+1)/2, maxSampleSize)
}

func validateQuestion(question Question) error {
	if strings.TrimSpace(question.Text) == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidQuestion)
	}
	seen := make(map[string]struct{}, AnswerCount)
	for idx, answer := range question.Answers {
		if strings.TrimSpace(answer) == "" {
			return fmt.Errorf("%w: empty answer %d", ErrInvalidQuestion, idx)
		}
		// Answers are matched by text, so they must be distinct.
		if _, dup := seen[answer]; dup {
			return fmt.Errorf("%w: duplicate answer %q", ErrInvalidQuestion, answer)
		}
		seen[answer] = struct{}{}
	}
	return nil
}

var defaultQuestions = []Question{
	{Text: "What is Android Jetpack?",
		Answers: [AnswerCount]string{"All of these", "Tools", "Documentation", "Libraries"}},
	{Text: "What is the base class for layouts?",
		Answers: [AnswerCount]string{"ViewGroup", "ViewSet", "ViewCollection", "ViewRoot"}},
	{Text: "What layout do you use for complex screens?",
		Answers: [AnswerCount]string{"ConstraintLayout", "GridLayout", "LinearLayout", "FrameLayout"}},
	{Text: "What do you use to push structured data into a layout?",
		Answers: [AnswerCount]string{"Data binding", "Data pushing", "Set text", "An OnClick method"}},
	{Text: "What method do you use to inflate layouts in fragments?",
		Answers: [AnswerCount]string{"onCreateView()", "onActivityCreated()", "onCreateLayout()", "onInflateLayout()"}},
	{Text: "What's the build system for Android?",
		Answers: [AnswerCount]string{"Gradle", "Graddle", "Grodle", "Groyle"}},
	{Text: "Which class do you use to create a vector drawable?",
		Answers: [AnswerCount]string{"VectorDrawable", "AndroidVectorDrawable", "DrawableVector", "AndroidVector"}},
	{Text: "Which one of these is an Android navigation component?",
		Answers: [AnswerCount]string{"NavController", "NavCentral", "NavMaster", "NavSwitcher"}},
	{Text: "Which XML element lets you register an activity with the launcher activity?",
		Answers: [AnswerCount]string{"intent-filter", "app-registry", "launcher-registry", "app-launcher"}},
	{Text: "What do you use to mark a layout for data binding?",
		Answers: [AnswerCount]string{"<layout>", "<binding>", "<data-binding>", "<dbinding>"}},
}

// DefaultBank returns the compiled-in question table.
func DefaultBank() Bank {
	bank, err := NewBank(defaultQuestions)
	if err != nil {
		panic(err)
	}
	return bank
}
