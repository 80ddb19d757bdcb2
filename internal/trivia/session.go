package trivia

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var (
	ErrInvalidState     = errors.New("invalid session state")
	ErrChoiceOutOfRange = errors.New("choice out of range")
)

type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateWon
	StateLost
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateInProgress:
		return "in_progress"
	case StateWon:
		return "won"
	case StateLost:
		return "lost"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further answers are accepted.
func (s State) Terminal() bool {
	return s == StateWon || s == StateLost
}

// StateError is returned when an operation is not allowed in the current state.
type StateError struct {
	Op    string
	State State
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: session is %s", e.Op, e.State)
}

func (e *StateError) Unwrap() error {
	return ErrInvalidState
}

// Choice is the index of a displayed answer. Any negative value means nothing
// was selected.
type Choice int

const NoChoice Choice = -1

type OutcomeKind int

const (
	OutcomeIgnored OutcomeKind = iota
	OutcomeContinue
	OutcomeWon
	OutcomeLost
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeContinue:
		return "continue"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return fmt.Sprintf("outcome(%d)", int(k))
	}
}

// Outcome is what the presentation layer consumes after a submission.
// Correct and Total are set for Won and Lost.
type Outcome struct {
	Kind    OutcomeKind
	Correct int
	Total   int
}

func (o Outcome) Terminal() bool {
	return o.Kind == OutcomeWon || o.Kind == OutcomeLost
}

// Result returns the score report for a won outcome.
func (o Outcome) Result() (Result, bool) {
	if o.Kind != OutcomeWon {
		return Result{}, false
	}
	return NewResult(o.Correct, o.Total), true
}

// QuestionView is the current question as it should be displayed.
type QuestionView struct {
	Number  int
	Total   int
	Title   string
	Text    string
	Answers [AnswerCount]string
}

type SessionOption func(*Session)

// WithRand sets the random source used for sampling and shuffling.
func WithRand(rng *rand.Rand) SessionOption {
	return func(s *Session) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// Session is one play-through. It is not safe for concurrent use.
type Session struct {
	bank        Bank
	sampleSize  int
	order       []Question
	index       int
	permutation [AnswerCount]string
	state       State
	rng         *rand.Rand
}

func NewSession(bank Bank, opts ...SessionOption) *Session {
	s := &Session{
		bank:       bank,
		sampleSize: bank.SampleSize(),
		state:      StateNotStarted,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Start samples the questions for this play-through and shows the first one.
// Calling it again begins a fresh attempt.
func (s *Session) Start() {
	picked := s.rng.Perm(s.bank.Len())[:s.sampleSize]

	s.order = make([]Question, 0, s.sampleSize)
	for _, idx := range picked {
		s.order = append(s.order, s.bank.questions[idx])
	}

	s.index = 0
	s.state = StateInProgress
	s.shuffleCurrent()
}

func (s *Session) Submit(choice Choice) (Outcome, error) {
	if s.state != StateInProgress {
		return Outcome{}, &StateError{Op: "submit", State: s.state}
	}
	if choice < 0 {
		return Outcome{Kind: OutcomeIgnored}, nil
	}
	if int(choice) >= AnswerCount {
		return Outcome{}, fmt.Errorf("%w: %d", ErrChoiceOutOfRange, choice)
	}

	if s.permutation[choice] != s.order[s.index].Correct() {
		s.state = StateLost
		return Outcome{Kind: OutcomeLost, Correct: s.index, Total: s.sampleSize}, nil
	}

	s.index++
	if s.index == s.sampleSize {
		s.state = StateWon
		return Outcome{Kind: OutcomeWon, Correct: s.index, Total: s.sampleSize}, nil
	}

	s.shuffleCurrent()
	return Outcome{Kind: OutcomeContinue}, nil
}

func (s *Session) State() State {
	return s.state
}

// Index is the number of questions answered correctly so far.
func (s *Session) Index() int {
	return s.index
}

func (s *Session) SampleSize() int {
	return s.sampleSize
}

func (s *Session) Order() []Question {
	out := make([]Question, len(s.order))
	copy(out, s.order)
	return out
}

func (s *Session) Current() (QuestionView, error) {
	if s.state != StateInProgress {
		return QuestionView{}, &StateError{Op: "current", State: s.state}
	}

	question := s.order[s.index]
	return QuestionView{
		Number:  s.index + 1,
		Total:   s.sampleSize,
		Title:   fmt.Sprintf("Android Trivia (%d/%d)", s.index+1, s.sampleSize),
		Text:    question.Text,
		Answers: s.permutation,
	}, nil
}

func (s *Session) shuffleCurrent() {
	s.permutation = shuffleAnswers(s.order[s.index], s.rng)
}

// shuffleAnswers returns a shuffled copy; the question's own array is untouched.
func shuffleAnswers(question Question, rng *rand.Rand) [AnswerCount]string {
	answers := question.Answers
	rng.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return answers
}
