package trivia

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultFinishedLimit = 1024

// ErrStaleQuestion is returned when an answer names a question other than the
// one currently shown, for example a repeated tap on an old keyboard.
var ErrStaleQuestion = errors.New("answer is for a different question")

// GameView is a snapshot of one hosted game.
type GameView struct {
	GameID   string
	Player   string
	State    State
	Correct  int
	Total    int
	Question *QuestionView
}

type AnswerResult struct {
	Outcome Outcome
	Game    GameView
}

type game struct {
	id      string
	player  string
	session *Session
}

type ServiceOption func(*Service)

// WithRandFactory controls the random source given to each new session.
func WithRandFactory(factory func() *rand.Rand) ServiceOption {
	return func(s *Service) {
		if factory != nil {
			s.newRand = factory
		}
	}
}

// WithFinishedLimit caps how many finished games stay readable through
// GetGame and GetResult. The oldest are dropped first.
func WithFinishedLimit(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.finishedLimit = limit
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) ServiceOption {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// Service hosts one session per game ID for presentation layers that serve
// more than one player. A player has at most one game in progress; starting
// another abandons the earlier one. Finished games keep only their final view.
type Service struct {
	bank    Bank
	results ResultRepository
	logger  *zap.Logger

	newRand       func() *rand.Rand
	newID         func() string
	now           func() time.Time
	finishedLimit int

	mu            sync.Mutex
	games         map[string]*game
	playing       map[string]string
	finished      map[string]GameView
	finishedOrder []string
}

func NewService(bank Bank, results ResultRepository, logger *zap.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		bank:    bank,
		results: results,
		logger:  logger,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		newID:         uuid.NewString,
		now:           time.Now,
		finishedLimit: defaultFinishedLimit,
		games:         make(map[string]*game),
		playing:       make(map[string]string),
		finished:      make(map[string]GameView),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) StartGame(_ context.Context, player string) (GameView, error) {
	playerNormalized, err := normalizePlayer(player)
	if err != nil {
		return GameView{}, err
	}

	session := NewSession(s.bank, WithRand(s.newRand()))
	session.Start()

	g := &game{
		id:      s.newID(),
		player:  playerNormalized,
		session: session,
	}

	s.mu.Lock()
	abandoned, hadGame := s.playing[g.player]
	if hadGame {
		delete(s.games, abandoned)
	}
	s.games[g.id] = g
	s.playing[g.player] = g.id
	view := g.view()
	s.mu.Unlock()

	if hadGame {
		s.logger.Info("game abandoned",
			zap.String("game_id", abandoned),
			zap.String("player", g.player),
		)
	}
	s.logger.Info("game started",
		zap.String("game_id", g.id),
		zap.String("player", g.player),
		zap.Int("sample_size", session.SampleSize()),
	)
	return view, nil
}

func (s *Service) GetGame(_ context.Context, gameID string) (GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(gameID)
	if g, ok := s.games[id]; ok {
		return g.view(), nil
	}
	if view, ok := s.finished[id]; ok {
		return view, nil
	}
	return GameView{}, ErrGameNotFound
}

func (s *Service) SubmitAnswer(ctx context.Context, gameID string, choice Choice) (AnswerResult, error) {
	return s.submit(ctx, gameID, 0, choice)
}

// SubmitAnswerAt applies choice only while question (1-based) is the one
// being shown. Otherwise it returns ErrStaleQuestion and changes nothing.
func (s *Service) SubmitAnswerAt(ctx context.Context, gameID string, question int, choice Choice) (AnswerResult, error) {
	if question < 1 {
		return AnswerResult{}, fmt.Errorf("%w: question %d", ErrStaleQuestion, question)
	}
	return s.submit(ctx, gameID, question, choice)
}

func (s *Service) submit(ctx context.Context, gameID string, question int, choice Choice) (AnswerResult, error) {
	id := strings.TrimSpace(gameID)

	s.mu.Lock()
	g, ok := s.games[id]
	if !ok {
		view, finished := s.finished[id]
		s.mu.Unlock()
		if finished {
			return AnswerResult{}, &StateError{Op: "submit", State: view.State}
		}
		return AnswerResult{}, ErrGameNotFound
	}

	if question > 0 {
		if current, err := g.session.Current(); err == nil && current.Number != question {
			s.mu.Unlock()
			return AnswerResult{}, fmt.Errorf("%w: answered %d, showing %d", ErrStaleQuestion, question, current.Number)
		}
	}

	outcome, err := g.session.Submit(choice)
	if err != nil {
		s.mu.Unlock()
		return AnswerResult{}, err
	}
	result := AnswerResult{Outcome: outcome, Game: g.view()}
	if outcome.Terminal() {
		s.finish(g, result.Game)
	}
	s.mu.Unlock()

	if outcome.Terminal() {
		s.logger.Info("game finished",
			zap.String("game_id", g.id),
			zap.String("player", g.player),
			zap.Stringer("outcome", outcome.Kind),
			zap.Int("correct", outcome.Correct),
			zap.Int("total", outcome.Total),
		)
		s.record(ctx, GameRecord{
			GameID:     g.id,
			Player:     g.player,
			Outcome:    outcome.Kind.String(),
			Correct:    outcome.Correct,
			Total:      outcome.Total,
			FinishedAt: s.now().UTC(),
		})
	}

	return result, nil
}

// GetResult returns the score report of a won game.
func (s *Service) GetResult(_ context.Context, gameID string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(gameID)
	if g, ok := s.games[id]; ok {
		return Result{}, &StateError{Op: "result", State: g.session.State()}
	}
	view, ok := s.finished[id]
	if !ok {
		return Result{}, ErrGameNotFound
	}
	if view.State != StateWon {
		return Result{}, &StateError{Op: "result", State: view.State}
	}
	return NewResult(view.Correct, view.Total), nil
}

// EndGame discards a hosted game.
func (s *Service) EndGame(_ context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := strings.TrimSpace(gameID)
	if g, ok := s.games[id]; ok {
		delete(s.games, id)
		if s.playing[g.player] == id {
			delete(s.playing, g.player)
		}
		return nil
	}
	if _, ok := s.finished[id]; ok {
		delete(s.finished, id)
		return nil
	}
	return ErrGameNotFound
}

func (s *Service) PlayerStats(ctx context.Context, player string) (PlayerStats, error) {
	playerNormalized, err := normalizePlayer(player)
	if err != nil {
		return PlayerStats{}, err
	}
	if s.results == nil {
		return PlayerStats{Player: playerNormalized}, nil
	}
	return s.results.GetPlayerStats(ctx, playerNormalized)
}

func (s *Service) RecentGames(ctx context.Context, limit int) ([]GameRecord, error) {
	if s.results == nil {
		return []GameRecord{}, nil
	}
	return s.results.ListRecentGames(ctx, limit)
}

// finish moves a game out of play. Callers hold s.mu.
func (s *Service) finish(g *game, view GameView) {
	delete(s.games, g.id)
	if s.playing[g.player] == g.id {
		delete(s.playing, g.player)
	}

	s.finished[g.id] = view
	s.finishedOrder = append(s.finishedOrder, g.id)
	for len(s.finishedOrder) > s.finishedLimit {
		delete(s.finished, s.finishedOrder[0])
		s.finishedOrder = s.finishedOrder[1:]
	}
}

func (s *Service) record(ctx context.Context, record GameRecord) {
	if s.results == nil {
		return
	}
	// A failed write loses history only; the game outcome stands.
	if err := s.results.RecordGame(ctx, record); err != nil {
		s.logger.Error("failed to record game",
			zap.String("game_id", record.GameID),
			zap.Error(err),
		)
	}
}

func (g *game) view() GameView {
	view := GameView{
		GameID:  g.id,
		Player:  g.player,
		State:   g.session.State(),
		Correct: g.session.Index(),
		Total:   g.session.SampleSize(),
	}
	if question, err := g.session.Current(); err == nil {
		view.Question = &question
	}
	return view
}

func normalizePlayer(player string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(player))
	if normalized == "" {
		return "", ErrInvalidPlayer
	}
	return normalized, nil
}
