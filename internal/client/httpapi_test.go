package client

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"trivia-app/internal/cli"
	"trivia-app/internal/httpapi"
	"trivia-app/internal/trivia"
)

var _ cli.Games = (*HTTPClient)(nil)

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func newTriviaServer(t *testing.T) *httptest.Server {
	t.Helper()

	service := trivia.NewService(trivia.DefaultBank(), nil, nil,
		trivia.WithRandFactory(func() *rand.Rand { return rand.New(rand.NewSource(7)) }),
	)
	server := httptest.NewServer(httpapi.NewRouter(service, nil, 0))
	t.Cleanup(server.Close)
	return server
}

func correctChoice(t *testing.T, view trivia.GameView) trivia.Choice {
	t.Helper()

	for _, question := range trivia.DefaultBank().Questions() {
		if view.Question == nil || question.Text != view.Question.Text {
			continue
		}
		for idx, answer := range view.Question.Answers {
			if answer == question.Correct() {
				return trivia.Choice(idx)
			}
		}
	}
	t.Fatalf("no correct answer found for %+v", view.Question)
	return trivia.NoChoice
}

func TestDoJSONReturnsServiceUnavailable(t *testing.T) {
	client := NewHTTPClient("http://example.test", &http.Client{
		Transport: roundTripperFunc(func(*http.Request) (*http.Response, error) {
			return nil, errors.New("dial error")
		}),
	})

	err := client.doJSON(context.Background(), http.MethodGet, "/health", nil, nil)
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable wrapper, got %v", err)
	}
	if described := DescribeError(err, "http://example.test"); described.Error() != "trivia service unavailable at http://example.test" {
		t.Fatalf("DescribeError = %q", described)
	}
}

func TestDoJSONReturnsAPIErrorMessageFromBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "bad request payload"})
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, server.Client())
	err := client.doJSON(context.Background(), http.MethodGet, "/anything", nil, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "bad request payload" {
		t.Fatalf("unexpected API error: %+v", apiErr)
	}
}

func TestPlayWinningGameAgainstServer(t *testing.T) {
	server := newTriviaServer(t)
	client := NewHTTPClient(server.URL+"/", server.Client())
	ctx := context.Background()

	view, err := client.StartGame(ctx, "Alice")
	if err != nil {
		t.Fatalf("StartGame failed: %v", err)
	}
	if view.Player != "alice" || view.State != trivia.StateInProgress || view.Question == nil {
		t.Fatalf("unexpected view: %+v", view)
	}

	ignored, err := client.SubmitAnswer(ctx, view.GameID, trivia.NoChoice)
	if err != nil {
		t.Fatalf("SubmitAnswer(NoChoice) failed: %v", err)
	}
	if ignored.Outcome.Kind != trivia.OutcomeIgnored || *ignored.Game.Question != *view.Question {
		t.Fatalf("unexpected ignored answer: %+v", ignored)
	}

	var answer trivia.AnswerResult
	for view.State == trivia.StateInProgress {
		answer, err = client.SubmitAnswer(ctx, view.GameID, correctChoice(t, view))
		if err != nil {
			t.Fatalf("SubmitAnswer failed: %v", err)
		}
		view = answer.Game
	}
	if answer.Outcome != (trivia.Outcome{Kind: trivia.OutcomeWon, Correct: 3, Total: 3}) {
		t.Fatalf("final outcome = %+v", answer.Outcome)
	}

	result, err := client.GetResult(ctx, view.GameID)
	if err != nil {
		t.Fatalf("GetResult failed: %v", err)
	}
	if result != trivia.NewResult(3, 3) {
		t.Fatalf("result = %+v", result)
	}

	_, err = client.SubmitAnswer(ctx, view.GameID, 0)
	if !errors.Is(err, trivia.ErrInvalidState) {
		t.Fatalf("submit after win err = %v, want ErrInvalidState", err)
	}
}

func TestUnknownGameMapsToNotFound(t *testing.T) {
	server := newTriviaServer(t)
	client := NewHTTPClient(server.URL, server.Client())

	_, err := client.SubmitAnswer(context.Background(), "missing", 1)
	if !errors.Is(err, trivia.ErrGameNotFound) {
		t.Fatalf("err = %v, want ErrGameNotFound", err)
	}
}

func TestPlayerStats(t *testing.T) {
	server := newTriviaServer(t)
	client := NewHTTPClient(server.URL, server.Client())

	stats, err := client.PlayerStats(context.Background(), "Bob")
	if err != nil {
		t.Fatalf("PlayerStats failed: %v", err)
	}
	if stats.Player != "bob" || stats.Played != 0 || !stats.LastPlayedAt.IsZero() {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if _, err := client.PlayerStats(context.Background(), " "); !errors.Is(err, trivia.ErrInvalidPlayer) {
		t.Fatalf("blank player err = %v", err)
	}
}
