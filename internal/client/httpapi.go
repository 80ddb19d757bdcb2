package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"trivia-app/internal/trivia"
)

const defaultServer = "http://127.0.0.1:8080"

var ErrServiceUnavailable = errors.New("trivia service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// Unwrap maps well-known statuses back onto the game errors.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return trivia.ErrGameNotFound
	case http.StatusConflict:
		return trivia.ErrInvalidState
	default:
		return nil
	}
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

type questionItem struct {
	Number  int      `json:"number"`
	Total   int      `json:"total"`
	Title   string   `json:"title"`
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

type gameItem struct {
	GameID   string        `json:"game_id"`
	Player   string        `json:"player"`
	State    string        `json:"state"`
	Correct  int           `json:"correct"`
	Total    int           `json:"total"`
	Question *questionItem `json:"question,omitempty"`
}

type startGameRequest struct {
	Player string `json:"player"`
}

type answerRequest struct {
	Choice *int `json:"choice"`
}

type answerResponse struct {
	Outcome string   `json:"outcome"`
	Correct int      `json:"correct"`
	Total   int      `json:"total"`
	Game    gameItem `json:"game"`
}

type resultResponse struct {
	NumCorrect   int `json:"num_correct"`
	NumQuestions int `json:"num_questions"`
}

type playerStatsResponse struct {
	Player       string     `json:"player"`
	Played       int        `json:"played"`
	Won          int        `json:"won"`
	Lost         int        `json:"lost"`
	LastPlayedAt *time.Time `json:"last_played_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultServer
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *HTTPClient) StartGame(ctx context.Context, player string) (trivia.GameView, error) {
	var payload gameItem
	if err := c.doJSON(ctx, http.MethodPost, "/games", startGameRequest{Player: player}, &payload); err != nil {
		return trivia.GameView{}, err
	}
	return toGameView(payload)
}

func (c *HTTPClient) SubmitAnswer(ctx context.Context, gameID string, choice trivia.Choice) (trivia.AnswerResult, error) {
	request := answerRequest{}
	if choice >= 0 {
		index := int(choice)
		request.Choice = &index
	}

	var payload answerResponse
	path := "/games/" + url.PathEscape(gameID) + "/answers"
	if err := c.doJSON(ctx, http.MethodPost, path, request, &payload); err != nil {
		return trivia.AnswerResult{}, err
	}

	kind, err := parseOutcomeKind(payload.Outcome)
	if err != nil {
		return trivia.AnswerResult{}, err
	}
	view, err := toGameView(payload.Game)
	if err != nil {
		return trivia.AnswerResult{}, err
	}

	return trivia.AnswerResult{
		Outcome: trivia.Outcome{Kind: kind, Correct: payload.Correct, Total: payload.Total},
		Game:    view,
	}, nil
}

func (c *HTTPClient) GetResult(ctx context.Context, gameID string) (trivia.Result, error) {
	var payload resultResponse
	if err := c.doJSON(ctx, http.MethodGet, "/games/"+url.PathEscape(gameID)+"/result", nil, &payload); err != nil {
		return trivia.Result{}, err
	}
	return trivia.NewResult(payload.NumCorrect, payload.NumQuestions), nil
}

func (c *HTTPClient) PlayerStats(ctx context.Context, player string) (trivia.PlayerStats, error) {
	if strings.TrimSpace(player) == "" {
		return trivia.PlayerStats{}, trivia.ErrInvalidPlayer
	}

	var payload playerStatsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/players/"+url.PathEscape(player)+"/stats", nil, &payload); err != nil {
		return trivia.PlayerStats{}, err
	}

	stats := trivia.PlayerStats{
		Player: payload.Player,
		Played: payload.Played,
		Won:    payload.Won,
		Lost:   payload.Lost,
	}
	if payload.LastPlayedAt != nil {
		stats.LastPlayedAt = payload.LastPlayedAt.UTC()
	}
	return stats, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil && strings.TrimSpace(payload.Error) != "" {
			apiErr.Message = payload.Error
		}
		if apiErr.Message == "" {
			apiErr.Message = response.Status
		}
		return &apiErr
	}

	if responseBody == nil {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
