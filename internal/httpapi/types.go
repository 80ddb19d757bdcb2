package httpapi

import (
	"time"

	"trivia-app/internal/trivia"
)

type startGameRequest struct {
	Player string `json:"player"`
}

type questionResponse struct {
	Number  int      `json:"number"`
	Total   int      `json:"total"`
	Title   string   `json:"title"`
	Text    string   `json:"text"`
	Answers []string `json:"answers"`
}

type gameResponse struct {
	GameID   string            `json:"game_id"`
	Player   string            `json:"player"`
	State    string            `json:"state"`
	Correct  int               `json:"correct"`
	Total    int               `json:"total"`
	Question *questionResponse `json:"question,omitempty"`
}

// answerRequest carries a choice index; null or a missing field means
// nothing was selected. Question, when set, must be the number of the
// question being shown.
type answerRequest struct {
	Choice   *int `json:"choice"`
	Question *int `json:"question,omitempty"`
}

type answerResponse struct {
	Outcome string         `json:"outcome"`
	Correct int            `json:"correct"`
	Total   int            `json:"total"`
	Game    gameResponse   `json:"game"`
	Result  *trivia.Result `json:"result,omitempty"`
}

type resultResponse struct {
	GameID       string `json:"game_id"`
	NumCorrect   int    `json:"num_correct"`
	NumQuestions int    `json:"num_questions"`
	Summary      string `json:"summary"`
	ShareText    string `json:"share_text"`
	ShareType    string `json:"share_type"`
}

type playerStatsResponse struct {
	Player       string     `json:"player"`
	Played       int        `json:"played"`
	Won          int        `json:"won"`
	Lost         int        `json:"lost"`
	LastPlayedAt *time.Time `json:"last_played_at,omitempty"`
}

type recentGamesResponse struct {
	Games []trivia.GameRecord `json:"games"`
}

type errorResponse struct {
	Error string `json:"error"`
}
