package trivia

import (
	"context"
	"errors"
	"time"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrInvalidPlayer = errors.New("invalid player")
)

// GameRecord is a finished game as stored in the result history.
type GameRecord struct {
	GameID     string    `json:"game_id"`
	Player     string    `json:"player"`
	Outcome    string    `json:"outcome"`
	Correct    int       `json:"correct"`
	Total      int       `json:"total"`
	FinishedAt time.Time `json:"finished_at"`
}

type PlayerStats struct {
	Player       string    `json:"player"`
	Played       int       `json:"played"`
	Won          int       `json:"won"`
	Lost         int       `json:"lost"`
	LastPlayedAt time.Time `json:"last_played_at"`
}

type ResultRepository interface {
	RecordGame(ctx context.Context, record GameRecord) error
	GetPlayerStats(ctx context.Context, player string) (PlayerStats, error)
	ListRecentGames(ctx context.Context, limit int) ([]GameRecord, error)
}
