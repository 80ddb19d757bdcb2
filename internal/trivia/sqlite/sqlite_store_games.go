package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"trivia-app/internal/trivia"
)

const defaultRecentLimit = 10

// RecordGame stores a finished game. Recording the same game ID twice keeps
// the first row.
func (s *SQLiteStore) RecordGame(ctx context.Context, record trivia.GameRecord) error {
	if record.GameID == "" {
		return errors.New("game id is required")
	}
	if record.FinishedAt.IsZero() {
		record.FinishedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO games (game_id, player, outcome, correct, total, finished_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		record.GameID,
		record.Player,
		record.Outcome,
		record.Correct,
		record.Total,
		record.FinishedAt.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) GetPlayerStats(ctx context.Context, player string) (trivia.PlayerStats, error) {
	stats := trivia.PlayerStats{Player: player}

	var lastPlayed sql.NullInt64
	err := s.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN outcome = 'won' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN outcome = 'lost' THEN 1 ELSE 0 END), 0),
			MAX(finished_at_unix)
		 FROM games
		 WHERE player = ?`,
		player,
	).Scan(&stats.Played, &stats.Won, &stats.Lost, &lastPlayed)
	if err != nil {
		return trivia.PlayerStats{}, err
	}

	if lastPlayed.Valid {
		stats.LastPlayedAt = time.Unix(0, lastPlayed.Int64).UTC()
	}
	return stats, nil
}

func (s *SQLiteStore) ListRecentGames(ctx context.Context, limit int) ([]trivia.GameRecord, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT game_id, player, outcome, correct, total, finished_at_unix
		 FROM games
		 ORDER BY finished_at_unix DESC, game_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]trivia.GameRecord, 0)
	for rows.Next() {
		var (
			record         trivia.GameRecord
			finishedAtUnix int64
		)
		if err := rows.Scan(&record.GameID, &record.Player, &record.Outcome, &record.Correct, &record.Total, &finishedAtUnix); err != nil {
			return nil, err
		}
		record.FinishedAt = time.Unix(0, finishedAtUnix).UTC()
		records = append(records, record)
	}

	return records, rows.Err()
}
