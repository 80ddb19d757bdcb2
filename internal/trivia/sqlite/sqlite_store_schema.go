package sqlite

import (
	"context"
)

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	// Only finished games are stored; in-progress sessions live in memory.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS games (
			game_id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			outcome TEXT NOT NULL,
			correct INTEGER NOT NULL,
			total INTEGER NOT NULL,
			finished_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_games_player ON games(player);`,
		`CREATE INDEX IF NOT EXISTS idx_games_finished_at ON games(finished_at_unix DESC);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
