package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"trivia-app/internal/trivia"
)

var _ trivia.ResultRepository = (*SQLiteStore)(nil)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
		_ = os.Remove(path)
		_ = os.Remove(path + "-journal")
	})
	return store
}

func TestSQLiteStoreRecordAndStats(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	base := time.Unix(1700000000, 0).UTC()
	records := []trivia.GameRecord{
		{GameID: "g1", Player: "alice", Outcome: "won", Correct: 3, Total: 3, FinishedAt: base},
		{GameID: "g2", Player: "alice", Outcome: "lost", Correct: 1, Total: 3, FinishedAt: base.Add(time.Minute)},
		{GameID: "g3", Player: "bob", Outcome: "lost", Correct: 0, Total: 3, FinishedAt: base.Add(2 * time.Minute)},
	}
	for _, record := range records {
		if err := store.RecordGame(ctx, record); err != nil {
			t.Fatalf("RecordGame(%s) failed: %v", record.GameID, err)
		}
	}

	stats, err := store.GetPlayerStats(ctx, "alice")
	if err != nil {
		t.Fatalf("GetPlayerStats failed: %v", err)
	}
	if stats.Played != 2 || stats.Won != 1 || stats.Lost != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !stats.LastPlayedAt.Equal(base.Add(time.Minute)) {
		t.Fatalf("last played = %v, want %v", stats.LastPlayedAt, base.Add(time.Minute))
	}
}

func TestSQLiteStoreStatsForUnknownPlayer(t *testing.T) {
	store := newTestSQLiteStore(t)

	stats, err := store.GetPlayerStats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetPlayerStats failed: %v", err)
	}
	if stats.Player != "nobody" || stats.Played != 0 || !stats.LastPlayedAt.IsZero() {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestSQLiteStoreRecordGameKeepsFirstRow(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	first := trivia.GameRecord{GameID: "g1", Player: "alice", Outcome: "won", Correct: 3, Total: 3, FinishedAt: time.Unix(1, 0)}
	second := first
	second.Outcome = "lost"

	if err := store.RecordGame(ctx, first); err != nil {
		t.Fatalf("RecordGame failed: %v", err)
	}
	if err := store.RecordGame(ctx, second); err != nil {
		t.Fatalf("duplicate RecordGame failed: %v", err)
	}

	recent, err := store.ListRecentGames(ctx, 0)
	if err != nil {
		t.Fatalf("ListRecentGames failed: %v", err)
	}
	if len(recent) != 1 || recent[0].Outcome != "won" {
		t.Fatalf("unexpected games: %+v", recent)
	}
}

func TestSQLiteStoreRecordGameRequiresID(t *testing.T) {
	store := newTestSQLiteStore(t)
	if err := store.RecordGame(context.Background(), trivia.GameRecord{Player: "alice"}); err == nil {
		t.Fatalf("expected error for missing game id")
	}
}

func TestSQLiteStoreListRecentGamesNewestFirst(t *testing.T) {
	store := newTestSQLiteStore(t)
	ctx := context.Background()

	base := time.Unix(1700000000, 0).UTC()
	for idx, id := range []string{"old", "mid", "new"} {
		record := trivia.GameRecord{
			GameID:     id,
			Player:     "alice",
			Outcome:    "lost",
			Total:      3,
			FinishedAt: base.Add(time.Duration(idx) * time.Hour),
		}
		if err := store.RecordGame(ctx, record); err != nil {
			t.Fatalf("RecordGame failed: %v", err)
		}
	}

	recent, err := store.ListRecentGames(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecentGames failed: %v", err)
	}
	if len(recent) != 2 || recent[0].GameID != "new" || recent[1].GameID != "mid" {
		t.Fatalf("unexpected order: %+v", recent)
	}
	if !recent[0].FinishedAt.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("finished_at = %v", recent[0].FinishedAt)
	}
}
