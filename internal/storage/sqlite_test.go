package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRecentRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{Seed: 1, Tier: "NORMAL", Outcome: "defeat", WavesCleared: 7, DurationSecs: 140},
		{Seed: 2, Tier: "NORMAL", Outcome: "victory", WavesCleared: 30, DurationSecs: 900},
		{Seed: 3, Tier: "HARD", Outcome: "defeat", WavesCleared: 4, DurationSecs: 80},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(recent))
	}

	// Most recent first (id tiebreak within the same timestamp).
	if recent[0].Seed != 3 || recent[2].Seed != 1 {
		t.Errorf("Runs not in recency order: %+v", recent)
	}
	if recent[0].Tier != "HARD" || recent[0].WavesCleared != 4 {
		t.Errorf("Run fields not round-tripped: %+v", recent[0])
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunRecord{Seed: uint32(i), Tier: "NORMAL", Outcome: "defeat"})
	}

	recent, err := store.RecentRuns(3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(recent))
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	best, err := store.BestRun("NORMAL")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("Expected nil best run for empty tier, got %+v", best)
	}

	store.SaveRun(RunRecord{Seed: 1, Tier: "NORMAL", Outcome: "defeat", WavesCleared: 12, DurationSecs: 300})
	store.SaveRun(RunRecord{Seed: 2, Tier: "NORMAL", Outcome: "defeat", WavesCleared: 18, DurationSecs: 500})
	store.SaveRun(RunRecord{Seed: 3, Tier: "NORMAL", Outcome: "defeat", WavesCleared: 18, DurationSecs: 420})
	store.SaveRun(RunRecord{Seed: 4, Tier: "HARD", Outcome: "victory", WavesCleared: 30, DurationSecs: 800})

	best, err = store.BestRun("NORMAL")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil {
		t.Fatal("Expected a best run")
	}
	// Most waves cleared, shortest duration on ties.
	if best.Seed != 3 || best.WavesCleared != 18 {
		t.Errorf("Best run = %+v, want seed 3 with 18 waves", best)
	}
}

func TestStoreStatsForTier(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.StatsForTier("NORMAL")
	if err != nil {
		t.Fatalf("StatsForTier() failed: %v", err)
	}
	if stats.RunsCount != 0 || stats.Victories != 0 {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(RunRecord{Seed: 1, Tier: "NORMAL", Outcome: "victory", WavesCleared: 30})
	store.SaveRun(RunRecord{Seed: 2, Tier: "NORMAL", Outcome: "defeat", WavesCleared: 10})
	store.SaveRun(RunRecord{Seed: 3, Tier: "HARD", Outcome: "defeat", WavesCleared: 5})

	stats, err = store.StatsForTier("NORMAL")
	if err != nil {
		t.Fatalf("StatsForTier() failed: %v", err)
	}
	if stats.RunsCount != 2 {
		t.Errorf("RunsCount = %d, want 2", stats.RunsCount)
	}
	if stats.Victories != 1 {
		t.Errorf("Victories = %d, want 1", stats.Victories)
	}
	if stats.BestWaves != 30 {
		t.Errorf("BestWaves = %d, want 30", stats.BestWaves)
	}
	if stats.AvgWaves != 20 {
		t.Errorf("AvgWaves = %v, want 20", stats.AvgWaves)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{Seed: 1, Tier: "NORMAL", Outcome: "defeat"})
	store.SaveRun(RunRecord{Seed: 2, Tier: "NORMAL", Outcome: "defeat"})
	store.SaveRun(RunRecord{Seed: 3, Tier: "HARD", Outcome: "defeat"})

	if err := store.ClearRuns("NORMAL"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	stats, _ := store.StatsForTier("NORMAL")
	if stats.RunsCount != 0 {
		t.Errorf("Expected 0 NORMAL runs after clear, got %d", stats.RunsCount)
	}
	hard, _ := store.StatsForTier("HARD")
	if hard.RunsCount != 1 {
		t.Error("HARD runs should not be affected by clearing NORMAL")
	}
}
