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

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	saves := []struct {
		score    int
		distance float64
		pickups  int
		cause    string
	}{
		{100, 1500.5, 3, "hit hazard"},
		{50, 800, 1, "fell into pit"},
		{200, 3200, 7, "fell behind"},
	}
	for _, s := range saves {
		if _, err := store.SaveRun("runner", s.score, s.distance, s.pickups, s.cause); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("runner", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Sorted by score descending
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Unexpected order: %d, %d, %d", runs[0].Score, runs[1].Score, runs[2].Score)
	}
	if runs[0].Distance != 3200 || runs[0].Pickups != 7 || runs[0].Cause != "fell behind" {
		t.Errorf("Run details lost: %+v", runs[0])
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		if _, err := store.SaveRun("runner", i*10, float64(i*100), i, ""); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("runner", 5)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs, got %d", len(runs))
	}
	if runs[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", runs[0].Score)
	}
}

func TestStoreHighScoreAndBestDistance(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	high, err := store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 with no runs, got %d", high)
	}

	store.SaveRun("runner", 120, 2000, 4, "hit hazard")
	store.SaveRun("runner", 340, 1200, 9, "fell into pit")

	high, err = store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 340 {
		t.Errorf("Expected high score 340, got %d", high)
	}

	dist, err := store.BestDistance("runner")
	if err != nil {
		t.Fatalf("BestDistance() failed: %v", err)
	}
	if dist != 2000 {
		t.Errorf("Expected best distance 2000, got %v", dist)
	}
}

func TestStoreGamesAreIsolated(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("runner", 100, 1000, 2, "")
	store.SaveRun("other", 999, 9000, 0, "")

	runs, err := store.TopRuns("runner", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Score != 100 {
		t.Errorf("Cross-game leakage: %+v", runs)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun("runner", 100, 1000, 2, "")
	store.SaveRun("keepme", 55, 500, 1, "")

	if err := store.ClearRuns("runner"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("runner", 10)
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
	kept, _ := store.TopRuns("keepme", 10)
	if len(kept) != 1 {
		t.Errorf("ClearRuns() deleted other games' runs")
	}
}
