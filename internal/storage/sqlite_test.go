package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/levelgen/internal/core"
	"github.com/vovakirdan/levelgen/internal/level"
	"github.com/vovakirdan/levelgen/internal/physics"
	"github.com/vovakirdan/levelgen/internal/worlds"
)

func openStore(t *testing.T) *Store {
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

func TestStoreSaveAndRecent(t *testing.T) {
	store := openStore(t)

	for i := 1; i <= 3; i++ {
		_, err := store.SaveGeneration(Generation{
			World: 1, Level: i, Seed: int64(i * 100), Mode: "default", Difficulty: 0.1 * float64(i), Platforms: 10 + i,
		})
		if err != nil {
			t.Fatalf("SaveGeneration() failed: %v", err)
		}
	}

	gens, err := store.RecentGenerations(10)
	if err != nil {
		t.Fatalf("RecentGenerations() failed: %v", err)
	}
	if len(gens) != 3 {
		t.Fatalf("Expected 3 generations, got %d", len(gens))
	}

	// Newest first
	if gens[0].Level != 3 || gens[2].Level != 1 {
		t.Errorf("Generations not newest first: %+v", gens)
	}
	if gens[0].Seed != 300 || gens[0].Platforms != 13 || gens[0].Source != SourceCLI {
		t.Errorf("Round-tripped generation = %+v", gens[0])
	}
	if gens[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreRecentLimit(t *testing.T) {
	store := openStore(t)

	for i := 0; i < 5; i++ {
		store.SaveGeneration(Generation{World: 2, Level: i + 1, Seed: int64(i), Mode: "default"})
	}

	gens, err := store.RecentGenerations(2)
	if err != nil {
		t.Fatalf("RecentGenerations() failed: %v", err)
	}
	if len(gens) != 2 {
		t.Errorf("Expected 2 generations with limit, got %d", len(gens))
	}
}

func TestStoreGenerationsForWorld(t *testing.T) {
	store := openStore(t)

	store.SaveGeneration(Generation{World: 1, Level: 1, Seed: 1, Mode: "default"})
	store.SaveGeneration(Generation{World: 2, Level: 1, Seed: 2, Mode: "default"})
	store.SaveGeneration(Generation{World: 2, Level: 2, Seed: 3, Mode: "default"})

	gens, err := store.GenerationsForWorld(2, 10)
	if err != nil {
		t.Fatalf("GenerationsForWorld() failed: %v", err)
	}
	if len(gens) != 2 {
		t.Fatalf("Expected 2 generations for world 2, got %d", len(gens))
	}
	for _, g := range gens {
		if g.World != 2 {
			t.Errorf("Unexpected world %d in results", g.World)
		}
	}
}

func TestStoreFindSeed(t *testing.T) {
	store := openStore(t)

	if _, ok, err := store.FindSeed(3, 4, 0); err != nil || ok {
		t.Fatalf("FindSeed() on empty log = ok %v, err %v", ok, err)
	}

	store.SaveGeneration(Generation{World: 3, Level: 4, Variant: 0, Seed: 11, Mode: "default"})
	store.SaveGeneration(Generation{World: 3, Level: 4, Variant: 1, Seed: 22, Mode: "default"})
	store.SaveGeneration(Generation{World: 3, Level: 4, Variant: 0, Seed: 33, Mode: "default"})

	seed, ok, err := store.FindSeed(3, 4, 0)
	if err != nil || !ok {
		t.Fatalf("FindSeed() = ok %v, err %v", ok, err)
	}
	if seed != 33 {
		t.Errorf("Expected most recent seed 33, got %d", seed)
	}

	seed, _, _ = store.FindSeed(3, 4, 1)
	if seed != 22 {
		t.Errorf("Expected variant seed 22, got %d", seed)
	}
}

func TestStoreRecordContent(t *testing.T) {
	store := openStore(t)

	c := level.New(worlds.For(5), physics.New(12, 0.6, 6))
	c.Level = 7
	c.Variant = 2
	c.Seed = -9
	c.Mode = level.ModeTower
	c.Difficulty = 0.45
	c.AddPlatform(level.NewPlatform(core.NewRect(0, 300, 100, 24), 5, nil))
	c.PlaceCoin(level.Coin{Entity: level.Entity{Rect: core.NewRect(10, 200, 16, 16)}}, core.NewRect(10, 200, 16, 16), true)
	c.PlaceCoin(level.Coin{Entity: level.Entity{Rect: core.NewRect(60, 200, 16, 16)}}, core.NewRect(60, 200, 16, 16), true)
	c.Remove(level.Handle{Kind: level.KindCoin, Index: 1})

	if _, err := store.Record(c, SourceBatch); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	gens, err := store.RecentGenerations(1)
	if err != nil || len(gens) != 1 {
		t.Fatalf("RecentGenerations() = %v, %v", gens, err)
	}
	g := gens[0]
	if g.World != 5 || g.Level != 7 || g.Variant != 2 || g.Seed != -9 {
		t.Errorf("Recorded key = %+v", g)
	}
	if g.Mode != "tower" || g.Difficulty != 0.45 || g.Source != SourceBatch {
		t.Errorf("Recorded metadata = %+v", g)
	}
	if g.Platforms != 1 || g.Coins != 1 {
		t.Errorf("Recorded counts = %+v, removed coins must not count", g)
	}
}

func TestStoreWorldStats(t *testing.T) {
	store := openStore(t)

	store.SaveGeneration(Generation{World: 1, Level: 1, Seed: 1, Mode: "default", Difficulty: 0.2, Platforms: 10, Hazards: 2})
	store.SaveGeneration(Generation{World: 1, Level: 2, Seed: 2, Mode: "default", Difficulty: 0.4, Platforms: 20, Hazards: 3})
	store.SaveGeneration(Generation{World: 4, Level: 1, Seed: 3, Mode: "default", Difficulty: 0.5, Platforms: 15})

	stats, err := store.AllWorldStats()
	if err != nil {
		t.Fatalf("AllWorldStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 worlds, got %d", len(stats))
	}

	w1 := stats[1]
	if w1.Generations != 2 || w1.AvgPlatforms != 15 || w1.TotalHazards != 5 {
		t.Errorf("World 1 stats = %+v", w1)
	}
	if d := w1.AvgDifficulty - 0.3; d > 1e-9 || d < -1e-9 {
		t.Errorf("World 1 average difficulty = %v, expected 0.3", w1.AvgDifficulty)
	}
}

func TestStoreClearGenerations(t *testing.T) {
	store := openStore(t)

	store.SaveGeneration(Generation{World: 1, Level: 1, Seed: 1, Mode: "default"})
	if err := store.ClearGenerations(); err != nil {
		t.Fatalf("ClearGenerations() failed: %v", err)
	}

	gens, _ := store.RecentGenerations(10)
	if len(gens) != 0 {
		t.Errorf("Expected empty log after clear, got %d", len(gens))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
