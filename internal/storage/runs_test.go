package storage

import (
	"testing"
	"time"
)

func TestSaveAndLoadRun(t *testing.T) {
	store := openTest(t)

	rec := RunRecord{
		RunID:     "8c1f6a2e-0b7d-4d5f-9f3a-3f1e2d4c5b6a",
		GameID:    "snake",
		Score:     40,
		Ticks:     1234,
		EndReason: "collision",
		Seed:      99,
		Duration:  20*time.Second + 500*time.Millisecond,
	}
	if _, err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunByID(rec.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatalf("RunByID() returned nil for a saved run")
	}
	if got.GameID != rec.GameID || got.Score != rec.Score || got.Ticks != rec.Ticks ||
		got.EndReason != rec.EndReason || got.Seed != rec.Seed || got.Duration != rec.Duration {
		t.Errorf("RunByID() = %+v, expected %+v", got, rec)
	}
	if got.CreatedAt.IsZero() {
		t.Errorf("CreatedAt not set")
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTest(t)

	got, err := store.RunByID("nope")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("RunByID() = %+v for a missing run", got)
	}
}

func TestDuplicateRunIDRejected(t *testing.T) {
	store := openTest(t)

	rec := RunRecord{RunID: "dup", GameID: "racer", EndReason: "stopped"}
	if _, err := store.SaveRun(rec); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(rec); err == nil {
		t.Errorf("saving the same run twice should fail")
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTest(t)

	for i, id := range []string{"a", "b", "c", "d"} {
		game := "racer"
		if i%2 == 1 {
			game = "snake"
		}
		if _, err := store.SaveRun(RunRecord{RunID: id, GameID: game, Score: i, EndReason: "collision"}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 4 || all[0].RunID != "d" || all[3].RunID != "a" {
		t.Errorf("RecentRuns() order = %v", runIDs(all))
	}

	racer, err := store.RecentRuns("racer", 10)
	if err != nil {
		t.Fatalf("RecentRuns(racer) failed: %v", err)
	}
	if len(racer) != 2 || racer[0].RunID != "c" || racer[1].RunID != "a" {
		t.Errorf("RecentRuns(racer) = %v", runIDs(racer))
	}

	limited, _ := store.RecentRuns("", 1)
	if len(limited) != 1 {
		t.Errorf("RecentRuns limit 1 returned %d", len(limited))
	}
}

func runIDs(rs []RunRecord) []string {
	ids := make([]string, len(rs))
	for i, r := range rs {
		ids[i] = r.RunID
	}
	return ids
}

func TestRecordRunLinksScore(t *testing.T) {
	store := openTest(t)

	if err := store.RecordRun(RunRecord{RunID: "r-1", GameID: "racer", Score: 70, EndReason: "collision"}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	if err := store.RecordRun(RunRecord{RunID: "r-2", GameID: "racer", EndReason: "stopped"}); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}

	scores, err := store.TopScores("racer", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 70 || scores[0].RunID != "r-1" {
		t.Errorf("scores = %+v, expected one score linked to r-1", scores)
	}

	runs, err := store.RecentRuns("racer", 10)
	if err != nil || len(runs) != 2 {
		t.Fatalf("RecentRuns() = %d runs, %v; expected both", len(runs), err)
	}
}

func TestRecordRunIsAtomic(t *testing.T) {
	store := openTest(t)

	rec := RunRecord{RunID: "dup", GameID: "snake", Score: 10, EndReason: "collision"}
	if err := store.RecordRun(rec); err != nil {
		t.Fatalf("RecordRun() failed: %v", err)
	}
	// Same run id violates the unique constraint; its score must not land.
	rec.Score = 999
	if err := store.RecordRun(rec); err == nil {
		t.Fatalf("duplicate run id should fail")
	}

	high, err := store.HighScore("snake")
	if err != nil || high != 10 {
		t.Errorf("HighScore() = %d, %v; expected 10", high, err)
	}
}

func TestSaveScoreHasNoRun(t *testing.T) {
	store := openTest(t)
	if _, err := store.SaveScore("snake", 5); err != nil {
		t.Fatal(err)
	}
	scores, _ := store.TopScores("snake", 1)
	if len(scores) != 1 || scores[0].RunID != "" {
		t.Errorf("scores = %+v, expected an unlinked score", scores)
	}
}
