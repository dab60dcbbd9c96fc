package game

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
)

func TestRotate(t *testing.T) {
	store := newFakeSongStore()
	store.spotify[DailyLevel] = completeSong("yesterday", DailyLevel)

	r := NewRotator(store, []string{"a", "b", "c"}, zerolog.Nop())
	r.pick = func(int) int { return 1 }

	trackID, err := r.Rotate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trackID != "b" {
		t.Errorf("rotated to %q, want %q", trackID, "b")
	}
	if store.dailyDeletes != 1 {
		t.Errorf("daily deletes = %d, want 1", store.dailyDeletes)
	}
	if len(store.dailyInserts) != 1 || store.dailyInserts[0] != "b" {
		t.Errorf("daily inserts = %v, want [b]", store.dailyInserts)
	}

	// The installed row is a placeholder awaiting a cache-fill.
	song, ok := store.spotify[DailyLevel]
	if !ok {
		t.Fatal("no song installed under the daily level")
	}
	if song.Complete() {
		t.Errorf("installed daily song should be a placeholder, got %+v", song)
	}
}

func TestRotateEmptyPoolFallsBack(t *testing.T) {
	store := newFakeSongStore()

	r := NewRotator(store, nil, zerolog.Nop())

	trackID, err := r.Rotate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trackID != fallbackDailyTrack {
		t.Errorf("rotated to %q, want fallback %q", trackID, fallbackDailyTrack)
	}
}

func TestRotatePickWithinBounds(t *testing.T) {
	store := newFakeSongStore()
	pool := []string{"a", "b", "c", "d"}

	r := NewRotator(store, pool, zerolog.Nop())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		trackID, err := r.Rotate(context.Background())
		if err != nil {
			t.Fatalf("rotation %d failed: %v", i, err)
		}
		seen[trackID] = true
	}
	for id := range seen {
		found := false
		for _, candidate := range pool {
			if id == candidate {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("rotated to %q, not in the pool", id)
		}
	}
}
