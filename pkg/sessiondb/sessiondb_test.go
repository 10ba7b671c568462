package sessiondb

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hazyhaar/crosswalk/pkg/match"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	key := match.CurrentKey("crosswalk", "alice")

	snap := &match.Snapshot{
		RawInputs:   []match.RawInput{{ID: 0, Text: "General Hospital"}, {ID: 1, Text: "St Mary Clinic"}},
		CleanNames:  []string{"General Hospital (Main)", "Saint Mary Clinic"},
		Matches:     map[int]string{1: "Saint Mary Clinic"},
		LastUpdated: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	if err := db.Save(ctx, key, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := db.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.RawInputs) != 2 || got.RawInputs[1].Text != "St Mary Clinic" {
		t.Errorf("raw inputs = %v", got.RawInputs)
	}
	if len(got.CleanNames) != 2 {
		t.Errorf("clean names = %v", got.CleanNames)
	}
	if got.Matches[1] != "Saint Mary Clinic" {
		t.Errorf("matches = %v", got.Matches)
	}
	if !got.LastUpdated.Equal(snap.LastUpdated) {
		t.Errorf("last updated = %v, want %v", got.LastUpdated, snap.LastUpdated)
	}
}

func TestLoadNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Load(context.Background(), match.CurrentKey("crosswalk", "nobody"))
	if !errors.Is(err, match.ErrNotFound) {
		t.Errorf("Load = %v, want match.ErrNotFound", err)
	}
}

func TestSaveOverwrites(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	key := match.CurrentKey("crosswalk", "alice")

	db.Save(ctx, key, &match.Snapshot{CleanNames: []string{"First"}})
	if err := db.Save(ctx, key, &match.Snapshot{CleanNames: []string{"Second"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := db.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.CleanNames) != 1 || got.CleanNames[0] != "Second" {
		t.Errorf("clean names = %v, want last write", got.CleanNames)
	}
}

func TestKeysIsolated(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	db.Save(ctx, match.CurrentKey("crosswalk", "alice"), &match.Snapshot{CleanNames: []string{"A"}})
	db.Save(ctx, match.CurrentKey("crosswalk", "bob"), &match.Snapshot{CleanNames: []string{"B"}})

	got, err := db.Load(ctx, match.CurrentKey("crosswalk", "alice"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.CleanNames[0] != "A" {
		t.Errorf("alice sees %v", got.CleanNames)
	}
}

func TestAbsentFieldsStayAbsent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	key := match.CurrentKey("crosswalk", "alice")

	// A matches-only snapshot must round-trip with the other collections
	// still nil, so the merge-if-present policy can tell them apart.
	db.Save(ctx, key, &match.Snapshot{Matches: map[int]string{0: "X"}})

	got, err := db.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.RawInputs != nil {
		t.Errorf("raw inputs = %v, want nil (absent)", got.RawInputs)
	}
	if got.CleanNames != nil {
		t.Errorf("clean names = %v, want nil (absent)", got.CleanNames)
	}
	if got.Matches[0] != "X" {
		t.Errorf("matches = %v", got.Matches)
	}
}
