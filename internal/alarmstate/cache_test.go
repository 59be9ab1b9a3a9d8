package alarmstate

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func setupTestCache(t *testing.T) *Cache {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "alarm_state.json"))
}

func TestSnoozeAndExpiry(t *testing.T) {
	cache := setupTestCache(t)

	base := time.Date(2026, 3, 14, 7, 0, 5, 0, time.UTC)
	cache.now = func() time.Time { return base }

	cache.Snooze("a1", 10)

	if !cache.IsSnoozed("a1") {
		t.Fatal("alarm should be snoozed immediately after Snooze")
	}

	until := cache.SnoozedUntil("a1")
	want := base.Add(10 * time.Minute)
	if !until.Equal(want) {
		t.Errorf("SnoozedUntil = %v, want %v", until, want)
	}

	// One tick before the deadline: still snoozed.
	cache.now = func() time.Time { return want.Add(-time.Second) }
	if !cache.IsSnoozed("a1") {
		t.Error("alarm should still be snoozed before the deadline")
	}

	// At and after the deadline: lazy expiry, no cleanup required.
	cache.now = func() time.Time { return want }
	if cache.IsSnoozed("a1") {
		t.Error("alarm should not be snoozed once the deadline has passed")
	}
}

func TestSnoozeClampsNegativeMinutes(t *testing.T) {
	cache := setupTestCache(t)
	cache.Snooze("a1", -5)

	if cache.IsSnoozed("a1") {
		t.Error("negative snooze should clamp to zero and expire immediately")
	}
}

func TestSnoozeOverwritesPrior(t *testing.T) {
	cache := setupTestCache(t)

	base := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return base }

	cache.Snooze("a1", 5)
	cache.Snooze("a1", 15)

	want := base.Add(15 * time.Minute)
	if got := cache.SnoozedUntil("a1"); !got.Equal(want) {
		t.Errorf("SnoozedUntil = %v, want overwritten deadline %v", got, want)
	}
}

func TestDismissClearsSnooze(t *testing.T) {
	cache := setupTestCache(t)

	cache.Snooze("a1", 60)
	cache.Dismiss("a1")

	if cache.IsSnoozed("a1") {
		t.Error("dismiss should clear the snooze entry")
	}

	state := cache.GetState()
	if len(state.DismissedIDs) != 1 || state.DismissedIDs[0] != "a1" {
		t.Errorf("DismissedIDs = %v, want [a1]", state.DismissedIDs)
	}

	// Dismiss is idempotent.
	cache.Dismiss("a1")
	if got := len(cache.GetState().DismissedIDs); got != 1 {
		t.Errorf("dismissed set has %d entries after double dismiss, want 1", got)
	}
}

func TestMarkTriggered(t *testing.T) {
	cache := setupTestCache(t)

	at := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	cache.MarkTriggered("a1", at)

	if got := cache.LastTriggered("a1"); !got.Equal(at) {
		t.Errorf("LastTriggered = %v, want %v", got, at)
	}

	// Zero time defaults to the cache's clock.
	now := time.Date(2026, 3, 15, 8, 30, 0, 0, time.UTC)
	cache.now = func() time.Time { return now }
	cache.MarkTriggered("a2", time.Time{})
	if got := cache.LastTriggered("a2"); !got.Equal(now) {
		t.Errorf("LastTriggered with zero time = %v, want %v", got, now)
	}
}

func TestClearRetainsTriggerHistory(t *testing.T) {
	cache := setupTestCache(t)

	at := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	cache.Snooze("a1", 60)
	cache.Dismiss("a1")
	cache.MarkTriggered("a1", at)

	cache.Clear("a1")

	state := cache.GetState()
	if len(state.DismissedIDs) != 0 {
		t.Errorf("Clear left dismissed ids: %v", state.DismissedIDs)
	}
	if _, ok := state.SnoozedUntil["a1"]; ok {
		t.Error("Clear left a snooze entry")
	}
	if got := cache.LastTriggered("a1"); !got.Equal(at) {
		t.Errorf("Clear dropped trigger history: got %v, want %v", got, at)
	}
}

func TestCorruptFileTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "alarm_state.json")
	if err := os.WriteFile(path, []byte("{definitely not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt file: %v", err)
	}

	cache := New(path)

	state := cache.GetState()
	if len(state.SnoozedUntil) != 0 || len(state.LastTriggered) != 0 || len(state.DismissedIDs) != 0 {
		t.Errorf("corrupt file should yield empty state, got %+v", state)
	}
	if cache.IsSnoozed("a1") {
		t.Error("IsSnoozed should be false for corrupt state")
	}

	// Writes recover the file.
	cache.Snooze("a1", 10)
	if !cache.IsSnoozed("a1") {
		t.Error("cache should be writable after corruption")
	}
}

func TestMissingFileTreatedAsEmpty(t *testing.T) {
	cache := New(filepath.Join(t.TempDir(), "does", "not", "exist.json"))

	if cache.IsSnoozed("a1") {
		t.Error("missing file should yield not-snoozed")
	}
	if got := cache.LastTriggered("a1"); !got.IsZero() {
		t.Errorf("missing file should yield zero trigger time, got %v", got)
	}
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alarm_state.json")

	first := New(path)
	base := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)
	first.now = func() time.Time { return base }
	first.Snooze("a1", 10)

	second := New(path)
	second.now = func() time.Time { return base.Add(time.Minute) }
	if !second.IsSnoozed("a1") {
		t.Error("snooze state should survive a restart")
	}
}

func TestConcurrentWritersKeepBothRecords(t *testing.T) {
	cache := setupTestCache(t)
	at := time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			cache.MarkTriggered("a1", at)
		}()
		go func() {
			defer wg.Done()
			cache.Snooze("a2", 10)
		}()
	}
	wg.Wait()

	if cache.LastTriggered("a1").IsZero() {
		t.Error("trigger history lost under concurrent writes")
	}
	if cache.SnoozedUntil("a2").IsZero() {
		t.Error("snooze record lost under concurrent writes")
	}
}
