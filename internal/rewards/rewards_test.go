package rewards

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/storage"
)

func setupTestService(t *testing.T) (*Service, storage.Provider) {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	return New(store), store
}

func addUser(t *testing.T, store storage.Provider, username string) models.User {
	t.Helper()
	user := models.User{ID: uuid.New().String(), Username: username, CreatedAt: time.Now()}
	if err := store.AddUser(user); err != nil {
		t.Fatalf("failed to add user: %v", err)
	}
	return user
}

func TestAwardAccumulatesAndLevels(t *testing.T) {
	svc, store := setupTestService(t)
	user := addUser(t, store, "alex")

	stats, err := svc.Award(user.ID, 10, 250)
	if err != nil {
		t.Fatalf("Award failed: %v", err)
	}
	if stats.Coins != 10 || stats.XP != 250 || stats.Level != 1 {
		t.Errorf("stats after first award = %+v", stats)
	}

	stats, err = svc.Award(user.ID, 0, 800)
	if err != nil {
		t.Fatalf("Award failed: %v", err)
	}
	if stats.XP != 1050 || stats.Level != 2 {
		t.Errorf("stats after crossing a level = %+v", stats)
	}
}

func TestSpend(t *testing.T) {
	svc, store := setupTestService(t)
	user := addUser(t, store, "alex")

	if _, err := svc.Award(user.ID, 500, 0); err != nil {
		t.Fatalf("Award failed: %v", err)
	}

	stats, err := svc.Spend(user.ID, 300)
	if err != nil {
		t.Fatalf("Spend failed: %v", err)
	}
	if stats.Coins != 200 {
		t.Errorf("coins after spend = %d, want 200", stats.Coins)
	}

	if _, err := svc.Spend(user.ID, 1000); err == nil {
		t.Error("overspend should fail")
	}
	stats, _ = store.GetStats(user.ID)
	if stats.Coins != 200 {
		t.Errorf("failed spend mutated balance: %d", stats.Coins)
	}
}

func TestLeaderboardRanksByXP(t *testing.T) {
	svc, store := setupTestService(t)
	sarah := addUser(t, store, "sarah")
	mike := addUser(t, store, "mike")
	alex := addUser(t, store, "alex")

	if _, err := svc.Award(sarah.ID, 0, 12500); err != nil {
		t.Fatalf("Award failed: %v", err)
	}
	if _, err := svc.Award(mike.ID, 0, 11200); err != nil {
		t.Fatalf("Award failed: %v", err)
	}
	if _, err := svc.Award(alex.ID, 0, 11200); err != nil {
		t.Fatalf("Award failed: %v", err)
	}

	entries, err := svc.Leaderboard()
	if err != nil {
		t.Fatalf("Leaderboard failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	if entries[0].Username != "sarah" || entries[0].Rank != 1 {
		t.Errorf("top entry = %+v", entries[0])
	}
	// Equal XP ties break by username.
	if entries[1].Username != "alex" || entries[2].Username != "mike" {
		t.Errorf("tie-break order = %q, %q", entries[1].Username, entries[2].Username)
	}
	if entries[2].Rank != 3 {
		t.Errorf("last rank = %d, want 3", entries[2].Rank)
	}
}

func TestFocusCompleteExtendsStreak(t *testing.T) {
	svc, store := setupTestService(t)
	user := addUser(t, store, "sam")

	stats, err := svc.FocusComplete(user.ID, false)
	if err != nil {
		t.Fatalf("FocusComplete failed: %v", err)
	}
	if stats.Coins != FocusSessionCoins || stats.XP != FocusSessionXP {
		t.Errorf("standard session payout = %+v", stats)
	}
	if stats.Streak != 1 {
		t.Errorf("streak = %d, want 1", stats.Streak)
	}

	stats, err = svc.FocusComplete(user.ID, true)
	if err != nil {
		t.Fatalf("FocusComplete failed: %v", err)
	}
	if stats.Coins != FocusSessionCoins+UltraFocusCoins || stats.XP != FocusSessionXP+UltraFocusXP {
		t.Errorf("ultra session payout = %+v", stats)
	}
	if stats.Streak != 2 {
		t.Errorf("streak = %d, want 2", stats.Streak)
	}
}
