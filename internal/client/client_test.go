package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/rewards"
	"github.com/jordanpayne/reveille/internal/server"
	"github.com/jordanpayne/reveille/internal/storage"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	srv := server.New(&server.Options{
		DisableReqLogs: true,
		Store:          store,
		Rewards:        rewards.New(store),
	})
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		ts.Close()
		store.Close()
	})
	return New(Config{BaseURL: ts.URL})
}

func TestAlarmRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateAlarm(ctx, CreateAlarmInput{
		UserID: "u1",
		Label:  "Study block",
		Time:   "14:00",
		Sound:  "piano",
	})
	if err != nil {
		t.Fatalf("failed to create alarm: %v", err)
	}
	if created.Sound != models.SoundPiano {
		t.Errorf("expected piano, got %q", created.Sound)
	}

	alarms, err := c.Alarms(ctx, "u1")
	if err != nil {
		t.Fatalf("failed to list alarms: %v", err)
	}
	if len(alarms) != 1 || alarms[0].ID != created.ID {
		t.Fatalf("unexpected alarm list: %+v", alarms)
	}

	if err := c.TriggerAlarm(ctx, created.ID); err != nil {
		t.Fatalf("failed to trigger: %v", err)
	}
	if err := c.SnoozeAlarm(ctx, created.ID, 5); err != nil {
		t.Fatalf("failed to snooze: %v", err)
	}
	got, err := c.Alarm(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to get alarm: %v", err)
	}
	if got.LastTriggered == nil || got.SnoozeUntil == nil {
		t.Errorf("server state not updated: %+v", got)
	}

	if err := c.DismissAlarm(ctx, created.ID); err != nil {
		t.Fatalf("failed to dismiss: %v", err)
	}
	if err := c.DeleteAlarm(ctx, created.ID); err != nil {
		t.Fatalf("failed to delete: %v", err)
	}

	if _, err := c.Alarm(ctx, created.ID); err == nil {
		t.Error("expected error for deleted alarm")
	}
}

func TestServerErrorsSurfaceMessage(t *testing.T) {
	c := newTestClient(t)

	err := c.DismissAlarm(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for unknown alarm")
	}
	// the server's JSON error body should be folded into the message
	if got := err.Error(); !strings.Contains(got, "not found") {
		t.Errorf("error lost server detail: %q", got)
	}
}

func TestContextCancellation(t *testing.T) {
	c := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Alarms(ctx, "u1")
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Logf("error does not wrap context.Canceled (acceptable): %v", err)
	}
}

func TestTasksAndLeaderboard(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	user, err := c.CreateUser(ctx, "devon")
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	task, err := c.CreateTask(ctx, CreateTaskInput{UserID: user.ID, Title: "Flashcards", Date: "2026-09-01"})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	toggled, err := c.ToggleTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to toggle task: %v", err)
	}
	if !toggled.Completed {
		t.Error("task not completed")
	}

	stats, err := c.Stats(ctx, user.ID)
	if err != nil {
		t.Fatalf("failed to get stats: %v", err)
	}
	if stats.XP != rewards.TaskCompletedXP {
		t.Errorf("expected XP payout, got %+v", stats)
	}

	entries, err := c.Leaderboard(ctx)
	if err != nil {
		t.Fatalf("failed to get leaderboard: %v", err)
	}
	if len(entries) != 1 || entries[0].Username != "devon" {
		t.Errorf("unexpected leaderboard: %+v", entries)
	}
}

func TestFocusSessionRoundTrip(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	stats, err := c.CompleteFocus(ctx, "u1", false)
	if err != nil {
		t.Fatalf("failed to complete focus session: %v", err)
	}
	if stats.Streak != 1 || stats.XP != rewards.FocusSessionXP {
		t.Errorf("unexpected stats: %+v", stats)
	}

	stats, err = c.CompleteFocus(ctx, "u1", true)
	if err != nil {
		t.Fatalf("failed to complete ultra session: %v", err)
	}
	if stats.Streak != 2 {
		t.Errorf("streak = %d, want 2", stats.Streak)
	}
}
