package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/rewards"
	"github.com/jordanpayne/reveille/internal/storage"
)

func newTestServer(t *testing.T, token string) (Server, storage.Provider) {
	t.Helper()
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := New(&Options{
		Address:        ":0",
		APIToken:       token,
		DisableReqLogs: true,
		Store:          store,
		Rewards:        rewards.New(store),
	})
	return srv, store
}

func do(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestAlarmCRUDOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, "")

	rec := do(t, srv, http.MethodPost, "/api/alarms", map[string]any{
		"userId": "u1",
		"label":  "Morning run",
		"time":   "06:30",
		"sound":  "chime",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	alarm := decode[models.Alarm](t, rec)
	if alarm.ID == "" {
		t.Fatal("expected server-assigned id")
	}
	if !alarm.Enabled {
		t.Error("expected alarm to default to enabled")
	}
	if alarm.Sound != models.SoundChime {
		t.Errorf("expected chime, got %q", alarm.Sound)
	}
	if alarm.RepeatDays != "[]" {
		t.Errorf("expected repeatDays default \"[]\", got %q", alarm.RepeatDays)
	}

	rec = do(t, srv, http.MethodGet, "/api/alarms?userId=u1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	alarms := decode[[]models.Alarm](t, rec)
	if len(alarms) != 1 || alarms[0].ID != alarm.ID {
		t.Fatalf("expected one alarm %s, got %+v", alarm.ID, alarms)
	}

	rec = do(t, srv, http.MethodPut, "/api/alarms/"+alarm.ID, map[string]any{
		"label":   "Evening run",
		"enabled": false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	updated := decode[models.Alarm](t, rec)
	if updated.Label != "Evening run" || updated.Enabled {
		t.Errorf("partial update not applied: %+v", updated)
	}
	if updated.Time != "06:30" {
		t.Errorf("untouched field changed: %q", updated.Time)
	}

	rec = do(t, srv, http.MethodDelete, "/api/alarms/"+alarm.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = do(t, srv, http.MethodGet, "/api/alarms/"+alarm.ID, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestAlarmListRequiresUserID(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rec := do(t, srv, http.MethodGet, "/api/alarms", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without userId, got %d", rec.Code)
	}
}

func TestAlarmListEmptyIsArray(t *testing.T) {
	srv, _ := newTestServer(t, "")
	rec := do(t, srv, http.MethodGet, "/api/alarms?userId=nobody", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", got)
	}
}

func TestCreateAlarmValidation(t *testing.T) {
	srv, _ := newTestServer(t, "")

	cases := []struct {
		name string
		body map[string]any
	}{
		{"missing label", map[string]any{"userId": "u1", "time": "06:30"}},
		{"missing user", map[string]any{"label": "x", "time": "06:30"}},
		{"bad time", map[string]any{"userId": "u1", "label": "x", "time": "6:30"}},
		{"out of range time", map[string]any{"userId": "u1", "label": "x", "time": "24:00"}},
		{"bad sound", map[string]any{"userId": "u1", "label": "x", "time": "06:30", "sound": "klaxon"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/alarms", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestTriggerSnoozeDismiss(t *testing.T) {
	srv, store := newTestServer(t, "")

	rec := do(t, srv, http.MethodPost, "/api/alarms", map[string]any{
		"userId": "u1", "label": "Wake up", "time": "07:00",
	})
	alarm := decode[models.Alarm](t, rec)

	rec = do(t, srv, http.MethodPost, "/api/alarms/"+alarm.ID+"/trigger", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("trigger: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	triggered := decode[models.Alarm](t, rec)
	if triggered.LastTriggered == nil {
		t.Fatal("trigger did not set lastTriggered")
	}
	if time.Since(*triggered.LastTriggered) > time.Minute {
		t.Errorf("lastTriggered not recent: %v", triggered.LastTriggered)
	}

	rec = do(t, srv, http.MethodPost, "/api/alarms/"+alarm.ID+"/snooze", map[string]any{"minutes": 10})
	if rec.Code != http.StatusOK {
		t.Fatalf("snooze: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	snoozed := decode[models.Alarm](t, rec)
	if snoozed.SnoozeUntil == nil {
		t.Fatal("snooze did not set snoozeUntil")
	}
	until := time.Until(*snoozed.SnoozeUntil)
	if until < 9*time.Minute || until > 11*time.Minute {
		t.Errorf("snoozeUntil not ~10m out: %v", until)
	}

	rec = do(t, srv, http.MethodPost, "/api/alarms/"+alarm.ID+"/snooze", map[string]any{"minutes": 0})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for zero-minute snooze, got %d", rec.Code)
	}

	rec = do(t, srv, http.MethodPost, "/api/alarms/"+alarm.ID+"/dismiss", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dismiss: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	dismissed := decode[models.Alarm](t, rec)
	if dismissed.SnoozeUntil != nil {
		t.Error("dismiss did not clear snoozeUntil")
	}

	stats, err := store.GetStats("u1")
	if err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if stats.Coins != rewards.AlarmAnsweredCoins || stats.XP != rewards.AlarmAnsweredXP {
		t.Errorf("dismiss did not pay out alarm reward: %+v", stats)
	}
}

func TestUnknownAlarmIs404(t *testing.T) {
	srv, _ := newTestServer(t, "")
	for _, path := range []string{
		"/api/alarms/nope",
		"/api/alarms/nope/trigger",
		"/api/alarms/nope/dismiss",
	} {
		rec := do(t, srv, http.MethodPost, path, nil)
		if path == "/api/alarms/nope" {
			rec = do(t, srv, http.MethodGet, path, nil)
		}
		if rec.Code != http.StatusNotFound {
			t.Errorf("%s: expected 404, got %d", path, rec.Code)
		}
	}
}

func TestTaskToggleAwardsOnce(t *testing.T) {
	srv, store := newTestServer(t, "")

	rec := do(t, srv, http.MethodPost, "/api/tasks", map[string]any{
		"userId": "u1", "title": "Read chapter 4", "date": "2026-09-01",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	task := decode[models.Task](t, rec)

	rec = do(t, srv, http.MethodPost, "/api/tasks/"+task.ID+"/toggle", nil)
	toggled := decode[models.Task](t, rec)
	if !toggled.Completed {
		t.Fatal("toggle did not complete the task")
	}

	// untoggle keeps the payout
	rec = do(t, srv, http.MethodPost, "/api/tasks/"+task.ID+"/toggle", nil)
	if decode[models.Task](t, rec).Completed {
		t.Fatal("second toggle did not un-complete the task")
	}

	stats, err := store.GetStats("u1")
	if err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if stats.Coins != rewards.TaskCompletedCoins || stats.XP != rewards.TaskCompletedXP {
		t.Errorf("expected single task payout, got %+v", stats)
	}
}

func TestTaskListDateFilter(t *testing.T) {
	srv, _ := newTestServer(t, "")

	for _, date := range []string{"2026-09-01", "2026-09-02"} {
		rec := do(t, srv, http.MethodPost, "/api/tasks", map[string]any{
			"userId": "u1", "title": "task " + date, "date": date,
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
	}

	rec := do(t, srv, http.MethodGet, "/api/tasks?userId=u1&date=2026-09-02", nil)
	tasks := decode[[]models.Task](t, rec)
	if len(tasks) != 1 || tasks[0].Date != "2026-09-02" {
		t.Fatalf("date filter failed: %+v", tasks)
	}
}

func TestNoteCRUDOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, "")

	rec := do(t, srv, http.MethodPost, "/api/notes", map[string]any{
		"userId": "u1", "title": "Lecture notes", "body": "entropy...", "tags": []string{"physics"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	note := decode[models.Note](t, rec)

	rec = do(t, srv, http.MethodPut, "/api/notes/"+note.ID, map[string]any{"body": "enthalpy..."})
	updatedNote := decode[models.Note](t, rec)
	if updatedNote.Body != "enthalpy..." || updatedNote.Title != "Lecture notes" {
		t.Errorf("note update wrong: %+v", updatedNote)
	}

	rec = do(t, srv, http.MethodDelete, "/api/notes/"+note.ID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUsersAndLeaderboardOverHTTP(t *testing.T) {
	srv, _ := newTestServer(t, "")

	rec := do(t, srv, http.MethodPost, "/api/users", map[string]any{"username": "maya"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	user := decode[models.User](t, rec)

	rec = do(t, srv, http.MethodPost, "/api/users", map[string]any{"username": "maya"})
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate username, got %d", rec.Code)
	}

	rec = do(t, srv, http.MethodGet, "/api/users/"+user.ID+"/stats", nil)
	stats := decode[models.Stats](t, rec)
	if stats.Level != 1 {
		t.Errorf("expected fresh user at level 1, got %+v", stats)
	}

	rec = do(t, srv, http.MethodPost, "/api/users/"+user.ID+"/spend", map[string]any{"coins": 5})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for overspend, got %d", rec.Code)
	}

	rec = do(t, srv, http.MethodGet, "/api/leaderboard", nil)
	entries := decode[[]models.LeaderboardEntry](t, rec)
	if len(entries) != 1 || entries[0].Username != "maya" || entries[0].Rank != 1 {
		t.Errorf("unexpected leaderboard: %+v", entries)
	}
}

func TestKeyAuth(t *testing.T) {
	srv, _ := newTestServer(t, "sekrit")

	rec := do(t, srv, http.MethodGet, "/api/alarms?userId=u1", nil)
	if rec.Code != http.StatusBadRequest && rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected auth rejection, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/alarms?userId=u1", nil)
	req.Header.Set("Authorization", "Bearer sekrit")
	okRec := httptest.NewRecorder()
	srv.ServeHTTP(okRec, req)
	if okRec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d: %s", okRec.Code, okRec.Body.String())
	}

	// home page stays open
	rec = do(t, srv, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected home to bypass auth, got %d", rec.Code)
	}
}

func TestFocusSessionPaysOutAndExtendsStreak(t *testing.T) {
	srv, store := newTestServer(t, "")

	rec := do(t, srv, http.MethodPost, "/api/users/u1/focus", map[string]any{"mode": "standard"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	stats := decode[models.Stats](t, rec)
	if stats.Coins != rewards.FocusSessionCoins || stats.XP != rewards.FocusSessionXP {
		t.Errorf("unexpected payout: %+v", stats)
	}
	if stats.Streak != 1 {
		t.Errorf("streak = %d, want 1", stats.Streak)
	}

	rec = do(t, srv, http.MethodPost, "/api/users/u1/focus", map[string]any{"mode": "ultifocus"})
	stats = decode[models.Stats](t, rec)
	if stats.Coins != rewards.FocusSessionCoins+rewards.UltraFocusCoins {
		t.Errorf("ultra payout not doubled: %+v", stats)
	}
	if stats.Streak != 2 {
		t.Errorf("streak = %d, want 2", stats.Streak)
	}

	saved, err := store.GetStats("u1")
	if err != nil {
		t.Fatalf("failed to load stats: %v", err)
	}
	if saved.Streak != 2 {
		t.Errorf("streak not persisted: %+v", saved)
	}

	rec = do(t, srv, http.MethodPost, "/api/users/u1/focus", map[string]any{"mode": "napping"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown mode, got %d", rec.Code)
	}
}
