// Package alarmstate keeps the watch loop's own snooze/dismiss bookkeeping,
// separate from and possibly lagging the server's alarm records. It is a
// single JSON document on disk that survives restarts; every operation
// degrades to empty state instead of failing so a corrupt or missing file
// can never take the alarm loop down.
package alarmstate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jordanpayne/reveille/internal/logger"
)

// State is the serialized cache record. Snooze deadlines are epoch
// milliseconds, trigger history is RFC 3339 strings.
type State struct {
	SnoozedUntil  map[string]int64  `json:"snoozedUntil,omitempty"`
	LastTriggered map[string]string `json:"lastTriggered,omitempty"`
	DismissedIDs  []string          `json:"dismissedIds,omitempty"`
}

// Cache serializes access with a mutex: the watch loop writes trigger
// history from its own goroutine while snooze/dismiss arrive from UI
// command goroutines, and an unguarded load-mutate-save pair could drop
// one of the writes.
type Cache struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// New returns a cache backed by the given file path. The file does not need
// to exist yet.
func New(path string) *Cache {
	return &Cache{path: path, now: time.Now}
}

// GetState loads the cache file. A missing, unreadable, or corrupt file
// yields an empty state.
func (c *Cache) GetState() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load()
}

func (c *Cache) load() State {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return State{}
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		logger.Warn("Alarm state file is corrupt, treating as empty", "path", c.path, "error", err)
		return State{}
	}
	return state
}

func (c *Cache) save(state State) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		logger.Warn("Failed to serialize alarm state", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		logger.Warn("Failed to create alarm state directory", "error", err)
		return
	}
	if err := os.WriteFile(c.path, data, 0600); err != nil {
		logger.Warn("Failed to write alarm state", "path", c.path, "error", err)
	}
}

// Snooze records a snooze deadline of now + minutes for the alarm,
// overwriting any prior snooze. Negative minutes are clamped to zero.
func (c *Cache) Snooze(alarmID string, minutes int) {
	if minutes < 0 {
		minutes = 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.load()
	if state.SnoozedUntil == nil {
		state.SnoozedUntil = make(map[string]int64)
	}
	state.SnoozedUntil[alarmID] = c.now().UnixMilli() + int64(minutes)*60_000
	c.save(state)
}

// IsSnoozed reports whether the alarm has a snooze deadline still in the
// future. Past-due deadlines count as not snoozed; they are left in place
// and expire lazily.
func (c *Cache) IsSnoozed(alarmID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	until, ok := c.load().SnoozedUntil[alarmID]
	if !ok {
		return false
	}
	return until > c.now().UnixMilli()
}

// SnoozedUntil returns the snooze deadline for the alarm, or the zero time
// if none is recorded.
func (c *Cache) SnoozedUntil(alarmID string) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	until, ok := c.load().SnoozedUntil[alarmID]
	if !ok {
		return time.Time{}
	}
	return time.UnixMilli(until)
}

// Dismiss marks the alarm dismissed and drops any snooze entry for it.
func (c *Cache) Dismiss(alarmID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.load()
	found := false
	for _, id := range state.DismissedIDs {
		if id == alarmID {
			found = true
			break
		}
	}
	if !found {
		state.DismissedIDs = append(state.DismissedIDs, alarmID)
	}
	delete(state.SnoozedUntil, alarmID)
	c.save(state)
}

// MarkTriggered records when the alarm last fired. A zero timestamp means
// "now".
func (c *Cache) MarkTriggered(alarmID string, at time.Time) {
	if at.IsZero() {
		at = c.now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.load()
	if state.LastTriggered == nil {
		state.LastTriggered = make(map[string]string)
	}
	state.LastTriggered[alarmID] = at.Format(time.RFC3339)
	c.save(state)
}

// LastTriggered returns the recorded trigger time for the alarm, or the
// zero time if none exists or the stored value cannot be parsed.
func (c *Cache) LastTriggered(alarmID string) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.load().LastTriggered[alarmID]
	if !ok {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Clear removes the alarm's snooze entry and dismissed marker. Trigger
// history is retained.
func (c *Cache) Clear(alarmID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.load()
	delete(state.SnoozedUntil, alarmID)

	kept := state.DismissedIDs[:0]
	for _, id := range state.DismissedIDs {
		if id != alarmID {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	state.DismissedIDs = kept

	c.save(state)
}
