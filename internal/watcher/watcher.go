// Package watcher runs the alarm evaluation loop: a fixed-interval poll
// that matches the user's alarms against the wall clock, manages the single
// ringing alarm, and coordinates snooze/dismiss between the local state
// cache and the server.
package watcher

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jordanpayne/reveille/internal/alarmstate"
	"github.com/jordanpayne/reveille/internal/constants"
	"github.com/jordanpayne/reveille/internal/logger"
	"github.com/jordanpayne/reveille/internal/models"
)

// AlarmSource is the slice of the REST client the loop needs.
type AlarmSource interface {
	Alarms(ctx context.Context, userID string) ([]models.Alarm, error)
	TriggerAlarm(ctx context.Context, id string) error
	SnoozeAlarm(ctx context.Context, id string, minutes int) error
	DismissAlarm(ctx context.Context, id string) error
}

// ToneEngine is the audio surface. Play must be a no-op while a sound is
// already audible and Stop must always be safe.
type ToneEngine interface {
	Play(sound models.Sound, maxDuration time.Duration)
	Stop()
	IsPlaying() bool
}

// Notifier posts desktop notifications, best effort.
type Notifier interface {
	AlarmTriggered(alarm models.Alarm)
	Notify(title, body string)
}

// Active is the one ringing alarm, if any.
type Active struct {
	Alarm         models.Alarm
	SnoozeOptions []int
	Since         time.Time
}

type EventKind int

const (
	EventTriggered EventKind = iota
	EventSnoozed
	EventDismissed
)

// Event is published to the UI when the ringing state changes.
type Event struct {
	Kind    EventKind
	Alarm   models.Alarm
	Message string
}

type Options struct {
	UserID       string
	Source       AlarmSource
	Cache        *alarmstate.Cache
	Tones        ToneEngine
	Notify       Notifier
	PollInterval time.Duration
	RingDuration time.Duration
	Now          func() time.Time
}

type Watcher struct {
	userID       string
	source       AlarmSource
	cache        *alarmstate.Cache
	tones        ToneEngine
	notify       Notifier
	pollInterval time.Duration
	ringDuration time.Duration
	now          func() time.Time

	mu     sync.Mutex
	active *Active

	events chan Event
}

func New(opts Options) *Watcher {
	if opts.PollInterval == 0 {
		opts.PollInterval = constants.PollInterval
	}
	if opts.RingDuration == 0 {
		opts.RingDuration = constants.RingDuration
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Watcher{
		userID:       opts.UserID,
		source:       opts.Source,
		cache:        opts.Cache,
		tones:        opts.Tones,
		notify:       opts.Notify,
		pollInterval: opts.PollInterval,
		ringDuration: opts.RingDuration,
		now:          opts.Now,
		events:       make(chan Event, 8),
	}
}

// Events is the stream the TUI listens on. Events are dropped, not queued
// unboundedly, when nothing is reading.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Active returns the ringing alarm, or nil when idle.
func (w *Watcher) Active() *Active {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active == nil {
		return nil
	}
	a := *w.active
	return &a
}

// Run polls until the context is cancelled. The first tick is immediate.
// On shutdown the tone engine is force-stopped so audio cannot outlive the
// loop.
func (w *Watcher) Run(ctx context.Context) {
	logger.Info("Alarm watch started", "user", w.userID, "interval", w.pollInterval)

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	defer w.tones.Stop()

	w.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Alarm watch stopped")
			return
		case <-ticker.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one evaluation pass: fetch the alarm list and trigger the first
// eligible alarm, if any.
func (w *Watcher) Tick(ctx context.Context) {
	alarms, err := w.source.Alarms(ctx, w.userID)
	if err != nil {
		logger.Warn("Failed to fetch alarms, will retry next tick", "error", err)
		return
	}

	now := w.now()
	for _, alarm := range alarms {
		if !w.eligible(alarm, now) {
			continue
		}
		w.trigger(ctx, alarm, now)
		return
	}
}

// eligible applies the skip rules in order. Skipping is the normal case,
// not a failure.
func (w *Watcher) eligible(alarm models.Alarm, now time.Time) bool {
	if !alarm.Enabled {
		return false
	}

	w.mu.Lock()
	ringing := w.active != nil && w.active.Alarm.ID == alarm.ID
	w.mu.Unlock()
	if ringing {
		return false
	}

	if w.cache.IsSnoozed(alarm.ID) {
		return false
	}
	if alarm.Time != now.Format(constants.TimeFormat) {
		return false
	}
	if !alarm.IsDueOn(now.Weekday()) {
		return false
	}
	// same-day guard, checked against both the server record and our own
	// cache in case the remote trigger write was lost
	if alarm.TriggeredOn(now) {
		return false
	}
	if last := w.cache.LastTriggered(alarm.ID); !last.IsZero() && sameDay(last, now) {
		return false
	}
	return true
}

// trigger runs the Idle to Ringing sequence. Every step after the sound is
// best effort: the ringing state is always entered so the user gets the
// modal even when the notification or the server write fails.
func (w *Watcher) trigger(ctx context.Context, alarm models.Alarm, now time.Time) {
	logger.Info("Alarm triggered", "id", alarm.ID, "label", alarm.Label, "sound", alarm.Sound)

	w.tones.Play(alarm.Sound, w.ringDuration)
	w.notify.AlarmTriggered(alarm)

	w.mu.Lock()
	w.active = &Active{
		Alarm:         alarm,
		SnoozeOptions: constants.SnoozeOptions,
		Since:         now,
	}
	w.mu.Unlock()

	w.cache.MarkTriggered(alarm.ID, now)
	if err := w.source.TriggerAlarm(ctx, alarm.ID); err != nil {
		logger.Warn("Failed to record trigger on server", "id", alarm.ID, "error", err)
	}

	w.publish(Event{
		Kind:    EventTriggered,
		Alarm:   alarm,
		Message: fmt.Sprintf("Alarm %q is ringing", alarm.Label),
	})
}

// Snooze silences the ringing alarm for the given number of minutes. The
// local snooze is recorded before the server call, so the alarm stays quiet
// locally either way; on a server failure the alarm is left ringing so the
// user can retry.
func (w *Watcher) Snooze(ctx context.Context, minutes int) error {
	w.mu.Lock()
	if w.active == nil {
		w.mu.Unlock()
		return fmt.Errorf("no alarm is ringing")
	}
	alarm := w.active.Alarm
	w.mu.Unlock()

	w.tones.Stop()
	w.cache.Snooze(alarm.ID, minutes)

	if err := w.source.SnoozeAlarm(ctx, alarm.ID, minutes); err != nil {
		logger.Warn("Failed to record snooze on server, alarm stays active", "id", alarm.ID, "error", err)
		return fmt.Errorf("failed to snooze alarm: %w", err)
	}

	w.clearActive(alarm.ID)
	w.publish(Event{
		Kind:    EventSnoozed,
		Alarm:   alarm,
		Message: fmt.Sprintf("Snoozed %q for %d minutes", alarm.Label, minutes),
	})
	return nil
}

// Dismiss stops the ringing alarm until its next scheduled time. Same
// partial-failure policy as Snooze.
func (w *Watcher) Dismiss(ctx context.Context) error {
	w.mu.Lock()
	if w.active == nil {
		w.mu.Unlock()
		return fmt.Errorf("no alarm is ringing")
	}
	alarm := w.active.Alarm
	w.mu.Unlock()

	w.tones.Stop()
	w.cache.Dismiss(alarm.ID)

	if err := w.source.DismissAlarm(ctx, alarm.ID); err != nil {
		logger.Warn("Failed to record dismissal on server, alarm stays active", "id", alarm.ID, "error", err)
		return fmt.Errorf("failed to dismiss alarm: %w", err)
	}

	w.clearActive(alarm.ID)
	w.publish(Event{
		Kind:    EventDismissed,
		Alarm:   alarm,
		Message: fmt.Sprintf("Dismissed %q", alarm.Label),
	})
	return nil
}

func (w *Watcher) clearActive(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.active != nil && w.active.Alarm.ID == id {
		w.active = nil
	}
}

func (w *Watcher) publish(ev Event) {
	select {
	case w.events <- ev:
	default:
	}
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}
