package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jordanpayne/reveille/internal/constants"
)

// Sound identifies one of the synthesized alarm sounds. Values arriving from
// the API as free-form strings are narrowed through ParseSound at the
// boundary so nothing downstream has to handle unknown kinds.
type Sound string

const (
	SoundBell  Sound = "bell"
	SoundChime Sound = "chime"
	SoundBuzz  Sound = "buzz"
	SoundPiano Sound = "piano"
)

// Sounds lists every valid alarm sound.
var Sounds = []Sound{SoundBell, SoundChime, SoundBuzz, SoundPiano}

// ParseSound maps a raw string onto a known Sound. Unknown or empty values
// fall back to bell instead of propagating an untyped string.
func ParseSound(s string) Sound {
	switch Sound(s) {
	case SoundBell, SoundChime, SoundBuzz, SoundPiano:
		return Sound(s)
	default:
		return SoundBell
	}
}

// IsValid reports whether s is one of the known alarm sounds.
func (s Sound) IsValid() bool {
	switch s {
	case SoundBell, SoundChime, SoundBuzz, SoundPiano:
		return true
	}
	return false
}

type Alarm struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Label   string `json:"label"`
	Time    string `json:"time"` // HH:MM, 24h, zero-padded
	Enabled bool   `json:"enabled"`
	Sound   Sound  `json:"sound"`
	// RepeatDays is a JSON array of weekday digit strings "0" (Sunday)
	// through "6" (Saturday). "[]" means every day.
	RepeatDays    string     `json:"repeatDays"`
	SnoozeUntil   *time.Time `json:"snoozeUntil,omitempty"`
	LastTriggered *time.Time `json:"lastTriggered,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

func (a *Alarm) Validate() error {
	if a.Label == "" {
		return fmt.Errorf("alarm label cannot be empty")
	}

	if _, err := time.Parse(constants.TimeFormat, a.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}
	if len(a.Time) != 5 {
		return fmt.Errorf("alarm time must be zero-padded HH:MM, got %q", a.Time)
	}

	if !a.Sound.IsValid() {
		return fmt.Errorf("invalid alarm sound: %s", a.Sound)
	}

	// Weekdays() silently drops bad entries so the watch loop stays
	// tolerant; here at the input boundary they are rejected instead.
	if a.RepeatDays != "" {
		var raw []string
		if err := json.Unmarshal([]byte(a.RepeatDays), &raw); err != nil {
			return fmt.Errorf("invalid repeatDays encoding: %w", err)
		}
		for _, r := range raw {
			if len(r) != 1 || r[0] < '0' || r[0] > '6' {
				return fmt.Errorf("invalid repeat day: %q", r)
			}
		}
	}

	return nil
}

// Weekdays decodes RepeatDays into weekday values. Malformed JSON or
// non-digit entries are treated as an empty list, never an error.
func (a *Alarm) Weekdays() []time.Weekday {
	if a.RepeatDays == "" {
		return nil
	}

	var raw []string
	if err := json.Unmarshal([]byte(a.RepeatDays), &raw); err != nil {
		return nil
	}

	days := make([]time.Weekday, 0, len(raw))
	for _, r := range raw {
		if len(r) != 1 || r[0] < '0' || r[0] > '6' {
			continue
		}
		days = append(days, time.Weekday(r[0]-'0'))
	}
	return days
}

// IsDueOn reports whether the alarm's repeat rule covers the given day.
// An empty rule means the alarm fires every day.
func (a *Alarm) IsDueOn(day time.Weekday) bool {
	days := a.Weekdays()
	if len(days) == 0 {
		return true
	}
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

// TriggeredOn reports whether the alarm already fired on the calendar day
// containing t. Used to stop a matched alarm from re-firing within one day.
func (a *Alarm) TriggeredOn(t time.Time) bool {
	if a.LastTriggered == nil {
		return false
	}
	last := a.LastTriggered.In(t.Location())
	return last.Year() == t.Year() && last.YearDay() == t.YearDay()
}

// EncodeWeekdays renders weekday values back into the stored RepeatDays
// form, a JSON array of digit strings.
func EncodeWeekdays(days []time.Weekday) string {
	raw := make([]string, 0, len(days))
	for _, d := range days {
		raw = append(raw, fmt.Sprintf("%d", int(d)))
	}
	data, _ := json.Marshal(raw)
	return string(data)
}
