package constants

import "time"

const (
	AppName            = "reveille"
	Version            = "v0.3.0"
	DefaultKeyringUser = "api-token"
	DefaultServerURL   = "http://localhost:5000"
	DefaultUserID      = "default-user"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// PollInterval is how often the watch loop re-checks alarms against wall time.
	PollInterval = 10 * time.Second

	// RingDuration caps how long a triggered alarm keeps sounding.
	RingDuration = 60 * time.Second

	// AlarmStateFileName holds the local snooze/dismiss cache, one JSON
	// document per config dir.
	AlarmStateFileName = "alarm_state.json"
)

// SnoozeOptions are the snooze choices offered while an alarm is ringing,
// in minutes.
var SnoozeOptions = []int{5, 10, 15}
