// Package notifier raises OS-level notifications for triggered alarms.
// Delivery is strictly best-effort: the watch loop fires these and moves on,
// so a missing notification daemon degrades to silence, never to an error
// surfaced to the caller.
package notifier

import (
	"github.com/gen2brain/beeep"

	"github.com/jordanpayne/reveille/internal/constants"
	"github.com/jordanpayne/reveille/internal/logger"
	"github.com/jordanpayne/reveille/internal/models"
)

const alarmPrompt = "Tap snooze or dismiss."

type Notifier struct {
	// Disabled suppresses all notifications, for headless or test runs.
	Disabled bool
}

func New() *Notifier {
	beeep.AppName = constants.AppName
	return &Notifier{}
}

// AlarmTriggered shows an urgent notification for a ringing alarm. Urgent
// notifications persist until acknowledged on platforms that support it.
// Errors are logged and swallowed.
func (n *Notifier) AlarmTriggered(alarm models.Alarm) {
	if n.Disabled {
		return
	}
	if err := beeep.Alert(alarm.Label, alarmPrompt, ""); err != nil {
		logger.Warn("Desktop notification failed", "alarm", alarm.ID, "error", err)
	}
}

// Notify shows a plain notification with the given title and body.
func (n *Notifier) Notify(title, body string) {
	if n.Disabled {
		return
	}
	if err := beeep.Notify(title, body, ""); err != nil {
		logger.Warn("Desktop notification failed", "title", title, "error", err)
	}
}
