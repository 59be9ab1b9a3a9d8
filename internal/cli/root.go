package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jordanpayne/reveille/internal/alarmstate"
	"github.com/jordanpayne/reveille/internal/client"
	"github.com/jordanpayne/reveille/internal/models"
)

type Context struct {
	Client *client.Client
	Cache  *alarmstate.Cache
	UserID string
	Debug  bool
}

var dayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

// parseWeekdays accepts "mon,wed" or "1,3" and returns the weekday set.
func parseWeekdays(s string) ([]time.Weekday, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var weekdays []time.Weekday
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayNames[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 0 || num > 6 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, time.Weekday(num))
	}
	return weekdays, nil
}

func formatRepeatDays(a models.Alarm) string {
	days := a.Weekdays()
	if len(days) == 0 {
		return "every day"
	}
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = d.String()[:3]
	}
	return strings.Join(names, ",")
}

func formatEnabled(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}
