package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jordanpayne/reveille/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateRinging:
		content = m.viewRinging()
	default:
		content = m.viewIdle()
	}

	sections := []string{
		titleStyle.Render("Reveille") + "  " + m.now.Format("15:04:05"),
		content,
	}
	if m.toast != "" {
		sections = append(sections, toastStyle.Render(m.toast))
	}
	if m.errMsg != "" {
		sections = append(sections, errStyle.Render(m.errMsg))
	}
	sections = append(sections, m.help.View(m.keys))

	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewIdle() string {
	if len(m.alarms) == 0 {
		return m.spinner.View() + " watching (no alarms configured)"
	}

	var b strings.Builder
	b.WriteString(m.spinner.View() + " watching " + fmt.Sprintf("%d alarm(s)\n\n", len(m.alarms)))
	for _, a := range m.alarms {
		b.WriteString(renderAlarmRow(a) + "\n")
	}
	return b.String()
}

func renderAlarmRow(a models.Alarm) string {
	row := fmt.Sprintf("%s  %-20s %s %s", a.Time, a.Label, a.Sound, describeDays(a))
	if !a.Enabled {
		return disabledRowStyle.Render(row + "  (off)")
	}
	return alarmRowStyle.Render(row)
}

func describeDays(a models.Alarm) string {
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

func (m Model) viewRinging() string {
	if m.active == nil {
		return m.viewIdle()
	}
	a := m.active.Alarm

	var b strings.Builder
	b.WriteString(fmt.Sprintf("⏰  %s\n\n", a.Label))
	b.WriteString(fmt.Sprintf("scheduled for %s, ringing since %s\n\n", a.Time, m.active.Since.Format("15:04:05")))
	for i, minutes := range m.active.SnoozeOptions {
		b.WriteString(fmt.Sprintf("[%d] snooze %dm   ", i+1, minutes))
	}
	b.WriteString("[d] dismiss")

	return ringingBoxStyle.Render(b.String())
}
