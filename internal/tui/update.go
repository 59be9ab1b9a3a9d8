package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jordanpayne/reveille/internal/watcher"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clockTickMsg:
		m.now = time.Time(msg)
		// the watcher mutates ringing state on its own schedule, resync
		m.active = m.watcher.Active()
		if m.active != nil {
			m.state = StateRinging
		} else {
			m.state = StateIdle
		}
		return m, m.tickClock()

	case watchEventMsg:
		ev := watcher.Event(msg)
		m.toast = ev.Message
		m.errMsg = ""
		m.active = m.watcher.Active()
		if ev.Kind == watcher.EventTriggered {
			m.state = StateRinging
		} else {
			m.state = StateIdle
		}
		return m, tea.Batch(m.waitForEvent(), m.refreshAlarms())

	case alarmListMsg:
		if msg != nil {
			m.alarms = msg
		}

	case actionDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.active = m.watcher.Active()
		if m.active == nil {
			m.state = StateIdle
		}
		return m, m.refreshAlarms()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.state != StateRinging {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Snooze5):
		return m, m.snoozeCmd(5)
	case key.Matches(msg, m.keys.Snooze10):
		return m, m.snoozeCmd(10)
	case key.Matches(msg, m.keys.Snooze15):
		return m, m.snoozeCmd(15)
	case key.Matches(msg, m.keys.Dismiss):
		return m, m.dismissCmd()
	}
	return m, nil
}
