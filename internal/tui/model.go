// Package tui is the terminal front end for the watch loop: an alarm
// overview while idle and a full-screen ringing prompt with snooze and
// dismiss actions.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/watcher"
)

type SessionState int

const (
	StateIdle SessionState = iota
	StateRinging
)

type Model struct {
	state   SessionState
	watcher *watcher.Watcher
	source  watcher.AlarmSource
	userID  string

	alarms []models.Alarm
	active *watcher.Active
	toast  string
	errMsg string

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	now      time.Time
	width    int
	height   int
	quitting bool
}

func NewModel(w *watcher.Watcher, source watcher.AlarmSource, userID string) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		state:   StateIdle,
		watcher: w,
		source:  source,
		userID:  userID,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		now:     time.Now(),
	}
}

type (
	clockTickMsg  time.Time
	watchEventMsg watcher.Event
	alarmListMsg  []models.Alarm
	actionDoneMsg struct{ err error }
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.tickClock(),
		m.waitForEvent(),
		m.refreshAlarms(),
	)
}

func (m Model) tickClock() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return clockTickMsg(t)
	})
}

func (m Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.watcher.Events()
		if !ok {
			return nil
		}
		return watchEventMsg(ev)
	}
}

func (m Model) refreshAlarms() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		alarms, err := m.source.Alarms(ctx, m.userID)
		if err != nil {
			return alarmListMsg(nil)
		}
		return alarmListMsg(alarms)
	}
}

func (m Model) snoozeCmd(minutes int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return actionDoneMsg{err: m.watcher.Snooze(ctx, minutes)}
	}
}

func (m Model) dismissCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return actionDoneMsg{err: m.watcher.Dismiss(ctx)}
	}
}
