package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jordanpayne/reveille/internal/logger"
	"github.com/jordanpayne/reveille/internal/notifier"
	"github.com/jordanpayne/reveille/internal/tone"
	"github.com/jordanpayne/reveille/internal/tui"
	"github.com/jordanpayne/reveille/internal/watcher"
)

type WatchCmd struct {
	Headless      bool `help:"Run without the terminal UI, log triggers only."`
	Notifications bool `help:"Desktop notifications on trigger." default:"true" negatable:""`
}

func (c *WatchCmd) Run(ctx *Context) error {
	n := notifier.New()
	n.Disabled = !c.Notifications

	w := watcher.New(watcher.Options{
		UserID: ctx.UserID,
		Source: ctx.Client,
		Cache:  ctx.Cache,
		Tones:  tone.NewEngine(),
		Notify: n,
	})

	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if c.Headless {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-quit
			cancel()
		}()
		go drainEvents(runCtx, w)
		w.Run(runCtx)
		return nil
	}

	go w.Run(runCtx)

	p := tea.NewProgram(tui.NewModel(w, ctx.Client, ctx.UserID), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// drainEvents keeps the watcher's event channel flowing in headless mode so
// trigger history shows up in the log.
func drainEvents(ctx context.Context, w *watcher.Watcher) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-w.Events():
			logger.Info(ev.Message, "alarm", ev.Alarm.ID)
		}
	}
}
