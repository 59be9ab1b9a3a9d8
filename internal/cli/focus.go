package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/tone"
)

type FocusCmd struct {
	Duration time.Duration `arg:"" optional:"" help:"Session length." default:"25m"`
	Ultra    bool          `help:"Ultra-focus mode, double rewards."`
	Silent   bool          `help:"Skip the completion chime."`
}

func (c *FocusCmd) Run(ctx *Context) error {
	mode := "focus"
	if c.Ultra {
		mode = "ultra-focus"
	}
	fmt.Printf("Starting %s session for %s. Ctrl+C abandons it (no reward).\n", mode, c.Duration)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	done := time.After(c.Duration)
	end := time.Now().Add(c.Duration)

	for {
		select {
		case <-quit:
			fmt.Println("\nSession abandoned.")
			return nil
		case <-ticker.C:
			if left := time.Until(end); left > 0 {
				fmt.Printf("%s remaining\n", left.Round(time.Minute))
			}
		case <-done:
			return c.complete(ctx)
		}
	}
}

func (c *FocusCmd) complete(ctx *Context) error {
	if !c.Silent {
		engine := tone.NewEngine()
		engine.Play(models.SoundChime, 2*time.Second)
		defer engine.Stop()
		time.Sleep(2 * time.Second)
	}

	stats, err := ctx.Client.CompleteFocus(context.Background(), ctx.UserID, c.Ultra)
	if err != nil {
		return fmt.Errorf("session finished but the reward could not be recorded: %w", err)
	}

	fmt.Printf("Session complete! Now level %d with %d XP, %d coins, %d day streak.\n",
		stats.Level, stats.XP, stats.Coins, stats.Streak)
	return nil
}
