package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/jordanpayne/reveille/internal/client"
	"github.com/jordanpayne/reveille/internal/models"
)

type AlarmAddCmd struct {
	Label string `arg:"" optional:"" help:"Alarm label. Omit for an interactive prompt."`
	Time  string `short:"t" help:"Trigger time (HH:MM, 24h)."`
	Sound string `short:"s" help:"Sound (bell|chime|buzz|piano)." default:"bell"`
	Days  string `short:"w" help:"Repeat days, e.g. 'mon,wed' or '1,3'. Empty means every day."`
}

func (c *AlarmAddCmd) Run(ctx *Context) error {
	if c.Label == "" {
		if err := c.prompt(); err != nil {
			return err
		}
	}
	if c.Time == "" {
		return fmt.Errorf("alarm time is required")
	}

	days, err := parseWeekdays(c.Days)
	if err != nil {
		return err
	}

	alarm := models.Alarm{
		Label:      c.Label,
		Time:       c.Time,
		Enabled:    true,
		Sound:      models.Sound(c.Sound),
		RepeatDays: models.EncodeWeekdays(days),
	}
	if err := alarm.Validate(); err != nil {
		return err
	}

	created, err := ctx.Client.CreateAlarm(context.Background(), client.CreateAlarmInput{
		UserID:     ctx.UserID,
		Label:      alarm.Label,
		Time:       alarm.Time,
		Sound:      string(alarm.Sound),
		RepeatDays: alarm.RepeatDays,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added alarm %q at %s (%s, %s)\n", created.Label, created.Time, created.Sound, formatRepeatDays(created))
	return nil
}

func (c *AlarmAddCmd) prompt() error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Label").
				Placeholder("Morning run").
				Value(&c.Label).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("label cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Time (HH:MM)").
				Placeholder("06:30").
				Value(&c.Time),
			huh.NewSelect[string]().
				Title("Sound").
				Options(
					huh.NewOption("Bell", "bell"),
					huh.NewOption("Chime", "chime"),
					huh.NewOption("Buzz", "buzz"),
					huh.NewOption("Piano", "piano"),
				).
				Value(&c.Sound),
			huh.NewInput().
				Title("Repeat days (blank = every day)").
				Placeholder("mon,wed,fri").
				Value(&c.Days),
		),
	).Run()
}
