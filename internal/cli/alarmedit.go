package cli

import (
	"context"
	"fmt"

	"github.com/jordanpayne/reveille/internal/client"
	"github.com/jordanpayne/reveille/internal/models"
)

type AlarmEditCmd struct {
	ID      string `arg:"" help:"Alarm id."`
	Label   string `short:"l" help:"New label."`
	Time    string `short:"t" help:"New trigger time (HH:MM)."`
	Sound   string `short:"s" help:"New sound."`
	Days    string `short:"w" help:"New repeat days ('mon,wed', '1,3', or 'all' for every day)."`
	Enable  bool   `help:"Enable the alarm." xor:"state"`
	Disable bool   `help:"Disable the alarm." xor:"state"`
}

func (c *AlarmEditCmd) Run(ctx *Context) error {
	var in client.UpdateAlarmInput

	if c.Label != "" {
		in.Label = &c.Label
	}
	if c.Time != "" {
		in.Time = &c.Time
	}
	if c.Sound != "" {
		if !models.Sound(c.Sound).IsValid() {
			return fmt.Errorf("unknown sound %q", c.Sound)
		}
		in.Sound = &c.Sound
	}
	if c.Days != "" {
		days := c.Days
		if days == "all" {
			days = ""
		}
		parsed, err := parseWeekdays(days)
		if err != nil {
			return err
		}
		encoded := models.EncodeWeekdays(parsed)
		in.RepeatDays = &encoded
	}
	if c.Enable || c.Disable {
		enabled := c.Enable
		in.Enabled = &enabled
	}

	if in == (client.UpdateAlarmInput{}) {
		return fmt.Errorf("nothing to change")
	}

	updated, err := ctx.Client.UpdateAlarm(context.Background(), c.ID, in)
	if err != nil {
		return err
	}
	fmt.Printf("Updated alarm %q at %s (%s, %s, %s)\n",
		updated.Label, updated.Time, updated.Sound, formatRepeatDays(updated), formatEnabled(updated.Enabled))
	return nil
}
