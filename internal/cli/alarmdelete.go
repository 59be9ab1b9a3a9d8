package cli

import (
	"context"
	"fmt"
)

type AlarmDeleteCmd struct {
	ID string `arg:"" help:"Alarm id."`
}

func (c *AlarmDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Client.DeleteAlarm(context.Background(), c.ID); err != nil {
		return err
	}
	// forget any local snooze/dismiss bookkeeping for the deleted alarm
	ctx.Cache.Clear(c.ID)
	fmt.Println("Alarm deleted.")
	return nil
}
