package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

type AlarmListCmd struct{}

func (c *AlarmListCmd) Run(ctx *Context) error {
	alarms, err := ctx.Client.Alarms(context.Background(), ctx.UserID)
	if err != nil {
		return err
	}
	if len(alarms) == 0 {
		fmt.Println("No alarms configured.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tLABEL\tSOUND\tREPEAT\tSTATE")
	for _, a := range alarms {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Time, a.Label, a.Sound, formatRepeatDays(a), formatEnabled(a.Enabled))
	}
	return w.Flush()
}
