package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	stats, err := ctx.Client.Stats(context.Background(), ctx.UserID)
	if err != nil {
		return err
	}
	fmt.Printf("Level %d  |  %d XP  |  %d coins  |  %d day streak\n",
		stats.Level, stats.XP, stats.Coins, stats.Streak)
	return nil
}

type LeaderboardCmd struct{}

func (c *LeaderboardCmd) Run(ctx *Context) error {
	entries, err := ctx.Client.Leaderboard(context.Background())
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Leaderboard is empty.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tUSER\tLEVEL\tXP")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", e.Rank, e.Username, e.Level, e.XP)
	}
	return w.Flush()
}
