package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/jordanpayne/reveille/internal/alarmstate"
	"github.com/jordanpayne/reveille/internal/cli"
	"github.com/jordanpayne/reveille/internal/client"
	"github.com/jordanpayne/reveille/internal/config"
	"github.com/jordanpayne/reveille/internal/constants"
	apperrors "github.com/jordanpayne/reveille/internal/errors"
	"github.com/jordanpayne/reveille/internal/keyring"
	"github.com/jordanpayne/reveille/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Server  string `help:"Server base URL." env:"REVEILLE_SERVER" default:"${server_url}"`
	User    string `short:"u" help:"User id for alarm and planner commands." env:"REVEILLE_USER" default:"${user_id}"`
	Debug   bool   `help:"Verbose logging to stderr."`

	Serve cli.ServeCmd `cmd:"" help:"Run the API server."`
	Watch cli.WatchCmd `cmd:"" help:"Watch alarms and ring when one is due." default:"1"`
	Play  cli.PlayCmd  `cmd:"" help:"Preview an alarm sound."`
	Focus cli.FocusCmd `cmd:"" help:"Run a focus session, earn rewards on completion."`
	Login cli.LoginCmd `cmd:"" help:"Store the API token in the system keyring."`

	Alarm struct {
		Add    cli.AlarmAddCmd    `cmd:"" help:"Add an alarm."`
		List   cli.AlarmListCmd   `cmd:"" help:"List alarms."`
		Edit   cli.AlarmEditCmd   `cmd:"" help:"Edit an alarm."`
		Delete cli.AlarmDeleteCmd `cmd:"" help:"Delete an alarm."`
	} `cmd:"" help:"Manage alarms."`

	Note struct {
		Add    cli.NoteAddCmd    `cmd:"" help:"Add a note."`
		List   cli.NoteListCmd   `cmd:"" help:"List notes."`
		Delete cli.NoteDeleteCmd `cmd:"" help:"Delete a note."`
	} `cmd:"" help:"Manage notes."`

	Task struct {
		Add    cli.TaskAddCmd    `cmd:"" help:"Add a planner task."`
		List   cli.TaskListCmd   `cmd:"" help:"List planner tasks."`
		Toggle cli.TaskToggleCmd `cmd:"" help:"Toggle task completion."`
		Delete cli.TaskDeleteCmd `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage planner tasks."`

	Stats       cli.StatsCmd       `cmd:"" help:"Show coins, XP, and level."`
	Leaderboard cli.LeaderboardCmd `cmd:"" help:"Show the XP leaderboard."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Alarm clock and study planner for the terminal"),
		kong.UsageOnError(),
		kong.Vars{
			"version":    constants.Version,
			"server_url": constants.DefaultServerURL,
			"user_id":    constants.DefaultUserID,
		},
	)

	configDir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	token, err := keyring.GetToken()
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		logger.Debug("Keyring unavailable, continuing without token", "error", err)
		token = ""
	}

	appCtx := &cli.Context{
		Client: client.New(client.Config{BaseURL: CLI.Server, Token: token}),
		Cache:  alarmstate.New(filepath.Join(configDir, constants.AlarmStateFileName)),
		UserID: CLI.User,
		Debug:  CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}
