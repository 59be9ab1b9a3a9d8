package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jordanpayne/reveille/internal/client"
)

type TaskAddCmd struct {
	Title string `arg:"" help:"Task title."`
	Tag   string `short:"t" help:"Category tag."`
	Date  string `short:"d" help:"Planner date (YYYY-MM-DD), defaults to today."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	task, err := ctx.Client.CreateTask(context.Background(), client.CreateTaskInput{
		UserID: ctx.UserID,
		Title:  c.Title,
		Tag:    c.Tag,
		Date:   c.Date,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added task %q for %s (%s)\n", task.Title, task.Date, task.ID)
	return nil
}

type TaskListCmd struct {
	Date string `short:"d" help:"Only show tasks for this date (YYYY-MM-DD)."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	tasks, err := ctx.Client.Tasks(context.Background(), ctx.UserID, c.Date)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTITLE\tTAG\tDONE")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%s]\n", t.ID, t.Date, t.Title, t.Tag, done)
	}
	return w.Flush()
}

type TaskToggleCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *TaskToggleCmd) Run(ctx *Context) error {
	task, err := ctx.Client.ToggleTask(context.Background(), c.ID)
	if err != nil {
		return err
	}
	if task.Completed {
		fmt.Printf("Completed %q\n", task.Title)
	} else {
		fmt.Printf("Reopened %q\n", task.Title)
	}
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task id."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Client.DeleteTask(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Println("Task deleted.")
	return nil
}
