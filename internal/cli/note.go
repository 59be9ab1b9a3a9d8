package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jordanpayne/reveille/internal/client"
)

type NoteAddCmd struct {
	Title string `arg:"" help:"Note title."`
	Body  string `short:"b" help:"Note body."`
	Tags  string `short:"t" help:"Comma-separated tags."`
}

func (c *NoteAddCmd) Run(ctx *Context) error {
	var tags []string
	for _, t := range strings.Split(c.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	note, err := ctx.Client.CreateNote(context.Background(), client.CreateNoteInput{
		UserID: ctx.UserID,
		Title:  c.Title,
		Body:   c.Body,
		Tags:   tags,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Added note %q (%s)\n", note.Title, note.ID)
	return nil
}

type NoteListCmd struct{}

func (c *NoteListCmd) Run(ctx *Context) error {
	notes, err := ctx.Client.Notes(context.Background(), ctx.UserID)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Println("No notes.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTAGS\tUPDATED")
	for _, n := range notes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			n.ID, n.Title, strings.Join(n.Tags, ","), n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

type NoteDeleteCmd struct {
	ID string `arg:"" help:"Note id."`
}

func (c *NoteDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Client.DeleteNote(context.Background(), c.ID); err != nil {
		return err
	}
	fmt.Println("Note deleted.")
	return nil
}
