package client

import (
	"context"

	"github.com/jordanpayne/reveille/internal/models"
)

func (c *Client) Notes(ctx context.Context, userID string) ([]models.Note, error) {
	var notes []models.Note
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("userId", userID).
		SetResult(&notes).
		Get("/api/notes")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, respError("list notes", resp)
	}
	return notes, nil
}

type CreateNoteInput struct {
	UserID string   `json:"userId"`
	Title  string   `json:"title"`
	Body   string   `json:"body,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

func (c *Client) CreateNote(ctx context.Context, in CreateNoteInput) (models.Note, error) {
	var note models.Note
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&note).
		Post("/api/notes")
	if err != nil {
		return models.Note{}, err
	}
	if resp.IsError() {
		return models.Note{}, respError("create note", resp)
	}
	return note, nil
}

type UpdateNoteInput struct {
	Title *string   `json:"title,omitempty"`
	Body  *string   `json:"body,omitempty"`
	Tags  *[]string `json:"tags,omitempty"`
}

func (c *Client) UpdateNote(ctx context.Context, id string, in UpdateNoteInput) (models.Note, error) {
	var note models.Note
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&note).
		Put("/api/notes/" + id)
	if err != nil {
		return models.Note{}, err
	}
	if resp.IsError() {
		return models.Note{}, respError("update note", resp)
	}
	return note, nil
}

func (c *Client) DeleteNote(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/api/notes/" + id)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return respError("delete note", resp)
	}
	return nil
}
