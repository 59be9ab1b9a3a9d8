package client

import (
	"context"

	"github.com/jordanpayne/reveille/internal/models"
)

func (c *Client) Tasks(ctx context.Context, userID, date string) ([]models.Task, error) {
	var tasks []models.Task
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("userId", userID).
		SetResult(&tasks)
	if date != "" {
		req.SetQueryParam("date", date)
	}
	resp, err := req.Get("/api/tasks")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, respError("list tasks", resp)
	}
	return tasks, nil
}

type CreateTaskInput struct {
	UserID string `json:"userId"`
	Title  string `json:"title"`
	Tag    string `json:"tag,omitempty"`
	Date   string `json:"date,omitempty"`
}

func (c *Client) CreateTask(ctx context.Context, in CreateTaskInput) (models.Task, error) {
	var task models.Task
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&task).
		Post("/api/tasks")
	if err != nil {
		return models.Task{}, err
	}
	if resp.IsError() {
		return models.Task{}, respError("create task", resp)
	}
	return task, nil
}

func (c *Client) ToggleTask(ctx context.Context, id string) (models.Task, error) {
	var task models.Task
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&task).
		Post("/api/tasks/" + id + "/toggle")
	if err != nil {
		return models.Task{}, err
	}
	if resp.IsError() {
		return models.Task{}, respError("toggle task", resp)
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/api/tasks/" + id)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return respError("delete task", resp)
	}
	return nil
}
