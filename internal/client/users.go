package client

import (
	"context"

	"github.com/jordanpayne/reveille/internal/models"
)

func (c *Client) CreateUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": username}).
		SetResult(&user).
		Post("/api/users")
	if err != nil {
		return models.User{}, err
	}
	if resp.IsError() {
		return models.User{}, respError("create user", resp)
	}
	return user, nil
}

func (c *Client) Stats(ctx context.Context, userID string) (models.Stats, error) {
	var stats models.Stats
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&stats).
		Get("/api/users/" + userID + "/stats")
	if err != nil {
		return models.Stats{}, err
	}
	if resp.IsError() {
		return models.Stats{}, respError("get stats", resp)
	}
	return stats, nil
}

// CompleteFocus reports a finished focus session and returns the updated
// stats, streak included.
func (c *Client) CompleteFocus(ctx context.Context, userID string, ultra bool) (models.Stats, error) {
	mode := "standard"
	if ultra {
		mode = "ultifocus"
	}

	var stats models.Stats
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"mode": mode}).
		SetResult(&stats).
		Post("/api/users/" + userID + "/focus")
	if err != nil {
		return models.Stats{}, err
	}
	if resp.IsError() {
		return models.Stats{}, respError("complete focus session", resp)
	}
	return stats, nil
}

func (c *Client) Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&entries).
		Get("/api/leaderboard")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, respError("get leaderboard", resp)
	}
	return entries, nil
}
