package client

import (
	"context"

	"github.com/jordanpayne/reveille/internal/models"
)

func (c *Client) Alarms(ctx context.Context, userID string) ([]models.Alarm, error) {
	var alarms []models.Alarm
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("userId", userID).
		SetResult(&alarms).
		Get("/api/alarms")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, respError("list alarms", resp)
	}
	return alarms, nil
}

func (c *Client) Alarm(ctx context.Context, id string) (models.Alarm, error) {
	var alarm models.Alarm
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&alarm).
		Get("/api/alarms/" + id)
	if err != nil {
		return models.Alarm{}, err
	}
	if resp.IsError() {
		return models.Alarm{}, respError("get alarm", resp)
	}
	return alarm, nil
}

type CreateAlarmInput struct {
	UserID     string `json:"userId"`
	Label      string `json:"label"`
	Time       string `json:"time"`
	Enabled    *bool  `json:"enabled,omitempty"`
	Sound      string `json:"sound,omitempty"`
	RepeatDays string `json:"repeatDays,omitempty"`
}

func (c *Client) CreateAlarm(ctx context.Context, in CreateAlarmInput) (models.Alarm, error) {
	var alarm models.Alarm
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&alarm).
		Post("/api/alarms")
	if err != nil {
		return models.Alarm{}, err
	}
	if resp.IsError() {
		return models.Alarm{}, respError("create alarm", resp)
	}
	return alarm, nil
}

type UpdateAlarmInput struct {
	Label      *string `json:"label,omitempty"`
	Time       *string `json:"time,omitempty"`
	Enabled    *bool   `json:"enabled,omitempty"`
	Sound      *string `json:"sound,omitempty"`
	RepeatDays *string `json:"repeatDays,omitempty"`
}

func (c *Client) UpdateAlarm(ctx context.Context, id string, in UpdateAlarmInput) (models.Alarm, error) {
	var alarm models.Alarm
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(in).
		SetResult(&alarm).
		Put("/api/alarms/" + id)
	if err != nil {
		return models.Alarm{}, err
	}
	if resp.IsError() {
		return models.Alarm{}, respError("update alarm", resp)
	}
	return alarm, nil
}

func (c *Client) DeleteAlarm(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Delete("/api/alarms/" + id)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return respError("delete alarm", resp)
	}
	return nil
}

// TriggerAlarm records on the server that the alarm fired.
func (c *Client) TriggerAlarm(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post("/api/alarms/" + id + "/trigger")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return respError("trigger alarm", resp)
	}
	return nil
}

func (c *Client) SnoozeAlarm(ctx context.Context, id string, minutes int) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]int{"minutes": minutes}).
		Post("/api/alarms/" + id + "/snooze")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return respError("snooze alarm", resp)
	}
	return nil
}

func (c *Client) DismissAlarm(ctx context.Context, id string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post("/api/alarms/" + id + "/dismiss")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return respError("dismiss alarm", resp)
	}
	return nil
}
