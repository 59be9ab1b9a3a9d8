package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/rewards"
	"github.com/jordanpayne/reveille/internal/storage"
)

type alarmAPI struct {
	store   storage.Provider
	rewards *rewards.Service
	now     func() time.Time
}

func registerAlarmAPI(g *echo.Group, store storage.Provider, rw *rewards.Service) {
	api := &alarmAPI{store: store, rewards: rw, now: time.Now}

	g.GET("/alarms", api.list)
	g.GET("/alarms/:id", api.get)
	g.POST("/alarms", api.create)
	g.PUT("/alarms/:id", api.update)
	g.DELETE("/alarms/:id", api.delete)
	g.POST("/alarms/:id/trigger", api.trigger)
	g.POST("/alarms/:id/snooze", api.snooze)
	g.POST("/alarms/:id/dismiss", api.dismiss)
}

type createAlarmRequest struct {
	UserID     string `json:"userId" validate:"required"`
	Label      string `json:"label" validate:"required"`
	Time       string `json:"time" validate:"required,hhmm"`
	Enabled    *bool  `json:"enabled"`
	Sound      string `json:"sound" validate:"omitempty,sound"`
	RepeatDays string `json:"repeatDays"`
}

type updateAlarmRequest struct {
	Label      *string `json:"label" validate:"omitempty,min=1"`
	Time       *string `json:"time" validate:"omitempty,hhmm"`
	Enabled    *bool   `json:"enabled"`
	Sound      *string `json:"sound" validate:"omitempty,sound"`
	RepeatDays *string `json:"repeatDays"`
}

type snoozeRequest struct {
	Minutes int `json:"minutes" validate:"required,gt=0,lte=1440"`
}

func (a *alarmAPI) list(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId query parameter is required")
	}
	alarms, err := a.store.GetAlarmsByUser(userID)
	if err != nil {
		return err
	}
	if alarms == nil {
		alarms = []models.Alarm{}
	}
	return c.JSON(http.StatusOK, alarms)
}

func (a *alarmAPI) get(c echo.Context) error {
	alarm, err := a.store.GetAlarm(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alarm)
}

func (a *alarmAPI) create(c echo.Context) error {
	var req createAlarmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	repeatDays := req.RepeatDays
	if repeatDays == "" {
		repeatDays = "[]"
	}

	now := a.now().UTC()
	alarm := models.Alarm{
		ID:         uuid.NewString(),
		UserID:     req.UserID,
		Label:      req.Label,
		Time:       req.Time,
		Enabled:    enabled,
		Sound:      models.ParseSound(req.Sound),
		RepeatDays: repeatDays,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := a.store.AddAlarm(alarm); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, alarm)
}

func (a *alarmAPI) update(c echo.Context) error {
	var req updateAlarmRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	alarm, err := a.store.GetAlarm(c.Param("id"))
	if err != nil {
		return err
	}

	if req.Label != nil {
		alarm.Label = *req.Label
	}
	if req.Time != nil {
		alarm.Time = *req.Time
	}
	if req.Enabled != nil {
		alarm.Enabled = *req.Enabled
	}
	if req.Sound != nil {
		alarm.Sound = models.ParseSound(*req.Sound)
	}
	if req.RepeatDays != nil {
		alarm.RepeatDays = *req.RepeatDays
	}
	alarm.UpdatedAt = a.now().UTC()

	if err := a.store.UpdateAlarm(alarm); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alarm)
}

func (a *alarmAPI) delete(c echo.Context) error {
	if err := a.store.DeleteAlarm(c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (a *alarmAPI) trigger(c echo.Context) error {
	alarm, err := a.store.GetAlarm(c.Param("id"))
	if err != nil {
		return err
	}

	now := a.now().UTC()
	alarm.LastTriggered = &now
	alarm.UpdatedAt = now
	if err := a.store.UpdateAlarm(alarm); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alarm)
}

func (a *alarmAPI) snooze(c echo.Context) error {
	var req snoozeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	alarm, err := a.store.GetAlarm(c.Param("id"))
	if err != nil {
		return err
	}

	until := a.now().UTC().Add(time.Duration(req.Minutes) * time.Minute)
	alarm.SnoozeUntil = &until
	alarm.UpdatedAt = a.now().UTC()
	if err := a.store.UpdateAlarm(alarm); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, alarm)
}

func (a *alarmAPI) dismiss(c echo.Context) error {
	alarm, err := a.store.GetAlarm(c.Param("id"))
	if err != nil {
		return err
	}

	alarm.SnoozeUntil = nil
	alarm.UpdatedAt = a.now().UTC()
	if err := a.store.UpdateAlarm(alarm); err != nil {
		return err
	}

	// answering an alarm earns a small reward
	if a.rewards != nil {
		if _, err := a.rewards.Award(alarm.UserID, rewards.AlarmAnsweredCoins, rewards.AlarmAnsweredXP); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, alarm)
}
