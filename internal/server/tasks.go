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

type taskAPI struct {
	store   storage.Provider
	rewards *rewards.Service
	now     func() time.Time
}

func registerTaskAPI(g *echo.Group, store storage.Provider, rw *rewards.Service) {
	api := &taskAPI{store: store, rewards: rw, now: time.Now}

	g.GET("/tasks", api.list)
	g.GET("/tasks/:id", api.get)
	g.POST("/tasks", api.create)
	g.PUT("/tasks/:id", api.update)
	g.DELETE("/tasks/:id", api.delete)
	g.POST("/tasks/:id/toggle", api.toggle)
}

type createTaskRequest struct {
	UserID string `json:"userId" validate:"required"`
	Title  string `json:"title" validate:"required"`
	Tag    string `json:"tag"`
	Date   string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

type updateTaskRequest struct {
	Title *string `json:"title" validate:"omitempty,min=1"`
	Tag   *string `json:"tag"`
	Date  *string `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

func (a *taskAPI) list(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId query parameter is required")
	}
	tasks, err := a.store.GetTasksByUser(userID)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	if date := c.QueryParam("date"); date != "" {
		filtered := make([]models.Task, 0, len(tasks))
		for _, t := range tasks {
			if t.Date == date {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}
	return c.JSON(http.StatusOK, tasks)
}

func (a *taskAPI) get(c echo.Context) error {
	task, err := a.store.GetTask(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (a *taskAPI) create(c echo.Context) error {
	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := a.now().UTC()
	date := req.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	task := models.Task{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Title:     req.Title,
		Tag:       req.Tag,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.AddTask(task); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, task)
}

func (a *taskAPI) update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	task, err := a.store.GetTask(c.Param("id"))
	if err != nil {
		return err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Tag != nil {
		task.Tag = *req.Tag
	}
	if req.Date != nil {
		task.Date = *req.Date
	}
	task.UpdatedAt = a.now().UTC()

	if err := a.store.UpdateTask(task); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (a *taskAPI) delete(c echo.Context) error {
	if err := a.store.DeleteTask(c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// toggle flips completion state. Completing a task pays out coins and XP,
// un-completing it does not claw them back.
func (a *taskAPI) toggle(c echo.Context) error {
	task, err := a.store.GetTask(c.Param("id"))
	if err != nil {
		return err
	}

	task.Completed = !task.Completed
	task.UpdatedAt = a.now().UTC()
	if err := a.store.UpdateTask(task); err != nil {
		return err
	}

	if task.Completed && a.rewards != nil {
		if _, err := a.rewards.Award(task.UserID, rewards.TaskCompletedCoins, rewards.TaskCompletedXP); err != nil {
			return err
		}
	}
	return c.JSON(http.StatusOK, task)
}
