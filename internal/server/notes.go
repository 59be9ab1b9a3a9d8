package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/storage"
)

type noteAPI struct {
	store storage.Provider
	now   func() time.Time
}

func registerNoteAPI(g *echo.Group, store storage.Provider) {
	api := &noteAPI{store: store, now: time.Now}

	g.GET("/notes", api.list)
	g.GET("/notes/:id", api.get)
	g.POST("/notes", api.create)
	g.PUT("/notes/:id", api.update)
	g.DELETE("/notes/:id", api.delete)
}

type createNoteRequest struct {
	UserID string   `json:"userId" validate:"required"`
	Title  string   `json:"title" validate:"required"`
	Body   string   `json:"body"`
	Tags   []string `json:"tags"`
}

type updateNoteRequest struct {
	Title *string   `json:"title" validate:"omitempty,min=1"`
	Body  *string   `json:"body"`
	Tags  *[]string `json:"tags"`
}

func (a *noteAPI) list(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "userId query parameter is required")
	}
	notes, err := a.store.GetNotesByUser(userID)
	if err != nil {
		return err
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return c.JSON(http.StatusOK, notes)
}

func (a *noteAPI) get(c echo.Context) error {
	note, err := a.store.GetNote(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

func (a *noteAPI) create(c echo.Context) error {
	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	now := a.now().UTC()
	note := models.Note{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Title:     req.Title,
		Body:      req.Body,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.store.AddNote(note); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, note)
}

func (a *noteAPI) update(c echo.Context) error {
	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	note, err := a.store.GetNote(c.Param("id"))
	if err != nil {
		return err
	}

	if req.Title != nil {
		note.Title = *req.Title
	}
	if req.Body != nil {
		note.Body = *req.Body
	}
	if req.Tags != nil {
		note.Tags = *req.Tags
	}
	note.UpdatedAt = a.now().UTC()

	if err := a.store.UpdateNote(note); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, note)
}

func (a *noteAPI) delete(c echo.Context) error {
	if err := a.store.DeleteNote(c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
