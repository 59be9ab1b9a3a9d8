package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/rewards"
	"github.com/jordanpayne/reveille/internal/storage"
)

type userAPI struct {
	store   storage.Provider
	rewards *rewards.Service
	now     func() time.Time
}

func registerUserAPI(g *echo.Group, store storage.Provider, rw *rewards.Service) {
	api := &userAPI{store: store, rewards: rw, now: time.Now}

	g.POST("/users", api.create)
	g.GET("/users/:id", api.get)
	g.GET("/users/:id/stats", api.stats)
	g.POST("/users/:id/spend", api.spend)
	g.POST("/users/:id/focus", api.focus)
	g.GET("/leaderboard", api.leaderboard)
}

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=2,max=32"`
}

type spendRequest struct {
	Coins int `json:"coins" validate:"required,gt=0"`
}

type focusRequest struct {
	Mode string `json:"mode" validate:"omitempty,oneof=standard ultifocus"`
}

func (a *userAPI) create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := a.store.GetUserByUsername(req.Username); err == nil {
		return echo.NewHTTPError(http.StatusConflict, "username already taken")
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	user := models.User{
		ID:        uuid.NewString(),
		Username:  req.Username,
		CreatedAt: a.now().UTC(),
	}
	if err := a.store.AddUser(user); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

func (a *userAPI) get(c echo.Context) error {
	user, err := a.store.GetUser(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (a *userAPI) stats(c echo.Context) error {
	stats, err := a.store.GetStats(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (a *userAPI) spend(c echo.Context) error {
	var req spendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stats, err := a.rewards.Spend(c.Param("id"), req.Coins)
	if err != nil {
		if errors.Is(err, rewards.ErrInsufficientCoins) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// focus records a completed focus session: coins, XP, and a streak bump.
func (a *userAPI) focus(c echo.Context) error {
	var req focusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stats, err := a.rewards.FocusComplete(c.Param("id"), req.Mode == "ultifocus")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (a *userAPI) leaderboard(c echo.Context) error {
	entries, err := a.rewards.Leaderboard()
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []models.LeaderboardEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
