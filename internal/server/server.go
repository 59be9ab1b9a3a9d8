// Package server exposes the REST API consumed by the watch loop and the
// management CLI: alarm storage plus the notes, planner, and leaderboard
// surfaces.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jordanpayne/reveille/internal/logger"
	"github.com/jordanpayne/reveille/internal/models"
	"github.com/jordanpayne/reveille/internal/rewards"
	"github.com/jordanpayne/reveille/internal/storage"
)

type (
	Options struct {
		Address        string
		APIToken       string // empty disables auth
		DisableReqLogs bool
		Store          storage.Provider
		Rewards        *rewards.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func New(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.Use(middleware.Recover())

	s.app.Validator = newValidator()
	s.app.HTTPErrorHandler = httpErrorHandler

	s.app.GET("/", home)

	api := s.app.Group("/api")
	if s.opts.APIToken != "" {
		token := s.opts.APIToken
		api.Use(middleware.KeyAuth(func(key string, c echo.Context) (bool, error) {
			return key == token, nil
		}))
	}

	registerAlarmAPI(api, s.opts.Store, s.opts.Rewards)
	registerNoteAPI(api, s.opts.Store)
	registerTaskAPI(api, s.opts.Store, s.opts.Rewards)
	registerUserAPI(api, s.opts.Store, s.opts.Rewards)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(c echo.Context) error {
	return c.String(http.StatusOK, "Reveille API")
}

// errorResponse is the JSON envelope for every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "internal server error"

	var httpErr *echo.HTTPError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		code = http.StatusNotFound
		msg = "not found"
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	default:
		logger.Error("Request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	if err := c.JSON(code, errorResponse{Error: msg}); err != nil {
		logger.Error("Failed to write error response", "error", err)
	}
}

type requestValidator struct {
	validate *validator.Validate
}

func newValidator() *requestValidator {
	v := validator.New()

	// HH:MM, zero-padded, 24h
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 5 || s[2] != ':' {
			return false
		}
		h := (int(s[0]-'0'))*10 + int(s[1]-'0')
		m := (int(s[3]-'0'))*10 + int(s[4]-'0')
		for _, i := range []int{0, 1, 3, 4} {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
		}
		return h >= 0 && h <= 23 && m >= 0 && m <= 59
	})

	// one of the synthesized alarm sounds
	_ = v.RegisterValidation("sound", func(fl validator.FieldLevel) bool {
		return models.Sound(fl.Field().String()).IsValid()
	})

	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
