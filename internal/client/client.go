// Package client is the REST client the watch loop and the management
// commands use to talk to a reveille server.
package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/jordanpayne/reveille/internal/constants"
)

type Client struct {
	http *resty.Client
}

type Config struct {
	BaseURL string
	Token   string // optional bearer token
	Timeout time.Duration
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = constants.DefaultServerURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	r := resty.New()
	r.SetBaseURL(cfg.BaseURL)
	r.SetTimeout(cfg.Timeout)
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json")
	if cfg.Token != "" {
		r.SetAuthToken(cfg.Token)
	}

	return &Client{http: r}
}

// apiError is the server's error envelope.
type apiError struct {
	Error string `json:"error"`
}

func respError(op string, resp *resty.Response) error {
	var body apiError
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Error != "" {
		return fmt.Errorf("%s: %s (status %d)", op, body.Error, resp.StatusCode())
	}
	return fmt.Errorf("%s: unexpected status %d", op, resp.StatusCode())
}
