package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jordanpayne/reveille/internal/config"
	"github.com/jordanpayne/reveille/internal/logger"
	"github.com/jordanpayne/reveille/internal/rewards"
	"github.com/jordanpayne/reveille/internal/server"
	"github.com/jordanpayne/reveille/internal/storage"
)

type ServeCmd struct {
	Address  string `short:"a" help:"Listen address." default:""`
	Database string `short:"d" help:"SQLite database path. Empty keeps everything in memory."`
	Token    string `help:"Require this bearer token on /api requests."`
}

func (c *ServeCmd) Run(_ *Context) error {
	configDir, err := config.Dir()
	if err != nil {
		return err
	}
	cfg, err := config.LoadServer(configDir)
	if err != nil {
		return err
	}
	if c.Address != "" {
		cfg.Address = c.Address
	}
	if c.Database != "" {
		cfg.Database = c.Database
	}
	if c.Token != "" {
		cfg.APIToken = c.Token
	}

	var store storage.Provider
	if cfg.Database != "" {
		store = storage.NewSQLiteStore(cfg.Database)
		logger.Info("Using SQLite storage", "path", cfg.Database)
	} else {
		store = storage.NewMemoryStore()
		logger.Info("Using in-memory storage")
	}
	if err := store.Init(); err != nil {
		return err
	}
	defer store.Close()

	srv := server.New(&server.Options{
		Address:  cfg.Address,
		APIToken: cfg.APIToken,
		Store:    store,
		Rewards:  rewards.New(store),
	})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("Server listening", "address", cfg.Address)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Stop(ctx)
}
