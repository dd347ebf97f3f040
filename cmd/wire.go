package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/wsargent/toodledo/internal/adapters/tokens/file"
	"github.com/wsargent/toodledo/internal/adapters/transport"
	"github.com/wsargent/toodledo/internal/config"
	"github.com/wsargent/toodledo/internal/ports"
	"github.com/wsargent/toodledo/internal/session"
)

type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	session *session.Session
}

func newApp(configPath string, verbose bool) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return &app{cfg: cfg, logger: logger}, nil
}

// taskSession builds and connects the session on first use so commands
// that do not talk to the service, setup in particular, work without
// credentials.
func (a *app) taskSession(ctx context.Context) (*session.Session, error) {
	if a.session != nil {
		return a.session, nil
	}

	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	var proxy *transport.Proxy
	if a.cfg.Proxy != nil {
		proxy = &transport.Proxy{
			Host:     a.cfg.Proxy.Host,
			Port:     a.cfg.Proxy.Port,
			User:     a.cfg.Proxy.User,
			Password: a.cfg.Proxy.Password,
		}
	}

	client, err := transport.NewClient(a.cfg.Connection.BaseURL, proxy, a.logger)
	if err != nil {
		return nil, fmt.Errorf("wire transport: %w", err)
	}

	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}

	s, err := session.New(session.Config{
		UserID:   a.cfg.Connection.UserID,
		Password: a.cfg.Connection.Password,
		AppID:    a.cfg.Connection.AppID,
	}, client, file.NewStore(dir), ports.SystemClock{}, a.logger)
	if err != nil {
		return nil, err
	}

	if err := s.Connect(ctx); err != nil {
		return nil, err
	}

	a.session = s
	return s, nil
}
