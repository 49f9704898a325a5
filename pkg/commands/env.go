package commands

import (
	"context"
	"os"

	"github.com/pkg/errors"

	"tableflip.dev/bizdesk/pkg/app"
	"tableflip.dev/bizdesk/pkg/auth"
	"tableflip.dev/bizdesk/pkg/config"
	"tableflip.dev/bizdesk/pkg/logging"
	"tableflip.dev/bizdesk/pkg/session"
	"tableflip.dev/bizdesk/pkg/store"
)

// env is what every command runs against: configuration, the opened store
// and the service over it.
type env struct {
	Config *config.Config
	KV     store.KV
	Logger logging.Logger
	App    *app.Service
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, cfg.LogLevel)
	kv, err := store.Open(store.Options{Backend: store.Backend(cfg.Backend), Path: cfg.Path, Logger: logger})
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s store at %s", cfg.Backend, cfg.Path)
	}
	return &env{
		Config: cfg,
		KV:     kv,
		Logger: logger,
		App: &app.Service{
			KV:            kv,
			Logger:        logger,
			ReseedOnEmpty: cfg.ReseedOnEmpty,
			Threshold:     cfg.Threshold,
		},
	}, nil
}

func (e *env) Close() {
	_ = e.KV.Close()
}

func (e *env) Sessions() *session.Manager {
	return &session.Manager{KV: e.KV, Client: auth.NewHTTPClient(e.Config.AuthURL)}
}

// session returns the signed-in user, or nil when nobody is.
func (e *env) session(ctx context.Context) (*auth.Session, error) {
	s, err := e.Sessions().Current(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
