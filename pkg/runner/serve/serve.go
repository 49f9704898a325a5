// Package serve provides the runner hosting the local auth server.
package serve

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/bizdesk/pkg/authserver"
	"tableflip.dev/bizdesk/pkg/logging"
	"tableflip.dev/bizdesk/pkg/store"
)

// Serve runs the auth server until ctx is done.
type Serve struct {
	KV             store.KV
	Logger         logging.Logger
	Address        string
	DisableReqLogs bool
}

// Do starts listening and shuts down when ctx is cancelled.
func (s *Serve) Do(ctx context.Context) error {
	if s.KV == nil {
		return errors.New("can not serve, no store")
	}
	srv := authserver.New(authserver.Options{
		Address:        s.Address,
		DisableReqLogs: s.DisableReqLogs,
		KV:             s.KV,
		Logger:         s.Logger,
	})

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			return err
		}
		return <-errc
	}
}
