package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type server struct {
	addr    string
	handler http.Handler
}

func NewServer(addr string, handler http.Handler) (*server, error) {
	if addr == "" {
		return nil, fmt.Errorf("addr is empty")
	}
	return &server{
		addr:    addr,
		handler: handler,
	}, nil
}

func (s *server) Name() string { return "http_server" }

func (s *server) Run(ctx context.Context) error {
	slog.Info("Starting worker", "name", s.Name(), "addr", s.addr)
	defer slog.Info("Worker stopped", "name", s.Name())

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.handler,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancelFn := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancelFn()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
