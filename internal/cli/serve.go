package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	httpAdapter "github.com/aretw0/chainspec/pkg/adapters/http"
)

// ServeOptions contains the configuration for the serve command.
type ServeOptions struct {
	Options
	Addr string
}

// Serve exposes the spec file over HTTP until ctx is cancelled.
func Serve(ctx context.Context, opts ServeOptions, w io.Writer) error {
	p, err := Open(ctx, opts.Options, nil)
	if err != nil {
		return err
	}
	defer p.Close()

	srv := &http.Server{
		Addr:    opts.Addr,
		Handler: httpAdapter.NewHandler(p, p.Registry, p.Logger),
	}

	serverErrors := make(chan error, 1)
	go func() {
		printSystemMessage(w, "Serving %s on %s", opts.File, opts.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
			return fmt.Errorf("graceful shutdown did not complete: %w", err)
		}
		printSystemMessage(w, "Server stopped gracefully")
		return nil
	}
}
