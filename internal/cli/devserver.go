package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/tablebot/internal/constants"
	"github.com/julianstephens/tablebot/internal/devserver"
	"github.com/julianstephens/tablebot/internal/logger"
)

// DevServerCmd runs the local stand-in for the chat and booking backend
type DevServerCmd struct {
	Addr              string `help:"Listen address." default:"${dev_addr}"`
	Database          string `help:"SQLite database path, ':memory:' for a throwaway store." default:"${dev_database}"`
	RequireToken      bool   `help:"Reject requests that do not carry the configured bearer token."`
	RequestsPerMinute int    `help:"Per-client request budget." default:"${dev_rpm}"`
}

func (cmd *DevServerCmd) Run(ctx *Context) error {
	opts := devserver.Options{
		Database:          cmd.Database,
		Restaurant:        ctx.Config.Restaurant,
		RequestsPerMinute: cmd.RequestsPerMinute,
		Burst:             constants.DevRequestBurst,
	}
	if cmd.RequireToken {
		if ctx.Config.Token == "" {
			return errors.New("--require-token needs a token; pass --token or set one with 'tablebot token set'")
		}
		opts.Token = ctx.Config.Token
	}

	srv, err := devserver.New(opts)
	if err != nil {
		return err
	}
	defer srv.Close()

	httpSrv := &http.Server{
		Addr:              cmd.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	fmt.Fprintf(ctx.out(), "✓ Dev backend for %s listening on %s\n", opts.Restaurant, cmd.Addr)
	logger.Info("Dev server started", "addr", cmd.Addr, "database", cmd.Database)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("dev server failed: %w", err)
	case <-sigCtx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("dev server shutdown failed: %w", err)
	}
	fmt.Fprintln(ctx.out(), "Dev server stopped")
	return nil
}
