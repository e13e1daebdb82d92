package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rosterdesk/internal/httpapi"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/service"
	"github.com/alexanderramin/rosterdesk/internal/session"
)

const shutdownGrace = 10 * time.Second

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.HTTP
			if addr != "" {
				cfg.Addr = addr
			}
			if cfg.JWTSecret == "" {
				return errors.New("http.jwt_secret (ROSTERDESK_JWT_SECRET) must be set to serve the API")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			api := httpapi.New(app.Factory, cfg, app.logger())
			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           api.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				app.logger().Info("http_listen", "addr", cfg.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serving http: %w", err)
			case <-ctx.Done():
			}

			app.logger().Info("http_shutdown")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutting down http: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides http.addr)")
	return cmd
}

func newTokenCmd(app *App) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API bearer token for a project manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				if id, err := app.Session.Load(); err == nil {
					email = id.Email
				}
			}
			email = strings.TrimSpace(email)
			if email == "" {
				return fmt.Errorf("--email is required")
			}

			_, err := app.Factory.Identity().Initialize(cmd.Context(), session.Identity{Email: email})
			switch {
			case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrNotLoggedIn):
				return fmt.Errorf("no project manager with email %s", email)
			case err != nil:
				return err
			}

			ttl := time.Duration(app.HTTP.TokenTTLMinutes) * time.Minute
			token, err := httpapi.IssueToken(app.HTTP.JWTSecret, email, ttl, app.now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Manager email (defaults to the signed-in manager)")
	return cmd
}
