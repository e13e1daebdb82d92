package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/rosterdesk/internal/config"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/service"
	"github.com/alexanderramin/rosterdesk/internal/session"
)

// errNotLoggedIn is returned by every manager-scoped command when no usable
// session exists.
var errNotLoggedIn = errors.New("not logged in. Run `rosterdesk login --email <address>`")

// App holds what CLI commands share: the service factory, the persisted
// session, and terminal settings.
type App struct {
	Factory *service.Factory
	Session *session.Store
	HTTP    config.HTTPConfig
	Logger  *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. Forms and the week
	// browser are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

// services resolves the logged-in manager and returns the services acting
// on their behalf.
func (a *App) services(ctx context.Context) (*service.Services, error) {
	id, err := a.Session.Load()
	if errors.Is(err, session.ErrNoSession) {
		return nil, errNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	manager, err := a.Factory.Identity().Initialize(ctx, id)
	switch {
	case errors.Is(err, service.ErrNotLoggedIn), errors.Is(err, repository.ErrNotFound):
		return nil, errNotLoggedIn
	case err != nil:
		return nil, fmt.Errorf("resolving manager: %w", err)
	}
	return a.Factory.For(manager), nil
}

// NewRootCmd creates the top-level "rosterdesk" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "rosterdesk",
		Short:         "Project manager's desk for team allocation and time tracking",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newDashboardCmd(app),
		newAllocationCmd(app),
		newWeeksCmd(app),
		newAvailableCmd(app),
		newProjectCmd(app),
		newAllocateCmd(app),
		newRequestCmd(app),
		newEntryCmd(app),
		newServeCmd(app),
		newTokenCmd(app),
	)

	return root
}
