package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/rosterdesk/internal/cli/formatter"
	"github.com/alexanderramin/rosterdesk/internal/repository"
	"github.com/alexanderramin/rosterdesk/internal/service"
	"github.com/alexanderramin/rosterdesk/internal/session"
)

func newLoginCmd(app *App) *cobra.Command {
	var email string
	var remember bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in as a project manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = app.Session.RememberedEmail()
			}
			if email == "" && app.interactive() {
				if err := loginForm(&email, &remember).Run(); err != nil {
					return err
				}
			}
			email = strings.TrimSpace(email)
			if email == "" {
				return fmt.Errorf("--email is required")
			}

			manager, err := app.Factory.Identity().Initialize(cmd.Context(), session.Identity{Email: email})
			switch {
			case errors.Is(err, repository.ErrNotFound), errors.Is(err, service.ErrNotLoggedIn):
				return fmt.Errorf("no project manager with email %s", email)
			case err != nil:
				return err
			}

			id := session.Identity{
				ID:    manager.ID,
				Name:  manager.Name,
				Role:  string(manager.Role),
				Email: manager.Email,
			}
			if err := app.Session.Save(id, remember); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Signed in as %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(manager.Name), formatter.Dim(manager.Email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Manager email address")
	cmd.Flags().BoolVar(&remember, "remember", false, "Remember the email for the next login")
	return cmd
}

func loginForm(email *string, remember *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@company.com").
				Value(email).
				Validate(validateRequired("email")),
			huh.NewConfirm().
				Title("Remember me").
				Affirmative("Yes").
				Negative("No").
				Value(remember),
		),
	).WithTheme(rosterdeskHuhTheme()).WithShowHelp(false)
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in manager",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Session.Load()
			if errors.Is(err, session.ErrNoSession) {
				return errNotLoggedIn
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", formatter.Bold(id.Name), formatter.Dim(id.Email), formatter.Dim("("+id.Role+")"))
			return nil
		},
	}
}
