package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	domainauth "github.com/target/cipms/internal/domain/auth"
	"github.com/target/cipms/internal/domain/nav"
	"github.com/target/cipms/internal/service"
)

// errNotSignedIn is returned by gated commands after the hint has been printed.
var errNotSignedIn = errors.New("not signed in")

type cliApp struct {
	open    envOpener
	opts    envOptions
	noColor bool
}

func newRootCmd(open envOpener) *cobra.Command {
	app := &cliApp{open: open}

	root := &cobra.Command{
		Use:   "cipms-cli",
		Short: "Campus placement dashboard in the terminal",
		Long: `cipms-cli signs in to the placement dashboard and shows the views for your role.

The signed-in identity is kept in a local SQLite file, so it survives
between invocations until you log out.

Example usage:
  cipms-cli login --email student@example.com --role student --password demo
  cipms-cli whoami
  cipms-cli menu
  cipms-cli dashboard
  cipms-cli logout`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.opts.DBPath, "db", defaultDBPath(), "SQLite session file (default SESSION_SQLITE_PATH)")
	root.PersistentFlags().BoolVarP(&app.opts.Verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().BoolVar(&app.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		app.loginCmd(),
		app.logoutCmd(),
		app.whoamiCmd(),
		app.menuCmd(),
		app.dashboardCmd(),
	)
	return root
}

// withSession opens the environment, restores the persisted session and runs fn.
func (a *cliApp) withSession(cmd *cobra.Command, fn func(ctx context.Context, env *cliEnv, sess *service.SessionService, p *printer) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	env, err := a.open(ctx, a.opts)
	if err != nil {
		return err
	}
	defer func() {
		if env.Close == nil {
			return
		}
		if cerr := env.Close(); cerr != nil && env.Logger != nil {
			env.Logger.Warn("close session store failed", "error", cerr)
		}
	}()

	sess := service.NewSessionService(service.SessionServiceOptions{
		Credentials: env.Credentials,
		Verifier:    env.Verifier,
		Storage:     env.Storage,
		StorageKey:  service.DefaultStorageKey,
		Logger:      env.Logger,
	})
	sess.Restore(ctx)

	return fn(ctx, env, sess, newPrinter(cmd.OutOrStdout(), !a.noColor))
}

// gate applies the access decision to the restored session.
func gate(sess *service.SessionService, p *printer) (domainauth.Identity, error) {
	state := sess.State()
	switch domainauth.Authorize(state) {
	case domainauth.DecisionPermit:
		return state.Identity, nil
	case domainauth.DecisionPending:
		return nil, errors.New("session is still loading, try again")
	default:
		p.line("Not signed in. Run `cipms-cli login` first.")
		return nil, errNotSignedIn
	}
}

type loginOptions struct {
	Email         string
	Role          string
	Password      string
	PasswordStdin bool
}

func (a *cliApp) loginCmd() *cobra.Command {
	var opts loginOptions
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email, password and role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			role, ok := domainauth.ParseRole(opts.Role)
			if !ok {
				return fmt.Errorf("unknown role %q (valid: %s)", opts.Role, roleList())
			}
			pw, err := readPassword(cmd.InOrStdin(), opts)
			if err != nil {
				return err
			}
			return a.withSession(cmd, func(ctx context.Context, _ *cliEnv, sess *service.SessionService, p *printer) error {
				id, err := sess.Login(ctx, service.LoginInput{Email: opts.Email, Password: pw, Role: role})
				if err != nil {
					return loginError(err)
				}
				p.line("Signed in as %s (%s)", p.bold(domainauth.DisplayName(id)), id.Role().Label())
				p.line("Dashboard: %s", nav.SelectDashboardFor(id))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opts.Email, "email", "", "account email")
	cmd.Flags().StringVar(&opts.Role, "role", "", "role to sign in as ("+roleList()+")")
	cmd.Flags().StringVar(&opts.Password, "password", "", "password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&opts.PasswordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func readPassword(in io.Reader, opts loginOptions) (string, error) {
	if !opts.PasswordStdin {
		return opts.Password, nil
	}
	if opts.Password != "" {
		return "", errors.New("--password and --password-stdin are mutually exclusive")
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func loginError(err error) error {
	switch {
	case errors.Is(err, domainauth.ErrCredentialMismatch):
		return errors.New("invalid email, password or role")
	case errors.Is(err, domainauth.ErrPasswordRequired):
		return errors.New("password is required")
	default:
		return fmt.Errorf("login failed: %w", err)
	}
}

func roleList() string {
	roles := domainauth.KnownRoles()
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, string(r))
	}
	return strings.Join(names, ", ")
}

func (a *cliApp) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(ctx context.Context, _ *cliEnv, sess *service.SessionService, p *printer) error {
				if err := sess.Logout(ctx); err != nil {
					return fmt.Errorf("logout: %w", err)
				}
				p.line("Signed out.")
				return nil
			})
		},
	}
}

func (a *cliApp) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(_ context.Context, _ *cliEnv, sess *service.SessionService, p *printer) error {
				id, err := gate(sess, p)
				if err != nil {
					return err
				}
				p.identity(id)
				return nil
			})
		},
	}
}

func (a *cliApp) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "List the navigation entries for your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(_ context.Context, _ *cliEnv, sess *service.SessionService, p *printer) error {
				id, err := gate(sess, p)
				if err != nil {
					return err
				}
				p.menu(nav.SelectMenu(id.Role()))
				return nil
			})
		},
	}
}

func (a *cliApp) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard for your role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.withSession(cmd, func(ctx context.Context, env *cliEnv, sess *service.SessionService, p *printer) error {
				id, err := gate(sess, p)
				if err != nil {
					return err
				}
				sum, err := env.Dashboard.Summary(ctx, id)
				if err != nil {
					return fmt.Errorf("load dashboard: %w", err)
				}
				p.dashboard(id, sum)
				return nil
			})
		},
	}
}
