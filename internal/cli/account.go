package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/matzehuels/penman/pkg/client"
	"github.com/matzehuels/penman/pkg/session"
)

// requestTimeout bounds each account API call.
const requestTimeout = 30 * time.Second

// readPassword reads a password without echo; replaced in tests.
var readPassword = term.ReadPassword

// credentialOpts holds flags shared by register and login.
type credentialOpts struct {
	server   string
	username string
	password string
}

func (o *credentialOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.server, "server", defaultServer, "penman API base URL")
	cmd.Flags().StringVarP(&o.username, "username", "u", "", "account username (prompted if empty)")
	cmd.Flags().StringVar(&o.password, "password", "", "account password (prompted if empty; prefer the prompt)")
}

// accountCommand creates the account command group.
func (c *CLI) accountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage your penman account session",
		Long: `Register and log in to a penman API.

The token returned by login is stored locally and used by commands that
talk to the API, such as 'penman render --server'.`,
	}

	cmd.AddCommand(c.accountRegisterCommand())
	cmd.AddCommand(c.accountLoginCommand())
	cmd.AddCommand(c.accountLogoutCommand())
	cmd.AddCommand(c.accountWhoamiCommand())
	cmd.AddCommand(c.accountListCommand())

	return cmd
}

// accountRegisterCommand creates the register subcommand.
func (c *CLI) accountRegisterCommand() *cobra.Command {
	opts := credentialOpts{}

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := promptCredentials(cmd, &opts); err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			if err := client.New(opts.server).Register(ctx, opts.username, opts.password); err != nil {
				return fmt.Errorf("register: %w", err)
			}
			printSuccess("Registered %s", StyleHighlight.Render(opts.username))
			printDetail("Run 'penman account login' to sign in")
			return nil
		},
	}

	opts.bind(cmd)
	return cmd
}

// accountLoginCommand creates the login subcommand.
func (c *CLI) accountLoginCommand() *cobra.Command {
	opts := credentialOpts{}

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if existing, _ := loadSession(ctx, opts.server); existing != nil {
				printInfo("Already logged in as %s", existing.Username)
				printDetail("Run 'penman account logout' first to re-authenticate")
				return nil
			}
			if err := promptCredentials(cmd, &opts); err != nil {
				return err
			}
			return c.runLogin(ctx, opts)
		},
	}

	opts.bind(cmd)
	return cmd
}

func (c *CLI) runLogin(ctx context.Context, opts credentialOpts) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	spinner := newSpinner(ctx, "Logging in...")
	spinner.Start()

	api := client.New(opts.server)
	token, err := api.Login(ctx, opts.username, opts.password)
	if err != nil {
		spinner.StopWithError("Login failed")
		return err
	}
	var expires time.Time
	if me, err := api.WithToken(token).Me(ctx); err == nil {
		expires = me.ExpiresAt
	} else {
		loggerFromContext(ctx).Debug("could not read token expiry", "error", err)
	}
	spinner.Stop()

	sess, err := session.New(token, opts.username, api.BaseURL(), expires)
	if err != nil {
		return err
	}
	accounts, err := session.NewAccountStore("")
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	if err := accounts.Save(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	printSuccess("Logged in as %s", StyleHighlight.Render(opts.username))
	printDetail("Session expires %s", sess.ExpiresAt.Format(time.Kitchen))
	return nil
}

// accountLogoutCommand creates the logout subcommand.
func (c *CLI) accountLogoutCommand() *cobra.Command {
	var (
		server string
		all    bool
	)

	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Remove a stored session",
		Long: `Remove the stored session for --server, or for the most recent login
when --server is not given. --all removes every stored session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			accounts, err := session.NewAccountStore("")
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}

			var targets []*session.Session
			switch {
			case all:
				targets, err = accounts.All(ctx)
			default:
				var sess *session.Session
				sess, err = loadSession(ctx, server)
				targets = []*session.Session{sess}
			}
			if err != nil {
				return err
			}

			for _, sess := range targets {
				if err := accounts.Delete(ctx, sess.Server); err != nil {
					return fmt.Errorf("delete session: %w", err)
				}
				printSuccess("Logged out of %s", StyleHighlight.Render(sess.Server))
			}
			if len(targets) == 0 {
				printInfo("No stored sessions")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server to log out of (default: most recent login)")
	cmd.Flags().BoolVar(&all, "all", false, "log out of every server")
	return cmd
}

// accountWhoamiCommand creates the whoami subcommand.
func (c *CLI) accountWhoamiCommand() *cobra.Command {
	var server string

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated user",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(cmd.Context(), server)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), requestTimeout)
			defer cancel()

			spinner := newSpinner(ctx, "Verifying session...")
			spinner.Start()

			me, err := client.New(sess.Server).WithToken(sess.Token).Me(ctx)
			if err != nil {
				spinner.StopWithError("Session invalid")
				return fmt.Errorf("verify session: %w", err)
			}
			spinner.Stop()

			printSuccess("Penman Session")
			printKeyValue("Username", me.Username)
			printKeyValue("User ID", me.UserID)
			printKeyValue("Server", sess.Server)
			printKeyValue("Logged in", sess.CreatedAt.Format("Jan 2, 2006 15:04"))
			printKeyValue("Expires", me.ExpiresAt.Local().Format("Jan 2, 2006 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server to check (default: most recent login)")
	return cmd
}

// accountListCommand creates the list subcommand.
func (c *CLI) accountListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := session.NewAccountStore("")
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			all, err := accounts.All(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				printInfo("No stored sessions")
				return nil
			}
			rows := make([][]string, len(all))
			for i, sess := range all {
				rows[i] = []string{sess.Server, sess.Username, formatExpiry(sess.ExpiresAt)}
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Server", "User", "Expires"}, rows))
			return nil
		},
	}
}

// =============================================================================
// Session Management
// =============================================================================

// loadSession loads the session for server, or the most recent one when
// server is empty. It fails if there is none.
func loadSession(ctx context.Context, server string) (*session.Session, error) {
	accounts, err := session.NewAccountStore("")
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	var sess *session.Session
	if server == "" {
		sess, err = accounts.Current(ctx)
	} else {
		sess, err = accounts.Get(ctx, server)
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if sess == nil {
		if server == "" {
			return nil, fmt.Errorf("not logged in (run 'penman account login' first)")
		}
		return nil, fmt.Errorf("not logged in to %s (run 'penman account login --server %s' first)", server, server)
	}
	return sess, nil
}

// formatExpiry renders t relative to now, e.g. "in 42m".
func formatExpiry(t time.Time) string {
	d := time.Until(t).Round(time.Minute)
	switch {
	case d <= 0:
		return "expired"
	case d < time.Hour:
		return fmt.Sprintf("in %dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("in %dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	default:
		return t.Local().Format("Jan 2, 2006")
	}
}

// =============================================================================
// Prompts
// =============================================================================

// promptCredentials fills in a missing username or password from the
// terminal.
func promptCredentials(cmd *cobra.Command, opts *credentialOpts) error {
	w := cmd.ErrOrStderr()
	if opts.username == "" {
		name, err := promptLine(bufio.NewReader(cmd.InOrStdin()), w, "Username: ")
		if err != nil {
			return fmt.Errorf("read username: %w", err)
		}
		opts.username = name
	}
	if opts.password == "" {
		fmt.Fprint(w, "Password: ")
		pw, err := readPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(w)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		opts.password = string(pw)
	}
	return nil
}

func promptLine(r *bufio.Reader, w io.Writer, prompt string) (string, error) {
	fmt.Fprint(w, prompt)
	line, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
