package cli

import (
	"context"
	"io"
	"time"

	"work-tracker/internal/config"
	"work-tracker/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// LoggerFactory builds the process logger from the loaded configuration
type LoggerFactory func(cfg config.LogConfig) (*logrus.Logger, io.Closer, error)

// RootOption customises the root command
type RootOption func(*RootCommand)

// WithLoggerFactory replaces the default logger construction
func WithLoggerFactory(factory LoggerFactory) RootOption {
	return func(r *RootCommand) {
		r.newLogger = factory
	}
}

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd       *cobra.Command
	loader    *config.Loader
	out       io.Writer
	newLogger LoggerFactory
	app       *App
	closer    io.Closer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(loader *config.Loader, out io.Writer, opts ...RootOption) *RootCommand {
	root := &RootCommand{
		loader: loader,
		out:    out,
		newLogger: func(cfg config.LogConfig) (*logrus.Logger, io.Closer, error) {
			return logging.New(cfg, "wt")
		},
	}
	for _, opt := range opts {
		opt(root)
	}

	root.cmd = &cobra.Command{
		Use:   "wt",
		Short: "Work tracker server and administration tool",
		Long: `Work Tracker (wt) serves the task, time log and attendance API and
administers its database.

EXAMPLES:
  wt migrate up                            # Bring the schema up to date
  wt org create "Acme Works"               # Create an organization
  wt user create rita 1                    # Create user rita in organization 1
  wt project create 1 "Tower"              # Create a project in organization 1
  wt token rita                            # Issue a bearer token for rita
  wt serve --addr :9090                    # Serve the HTTP API
  wt attendance report rita 2024 3         # Print rita's attendance for March 2024

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > .env file > defaults

    WT_DB_PATH                             Database file (default: work-tracker.db)
    WT_SERVER_ADDR                         Listen address (default: :8080)
    WT_AUTH_SECRET                         Token signing secret, at least 16 characters
    WT_AUTH_TOKEN_TTL                      Token lifetime (default: 24h)
    WT_LOG_LEVEL                           Log level (default: info)
    WT_LOG_FORMAT                          json or text (default: json)
    WT_LOG_OUTPUT                          stdout, file or both (default: stdout)
    WT_TIME_ZONE                           Zone defining calendar days (default: Local)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if root.closer != nil {
				return root.closer.Close()
			}
			return nil
		},
	}
	root.cmd.SetOut(out)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// ExecuteContext runs the root command with ctx
func (r *RootCommand) ExecuteContext(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides the arguments cobra parses
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db", "", "Database file (overrides WT_DB_PATH)")
	flags.String("addr", "", "Listen address (overrides WT_SERVER_ADDR)")
	flags.String("log-level", "", "Log level (overrides WT_LOG_LEVEL)")
	flags.String("log-format", "", "Log format, json or text (overrides WT_LOG_FORMAT)")
	flags.String("time-zone", "", "Time zone for calendar days (overrides WT_TIME_ZONE)")
	flags.Bool("debug", false, "Enable debug logging (overrides WT_DEBUG)")
	flags.Duration("timeout", 60*time.Second, "Timeout for administrative commands")
}

func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long:  "Serve the HTTP API until interrupted. Requires WT_AUTH_SECRET.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.app.Run(cmd.Context(), "serve", args)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	migrateCmd.AddCommand(
		r.leaf("up", "Apply all pending migrations", "migrate up", cobra.NoArgs),
		r.leaf("down", "Revert the most recent migration", "migrate down", cobra.NoArgs),
		r.leaf("status", "List migrations and whether they are applied", "migrate status", cobra.NoArgs),
	)

	tokenCmd := r.leaf("token <username>", "Issue a bearer token for a user", "token", cobra.ExactArgs(1))

	orgCmd := &cobra.Command{Use: "org", Short: "Manage organizations"}
	orgCmd.AddCommand(r.leaf("create <name>", "Create an organization", "org create", cobra.MinimumNArgs(1)))

	userCmd := &cobra.Command{Use: "user", Short: "Manage users"}
	userCmd.AddCommand(r.leaf("create <username> [organization id]", "Create a user", "user create", cobra.RangeArgs(1, 2)))

	projectCmd := &cobra.Command{Use: "project", Short: "Manage projects"}
	projectCmd.AddCommand(r.leaf("create <organization id> <name>", "Create a project", "project create", cobra.MinimumNArgs(2)))

	attendanceCmd := &cobra.Command{Use: "attendance", Short: "Attendance reports"}
	attendanceCmd.AddCommand(r.leaf("report <username> <year> <month>",
		"Print a user's day-by-day attendance for a month", "attendance report", cobra.ExactArgs(3)))

	r.cmd.AddCommand(serveCmd, migrateCmd, tokenCmd, orgCmd, userCmd, projectCmd, attendanceCmd)
}

// leaf builds an administrative command bounded by the --timeout flag
func (r *RootCommand) leaf(use, short, name string, positional cobra.PositionalArgs) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  positional,
		RunE: func(cmd *cobra.Command, args []string) error {
			timeout, _ := cmd.Flags().GetDuration("timeout")
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			return r.app.Run(ctx, name, args)
		},
	}
}

// setup loads configuration with flag overrides and builds the application
func (r *RootCommand) setup(cmd *cobra.Command) error {
	cfg, err := r.loader.LoadWithOverrides(overridesFromFlags(cmd))
	if err != nil {
		return err
	}

	logger, closer, err := r.newLogger(cfg.Log)
	if err != nil {
		return err
	}
	r.closer = closer
	r.app = NewApp(cfg, logger, r.out)
	return nil
}

// overridesFromFlags collects only the flags set on the command line
func overridesFromFlags(cmd *cobra.Command) *config.ConfigOverrides {
	flags := cmd.Flags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	overrides.DBPath = stringFlag("db")
	overrides.ServerAddr = stringFlag("addr")
	overrides.LogLevel = stringFlag("log-level")
	overrides.LogFormat = stringFlag("log-format")
	overrides.TimeZone = stringFlag("time-zone")
	if flags.Changed("debug") {
		debug, _ := flags.GetBool("debug")
		overrides.Debug = &debug
	}
	return overrides
}
