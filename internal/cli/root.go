package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dmitrymomot/kvcmd/core/config"
	"github.com/dmitrymomot/kvcmd/core/logger"
	"github.com/dmitrymomot/kvcmd/core/store"
	"github.com/dmitrymomot/kvcmd/integration/database/redis"
)

const (
	// Version of the kvcmd binary.
	Version = "0.1.0"

	envPrefix = "kvcmd"
)

// app holds what the subcommands share: flags resolved through viper, the
// logger and, for commands that talk to the server, the connection and store.
type app struct {
	v      *viper.Viper
	log    *slog.Logger
	cfg    redis.Config
	client *goredis.Client
	store  *store.Store
}

// NewRootCmd builds the kvcmd command tree. Flags can also be set through
// KVCMD_* environment variables (KVCMD_URL, KVCMD_TIMEOUT, KVCMD_VERBOSE).
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "kvcmd",
		Short:         "run Redis commands by name",
		Long:          fmt.Sprintf("kvcmd (v%s)\n\nRun Redis commands by name, alone, in MULTI/EXEC transactions or in pipelines.", Version),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("url", "", "redis URL (default: REDIS_URL or redis://localhost:6379/0)")
	flags.Duration("timeout", 5*time.Second, "timeout of every command")
	flags.Bool("verbose", false, "log every command at debug level")

	root.AddCommand(
		newDoCmd(a),
		newMultiCmd(a),
		newPipelineCmd(a),
		newCommandsCmd(),
		newKeysCmd(a),
		newBenchCmd(a),
		&cobra.Command{
			Use:   "version",
			Short: "print the version",
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "kvcmd v%s\n", Version)
			},
		},
	)

	return root
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func (a *app) init(cmd *cobra.Command) error {
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	level := slog.LevelWarn
	if a.v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	a.log = logger.New(logger.WithOutput(cmd.ErrOrStderr()), logger.WithLevel(level))
	return nil
}

// connect opens the connection and the store. Subcommands that need the
// server call it first; the returned function closes the connection.
func (a *app) connect(cmd *cobra.Command, opts ...store.Option) (func(), error) {
	url := a.v.GetString("url")

	if err := config.Load(&a.cfg); err != nil {
		if url == "" {
			return nil, err
		}
		a.cfg = redis.Config{RetryAttempts: 1}
	}
	if url != "" {
		a.cfg.ConnectionURL = url
	}
	a.cfg.ConnectTimeout = a.timeout()

	client, err := redis.Connect(cmd.Context(), a.cfg)
	if err != nil {
		return nil, err
	}

	opts = append([]store.Option{store.WithLogger(a.log), store.WithoutProbe()}, opts...)
	st, err := store.New(cmd.Context(), client, opts...)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	a.client, a.store = client, st
	return func() { _ = client.Close() }, nil
}

func (a *app) timeout() time.Duration {
	if d := a.v.GetDuration("timeout"); d > 0 {
		return d
	}
	return 5 * time.Second
}

// callContext bounds one command or orchestration with the --timeout flag.
func (a *app) callContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), a.timeout())
}
