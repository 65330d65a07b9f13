package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/plantdex/internal/app"
	"github.com/kailas-cloud/plantdex/internal/config"
	logpkg "github.com/kailas-cloud/plantdex/internal/logger"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	env        string
	configPath string
	logLevel   string
}

// session is what a command needs once config and connections are up.
type session struct {
	cfg    config.Config
	logger *zap.Logger
	deps   *app.Deps
	out    io.Writer
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "plantctl",
		Short:         "Manage the plantdex catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.env, "env", "", "config environment (default: $ENV or local)")
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "config file path (overrides --env)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	cmd.AddCommand(
		newIndexCmd(opts),
		newSeedCmd(opts),
		newEmbedCmd(opts),
		newSearchCmd(opts),
	)
	return cmd
}

// open loads configuration and connects the catalog. The caller closes the session.
func (o *rootOptions) open(cmd *cobra.Command) (*session, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err //nolint:wrapcheck // already names the file
	}

	env := o.env
	if env == "" {
		env = config.GetEnv()
	}

	var (
		cfg config.Config
		err error
	)
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load(env)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logpkg.NewLogger(loggerEnv(env), "plantctl", o.logLevel)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	deps, err := app.Open(cmd.Context(), &cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	return &session{cfg: cfg, logger: logger, deps: deps, out: cmd.OutOrStdout()}, nil
}

func (s *session) close() {
	s.deps.Close()
	_ = s.logger.Sync()
}

// loggerEnv maps any environment to one the logger knows; the CLI is interactive
// so non-production environments get console output.
func loggerEnv(env string) string {
	if logpkg.IsProduction(env) {
		return env
	}
	return "local"
}
