package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/hotelsearch/internal/config"
	logpkg "github.com/kailas-cloud/hotelsearch/internal/logger"
	"github.com/kailas-cloud/hotelsearch/internal/version"
)

// rootOptions carries state shared by every subcommand. cfg and logger are
// populated in PersistentPreRunE.
type rootOptions struct {
	env    string
	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "hotelsearch",
		Short:         "Hotel search service backed by Elasticsearch",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(opts.env)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logpkg.NewLogger(opts.env, cfg.Logging.Level)
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			opts.cfg = cfg
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&opts.env, "env", config.GetEnv(),
		"Config environment: loads config/<env>.yaml")

	root.AddCommand(
		newServeCmd(opts),
		newReindexCmd(opts),
		newIndexCmd(opts),
		newUnindexCmd(opts),
	)
	return root
}
