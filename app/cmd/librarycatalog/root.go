package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-catalog-go/app/shell"
	"github.com/AntonStoeckl/library-catalog-go/app/shell/config"
	"github.com/AntonStoeckl/library-catalog-go/app/shell/logging"
	"github.com/AntonStoeckl/library-catalog-go/catalog"
)

var errNoApp = errors.New("application was not initialized")

type rootFlags struct {
	configPath string
	source     string
	file       string
	debug      bool
}

// app is what the subcommands work with. It is built by the root command before any subcommand runs.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	service  *shell.Service
	shutdown func(context.Context) error
}

func newRootCmd(catalogOptions ...catalog.Option) *cobra.Command {
	var flags rootFlags
	var a *app

	cmd := &cobra.Command{
		Use:          "librarycatalog",
		Short:        "Library catalog of books, readers and loans",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, flags)
			if err != nil {
				return err
			}

			a, err = newApp(cmd.Context(), cfg, cmd.ErrOrStderr(), catalogOptions)

			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a == nil || a.shutdown == nil {
				return nil
			}

			return a.shutdown(context.WithoutCancel(cmd.Context()))
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&flags.source, "source", "", "record source: csv, json or postgres")
	cmd.PersistentFlags().StringVar(&flags.file, "file", "", "path of the csv or json document")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	current := func() (*app, error) {
		if a == nil {
			return nil, errNoApp
		}

		return a, nil
	}

	cmd.AddCommand(
		showCmd(current),
		booksCmd(current),
		readersCmd(current),
		loansCmd(current),
		serveCmd(current),
	)

	return cmd
}

// loadConfig applies the flags that were set explicitly on top of file and environment configuration.
func loadConfig(cmd *cobra.Command, flags rootFlags) (config.Config, error) {
	persistent := cmd.Root().PersistentFlags()

	return config.Load(flags.configPath, config.WithOverride(func(c *config.Config) {
		if persistent.Changed("source") {
			c.Catalog.Source = flags.source
		}

		if persistent.Changed("file") {
			c.Catalog.File = flags.file
		}

		if flags.debug {
			c.Logging.Level = "debug"
		}
	}))
}

func newApp(ctx context.Context, cfg config.Config, logOutput io.Writer, catalogOptions []catalog.Option) (*app, error) {
	logger := logging.New(cfg.Logging, logOutput)

	source, closeSource, err := openSource(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	defer closeSource()

	options := append([]catalog.Option{}, catalogOptions...)
	if cfg.Catalog.Name != "" {
		options = append(options, catalog.WithName(cfg.Catalog.Name))
	}

	c, err := catalog.Load(ctx, source, options...)
	if err != nil {
		return nil, err
	}

	serviceOptions := []shell.Option{shell.WithLogging(logger)}

	otelOptions, shutdown, err := setupObservability(ctx, cfg.Observability, logger)
	if err != nil {
		return nil, err
	}

	service, err := shell.NewService(c, append(serviceOptions, otelOptions...)...)
	if err != nil {
		return nil, errors.Join(err, shutdown(ctx))
	}

	return &app{cfg: cfg, logger: logger, service: service, shutdown: shutdown}, nil
}
