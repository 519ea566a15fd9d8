package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Egor213/LogParser/internal/app"
	"github.com/Egor213/LogParser/internal/config"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	cfgFile    string
	logLevel   string
	skipIngest bool
}

// Execute builds and runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "logparser",
		Short: "Ingest access logs into a deduplicated store and query them",
		Long: `logparser reads an access log file, parses every line with a regular
expression into host, logname, user, timestamp, request, status and bytes,
and stores each entry once. The stored entries can then be queried from an
interactive console or over HTTP (GET /logs).

Without a subcommand the log is ingested and you are asked which interface
to start.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.cfgFile, "config", "c", "", "config file (default: $APP_CONFIG_PATH or "+config.DEFAULT_CONFIG_PATH+")")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		NewIngestCmd(opts),
		NewConsoleCmd(opts),
		NewAPICmd(opts),
	)

	return rootCmd
}

func bootstrap(ctx context.Context, opts *rootOptions) (*app.App, error) {
	cfg, err := config.New(opts.cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("starting: %w", err)
	}
	return a, nil
}

// ingest runs the startup ingestion. Any error here stops the process.
func ingest(cmd *cobra.Command, a *app.App) error {
	inserted, err := a.Ingest(cmd.Context())
	if err != nil {
		return fmt.Errorf("ingesting logs: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Logs processed successfully. New rows: %d\n", inserted)
	return nil
}

func runInteractive(cmd *cobra.Command, opts *rootOptions) error {
	a, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := ingest(cmd, a); err != nil {
		return err
	}

	in := bufio.NewReader(cmd.InOrStdin())
	mode, err := SelectMode(in, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	return runMode(cmd, a, mode, in)
}

func runMode(cmd *cobra.Command, a *app.App, mode Mode, in *bufio.Reader) error {
	switch mode {
	case ModeConsole:
		return a.RunConsole(cmd.Context(), in, cmd.OutOrStdout())
	case ModeAPI:
		return a.RunServer(cmd.Context())
	}
	return fmt.Errorf("unknown mode %q", mode)
}
