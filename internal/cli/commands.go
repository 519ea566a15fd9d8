package cli

import (
	"bufio"

	"github.com/spf13/cobra"
)

func NewIngestCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Parse the configured log file into the store and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			return ingest(cmd, a)
		},
	}
}

func NewConsoleCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Ingest the log file, then start the interactive query prompt",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServing(cmd, opts, ModeConsole)
		},
	}
	cmd.Flags().BoolVar(&opts.skipIngest, "skip-ingest", false, "query the store without ingesting first")
	return cmd
}

func NewAPICmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Ingest the log file, then serve GET /logs over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServing(cmd, opts, ModeAPI)
		},
	}
	cmd.Flags().BoolVar(&opts.skipIngest, "skip-ingest", false, "serve the store without ingesting first")
	return cmd
}

func runServing(cmd *cobra.Command, opts *rootOptions, mode Mode) error {
	a, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if !opts.skipIngest {
		if err := ingest(cmd, a); err != nil {
			return err
		}
	}

	return runMode(cmd, a, mode, bufio.NewReader(cmd.InOrStdin()))
}
