// Package main provides the CLI entry point for the LTIM age and sex converter.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/internal/logging"
	"github.com/GSS-Cogs/ONS-LTIM-Age-and-Sex/pkg/ltim"
)

type flags struct {
	configPath string
	outputDir  string
	sheet      string
	sqlitePath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "ltim [source.xlsx|url]",
		Short: "Convert the ONS LTIM age and sex table into tidy CSV",
		Long: `ltim converts worksheet "Table 2.07" of the ONS long-term international
migration age and sex workbook into observations.csv, its CSVW schema and
dataset metadata.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "YAML config file")
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "Output directory (default from config: out)")
	cmd.Flags().StringVar(&f.sheet, "sheet", "", "Worksheet name (default from config: Table 2.07)")
	cmd.Flags().StringVar(&f.sqlitePath, "sqlite", "", "Also write observations to this SQLite database")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	return cmd
}

// applyFlags overrides cfg with the positional source and any flags that were set.
func applyFlags(cfg ltim.Config, args []string, f flags) ltim.Config {
	if len(args) == 1 {
		cfg.SourceURL = args[0]
	}
	if f.outputDir != "" {
		cfg.OutputDir = f.outputDir
	}
	if f.sheet != "" {
		cfg.Worksheet = f.sheet
	}
	if f.sqlitePath != "" {
		cfg.SQLitePath = f.sqlitePath
	}
	if f.logLevel != "" {
		cfg.Logging.Level = f.logLevel
	}
	return cfg
}

func run(cmd *cobra.Command, args []string, f flags) error {
	cfg, err := ltim.ReadConfig(f.configPath)
	if err != nil {
		return err
	}
	cfg = applyFlags(cfg, args, f)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := ltim.Convert(ctx, cfg, logger)
	if err != nil {
		logger.Error("Conversion failed", slog.Any("error", err))
		return fmt.Errorf("conversion failed: %w", err)
	}

	for _, path := range res.Files {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
