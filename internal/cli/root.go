// Package cli provides the command-line interface for the journal tool.
package cli

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"roadbook/internal/config"
	apperrors "roadbook/internal/errors"
	"roadbook/internal/logging"
	"roadbook/internal/roadbook"
)

// Version information
const (
	Version = "1.1.0"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Book   *roadbook.RoadBook
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "roadbook",
		Short: "RoadBook - trade journal CLI",
		Long: `RoadBook manages a directory of delimited trade-journal files:
account settings, currencies, instruments, setups, features and trades.

It loads a journal with per-row error reporting, keeps referential
integrity across renames and deletes, and computes statistics over
filtered trade selections.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().String("journal", "", "journal directory (default: configured dir or current directory)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newCheckCmd(app))
	rootCmd.AddCommand(newListCmd(app))
	rootCmd.AddCommand(newTradesCmd(app))
	rootCmd.AddCommand(newStatsCmd(app))
	rootCmd.AddCommand(newRenameCmd(app))
	rootCmd.AddCommand(newDeleteCmd(app))
	rootCmd.AddCommand(newExportCmd(app))
	rootCmd.AddCommand(newSaveAsCmd(app))

	return rootCmd
}

// journalDir resolves the journal directory: the --journal flag wins,
// then the configured default, then the current directory.
func (app *App) journalDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("journal"); dir != "" {
		return dir
	}
	if app.Config.Journal.Dir != "" {
		return app.Config.Journal.Dir
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	return dir
}

// loadBook loads the journal for the command, logging any rows that
// failed to parse.
func (app *App) loadBook(cmd *cobra.Command) (*roadbook.RoadBook, error) {
	dir := app.journalDir(cmd)
	if !roadbook.IsRoadBook(dir) {
		return nil, apperrors.Wrapf(apperrors.ErrNotRoadBook, "%s", dir)
	}

	rb := roadbook.New()
	rb.Logger = logging.WithJournal(app.Logger, dir)
	rowErrors, err := rb.Load(dir)
	if err != nil {
		return nil, err
	}
	for _, re := range rowErrors {
		logging.LogRowErrors(rb.Logger, filepath.Base(re.File), re.Row, re.Errors)
	}

	app.Book = rb
	return rb, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"version": Version})
			} else {
				output.Printf("RoadBook v%s\n", Version)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			output.Bold("Journal")
			output.Printf("  Dir:         %s\n", app.Config.Journal.Dir)
			output.Printf("  Backup:      %v\n", app.Config.Journal.Backup)
			output.Printf("  Copy graphs: %v\n", app.Config.Journal.CopyGraphs)
			output.Println()
			output.Bold("Logging")
			output.Printf("  Level:   %s\n", app.Config.Logging.Level)
			output.Printf("  Console: %v\n", app.Config.Logging.Console)
			output.Printf("  File:    %v\n", app.Config.Logging.File)
			output.Println()
			output.Bold("Export")
			output.Printf("  Path: %s\n", app.Config.Export.Path)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}
