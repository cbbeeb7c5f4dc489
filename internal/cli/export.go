package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"roadbook/internal/logging"
	"roadbook/internal/store"
)

// newExportCmd mirrors the loaded journal into a SQLite database for
// ad-hoc querying.
func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the journal to a SQLite database",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			rb, err := app.loadBook(cmd)
			if err != nil {
				return err
			}

			dbPath, _ := cmd.Flags().GetString("db")
			if dbPath == "" {
				dbPath = app.Config.Export.Path
			}
			if !filepath.IsAbs(dbPath) {
				dbPath = filepath.Join(rb.Dir(), dbPath)
			}

			s, err := store.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Export(rb); err != nil {
				return err
			}

			logger := logging.WithOperation(rb.Logger, "export")
			logger.Info().Str("db", dbPath).Int("trades", len(rb.Trades)).Msg("Journal exported")

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"db":     dbPath,
					"trades": len(rb.Trades),
				})
			}
			output.Success("✓ Exported %d trade(s) to %s", len(rb.Trades), dbPath)
			return nil
		},
	}
	cmd.Flags().String("db", "", "database file (default: configured export.path, relative to the journal)")
	return cmd
}
