package cli

import (
	"github.com/spf13/cobra"
)

// newSaveAsCmd writes a copy of the journal into another directory.
// The loaded journal stays bound to its original directory. With
// filter flags the copy holds only the matching trades.
func newSaveAsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save-as <dir>",
		Short: "Write a copy of the journal to another directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			rb, err := app.loadBook(cmd)
			if err != nil {
				return err
			}

			trades, err := app.selectTrades(cmd)
			if err != nil {
				return err
			}
			filtered := len(trades) != len(rb.Trades)

			target := args[0]
			if err := rb.Save(target, filtered); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]interface{}{
					"dir":      target,
					"trades":   len(trades),
					"filtered": filtered,
				})
			}
			if filtered {
				output.Success("✓ Saved %d of %d trade(s) to %s", len(trades), len(rb.Trades), target)
			} else {
				output.Success("✓ Saved journal to %s", target)
			}
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}
