package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "roadbook/internal/errors"
)

// newRenameCmd renames a reference entity and cascades the new name
// through everything that refers to it, then saves the journal.
func newRenameCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <kind> <old> <new>",
		Short: "Rename an instrument, setup, currency or feature",
		Long: `Rename a reference entity. The new name is propagated through every
record that refers to the old one: trades for instruments and setups,
instruments for currencies, trade feature sets and feature setup sets
for setups and features.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			rb, err := app.loadBook(cmd)
			if err != nil {
				return err
			}

			kind, oldName, newName := args[0], args[1], args[2]
			switch kind {
			case "instrument":
				if rb.FindInstrument(oldName) == nil {
					return apperrors.Wrapf(apperrors.ErrNotFound, "instrument %s", oldName)
				}
				rb.RenameInstrument(oldName, newName)
			case "setup":
				if rb.FindSetup(oldName) == nil {
					return apperrors.Wrapf(apperrors.ErrNotFound, "setup %s", oldName)
				}
				rb.RenameSetup(oldName, newName)
			case "currency":
				if rb.FindCurrency(oldName) == nil {
					return apperrors.Wrapf(apperrors.ErrNotFound, "currency %s", oldName)
				}
				rb.RenameCurrency(oldName, newName)
			case "feature":
				if rb.FindFeature(oldName) == nil {
					return apperrors.Wrapf(apperrors.ErrNotFound, "feature %s", oldName)
				}
				rb.RenameFeature(oldName, newName)
			default:
				return fmt.Errorf("invalid kind %q (instrument, setup, currency or feature)", kind)
			}

			if err := rb.Save(rb.Dir(), false); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"kind": kind, "old": oldName, "new": newName})
			}
			output.Success("✓ Renamed %s %q to %q", kind, oldName, newName)
			return nil
		},
	}
	return cmd
}

// newDeleteCmd deletes a reference entity or a trade. Reference
// entities still referred to elsewhere are refused.
func newDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <kind> <name|id>",
		Short: "Delete an instrument, setup, feature or trade",
		Long: `Delete an entity. Instruments, setups and features that are still
referred to by trades (or, for setups, by feature applicability sets)
are refused; remove or rename the references first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			rb, err := app.loadBook(cmd)
			if err != nil {
				return err
			}

			kind, name := args[0], args[1]
			switch kind {
			case "instrument":
				err = rb.DeleteInstrument(name)
			case "setup":
				err = rb.DeleteSetup(name)
			case "feature":
				err = rb.DeleteFeature(name)
			case "trade":
				var id int
				if _, scanErr := fmt.Sscanf(name, "%d", &id); scanErr != nil {
					return fmt.Errorf("invalid trade id %q", name)
				}
				err = rb.RemoveTrade(id)
			default:
				return fmt.Errorf("invalid kind %q (instrument, setup, feature or trade)", kind)
			}
			if err != nil {
				return err
			}

			if err := rb.Save(rb.Dir(), false); err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(map[string]string{"kind": kind, "name": name})
			}
			output.Success("✓ Deleted %s %q", kind, name)
			return nil
		},
	}
	return cmd
}
