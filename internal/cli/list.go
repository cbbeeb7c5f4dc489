package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

// newListCmd lists the journal's reference entities.
func newListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journal entities",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "instruments",
		Short: "List instruments",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			rb, err := app.loadBook(cmd)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(rb.Instruments)
			}
			table := NewTable(output, "INSTRUMENT", "ALIAS", "CURRENCY", "PIP", "SCALE", "SPREAD")
			for _, i := range rb.Instruments {
				table.AddRow(i.Name, i.Alias, i.Currency,
					FormatPoints(i.Pip), FormatPoints(i.Scale), FormatPoints(i.Spread))
			}
			table.Render()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "setups",
		Short: "List setups",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			rb, err := app.loadBook(cmd)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(rb.Setups)
			}
			table := NewTable(output, "SETUP", "DESCRIPTION")
			for _, s := range rb.Setups {
				table.AddRow(s.Name, TruncateString(s.Descr, 60))
			}
			table.Render()
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "currencies",
		Short: "List currencies",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			rb, err := app.loadBook(cmd)
			if err != nil {
				return err
			}
			if output.IsJSON() {
				return output.JSON(rb.Currencies)
			}
			table := NewTable(output, "CURRENCY", "FOREX", "RATE")
			for _, c := range rb.Currencies {
				table.AddRow(c.Name, c.Forex, FormatPoints(c.Rate))
			}
			table.Render()
			return nil
		},
	})

	featuresCmd := &cobra.Command{
		Use:   "features",
		Short: "List features",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			rb, err := app.loadBook(cmd)
			if err != nil {
				return err
			}
			setup, _ := cmd.Flags().GetString("setup")
			if setup != "" {
				names := rb.FeatureNames(setup)
				if output.IsJSON() {
					return output.JSON(names)
				}
				for _, n := range names {
					output.Println(n)
				}
				return nil
			}
			if output.IsJSON() {
				return output.JSON(rb.Features)
			}
			table := NewTable(output, "FEATURE", "SETUPS", "DESCRIPTION")
			for _, f := range rb.Features {
				setups := strings.Join(f.Setups.Sorted(), ";")
				if setups == "" {
					setups = "(all)"
				}
				table.AddRow(f.Name, setups, TruncateString(f.Descr, 50))
			}
			table.Render()
			return nil
		},
	}
	featuresCmd.Flags().String("setup", "", "only features applicable to this setup")
	cmd.AddCommand(featuresCmd)

	return cmd
}
