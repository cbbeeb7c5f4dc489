package cli

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	apperrors "roadbook/internal/errors"
	"roadbook/internal/roadbook"
)

// newCheckCmd loads the journal and reports every row that failed to
// parse, without modifying anything.
func newCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load the journal and report parse errors",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			dir := app.journalDir(cmd)

			if !roadbook.IsRoadBook(dir) {
				return apperrors.Wrapf(apperrors.ErrNotRoadBook, "%s", dir)
			}

			rb := roadbook.New()
			rb.Logger = app.Logger
			rowErrors, err := rb.Load(dir)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				type rowReport struct {
					File   string            `json:"file"`
					Row    int               `json:"row"`
					Errors []string          `json:"errors"`
					Data   map[string]string `json:"data,omitempty"`
				}
				report := struct {
					Dir         string      `json:"dir"`
					Trades      int         `json:"trades"`
					Instruments int         `json:"instruments"`
					Setups      int         `json:"setups"`
					Currencies  int         `json:"currencies"`
					Features    int         `json:"features"`
					RowErrors   []rowReport `json:"row_errors"`
				}{
					Dir:         dir,
					Trades:      len(rb.Trades),
					Instruments: len(rb.Instruments),
					Setups:      len(rb.Setups),
					Currencies:  len(rb.Currencies),
					Features:    len(rb.Features),
					RowErrors:   []rowReport{},
				}
				for _, re := range rowErrors {
					report.RowErrors = append(report.RowErrors, rowReport{
						File:   filepath.Base(re.File),
						Row:    re.Row,
						Errors: re.Errors,
						Data:   re.Data,
					})
				}
				return output.JSON(report)
			}

			output.Bold("Journal: %s", dir)
			output.Printf("  Trades:      %d\n", len(rb.Trades))
			output.Printf("  Instruments: %d\n", len(rb.Instruments))
			output.Printf("  Setups:      %d\n", len(rb.Setups))
			output.Printf("  Currencies:  %d\n", len(rb.Currencies))
			output.Printf("  Features:    %d\n", len(rb.Features))
			output.Println()

			if len(rowErrors) == 0 {
				output.Success("✓ No parse errors")
				return nil
			}

			output.Warning("%d row(s) skipped:", len(rowErrors))
			table := NewTable(output, "FILE", "ROW", "ERRORS")
			for _, re := range rowErrors {
				table.AddRow(filepath.Base(re.File), strconv.Itoa(re.Row), joinErrors(re.Errors))
			}
			table.Render()
			return nil
		},
	}
}

func joinErrors(errs []string) string {
	out := ""
	for i, e := range errs {
		if i > 0 {
			out += "; "
		}
		out += e
	}
	return out
}
