package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"roadbook/internal/models"
	"roadbook/internal/roadbook"
	"roadbook/internal/stats"
)

func parseUnit(s string) (stats.Unit, error) {
	switch strings.ToLower(s) {
	case "", "euros":
		return stats.UnitEuros, nil
	case "points":
		return stats.UnitPoints, nil
	case "syspoints":
		return stats.UnitSysPoints, nil
	case "syseuros":
		return stats.UnitSysEuros, nil
	case "pointsnorm":
		return stats.UnitPointsNorm, nil
	case "stoppoints":
		return stats.UnitStopPoints, nil
	case "success":
		return stats.UnitSuccess, nil
	case "failure":
		return stats.UnitFailure, nil
	default:
		return 0, fmt.Errorf("invalid unit %q", s)
	}
}

func parseKind(s string) (stats.Kind, error) {
	switch strings.ToLower(s) {
	case "", "total":
		return stats.KindTotal, nil
	case "average":
		return stats.KindAverage, nil
	case "count":
		return stats.KindCount, nil
	default:
		return 0, fmt.Errorf("invalid kind %q (total, average or count)", s)
	}
}

// newStatsCmd summarizes the filtered trade selection: an overall
// summary by default, grouped values with --by, a cumulative sequence
// with --running.
func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize trades",
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

			unitName, _ := cmd.Flags().GetString("unit")
			unit, err := parseUnit(unitName)
			if err != nil {
				return err
			}
			kindName, _ := cmd.Flags().GetString("kind")
			kind, err := parseKind(kindName)
			if err != nil {
				return err
			}
			last, _ := cmd.Flags().GetInt("last")

			if running, _ := cmd.Flags().GetBool("running"); running {
				initial, _ := cmd.Flags().GetFloat64("initial")
				values := stats.RunningTotals(rb, trades, unit, initial)
				if output.IsJSON() {
					return output.JSON(values)
				}
				table := NewTable(output, "TRADE", "TOTAL")
				for i, v := range values {
					table.AddRow(fmt.Sprintf("%d", i+1), FormatSigned(v))
				}
				table.Render()
				return nil
			}

			by, _ := cmd.Flags().GetString("by")
			if by != "" {
				labels, values, err := groupBy(rb, trades, by, unit, kind, last)
				if err != nil {
					return err
				}
				if output.IsJSON() {
					groups := make([]map[string]interface{}, len(labels))
					for i := range labels {
						groups[i] = map[string]interface{}{"label": labels[i], "value": values[i]}
					}
					return output.JSON(groups)
				}
				table := NewTable(output, strings.ToUpper(by), "VALUE")
				for i := range labels {
					table.AddRow(labels[i], FormatSigned(values[i]))
				}
				table.Render()
				return nil
			}

			totals := stats.NewTotals(rb, trades, unit)
			if output.IsJSON() {
				return output.JSON(totals)
			}
			printTotals(output, totals)
			return nil
		},
	}

	addFilterFlags(cmd)
	cmd.Flags().String("unit", "euros", "value unit (euros|points|syspoints|syseuros|pointsnorm|stoppoints|success|failure)")
	cmd.Flags().String("kind", "total", "grouped report kind (total|average|count)")
	cmd.Flags().String("by", "", "group by day|week|month|result|hour|weekday|setup|instrument")
	cmd.Flags().Int("last", 0, "keep only the last N groups of a time grouping")
	cmd.Flags().Bool("running", false, "print the cumulative sequence instead of a summary")
	cmd.Flags().Float64("initial", 0, "starting value for --running")

	return cmd
}

func groupBy(rb *roadbook.RoadBook, trades []*models.Trade, by string, unit stats.Unit, kind stats.Kind, last int) ([]string, []float64, error) {
	switch strings.ToLower(by) {
	case "day":
		labels, values := stats.PerDay(rb, trades, unit, kind, last)
		return labels, values, nil
	case "week":
		labels, values := stats.PerWeek(rb, trades, unit, kind, last)
		return labels, values, nil
	case "month":
		labels, values := stats.PerMonth(rb, trades, unit, kind, last)
		return labels, values, nil
	case "result":
		labels, values := stats.PerResult(rb, trades, unit, kind)
		return labels, values, nil
	case "hour":
		labels, values := stats.PerHour(rb, trades, unit, kind)
		return labels, values, nil
	case "weekday":
		labels, values := stats.PerWeekday(rb, trades, unit, kind)
		return labels, values, nil
	case "setup":
		labels, values := stats.PerSetup(rb, trades, unit, kind)
		return labels, values, nil
	case "instrument":
		labels, values := stats.PerInstrument(rb, trades, unit, kind)
		return labels, values, nil
	default:
		return nil, nil, fmt.Errorf("invalid grouping %q", by)
	}
}

func printTotals(output *Output, s stats.Totals) {
	output.Bold("Summary (%d trades)", s.NTrades)
	output.Printf("  Total:    %s  (%s of capital)\n", FormatSigned(s.Total), FormatPercent(s.Percent))
	output.Printf("  Average:  %s\n", FormatSigned(s.Average))
	output.Println()

	table := NewTable(output, "RESULT", "COUNT", "SHARE", "TOTAL", "AVERAGE")
	table.AddRow(output.Green("Win"), fmt.Sprintf("%d", s.NWin),
		fmt.Sprintf("%.1f%%", s.WinPercent), FormatSigned(s.TotalWin), FormatSigned(s.AverageWin))
	table.AddRow(output.Red("Loss"), fmt.Sprintf("%d", s.NLoss),
		fmt.Sprintf("%.1f%%", s.LossPercent), FormatSigned(s.TotalLoss), FormatSigned(s.AverageLoss))
	table.AddRow("Neutral", fmt.Sprintf("%d", s.NNeutral),
		fmt.Sprintf("%.1f%%", s.NeutralPercent), FormatSigned(s.TotalNeutral), FormatSigned(s.AverageNeutral))
	table.Render()
}
