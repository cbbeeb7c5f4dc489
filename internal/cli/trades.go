package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"roadbook/internal/csvmap"
	"roadbook/internal/models"
	"roadbook/internal/stats"
)

// addFilterFlags registers the trade-selection flags shared by the
// trades and stats commands.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("instrument", nil, "keep trades on these instruments")
	cmd.Flags().StringSlice("setup", nil, "keep trades with these setups")
	cmd.Flags().String("dir", "", "keep trades in this direction (long|short)")
	cmd.Flags().StringSlice("result", nil, "keep trades with these results (win|loss|neutral)")
	cmd.Flags().IntSlice("hour", nil, "keep trades entered in these hours")
	cmd.Flags().StringSlice("weekday", nil, "keep trades entered on these weekdays (Mon..Sun)")
	cmd.Flags().StringSlice("with", nil, "keep trades carrying all these features")
	cmd.Flags().StringSlice("without", nil, "keep trades carrying none of these features")
	cmd.Flags().String("since", "", "keep trades from this date on (with --until)")
	cmd.Flags().String("until", "", "keep trades up to this date (with --since)")
	cmd.Flags().String("period", "", "keep trades from the latest day|week|month|year in the journal")
}

// parseFilter builds a Filter from the shared flags.
func parseFilter(cmd *cobra.Command) (*stats.Filter, error) {
	f := &stats.Filter{}

	f.Instruments, _ = cmd.Flags().GetStringSlice("instrument")
	f.Setups, _ = cmd.Flags().GetStringSlice("setup")
	f.MustHave, _ = cmd.Flags().GetStringSlice("with")
	f.CantHave, _ = cmd.Flags().GetStringSlice("without")
	f.Hours, _ = cmd.Flags().GetIntSlice("hour")

	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		switch strings.ToLower(dir) {
		case "long":
			f.Dirs = []models.Direction{models.Long}
		case "short":
			f.Dirs = []models.Direction{models.Short}
		default:
			return nil, fmt.Errorf("invalid direction %q (long or short)", dir)
		}
	}

	results, _ := cmd.Flags().GetStringSlice("result")
	for _, r := range results {
		switch strings.ToLower(r) {
		case "win":
			f.Results = append(f.Results, models.Win)
		case "loss":
			f.Results = append(f.Results, models.Loss)
		case "neutral":
			f.Results = append(f.Results, models.Neutral)
		default:
			return nil, fmt.Errorf("invalid result %q (win, loss or neutral)", r)
		}
	}

	weekdays, _ := cmd.Flags().GetStringSlice("weekday")
	for _, w := range weekdays {
		d, err := parseWeekday(w)
		if err != nil {
			return nil, err
		}
		f.Weekdays = append(f.Weekdays, d)
	}

	if since, _ := cmd.Flags().GetString("since"); since != "" {
		d, err := csvmap.ParseDate(since)
		if err != nil {
			return nil, fmt.Errorf("invalid --since: %w", err)
		}
		f.Since = d
	}
	if until, _ := cmd.Flags().GetString("until"); until != "" {
		d, err := csvmap.ParseDate(until)
		if err != nil {
			return nil, fmt.Errorf("invalid --until: %w", err)
		}
		f.Until = d
	}

	return f, nil
}

func parseWeekday(s string) (models.Weekday, error) {
	for d := models.Mon; d <= models.Sun; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q (Mon..Sun)", s)
}

// applyPeriod narrows trades to the latest day, week, month or year in
// the journal.
func applyPeriod(period string, trades []*models.Trade) ([]*models.Trade, error) {
	switch strings.ToLower(period) {
	case "":
		return trades, nil
	case "day":
		return stats.ThisDay(trades), nil
	case "week":
		return stats.ThisWeek(trades), nil
	case "month":
		return stats.ThisMonth(trades), nil
	case "year":
		return stats.ThisYear(trades), nil
	default:
		return nil, fmt.Errorf("invalid period %q (day, week, month or year)", period)
	}
}

// selectTrades applies the period and filter flags to the loaded book
// and records the selection on it.
func (app *App) selectTrades(cmd *cobra.Command) ([]*models.Trade, error) {
	rb := app.Book
	filter, err := parseFilter(cmd)
	if err != nil {
		return nil, err
	}

	trades := rb.Trades
	if period, _ := cmd.Flags().GetString("period"); period != "" {
		trades, err = applyPeriod(period, trades)
		if err != nil {
			return nil, err
		}
	}
	trades = filter.Apply(rb, trades)
	rb.FilteredTrades = trades
	return trades, nil
}

// newTradesCmd lists trades, optionally narrowed by the filter flags.
func newTradesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trades",
		Short: "List trades",
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

			if output.IsJSON() {
				return output.JSON(trades)
			}

			table := NewTable(output, "ID", "DATE", "INSTRUMENT", "SETUP", "DIR", "LOTS", "POINTS", "EUROS", "RESULT")
			for _, t := range trades {
				result := rb.Result(t).String()
				switch rb.Result(t) {
				case models.Win:
					result = output.Green(result)
				case models.Loss:
					result = output.Red(result)
				}
				table.AddRow(
					fmt.Sprintf("%d", t.ID),
					FormatDate(t.DateIn),
					t.Instrument,
					t.Setup,
					string(t.Dir),
					FormatPoints(t.Lots),
					FormatPoints(t.Points()),
					output.FormatPnL(rb.PtsEuros(t)),
					result,
				)
			}
			table.Render()
			output.Dim("%d trade(s)", len(trades))
			return nil
		},
	}
	addFilterFlags(cmd)
	return cmd
}
