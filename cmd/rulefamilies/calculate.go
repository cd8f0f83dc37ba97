package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/heliosip/countryrules/dateformula"
	"github.com/heliosip/countryrules/features/query/calculaterules"
)

type calculateFlags struct {
	criteriaFlags

	baseDate string
	from     string
	to       string
}

func (f *calculateFlags) dates(now time.Time) (time.Time, calculaterules.DateWindow, error) {
	baseDate := now
	if f.baseDate != "" {
		parsed, err := dateformula.ParseDate(f.baseDate)
		if err != nil {
			return time.Time{}, calculaterules.DateWindow{}, fmt.Errorf("invalid --base-date: %w", err)
		}
		baseDate = parsed
	}

	var window calculaterules.DateWindow

	for _, bound := range []struct {
		name   string
		value  string
		target *time.Time
	}{
		{"--from", f.from, &window.From},
		{"--to", f.to, &window.To},
	} {
		if bound.value == "" {
			continue
		}

		parsed, err := dateformula.ParseDate(bound.value)
		if err != nil {
			return time.Time{}, calculaterules.DateWindow{}, fmt.Errorf("invalid %s: %w", bound.name, err)
		}
		*bound.target = parsed
	}

	if !window.From.IsZero() && !window.To.IsZero() && window.To.Before(window.From) {
		return time.Time{}, calculaterules.DateWindow{}, fmt.Errorf("--to %s is before --from %s", f.to, f.from)
	}

	return baseDate, window, nil
}

func newCalculateCommand(global *globalFlags, lookupEnv func(string) (string, bool)) *cobra.Command {
	flags := &calculateFlags{}

	cmd := &cobra.Command{
		Use:   "calculate",
		Short: "Calculate due dates of the matching rules from a base date",
		Long: `calculate evaluates each matching rule's due date and final due date formulas
(e.g. "add 2 weeks", "add -10 days", "add 6 months") against the base date. With --from and/or --to only
rows whose calculated due date falls inside the inclusive window are kept.`,
		Example: `  rulefamilies calculate --base-date 2024-01-31 --jurisdiction Germany
  rulefamilies calculate --from 2025-01-01 --to 2025-06-30 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := flags.criteria()
			if err != nil {
				return err
			}

			baseDate, window, err := flags.dates(time.Now())
			if err != nil {
				return err
			}

			return withApp(cmd, global, lookupEnv, func(a *app) error {
				handler, err := a.calculateHandler()
				if err != nil {
					return err
				}

				result, err := handler.Handle(cmd.Context(), calculaterules.BuildQuery(criteria, baseDate, window))
				if err != nil {
					return err
				}

				return writeCalculatedRules(cmd.OutOrStdout(), global.format, result)
			})
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVarP(&flags.baseDate, "base-date", "b", "", "Base date (YYYY-MM-DD); defaults to today")
	cmd.Flags().StringVar(&flags.from, "from", "", "Keep rows due on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.to, "to", "", "Keep rows due on or before this date (YYYY-MM-DD)")

	return cmd
}
