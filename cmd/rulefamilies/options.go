package main

import (
	"github.com/spf13/cobra"

	"github.com/heliosip/countryrules/features/query/filteroptions"
)

func newOptionsCommand(global *globalFlags, lookupEnv func(string) (string, bool)) *cobra.Command {
	var jurisdiction, matterType string

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List jurisdictions, matter types, rules and outcomes available for filtering",
		Long: `options lists the filter values. Rules and outcomes are narrowed to those of
rules in the given jurisdiction and matter type (exact names).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, global, lookupEnv, func(a *app) error {
				handler, err := a.optionsHandler()
				if err != nil {
					return err
				}

				result, err := handler.Handle(cmd.Context(), filteroptions.BuildQuery(jurisdiction, matterType))
				if err != nil {
					return err
				}

				return writeFilterOptions(cmd.OutOrStdout(), global.format, result)
			})
		},
	}

	cmd.Flags().StringVarP(&jurisdiction, "jurisdiction", "j", "", "Narrow rules and outcomes to this jurisdiction")
	cmd.Flags().StringVarP(&matterType, "matter-type", "m", "", "Narrow rules and outcomes to this matter type")

	return cmd
}
