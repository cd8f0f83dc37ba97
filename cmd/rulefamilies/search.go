package main

import (
	"github.com/spf13/cobra"

	"github.com/heliosip/countryrules/features/query/rulefamilies"
)

func newSearchCommand(global *globalFlags, lookupEnv func(string) (string, bool)) *cobra.Command {
	flags := &criteriaFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "List rule families with their report rows",
		Example: `  rulefamilies search --jurisdiction "United States"
  rulefamilies search --rule "[100] File application" --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			criteria, err := flags.criteria()
			if err != nil {
				return err
			}

			return withApp(cmd, global, lookupEnv, func(a *app) error {
				handler, err := a.searchHandler()
				if err != nil {
					return err
				}

				result, err := handler.Handle(cmd.Context(), rulefamilies.BuildQuery(criteria))
				if err != nil {
					return err
				}

				return writeRuleFamilies(cmd.OutOrStdout(), global.format, result)
			})
		},
	}

	flags.bind(cmd)

	return cmd
}
