package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"

	envUsername = "RULES_DB_USERNAME"
	envPassword = "RULES_DB_PASSWORD"
)

var formats = []string{formatTable, formatCSV, formatJSON}

type globalFlags struct {
	configPath  string
	logLevel    string
	username    string
	password    string
	format      string
	metricsFile string
}

func (f globalFlags) validate() error {
	if !slices.Contains(formats, f.format) {
		return fmt.Errorf("invalid argument %q for --format: must be one of table, csv, json", f.format)
	}

	return nil
}

func newRootCommand(out, errOut io.Writer, lookupEnv func(string) (string, bool)) *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "rulefamilies",
		Short: "IP rule family analyzer",
		Long: `rulefamilies reads an IP rules database and groups its rules into families:
chains of rules where one rule's outcome triggers the next rule's condition.

Credentials are taken from --username/--password or from the
RULES_DB_USERNAME and RULES_DB_PASSWORD environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return flags.validate()
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the config file")
	pf.StringVarP(&flags.username, "username", "u", "", "Database username (default $"+envUsername+")")
	pf.StringVarP(&flags.password, "password", "p", "", "Database password (default $"+envPassword+")")
	pf.StringVarP(&flags.format, "format", "f", formatTable, "Output format (table, csv, json)")
	pf.StringVar(&flags.metricsFile, "metrics-file", "", "Write Prometheus metrics of the run to this file")

	cmd.AddCommand(
		newSearchCommand(flags, lookupEnv),
		newCalculateCommand(flags, lookupEnv),
		newOptionsCommand(flags, lookupEnv),
	)

	return cmd
}
